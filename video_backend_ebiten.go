//go:build !headless

// video_backend_ebiten.go - Ebiten video backend for Gaelco3D

/*
 ██▓ ███▄    █ ▄▄▄█████▓ █    ██  ██▓▄▄▄█████▓ ██▓ ▒█████   ███▄    █    ▓█████  ███▄    █   ▄████  ██▓ ███▄    █ ▓█████
▓██▒ ██ ▀█   █ ▓  ██▒ ▓▒ ██  ▓██▒▓██▒▓  ██▒ ▓▒▓██▒▒██▒  ██▒ ██ ▀█   █    ▓█   ▀  ██ ▀█   █  ██▒ ▀█▒▓██▒ ██ ▀█   █ ▓█   ▀
▒██▒▓██  ▀█ ██▒▒ ▓██░ ▒░▓██  ▒██░▒██▒▒ ▓██░ ▒░▒██▒▒██░  ██▒▓██  ▀█ ██▒   ▒███   ▓██  ▀█ ██▒▒██░▄▄▄░▒██▒▓██  ▀█ ██▒▒███
░██░▓██▒  ▐▌██▒░ ▓██▓ ░ ▓▓█  ░██░░██░░ ▓██▓ ░ ░██░▒██   ██░▓██▒  ▐▌██▒   ▒▓█  ▄ ▓██▒  ▐▌██▒░▓█  ██▓░██░▓██▒  ▐▌██▒▒▓█  ▄
░██░▒██░   ▓██░  ▒██▒ ░ ▒▒█████▓ ░██░  ▒██▒ ░ ░██░░ ████▓▒░▒██░   ▓██░   ░▒████▒▒██░   ▓██░░▒▓███▀▒░██░▒██░   ▓██░░▒████▒
░▓  ░ ▒░   ▒ ▒   ▒ ░░   ░▒▓▒ ▒ ▒ ░▓    ▒ ░░   ░▓  ░ ▒░▒░▒░ ░ ▒░   ▒ ▒    ░░ ▒░ ░░ ▒░   ▒ ▒  ░▒   ▒ ░▓  ░ ▒░   ▒ ▒ ░░ ▒░ ░
 ▒ ░░ ░░   ░ ▒░    ░    ░░▒░ ░ ░  ▒ ░    ░     ▒ ░  ░ ▒ ▒░ ░ ░░   ░ ▒░    ░ ░  ░░ ░░   ░ ▒░  ░   ░  ▒ ░░ ░░   ░ ▒░ ░ ░  ░
 ▒ ░   ░   ░ ░   ░       ░░░ ░ ░  ▒ ░  ░       ▒ ░░ ░ ░ ▒     ░   ░ ░       ░      ░   ░ ░ ░ ░   ░  ▒ ░   ░   ░ ░    ░
 ░           ░             ░      ░            ░      ░ ░           ░       ░  ░         ░       ░  ░           ░    ░  ░

(c) 2024 - 2026 Zayn Otley
https://github.com/IntuitionAmiga/IntuitionEngine
Buy me a coffee: https://ko-fi.com/intuition/tip

License: GPLv3 or later
*/

package main

import (
	"fmt"
	"image/color"
	"sync"
	"sync/atomic"
	"time"

	"github.com/golang/glog"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text"
	"golang.design/x/clipboard"
	"golang.org/x/image/font/basicfont"
)

type EbitenOutput struct {
	running     atomic.Bool
	window      *ebiten.Image
	config      DisplayConfig
	frameBuffer []byte
	bufferMutex sync.RWMutex
	frameCount  uint64
	vsyncChan   chan struct{}
	done        chan struct{}
	doneOnce    sync.Once

	input    InputState
	commands atomic.Uint32
	status   string

	clipboardOnce sync.Once
	clipboardOK   bool
}

func NewEbitenOutput() (VideoOutput, error) {
	return &EbitenOutput{
		config: DisplayConfig{
			Width:  GAME_WIDTH,
			Height: GAME_HEIGHT,
			Scale:  1,
			VSync:  true,
		},
		frameBuffer: make([]byte, GAME_WIDTH*GAME_HEIGHT*4),
		vsyncChan:   make(chan struct{}, 1),
		done:        make(chan struct{}),
	}, nil
}

func (eo *EbitenOutput) Start() error {
	if eo.running.Load() {
		return nil
	}
	eo.running.Store(true)

	eo.bufferMutex.RLock()
	cfg := eo.config
	eo.bufferMutex.RUnlock()
	ebiten.SetWindowSize(cfg.Width*cfg.Scale, cfg.Height*cfg.Scale)
	ebiten.SetWindowTitle("Gaelco3D")
	ebiten.SetWindowResizable(true)
	ebiten.SetRunnableOnUnfocused(true)
	ebiten.SetVsyncEnabled(cfg.VSync)
	ebiten.SetFullscreen(cfg.Fullscreen)

	go func() {
		defer func() {
			eo.running.Store(false)
			eo.closeDone()
		}()
		if err := ebiten.RunGame(eo); err != nil {
			glog.Errorf("ebiten: %v", err)
		}
	}()

	// Wait for first Draw call to ensure Ebiten is ready
	select {
	case <-eo.vsyncChan:
	case <-eo.done:
		return &VideoError{Operation: "start", Details: "window closed before first frame"}
	}
	glog.Infof("video: ebiten %dx%d started", cfg.Width, cfg.Height)
	return nil
}

func (eo *EbitenOutput) closeDone() {
	eo.doneOnce.Do(func() { close(eo.done) })
}

func (eo *EbitenOutput) Stop() error {
	eo.running.Store(false)
	return nil
}

func (eo *EbitenOutput) Close() error {
	return eo.Stop()
}

func (eo *EbitenOutput) IsStarted() bool {
	return eo.running.Load()
}

// Done is closed once the game loop has exited.
func (eo *EbitenOutput) Done() <-chan struct{} {
	return eo.done
}

func (eo *EbitenOutput) SetDisplayConfig(config DisplayConfig) error {
	if config.Width <= 0 || config.Height <= 0 {
		return &VideoError{
			Operation: "display config",
			Details:   fmt.Sprintf("invalid size %dx%d", config.Width, config.Height),
		}
	}
	if config.Scale < 1 {
		config.Scale = 1
	}

	eo.bufferMutex.Lock()
	resized := config.Width != eo.config.Width || config.Height != eo.config.Height
	eo.config = config
	if resized {
		eo.frameBuffer = make([]byte, config.Width*config.Height*4)
		eo.window = nil
	}
	eo.bufferMutex.Unlock()

	if eo.running.Load() {
		ebiten.SetFullscreen(config.Fullscreen)
		if !config.Fullscreen {
			ebiten.SetWindowSize(config.Width*config.Scale, config.Height*config.Scale)
		}
	}
	return nil
}

func (eo *EbitenOutput) GetDisplayConfig() DisplayConfig {
	eo.bufferMutex.RLock()
	defer eo.bufferMutex.RUnlock()
	return eo.config
}

func (eo *EbitenOutput) UpdateFrame(buffer []byte) error {
	eo.bufferMutex.Lock()
	defer eo.bufferMutex.Unlock()
	if err := checkFrameSize(buffer, eo.config); err != nil {
		return err
	}
	copy(eo.frameBuffer, buffer)
	return nil
}

func (eo *EbitenOutput) GetSnapshot() FrameSnapshot {
	eo.bufferMutex.RLock()
	defer eo.bufferMutex.RUnlock()
	buf := make([]byte, len(eo.frameBuffer))
	copy(buf, eo.frameBuffer)
	return FrameSnapshot{
		Buffer:    buf,
		Width:     eo.config.Width,
		Height:    eo.config.Height,
		Timestamp: time.Now(),
	}
}

func (eo *EbitenOutput) GetFrameCount() uint64 {
	return atomic.LoadUint64(&eo.frameCount)
}

func (eo *EbitenOutput) Input() InputState {
	eo.bufferMutex.RLock()
	defer eo.bufferMutex.RUnlock()
	return eo.input
}

func (eo *EbitenOutput) TakeCommands() ShellCommand {
	return ShellCommand(eo.commands.Swap(0))
}

func (eo *EbitenOutput) SetStatus(status string) {
	eo.bufferMutex.Lock()
	eo.status = status
	eo.bufferMutex.Unlock()
}

// Screenshot copies the current frame to the clipboard as PNG.
func (eo *EbitenOutput) Screenshot() error {
	eo.clipboardOnce.Do(func() {
		eo.clipboardOK = clipboard.Init() == nil
	})
	if !eo.clipboardOK {
		return &VideoError{Operation: "screenshot", Details: "clipboard unavailable"}
	}
	snap := eo.GetSnapshot()
	data, err := encodeFramePNG(snap.Buffer, snap.Width, snap.Height)
	if err != nil {
		return err
	}
	clipboard.Write(clipboard.FmtImage, data)
	glog.Infof("video: %dx%d screenshot copied to clipboard", snap.Width, snap.Height)
	return nil
}

func (eo *EbitenOutput) post(cmd ShellCommand) {
	for {
		old := eo.commands.Load()
		if eo.commands.CompareAndSwap(old, old|uint32(cmd)) {
			return
		}
	}
}

var hotkeys = []struct {
	key ebiten.Key
	cmd ShellCommand
}{
	{ebiten.KeyP, SHELL_PAUSE},
	{ebiten.KeyF9, SHELL_SCREENSHOT},
	{ebiten.KeyF10, SHELL_THROTTLE},
	{ebiten.KeyF11, SHELL_FPS},
	{ebiten.KeyEscape, SHELL_QUIT},
}

func (eo *EbitenOutput) Update() error {
	if ebiten.IsWindowBeingClosed() {
		eo.post(SHELL_QUIT)
		return ebiten.Termination
	}
	if !eo.running.Load() {
		return ebiten.Termination
	}
	for _, hk := range hotkeys {
		if inpututil.IsKeyJustPressed(hk.key) {
			eo.post(hk.cmd)
		}
	}
	eo.sampleInput()
	return nil
}

func (eo *EbitenOutput) sampleInput() {
	x, _ := ebiten.CursorPosition()

	eo.bufferMutex.Lock()
	defer eo.bufferMutex.Unlock()
	eo.input = InputState{
		Start:        ebiten.IsKeyPressed(ebiten.Key1),
		Coin:         ebiten.IsKeyPressed(ebiten.Key5),
		Service:      ebiten.IsKeyPressed(ebiten.Key9),
		Test:         ebiten.IsKeyPressed(ebiten.KeyF2),
		Left:         ebiten.IsKeyPressed(ebiten.KeyArrowLeft),
		Right:        ebiten.IsKeyPressed(ebiten.KeyArrowRight),
		PointerX:     x,
		PointerWidth: eo.config.Width,
	}
}

func (eo *EbitenOutput) Draw(screen *ebiten.Image) {
	eo.bufferMutex.Lock()
	if eo.window == nil {
		eo.window = ebiten.NewImage(eo.config.Width, eo.config.Height)
	}
	eo.window.WritePixels(eo.frameBuffer)
	status := eo.status
	width, height := eo.config.Width, eo.config.Height
	eo.bufferMutex.Unlock()

	screen.DrawImage(eo.window, nil)
	if status != "" {
		drawStatus(screen, status, width, height)
	}

	atomic.AddUint64(&eo.frameCount, 1)
	select {
	case eo.vsyncChan <- struct{}{}:
	default:
	}
}

func (eo *EbitenOutput) Layout(_, _ int) (int, int) {
	eo.bufferMutex.RLock()
	defer eo.bufferMutex.RUnlock()
	return eo.config.Width, eo.config.Height
}

func drawStatus(screen *ebiten.Image, status string, width, height int) {
	face := basicfont.Face7x13
	barHeight := 18
	if barHeight >= height {
		return
	}
	textW := text.BoundString(face, status).Dx()
	ebitenutil.DrawRect(screen, 0, 0, float64(min(textW+12, width)), float64(barHeight), color.RGBA{0, 0, 0, 180})
	text.Draw(screen, status, face, 6, 13, color.RGBA{0, 220, 90, 255})
}
