//go:build headless

// video_backend_headless.go - Headless video backend for Gaelco3D

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
	"sync"
	"sync/atomic"
	"time"
)

// HeadlessVideoOutput keeps the last frame in memory and never reports
// input.
type HeadlessVideoOutput struct {
	mutex      sync.RWMutex
	started    bool
	config     DisplayConfig
	frame      []byte
	frameCount uint64
	status     string
	done       chan struct{}
	doneOnce   sync.Once
}

func NewEbitenOutput() (VideoOutput, error) {
	return &HeadlessVideoOutput{
		config: DisplayConfig{Width: GAME_WIDTH, Height: GAME_HEIGHT, Scale: 1},
		frame:  make([]byte, GAME_WIDTH*GAME_HEIGHT*4),
		done:   make(chan struct{}),
	}, nil
}

func (h *HeadlessVideoOutput) Start() error {
	h.mutex.Lock()
	h.started = true
	h.mutex.Unlock()
	return nil
}

func (h *HeadlessVideoOutput) Stop() error {
	h.mutex.Lock()
	h.started = false
	h.mutex.Unlock()
	return nil
}

func (h *HeadlessVideoOutput) Close() error {
	h.doneOnce.Do(func() { close(h.done) })
	return h.Stop()
}

func (h *HeadlessVideoOutput) IsStarted() bool {
	h.mutex.RLock()
	defer h.mutex.RUnlock()
	return h.started
}

func (h *HeadlessVideoOutput) Done() <-chan struct{} { return h.done }

func (h *HeadlessVideoOutput) SetDisplayConfig(config DisplayConfig) error {
	h.mutex.Lock()
	defer h.mutex.Unlock()
	if config.Width != h.config.Width || config.Height != h.config.Height {
		h.frame = make([]byte, config.Width*config.Height*4)
	}
	h.config = config
	return nil
}

func (h *HeadlessVideoOutput) GetDisplayConfig() DisplayConfig {
	h.mutex.RLock()
	defer h.mutex.RUnlock()
	return h.config
}

func (h *HeadlessVideoOutput) UpdateFrame(buffer []byte) error {
	h.mutex.Lock()
	defer h.mutex.Unlock()
	if err := checkFrameSize(buffer, h.config); err != nil {
		return err
	}
	copy(h.frame, buffer)
	atomic.AddUint64(&h.frameCount, 1)
	return nil
}

func (h *HeadlessVideoOutput) GetSnapshot() FrameSnapshot {
	h.mutex.RLock()
	defer h.mutex.RUnlock()
	buf := make([]byte, len(h.frame))
	copy(buf, h.frame)
	return FrameSnapshot{Buffer: buf, Width: h.config.Width, Height: h.config.Height, Timestamp: time.Now()}
}

func (h *HeadlessVideoOutput) GetFrameCount() uint64 {
	return atomic.LoadUint64(&h.frameCount)
}

func (h *HeadlessVideoOutput) Input() InputState          { return InputState{} }
func (h *HeadlessVideoOutput) TakeCommands() ShellCommand { return 0 }

func (h *HeadlessVideoOutput) SetStatus(status string) {
	h.mutex.Lock()
	h.status = status
	h.mutex.Unlock()
}

func (h *HeadlessVideoOutput) Screenshot() error {
	return &VideoError{Operation: "screenshot", Details: "no clipboard in headless build"}
}
