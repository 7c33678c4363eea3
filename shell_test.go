// shell_test.go - Host loop tests

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
	"context"
	"errors"
	"testing"
)

type fakeVideo struct {
	config      DisplayConfig
	done        chan struct{}
	started     bool
	commands    []ShellCommand
	frames      int
	statuses    []string
	screenshots int
	updateErr   error
}

func newFakeVideo(commands ...ShellCommand) *fakeVideo {
	return &fakeVideo{
		config:   DisplayConfig{Width: GAME_WIDTH, Height: GAME_HEIGHT, Scale: 1},
		done:     make(chan struct{}),
		commands: commands,
	}
}

func (v *fakeVideo) Start() error {
	v.started = true
	return nil
}

func (v *fakeVideo) Stop() error {
	v.started = false
	return nil
}

func (v *fakeVideo) IsStarted() bool                 { return v.started }
func (v *fakeVideo) Done() <-chan struct{}           { return v.done }
func (v *fakeVideo) GetDisplayConfig() DisplayConfig { return v.config }
func (v *fakeVideo) GetSnapshot() FrameSnapshot      { return FrameSnapshot{} }
func (v *fakeVideo) GetFrameCount() uint64           { return uint64(v.frames) }
func (v *fakeVideo) Input() InputState               { return InputState{} }

func (v *fakeVideo) SetDisplayConfig(c DisplayConfig) error {
	v.config = c
	return nil
}

func (v *fakeVideo) Close() error {
	close(v.done)
	return v.Stop()
}

func (v *fakeVideo) TakeCommands() ShellCommand {
	if len(v.commands) == 0 {
		return 0
	}
	cmd := v.commands[0]
	v.commands = v.commands[1:]
	return cmd
}

func (v *fakeVideo) UpdateFrame(buffer []byte) error {
	if v.updateErr != nil {
		return v.updateErr
	}
	v.frames++
	return nil
}

func (v *fakeVideo) SetStatus(status string) { v.statuses = append(v.statuses, status) }

func (v *fakeVideo) Screenshot() error {
	v.screenshots++
	return errors.New("no clipboard")
}

type fakeFrameSource struct{}

func (fakeFrameSource) GetFrame() []byte { return nil }

func newTestShell(t *testing.T, video *fakeVideo, frames int) *shell {
	t.Helper()
	m, _, _ := newTestMachine(t)
	throttle, _ := newTestThrottle(GAME_FPS)
	return &shell{
		machine:  m,
		video:    video,
		renderer: fakeFrameSource{},
		throttle: throttle,
		frames:   frames,
	}
}

func TestShell_RunsFrameLimit(t *testing.T) {
	video := newFakeVideo()
	sh := newTestShell(t, video, 3)
	if err := sh.loop(context.Background()); err != nil {
		t.Fatalf("loop: %v", err)
	}
	if video.frames != 3 || sh.machine.Frame() != 3 {
		t.Fatalf("presented %d frames, machine ran %d", video.frames, sh.machine.Frame())
	}
}

func TestShell_Quit(t *testing.T) {
	video := newFakeVideo(0, SHELL_QUIT)
	sh := newTestShell(t, video, 0)
	if err := sh.loop(context.Background()); err != nil {
		t.Fatalf("loop: %v", err)
	}
	if sh.machine.Frame() != 1 {
		t.Fatalf("ran %d frames before quitting, want 1", sh.machine.Frame())
	}
}

func TestShell_PauseHoldsMachine(t *testing.T) {
	video := newFakeVideo(SHELL_PAUSE, 0, 0, SHELL_QUIT)
	sh := newTestShell(t, video, 0)
	if err := sh.loop(context.Background()); err != nil {
		t.Fatalf("loop: %v", err)
	}
	if sh.machine.Frame() != 0 {
		t.Fatalf("machine ran %d frames while paused", sh.machine.Frame())
	}
	if len(video.statuses) == 0 || video.statuses[0] != "PAUSED" {
		t.Fatalf("statuses = %q", video.statuses)
	}
}

func TestShell_Hotkeys(t *testing.T) {
	video := newFakeVideo()
	sh := newTestShell(t, video, 0)

	if sh.handleCommands(SHELL_FPS | SHELL_THROTTLE | SHELL_SCREENSHOT) {
		t.Fatal("hotkeys reported quit")
	}
	if !sh.showFPS || sh.throttle.Enabled() || video.screenshots != 1 {
		t.Fatalf("showFPS=%v throttle=%v screenshots=%d", sh.showFPS, sh.throttle.Enabled(), video.screenshots)
	}
	if got := video.statuses[len(video.statuses)-1]; got != "0.0 fps" {
		t.Fatalf("status = %q", got)
	}

	sh.handleCommands(SHELL_PAUSE)
	if sh.status() != "PAUSED" {
		t.Fatalf("status = %q while paused", sh.status())
	}
	sh.handleCommands(SHELL_PAUSE | SHELL_FPS)
	if sh.status() != "" {
		t.Fatalf("status = %q with overlay off", sh.status())
	}
}

func TestShell_StopsOnContextAndClose(t *testing.T) {
	video := newFakeVideo()
	sh := newTestShell(t, video, 0)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := sh.loop(ctx); err != nil || sh.machine.Frame() != 0 {
		t.Fatalf("canceled loop: err=%v frames=%d", err, sh.machine.Frame())
	}

	video.Close()
	if err := sh.loop(context.Background()); err != nil || sh.machine.Frame() != 0 {
		t.Fatalf("closed loop: err=%v frames=%d", err, sh.machine.Frame())
	}
}

func TestShell_FrameErrors(t *testing.T) {
	video := newFakeVideo()
	video.updateErr = errors.New("display gone")
	sh := newTestShell(t, video, 0)
	if err := sh.loop(context.Background()); !errors.Is(err, video.updateErr) {
		t.Fatalf("loop error = %v", err)
	}

	video.updateErr = nil
	script, err := NewLuaScriptString(`function on_frame() error("boom") end`, sh.machine)
	if err != nil {
		t.Fatalf("NewLuaScriptString: %v", err)
	}
	defer script.Close()
	sh.script = script
	if err := sh.loop(context.Background()); err == nil {
		t.Fatal("script error not reported")
	}
}
