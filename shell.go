// shell.go - Frame loop and hotkey handling

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
	"fmt"

	"github.com/golang/glog"
)

// FrameSource supplies the RGBA frame to present.
type FrameSource interface {
	GetFrame() []byte
}

// shell drives a Machine from the host: it runs frames, presents them,
// applies hotkeys and paces the loop.
type shell struct {
	machine  *Machine
	video    VideoOutput
	renderer FrameSource
	throttle *FrameThrottle
	script   *LuaScript

	paused  bool
	showFPS bool
	frames  int // stop after this many, 0 for no limit
}

func (sh *shell) loop(ctx context.Context) error {
	for ran := 0; sh.frames == 0 || ran < sh.frames; {
		select {
		case <-ctx.Done():
			glog.Infof("interrupted")
			return nil
		case <-sh.video.Done():
			return nil
		default:
		}

		if quit := sh.handleCommands(sh.video.TakeCommands()); quit {
			return nil
		}

		if sh.paused {
			sh.machine.Pump().Silence()
			sh.throttle.Wait()
			continue
		}

		if err := sh.step(); err != nil {
			return err
		}
		ran++
		if sh.throttle.Wait() {
			sh.updateStatus()
		}
	}
	return nil
}

func (sh *shell) step() error {
	stats, err := sh.machine.RunFrame(sh.video.Input())
	if err != nil {
		return fmt.Errorf("frame %d: %w", sh.machine.Frame(), err)
	}
	if glog.V(3) {
		glog.Infof("frame %d: main=%d geometry=%d slices=%d sync=%d",
			sh.machine.Frame(), stats.MainCycles, stats.GeometryCycles, stats.Slices, stats.SyncRequests)
	}
	if err := sh.video.UpdateFrame(sh.renderer.GetFrame()); err != nil {
		return err
	}
	if sh.script != nil {
		if err := sh.script.Frame(); err != nil {
			return err
		}
	}
	return nil
}

// handleCommands applies hotkeys and reports whether to quit.
func (sh *shell) handleCommands(cmds ShellCommand) bool {
	if cmds.Has(SHELL_QUIT) {
		return true
	}
	if cmds.Has(SHELL_PAUSE) {
		sh.paused = !sh.paused
		sh.throttle.Pause()
		glog.Infof("paused: %v", sh.paused)
		sh.updateStatus()
	}
	if cmds.Has(SHELL_THROTTLE) {
		glog.Infof("throttle: %v", sh.throttle.Toggle())
	}
	if cmds.Has(SHELL_FPS) {
		sh.showFPS = !sh.showFPS
		sh.updateStatus()
	}
	if cmds.Has(SHELL_SCREENSHOT) {
		if err := sh.video.Screenshot(); err != nil {
			glog.Warningf("%v", err)
		}
	}
	return false
}

func (sh *shell) updateStatus() {
	sh.video.SetStatus(sh.status())
}

func (sh *shell) status() string {
	switch {
	case sh.paused:
		return "PAUSED"
	case sh.showFPS:
		return fmt.Sprintf("%.1f fps", sh.throttle.FPS())
	}
	return ""
}
