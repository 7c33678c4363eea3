// throttle.go - Wall-clock frame pacing and FPS measurement

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

import "time"

const (
	// Falling further behind than this gives up on catching up.
	THROTTLE_MAX_LAG_FRAMES = 4
	FPS_SAMPLE_FRAMES       = 60
)

// FrameThrottle paces frames against the wall clock. Targets are computed
// from a base time so sleep error does not accumulate; running slow by
// more than THROTTLE_MAX_LAG_FRAMES moves the base to now.
type FrameThrottle struct {
	period  time.Duration
	enabled bool
	base    time.Time
	frames  int64
	rebases uint64

	fpsStart  time.Time
	fpsFrames int
	fps       float64

	now   func() time.Time
	sleep func(time.Duration)
}

func NewFrameThrottle(fps int) *FrameThrottle {
	t := &FrameThrottle{
		period:  time.Second / time.Duration(fps),
		enabled: true,
		now:     time.Now,
		sleep:   time.Sleep,
	}
	t.rebase()
	t.fpsStart = t.base
	return t
}

func (t *FrameThrottle) rebase() {
	t.base = t.now()
	t.frames = 0
}

func (t *FrameThrottle) Enabled() bool { return t.enabled }

func (t *FrameThrottle) SetEnabled(enabled bool) {
	if enabled && !t.enabled {
		t.rebase()
	}
	t.enabled = enabled
}

func (t *FrameThrottle) Toggle() bool {
	t.SetEnabled(!t.enabled)
	return t.enabled
}

// Pause forgets the pacing history, for use after the loop stalled on
// purpose.
func (t *FrameThrottle) Pause() {
	t.rebase()
	t.fpsStart = t.base
	t.fpsFrames = 0
}

// Wait accounts one finished frame and sleeps until it is due. It reports
// true when a new FPS sample was taken.
func (t *FrameThrottle) Wait() bool {
	t.frames++
	if t.enabled {
		target := t.base.Add(time.Duration(t.frames) * t.period)
		now := t.now()
		switch {
		case now.Before(target):
			t.sleep(target.Sub(now))
		case now.Sub(target) > THROTTLE_MAX_LAG_FRAMES*t.period:
			t.rebase()
			t.rebases++
		}
	}

	t.fpsFrames++
	if t.fpsFrames < FPS_SAMPLE_FRAMES {
		return false
	}
	now := t.now()
	if elapsed := now.Sub(t.fpsStart); elapsed > 0 {
		t.fps = float64(t.fpsFrames) / elapsed.Seconds()
	}
	t.fpsStart = now
	t.fpsFrames = 0
	return true
}

func (t *FrameThrottle) FPS() float64    { return t.fps }
func (t *FrameThrottle) Rebases() uint64 { return t.rebases }
