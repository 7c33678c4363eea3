// video_interface.go - Video output interface for Gaelco3D

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
	"bytes"
	"fmt"
	"image"
	"image/png"
	"time"
)

// VideoError provides detailed error context for video operations
type VideoError struct {
	Operation string // What operation was being attempted
	Details   string // Additional error context
	Err       error  // Underlying error if any
}

func (e *VideoError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("video %s failed: %s: %v", e.Operation, e.Details, e.Err)
	}
	return fmt.Sprintf("video %s failed: %s", e.Operation, e.Details)
}

func (e *VideoError) Unwrap() error { return e.Err }

// FrameSnapshot is a copy of the last presented frame
type FrameSnapshot struct {
	Buffer    []byte // RGBA pixels
	Width     int
	Height    int
	Timestamp time.Time
}

// DisplayConfig contains hardware-independent configuration
type DisplayConfig struct {
	Width      int
	Height     int
	Scale      int // Integer window scaling factor
	Fullscreen bool
	VSync      bool
}

// ShellCommand is a set of hotkey requests collected by the video backend
// between two calls to TakeCommands.
type ShellCommand uint32

const (
	SHELL_PAUSE      ShellCommand = 1 << iota // P
	SHELL_SCREENSHOT                          // F9
	SHELL_THROTTLE                            // F10
	SHELL_FPS                                 // F11
	SHELL_QUIT                                // ESC
)

func (c ShellCommand) Has(cmd ShellCommand) bool { return c&cmd != 0 }

// VideoOutput presents finished frames and reports host input.
type VideoOutput interface {
	// Lifecycle management
	Start() error
	Stop() error
	Close() error
	IsStarted() bool
	Done() <-chan struct{}

	SetDisplayConfig(config DisplayConfig) error
	GetDisplayConfig() DisplayConfig
	UpdateFrame(buffer []byte) error // Takes raw RGBA pixels only
	GetSnapshot() FrameSnapshot
	GetFrameCount() uint64

	// Input sampled on the display thread
	Input() InputState
	TakeCommands() ShellCommand

	// Overlay text drawn over the frame, empty hides it
	SetStatus(status string)

	// Screenshot hands a PNG image of the current frame to the host
	Screenshot() error
}

// encodeFramePNG encodes an RGBA frame as PNG.
func encodeFramePNG(frame []byte, width, height int) ([]byte, error) {
	if width <= 0 || height <= 0 || len(frame) < width*height*4 {
		return nil, &VideoError{
			Operation: "screenshot",
			Details:   fmt.Sprintf("frame of %d bytes does not hold %dx%d pixels", len(frame), width, height),
		}
	}
	img := &image.RGBA{
		Pix:    frame[:width*height*4],
		Stride: width * 4,
		Rect:   image.Rect(0, 0, width, height),
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, &VideoError{Operation: "screenshot", Details: "png encode", Err: err}
	}
	return buf.Bytes(), nil
}

// checkFrameSize validates an UpdateFrame buffer against the display size.
func checkFrameSize(buffer []byte, config DisplayConfig) error {
	if want := config.Width * config.Height * 4; len(buffer) != want {
		return &VideoError{
			Operation: "frame update",
			Details:   fmt.Sprintf("buffer is %d bytes, want %d", len(buffer), want),
		}
	}
	return nil
}
