// audio_wav_recorder.go - WAV capture of the sound output

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
	"os"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
	"github.com/golang/glog"
)

const wavPCMFormat = 1

// WavRecorder streams every block the audio pump flushes into a 16-bit
// stereo PCM file. Install Tap with AudioPump.SetTap.
type WavRecorder struct {
	filename string
	file     *os.File
	enc      *wav.Encoder
	buf      *audio.IntBuffer
	frames   uint64
	err      error
}

func NewWavRecorder(filename string, sampleRate int) (*WavRecorder, error) {
	f, err := os.Create(filename)
	if err != nil {
		return nil, fmt.Errorf("wav recorder: %w", err)
	}
	rec := &WavRecorder{
		filename: filename,
		file:     f,
		enc:      wav.NewEncoder(f, sampleRate, 16, AUDIO_CHANNELS, wavPCMFormat),
		buf: &audio.IntBuffer{
			Format:         &audio.Format{NumChannels: AUDIO_CHANNELS, SampleRate: sampleRate},
			SourceBitDepth: 16,
		},
	}
	glog.Infof("wav recorder: writing audio to %s", filename)
	return rec, nil
}

// Tap is a SampleTap. The first write error stops recording and is
// reported by Close.
func (rec *WavRecorder) Tap(samples []int16) {
	if rec.err != nil || len(samples) == 0 {
		return
	}
	data := rec.buf.Data[:0]
	for _, s := range samples {
		data = append(data, int(s))
	}
	rec.buf.Data = data
	if err := rec.enc.Write(rec.buf); err != nil {
		rec.err = err
		glog.Warningf("wav recorder: %v", err)
		return
	}
	rec.frames += uint64(len(samples) / AUDIO_CHANNELS)
}

func (rec *WavRecorder) Frames() uint64 { return rec.frames }

// Close finalizes the header and closes the file.
func (rec *WavRecorder) Close() (rerr error) {
	defer func() {
		if err := rec.file.Close(); err != nil && rerr == nil {
			rerr = fmt.Errorf("wav recorder: %w", err)
		}
	}()
	if err := rec.enc.Close(); err != nil {
		return fmt.Errorf("wav recorder: %w", err)
	}
	if rec.err != nil {
		return fmt.Errorf("wav recorder: %w", rec.err)
	}
	glog.Infof("wav recorder: %d frames in %s", rec.frames, rec.filename)
	return nil
}
