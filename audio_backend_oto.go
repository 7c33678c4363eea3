//go:build !headless

// audio_backend_oto.go - Oto audio backend for Gaelco3D

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
	"encoding/binary"
	"sync"
	"time"

	"github.com/ebitengine/oto/v3"
	"github.com/golang/glog"
)

const (
	AUDIO_BLOCK_SAMPLES  = 4096
	AUDIO_BUFFER_SAMPLES = AUDIO_BLOCK_SAMPLES * 2
)

// OtoSoundOutput implements SoundOutput on an oto player. Samples written
// by the pump wait in a ring until the player pulls them.
type OtoSoundOutput struct {
	ctx    *oto.Context
	player *oto.Player

	mutex     sync.Mutex // guards the ring; Read runs on oto's goroutine
	ring      [AUDIO_BUFFER_SAMPLES]int16
	head      int
	count     int
	underruns uint64
	started   bool
}

func NewOtoSoundOutput(sampleRate int) (*OtoSoundOutput, error) {
	op := &oto.NewContextOptions{
		SampleRate:   sampleRate,
		ChannelCount: AUDIO_CHANNELS,
		Format:       oto.FormatSignedInt16LE,
		BufferSize:   50 * time.Millisecond,
	}

	ctx, ready, err := oto.NewContext(op)
	if err != nil {
		return nil, err
	}
	<-ready

	so := &OtoSoundOutput{ctx: ctx}
	so.player = ctx.NewPlayer(so)
	glog.Infof("audio: oto %d Hz stereo", sampleRate)
	return so, nil
}

// SamplesReady offers the free space once the buffered audio has fallen
// to one block or less.
func (so *OtoSoundOutput) SamplesReady() int {
	so.mutex.Lock()
	defer so.mutex.Unlock()
	if so.count > AUDIO_BLOCK_SAMPLES {
		return 0
	}
	return (AUDIO_BUFFER_SAMPLES - so.count) &^ 1
}

// WriteSamples queues as many samples as fit; the rest are dropped.
func (so *OtoSoundOutput) WriteSamples(samples []int16) error {
	so.mutex.Lock()
	defer so.mutex.Unlock()
	for _, s := range samples {
		if so.count == AUDIO_BUFFER_SAMPLES {
			break
		}
		so.ring[(so.head+so.count)%AUDIO_BUFFER_SAMPLES] = s
		so.count++
	}
	return nil
}

// Read implements io.Reader for the oto player. An underrun plays silence.
func (so *OtoSoundOutput) Read(p []byte) (n int, err error) {
	so.mutex.Lock()
	defer so.mutex.Unlock()

	n = len(p) &^ 1
	for i := 0; i < n; i += 2 {
		var s int16
		if so.count > 0 {
			s = so.ring[so.head]
			so.head = (so.head + 1) % AUDIO_BUFFER_SAMPLES
			so.count--
		} else {
			so.underruns++
		}
		binary.LittleEndian.PutUint16(p[i:], uint16(s))
	}
	return n, nil
}

func (so *OtoSoundOutput) Start() {
	so.mutex.Lock()
	defer so.mutex.Unlock()
	if !so.started && so.player != nil {
		so.player.Play()
		so.started = true
	}
}

func (so *OtoSoundOutput) Stop() {
	so.mutex.Lock()
	defer so.mutex.Unlock()
	if so.started && so.player != nil {
		so.player.Pause()
		so.started = false
	}
}

func (so *OtoSoundOutput) Close() {
	so.Stop()
	so.mutex.Lock()
	defer so.mutex.Unlock()
	if so.player != nil {
		if err := so.player.Close(); err != nil {
			glog.Warningf("audio: close player: %v", err)
		}
		so.player = nil
	}
}

func (so *OtoSoundOutput) IsStarted() bool {
	so.mutex.Lock()
	defer so.mutex.Unlock()
	return so.started
}

func (so *OtoSoundOutput) Underruns() uint64 {
	so.mutex.Lock()
	defer so.mutex.Unlock()
	return so.underruns
}
