// audio_pump.go - Audio DSP sample pump

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

/*
audio_pump.go - Audio Pump

The pump sits between the audio DSP and the sound backend. It owns a fixed
ring of interleaved 16-bit stereo samples and a running count of samples
owed. The frame scheduler raises the deficit as the main processor makes
progress; Service then resumes the DSP only when the ring is short of what
is owed or a sound command is waiting, and hands a block to the backend
once the ring holds enough.

Backpressure comes from the backend: SamplesReady reports how many samples
fit right now, and when nothing fits the samples stay in the ring. A
backend that accepts nothing, or no backend at all, leaves the ring to be
drained once it passes half full so it can never overflow.
*/

package main

import "github.com/golang/glog"

const (
	SOUND_RING_SIZE = 16384
	AUDIO_CHANNELS  = 2
)

// SoundOutput is the audio backend contract.
type SoundOutput interface {
	// SamplesReady returns how many int16 samples the device accepts now.
	SamplesReady() int
	// WriteSamples queues interleaved stereo samples.
	WriteSamples(samples []int16) error
}

// SampleTap observes every block leaving the ring.
type SampleTap func(samples []int16)

type AudioPump struct {
	ring   [SOUND_RING_SIZE]int16
	count  int
	needed int

	core   *AudioDSPCore
	output SoundOutput
	tap    SampleTap

	flushed uint64
	dropped uint64
}

func NewAudioPump(core *AudioDSPCore, output SoundOutput) *AudioPump {
	p := &AudioPump{core: core, output: output}
	core.SetSink(p)
	return p
}

// SetTap installs a recorder on the output side, nil removes it.
func (p *AudioPump) SetTap(tap SampleTap) { p.tap = tap }

// Owed implements SampleSink.
func (p *AudioPump) Owed() bool { return p.count < p.needed }

// Emit implements SampleSink.
func (p *AudioPump) Emit(left, right int16) bool {
	if p.count+AUDIO_CHANNELS > SOUND_RING_SIZE {
		p.dropped++
		return false
	}
	p.ring[p.count] = left
	p.ring[p.count+1] = right
	p.count += AUDIO_CHANNELS
	return true
}

// AddDeficit records frames stereo frames owed by main processor progress.
func (p *AudioPump) AddDeficit(frames int) {
	if frames <= 0 {
		return
	}
	p.needed = min(p.needed+frames*AUDIO_CHANNELS, SOUND_RING_SIZE)
}

// SoundWrite latches a command from the main processor and lets the DSP
// service it straight away.
func (p *AudioPump) SoundWrite(value uint16) {
	p.core.Latch(value)
	p.core.Resume(p)
}

// Service runs one pump step and returns why the DSP yielded, YieldNone
// when it was not resumed at all.
func (p *AudioPump) Service() CoreYield {
	ready := 0
	if p.output != nil {
		ready = p.output.SamplesReady()
	}
	if ready > 0 && p.needed < ready {
		p.needed = min(ready, SOUND_RING_SIZE)
	}

	if p.count >= p.needed && !p.core.InterruptPending() {
		return YieldNone
	}

	yield := p.core.Resume(p)
	if p.needed == 0 || p.count < p.needed {
		return yield
	}
	switch {
	case ready != 0:
		p.flush(ready)
	case p.count > SOUND_RING_SIZE/2:
		p.flush(0)
	}
	return yield
}

// flush hands the owed block to the backend and the tap, then shifts the
// remainder of the ring down.
func (p *AudioPump) flush(ready int) {
	block := p.ring[:p.needed]
	if p.output != nil && ready > 0 {
		if err := p.output.WriteSamples(block[:min(ready, len(block))]); err != nil {
			glog.Warningf("audio write: %v", err)
		}
	}
	if p.tap != nil {
		p.tap(block)
	}
	copy(p.ring[:], p.ring[p.needed:p.count])
	p.count -= p.needed
	p.needed = 0
	p.flushed++
}

// Silence feeds the backend zeros, used while emulation is paused.
func (p *AudioPump) Silence() {
	if p.output == nil {
		return
	}
	ready := p.output.SamplesReady()
	if ready <= 0 {
		return
	}
	if err := p.output.WriteSamples(make([]int16, ready)); err != nil {
		glog.Warningf("audio write: %v", err)
	}
}

func (p *AudioPump) Count() int      { return p.count }
func (p *AudioPump) Needed() int     { return p.needed }
func (p *AudioPump) Flushed() uint64 { return p.flushed }
func (p *AudioPump) Dropped() uint64 { return p.dropped }
