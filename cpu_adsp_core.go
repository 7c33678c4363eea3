// cpu_adsp_core.go - Audio DSP core

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
cpu_adsp_core.go - Audio DSP (ADSP-2115) High Level Emulation

The audio DSP boots from its banked sound ROM and then waits for commands
from the main processor on the sound latch. Its native microcode is not
interpreted; the core runs a small sample streaming kernel instead:

    0x00         stop streaming
    0x01-0x7F    select ROM bank n and stream it as 16-bit mono samples
    0x80-0xFF    set output volume to cmd&0x7F

Data memory below 0x2000 is a window into the sound ROM. Writing
address 0 or 1 selects the bank: bank = addr*0x80 + (value&0x7F). The
latch lives at 0x2000 and every latch write raises IRQ2.

The pump drives the kernel through Resume; Execute exists so the core can
also be run like any other CpuCore, one stereo frame per cycle.
*/

package main

import (
	"bytes"
	"encoding/binary"
	"fmt"

	"github.com/golang/glog"
)

const (
	ADSP_CLOCK         = 16000000
	ADSP_SAMPLE_RATE   = 20833
	ADSP_PROGRAM_WORDS = 0x4000
	ADSP_DATA_WORDS    = 0x4000
	ADSP_BANK_WORDS    = 0x2000
	ADSP_SOUND_LATCH   = 0x2000
	ADSP_OUT_LEFT      = 0x3800
	ADSP_OUT_RIGHT     = 0x3803
	ADSP_MAX_VOLUME    = 0x7F

	adspCmdStop      = 0x00
	adspCmdVolume    = 0x80
	adspInterrupt    = 2
	adspRegBank      = 0
	adspRegVolume    = 1
	adspRegStreaming = 2
)

// SampleSink receives stereo frames from the audio DSP.
type SampleSink interface {
	// Owed reports whether the sink still wants samples this slice.
	Owed() bool
	// Emit stores one frame, false when there is no room left.
	Emit(left, right int16) bool
}

// AudioDSPCore is the CpuCore of the audio DSP.
type AudioDSPCore struct {
	program [ADSP_PROGRAM_WORDS]uint32
	data    [ADSP_DATA_WORDS]uint16
	rom     []byte
	bank    int

	counter   CycleCounter
	irq       bool
	streaming bool
	pos       int
	volume    int
	sink      SampleSink
}

func NewAudioDSPCore(rom []byte) *AudioDSPCore {
	c := &AudioDSPCore{rom: rom}
	c.Reset()
	return c
}

func (c *AudioDSPCore) Name() string { return "ADSP2115" }

func (c *AudioDSPCore) Counter() *CycleCounter { return &c.counter }

// SetSink directs Execute output. Resume takes its sink explicitly.
func (c *AudioDSPCore) SetSink(sink SampleSink) { c.sink = sink }

// Reset boots the program page from the start of the sound ROM.
func (c *AudioDSPCore) Reset() {
	c.bank = 0
	c.irq = false
	c.streaming = false
	c.pos = 0
	c.volume = ADSP_MAX_VOLUME
	c.data = [ADSP_DATA_WORDS]uint16{}
	c.boot()
}

// boot copies the first program page. Word 3 of the ROM holds the page
// length in units of 8 instructions; each 24-bit opcode is packed into the
// low bytes of three consecutive little-endian words.
func (c *AudioDSPCore) boot() {
	if len(c.rom) < 8 {
		return
	}
	pageLen := (int(binary.LittleEndian.Uint16(c.rom[6:])) + 1) * 8
	for i := 0; i < pageLen && i < ADSP_PROGRAM_WORDS; i++ {
		off := i * 8
		if off+6 > len(c.rom) {
			break
		}
		c.program[i] = uint32(c.rom[off+4])<<16 | uint32(c.rom[off+2])<<8 | uint32(c.rom[off])
	}
	glog.V(1).Infof("ADSP boot: %d program words", pageLen)
}

// Program returns opcode n of the booted program page.
func (c *AudioDSPCore) Program(n int) uint32 {
	return c.program[n%ADSP_PROGRAM_WORDS]
}

// ReadData reads data memory, ROM window included.
func (c *AudioDSPCore) ReadData(addr int) uint16 {
	addr %= ADSP_DATA_WORDS
	if addr < ADSP_BANK_WORDS {
		off := (c.bank*ADSP_BANK_WORDS + addr) * 2
		if off+1 < len(c.rom) {
			return binary.LittleEndian.Uint16(c.rom[off:])
		}
		return 0
	}
	return c.data[addr]
}

// WriteData writes data memory. Addresses 0 and 1 select the ROM bank.
func (c *AudioDSPCore) WriteData(addr int, value uint16) {
	addr %= ADSP_DATA_WORDS
	if addr < 2 {
		c.bank = addr*0x80 + int(value&0x7F)
	}
	c.data[addr] = value
}

// Latch stores a sound command and raises the latch interrupt.
func (c *AudioDSPCore) Latch(value uint16) {
	c.data[ADSP_SOUND_LATCH] = value
	c.irq = true
}

func (c *AudioDSPCore) InterruptPending() bool { return c.irq }

// Resume runs the kernel until sink is satisfied. A pending latch is
// always serviced first, even when nothing is owed.
func (c *AudioDSPCore) Resume(sink SampleSink) CoreYield {
	produced := false
	for {
		if c.irq {
			c.serviceLatch()
			continue
		}
		if !sink.Owed() {
			break
		}
		if !sink.Emit(c.nextFrame()) {
			return YieldRingFull
		}
		produced = true
	}
	if produced {
		return YieldSamplesProduced
	}
	return YieldIdle
}

// Execute produces one frame per cycle into the sink set by SetSink.
func (c *AudioDSPCore) Execute(cycles int) int {
	c.counter.Set(cycles)
	for c.counter.Remaining() > 0 {
		if c.irq {
			c.serviceLatch()
		}
		left, right := c.nextFrame()
		if c.sink != nil {
			c.sink.Emit(left, right)
		}
		c.counter.Consume(1)
	}
	return cycles - c.counter.Remaining()
}

func (c *AudioDSPCore) serviceLatch() {
	c.irq = false
	cmd := c.data[ADSP_SOUND_LATCH] & 0xFF
	glog.V(2).Infof("ADSP command %02X", cmd)
	switch {
	case cmd == adspCmdStop:
		c.streaming = false
	case cmd&adspCmdVolume != 0:
		c.volume = int(cmd & ADSP_MAX_VOLUME)
	default:
		c.WriteData(0, cmd)
		c.pos = 0
		c.streaming = true
	}
}

func (c *AudioDSPCore) nextFrame() (int16, int16) {
	var sample int16
	if c.streaming {
		sample = int16(int(int16(c.ReadData(c.pos))) * c.volume / ADSP_MAX_VOLUME)
		c.pos++
		if c.pos >= ADSP_BANK_WORDS {
			c.streaming = false
		}
	}
	c.data[ADSP_OUT_LEFT] = uint16(sample)
	c.data[ADSP_OUT_RIGHT] = uint16(sample)
	return sample, sample
}

// Input line 2 is the latch interrupt.
func (c *AudioDSPCore) GetState(sel StateSelector) uint32 {
	switch sel {
	case SEL_PC:
		return uint32(c.pos)
	case SEL_SP:
		return 0
	}
	if line, ok := sel.IsInputLine(); ok {
		if line == adspInterrupt && c.irq {
			return 1
		}
		return 0
	}
	switch n, _ := sel.IsRegister(); n {
	case adspRegBank:
		return uint32(c.bank)
	case adspRegVolume:
		return uint32(c.volume)
	case adspRegStreaming:
		if c.streaming {
			return 1
		}
	}
	return 0
}

func (c *AudioDSPCore) SetState(sel StateSelector, value uint32) {
	if line, ok := sel.IsInputLine(); ok {
		if line == adspInterrupt {
			c.irq = value != 0
		}
		return
	}
	switch sel {
	case SEL_PC:
		c.pos = int(value)
		return
	case SEL_SP:
		return
	}
	switch n, _ := sel.IsRegister(); n {
	case adspRegBank:
		c.bank = int(value)
	case adspRegVolume:
		c.volume = int(value & ADSP_MAX_VOLUME)
	case adspRegStreaming:
		c.streaming = value != 0
	}
}

type adspContext struct {
	Bank      int32
	Pos       int32
	Volume    int32
	IRQ       bool
	Streaming bool
	Latch     uint16
}

func (c *AudioDSPCore) GetContext() ([]byte, error) {
	var buf bytes.Buffer
	ctx := adspContext{
		Bank:      int32(c.bank),
		Pos:       int32(c.pos),
		Volume:    int32(c.volume),
		IRQ:       c.irq,
		Streaming: c.streaming,
		Latch:     c.data[ADSP_SOUND_LATCH],
	}
	if err := binary.Write(&buf, binary.LittleEndian, &ctx); err != nil {
		return nil, fmt.Errorf("ADSP context: %w", err)
	}
	return buf.Bytes(), nil
}

func (c *AudioDSPCore) SetContext(data []byte) error {
	var ctx adspContext
	if err := binary.Read(bytes.NewReader(data), binary.LittleEndian, &ctx); err != nil {
		return fmt.Errorf("ADSP context: %w", err)
	}
	c.bank = int(ctx.Bank)
	c.pos = int(ctx.Pos)
	c.volume = int(ctx.Volume)
	c.irq = ctx.IRQ
	c.streaming = ctx.Streaming
	c.data[ADSP_SOUND_LATCH] = ctx.Latch
	return nil
}
