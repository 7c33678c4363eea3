// cpu_geometry_core.go - Geometry DSP core

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
cpu_geometry_core.go - Geometry DSP (TMS32031) High Level Emulation

The geometry DSP turns scene data prepared by the main processor into the
polygon word stream consumed by the poly assembler at the end of the frame.
Its native microcode is not interpreted; the core runs a display list
kernel written as a resumable step function:

    idle        suspend with YieldNoInterrupt until IRQ0 is raised
    command     acknowledge IRQ0, read the mailbox header
    streaming   copy one stream word per step, 4 cycles each, from the
                mailbox or from a table in geometry ROM
    done        clear the mailbox command word, back to idle

The word address space follows the board:

    0x000000-0x007FFF   shared with main work RAM (0xFE0000 + addr*2),
                        16-bit, sign extended on read
    0x400000-0x5FFFFF   geometry ROM (two 16-bit ROMs, low/high halves)
    0x800000-0x80FFFF   internal RAM
    0xC00000-0xC00007   render port, every write appends to the stream

Mailbox layout in shared RAM:

    0x3FC0  command (1 = render list, 2 = ROM list, 0 = done,
            0x5555 after reset)
    0x3FC1  number of stream words N
    0x3FC2  render list: N words, each as high half then low half
            ROM list: word offset into geometry ROM, high half then low
*/

package main

import (
	"bytes"
	"encoding/binary"
	"fmt"

	"github.com/golang/glog"
)

const (
	DSP_CLOCK        = 60000000
	DSP_SLICE_RATIO  = 4
	DSP_SHARED_WORDS = 0x8000
	DSP_ROM_BASE     = 0x400000
	DSP_ROM_WORDS    = 0x200000
	DSP_RAM_BASE     = 0x800000
	DSP_RAM_WORDS    = 0x10000
	DSP_RENDER_MASK  = 0xFFFFF8
	DSP_RENDER_BASE  = 0xC00000

	DSP_MAILBOX        = 0x3FC0
	DSP_MAILBOX_LIST   = DSP_MAILBOX + 2
	DSP_MAILBOX_WORDS  = (DSP_SHARED_WORDS - DSP_MAILBOX_LIST) / 2
	DSP_CMD_DONE       = 0x0000
	DSP_CMD_RENDER     = 0x0001
	DSP_CMD_ROM_LIST   = 0x0002
	DSP_CMD_READY      = 0x5555
	dspCommandCycles   = 16
	dspWordCycles      = 4
	dspInterruptLine   = 0
	geometryRegState   = 0
	geometryRegListLen = 1
)

type geometryState uint8

const (
	geometryIdle geometryState = iota
	geometryStreaming
)

// GeometryCore is the CpuCore of the geometry DSP.
type GeometryCore struct {
	bus    *MainBus
	stream *GeometryWordStream
	rom    []uint32
	ram    []uint32

	counter CycleCounter
	halted  bool
	irq     bool

	state   geometryState
	pos     uint32
	listLen uint32
	src     uint32
	fromROM bool
}

func NewGeometryCore(bus *MainBus, stream *GeometryWordStream) *GeometryCore {
	return &GeometryCore{
		bus:    bus,
		stream: stream,
		rom:    make([]uint32, DSP_ROM_WORDS),
		ram:    make([]uint32, DSP_RAM_WORDS),
		halted: true,
	}
}

// LoadROMs interleaves the two 16-bit geometry ROMs into 32-bit words,
// lo supplying bits 0-15 and hi bits 16-31.
func (c *GeometryCore) LoadROMs(lo, hi []byte) {
	n := min(len(lo), len(hi)) / 2
	for i := 0; i < n && i < len(c.rom); i++ {
		c.rom[i] = uint32(binary.LittleEndian.Uint16(lo[i*2:])) |
			uint32(binary.LittleEndian.Uint16(hi[i*2:]))<<16
	}
}

func (c *GeometryCore) Name() string { return "TMS32031" }

func (c *GeometryCore) Counter() *CycleCounter { return &c.counter }

// Reset returns the kernel to idle and posts the ready handshake.
func (c *GeometryCore) Reset() {
	c.state = geometryIdle
	c.pos = 0
	c.listLen = 0
	c.src = 0
	c.fromROM = false
	c.irq = false
	c.writeWord(DSP_MAILBOX, DSP_CMD_READY)
}

func (c *GeometryCore) Halted() bool { return c.halted }

// SetHalted drives the reset line. Leaving halt resets the core.
func (c *GeometryCore) SetHalted(halted bool) {
	glog.V(1).Infof("geometry DSP halted=%v", halted)
	c.halted = halted
	if !halted {
		c.Reset()
	}
}

// Execute runs the kernel for cycles. A halted core or one with nothing
// to do idles for the remainder of the slice.
func (c *GeometryCore) Execute(cycles int) int {
	c.counter.Set(cycles)
	for c.counter.Remaining() > 0 {
		if c.halted || c.step() == YieldNoInterrupt {
			c.counter.Set(0)
			break
		}
	}
	return cycles - c.counter.Remaining()
}

func (c *GeometryCore) step() CoreYield {
	switch c.state {
	case geometryIdle:
		if !c.irq {
			return YieldNoInterrupt
		}
		c.irq = false
		c.counter.Consume(dspCommandCycles)
		count := c.readWord(DSP_MAILBOX+1) & 0xFFFF
		switch c.readWord(DSP_MAILBOX) & 0xFFFF {
		case DSP_CMD_RENDER:
			c.listLen = min(count, DSP_MAILBOX_WORDS)
			c.src = DSP_MAILBOX_LIST
			c.fromROM = false
		case DSP_CMD_ROM_LIST:
			offset := c.readMailboxWord(DSP_MAILBOX_LIST) % DSP_ROM_WORDS
			c.listLen = min(count, DSP_ROM_WORDS-offset)
			c.src = DSP_ROM_BASE + offset
			c.fromROM = true
		default:
			return YieldNone
		}
		c.pos = 0
		c.state = geometryStreaming
		return YieldNone

	case geometryStreaming:
		c.counter.Consume(dspWordCycles)
		if c.pos >= c.listLen {
			c.writeWord(DSP_MAILBOX, DSP_CMD_DONE)
			c.state = geometryIdle
			return YieldListDone
		}
		var word uint32
		if c.fromROM {
			word = c.readWord(c.src + c.pos)
		} else {
			word = c.readMailboxWord(c.src + c.pos*2)
		}
		c.writeWord(DSP_RENDER_BASE, word)
		c.pos++
	}
	return YieldNone
}

// readMailboxWord joins two 16-bit shared RAM words, high half first.
func (c *GeometryCore) readMailboxWord(addr uint32) uint32 {
	return (c.readWord(addr)&0xFFFF)<<16 | c.readWord(addr+1)&0xFFFF
}

func (c *GeometryCore) sharedAddr(addr uint32) uint32 {
	return WORK_RAM_BASE + addr*2
}

func (c *GeometryCore) readWord(addr uint32) uint32 {
	addr &= 0xFFFFFF
	switch {
	case addr < DSP_SHARED_WORDS:
		return uint32(int32(int16(c.bus.load(c.sharedAddr(addr), 2))))
	case addr >= DSP_ROM_BASE && addr < DSP_ROM_BASE+DSP_ROM_WORDS:
		return c.rom[addr-DSP_ROM_BASE]
	case addr >= DSP_RAM_BASE && addr < DSP_RAM_BASE+DSP_RAM_WORDS:
		return c.ram[addr-DSP_RAM_BASE]
	}
	return 0
}

func (c *GeometryCore) writeWord(addr uint32, data uint32) {
	addr &= 0xFFFFFF
	switch {
	case addr < DSP_SHARED_WORDS:
		c.bus.store(c.sharedAddr(addr), data, 2)
	case addr >= DSP_RAM_BASE && addr < DSP_RAM_BASE+DSP_RAM_WORDS:
		c.ram[addr-DSP_RAM_BASE] = data
	case addr&DSP_RENDER_MASK == DSP_RENDER_BASE:
		c.stream.Append(data)
	default:
		glog.V(2).Infof("Write32031: %08X = %08X", addr, data)
	}
}

// Input line 0 is the interrupt from the main processor; a halted core
// ignores it.
func (c *GeometryCore) GetState(sel StateSelector) uint32 {
	switch sel {
	case SEL_PC:
		return c.pos
	case SEL_SP:
		return 0
	}
	if line, ok := sel.IsInputLine(); ok {
		if line == dspInterruptLine && c.irq {
			return 1
		}
		return 0
	}
	switch n, _ := sel.IsRegister(); n {
	case geometryRegState:
		return uint32(c.state)
	case geometryRegListLen:
		return c.listLen
	}
	return 0
}

func (c *GeometryCore) SetState(sel StateSelector, value uint32) {
	if line, ok := sel.IsInputLine(); ok {
		if line == dspInterruptLine {
			c.irq = value != 0 && !c.halted
		}
		return
	}
	switch sel {
	case SEL_PC:
		c.pos = value
	case SEL_SP:
	default:
		switch n, _ := sel.IsRegister(); n {
		case geometryRegState:
			c.state = geometryState(value)
		case geometryRegListLen:
			c.listLen = value
		}
	}
}

type geometryContext struct {
	State   uint8
	Halted  bool
	IRQ     bool
	Pos     uint32
	ListLen uint32
	Src     uint32
	FromROM bool
}

func (c *GeometryCore) GetContext() ([]byte, error) {
	var buf bytes.Buffer
	ctx := geometryContext{State: uint8(c.state), Halted: c.halted, IRQ: c.irq, Pos: c.pos, ListLen: c.listLen, Src: c.src, FromROM: c.fromROM}
	if err := binary.Write(&buf, binary.LittleEndian, &ctx); err != nil {
		return nil, fmt.Errorf("geometry context: %w", err)
	}
	return buf.Bytes(), nil
}

func (c *GeometryCore) SetContext(data []byte) error {
	var ctx geometryContext
	if err := binary.Read(bytes.NewReader(data), binary.LittleEndian, &ctx); err != nil {
		return fmt.Errorf("geometry context: %w", err)
	}
	c.state = geometryState(ctx.State)
	c.halted = ctx.Halted
	c.irq = ctx.IRQ
	c.pos = ctx.Pos
	c.listLen = ctx.ListLen
	c.src = ctx.Src
	c.fromROM = ctx.FromROM
	return nil
}
