// cpu_m68k_core.go - Main processor core

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
	"encoding/binary"
	"fmt"

	m68k "github.com/user-none/go-chip-m68k"
)

// M68KCore adapts the MC68000 interpreter to the CpuCore contract. The
// interpreter steps whole instructions; Execute keeps stepping while the
// shared counter is positive, so an abort from a bus write takes effect at
// the next instruction boundary.
type M68KCore struct {
	cpu     *m68k.CPU
	bus     *MainBus
	counter CycleCounter
	lines   [MAX_INPUT_LINES]bool
}

// NewM68KCore builds the core and performs a hardware reset, which reads
// the initial SSP and PC from the vector table on bus.
func NewM68KCore(bus *MainBus) *M68KCore {
	return &M68KCore{
		cpu: m68k.New(bus),
		bus: bus,
	}
}

func (c *M68KCore) Name() string { return "68000" }

func (c *M68KCore) Reset() {
	c.cpu.Reset()
	c.lines = [MAX_INPUT_LINES]bool{}
}

func (c *M68KCore) Counter() *CycleCounter { return &c.counter }

// Execute runs for cycles. A double bus fault halts the interpreter, in
// which case the rest of the slice is idle time.
func (c *M68KCore) Execute(cycles int) int {
	c.counter.Set(cycles)
	for c.counter.Remaining() > 0 {
		c.sampleLines()
		n := c.cpu.Step()
		if n == 0 {
			c.counter.Set(0)
			break
		}
		c.counter.Consume(n)
	}
	return cycles - c.counter.Remaining()
}

// Registers 0-7 are D0-D7, 8-15 are A0-A7, 16 is SR.
func (c *M68KCore) GetState(sel StateSelector) uint32 {
	regs := c.cpu.Registers()
	switch sel {
	case SEL_PC:
		return regs.PC
	case SEL_SP:
		return regs.A[7]
	}
	if line, ok := sel.IsInputLine(); ok {
		if c.lines[line] {
			return 1
		}
		return 0
	}
	n, _ := sel.IsRegister()
	switch {
	case n < 8:
		return regs.D[n]
	case n < 16:
		return regs.A[n-8]
	case n == 16:
		return uint32(regs.SR)
	}
	return 0
}

// SetState on an input line sets its level. Lines 1-6 are level
// triggered and sampled before every instruction, so a line held through a
// masked period or across its own handler is taken once the mask allows.
// Level 7 is edge triggered.
func (c *M68KCore) SetState(sel StateSelector, value uint32) {
	if line, ok := sel.IsInputLine(); ok {
		asserted := value != 0
		if asserted && !c.lines[line] && line == m68kNMILevel {
			c.cpu.RequestInterrupt(m68kNMILevel, nil)
		}
		c.lines[line] = asserted
		return
	}

	regs := c.cpu.Registers()
	switch sel {
	case SEL_PC:
		regs.PC = value
	case SEL_SP:
		regs.A[7] = value
		if regs.SR&0x2000 != 0 {
			regs.SSP = value
		} else {
			regs.USP = value
		}
	default:
		n, _ := sel.IsRegister()
		switch {
		case n < 8:
			regs.D[n] = value
		case n < 16:
			regs.A[n-8] = value
		case n == 16:
			regs.SR = uint16(value)
		default:
			return
		}
	}
	c.cpu.SetState(regs)
}

const m68kNMILevel = 7

// sampleLines requests the highest asserted level below 7 if the status
// register mask lets it through. The request is taken by the Step that
// follows, so none is left pending once the line drops.
func (c *M68KCore) sampleLines() {
	mask := int(c.cpu.Registers().SR>>8) & 7
	for level := m68kNMILevel - 1; level > mask; level-- {
		if c.lines[level] {
			c.cpu.RequestInterrupt(uint8(level), nil)
			return
		}
	}
}

type m68kContext struct {
	Regs  m68k.Registers
	Lines [MAX_INPUT_LINES]bool
}

func (c *M68KCore) GetContext() ([]byte, error) {
	var buf bytes.Buffer
	ctx := m68kContext{Regs: c.cpu.Registers(), Lines: c.lines}
	if err := binary.Write(&buf, binary.BigEndian, &ctx); err != nil {
		return nil, fmt.Errorf("68000 context: %w", err)
	}
	return buf.Bytes(), nil
}

func (c *M68KCore) SetContext(data []byte) error {
	var ctx m68kContext
	if err := binary.Read(bytes.NewReader(data), binary.BigEndian, &ctx); err != nil {
		return fmt.Errorf("68000 context: %w", err)
	}
	c.cpu.SetState(ctx.Regs)
	c.lines = ctx.Lines
	return nil
}

// Cycles returns the interpreter's own cycle count since reset.
func (c *M68KCore) Cycles() uint64 {
	return c.cpu.Cycles()
}
