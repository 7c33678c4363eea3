// cpu_core.go - Generic CPU core contract and slice runner

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
cpu_core.go - Generic CPU Core Contract

Every processor on the board (main 68000, geometry DSP, audio DSP) sits behind
the CpuCore interface so the frame scheduler can drive them uniformly:

    Reset()                  hardware reset
    Execute(cycles) int      run for a budget, return cycles consumed
    GetState/SetState        PC, SP, interrupt input lines, core registers
    GetContext/SetContext    opaque serializable register snapshot
    Counter()                live remaining-cycle counter

The remaining-cycle counter is shared between the core and the runner. A
core decrements it as instructions complete and stops once it reaches zero
or below, so an instruction that straddles the end of a slice leaves the
counter negative and the overrun is reported as consumed.

CoreRunner tracks the core that is executing right now. Abort() forces that
core's counter to ABORT_SENTINEL so Execute returns at the next instruction
boundary, and remembers how many cycles were cut off ("fudge") so the
caller only sees the cycles that really ran.
*/

package main

import "fmt"

// ABORT_SENTINEL is the counter value a core sees after an abort.
const ABORT_SENTINEL = -1

// StateSelector addresses one slot of a core's state space.
type StateSelector int

const (
	SEL_PC StateSelector = iota
	SEL_SP
	SEL_INPUT_LINE_BASE
	SEL_REGISTER_BASE StateSelector = SEL_INPUT_LINE_BASE + MAX_INPUT_LINES
)

// MAX_INPUT_LINES is the number of interrupt input line slots per core.
const MAX_INPUT_LINES = 8

// InputLine returns the selector for interrupt input line n.
func InputLine(n int) StateSelector {
	return SEL_INPUT_LINE_BASE + StateSelector(n)
}

// Register returns the selector for core specific register n.
func Register(n int) StateSelector {
	return SEL_REGISTER_BASE + StateSelector(n)
}

// IsInputLine reports whether sel addresses an input line and which one.
func (sel StateSelector) IsInputLine() (int, bool) {
	if sel >= SEL_INPUT_LINE_BASE && sel < SEL_REGISTER_BASE {
		return int(sel - SEL_INPUT_LINE_BASE), true
	}
	return 0, false
}

// IsRegister reports whether sel addresses a core register and which one.
func (sel StateSelector) IsRegister() (int, bool) {
	if sel >= SEL_REGISTER_BASE {
		return int(sel - SEL_REGISTER_BASE), true
	}
	return 0, false
}

func (sel StateSelector) String() string {
	switch sel {
	case SEL_PC:
		return "PC"
	case SEL_SP:
		return "SP"
	}
	if n, ok := sel.IsInputLine(); ok {
		return fmt.Sprintf("IRQ%d", n)
	}
	n, _ := sel.IsRegister()
	return fmt.Sprintf("R%d", n)
}

// CycleCounter is the live remaining-cycle count of one core.
type CycleCounter struct {
	remaining int
}

func (c *CycleCounter) Remaining() int { return c.remaining }
func (c *CycleCounter) Set(n int)      { c.remaining = n }
func (c *CycleCounter) Consume(n int)  { c.remaining -= n }

// CpuCore is implemented once per processor family.
type CpuCore interface {
	Name() string
	Reset()
	Execute(cycles int) int
	GetState(sel StateSelector) uint32
	SetState(sel StateSelector, value uint32)
	GetContext() ([]byte, error)
	SetContext(ctx []byte) error
	Counter() *CycleCounter
}

// CoreRunner executes slices and handles early-exit accounting.
type CoreRunner struct {
	executing CpuCore
	fudge     int
	aborts    uint64
}

// Execute runs core for cycles and returns the cycles actually consumed,
// net of anything cut off by Abort.
func (r *CoreRunner) Execute(core CpuCore, cycles int) int {
	r.fudge = 0
	r.executing = core
	result := core.Execute(cycles)
	r.executing = nil
	return result - r.fudge
}

// Abort forces the executing core to return at its next instruction
// boundary. Outside of Execute it does nothing.
func (r *CoreRunner) Abort() {
	if r.executing == nil {
		return
	}
	counter := r.executing.Counter()
	r.fudge += counter.Remaining() + 1
	counter.Set(ABORT_SENTINEL)
	r.aborts++
}

// Executing returns the core inside Execute, or nil.
func (r *CoreRunner) Executing() CpuCore {
	return r.executing
}

// Aborts returns how many slices have been cut short.
func (r *CoreRunner) Aborts() uint64 {
	return r.aborts
}

// CoreYield is the reason a resumable core handed control back.
type CoreYield int

const (
	YieldNone CoreYield = iota
	YieldNoInterrupt
	YieldListDone
	YieldSamplesProduced
	YieldIdle
	YieldRingFull
)

func (y CoreYield) String() string {
	switch y {
	case YieldNone:
		return "none"
	case YieldNoInterrupt:
		return "no interrupt pending"
	case YieldListDone:
		return "display list done"
	case YieldSamplesProduced:
		return "samples produced"
	case YieldIdle:
		return "idle"
	case YieldRingFull:
		return "sample ring full"
	}
	return fmt.Sprintf("yield(%d)", int(y))
}
