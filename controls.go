// controls.go - Player inputs and analog steering port

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
	"strings"
)

// ControllerMode selects how the analog steering value is driven.
type ControllerMode uint32

const (
	CONTROL_KEYBOARD ControllerMode = iota
	CONTROL_MOUSE
)

const (
	ANALOG_CENTER = 0x80
	ANALOG_MIN    = 0x10
	ANALOG_MAX    = 0xF0
	ANALOG_STEP   = 3
	ANALOG_RANGE  = 0xE0

	portStartBit   = 0x80
	portCoinBit    = 0x01
	portServiceBit = 0x04
	portTestBit    = 0x08
	portAnalogBit  = 0x10
)

func (m ControllerMode) String() string {
	switch m {
	case CONTROL_KEYBOARD:
		return "keyboard"
	case CONTROL_MOUSE:
		return "mouse"
	}
	return fmt.Sprintf("controller(%d)", uint32(m))
}

// ParseControllerMode accepts the names printed by String.
func ParseControllerMode(name string) (ControllerMode, error) {
	switch strings.ToLower(name) {
	case "keyboard":
		return CONTROL_KEYBOARD, nil
	case "mouse":
		return CONTROL_MOUSE, nil
	}
	return 0, fmt.Errorf("unknown controller %q", name)
}

// InputState is the host input sampled once per frame.
type InputState struct {
	Start   bool
	Coin    bool
	Service bool
	Test    bool
	Left    bool
	Right   bool

	// Pointer position within a window PointerWidth pixels wide.
	PointerX     int
	PointerWidth int
}

// Controls maps host input onto the input port bytes and the serial
// analog port.
type Controls struct {
	bus     *MainBus
	mode    ControllerMode
	analog  int
	latched uint8
}

func NewControls(bus *MainBus, mode ControllerMode) *Controls {
	return &Controls{bus: bus, mode: mode, analog: ANALOG_CENTER}
}

func (c *Controls) Mode() ControllerMode        { return c.mode }
func (c *Controls) SetMode(mode ControllerMode) { c.mode = mode }
func (c *Controls) Analog() int                 { return c.analog }

// SetAnalog overrides the steering value, clamped to the valid range.
func (c *Controls) SetAnalog(value int) {
	c.analog = min(max(value, ANALOG_MIN), ANALOG_MAX)
}

// Update rewrites the input ports from in. Inputs are active low; the
// analog data bit of port 2 is preserved.
func (c *Controls) Update(in InputState) {
	port0 := uint8(0xFF)
	port1 := uint8(0xFF)
	port2 := 0xEF | c.bus.Peek8(REG_INPUT_PORT_2)&portAnalogBit

	if in.Start {
		port0 ^= portStartBit
	}
	if in.Coin {
		port2 ^= portCoinBit
	}
	if in.Service {
		port2 ^= portServiceBit
	}
	if in.Test {
		port2 ^= portTestBit
	}
	c.bus.Poke8(REG_INPUT_PORT_0, port0)
	c.bus.Poke8(REG_INPUT_PORT_1, port1)
	c.bus.Poke8(REG_INPUT_PORT_2, port2)

	switch c.mode {
	case CONTROL_KEYBOARD:
		switch {
		case in.Left:
			c.analog -= ANALOG_STEP
		case in.Right:
			c.analog += ANALOG_STEP
		case c.analog > ANALOG_CENTER:
			c.analog = max(c.analog-ANALOG_STEP, ANALOG_CENTER)
		default:
			c.analog = min(c.analog+ANALOG_STEP, ANALOG_CENTER)
		}
	case CONTROL_MOUSE:
		if in.PointerWidth > 0 {
			mid := in.PointerWidth / 2
			c.analog = ANALOG_CENTER + (in.PointerX-mid)*ANALOG_RANGE/in.PointerWidth
		}
	}
	c.SetAnalog(c.analog)
}

// LatchAnalog captures the steering value into the shift register.
func (c *Controls) LatchAnalog() {
	c.latched = uint8(c.analog)
	c.publish()
}

// ClockAnalog shifts the next bit out, most significant first.
func (c *Controls) ClockAnalog() {
	c.latched <<= 1
	c.publish()
}

func (c *Controls) publish() {
	port2 := c.bus.Peek8(REG_INPUT_PORT_2)&^portAnalogBit | (c.latched>>7&1)<<4
	c.bus.Poke8(REG_INPUT_PORT_2, port2)
}
