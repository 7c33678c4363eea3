// controls_test.go - Input port and analog controller tests

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

import "testing"

func newTestControls(mode ControllerMode) (*Controls, *MainBus) {
	bus := NewMainBus()
	return NewControls(bus, mode), bus
}

func TestControls_Buttons(t *testing.T) {
	tests := []struct {
		name  string
		in    InputState
		port0 uint8
		port2 uint8
	}{
		{"idle", InputState{}, 0xFF, 0xEF},
		{"start", InputState{Start: true}, 0x7F, 0xEF},
		{"coin", InputState{Coin: true}, 0xFF, 0xEE},
		{"service", InputState{Service: true}, 0xFF, 0xEB},
		{"test", InputState{Test: true}, 0xFF, 0xE7},
		{"all", InputState{Start: true, Coin: true, Service: true, Test: true}, 0x7F, 0xE2},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			c, bus := newTestControls(CONTROL_KEYBOARD)
			c.Update(tc.in)
			if got := bus.Read8(REG_INPUT_PORT_0); got != tc.port0 {
				t.Errorf("port 0 = %02X, want %02X", got, tc.port0)
			}
			if got := bus.Read8(REG_INPUT_PORT_1); got != 0xFF {
				t.Errorf("port 1 = %02X, want FF", got)
			}
			if got := bus.Read8(REG_INPUT_PORT_2); got != tc.port2 {
				t.Errorf("port 2 = %02X, want %02X", got, tc.port2)
			}
		})
	}
}

func TestControls_KeyboardSteering(t *testing.T) {
	c, _ := newTestControls(CONTROL_KEYBOARD)

	c.Update(InputState{Left: true})
	if c.Analog() != ANALOG_CENTER-ANALOG_STEP {
		t.Fatalf("analog = %X after one left frame", c.Analog())
	}
	for range 100 {
		c.Update(InputState{Left: true})
	}
	if c.Analog() != ANALOG_MIN {
		t.Fatalf("analog = %X, want clamp at %X", c.Analog(), ANALOG_MIN)
	}

	frames := 0
	for c.Analog() != ANALOG_CENTER {
		c.Update(InputState{})
		frames++
		if frames > 100 {
			t.Fatalf("analog never returned to center, stuck at %X", c.Analog())
		}
	}
	if frames != 38 {
		t.Fatalf("returned to center in %d frames, want 38", frames)
	}

	for range 100 {
		c.Update(InputState{Right: true})
	}
	if c.Analog() != ANALOG_MAX {
		t.Fatalf("analog = %X, want clamp at %X", c.Analog(), ANALOG_MAX)
	}
}

func TestControls_MouseSteering(t *testing.T) {
	tests := []struct {
		x, width int
		want     int
	}{
		{0, GAME_WIDTH, ANALOG_MIN},
		{GAME_WIDTH / 2, GAME_WIDTH, ANALOG_CENTER},
		{GAME_WIDTH, GAME_WIDTH, ANALOG_MAX},
		{-500, GAME_WIDTH, ANALOG_MIN},
		{GAME_WIDTH * 3 / 4, GAME_WIDTH, ANALOG_CENTER + ANALOG_RANGE/4},
	}
	for _, tc := range tests {
		c, _ := newTestControls(CONTROL_MOUSE)
		c.Update(InputState{PointerX: tc.x, PointerWidth: tc.width})
		if c.Analog() != tc.want {
			t.Errorf("pointer %d/%d -> %X, want %X", tc.x, tc.width, c.Analog(), tc.want)
		}
	}

	c, _ := newTestControls(CONTROL_MOUSE)
	c.SetAnalog(0x40)
	c.Update(InputState{PointerX: 10})
	if c.Analog() != 0x40 {
		t.Fatalf("pointer without a width moved analog to %X", c.Analog())
	}
}

func TestControls_AnalogSerialPort(t *testing.T) {
	c, bus := newTestControls(CONTROL_KEYBOARD)
	c.Update(InputState{})
	c.SetAnalog(0xA5)

	var value uint8
	c.LatchAnalog()
	for i := range 8 {
		if i > 0 {
			c.ClockAnalog()
		}
		value = value<<1 | bus.Read8(REG_INPUT_PORT_2)>>4&1
	}
	if value != 0xA5 {
		t.Fatalf("shifted out %02X, want A5", value)
	}
}

func TestControls_UpdateKeepsSerialBit(t *testing.T) {
	c, bus := newTestControls(CONTROL_KEYBOARD)
	c.SetAnalog(0xF0)
	c.LatchAnalog()
	c.Update(InputState{Coin: true})
	if got := bus.Read8(REG_INPUT_PORT_2); got != 0xFE {
		t.Fatalf("port 2 = %02X, want FE", got)
	}
}

func TestParseControllerMode(t *testing.T) {
	for _, mode := range []ControllerMode{CONTROL_KEYBOARD, CONTROL_MOUSE} {
		got, err := ParseControllerMode(mode.String())
		if err != nil || got != mode {
			t.Errorf("ParseControllerMode(%q) = %v, %v", mode.String(), got, err)
		}
	}
	if got, err := ParseControllerMode("MOUSE"); err != nil || got != CONTROL_MOUSE {
		t.Errorf("ParseControllerMode is case sensitive")
	}
	if _, err := ParseControllerMode("wheel"); err == nil {
		t.Errorf("ParseControllerMode accepted an unknown name")
	}
	if ControllerMode(9).String() != "controller(9)" {
		t.Errorf("unknown mode prints %q", ControllerMode(9).String())
	}
}
