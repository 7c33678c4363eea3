// machine_io.go - Device register decode

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

import "github.com/golang/glog"

// writeRegister decodes writes to the device register block. Writes of the
// wrong size fall through to UnknownWrite.
func (m *Machine) writeRegister(addr uint32, value uint32, size int) {
	switch addr {
	case REG_SOUND_DATA:
		if size == 1 {
			m.abortAndSync("SoundWrite", m.soundWrite, int(value))
			return
		}

	case REG_IRQ_ACK:
		if size == 2 {
			m.main.SetState(InputLine(M68K_IRQ_VBLANK), 0)
			return
		}

	case REG_EEPROM_DATA:
		if size == 2 {
			m.eeprom.SetData(value)
			return
		}

	case REG_EEPROM_CLOCK:
		if size == 2 {
			m.eeprom.SetClock(value)
			return
		}

	case REG_EEPROM_CS:
		if size == 2 {
			m.eeprom.SetChipSelect(value)
			return
		}

	case REG_UNKNOWN_126:
		if size == 2 {
			return
		}

	case REG_DSP_RESET:
		if size == 2 {
			halted := value != 0xFFFF
			if m.geometry.Halted() != halted {
				m.abortAndSync("Halt32031", m.halt32031, boolToInt(halted))
			}
			return
		}

	case REG_DSP_IRQ:
		if size == 2 {
			m.abortAndSync("IntTo32031", m.intTo32031, int(value&1))
			return
		}

	case REG_ANALOG_CLOCK:
		if size == 1 {
			if value == 0 {
				m.controls.ClockAnalog()
			}
			return
		}

	case REG_ANALOG_LATCH:
		if size == 1 {
			if value == 0 {
				m.controls.LatchAnalog()
			}
			return
		}

	case REG_UNKNOWN_107, REG_UNKNOWN_127, REG_LED_0, REG_LED_1:
		if size == 1 {
			return
		}
	}
	m.bus.UnknownWrite(addr, value, size)
}

// writePalette splits long writes into two entries; byte writes merge into
// their entry.
func (m *Machine) writePalette(addr uint32, value uint32, size int) {
	switch size {
	case 1:
		m.palette.Write8(addr, uint8(value))
	case 2:
		m.palette.Write16(addr, uint16(value))
	default:
		m.palette.Write16(addr, uint16(value>>16))
		if addr+2 <= PALETTE_END {
			m.palette.Write16(addr+2, uint16(value))
		}
	}
}

// abortAndSync cuts the executing slice short and defers fn until the
// scheduler has unwound it.
func (m *Machine) abortAndSync(name string, fn SyncFunc, value int) {
	m.runner.Abort()
	if err := m.sync.Push(SyncRequest{Name: name, Callback: fn, Value: value}); err != nil {
		glog.Warningf("%s(%d) dropped: %v", name, value, err)
	}
}

func (m *Machine) soundWrite(value int) {
	m.pump.SoundWrite(uint16(value))
}

func (m *Machine) halt32031(value int) {
	m.geometry.SetHalted(value != 0)
}

func (m *Machine) intTo32031(value int) {
	m.geometry.SetState(InputLine(dspInterruptLine), uint32(value))
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
