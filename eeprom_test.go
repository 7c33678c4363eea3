// eeprom_test.go - Serial EEPROM tests

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

func newTestEEPROM() (*EEPROM, *[EEPROM_SLOTS]uint16, *uint8) {
	slots := &[EEPROM_SLOTS]uint16{}
	slots[EEPROM_SLOTS-1] = 0xFFFF
	out := new(uint8)
	e := NewEEPROM(slots, func(v uint8) { *out = v })
	e.Reset()
	return e, slots, out
}

func TestEEPROM_BlankStoreIsSeeded(t *testing.T) {
	var slots [EEPROM_SLOTS]uint16
	NewEEPROM(&slots, nil)
	if slots != defaultEEPROM {
		t.Fatalf("blank store was not seeded with the default contents")
	}
	if slots[0x40] != 0x37EC {
		t.Fatalf("slot 40 = %04X, want 37EC", slots[0x40])
	}
}

func TestEEPROM_ExistingStoreIsKept(t *testing.T) {
	_, slots, _ := newTestEEPROM()
	if slots[0x40] != 0 || slots[EEPROM_SLOTS-1] != 0xFFFF {
		t.Fatalf("non-blank store was modified")
	}
}

func TestEEPROM_IdleOutput(t *testing.T) {
	_, _, out := newTestEEPROM()
	if *out != EEPROM_IDLE_OUTPUT {
		t.Fatalf("output = %02X, want %02X", *out, EEPROM_IDLE_OUTPUT)
	}
}

func TestEEPROM_WriteThenRead(t *testing.T) {
	e, slots, out := newTestEEPROM()

	eepromShift(e, eepromWriteMatch|0x12<<16|0xABCD, 27)
	e.SetChipSelect(0)
	if slots[0x12] != 0xABCD {
		t.Fatalf("slot 12 = %04X after write, want ABCD", slots[0x12])
	}

	if got := eepromRead(e, out, 0x12); got != 0xABCD {
		t.Fatalf("read back %04X, want ABCD", got)
	}
	if *out != EEPROM_IDLE_OUTPUT {
		t.Fatalf("output after chip select drop = %02X", *out)
	}
}

func TestEEPROM_ReadEverySlotPattern(t *testing.T) {
	e, slots, out := newTestEEPROM()
	values := []uint16{0x0000, 0xFFFF, 0x8001, 0x5AA5}
	for i, v := range values {
		slots[i] = v
	}
	for i, v := range values {
		if got := eepromRead(e, out, uint8(i)); got != v {
			t.Errorf("slot %d read %04X, want %04X", i, got, v)
		}
	}
}

func TestEEPROM_Erase(t *testing.T) {
	e, slots, _ := newTestEEPROM()
	slots[0x33] = 0x1234

	eepromShift(e, eepromEraseMatch|0x33, 11)
	e.SetChipSelect(0)
	if slots[0x33] != 0 {
		t.Fatalf("slot 33 = %04X after erase", slots[0x33])
	}
}

func TestEEPROM_ClockIgnoredWithoutChipSelect(t *testing.T) {
	e, slots, _ := newTestEEPROM()
	bits := uint32(eepromWriteMatch | 0x01<<16 | 0x4242)
	for i := 26; i >= 0; i-- {
		e.SetData(bits>>i&1)
		e.SetClock(1)
		e.SetClock(0)
	}
	if slots[0x01] != 0 {
		t.Fatalf("write landed without chip select")
	}
}

func TestEEPROM_ChipSelectDropAbortsCommand(t *testing.T) {
	e, slots, _ := newTestEEPROM()

	// First half of a write, then a new transaction.
	eepromShift(e, 0x5<<8|0x02, 11)
	e.SetChipSelect(0)
	eepromShift(e, eepromWriteMatch|0x03<<16|0x0077, 27)
	e.SetChipSelect(0)

	if slots[0x02] != 0 {
		t.Fatalf("aborted write changed slot 2 to %04X", slots[0x02])
	}
	if slots[0x03] != 0x0077 {
		t.Fatalf("slot 3 = %04X, want 0077", slots[0x03])
	}
}
