// eeprom.go - Serial EEPROM device

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

const (
	EEPROM_SLOTS = 256

	eepromReadMask   = 0xFFFFFF00
	eepromReadMatch  = 0x600
	eepromEraseMatch = 0x700
	eepromWriteMask  = 0xFF000000
	eepromWriteMatch = 0x5000000

	// EEPROM_IDLE_OUTPUT is the readback register value with no bit
	// being shifted out.
	EEPROM_IDLE_OUTPUT = 0xFF ^ 0x04
)

// defaultEEPROM seeds a store that has never been written.
var defaultEEPROM = [EEPROM_SLOTS]uint16{
	0x0000, 0x0000, 0x0000, 0x0000, 0x0000, 0x0000, 0x0000, 0x0000, 0x0000, 0x0000, 0x0000, 0x0000, 0x0000, 0x0000, 0x0000, 0x0000,
	0x0000, 0x0000, 0x0000, 0x0000, 0x0000, 0x0000, 0x0000, 0x0000, 0x0000, 0x0000, 0x0000, 0x0000, 0x0000, 0x0000, 0x0000, 0x0000,
	0x0000, 0x0000, 0x0000, 0x0000, 0x0000, 0x0000, 0x0000, 0x0000, 0x0000, 0x0000, 0x0000, 0x0000, 0x0000, 0x0000, 0x0000, 0x0000,
	0x0000, 0x0000, 0x0000, 0x0000, 0x0000, 0x0000, 0x0000, 0x0000, 0x0000, 0x0000, 0x0000, 0x0000, 0x0000, 0x0000, 0x0000, 0x0000,
	0x37EC, 0x0041, 0x4243, 0x3828, 0x0044, 0x4546, 0x3864, 0x0047, 0x4849, 0x38A0, 0x004A, 0x4B4C, 0x38DC, 0x004D, 0x4E4F, 0x3918,
	0x0050, 0x5152, 0x3954, 0x0053, 0x5455, 0x3990, 0x0056, 0x5758, 0x39CC, 0x0059, 0x5A41, 0x3A08, 0x0042, 0x4344, 0x3BBF, 0x0041,
	0x4243, 0x3BFB, 0x0044, 0x4546, 0x3C37, 0x0047, 0x4849, 0x3C73, 0x004A, 0x4B4C, 0x3CAF, 0x004D, 0x4E4F, 0x3CEB, 0x0050, 0x5152,
	0x3D27, 0x0053, 0x5455, 0x3D63, 0x0056, 0x5758, 0x3D9F, 0x0059, 0x5A41, 0x3DDB, 0x0042, 0x4344, 0x37B4, 0x0041, 0x4243, 0x37F0,
	0x0044, 0x4546, 0x382C, 0x0047, 0x4849, 0x3868, 0x004A, 0x4B4C, 0x38A4, 0x004D, 0x4E4F, 0x38E0, 0x0050, 0x5152, 0x391C, 0x0053,
	0x5455, 0x3958, 0x0056, 0x5758, 0x3994, 0x0059, 0x5A41, 0x39D0, 0x0042, 0x4344, 0x005A, 0x0041, 0x4243, 0x0050, 0x0044, 0x4546,
	0x0046, 0x0047, 0x4849, 0x003C, 0x004A, 0x4B4C, 0x0032, 0x004D, 0x4E4F, 0x0028, 0x0050, 0x5152, 0x001E, 0x0053, 0x5455, 0x0014,
	0x0056, 0x5758, 0x000A, 0x0059, 0x5A41, 0x0005, 0x0042, 0x4344, 0x0E40, 0x0041, 0x4243, 0x0EB0, 0x0044, 0x4546, 0x0E10, 0x0047,
	0x4849, 0x0DA0, 0x004A, 0x4B4C, 0x0FB0, 0x004D, 0x4E4F, 0x0EE0, 0x0050, 0x5152, 0x0E53, 0x0053, 0x5455, 0x0F90, 0x0056, 0x5758,
	0x0F2C, 0x0059, 0x5A41, 0x0E2C, 0x0042, 0x4344, 0x0D80, 0x0045, 0x4647, 0x0D90, 0x0048, 0x494A, 0x3342, 0x0000, 0x0000, 0xFFFF,
	0x0000, 0x0006, 0xFFF9, 0x0000, 0x0000, 0x0000, 0x0000, 0x0000, 0x0000, 0x0000, 0x0000, 0x0000, 0x0000, 0x0000, 0x0000, 0x0000,
	0x0000, 0x0000, 0x0000, 0x0000, 0x0000, 0x0000, 0x135D, 0x0001, 0x0006, 0x0001, 0xE917, 0x007F, 0x0100, 0x0002, 0x0101, 0x0101,
}

// EEPROM is the serial 256x16 store behind the EEPROM data, clock and chip
// select registers. Bits are clocked into a shift register on the rising
// clock edge while chip select is high; the accumulated pattern selects a
// read, write or erase. During a read the addressed slot is shifted out one
// bit per clock on bit 2 of the readback register (active low).
type EEPROM struct {
	slots *[EEPROM_SLOTS]uint16

	clockState bool
	csState    bool
	reading    bool
	dataLatch  uint32
	writeBuf   uint32
	readBuf    uint32

	output func(value uint8)
}

// NewEEPROM wraps slots, which usually live in the saved data record so
// writes persist. output receives every readback register update.
func NewEEPROM(slots *[EEPROM_SLOTS]uint16, output func(value uint8)) *EEPROM {
	e := &EEPROM{slots: slots, output: output}
	if isBlankEEPROM(slots) {
		*slots = defaultEEPROM
		glog.Infof("EEPROM blank, applied default contents")
	}
	return e
}

func isBlankEEPROM(slots *[EEPROM_SLOTS]uint16) bool {
	for _, v := range slots {
		if v != 0 {
			return false
		}
	}
	return true
}

// SetData latches the data line.
func (e *EEPROM) SetData(value uint32) {
	e.dataLatch = value & 1
}

// SetClock drives the clock line. A rising edge with chip select high
// clocks in the latched data bit.
func (e *EEPROM) SetClock(value uint32) {
	state := value&1 != 0
	if state == e.clockState {
		return
	}
	e.clockState = state
	if e.clockState && e.csState {
		e.clock(e.dataLatch)
	}
}

// SetChipSelect drives chip select. A falling edge resets the protocol.
func (e *EEPROM) SetChipSelect(value uint32) {
	state := value&1 != 0
	if state == e.csState {
		return
	}
	e.csState = state
	if !e.csState {
		e.Reset()
	}
}

// Reset clears all shift state.
func (e *EEPROM) Reset() {
	e.reading = false
	e.writeBuf = 0
	e.readBuf = 0
	e.setOutput(EEPROM_IDLE_OUTPUT)
}

func (e *EEPROM) setOutput(value uint8) {
	if e.output != nil {
		e.output(value)
	}
}

func (e *EEPROM) clock(bit uint32) {
	if e.reading {
		e.readBuf = e.readBuf<<1 | 1
		e.setOutput(0xFF ^ uint8((e.readBuf>>16)&1)<<2)
		return
	}

	e.writeBuf = e.writeBuf<<1 | bit
	switch {
	case e.writeBuf&eepromReadMask == eepromReadMatch:
		slot := e.writeBuf & 0xFF
		e.reading = true
		e.readBuf = uint32(e.slots[slot])
		e.writeBuf = 0
		e.setOutput(EEPROM_IDLE_OUTPUT)
		glog.V(1).Infof("EEPROM read @ %02X = %04X", slot, e.readBuf)

	case e.writeBuf&eepromWriteMask == eepromWriteMatch:
		slot := (e.writeBuf >> 16) & 0xFF
		e.slots[slot] = uint16(e.writeBuf)
		glog.V(1).Infof("EEPROM write @ %02X = %04X", slot, e.writeBuf&0xFFFF)
		e.Reset()

	case e.writeBuf&eepromReadMask == eepromEraseMatch:
		slot := e.writeBuf & 0xFF
		e.slots[slot] = 0
		glog.V(1).Infof("EEPROM erase @ %02X", slot)
		e.Reset()
	}
}

// Slot returns the stored value of slot.
func (e *EEPROM) Slot(slot int) uint16 {
	return e.slots[slot&0xFF]
}
