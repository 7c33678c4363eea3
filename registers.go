// registers.go - Main processor register address map

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
registers.go - Main Processor Register Address Map

This file provides a centralized reference for the memory map seen by the
main processor. Device behaviour lives next to each device; this file only
names the addresses.

MEMORY MAP OVERVIEW
===================

Address Range        Size    Device                  Handler
---------------------------------------------------------------------------
0x000000-0x1FFFFF    2MB     Program ROM (even/odd)  machine.go (interleave)
0x400000-0x40FFFF    64KB    Palette RAM             palette.go
0x510000-0x5101FF    512B    Device registers        machine_io.go
0xFE0000-0xFFFFFF    128KB   Work RAM (shared DSP)   machine_bus.go

DEVICE REGISTERS
================

Writes (size in bytes, anything else is an unknown write):

  0x510041  1  Sound data latch        -> sync: SoundWrite
  0x510100  2  IRQ2 acknowledge
  0x510112  2  EEPROM data line
  0x51011A  2  EEPROM clock line       rising edge while CS high clocks a bit
  0x510122  2  EEPROM chip select      falling edge resets the protocol
  0x510126  2  Unknown (ignored)
  0x51012A  2  Geometry DSP reset      0xFFFF runs, anything else halts -> sync
  0x510132  2  Geometry DSP IRQ        bit 0 -> sync
  0x510157  1  Analog port clock       shifts latched value, MSB -> 0x51002C bit 4
  0x510167  1  Analog port latch       loads current analog value
  0x510107  1  Unknown (ignored)
  0x510127  1  Unknown (ignored)
  0x510147  1  LED 0
  0x510177  1  LED 1

Reads come straight from memory:

  0x51000D     Input port 0 (start = bit 7, active low)
  0x51001D     Input port 1
  0x51002C     Input port 2 (coin/service/test, analog serial bit 4)
  0x510101     EEPROM readback (bit 2, active low)
*/

package main

const (
	M68K_ADDRESS_MASK = 0xFFFFFF
	M68K_MEMORY_SIZE  = 1 << 24

	PROGRAM_ROM_BASE = 0x000000
	PROGRAM_ROM_BANK = 0x100000

	PALETTE_BASE = 0x400000
	PALETTE_END  = 0x40FFFF

	WORK_RAM_BASE = 0xFE0000

	REG_BASE = 0x510000
	REG_END  = 0x5101FF
)

// Device register addresses.
const (
	REG_SOUND_DATA    = 0x510041
	REG_IRQ_ACK       = 0x510100
	REG_EEPROM_DATA   = 0x510112
	REG_EEPROM_CLOCK  = 0x51011A
	REG_EEPROM_CS     = 0x510122
	REG_UNKNOWN_126   = 0x510126
	REG_DSP_RESET     = 0x51012A
	REG_DSP_IRQ       = 0x510132
	REG_ANALOG_CLOCK  = 0x510157
	REG_ANALOG_LATCH  = 0x510167
	REG_UNKNOWN_107   = 0x510107
	REG_UNKNOWN_127   = 0x510127
	REG_LED_0         = 0x510147
	REG_LED_1         = 0x510177
	REG_INPUT_PORT_0  = 0x51000D
	REG_INPUT_PORT_1  = 0x51001D
	REG_INPUT_PORT_2  = 0x51002C
	REG_EEPROM_OUTPUT = 0x510101
)

// Main processor interrupt lines.
const (
	M68K_IRQ_VBLANK = 2
)
