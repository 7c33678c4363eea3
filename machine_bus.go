// machine_bus.go - Main processor bus

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
machine_bus.go - Main Processor Bus

The bus owns the 16MB address space of the main processor as one flat,
big-endian byte slice. Program ROM, palette RAM, the device register block
and work RAM all live in it so reads never need a handler: input ports and
the EEPROM readback bit are simply bytes the devices keep up to date.

Writes are decoded:

    0xFE0000 and up      work RAM, stored directly
    mapped I/O region    handler receives (addr, value, size)
    anything else        logged and discarded

I/O regions are registered with MapIO and looked up through a page table
keyed by addr&BUS_PAGE_MASK.
*/

package main

import (
	"encoding/binary"

	"github.com/golang/glog"
	m68k "github.com/user-none/go-chip-m68k"
)

const (
	BUS_PAGE_SIZE = 0x100
	BUS_PAGE_MASK = 0xFFFF00
)

type IORegion struct {
	start   uint32
	end     uint32
	onRead  func(addr uint32, size int) uint32
	onWrite func(addr uint32, value uint32, size int)
}

// MainBus implements m68k.Bus for the main processor.
type MainBus struct {
	memory  []byte
	mapping map[uint32][]IORegion

	unknownWrites uint64
}

func NewMainBus() *MainBus {
	return &MainBus{
		memory:  make([]byte, M68K_MEMORY_SIZE),
		mapping: make(map[uint32][]IORegion),
	}
}

// MapIO registers handlers for [start, end]. Either handler may be nil.
func (bus *MainBus) MapIO(start, end uint32, onRead func(addr uint32, size int) uint32, onWrite func(addr uint32, value uint32, size int)) {
	region := IORegion{start: start, end: end, onRead: onRead, onWrite: onWrite}
	for page := start & BUS_PAGE_MASK; page <= end&BUS_PAGE_MASK; page += BUS_PAGE_SIZE {
		bus.mapping[page] = append(bus.mapping[page], region)
	}
}

func (bus *MainBus) findRegion(addr uint32) *IORegion {
	regions, ok := bus.mapping[addr&BUS_PAGE_MASK]
	if !ok {
		return nil
	}
	for i := range regions {
		if addr >= regions[i].start && addr <= regions[i].end {
			return &regions[i]
		}
	}
	return nil
}

func sizeOf(op m68k.Size) int {
	switch op {
	case m68k.Byte:
		return 1
	case m68k.Word:
		return 2
	}
	return 4
}

// Read implements m68k.Bus.
func (bus *MainBus) Read(op m68k.Size, addr uint32) uint32 {
	return bus.read(addr, sizeOf(op))
}

// Write implements m68k.Bus.
func (bus *MainBus) Write(op m68k.Size, addr uint32, val uint32) {
	bus.write(addr, val, sizeOf(op))
}

// Reset implements m68k.Bus. The RESET instruction has no board-level
// effect.
func (bus *MainBus) Reset() {}

func (bus *MainBus) read(addr uint32, size int) uint32 {
	addr &= M68K_ADDRESS_MASK
	if region := bus.findRegion(addr); region != nil && region.onRead != nil {
		return region.onRead(addr, size)
	}
	return bus.load(addr, size)
}

func (bus *MainBus) load(addr uint32, size int) uint32 {
	if int(addr)+size > len(bus.memory) {
		return 0
	}
	switch size {
	case 1:
		return uint32(bus.memory[addr])
	case 2:
		return uint32(binary.BigEndian.Uint16(bus.memory[addr:]))
	}
	return binary.BigEndian.Uint32(bus.memory[addr:])
}

func (bus *MainBus) store(addr uint32, value uint32, size int) {
	if int(addr)+size > len(bus.memory) {
		return
	}
	switch size {
	case 1:
		bus.memory[addr] = byte(value)
	case 2:
		binary.BigEndian.PutUint16(bus.memory[addr:], uint16(value))
	default:
		binary.BigEndian.PutUint32(bus.memory[addr:], value)
	}
}

func (bus *MainBus) write(addr uint32, value uint32, size int) {
	addr &= M68K_ADDRESS_MASK
	if addr >= WORK_RAM_BASE {
		bus.store(addr, value, size)
		return
	}
	if region := bus.findRegion(addr); region != nil && region.onWrite != nil {
		region.onWrite(addr, value, size)
		return
	}
	bus.UnknownWrite(addr, value, size)
}

// UnknownWrite logs and discards a write nobody claims.
func (bus *MainBus) UnknownWrite(addr uint32, value uint32, size int) {
	bus.unknownWrites++
	glog.V(2).Infof("Write68000: %08X = %08X (%d)", addr, value, size)
}

func (bus *MainBus) UnknownWrites() uint64 { return bus.unknownWrites }

func (bus *MainBus) Read8(addr uint32) uint8   { return uint8(bus.read(addr, 1)) }
func (bus *MainBus) Read16(addr uint32) uint16 { return uint16(bus.read(addr, 2)) }
func (bus *MainBus) Read32(addr uint32) uint32 { return bus.read(addr, 4) }

func (bus *MainBus) Write8(addr uint32, value uint8)   { bus.write(addr, uint32(value), 1) }
func (bus *MainBus) Write16(addr uint32, value uint16) { bus.write(addr, uint32(value), 2) }
func (bus *MainBus) Write32(addr uint32, value uint32) { bus.write(addr, value, 4) }

// Poke8 stores a byte without decoding, for devices updating their own
// readable state.
func (bus *MainBus) Poke8(addr uint32, value uint8) {
	bus.memory[addr&M68K_ADDRESS_MASK] = value
}

// Peek8 reads a byte without decoding.
func (bus *MainBus) Peek8(addr uint32) uint8 {
	return bus.memory[addr&M68K_ADDRESS_MASK]
}

// LoadInterleaved copies a pair of 8-bit ROMs into memory at base, even
// bytes from hi and odd bytes from lo.
func (bus *MainBus) LoadInterleaved(base uint32, hi, lo []byte) {
	for i := range hi {
		bus.memory[base+uint32(i)*2] = hi[i]
		if i < len(lo) {
			bus.memory[base+uint32(i)*2+1] = lo[i]
		}
	}
}

func (bus *MainBus) GetMemory() []byte {
	return bus.memory
}
