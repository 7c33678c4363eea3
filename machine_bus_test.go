// machine_bus_test.go - Main processor bus tests

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
	"testing"

	m68k "github.com/user-none/go-chip-m68k"
)

type busAccess struct {
	addr  uint32
	value uint32
	size  int
}

func TestMainBus_WorkRAMBigEndian(t *testing.T) {
	bus := NewMainBus()
	bus.Write32(WORK_RAM_BASE, 0x11223344)
	if got := bus.Read8(WORK_RAM_BASE); got != 0x11 {
		t.Fatalf("first byte = %02X, want 11", got)
	}
	if got := bus.Read16(WORK_RAM_BASE + 2); got != 0x3344 {
		t.Fatalf("low word = %04X, want 3344", got)
	}
	if bus.UnknownWrites() != 0 {
		t.Fatalf("work RAM write counted as unknown")
	}
}

func TestMainBus_AddressWraps(t *testing.T) {
	bus := NewMainBus()
	bus.Write16(0xFF000000|WORK_RAM_BASE, 0xBEEF)
	if got := bus.Read16(WORK_RAM_BASE); got != 0xBEEF {
		t.Fatalf("24-bit mirror = %04X, want BEEF", got)
	}
}

func TestMainBus_MapIO(t *testing.T) {
	bus := NewMainBus()
	var writes []busAccess
	bus.MapIO(0x510000, 0x5101FF,
		func(addr uint32, size int) uint32 { return addr & 0xFF },
		func(addr uint32, value uint32, size int) {
			writes = append(writes, busAccess{addr, value, size})
		})

	bus.Write8(0x510041, 0x81)
	bus.Write16(0x5101FE, 0x1234)
	if len(writes) != 2 || writes[0] != (busAccess{0x510041, 0x81, 1}) || writes[1] != (busAccess{0x5101FE, 0x1234, 2}) {
		t.Fatalf("writes = %+v", writes)
	}
	if got := bus.Read8(0x510123); got != 0x23 {
		t.Fatalf("handler read = %02X, want 23", got)
	}

	bus.Write8(0x510200, 1)
	if bus.UnknownWrites() != 1 {
		t.Fatalf("write past the region not counted: %d", bus.UnknownWrites())
	}
}

func TestMainBus_ReadOnlyRegionFallsBackToMemory(t *testing.T) {
	bus := NewMainBus()
	bus.MapIO(0x400000, 0x40FFFF, nil, func(addr uint32, value uint32, size int) {})
	bus.Poke8(0x400010, 0x5A)
	if got := bus.Read8(0x400010); got != 0x5A || bus.Peek8(0x400010) != 0x5A {
		t.Fatalf("read = %02X, want memory contents", got)
	}
}

func TestMainBus_ProgramROMIsNotWritable(t *testing.T) {
	bus := NewMainBus()
	bus.LoadInterleaved(PROGRAM_ROM_BASE, []byte{0xAA, 0xCC}, []byte{0xBB, 0xDD})
	if got := bus.Read32(PROGRAM_ROM_BASE); got != 0xAABBCCDD {
		t.Fatalf("interleaved = %08X, want AABBCCDD", got)
	}
	bus.Write16(PROGRAM_ROM_BASE, 0)
	if bus.Read16(PROGRAM_ROM_BASE) != 0xAABB || bus.UnknownWrites() != 1 {
		t.Fatalf("ROM write took effect")
	}
}

func TestMainBus_M68KInterface(t *testing.T) {
	bus := NewMainBus()
	var b m68k.Bus = bus
	b.Write(m68k.Long, WORK_RAM_BASE, 0xCAFEBABE)
	tests := []struct {
		size m68k.Size
		want uint32
	}{
		{m68k.Byte, 0xCA},
		{m68k.Word, 0xCAFE},
		{m68k.Long, 0xCAFEBABE},
	}
	for _, tc := range tests {
		if got := b.Read(tc.size, WORK_RAM_BASE); got != tc.want {
			t.Errorf("Read(%v) = %X, want %X", tc.size, got, tc.want)
		}
	}
}

func TestMainBus_OutOfRange(t *testing.T) {
	bus := NewMainBus()
	if got := bus.Read32(0xFFFFFE); got != 0 {
		t.Fatalf("straddling read = %X, want 0", got)
	}
	bus.Write32(0xFFFFFE, 0xFFFFFFFF)
	if bus.Read8(0xFFFFFE) != 0 {
		t.Fatal("straddling write stored")
	}
}
