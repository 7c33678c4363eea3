// palette.go - Palette RAM with per-bank running checksums

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

const (
	PALETTE_BANKS        = 0x80
	PALETTE_BANK_ENTRIES = 256
	PALETTE_BANK_BYTES   = PALETTE_BANK_ENTRIES * 2
)

// PaletteRAM owns the 64KB palette window of the main bus. Entries are
// 16-bit big-endian words stored in bus memory; each of the 128 banks keeps
// a running checksum that the texture cache uses as a cheap identity.
type PaletteRAM struct {
	memory    []byte
	checksums [PALETTE_BANKS]uint32
}

func NewPaletteRAM(memory []byte) *PaletteRAM {
	return &PaletteRAM{memory: memory}
}

// paletteBank maps a palette address to its bank number.
func paletteBank(addr uint32) int {
	return int((addr >> 9) & 0x7F)
}

// Write16 stores a 16-bit entry and adjusts the bank checksum by the
// difference between the new and old value.
func (p *PaletteRAM) Write16(addr uint32, value uint16) {
	addr &^= 1
	old := uint16(p.memory[addr])<<8 | uint16(p.memory[addr+1])
	p.checksums[paletteBank(addr)] += uint32(value) - uint32(old)
	p.memory[addr] = byte(value >> 8)
	p.memory[addr+1] = byte(value)
}

// Write8 merges a byte into its containing word.
func (p *PaletteRAM) Write8(addr uint32, value uint8) {
	word := addr &^ 1
	old := uint16(p.memory[word])<<8 | uint16(p.memory[word+1])
	if addr&1 == 0 {
		p.Write16(word, old&0x00FF|uint16(value)<<8)
	} else {
		p.Write16(word, old&0xFF00|uint16(value))
	}
}

// Checksum returns the running checksum of a bank.
func (p *PaletteRAM) Checksum(bank int) uint32 {
	return p.checksums[bank&0x7F]
}

// Bank copies a whole bank into dst.
func (p *PaletteRAM) Bank(bank int, dst *[PALETTE_BANK_ENTRIES]uint16) {
	base := PALETTE_BASE + (bank&0x7F)*PALETTE_BANK_BYTES
	for i := range dst {
		dst[i] = uint16(p.memory[base+i*2])<<8 | uint16(p.memory[base+i*2+1])
	}
}
