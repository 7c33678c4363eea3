// game_profiles.go - Supported boards and their ROM sets

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
	"sort"
)

// ROMRole says where a ROM image ends up.
type ROMRole int

const (
	ROM_PROGRAM ROMRole = iota
	ROM_AUDIO
	ROM_GEOMETRY
	ROM_TEXTURE_DATA
	ROM_TEXTURE_MASK
)

func (r ROMRole) String() string {
	switch r {
	case ROM_PROGRAM:
		return "program"
	case ROM_AUDIO:
		return "ADSP2115"
	case ROM_GEOMETRY:
		return "geometry"
	case ROM_TEXTURE_DATA:
		return "texture"
	case ROM_TEXTURE_MASK:
		return "texture mask"
	}
	return fmt.Sprintf("role(%d)", int(r))
}

// CPUFamily is the main processor fitted to a board.
type CPUFamily int

const (
	CPU_68000 CPUFamily = iota
	CPU_68020
)

func (c CPUFamily) String() string {
	if c == CPU_68020 {
		return "68020"
	}
	return "68000"
}

// ROMEntry is one expected archive member.
type ROMEntry struct {
	Name   string
	CRC    uint32
	Length int
	Role   ROMRole
}

// GameProfile describes one board and its ROM set. Program ROMs are listed
// in pairs, even byte first, for 0x000000 then 0x100000.
type GameProfile struct {
	Name     string
	Title    string
	Filename string
	CPU      CPUFamily
	ROMs     []ROMEntry
}

var gameProfiles = map[string]*GameProfile{
	"surfplnt": {
		Name:     "surfplnt",
		Title:    "Surf Planet",
		Filename: "surfplnt",
		CPU:      CPU_68000,
		ROMs: []ROMEntry{
			{"surfplnt.u5", 0xc96e0a18, 0x080000, ROM_PROGRAM},
			{"surfplnt.u11", 0x99211d2d, 0x080000, ROM_PROGRAM},
			{"surfplnt.u8", 0xaef9e1d0, 0x080000, ROM_PROGRAM},
			{"surfplnt.u13", 0xd9754369, 0x080000, ROM_PROGRAM},
			{"pls.18", 0xa1b64695, 0x400000, ROM_AUDIO},
			{"pls.40", 0x26877ad3, 0x400000, ROM_GEOMETRY},
			{"pls.37", 0x75893062, 0x400000, ROM_GEOMETRY},
			{"pls.7", 0x04bd1605, 0x400000, ROM_TEXTURE_DATA},
			{"pls.9", 0xf4400160, 0x400000, ROM_TEXTURE_DATA},
			{"pls.12", 0xedc2e826, 0x400000, ROM_TEXTURE_DATA},
			{"pls.15", 0xb0f6b8da, 0x400000, ROM_TEXTURE_DATA},
			{"surfplnt.u19", 0x691bd7a7, 0x020000, ROM_TEXTURE_MASK},
			{"surfplnt.u20", 0xfb293318, 0x020000, ROM_TEXTURE_MASK},
			{"surfplnt.u21", 0xb80611fb, 0x020000, ROM_TEXTURE_MASK},
			{"surfplnt.u22", 0xccf88f7e, 0x020000, ROM_TEXTURE_MASK},
		},
	},
	"speedup": {
		Name:     "speedup",
		Title:    "Speed Up",
		Filename: "speedup",
		CPU:      CPU_68000,
		ROMs: []ROMEntry{
			{"sup10.bin", 0x07e70bae, 0x080000, ROM_PROGRAM},
			{"sup15.bin", 0x7947c28d, 0x080000, ROM_PROGRAM},
			{"sup25.bin", 0x284c7cd1, 0x400000, ROM_AUDIO},
			{"sup32.bin", 0xaed151de, 0x200000, ROM_GEOMETRY},
			{"sup33.bin", 0x9be6ab7d, 0x200000, ROM_GEOMETRY},
			{"sup12.bin", 0x311f3247, 0x400000, ROM_TEXTURE_DATA},
			{"sup14.bin", 0x3ad3c089, 0x400000, ROM_TEXTURE_DATA},
			{"sup11.bin", 0xb993e65a, 0x400000, ROM_TEXTURE_DATA},
			{"sup13.bin", 0xad00023c, 0x400000, ROM_TEXTURE_DATA},
			{"ic35.bin", 0x34737d1d, 0x020000, ROM_TEXTURE_MASK},
			{"ic34.bin", 0xe89e829b, 0x020000, ROM_TEXTURE_MASK},
		},
	},
	"radikalb": {
		Name:     "radikalb",
		Title:    "Radikal Bikers",
		Filename: "radikalb",
		CPU:      CPU_68020,
		ROMs: []ROMEntry{
			{"rab.6", 0xccac98c5, 0x080000, ROM_PROGRAM},
			{"rab.12", 0x26199506, 0x080000, ROM_PROGRAM},
			{"rab.14", 0x4a0ac8cb, 0x080000, ROM_PROGRAM},
			{"rab.19", 0x2631bd61, 0x080000, ROM_PROGRAM},
			{"rab.23", 0xdcf52520, 0x400000, ROM_AUDIO},
			{"rab.48", 0x9c56a06a, 0x400000, ROM_GEOMETRY},
			{"rab.45", 0x7e698584, 0x400000, ROM_GEOMETRY},
			{"rab.8", 0x4fbd4737, 0x400000, ROM_TEXTURE_DATA},
			{"rab.10", 0x870b0ce4, 0x400000, ROM_TEXTURE_DATA},
			{"rab.15", 0xedb9d409, 0x400000, ROM_TEXTURE_DATA},
			{"rab.17", 0xe120236b, 0x400000, ROM_TEXTURE_DATA},
			{"rab.9", 0x9e3e038d, 0x400000, ROM_TEXTURE_DATA},
			{"rab.11", 0x75672271, 0x400000, ROM_TEXTURE_DATA},
			{"rab.16", 0x9d595e46, 0x400000, ROM_TEXTURE_DATA},
			{"rab.18", 0x3084bc49, 0x400000, ROM_TEXTURE_DATA},
			{"rab.24", 0x2984bc1d, 0x020000, ROM_TEXTURE_MASK},
			{"rab.25", 0x777758e3, 0x020000, ROM_TEXTURE_MASK},
			{"rab.26", 0xbd9c1b54, 0x020000, ROM_TEXTURE_MASK},
			{"rab.27", 0xbbcf6977, 0x020000, ROM_TEXTURE_MASK},
		},
	},
}

// LookupGameProfile finds a profile by short name.
func LookupGameProfile(name string) (*GameProfile, error) {
	profile, ok := gameProfiles[name]
	if !ok {
		return nil, fmt.Errorf("unknown game %q (supported: %v)", name, GameProfileNames())
	}
	return profile, nil
}

// GameProfileNames lists the supported short names in order.
func GameProfileNames() []string {
	names := make([]string, 0, len(gameProfiles))
	for name := range gameProfiles {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Count returns how many ROMs of role the profile expects.
func (p *GameProfile) Count(role ROMRole) int {
	n := 0
	for _, rom := range p.ROMs {
		if rom.Role == role {
			n++
		}
	}
	return n
}
