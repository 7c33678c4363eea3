// lua_script_test.go - Lua frame hook tests

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
	"os"
	"path/filepath"
	"strings"
	"testing"

	lua "github.com/yuin/gopher-lua"
)

func luaNumber(t *testing.T, s *LuaScript, name string) int {
	t.Helper()
	n, ok := s.state.GetGlobal(name).(lua.LNumber)
	if !ok {
		t.Fatalf("global %s = %v, want a number", name, s.state.GetGlobal(name))
	}
	return int(n)
}

func TestLuaScript_MemoryAccess(t *testing.T) {
	m, _, _ := newTestMachine(t)
	s, err := NewLuaScriptString(`
		poke16(0xFF0000, 0xBEEF)
		poke8(0xFF0002, 0x42)
		hi = peek8(0xFF0000)
		word = peek16(0xFF0000)
		byte = peek8(0xFF0002)
		slot = eeprom(0x40)
	`, m)
	if err != nil {
		t.Fatalf("NewLuaScriptString: %v", err)
	}
	defer s.Close()

	if got := luaNumber(t, s, "hi"); got != 0xBE {
		t.Errorf("hi = %X", got)
	}
	if got := luaNumber(t, s, "word"); got != 0xBEEF {
		t.Errorf("word = %X", got)
	}
	if got := luaNumber(t, s, "byte"); got != 0x42 {
		t.Errorf("byte = %X", got)
	}
	if got := luaNumber(t, s, "slot"); got != 0x37EC {
		t.Errorf("slot = %X", got)
	}
	if got := m.Bus().Read16(0xFF0000); got != 0xBEEF {
		t.Errorf("bus sees %04X", got)
	}
}

func TestLuaScript_PaletteWritesKeepChecksums(t *testing.T) {
	m, _, _ := newTestMachine(t)
	base := atlasBase(600, 600)
	if _, err := m.Cache().Resolve(base, noContain, 0); err != nil {
		t.Fatalf("Resolve: %v", err)
	}

	s, err := NewLuaScriptString(`
		poke16(0x400000, 0x1234)
		poke8(0x400201, 0x10)
		poke16(0x400003, 0xABCD)
	`, m)
	if err != nil {
		t.Fatalf("NewLuaScriptString: %v", err)
	}
	defer s.Close()

	if got := m.Palette().Checksum(0); got != 0xDFDF {
		t.Fatalf("bank 0 checksum = %X, want DFDF", got)
	}
	if got := m.Palette().Checksum(1); got != 0x10 {
		t.Fatalf("bank 1 checksum = %X, want 10", got)
	}
	if got := m.Bus().Read16(0x400002); got != 0x00AB {
		t.Fatalf("palette word 1 = %04X, want 00AB", got)
	}

	if _, err := m.Cache().Resolve(base, noContain, 0); err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if stats := m.Cache().Stats(); stats.Hits != 0 || stats.Creations != 2 {
		t.Fatalf("cache stats = %+v, the palette change must miss", stats)
	}
}

func TestLuaScript_FrameHook(t *testing.T) {
	m, _, _ := newTestMachine(t)
	s, err := NewLuaScriptString(`
		calls = 0
		function on_frame(n)
			calls = calls + 1
			last = n
			seen = frame()
			analog(0x20)
		end
	`, m)
	if err != nil {
		t.Fatalf("NewLuaScriptString: %v", err)
	}
	defer s.Close()

	for range 2 {
		if _, err := m.RunFrame(InputState{}); err != nil {
			t.Fatalf("RunFrame: %v", err)
		}
		if err := s.Frame(); err != nil {
			t.Fatalf("Frame: %v", err)
		}
	}
	if luaNumber(t, s, "calls") != 2 || luaNumber(t, s, "last") != 2 || luaNumber(t, s, "seen") != 2 {
		t.Fatalf("calls=%d last=%d seen=%d", luaNumber(t, s, "calls"), luaNumber(t, s, "last"), luaNumber(t, s, "seen"))
	}
	if m.Controls().Analog() != 0x20 {
		t.Fatalf("analog = %X, want 20", m.Controls().Analog())
	}
}

func TestLuaScript_NoHook(t *testing.T) {
	m, _, _ := newTestMachine(t)
	s, err := NewLuaScriptString(`x = 1`, m)
	if err != nil {
		t.Fatalf("NewLuaScriptString: %v", err)
	}
	defer s.Close()
	if err := s.Frame(); err != nil {
		t.Fatalf("Frame without hook: %v", err)
	}
}

func TestLuaScript_Errors(t *testing.T) {
	m, _, _ := newTestMachine(t)
	if _, err := NewLuaScriptString(`function (`, m); err == nil {
		t.Fatal("syntax error accepted")
	}

	s, err := NewLuaScriptString(`function on_frame() eeprom(999) end`, m)
	if err != nil {
		t.Fatalf("NewLuaScriptString: %v", err)
	}
	defer s.Close()
	err = s.Frame()
	if err == nil || !strings.Contains(err.Error(), "on_frame") {
		t.Fatalf("Frame error = %v", err)
	}
}

func TestLuaScript_FromFile(t *testing.T) {
	m, _, _ := newTestMachine(t)
	path := filepath.Join(t.TempDir(), "hook.lua")
	if err := os.WriteFile(path, []byte("function on_frame(n) poke8(0xFF0010, n) end\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	s, err := NewLuaScript(path, m)
	if err != nil {
		t.Fatalf("NewLuaScript: %v", err)
	}
	defer s.Close()
	if err := s.Frame(); err != nil {
		t.Fatalf("Frame: %v", err)
	}
	if _, err := NewLuaScript(filepath.Join(t.TempDir(), "missing.lua"), m); err == nil {
		t.Fatal("missing script accepted")
	}
}
