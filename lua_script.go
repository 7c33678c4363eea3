// lua_script.go - Per-frame Lua hook

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
lua_script.go - Per-frame Lua hook

A script is loaded once at startup. If it defines a global on_frame
function, that function is called after every completed frame with the
frame number. The machine is exposed through a handful of globals:

    peek8(addr)  peek16(addr)        read main memory
    poke8(addr, v)  poke16(addr, v)  store into main memory, undecoded
                                     except the palette window, which
                                     keeps its bank checksums current
    frame()                          current frame number
    eeprom(slot)                     read an EEPROM slot
    analog([v])                      read or override the steering value
*/

package main

import (
	"fmt"

	"github.com/golang/glog"
	lua "github.com/yuin/gopher-lua"
)

const luaFrameHook = "on_frame"

type LuaScript struct {
	state   *lua.LState
	machine *Machine
	onFrame *lua.LFunction
}

// NewLuaScript runs the script at path against m.
func NewLuaScript(path string, m *Machine) (*LuaScript, error) {
	s := &LuaScript{state: lua.NewState(), machine: m}
	s.register()
	if err := s.state.DoFile(path); err != nil {
		s.state.Close()
		return nil, fmt.Errorf("lua script %s: %w", path, err)
	}
	if fn, ok := s.state.GetGlobal(luaFrameHook).(*lua.LFunction); ok {
		s.onFrame = fn
	}
	glog.Infof("lua: loaded %s (frame hook: %v)", path, s.onFrame != nil)
	return s, nil
}

// NewLuaScriptString is NewLuaScript for inline source.
func NewLuaScriptString(source string, m *Machine) (*LuaScript, error) {
	s := &LuaScript{state: lua.NewState(), machine: m}
	s.register()
	if err := s.state.DoString(source); err != nil {
		s.state.Close()
		return nil, fmt.Errorf("lua script: %w", err)
	}
	if fn, ok := s.state.GetGlobal(luaFrameHook).(*lua.LFunction); ok {
		s.onFrame = fn
	}
	return s, nil
}

func (s *LuaScript) register() {
	L := s.state
	bus := s.machine.Bus()
	L.SetGlobal("peek8", L.NewFunction(func(L *lua.LState) int {
		L.Push(lua.LNumber(bus.Peek8(uint32(L.CheckInt64(1)))))
		return 1
	}))
	L.SetGlobal("peek16", L.NewFunction(func(L *lua.LState) int {
		addr := uint32(L.CheckInt64(1))
		L.Push(lua.LNumber(uint16(bus.Peek8(addr))<<8 | uint16(bus.Peek8(addr+1))))
		return 1
	}))
	L.SetGlobal("poke8", L.NewFunction(func(L *lua.LState) int {
		s.poke8(uint32(L.CheckInt64(1)), uint8(L.CheckInt(2)))
		return 0
	}))
	L.SetGlobal("poke16", L.NewFunction(func(L *lua.LState) int {
		addr := uint32(L.CheckInt64(1)) & M68K_ADDRESS_MASK
		value := uint16(L.CheckInt(2))
		if addr&1 == 0 && isPaletteAddr(addr) {
			s.machine.Palette().Write16(addr, value)
			return 0
		}
		s.poke8(addr, uint8(value>>8))
		s.poke8(addr+1, uint8(value))
		return 0
	}))
	L.SetGlobal("frame", L.NewFunction(func(L *lua.LState) int {
		L.Push(lua.LNumber(s.machine.Frame()))
		return 1
	}))
	L.SetGlobal("eeprom", L.NewFunction(func(L *lua.LState) int {
		slot := L.CheckInt(1)
		if slot < 0 || slot >= EEPROM_SLOTS {
			L.ArgError(1, "slot out of range")
			return 0
		}
		L.Push(lua.LNumber(s.machine.EEPROM().Slot(slot)))
		return 1
	}))
	L.SetGlobal("analog", L.NewFunction(func(L *lua.LState) int {
		controls := s.machine.Controls()
		if L.GetTop() >= 1 {
			controls.SetAnalog(L.CheckInt(1))
		}
		L.Push(lua.LNumber(controls.Analog()))
		return 1
	}))
}

func isPaletteAddr(addr uint32) bool {
	return addr >= PALETTE_BASE && addr <= PALETTE_END
}

func (s *LuaScript) poke8(addr uint32, value uint8) {
	addr &= M68K_ADDRESS_MASK
	if isPaletteAddr(addr) {
		s.machine.Palette().Write8(addr, value)
		return
	}
	s.machine.Bus().Poke8(addr, value)
}

// Frame calls the script's frame hook, if any.
func (s *LuaScript) Frame() error {
	if s.onFrame == nil {
		return nil
	}
	err := s.state.CallByParam(lua.P{
		Fn:      s.onFrame,
		NRet:    0,
		Protect: true,
	}, lua.LNumber(s.machine.Frame()))
	if err != nil {
		return fmt.Errorf("lua %s: %w", luaFrameHook, err)
	}
	return nil
}

func (s *LuaScript) Close() {
	s.state.Close()
}
