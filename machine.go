// machine.go - Emulation context for one board

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
machine.go - Machine

The Machine owns everything one emulated board needs: the main bus and
its devices, the three processor cores, the sync queue, the geometry word
stream, the texture cache and the frame counter. Cores and devices get
the pieces they use injected at construction; nothing is global, so
several machines can coexist in one process.
*/

package main

import (
	"fmt"

	"github.com/golang/glog"
)

// MachineConfig carries what NewMachine needs from the shell.
type MachineConfig struct {
	Profile *GameProfile
	ROMs    *RomSet
	Saved   *SavedData
	Render  RenderBackend
	Sound   SoundOutput
	Width   int
	Height  int
}

type Machine struct {
	profile *GameProfile
	saved   *SavedData

	bus      *MainBus
	palette  *PaletteRAM
	eeprom   *EEPROM
	controls *Controls

	main     *M68KCore
	geometry *GeometryCore
	audio    *AudioDSPCore
	runner   CoreRunner
	sync     SyncQueue

	pump      *AudioPump
	scheduler *FrameScheduler
	stream    *GeometryWordStream
	atlas     *TextureAtlas
	cache     *TextureCache
	assembler *PolyAssembler
	render    RenderBackend

	frame uint32
}

// NewMachine builds and resets a board from a loaded ROM set. The geometry
// DSP starts halted; the main program releases it.
func NewMachine(cfg MachineConfig) (*Machine, error) {
	p := cfg.Profile
	if p.CPU != CPU_68000 {
		return nil, fmt.Errorf("%s: main CPU %s is not supported", p.Title, p.CPU)
	}
	roms := cfg.ROMs
	if len(roms.Program) < 2 || len(roms.Program)%2 != 0 {
		return nil, fmt.Errorf("%s: need program ROMs in pairs, have %d", p.Title, len(roms.Program))
	}
	if len(roms.Geometry) != 2 {
		return nil, fmt.Errorf("%s: need 2 geometry ROMs, have %d", p.Title, len(roms.Geometry))
	}

	saved := cfg.Saved
	if saved == nil {
		saved = &SavedData{}
	}

	m := &Machine{
		profile: p,
		saved:   saved,
		bus:     NewMainBus(),
		stream:  NewGeometryWordStream(),
		render:  cfg.Render,
	}

	m.palette = NewPaletteRAM(m.bus.GetMemory())
	m.eeprom = NewEEPROM(&m.saved.EEPROM, func(v uint8) { m.bus.Poke8(REG_EEPROM_OUTPUT, v) })
	m.eeprom.Reset()

	m.atlas = NewTextureAtlas(roms.TexData, roms.TexMask)
	glog.V(1).Infof("texture atlas %dx%d", m.atlas.Width(), m.atlas.Height())

	for i := 0; i < len(roms.Program); i += 2 {
		m.bus.LoadInterleaved(PROGRAM_ROM_BASE+uint32(i/2)*PROGRAM_ROM_BANK, roms.Program[i], roms.Program[i+1])
	}

	m.geometry = NewGeometryCore(m.bus, m.stream)
	m.geometry.LoadROMs(roms.Geometry[0], roms.Geometry[1])
	m.audio = NewAudioDSPCore(roms.Audio)
	m.pump = NewAudioPump(m.audio, cfg.Sound)

	m.bus.MapIO(PALETTE_BASE, PALETTE_END, nil, m.writePalette)
	m.bus.MapIO(REG_BASE, REG_END, nil, m.writeRegister)

	// The 68000 fetches its reset vectors on construction, so the program
	// ROMs must already be in place.
	m.main = NewM68KCore(m.bus)

	m.controls = NewControls(m.bus, ControllerMode(m.saved.Controller))
	m.controls.Update(InputState{})

	m.cache = NewTextureCache(cfg.Render, m.atlas, m.palette, MAX_TEXTURES)
	m.assembler = NewPolyAssembler(m.cache, cfg.Render, m.atlas.Size(), cfg.Width, cfg.Height)
	m.scheduler = NewFrameScheduler(DefaultFrameBudget(), &m.runner, m.main, m.geometry, m.pump, &m.sync)

	glog.Infof("%s ready: PC=%06X SP=%06X", p.Title, m.main.GetState(SEL_PC), m.main.GetState(SEL_SP))
	return m, nil
}

// RunFrame emulates one video frame and draws it. in is sampled at the end
// of the frame, for the program to see during the next one.
func (m *Machine) RunFrame(in InputState) (FrameStats, error) {
	stats := m.scheduler.Run()

	m.main.SetState(InputLine(M68K_IRQ_VBLANK), 1)

	m.cache.SetFrame(m.frame)
	if err := m.render.BeginFrame(); err != nil {
		return stats, &VideoError{Operation: "begin frame", Details: fmt.Sprintf("frame %d", m.frame), Err: err}
	}
	if err := m.assembler.Render(m.stream); err != nil {
		return stats, err
	}
	if err := m.render.EndFrame(); err != nil {
		return stats, &VideoError{Operation: "end frame", Details: fmt.Sprintf("frame %d", m.frame), Err: err}
	}

	m.controls.Update(in)
	m.frame++
	return stats, nil
}

// SetOutputSize rescales rendering to a new output resolution.
func (m *Machine) SetOutputSize(width, height int) {
	m.assembler.SetOutputSize(width, height)
}

// Close releases backend resources.
func (m *Machine) Close() error {
	return m.cache.Close()
}

func (m *Machine) Profile() *GameProfile       { return m.profile }
func (m *Machine) Saved() *SavedData           { return m.saved }
func (m *Machine) Bus() *MainBus               { return m.bus }
func (m *Machine) Palette() *PaletteRAM        { return m.palette }
func (m *Machine) EEPROM() *EEPROM             { return m.eeprom }
func (m *Machine) Controls() *Controls         { return m.controls }
func (m *Machine) Main() *M68KCore             { return m.main }
func (m *Machine) Geometry() *GeometryCore     { return m.geometry }
func (m *Machine) Audio() *AudioDSPCore        { return m.audio }
func (m *Machine) Pump() *AudioPump            { return m.pump }
func (m *Machine) Runner() *CoreRunner         { return &m.runner }
func (m *Machine) Sync() *SyncQueue            { return &m.sync }
func (m *Machine) Stream() *GeometryWordStream { return m.stream }
func (m *Machine) Cache() *TextureCache        { return m.cache }
func (m *Machine) Assembler() *PolyAssembler   { return m.assembler }
func (m *Machine) Frame() uint32               { return m.frame }
