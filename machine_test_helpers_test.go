// machine_test_helpers_test.go - Test helpers for the Gaelco3D board

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
	"math"
	"testing"
)

// recordingBackend is a RenderBackend that keeps textures in memory and
// logs state changes and draw calls.
type recordingBackend struct {
	textures   map[TextureHandle]*recordedTexture
	nextHandle TextureHandle
	vertices   []RenderVertex
	calls      []string
	draws      []recordedDraw
	destroyed  []TextureHandle

	bound      TextureHandle
	depthTest  bool
	alphaBlend bool

	failCreate error
	failLock   error
}

type recordedTexture struct {
	width, height int
	texels        []uint16
	locked        bool
}

type recordedDraw struct {
	start, triCount int
	texture         TextureHandle
	depthTest       bool
	alphaBlend      bool
}

func newRecordingBackend() *recordingBackend {
	return &recordingBackend{textures: make(map[TextureHandle]*recordedTexture), depthTest: true}
}

func (b *recordingBackend) BeginFrame() error {
	b.calls = append(b.calls, "begin")
	return nil
}

func (b *recordingBackend) EndFrame() error {
	b.calls = append(b.calls, "end")
	return nil
}

func (b *recordingBackend) CreateTexture(width, height int, format TextureFormat) (TextureHandle, error) {
	if b.failCreate != nil {
		return NoTexture, b.failCreate
	}
	b.nextHandle++
	b.textures[b.nextHandle] = &recordedTexture{width: width, height: height, texels: make([]uint16, width*height)}
	return b.nextHandle, nil
}

func (b *recordingBackend) DestroyTexture(handle TextureHandle) error {
	if _, ok := b.textures[handle]; !ok {
		return fmt.Errorf("unknown texture %d", handle)
	}
	delete(b.textures, handle)
	b.destroyed = append(b.destroyed, handle)
	return nil
}

func (b *recordingBackend) LockTexture(handle TextureHandle) ([]uint16, int, error) {
	if b.failLock != nil {
		return nil, 0, b.failLock
	}
	tex, ok := b.textures[handle]
	if !ok {
		return nil, 0, fmt.Errorf("unknown texture %d", handle)
	}
	tex.locked = true
	return tex.texels, tex.width, nil
}

func (b *recordingBackend) UnlockTexture(handle TextureHandle) error {
	tex, ok := b.textures[handle]
	if !ok {
		return fmt.Errorf("unknown texture %d", handle)
	}
	tex.locked = false
	return nil
}

func (b *recordingBackend) BindTexture(slot int, handle TextureHandle) {
	b.bound = handle
	b.calls = append(b.calls, fmt.Sprintf("bind %d", handle))
}

func (b *recordingBackend) SetDepthTest(enabled bool) {
	b.depthTest = enabled
	if enabled {
		b.calls = append(b.calls, "depth on")
	} else {
		b.calls = append(b.calls, "depth off")
	}
}

func (b *recordingBackend) SetAlphaBlend(enabled bool) {
	b.alphaBlend = enabled
	if enabled {
		b.calls = append(b.calls, "blend on")
	} else {
		b.calls = append(b.calls, "blend off")
	}
}

func (b *recordingBackend) SetVertexStream(vertices []RenderVertex) error {
	b.vertices = append(b.vertices[:0], vertices...)
	return nil
}

func (b *recordingBackend) DrawFan(start, triCount int) error {
	b.calls = append(b.calls, fmt.Sprintf("draw %d %d", start, triCount))
	b.draws = append(b.draws, recordedDraw{start: start, triCount: triCount, texture: b.bound, depthTest: b.depthTest, alphaBlend: b.alphaBlend})
	return nil
}

// fakeSoundOutput accepts up to ready samples per call and keeps them.
type fakeSoundOutput struct {
	ready   int
	written []int16
	writes  int
}

func (f *fakeSoundOutput) SamplesReady() int { return f.ready }

func (f *fakeSoundOutput) WriteSamples(samples []int16) error {
	f.written = append(f.written, samples...)
	f.writes++
	return nil
}

// scriptedCore is a CpuCore that spends a fixed cost per step and can run
// a hook after every step, e.g. to trigger an abort mid-slice.
type scriptedCore struct {
	name    string
	cost    int
	counter CycleCounter
	halted  bool
	steps   int
	slices  []int
	onStep  func(step int)
	lines   [MAX_INPUT_LINES]uint32
	resets  int
}

func newScriptedCore(name string, cost int) *scriptedCore {
	return &scriptedCore{name: name, cost: cost}
}

func (c *scriptedCore) Name() string           { return c.name }
func (c *scriptedCore) Reset()                 { c.resets++ }
func (c *scriptedCore) Counter() *CycleCounter { return &c.counter }
func (c *scriptedCore) Halted() bool           { return c.halted }

func (c *scriptedCore) Execute(cycles int) int {
	c.slices = append(c.slices, cycles)
	c.counter.Set(cycles)
	for c.counter.Remaining() > 0 {
		c.counter.Consume(c.cost)
		c.steps++
		if c.onStep != nil {
			c.onStep(c.steps)
		}
	}
	return cycles - c.counter.Remaining()
}

func (c *scriptedCore) GetState(sel StateSelector) uint32 {
	if line, ok := sel.IsInputLine(); ok {
		return c.lines[line]
	}
	return 0
}

func (c *scriptedCore) SetState(sel StateSelector, value uint32) {
	if line, ok := sel.IsInputLine(); ok {
		c.lines[line] = value
	}
}

func (c *scriptedCore) GetContext() ([]byte, error) { return nil, nil }
func (c *scriptedCore) SetContext(ctx []byte) error { return nil }

func (c *scriptedCore) total() int {
	sum := 0
	for _, s := range c.slices {
		sum += s
	}
	return sum
}

// encodeTMSFloat is the inverse of Convert32031ToFloat for normal values.
func encodeTMSFloat(f float32) uint32 {
	if f == 0 {
		return TMS_FLOAT_ZERO
	}
	bits := math.Float32bits(f)
	exp := int32(bits>>23&0xFF) - 127
	frac := bits & 0x7FFFFF
	if bits&0x80000000 == 0 {
		return uint32(uint8(int8(exp)))<<24 | frac
	}
	if frac == 0 {
		return uint32(uint8(int8(exp-1)))<<24 | 0x800000
	}
	return uint32(uint8(int8(exp)))<<24 | 0x800000 | (0x800000 - frac)
}

// testPoly describes one polygon for appendPoly. Coefficients not set are
// zero, so u and v are constant at the texture base.
type testPoly struct {
	depthScale float32 // z0 before the 1/65536 scale
	ooz        float32 // constant 1/z
	color      uint32
	texBase    uint32
	verts      [][2]int
}

func vertexWord(x, y int, last bool) uint32 {
	word := uint32(int32(x))<<16 | uint32(y)&0x3FFF
	if last {
		word |= 0x4000
	}
	return word
}

func appendPoly(words []uint32, p testPoly) []uint32 {
	hdr := make([]uint32, POLY_HEADER_WORDS)
	for i := range hdr {
		hdr[i] = TMS_FLOAT_ZERO
	}
	hdr[0] = encodeTMSFloat(p.depthScale)
	hdr[8] = encodeTMSFloat(p.ooz)
	hdr[10] = p.color
	hdr[11] = p.texBase
	hdr[12] = 0
	words = append(words, hdr...)
	for i, v := range p.verts {
		words = append(words, vertexWord(v[0], v[1], i == len(p.verts)-1), 0)
	}
	return words
}

var testTriangle = [][2]int{{-10, 10}, {10, 10}, {0, -10}}

// newTestAtlas builds a one-ROM atlas whose texel values follow x.
func newTestAtlas() *TextureAtlas {
	rom := make([]byte, 0x10000)
	for i := range rom {
		rom[i] = byte(i)
	}
	return NewTextureAtlas([][]byte{rom}, nil)
}

// eepromShift clocks the low n bits of bits into e, MSB first.
func eepromShift(e *EEPROM, bits uint32, n int) {
	e.SetChipSelect(1)
	for i := n - 1; i >= 0; i-- {
		e.SetData(bits>>i&1)
		e.SetClock(0)
		e.SetClock(1)
	}
	e.SetClock(0)
}

// eepromRead reads slot through the serial protocol.
func eepromRead(e *EEPROM, out *uint8, slot uint8) uint16 {
	eepromShift(e, 0x600|uint32(slot), 11)
	var value uint16
	for range 16 {
		e.SetClock(1)
		e.SetClock(0)
		bit := uint16(0)
		if *out&0x04 == 0 {
			bit = 1
		}
		value = value<<1 | bit
	}
	e.SetChipSelect(0)
	return value
}

// splitProgram splits a 68000 image into the even (hi) and odd (lo) ROM
// of a program pair.
func splitProgram(image []byte) (hi, lo []byte) {
	hi = make([]byte, len(image)/2)
	lo = make([]byte, len(image)/2)
	for i := range hi {
		hi[i] = image[i*2]
		lo[i] = image[i*2+1]
	}
	return hi, lo
}

const testProgramEntry = 0x400

// testProgram builds a 68000 image with the vector table pointing at code,
// which is placed at testProgramEntry.
func testProgram(code ...uint16) []byte {
	image := make([]byte, 0x1000)
	put32 := func(addr int, v uint32) {
		image[addr] = byte(v >> 24)
		image[addr+1] = byte(v >> 16)
		image[addr+2] = byte(v >> 8)
		image[addr+3] = byte(v)
	}
	put32(0, 0x00FFFFF0)
	put32(4, testProgramEntry)
	for i, w := range code {
		image[testProgramEntry+i*2] = byte(w >> 8)
		image[testProgramEntry+i*2+1] = byte(w)
	}
	return image
}

// opLoop is BRA.S to itself.
const opLoop = 0x60FE

func newTestRomSet(image []byte) *RomSet {
	hi, lo := splitProgram(image)
	tex := make([]byte, 0x10000)
	for i := range tex {
		tex[i] = byte(i)
	}
	audio := make([]byte, 0x8000)
	for i := 0; i < len(audio)/2; i++ {
		audio[i*2] = byte(i)
		audio[i*2+1] = 0x10
	}
	return &RomSet{
		Program:  [][]byte{hi, lo},
		Audio:    audio,
		Geometry: [][]byte{make([]byte, 0x100), make([]byte, 0x100)},
		TexData:  [][]byte{tex},
		TexMask:  [][]byte{make([]byte, 0x100)},
	}
}

func newTestMachine(t *testing.T, code ...uint16) (*Machine, *recordingBackend, *fakeSoundOutput) {
	t.Helper()
	if len(code) == 0 {
		code = []uint16{opLoop}
	}
	profile, err := LookupGameProfile("surfplnt")
	if err != nil {
		t.Fatalf("LookupGameProfile: %v", err)
	}
	backend := newRecordingBackend()
	sound := &fakeSoundOutput{}
	m, err := NewMachine(MachineConfig{
		Profile: profile,
		ROMs:    newTestRomSet(testProgram(code...)),
		Saved:   &SavedData{},
		Render:  backend,
		Sound:   sound,
		Width:   GAME_WIDTH,
		Height:  GAME_HEIGHT,
	})
	if err != nil {
		t.Fatalf("NewMachine: %v", err)
	}
	return m, backend, sound
}
