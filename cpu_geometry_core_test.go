// cpu_geometry_core_test.go - Geometry DSP kernel tests

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
	"reflect"
	"testing"
)

func newTestGeometry() (*GeometryCore, *MainBus, *GeometryWordStream) {
	bus := NewMainBus()
	stream := NewGeometryWordStream()
	return NewGeometryCore(bus, stream), bus, stream
}

// postDisplayList writes a render command and its words into the mailbox
// the way the main program does.
func postDisplayList(bus *MainBus, words ...uint32) {
	mailbox := WORK_RAM_BASE + DSP_MAILBOX*2
	bus.Write16(uint32(mailbox), DSP_CMD_RENDER)
	bus.Write16(uint32(mailbox+2), uint16(len(words)))
	for i, w := range words {
		bus.Write16(uint32(mailbox+4+i*4), uint16(w>>16))
		bus.Write16(uint32(mailbox+6+i*4), uint16(w))
	}
}

func TestGeometryCore_StartsHalted(t *testing.T) {
	c, bus, _ := newTestGeometry()
	if !c.Halted() {
		t.Fatalf("geometry core should start halted")
	}
	if got := c.Execute(100); got != 100 {
		t.Fatalf("halted Execute = %d, want 100", got)
	}
	c.SetState(InputLine(dspInterruptLine), 1)
	if c.GetState(InputLine(dspInterruptLine)) != 0 {
		t.Fatalf("halted core latched an interrupt")
	}

	c.SetHalted(false)
	if got := bus.Read16(WORK_RAM_BASE + DSP_MAILBOX*2); got != DSP_CMD_READY {
		t.Fatalf("mailbox = %04X after release, want %04X", got, DSP_CMD_READY)
	}
}

func TestGeometryCore_StreamsDisplayList(t *testing.T) {
	c, bus, stream := newTestGeometry()
	c.SetHalted(false)
	postDisplayList(bus, 0x12345678, 0xCAFEBABE)

	// Nothing happens until the interrupt.
	c.Execute(1000)
	if stream.Len() != 0 {
		t.Fatalf("streamed without an interrupt")
	}

	c.SetState(InputLine(dspInterruptLine), 1)
	if got := c.Execute(1000); got != 1000 {
		t.Fatalf("Execute = %d, idle time counts as consumed", got)
	}
	if !reflect.DeepEqual(stream.Words(), []uint32{0x12345678, 0xCAFEBABE}) {
		t.Fatalf("stream = %08X", stream.Words())
	}
	if got := bus.Read16(WORK_RAM_BASE + DSP_MAILBOX*2); got != DSP_CMD_DONE {
		t.Fatalf("mailbox = %04X, want done", got)
	}
}

func TestGeometryCore_CycleCost(t *testing.T) {
	c, bus, stream := newTestGeometry()
	c.SetHalted(false)
	postDisplayList(bus, 1, 2, 3)
	c.SetState(InputLine(dspInterruptLine), 1)

	c.Execute(dspCommandCycles + dspWordCycles)
	if stream.Len() != 1 {
		t.Fatalf("stream has %d words after command plus one word, want 1", stream.Len())
	}
	if c.GetState(Register(geometryRegState)) != uint32(geometryStreaming) {
		t.Fatalf("kernel left streaming early")
	}
	c.Execute(3 * dspWordCycles)
	if stream.Len() != 3 || c.GetState(Register(geometryRegState)) != uint32(geometryIdle) {
		t.Fatalf("stream=%d state=%d, want 3 words and idle", stream.Len(), c.GetState(Register(geometryRegState)))
	}
}

func TestGeometryCore_IgnoresUnknownCommand(t *testing.T) {
	c, bus, stream := newTestGeometry()
	c.SetHalted(false)
	bus.Write16(WORK_RAM_BASE+DSP_MAILBOX*2, 7)
	c.SetState(InputLine(dspInterruptLine), 1)
	c.Execute(1000)
	if stream.Len() != 0 {
		t.Fatalf("unknown command streamed %d words", stream.Len())
	}
	if got := bus.Read16(WORK_RAM_BASE + DSP_MAILBOX*2); got != 7 {
		t.Fatalf("mailbox = %04X, unknown commands are left alone", got)
	}
}

// splitGeometryWords builds the low and high 16-bit ROM images for words.
func splitGeometryWords(words ...uint32) (lo, hi []byte) {
	lo = make([]byte, len(words)*2)
	hi = make([]byte, len(words)*2)
	for i, w := range words {
		lo[i*2], lo[i*2+1] = byte(w), byte(w>>8)
		hi[i*2], hi[i*2+1] = byte(w>>16), byte(w>>24)
	}
	return lo, hi
}

func postROMList(bus *MainBus, offset uint32, count int) {
	mailbox := uint32(WORK_RAM_BASE + DSP_MAILBOX*2)
	bus.Write16(mailbox, DSP_CMD_ROM_LIST)
	bus.Write16(mailbox+2, uint16(count))
	bus.Write16(mailbox+4, uint16(offset>>16))
	bus.Write16(mailbox+6, uint16(offset))
}

func TestGeometryCore_StreamsROMTable(t *testing.T) {
	tests := []struct {
		name   string
		offset uint32
		count  int
		want   []uint32
	}{
		{"middle", 2, 2, []uint32{0x33333333, 0x44444444}},
		{"start", 0, 1, []uint32{0x11111111}},
		{"clamped at end", DSP_ROM_WORDS - 1, 5, []uint32{0}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			c, bus, stream := newTestGeometry()
			c.LoadROMs(splitGeometryWords(0x11111111, 0x22222222, 0x33333333, 0x44444444, 0x55555555))
			c.SetHalted(false)
			postROMList(bus, tc.offset, tc.count)
			c.SetState(InputLine(dspInterruptLine), 1)
			c.Execute(1000)

			if !reflect.DeepEqual(stream.Words(), tc.want) {
				t.Fatalf("stream = %08X, want %08X", stream.Words(), tc.want)
			}
			if got := bus.Read16(WORK_RAM_BASE + DSP_MAILBOX*2); got != DSP_CMD_DONE {
				t.Fatalf("mailbox = %04X, want done", got)
			}
		})
	}
}

func TestGeometryCore_AddressSpace(t *testing.T) {
	c, bus, stream := newTestGeometry()

	c.LoadROMs([]byte{0x34, 0x12, 0x78, 0x56}, []byte{0xCD, 0xAB, 0x01, 0xEF})
	if got := c.readWord(DSP_ROM_BASE); got != 0xABCD1234 {
		t.Fatalf("ROM word 0 = %08X, want ABCD1234", got)
	}
	if got := c.readWord(DSP_ROM_BASE + 1); got != 0xEF015678 {
		t.Fatalf("ROM word 1 = %08X, want EF015678", got)
	}

	c.writeWord(DSP_RAM_BASE+5, 0xDEADBEEF)
	if got := c.readWord(DSP_RAM_BASE + 5); got != 0xDEADBEEF {
		t.Fatalf("RAM word = %08X", got)
	}

	bus.Write16(WORK_RAM_BASE+0x20, 0xFFFE)
	if got := c.readWord(0x10); got != 0xFFFFFFFE {
		t.Fatalf("shared word = %08X, want sign extended FFFFFFFE", got)
	}
	c.writeWord(0x11, 0x00012345)
	if got := bus.Read16(WORK_RAM_BASE + 0x22); got != 0x2345 {
		t.Fatalf("shared write = %04X, want low half 2345", got)
	}

	c.writeWord(DSP_RENDER_BASE+3, 0x55)
	if stream.Len() != 1 || stream.Words()[0] != 0x55 {
		t.Fatalf("render port write not streamed")
	}
}

func TestGeometryCore_ContextRoundTrip(t *testing.T) {
	c, bus, _ := newTestGeometry()
	c.SetHalted(false)
	postDisplayList(bus, 1, 2, 3, 4)
	c.SetState(InputLine(dspInterruptLine), 1)
	c.Execute(dspCommandCycles + 2*dspWordCycles)

	ctx, err := c.GetContext()
	if err != nil {
		t.Fatalf("GetContext: %v", err)
	}
	restored, _, _ := newTestGeometry()
	if err := restored.SetContext(ctx); err != nil {
		t.Fatalf("SetContext: %v", err)
	}
	if restored.Halted() || restored.GetState(SEL_PC) != 2 || restored.GetState(Register(geometryRegListLen)) != 4 {
		t.Fatalf("restored PC=%d len=%d halted=%v", restored.GetState(SEL_PC),
			restored.GetState(Register(geometryRegListLen)), restored.Halted())
	}
}
