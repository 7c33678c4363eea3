// texture_cache.go - LRU cache of palettized texture windows

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
texture_cache.go - Texture Cache

Backend textures are 512x512 windows cut from the texture atlas and run
through one palette bank. An entry is reusable when its palette bank
checksum matches and either its base is the requested base or its UV
rectangle already contains the requested bounds.

Entries live in an arena and are chained most recently used first by
index. The resident count is capped at the limit, except that the LRU
tail is never evicted during the frame it was last used in; the cache
grows instead of thrashing. The surplus is destroyed from the tail as
soon as those entries go stale, at the next frame or miss, and their
arena slots are reused.
*/

package main

import (
	"fmt"

	"github.com/golang/glog"
)

const (
	MAX_TEXTURES      = 100
	TEXTURE_WINDOW    = 512
	textureWindowHalf = TEXTURE_WINDOW / 2
	noEntry           = -1
)

// UVBounds is an axis aligned rectangle in atlas texel space.
type UVBounds struct {
	MinU, MaxU float32
	MinV, MaxV float32
}

// Contains reports whether b fully covers o.
func (b UVBounds) Contains(o UVBounds) bool {
	return b.MinU <= o.MinU && b.MaxU >= o.MaxU && b.MinV <= o.MinV && b.MaxV >= o.MaxV
}

// TextureRef is what a resolved primitive needs to map its UVs.
type TextureRef struct {
	Handle   TextureHandle
	Bounds   UVBounds
	OOWidth  float32
	OOHeight float32
}

// TextureCacheEntry is one resident texture window.
type TextureCacheEntry struct {
	base     uint32
	checksum uint32
	ref      TextureRef
	lastUsed uint32

	prev, next int
}

type TextureCacheStats struct {
	Hits      uint64
	Creations uint64
	Evictions uint64
}

type TextureCache struct {
	entries []TextureCacheEntry
	free    []int
	head    int
	tail    int
	count   int
	limit   int
	frame   uint32

	backend RenderBackend
	atlas   *TextureAtlas
	palette *PaletteRAM
	colors  [PALETTE_BANK_ENTRIES]uint16

	stats TextureCacheStats
}

func NewTextureCache(backend RenderBackend, atlas *TextureAtlas, palette *PaletteRAM, limit int) *TextureCache {
	return &TextureCache{
		head:    noEntry,
		tail:    noEntry,
		limit:   limit,
		backend: backend,
		atlas:   atlas,
		palette: palette,
	}
}

// SetFrame sets the frame index stamped on entries touched from now on
// and gives back any growth left over from earlier frames.
func (c *TextureCache) SetFrame(frame uint32) {
	c.frame = frame
	c.trim()
}

// trim destroys stale LRU entries while the cache is over its limit.
// Entries used in the current frame are kept.
func (c *TextureCache) trim() {
	for c.count > c.limit && c.tail != noEntry && c.entries[c.tail].lastUsed != c.frame {
		slot := c.tail
		c.unlink(slot)
		if err := c.backend.DestroyTexture(c.entries[slot].ref.Handle); err != nil {
			glog.Warningf("texture cache: destroying handle %d: %v", c.entries[slot].ref.Handle, err)
		}
		c.entries[slot] = TextureCacheEntry{prev: noEntry, next: noEntry}
		c.free = append(c.free, slot)
		c.stats.Evictions++
	}
}

func (c *TextureCache) Len() int                 { return c.count }
func (c *TextureCache) Stats() TextureCacheStats { return c.stats }

// Handles lists resident handles from most to least recently used.
func (c *TextureCache) Handles() []TextureHandle {
	handles := make([]TextureHandle, 0, c.count)
	for i := c.head; i != noEntry; i = c.entries[i].next {
		handles = append(handles, c.entries[i].ref.Handle)
	}
	return handles
}

func (c *TextureCache) unlink(i int) {
	e := &c.entries[i]
	if e.prev != noEntry {
		c.entries[e.prev].next = e.next
	} else {
		c.head = e.next
	}
	if e.next != noEntry {
		c.entries[e.next].prev = e.prev
	} else {
		c.tail = e.prev
	}
	e.prev, e.next = noEntry, noEntry
	c.count--
}

func (c *TextureCache) pushFront(i int) {
	e := &c.entries[i]
	e.prev = noEntry
	e.next = c.head
	if c.head != noEntry {
		c.entries[c.head].prev = i
	}
	c.head = i
	if c.tail == noEntry {
		c.tail = i
	}
	c.count++
}

// Resolve finds or builds a texture for base and bounds using palette
// bank. A backend failure is returned and leaves the cache consistent.
func (c *TextureCache) Resolve(base uint32, want UVBounds, bank int) (TextureRef, error) {
	checksum := c.palette.Checksum(bank)

	for i := c.head; i != noEntry; i = c.entries[i].next {
		e := &c.entries[i]
		if e.checksum == checksum && (e.base == base || e.ref.Bounds.Contains(want)) {
			c.unlink(i)
			e.lastUsed = c.frame
			c.pushFront(i)
			c.stats.Hits++
			return e.ref, nil
		}
	}

	startX, stopX, startY, stopY := c.window(base)
	c.trim()

	var slot int
	if c.count < c.limit || (c.tail != noEntry && c.entries[c.tail].lastUsed == c.frame) {
		handle, err := c.backend.CreateTexture(stopX-startX, stopY-startY, TextureFormatA1R5G5B5)
		if err != nil {
			return TextureRef{}, &VideoError{
				Operation: "texture allocation",
				Details:   fmt.Sprintf("%dx%d", stopX-startX, stopY-startY),
				Err:       err,
			}
		}
		if n := len(c.free); n > 0 {
			slot = c.free[n-1]
			c.free = c.free[:n-1]
		} else {
			c.entries = append(c.entries, TextureCacheEntry{prev: noEntry, next: noEntry})
			slot = len(c.entries) - 1
		}
		c.entries[slot].ref.Handle = handle
		c.stats.Creations++
		if c.count >= c.limit {
			glog.Warningf("texture cache grew to %d entries in frame %d", c.count+1, c.frame)
		}
	} else {
		slot = c.tail
		c.unlink(slot)
		c.stats.Evictions++
	}

	e := &c.entries[slot]
	if err := c.fill(e.ref.Handle, startX, stopX, startY, stopY, bank); err != nil {
		c.pushFront(slot)
		e.checksum = ^checksum
		return TextureRef{}, err
	}

	e.base = base
	e.checksum = checksum
	e.lastUsed = c.frame
	e.ref.Bounds = UVBounds{
		MinU: float32(startX), MaxU: float32(stopX),
		MinV: float32(startY), MaxV: float32(stopY),
	}
	e.ref.OOWidth = 1 / float32(stopX-startX)
	e.ref.OOHeight = 1 / float32(stopY-startY)
	c.pushFront(slot)
	return e.ref, nil
}

// window centers a TEXTURE_WINDOW square on base. Overflow on one edge
// moves the opposite edge out so the window keeps its size.
func (c *TextureCache) window(base uint32) (minU, maxU, minV, maxV int) {
	rows := c.atlas.Height()
	u := int(base & (ATLAS_WIDTH - 1))
	v := int((base >> 12) & uint32(rows-1))
	minU, maxU = u-textureWindowHalf, u+textureWindowHalf
	minV, maxV = v-textureWindowHalf, v+textureWindowHalf

	if minU < 0 {
		maxU += -minU
		minU = 0
	}
	if minV < 0 {
		maxV += -minV
		minV = 0
	}
	if maxU > ATLAS_WIDTH {
		minU -= maxU - ATLAS_WIDTH
		maxU = ATLAS_WIDTH
	}
	if maxV > rows {
		minV -= maxV - rows
		maxV = rows
	}
	return minU, maxU, minV, maxV
}

// fill converts the window to A1R5G5B5 through the palette bank. Mask
// bit 15 set in the atlas means transparent.
func (c *TextureCache) fill(handle TextureHandle, startX, stopX, startY, stopY, bank int) error {
	texels, pitch, err := c.backend.LockTexture(handle)
	if err != nil {
		return &VideoError{Operation: "texture lock", Details: fmt.Sprintf("handle %d", handle), Err: err}
	}
	c.palette.Bank(bank, &c.colors)
	for y := startY; y < stopY; y++ {
		row := texels[(y-startY)*pitch:]
		for x := startX; x < stopX; x++ {
			src := c.atlas.Texel(x, y)
			row[x-startX] = c.colors[src&0xFF] | (^src & TEXTURE_MASK_BIT)
		}
	}
	if err := c.backend.UnlockTexture(handle); err != nil {
		return &VideoError{Operation: "texture unlock", Details: fmt.Sprintf("handle %d", handle), Err: err}
	}
	return nil
}

// Close destroys every backend texture the cache owns.
func (c *TextureCache) Close() error {
	var first error
	for i := c.head; i != noEntry; i = c.entries[i].next {
		if err := c.backend.DestroyTexture(c.entries[i].ref.Handle); err != nil && first == nil {
			first = err
		}
	}
	c.entries = nil
	c.free = nil
	c.head, c.tail, c.count = noEntry, noEntry, 0
	return first
}
