// poly_assembler.go - Geometry word stream decoder and draw submission

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
poly_assembler.go - Polygon Assembler

At the end of each frame the words the geometry DSP wrote to its render
port are decoded into screen space triangle fans.

Polygon layout:

    word  0       depth scale z0 (TMS float, scaled by 1/65536)
    words 1-9     plane coefficients, TMS floats:
                    1 v/z dy   2 v/z dx   3 1/z dy   4 1/z dx
                    5 u/z dy   6 u/z dx   7 v/z base 8 1/z base 9 u/z base
    word  10      palette bank in bits 0-6, 0x7F means alpha blended
    word  11      texture base (atlas texel offset)
    word  12      unused
    words 13...   vertices, two words apart: x in bits 31-16, y in bits
                  13-0, both signed. A vertex whose bits 14 and 15 differ
                  closes the polygon.

A negative z0 disables the depth test for the polygon and flips the sign of
its depths. Otherwise any vertex behind the eye culls the whole polygon.

The UV bounding box handed to the texture cache is computed from vertex
positions clamped to the visible frame. The lower y clamp uses half the
frame width rather than half its height; the emitted vertices themselves
are never clipped.
*/

package main

import "github.com/golang/glog"

const (
	GAME_WIDTH        = 576
	GAME_HEIGHT       = 432
	MAX_POLYGONS      = 4000
	POLY_STREAM_WORDS = MAX_POLYGONS * 21
	POLY_HEADER_WORDS = 13
	POLY_VERTEX_WORDS = 2
	POLY_MAX_VERTICES = 20
	polyColorMask     = 0x7F
	polyAlphaColor    = 0x7F
	polyDepthScale    = 1.0 / 65536.0
)

// GeometryWordStream collects render port writes for one frame.
type GeometryWordStream struct {
	words    []uint32
	overflow uint64
}

func NewGeometryWordStream() *GeometryWordStream {
	return &GeometryWordStream{words: make([]uint32, 0, POLY_STREAM_WORDS)}
}

// Append adds a word. Words past capacity are counted and dropped.
func (s *GeometryWordStream) Append(word uint32) {
	if len(s.words) >= POLY_STREAM_WORDS {
		s.overflow++
		return
	}
	s.words = append(s.words, word)
}

func (s *GeometryWordStream) Words() []uint32  { return s.words }
func (s *GeometryWordStream) Len() int         { return len(s.words) }
func (s *GeometryWordStream) Overflow() uint64 { return s.overflow }

// Reset empties the stream for the next frame.
func (s *GeometryWordStream) Reset() {
	s.words = s.words[:0]
}

func isPolyEnd(word uint32) bool {
	return (word^(word>>1))&0x4000 != 0
}

// Primitive is one polygon ready to draw as a fan.
type Primitive struct {
	StartIndex int
	TriCount   int
	Texture    TextureHandle
	NoZBuffer  bool
	AlphaBlend bool
	TexBase    uint32
}

type PolyStats struct {
	Polygons   int
	Primitives int
	Culled     int
	Malformed  int
	Vertices   int
	DrawCalls  int
}

type polyVertex struct {
	x, y, z, rhw float32
	u, v         float32
}

type PolyAssembler struct {
	cache     *TextureCache
	backend   RenderBackend
	atlasSize uint32
	xScale    float32
	yScale    float32

	vertices   []RenderVertex
	primitives []Primitive
	scratch    [POLY_MAX_VERTICES]polyVertex
	stats      PolyStats
}

func NewPolyAssembler(cache *TextureCache, backend RenderBackend, atlasSize uint32, width, height int) *PolyAssembler {
	a := &PolyAssembler{
		cache:      cache,
		backend:    backend,
		atlasSize:  atlasSize,
		vertices:   make([]RenderVertex, 0, MAX_POLYGONS*3),
		primitives: make([]Primitive, 0, MAX_POLYGONS),
	}
	a.SetOutputSize(width, height)
	return a
}

// SetOutputSize scales emitted positions to a width x height target.
func (a *PolyAssembler) SetOutputSize(width, height int) {
	a.xScale = float32(width) / GAME_WIDTH
	a.yScale = float32(height) / GAME_HEIGHT
}

func (a *PolyAssembler) Stats() PolyStats         { return a.stats }
func (a *PolyAssembler) Primitives() []Primitive  { return a.primitives }
func (a *PolyAssembler) Vertices() []RenderVertex { return a.vertices }

// Render decodes the stream, draws it and empties it.
func (a *PolyAssembler) Render(stream *GeometryWordStream) error {
	defer stream.Reset()
	if err := a.Assemble(stream.Words()); err != nil {
		return err
	}
	return a.Submit()
}

type planeCoeffs struct {
	dx, dy, base float32
}

func (c planeCoeffs) at(x, y float32) float32 {
	return c.dy*y + c.dx*x + c.base
}

// Assemble decodes words into primitives and vertices. Texture resolution
// failures are fatal and returned.
func (a *PolyAssembler) Assemble(words []uint32) error {
	a.vertices = a.vertices[:0]
	a.primitives = a.primitives[:0]
	a.stats = PolyStats{}

	for p := 0; p < len(words); {
		if p+POLY_HEADER_WORDS+POLY_VERTEX_WORDS >= len(words) {
			glog.V(1).Infof("poly stream truncated at word %d of %d", p, len(words))
			break
		}
		a.stats.Polygons++

		hdr := words[p : p+POLY_HEADER_WORDS]
		z0 := Convert32031ToFloat(hdr[0]) * polyDepthScale
		voz := planeCoeffs{dy: Convert32031ToFloat(hdr[1]), dx: Convert32031ToFloat(hdr[2]), base: Convert32031ToFloat(hdr[7])}
		ooz := planeCoeffs{dy: Convert32031ToFloat(hdr[3]), dx: Convert32031ToFloat(hdr[4]), base: Convert32031ToFloat(hdr[8])}
		uoz := planeCoeffs{dy: Convert32031ToFloat(hdr[5]), dx: Convert32031ToFloat(hdr[6]), base: Convert32031ToFloat(hdr[9])}
		color := int(hdr[10] & polyColorMask)

		prim := Primitive{
			StartIndex: len(a.vertices),
			NoZBuffer:  z0 < 0,
			AlphaBlend: color == polyAlphaColor,
			TexBase:    hdr[11] % a.atlasSize,
		}
		baseU := float32(prim.TexBase % ATLAS_WIDTH)
		baseV := float32(prim.TexBase / ATLAS_WIDTH)

		var bounds UVBounds
		skip := false
		count := 0

		addVertex := func(word uint32) {
			x := float32(int32(word) >> 16)
			y := float32(int32(word<<18) >> 18)
			rhw := ooz.at(x, y)
			z := 1 / rhw

			clipX := clampf(x, -GAME_WIDTH/2, GAME_WIDTH/2)
			clipY := y
			if y < -GAME_HEIGHT/2 {
				clipY = -GAME_WIDTH / 2
			} else if y > GAME_HEIGHT/2 {
				clipY = GAME_HEIGHT / 2
			}
			clipU := baseU + uoz.at(clipX, clipY)*z
			clipV := baseV + voz.at(clipX, clipY)*z
			if count == 0 {
				bounds = UVBounds{MinU: clipU, MaxU: clipU, MinV: clipV, MaxV: clipV}
			} else {
				bounds.MinU = min(bounds.MinU, clipU)
				bounds.MaxU = max(bounds.MaxU, clipU)
				bounds.MinV = min(bounds.MinV, clipV)
				bounds.MaxV = max(bounds.MaxV, clipV)
			}

			depth := z0 * z
			if prim.NoZBuffer {
				depth = -depth
			} else if depth < 0 {
				skip = true
			}

			if count < POLY_MAX_VERTICES {
				a.scratch[count] = polyVertex{
					x: x, y: y, z: depth, rhw: rhw,
					u: baseU + uoz.at(x, y)*z,
					v: baseV + voz.at(x, y)*z,
				}
			}
			count++
		}

		p += POLY_HEADER_WORDS
		addVertex(words[p])
		p += POLY_VERTEX_WORDS
		addVertex(words[p])
		truncated := false
		for !isPolyEnd(words[p]) {
			p += POLY_VERTEX_WORDS
			if p >= len(words) {
				truncated = true
				break
			}
			addVertex(words[p])
			prim.TriCount++
		}
		p += POLY_VERTEX_WORDS

		if truncated {
			glog.V(1).Infof("poly stream ends inside a polygon")
			a.stats.Malformed++
			break
		}
		if count > POLY_MAX_VERTICES {
			glog.V(1).Infof("polygon with %d vertices skipped", count)
			a.stats.Malformed++
			continue
		}
		if skip {
			a.stats.Culled++
			continue
		}

		tex, err := a.cache.Resolve(prim.TexBase, bounds, color)
		if err != nil {
			return err
		}
		prim.Texture = tex.Handle

		for _, v := range a.scratch[:count] {
			a.vertices = append(a.vertices, RenderVertex{
				X:     (GAME_WIDTH/2+v.x)*a.xScale - 0.5,
				Y:     (GAME_HEIGHT/2-v.y)*a.yScale - 0.5,
				Z:     v.z,
				RHW:   v.rhw,
				Color: VERTEX_COLOR,
				U:     (v.u - tex.Bounds.MinU) * tex.OOWidth,
				V:     (v.v - tex.Bounds.MinV) * tex.OOHeight,
			})
		}
		a.primitives = append(a.primitives, prim)
		a.stats.Primitives++
		a.stats.Vertices += count
	}
	return nil
}

// Submit issues the assembled primitives in order, changing backend state
// only where it differs from the previous primitive.
func (a *PolyAssembler) Submit() error {
	if err := a.backend.SetVertexStream(a.vertices); err != nil {
		return &VideoError{Operation: "vertex stream", Details: "set stream source", Err: err}
	}

	a.backend.BindTexture(0, NoTexture)
	a.backend.SetAlphaBlend(false)
	a.backend.SetDepthTest(true)
	lastTexture := NoTexture
	lastAlpha := false
	lastNoZ := false

	for _, prim := range a.primitives {
		if prim.NoZBuffer != lastNoZ {
			lastNoZ = prim.NoZBuffer
			a.backend.SetDepthTest(!lastNoZ)
		}
		if prim.AlphaBlend != lastAlpha {
			lastAlpha = prim.AlphaBlend
			a.backend.SetAlphaBlend(lastAlpha)
		}
		if prim.Texture != lastTexture {
			lastTexture = prim.Texture
			a.backend.BindTexture(0, lastTexture)
		}
		if err := a.backend.DrawFan(prim.StartIndex, prim.TriCount); err != nil {
			return &VideoError{Operation: "draw", Details: "triangle fan", Err: err}
		}
		a.stats.DrawCalls++
	}
	a.backend.BindTexture(0, NoTexture)
	return nil
}
