// render_software.go - Software rasterizer render backend

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
render_software.go - Software Rasterizer Backend

Pure Go implementation of RenderBackend:
- Barycentric fan rasterization of pre-transformed vertices
- Perspective correct UVs through the RHW weight
- Depth test LESS with depth write, switchable per primitive
- Alpha test on the texel alpha bit, src-alpha blending when enabled
- Nearest texel sampling with wraparound

The finished frame is copied to a front buffer under a lock so the
presentation goroutine can read it while the next frame is drawn.
*/

package main

import (
	"fmt"
	"math"
	"sync"
)

type softTexture struct {
	width, height int
	texels        []uint16
	locked        bool
}

// SoftwareRenderer rasterizes into an RGBA framebuffer.
type SoftwareRenderer struct {
	mutex sync.RWMutex

	width, height int
	colorBuffer   []byte
	depthBuffer   []float32
	frontBuffer   []byte

	textures    map[TextureHandle]*softTexture
	nextHandle  TextureHandle
	bound       *softTexture
	depthEnable bool
	blendEnable bool
	vertices    []RenderVertex

	triangles uint64
}

func NewSoftwareRenderer(width, height int) *SoftwareRenderer {
	r := &SoftwareRenderer{
		textures:    make(map[TextureHandle]*softTexture),
		depthEnable: true,
	}
	r.Resize(width, height)
	return r
}

// Resize reallocates the framebuffer.
func (r *SoftwareRenderer) Resize(width, height int) {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	r.width = width
	r.height = height
	pixelCount := width * height
	r.colorBuffer = make([]byte, pixelCount*4)
	r.depthBuffer = make([]float32, pixelCount)
	r.frontBuffer = make([]byte, pixelCount*4)
}

func (r *SoftwareRenderer) Size() (int, int) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()
	return r.width, r.height
}

// BeginFrame clears color to opaque black and depth to the far plane.
func (r *SoftwareRenderer) BeginFrame() error {
	for i := 0; i < len(r.colorBuffer); i += 4 {
		r.colorBuffer[i+0] = 0
		r.colorBuffer[i+1] = 0
		r.colorBuffer[i+2] = 0
		r.colorBuffer[i+3] = 0xFF
	}
	for i := range r.depthBuffer {
		r.depthBuffer[i] = math.MaxFloat32
	}
	return nil
}

// EndFrame publishes the finished frame.
func (r *SoftwareRenderer) EndFrame() error {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	copy(r.frontBuffer, r.colorBuffer)
	return nil
}

// GetFrame returns a copy of the last published frame.
func (r *SoftwareRenderer) GetFrame() []byte {
	r.mutex.RLock()
	defer r.mutex.RUnlock()
	frame := make([]byte, len(r.frontBuffer))
	copy(frame, r.frontBuffer)
	return frame
}

func (r *SoftwareRenderer) CreateTexture(width, height int, format TextureFormat) (TextureHandle, error) {
	if width <= 0 || height <= 0 {
		return NoTexture, fmt.Errorf("invalid texture size %dx%d", width, height)
	}
	if format != TextureFormatA1R5G5B5 {
		return NoTexture, fmt.Errorf("unsupported texture format %d", format)
	}
	r.nextHandle++
	r.textures[r.nextHandle] = &softTexture{
		width:  width,
		height: height,
		texels: make([]uint16, width*height),
	}
	return r.nextHandle, nil
}

func (r *SoftwareRenderer) texture(handle TextureHandle) (*softTexture, error) {
	tex, ok := r.textures[handle]
	if !ok {
		return nil, fmt.Errorf("unknown texture %d", handle)
	}
	return tex, nil
}

func (r *SoftwareRenderer) DestroyTexture(handle TextureHandle) error {
	tex, err := r.texture(handle)
	if err != nil {
		return err
	}
	if r.bound == tex {
		r.bound = nil
	}
	delete(r.textures, handle)
	return nil
}

func (r *SoftwareRenderer) LockTexture(handle TextureHandle) ([]uint16, int, error) {
	tex, err := r.texture(handle)
	if err != nil {
		return nil, 0, err
	}
	if tex.locked {
		return nil, 0, fmt.Errorf("texture %d already locked", handle)
	}
	tex.locked = true
	return tex.texels, tex.width, nil
}

func (r *SoftwareRenderer) UnlockTexture(handle TextureHandle) error {
	tex, err := r.texture(handle)
	if err != nil {
		return err
	}
	tex.locked = false
	return nil
}

// BindTexture binds handle; only slot 0 exists.
func (r *SoftwareRenderer) BindTexture(slot int, handle TextureHandle) {
	if slot != 0 {
		return
	}
	r.bound = r.textures[handle]
}

func (r *SoftwareRenderer) SetDepthTest(enabled bool)  { r.depthEnable = enabled }
func (r *SoftwareRenderer) SetAlphaBlend(enabled bool) { r.blendEnable = enabled }

func (r *SoftwareRenderer) SetVertexStream(vertices []RenderVertex) error {
	r.vertices = vertices
	return nil
}

// DrawFan draws triCount triangles sharing vertices[start].
func (r *SoftwareRenderer) DrawFan(start, triCount int) error {
	if start < 0 || start+triCount+2 > len(r.vertices) {
		return fmt.Errorf("fan %d+%d outside %d vertices", start, triCount+2, len(r.vertices))
	}
	v0 := &r.vertices[start]
	for i := 1; i <= triCount; i++ {
		r.rasterizeTriangle(v0, &r.vertices[start+i], &r.vertices[start+i+1])
	}
	return nil
}

func (r *SoftwareRenderer) Triangles() uint64 { return r.triangles }

func (r *SoftwareRenderer) rasterizeTriangle(v0, v1, v2 *RenderVertex) {
	r.triangles++

	minX := max(int(math.Floor(float64(min3f(v0.X, v1.X, v2.X)))), 0)
	maxX := min(int(math.Ceil(float64(max3f(v0.X, v1.X, v2.X)))), r.width)
	minY := max(int(math.Floor(float64(min3f(v0.Y, v1.Y, v2.Y)))), 0)
	maxY := min(int(math.Ceil(float64(max3f(v0.Y, v1.Y, v2.Y)))), r.height)

	area := edgeFunction(v0.X, v0.Y, v1.X, v1.Y, v2.X, v2.Y)
	if area == 0 {
		return
	}
	// No culling: wind every triangle the same way.
	if area < 0 {
		v0, v2 = v2, v0
		area = -area
	}
	invArea := 1.0 / area

	vertAlpha := float32(VERTEX_COLOR>>24) / 255.0

	for y := minY; y < maxY; y++ {
		rowBase := y * r.width
		py := float32(y) + 0.5

		for x := minX; x < maxX; x++ {
			px := float32(x) + 0.5

			w0 := edgeFunction(v1.X, v1.Y, v2.X, v2.Y, px, py)
			w1 := edgeFunction(v2.X, v2.Y, v0.X, v0.Y, px, py)
			w2 := edgeFunction(v0.X, v0.Y, v1.X, v1.Y, px, py)
			if w0 < 0 || w1 < 0 || w2 < 0 {
				continue
			}
			w0 *= invArea
			w1 *= invArea
			w2 *= invArea

			pixelIndex := rowBase + x
			z := w0*v0.Z + w1*v1.Z + w2*v2.Z
			if r.depthEnable && !(z < r.depthBuffer[pixelIndex]) {
				continue
			}

			cr, cg, cb, ca := float32(1), float32(1), float32(1), vertAlpha
			if r.bound != nil {
				rhw := w0*v0.RHW + w1*v1.RHW + w2*v2.RHW
				if rhw == 0 {
					continue
				}
				s := (w0*v0.U*v0.RHW + w1*v1.U*v1.RHW + w2*v2.U*v2.RHW) / rhw
				t := (w0*v0.V*v0.RHW + w1*v1.V*v1.RHW + w2*v2.V*v2.RHW) / rhw
				tr, tg, tb, ta := r.sampleTexture(s, t)
				cr, cg, cb, ca = tr, tg, tb, ta*vertAlpha
			}

			// Alpha test: GREATER than zero.
			if ca <= 0 {
				continue
			}

			if r.depthEnable {
				r.depthBuffer[pixelIndex] = z
			}

			idx := pixelIndex * 4
			if r.blendEnable {
				inv := 1 - ca
				cr = cr*ca + float32(r.colorBuffer[idx+0])/255.0*inv
				cg = cg*ca + float32(r.colorBuffer[idx+1])/255.0*inv
				cb = cb*ca + float32(r.colorBuffer[idx+2])/255.0*inv
			}
			r.colorBuffer[idx+0] = byte(clampf(cr, 0, 1) * 255)
			r.colorBuffer[idx+1] = byte(clampf(cg, 0, 1) * 255)
			r.colorBuffer[idx+2] = byte(clampf(cb, 0, 1) * 255)
			r.colorBuffer[idx+3] = 0xFF
		}
	}
}

// sampleTexture point samples the bound texture with wraparound.
func (r *SoftwareRenderer) sampleTexture(s, t float32) (red, green, blue, alpha float32) {
	tex := r.bound
	s -= float32(math.Floor(float64(s)))
	t -= float32(math.Floor(float64(t)))

	texX := min(max(int(s*float32(tex.width)), 0), tex.width-1)
	texY := min(max(int(t*float32(tex.height)), 0), tex.height-1)
	return unpackA1R5G5B5(tex.texels[texY*tex.width+texX])
}

func unpackA1R5G5B5(c uint16) (red, green, blue, alpha float32) {
	red = float32((c>>10)&0x1F) / 31.0
	green = float32((c>>5)&0x1F) / 31.0
	blue = float32(c&0x1F) / 31.0
	if c&0x8000 != 0 {
		alpha = 1
	}
	return red, green, blue, alpha
}

// edgeFunction computes the signed area of a parallelogram
func edgeFunction(ax, ay, bx, by, cx, cy float32) float32 {
	return (cx-ax)*(by-ay) - (cy-ay)*(bx-ax)
}

func min3f(a, b, c float32) float32 {
	return min(a, b, c)
}

func max3f(a, b, c float32) float32 {
	return max(a, b, c)
}

func clampf(v, minVal, maxVal float32) float32 {
	if v < minVal {
		return minVal
	}
	if v > maxVal {
		return maxVal
	}
	return v
}
