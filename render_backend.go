// render_backend.go - Render backend contract

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

// TextureHandle identifies a backend texture. NoTexture unbinds.
type TextureHandle int

const NoTexture TextureHandle = 0

type TextureFormat int

const (
	// TextureFormatA1R5G5B5 stores alpha in bit 15, then 5 bits each of
	// red, green and blue.
	TextureFormatA1R5G5B5 TextureFormat = iota
)

// VERTEX_COLOR is the diffuse color of every emitted vertex: white at half
// alpha, modulated with the texel.
const VERTEX_COLOR = 0x80FFFFFF

// RenderVertex is a pre-transformed screen space vertex. RHW is the
// homogeneous weight (1/z) used for perspective correct interpolation.
type RenderVertex struct {
	X, Y, Z float32
	RHW     float32
	Color   uint32
	U, V    float32
}

// RenderBackend is what the poly assembler and texture cache draw with.
// Texture data is written between LockTexture and UnlockTexture; the
// returned pitch is in texels.
type RenderBackend interface {
	BeginFrame() error
	EndFrame() error

	CreateTexture(width, height int, format TextureFormat) (TextureHandle, error)
	DestroyTexture(handle TextureHandle) error
	LockTexture(handle TextureHandle) (texels []uint16, pitch int, err error)
	UnlockTexture(handle TextureHandle) error
	BindTexture(slot int, handle TextureHandle)

	SetDepthTest(enabled bool)
	SetAlphaBlend(enabled bool)

	SetVertexStream(vertices []RenderVertex) error
	DrawFan(start, triCount int) error
}
