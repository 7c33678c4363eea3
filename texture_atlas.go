// texture_atlas.go - Expanded texture source atlas

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
texture_atlas.go - Texture Atlas

The board's texture data ROMs hold 8-bit palette indices laid out as 2x2
blocks spread over groups of four ROMs. Each group covers 2048 rows of the
4096-texel wide atlas:

    ROM 0  (y,   x+1)      ROM 2  (y,   x)
    ROM 1  (y+1, x+1)      ROM 3  (y+1, x)

    offset = (y/2)*2048 + x/2

Mask ROMs add a transparency bit as bit 15. Each mask ROM covers a
1024-texel wide column stripe, one bit per texel.
*/

package main

const (
	ATLAS_WIDTH         = 4096
	TEXDATA_ROM_SIZE    = 0x400000
	TEXMASK_ROM_SIZE    = 0x020000
	TEXTURE_MASK_BIT    = 0x8000
	texMaskStripeWidth  = 1024
	texDataGroupRomSize = 4
)

// TextureAtlas is the expanded 16-bit texture source.
type TextureAtlas struct {
	texels []uint16
	height int
}

// NewTextureAtlas expands data ROMs in groups of four plus their masks.
func NewTextureAtlas(data, masks [][]byte) *TextureAtlas {
	height := len(data) * TEXDATA_ROM_SIZE / ATLAS_WIDTH
	a := &TextureAtlas{
		texels: make([]uint16, height*ATLAS_WIDTH),
		height: height,
	}

	for y := 0; y < height; y += 2 {
		for x := 0; x < ATLAS_WIDTH; x += 2 {
			offset := (y/2)*(ATLAS_WIDTH/2) + x/2
			group := (offset / TEXDATA_ROM_SIZE) * texDataGroupRomSize
			lo := offset % TEXDATA_ROM_SIZE
			a.set(x+1, y, romByte(data, group+0, lo))
			a.set(x+1, y+1, romByte(data, group+1, lo))
			a.set(x, y, romByte(data, group+2, lo))
			a.set(x, y+1, romByte(data, group+3, lo))
		}
	}

	maskRows := min(len(masks)*TEXMASK_ROM_SIZE*8/ATLAS_WIDTH, height)
	for y := 0; y < maskRows; y++ {
		for x := 0; x < ATLAS_WIDTH; x++ {
			offset := (x/texMaskStripeWidth)*TEXMASK_ROM_SIZE + (y*texMaskStripeWidth+x%texMaskStripeWidth)/8
			rom := offset / TEXMASK_ROM_SIZE
			if rom >= len(masks) {
				continue
			}
			if romByte(masks, rom, offset%TEXMASK_ROM_SIZE)&(1<<(x%8)) != 0 {
				a.texels[y*ATLAS_WIDTH+x] |= TEXTURE_MASK_BIT
			}
		}
	}
	return a
}

func romByte(roms [][]byte, rom, offset int) byte {
	if rom >= len(roms) || offset >= len(roms[rom]) {
		return 0
	}
	return roms[rom][offset]
}

func (a *TextureAtlas) set(x, y int, v byte) {
	a.texels[y*ATLAS_WIDTH+x] = uint16(v)
}

func (a *TextureAtlas) Width() int  { return ATLAS_WIDTH }
func (a *TextureAtlas) Height() int { return a.height }

// Size is the number of texels, the modulus applied to texture bases.
func (a *TextureAtlas) Size() uint32 { return uint32(len(a.texels)) }

// Texel reads with wraparound on both axes. The height is a power of two
// for every supported board.
func (a *TextureAtlas) Texel(x, y int) uint16 {
	if a.height == 0 {
		return 0
	}
	return a.texels[(y&(a.height-1))*ATLAS_WIDTH+(x&(ATLAS_WIDTH-1))]
}
