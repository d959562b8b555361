package video

import (
	"github.com/kalida-labs/dmgo/addr"
	"github.com/kalida-labs/dmgo/bit"
)

// Bus is the subset of the MMU the PPU reads from. RenderScanline never
// writes through it; the only state it changes besides the frame buffer
// is the PPU's own window line counter.
type Bus interface {
	LCDC() uint8
	SCX() uint8
	SCY() uint8
	WX() uint8
	WY() uint8
	BGP() uint8
	OBP0() uint8
	OBP1() uint8
	VRAM() []byte
	OAM() []byte
}

const (
	lcdcBGWindowEnable  = 0
	lcdcSpriteEnable    = 1
	lcdcSpriteSize      = 2
	lcdcBGTileMap       = 3
	lcdcTileDataSelect  = 4
	lcdcWindowEnable    = 5
	lcdcWindowTileMap   = 6
	lcdcDisplayEnable   = 7
)

// PPU renders one scanline at a time into a FrameBuffer, tracking only
// the window's own per-frame line counter as persistent state (§4.6).
type PPU struct {
	bus         Bus
	framebuffer *FrameBuffer
	windowLine  int
}

func New(bus Bus) *PPU {
	return &PPU{bus: bus, framebuffer: NewFrameBuffer()}
}

func (p *PPU) FrameBuffer() *FrameBuffer { return p.framebuffer }

// ResetWindowLine is called once per frame, before line 0 (§4.7).
func (p *PPU) ResetWindowLine() { p.windowLine = 0 }

func (p *PPU) lcdcBit(index uint8) bool {
	return bit.IsSet(index, p.bus.LCDC())
}

// RenderScanline composites background, window and sprites for line y
// into the frame buffer (§4.6). Pure in bus state.
func (p *PPU) RenderScanline(y int) {
	bgColor := make([]uint8, Width) // 2-bit BG/window color index, for sprite priority

	if p.lcdcBit(lcdcDisplayEnable) {
		p.renderBackground(y, bgColor)
		windowDrawn := p.renderWindow(y, bgColor)
		p.renderSprites(y, bgColor)
		if windowDrawn {
			p.windowLine++
		}
	} else {
		for x := 0; x < Width; x++ {
			p.framebuffer.set(x, y, 0)
		}
	}
}

func (p *PPU) tileRow(tileDataUnsigned bool, tileIndex uint8, rowInTile int) (low, high byte) {
	vram := p.bus.VRAM()
	var base int
	if tileDataUnsigned {
		base = int(addr.TileDataUnsigned) - int(addr.VRAMStart) + int(tileIndex)*16
	} else {
		base = int(addr.TileDataSigned) - int(addr.VRAMStart) + int(int8(tileIndex))*16
	}
	offset := base + rowInTile*2
	return vram[offset], vram[offset+1]
}

func tileColor(low, high byte, bitIndex uint8) uint8 {
	color := uint8(0)
	if bit.IsSet(bitIndex, low) {
		color |= 1
	}
	if bit.IsSet(bitIndex, high) {
		color |= 2
	}
	return color
}

func applyPalette(palette byte, color uint8) uint8 {
	return (palette >> (color * 2)) & 0x03
}

func (p *PPU) renderBackground(y int, bgColor []uint8) {
	if !p.lcdcBit(lcdcBGWindowEnable) {
		shade := applyPalette(p.bus.BGP(), 0)
		for x := 0; x < Width; x++ {
			p.framebuffer.set(x, y, shade)
		}
		return
	}

	unsigned := p.lcdcBit(lcdcTileDataSelect)
	tileMap := tileMapBase(p.lcdcBit(lcdcBGTileMap))

	scy := p.bus.SCY()
	scx := p.bus.SCX()
	bgY := (y + int(scy)) & 0xFF
	tileRow := bgY / 8
	rowInTile := bgY % 8

	vram := p.bus.VRAM()
	for x := 0; x < Width; x++ {
		bgX := (x + int(scx)) & 0xFF
		tileCol := bgX / 8
		colInTile := bgX % 8

		mapOffset := tileMap - int(addr.VRAMStart) + tileRow*32 + tileCol
		tileIndex := vram[mapOffset]

		low, high := p.tileRow(unsigned, tileIndex, rowInTile)
		color := tileColor(low, high, uint8(7-colInTile))

		bgColor[x] = color
		p.framebuffer.set(x, y, applyPalette(p.bus.BGP(), color))
	}
}

// renderWindow draws the window layer if active on this line, returning
// whether it actually drew anything (the caller advances windowLine
// only on lines where the window was drawn, §4.6).
func (p *PPU) renderWindow(y int, bgColor []uint8) bool {
	if !p.lcdcBit(lcdcWindowEnable) {
		return false
	}

	wy := p.bus.WY()
	if y < int(wy) {
		return false
	}

	wx := int(p.bus.WX()) - 7
	if wx >= Width {
		return false
	}

	unsigned := p.lcdcBit(lcdcTileDataSelect)
	tileMap := tileMapBase(p.lcdcBit(lcdcWindowTileMap))

	tileRow := p.windowLine / 8
	rowInTile := p.windowLine % 8

	vram := p.bus.VRAM()
	drew := false
	for x := 0; x < Width; x++ {
		if x < wx {
			continue
		}
		winX := x - wx
		tileCol := winX / 8
		colInTile := winX % 8

		mapOffset := tileMap - int(addr.VRAMStart) + tileRow*32 + tileCol
		tileIndex := vram[mapOffset]

		low, high := p.tileRow(unsigned, tileIndex, rowInTile)
		color := tileColor(low, high, uint8(7-colInTile))

		bgColor[x] = color
		p.framebuffer.set(x, y, applyPalette(p.bus.BGP(), color))
		drew = true
	}
	return drew
}

func tileMapBase(selectSecond bool) int {
	if selectSecond {
		return int(addr.TileMap1)
	}
	return int(addr.TileMap0)
}

const maxSpritesPerLine = 10

func (p *PPU) renderSprites(y int, bgColor []uint8) {
	if !p.lcdcBit(lcdcSpriteEnable) {
		return
	}

	height := 8
	if p.lcdcBit(lcdcSpriteSize) {
		height = 16
	}

	oam := p.bus.OAM()
	vram := p.bus.VRAM()

	type onLine struct {
		index     int
		x         int
		flags     byte
		low, high byte
	}
	var sprites []onLine

	for i := 0; i < 40 && len(sprites) < maxSpritesPerLine; i++ {
		base := i * 4
		spriteY := int(oam[base]) - 16
		if spriteY > y || spriteY+height <= y {
			continue
		}
		spriteX := int(oam[base+1]) - 8
		tile := oam[base+2]
		flags := oam[base+3]

		rowInSprite := y - spriteY
		if bit.IsSet(6, flags) { // Y flip
			rowInSprite = height - 1 - rowInSprite
		}

		tileIndex := tile
		if height == 16 {
			tileIndex &^= 0x01
		}

		rowInTile := rowInSprite
		tileOffset := 0
		if height == 16 && rowInSprite >= 8 {
			rowInTile = rowInSprite - 8
			tileOffset = 16
		}

		tileBase := int(addr.TileDataUnsigned) - int(addr.VRAMStart) + int(tileIndex)*16 + tileOffset + rowInTile*2
		sprites = append(sprites, onLine{
			index: i,
			x:     spriteX,
			flags: flags,
			low:   vram[tileBase],
			high:  vram[tileBase+1],
		})
	}

	// owner[-1] = unclaimed; lowest OAM index to claim a pixel keeps it,
	// per the spec's OAM-order-only simplification (§4.6). Only
	// non-transparent pixels claim a column, so a transparent pixel in
	// a lower-index sprite never masks an opaque pixel from a
	// higher-index sprite underneath it at the same column.
	var owner [Width]int
	for i := range owner {
		owner[i] = -1
	}
	for _, s := range sprites {
		flipX := bit.IsSet(5, s.flags)
		for px := 0; px < 8; px++ {
			bx := s.x + px
			if bx < 0 || bx >= Width {
				continue
			}
			if owner[bx] != -1 {
				continue
			}
			bitIndex := uint8(7 - px)
			if flipX {
				bitIndex = uint8(px)
			}
			if tileColor(s.low, s.high, bitIndex) != 0 {
				owner[bx] = s.index
			}
		}
	}

	for _, s := range sprites {
		palette := p.bus.OBP0()
		if bit.IsSet(4, s.flags) {
			palette = p.bus.OBP1()
		}
		flipX := bit.IsSet(5, s.flags)
		belowBG := bit.IsSet(7, s.flags)

		for px := 0; px < 8; px++ {
			bx := s.x + px
			if bx < 0 || bx >= Width {
				continue
			}
			if owner[bx] != s.index {
				continue
			}

			bitIndex := uint8(7 - px)
			if flipX {
				bitIndex = uint8(px)
			}
			color := tileColor(s.low, s.high, bitIndex)
			if color == 0 {
				continue // transparent
			}
			if belowBG && bgColor[bx] != 0 {
				continue
			}
			p.framebuffer.set(bx, y, applyPalette(palette, color))
		}
	}
}
