// Package video implements the scanline PPU: background, window and
// sprite compositing into an RGBA frame buffer (§4.6).
package video

const (
	Width  = 160
	Height = 144
)

// RGBA is a single output pixel, alpha always 255.
type RGBA struct {
	R, G, B, A uint8
}

// shadePalette is the canonical 4-shade DMG green palette (§4.6).
var shadePalette = [4]RGBA{
	{232, 252, 204, 255},
	{172, 212, 144, 255},
	{84, 140, 112, 255},
	{20, 44, 56, 255},
}

// FrameBuffer holds one composited 160x144 frame.
type FrameBuffer struct {
	pixels [Width * Height]RGBA
}

func NewFrameBuffer() *FrameBuffer {
	return &FrameBuffer{}
}

func (fb *FrameBuffer) At(x, y int) RGBA {
	return fb.pixels[y*Width+x]
}

func (fb *FrameBuffer) set(x, y int, shade uint8) {
	fb.pixels[y*Width+x] = shadePalette[shade&0x03]
}

// Pixels returns the flat row-major pixel slice backing the frame, for
// a backend to blit directly.
func (fb *FrameBuffer) Pixels() []RGBA {
	return fb.pixels[:]
}
