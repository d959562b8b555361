// Package headless implements backend.Display with no presentation at
// all: used by tests, benchmarks, and CLI --headless runs where only
// the emulated frames matter, not their display.
package headless

import (
	"github.com/kalida-labs/dmgo/backend"
	"github.com/kalida-labs/dmgo/video"
)

// Display keeps the most recently presented frame for inspection but
// never touches a terminal or window, and never produces input events.
type Display struct {
	last *video.FrameBuffer
}

func New() *Display {
	return &Display{}
}

func (d *Display) Present(frame *video.FrameBuffer) error {
	d.last = frame
	return nil
}

func (d *Display) PollInput() []backend.InputEvent { return nil }

func (d *Display) Close() error { return nil }

// LastFrame returns the last frame passed to Present, or nil if none
// yet, for tests that want to inspect the rendered output.
func (d *Display) LastFrame() *video.FrameBuffer { return d.last }
