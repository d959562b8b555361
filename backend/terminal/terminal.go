// Package terminal implements backend.Display over tcell: the 160x144
// frame buffer is downsampled two rows at a time into half-block glyphs
// (▀/█) with foreground/background set to the nearest DMG shade.
package terminal

import (
	"fmt"

	"github.com/gdamore/tcell/v2"

	"github.com/kalida-labs/dmgo/backend"
	"github.com/kalida-labs/dmgo/input"
	"github.com/kalida-labs/dmgo/video"
)

// Display renders a Game Boy frame to a tcell terminal screen and
// translates key events through an input.Keymap.
type Display struct {
	screen tcell.Screen
	keymap *input.Keymap
}

// New opens and initializes a tcell screen. The caller owns Close.
func New(keymap *input.Keymap) (*Display, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("terminal: new screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return nil, fmt.Errorf("terminal: init screen: %w", err)
	}
	screen.SetStyle(tcell.StyleDefault.Background(tcell.ColorBlack).Foreground(tcell.ColorWhite))
	screen.Clear()

	return &Display{screen: screen, keymap: keymap}, nil
}

func (d *Display) Close() error {
	d.screen.Fini()
	return nil
}

// Present draws the full frame, two guest rows per terminal cell.
func (d *Display) Present(frame *video.FrameBuffer) error {
	d.screen.Clear()

	for y := 0; y < video.Height; y += 2 {
		for x := 0; x < video.Width; x++ {
			top := shadeOf(frame.At(x, y))
			bottom := top
			if y+1 < video.Height {
				bottom = shadeOf(frame.At(x, y+1))
			}

			char, fg, bg := halfBlockStyle(top, bottom)
			style := tcell.StyleDefault.Foreground(fg).Background(bg)
			d.screen.SetContent(x, y/2, char, nil, style)
		}
	}

	d.screen.Show()
	return nil
}

// shadeColors mirror the DMG green palette's luminance ordering, used
// only to pick a terminal-displayable approximation; the true RGBA
// values live in package video.
var shadeColors = [4]tcell.Color{
	tcell.ColorWhite,
	tcell.ColorSilver,
	tcell.ColorGray,
	tcell.ColorBlack,
}

func shadeOf(px video.RGBA) int {
	switch {
	case px.R > 200:
		return 0
	case px.R > 150:
		return 1
	case px.R > 50:
		return 2
	default:
		return 3
	}
}

func halfBlockStyle(top, bottom int) (rune, tcell.Color, tcell.Color) {
	topColor, bottomColor := shadeColors[top], shadeColors[bottom]
	if top == bottom {
		return '█', topColor, tcell.ColorDefault
	}
	return '▀', topColor, bottomColor
}

// tcellKeyNames maps the tcell keys that correspond to named (non-rune)
// bindings in input.Keymap.
var tcellKeyNames = map[tcell.Key]input.KeyName{
	tcell.KeyUp:        input.KeyUp,
	tcell.KeyDown:      input.KeyDown,
	tcell.KeyLeft:      input.KeyLeft,
	tcell.KeyRight:     input.KeyRight,
	tcell.KeyEnter:     input.KeyEnter,
	tcell.KeyBackspace:  input.KeyBackspace,
	tcell.KeyBackspace2: input.KeyBackspace,
}

// PollInput drains pending tcell events and resolves each key through
// the keymap, synthesizing a Release immediately after every Press
// since tcell reports raw key-down events with no key-up signal in
// most terminal backends.
func (d *Display) PollInput() []backend.InputEvent {
	var events []backend.InputEvent

	for d.screen.HasPendingEvent() {
		switch ev := d.screen.PollEvent().(type) {
		case *tcell.EventKey:
			if name, ok := tcellKeyNames[ev.Key()]; ok {
				events = append(events, pressRelease(d.keymap, name)...)
				continue
			}
			if ev.Key() == tcell.KeyRune {
				events = append(events, pressRelease(d.keymap, input.KeyName(ev.Rune()))...)
			}
		case *tcell.EventResize:
			d.screen.Sync()
		}
	}

	return events
}

func pressRelease(keymap *input.Keymap, name input.KeyName) []backend.InputEvent {
	button, ok := keymap.Resolve(name)
	if !ok {
		return nil
	}
	return []backend.InputEvent{
		{Button: button, Type: backend.Press},
		{Button: button, Type: backend.Release},
	}
}
