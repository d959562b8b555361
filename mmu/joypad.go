package mmu

import "github.com/kalida-labs/dmgo/input"

// joypad tracks the 8 physical button states and the two selector
// bits latched through P1 (§3, §4.3). A bit reads 0 when its button is
// pressed.
type joypad struct {
	pressed  [8]bool
	selector byte // bits 4-5 of P1, as last written by the guest
}

func newJoypad() *joypad {
	return &joypad{selector: 0x30}
}

// press reports whether this transition newly asserts the joypad
// interrupt condition (any button going released -> pressed, §3).
func (j *joypad) press(b input.Button) (risingEdge bool) {
	if !j.pressed[b] {
		risingEdge = true
	}
	j.pressed[b] = true
	return risingEdge
}

func (j *joypad) release(b input.Button) {
	j.pressed[b] = false
}

// writeSelector stores the two selector bits from a P1 write; the
// other bits are derived, not stored (§4.3).
func (j *joypad) writeSelector(value byte) {
	j.selector = value & 0x30
}

// read computes the P1 byte: selector bits as last written, button
// bits derived from current state and the active selector group.
func (j *joypad) read() byte {
	result := byte(0xC0) | j.selector // bits 6-7 always read 1

	selectButtons := j.selector&0x20 == 0
	selectDpad := j.selector&0x10 == 0

	low := byte(0x0F)
	if selectDpad {
		low &= j.lowNibble(input.Right, input.Left, input.Up, input.Down)
	}
	if selectButtons {
		low &= j.lowNibble(input.A, input.B, input.Select, input.Start)
	}

	return result | low
}

func (j *joypad) lowNibble(bit0, bit1, bit2, bit3 input.Button) byte {
	var n byte = 0x0F
	if j.pressed[bit0] {
		n &^= 0x01
	}
	if j.pressed[bit1] {
		n &^= 0x02
	}
	if j.pressed[bit2] {
		n &^= 0x04
	}
	if j.pressed[bit3] {
		n &^= 0x08
	}
	return n
}
