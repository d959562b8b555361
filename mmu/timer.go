package mmu

import (
	"github.com/kalida-labs/dmgo/addr"
	"github.com/kalida-labs/dmgo/bit"
)

// timerBitForTAC maps the TAC clock-select bits (0-3) to the bit of
// the internal 16-bit counter whose falling edge increments TIMA (§3,
// §4.4).
var timerBitForTAC = [4]uint8{9, 3, 5, 7}

// timer owns the free-running 16-bit divider and the TIMA/TMA/TAC
// registers. DIV is the high byte of the internal counter; any write
// to DIV zeroes the whole counter (§3).
type timer struct {
	counter uint16
	tima    byte
	tma     byte
	tac     byte

	lastSelectedBit bool
}

// tick advances the timer by the executed instruction's T-cycle cost,
// per §4.4. Returns true if TIMA overflowed this tick; the caller is
// responsible for requesting the timer interrupt (TMA reload happens
// here, per §3).
func (t *timer) tick(tCycles int) (overflowed bool) {
	for i := 0; i < tCycles; i++ {
		t.counter++
		if t.edgeCheck() {
			overflowed = true
		}
	}
	return overflowed
}

// edgeCheck re-samples the TAC-selected bit of the internal counter
// and increments TIMA on a 1->0 transition, reloading from TMA and
// reporting an overflow when TIMA wraps FF->00.
func (t *timer) edgeCheck() bool {
	enabled := t.tac&0x04 != 0
	bitPos := timerBitForTAC[t.tac&0x03]
	selected := enabled && bit.IsSet16(bitPos, t.counter)

	overflowed := false
	if t.lastSelectedBit && !selected {
		if t.tima == 0xFF {
			t.tima = t.tma
			overflowed = true
		} else {
			t.tima++
		}
	}
	t.lastSelectedBit = selected
	return overflowed
}

func (t *timer) read(address uint16) byte {
	switch address {
	case addr.DIV:
		return byte(t.counter >> 8)
	case addr.TIMA:
		return t.tima
	case addr.TMA:
		return t.tma
	case addr.TAC:
		return t.tac | 0xF8
	default:
		return 0xFF
	}
}

// write applies a write to one of the 4 timer registers. Returns true
// if the write triggered a TIMA overflow: the DIV-write quirk in §4.3
// means that if a TAC-selected bit was 1 before the reset, dropping it
// to 0 is itself a falling edge that still increments TIMA.
func (t *timer) write(address uint16, value byte) (overflowed bool) {
	switch address {
	case addr.DIV:
		t.counter = 0
		return t.edgeCheck()
	case addr.TIMA:
		t.tima = value
	case addr.TMA:
		t.tma = value
	case addr.TAC:
		t.tac = value
	}
	return false
}
