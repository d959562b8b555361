package core

import (
	"github.com/kalida-labs/dmgo/addr"
)

const (
	lineCount        = 154
	visibleLineCount = 144
	tCyclesPerLine   = 456
	tCyclesPerMCycle = 4
)

const (
	statLYCInterruptEnable = 1 << 6
	statLYCEqualsLY        = 1 << 2
)

// RunFrame executes exactly one 70,224 T-cycle frame per §4.7: 154
// scanlines of 456 T-cycles each, stepping the CPU (or idling one
// M-cycle while halted), advancing the timer, servicing interrupts
// after every step, and invoking the PPU for the 144 visible lines.
func (e *Emulator) RunFrame() {
	e.ppu.ResetWindowLine()

	for line := 0; line < lineCount; line++ {
		ticks := 0
		for ticks < tCyclesPerLine {
			var dt int
			if e.cpu.Halted() {
				dt = tCyclesPerMCycle
			} else {
				dt = e.cpu.Step()
			}
			e.mem.Tick(dt)
			ticks += dt
			e.serviceInterrupts()
		}

		if line < visibleLineCount {
			e.ppu.RenderScanline(line)
		}

		e.mem.SetLY(uint8(line))
		e.updateLYCMatch()
		if line == visibleLineCount {
			e.mem.RequestInterrupt(addr.VBlank)
		}
	}

	e.frameCount++
}

func (e *Emulator) updateLYCMatch() {
	stat := e.mem.STAT()
	if e.mem.LY() == e.mem.LYC() {
		stat |= statLYCEqualsLY
		if stat&statLYCInterruptEnable != 0 {
			e.mem.RequestInterrupt(addr.LCDStat)
		}
	} else {
		stat &^= statLYCEqualsLY
	}
	e.mem.SetSTAT(stat)
}

// serviceInterrupts wakes a halted CPU on any pending, enabled
// interrupt, then dispatches the single highest-priority one if IME is
// set: clear IME, clear the IF bit, push PC and jump to the vector
// (§4.7). A halted CPU with IME=0 simply wakes without servicing.
func (e *Emulator) serviceInterrupts() {
	pending := e.mem.PendingInterrupts()
	if pending == 0 {
		return
	}

	if e.cpu.Halted() {
		e.cpu.Wake()
	}

	if !e.cpu.IME() {
		return
	}

	for _, i := range addr.Ordered {
		if pending&uint8(i) == 0 {
			continue
		}
		e.mem.ClearInterrupt(i)
		e.cpu.ServiceInterrupt(addr.Vector(i))
		return
	}
}
