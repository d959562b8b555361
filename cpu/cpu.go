// Package cpu implements the LR35902-style CPU: register file, the
// 256+256 entry opcode dispatch tables, and single-instruction
// execution. It knows nothing about timers, the PPU or interrupt
// *sources* — those are the frame driver's job (see package core) — but
// it does own IME and the halted flag, since both are purely CPU state.
package cpu

// Step decodes and executes exactly one instruction at PC (or, if
// halted, does nothing and returns 0 — the caller is expected to check
// Halted() and advance the timer itself per §4.7). Returns the
// instruction's cost in T-cycles.
func (c *CPU) Step() int {
	if c.halted {
		return 0
	}

	// EI enables IME only after the instruction *following* EI has
	// executed; resolve that here, before fetching the next opcode.
	pendingEnable := c.imePending
	c.imePending = false

	opcode := uint16(c.fetch())
	var cycles int
	if opcode == 0xCB {
		cb := c.fetch()
		c.currentOpcode = 0xCB00 | uint16(cb)
		cycles = cbTable[cb](c)
	} else {
		c.currentOpcode = opcode
		cycles = opcodeTable[opcode](c)
	}

	if pendingEnable {
		c.ime = true
	}

	return cycles
}

// Wake clears the halted state. Called by the interrupt controller
// (package core) when any enabled interrupt becomes pending, per §4.7:
// the CPU wakes even if IME is disabled, it just won't service the
// interrupt in that case.
func (c *CPU) Wake() {
	c.halted = false
}

// ServiceInterrupt pushes PC and jumps to the given vector, clearing
// IME. Called by the frame driver once it has selected the
// highest-priority pending interrupt and cleared its IF bit.
func (c *CPU) ServiceInterrupt(vector uint16) {
	c.ime = false
	c.push(c.pc)
	c.pc = vector
}
