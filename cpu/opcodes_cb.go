package cpu

// buildCBTable constructs the 256-entry CB-prefixed dispatch table. The
// entire table is regular: 8 rotate/shift operations over 8 r8 operands
// (0x00-0x3F), then BIT/RES/SET over 8 bit indices x 8 r8 operands
// (0x40-0xFF).
func buildCBTable() {
	shiftOps := [8]func(*CPU, uint8) uint8{
		(*CPU).rlc,
		(*CPU).rrc,
		(*CPU).rl,
		(*CPU).rr,
		(*CPU).sla,
		(*CPU).sra,
		(*CPU).swap,
		(*CPU).srl,
	}

	for row := 0; row < 8; row++ {
		op := shiftOps[row]
		for col := uint8(0); col < 8; col++ {
			reg := col
			cycles := 8
			if reg == 6 {
				cycles = 16
			}
			cbTable[row*8+int(col)] = func(c *CPU) int {
				c.writeR8(reg, op(c, c.readR8(reg)))
				return cycles
			}
		}
	}

	for b := uint8(0); b < 8; b++ {
		bitIdx := b
		for col := uint8(0); col < 8; col++ {
			reg := col
			bitCycles := 8
			rwCycles := 8
			if reg == 6 {
				bitCycles = 12
				rwCycles = 16
			}
			cbTable[0x40+int(bitIdx)*8+int(col)] = func(c *CPU) int {
				c.bit(bitIdx, c.readR8(reg))
				return bitCycles
			}
			cbTable[0x80+int(bitIdx)*8+int(col)] = func(c *CPU) int {
				c.writeR8(reg, c.readR8(reg)&^(1<<bitIdx))
				return rwCycles
			}
			cbTable[0xC0+int(bitIdx)*8+int(col)] = func(c *CPU) int {
				c.writeR8(reg, c.readR8(reg)|(1<<bitIdx))
				return rwCycles
			}
		}
	}
}
