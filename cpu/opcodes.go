package cpu

// opcodeFn executes one decoded instruction and returns its cost in
// T-cycles (taken/untaken cost for conditional branches is folded into
// the return value of the function itself).
type opcodeFn func(*CPU) int

var opcodeTable [256]opcodeFn
var cbTable [256]opcodeFn

func init() {
	buildOpcodeTable()
	buildCBTable()
}

// buildOpcodeTable constructs the 256-entry unprefixed dispatch table.
// Regular instruction families (LD r,r'; INC/DEC r8; r8 immediate loads;
// ALU r8/imm8; RST; PUSH/POP; 16-bit LD/INC/DEC/ADD HL; indirect A
// loads; JR/JP/CALL/RET with condition) are generated arithmetically
// from the opcode byte rather than hand-listed, per the dense-table
// design called out in the spec. Irregular single opcodes are assigned
// individually below.
func buildOpcodeTable() {
	for op := 0; op < 256; op++ {
		opcodeTable[op] = opUndefined
	}

	// LD r8, r8' (0x40-0x7F), HALT at 0x76 (dst=6,src=6)
	for dst := uint8(0); dst < 8; dst++ {
		for src := uint8(0); src < 8; src++ {
			op := 0x40 + int(dst)*8 + int(src)
			if dst == 6 && src == 6 {
				opcodeTable[op] = opHalt
				continue
			}
			d, s := dst, src
			cycles := 4
			if d == 6 || s == 6 {
				cycles = 8
			}
			opcodeTable[op] = func(c *CPU) int {
				c.writeR8(d, c.readR8(s))
				return cycles
			}
		}
	}

	// INC r8 / DEC r8 / LD r8,n
	for r := uint8(0); r < 8; r++ {
		reg := r
		incCycles, decCycles, ldCycles := 4, 4, 8
		if reg == 6 {
			incCycles, decCycles, ldCycles = 12, 12, 12
		}
		opcodeTable[0x04+int(reg)*8] = func(c *CPU) int { c.inc8(reg); return incCycles }
		opcodeTable[0x05+int(reg)*8] = func(c *CPU) int { c.dec8(reg); return decCycles }
		opcodeTable[0x06+int(reg)*8] = func(c *CPU) int { c.writeR8(reg, c.fetch()); return ldCycles }
	}

	// ALU A,r8 (0x80-0xBF) and ALU A,imm8 (0xC6,0xCE,...)
	aluOps := [8]func(*CPU, uint8){
		func(c *CPU, v uint8) { c.add8(v, false) },
		func(c *CPU, v uint8) { c.add8(v, true) },
		func(c *CPU, v uint8) { c.sub8(v, false, true) },
		func(c *CPU, v uint8) { c.sub8(v, true, true) },
		func(c *CPU, v uint8) { c.and8(v) },
		func(c *CPU, v uint8) { c.xor8(v) },
		func(c *CPU, v uint8) { c.or8(v) },
		func(c *CPU, v uint8) { c.sub8(v, false, false) }, // CP: flags only
	}
	for row := 0; row < 8; row++ {
		apply := aluOps[row]
		for col := uint8(0); col < 8; col++ {
			src := col
			cycles := 4
			if src == 6 {
				cycles = 8
			}
			opcodeTable[0x80+row*8+int(col)] = func(c *CPU) int {
				apply(c, c.readR8(src))
				return cycles
			}
		}
		opcodeTable[0xC6+row*8] = func(c *CPU) int {
			apply(c, c.fetch())
			return 8
		}
	}

	// RST n (0xC7 + n*8), n*8 as target
	for n := uint8(0); n < 8; n++ {
		target := uint16(n) * 8
		opcodeTable[0xC7+int(n)*8] = func(c *CPU) int {
			c.push(c.pc)
			c.pc = target
			return 16
		}
	}

	// PUSH/POP r16stk (BC, DE, HL, AF)
	for p := uint8(0); p < 4; p++ {
		reg := p
		opcodeTable[0xC1+int(reg)*16] = func(c *CPU) int { c.writeR16Stk(reg, c.pop()); return 12 }
		opcodeTable[0xC5+int(reg)*16] = func(c *CPU) int { c.push(c.readR16Stk(reg)); return 16 }
	}

	// 16-bit LD r16,nn / ADD HL,r16 / INC r16 / DEC r16 (BC, DE, HL, SP)
	for r := uint8(0); r < 4; r++ {
		reg := r
		opcodeTable[0x01+int(reg)*0x10] = func(c *CPU) int { c.writeR16(reg, c.fetchWord()); return 12 }
		opcodeTable[0x09+int(reg)*0x10] = func(c *CPU) int { c.addHL(c.readR16(reg)); return 8 }
		opcodeTable[0x03+int(reg)*0x10] = func(c *CPU) int { c.writeR16(reg, c.readR16(reg)+1); return 8 }
		opcodeTable[0x0B+int(reg)*0x10] = func(c *CPU) int { c.writeR16(reg, c.readR16(reg)-1); return 8 }
	}

	// LD (r16mem),A / LD A,(r16mem) (BC, DE, HL+, HL-)
	for r := uint8(0); r < 4; r++ {
		reg := r
		opcodeTable[0x02+int(reg)*0x10] = func(c *CPU) int { c.bus.Write(c.r16memAddr(reg), c.a); return 8 }
		opcodeTable[0x0A+int(reg)*0x10] = func(c *CPU) int { c.a = c.bus.Read(c.r16memAddr(reg)); return 8 }
	}

	// JR cc,e8 (0x20,0x28,0x30,0x38) and JP cc,nn / CALL cc,nn / RET cc
	for cc := uint8(0); cc < 4; cc++ {
		cond := cc
		opcodeTable[0x20+int(cond)*8] = func(c *CPU) int {
			offset := int8(c.fetch())
			if c.condition(cond) {
				c.pc = uint16(int32(c.pc) + int32(offset))
				return 12
			}
			return 8
		}
		opcodeTable[0xC2+int(cond)*8] = func(c *CPU) int {
			target := c.fetchWord()
			if c.condition(cond) {
				c.pc = target
				return 16
			}
			return 12
		}
		opcodeTable[0xC4+int(cond)*8] = func(c *CPU) int {
			target := c.fetchWord()
			if c.condition(cond) {
				c.push(c.pc)
				c.pc = target
				return 24
			}
			return 12
		}
		opcodeTable[0xC0+int(cond)*8] = func(c *CPU) int {
			if c.condition(cond) {
				c.pc = c.pop()
				return 20
			}
			return 8
		}
	}

	assignIrregularOpcodes()
}

func assignIrregularOpcodes() {
	opcodeTable[0x00] = func(c *CPU) int { return 4 } // NOP
	opcodeTable[0x08] = func(c *CPU) int {            // LD (nn),SP
		addr := c.fetchWord()
		c.bus.Write(addr, bitLow(c.sp))
		c.bus.Write(addr+1, bitHigh(c.sp))
		return 20
	}
	opcodeTable[0x07] = func(c *CPU) int { c.a = c.rlc(c.a); c.clearFlag(flagZ); return 4 }
	opcodeTable[0x0F] = func(c *CPU) int { c.a = c.rrc(c.a); c.clearFlag(flagZ); return 4 }
	opcodeTable[0x17] = func(c *CPU) int { c.a = c.rl(c.a); c.clearFlag(flagZ); return 4 }
	opcodeTable[0x1F] = func(c *CPU) int { c.a = c.rr(c.a); c.clearFlag(flagZ); return 4 }
	opcodeTable[0x10] = opStop
	opcodeTable[0x18] = func(c *CPU) int { // JR e8
		offset := int8(c.fetch())
		c.pc = uint16(int32(c.pc) + int32(offset))
		return 12
	}
	opcodeTable[0x27] = func(c *CPU) int { c.daa(); return 4 }
	opcodeTable[0x2F] = func(c *CPU) int { // CPL
		c.a = ^c.a
		c.setFlag(flagN)
		c.setFlag(flagH)
		return 4
	}
	opcodeTable[0x37] = func(c *CPU) int { // SCF
		c.clearFlag(flagN)
		c.clearFlag(flagH)
		c.setFlag(flagC)
		return 4
	}
	opcodeTable[0x3F] = func(c *CPU) int { // CCF
		c.clearFlag(flagN)
		c.clearFlag(flagH)
		c.setFlagTo(flagC, !c.flagSet(flagC))
		return 4
	}
	opcodeTable[0x76] = opHalt

	opcodeTable[0xC3] = func(c *CPU) int { c.pc = c.fetchWord(); return 16 }
	opcodeTable[0xCD] = func(c *CPU) int {
		target := c.fetchWord()
		c.push(c.pc)
		c.pc = target
		return 24
	}
	opcodeTable[0xC9] = func(c *CPU) int { c.pc = c.pop(); return 16 }
	opcodeTable[0xD9] = func(c *CPU) int { // RETI
		c.pc = c.pop()
		c.ime = true
		return 16
	}
	opcodeTable[0xE9] = func(c *CPU) int { c.pc = c.getHL(); return 4 } // JP HL

	opcodeTable[0xE0] = func(c *CPU) int { c.bus.Write(0xFF00+uint16(c.fetch()), c.a); return 12 }
	opcodeTable[0xF0] = func(c *CPU) int { c.a = c.bus.Read(0xFF00 + uint16(c.fetch())); return 12 }
	opcodeTable[0xE2] = func(c *CPU) int { c.bus.Write(0xFF00+uint16(c.c), c.a); return 8 }
	opcodeTable[0xF2] = func(c *CPU) int { c.a = c.bus.Read(0xFF00 + uint16(c.c)); return 8 }
	opcodeTable[0xEA] = func(c *CPU) int { c.bus.Write(c.fetchWord(), c.a); return 16 }
	opcodeTable[0xFA] = func(c *CPU) int { c.a = c.bus.Read(c.fetchWord()); return 16 }

	opcodeTable[0xE8] = func(c *CPU) int { // ADD SP,e8
		c.sp = c.addSPSigned(int8(c.fetch()))
		return 16
	}
	opcodeTable[0xF8] = func(c *CPU) int { // LD HL,SP+e8
		c.setHL(c.addSPSigned(int8(c.fetch())))
		return 12
	}
	opcodeTable[0xF9] = func(c *CPU) int { c.sp = c.getHL(); return 8 } // LD SP,HL

	opcodeTable[0xF3] = func(c *CPU) int { c.ime = false; c.imePending = false; return 4 } // DI
	opcodeTable[0xFB] = func(c *CPU) int { c.imePending = true; return 4 }                 // EI (delayed)

	opcodeTable[0xCB] = nil // dispatched specially by Step
}

// opUndefined implements the error-handling policy of §7 for
// invalid/undocumented opcodes: recover as a NOP rather than crash the
// whole emulation session.
func opUndefined(c *CPU) int { return 4 }

// opHalt enters the halted state. The HALT bug (the byte after HALT
// executing twice when IME=0 and an interrupt is already pending) is not
// emulated.
func opHalt(c *CPU) int {
	c.halted = true
	return 4
}

// opStop is treated as a 2-byte NOP per §9; the byte that follows STOP
// is consumed and discarded.
func opStop(c *CPU) int {
	c.fetch()
	return 4
}
