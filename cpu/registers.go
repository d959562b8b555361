package cpu

// Flag bits, packed into the low nibble-aligned high bits of F (bits 7..4).
// The low nibble of F is always zero when materialized (e.g. for PUSH AF).
const (
	flagZ uint8 = 1 << 7 // zero
	flagN uint8 = 1 << 6 // subtract
	flagH uint8 = 1 << 5 // half-carry
	flagC uint8 = 1 << 4 // carry
)

// CPU holds the register file and execution state of the LR35902-style
// core. Registers live as plain integers; the (HL) operand resolves to
// an explicit bus read/write rather than a borrowed reference (§9).
type CPU struct {
	a, b, c, d, e, h, l uint8
	f                   uint8 // low nibble always zero
	sp, pc              uint16

	bus Bus

	ime        bool
	imePending bool // EI takes effect after the *next* instruction
	halted     bool

	currentOpcode uint16 // base opcode, or 0xCBxx when CB-prefixed; used for diagnostics
}

// Bus is the memory-mapped interface the CPU executes against. mmu.MMU
// satisfies it; tests may substitute a lighter fake.
type Bus interface {
	Read(address uint16) byte
	Write(address uint16, value byte)
}

// New returns a CPU wired to the given bus with every register zero and
// PC=0x0000, so it starts executing whatever the bus maps at 0x0000 (the
// bootstrap ROM on a fresh MMU, which loads the post-boot values).
func New(bus Bus) *CPU {
	return &CPU{bus: bus}
}

// Reset sets the CPU to its state immediately after power-on, PC=0x0000,
// so the embedded bootstrap ROM runs first.
func (c *CPU) Reset() {
	*c = CPU{bus: c.bus}
}

func (c *CPU) getBC() uint16 { return uint16(c.b)<<8 | uint16(c.c) }
func (c *CPU) getDE() uint16 { return uint16(c.d)<<8 | uint16(c.e) }
func (c *CPU) getHL() uint16 { return uint16(c.h)<<8 | uint16(c.l) }
func (c *CPU) getAF() uint16 { return uint16(c.a)<<8 | uint16(c.f&0xF0) }

func (c *CPU) setBC(v uint16) { c.b, c.c = uint8(v>>8), uint8(v) }
func (c *CPU) setDE(v uint16) { c.d, c.e = uint8(v>>8), uint8(v) }
func (c *CPU) setHL(v uint16) { c.h, c.l = uint8(v>>8), uint8(v) }
func (c *CPU) setAF(v uint16) { c.a, c.f = uint8(v>>8), uint8(v)&0xF0 }

func (c *CPU) setFlag(mask uint8)          { c.f |= mask }
func (c *CPU) clearFlag(mask uint8)        { c.f &^= mask }
func (c *CPU) flagSet(mask uint8) bool     { return c.f&mask != 0 }
func (c *CPU) setFlagTo(mask uint8, on bool) {
	if on {
		c.setFlag(mask)
	} else {
		c.clearFlag(mask)
	}
}

// r8 decodes a 3-bit register-index operand into {B,C,D,E,H,L,(HL),A}.
func (c *CPU) readR8(idx uint8) uint8 {
	switch idx {
	case 0:
		return c.b
	case 1:
		return c.c
	case 2:
		return c.d
	case 3:
		return c.e
	case 4:
		return c.h
	case 5:
		return c.l
	case 6:
		return c.bus.Read(c.getHL())
	default:
		return c.a
	}
}

func (c *CPU) writeR8(idx uint8, v uint8) {
	switch idx {
	case 0:
		c.b = v
	case 1:
		c.c = v
	case 2:
		c.d = v
	case 3:
		c.e = v
	case 4:
		c.h = v
	case 5:
		c.l = v
	case 6:
		c.bus.Write(c.getHL(), v)
	default:
		c.a = v
	}
}

// r16 (arithmetic group: BC, DE, HL, SP)
func (c *CPU) readR16(idx uint8) uint16 {
	switch idx {
	case 0:
		return c.getBC()
	case 1:
		return c.getDE()
	case 2:
		return c.getHL()
	default:
		return c.sp
	}
}

func (c *CPU) writeR16(idx uint8, v uint16) {
	switch idx {
	case 0:
		c.setBC(v)
	case 1:
		c.setDE(v)
	case 2:
		c.setHL(v)
	default:
		c.sp = v
	}
}

// r16stk (stack group: BC, DE, HL, AF)
func (c *CPU) readR16Stk(idx uint8) uint16 {
	if idx == 3 {
		return c.getAF()
	}
	return c.readR16(idx)
}

func (c *CPU) writeR16Stk(idx uint8, v uint16) {
	if idx == 3 {
		c.setAF(v)
		return
	}
	c.writeR16(idx, v)
}

// r16mem (memory-addressing group: BC, DE, HL+, HL-). Returns the
// address to use, applying HL's post-increment/decrement as a
// side-effect for idx 2 and 3.
func (c *CPU) r16memAddr(idx uint8) uint16 {
	switch idx {
	case 0:
		return c.getBC()
	case 1:
		return c.getDE()
	case 2:
		hl := c.getHL()
		c.setHL(hl + 1)
		return hl
	default:
		hl := c.getHL()
		c.setHL(hl - 1)
		return hl
	}
}

// condition decodes the 2-bit branch-condition operand {NZ,Z,NC,C}.
func (c *CPU) condition(idx uint8) bool {
	switch idx {
	case 0:
		return !c.flagSet(flagZ)
	case 1:
		return c.flagSet(flagZ)
	case 2:
		return !c.flagSet(flagC)
	default:
		return c.flagSet(flagC)
	}
}

// GetPC, GetSP and the register accessors below exist for debuggers,
// tests and disassembly; they are not used by opcode execution itself.
func (c *CPU) GetPC() uint16 { return c.pc }
func (c *CPU) GetSP() uint16 { return c.sp }
func (c *CPU) GetAF() uint16 { return c.getAF() }
func (c *CPU) GetBC() uint16 { return c.getBC() }
func (c *CPU) GetDE() uint16 { return c.getDE() }
func (c *CPU) GetHL() uint16 { return c.getHL() }
func (c *CPU) IME() bool     { return c.ime }
func (c *CPU) Halted() bool  { return c.halted }

// SetPC forces the program counter; used by tests to start execution at
// a fixture address.
func (c *CPU) SetPC(pc uint16) { c.pc = pc }
func (c *CPU) SetSP(sp uint16) { c.sp = sp }
func (c *CPU) SetAF(v uint16)  { c.setAF(v) }
func (c *CPU) SetBC(v uint16)  { c.setBC(v) }
func (c *CPU) SetDE(v uint16)  { c.setDE(v) }
func (c *CPU) SetHL(v uint16)  { c.setHL(v) }

// SetIME forces the interrupt master enable flag; used by tests. Opcodes
// normally flip it via DI/EI/ServiceInterrupt instead.
func (c *CPU) SetIME(on bool) { c.ime = on }
