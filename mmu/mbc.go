package mmu

// Mapper translates guest addresses in 0x0000-0x7FFF (ROM) and
// 0xA000-0xBFFF (external RAM) into banked cartridge storage, and
// absorbs mapper-register writes in 0x0000-0x7FFF (§4.2).
type Mapper interface {
	ReadROM(address uint16) byte
	ReadRAM(address uint16) byte
	WriteRAM(address uint16, value byte)
	// RegisterWrite handles a write anywhere in 0x0000-0x7FFF.
	RegisterWrite(address uint16, value byte)
}

// NoMBC is used for cartridges with no banking (header type 0x00):
// bank 0 and bank N are both fixed, and there is no external RAM.
type NoMBC struct {
	cart *Cartridge
}

func NewNoMBC(cart *Cartridge) *NoMBC { return &NoMBC{cart: cart} }

func (m *NoMBC) ReadROM(address uint16) byte {
	bank := 0
	if address >= 0x4000 {
		bank = 1 % len(m.cart.ROMBanks)
	}
	return m.cart.ROMBanks[bank][address&0x3FFF]
}

func (m *NoMBC) ReadRAM(address uint16) byte          { return 0xFF }
func (m *NoMBC) WriteRAM(address uint16, value byte)  {}
func (m *NoMBC) RegisterWrite(address uint16, value byte) {}

// MBC1 implements the banking scheme in §4.2: a 5-bit primary bank
// register, a 2-bit secondary register reused as either RAM bank or
// the high 2 bits of the ROM bank depending on mode, and a mode bit.
type MBC1 struct {
	cart *Cartridge

	ramEnabled bool
	bank1      uint8 // 5 bits
	bank2      uint8 // 2 bits
	mode       uint8 // 0 = simple, 1 = advanced
}

func NewMBC1(cart *Cartridge) *MBC1 {
	return &MBC1{cart: cart, bank1: 1}
}

func (m *MBC1) romBankCount() int { return len(m.cart.ROMBanks) }
func (m *MBC1) ramBankCount() int { return len(m.cart.RAMBanks) }

// lowBank is the bank mapped at 0x0000-0x3FFF: always 0 in simple
// mode, or BANK2<<5 in advanced mode (§4.2 MODE).
func (m *MBC1) lowBank() int {
	if m.mode == 0 {
		return 0
	}
	return wrapBank(int(m.bank2)<<5, m.romBankCount())
}

// highBank is the bank mapped at 0x4000-0x7FFF. A BANK1 write of zero
// selects 1 (the value is never exposed raw), then BANK2 contributes
// the upper two bits.
func (m *MBC1) highBank() int {
	bank1 := m.bank1
	if bank1 == 0 {
		bank1 = 1
	}
	full := int(m.bank2)<<5 | int(bank1)
	return wrapBank(full, m.romBankCount())
}

// ramBank is BANK2 in advanced mode with at least 4 RAM banks
// declared, else always bank 0 (§4.2 MODE, effective RAM bank).
func (m *MBC1) ramBank() int {
	if m.mode == 1 && m.ramBankCount() >= 4 {
		return wrapBank(int(m.bank2), m.ramBankCount())
	}
	return 0
}

func wrapBank(bank, count int) int {
	if count == 0 {
		return 0
	}
	return bank % count
}

func (m *MBC1) ReadROM(address uint16) byte {
	if address < 0x4000 {
		return m.cart.ROMBanks[m.lowBank()][address]
	}
	return m.cart.ROMBanks[m.highBank()][address-0x4000]
}

func (m *MBC1) ReadRAM(address uint16) byte {
	if !m.ramEnabled {
		return 0xFF
	}
	return m.cart.RAMBanks[m.ramBank()][address-0xA000]
}

func (m *MBC1) WriteRAM(address uint16, value byte) {
	if !m.ramEnabled {
		return
	}
	m.cart.RAMBanks[m.ramBank()][address-0xA000] = value
}

func (m *MBC1) RegisterWrite(address uint16, value byte) {
	switch {
	case address <= 0x1FFF: // RAMG
		m.ramEnabled = m.cart.hasRAM && value&0x0F == 0x0A
	case address <= 0x3FFF: // BANK1
		m.bank1 = value & 0x1F
	case address <= 0x5FFF: // BANK2
		m.bank2 = value & 0x03
	default: // MODE (0x6000-0x7FFF)
		m.mode = value & 0x01
	}
}
