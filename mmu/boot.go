package mmu

// bootROM is a 256-byte bootstrap program shadowing 0x0000-0x00FF until
// the guest writes a nonzero byte to FF50 (§3, §6). It is a from-scratch
// reimplementation of the documented post-boot contract (§8 scenario 1),
// not a reproduction of Nintendo's boot ROM: enable the LCD, spin until
// the first VBlank so LY visibly cycles before handoff, load the
// canonical post-boot register values, then unlock FF50 while A holds
// its final value. The unlocking write is the last instruction of the
// ROM (0x00FD-0x00FF): the write itself switches 0x0000-0x00FF back to
// the cartridge, and the next fetch is 0x0100 from the cartridge.
var bootROM = buildBootROM()

func buildBootROM() [256]byte {
	var rom [256]byte
	copy(rom[:], []byte{
		0x31, 0xFE, 0xFF, // LD SP, 0xFFFE
		0x3E, 0x81, // LD A, 0x81
		0xEA, 0x40, 0xFF, // LD (LCDC), A      ; enable LCD + BG
		0x3E, 0xFC, // LD A, 0xFC
		0xEA, 0x47, 0xFF, // LD (BGP), A

		// wait_vblank:
		0xFA, 0x44, 0xFF, // LD A, (LY)
		0xFE, 0x90, // CP 0x90
		0x20, 0xF9, // JR NZ, wait_vblank

		0x21, 0xB0, 0x01, // LD HL, 0x01B0
		0xE5,       // PUSH HL
		0xF1,       // POP AF            ; A=0x01, F=0xB0
		0x01, 0x13, 0x00, // LD BC, 0x0013
		0x11, 0xD8, 0x00, // LD DE, 0x00D8
		0x21, 0x4D, 0x01, // LD HL, 0x014D

		0x3E, 0x01, // LD A, 0x01
		0xC3, 0xFD, 0x00, // JP 0x00FD
	})
	copy(rom[0xFD:], []byte{
		0xEA, 0x50, 0xFF, // LD (BOOTLOCK), A ; unmap this ROM permanently, A stays 0x01; PC is now 0x0100
	})
	return rom
}
