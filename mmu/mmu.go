// Package mmu implements the flat 16-bit guest address space (§3): ROM
// and external RAM behind a cartridge Mapper, VRAM/WRAM/OAM/HRAM as flat
// arrays, the bootstrap ROM overlay, OAM DMA, the timer and the joypad.
package mmu

import (
	"fmt"
	"log/slog"

	"github.com/kalida-labs/dmgo/addr"
	"github.com/kalida-labs/dmgo/bit"
	"github.com/kalida-labs/dmgo/input"
)

type region uint8

const (
	regionROM region = iota
	regionVRAM
	regionExtRAM
	regionWRAM
	regionEcho
	regionOAM
	regionProhibited
	regionIO
	regionHRAM
)

// regionMap indexes by the high byte of an address into one of the
// regions above, built once at package init.
var regionMap [256]region

func init() {
	for i := 0x00; i <= 0x7F; i++ {
		regionMap[i] = regionROM
	}
	for i := 0x80; i <= 0x9F; i++ {
		regionMap[i] = regionVRAM
	}
	for i := 0xA0; i <= 0xBF; i++ {
		regionMap[i] = regionExtRAM
	}
	for i := 0xC0; i <= 0xDF; i++ {
		regionMap[i] = regionWRAM
	}
	for i := 0xE0; i <= 0xFD; i++ {
		regionMap[i] = regionEcho
	}
	regionMap[0xFE] = regionOAM // both OAM and the prohibited tail; split by address below
	regionMap[0xFF] = regionIO  // IO, HRAM and IE; split by address below
}

// MMU is the DMG bus: everything the CPU, timer interrupt and PPU see
// through a single 16-bit address space.
type MMU struct {
	cart   *Cartridge
	mapper Mapper

	vram [0x2000]byte
	wram [0x2000]byte
	oam  [0xA0]byte
	hram [0x7F]byte
	io   [0x80]byte

	ie uint8

	bootLocked bool
	timer      timer
	joypad     *joypad
}

// New returns an MMU with no cartridge inserted, bootstrap ROM mapped.
func New() *MMU {
	m := &MMU{
		cart:       NewCartridge(),
		mapper:     nil,
		bootLocked: true,
		joypad:     newJoypad(),
	}
	m.mapper = NewNoMBC(m.cart)
	return m
}

// NewWithCartridge returns an MMU with cart inserted and the appropriate
// mapper wired up per the header's declared type (§4.2).
func NewWithCartridge(cart *Cartridge) *MMU {
	m := New()
	m.cart = cart
	switch cart.Mapper {
	case MapperNone:
		m.mapper = NewNoMBC(cart)
	case MapperMBC1:
		m.mapper = NewMBC1(cart)
	default:
		panic(fmt.Sprintf("unsupported mapper type: %d", cart.Mapper))
	}
	return m
}

// Tick advances the timer by the T-cycle cost of the instruction the
// CPU just executed and raises the timer interrupt on overflow (§4.4).
func (m *MMU) Tick(cycles int) {
	if m.timer.tick(cycles) {
		m.RequestInterrupt(addr.Timer)
	}
}

// PressKey and ReleaseKey feed a host input event into the joypad model,
// raising the joypad interrupt on a released->pressed transition (§4.3).
func (m *MMU) PressKey(b input.Button) {
	if m.joypad.press(b) {
		m.RequestInterrupt(addr.Joypad)
	}
}

func (m *MMU) ReleaseKey(b input.Button) {
	m.joypad.release(b)
}

// RequestInterrupt sets the corresponding bit of IF.
func (m *MMU) RequestInterrupt(i addr.Interrupt) {
	m.io[addr.IF-addr.IOStart] = bit.Set(interruptBit(i), m.io[addr.IF-addr.IOStart])
}

// PendingInterrupts returns the IE & IF bits currently asserted.
func (m *MMU) PendingInterrupts() uint8 {
	return m.ie & m.Read(addr.IF) & 0x1F
}

// ClearInterrupt clears a single bit of IF, called once an interrupt has
// been dispatched to its service routine.
func (m *MMU) ClearInterrupt(i addr.Interrupt) {
	m.io[addr.IF-addr.IOStart] = bit.Reset(interruptBit(i), m.io[addr.IF-addr.IOStart])
}

func interruptBit(i addr.Interrupt) uint8 {
	switch i {
	case addr.VBlank:
		return 0
	case addr.LCDStat:
		return 1
	case addr.Timer:
		return 2
	case addr.Serial:
		return 3
	case addr.Joypad:
		return 4
	default:
		panic(fmt.Sprintf("unknown interrupt: 0x%02X", uint8(i)))
	}
}

func (m *MMU) Read(address uint16) byte {
	switch regionMap[address>>8] {
	case regionROM:
		if m.bootLocked && address <= 0x00FF {
			return bootROM[address]
		}
		return m.mapper.ReadROM(address)
	case regionVRAM:
		return m.vram[address-addr.VRAMStart]
	case regionExtRAM:
		return m.mapper.ReadRAM(address)
	case regionWRAM:
		return m.wram[address-addr.WRAMStart]
	case regionEcho:
		// §3: deliberately not mirrored to WRAM, reads as open bus.
		return 0xFF
	case regionOAM:
		if address <= addr.OAMEnd {
			return m.oam[address-addr.OAMStart]
		}
		return 0xFF // prohibited area
	case regionIO:
		return m.readIO(address)
	default:
		slog.Warn("read at unmapped address", "addr", fmt.Sprintf("0x%04X", address))
		return 0xFF
	}
}

func (m *MMU) Write(address uint16, value byte) {
	switch regionMap[address>>8] {
	case regionROM:
		m.mapper.RegisterWrite(address, value)
	case regionVRAM:
		m.vram[address-addr.VRAMStart] = value
	case regionExtRAM:
		m.mapper.WriteRAM(address, value)
	case regionWRAM:
		m.wram[address-addr.WRAMStart] = value
	case regionEcho:
		// writes silently discarded, see Read.
	case regionOAM:
		if address <= addr.OAMEnd {
			m.oam[address-addr.OAMStart] = value
		}
	case regionIO:
		m.writeIO(address, value)
	default:
		slog.Warn("write at unmapped address", "addr", fmt.Sprintf("0x%04X", address), "value", fmt.Sprintf("0x%02X", value))
	}
}

func (m *MMU) readIO(address uint16) byte {
	switch {
	case address == addr.IE:
		return m.ie
	case address >= addr.HRAMStart && address <= addr.HRAMEnd:
		return m.hram[address-addr.HRAMStart]
	case address == addr.P1:
		return m.joypad.read()
	case address == addr.DIV, address == addr.TIMA, address == addr.TMA, address == addr.TAC:
		return m.timer.read(address)
	case address == addr.IF:
		return m.io[address-addr.IOStart] | 0xE0
	default:
		return m.io[address-addr.IOStart]
	}
}

func (m *MMU) writeIO(address uint16, value byte) {
	switch {
	case address == addr.IE:
		m.ie = value
	case address >= addr.HRAMStart && address <= addr.HRAMEnd:
		m.hram[address-addr.HRAMStart] = value
	case address == addr.P1:
		m.joypad.writeSelector(value)
	case address == addr.DIV, address == addr.TIMA, address == addr.TMA, address == addr.TAC:
		if m.timer.write(address, value) {
			m.RequestInterrupt(addr.Timer)
		}
	case address == addr.IF:
		m.io[address-addr.IOStart] = value | 0xE0
	case address == addr.DMA:
		m.runDMA(value)
		m.io[address-addr.IOStart] = value
	case address == addr.BootLock:
		if value != 0 {
			m.bootLocked = false
		}
		m.io[address-addr.IOStart] = value
	default:
		m.io[address-addr.IOStart] = value
	}
}

// runDMA copies 160 bytes from (value << 8) into OAM, per §4.3. The real
// hardware spreads this over 160 M-cycles and blocks other bus access;
// this core applies it instantaneously.
func (m *MMU) runDMA(value byte) {
	source := uint16(value) << 8
	for i := uint16(0); i < 0xA0; i++ {
		m.oam[i] = m.Read(source + i)
	}
}

// VRAM returns a direct view of video RAM for the PPU to scan tile data
// and tile maps from (§4.6). The PPU never writes through this slice.
func (m *MMU) VRAM() []byte { return m.vram[:] }

// OAM returns a direct view of sprite attribute memory.
func (m *MMU) OAM() []byte { return m.oam[:] }

// LCDC, STAT, SCX, SCY, WX, WY, LY, LYC, BGP, OBP0 and OBP1 are typed
// accessors over their IO registers, used by the video package so it
// never has to know raw addresses.
func (m *MMU) LCDC() uint8    { return m.io[addr.LCDC-addr.IOStart] }
func (m *MMU) STAT() uint8    { return m.io[addr.STAT-addr.IOStart] }
func (m *MMU) SetSTAT(v uint8) { m.io[addr.STAT-addr.IOStart] = v }
func (m *MMU) SCX() uint8     { return m.io[addr.SCX-addr.IOStart] }
func (m *MMU) SCY() uint8     { return m.io[addr.SCY-addr.IOStart] }
func (m *MMU) WX() uint8      { return m.io[addr.WX-addr.IOStart] }
func (m *MMU) WY() uint8      { return m.io[addr.WY-addr.IOStart] }
func (m *MMU) LY() uint8      { return m.io[addr.LY-addr.IOStart] }
func (m *MMU) SetLY(v uint8)  { m.io[addr.LY-addr.IOStart] = v }
func (m *MMU) LYC() uint8     { return m.io[addr.LYC-addr.IOStart] }
func (m *MMU) BGP() uint8     { return m.io[addr.BGP-addr.IOStart] }
func (m *MMU) OBP0() uint8    { return m.io[addr.OBP0-addr.IOStart] }
func (m *MMU) OBP1() uint8    { return m.io[addr.OBP1-addr.IOStart] }
