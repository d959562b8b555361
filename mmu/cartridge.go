package mmu

import (
	"fmt"
	"log/slog"
)

// header field offsets (§4.2, §6)
const (
	titleAddress      = 0x134
	titleLength       = 16
	mapperTypeAddress = 0x147
	romSizeAddress    = 0x148
	ramSizeAddress    = 0x149
)

// ramBankCounts maps the RAM-size header code to a bank count, per §4.2.
var ramBankCounts = [6]int{0, 0, 1, 4, 16, 8}

// MapperType identifies the cartridge controller variant. Only the
// values the spec requires support for are named; others are reported
// as unsupported at load time.
type MapperType uint8

const (
	MapperNone MapperType = iota
	MapperMBC1
	MapperUnsupported
)

func mapperTypeFromHeader(code byte) MapperType {
	switch code {
	case 0x00:
		return MapperNone
	case 0x01, 0x02, 0x03:
		return MapperMBC1
	default:
		return MapperUnsupported
	}
}

// Cartridge holds the raw ROM image split into 16KiB banks, any
// external RAM backing, and the header-derived metadata needed to
// build the right mapper.
type Cartridge struct {
	Title      string
	Mapper     MapperType
	ROMBanks   [][0x4000]byte
	RAMBanks   [][0x2000]byte
	hasRAM     bool
}

// NewCartridge returns an empty cartridge (two zeroed ROM banks),
// useful for running the bootstrap ROM with nothing inserted.
func NewCartridge() *Cartridge {
	return &Cartridge{
		ROMBanks: make([][0x4000]byte, 2),
		Mapper:   MapperNone,
	}
}

// LoadCartridge parses a raw ROM image per the header layout in §4.2
// and §6. Returns an error for headers declaring an unsupported mapper
// type; the caller (cmd/emulator) is expected to report it and exit 1
// per §7.
func LoadCartridge(data []byte) (*Cartridge, error) {
	if len(data) < 0x150 {
		return nil, fmt.Errorf("rom too small to contain a header: %d bytes", len(data))
	}

	mapperCode := data[mapperTypeAddress]
	mapper := mapperTypeFromHeader(mapperCode)
	if mapper == MapperUnsupported {
		return nil, fmt.Errorf("unsupported mapper type: 0x%02X", mapperCode)
	}

	romBankCount := 2 << data[romSizeAddress]
	ramCode := int(data[ramSizeAddress])
	ramBankCount := 0
	if ramCode < len(ramBankCounts) {
		ramBankCount = ramBankCounts[ramCode]
	}

	if declared := romBankCount * 0x4000; declared != len(data) {
		slog.Warn("rom bank count does not match file length",
			"declared_banks", romBankCount, "declared_bytes", declared, "file_bytes", len(data))
	}

	cart := &Cartridge{
		Title:    cleanTitle(data[titleAddress : titleAddress+titleLength]),
		Mapper:   mapper,
		ROMBanks: make([][0x4000]byte, romBankCount),
		RAMBanks: make([][0x2000]byte, max(ramBankCount, 1)),
		hasRAM:   ramBankCount > 0,
	}

	for bank := 0; bank < romBankCount; bank++ {
		start := bank * 0x4000
		end := start + 0x4000
		if start >= len(data) {
			break
		}
		if end > len(data) {
			end = len(data)
		}
		copy(cart.ROMBanks[bank][:], data[start:end])
	}

	return cart, nil
}

func cleanTitle(raw []byte) string {
	end := len(raw)
	for i, b := range raw {
		if b == 0 {
			end = i
			break
		}
	}
	return string(raw[:end])
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
