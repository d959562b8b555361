// Package core wires the CPU, MMU and PPU into the per-frame driver
// described in §4.7: it owns the interrupt controller and the halted
// wake-up path, neither of which belong to the CPU or MMU alone.
package core

import (
	"fmt"
	"os"

	"github.com/kalida-labs/dmgo/cpu"
	"github.com/kalida-labs/dmgo/input"
	"github.com/kalida-labs/dmgo/mmu"
	"github.com/kalida-labs/dmgo/video"
)

// Emulator is the root struct: one cartridge, one CPU, one MMU, one PPU.
type Emulator struct {
	cpu *cpu.CPU
	mem *mmu.MMU
	ppu *video.PPU

	frameCount uint64
}

func newEmulator(mem *mmu.MMU) *Emulator {
	e := &Emulator{mem: mem}
	e.ppu = video.New(mem)
	e.cpu = cpu.New(mem)
	return e
}

// New returns an emulator with no cartridge inserted, running only the
// bootstrap ROM.
func New() *Emulator {
	return newEmulator(mmu.New())
}

// NewWithFile loads a ROM image from disk and returns an emulator ready
// to run it from the bootstrap handoff.
func NewWithFile(path string) (*Emulator, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading rom: %w", err)
	}

	cart, err := mmu.LoadCartridge(data)
	if err != nil {
		return nil, fmt.Errorf("loading cartridge: %w", err)
	}

	return newEmulator(mmu.NewWithCartridge(cart)), nil
}

func (e *Emulator) FrameBuffer() *video.FrameBuffer { return e.ppu.FrameBuffer() }
func (e *Emulator) FrameCount() uint64              { return e.frameCount }
func (e *Emulator) CPU() *cpu.CPU                   { return e.cpu }
func (e *Emulator) MMU() *mmu.MMU                   { return e.mem }

func (e *Emulator) PressKey(b input.Button)   { e.mem.PressKey(b) }
func (e *Emulator) ReleaseKey(b input.Button) { e.mem.ReleaseKey(b) }
