// Package emu orchestrates the cartridge, bus, and CPU into a single
// runnable machine: load a ROM, run it one frame at a time, and read back
// the framebuffer and feed it joypad state.
package emu

import (
	"log"

	"github.com/arjunvale/dmgcore/internal/bus"
	"github.com/arjunvale/dmgcore/internal/cart"
	"github.com/arjunvale/dmgcore/internal/cpu"
)

// cyclesPerFrame is 154 scanlines * 456 dots, the DMG's fixed frame length.
const cyclesPerFrame = 154 * 456

// JoypadState is the host-facing button snapshot, mirrored 1:1 onto
// bus.Joypad so internal/emu callers never need to import internal/bus.
type JoypadState struct {
	Up, Down, Left, Right bool
	A, B, Start, Select   bool
}

// Machine wires a Cartridge, Bus, and CPU together and drives them one
// frame at a time. The host caller owns the one instance that matters;
// Machine keeps no internal goroutines or timers of its own.
type Machine struct {
	cfg Config
	cpu *cpu.CPU
	bus *bus.Bus
}

// New returns an unloaded Machine. Call LoadROM or LoadROMFile before
// RunFrame.
func New(cfg Config) *Machine {
	return &Machine{cfg: cfg}
}

// LoadROM replaces the machine's cartridge and resets CPU/Bus state to the
// post-boot-ROM values.
func (m *Machine) LoadROM(rom []byte) error {
	c, err := cart.Load(rom)
	if err != nil {
		return err
	}
	m.reset(c)
	return nil
}

// LoadROMFile reads a ROM image from disk and loads it.
func (m *Machine) LoadROMFile(path string) error {
	c, err := cart.LoadFile(path)
	if err != nil {
		return err
	}
	m.reset(c)
	return nil
}

func (m *Machine) reset(c *cart.Cartridge) {
	b := bus.New(c)
	m.bus = b
	m.cpu = cpu.New(b)
	if m.cfg.Trace {
		log.Printf("emu: loaded %q (type=%#02x romSize=%#02x)", c.Header.Title, c.Header.CartType, c.Header.ROMSizeCode)
	}
}

// RunFrame advances the machine by one display frame (≈70224 T-cycles,
// ~59.7 Hz). It returns a non-nil error only when the CPU fetches an
// unimplemented or illegal opcode, in which case the frame is abandoned
// mid-way and the framebuffer reflects whatever was rendered before the
// fault.
func (m *Machine) RunFrame() error {
	acc := 0
	for acc < cyclesPerFrame {
		cycles, err := m.cpu.Step()
		if err != nil {
			return err
		}
		m.bus.Step(cycles)
		acc += cycles
		if m.cfg.Trace {
			log.Printf("emu: step cycles=%d acc=%d", cycles, acc)
		}
	}
	return nil
}

// Framebuffer returns the current 160x144 RGBA pixel buffer, row-major,
// shared with the PPU's internal storage. Callers must copy it before the
// next RunFrame if they need a stable snapshot.
func (m *Machine) Framebuffer() []byte {
	return m.bus.PPU().Framebuffer()
}

// SetJoypad atomically replaces the button state the core observes on the
// next 0xFF00 read.
func (m *Machine) SetJoypad(state JoypadState) {
	m.bus.SetJoypad(bus.Joypad{
		Up: state.Up, Down: state.Down, Left: state.Left, Right: state.Right,
		A: state.A, B: state.B, Start: state.Start, Select: state.Select,
	})
}
