// Package bus is the central memory decoder. It owns work RAM, video RAM,
// object attribute memory, high RAM, the joypad latch, the Timer, and the
// PPU, and routes every CPU read/write to the right backing store and
// side-effect (DIV/LY resets, OAM DMA, interrupt-flag bits).
package bus

import (
	"github.com/arjunvale/dmgcore/internal/cart"
	"github.com/arjunvale/dmgcore/internal/ppu"
	"github.com/arjunvale/dmgcore/internal/timer"
)

// Interrupt-flag bit positions, lowest-numbered wins priority on dispatch.
const (
	IntVBlank = 1 << 0
	IntSTAT   = 1 << 1
	IntTimer  = 1 << 2
	IntSerial = 1 << 3
	IntJoypad = 1 << 4
)

// Bus wires the CPU-visible address space to the cartridge, RAM, PPU, and
// Timer. It is the only thing the CPU ever touches.
type Bus struct {
	cart *cart.Cartridge

	wram [0x2000]byte // 0xC000-0xDFFF, echoed at 0xE000-0xFDFF
	vram [0x2000]byte // 0x8000-0x9FFF, owned here and lent to the PPU per step
	oam  [0x00A0]byte // 0xFE00-0xFE9F
	hram [0x007F]byte // 0xFF80-0xFFFE

	ppu   *ppu.PPU
	timer *timer.Timer

	ie    byte // 0xFFFF
	iflag byte // 0xFF0F (low 5 bits used)

	joypSelect byte // bits 4-5 of 0xFF00, as last written
	joypad     Joypad
}

// New wires a Bus around the given cartridge. RAM/VRAM/OAM/HRAM start
// zeroed; the PPU and Timer start at their own documented post-boot state.
func New(c *cart.Cartridge) *Bus {
	return &Bus{
		cart:  c,
		ppu:   ppu.New(),
		timer: timer.New(),
	}
}

// SetJoypad atomically replaces the joypad snapshot.
func (b *Bus) SetJoypad(j Joypad) { b.joypad = j }

// PPU exposes the owned PPU for the Emulator's framebuffer access.
func (b *Bus) PPU() *ppu.PPU { return b.ppu }

// Read decodes a CPU-visible address. Unmapped addresses read 0xFF.
func (b *Bus) Read(addr uint16) byte {
	switch {
	case addr < 0x8000:
		return b.cart.Read(addr)

	case addr >= 0x8000 && addr <= 0x9FFF:
		return b.vram[addr-0x8000]

	case addr >= 0xA000 && addr <= 0xBFFF:
		return b.cart.Read(addr)

	case addr >= 0xC000 && addr <= 0xDFFF:
		return b.wram[addr-0xC000]

	case addr >= 0xE000 && addr <= 0xFDFF:
		return b.wram[addr-0x2000-0xC000]

	case addr >= 0xFE00 && addr <= 0xFE9F:
		return b.oam[addr-0xFE00]

	case addr == 0xFF00:
		return b.readJoyp()

	case addr == 0xFF04:
		return b.timer.DIV()
	case addr == 0xFF05:
		return b.timer.TIMA()
	case addr == 0xFF06:
		return b.timer.TMA()
	case addr == 0xFF07:
		return b.timer.TAC()

	case addr == 0xFF0F:
		return b.iflag

	case addr == 0xFF40, addr == 0xFF41, addr == 0xFF42, addr == 0xFF43,
		addr == 0xFF44, addr == 0xFF45, addr == 0xFF47,
		addr == 0xFF4A, addr == 0xFF4B:
		return b.ppu.ReadRegister(addr)

	case addr >= 0xFF80 && addr <= 0xFFFE:
		return b.hram[addr-0xFF80]

	case addr == 0xFFFF:
		return b.ie

	default:
		return 0xFF
	}
}

// Write decodes a CPU-visible address write, applying the special cases
// from spec.md §4.1 (DIV/LY reset-on-write, DMA trigger, masked registers).
func (b *Bus) Write(addr uint16, value byte) {
	switch {
	case addr < 0x8000:
		b.cart.Write(addr, value)

	case addr >= 0x8000 && addr <= 0x9FFF:
		b.vram[addr-0x8000] = value

	case addr >= 0xA000 && addr <= 0xBFFF:
		b.cart.Write(addr, value)

	case addr >= 0xC000 && addr <= 0xDFFF:
		b.wram[addr-0xC000] = value

	case addr >= 0xE000 && addr <= 0xFDFF:
		b.wram[addr-0x2000-0xC000] = value

	case addr >= 0xFE00 && addr <= 0xFE9F:
		b.oam[addr-0xFE00] = value

	case addr == 0xFF00:
		b.joypSelect = value & 0x30

	case addr == 0xFF04:
		b.timer.WriteDIV()
	case addr == 0xFF05:
		b.timer.WriteTIMA(value)
	case addr == 0xFF06:
		b.timer.WriteTMA(value)
	case addr == 0xFF07:
		b.timer.WriteTAC(value)

	case addr == 0xFF0F:
		b.iflag = value & 0x1F

	case addr == 0xFF40, addr == 0xFF41, addr == 0xFF42, addr == 0xFF43,
		addr == 0xFF44, addr == 0xFF45, addr == 0xFF47,
		addr == 0xFF4A, addr == 0xFF4B:
		b.ppu.WriteRegister(addr, value)

	case addr == 0xFF46:
		b.doDMA(value)

	case addr >= 0xFF80 && addr <= 0xFFFE:
		b.hram[addr-0xFF80] = value

	case addr == 0xFFFF:
		b.ie = value
	}
}

// doDMA performs the instantaneous 160-byte OAM transfer from (value<<8).
// Real hardware spreads this over 160 cycles and blocks CPU access to
// everything but HRAM meanwhile; this core does the copy in one step, as
// spec.md §4.1/§9 document as a known simplification.
func (b *Bus) doDMA(value byte) {
	src := uint16(value) << 8
	for i := uint16(0); i < 0xA0; i++ {
		b.oam[i] = b.Read(src + i)
	}
}

// readJoyp computes the 0xFF00 byte per spec.md §4.1's active-low
// selection rules.
func (b *Bus) readJoyp() byte {
	res := byte(0xCF | (b.joypSelect & 0x30))

	if b.joypSelect&0x10 == 0 { // P14 low selects D-Pad
		if b.joypad.Right {
			res &^= 0x01
		}
		if b.joypad.Left {
			res &^= 0x02
		}
		if b.joypad.Up {
			res &^= 0x04
		}
		if b.joypad.Down {
			res &^= 0x08
		}
	}
	if b.joypSelect&0x20 == 0 { // P15 low selects buttons
		if b.joypad.A {
			res &^= 0x01
		}
		if b.joypad.B {
			res &^= 0x02
		}
		if b.joypad.Select {
			res &^= 0x04
		}
		if b.joypad.Start {
			res &^= 0x08
		}
	}
	return res
}

// Step advances the PPU and Timer by cycles and latches any raised
// interrupt conditions into IF. This is called once per CPU instruction by
// the Emulator, with the exact cycle count that instruction consumed.
func (b *Bus) Step(cycles int) {
	vblank, stat := b.ppu.Step(cycles, b.vram[:])
	if vblank {
		b.iflag |= IntVBlank
	}
	if stat {
		b.iflag |= IntSTAT
	}
	if b.timer.Step(cycles) {
		b.iflag |= IntTimer
	}
}

// IE returns the interrupt-enable register (0xFFFF).
func (b *Bus) IE() byte { return b.ie }

// IF returns the interrupt-flag register (0xFF0F).
func (b *Bus) IF() byte { return b.iflag }

// ClearIF clears a single interrupt-flag bit, used by the CPU when it
// begins servicing that interrupt.
func (b *Bus) ClearIF(bit uint) { b.iflag &^= 1 << bit }
