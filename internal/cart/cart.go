// Package cart holds the immutable cartridge ROM image and answers CPU
// reads against the fixed-ROM address range. Bank switching (MBC) is an
// explicit non-goal for this core; the interface is kept narrow so a
// banked implementation can be slotted in later without touching the Bus.
package cart

import (
	"errors"
	"fmt"
	"os"
)

// minHeaderLen is the smallest ROM size that contains a full cartridge
// header (0x0100-0x014F).
const minHeaderLen = 0x150

// ErrRomTooSmall is returned when a ROM image is shorter than the header
// region requires.
var ErrRomTooSmall = errors.New("cart: rom too small to contain header")

// Cartridge is the fixed-ROM-only implementation this core supports. Reads
// past the end of the image return 0xFF, same as reads into any other
// unmapped region.
type Cartridge struct {
	rom    []byte
	Header Header
}

// Load validates and wraps a ROM image. The returned Cartridge is immutable
// for the lifetime of the session.
func Load(rom []byte) (*Cartridge, error) {
	if len(rom) < minHeaderLen {
		return nil, fmt.Errorf("%w: got %d bytes, want at least %d", ErrRomTooSmall, len(rom), minHeaderLen)
	}
	h := ParseHeader(rom)
	return &Cartridge{rom: rom, Header: h}, nil
}

// LoadFile reads a ROM image from disk and validates it via Load.
func LoadFile(path string) (*Cartridge, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("cart: read %s: %w", path, err)
	}
	c, err := Load(data)
	if err != nil {
		return nil, fmt.Errorf("cart: %s: %w", path, err)
	}
	return c, nil
}

// Read returns a byte for the ROM address range (0x0000-0x7FFF). External
// RAM (0xA000-0xBFFF) always reads 0xFF since there is no MBC/RAM here.
func (c *Cartridge) Read(addr uint16) byte {
	if addr < 0x8000 {
		if int(addr) < len(c.rom) {
			return c.rom[addr]
		}
		return 0xFF
	}
	return 0xFF
}

// Write is a no-op: a fixed ROM-only cartridge has no bank-select or
// external-RAM registers to latch.
func (c *Cartridge) Write(addr uint16, value byte) {}
