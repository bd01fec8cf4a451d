// Package ppu implements the pixel-processing unit's scanline timing and
// the background/window rendering pipeline. VRAM and OAM are owned by the
// Bus; VRAM is passed in by reference on each Step, and OAM is not read by
// the PPU. The PPU itself only holds registers, scanline-clock state, and
// the output framebuffer.
package ppu

const (
	ScreenWidth  = 160
	ScreenHeight = 144

	dotsPerScanline = 456
	scanlinesPerFrame = 154
	vblankStartLine   = 144
)

// Mode identifies the current PPU phase within a scanline.
type Mode byte

const (
	ModeHBlank    Mode = 0
	ModeVBlank    Mode = 1
	ModeOAMScan   Mode = 2
	ModePixelXfer Mode = 3
)

// PPU holds the LCDC/STAT/scroll/palette registers, the scanline clock, and
// the rendered framebuffer. VRAM is supplied to Step on each call.
type PPU struct {
	lcdc byte
	stat byte
	scy  byte
	scx  byte
	ly   byte
	lyc  byte
	bgp  byte
	wy   byte
	wx   byte

	cycleAcc int
	mode     Mode

	fb [ScreenWidth * ScreenHeight * 4]byte
}

// New returns a PPU initialized to the post-boot register state from
// spec.md §3: LCDC=0x91, STAT=0x85, BGP=0xFC, mode=1 (VBlank).
func New() *PPU {
	p := &PPU{
		lcdc: 0x91,
		stat: 0x85,
		bgp:  0xFC,
		mode: ModeVBlank,
	}
	for i := range p.fb {
		p.fb[i] = 0xFF
	}
	return p
}

// ReadRegister serves 0xFF40-0xFF45, 0xFF47, 0xFF4A-0xFF4B. 0xFF46 (DMA) is
// handled by the Bus directly since it is write-only here.
func (p *PPU) ReadRegister(addr uint16) byte {
	switch addr {
	case 0xFF40:
		return p.lcdc
	case 0xFF41:
		return p.stat
	case 0xFF42:
		return p.scy
	case 0xFF43:
		return p.scx
	case 0xFF44:
		return p.ly
	case 0xFF45:
		return p.lyc
	case 0xFF47:
		return p.bgp
	case 0xFF4A:
		return p.wy
	case 0xFF4B:
		return p.wx
	default:
		return 0xFF
	}
}

// WriteRegister serves the same address set as ReadRegister. Writing 0xFF44
// (LY) resets LY to 0, and only the interrupt-enable bits (3-6) of STAT
// (0xFF41) are writable; mode and LYC-match bits stay PPU-owned.
func (p *PPU) WriteRegister(addr uint16, v byte) {
	switch addr {
	case 0xFF40:
		p.lcdc = v
	case 0xFF41:
		p.stat = (p.stat & 0x07) | (v & 0x78)
	case 0xFF42:
		p.scy = v
	case 0xFF43:
		p.scx = v
	case 0xFF44:
		p.ly = 0
	case 0xFF45:
		p.lyc = v
	case 0xFF47:
		p.bgp = v
	case 0xFF4A:
		p.wy = v
	case 0xFF4B:
		p.wx = v
	}
}

// Framebuffer returns the latest rendered frame: 160x144 RGBA, row-major.
func (p *PPU) Framebuffer() []byte { return p.fb[:] }

// Step advances the scanline clock by cycles and, when LCDC bit 7 is clear,
// forces LY/mode to 0 and the framebuffer to all-0xFF with no interrupts.
// It reports whether a VBlank or STAT interrupt condition was raised during
// this call; the Bus ORs these into IF bits 0 and 1 respectively. When LY
// wraps back to 0, the background/window layers are rendered from the
// current register snapshot.
func (p *PPU) Step(cycles int, vram []byte) (raisedVBlank, raisedStat bool) {
	if cycles <= 0 {
		return false, false
	}

	if p.lcdc&0x80 == 0 {
		p.ly = 0
		p.cycleAcc = 0
		p.mode = ModeHBlank
		p.stat = p.stat &^ 0x07
		for i := range p.fb {
			p.fb[i] = 0xFF
		}
		return false, false
	}

	oldCoincidence := p.stat&0x04 != 0
	oldMode := p.mode

	p.cycleAcc += cycles
	for p.cycleAcc >= dotsPerScanline {
		p.cycleAcc -= dotsPerScanline
		p.ly = (p.ly + 1) % scanlinesPerFrame
		if p.ly == vblankStartLine {
			raisedVBlank = true
		}
		if p.ly == 0 {
			p.render(vram)
		}
	}

	var newMode Mode
	switch {
	case p.ly >= vblankStartLine:
		newMode = ModeVBlank
	case p.cycleAcc < 80:
		newMode = ModeOAMScan
	case p.cycleAcc < 252:
		newMode = ModePixelXfer
	default:
		newMode = ModeHBlank
	}
	p.mode = newMode

	newCoincidence := p.ly == p.lyc
	p.stat = (p.stat &^ 0x07) | byte(newMode)
	if newCoincidence {
		p.stat |= 0x04
	}

	if newCoincidence && !oldCoincidence && p.stat&0x40 != 0 {
		raisedStat = true
	}
	if newMode != oldMode {
		switch newMode {
		case ModeOAMScan:
			if p.stat&0x20 != 0 {
				raisedStat = true
			}
		case ModeVBlank:
			if p.stat&0x10 != 0 {
				raisedStat = true
			}
		case ModeHBlank:
			if p.stat&0x08 != 0 {
				raisedStat = true
			}
		}
	}

	return raisedVBlank, raisedStat
}
