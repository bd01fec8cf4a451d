package ppu

// shade maps a 2-bit color id extracted from BGP to a grayscale byte value.
var shade = [4]byte{0xFF, 0xAA, 0x55, 0x00}

// tileColorID looks up the 2-bit color index for tile-map coordinates
// (tx, ty) -- 0..31 each -- and in-tile coordinates (fineX, fineY) -- 0..7
// each, per spec.md §4.3 steps 3-6.
func tileColorID(vram []byte, mapBase uint16, unsignedAddressing bool, tx, ty uint16, fineX, fineY byte) byte {
	tileIndexAddr := mapBase - 0x8000 + ty*32 + tx
	tileIndex := vram[tileIndexAddr]

	var tileAddr uint16
	if unsignedAddressing {
		tileAddr = 0x8000 + uint16(tileIndex)*16
	} else {
		tileAddr = uint16(int32(0x9000) + int32(int8(tileIndex))*16)
	}
	lineAddr := tileAddr - 0x8000 + uint16(fineY)*2
	b0 := vram[lineAddr]
	b1 := vram[lineAddr+1]

	bit := 7 - (fineX & 7)
	return ((b1>>bit)&1)<<1 | ((b0 >> bit) & 1)
}

// bgpShade converts a color id (0..3) to the RGB(A) shade selected by BGP.
func bgpShade(bgp, colorID byte) byte {
	bits := (bgp >> (colorID * 2)) & 0x03
	return shade[bits]
}

// render draws the background layer, optionally overlaid by the window
// layer, into the framebuffer using the current register snapshot. This
// matches spec.md §4.3: the whole frame is produced at the LY-wrap-to-0
// boundary rather than scanline-by-scanline.
func (p *PPU) render(vram []byte) {
	bgMapBase := uint16(0x9800)
	if p.lcdc&0x08 != 0 {
		bgMapBase = 0x9C00
	}
	winMapBase := uint16(0x9800)
	if p.lcdc&0x40 != 0 {
		winMapBase = 0x9C00
	}
	unsignedAddressing := p.lcdc&0x10 != 0
	windowEnabled := p.lcdc&0x20 != 0
	winOriginX := int(p.wx) - 7

	for y := 0; y < ScreenHeight; y++ {
		sy := (y + int(p.scy)) & 0xFF
		ty := uint16(sy/8) & 31
		fineY := byte(sy & 7)

		winLine := y - int(p.wy)
		winActiveThisRow := windowEnabled && winLine >= 0

		for x := 0; x < ScreenWidth; x++ {
			var colorID byte
			if winActiveThisRow && x >= winOriginX {
				wx := x - winOriginX
				wty := uint16(winLine/8) & 31
				wfineY := byte(winLine & 7)
				wtx := uint16(wx/8) & 31
				wfineX := byte(wx & 7)
				colorID = tileColorID(vram, winMapBase, unsignedAddressing, wtx, wty, wfineX, wfineY)
			} else {
				sx := (x + int(p.scx)) & 0xFF
				tx := uint16(sx/8) & 31
				fineX := byte(sx & 7)
				colorID = tileColorID(vram, bgMapBase, unsignedAddressing, tx, ty, fineX, fineY)
			}

			v := bgpShade(p.bgp, colorID)
			i := (y*ScreenWidth + x) * 4
			p.fb[i+0] = v
			p.fb[i+1] = v
			p.fb[i+2] = v
			p.fb[i+3] = 0xFF
		}
	}
}
