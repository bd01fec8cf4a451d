package cart

import (
	"encoding/binary"
	"strings"
)

// Header carries the informational fields from the 0x0100-0x014F region.
// None of this drives emulation behavior in this core (MBC selection is a
// future extension); it exists purely so callers can log what was loaded.
type Header struct {
	Title          string
	CGBFlag        byte
	CartType       byte
	ROMSizeCode    byte
	RAMSizeCode    byte
	HeaderChecksum byte
	GlobalChecksum uint16
}

// ParseHeader extracts the informational header fields. The caller (Load)
// has already confirmed the ROM is at least minHeaderLen bytes, so this
// never fails.
func ParseHeader(rom []byte) Header {
	title := strings.TrimRight(string(rom[0x0134:0x0144]), "\x00")
	return Header{
		Title:          title,
		CGBFlag:        rom[0x0143],
		CartType:       rom[0x0147],
		ROMSizeCode:    rom[0x0148],
		RAMSizeCode:    rom[0x0149],
		HeaderChecksum: rom[0x014D],
		GlobalChecksum: binary.BigEndian.Uint16(rom[0x014E:0x0150]),
	}
}

// ChecksumOK reports whether the header checksum byte matches the standard
// Pan Docs algorithm over 0x0134-0x014C. Purely diagnostic.
func ChecksumOK(rom []byte) bool {
	if len(rom) < minHeaderLen {
		return false
	}
	var sum byte
	for addr := 0x0134; addr <= 0x014C; addr++ {
		sum = sum - rom[addr] - 1
	}
	return sum == rom[0x014D]
}
