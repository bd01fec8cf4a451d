package bus

import (
	"testing"

	"github.com/arjunvale/dmgcore/internal/cart"
)

func newTestBus(t *testing.T, rom []byte) *Bus {
	t.Helper()
	if len(rom) < 0x150 {
		padded := make([]byte, 0x150)
		copy(padded, rom)
		rom = padded
	}
	c, err := cart.Load(rom)
	if err != nil {
		t.Fatalf("cart.Load: %v", err)
	}
	return New(c)
}

func TestBus_ROMRead(t *testing.T) {
	rom := make([]byte, 0x8000)
	rom[0x0100] = 0x42
	b := newTestBus(t, rom)
	if got := b.Read(0x0100); got != 0x42 {
		t.Fatalf("ROM read got %02x want 42", got)
	}
}

func TestBus_WRAMReadWrite(t *testing.T) {
	b := newTestBus(t, nil)
	b.Write(0xC000, 0x99)
	if got := b.Read(0xC000); got != 0x99 {
		t.Fatalf("WRAM read got %02x want 99", got)
	}
}

func TestBus_EchoRAMMirrorsWRAM(t *testing.T) {
	b := newTestBus(t, nil)
	b.Write(0xE000, 0x55)
	if got := b.Read(0xC000); got != 0x55 {
		t.Fatalf("echo write did not mirror to WRAM: got %02x", got)
	}
	b.Write(0xC123, 0x77)
	if got := b.Read(0xE123); got != 0x77 {
		t.Fatalf("WRAM write did not mirror to echo RAM: got %02x", got)
	}
}

func TestBus_HRAMReadWrite(t *testing.T) {
	b := newTestBus(t, nil)
	b.Write(0xFF80, 0xAB)
	if got := b.Read(0xFF80); got != 0xAB {
		t.Fatalf("HRAM read got %02x want AB", got)
	}
}

func TestBus_VRAMAndOAM(t *testing.T) {
	b := newTestBus(t, nil)
	b.Write(0x8000, 0x11)
	if got := b.Read(0x8000); got != 0x11 {
		t.Fatalf("VRAM read got %02x want 11", got)
	}
	b.Write(0xFE00, 0x22)
	if got := b.Read(0xFE00); got != 0x22 {
		t.Fatalf("OAM read got %02x want 22", got)
	}
}

func TestBus_UnmappedReadsFF(t *testing.T) {
	b := newTestBus(t, nil)
	if got := b.Read(0xFEA0); got != 0xFF {
		t.Fatalf("unmapped read got %02x want FF", got)
	}
}

func TestBus_DIVResetOnWrite(t *testing.T) {
	b := newTestBus(t, nil)
	b.Step(10000)
	if b.Read(0xFF04) == 0 {
		t.Fatalf("expected DIV to have advanced before reset")
	}
	b.Write(0xFF04, 0x99) // any value resets
	if got := b.Read(0xFF04); got != 0 {
		t.Fatalf("DIV after write got %02x want 0", got)
	}
}

func TestBus_LYResetOnWrite(t *testing.T) {
	b := newTestBus(t, nil)
	b.Write(0xFF40, 0x80) // LCD on
	b.Step(456 * 5)
	if b.Read(0xFF44) == 0 {
		t.Fatalf("expected LY to have advanced")
	}
	b.Write(0xFF44, 0x00)
	if got := b.Read(0xFF44); got != 0 {
		t.Fatalf("LY after write got %d want 0", got)
	}
}

func TestBus_DMACopiesToOAM(t *testing.T) {
	b := newTestBus(t, nil)
	b.Write(0xC000, 0xAA)
	for i := uint16(0); i < 0xA0; i++ {
		b.Write(0xC000+i, byte(i))
	}
	b.Write(0xFF46, 0xC0) // source = 0xC000
	for i := uint16(0); i < 0xA0; i++ {
		if got := b.Read(0xFE00 + i); got != byte(i) {
			t.Fatalf("OAM[%d] got %02x want %02x after DMA", i, got, byte(i))
		}
	}
}

func TestBus_JoypadActiveLowDPad(t *testing.T) {
	b := newTestBus(t, nil)
	b.SetJoypad(Joypad{Right: true, Up: true})
	b.Write(0xFF00, 0x20) // select D-pad (bit4=0 selects), bit5=1 deselects buttons
	got := b.Read(0xFF00)
	if got&0x01 != 0 {
		t.Fatalf("expected Right bit cleared (pressed), got %02x", got)
	}
	if got&0x04 != 0 {
		t.Fatalf("expected Up bit cleared (pressed), got %02x", got)
	}
	if got&0x02 == 0 || got&0x08 == 0 {
		t.Fatalf("expected Left/Down bits set (not pressed), got %02x", got)
	}
}

func TestBus_JoypadActiveLowButtons(t *testing.T) {
	b := newTestBus(t, nil)
	b.SetJoypad(Joypad{A: true, Start: true})
	b.Write(0xFF00, 0x10) // select buttons (bit5=0), deselect d-pad (bit4=1)
	got := b.Read(0xFF00)
	if got&0x01 != 0 {
		t.Fatalf("expected A bit cleared (pressed), got %02x", got)
	}
	if got&0x08 != 0 {
		t.Fatalf("expected Start bit cleared (pressed), got %02x", got)
	}
}

func TestBus_StepLatchesVBlankAndTimerInterrupts(t *testing.T) {
	b := newTestBus(t, nil)
	b.Write(0xFF40, 0x80) // LCD on
	b.Write(0xFF07, 0x05) // timer enabled, period 16
	b.Write(0xFF06, 0x7F)
	b.Write(0xFF05, 0xFF)

	for i := 0; i < 200; i++ {
		b.Step(456)
	}
	if b.IF()&IntVBlank == 0 {
		t.Fatalf("expected VBlank IF bit set")
	}
	if b.IF()&IntTimer == 0 {
		t.Fatalf("expected Timer IF bit set")
	}
}

func TestBus_IEAndIFRegisters(t *testing.T) {
	b := newTestBus(t, nil)
	b.Write(0xFFFF, 0x1F)
	if got := b.Read(0xFFFF); got != 0x1F {
		t.Fatalf("IE read got %02x want 1F", got)
	}
	b.Write(0xFF0F, 0xFF)
	if got := b.Read(0xFF0F); got != 0x1F {
		t.Fatalf("IF read got %02x want 1F (masked to low 5 bits)", got)
	}
	b.ClearIF(0)
	if got := b.Read(0xFF0F); got != 0x1E {
		t.Fatalf("IF after ClearIF(0) got %02x want 1E", got)
	}
}
