package cartridge

import (
	"errors"
	"testing"
)

// buildINES assembles a minimal iNES v1 image for tests.
func buildINES(mapperID uint8, prgBanks, chrBanks uint8, battery bool, mirroring Mirroring) []byte {
	flags6 := (mapperID & 0x0F) << 4
	if mirroring == MirrorVertical {
		flags6 |= 0x01
	}
	if mirroring == MirrorFourScreen {
		flags6 |= 0x08
	}
	if battery {
		flags6 |= 0x02
	}
	flags7 := mapperID & 0xF0

	header := []byte{'N', 'E', 'S', 0x1A, prgBanks, chrBanks, flags6, flags7, 0, 0, 0, 0, 0, 0, 0, 0}
	data := append([]byte(nil), header...)
	data = append(data, make([]byte, int(prgBanks)*prgROMBankSize)...)
	data = append(data, make([]byte, int(chrBanks)*chrROMBankSize)...)
	return data
}

func TestLoadRejectsBadMagic(t *testing.T) {
	data := buildINES(0, 1, 1, false, MirrorHorizontal)
	data[0] = 'X'
	if _, err := Load(data); !errors.Is(err, ErrBadMagic) {
		t.Errorf("Load with bad magic: got %v, want ErrBadMagic", err)
	}
}

func TestLoadRejectsTruncatedFile(t *testing.T) {
	if _, err := Load([]byte{1, 2, 3}); !errors.Is(err, ErrTruncatedFile) {
		t.Errorf("Load with short data: got %v, want ErrTruncatedFile", err)
	}
}

func TestLoadRejectsTrainer(t *testing.T) {
	data := buildINES(0, 1, 1, false, MirrorHorizontal)
	data[6] |= 0x04
	if _, err := Load(data); !errors.Is(err, ErrTrainerPresent) {
		t.Errorf("Load with trainer flag: got %v, want ErrTrainerPresent", err)
	}
}

func TestLoadRejectsUnsupportedMapper(t *testing.T) {
	data := buildINES(99, 1, 1, false, MirrorHorizontal)
	_, err := Load(data)
	var unsupported *UnsupportedMapperError
	if !errors.As(err, &unsupported) {
		t.Fatalf("Load with mapper 99: got %v, want *UnsupportedMapperError", err)
	}
	if unsupported.ID != 99 {
		t.Errorf("UnsupportedMapperError.ID = %d, want 99", unsupported.ID)
	}
}

func TestNROMMirrorsSingleBank(t *testing.T) {
	data := buildINES(0, 1, 1, false, MirrorHorizontal)
	data[16] = 0xAB // first byte of PRG-ROM
	cart, err := Load(data)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	m := cart.Mapper()
	if got := m.ReadPRG(0x8000); got != 0xAB {
		t.Errorf("ReadPRG(0x8000) = %#02x, want 0xAB", got)
	}
	if got := m.ReadPRG(0xC000); got != 0xAB {
		t.Errorf("ReadPRG(0xC000) = %#02x, want 0xAB (16 KiB image mirrored)", got)
	}
}

func TestUxROMBankSwitch(t *testing.T) {
	data := buildINES(2, 4, 0, false, MirrorHorizontal)
	// Mark the start of each 16 KiB PRG bank so ReadPRG can tell them apart.
	for bank := 0; bank < 4; bank++ {
		data[16+bank*prgROMBankSize] = byte(bank)
	}
	cart, err := Load(data)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	m := cart.Mapper()

	if got := m.ReadPRG(0xC000); got != 3 {
		t.Errorf("fixed last bank at $C000 = %d, want 3", got)
	}

	m.WritePRG(0x8000, 2)
	if got := m.ReadPRG(0x8000); got != 2 {
		t.Errorf("after selecting bank 2, ReadPRG(0x8000) = %d, want 2", got)
	}
}

func TestCNROMSwitchesCHRBank(t *testing.T) {
	data := buildINES(3, 1, 2, false, MirrorHorizontal)
	prgStart := 16
	chrStart := prgStart + prgROMBankSize
	data[chrStart] = 0x11
	data[chrStart+chrROMBankSize] = 0x22

	cart, err := Load(data)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	m := cart.Mapper()

	if got := m.ReadCHR(0); got != 0x11 {
		t.Errorf("CHR bank 0 at offset 0 = %#02x, want 0x11", got)
	}
	m.WritePRG(0x8000, 1)
	if got := m.ReadCHR(0); got != 0x22 {
		t.Errorf("after selecting CHR bank 1, ReadCHR(0) = %#02x, want 0x22", got)
	}
}

func TestMMC1RejectsConsecutiveTickWrite(t *testing.T) {
	data := buildINES(1, 2, 1, false, MirrorHorizontal)
	cart, err := Load(data)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	m := cart.Mapper().(*mmc1)

	m.NotifyTick(100)
	m.WritePRG(0x8000, 0x00) // first write of the sequence, shiftCount -> 1
	if m.shiftCount != 1 {
		t.Fatalf("shiftCount after first write = %d, want 1", m.shiftCount)
	}

	m.NotifyTick(101) // one tick later: must be rejected
	m.WritePRG(0x8000, 0x01)
	if m.shiftCount != 1 {
		t.Error("write landing one master tick after the previous accepted write was not rejected")
	}

	// Five well-spaced writes encoding control=0x08 (mirroring=0, prgMode=2,
	// chrMode=0), starting from a bit-7 reset.
	m.NotifyTick(110)
	m.WritePRG(0x8000, 0x80) // bit 7 set: reset shift register, prgMode forced to 3
	if m.prgMode != 3 || m.shiftCount != 0 {
		t.Fatalf("after reset write: prgMode=%d shiftCount=%d, want 3, 0", m.prgMode, m.shiftCount)
	}

	bits := []uint8{0, 0, 0, 1, 0}
	for i, bit := range bits {
		m.NotifyTick(uint64(113 + i*2))
		m.WritePRG(0x8000, bit)
	}

	if m.prgMode != 2 {
		t.Errorf("prgMode after 5-bit sequence = %d, want 2", m.prgMode)
	}
	if m.control != 0x08 {
		t.Errorf("control after 5-bit sequence = %#02x, want 0x08", m.control)
	}
}

func TestMMC3ScanlineIRQ(t *testing.T) {
	data := buildINES(4, 4, 2, false, MirrorHorizontal)
	cart, err := Load(data)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	m := cart.Mapper().(*mmc3)

	m.WritePRG(0xC000, 5) // IRQ latch = 5
	m.WritePRG(0xC001, 0) // reload on next clock
	m.WritePRG(0xE001, 0) // enable IRQ

	for i := 0; i < 6; i++ {
		m.ClockScanline()
	}
	if !m.IRQPending() {
		t.Error("expected IRQ pending after latch+1 scanline clocks")
	}

	m.WritePRG(0xE000, 0) // disable and acknowledge
	if m.IRQPending() {
		t.Error("expected IRQ cleared after write to $E000")
	}
}

func TestBatterySaveRoundTrip(t *testing.T) {
	data := buildINES(1, 2, 1, true, MirrorHorizontal)
	cart, err := Load(data)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !cart.HasBattery() {
		t.Fatal("expected HasBattery() true")
	}

	cart.Mapper().WritePRG(0x6000, 0x99)
	saved := cart.SavePRGRAM()
	if len(saved) == 0 {
		t.Fatal("SavePRGRAM returned empty data for a battery-backed cartridge")
	}

	cart2, err := Load(data)
	if err != nil {
		t.Fatalf("Load (second cartridge): %v", err)
	}
	cart2.LoadPRGRAM(saved)
	if got := cart2.Mapper().ReadPRG(0x6000); got != 0x99 {
		t.Errorf("after LoadPRGRAM round trip, ReadPRG(0x6000) = %#02x, want 0x99", got)
	}
}
