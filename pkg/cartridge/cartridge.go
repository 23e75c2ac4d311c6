package cartridge

import (
	"errors"
	"fmt"

	"github.com/golang/glog"
)

const (
	inesHeaderSize = 16
	prgROMBankSize = 16384
	chrROMBankSize = 8192
	trainerSize    = 512

	inesMagic = "NES\x1a"
)

// Load errors. ErrBadMagic, ErrTruncatedFile and ErrTrainerPresent are
// sentinels usable with errors.Is; UnsupportedMapperError carries the
// offending mapper ID and is usable with errors.As.
var (
	ErrBadMagic       = errors.New("cartridge: not an iNES image (bad magic)")
	ErrTruncatedFile  = errors.New("cartridge: file too short for its own header")
	ErrTrainerPresent = errors.New("cartridge: 512-byte trainer present, refused")
)

// UnsupportedMapperError reports an iNES mapper number this module does
// not implement.
type UnsupportedMapperError struct {
	ID uint8
}

func (e *UnsupportedMapperError) Error() string {
	return fmt.Sprintf("cartridge: unsupported mapper %d", e.ID)
}

// Cartridge represents a loaded NES ROM cartridge. It is immutable once
// constructed; bank-switching state lives in the Mapper, not here.
type Cartridge struct {
	mapper     Mapper
	mapperID   uint8
	prgBanks   uint8
	chrBanks   uint8
	mirroring  Mirroring
	hasBattery bool
	hasTrainer bool
}

// Load parses an iNES v1 image already held in memory.
func Load(data []byte) (*Cartridge, error) {
	if len(data) < inesHeaderSize {
		return nil, ErrTruncatedFile
	}
	if string(data[0:4]) != inesMagic {
		return nil, ErrBadMagic
	}

	header := parseINESHeader(data)
	if header.hasTrainer {
		return nil, ErrTrainerPresent
	}

	offset := inesHeaderSize
	prgSize := int(header.prgBanks) * prgROMBankSize
	if len(data) < offset+prgSize {
		return nil, fmt.Errorf("cartridge: %w: PRG-ROM truncated", ErrTruncatedFile)
	}
	prgROM := data[offset : offset+prgSize]
	offset += prgSize

	chrSize := int(header.chrBanks) * chrROMBankSize
	var chrROM []byte
	if chrSize > 0 {
		if len(data) < offset+chrSize {
			return nil, fmt.Errorf("cartridge: %w: CHR-ROM truncated", ErrTruncatedFile)
		}
		chrROM = data[offset : offset+chrSize]
	}

	mapper, err := createMapper(header.mapperID, prgROM, chrROM, header.mirroring)
	if err != nil {
		return nil, err
	}

	glog.V(1).Infof("cartridge: mapper=%d prg_banks=%d chr_banks=%d mirroring=%d battery=%v",
		header.mapperID, header.prgBanks, header.chrBanks, header.mirroring, header.hasBattery)

	return &Cartridge{
		mapper:     mapper,
		mapperID:   header.mapperID,
		prgBanks:   header.prgBanks,
		chrBanks:   header.chrBanks,
		mirroring:  header.mirroring,
		hasBattery: header.hasBattery,
		hasTrainer: header.hasTrainer,
	}, nil
}

type inesHeader struct {
	prgBanks   uint8
	chrBanks   uint8
	mapperID   uint8
	mirroring  Mirroring
	hasBattery bool
	hasTrainer bool
}

func parseINESHeader(data []byte) inesHeader {
	flags6 := data[6]
	flags7 := data[7]

	mirroring := MirrorHorizontal
	if flags6&0x01 != 0 {
		mirroring = MirrorVertical
	}
	if flags6&0x08 != 0 {
		mirroring = MirrorFourScreen
	}

	return inesHeader{
		prgBanks:   data[4],
		chrBanks:   data[5],
		mapperID:   (flags7 & 0xF0) | (flags6 >> 4),
		mirroring:  mirroring,
		hasBattery: flags6&0x02 != 0,
		hasTrainer: flags6&0x04 != 0,
	}
}

func createMapper(mapperID uint8, prgROM, chrROM []byte, mirroring Mirroring) (Mapper, error) {
	switch mapperID {
	case 0:
		return newNROM(prgROM, chrROM, mirroring), nil
	case 1:
		return newMMC1(prgROM, chrROM, mirroring), nil
	case 2:
		return newUxROM(prgROM, chrROM, mirroring), nil
	case 3:
		return newCNROM(prgROM, chrROM, mirroring), nil
	case 4:
		return newMMC3(prgROM, chrROM, mirroring), nil
	default:
		return nil, &UnsupportedMapperError{ID: mapperID}
	}
}

func (c *Cartridge) Mapper() Mapper        { return c.mapper }
func (c *Cartridge) MapperID() uint8       { return c.mapperID }
func (c *Cartridge) Mirroring() Mirroring  { return c.mirroring }
func (c *Cartridge) PRGBanks() uint8       { return c.prgBanks }
func (c *Cartridge) CHRBanks() uint8       { return c.chrBanks }
func (c *Cartridge) HasBattery() bool      { return c.hasBattery }

// SavePRGRAM returns the mapper's battery-backed PRG-RAM, or nil if the
// cartridge has none or isn't battery-backed.
func (c *Cartridge) SavePRGRAM() []byte {
	if !c.hasBattery {
		return nil
	}
	return c.mapper.SavePRGRAM()
}

// LoadPRGRAM restores a previously saved PRG-RAM blob.
func (c *Cartridge) LoadPRGRAM(data []byte) {
	if !c.hasBattery || data == nil {
		return
	}
	c.mapper.LoadPRGRAM(data)
}
