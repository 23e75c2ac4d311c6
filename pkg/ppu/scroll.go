package ppu

// LoopyRegister is one of the PPU's two internal scroll/address registers
// (named for Loopy's documentation of the chip). $2005/$2006 writes and
// internal scanline bookkeeping manipulate "v" (the active VRAM address)
// and "t" (the pending/scroll-latch address) through the same type.
//
// Bit layout (yyy NN YYYYY XXXXX):
//
//	14-12: fine Y scroll
//	11-10: nametable select
//	9-5:   coarse Y (0-29 are nametable rows; 30-31 read attribute data)
//	4-0:   coarse X
type LoopyRegister struct {
	register uint16
}

func (l *LoopyRegister) Set(value uint16) { l.register = value & 0x7FFF }
func (l *LoopyRegister) Get() uint16      { return l.register }

func (l *LoopyRegister) CoarseX() uint16 { return l.register & 0x001F }
func (l *LoopyRegister) SetCoarseX(value uint16) {
	l.register = (l.register & 0x7FE0) | (value & 0x001F)
}

func (l *LoopyRegister) CoarseY() uint16 { return (l.register & 0x03E0) >> 5 }
func (l *LoopyRegister) SetCoarseY(value uint16) {
	l.register = (l.register & 0x7C1F) | ((value & 0x001F) << 5)
}

func (l *LoopyRegister) NametableX() uint16 { return (l.register & 0x0400) >> 10 }
func (l *LoopyRegister) SetNametableX(value uint16) {
	if value != 0 {
		l.register |= 0x0400
	} else {
		l.register &^= 0x0400
	}
}

func (l *LoopyRegister) NametableY() uint16 { return (l.register & 0x0800) >> 11 }
func (l *LoopyRegister) SetNametableY(value uint16) {
	if value != 0 {
		l.register |= 0x0800
	} else {
		l.register &^= 0x0800
	}
}

func (l *LoopyRegister) FineY() uint16 { return (l.register & 0x7000) >> 12 }
func (l *LoopyRegister) SetFineY(value uint16) {
	l.register = (l.register & 0x0FFF) | ((value & 0x0007) << 12)
}

// IncrementX moves the address one tile right, wrapping coarse X at 32 and
// flipping the horizontal nametable bit when it does.
func (l *LoopyRegister) IncrementX() {
	if l.CoarseX() == 31 {
		l.SetCoarseX(0)
		l.SetNametableX(l.NametableX() ^ 1)
	} else {
		l.SetCoarseX(l.CoarseX() + 1)
	}
}

// IncrementY moves the address one scanline down: fine Y first, then
// coarse Y on fine-Y overflow. Coarse Y can reach 31, but nametables are
// only 30 rows tall, so row 31 wraps to 0 without flipping the nametable —
// a documented hardware quirk some games rely on to scroll past the
// attribute-table rows.
func (l *LoopyRegister) IncrementY() {
	if l.FineY() < 7 {
		l.SetFineY(l.FineY() + 1)
		return
	}
	l.SetFineY(0)

	switch y := l.CoarseY(); y {
	case 29:
		l.SetCoarseY(0)
		l.SetNametableY(l.NametableY() ^ 1)
	case 31:
		l.SetCoarseY(0)
	default:
		l.SetCoarseY(y + 1)
	}
}

// TransferX copies coarse X and nametable X from source, reloading the
// horizontal scroll position at the start of each scanline (cycle 257).
func (l *LoopyRegister) TransferX(source *LoopyRegister) {
	l.register = (l.register & 0x7BE0) | (source.register & 0x041F)
}

// TransferY copies fine Y, coarse Y, and nametable Y from source, reloading
// the vertical scroll position during the pre-render scanline (cycles
// 280-304) for the next frame.
func (l *LoopyRegister) TransferY(source *LoopyRegister) {
	l.register = (l.register & 0x041F) | (source.register & 0x7BE0)
}
