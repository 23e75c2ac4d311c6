package cpu

type instruction struct {
	name   string
	op     func(*CPU) uint32
	mode   func(*CPU)
	cycles uint8
}

// ---- addressing modes ----
// Each sets c.addrAbs (or c.addrRel for branches) and, for the indexed
// modes that can spill into a new page, c.pageCrossed.

func modeIMP(c *CPU) { c.implied = true }

func modeACC(c *CPU) { c.implied = true; c.fetched = c.A }

func modeIMM(c *CPU) {
	c.addrAbs = c.PC
	c.PC++
}

func modeZP0(c *CPU) {
	c.addrAbs = uint16(c.read(c.PC))
	c.PC++
}

func modeZPX(c *CPU) {
	c.addrAbs = uint16(c.read(c.PC)+c.X) & 0x00FF
	c.PC++
}

func modeZPY(c *CPU) {
	c.addrAbs = uint16(c.read(c.PC)+c.Y) & 0x00FF
	c.PC++
}

func modeREL(c *CPU) {
	rel := uint16(c.read(c.PC))
	c.PC++
	if rel&0x80 != 0 {
		rel |= 0xFF00
	}
	c.addrRel = rel
}

func modeABS(c *CPU) {
	c.addrAbs = c.read16(c.PC)
	c.PC += 2
}

func modeABX(c *CPU) {
	base := c.read16(c.PC)
	c.PC += 2
	addr := base + uint16(c.X)
	c.addrAbs = addr
	c.pageCrossed = (addr & 0xFF00) != (base & 0xFF00)
}

func modeABY(c *CPU) {
	base := c.read16(c.PC)
	c.PC += 2
	addr := base + uint16(c.Y)
	c.addrAbs = addr
	c.pageCrossed = (addr & 0xFF00) != (base & 0xFF00)
}

// modeIND reproduces the page-boundary bug: if the pointer sits at the
// last byte of a page, the high byte wraps within that page instead of
// reading from the next one.
func modeIND(c *CPU) {
	ptr := c.read16(c.PC)
	c.PC += 2
	if ptr&0x00FF == 0x00FF {
		lo := c.read(ptr)
		hi := c.read(ptr & 0xFF00)
		c.addrAbs = uint16(hi)<<8 | uint16(lo)
	} else {
		c.addrAbs = c.read16(ptr)
	}
}

func modeIZX(c *CPU) {
	t := uint16(c.read(c.PC))
	c.PC++
	addr := (t + uint16(c.X)) & 0x00FF
	c.addrAbs = c.read16Wrap(addr)
}

func modeIZY(c *CPU) {
	t := uint16(c.read(c.PC))
	c.PC++
	base := c.read16Wrap(t)
	addr := base + uint16(c.Y)
	c.addrAbs = addr
	c.pageCrossed = (addr & 0xFF00) != (base & 0xFF00)
}

func pageExtra(c *CPU) uint32 {
	if c.pageCrossed {
		return 1
	}
	return 0
}

// ---- operations ----

func (c *CPU) branch(cond bool) uint32 {
	if !cond {
		return 0
	}
	target := c.PC + c.addrRel
	extra := uint32(1)
	if target&0xFF00 != c.PC&0xFF00 {
		extra++
	}
	c.PC = target
	return extra
}

func opADC(c *CPU) uint32 {
	v := c.fetch()
	carry := uint16(0)
	if c.getFlag(FlagCarry) {
		carry = 1
	}
	sum := uint16(c.A) + uint16(v) + carry
	result := uint8(sum)
	c.setFlag(FlagCarry, sum > 0xFF)
	c.setFlag(FlagOverflow, (c.A^v)&0x80 == 0 && (c.A^result)&0x80 != 0)
	c.A = result
	c.setZN(c.A)
	return pageExtra(c)
}

func opSBC(c *CPU) uint32 {
	v := c.fetch() ^ 0xFF
	carry := uint16(0)
	if c.getFlag(FlagCarry) {
		carry = 1
	}
	sum := uint16(c.A) + uint16(v) + carry
	result := uint8(sum)
	c.setFlag(FlagCarry, sum > 0xFF)
	c.setFlag(FlagOverflow, (c.A^v)&0x80 == 0 && (c.A^result)&0x80 != 0)
	c.A = result
	c.setZN(c.A)
	return pageExtra(c)
}

func opAND(c *CPU) uint32 { c.A &= c.fetch(); c.setZN(c.A); return pageExtra(c) }
func opORA(c *CPU) uint32 { c.A |= c.fetch(); c.setZN(c.A); return pageExtra(c) }
func opEOR(c *CPU) uint32 { c.A ^= c.fetch(); c.setZN(c.A); return pageExtra(c) }

func (c *CPU) compare(reg uint8) uint32 {
	v := c.fetch()
	c.setFlag(FlagCarry, reg >= v)
	c.setZN(reg - v)
	return pageExtra(c)
}

func opCMP(c *CPU) uint32 { return c.compare(c.A) }
func opCPX(c *CPU) uint32 { return c.compare(c.X) }
func opCPY(c *CPU) uint32 { return c.compare(c.Y) }

func opBIT(c *CPU) uint32 {
	v := c.fetch()
	c.setFlag(FlagZero, c.A&v == 0)
	c.setFlag(FlagOverflow, v&0x40 != 0)
	c.setFlag(FlagNegative, v&0x80 != 0)
	return 0
}

func (c *CPU) shiftOrRotate(f func(uint8) uint8) uint32 {
	v := c.fetch()
	result := f(v)
	c.setZN(result)
	if c.implied {
		c.A = result
	} else {
		c.write(c.addrAbs, result)
	}
	return 0
}

func opASL(c *CPU) uint32 {
	return c.shiftOrRotate(func(v uint8) uint8 {
		c.setFlag(FlagCarry, v&0x80 != 0)
		return v << 1
	})
}

func opLSR(c *CPU) uint32 {
	return c.shiftOrRotate(func(v uint8) uint8 {
		c.setFlag(FlagCarry, v&0x01 != 0)
		return v >> 1
	})
}

func opROL(c *CPU) uint32 {
	return c.shiftOrRotate(func(v uint8) uint8 {
		oldCarry := uint8(0)
		if c.getFlag(FlagCarry) {
			oldCarry = 1
		}
		c.setFlag(FlagCarry, v&0x80 != 0)
		return v<<1 | oldCarry
	})
}

func opROR(c *CPU) uint32 {
	return c.shiftOrRotate(func(v uint8) uint8 {
		oldCarry := uint8(0)
		if c.getFlag(FlagCarry) {
			oldCarry = 0x80
		}
		c.setFlag(FlagCarry, v&0x01 != 0)
		return v>>1 | oldCarry
	})
}

func opINC(c *CPU) uint32 { v := c.read(c.addrAbs) + 1; c.write(c.addrAbs, v); c.setZN(v); return 0 }
func opDEC(c *CPU) uint32 { v := c.read(c.addrAbs) - 1; c.write(c.addrAbs, v); c.setZN(v); return 0 }
func opINX(c *CPU) uint32 { c.X++; c.setZN(c.X); return 0 }
func opINY(c *CPU) uint32 { c.Y++; c.setZN(c.Y); return 0 }
func opDEX(c *CPU) uint32 { c.X--; c.setZN(c.X); return 0 }
func opDEY(c *CPU) uint32 { c.Y--; c.setZN(c.Y); return 0 }

func opLDA(c *CPU) uint32 { c.A = c.fetch(); c.setZN(c.A); return pageExtra(c) }
func opLDX(c *CPU) uint32 { c.X = c.fetch(); c.setZN(c.X); return pageExtra(c) }
func opLDY(c *CPU) uint32 { c.Y = c.fetch(); c.setZN(c.Y); return pageExtra(c) }
func opSTA(c *CPU) uint32 { c.write(c.addrAbs, c.A); return 0 }
func opSTX(c *CPU) uint32 { c.write(c.addrAbs, c.X); return 0 }
func opSTY(c *CPU) uint32 { c.write(c.addrAbs, c.Y); return 0 }

func opTAX(c *CPU) uint32 { c.X = c.A; c.setZN(c.X); return 0 }
func opTAY(c *CPU) uint32 { c.Y = c.A; c.setZN(c.Y); return 0 }
func opTXA(c *CPU) uint32 { c.A = c.X; c.setZN(c.A); return 0 }
func opTYA(c *CPU) uint32 { c.A = c.Y; c.setZN(c.A); return 0 }
func opTSX(c *CPU) uint32 { c.X = c.SP; c.setZN(c.X); return 0 }
func opTXS(c *CPU) uint32 { c.SP = c.X; return 0 }

func opPHA(c *CPU) uint32 { c.push(c.A); return 0 }
func opPHP(c *CPU) uint32 { c.push(c.status | FlagBreak | FlagUnused); return 0 }
func opPLA(c *CPU) uint32 { c.A = c.pop(); c.setZN(c.A); return 0 }
func opPLP(c *CPU) uint32 {
	c.status = c.pop()
	c.setFlag(FlagBreak, false)
	c.setFlag(FlagUnused, true)
	return 0
}

func opCLC(c *CPU) uint32 { c.setFlag(FlagCarry, false); return 0 }
func opSEC(c *CPU) uint32 { c.setFlag(FlagCarry, true); return 0 }
func opCLI(c *CPU) uint32 { c.setFlag(FlagInterrupt, false); return 0 }
func opSEI(c *CPU) uint32 { c.setFlag(FlagInterrupt, true); return 0 }
func opCLD(c *CPU) uint32 { c.setFlag(FlagDecimal, false); return 0 }
func opSED(c *CPU) uint32 { c.setFlag(FlagDecimal, true); return 0 }
func opCLV(c *CPU) uint32 { c.setFlag(FlagOverflow, false); return 0 }

func opBCC(c *CPU) uint32 { return c.branch(!c.getFlag(FlagCarry)) }
func opBCS(c *CPU) uint32 { return c.branch(c.getFlag(FlagCarry)) }
func opBEQ(c *CPU) uint32 { return c.branch(c.getFlag(FlagZero)) }
func opBNE(c *CPU) uint32 { return c.branch(!c.getFlag(FlagZero)) }
func opBMI(c *CPU) uint32 { return c.branch(c.getFlag(FlagNegative)) }
func opBPL(c *CPU) uint32 { return c.branch(!c.getFlag(FlagNegative)) }
func opBVC(c *CPU) uint32 { return c.branch(!c.getFlag(FlagOverflow)) }
func opBVS(c *CPU) uint32 { return c.branch(c.getFlag(FlagOverflow)) }

func opJMP(c *CPU) uint32 { c.PC = c.addrAbs; return 0 }

func opJSR(c *CPU) uint32 {
	c.PC--
	c.push(uint8(c.PC >> 8))
	c.push(uint8(c.PC))
	c.PC = c.addrAbs
	return 0
}

func opRTS(c *CPU) uint32 {
	c.popPC()
	c.PC++
	return 0
}

func opBRK(c *CPU) uint32 {
	c.PC++
	c.serviceInterrupt(vectorIRQ, true)
	return 0
}

func opRTI(c *CPU) uint32 {
	c.status = c.pop()
	c.setFlag(FlagBreak, false)
	c.setFlag(FlagUnused, true)
	c.popPC()
	return 0
}

func opNOP(c *CPU) uint32 { return pageExtra(c) }

// opXXX handles undocumented opcodes. Games that rely on specific illegal
// opcode behavior are out of scope; treat every one as a noop of its
// decoded addressing-mode width so the instruction stream stays aligned.
func opXXX(c *CPU) uint32 { return 0 }

var opcodeTable = [256]instruction{
	0x00: {"BRK", opBRK, modeIMP, 7}, 0x01: {"ORA", opORA, modeIZX, 6}, 0x02: {"XXX", opXXX, modeIMP, 2}, 0x03: {"XXX", opXXX, modeIZX, 8},
	0x04: {"NOP", opNOP, modeZP0, 3}, 0x05: {"ORA", opORA, modeZP0, 3}, 0x06: {"ASL", opASL, modeZP0, 5}, 0x07: {"XXX", opXXX, modeZP0, 5},
	0x08: {"PHP", opPHP, modeIMP, 3}, 0x09: {"ORA", opORA, modeIMM, 2}, 0x0A: {"ASL", opASL, modeACC, 2}, 0x0B: {"XXX", opXXX, modeIMM, 2},
	0x0C: {"NOP", opNOP, modeABS, 4}, 0x0D: {"ORA", opORA, modeABS, 4}, 0x0E: {"ASL", opASL, modeABS, 6}, 0x0F: {"XXX", opXXX, modeABS, 6},

	0x10: {"BPL", opBPL, modeREL, 2}, 0x11: {"ORA", opORA, modeIZY, 5}, 0x12: {"XXX", opXXX, modeIMP, 2}, 0x13: {"XXX", opXXX, modeIZY, 8},
	0x14: {"NOP", opNOP, modeZPX, 4}, 0x15: {"ORA", opORA, modeZPX, 4}, 0x16: {"ASL", opASL, modeZPX, 6}, 0x17: {"XXX", opXXX, modeZPX, 6},
	0x18: {"CLC", opCLC, modeIMP, 2}, 0x19: {"ORA", opORA, modeABY, 4}, 0x1A: {"NOP", opNOP, modeIMP, 2}, 0x1B: {"XXX", opXXX, modeABY, 7},
	0x1C: {"NOP", opNOP, modeABX, 4}, 0x1D: {"ORA", opORA, modeABX, 4}, 0x1E: {"ASL", opASL, modeABX, 7}, 0x1F: {"XXX", opXXX, modeABX, 7},

	0x20: {"JSR", opJSR, modeABS, 6}, 0x21: {"AND", opAND, modeIZX, 6}, 0x22: {"XXX", opXXX, modeIMP, 2}, 0x23: {"XXX", opXXX, modeIZX, 8},
	0x24: {"BIT", opBIT, modeZP0, 3}, 0x25: {"AND", opAND, modeZP0, 3}, 0x26: {"ROL", opROL, modeZP0, 5}, 0x27: {"XXX", opXXX, modeZP0, 5},
	0x28: {"PLP", opPLP, modeIMP, 4}, 0x29: {"AND", opAND, modeIMM, 2}, 0x2A: {"ROL", opROL, modeACC, 2}, 0x2B: {"XXX", opXXX, modeIMM, 2},
	0x2C: {"BIT", opBIT, modeABS, 4}, 0x2D: {"AND", opAND, modeABS, 4}, 0x2E: {"ROL", opROL, modeABS, 6}, 0x2F: {"XXX", opXXX, modeABS, 6},

	0x30: {"BMI", opBMI, modeREL, 2}, 0x31: {"AND", opAND, modeIZY, 5}, 0x32: {"XXX", opXXX, modeIMP, 2}, 0x33: {"XXX", opXXX, modeIZY, 8},
	0x34: {"NOP", opNOP, modeZPX, 4}, 0x35: {"AND", opAND, modeZPX, 4}, 0x36: {"ROL", opROL, modeZPX, 6}, 0x37: {"XXX", opXXX, modeZPX, 6},
	0x38: {"SEC", opSEC, modeIMP, 2}, 0x39: {"AND", opAND, modeABY, 4}, 0x3A: {"NOP", opNOP, modeIMP, 2}, 0x3B: {"XXX", opXXX, modeABY, 7},
	0x3C: {"NOP", opNOP, modeABX, 4}, 0x3D: {"AND", opAND, modeABX, 4}, 0x3E: {"ROL", opROL, modeABX, 7}, 0x3F: {"XXX", opXXX, modeABX, 7},

	0x40: {"RTI", opRTI, modeIMP, 6}, 0x41: {"EOR", opEOR, modeIZX, 6}, 0x42: {"XXX", opXXX, modeIMP, 2}, 0x43: {"XXX", opXXX, modeIZX, 8},
	0x44: {"NOP", opNOP, modeZP0, 3}, 0x45: {"EOR", opEOR, modeZP0, 3}, 0x46: {"LSR", opLSR, modeZP0, 5}, 0x47: {"XXX", opXXX, modeZP0, 5},
	0x48: {"PHA", opPHA, modeIMP, 3}, 0x49: {"EOR", opEOR, modeIMM, 2}, 0x4A: {"LSR", opLSR, modeACC, 2}, 0x4B: {"XXX", opXXX, modeIMM, 2},
	0x4C: {"JMP", opJMP, modeABS, 3}, 0x4D: {"EOR", opEOR, modeABS, 4}, 0x4E: {"LSR", opLSR, modeABS, 6}, 0x4F: {"XXX", opXXX, modeABS, 6},

	0x50: {"BVC", opBVC, modeREL, 2}, 0x51: {"EOR", opEOR, modeIZY, 5}, 0x52: {"XXX", opXXX, modeIMP, 2}, 0x53: {"XXX", opXXX, modeIZY, 8},
	0x54: {"NOP", opNOP, modeZPX, 4}, 0x55: {"EOR", opEOR, modeZPX, 4}, 0x56: {"LSR", opLSR, modeZPX, 6}, 0x57: {"XXX", opXXX, modeZPX, 6},
	0x58: {"CLI", opCLI, modeIMP, 2}, 0x59: {"EOR", opEOR, modeABY, 4}, 0x5A: {"NOP", opNOP, modeIMP, 2}, 0x5B: {"XXX", opXXX, modeABY, 7},
	0x5C: {"NOP", opNOP, modeABX, 4}, 0x5D: {"EOR", opEOR, modeABX, 4}, 0x5E: {"LSR", opLSR, modeABX, 7}, 0x5F: {"XXX", opXXX, modeABX, 7},

	0x60: {"RTS", opRTS, modeIMP, 6}, 0x61: {"ADC", opADC, modeIZX, 6}, 0x62: {"XXX", opXXX, modeIMP, 2}, 0x63: {"XXX", opXXX, modeIZX, 8},
	0x64: {"NOP", opNOP, modeZP0, 3}, 0x65: {"ADC", opADC, modeZP0, 3}, 0x66: {"ROR", opROR, modeZP0, 5}, 0x67: {"XXX", opXXX, modeZP0, 5},
	0x68: {"PLA", opPLA, modeIMP, 4}, 0x69: {"ADC", opADC, modeIMM, 2}, 0x6A: {"ROR", opROR, modeACC, 2}, 0x6B: {"XXX", opXXX, modeIMM, 2},
	0x6C: {"JMP", opJMP, modeIND, 5}, 0x6D: {"ADC", opADC, modeABS, 4}, 0x6E: {"ROR", opROR, modeABS, 6}, 0x6F: {"XXX", opXXX, modeABS, 6},

	0x70: {"BVS", opBVS, modeREL, 2}, 0x71: {"ADC", opADC, modeIZY, 5}, 0x72: {"XXX", opXXX, modeIMP, 2}, 0x73: {"XXX", opXXX, modeIZY, 8},
	0x74: {"NOP", opNOP, modeZPX, 4}, 0x75: {"ADC", opADC, modeZPX, 4}, 0x76: {"ROR", opROR, modeZPX, 6}, 0x77: {"XXX", opXXX, modeZPX, 6},
	0x78: {"SEI", opSEI, modeIMP, 2}, 0x79: {"ADC", opADC, modeABY, 4}, 0x7A: {"NOP", opNOP, modeIMP, 2}, 0x7B: {"XXX", opXXX, modeABY, 7},
	0x7C: {"NOP", opNOP, modeABX, 4}, 0x7D: {"ADC", opADC, modeABX, 4}, 0x7E: {"ROR", opROR, modeABX, 7}, 0x7F: {"XXX", opXXX, modeABX, 7},

	0x80: {"NOP", opNOP, modeIMM, 2}, 0x81: {"STA", opSTA, modeIZX, 6}, 0x82: {"NOP", opNOP, modeIMM, 2}, 0x83: {"XXX", opXXX, modeIZX, 6},
	0x84: {"STY", opSTY, modeZP0, 3}, 0x85: {"STA", opSTA, modeZP0, 3}, 0x86: {"STX", opSTX, modeZP0, 3}, 0x87: {"XXX", opXXX, modeZP0, 3},
	0x88: {"DEY", opDEY, modeIMP, 2}, 0x89: {"NOP", opNOP, modeIMM, 2}, 0x8A: {"TXA", opTXA, modeIMP, 2}, 0x8B: {"XXX", opXXX, modeIMM, 2},
	0x8C: {"STY", opSTY, modeABS, 4}, 0x8D: {"STA", opSTA, modeABS, 4}, 0x8E: {"STX", opSTX, modeABS, 4}, 0x8F: {"XXX", opXXX, modeABS, 4},

	0x90: {"BCC", opBCC, modeREL, 2}, 0x91: {"STA", opSTA, modeIZY, 6}, 0x92: {"XXX", opXXX, modeIMP, 2}, 0x93: {"XXX", opXXX, modeIZY, 6},
	0x94: {"STY", opSTY, modeZPX, 4}, 0x95: {"STA", opSTA, modeZPX, 4}, 0x96: {"STX", opSTX, modeZPY, 4}, 0x97: {"XXX", opXXX, modeZPY, 4},
	0x98: {"TYA", opTYA, modeIMP, 2}, 0x99: {"STA", opSTA, modeABY, 5}, 0x9A: {"TXS", opTXS, modeIMP, 2}, 0x9B: {"XXX", opXXX, modeABY, 5},
	0x9C: {"XXX", opXXX, modeABX, 5}, 0x9D: {"STA", opSTA, modeABX, 5}, 0x9E: {"XXX", opXXX, modeABY, 5}, 0x9F: {"XXX", opXXX, modeABY, 5},

	0xA0: {"LDY", opLDY, modeIMM, 2}, 0xA1: {"LDA", opLDA, modeIZX, 6}, 0xA2: {"LDX", opLDX, modeIMM, 2}, 0xA3: {"XXX", opXXX, modeIZX, 6},
	0xA4: {"LDY", opLDY, modeZP0, 3}, 0xA5: {"LDA", opLDA, modeZP0, 3}, 0xA6: {"LDX", opLDX, modeZP0, 3}, 0xA7: {"XXX", opXXX, modeZP0, 3},
	0xA8: {"TAY", opTAY, modeIMP, 2}, 0xA9: {"LDA", opLDA, modeIMM, 2}, 0xAA: {"TAX", opTAX, modeIMP, 2}, 0xAB: {"XXX", opXXX, modeIMM, 2},
	0xAC: {"LDY", opLDY, modeABS, 4}, 0xAD: {"LDA", opLDA, modeABS, 4}, 0xAE: {"LDX", opLDX, modeABS, 4}, 0xAF: {"XXX", opXXX, modeABS, 4},

	0xB0: {"BCS", opBCS, modeREL, 2}, 0xB1: {"LDA", opLDA, modeIZY, 5}, 0xB2: {"XXX", opXXX, modeIMP, 2}, 0xB3: {"XXX", opXXX, modeIZY, 5},
	0xB4: {"LDY", opLDY, modeZPX, 4}, 0xB5: {"LDA", opLDA, modeZPX, 4}, 0xB6: {"LDX", opLDX, modeZPY, 4}, 0xB7: {"XXX", opXXX, modeZPY, 4},
	0xB8: {"CLV", opCLV, modeIMP, 2}, 0xB9: {"LDA", opLDA, modeABY, 4}, 0xBA: {"TSX", opTSX, modeIMP, 2}, 0xBB: {"XXX", opXXX, modeABY, 4},
	0xBC: {"LDY", opLDY, modeABX, 4}, 0xBD: {"LDA", opLDA, modeABX, 4}, 0xBE: {"LDX", opLDX, modeABY, 4}, 0xBF: {"XXX", opXXX, modeABY, 4},

	0xC0: {"CPY", opCPY, modeIMM, 2}, 0xC1: {"CMP", opCMP, modeIZX, 6}, 0xC2: {"NOP", opNOP, modeIMM, 2}, 0xC3: {"XXX", opXXX, modeIZX, 8},
	0xC4: {"CPY", opCPY, modeZP0, 3}, 0xC5: {"CMP", opCMP, modeZP0, 3}, 0xC6: {"DEC", opDEC, modeZP0, 5}, 0xC7: {"XXX", opXXX, modeZP0, 5},
	0xC8: {"INY", opINY, modeIMP, 2}, 0xC9: {"CMP", opCMP, modeIMM, 2}, 0xCA: {"DEX", opDEX, modeIMP, 2}, 0xCB: {"XXX", opXXX, modeIMM, 2},
	0xCC: {"CPY", opCPY, modeABS, 4}, 0xCD: {"CMP", opCMP, modeABS, 4}, 0xCE: {"DEC", opDEC, modeABS, 6}, 0xCF: {"XXX", opXXX, modeABS, 6},

	0xD0: {"BNE", opBNE, modeREL, 2}, 0xD1: {"CMP", opCMP, modeIZY, 5}, 0xD2: {"XXX", opXXX, modeIMP, 2}, 0xD3: {"XXX", opXXX, modeIZY, 8},
	0xD4: {"NOP", opNOP, modeZPX, 4}, 0xD5: {"CMP", opCMP, modeZPX, 4}, 0xD6: {"DEC", opDEC, modeZPX, 6}, 0xD7: {"XXX", opXXX, modeZPX, 6},
	0xD8: {"CLD", opCLD, modeIMP, 2}, 0xD9: {"CMP", opCMP, modeABY, 4}, 0xDA: {"NOP", opNOP, modeIMP, 2}, 0xDB: {"XXX", opXXX, modeABY, 7},
	0xDC: {"NOP", opNOP, modeABX, 4}, 0xDD: {"CMP", opCMP, modeABX, 4}, 0xDE: {"DEC", opDEC, modeABX, 7}, 0xDF: {"XXX", opXXX, modeABX, 7},

	0xE0: {"CPX", opCPX, modeIMM, 2}, 0xE1: {"SBC", opSBC, modeIZX, 6}, 0xE2: {"NOP", opNOP, modeIMM, 2}, 0xE3: {"XXX", opXXX, modeIZX, 8},
	0xE4: {"CPX", opCPX, modeZP0, 3}, 0xE5: {"SBC", opSBC, modeZP0, 3}, 0xE6: {"INC", opINC, modeZP0, 5}, 0xE7: {"XXX", opXXX, modeZP0, 5},
	0xE8: {"INX", opINX, modeIMP, 2}, 0xE9: {"SBC", opSBC, modeIMM, 2}, 0xEA: {"NOP", opNOP, modeIMP, 2}, 0xEB: {"SBC", opSBC, modeIMM, 2},
	0xEC: {"CPX", opCPX, modeABS, 4}, 0xED: {"SBC", opSBC, modeABS, 4}, 0xEE: {"INC", opINC, modeABS, 6}, 0xEF: {"XXX", opXXX, modeABS, 6},

	0xF0: {"BEQ", opBEQ, modeREL, 2}, 0xF1: {"SBC", opSBC, modeIZY, 5}, 0xF2: {"XXX", opXXX, modeIMP, 2}, 0xF3: {"XXX", opXXX, modeIZY, 8},
	0xF4: {"NOP", opNOP, modeZPX, 4}, 0xF5: {"SBC", opSBC, modeZPX, 4}, 0xF6: {"INC", opINC, modeZPX, 6}, 0xF7: {"XXX", opXXX, modeZPX, 6},
	0xF8: {"SED", opSED, modeIMP, 2}, 0xF9: {"SBC", opSBC, modeABY, 4}, 0xFA: {"NOP", opNOP, modeIMP, 2}, 0xFB: {"XXX", opXXX, modeABY, 7},
	0xFC: {"NOP", opNOP, modeABX, 4}, 0xFD: {"SBC", opSBC, modeABX, 4}, 0xFE: {"INC", opINC, modeABX, 7}, 0xFF: {"XXX", opXXX, modeABX, 7},
}
