// Package cpu implements the NES's 2A03 CPU core: a MOS 6502 variant with
// the decimal mode disabled in hardware. The CPU never touches PPU, APU,
// or cartridge state directly; it only ever calls through a Bus.
package cpu

// Status flags, in PHP/PLP bit order.
const (
	FlagCarry     uint8 = 1 << 0
	FlagZero      uint8 = 1 << 1
	FlagInterrupt uint8 = 1 << 2
	FlagDecimal   uint8 = 1 << 3
	FlagBreak     uint8 = 1 << 4
	FlagUnused    uint8 = 1 << 5
	FlagOverflow  uint8 = 1 << 6
	FlagNegative  uint8 = 1 << 7
)

const (
	vectorNMI   uint16 = 0xFFFA
	vectorReset uint16 = 0xFFFC
	vectorIRQ   uint16 = 0xFFFE
	stackBase   uint16 = 0x0100
)

// Bus is the only way the CPU reaches the rest of the system.
type Bus interface {
	Read(addr uint16) uint8
	Write(addr uint16, v uint8)
}

// CPU emulates the 2A03's instruction execution. Call Clock once per CPU
// cycle (every third master tick); RequestNMI/RequestIRQ latch interrupt
// lines that are sampled between instructions.
type CPU struct {
	A, X, Y uint8
	SP      uint8
	PC      uint16
	status  uint8

	bus Bus

	pendingCycles uint32
	opcode        uint8

	addrAbs     uint16
	addrRel     uint16
	fetched     uint8
	implied     bool
	pageCrossed bool

	nmiLatched bool
	irqLatched bool

	stallCycles uint32
}

// New creates a CPU wired to bus. Call Reset before the first Clock.
func New(bus Bus) *CPU {
	return &CPU{bus: bus}
}

// PendingCycles reports how many more cycles the current instruction (or
// stall, e.g. OAM DMA) needs before the CPU will fetch another opcode.
func (c *CPU) PendingCycles() uint32 {
	return c.pendingCycles + c.stallCycles
}

// Stall adds extra idle cycles, e.g. for OAM DMA, without running the CPU.
func (c *CPU) Stall(cycles uint32) {
	c.stallCycles += cycles
}

// RequestNMI latches a non-maskable interrupt, serviced at the next
// instruction boundary.
func (c *CPU) RequestNMI() {
	c.nmiLatched = true
}

// RequestIRQ latches a maskable interrupt line. It stays latched until the
// interrupt disable flag is clear and the CPU services it; the caller
// (the APU frame counter, a mapper) is responsible for calling this every
// tick its IRQ source remains asserted, since the 6502 samples the IRQ
// line level, not an edge.
func (c *CPU) RequestIRQ() {
	c.irqLatched = true
}

func (c *CPU) getFlag(flag uint8) bool { return c.status&flag != 0 }

func (c *CPU) setFlag(flag uint8, v bool) {
	if v {
		c.status |= flag
	} else {
		c.status &^= flag
	}
}

func (c *CPU) setZN(v uint8) {
	c.setFlag(FlagZero, v == 0)
	c.setFlag(FlagNegative, v&0x80 != 0)
}

func (c *CPU) read(addr uint16) uint8    { return c.bus.Read(addr) }
func (c *CPU) write(addr uint16, v uint8) { c.bus.Write(addr, v) }

func (c *CPU) read16(addr uint16) uint16 {
	lo := uint16(c.read(addr))
	hi := uint16(c.read(addr + 1))
	return hi<<8 | lo
}

// read16Wrap reproduces the 6502 bug where a 16-bit read starting at the
// last byte of the zero page wraps within the zero page instead of
// spilling into page 1.
func (c *CPU) read16Wrap(addr uint16) uint16 {
	lo := uint16(c.read(addr))
	hiAddr := (addr & 0xFF00) | uint16(uint8(addr)+1)
	hi := uint16(c.read(hiAddr))
	return hi<<8 | lo
}

func (c *CPU) push(v uint8) {
	c.write(stackBase+uint16(c.SP), v)
	c.SP--
}

func (c *CPU) pop() uint8 {
	c.SP++
	return c.read(stackBase + uint16(c.SP))
}

func (c *CPU) pushPC() {
	c.push(uint8(c.PC >> 8))
	c.push(uint8(c.PC))
}

func (c *CPU) popPC() {
	lo := uint16(c.pop())
	hi := uint16(c.pop())
	c.PC = hi<<8 | lo
}

// Reset restores power-on/reset state and loads PC from the reset vector.
func (c *CPU) Reset() {
	c.A, c.X, c.Y = 0, 0, 0
	c.SP = 0xFD
	c.status = FlagUnused | FlagInterrupt
	c.PC = c.read16(vectorReset)
	c.pendingCycles = 7
	c.stallCycles = 0
	c.nmiLatched = false
	c.irqLatched = false
}

// Clock advances the CPU by one cycle. Instructions take several cycles;
// fetch/decode/execute all happen on the cycle that would start a new
// instruction, with the remaining cycles just ticking pendingCycles down
// so callers can drive the CPU one tick at a time.
func (c *CPU) Clock() {
	if c.stallCycles > 0 {
		c.stallCycles--
		return
	}

	if c.pendingCycles > 0 {
		c.pendingCycles--
		return
	}

	if c.nmiLatched {
		c.nmiLatched = false
		c.serviceInterrupt(vectorNMI, false)
		c.pendingCycles = 7
		return
	}

	if c.irqLatched && !c.getFlag(FlagInterrupt) {
		c.irqLatched = false
		c.serviceInterrupt(vectorIRQ, false)
		c.pendingCycles = 7
		return
	}

	c.step()
}

func (c *CPU) serviceInterrupt(vector uint16, brk bool) {
	c.pushPC()
	c.setFlag(FlagBreak, brk)
	c.setFlag(FlagUnused, true)
	c.push(c.status)
	c.setFlag(FlagInterrupt, true)
	c.PC = c.read16(vector)
}

func (c *CPU) step() {
	c.opcode = c.read(c.PC)
	c.PC++

	inst := opcodeTable[c.opcode]
	c.implied = false
	c.pageCrossed = false

	inst.mode(c)
	extra := inst.op(c)

	c.setFlag(FlagUnused, true)
	c.pendingCycles = uint32(inst.cycles) + extra - 1
}

func (c *CPU) fetch() uint8 {
	if !c.implied {
		c.fetched = c.read(c.addrAbs)
	}
	return c.fetched
}
