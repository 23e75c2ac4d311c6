package cpu

import "testing"

// testBus is a flat 64 KiB RAM, enough to exercise the CPU without a
// real bus/mapper.
type testBus struct {
	mem [0x10000]uint8
}

func (b *testBus) Read(addr uint16) uint8    { return b.mem[addr] }
func (b *testBus) Write(addr uint16, v uint8) { b.mem[addr] = v }

func newTestCPU() (*CPU, *testBus) {
	bus := &testBus{}
	bus.mem[0xFFFC] = 0x00
	bus.mem[0xFFFD] = 0x80
	c := New(bus)
	c.Reset()
	return c, bus
}

// stepInstruction drains whatever cycles are outstanding (a prior
// instruction's cost, or the 7 cycles Reset charges), then clocks once
// more so exactly one instruction (or interrupt service) executes.
func stepInstruction(c *CPU) {
	for c.pendingCycles > 0 || c.stallCycles > 0 {
		c.Clock()
	}
	c.Clock()
}

func TestResetVector(t *testing.T) {
	c, _ := newTestCPU()
	if c.PC != 0x8000 {
		t.Errorf("PC = %#04x, want 0x8000", c.PC)
	}
	if c.SP != 0xFD {
		t.Errorf("SP = %#02x, want 0xFD", c.SP)
	}
	if !c.getFlag(FlagInterrupt) {
		t.Error("interrupt disable should be set after reset")
	}
}

func TestLDAImmediateSetsFlags(t *testing.T) {
	cases := []struct {
		value        uint8
		wantZero     bool
		wantNegative bool
	}{
		{0x00, true, false},
		{0x7F, false, false},
		{0x80, false, true},
	}

	for _, tc := range cases {
		c, bus := newTestCPU()
		bus.mem[0x8000] = 0xA9 // LDA #imm
		bus.mem[0x8001] = tc.value

		stepInstruction(c)

		if c.A != tc.value {
			t.Errorf("A = %#02x, want %#02x", c.A, tc.value)
		}
		if c.getFlag(FlagZero) != tc.wantZero {
			t.Errorf("value %#02x: zero flag = %v, want %v", tc.value, c.getFlag(FlagZero), tc.wantZero)
		}
		if c.getFlag(FlagNegative) != tc.wantNegative {
			t.Errorf("value %#02x: negative flag = %v, want %v", tc.value, c.getFlag(FlagNegative), tc.wantNegative)
		}
	}
}

func TestADCCarryAndOverflow(t *testing.T) {
	c, bus := newTestCPU()
	bus.mem[0x8000] = 0xA9 // LDA #$7F
	bus.mem[0x8001] = 0x7F
	bus.mem[0x8002] = 0x69 // ADC #$01
	bus.mem[0x8003] = 0x01

	stepInstruction(c)
	stepInstruction(c)

	if c.A != 0x80 {
		t.Errorf("A = %#02x, want 0x80", c.A)
	}
	if !c.getFlag(FlagOverflow) {
		t.Error("expected overflow flag set for 0x7F + 0x01")
	}
	if c.getFlag(FlagCarry) {
		t.Error("expected carry flag clear for 0x7F + 0x01")
	}
}

func TestBranchCyclePenalty(t *testing.T) {
	c, bus := newTestCPU()
	c.setFlag(FlagZero, true)
	bus.mem[0x8000] = 0xF0 // BEQ +2, no page cross
	bus.mem[0x8001] = 0x02

	c.opcode = bus.mem[0x8000]
	c.PC = 0x8001
	inst := opcodeTable[c.opcode]
	c.pageCrossed = false
	inst.mode(c)
	extra := inst.op(c)

	if extra != 1 {
		t.Errorf("same-page branch extra cycles = %d, want 1", extra)
	}
	if c.PC != 0x8004 {
		t.Errorf("PC after branch = %#04x, want 0x8004", c.PC)
	}
}

func TestBranchCrossesPageAddsCycle(t *testing.T) {
	c, bus := newTestCPU()
	c.setFlag(FlagZero, true)
	c.PC = 0x80FE
	bus.mem[0x80FE] = 0xF0
	bus.mem[0x80FF] = 0xF0 // -16 from 0x8100 lands at 0x80F0, back across the page

	c.opcode = bus.mem[0x80FE]
	c.PC = 0x80FF
	inst := opcodeTable[c.opcode]
	c.pageCrossed = false
	inst.mode(c)
	extra := inst.op(c)

	if extra != 2 {
		t.Errorf("page-crossing branch extra cycles = %d, want 2", extra)
	}
}

func TestStackPushPop(t *testing.T) {
	c, _ := newTestCPU()
	c.push(0x42)
	if c.SP != 0xFC {
		t.Errorf("SP after push = %#02x, want 0xFC", c.SP)
	}
	if got := c.pop(); got != 0x42 {
		t.Errorf("pop = %#02x, want 0x42", got)
	}
	if c.SP != 0xFD {
		t.Errorf("SP after pop = %#02x, want 0xFD", c.SP)
	}
}

func TestRead16WrapZeroPageBug(t *testing.T) {
	c, bus := newTestCPU()
	bus.mem[0x00FF] = 0x34
	bus.mem[0x0000] = 0x12 // wraps within zero page, not into page 1

	got := c.read16Wrap(0x00FF)
	want := uint16(0x1234)
	if got != want {
		t.Errorf("read16Wrap(0x00FF) = %#04x, want %#04x", got, want)
	}
}

func TestNMIServicedAtInstructionBoundary(t *testing.T) {
	c, bus := newTestCPU()
	bus.mem[0xFFFA] = 0x00
	bus.mem[0xFFFB] = 0x90 // NMI vector -> 0x9000
	bus.mem[0x8000] = 0xEA // NOP

	c.RequestNMI()
	stepInstruction(c)

	if c.PC != 0x9000 {
		t.Errorf("PC after NMI = %#04x, want 0x9000", c.PC)
	}
	if !c.getFlag(FlagInterrupt) {
		t.Error("interrupt disable should be set after servicing NMI")
	}
}

func TestIRQIgnoredWhenMasked(t *testing.T) {
	c, bus := newTestCPU()
	bus.mem[0x8000] = 0xEA // NOP
	c.setFlag(FlagInterrupt, true)
	c.RequestIRQ()

	stepInstruction(c)

	if c.PC != 0x8001 {
		t.Errorf("PC = %#04x, want 0x8001: IRQ should not be serviced while interrupt disable flag is set", c.PC)
	}
}

func TestStallDelaysNextInstruction(t *testing.T) {
	c, bus := newTestCPU()
	bus.mem[0x8000] = 0xEA // NOP

	c.Stall(10)
	for i := 0; i < 10; i++ {
		if c.PC != 0x8000 {
			t.Fatalf("PC advanced during stall at tick %d", i)
		}
		c.Clock()
	}
	stepInstruction(c)
	if c.PC != 0x8001 {
		t.Errorf("PC after stall+NOP = %#04x, want 0x8001", c.PC)
	}
}
