// Package bus implements the NES system bus connecting the CPU, PPU,
// APU, cartridge, and controllers into the CPU's address space.
package bus

import (
	"github.com/nescore/nescore/pkg/apu"
	"github.com/nescore/nescore/pkg/cartridge"
	"github.com/nescore/nescore/pkg/controller"
	"github.com/nescore/nescore/pkg/ppu"
)

// tickNotifier is implemented by mappers (MMC1) that need to know which
// master tick a PRG write landed on, to reject writes one tick apart.
type tickNotifier interface {
	NotifyTick(tick uint64)
}

// Bus implements cpu.Bus for the NES system.
//
// CPU Memory Map:
//
//	$0000-$07FF: 2KB internal RAM
//	$0800-$1FFF: Mirrors of $0000-$07FF
//	$2000-$2007: PPU registers
//	$2008-$3FFF: Mirrors of $2000-$2007
//	$4000-$4017: APU and I/O registers
//	$4018-$401F: APU and I/O functionality (rarely used)
//	$4020-$FFFF: Cartridge space (PRG-ROM, PRG-RAM, mapper registers)
type Bus struct {
	ram [2048]uint8

	ppu    *ppu.PPU
	apu    *apu.APU
	mapper cartridge.Mapper

	controller1 *controller.Controller
	controller2 *controller.Controller

	dmaRequested   bool
	dmaPage        uint8
	dmaRequestTick uint64

	currentTick uint64
}

// New creates a system bus wired to the given PPU, APU, and mapper.
func New(ppuUnit *ppu.PPU, apuUnit *apu.APU, mapper cartridge.Mapper) *Bus {
	return &Bus{
		ppu:         ppuUnit,
		apu:         apuUnit,
		mapper:      mapper,
		controller1: controller.NewController(),
		controller2: controller.NewController(),
	}
}

// SetTick records the current master-clock tick, forwarded to mappers
// that care about write timing (MMC1).
func (b *Bus) SetTick(tick uint64) {
	b.currentTick = tick
}

// Read implements cpu.Bus.
func (b *Bus) Read(addr uint16) uint8 {
	switch {
	case addr < 0x2000:
		return b.ram[addr&0x07FF]

	case addr < 0x4000:
		return b.ppu.ReadCPURegister(0x2000 + (addr & 0x0007))

	case addr == 0x4015:
		return b.apu.ReadStatus()

	case addr == 0x4016:
		return b.controller1.Read()

	case addr == 0x4017:
		return b.controller2.Read()

	case addr >= 0x4020:
		return b.mapper.ReadPRG(addr)
	}

	return 0
}

// Write implements cpu.Bus.
func (b *Bus) Write(addr uint16, data uint8) {
	switch {
	case addr < 0x2000:
		b.ram[addr&0x07FF] = data

	case addr < 0x4000:
		b.ppu.WriteCPURegister(0x2000+(addr&0x0007), data)

	case addr == 0x4014:
		b.dmaRequested = true
		b.dmaPage = data
		b.dmaRequestTick = b.currentTick

	case addr == 0x4016:
		b.controller1.Write(data)
		b.controller2.Write(data)

	case addr >= 0x4000 && addr < 0x4018:
		b.apu.WriteRegister(addr, data)

	case addr >= 0x4020:
		if tn, ok := b.mapper.(tickNotifier); ok {
			tn.NotifyTick(b.currentTick)
		}
		b.mapper.WritePRG(addr, data)
	}
}

// TakeDMARequest returns the page an OAMDMA write targeted and the master
// tick the $4014 write landed on, clearing the pending request. The caller
// (the orchestrator) performs the 256-byte copy and stalls the CPU for the
// transfer's duration, using the tick to decide the 513-vs-514 cycle count.
func (b *Bus) TakeDMARequest() (page uint8, tick uint64, ok bool) {
	if !b.dmaRequested {
		return 0, 0, false
	}
	b.dmaRequested = false
	return b.dmaPage, b.dmaRequestTick, true
}

// WriteOAMByte is used by the DMA copy to push a byte into OAM through
// OAMDATA, exactly as the real DMA controller does.
func (b *Bus) WriteOAMByte(v uint8) {
	b.ppu.WriteCPURegister(0x2004, v)
}

// Controller returns controller 0 or 1.
func (b *Bus) Controller(num int) *controller.Controller {
	if num == 0 {
		return b.controller1
	}
	return b.controller2
}
