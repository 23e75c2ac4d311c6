// Package nes wires the CPU, PPU, APU, and cartridge into a single
// console and drives them on a shared master clock.
package nes

import (
	"context"
	"errors"

	"github.com/golang/glog"

	"github.com/nescore/nescore/internal/cpu"
	"github.com/nescore/nescore/pkg/apu"
	"github.com/nescore/nescore/pkg/bus"
	"github.com/nescore/nescore/pkg/cartridge"
	"github.com/nescore/nescore/pkg/controller"
	"github.com/nescore/nescore/pkg/ppu"
)

// ErrNoBattery is returned by LoadPRGRAM when the loaded cartridge has no
// battery-backed PRG-RAM to restore.
var ErrNoBattery = errors.New("nes: cartridge has no battery-backed PRG-RAM")

// buttonOrder fixes the bit-to-button mapping used by SetButtons: bit 0
// is A, matching the order the shift register reports them in.
var buttonOrder = [8]controller.Button{
	controller.ButtonA,
	controller.ButtonB,
	controller.ButtonSelect,
	controller.ButtonStart,
	controller.ButtonUp,
	controller.ButtonDown,
	controller.ButtonLeft,
	controller.ButtonRight,
}

// ticksPerFrame bounds RunFrame: one PPU frame is 262 scanlines of 341
// dots, minus the occasional odd-frame skip.
const ticksPerFrame = 262 * 341

// NES is the assembled console: one master clock drives the PPU every
// tick and the CPU and APU every third tick, with interrupts sampled
// between ticks.
type NES struct {
	cpu *cpu.CPU
	ppu *ppu.PPU
	apu *apu.APU
	bus *bus.Bus
	cart *cartridge.Cartridge

	masterTick uint64
}

// Load parses an iNES image and assembles a ready-to-run console.
func Load(data []byte) (*NES, error) {
	cart, err := cartridge.Load(data)
	if err != nil {
		return nil, err
	}

	ppuUnit := ppu.NewPPU()
	ppuUnit.SetMapper(cart.Mapper())
	ppuUnit.SetMirroring(cart.Mirroring())

	apuUnit := apu.New()
	busUnit := bus.New(ppuUnit, apuUnit, cart.Mapper())

	n := &NES{
		ppu:  ppuUnit,
		apu:  apuUnit,
		bus:  busUnit,
		cart: cart,
	}
	n.cpu = cpu.New(busUnit)
	n.Reset()

	glog.V(1).Infof("nes: loaded cartridge, mapper=%d prg_banks=%d chr_banks=%d",
		cart.MapperID(), cart.PRGBanks(), cart.CHRBanks())

	return n, nil
}

// Reset brings every component back to power-on/reset state.
func (n *NES) Reset() {
	n.cpu.Reset()
	n.ppu.Reset()
	n.apu.Reset()
	n.cart.Mapper().Reset()
	n.masterTick = 0
}

// RunFrame advances the master clock until the PPU completes a frame,
// then drains any pending CPU cycles so the next call starts on an
// instruction boundary. ctx is checked between ticks only.
func (n *NES) RunFrame(ctx context.Context) error {
	n.ppu.ClearFrameComplete()

	for i := 0; i < ticksPerFrame+8; i++ {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		n.tick()

		if n.ppu.IsFrameComplete() {
			break
		}
	}

	for n.cpu.PendingCycles() > 0 {
		n.tick()
	}

	return nil
}

// tick advances the master clock by one PPU dot.
func (n *NES) tick() {
	n.ppu.Clock()

	if n.masterTick%3 == 0 {
		n.bus.SetTick(n.masterTick)

		if page, tick, ok := n.bus.TakeDMARequest(); ok {
			n.runOAMDMA(page, tick)
		}

		n.apu.Clock()
		n.cpu.Clock()

		if n.apu.IRQPending() {
			n.cpu.RequestIRQ()
		}
		if n.cart.Mapper().IRQPending() {
			n.cpu.RequestIRQ()
		}
	}

	if n.ppu.GetNMI() {
		n.cpu.RequestNMI()
	}

	n.masterTick++
}

// runOAMDMA copies 256 bytes from page*0x100 into OAM through OAMDATA,
// then stalls the CPU for the transfer. The real DMA controller steals
// 513 cycles on an even CPU cycle, or 514 on an odd one, to first
// synchronize with the CPU clock before the 256 read/write pairs; tick
// is the master tick the triggering $4014 write landed on, from which
// the CPU-cycle parity is derived (tick/3, since the CPU clocks once
// every three master ticks).
func (n *NES) runOAMDMA(page uint8, tick uint64) {
	base := uint16(page) << 8
	for i := 0; i < 256; i++ {
		v := n.bus.Read(base + uint16(i))
		n.bus.WriteOAMByte(v)
	}

	stall := uint32(513)
	if (tick/3)%2 == 1 {
		stall = 514
	}
	n.cpu.Stall(stall)
}

// FrameBuffer returns the current frame as 256x240 palette indices (0-63).
func (n *NES) FrameBuffer() *[ppu.ScreenWidth * ppu.ScreenHeight]uint8 {
	return n.ppu.GetFrameBuffer()
}

// SetButtons latches the button mask for controller port 0 or 1. Bit
// order matches Button's iota order: A, B, Select, Start, Up, Down,
// Left, Right, A being bit 0.
func (n *NES) SetButtons(port int, mask uint8) {
	c := n.bus.Controller(port)
	for i, b := range buttonOrder {
		c.SetButton(b, mask&(1<<uint(i)) != 0)
	}
}

// PeekCPU and PokeCPU give tests direct access to the CPU's address
// space. They go through the same bus a real CPU read/write would, so
// they carry the side effects of the addressed register (e.g. reading
// $2007 advances the PPU's read buffer) but nothing beyond that.
func (n *NES) PeekCPU(addr uint16) uint8    { return n.bus.Read(addr) }
func (n *NES) PokeCPU(addr uint16, v uint8) { n.bus.Write(addr, v) }

// SavePRGRAM returns the cartridge's battery-backed PRG-RAM, or nil if it
// has none.
func (n *NES) SavePRGRAM() []byte { return n.cart.SavePRGRAM() }

// LoadPRGRAM restores a previously saved PRG-RAM blob. It returns
// ErrNoBattery if the cartridge has no battery-backed RAM to load into.
func (n *NES) LoadPRGRAM(data []byte) error {
	if !n.cart.HasBattery() {
		return ErrNoBattery
	}
	n.cart.LoadPRGRAM(data)
	return nil
}

// Cartridge returns the loaded cartridge for inspection (header info,
// mapper ID) by the host.
func (n *NES) Cartridge() *cartridge.Cartridge { return n.cart }
