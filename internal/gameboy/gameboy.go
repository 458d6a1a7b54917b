// Package gameboy provides an emulation of a Nintendo Game Boy (DMG).
//
// A GameBoy ties the CPU, the MMU and the PPU together, and advances
// them in lock step: every Step executes one CPU tick, then feeds the
// cycles it took to the timer and then to the PPU.
package gameboy

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/thelolagemann/dmgcore/internal/boot"
	"github.com/thelolagemann/dmgcore/internal/cartridge"
	"github.com/thelolagemann/dmgcore/internal/cpu"
	"github.com/thelolagemann/dmgcore/internal/joypad"
	"github.com/thelolagemann/dmgcore/internal/mmu"
	"github.com/thelolagemann/dmgcore/internal/ppu"
	"github.com/thelolagemann/dmgcore/internal/types"
	"github.com/thelolagemann/dmgcore/pkg/log"
)

const (
	// ClockSpeed is the clock speed of the Game Boy.
	ClockSpeed = 4194304 // 4.194304 MHz
	// FrameRate is the number of frames per second (~59.7).
	FrameRate = float64(ClockSpeed) / ppu.FrameCycles
	// FrameTime is the time it takes for a single frame to be
	// rendered at normal speed.
	FrameTime = time.Second * ppu.FrameCycles / ClockSpeed
)

// GameBoy represents a Game Boy. It contains all the components of
// the Game Boy, and is the main entry point for the emulator.
type GameBoy struct {
	CPU *cpu.CPU
	MMU *mmu.MMU
	PPU *ppu.PPU

	log.Logger

	bootImage []byte
	serial    io.Writer
	handler   ppu.FrameHandler
	input     joypad.Input
	debug     bool
	speed     float64
}

// New returns a new GameBoy running the given cartridge image. Without
// a boot ROM (see WithBootROM), execution starts at 0x0100 with the
// registers set to the values the DMG boot ROM leaves behind.
func New(rom []byte, opts ...Opt) (*GameBoy, error) {
	g := &GameBoy{
		Logger: log.NewNullLogger(),
		speed:  1,
	}
	for _, opt := range opts {
		opt(g)
	}

	cart, err := cartridge.NewCartridge(rom)
	if err != nil {
		return nil, fmt.Errorf("gameboy: loading cartridge: %w", err)
	}

	var bootROM *boot.ROM
	if g.bootImage != nil {
		bootROM, err = boot.LoadBootROM(g.bootImage)
		if err != nil {
			return nil, fmt.Errorf("gameboy: loading boot rom: %w", err)
		}
	}

	g.MMU = mmu.NewMMU(cart, bootROM, log.WithField(g.Logger, "component", "mmu"))
	g.CPU = cpu.NewCPU(g.MMU, g.MMU.IRQ, log.WithField(g.Logger, "component", "cpu"))
	g.CPU.Debug = g.debug
	g.PPU = ppu.New(g.MMU)
	g.PPU.OnFrame(g.handler)
	if g.serial != nil {
		g.MMU.AttachSerial(g.serial)
	}

	header := cart.Header()
	g.Infof("loaded cartridge %s", header.String())
	if !cart.ChecksumValid() {
		g.Warnf("cartridge header checksum mismatch")
	}

	if bootROM == nil {
		g.skipBoot()
	} else {
		g.Infof("using %s boot rom (%s)", bootROM.Model(), bootROM.Checksum())
	}

	return g, nil
}

// skipBoot puts the machine in the state the DMG boot ROM leaves it in
// when it hands control to the cartridge.
func (g *GameBoy) skipBoot() {
	g.CPU.AF.SetUint16(0x01B0)
	g.CPU.BC.SetUint16(0x0013)
	g.CPU.DE.SetUint16(0x00D8)
	g.CPU.HL.SetUint16(0x014D)
	g.CPU.SP = 0xFFFE
	g.CPU.PC = 0x0100

	for _, reg := range []struct {
		address uint16
		value   uint8
	}{
		{types.LCDC, 0x91},
		{types.BGP, 0xFC},
		{types.OBP0, 0xFF},
		{types.OBP1, 0xFF},
		{types.IF, 0x01},
	} {
		g.MMU.Write(reg.address, reg.value)
	}
	g.MMU.Timer.SetDivider(0xABCC)
}

// Step executes a single CPU tick, then advances the timer and the
// PPU by the cycles it took. Input is sampled before the tick.
func (g *GameBoy) Step() (uint8, error) {
	if g.input != nil {
		g.MMU.Joypad.Sample(g.input)
	}

	cycles, err := g.CPU.Step()
	if err != nil {
		return cycles, err
	}

	g.MMU.AdvanceTimer(uint16(cycles))
	g.PPU.Advance(uint32(cycles))

	return cycles, nil
}

// Frame steps the emulation until the PPU has finished the current
// frame, and returns it. The frame is reused by the next call. While
// the LCD is off, Frame returns after a frame's worth of cycles.
func (g *GameBoy) Frame() (*ppu.Frame, error) {
	start := g.PPU.Frames()
	var elapsed uint32
	for g.PPU.Frames() == start {
		if !g.PPU.Enabled() && elapsed >= ppu.FrameCycles {
			break
		}
		cycles, err := g.Step()
		if err != nil {
			return nil, err
		}
		elapsed += uint32(cycles)
	}

	return g.PPU.Frame(), nil
}

// Run runs frames until ctx is cancelled or the CPU fails. Frames are
// paced to FrameRate scaled by the configured speed, a speed of 0
// runs as fast as possible. Cancellation is not an error.
func (g *GameBoy) Run(ctx context.Context) error {
	var ticker *time.Ticker
	if g.speed > 0 {
		ticker = time.NewTicker(time.Duration(float64(FrameTime) / g.speed))
		defer ticker.Stop()
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		default:
		}

		if _, err := g.Frame(); err != nil {
			return err
		}

		if ticker != nil {
			select {
			case <-ctx.Done():
				return nil
			case <-ticker.C:
			}
		}
	}
}

// Speed returns the speed multiplier the emulator runs at.
func (g *GameBoy) Speed() float64 {
	return g.speed
}

// Title returns the title of the loaded cartridge.
func (g *GameBoy) Title() string {
	return g.MMU.Cart.Title()
}
