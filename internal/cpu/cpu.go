package cpu

import (
	"github.com/thelolagemann/dmgcore/internal/interrupts"
	"github.com/thelolagemann/dmgcore/internal/types"
	"github.com/thelolagemann/dmgcore/pkg/log"
	"github.com/thelolagemann/dmgcore/pkg/utils"
)

// Bus is the view of the address space the CPU executes against.
type Bus interface {
	Read(address uint16) uint8
	Write(address uint16, value uint8)
}

// Registers is the register file of the Sharp LR35902. Each
// pair is stored as a single 16-bit value, the 8-bit registers
// are accessed through the High and Low halves.
type Registers struct {
	AF types.RegisterPair
	BC types.RegisterPair
	DE types.RegisterPair
	HL types.RegisterPair
}

// ime is the state of the interrupt master enable.
type ime uint8

const (
	imeDisabled ime = iota
	imeEnabled
	// imeEnabledAfter is entered by EI, and becomes imeEnabled
	// once the following instruction has executed.
	imeEnabledAfter
)

// CPU represents the Sharp LR35902 CPU.
type CPU struct {
	// PC is the program counter, it points to the next instruction to be executed.
	PC uint16
	// SP is the stack pointer, it points to the top of the stack.
	SP uint16
	// Registers contains the 8-bit registers, as well as the 16-bit register pairs.
	Registers

	// Debug enables a trace of every decoded instruction at debug level.
	Debug bool

	bus Bus
	irq *interrupts.Service
	log log.Logger

	ime     ime
	halted  bool
	stopped bool
	haltBug bool

	// cycles spent by the current Step
	cycles uint8
}

// NewCPU creates a new CPU instance with the given bus and
// interrupt service. All registers start at zero.
func NewCPU(bus Bus, irq *interrupts.Service, l log.Logger) *CPU {
	if l == nil {
		l = log.NewNullLogger()
	}
	return &CPU{
		bus: bus,
		irq: irq,
		log: l,
	}
}

// Step performs a single tick of the CPU and returns the number of
// cycles it took. A tick either services an interrupt, idles while
// halted, or executes exactly one instruction. The only error
// returned is an *UnknownOpcodeError, after which the CPU state is
// undefined.
func (c *CPU) Step() (uint8, error) {
	c.cycles = 0

	if c.stopped {
		if c.irq.Flag&interrupts.JoypadFlag == 0 {
			c.tickCycle()
			return c.cycles, nil
		}
		c.stopped = false
		c.halted = false
	}

	if c.irq.HasInterrupts() {
		if c.ime == imeEnabled {
			c.executeInterrupt()
		} else {
			c.halted = false
		}
	}

	if c.ime == imeEnabledAfter {
		c.ime = imeEnabled
	}

	var err error
	if c.cycles == 0 {
		if c.halted {
			c.tickCycle()
		} else {
			err = c.execute()
		}
	}

	// the lower nibble of F is not wired
	c.AF.SetLow(c.AF.Low() & 0xF0)

	return c.cycles, err
}

// execute fetches, decodes and executes the instruction at PC.
func (c *CPU) execute() error {
	pc := c.PC
	opcode := c.readInstruction()

	instruction := InstructionSet[opcode]
	prefixed := false
	if opcode == 0xCB {
		opcode = c.readOperand()
		instruction = InstructionSetCB[opcode]
		prefixed = true
	}

	if instruction.fn == nil {
		return &UnknownOpcodeError{PC: pc, Opcode: opcode, Prefixed: prefixed}
	}

	if c.Debug {
		c.log.Debugf("%04X: %s\tAF=%04X BC=%04X DE=%04X HL=%04X SP=%04X",
			pc, instruction.name, c.AF.Uint16(), c.BC.Uint16(), c.DE.Uint16(), c.HL.Uint16(), c.SP)
	}

	instruction.fn(c)
	return nil
}

// executeInterrupt services the highest priority pending interrupt.
// It takes 20 cycles, plus 4 if the CPU was halted.
func (c *CPU) executeInterrupt() {
	if c.halted {
		c.tickCycle()
		c.halted = false
	}
	c.ime = imeDisabled

	c.tickCycle()
	c.tickCycle()
	c.push(utils.Uint16ToBytes(c.PC))

	c.PC = c.irq.Vector()
	c.tickCycle()
}

// Halted returns true if the CPU is waiting for an interrupt.
func (c *CPU) Halted() bool {
	return c.halted || c.stopped
}

// InterruptsEnabled returns true if the interrupt master enable is set,
// or will be set after the next instruction.
func (c *CPU) InterruptsEnabled() bool {
	return c.ime != imeDisabled
}

// tickCycle accounts for a single machine cycle (4 clock cycles).
func (c *CPU) tickCycle() {
	c.cycles += 4
}

// readInstruction reads the next instruction from memory. When the
// HALT bug has been triggered, PC fails to advance once.
func (c *CPU) readInstruction() uint8 {
	opcode := c.readByte(c.PC)
	if c.haltBug {
		c.haltBug = false
	} else {
		c.PC++
	}
	return opcode
}

// readOperand reads the next operand from memory.
func (c *CPU) readOperand() uint8 {
	value := c.readByte(c.PC)
	c.PC++
	return value
}

// readOperand16 reads a little-endian 16-bit operand from memory.
func (c *CPU) readOperand16() uint16 {
	low := c.readOperand()
	return utils.BytesToUint16(c.readOperand(), low)
}

// readByte reads a byte from memory, taking 1 machine cycle.
func (c *CPU) readByte(addr uint16) uint8 {
	value := c.bus.Read(addr)
	c.tickCycle()
	return value
}

// writeByte writes the given value to memory, taking 1 machine cycle.
func (c *CPU) writeByte(addr uint16, val uint8) {
	c.bus.Write(addr, val)
	c.tickCycle()
}
