package cpu

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thelolagemann/dmgcore/internal/interrupts"
	"github.com/thelolagemann/dmgcore/internal/types"
)

// flatBus is 64KiB of plain memory.
type flatBus [0x10000]uint8

func (b *flatBus) Read(address uint16) uint8         { return b[address] }
func (b *flatBus) Write(address uint16, value uint8) { b[address] = value }

// newTestCPU returns a CPU with program loaded at 0x0100, PC
// pointing at it and SP at 0xFFFE.
func newTestCPU(program ...uint8) (*CPU, *flatBus, *interrupts.Service) {
	bus := &flatBus{}
	copy(bus[0x0100:], program)
	irq := interrupts.NewService(&types.HardwareRegisters{})
	c := NewCPU(bus, irq, nil)
	c.PC = 0x0100
	c.SP = 0xFFFE
	return c, bus, irq
}

func step(t *testing.T, c *CPU) uint8 {
	t.Helper()
	cycles, err := c.Step()
	require.NoError(t, err)
	return cycles
}

func TestCPU_NOP(t *testing.T) {
	c, _, _ := newTestCPU(0x00)
	c.AF.SetUint16(0x12B0)
	c.BC.SetUint16(0x3456)
	c.DE.SetUint16(0x789A)
	c.HL.SetUint16(0xBCDE)
	before := c.Registers
	sp := c.SP

	cycles := step(t, c)

	assert.Equal(t, uint8(4), cycles)
	assert.Equal(t, uint16(0x0101), c.PC)
	assert.Equal(t, sp, c.SP)
	assert.Equal(t, before, c.Registers)
}

func TestCPU_AddFlags(t *testing.T) {
	// ADD A, B and ADD A, d8 must agree
	for _, opcode := range []uint8{0x80, 0xC6} {
		c, bus, _ := newTestCPU(opcode)
		for a := 0; a < 256; a++ {
			for b := 0; b < 256; b++ {
				c.PC = 0x0100
				bus[0x0101] = uint8(b)
				c.AF.SetUint16(uint16(a) << 8)
				c.BC.SetHigh(uint8(b))
				step(t, c)

				carry := a+b > 0xFF
				half := (a&0xF)+(b&0xF) > 0xF
				if c.isFlagSet(FlagCarry) != carry || c.isFlagSet(FlagHalfCarry) != half {
					t.Fatalf("ADD %02X + %02X (%02X): expected C=%v H=%v, got F=%08b", a, b, opcode, carry, half, c.AF.Low())
				}
				if c.AF.High() != uint8(a+b) {
					t.Fatalf("ADD %02X + %02X: expected A=%02X, got %02X", a, b, uint8(a+b), c.AF.High())
				}
				if c.isFlagSet(FlagZero) != (uint8(a+b) == 0) || c.isFlagSet(FlagSubtract) {
					t.Fatalf("ADD %02X + %02X: unexpected Z/N in F=%08b", a, b, c.AF.Low())
				}
			}
		}
	}
}

func TestCPU_SubFlags(t *testing.T) {
	for a := 0; a < 256; a += 7 {
		for b := 0; b < 256; b += 3 {
			c, _, _ := newTestCPU(0x90) // SUB B
			c.AF.SetHigh(uint8(a))
			c.BC.SetHigh(uint8(b))
			step(t, c)

			assert.Equal(t, b > a, c.isFlagSet(FlagCarry), "carry %02X - %02X", a, b)
			assert.Equal(t, b&0xF > a&0xF, c.isFlagSet(FlagHalfCarry), "half carry %02X - %02X", a, b)
			assert.True(t, c.isFlagSet(FlagSubtract))
			assert.Equal(t, uint8(a-b), c.AF.High())
		}
	}
}

func TestCPU_PushPop(t *testing.T) {
	// PUSH BC; POP DE
	c, bus, _ := newTestCPU(0xC5, 0xD1)
	c.BC.SetUint16(0xBEEF)

	assert.Equal(t, uint8(16), step(t, c))
	assert.Equal(t, uint16(0xFFFC), c.SP)
	assert.Equal(t, uint8(0xBE), bus[0xFFFD])
	assert.Equal(t, uint8(0xEF), bus[0xFFFC])

	assert.Equal(t, uint8(12), step(t, c))
	assert.Equal(t, uint16(0xBEEF), c.DE.Uint16())
	assert.Equal(t, uint16(0xFFFE), c.SP)
}

func TestCPU_PopAF(t *testing.T) {
	// PUSH BC; POP AF
	c, _, _ := newTestCPU(0xC5, 0xF1)
	c.BC.SetUint16(0x12FF)
	step(t, c)
	step(t, c)

	assert.Equal(t, uint16(0x12F0), c.AF.Uint16(), "lower nibble of F is always zero")
}

func TestCPU_InterruptPriority(t *testing.T) {
	c, bus, irq := newTestCPU(0x00)
	c.ime = imeEnabled
	irq.Enable = interrupts.VBlankFlag | interrupts.JoypadFlag
	irq.Request(interrupts.JoypadFlag)
	irq.Request(interrupts.VBlankFlag)

	cycles := step(t, c)

	assert.Equal(t, uint8(20), cycles)
	assert.Equal(t, interrupts.VBlankVector, c.PC)
	assert.Equal(t, uint8(interrupts.JoypadFlag), irq.Flag, "only the serviced request is cleared")
	assert.False(t, c.InterruptsEnabled())
	assert.Equal(t, uint16(0xFFFC), c.SP)
	assert.Equal(t, uint8(0x01), bus[0xFFFD])
	assert.Equal(t, uint8(0x00), bus[0xFFFC])
}

func TestCPU_InterruptFromHalt(t *testing.T) {
	c, _, irq := newTestCPU(0x76) // HALT
	c.ime = imeEnabled
	irq.Enable = interrupts.TimerFlag

	step(t, c)
	require.True(t, c.Halted())

	assert.Equal(t, uint8(4), step(t, c), "halted CPU idles")
	assert.Equal(t, uint16(0x0101), c.PC)

	irq.Request(interrupts.TimerFlag)
	assert.Equal(t, uint8(24), step(t, c))
	assert.Equal(t, interrupts.TimerVector, c.PC)
	assert.False(t, c.Halted())
}

func TestCPU_HaltWithoutIME(t *testing.T) {
	// HALT; INC A
	c, _, irq := newTestCPU(0x76, 0x3C)
	irq.Enable = interrupts.SerialFlag

	step(t, c)
	require.True(t, c.Halted())

	irq.Request(interrupts.SerialFlag)
	step(t, c)
	assert.False(t, c.Halted(), "pending interrupt wakes the CPU without IME")
	assert.Equal(t, uint8(1), c.AF.High())
	assert.Equal(t, uint8(interrupts.SerialFlag), irq.Flag, "interrupt is not serviced")
}

func TestCPU_HaltBug(t *testing.T) {
	t.Run("one byte instruction", func(t *testing.T) {
		// HALT; INC A; NOP
		c, _, irq := newTestCPU(0x76, 0x3C, 0x00)
		irq.Enable = interrupts.VBlankFlag
		irq.Request(interrupts.VBlankFlag)

		step(t, c)
		assert.False(t, c.Halted(), "HALT does not halt with a pending interrupt and IME off")

		step(t, c)
		assert.Equal(t, uint16(0x0101), c.PC, "PC fails to advance once")
		step(t, c)
		assert.Equal(t, uint16(0x0102), c.PC)

		assert.Equal(t, uint8(2), c.AF.High(), "INC A executes twice")
	})
	t.Run("operand read from opcode", func(t *testing.T) {
		// HALT; LD A, 0x42
		c, _, irq := newTestCPU(0x76, 0x3E, 0x42)
		irq.Enable = interrupts.VBlankFlag
		irq.Request(interrupts.VBlankFlag)

		step(t, c)
		step(t, c)

		assert.Equal(t, uint8(0x3E), c.AF.High())
		assert.Equal(t, uint16(0x0102), c.PC)
	})
}

func TestCPU_EIDelay(t *testing.T) {
	// EI; INC A; NOP
	c, _, irq := newTestCPU(0xFB, 0x3C, 0x00)
	irq.Enable = interrupts.VBlankFlag

	step(t, c)
	irq.Request(interrupts.VBlankFlag)

	step(t, c)
	assert.Equal(t, uint8(1), c.AF.High(), "instruction following EI runs first")
	assert.Equal(t, uint16(0x0102), c.PC)

	step(t, c)
	assert.Equal(t, interrupts.VBlankVector, c.PC)
}

func TestCPU_DI(t *testing.T) {
	// DI; NOP
	c, _, irq := newTestCPU(0xF3, 0x00)
	c.ime = imeEnabled
	irq.Enable = interrupts.VBlankFlag

	step(t, c)
	irq.Request(interrupts.VBlankFlag)
	step(t, c)

	assert.Equal(t, uint16(0x0102), c.PC, "DI takes effect immediately")
}

func TestCPU_RETI(t *testing.T) {
	c, bus, _ := newTestCPU(0xD9)
	c.SP = 0xFFFC
	bus[0xFFFC] = 0x34
	bus[0xFFFD] = 0x12

	assert.Equal(t, uint8(16), step(t, c))
	assert.Equal(t, uint16(0x1234), c.PC)
	assert.Equal(t, imeEnabled, c.ime)
}

func TestCPU_Stop(t *testing.T) {
	c, bus, irq := newTestCPU(0x10, 0x00, 0x3C)
	bus[types.DIV] = 0xAB

	step(t, c)
	assert.True(t, c.Halted())
	assert.Equal(t, uint16(0x0102), c.PC)
	assert.Equal(t, uint8(0), bus[types.DIV])

	irq.Request(interrupts.VBlankFlag)
	step(t, c)
	assert.True(t, c.Halted(), "only the joypad wakes STOP")

	irq.Request(interrupts.JoypadFlag)
	step(t, c)
	assert.False(t, c.Halted())
	assert.Equal(t, uint8(1), c.AF.High())
}

func TestCPU_DAA(t *testing.T) {
	tests := []struct {
		name    string
		program []uint8
		a, b    uint8
		want    uint8
		carry   bool
	}{
		{"15+27", []uint8{0x80, 0x27}, 0x15, 0x27, 0x42, false},
		{"09+01", []uint8{0x80, 0x27}, 0x09, 0x01, 0x10, false},
		{"99+01", []uint8{0x80, 0x27}, 0x99, 0x01, 0x00, true},
		{"50+50", []uint8{0x80, 0x27}, 0x50, 0x50, 0x00, true},
		{"42-15", []uint8{0x90, 0x27}, 0x42, 0x15, 0x27, false},
		{"10-01", []uint8{0x90, 0x27}, 0x10, 0x01, 0x09, false},
		{"00-01", []uint8{0x90, 0x27}, 0x00, 0x01, 0x99, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _, _ := newTestCPU(tt.program...)
			c.AF.SetHigh(tt.a)
			c.BC.SetHigh(tt.b)
			step(t, c)
			step(t, c)

			if c.AF.High() != tt.want {
				t.Errorf("expected A=%02X, got %02X", tt.want, c.AF.High())
			}
			if c.isFlagSet(FlagCarry) != tt.carry {
				t.Errorf("expected carry=%v, got %v", tt.carry, c.isFlagSet(FlagCarry))
			}
			if c.isFlagSet(FlagZero) != (tt.want == 0) {
				t.Errorf("expected zero=%v", tt.want == 0)
			}
			if c.isFlagSet(FlagHalfCarry) {
				t.Errorf("expected half carry reset")
			}
		})
	}
}

func TestCPU_UnknownOpcode(t *testing.T) {
	for _, opcode := range disallowedOpcodes {
		c, _, _ := newTestCPU(0x00, opcode)
		step(t, c)

		_, err := c.Step()
		var unknown *UnknownOpcodeError
		require.True(t, errors.As(err, &unknown), "opcode %02X", opcode)
		assert.Equal(t, uint16(0x0101), unknown.PC)
		assert.Equal(t, opcode, unknown.Opcode)
		assert.False(t, unknown.Prefixed)
		assert.Contains(t, err.Error(), "0x0101")
	}
}

func TestInstructionSet_Complete(t *testing.T) {
	disallowed := map[uint8]bool{0xCB: true}
	for _, op := range disallowedOpcodes {
		disallowed[op] = true
	}
	for i := 0; i < 256; i++ {
		if InstructionSet[i].Defined() == disallowed[uint8(i)] {
			t.Errorf("opcode 0x%02X: defined=%v", i, InstructionSet[i].Defined())
		}
		if !InstructionSetCB[i].Defined() {
			t.Errorf("CB opcode 0x%02X is not defined", i)
		}
	}
}
