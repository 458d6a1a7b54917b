package cpu

import "github.com/thelolagemann/dmgcore/pkg/utils"

// Flag is the bit position of a flag in the F register.
type Flag = uint8

const (
	// FlagZero is set when the result of an operation is 0.
	FlagZero Flag = 7
	// FlagSubtract is set when the last operation was a subtraction.
	FlagSubtract Flag = 6
	// FlagHalfCarry is set when there was a carry out of bit 3
	// (bit 11 for 16-bit operations).
	FlagHalfCarry Flag = 5
	// FlagCarry is set when there was a carry out of bit 7
	// (bit 15 for 16-bit operations), or a borrow.
	FlagCarry Flag = 4
)

func (c *CPU) setFlag(flag Flag) {
	c.AF.SetLow(utils.SetBit(c.AF.Low(), flag))
}

func (c *CPU) clearFlag(flag Flag) {
	c.AF.SetLow(utils.ClearBit(c.AF.Low(), flag))
}

func (c *CPU) isFlagSet(flag Flag) bool {
	return utils.TestBit(c.AF.Low(), flag)
}

// setFlags replaces all four flags.
func (c *CPU) setFlags(zero, subtract, halfCarry, carry bool) {
	var f uint8
	if zero {
		f |= 1 << FlagZero
	}
	if subtract {
		f |= 1 << FlagSubtract
	}
	if halfCarry {
		f |= 1 << FlagHalfCarry
	}
	if carry {
		f |= 1 << FlagCarry
	}
	c.AF.SetLow(f)
}

// carry returns the carry flag as 0 or 1.
func (c *CPU) carry() uint8 {
	return utils.GetBit(c.AF.Low(), FlagCarry)
}
