package cpu

import "fmt"

// InstructionSetCB holds the 0xCB prefixed opcode table.
var InstructionSetCB [256]Instruction

// DefineInstructionCB is a helper function to define a 0xCB prefixed instruction.
func DefineInstructionCB(opcode uint8, name string, fn func(cpu *CPU)) {
	InstructionSetCB[opcode] = Instruction{name: name, fn: fn}
}

var shiftNames = [8]string{"RLC", "RRC", "RL", "RR", "SLA", "SRA", "SWAP", "SRL"}

// shift applies one of the rotate/shift operations of the first
// quarter of the CB table.
func (c *CPU) shift(op uint8, n uint8) uint8 {
	switch op {
	case 0:
		return c.rotateLeft(n)
	case 1:
		return c.rotateRight(n)
	case 2:
		return c.rotateLeftThroughCarry(n)
	case 3:
		return c.rotateRightThroughCarry(n)
	case 4:
		return c.shiftLeftIntoCarry(n)
	case 5:
		return c.shiftRightIntoCarry(n)
	case 6:
		return c.swap(n)
	default:
		return c.shiftRightLogical(n)
	}
}

func init() {
	// loop through each register (B, C, D, E, H, L, (HL), A); (HL)
	// goes through get8/set8 so it reads and writes memory
	for r := uint8(0); r < 8; r++ {
		r := r
		reg := registerNames[r]

		// 0x00 - 0x3F - rotates, shifts and swap
		for op := uint8(0); op < 8; op++ {
			op := op
			DefineInstructionCB(op<<3+r, fmt.Sprintf("%s %s", shiftNames[op], reg), func(c *CPU) {
				c.set8(r, c.shift(op, c.get8(r)))
			})
		}

		for b := uint8(0); b < 8; b++ {
			b := b
			// 0x40 - 0x7F - BIT b, r
			DefineInstructionCB(0x40+b<<3+r, fmt.Sprintf("BIT %d, %s", b, reg), func(c *CPU) {
				c.testBit(b, c.get8(r))
			})
			// 0x80 - 0xBF - RES b, r
			DefineInstructionCB(0x80+b<<3+r, fmt.Sprintf("RES %d, %s", b, reg), func(c *CPU) {
				c.set8(r, c.get8(r)&^(1<<b))
			})
			// 0xC0 - 0xFF - SET b, r
			DefineInstructionCB(0xC0+b<<3+r, fmt.Sprintf("SET %d, %s", b, reg), func(c *CPU) {
				c.set8(r, c.get8(r)|1<<b)
			})
		}
	}
}
