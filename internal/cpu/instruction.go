package cpu

import (
	"fmt"

	"github.com/thelolagemann/dmgcore/internal/types"
)

// Instruction is a single entry in an opcode table.
type Instruction struct {
	name string
	fn   func(cpu *CPU)
}

// Name returns the mnemonic of the instruction.
func (i Instruction) Name() string {
	return i.name
}

// Defined returns true if the instruction has an implementation.
func (i Instruction) Defined() bool {
	return i.fn != nil
}

// InstructionSet holds the base opcode table. 0xCB and the
// opcodes in disallowedOpcodes have no entry.
var InstructionSet [256]Instruction

// DefineInstruction is a helper function to define an instruction.
func DefineInstruction(opcode uint8, name string, fn func(cpu *CPU)) {
	InstructionSet[opcode] = Instruction{name: name, fn: fn}
}

// disallowedOpcodes lock up the real hardware.
var disallowedOpcodes = []uint8{
	0xD3, 0xDB, 0xDD, 0xE3, 0xE4, 0xEB, 0xEC, 0xED, 0xF4, 0xFC, 0xFD,
}

var (
	registerNames  = [8]string{"B", "C", "D", "E", "H", "L", "(HL)", "A"}
	pairNames      = [4]string{"BC", "DE", "HL", "SP"}
	stackPairNames = [4]string{"BC", "DE", "HL", "AF"}
	conditionNames = [4]string{"NZ", "Z", "NC", "C"}
	aluNames       = [8]string{"ADD A,", "ADC A,", "SUB", "SBC A,", "AND", "XOR", "OR", "CP"}
)

// get8 returns the 8-bit register at index, in the
// order B, C, D, E, H, L, (HL), A used by the opcode encoding.
func (c *CPU) get8(index uint8) uint8 {
	switch index {
	case 0:
		return c.BC.High()
	case 1:
		return c.BC.Low()
	case 2:
		return c.DE.High()
	case 3:
		return c.DE.Low()
	case 4:
		return c.HL.High()
	case 5:
		return c.HL.Low()
	case 6:
		return c.readByte(c.HL.Uint16())
	default:
		return c.AF.High()
	}
}

// set8 sets the 8-bit register at index.
func (c *CPU) set8(index uint8, value uint8) {
	switch index {
	case 0:
		c.BC.SetHigh(value)
	case 1:
		c.BC.SetLow(value)
	case 2:
		c.DE.SetHigh(value)
	case 3:
		c.DE.SetLow(value)
	case 4:
		c.HL.SetHigh(value)
	case 5:
		c.HL.SetLow(value)
	case 6:
		c.writeByte(c.HL.Uint16(), value)
	default:
		c.AF.SetHigh(value)
	}
}

// get16 returns BC, DE, HL or SP.
func (c *CPU) get16(index uint8) uint16 {
	switch index {
	case 0:
		return c.BC.Uint16()
	case 1:
		return c.DE.Uint16()
	case 2:
		return c.HL.Uint16()
	default:
		return c.SP
	}
}

// set16 sets BC, DE, HL or SP.
func (c *CPU) set16(index uint8, value uint16) {
	switch index {
	case 0:
		c.BC.SetUint16(value)
	case 1:
		c.DE.SetUint16(value)
	case 2:
		c.HL.SetUint16(value)
	default:
		c.SP = value
	}
}

// stackPair returns BC, DE, HL or AF for PUSH and POP.
func (c *CPU) stackPair(index uint8) *types.RegisterPair {
	switch index {
	case 0:
		return &c.BC
	case 1:
		return &c.DE
	case 2:
		return &c.HL
	default:
		return &c.AF
	}
}

// condition evaluates NZ, Z, NC or C.
func (c *CPU) condition(index uint8) bool {
	switch index {
	case 0:
		return !c.isFlagSet(FlagZero)
	case 1:
		return c.isFlagSet(FlagZero)
	case 2:
		return !c.isFlagSet(FlagCarry)
	default:
		return c.isFlagSet(FlagCarry)
	}
}

// alu performs one of ADD, ADC, SUB, SBC, AND, XOR, OR or CP
// with the A register and n.
func (c *CPU) alu(op uint8, n uint8) {
	switch op {
	case 0:
		c.add(n, false)
	case 1:
		c.add(n, true)
	case 2:
		c.sub(n, false)
	case 3:
		c.sub(n, true)
	case 4:
		c.and(n)
	case 5:
		c.xor(n)
	case 6:
		c.or(n)
	default:
		c.compare(n, false)
	}
}

func init() {
	DefineInstruction(0x00, "NOP", func(c *CPU) {})
	DefineInstruction(0x08, "LD (a16), SP", func(c *CPU) {
		address := c.readOperand16()
		c.writeByte(address, uint8(c.SP&0xFF))
		c.writeByte(address+1, uint8(c.SP>>8))
	})
	DefineInstruction(0x10, "STOP", func(c *CPU) {
		// the second byte of STOP is skipped
		c.readOperand()
		c.bus.Write(types.DIV, 0)
		c.stopped = true
	})
	DefineInstruction(0x76, "HALT", func(c *CPU) {
		if c.ime == imeDisabled && c.irq.HasInterrupts() {
			c.haltBug = true
		} else {
			c.halted = true
		}
	})
	DefineInstruction(0xF3, "DI", func(c *CPU) {
		c.ime = imeDisabled
	})
	DefineInstruction(0xFB, "EI", func(c *CPU) {
		if c.ime == imeDisabled {
			c.ime = imeEnabledAfter
		}
	})

	generateLoadInstructions()
	generateArithmeticInstructions()
	generateJumpInstructions()
	generateStackInstructions()
}

// generateLoadInstructions defines the 8 and 16-bit loads.
func generateLoadInstructions() {
	// 0x40 - 0x7F - LD r, r'
	for dst := uint8(0); dst < 8; dst++ {
		for src := uint8(0); src < 8; src++ {
			if dst == 6 && src == 6 {
				continue // HALT
			}
			dst, src := dst, src
			DefineInstruction(0x40+dst<<3+src, fmt.Sprintf("LD %s, %s", registerNames[dst], registerNames[src]), func(c *CPU) {
				c.set8(dst, c.get8(src))
			})
		}

		// 0x06, 0x0E, ... - LD r, d8
		dst := dst
		DefineInstruction(0x06+dst<<3, fmt.Sprintf("LD %s, d8", registerNames[dst]), func(c *CPU) {
			c.set8(dst, c.readOperand())
		})
	}

	for i := uint8(0); i < 4; i++ {
		i := i
		// 0x01, 0x11, 0x21, 0x31 - LD rr, d16
		DefineInstruction(0x01+i<<4, fmt.Sprintf("LD %s, d16", pairNames[i]), func(c *CPU) {
			c.set16(i, c.readOperand16())
		})
	}

	// indirect loads through BC, DE and HL with post increment/decrement
	indirect := []struct {
		name    string
		address func(c *CPU) uint16
	}{
		{"(BC)", func(c *CPU) uint16 { return c.BC.Uint16() }},
		{"(DE)", func(c *CPU) uint16 { return c.DE.Uint16() }},
		{"(HL+)", func(c *CPU) uint16 {
			hl := c.HL.Uint16()
			c.HL.SetUint16(hl + 1)
			return hl
		}},
		{"(HL-)", func(c *CPU) uint16 {
			hl := c.HL.Uint16()
			c.HL.SetUint16(hl - 1)
			return hl
		}},
	}
	for i, mode := range indirect {
		address := mode.address
		DefineInstruction(0x02+uint8(i)<<4, fmt.Sprintf("LD %s, A", mode.name), func(c *CPU) {
			c.writeByte(address(c), c.AF.High())
		})
		DefineInstruction(0x0A+uint8(i)<<4, fmt.Sprintf("LD A, %s", mode.name), func(c *CPU) {
			c.AF.SetHigh(c.readByte(address(c)))
		})
	}

	DefineInstruction(0xE0, "LDH (a8), A", func(c *CPU) {
		c.writeByte(0xFF00+uint16(c.readOperand()), c.AF.High())
	})
	DefineInstruction(0xF0, "LDH A, (a8)", func(c *CPU) {
		c.AF.SetHigh(c.readByte(0xFF00 + uint16(c.readOperand())))
	})
	DefineInstruction(0xE2, "LD (C), A", func(c *CPU) {
		c.writeByte(0xFF00+uint16(c.BC.Low()), c.AF.High())
	})
	DefineInstruction(0xF2, "LD A, (C)", func(c *CPU) {
		c.AF.SetHigh(c.readByte(0xFF00 + uint16(c.BC.Low())))
	})
	DefineInstruction(0xEA, "LD (a16), A", func(c *CPU) {
		c.writeByte(c.readOperand16(), c.AF.High())
	})
	DefineInstruction(0xFA, "LD A, (a16)", func(c *CPU) {
		c.AF.SetHigh(c.readByte(c.readOperand16()))
	})
	DefineInstruction(0xF8, "LD HL, SP+e", func(c *CPU) {
		c.HL.SetUint16(c.addSPSigned(c.readOperand()))
		c.tickCycle()
	})
	DefineInstruction(0xF9, "LD SP, HL", func(c *CPU) {
		c.SP = c.HL.Uint16()
		c.tickCycle()
	})
}

// generateArithmeticInstructions defines the 8 and 16-bit ALU
// instructions, as well as the accumulator rotates and flag operations.
func generateArithmeticInstructions() {
	for r := uint8(0); r < 8; r++ {
		r := r
		// 0x04, 0x0C, ... - INC r
		DefineInstruction(0x04+r<<3, fmt.Sprintf("INC %s", registerNames[r]), func(c *CPU) {
			c.set8(r, c.increment(c.get8(r)))
		})
		// 0x05, 0x0D, ... - DEC r
		DefineInstruction(0x05+r<<3, fmt.Sprintf("DEC %s", registerNames[r]), func(c *CPU) {
			c.set8(r, c.decrement(c.get8(r)))
		})

		// 0x80 - 0xBF - ALU A, r
		for op := uint8(0); op < 8; op++ {
			op := op
			DefineInstruction(0x80+op<<3+r, fmt.Sprintf("%s %s", aluNames[op], registerNames[r]), func(c *CPU) {
				c.alu(op, c.get8(r))
			})
		}

		// 0xC6, 0xCE, ... - ALU A, d8
		op := r
		DefineInstruction(0xC6+op<<3, fmt.Sprintf("%s d8", aluNames[op]), func(c *CPU) {
			c.alu(op, c.readOperand())
		})
	}

	for i := uint8(0); i < 4; i++ {
		i := i
		// 0x03, 0x13, 0x23, 0x33 - INC rr
		DefineInstruction(0x03+i<<4, fmt.Sprintf("INC %s", pairNames[i]), func(c *CPU) {
			c.set16(i, c.get16(i)+1)
			c.tickCycle()
		})
		// 0x0B, 0x1B, 0x2B, 0x3B - DEC rr
		DefineInstruction(0x0B+i<<4, fmt.Sprintf("DEC %s", pairNames[i]), func(c *CPU) {
			c.set16(i, c.get16(i)-1)
			c.tickCycle()
		})
		// 0x09, 0x19, 0x29, 0x39 - ADD HL, rr
		DefineInstruction(0x09+i<<4, fmt.Sprintf("ADD HL, %s", pairNames[i]), func(c *CPU) {
			c.addHL(c.get16(i))
			c.tickCycle()
		})
	}

	DefineInstruction(0xE8, "ADD SP, e", func(c *CPU) {
		c.SP = c.addSPSigned(c.readOperand())
		c.tickCycle()
		c.tickCycle()
	})

	// the accumulator rotates always reset the zero flag
	DefineInstruction(0x07, "RLCA", func(c *CPU) {
		c.AF.SetHigh(c.rotateLeft(c.AF.High()))
		c.clearFlag(FlagZero)
	})
	DefineInstruction(0x0F, "RRCA", func(c *CPU) {
		c.AF.SetHigh(c.rotateRight(c.AF.High()))
		c.clearFlag(FlagZero)
	})
	DefineInstruction(0x17, "RLA", func(c *CPU) {
		c.AF.SetHigh(c.rotateLeftThroughCarry(c.AF.High()))
		c.clearFlag(FlagZero)
	})
	DefineInstruction(0x1F, "RRA", func(c *CPU) {
		c.AF.SetHigh(c.rotateRightThroughCarry(c.AF.High()))
		c.clearFlag(FlagZero)
	})

	DefineInstruction(0x27, "DAA", func(c *CPU) {
		c.daa()
	})
	DefineInstruction(0x2F, "CPL", func(c *CPU) {
		c.cpl()
	})
	DefineInstruction(0x37, "SCF", func(c *CPU) {
		c.setFlags(c.isFlagSet(FlagZero), false, false, true)
	})
	DefineInstruction(0x3F, "CCF", func(c *CPU) {
		c.setFlags(c.isFlagSet(FlagZero), false, false, !c.isFlagSet(FlagCarry))
	})
}
