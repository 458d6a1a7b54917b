package cpu

import (
	"fmt"

	"github.com/thelolagemann/dmgcore/pkg/utils"
)

// generateJumpInstructions defines the relative and absolute jumps,
// calls, returns and restarts.
func generateJumpInstructions() {
	DefineInstruction(0x18, "JR e", func(c *CPU) {
		c.jumpRelative(true)
	})
	DefineInstruction(0xC3, "JP a16", func(c *CPU) {
		c.jumpAbsolute(true)
	})
	DefineInstruction(0xE9, "JP HL", func(c *CPU) {
		c.PC = c.HL.Uint16()
	})
	DefineInstruction(0xCD, "CALL a16", func(c *CPU) {
		c.call(true)
	})
	DefineInstruction(0xC9, "RET", func(c *CPU) {
		c.ret()
	})
	DefineInstruction(0xD9, "RETI", func(c *CPU) {
		c.ime = imeEnabled
		c.ret()
	})

	for cc := uint8(0); cc < 4; cc++ {
		cc := cc
		name := conditionNames[cc]
		// 0x20, 0x28, 0x30, 0x38 - JR cc, e
		DefineInstruction(0x20+cc<<3, fmt.Sprintf("JR %s, e", name), func(c *CPU) {
			c.jumpRelative(c.condition(cc))
		})
		// 0xC2, 0xCA, 0xD2, 0xDA - JP cc, a16
		DefineInstruction(0xC2+cc<<3, fmt.Sprintf("JP %s, a16", name), func(c *CPU) {
			c.jumpAbsolute(c.condition(cc))
		})
		// 0xC4, 0xCC, 0xD4, 0xDC - CALL cc, a16
		DefineInstruction(0xC4+cc<<3, fmt.Sprintf("CALL %s, a16", name), func(c *CPU) {
			c.call(c.condition(cc))
		})
		// 0xC0, 0xC8, 0xD0, 0xD8 - RET cc
		DefineInstruction(0xC0+cc<<3, fmt.Sprintf("RET %s", name), func(c *CPU) {
			c.tickCycle()
			if c.condition(cc) {
				c.ret()
			}
		})
	}

	// 0xC7, 0xCF, ... 0xFF - RST n
	for n := uint8(0); n < 8; n++ {
		vector := uint16(n) << 3
		DefineInstruction(0xC7+n<<3, fmt.Sprintf("RST %02XH", vector), func(c *CPU) {
			c.tickCycle()
			c.push(utils.Uint16ToBytes(c.PC))
			c.PC = vector
		})
	}
}

// jumpRelative reads a signed offset and adds it to PC if
// condition is true.
func (c *CPU) jumpRelative(condition bool) {
	offset := int8(c.readOperand())
	if condition {
		c.PC = uint16(int32(c.PC) + int32(offset))
		c.tickCycle()
	}
}

// jumpAbsolute reads a 16-bit address and jumps to it if
// condition is true.
func (c *CPU) jumpAbsolute(condition bool) {
	address := c.readOperand16()
	if condition {
		c.PC = address
		c.tickCycle()
	}
}

// call reads a 16-bit address and, if condition is true, pushes
// PC onto the stack and jumps to it.
func (c *CPU) call(condition bool) {
	address := c.readOperand16()
	if condition {
		c.tickCycle()
		c.push(utils.Uint16ToBytes(c.PC))
		c.PC = address
	}
}

// ret pops the return address from the stack into PC.
func (c *CPU) ret() {
	c.PC = utils.BytesToUint16(c.pop())
	c.tickCycle()
}
