package cpu

import (
	"fmt"

	"github.com/thelolagemann/dmgcore/pkg/utils"
)

func generateStackInstructions() {
	for i := uint8(0); i < 4; i++ {
		i := i
		// 0xC5, 0xD5, 0xE5, 0xF5 - PUSH rr
		DefineInstruction(0xC5+i<<4, fmt.Sprintf("PUSH %s", stackPairNames[i]), func(c *CPU) {
			pair := c.stackPair(i)
			c.tickCycle()
			c.push(pair.High(), pair.Low())
		})
		// 0xC1, 0xD1, 0xE1, 0xF1 - POP rr
		DefineInstruction(0xC1+i<<4, fmt.Sprintf("POP %s", stackPairNames[i]), func(c *CPU) {
			c.stackPair(i).SetUint16(utils.BytesToUint16(c.pop()))
		})
	}
}

// push writes high then low below SP, leaving SP pointing at low.
func (c *CPU) push(high, low uint8) {
	c.SP--
	c.writeByte(c.SP, high)
	c.SP--
	c.writeByte(c.SP, low)
}

// pop reads the two bytes at SP, leaving SP above them.
func (c *CPU) pop() (high, low uint8) {
	low = c.readByte(c.SP)
	c.SP++
	high = c.readByte(c.SP)
	c.SP++
	return high, low
}
