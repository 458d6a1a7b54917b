package cpu

import "fmt"

// UnknownOpcodeError is returned by Step when the fetched opcode has
// no implementation. Execution can not continue past it.
type UnknownOpcodeError struct {
	PC       uint16
	Opcode   uint8
	Prefixed bool
}

func (e *UnknownOpcodeError) Error() string {
	if e.Prefixed {
		return fmt.Sprintf("cpu: unknown opcode 0xCB 0x%02X at 0x%04X", e.Opcode, e.PC)
	}
	return fmt.Sprintf("cpu: unknown opcode 0x%02X at 0x%04X", e.Opcode, e.PC)
}
