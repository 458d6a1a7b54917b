package cpu

// add adds n (and the carry flag when withCarry is set) to the
// A register.
//
//	ADD A, n
//	ADC A, n
//	n = d8, B, C, D, E, H, L, (HL), A
//
// Flags affected:
// Z - Set if result is zero.
// N - Reset.
// H - Set if carry from bit 3.
// C - Set if carry from bit 7.
func (c *CPU) add(n uint8, withCarry bool) {
	a := c.AF.High()
	var carry uint8
	if withCarry {
		carry = c.carry()
	}
	sum := uint16(a) + uint16(n) + uint16(carry)
	c.setFlags(
		uint8(sum) == 0,
		false,
		(a&0xF)+(n&0xF)+carry > 0xF,
		sum > 0xFF,
	)
	c.AF.SetHigh(uint8(sum))
}

// sub subtracts n (and the carry flag when withCarry is set)
// from the A register.
//
//	SUB n
//	SBC A, n
//	n = d8, B, C, D, E, H, L, (HL), A
//
// Flags affected:
// Z - Set if result is zero.
// N - Set.
// H - Set if no borrow from bit 4.
// C - Set if no borrow.
func (c *CPU) sub(n uint8, withCarry bool) {
	c.AF.SetHigh(c.compare(n, withCarry))
}

// compare subtracts n from A, setting the flags without storing
// the result, which is returned instead.
//
//	CP n
//	n = d8, B, C, D, E, H, L, (HL), A
//
// Flags affected:
// Z - Set if result is zero. (Set if A = n.)
// N - Set.
// H - Set if no borrow from bit 4.
// C - Set for no borrow. (Set if A < n.)
func (c *CPU) compare(n uint8, withCarry bool) uint8 {
	a := c.AF.High()
	var carry uint8
	if withCarry {
		carry = c.carry()
	}
	result := a - n - carry
	c.setFlags(
		result == 0,
		true,
		uint16(n&0xF)+uint16(carry) > uint16(a&0xF),
		uint16(n)+uint16(carry) > uint16(a),
	)
	return result
}

// and performs a bitwise AND of n and A, storing the result in A.
//
//	AND n
//	n = d8, B, C, D, E, H, L, (HL), A
//
// Flags affected:
// Z - Set if result is zero.
// N - Reset.
// H - Set.
// C - Reset.
func (c *CPU) and(n uint8) {
	result := c.AF.High() & n
	c.setFlags(result == 0, false, true, false)
	c.AF.SetHigh(result)
}

// or performs a bitwise OR of n and A, storing the result in A.
//
//	OR n
//	n = d8, B, C, D, E, H, L, (HL), A
//
// Flags affected:
// Z - Set if result is zero.
// N - Reset.
// H - Reset.
// C - Reset.
func (c *CPU) or(n uint8) {
	result := c.AF.High() | n
	c.setFlags(result == 0, false, false, false)
	c.AF.SetHigh(result)
}

// xor performs a bitwise XOR of n and A, storing the result in A.
//
//	XOR n
//	n = d8, B, C, D, E, H, L, (HL), A
//
// Flags affected:
// Z - Set if result is zero.
// N - Reset.
// H - Reset.
// C - Reset.
func (c *CPU) xor(n uint8) {
	result := c.AF.High() ^ n
	c.setFlags(result == 0, false, false, false)
	c.AF.SetHigh(result)
}

// increment returns n + 1.
//
//	INC n
//	n = B, C, D, E, H, L, (HL), A
//
// Flags affected:
// Z - Set if result is zero.
// N - Reset.
// H - Set if carry from bit 3.
// C - Not affected.
func (c *CPU) increment(n uint8) uint8 {
	result := n + 1
	c.setFlags(result == 0, false, n&0xF == 0xF, c.isFlagSet(FlagCarry))
	return result
}

// decrement returns n - 1.
//
//	DEC n
//	n = B, C, D, E, H, L, (HL), A
//
// Flags affected:
// Z - Set if result is zero.
// N - Set.
// H - Set if no borrow from bit 4.
// C - Not affected.
func (c *CPU) decrement(n uint8) uint8 {
	result := n - 1
	c.setFlags(result == 0, true, n&0xF == 0, c.isFlagSet(FlagCarry))
	return result
}

// addHL adds n to HL.
//
//	ADD HL, n
//	n = BC, DE, HL, SP
//
// Flags affected:
// Z - Not affected.
// N - Reset.
// H - Set if carry from bit 11.
// C - Set if carry from bit 15.
func (c *CPU) addHL(n uint16) {
	hl := c.HL.Uint16()
	sum := uint32(hl) + uint32(n)
	c.setFlags(
		c.isFlagSet(FlagZero),
		false,
		(hl&0xFFF)+(n&0xFFF) > 0xFFF,
		sum > 0xFFFF,
	)
	c.HL.SetUint16(uint16(sum))
}

// addSPSigned returns SP plus the signed operand e. The flags are
// computed from the unsigned low byte of SP and e.
//
//	ADD SP, e
//	LD HL, SP+e
//
// Flags affected:
// Z - Reset.
// N - Reset.
// H - Set if carry from bit 3.
// C - Set if carry from bit 7.
func (c *CPU) addSPSigned(e uint8) uint16 {
	sp := c.SP
	result := sp + uint16(int8(e))
	c.setFlags(
		false,
		false,
		(sp&0xF)+uint16(e&0xF) > 0xF,
		(sp&0xFF)+uint16(e) > 0xFF,
	)
	return result
}

// daa adjusts A after a BCD addition or subtraction, using the
// half carry, carry and subtract flags of the previous operation.
//
//	DAA
//
// Flags affected:
// Z - Set if register A is zero.
// N - Not affected.
// H - Reset.
// C - Set or reset according to operation.
func (c *CPU) daa() {
	a := c.AF.High()
	subtract := c.isFlagSet(FlagSubtract)
	carry := c.isFlagSet(FlagCarry)

	var correction uint8
	if c.isFlagSet(FlagHalfCarry) || (!subtract && a&0xF > 9) {
		correction |= 0x06
	}
	if carry || (!subtract && a > 0x99) {
		correction |= 0x60
		carry = true
	}

	if subtract {
		a -= correction
	} else {
		a += correction
	}

	c.setFlags(a == 0, subtract, false, carry)
	c.AF.SetHigh(a)
}

// cpl complements the A register.
//
//	CPL
//
// Flags affected:
// Z - Not affected.
// N - Set.
// H - Set.
// C - Not affected.
func (c *CPU) cpl() {
	c.AF.SetHigh(^c.AF.High())
	c.setFlag(FlagSubtract)
	c.setFlag(FlagHalfCarry)
}

// rotateLeft rotates n left, bit 7 moves to bit 0 and the carry flag.
//
//	RLC n
//
// Flags affected:
// Z - Set if result is zero.
// N - Reset.
// H - Reset.
// C - Contains old bit 7 data.
func (c *CPU) rotateLeft(n uint8) uint8 {
	result := n<<1 | n>>7
	c.setFlags(result == 0, false, false, n&0x80 != 0)
	return result
}

// rotateRight rotates n right, bit 0 moves to bit 7 and the carry flag.
//
//	RRC n
//
// Flags affected:
// Z - Set if result is zero.
// N - Reset.
// H - Reset.
// C - Contains old bit 0 data.
func (c *CPU) rotateRight(n uint8) uint8 {
	result := n>>1 | n<<7
	c.setFlags(result == 0, false, false, n&0x01 != 0)
	return result
}

// rotateLeftThroughCarry rotates n left through the carry flag.
//
//	RL n
//
// Flags affected:
// Z - Set if result is zero.
// N - Reset.
// H - Reset.
// C - Contains old bit 7 data.
func (c *CPU) rotateLeftThroughCarry(n uint8) uint8 {
	result := n<<1 | c.carry()
	c.setFlags(result == 0, false, false, n&0x80 != 0)
	return result
}

// rotateRightThroughCarry rotates n right through the carry flag.
//
//	RR n
//
// Flags affected:
// Z - Set if result is zero.
// N - Reset.
// H - Reset.
// C - Contains old bit 0 data.
func (c *CPU) rotateRightThroughCarry(n uint8) uint8 {
	result := n>>1 | c.carry()<<7
	c.setFlags(result == 0, false, false, n&0x01 != 0)
	return result
}

// shiftLeftIntoCarry shifts n left into the carry flag, bit 0 is reset.
//
//	SLA n
//
// Flags affected:
// Z - Set if result is zero.
// N - Reset.
// H - Reset.
// C - Contains old bit 7 data.
func (c *CPU) shiftLeftIntoCarry(n uint8) uint8 {
	result := n << 1
	c.setFlags(result == 0, false, false, n&0x80 != 0)
	return result
}

// shiftRightIntoCarry shifts n right into the carry flag, bit 7
// keeps its value.
//
//	SRA n
//
// Flags affected:
// Z - Set if result is zero.
// N - Reset.
// H - Reset.
// C - Contains old bit 0 data.
func (c *CPU) shiftRightIntoCarry(n uint8) uint8 {
	result := n>>1 | n&0x80
	c.setFlags(result == 0, false, false, n&0x01 != 0)
	return result
}

// shiftRightLogical shifts n right into the carry flag, bit 7 is reset.
//
//	SRL n
//
// Flags affected:
// Z - Set if result is zero.
// N - Reset.
// H - Reset.
// C - Contains old bit 0 data.
func (c *CPU) shiftRightLogical(n uint8) uint8 {
	result := n >> 1
	c.setFlags(result == 0, false, false, n&0x01 != 0)
	return result
}

// swap swaps the upper and lower nibbles of n.
//
//	SWAP n
//
// Flags affected:
// Z - Set if result is zero.
// N - Reset.
// H - Reset.
// C - Reset.
func (c *CPU) swap(n uint8) uint8 {
	result := n<<4 | n>>4
	c.setFlags(result == 0, false, false, false)
	return result
}

// testBit tests bit b of n.
//
//	BIT b, n
//
// Flags affected:
// Z - Set if bit b of register r is 0.
// N - Reset.
// H - Set.
// C - Not affected.
func (c *CPU) testBit(b uint8, n uint8) {
	c.setFlags(n&(1<<b) == 0, false, true, c.isFlagSet(FlagCarry))
}
