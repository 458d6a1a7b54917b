package types

// Register represents a GB Register which is used to hold an 8-bit value.
type Register = uint8

// RegisterPair represents a pair of GB Registers which is used to hold a
// 16-bit value. The CPU has 4 register pairs: AF, BC, DE, and HL.
//
// The pair is stored as a single 16-bit value, the 8-bit halves are
// views onto it, so writing either the pair or one of its halves is
// immediately visible through the other.
type RegisterPair struct {
	value uint16
}

// Uint16 returns the value of the RegisterPair as an uint16.
func (r *RegisterPair) Uint16() uint16 {
	return r.value
}

// SetUint16 sets the value of the RegisterPair to the given value.
func (r *RegisterPair) SetUint16(value uint16) {
	r.value = value
}

// High returns the upper register of the pair (A, B, D or H).
func (r *RegisterPair) High() Register {
	return uint8(r.value >> 8)
}

// Low returns the lower register of the pair (F, C, E or L).
func (r *RegisterPair) Low() Register {
	return uint8(r.value)
}

// SetHigh replaces the upper 8 bits of the pair.
func (r *RegisterPair) SetHigh(v Register) {
	r.value = uint16(v)<<8 | r.value&0x00FF
}

// SetLow replaces the lower 8 bits of the pair.
func (r *RegisterPair) SetLow(v Register) {
	r.value = r.value&0xFF00 | uint16(v)
}
