// Package ram provides a basic RAM implementation.
package ram

// RAM represents a fixed size block of RAM. Addresses are
// offsets into the block, and wrap around its size, which
// must be a power of two.
type RAM struct {
	data []uint8
	mask uint16
}

// NewRAM returns a new zeroed RAM of the given size.
func NewRAM(size uint16) *RAM {
	return &RAM{
		data: make([]uint8, size),
		mask: size - 1,
	}
}

// Read returns the value at the given offset.
func (r *RAM) Read(offset uint16) uint8 {
	return r.data[offset&r.mask]
}

// Write writes the value to the given offset.
func (r *RAM) Write(offset uint16, value uint8) {
	r.data[offset&r.mask] = value
}

// Size returns the size of the RAM in bytes.
func (r *RAM) Size() int {
	return len(r.data)
}
