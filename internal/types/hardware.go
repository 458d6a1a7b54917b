package types

// HardwareRegisters is a table of hardware IO, which can be read
// and written to. The table is indexed by the address of the hardware
// register ANDed with 0x007F, with the IE register (0xFFFF) occupying
// the otherwise unused slot 0x7F.
//
// Each MMU owns its own table, so multiple machines may exist in the
// same process without sharing any register state.
type HardwareRegisters [0x80]*HardwareRegister

// HardwareRegister represents a hardware register of the Game
// Boy. The hardware IO are used to control and read the state
// of the hardware.
type HardwareRegister struct {
	address HardwareAddress
	write   func(v uint8)
	read    func() uint8
}

// RegisterHardware registers a hardware register with the given
// address and read/write functions. Either function may be nil, in
// which case reads return 0xFF and writes are dropped respectively.
func (h *HardwareRegisters) RegisterHardware(address HardwareAddress, write func(v uint8), read func() uint8) {
	h[index(address)] = &HardwareRegister{
		address: address,
		write:   write,
		read:    read,
	}
}

// Has reports whether a hardware register has been registered at the
// given address.
func (h *HardwareRegisters) Has(address HardwareAddress) bool {
	return h[index(address)] != nil && h[index(address)].address == address
}

// Read returns the value of the hardware register for the given
// address. Unregistered and write-only registers read as 0xFF.
func (h *HardwareRegisters) Read(address uint16) uint8 {
	if !h.Has(address) {
		return 0xFF
	}
	return h[index(address)].Read()
}

// Write writes the given value to the hardware register for the given
// address. Writes to unregistered or read-only registers are ignored.
func (h *HardwareRegisters) Write(address uint16, value uint8) {
	if !h.Has(address) {
		return
	}
	h[index(address)].Write(value)
}

func index(address HardwareAddress) uint16 {
	if address == IE {
		return 0x7F
	}
	return address & 0x007F
}

// Address returns the address the register is mapped to.
func (h *HardwareRegister) Address() HardwareAddress {
	return h.address
}

// Read returns the value of the register, or 0xFF if it is write-only.
func (h *HardwareRegister) Read() uint8 {
	if h.read == nil {
		return 0xFF
	}
	return h.read()
}

// Write writes the value to the register, ignoring read-only registers.
func (h *HardwareRegister) Write(value uint8) {
	if h.write == nil {
		return
	}
	h.write(value)
}

// NoWrite is a convenience function to return a write function that
// does nothing. This is useful for hardware IO that are not
// writable.
func NoWrite(v uint8) {
	// do nothing
}
