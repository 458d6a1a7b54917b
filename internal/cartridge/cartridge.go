// Package cartridge provides the game cartridge for the DMG. Only a
// single ROM banking scheme is implemented: bank 0 is fixed at
// 0x0000-0x3FFF, and a switchable 16 KiB bank is mapped at
// 0x4000-0x7FFF, selected by writes into the ROM area.
package cartridge

import (
	"errors"

	"github.com/thelolagemann/dmgcore/pkg/utils"
)

const (
	// BankSize is the size of a single ROM bank.
	BankSize = 0x4000
	// minSize is the smallest ROM mapped, two banks.
	minSize = 2 * BankSize
)

// ErrEmpty is returned when a cartridge image contains no data.
var ErrEmpty = errors.New("cartridge: empty rom")

// Cartridge represents a game cartridge.
type Cartridge struct {
	rom   []byte
	banks int
	// bank is the 7-bit bank register, the lower 5 bits are written
	// through 0x2000-0x3FFF and the upper 2 through 0x4000-0x5FFF.
	bank uint8

	header        Header
	checksumValid bool
}

// NewCartridge returns a cartridge for the given ROM image. Images
// smaller than two banks, or not a whole number of banks, are padded
// with 0xFF so that every address in the ROM area is backed.
func NewCartridge(rom []byte) (*Cartridge, error) {
	if len(rom) == 0 {
		return nil, ErrEmpty
	}

	size := minSize
	for size < len(rom) {
		size += BankSize
	}
	padded := make([]byte, size)
	n := copy(padded, rom)
	for i := n; i < size; i++ {
		padded[i] = 0xFF
	}

	header, err := parseHeader(padded[0x100:0x150])
	if err != nil {
		return nil, err
	}

	return &Cartridge{
		rom:           padded,
		banks:         size / BankSize,
		bank:          1,
		header:        header,
		checksumValid: header.checksumValid(padded[0x100:0x150]),
	}, nil
}

// Header returns the parsed cartridge header.
func (c *Cartridge) Header() Header {
	return c.header
}

// Title returns the cartridge title.
func (c *Cartridge) Title() string {
	return c.header.Title
}

// ChecksumValid reports whether the header checksum matched.
func (c *Cartridge) ChecksumValid() bool {
	return c.checksumValid
}

// Bank returns the bank currently mapped at 0x4000-0x7FFF.
func (c *Cartridge) Bank() int {
	return int(c.bank) % c.banks
}

// Read returns the value at the given address in 0x0000-0x7FFF.
func (c *Cartridge) Read(address uint16) uint8 {
	if address < BankSize {
		return c.rom[address]
	}
	return c.rom[c.Bank()*BankSize+int(address&(BankSize-1))]
}

// Write handles a write into the ROM area. Writes to the two bank
// select windows each update only their own bits of the bank number.
// Everything else written to ROM is ignored.
func (c *Cartridge) Write(address uint16, value uint8) {
	switch {
	case address >= 0x2000 && address < 0x4000:
		c.bank = c.bank&0x60 | utils.ZeroAdjust8(value&0x1F)
	case address >= 0x4000 && address < 0x6000:
		c.bank = c.bank&0x1F | value<<5&0x60
	}
}
