package cartridge

import (
	"fmt"
	"strings"
)

// Type is the cartridge type byte found at 0x0147.
type Type uint8

// Cartridge types, as reported in the header.
const (
	ROM         Type = 0x00
	MBC1        Type = 0x01
	MBC1RAM     Type = 0x02
	MBC1RAMBATT Type = 0x03
	MBC2        Type = 0x05
	MBC2BATT    Type = 0x06
	ROMRAM      Type = 0x08
	ROMRAMBATT  Type = 0x09
	MBC3        Type = 0x11
	MBC5        Type = 0x19
)

var typeNames = map[Type]string{
	ROM:         "ROM ONLY",
	MBC1:        "MBC1",
	MBC1RAM:     "MBC1+RAM",
	MBC1RAMBATT: "MBC1+RAM+BATTERY",
	MBC2:        "MBC2",
	MBC2BATT:    "MBC2+BATTERY",
	ROMRAM:      "ROM+RAM",
	ROMRAMBATT:  "ROM+RAM+BATTERY",
	MBC3:        "MBC3",
	MBC5:        "MBC5",
}

func (t Type) String() string {
	if name, ok := typeNames[t]; ok {
		return name
	}
	return fmt.Sprintf("UNKNOWN(0x%02X)", uint8(t))
}

// Header represents the header of a cartridge, each cartridge has a header and is
// located at the address space 0x0100-0x014F. The header contains information about
// the cartridge itself, and the hardware it expects to run on.
type Header struct {
	// 0x0134-0x0143 - Title of the game, padded with zeros
	Title string
	// 0x0147 - the memory controller and any extra hardware
	CartridgeType Type
	// 0x0148 - ROM size, 32kB x (1 << n)
	ROMSize uint
	// 0x0149 - external RAM size
	RAMSize uint
	// 0x014D - checksum of bytes 0x0134-0x014C
	HeaderChecksum uint8
	// 0x014E-0x014F - big endian sum of every other byte in the ROM
	GlobalChecksum uint16
}

var ramSizes = map[uint8]uint{
	0x00: 0,
	0x02: 8 * 1024,
	0x03: 32 * 1024,
	0x04: 128 * 1024,
	0x05: 64 * 1024,
}

// parseHeader parses the 0x50 byte header found at 0x0100.
func parseHeader(header []byte) (Header, error) {
	if len(header) != 0x50 {
		return Header{}, fmt.Errorf("cartridge: invalid header length %d", len(header))
	}

	return Header{
		Title:          strings.TrimRight(string(header[0x34:0x44]), "\x00\xFF"),
		CartridgeType:  Type(header[0x47]),
		ROMSize:        (32 * 1024) << (header[0x48] & 0x0F),
		RAMSize:        ramSizes[header[0x49]],
		HeaderChecksum: header[0x4D],
		GlobalChecksum: uint16(header[0x4E])<<8 | uint16(header[0x4F]),
	}, nil
}

// checksumValid reports whether the header checksum byte matches
// the header contents, the same check the boot ROM performs.
func (h *Header) checksumValid(header []byte) bool {
	var sum uint8
	for _, b := range header[0x34:0x4D] {
		sum = sum - b - 1
	}
	return sum == h.HeaderChecksum
}

func (h *Header) String() string {
	return fmt.Sprintf("%s | Type: %s | ROM Size: %dkB | RAM Size: %dkB", h.Title, h.CartridgeType, h.ROMSize/1024, h.RAMSize/1024)
}
