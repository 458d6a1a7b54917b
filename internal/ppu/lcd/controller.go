package lcd

import (
	"github.com/thelolagemann/dmgcore/pkg/utils"
)

// Controller is a decoded view of the LCD control register
// (types.LCDC). It controls various aspects of the LCD, such
// as enabling the background and window display.
//
//	Bit 7 - LCD Enable                     (0=Off, 1=On)
//	Bit 6 - Window Tile Map Display Select (0=9800-9BFF, 1=9C00-9FFF)
//	Bit 5 - Window Display Enable          (0=Off, 1=On)
//	Bit 4 - BG & Window Tile Data Select   (0=8800-97FF, 1=8000-8FFF)
//	Bit 3 - BG Tile Map Display Select     (0=9800-9BFF, 1=9C00-9FFF)
//	Bit 2 - OBJ (Sprite) Size              (0=8x8, 1=8x16)
//	Bit 1 - OBJ (Sprite) Display Enable    (0=Off, 1=On)
//	Bit 0 - BG/Window Display              (0=Off, 1=On)
type Controller struct {
	// Enabled is the LCD Enable bit.
	Enabled bool
	// WindowTileMapAddress is the start of the window tile map.
	WindowTileMapAddress uint16
	// WindowEnabled is the Window Display Enable bit.
	WindowEnabled bool
	// UnsignedAddressing is set when tile data is located at
	// 0x8000-0x8FFF and indexed unsigned. Otherwise tile data
	// is located at 0x8800-0x97FF, indexed signed from 0x9000.
	UnsignedAddressing bool
	// BackgroundTileMapAddress is the start of the background
	// tile map.
	BackgroundTileMapAddress uint16
	// SpriteSize is the height of sprites, 8 or 16.
	SpriteSize uint8
	// SpriteEnabled is the OBJ (Sprite) Display Enable bit.
	SpriteEnabled bool
	// BackgroundEnabled is the BG/Window Display bit.
	BackgroundEnabled bool

	raw uint8
}

// Set decodes the given LCDC value.
func (c *Controller) Set(value uint8) {
	c.raw = value
	c.Enabled = utils.TestBit(value, 7)
	c.WindowTileMapAddress = tileMap(utils.TestBit(value, 6))
	c.WindowEnabled = utils.TestBit(value, 5)
	c.UnsignedAddressing = utils.TestBit(value, 4)
	c.BackgroundTileMapAddress = tileMap(utils.TestBit(value, 3))
	c.SpriteSize = 8 + utils.GetBit(value, 2)*8
	c.SpriteEnabled = utils.TestBit(value, 1)
	c.BackgroundEnabled = utils.TestBit(value, 0)
}

// Value returns the raw LCDC value last decoded.
func (c *Controller) Value() uint8 {
	return c.raw
}

// TileAddress returns the address of the first byte of the
// given background or window tile.
func (c *Controller) TileAddress(index uint8) uint16 {
	if c.UnsignedAddressing {
		return 0x8000 + uint16(index)*16
	}
	return 0x8800 + uint16(index+128)*16
}

func tileMap(high bool) uint16 {
	if high {
		return 0x9C00
	}
	return 0x9800
}
