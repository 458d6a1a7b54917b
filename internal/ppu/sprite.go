package ppu

// Sprite is a decoded entry of the sprite attribute table (OAM).
// Each entry is four bytes: Y, X, tile index and attributes.
type Sprite struct {
	// Y is the vertical position plus 16.
	Y uint8
	// X is the horizontal position plus 8.
	X uint8
	// TileID is the tile index, always relative to 0x8000.
	TileID uint8
	// index is the position of the entry in OAM, 0-39.
	index int

	spriteAttributes
}

// spriteAttributes represents the attributes of a sprite.
type spriteAttributes struct {
	// Bit 7 - OBJ-to-BG priority (0=OBJ Above BG, 1=OBJ Behind BG color 1-3)
	behindBG bool
	// Bit 6 - Y flip          (0=Normal, 1=Vertically mirrored)
	flipY bool
	// Bit 5 - X flip          (0=Normal, 1=Horizontally mirrored)
	flipX bool
	// Bit 4 - Palette number  (0=OBP0, 1=OBP1)
	useSecondPalette bool
}

func newSprite(index int, y, x, tile, attr uint8) Sprite {
	return Sprite{
		Y:      y,
		X:      x,
		TileID: tile,
		index:  index,
		spriteAttributes: spriteAttributes{
			behindBG:         attr&0x80 != 0,
			flipY:            attr&0x40 != 0,
			flipX:            attr&0x20 != 0,
			useSecondPalette: attr&0x10 != 0,
		},
	}
}
