package ppu

import (
	"sort"

	"github.com/thelolagemann/dmgcore/internal/ppu/palette"
	"github.com/thelolagemann/dmgcore/internal/types"
)

const (
	// maxSpritesPerLine is the number of sprites the hardware can
	// draw on a single line.
	maxSpritesPerLine = 10
	// oamEntries is the number of entries in the sprite attribute table.
	oamEntries = 40
)

// renderLine composites the background, window and sprites of the
// current line into the frame buffer.
func (p *PPU) renderLine() {
	ly := p.bus.LY()
	if ly >= ScreenHeight {
		return
	}

	// colour indices of the background and window, used to resolve
	// sprite priority
	var indices [ScreenWidth]uint8
	bgp := palette.ByteToPalette(p.bus.Read(types.BGP))

	if p.control.BackgroundEnabled {
		if !p.Debug.BackgroundDisabled {
			p.renderBackground(ly, bgp, &indices)
		} else {
			p.fillLine(ly, bgp.Colour(0))
		}
		if p.control.WindowEnabled && !p.Debug.WindowDisabled {
			p.renderWindow(ly, bgp, &indices)
		}
	} else {
		p.fillLine(ly, bgp.Colour(0))
	}

	if p.control.SpriteEnabled && !p.Debug.SpritesDisabled {
		p.renderSprites(ly, &indices)
	}
}

func (p *PPU) fillLine(ly uint8, shade palette.Shade) {
	for x := range p.frame[ly] {
		p.frame[ly][x] = shade
	}
}

func (p *PPU) renderBackground(ly uint8, bgp palette.Palette, indices *[ScreenWidth]uint8) {
	scy, scx := p.bus.Read(types.SCY), p.bus.Read(types.SCX)
	mapBase := p.control.BackgroundTileMapAddress

	// the map is 256x256 pixels, and wraps in both directions
	y := ly + scy
	for screenX := 0; screenX < ScreenWidth; screenX++ {
		x := uint8(screenX) + scx
		tile := p.bus.Read(mapBase + uint16(y/8)*32 + uint16(x/8))
		row := readTileRow(p.bus.Read, p.control.TileAddress(tile), y%8)

		index := row.colour(x % 8)
		indices[screenX] = index
		p.frame[ly][screenX] = bgp.Colour(index)
	}
}

func (p *PPU) renderWindow(ly uint8, bgp palette.Palette, indices *[ScreenWidth]uint8) {
	wy, wx := p.bus.Read(types.WY), p.bus.Read(types.WX)
	if ly < wy {
		return
	}
	mapBase := p.control.WindowTileMapAddress

	y := ly - wy
	for screenX := 0; screenX < ScreenWidth; screenX++ {
		windowX := screenX - (int(wx) - 7)
		if windowX < 0 {
			continue
		}
		x := uint8(windowX)
		tile := p.bus.Read(mapBase + uint16(y/8)*32 + uint16(x/8))
		row := readTileRow(p.bus.Read, p.control.TileAddress(tile), y%8)

		index := row.colour(x % 8)
		indices[screenX] = index
		p.frame[ly][screenX] = bgp.Colour(index)
	}
}

// spritesOnLine returns the sprites intersecting the given line, in
// the order they must be drawn.
//
// At most 10 sprites are selected, in OAM order. They are then drawn
// from the highest X to the lowest, so that the sprite with the lowest
// X ends on top. When X is equal, the entry earlier in OAM is drawn
// last and wins.
func (p *PPU) spritesOnLine(ly uint8) []Sprite {
	height := int(p.control.SpriteSize)

	sprites := make([]Sprite, 0, maxSpritesPerLine)
	for i := 0; i < oamEntries && len(sprites) < maxSpritesPerLine; i++ {
		address := 0xFE00 + uint16(i)*4
		y := p.bus.Read(address)
		top := int(y) - 16
		if int(ly) < top || int(ly) >= top+height {
			continue
		}
		sprites = append(sprites, newSprite(i,
			y,
			p.bus.Read(address+1),
			p.bus.Read(address+2),
			p.bus.Read(address+3),
		))
	}

	sort.SliceStable(sprites, func(i, j int) bool {
		if sprites[i].X != sprites[j].X {
			return sprites[i].X > sprites[j].X
		}
		return sprites[i].index > sprites[j].index
	})

	return sprites
}

func (p *PPU) renderSprites(ly uint8, indices *[ScreenWidth]uint8) {
	obp := [2]palette.Palette{
		palette.ByteToPalette(p.bus.Read(types.OBP0)),
		palette.ByteToPalette(p.bus.Read(types.OBP1)),
	}
	height := p.control.SpriteSize

	for _, s := range p.spritesOnLine(ly) {
		tile := s.TileID
		if height == 16 {
			tile &^= 1
		}

		line := ly - (s.Y - 16)
		if s.flipY {
			line = height - 1 - line
		}
		row := readTileRow(p.bus.Read, 0x8000+uint16(tile)*16, line)

		pal := obp[0]
		if s.useSecondPalette {
			pal = obp[1]
		}

		for col := uint8(0); col < 8; col++ {
			screenX := int(s.X) - 8 + int(col)
			if screenX < 0 || screenX >= ScreenWidth {
				continue
			}

			x := col
			if s.flipX {
				x = 7 - col
			}
			index := row.colour(x)
			if index == 0 {
				continue // transparent
			}
			if s.behindBG && indices[screenX] != 0 {
				continue
			}
			p.frame[ly][screenX] = pal.Colour(index)
		}
	}
}
