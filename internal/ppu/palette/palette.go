// Package palette maps the 2-bit colour indices of the DMG to the
// four shades of grey it can display.
package palette

// Shade is an RGB triple.
type Shade = [3]uint8

// Shades are the four shades of the DMG, from lightest to darkest.
var Shades = [4]Shade{
	{0xFF, 0xFF, 0xFF}, // white
	{0xC0, 0xC0, 0xC0}, // light grey
	{0x60, 0x60, 0x60}, // dark grey
	{0x00, 0x00, 0x00}, // black
}

// Palette is a decoded palette register (types.BGP, types.OBP0 or
// types.OBP1), resolving each of the four colour indices to a shade.
type Palette [4]Shade

// ByteToPalette decodes a palette register. Each pair of bits
// selects the shade of one colour index, colour 0 in bits 0-1.
func ByteToPalette(b byte) Palette {
	var p Palette
	for i := 0; i < 4; i++ {
		p[i] = Shades[b>>(i*2)&0x03]
	}
	return p
}

// Colour returns the shade of the given colour index.
func (p Palette) Colour(index uint8) Shade {
	return p[index&0x03]
}
