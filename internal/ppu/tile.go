package ppu

// tileRow is one 8 pixel row of a tile, as the two bit planes
// stored in VRAM.
type tileRow struct {
	lo, hi uint8
}

// readTileRow reads row y of the tile starting at address.
func readTileRow(read func(uint16) uint8, address uint16, y uint8) tileRow {
	address += uint16(y) * 2
	return tileRow{lo: read(address), hi: read(address + 1)}
}

// colour returns the 2-bit colour index of column x, 0 being the
// leftmost pixel.
func (r tileRow) colour(x uint8) uint8 {
	bit := 7 - x&7
	return (r.lo>>bit)&1 | ((r.hi>>bit)&1)<<1
}
