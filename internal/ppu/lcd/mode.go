package lcd

// Mode represents a mode of the LCD, as reported in bits 0-1
// of the STAT register.
type Mode = uint8

const (
	// HBlank is the horizontal blanking mode, entered after a line
	// has been transferred. The CPU can access both VRAM and OAM.
	HBlank Mode = iota
	// VBlank is the vertical blanking mode, covering lines 144-153.
	// The CPU can access both VRAM and OAM.
	VBlank
	// OAM is the OAM search mode, where the sprites on the current
	// line are selected. The CPU can access VRAM but not OAM.
	OAM
	// VRAM is the pixel transfer mode, where the line is sent to
	// the LCD. The CPU can access neither VRAM nor OAM.
	VRAM
)
