package lcd

import (
	"github.com/thelolagemann/dmgcore/pkg/utils"
)

// Status is a decoded view of the interrupt sources in the LCD
// status register (types.STAT).
//
//	Bit 6 - LYC=LY Coincidence Interrupt (1=Enable) (Read/Write)
//	Bit 5 - Mode 2 OAM Interrupt         (1=Enable) (Read/Write)
//	Bit 4 - Mode 1 V-Blank Interrupt     (1=Enable) (Read/Write)
//	Bit 3 - Mode 0 H-Blank Interrupt     (1=Enable) (Read/Write)
//	Bit 2 - Coincidence Flag  (0:LYC<>LY, 1:LYC=LY) (Read Only)
//	Bit 1-0 - Mode Flag                             (Read Only)
type Status struct {
	CoincidenceInterrupt bool
	OAMInterrupt         bool
	VBlankInterrupt      bool
	HBlankInterrupt      bool
	Coincidence          bool
	Mode                 Mode
}

// Set decodes the given STAT value.
func (s *Status) Set(value uint8) {
	s.CoincidenceInterrupt = utils.TestBit(value, 6)
	s.OAMInterrupt = utils.TestBit(value, 5)
	s.VBlankInterrupt = utils.TestBit(value, 4)
	s.HBlankInterrupt = utils.TestBit(value, 3)
	s.Coincidence = utils.TestBit(value, 2)
	s.Mode = value & 0b11
}

// Line returns the level of the STAT interrupt line. An
// interrupt is only requested when this goes from low to high.
//
// In VBlank the OAM source also holds the line high, as the
// hardware does.
func (s *Status) Line() bool {
	if s.CoincidenceInterrupt && s.Coincidence {
		return true
	}
	switch s.Mode {
	case HBlank:
		return s.HBlankInterrupt
	case OAM:
		return s.OAMInterrupt
	case VBlank:
		return s.VBlankInterrupt || s.OAMInterrupt
	}
	return false
}
