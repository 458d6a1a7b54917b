package interrupts

import (
	"github.com/thelolagemann/dmgcore/internal/types"
)

const (
	// VBlankFlag is the VBlank interrupt flag (bit 0),
	// which is requested every time the PPU enters
	// VBlank mode (lcd.VBlank).
	VBlankFlag = types.Bit0
	// LCDFlag is the LCD interrupt flag (bit 1), which
	// is requested on a rising edge of the STAT
	// interrupt line (types.STAT).
	LCDFlag = types.Bit1
	// TimerFlag is the Timer interrupt flag (bit 2),
	// which is requested one tick after the timer
	// overflows (types.TIMA > 0xFF).
	TimerFlag = types.Bit2
	// SerialFlag is the Serial interrupt flag (bit 3).
	// Serial transfers are not emulated, so only software
	// ever requests it.
	SerialFlag = types.Bit3
	// JoypadFlag is the Joypad interrupt Flag (bit 4),
	// which is requested when any of types.P1 bits 0-3
	// go from high to low, if the corresponding select
	// bit (types.P1 bit 4 or 5) is set to 0.
	JoypadFlag = types.Bit4
)

const (
	// VBlankVector is the address jumped to when servicing VBlankFlag.
	VBlankVector uint16 = 0x0040
	// LCDVector is the address jumped to when servicing LCDFlag.
	LCDVector uint16 = 0x0048
	// TimerVector is the address jumped to when servicing TimerFlag.
	TimerVector uint16 = 0x0050
	// SerialVector is the address jumped to when servicing SerialFlag.
	SerialVector uint16 = 0x0058
	// JoypadVector is the address jumped to when servicing JoypadFlag.
	JoypadVector uint16 = 0x0060
)

// Service holds the interrupt request and enable registers.
//
// When an interrupt is requested, the corresponding bit
// in the Flag register is set. When an interrupt is
// enabled, the corresponding bit in the Enable register
// is set. When an interrupt is requested and enabled,
// and the CPU's IME is set, the CPU will jump to the
// interrupt vector, and the corresponding bit in the
// Flag register will be cleared.
//
// Only the lower 5 bits of either register are stored, the
// upper 3 bits always read back as 1.
type Service struct {
	Flag   uint8 // interrupt Flag (types.IF)
	Enable uint8 // interrupt Enable (types.IE)
}

// NewService returns a new Service with its registers
// mapped into the given hardware table.
func NewService(h *types.HardwareRegisters) *Service {
	s := &Service{}
	h.RegisterHardware(
		types.IF,
		func(v uint8) {
			s.Flag = v & 0x1F
		}, func() uint8 {
			return s.Flag | 0xE0
		},
	)
	h.RegisterHardware(
		types.IE,
		func(v uint8) {
			s.Enable = v & 0x1F
		}, func() uint8 {
			return s.Enable | 0xE0
		},
	)

	return s
}

// HasInterrupts returns true if there are any interrupts
// that are requested and enabled.
func (s *Service) HasInterrupts() bool {
	return s.Pending() != 0
}

// Pending returns the set of interrupts that are both
// requested and enabled.
func (s *Service) Pending() uint8 {
	return s.Enable & s.Flag & 0x1F
}

// Request requests the specified interrupt, by setting
// the corresponding bit in the Flag register.
func (s *Service) Request(flag uint8) {
	s.Flag |= flag & 0x1F
}

// Clear clears the specified interrupt request.
func (s *Service) Clear(flag uint8) {
	s.Flag &^= flag
}

// Vector acknowledges the highest priority pending interrupt,
// clearing its request bit, and returns its vector. If no
// interrupt is pending, 0 is returned and nothing changes.
//
// Priority is fixed by bit position, VBlank being the highest
// and Joypad the lowest.
func (s *Service) Vector() uint16 {
	pending := s.Pending()
	if pending == 0 {
		return 0
	}
	for i := uint8(0); i < 5; i++ {
		flag := uint8(1 << i)
		if pending&flag != 0 {
			s.Clear(flag)
			return VBlankVector + uint16(i)*8
		}
	}

	return 0
}
