// Package joypad provides an implementation of the Game Boy
// joypad. The joypad is used to read the state of the buttons
// and the direction keys.
package joypad

import (
	"github.com/thelolagemann/dmgcore/internal/interrupts"
	"github.com/thelolagemann/dmgcore/internal/types"
	"github.com/thelolagemann/dmgcore/pkg/utils"
)

// Button represents a physical button on the Game Boy.
type Button = uint8

const (
	// ButtonA is the A button.
	ButtonA Button = iota
	// ButtonB is the B button.
	ButtonB
	// ButtonSelect is the Select button.
	ButtonSelect
	// ButtonStart is the Start button.
	ButtonStart
	// ButtonRight is the Right button.
	ButtonRight
	// ButtonLeft is the Left button.
	ButtonLeft
	// ButtonUp is the Up button.
	ButtonUp
	// ButtonDown is the Down button.
	ButtonDown
)

// Input is implemented by anything that can report the state
// of the eight buttons, such as a keyboard or a network client.
type Input interface {
	// Pressed reports whether the button is currently held.
	Pressed(button Button) bool
}

// State represents the state of the joypad. Select either
// action or direction buttons by writing to the register,
// and then read out bits 0-3 to get the state of the buttons.
//
//	Bit 7 - Not used
//	Bit 6 - Not used
//	Bit 5 - P15 Select Button Keys      (0=Select)
//	Bit 4 - P14 Select Direction Keys   (0=Select)
//	Bit 3 - P13 Input Down  or Start    (0=Pressed) (Read Only)
//	Bit 2 - P12 Input Up    or Select   (0=Pressed) (Read Only)
//	Bit 1 - P11 Input Left  or Button B (0=Pressed) (Read Only)
//	Bit 0 - P10 Input Right or Button A (0=Pressed) (Read Only)
//
// A joypad interrupt is requested whenever one of bits 0-3
// falls from 1 to 0.
type State struct {
	// pressed holds a 1 for every held button, the lower 4 bits
	// are the action buttons and the upper 4 bits the directions.
	pressed uint8
	// sel holds bits 4 and 5 of the last write to P1.
	sel uint8
	// lines is the last composited value of bits 0-3.
	lines uint8

	irq *interrupts.Service
}

var _ Input = (*State)(nil)

// New returns a new joypad state, with P1 mapped into the given
// hardware table.
func New(h *types.HardwareRegisters, irq *interrupts.Service) *State {
	s := &State{
		sel:   0x30,
		lines: 0x0F,
		irq:   irq,
	}
	h.RegisterHardware(
		types.P1,
		func(v uint8) {
			s.sel = v & 0x30
			s.update()
		}, func() uint8 {
			return 0xC0 | s.sel | s.lines
		},
	)

	return s
}

// Press presses a button.
func (s *State) Press(button Button) {
	s.pressed = utils.SetBit(s.pressed, button)
	s.update()
}

// Release releases a button.
func (s *State) Release(button Button) {
	s.pressed = utils.ClearBit(s.pressed, button)
	s.update()
}

// Pressed reports whether the button is currently held.
func (s *State) Pressed(button Button) bool {
	return utils.TestBit(s.pressed, button)
}

// Sample copies the state of all eight buttons from the
// given input.
func (s *State) Sample(in Input) {
	var pressed uint8
	for b := ButtonA; b <= ButtonDown; b++ {
		if in.Pressed(b) {
			pressed = utils.SetBit(pressed, b)
		}
	}
	if pressed != s.pressed {
		s.pressed = pressed
		s.update()
	}
}

// update recomposites the input lines from the select bits and
// the held buttons, and requests an interrupt on a falling edge.
func (s *State) update() {
	var held uint8
	if s.sel&types.Bit4 == 0 {
		held |= s.pressed >> 4
	}
	if s.sel&types.Bit5 == 0 {
		held |= s.pressed & 0x0F
	}

	lines := ^held & 0x0F
	if s.lines&^lines != 0 {
		s.irq.Request(interrupts.JoypadFlag)
	}
	s.lines = lines
}
