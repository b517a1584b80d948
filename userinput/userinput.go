// This file is part of PadPipe.
//
// PadPipe is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// PadPipe is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with PadPipe.  If not, see <https://www.gnu.org/licenses/>.

// Package userinput is the translation layer between the device driver
// implementation and the hardware controller package. It attempts to
// hide details of the driver implementation while protecting the
// controller package from complication.
//
// The driver implementation in use during development was SDL and so
// there will be a bias towards that system.
package userinput

import (
	"github.com/padpipe/padpipe/hardware/controller/coords"
	"github.com/padpipe/padpipe/hardware/controller/event"
	"github.com/padpipe/padpipe/hardware/controller/motion"
)

// HandleInput conceptualises raw input being sent to the classification
// pipeline. The controller session satisfies it.
type HandleInput interface {
	PrimaryTouch(p coords.Point)
	SecondaryTouch(p coords.Point)
	TouchClick(pressed bool)
	ButtonPress(b event.Button)
	ButtonRelease(b event.Button)
	Motion(v motion.Velocity)
	Unplug()
}

// Event represents a single input event from the underlying device
// driver.
type Event interface{}

// EventQuit is sent when the user closes the program.
type EventQuit struct{}

// TouchSlot identifies one of the two touchpad finger slots.
type TouchSlot int

// List of valid TouchSlot values.
const (
	TouchPrimary TouchSlot = iota
	TouchSecondary
)

// EventTouch is one position sample of a touchpad finger slot. A
// position inside the deadband means the finger has lifted.
type EventTouch struct {
	Slot TouchSlot
	Pos  coords.Point
}

// EventTouchClick is an edge of the physical touchpad click button.
type EventTouchClick struct {
	Down bool
}

// EventButton is an edge of a controller button.
type EventButton struct {
	Button event.Button
	Down   bool
}

// EventGyro is one sample of the controller's gyroscope.
type EventGyro struct {
	Velocity motion.Velocity
}

// EventDisconnect is sent when the device disappears.
type EventDisconnect struct{}
