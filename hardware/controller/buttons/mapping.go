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

package buttons

import (
	"time"

	"github.com/padpipe/padpipe/hardware/controller/event"
)

// Mapping declares which derived events a button participates in. A
// button with the zero Mapping produces raw press/release edges only.
type Mapping struct {
	Tap       bool
	LongHold  bool
	DoubleTap bool
}

// Tuning is the set of named parameters consumed by the Classifier.
type Tuning struct {
	// presses within this window of each other form a chord candidate
	ChordWindow time.Duration

	// a button with a long-hold mapping held past this threshold emits
	// ButtonLongHold and is no longer a tap
	LongHoldThreshold time.Duration

	// two releases within this window form a double-tap. a tap of a
	// button with a double-tap mapping is deferred by this window
	DoubleTapWindow time.Duration

	// a candidate whose members all release within this interval of the
	// first press confirms as a chord without waiting for the window
	ChordReleaseDelay time.Duration
}

// DefaultTuning is the preferred starting point for a Tuning value.
func DefaultTuning() Tuning {
	return Tuning{
		ChordWindow:       150 * time.Millisecond,
		LongHoldThreshold: 500 * time.Millisecond,
		DoubleTapWindow:   300 * time.Millisecond,
		ChordReleaseDelay: 180 * time.Millisecond,
	}
}

// DefaultMappings returns a mapping table covering every defined button:
// taps everywhere, long-holds on the system buttons and double-taps on
// the face buttons.
func DefaultMappings() map[event.Button]Mapping {
	m := make(map[event.Button]Mapping)
	for _, b := range []event.Button{
		event.ButtonA, event.ButtonB, event.ButtonX, event.ButtonY,
		event.LeftBumper, event.RightBumper,
		event.Back, event.Start, event.Guide,
		event.LeftStick, event.RightStick,
		event.DPadUp, event.DPadDown, event.DPadLeft, event.DPadRight,
	} {
		m[b] = Mapping{Tap: true}
	}
	for _, b := range []event.Button{event.Back, event.Start, event.Guide} {
		m[b] = Mapping{Tap: true, LongHold: true}
	}
	for _, b := range []event.Button{event.ButtonA, event.ButtonB, event.ButtonX, event.ButtonY} {
		m[b] = Mapping{Tap: true, DoubleTap: true}
	}
	return m
}
