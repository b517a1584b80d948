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

package event

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/padpipe/padpipe/hardware/controller/coords"
)

// Event is a classified controller input event. It is the single contract
// between the classification pipeline and every consumer.
//
// The set of types implementing Event is closed. Consumers decipher an
// Event with a type switch.
type Event interface {
	ImplementsEvent()
}

// Button identifies a physical button on the controller.
type Button string

// List of defined buttons. TouchClick is the physical click of the
// touchpad surface; its press/release edges reach the sink as
// TouchpadClick/TouchpadClickRelease rather than as button events.
const (
	NoButton    Button = "NoButton"
	ButtonA     Button = "A"
	ButtonB     Button = "B"
	ButtonX     Button = "X"
	ButtonY     Button = "Y"
	LeftBumper  Button = "LB"
	RightBumper Button = "RB"
	Back        Button = "Back"
	Start       Button = "Start"
	Guide       Button = "Guide"
	LeftStick   Button = "LS"
	RightStick  Button = "RS"
	DPadUp      Button = "DPadUp"
	DPadDown    Button = "DPadDown"
	DPadLeft    Button = "DPadLeft"
	DPadRight   Button = "DPadRight"
	TouchClick  Button = "TouchClick"
)

// Motion identifies a discrete motion gesture detected from the gyroscope.
type Motion string

// List of defined motion gestures.
const (
	TiltForward Motion = "TiltForward"
	TiltBack    Motion = "TiltBack"
	TwistLeft   Motion = "TwistLeft"
	TwistRight  Motion = "TwistRight"
)

// ButtonPressed is emitted on a button press edge. Buttons consumed by a
// chord candidate do not produce press events.
type ButtonPressed struct {
	Button Button
}

// ButtonReleased is emitted on a button release edge, with the duration
// the button was held.
type ButtonReleased struct {
	Button Button
	Hold   time.Duration
}

// ButtonTap is the resolved "tap" interpretation of a press/release pair.
// At most one of ButtonTap, ButtonLongHold and ButtonDoubleTap is emitted
// per press.
type ButtonTap struct {
	Button Button
}

// ButtonLongHold is emitted when a button with a long-hold mapping is held
// past the long-hold threshold. The button may still be down when the
// event arrives.
type ButtonLongHold struct {
	Button Button
}

// ButtonDoubleTap is emitted when two releases of the same button fall
// within the double-tap window.
type ButtonDoubleTap struct {
	Button Button
}

// Chord is emitted when a set of buttons is judged to have been pressed
// simultaneously. Buttons are sorted and membership-unique.
type Chord struct {
	Buttons []Button
}

// TouchpadMoved carries a continuous movement delta from the primary
// finger.
type TouchpadMoved struct {
	Delta coords.Delta
}

// TouchpadGesture carries one frame of a two-finger pan/pinch gesture.
// DistanceDelta is signed: positive when the fingers are separating. The
// baseline frame of a gesture carries zero deltas with both touching
// flags set; the closing frame carries zero deltas with the lifted
// finger's flag cleared, so a consumer tracking a pan/pinch always sees
// it terminate.
type TouchpadGesture struct {
	CenterDelta         coords.Delta
	DistanceDelta       float64
	IsPrimaryTouching   bool
	IsSecondaryTouching bool
}

// TouchpadTap is a short single-finger touch with negligible movement.
type TouchpadTap struct{}

// TouchpadTwoFingerTap is a short two-finger touch with negligible
// movement and negligible pan/pinch.
type TouchpadTwoFingerTap struct{}

// TouchpadLongTap is a single-finger touch held past the long-tap
// threshold without significant movement.
type TouchpadLongTap struct{}

// TouchpadTwoFingerLongTap is the two-finger variant of TouchpadLongTap.
type TouchpadTwoFingerLongTap struct{}

// TouchpadClick is the press edge of the physical touchpad click.
// TwoFinger records whether a second finger was fresh at press time.
type TouchpadClick struct {
	TwoFinger bool
}

// TouchpadClickRelease is the release edge matching a TouchpadClick. The
// TwoFinger decision is the one recorded at press time.
type TouchpadClickRelease struct {
	TwoFinger bool
}

// MotionGesture is a discrete gesture detected from angular velocity.
type MotionGesture struct {
	Motion Motion
}

// ImplementsEvent implementations.
func (ButtonPressed) ImplementsEvent()            {}
func (ButtonReleased) ImplementsEvent()           {}
func (ButtonTap) ImplementsEvent()                {}
func (ButtonLongHold) ImplementsEvent()           {}
func (ButtonDoubleTap) ImplementsEvent()          {}
func (Chord) ImplementsEvent()                    {}
func (TouchpadMoved) ImplementsEvent()            {}
func (TouchpadGesture) ImplementsEvent()          {}
func (TouchpadTap) ImplementsEvent()              {}
func (TouchpadTwoFingerTap) ImplementsEvent()     {}
func (TouchpadLongTap) ImplementsEvent()          {}
func (TouchpadTwoFingerLongTap) ImplementsEvent() {}
func (TouchpadClick) ImplementsEvent()            {}
func (TouchpadClickRelease) ImplementsEvent()     {}
func (MotionGesture) ImplementsEvent()            {}

func (e ButtonPressed) String() string {
	return fmt.Sprintf("pressed: %s", e.Button)
}

func (e ButtonReleased) String() string {
	return fmt.Sprintf("released: %s (held %v)", e.Button, e.Hold)
}

func (e ButtonTap) String() string {
	return fmt.Sprintf("tap: %s", e.Button)
}

func (e ButtonLongHold) String() string {
	return fmt.Sprintf("long-hold: %s", e.Button)
}

func (e ButtonDoubleTap) String() string {
	return fmt.Sprintf("double-tap: %s", e.Button)
}

func (e Chord) String() string {
	s := make([]string, len(e.Buttons))
	for i := range e.Buttons {
		s[i] = string(e.Buttons[i])
	}
	return fmt.Sprintf("chord: %s", strings.Join(s, "+"))
}

func (e TouchpadMoved) String() string {
	return fmt.Sprintf("touchpad move: %s", e.Delta)
}

func (e TouchpadGesture) String() string {
	if !e.IsPrimaryTouching || !e.IsSecondaryTouching {
		return "touchpad gesture: ended"
	}
	return fmt.Sprintf("touchpad gesture: pan %s pinch %+.3f", e.CenterDelta, e.DistanceDelta)
}

func (e TouchpadTap) String() string {
	return "touchpad tap"
}

func (e TouchpadTwoFingerTap) String() string {
	return "touchpad two-finger tap"
}

func (e TouchpadLongTap) String() string {
	return "touchpad long-tap"
}

func (e TouchpadTwoFingerLongTap) String() string {
	return "touchpad two-finger long-tap"
}

func (e TouchpadClick) String() string {
	if e.TwoFinger {
		return "touchpad click (two-finger)"
	}
	return "touchpad click"
}

func (e TouchpadClickRelease) String() string {
	if e.TwoFinger {
		return "touchpad click release (two-finger)"
	}
	return "touchpad click release"
}

func (e MotionGesture) String() string {
	return fmt.Sprintf("motion: %s", e.Motion)
}

// NewChord creates a Chord event. The button set is copied, sorted and
// de-duplicated so that chords compare consistently regardless of press
// order.
func NewChord(buttons []Button) Chord {
	sorted := make([]Button, 0, len(buttons))
	for _, b := range buttons {
		dup := false
		for _, s := range sorted {
			if s == b {
				dup = true
				break // inner loop
			}
		}
		if !dup {
			sorted = append(sorted, b)
		}
	}
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })
	return Chord{Buttons: sorted}
}
