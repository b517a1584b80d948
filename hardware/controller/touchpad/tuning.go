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

package touchpad

import "time"

// Tuning is the set of named parameters consumed by the Recognizer. The
// values are owned by the caller and are read-only to this package.
//
// All distances are in normalised touchpad units (the touchpad surface
// spans [-1, 1] on both axes).
type Tuning struct {
	// samples with both axes within the deadband mean "no contact"
	Deadband float64

	// before the first-ever touch, a non-zero rest position is latched as
	// a sentinel; a sample must deviate from the sentinel by more than
	// this threshold to be accepted as a real touch-down
	SentinelActivation float64

	// a single-frame delta exceeding this on either axis is a sensor
	// artifact; it resets the position baseline and is never emitted
	JumpThreshold float64

	// number of samples after touch-down during which position is
	// tracked but movement is never emitted
	SettleFrames uint32

	// additional time-boxed settle window. movement is suppressed inside
	// the window unless the finger has moved past ClickMovement from the
	// touch-start position
	SettleInterval time.Duration

	// movement threshold used by the settle window, click absorption and
	// the post-tap cooldown
	ClickMovement float64

	// tap classification bounds
	TapMaxDuration time.Duration
	TapMaxMovement float64

	// long-tap timer and its (tighter) movement ceiling
	LongTapThreshold   time.Duration
	LongTapMaxMovement float64

	// accumulated pan/pinch bounds for two-finger tap qualification
	TwoFingerTapMaxPan   float64
	TwoFingerTapMaxPinch float64

	// minimum finger separation before two-finger tracking engages
	TwoFingerMinSeparation float64

	// a secondary finger not sampled within this interval is stale: the
	// session degrades to single-finger tracking, and a click pressed
	// within this interval of the last secondary contact counts as
	// two-finger
	SecondaryStaleness time.Duration

	// movement emission for a touch-down arriving within this interval
	// of a successful tap is blocked until clear drag intent
	TapCooldown time.Duration
}

// DefaultTuning is the preferred starting point for a Tuning value.
func DefaultTuning() Tuning {
	return Tuning{
		Deadband:               0.001,
		SentinelActivation:     0.02,
		JumpThreshold:          0.3,
		SettleFrames:           2,
		SettleInterval:         50 * time.Millisecond,
		ClickMovement:          0.04,
		TapMaxDuration:         250 * time.Millisecond,
		TapMaxMovement:         0.04,
		LongTapThreshold:       500 * time.Millisecond,
		LongTapMaxMovement:     0.02,
		TwoFingerTapMaxPan:     0.06,
		TwoFingerTapMaxPinch:   0.06,
		TwoFingerMinSeparation: 0.04,
		SecondaryStaleness:     100 * time.Millisecond,
		TapCooldown:            180 * time.Millisecond,
	}
}
