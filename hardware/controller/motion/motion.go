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

// Package motion detects discrete gestures in the angular velocity
// stream of the controller's gyroscope, and integrates the stream for
// continuous aiming.
//
// Each axis runs an independent peak detector: a velocity past the snap
// threshold begins tracking, and the gesture is emitted when the
// velocity settles or reverses. A refractory interval follows each
// gesture so that the rebound of the player's wrist is not read as a
// second gesture.
//
// The Detector is a pure state machine and is not safe for concurrent
// use.
package motion

import (
	"fmt"
	"math"
	"time"

	"github.com/padpipe/padpipe/hardware/controller/event"
	"github.com/padpipe/padpipe/logger"
)

// Velocity is one gyroscope sample, in radians per second. Pitch is
// positive when the nose of the controller is rising; Yaw is positive
// when the controller rotates counter-clockwise seen from above.
type Velocity struct {
	Pitch float64
	Yaw   float64
}

// Angle is an accumulated rotation, in radians, returned by Drain.
type Angle struct {
	Pitch float64
	Yaw   float64
}

// Tuning is the set of named parameters consumed by the Detector.
type Tuning struct {
	// angular velocity that begins gesture tracking
	SnapThreshold float64

	// the gesture is emitted when velocity falls back to this level
	SettleThreshold float64

	// interval after an emitted gesture during which the axis ignores
	// new snaps
	Refractory time.Duration
}

// DefaultTuning is the preferred starting point for a Tuning value.
func DefaultTuning() Tuning {
	return Tuning{
		SnapThreshold:   3.0,
		SettleThreshold: 1.0,
		Refractory:      250 * time.Millisecond,
	}
}

// per-axis peak tracking state.
type axis struct {
	tracking bool
	positive bool
	peak     float64

	inRefractory bool
	refractoryEnd time.Time
}

// feed runs one sample through the axis state machine, returning the
// sign of a completed gesture: +1, -1 or 0.
func (a *axis) feed(v float64, now time.Time, tun Tuning) int {
	if a.inRefractory {
		if now.Before(a.refractoryEnd) {
			return 0
		}
		a.inRefractory = false
	}

	if !a.tracking {
		if math.Abs(v) >= tun.SnapThreshold {
			a.tracking = true
			a.positive = v > 0
			a.peak = math.Abs(v)
		}
		return 0
	}

	// reversal completes the gesture as surely as settling does
	reversed := (v > 0) != a.positive && math.Abs(v) > tun.SettleThreshold
	if math.Abs(v) <= tun.SettleThreshold || reversed {
		a.tracking = false
		a.inRefractory = true
		a.refractoryEnd = now.Add(tun.Refractory)
		if a.positive {
			return 1
		}
		return -1
	}

	if math.Abs(v) > a.peak {
		a.peak = math.Abs(v)
	}
	return 0
}

// Detector converts gyroscope samples into motion gesture events.
type Detector struct {
	tun  Tuning
	perm logger.Permission

	pitch axis
	yaw   axis

	acc        Angle
	lastSample time.Time
	hasSample  bool
}

// NewDetector is the preferred method of initialisation for the Detector
// type.
func NewDetector(tun Tuning, perm logger.Permission) *Detector {
	return &Detector{
		tun:  tun,
		perm: perm,
	}
}

// String implements the Stringer interface.
func (d *Detector) String() string {
	return fmt.Sprintf("motion: pitch tracking=%v yaw tracking=%v", d.pitch.tracking, d.yaw.tracking)
}

// Reset returns the Detector to its power-on state, dropping any
// accumulated rotation. Called on device disconnect.
func (d *Detector) Reset() {
	tun := d.tun
	perm := d.perm
	*d = Detector{tun: tun, perm: perm}
}

// Sample feeds one gyroscope reading. Samples must arrive in time order;
// an out-of-order sample is dropped.
func (d *Detector) Sample(v Velocity, now time.Time) []event.Event {
	if d.hasSample {
		dt := now.Sub(d.lastSample)
		if dt < 0 {
			logger.Logf(d.perm, "motion", "out of order sample dropped (%v)", dt)
			return nil
		}
		d.acc.Pitch += v.Pitch * dt.Seconds()
		d.acc.Yaw += v.Yaw * dt.Seconds()
	}
	d.lastSample = now
	d.hasSample = true

	var events []event.Event

	switch d.pitch.feed(v.Pitch, now, d.tun) {
	case 1:
		events = append(events, event.MotionGesture{Motion: event.TiltBack})
	case -1:
		events = append(events, event.MotionGesture{Motion: event.TiltForward})
	}

	switch d.yaw.feed(v.Yaw, now, d.tun) {
	case 1:
		events = append(events, event.MotionGesture{Motion: event.TwistLeft})
	case -1:
		events = append(events, event.MotionGesture{Motion: event.TwistRight})
	}

	return events
}

// Drain returns the rotation accumulated since the last call and zeroes
// the accumulator. Consumers poll it at their own frame rate for
// continuous aiming.
func (d *Detector) Drain() Angle {
	a := d.acc
	d.acc = Angle{}
	return a
}
