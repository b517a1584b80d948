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

package motion

import (
	"testing"
	"time"

	"github.com/padpipe/padpipe/hardware/controller/event"
	"github.com/padpipe/padpipe/logger"
	"github.com/padpipe/padpipe/test"
)

var epoch = time.Date(2021, 1, 1, 0, 0, 0, 0, time.UTC)

func at(ms int) time.Time {
	return epoch.Add(time.Duration(ms) * time.Millisecond)
}

func TestSnapAndSettle(t *testing.T) {
	d := NewDetector(DefaultTuning(), logger.Allow)

	// ramp up, peak, settle. the gesture is emitted on settling
	evs := d.Sample(Velocity{Pitch: 1.0}, at(0))
	test.Equate(t, len(evs), 0)
	evs = d.Sample(Velocity{Pitch: 4.0}, at(10))
	test.Equate(t, len(evs), 0)
	evs = d.Sample(Velocity{Pitch: 5.5}, at(20))
	test.Equate(t, len(evs), 0)
	evs = d.Sample(Velocity{Pitch: 0.5}, at(30))
	test.Equate(t, len(evs), 1)
	g := evs[0].(event.MotionGesture)
	test.Equate(t, string(g.Motion), "TiltBack")
}

func TestReversalCompletes(t *testing.T) {
	d := NewDetector(DefaultTuning(), logger.Allow)

	d.Sample(Velocity{Yaw: -4.0}, at(0))
	evs := d.Sample(Velocity{Yaw: 2.0}, at(20))
	test.Equate(t, len(evs), 1)
	g := evs[0].(event.MotionGesture)
	test.Equate(t, string(g.Motion), "TwistRight")
}

func TestRefractory(t *testing.T) {
	d := NewDetector(DefaultTuning(), logger.Allow)

	d.Sample(Velocity{Pitch: -4.0}, at(0))
	evs := d.Sample(Velocity{Pitch: 0.0}, at(20))
	test.Equate(t, len(evs), 1)

	// the wrist rebound inside the refractory interval is not a second
	// gesture
	evs = d.Sample(Velocity{Pitch: 4.0}, at(100))
	test.Equate(t, len(evs), 0)
	evs = d.Sample(Velocity{Pitch: 0.0}, at(150))
	test.Equate(t, len(evs), 0)

	// past the refractory interval the axis detects again
	evs = d.Sample(Velocity{Pitch: -4.0}, at(300))
	test.Equate(t, len(evs), 0)
	evs = d.Sample(Velocity{Pitch: 0.0}, at(320))
	test.Equate(t, len(evs), 1)
	g := evs[0].(event.MotionGesture)
	test.Equate(t, string(g.Motion), "TiltForward")
}

func TestAxesIndependent(t *testing.T) {
	d := NewDetector(DefaultTuning(), logger.Allow)

	d.Sample(Velocity{Pitch: 4.0, Yaw: 4.0}, at(0))
	evs := d.Sample(Velocity{Pitch: 0.0, Yaw: 0.0}, at(20))
	test.Equate(t, len(evs), 2)
}

func TestSubThresholdIgnored(t *testing.T) {
	d := NewDetector(DefaultTuning(), logger.Allow)

	for i := 0; i < 10; i++ {
		evs := d.Sample(Velocity{Pitch: 2.0, Yaw: -2.0}, at(i*10))
		test.Equate(t, len(evs), 0)
	}
}

func TestDrain(t *testing.T) {
	d := NewDetector(DefaultTuning(), logger.Allow)

	// the first sample establishes the integration baseline
	d.Sample(Velocity{Pitch: 1.0}, at(0))
	d.Sample(Velocity{Pitch: 1.0}, at(100))
	d.Sample(Velocity{Pitch: 1.0, Yaw: -2.0}, at(200))

	a := d.Drain()
	test.Near(t, a.Pitch, 0.2, 0.0001)
	test.Near(t, a.Yaw, -0.2, 0.0001)

	// draining zeroes the accumulator
	a = d.Drain()
	test.Near(t, a.Pitch, 0.0, 0.0001)
	test.Near(t, a.Yaw, 0.0, 0.0001)
}

func TestOutOfOrderSample(t *testing.T) {
	d := NewDetector(DefaultTuning(), logger.Allow)

	d.Sample(Velocity{Pitch: 1.0}, at(100))
	evs := d.Sample(Velocity{Pitch: 4.0}, at(50))
	test.Equate(t, len(evs), 0)

	a := d.Drain()
	test.Near(t, a.Pitch, 0.0, 0.0001)
}
