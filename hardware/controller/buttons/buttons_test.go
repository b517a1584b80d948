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

func testClassifier() *Classifier {
	mappings := map[event.Button]Mapping{
		event.ButtonA:     {Tap: true, DoubleTap: true},
		event.ButtonB:     {Tap: true},
		event.ButtonX:     {Tap: true},
		event.LeftBumper:  {Tap: true},
		event.RightBumper: {Tap: true},
		event.Start:       {Tap: true, LongHold: true},
	}
	return NewClassifier(DefaultTuning(), mappings, logger.Allow)
}

// timer returns the first request of the given kind, failing the test if
// there is none.
func timer(t *testing.T, res Result, kind TimerKind) TimerRequest {
	t.Helper()
	for _, tr := range res.Timers {
		if tr.Kind == kind {
			return tr
		}
	}
	t.Fatalf("no %s timer requested", kind)
	return TimerRequest{}
}

func TestTap(t *testing.T) {
	c := testClassifier()

	res := c.Press(event.ButtonB, at(0))
	test.Equate(t, len(res.Events), 0)
	chord := timer(t, res, TimerChord)

	// sole member release dissolves the candidate and issues the
	// withheld press
	res = c.Release(event.ButtonB, at(80))
	test.Equate(t, len(res.Events), 3)
	test.Equate(t, string(res.Events[0].(event.ButtonPressed).Button), "B")
	rel := res.Events[1].(event.ButtonReleased)
	test.Equate(t, rel.Hold, 80*time.Millisecond)
	test.Equate(t, string(res.Events[2].(event.ButtonTap).Button), "B")

	// the chord timer fires against a dissolved candidate
	res = c.ExpireChord(chord.Generation, at(150))
	test.Equate(t, len(res.Events), 0)
}

func TestDoubleTap(t *testing.T) {
	c := testClassifier()

	c.Press(event.ButtonA, at(0))
	res := c.Release(event.ButtonA, at(80))

	// the tap is deferred, not emitted
	test.Equate(t, len(res.Events), 2)
	dt := timer(t, res, TimerDoubleTap)

	c.Press(event.ButtonA, at(150))
	res = c.Release(event.ButtonA, at(230))
	test.Equate(t, len(res.Events), 3)
	test.Equate(t, string(res.Events[2].(event.ButtonDoubleTap).Button), "A")

	// the deferred tap timer is now stale
	res = c.ExpireDoubleTap(event.ButtonA, dt.Generation, at(380))
	test.Equate(t, len(res.Events), 0)
}

func TestDeferredTap(t *testing.T) {
	c := testClassifier()

	c.Press(event.ButtonA, at(0))
	res := c.Release(event.ButtonA, at(80))
	dt := timer(t, res, TimerDoubleTap)

	// no second tap arrives; the deferred tap is issued at window expiry
	res = c.ExpireDoubleTap(event.ButtonA, dt.Generation, at(380))
	test.Equate(t, len(res.Events), 1)
	test.Equate(t, string(res.Events[0].(event.ButtonTap).Button), "A")
}

func TestLongHold(t *testing.T) {
	c := testClassifier()

	res := c.Press(event.Start, at(0))
	chord := timer(t, res, TimerChord)

	res = c.ExpireChord(chord.Generation, at(150))
	test.Equate(t, len(res.Events), 1)
	test.Equate(t, string(res.Events[0].(event.ButtonPressed).Button), "Start")
	hold := timer(t, res, TimerLongHold)
	test.Equate(t, hold.After, 350*time.Millisecond)

	res = c.ExpireLongHold(event.Start, hold.Generation, at(500))
	test.Equate(t, len(res.Events), 1)
	test.Equate(t, string(res.Events[0].(event.ButtonLongHold).Button), "Start")

	// a long-held button is not also a tap
	res = c.Release(event.Start, at(900))
	test.Equate(t, len(res.Events), 1)
	rel := res.Events[0].(event.ButtonReleased)
	test.Equate(t, rel.Hold, 900*time.Millisecond)
}

func TestLongHoldCancelledByRelease(t *testing.T) {
	c := testClassifier()

	res := c.Press(event.Start, at(0))
	chord := timer(t, res, TimerChord)
	res = c.ExpireChord(chord.Generation, at(150))
	hold := timer(t, res, TimerLongHold)

	res = c.Release(event.Start, at(200))
	test.Equate(t, len(res.Events), 2)
	test.Equate(t, string(res.Events[1].(event.ButtonTap).Button), "Start")

	res = c.ExpireLongHold(event.Start, hold.Generation, at(500))
	test.Equate(t, len(res.Events), 0)
}

func TestChord(t *testing.T) {
	c := testClassifier()

	res := c.Press(event.LeftBumper, at(0))
	chord := timer(t, res, TimerChord)
	res = c.Press(event.RightBumper, at(50))
	test.Equate(t, len(res.Events), 0)
	test.Equate(t, len(res.Timers), 0)

	res = c.ExpireChord(chord.Generation, at(150))
	test.Equate(t, len(res.Events), 1)
	ch := res.Events[0].(event.Chord)
	test.Equate(t, len(ch.Buttons), 2)
	test.Equate(t, string(ch.Buttons[0]), "LB")
	test.Equate(t, string(ch.Buttons[1]), "RB")

	// the chord consumed every edge of its members
	res = c.Release(event.LeftBumper, at(400))
	test.Equate(t, len(res.Events), 0)
	res = c.Release(event.RightBumper, at(450))
	test.Equate(t, len(res.Events), 0)
}

func TestChordEarlyConfirm(t *testing.T) {
	c := testClassifier()

	res := c.Press(event.LeftBumper, at(0))
	chord := timer(t, res, TimerChord)
	c.Press(event.RightBumper, at(30))

	res = c.Release(event.RightBumper, at(80))
	test.Equate(t, len(res.Events), 0)

	// all members released inside the window: early confirmation
	res = c.Release(event.LeftBumper, at(120))
	test.Equate(t, len(res.Events), 1)
	ch := res.Events[0].(event.Chord)
	test.Equate(t, len(ch.Buttons), 2)

	res = c.ExpireChord(chord.Generation, at(150))
	test.Equate(t, len(res.Events), 0)
}

func TestChordDegrade(t *testing.T) {
	c := testClassifier()

	res := c.Press(event.LeftBumper, at(0))
	chord := timer(t, res, TimerChord)
	c.Press(event.RightBumper, at(40))
	res = c.Release(event.RightBumper, at(100))
	test.Equate(t, len(res.Events), 0)

	// only one member still down at expiry: the candidate degrades and
	// the withheld history of both members is issued
	res = c.ExpireChord(chord.Generation, at(150))
	test.Equate(t, len(res.Events), 4)
	test.Equate(t, string(res.Events[0].(event.ButtonPressed).Button), "LB")
	test.Equate(t, string(res.Events[1].(event.ButtonPressed).Button), "RB")
	rel := res.Events[2].(event.ButtonReleased)
	test.Equate(t, string(rel.Button), "RB")
	test.Equate(t, rel.Hold, 60*time.Millisecond)
	test.Equate(t, string(res.Events[3].(event.ButtonTap).Button), "RB")

	res = c.Release(event.LeftBumper, at(300))
	test.Equate(t, len(res.Events), 2)
	test.Equate(t, string(res.Events[1].(event.ButtonTap).Button), "LB")
}

func TestLatePressResolvesCandidate(t *testing.T) {
	c := testClassifier()

	res := c.Press(event.ButtonB, at(0))
	chord := timer(t, res, TimerChord)

	// the chord timer is late. the press resolves the old candidate
	// before opening a new one
	res = c.Press(event.ButtonX, at(200))
	test.Equate(t, len(res.Events), 1)
	test.Equate(t, string(res.Events[0].(event.ButtonPressed).Button), "B")
	timer(t, res, TimerChord)

	res = c.ExpireChord(chord.Generation, at(210))
	test.Equate(t, len(res.Events), 0)
}

func TestDuplicateEdges(t *testing.T) {
	c := testClassifier()

	c.Press(event.ButtonB, at(0))
	res := c.Press(event.ButtonB, at(10))
	test.Equate(t, len(res.Events), 0)
	test.Equate(t, len(res.Timers), 0)

	c.Release(event.ButtonB, at(50))
	res = c.Release(event.ButtonB, at(60))
	test.Equate(t, len(res.Events), 0)
}

func TestClassifierReset(t *testing.T) {
	c := testClassifier()

	c.Press(event.ButtonB, at(0))
	c.Reset()

	res := c.Release(event.ButtonB, at(50))
	test.Equate(t, len(res.Events), 0)
}
