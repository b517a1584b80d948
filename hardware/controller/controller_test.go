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

package controller

import (
	"testing"
	"time"

	"github.com/padpipe/padpipe/hardware/controller/coords"
	"github.com/padpipe/padpipe/hardware/controller/event"
	"github.com/padpipe/padpipe/hardware/controller/touchpad"
	"github.com/padpipe/padpipe/logger"
	"github.com/padpipe/padpipe/test"
)

// harness replaces the Controller's clock and timer scheduling so that
// tests control time and fire deferred work by hand.
type harness struct {
	c      *Controller
	now    time.Time
	timers []func()
	events []event.Event
}

func newHarness() *harness {
	h := &harness{
		c:   NewController(DefaultPreferences(), logger.Allow),
		now: time.Date(2021, 1, 1, 0, 0, 0, 0, time.UTC),
	}
	h.c.clock = func() time.Time { return h.now }
	h.c.afterFunc = func(d time.Duration, f func()) *time.Timer {
		h.timers = append(h.timers, f)
		return time.AfterFunc(24*time.Hour, func() {})
	}
	return h
}

func (h *harness) plug() {
	h.c.Plug(func(e event.Event) {
		h.events = append(h.events, e)
	})
}

func (h *harness) advance(ms int) {
	h.now = h.now.Add(time.Duration(ms) * time.Millisecond)
}

// fire runs every captured timer function once, in scheduling order, and
// forgets them. stale expiries are expected to be no-ops.
func (h *harness) fire() {
	timers := h.timers
	h.timers = nil
	for _, f := range timers {
		f()
	}
}

func TestButtonPipeline(t *testing.T) {
	h := newHarness()
	h.plug()

	h.c.ButtonPress(event.LeftBumper)
	test.Equate(t, len(h.events), 0)
	test.Equate(t, len(h.timers), 1)

	// chord window expiry degrades the candidate and the withheld press
	// reaches the sink
	h.advance(150)
	h.fire()
	test.Equate(t, len(h.events), 1)
	test.Equate(t, string(h.events[0].(event.ButtonPressed).Button), "LB")

	h.advance(50)
	h.c.ButtonRelease(event.LeftBumper)
	test.Equate(t, len(h.events), 3)
	rel := h.events[1].(event.ButtonReleased)
	test.Equate(t, rel.Hold, 200*time.Millisecond)
	test.Equate(t, string(h.events[2].(event.ButtonTap).Button), "LB")
}

func TestTouchpadPipeline(t *testing.T) {
	h := newHarness()
	h.plug()

	// first non-zero sample only latches the idle sentinel
	h.c.PrimaryTouch(coords.Point{X: 0.5, Y: 0.5})
	test.Equate(t, len(h.timers), 0)

	h.c.PrimaryTouch(coords.Point{X: 0.3, Y: 0.3})
	test.Equate(t, len(h.timers), 1)

	h.advance(80)
	h.c.PrimaryTouch(coords.Point{})
	test.Equate(t, len(h.events), 1)
	if _, ok := h.events[0].(event.TouchpadTap); !ok {
		t.Errorf("expected TouchpadTap (got %T)", h.events[0])
	}

	// the long-tap timer belongs to the lifted session
	h.advance(500)
	h.fire()
	test.Equate(t, len(h.events), 1)
}

func TestLongTapTimer(t *testing.T) {
	h := newHarness()
	h.plug()

	h.c.PrimaryTouch(coords.Point{X: 0.5, Y: 0.5})
	h.c.PrimaryTouch(coords.Point{X: 0.3, Y: 0.3})

	h.advance(500)
	h.fire()
	test.Equate(t, len(h.events), 1)
	if _, ok := h.events[0].(event.TouchpadLongTap); !ok {
		t.Errorf("expected TouchpadLongTap (got %T)", h.events[0])
	}

	// the hold is not also a tap
	h.advance(400)
	h.c.PrimaryTouch(coords.Point{})
	test.Equate(t, len(h.events), 1)
}

func TestLongTapTimerReplaced(t *testing.T) {
	h := newHarness()
	h.plug()

	h.c.crit.Lock()
	h.c.touchpadEmitted(touchpad.Emitted{StartLongTap: true, Session: 1})
	first := h.c.longTap

	// a new request stops the previous timer before replacing the handle
	h.c.touchpadEmitted(touchpad.Emitted{StartLongTap: true, Session: 2})
	h.c.crit.Unlock()

	test.Equate(t, first.Stop(), false)
}

func TestUnpluggedInputDropped(t *testing.T) {
	h := newHarness()

	h.c.ButtonPress(event.ButtonB)
	test.Equate(t, len(h.timers), 0)

	h.plug()
	h.c.ButtonPress(event.ButtonB)
	test.Equate(t, len(h.timers), 1)
}

func TestUnplugAbandonsTimers(t *testing.T) {
	h := newHarness()
	h.plug()

	h.c.PrimaryTouch(coords.Point{X: 0.5, Y: 0.5})
	h.c.PrimaryTouch(coords.Point{X: 0.3, Y: 0.3})
	h.c.ButtonPress(event.ButtonB)

	h.c.Unplug()
	h.plug()

	// expiries from the previous session are no-ops
	h.advance(500)
	h.fire()
	test.Equate(t, len(h.events), 0)
}

func TestReentrantSink(t *testing.T) {
	h := newHarness()

	// a sink that feeds input straight back into the controller. the
	// lock is not held during delivery so this must not deadlock
	h.c.Plug(func(e event.Event) {
		h.events = append(h.events, e)
		if _, ok := e.(event.ButtonPressed); ok {
			h.c.DrainMotion()
			h.c.ButtonRelease(event.LeftBumper)
		}
	})

	h.c.ButtonPress(event.LeftBumper)
	h.advance(150)
	h.fire()

	// press (from expiry), then release and tap (from the re-entrant
	// call)
	test.Equate(t, len(h.events), 3)
	test.Equate(t, string(h.events[0].(event.ButtonPressed).Button), "LB")
}
