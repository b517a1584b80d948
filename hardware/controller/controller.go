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
	"fmt"
	"sync"
	"time"

	"github.com/padpipe/padpipe/hardware/controller/buttons"
	"github.com/padpipe/padpipe/hardware/controller/coords"
	"github.com/padpipe/padpipe/hardware/controller/event"
	"github.com/padpipe/padpipe/hardware/controller/motion"
	"github.com/padpipe/padpipe/hardware/controller/touchpad"
	"github.com/padpipe/padpipe/logger"
)

// Sink receives the classified event stream. It is invoked outside the
// Controller's critical section and may feed input back in.
type Sink func(event.Event)

// Preferences gathers the tuning of every classifier in the pipeline.
type Preferences struct {
	Touchpad touchpad.Tuning
	Buttons  buttons.Tuning
	Mappings map[event.Button]buttons.Mapping
	Motion   motion.Tuning
}

// DefaultPreferences is the preferred starting point for a Preferences
// value.
func DefaultPreferences() Preferences {
	return Preferences{
		Touchpad: touchpad.DefaultTuning(),
		Buttons:  buttons.DefaultTuning(),
		Mappings: buttons.DefaultMappings(),
		Motion:   motion.DefaultTuning(),
	}
}

// Controller serialises raw device input through the classifiers and
// delivers the resulting event stream to the attached Sink.
type Controller struct {
	crit sync.Mutex

	prefs Preferences
	perm  logger.Permission

	touch *touchpad.Recognizer
	btn   *buttons.Classifier
	mot   *motion.Detector

	plugged bool
	sink    Sink

	longTap *time.Timer

	// replaced in tests for deterministic time and timer control
	clock     func() time.Time
	afterFunc func(time.Duration, func()) *time.Timer
}

// NewController is the preferred method of initialisation for the
// Controller type.
func NewController(prefs Preferences, perm logger.Permission) *Controller {
	return &Controller{
		prefs:     prefs,
		perm:      perm,
		touch:     touchpad.NewRecognizer(prefs.Touchpad, perm),
		btn:       buttons.NewClassifier(prefs.Buttons, prefs.Mappings, perm),
		mot:       motion.NewDetector(prefs.Motion, perm),
		clock:     time.Now,
		afterFunc: time.AfterFunc,
	}
}

// String implements the Stringer interface.
func (c *Controller) String() string {
	c.crit.Lock()
	defer c.crit.Unlock()
	return fmt.Sprintf("controller: plugged=%v", c.plugged)
}

// Plug attaches a Sink and opens the session. Input arriving while
// unplugged is dropped.
func (c *Controller) Plug(sink Sink) {
	c.crit.Lock()
	defer c.crit.Unlock()
	c.plugged = true
	c.sink = sink
	logger.Log(logger.Allow, "controller", "plugged")
}

// Unplug closes the session. Every classifier returns to its power-on
// state and in-flight timers are abandoned.
func (c *Controller) Unplug() {
	c.crit.Lock()
	defer c.crit.Unlock()
	if !c.plugged {
		return
	}
	c.plugged = false
	c.sink = nil
	if c.longTap != nil {
		c.longTap.Stop()
		c.longTap = nil
	}
	c.touch.Reset()
	c.btn.Reset()
	c.mot.Reset()
	logger.Log(logger.Allow, "controller", "unplugged")
}

// dispatch delivers events outside the critical section. sink is the
// value captured while the lock was held.
func dispatch(sink Sink, events []event.Event) {
	if sink == nil {
		return
	}
	for _, e := range events {
		sink(e)
	}
}

// touchpadEmitted applies the timer side of an Emitted value. Must be
// called with the critical section held.
func (c *Controller) touchpadEmitted(em touchpad.Emitted) {
	if em.CancelLongTap && c.longTap != nil {
		c.longTap.Stop()
		c.longTap = nil
	}
	if em.StartLongTap {
		// a still-running timer would be a stale no-op when it fires but
		// would hold its resources until expiry
		if c.longTap != nil {
			c.longTap.Stop()
		}
		session := em.Session
		c.longTap = c.afterFunc(c.prefs.Touchpad.LongTapThreshold, func() {
			c.fireLongTap(session)
		})
	}
}

// PrimaryTouch feeds one sample of the primary finger slot.
func (c *Controller) PrimaryTouch(p coords.Point) {
	c.crit.Lock()
	if !c.plugged {
		c.crit.Unlock()
		return
	}
	em := c.touch.Primary(p, c.clock())
	c.touchpadEmitted(em)
	sink := c.sink
	c.crit.Unlock()
	dispatch(sink, em.Events)
}

// SecondaryTouch feeds one sample of the secondary finger slot.
func (c *Controller) SecondaryTouch(p coords.Point) {
	c.crit.Lock()
	if !c.plugged {
		c.crit.Unlock()
		return
	}
	em := c.touch.Secondary(p, c.clock())
	c.touchpadEmitted(em)
	sink := c.sink
	c.crit.Unlock()
	dispatch(sink, em.Events)
}

// TouchClick feeds a press or release edge of the physical touchpad
// click button.
func (c *Controller) TouchClick(pressed bool) {
	c.crit.Lock()
	if !c.plugged {
		c.crit.Unlock()
		return
	}
	em := c.touch.Click(pressed, c.clock())
	sink := c.sink
	c.crit.Unlock()
	dispatch(sink, em.Events)
}

func (c *Controller) fireLongTap(session int) {
	c.crit.Lock()
	if !c.plugged {
		c.crit.Unlock()
		return
	}
	em := c.touch.FireLongTap(session, c.clock())
	sink := c.sink
	c.crit.Unlock()
	dispatch(sink, em.Events)
}

// scheduleButtonTimers turns the classifier's timer requests into
// running timers. Must be called with the critical section held.
func (c *Controller) scheduleButtonTimers(timers []buttons.TimerRequest) {
	for _, tr := range timers {
		tr := tr
		switch tr.Kind {
		case buttons.TimerChord:
			c.afterFunc(tr.After, func() {
				c.fireButton(func(now time.Time) buttons.Result {
					return c.btn.ExpireChord(tr.Generation, now)
				})
			})
		case buttons.TimerLongHold:
			c.afterFunc(tr.After, func() {
				c.fireButton(func(now time.Time) buttons.Result {
					return c.btn.ExpireLongHold(tr.Button, tr.Generation, now)
				})
			})
		case buttons.TimerDoubleTap:
			c.afterFunc(tr.After, func() {
				c.fireButton(func(now time.Time) buttons.Result {
					return c.btn.ExpireDoubleTap(tr.Button, tr.Generation, now)
				})
			})
		}
	}
}

func (c *Controller) fireButton(expire func(time.Time) buttons.Result) {
	c.crit.Lock()
	if !c.plugged {
		c.crit.Unlock()
		return
	}
	res := expire(c.clock())
	c.scheduleButtonTimers(res.Timers)
	sink := c.sink
	c.crit.Unlock()
	dispatch(sink, res.Events)
}

// ButtonPress feeds a button press edge. The physical touchpad click
// routes to the touchpad recognizer instead of the button classifier.
func (c *Controller) ButtonPress(b event.Button) {
	if b == event.TouchClick {
		c.TouchClick(true)
		return
	}
	c.crit.Lock()
	if !c.plugged {
		c.crit.Unlock()
		return
	}
	res := c.btn.Press(b, c.clock())
	c.scheduleButtonTimers(res.Timers)
	sink := c.sink
	c.crit.Unlock()
	dispatch(sink, res.Events)
}

// ButtonRelease feeds a button release edge.
func (c *Controller) ButtonRelease(b event.Button) {
	if b == event.TouchClick {
		c.TouchClick(false)
		return
	}
	c.crit.Lock()
	if !c.plugged {
		c.crit.Unlock()
		return
	}
	res := c.btn.Release(b, c.clock())
	c.scheduleButtonTimers(res.Timers)
	sink := c.sink
	c.crit.Unlock()
	dispatch(sink, res.Events)
}

// Motion feeds one gyroscope sample.
func (c *Controller) Motion(v motion.Velocity) {
	c.crit.Lock()
	if !c.plugged {
		c.crit.Unlock()
		return
	}
	events := c.mot.Sample(v, c.clock())
	sink := c.sink
	c.crit.Unlock()
	dispatch(sink, events)
}

// DrainMotion returns the rotation accumulated since the last call.
func (c *Controller) DrainMotion() motion.Angle {
	c.crit.Lock()
	defer c.crit.Unlock()
	return c.mot.Drain()
}
