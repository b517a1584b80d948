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
	"fmt"
	"time"

	"github.com/padpipe/padpipe/hardware/controller/event"
	"github.com/padpipe/padpipe/logger"
)

// TimerKind distinguishes the deferred work a Classifier can request.
type TimerKind int

// List of valid TimerKind values.
const (
	TimerChord TimerKind = iota
	TimerLongHold
	TimerDoubleTap
)

func (k TimerKind) String() string {
	switch k {
	case TimerChord:
		return "chord"
	case TimerLongHold:
		return "long-hold"
	case TimerDoubleTap:
		return "double-tap"
	}
	return "unknown"
}

// TimerRequest asks the caller to deliver the named expiry back to the
// Classifier after the given duration. Button is meaningful for the
// long-hold and double-tap kinds only.
type TimerRequest struct {
	Kind       TimerKind
	Button     event.Button
	After      time.Duration
	Generation int
}

// Result is the outcome of feeding one input to the Classifier.
type Result struct {
	Events []event.Event
	Timers []TimerRequest
}

// per-button state.
type state struct {
	down      bool
	pressTime time.Time

	// the button's edges were consumed by a confirmed chord
	chorded bool

	longHoldFired bool
	holdGen       int

	// a tap deferred by the double-tap window
	pendingTap   bool
	firstRelease time.Time
	tapGen       int
}

// a button taking part in an open chord candidate.
type member struct {
	button      event.Button
	pressTime   time.Time
	released    bool
	releaseTime time.Time
}

type candidate struct {
	start   time.Time
	gen     int
	members []member
}

// Classifier converts button edges into tap, long-hold, double-tap and
// chord events. See the package documentation for the calling contract.
type Classifier struct {
	tun      Tuning
	mappings map[event.Button]Mapping
	perm     logger.Permission

	states   map[event.Button]*state
	cand     *candidate
	chordGen int
}

// NewClassifier is the preferred method of initialisation for the
// Classifier type. A nil mappings table means raw edges only.
func NewClassifier(tun Tuning, mappings map[event.Button]Mapping, perm logger.Permission) *Classifier {
	if mappings == nil {
		mappings = make(map[event.Button]Mapping)
	}
	return &Classifier{
		tun:      tun,
		mappings: mappings,
		perm:     perm,
		states:   make(map[event.Button]*state),
	}
}

// String implements the Stringer interface.
func (c *Classifier) String() string {
	down := 0
	for _, st := range c.states {
		if st.down {
			down++
		}
	}
	return fmt.Sprintf("buttons: down=%d candidate=%v", down, c.cand != nil)
}

// Reset returns the Classifier to its power-on state. Called on device
// disconnect. Buttons physically held across the reset will be seen
// again as fresh presses.
func (c *Classifier) Reset() {
	c.states = make(map[event.Button]*state)
	c.cand = nil
	c.chordGen++
}

func (c *Classifier) state(b event.Button) *state {
	st, ok := c.states[b]
	if !ok {
		st = &state{}
		c.states[b] = st
	}
	return st
}

// Press feeds a press edge. A press of a button that is already down is
// a no-op.
func (c *Classifier) Press(b event.Button, now time.Time) Result {
	var res Result

	st := c.state(b)
	if st.down {
		logger.Logf(c.perm, "buttons", "%s: duplicate press edge", b)
		return res
	}

	st.down = true
	st.pressTime = now
	st.chorded = false
	st.longHoldFired = false

	// a candidate whose timer is late is resolved before the new press
	// is considered
	if c.cand != nil && now.Sub(c.cand.start) >= c.tun.ChordWindow {
		c.resolve(&res, now)
	}

	if c.cand != nil {
		c.cand.members = append(c.cand.members, member{button: b, pressTime: now})
		return res
	}

	c.chordGen++
	c.cand = &candidate{
		start:   now,
		gen:     c.chordGen,
		members: []member{{button: b, pressTime: now}},
	}
	res.Timers = append(res.Timers, TimerRequest{
		Kind:       TimerChord,
		After:      c.tun.ChordWindow,
		Generation: c.chordGen,
	})
	return res
}

// Release feeds a release edge. A release of a button that is not down
// is a no-op.
func (c *Classifier) Release(b event.Button, now time.Time) Result {
	var res Result

	st := c.state(b)
	if !st.down {
		logger.Logf(c.perm, "buttons", "%s: release without press", b)
		return res
	}
	st.down = false

	// a chord consumes every edge of its members, the releases included
	if st.chorded {
		st.chorded = false
		return res
	}

	if c.cand != nil {
		for i := range c.cand.members {
			m := &c.cand.members[i]
			if m.button == b && !m.released {
				m.released = true
				m.releaseTime = now
				c.memberReleased(&res, now)
				return res
			}
		}
	}

	hold := now.Sub(st.pressTime)
	st.holdGen++
	res.Events = append(res.Events, event.ButtonReleased{Button: b, Hold: hold})
	c.classifyTap(&res, b, st, hold, now, now)
	return res
}

// memberReleased handles the release of a candidate member.
func (c *Classifier) memberReleased(res *Result, now time.Time) {
	cand := c.cand

	// a sole member dissolves the candidate immediately
	if len(cand.members) == 1 {
		c.cand = nil
		c.flush(res, &cand.members[0], now)
		return
	}

	for i := range cand.members {
		if !cand.members[i].released {
			return
		}
	}

	// all members released while the candidate was open
	c.cand = nil
	if now.Sub(cand.start) <= c.tun.ChordReleaseDelay {
		buttons := make([]event.Button, len(cand.members))
		for i := range cand.members {
			buttons[i] = cand.members[i].button
		}
		res.Events = append(res.Events, event.NewChord(buttons))
		return
	}
	for i := range cand.members {
		c.flush(res, &cand.members[i], now)
	}
}

// ExpireChord delivers an expired chord timer back to the Classifier.
func (c *Classifier) ExpireChord(gen int, now time.Time) Result {
	var res Result

	if c.cand == nil || c.cand.gen != gen {
		logger.Logf(c.perm, "buttons", "stale chord timer (gen %d)", gen)
		return res
	}
	c.resolve(&res, now)
	return res
}

// resolve closes the open candidate: chord confirmation with two or more
// members still down, degradation otherwise.
func (c *Classifier) resolve(res *Result, now time.Time) {
	cand := c.cand
	c.cand = nil

	var downMembers []event.Button
	for i := range cand.members {
		if c.state(cand.members[i].button).down {
			downMembers = append(downMembers, cand.members[i].button)
		}
	}

	if len(downMembers) >= 2 {
		res.Events = append(res.Events, event.NewChord(downMembers))
		for _, b := range downMembers {
			c.state(b).chorded = true
		}
		// members that released before confirmation were never part of
		// the chord; their withheld history is issued now
		for i := range cand.members {
			if cand.members[i].released {
				c.flush(res, &cand.members[i], now)
			}
		}
		return
	}

	for i := range cand.members {
		c.flush(res, &cand.members[i], now)
	}
}

// flush issues the withheld events of a degraded candidate member as if
// the candidate had never existed.
func (c *Classifier) flush(res *Result, m *member, now time.Time) {
	st := c.state(m.button)

	res.Events = append(res.Events, event.ButtonPressed{Button: m.button})

	if m.released {
		hold := m.releaseTime.Sub(m.pressTime)
		res.Events = append(res.Events, event.ButtonReleased{Button: m.button, Hold: hold})
		c.classifyTap(res, m.button, st, hold, m.releaseTime, now)
		return
	}

	if c.mappings[m.button].LongHold {
		st.holdGen++
		res.Timers = append(res.Timers, TimerRequest{
			Kind:       TimerLongHold,
			Button:     m.button,
			After:      c.tun.LongHoldThreshold - now.Sub(m.pressTime),
			Generation: st.holdGen,
		})
	}
}

// classifyTap decides the tap interpretation of a completed press.
// releaseTime is when the release edge happened; now is the current
// time, which may be later if the release was withheld by a candidate.
func (c *Classifier) classifyTap(res *Result, b event.Button, st *state, hold time.Duration, releaseTime time.Time, now time.Time) {
	if st.longHoldFired {
		st.longHoldFired = false
		return
	}
	if hold >= c.tun.LongHoldThreshold {
		return
	}

	m := c.mappings[b]
	if !m.Tap && !m.DoubleTap {
		return
	}

	if !m.DoubleTap {
		res.Events = append(res.Events, event.ButtonTap{Button: b})
		return
	}

	if st.pendingTap && releaseTime.Sub(st.firstRelease) <= c.tun.DoubleTapWindow {
		st.pendingTap = false
		st.tapGen++
		res.Events = append(res.Events, event.ButtonDoubleTap{Button: b})
		return
	}

	// the tap is deferred until the double-tap window has passed
	st.pendingTap = true
	st.firstRelease = releaseTime
	st.tapGen++
	res.Timers = append(res.Timers, TimerRequest{
		Kind:       TimerDoubleTap,
		Button:     b,
		After:      c.tun.DoubleTapWindow - now.Sub(releaseTime),
		Generation: st.tapGen,
	})
}

// ExpireLongHold delivers an expired long-hold timer back to the
// Classifier.
func (c *Classifier) ExpireLongHold(b event.Button, gen int, now time.Time) Result {
	var res Result

	st := c.state(b)
	if !st.down || gen != st.holdGen {
		logger.Logf(c.perm, "buttons", "%s: stale long-hold timer (gen %d)", b, gen)
		return res
	}

	st.longHoldFired = true
	res.Events = append(res.Events, event.ButtonLongHold{Button: b})
	return res
}

// ExpireDoubleTap delivers an expired double-tap timer back to the
// Classifier. The deferred tap is issued if no second tap arrived.
func (c *Classifier) ExpireDoubleTap(b event.Button, gen int, now time.Time) Result {
	var res Result

	st := c.state(b)
	if !st.pendingTap || gen != st.tapGen {
		logger.Logf(c.perm, "buttons", "%s: stale double-tap timer (gen %d)", b, gen)
		return res
	}

	st.pendingTap = false
	if c.mappings[b].Tap {
		res.Events = append(res.Events, event.ButtonTap{Button: b})
	}
	return res
}
