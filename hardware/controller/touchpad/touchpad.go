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

import (
	"fmt"
	"time"

	"github.com/padpipe/padpipe/hardware/controller/coords"
	"github.com/padpipe/padpipe/hardware/controller/event"
	"github.com/padpipe/padpipe/logger"
)

// Slot identifies one of the two finger slots reported by the touchpad.
type Slot int

// List of valid Slot values.
const (
	Primary Slot = iota
	Secondary
	numSlots
)

func (s Slot) String() string {
	switch s {
	case Primary:
		return "primary"
	case Secondary:
		return "secondary"
	}
	return "unknown"
}

// Emitted is the outcome of feeding one input to the Recognizer.
type Emitted struct {
	Events []event.Event

	// StartLongTap requests that the caller schedule a long-tap timer
	// for the given touch session, expiring after Tuning.LongTapThreshold
	StartLongTap bool

	// CancelLongTap indicates that any scheduled long-tap timer is now
	// dead. Honouring it is an optimisation; a fire against a dead
	// session is a no-op regardless
	CancelLongTap bool

	// the touch session generation for StartLongTap
	Session int
}

// finger holds the per-slot touch state.
type finger struct {
	touching bool
	pos      coords.Point
	prevPos  coords.Point

	startTime time.Time
	startPos  coords.Point
	maxDist   float64
	frames    uint32

	// time of the slot's most recent contact sample. used for the
	// secondary staleness and click freshness tests
	lastSeen time.Time

	// idle sentinel. only engaged before the slot's first-ever touch
	sentinel    coords.Point
	hasSentinel bool
	seenTouch   bool

	// an accepted delta is held for one frame before emission, dropping
	// the last-sample artifact that precedes a finger lift
	pending    coords.Delta
	hasPending bool

	// movement blocked by the post-tap cooldown until clear drag intent
	moveBlocked bool

	// disqualifiers for tap classification on lift
	longTapFired bool
	clickFired   bool
	twoFinger    bool
}

// outcome of a finger lift, retained until the peer finger has also
// lifted so that two-finger taps can be judged conjunctively.
type liftRecord struct {
	valid    bool
	eligible bool
}

// clickArm represents the physical click button's relationship to the
// current touch session. pressed is true between the press and release
// edges; armed enables press-jitter absorption and is cancelled by
// movement while pressed stays set.
type clickArm struct {
	pressed   bool
	armed     bool
	startPos  coords.Point
	twoFinger bool
}

// Recognizer converts touchpad samples into tap, long-tap, two-finger
// tap, pan/pinch and movement events. See the package documentation for
// the calling contract.
type Recognizer struct {
	tun  Tuning
	perm logger.Permission

	fingers [numSlots]finger
	lifts   [numSlots]liftRecord
	two     twoFinger
	click   clickArm

	// touch session generation for the primary slot. incremented on
	// every primary touch-down and touch-up, making any previously
	// issued long-tap request stale by construction
	session int

	// whether the pending long-tap is the two-finger variant. decided at
	// touch-down
	longTapTwo bool

	// timestamp of the last successful tap, for the cooldown window
	lastTap time.Time
}

// NewRecognizer is the preferred method of initialisation for the
// Recognizer type. The perm argument gates debug logging of degraded
// input; logger.Allow enables it unconditionally.
func NewRecognizer(tun Tuning, perm logger.Permission) *Recognizer {
	return &Recognizer{
		tun:  tun,
		perm: perm,
	}
}

// String implements the Stringer interface.
func (r *Recognizer) String() string {
	return fmt.Sprintf("touchpad: session=%d primary=%v secondary=%v gesture=%v click=%v",
		r.session, r.fingers[Primary].touching, r.fingers[Secondary].touching,
		r.two.hasCenter, r.click.pressed)
}

// Reset returns the Recognizer to its power-on state. Called on device
// disconnect; the idle sentinel mechanism re-engages.
func (r *Recognizer) Reset() {
	tun := r.tun
	perm := r.perm
	session := r.session
	*r = Recognizer{tun: tun, perm: perm, session: session + 1}
}

// Primary feeds one sample of the primary finger slot.
func (r *Recognizer) Primary(p coords.Point, now time.Time) Emitted {
	return r.sample(Primary, p, now)
}

// Secondary feeds one sample of the secondary finger slot.
func (r *Recognizer) Secondary(p coords.Point, now time.Time) Emitted {
	return r.sample(Secondary, p, now)
}

func (r *Recognizer) sample(slot Slot, p coords.Point, now time.Time) Emitted {
	var em Emitted

	f := &r.fingers[slot]

	if p.InDeadband(r.tun.Deadband) {
		// "no contact" is never an error. repeated no-contact samples
		// after a lift are no-ops
		if f.touching {
			r.lift(slot, now, &em)
		}
		return em
	}

	if !f.touching {
		// idle sentinel: the hardware can report a stale non-zero rest
		// position before the slot has ever been touched. latch it and
		// require a deviation before accepting a touch-down
		if !f.seenTouch {
			if !f.hasSentinel {
				f.sentinel = p
				f.hasSentinel = true
				logger.Logf(r.perm, "touchpad", "%s: sentinel latched at %s", slot, p)
				return em
			}
			if coords.Dist(p, f.sentinel) <= r.tun.SentinelActivation {
				return em
			}
			f.hasSentinel = false
		}
		r.touchDown(slot, p, now, &em)
		return em
	}

	r.touchMove(slot, p, now, &em)
	return em
}

func (r *Recognizer) touchDown(slot Slot, p coords.Point, now time.Time, em *Emitted) {
	f := &r.fingers[slot]
	peer := &r.fingers[1-slot]

	*f = finger{
		touching:  true,
		seenTouch: true,
		pos:       p,
		prevPos:   p,
		startTime: now,
		startPos:  p,
		lastSeen:  now,
		twoFinger: peer.touching,
	}
	r.lifts[slot] = liftRecord{}

	// post-tap cooldown: block movement until clear drag intent
	if !r.lastTap.IsZero() && now.Sub(r.lastTap) < r.tun.TapCooldown {
		f.moveBlocked = true
	}

	if peer.touching {
		// both fingers down: a new two-finger session begins
		peer.twoFinger = true
		r.two = twoFinger{}
	}

	if slot == Primary {
		// incrementing the generation makes any timer belonging to a
		// previous session stale before the new one is requested
		r.session++
		r.longTapTwo = peer.touching
		em.StartLongTap = true
		em.Session = r.session
	}
}

func (r *Recognizer) touchMove(slot Slot, p coords.Point, now time.Time, em *Emitted) {
	f := &r.fingers[slot]

	delta := p.Sub(f.pos)
	f.frames++
	f.lastSeen = now

	if delta.Exceeds(r.tun.JumpThreshold) {
		// sensor artifact, typically a lift glitch or hardware
		// wraparound. the baseline resets to the jump's endpoint and
		// nothing is emitted
		logger.Logf(r.perm, "touchpad", "%s: jump rejected %s", slot, delta)
		f.pos = p
		f.prevPos = p
		f.startPos = p
		f.hasPending = false
		return
	}

	f.prevPos = f.pos
	f.pos = p

	dist := coords.Dist(p, f.startPos)
	if dist > f.maxDist {
		f.maxDist = dist
	}

	// the long-tap movement ceiling is tighter than the tap bound and
	// cancels the timer the instant it is crossed
	if slot == Primary && !f.longTapFired && f.maxDist > r.tun.LongTapMaxMovement {
		em.CancelLongTap = true
	}

	// a stale secondary degrades the session back to single-finger
	// tracking
	if slot == Primary {
		sec := &r.fingers[Secondary]
		if sec.touching && now.Sub(sec.lastSeen) > r.tun.SecondaryStaleness {
			logger.Logf(r.perm, "touchpad", "secondary gone stale; degrading to single finger")
			r.dropSecondary(em)
		}
	}

	if r.fingers[Primary].touching && r.fingers[Secondary].touching {
		r.gestureFrame(em)
	}

	if slot != Primary {
		return
	}

	// movement emission below is for the primary finger only

	if r.click.armed {
		if coords.Dist(p, r.click.startPos) <= r.tun.ClickMovement {
			// absorb click-induced jitter
			f.hasPending = false
			return
		}
		// moved past threshold while armed: arming is cancelled and
		// movement resumes
		r.click.armed = false
	}

	if f.moveBlocked {
		if dist < r.tun.ClickMovement {
			return
		}
		f.moveBlocked = false
	}

	// settle: the first samples after contact are unreliable, and a
	// finger that hasn't moved past the movement threshold within the
	// settle interval is a tap or hold, not a drag
	if f.frames <= r.tun.SettleFrames {
		return
	}
	if now.Sub(f.startTime) < r.tun.SettleInterval && dist < r.tun.ClickMovement {
		return
	}

	// cursor movement is suppressed while a two-finger gesture is being
	// tracked. a delta held from before the gesture engaged is dropped
	// rather than surviving to the first frame after the session degrades
	if r.two.hasCenter {
		f.hasPending = false
		return
	}

	// the accepted delta is held for one frame; the previously held
	// delta is forwarded now
	if f.hasPending {
		em.Events = append(em.Events, event.TouchpadMoved{Delta: f.pending})
	}
	f.pending = delta
	f.hasPending = true
}

func (r *Recognizer) lift(slot Slot, now time.Time, em *Emitted) {
	f := &r.fingers[slot]

	duration := now.Sub(f.startTime)
	eligible := duration < r.tun.TapMaxDuration &&
		f.maxDist < r.tun.TapMaxMovement &&
		!f.longTapFired && !f.clickFired
	wasTwo := f.twoFinger

	if slot == Primary {
		// lift cancels the current session's long-tap unconditionally
		r.session++
		em.CancelLongTap = true
	}

	// two-finger tracking is torn down the instant either finger lifts.
	// a tracked gesture closes with a final zero-delta frame carrying the
	// lifted finger's flag cleared; the accumulated pan/pinch totals
	// survive for tap disqualification
	if r.two.hasCenter {
		em.Events = append(em.Events, event.TouchpadGesture{
			IsPrimaryTouching:   slot != Primary,
			IsSecondaryTouching: slot != Secondary,
		})
	}
	r.two.hasCenter = false

	// reset the slot to neutral. seenTouch survives (the idle sentinel
	// only applies before the first-ever touch) and so does lastSeen,
	// which feeds the click freshness test
	*f = finger{seenTouch: true, lastSeen: now}

	if wasTwo {
		r.lifts[slot] = liftRecord{valid: true, eligible: eligible}
		peer := &r.fingers[1-slot]
		peerLift := &r.lifts[1-slot]
		if !peer.touching && peerLift.valid {
			// both fingers of the session have lifted: judge the
			// two-finger tap conjunctively
			if eligible && peerLift.eligible &&
				r.two.accPan <= r.tun.TwoFingerTapMaxPan &&
				r.two.accPinch <= r.tun.TwoFingerTapMaxPinch {
				em.Events = append(em.Events, event.TouchpadTwoFingerTap{})
				r.lastTap = now
			}
			r.lifts[Primary] = liftRecord{}
			r.lifts[Secondary] = liftRecord{}
			r.two = twoFinger{}
		}
		return
	}

	if slot == Primary && eligible {
		em.Events = append(em.Events, event.TouchpadTap{})
		r.lastTap = now
	}
}

// dropSecondary resets the secondary slot without tap evaluation. used
// when the secondary finger goes stale rather than lifting cleanly. a
// tracked gesture closes with a final frame, as in lift().
func (r *Recognizer) dropSecondary(em *Emitted) {
	if r.two.hasCenter {
		em.Events = append(em.Events, event.TouchpadGesture{
			IsPrimaryTouching: true,
		})
	}
	r.two.hasCenter = false
	r.fingers[Secondary] = finger{
		seenTouch: true,
		lastSeen:  r.fingers[Secondary].lastSeen,
	}
	r.lifts[Secondary] = liftRecord{}
}

// Click feeds a press or release edge of the physical touchpad click
// button.
func (r *Recognizer) Click(pressed bool, now time.Time) Emitted {
	var em Emitted

	if pressed {
		pri := &r.fingers[Primary]
		sec := &r.fingers[Secondary]

		// the single/two-finger decision is taken at press time from the
		// secondary finger's freshness and recorded for the release
		twoFinger := sec.touching ||
			(!sec.lastSeen.IsZero() && now.Sub(sec.lastSeen) <= r.tun.SecondaryStaleness)

		r.click = clickArm{
			pressed:   true,
			armed:     true,
			startPos:  pri.pos,
			twoFinger: twoFinger,
		}

		// a click during a touch always disqualifies that touch from tap
		// detection
		if pri.touching {
			pri.clickFired = true
		}
		if sec.touching {
			sec.clickFired = true
		}

		em.Events = append(em.Events, event.TouchpadClick{TwoFinger: twoFinger})
		return em
	}

	// a release without a matching press edge is degraded input and
	// emits nothing
	if !r.click.pressed {
		return em
	}

	em.Events = append(em.Events, event.TouchpadClickRelease{TwoFinger: r.click.twoFinger})
	r.click = clickArm{}
	return em
}

// FireLongTap delivers an expired long-tap timer back to the Recognizer.
// The session argument is the generation reported when the timer was
// requested; a fire against any other generation is a no-op.
func (r *Recognizer) FireLongTap(session int, now time.Time) Emitted {
	var em Emitted

	if session != r.session {
		logger.Logf(r.perm, "touchpad", "stale long-tap timer (session %d, now %d)", session, r.session)
		return em
	}

	f := &r.fingers[Primary]
	if !f.touching || f.longTapFired || f.maxDist > r.tun.LongTapMaxMovement {
		return em
	}

	// firing suppresses tap detection for the session
	f.longTapFired = true

	if r.longTapTwo {
		em.Events = append(em.Events, event.TouchpadTwoFingerLongTap{})
	} else {
		em.Events = append(em.Events, event.TouchpadLongTap{})
	}
	return em
}
