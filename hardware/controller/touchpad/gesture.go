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
	"github.com/padpipe/padpipe/hardware/controller/coords"
	"github.com/padpipe/padpipe/hardware/controller/event"
)

// twoFinger tracks the centroid and finger separation while both fingers
// are on the surface. hasCenter is false until the baseline frame has
// been taken; the accumulated pan/pinch totals outlive the tracking
// itself and are consulted when a two-finger tap is judged.
type twoFinger struct {
	hasCenter  bool
	center     coords.Point
	separation float64

	accPan   float64
	accPinch float64
}

// gestureFrame is called once per sample while both fingers are down. It
// emits a TouchpadGesture event carrying the frame-to-frame centroid and
// separation deltas. The first frame establishes the baseline and emits
// zero deltas so that downstream consumers see the gesture begin without
// a spurious initial movement.
func (r *Recognizer) gestureFrame(em *Emitted) {
	pri := &r.fingers[Primary]
	sec := &r.fingers[Secondary]

	center := coords.Mid(pri.pos, sec.pos)
	separation := coords.Dist(pri.pos, sec.pos)

	if separation < r.tun.TwoFingerMinSeparation {
		// fingers too close to distinguish; treat as not yet a gesture.
		// an established baseline is dropped so that it is re-taken when
		// the fingers part again
		r.two.hasCenter = false
		return
	}

	if !r.two.hasCenter {
		r.two.hasCenter = true
		r.two.center = center
		r.two.separation = separation
		em.Events = append(em.Events, event.TouchpadGesture{
			IsPrimaryTouching:   true,
			IsSecondaryTouching: true,
		})
		return
	}

	centerDelta := center.Sub(r.two.center)
	distanceDelta := separation - r.two.separation
	r.two.center = center
	r.two.separation = separation

	r.two.accPan += centerDelta.Mag()
	if distanceDelta < 0 {
		r.two.accPinch -= distanceDelta
	} else {
		r.two.accPinch += distanceDelta
	}

	em.Events = append(em.Events, event.TouchpadGesture{
		CenterDelta:         centerDelta,
		DistanceDelta:       distanceDelta,
		IsPrimaryTouching:   true,
		IsSecondaryTouching: true,
	})
}
