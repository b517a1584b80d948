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

// Package touchpad classifies raw touchpad samples into taps, long-taps,
// two-finger taps, pan/pinch gestures and continuous movement deltas.
//
// The Recognizer is a pure state machine. It takes the current time as an
// argument on every input, never starts timers of its own and never
// invokes callbacks. Deferred work (the long-tap timer) is requested
// through the Emitted return value and delivered back to the Recognizer
// by the caller with FireLongTap(). The request carries the touch session
// generation it was made for; a fire against a stale generation is a
// no-op.
//
// The Recognizer is not safe for concurrent use. The controller session
// serialises access with its own critical section.
package touchpad
