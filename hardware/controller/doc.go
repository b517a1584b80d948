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

// Package controller is the session layer of the classification
// pipeline. It owns the single critical section, the wall clock and the
// timers; the classifiers underneath it (packages touchpad, buttons and
// motion) are pure state machines that never block and never call out.
//
// Classification happens inside the critical section. Delivery to the
// attached sink happens outside it: emitted events are captured, the
// lock is released, and only then is the sink invoked. A sink is
// therefore free to feed input back into the Controller.
//
// Timer expiries re-enter the pipeline through the same critical
// section. Every timer request carries a generation; an expiry whose
// generation no longer matches the classifier state is a no-op, so a
// timer that fires while its session is being torn down does no harm.
package controller
