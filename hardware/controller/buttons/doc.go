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

// Package buttons classifies button press/release edges into taps,
// long-holds, double-taps and chords.
//
// Every press opens (or joins) a chord candidate. While the candidate is
// open, press events for its members are withheld. The candidate resolves
// at the end of the chord window: with two or more members still down it
// confirms as a Chord and consumes every edge of its members; otherwise
// it degrades and the withheld events are issued as if the candidate had
// never existed. A candidate whose members all release while it is still
// open confirms early.
//
// Like the touchpad Recognizer, the Classifier is a pure state machine:
// the current time is an argument on every input and deferred work is
// requested through the Result value as TimerRequests, each carrying a
// generation. A fire against a stale generation is a no-op.
//
// The Classifier is not safe for concurrent use.
package buttons
