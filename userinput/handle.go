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

package userinput

func touch(ev EventTouch, handle HandleInput) {
	switch ev.Slot {
	case TouchPrimary:
		handle.PrimaryTouch(ev.Pos)
	case TouchSecondary:
		handle.SecondaryTouch(ev.Pos)
	}
}

func button(ev EventButton, handle HandleInput) {
	if ev.Down {
		handle.ButtonPress(ev.Button)
	} else {
		handle.ButtonRelease(ev.Button)
	}
}

// HandleUserInput deciphers the Event and forwards the input to the
// classification pipeline. Returns true if event is a Quit event and
// false otherwise.
func HandleUserInput(ev Event, handle HandleInput) bool {
	switch ev := ev.(type) {
	case EventQuit:
		return true
	case EventTouch:
		touch(ev, handle)
	case EventTouchClick:
		handle.TouchClick(ev.Down)
	case EventButton:
		button(ev, handle)
	case EventGyro:
		handle.Motion(ev.Velocity)
	case EventDisconnect:
		handle.Unplug()
	default:
	}

	return false
}
