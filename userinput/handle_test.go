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

package userinput_test

import (
	"testing"

	"github.com/padpipe/padpipe/hardware/controller/coords"
	"github.com/padpipe/padpipe/hardware/controller/event"
	"github.com/padpipe/padpipe/hardware/controller/motion"
	"github.com/padpipe/padpipe/test"
	"github.com/padpipe/padpipe/userinput"
)

// mockHandle records the pipeline calls made by HandleUserInput.
type mockHandle struct {
	calls []string
}

func (m *mockHandle) PrimaryTouch(p coords.Point) {
	m.calls = append(m.calls, "primary")
}

func (m *mockHandle) SecondaryTouch(p coords.Point) {
	m.calls = append(m.calls, "secondary")
}

func (m *mockHandle) TouchClick(pressed bool) {
	if pressed {
		m.calls = append(m.calls, "click down")
	} else {
		m.calls = append(m.calls, "click up")
	}
}

func (m *mockHandle) ButtonPress(b event.Button) {
	m.calls = append(m.calls, "press "+string(b))
}

func (m *mockHandle) ButtonRelease(b event.Button) {
	m.calls = append(m.calls, "release "+string(b))
}

func (m *mockHandle) Motion(v motion.Velocity) {
	m.calls = append(m.calls, "motion")
}

func (m *mockHandle) Unplug() {
	m.calls = append(m.calls, "unplug")
}

func TestRouting(t *testing.T) {
	m := &mockHandle{}

	quit := userinput.HandleUserInput(userinput.EventTouch{Slot: userinput.TouchPrimary}, m)
	test.Equate(t, quit, false)
	quit = userinput.HandleUserInput(userinput.EventTouch{Slot: userinput.TouchSecondary}, m)
	test.Equate(t, quit, false)
	userinput.HandleUserInput(userinput.EventTouchClick{Down: true}, m)
	userinput.HandleUserInput(userinput.EventButton{Button: event.ButtonA, Down: true}, m)
	userinput.HandleUserInput(userinput.EventButton{Button: event.ButtonA, Down: false}, m)
	userinput.HandleUserInput(userinput.EventGyro{}, m)
	userinput.HandleUserInput(userinput.EventDisconnect{}, m)

	test.Equate(t, len(m.calls), 7)
	test.Equate(t, m.calls[0], "primary")
	test.Equate(t, m.calls[1], "secondary")
	test.Equate(t, m.calls[2], "click down")
	test.Equate(t, m.calls[3], "press A")
	test.Equate(t, m.calls[4], "release A")
	test.Equate(t, m.calls[5], "motion")
	test.Equate(t, m.calls[6], "unplug")
}

func TestQuit(t *testing.T) {
	m := &mockHandle{}

	quit := userinput.HandleUserInput(userinput.EventQuit{}, m)
	test.Equate(t, quit, true)
	test.Equate(t, len(m.calls), 0)
}

func TestUnknownEventIgnored(t *testing.T) {
	m := &mockHandle{}

	quit := userinput.HandleUserInput(struct{}{}, m)
	test.Equate(t, quit, false)
	test.Equate(t, len(m.calls), 0)
}
