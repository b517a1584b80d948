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

// Package monitor is a colour terminal consumer for the classified event
// stream. Every event is printed as it arrives, coloured by category, so
// that classifier tuning can be judged by eye against the physical
// device.
package monitor

import (
	"fmt"
	"os"
	"sync"

	"github.com/pkg/term/termios"
	"golang.org/x/sys/unix"

	"github.com/padpipe/padpipe/hardware/controller/event"
	"github.com/padpipe/padpipe/monitor/ansi"
)

// Monitor is a posix terminal printing the event stream. It satisfies
// the controller.Sink function type through its Sink method.
type Monitor struct {
	input  *os.File
	output *os.File

	canAttr    unix.Termios
	cbreakAttr unix.Termios

	// Sink is called from the input service goroutines
	crit sync.Mutex
}

// NewMonitor is the preferred method of initialisation for the Monitor
// type.
func NewMonitor(input *os.File, output *os.File) (*Monitor, error) {
	m := &Monitor{
		input:  input,
		output: output,
	}

	if err := termios.Tcgetattr(input.Fd(), &m.canAttr); err != nil {
		return nil, err
	}
	m.cbreakAttr = m.canAttr
	termios.Cfmakecbreak(&m.cbreakAttr)

	return m, nil
}

// CBreakMode puts the terminal into cbreak mode, allowing single
// keypresses to be read without echo.
func (m *Monitor) CBreakMode() error {
	return termios.Tcsetattr(m.input.Fd(), termios.TCIFLUSH, &m.cbreakAttr)
}

// CanonicalMode puts the terminal back into normal, everyday canonical
// mode.
func (m *Monitor) CanonicalMode() error {
	return termios.Tcsetattr(m.input.Fd(), termios.TCIFLUSH, &m.canAttr)
}

// pen chooses the colour for an event by category.
func pen(ev event.Event) string {
	switch ev.(type) {
	case event.TouchpadTap, event.TouchpadTwoFingerTap,
		event.TouchpadLongTap, event.TouchpadTwoFingerLongTap:
		return ansi.Pens["green"]
	case event.TouchpadMoved, event.TouchpadGesture:
		return ansi.DimPens["cyan"]
	case event.TouchpadClick, event.TouchpadClickRelease:
		return ansi.Pens["cyan"]
	case event.ButtonPressed, event.ButtonReleased:
		return ansi.DimPens["yellow"]
	case event.ButtonTap, event.ButtonLongHold, event.ButtonDoubleTap:
		return ansi.Pens["yellow"]
	case event.Chord:
		return ansi.Pens["magenta"]
	case event.MotionGesture:
		return ansi.Pens["blue"]
	}
	return ansi.NormalPen
}

// Sink prints one event. Safe for concurrent use.
func (m *Monitor) Sink(ev event.Event) {
	s, ok := ev.(fmt.Stringer)
	if !ok {
		return
	}

	m.crit.Lock()
	defer m.crit.Unlock()
	m.output.WriteString(fmt.Sprintf("%s%s%s\n", pen(ev), s.String(), ansi.NormalPen))
}

// Service reads keypresses until the user asks to quit, then sends on
// the quit channel. Intended to be run in its own goroutine while the
// terminal is in cbreak mode.
func (m *Monitor) Service(quit chan<- bool) {
	b := make([]byte, 1)
	for {
		n, err := m.input.Read(b)
		if err != nil {
			quit <- true
			return
		}
		if n == 1 && (b[0] == 'q' || b[0] == 3) {
			quit <- true
			return
		}
	}
}
