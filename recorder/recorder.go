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

// Package recorder writes the raw input stream to a plain text
// transcript and plays it back. Playback feeds the same userinput
// events, at the same relative times, that the device produced when the
// transcript was made, making classification sessions reproducible.
package recorder

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/padpipe/padpipe/curated"
	"github.com/padpipe/padpipe/hardware/controller/event"
	"github.com/padpipe/padpipe/userinput"
)

// Recorder transcribes userinput events as they arrive.
type Recorder struct {
	output io.Writer
	start  time.Time

	// replaced in tests
	clock func() time.Time
}

// NewRecorder is the preferred method of initialisation for the Recorder
// type. The header is written immediately.
func NewRecorder(output io.Writer) (*Recorder, error) {
	rec := &Recorder{
		output: output,
		clock:  time.Now,
	}
	rec.start = rec.clock()

	header := fmt.Sprintf("%s\n%s\n", magic, version)
	n, err := io.WriteString(output, header)
	if err != nil {
		return nil, curated.Errorf("recording: %v", err)
	}
	if n != len(header) {
		return nil, curated.Errorf("recording: output truncated")
	}

	return rec, nil
}

// RecordEvent transcribes a single userinput event. Quit events and
// events of unknown type are silently dropped.
func (rec *Recorder) RecordEvent(ev userinput.Event) error {
	offset := rec.clock().Sub(rec.start).Milliseconds()

	var line string

	switch ev := ev.(type) {
	case userinput.EventTouch:
		line = fmt.Sprintf("%d%s%s%s%d%s%f%s%f\n",
			offset, fieldSep, kindTouch, fieldSep, int(ev.Slot), fieldSep, ev.Pos.X, fieldSep, ev.Pos.Y)
	case userinput.EventTouchClick:
		line = fmt.Sprintf("%d%s%s%s%s\n", offset, fieldSep, kindClick, fieldSep, edge(ev.Down))
	case userinput.EventButton:
		line = fmt.Sprintf("%d%s%s%s%s%s%s\n",
			offset, fieldSep, kindButton, fieldSep, string(ev.Button), fieldSep, edge(ev.Down))
	case userinput.EventGyro:
		line = fmt.Sprintf("%d%s%s%s%f%s%f\n",
			offset, fieldSep, kindGyro, fieldSep, ev.Velocity.Pitch, fieldSep, ev.Velocity.Yaw)
	case userinput.EventDisconnect:
		line = fmt.Sprintf("%d%s%s\n", offset, fieldSep, kindDisconnect)
	default:
		return nil
	}

	n, err := io.WriteString(rec.output, line)
	if err != nil {
		return curated.Errorf("recording: %v", err)
	}
	if n != len(line) {
		return curated.Errorf("recording: output truncated")
	}

	return nil
}

func edge(down bool) string {
	if down {
		return "down"
	}
	return "up"
}

// used by playback when parsing edge fields.
func parseEdge(s string) (bool, error) {
	switch strings.TrimSpace(s) {
	case "down":
		return true, nil
	case "up":
		return false, nil
	}
	return false, curated.Errorf("unrecognised edge (%s)", s)
}

// parseButton checks a button name against the defined set.
func parseButton(s string) (event.Button, error) {
	for _, b := range []event.Button{
		event.ButtonA, event.ButtonB, event.ButtonX, event.ButtonY,
		event.LeftBumper, event.RightBumper,
		event.Back, event.Start, event.Guide,
		event.LeftStick, event.RightStick,
		event.DPadUp, event.DPadDown, event.DPadLeft, event.DPadRight,
		event.TouchClick,
	} {
		if s == string(b) {
			return b, nil
		}
	}
	return event.NoButton, curated.Errorf("unrecognised button (%s)", s)
}
