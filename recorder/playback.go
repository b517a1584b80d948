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

package recorder

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/padpipe/padpipe/curated"
	"github.com/padpipe/padpipe/hardware/controller/coords"
	"github.com/padpipe/padpipe/hardware/controller/motion"
	"github.com/padpipe/padpipe/userinput"
)

type playbackEntry struct {
	offset time.Duration
	ev     userinput.Event

	// the line in the transcript the playback event appears
	line int
}

// Playback replays the user input recorded in a previously written
// transcript.
type Playback struct {
	sequence []playbackEntry
	seqCt    int
}

// NewPlayback is the preferred method of initialisation for the Playback
// type.
func NewPlayback(input io.Reader) (*Playback, error) {
	buffer, err := io.ReadAll(input)
	if err != nil {
		return nil, curated.Errorf("playback: %v", err)
	}

	lines := strings.Split(string(buffer), "\n")
	if len(lines) < numHeaderLines {
		return nil, curated.Errorf("playback: transcript too short")
	}
	if lines[lineMagic] != magic {
		return nil, curated.Errorf("playback: not a padpipe recording")
	}
	if lines[lineVersion] != version {
		return nil, curated.Errorf("playback: unsupported version (%s)", lines[lineVersion])
	}

	plb := &Playback{
		sequence: make([]playbackEntry, 0),
	}

	for i := numHeaderLines; i < len(lines); i++ {
		if strings.TrimSpace(lines[i]) == "" {
			continue
		}

		toks := strings.Split(lines[i], fieldSep)
		if len(toks) < fieldArgs {
			return nil, curated.Errorf("playback: expected at least %d fields at line %d", fieldArgs, i+1)
		}

		entry := playbackEntry{line: i + 1}

		ms, err := strconv.Atoi(toks[fieldOffset])
		if err != nil {
			return nil, curated.Errorf("playback: %v at line %d", err, i+1)
		}
		entry.offset = time.Duration(ms) * time.Millisecond

		entry.ev, err = parseEntry(toks[fieldKind], toks[fieldArgs:])
		if err != nil {
			return nil, curated.Errorf("playback: %v at line %d", err, i+1)
		}

		plb.sequence = append(plb.sequence, entry)
	}

	return plb, nil
}

func parseEntry(kind string, args []string) (userinput.Event, error) {
	switch kind {
	case kindTouch:
		if len(args) != 3 {
			return nil, curated.Errorf("expected 3 touch arguments")
		}
		slot, err := strconv.Atoi(args[0])
		if err != nil {
			return nil, curated.Errorf("%v", err)
		}
		x, err := strconv.ParseFloat(args[1], 64)
		if err != nil {
			return nil, curated.Errorf("%v", err)
		}
		y, err := strconv.ParseFloat(args[2], 64)
		if err != nil {
			return nil, curated.Errorf("%v", err)
		}
		return userinput.EventTouch{
			Slot: userinput.TouchSlot(slot),
			Pos:  coords.Point{X: x, Y: y},
		}, nil

	case kindClick:
		if len(args) != 1 {
			return nil, curated.Errorf("expected 1 click argument")
		}
		down, err := parseEdge(args[0])
		if err != nil {
			return nil, err
		}
		return userinput.EventTouchClick{Down: down}, nil

	case kindButton:
		if len(args) != 2 {
			return nil, curated.Errorf("expected 2 button arguments")
		}
		b, err := parseButton(args[0])
		if err != nil {
			return nil, err
		}
		down, err := parseEdge(args[1])
		if err != nil {
			return nil, err
		}
		return userinput.EventButton{Button: b, Down: down}, nil

	case kindGyro:
		if len(args) != 2 {
			return nil, curated.Errorf("expected 2 gyro arguments")
		}
		pitch, err := strconv.ParseFloat(args[0], 64)
		if err != nil {
			return nil, curated.Errorf("%v", err)
		}
		yaw, err := strconv.ParseFloat(args[1], 64)
		if err != nil {
			return nil, curated.Errorf("%v", err)
		}
		return userinput.EventGyro{
			Velocity: motion.Velocity{Pitch: pitch, Yaw: yaw},
		}, nil

	case kindDisconnect:
		return userinput.EventDisconnect{}, nil
	}

	return nil, curated.Errorf("unrecognised entry kind (%s)", kind)
}

// String implements the Stringer interface.
func (plb *Playback) String() string {
	return fmt.Sprintf("%d/%d", plb.seqCt, len(plb.sequence))
}

// Next returns the next event in the sequence along with its offset from
// the start of the recording. Returns false once the sequence is
// exhausted.
func (plb *Playback) Next() (userinput.Event, time.Duration, bool) {
	if plb.seqCt >= len(plb.sequence) {
		return nil, 0, false
	}
	entry := plb.sequence[plb.seqCt]
	plb.seqCt++
	return entry.ev, entry.offset, true
}
