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

package modalflag_test

import (
	"testing"

	"github.com/padpipe/padpipe/modalflag"
	"github.com/padpipe/padpipe/test"
)

func TestDefaultSubMode(t *testing.T) {
	md := modalflag.Modes{}
	md.NewArgs([]string{})
	md.AddSubModes("run", "replay", "version")

	r, err := md.Parse()
	test.ExpectedSuccess(t, err)
	test.Equate(t, int(r), int(modalflag.ParseContinue))
	test.Equate(t, md.Mode(), "RUN")
}

func TestSelectedSubMode(t *testing.T) {
	md := modalflag.Modes{}
	md.NewArgs([]string{"replay", "transcript.txt"})
	md.AddSubModes("run", "replay", "version")

	r, err := md.Parse()
	test.ExpectedSuccess(t, err)
	test.Equate(t, int(r), int(modalflag.ParseContinue))
	test.Equate(t, md.Mode(), "REPLAY")

	// mode-specific arguments remain after the sub-mode is consumed
	md.NewMode()
	r, err = md.Parse()
	test.ExpectedSuccess(t, err)
	test.Equate(t, int(r), int(modalflag.ParseContinue))
	test.Equate(t, len(md.RemainingArgs()), 1)
	test.Equate(t, md.GetArg(0), "transcript.txt")
}

func TestModeFlags(t *testing.T) {
	md := modalflag.Modes{}
	md.NewArgs([]string{"run", "-record", "-transcript", "out.txt"})
	md.AddSubModes("run", "replay", "version")

	r, err := md.Parse()
	test.ExpectedSuccess(t, err)
	test.Equate(t, int(r), int(modalflag.ParseContinue))
	test.Equate(t, md.Mode(), "RUN")

	md.NewMode()
	record := md.AddBool("record", false, "record the input stream")
	transcript := md.AddString("transcript", "", "transcript file")

	r, err = md.Parse()
	test.ExpectedSuccess(t, err)
	test.Equate(t, int(r), int(modalflag.ParseContinue))
	test.Equate(t, *record, true)
	test.Equate(t, *transcript, "out.txt")
}

func TestUnrecognisedFlag(t *testing.T) {
	md := modalflag.Modes{}
	md.NewArgs([]string{"-no-such-flag"})

	r, err := md.Parse()
	test.ExpectedFailure(t, err)
	test.Equate(t, int(r), int(modalflag.ParseError))
}

func TestPath(t *testing.T) {
	md := modalflag.Modes{}
	md.NewArgs([]string{"run"})
	md.AddSubModes("run", "replay")

	_, err := md.Parse()
	test.ExpectedSuccess(t, err)
	test.Equate(t, md.Path(), "RUN")
}
