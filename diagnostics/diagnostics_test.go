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

package diagnostics_test

import (
	"strings"
	"testing"

	"github.com/padpipe/padpipe/diagnostics"
	"github.com/padpipe/padpipe/test"
)

func TestWriteDot(t *testing.T) {
	type inner struct {
		N int
	}
	type outer struct {
		Label string
		In    *inner
	}

	v := &outer{Label: "pipeline", In: &inner{N: 1}}

	var b strings.Builder
	diagnostics.WriteDot(&b, v)

	test.Equate(t, strings.HasPrefix(b.String(), "digraph structs {"), true)
	test.Equate(t, strings.Contains(b.String(), "pipeline"), true)
}
