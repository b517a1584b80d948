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

// Package diagnostics renders the object graph of a running pipeline in
// graphviz dot format. Useful when chasing state that the logger alone
// cannot show, such as a classifier stuck mid-gesture.
package diagnostics

import (
	"io"
	"os"

	"github.com/bradleyjkemp/memviz"

	"github.com/padpipe/padpipe/curated"
)

// WriteDot writes the object graph reachable from value to the supplied
// io.Writer in graphviz dot format.
func WriteDot(output io.Writer, value interface{}) {
	memviz.Map(output, value)
}

// DumpFile writes the object graph reachable from value to the named
// file. An existing file is overwritten.
func DumpFile(filename string, value interface{}) error {
	f, err := os.Create(filename)
	if err != nil {
		return curated.Errorf("diagnostics: %v", err)
	}
	defer f.Close()

	WriteDot(f, value)

	return nil
}
