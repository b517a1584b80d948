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

// Package ansi defines ANSI control codes for styles and colours.
package ansi

import "fmt"

// ansi color.
const (
	colBlack   = 0
	colRed     = 1
	colGreen   = 2
	colYellow  = 3
	colBlue    = 4
	colMagenta = 5
	colCyan    = 6
	colWhite   = 7
)

// ansi target.
const (
	targetPen   = 3
	targetPaper = 4
)

// NormalPen is the CSI sequence for regular text.
const NormalPen = "\033[0m"

// Pens is the table of bright colors to be used for text.
var Pens map[string]string

// DimPens is the table of regular colors to be used for text.
var DimPens map[string]string

func init() {
	colors := map[string]int{
		"black":   colBlack,
		"red":     colRed,
		"green":   colGreen,
		"yellow":  colYellow,
		"blue":    colBlue,
		"magenta": colMagenta,
		"cyan":    colCyan,
		"white":   colWhite,
	}

	Pens = make(map[string]string)
	DimPens = make(map[string]string)
	for name, col := range colors {
		Pens[name] = fmt.Sprintf("\033[%d%d;1m", targetPen, col)
		DimPens[name] = fmt.Sprintf("\033[%d%dm", targetPen, col)
	}
}
