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

// transcript line format
// ----------------------
//
// <offset ms>, <kind>, <arguments>
//
// the arguments depend on the kind:
//
//	touch       <slot>, <x>, <y>
//	click       down|up
//	button      <name>, down|up
//	gyro        <pitch>, <yaw>
//	disconnect  (no arguments)

const (
	fieldOffset int = iota
	fieldKind
	fieldArgs
)

const fieldSep = ", "

const (
	kindTouch      = "touch"
	kindClick      = "click"
	kindButton     = "button"
	kindGyro       = "gyro"
	kindDisconnect = "disconnect"
)

// transcript file header format
// -----------------------------
//
// # padpipe recording
// # <version>

const (
	lineMagic int = iota
	lineVersion
	numHeaderLines
)

const (
	magic   = "# padpipe recording"
	version = "# v1.0"
)
