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

// Package curated is the error type used throughout PadPipe. A curated
// error is created with a pattern string rather than a format string:
//
//	curated.Errorf("sdlpad: %v", err)
//
// The pattern acts as the error's identity. Whether an error is of a
// particular kind can be checked with the Is() and Has() functions,
// comparing against the same pattern constant that created it. Packages
// that return identifiable errors declare the pattern as an exported
// string constant.
//
// Message chains are de-duplicated when the error is stringified, so
// wrapping an error with the same leading part does not stutter.
package curated
