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

// Package coords represents positions and movements on the touchpad plane.
//
// Touchpad positions are normalised to the range [-1, 1] on both axes with
// (0, 0) meaning "no contact". The distinction between a Point (a position)
// and a Delta (a movement between two positions) is maintained throughout
// the classification pipeline.
package coords

import (
	"fmt"
	"math"
)

// Point is a position on the touchpad plane.
type Point struct {
	X float64
	Y float64
}

// Delta is a movement between two points on the touchpad plane.
type Delta struct {
	X float64
	Y float64
}

func (p Point) String() string {
	return fmt.Sprintf("(%.3f, %.3f)", p.X, p.Y)
}

func (d Delta) String() string {
	return fmt.Sprintf("(%+.3f, %+.3f)", d.X, d.Y)
}

// Sub returns the Delta that moves q to p.
func (p Point) Sub(q Point) Delta {
	return Delta{X: p.X - q.X, Y: p.Y - q.Y}
}

// Dist returns the euclidian distance between two points.
func Dist(p Point, q Point) float64 {
	dx := p.X - q.X
	dy := p.Y - q.Y
	return math.Sqrt(dx*dx + dy*dy)
}

// Mid returns the midpoint of two points.
func Mid(p Point, q Point) Point {
	return Point{X: (p.X + q.X) / 2, Y: (p.Y + q.Y) / 2}
}

// Mag returns the magnitude of the delta.
func (d Delta) Mag() float64 {
	return math.Sqrt(d.X*d.X + d.Y*d.Y)
}

// InDeadband is true if both axes of the point are within the supplied
// deadband. a point inside the deadband means "no contact".
func (p Point) InDeadband(deadband float64) bool {
	return math.Abs(p.X) <= deadband && math.Abs(p.Y) <= deadband
}

// Exceeds is true if either axis of the delta is larger in magnitude than
// the supplied limit.
func (d Delta) Exceeds(limit float64) bool {
	return math.Abs(d.X) > limit || math.Abs(d.Y) > limit
}
