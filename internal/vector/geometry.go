/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package vector

// Basic 2D geometry in canvas space.
// Float values use float32 to line up with the fyne toolkit coordinates.

import "math"

// Pt is a 2D point.
type Pt struct{ X, Y float32 }

func (p Pt) Add(o Pt) Pt { return Pt{p.X + o.X, p.Y + o.Y} }
func (p Pt) Sub(o Pt) Pt { return Pt{p.X - o.X, p.Y - o.Y} }

// Size is a width/height pair.
type Size struct{ W, H float32 }

// Rect is an axis-aligned rectangle defined by min corner and size.
type Rect struct {
	X, Y float32
	W, H float32
}

func R(x, y, w, h float32) Rect { return Rect{X: x, Y: y, W: w, H: h} }

// RectFromPoints returns the normalized rectangle spanned by two corners,
// whatever direction they were dragged in.
func RectFromPoints(a, b Pt) Rect {
	return Rect{
		X: min(a.X, b.X),
		Y: min(a.Y, b.Y),
		W: float32(math.Abs(float64(b.X - a.X))),
		H: float32(math.Abs(float64(b.Y - a.Y))),
	}
}

func (r Rect) Min() Pt { return Pt{r.X, r.Y} }
func (r Rect) Max() Pt { return Pt{r.X + r.W, r.Y + r.H} }

func (r Rect) Contains(p Pt) bool {
	return p.X >= r.X && p.Y >= r.Y && p.X <= r.X+r.W && p.Y <= r.Y+r.H
}

// Intersects reports whether the two rectangles overlap. Touching edges count.
func (r Rect) Intersects(o Rect) bool {
	return !(o.X > r.X+r.W || o.X+o.W < r.X || o.Y > r.Y+r.H || o.Y+o.H < r.Y)
}

// Union returns the minimal rect containing both.
func (r Rect) Union(o Rect) Rect {
	minX := min(r.X, o.X)
	minY := min(r.Y, o.Y)
	maxX := max(r.X+r.W, o.X+o.W)
	maxY := max(r.Y+r.H, o.Y+o.H)
	return Rect{X: minX, Y: minY, W: maxX - minX, H: maxY - minY}
}

// Axis names the direction a guide line runs in.
// A vertical guide is a constant x, so it aligns x-axis edges; a horizontal
// guide is a constant y.
type Axis uint8

const (
	Vertical Axis = iota
	Horizontal
)

// Axes lists both axes in reporting order.
var Axes = [2]Axis{Vertical, Horizontal}

func (a Axis) String() string {
	if a == Horizontal {
		return "horizontal"
	}
	return "vertical"
}

// Of returns the coordinate of p along the axis.
func (a Axis) Of(p Pt) float32 {
	if a == Horizontal {
		return p.Y
	}
	return p.X
}

// Set returns p with the coordinate along the axis replaced by v.
func (a Axis) Set(p Pt, v float32) Pt {
	if a == Horizontal {
		p.Y = v
	} else {
		p.X = v
	}
	return p
}

// Length returns the canvas extent along the axis.
func (a Axis) Length(s Size) float32 {
	if a == Horizontal {
		return s.H
	}
	return s.W
}

// AxisExtent is the start, center and end of a rect along one axis.
type AxisExtent struct {
	Start, Center, End float32
}

// ExtentOf derives the extent of r along axis.
func ExtentOf(r Rect, axis Axis) AxisExtent {
	origin, length := r.X, r.W
	if axis == Horizontal {
		origin, length = r.Y, r.H
	}
	return AxisExtent{Start: origin, Center: origin + length/2, End: origin + length}
}
