/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package vector

import "github.com/google/uuid"

// Kind tags the concrete shape behind a Node.
type Kind string

const (
	KindRect Kind = "rect"
)

// Node is a scene item with a uniform geometry capability. Snapping and
// selection only ever go through this interface, so new shape kinds plug in
// without touching them.
type Node interface {
	ID() string
	Kind() Kind
	// Position is the absolute canvas position of the node origin.
	Position() Pt
	SetPosition(Pt)
	Size() Size
	// Bounds is the visual bounding box in canvas space.
	Bounds() Rect
	Fill() Color
	SetFill(Color)
	Draggable() bool
	Hit(p Pt) bool
	// Clone returns a detached deep copy with a fresh identity.
	Clone() Node
}

type baseNode struct {
	id        string
	pos       Pt
	fill      Color
	draggable bool
}

func (b *baseNode) ID() string       { return b.id }
func (b *baseNode) Position() Pt     { return b.pos }
func (b *baseNode) SetPosition(p Pt) { b.pos = p }
func (b *baseNode) Fill() Color      { return b.fill }
func (b *baseNode) SetFill(c Color)  { b.fill = c }
func (b *baseNode) Draggable() bool  { return b.draggable }

// SetDraggable locks (false) or unlocks the node for dragging and selection.
func (b *baseNode) SetDraggable(v bool) { b.draggable = v }

func newBase(pos Pt, fill Color) baseNode {
	return baseNode{id: uuid.NewString(), pos: pos, fill: fill, draggable: true}
}

// RectNode is an axis-aligned, draggable rectangle.
type RectNode struct {
	baseNode
	size Size
}

// NewRect creates a draggable rectangle occupying r.
func NewRect(r Rect, fill Color) *RectNode {
	return &RectNode{baseNode: newBase(r.Min(), fill), size: Size{W: r.W, H: r.H}}
}

func (n *RectNode) Kind() Kind { return KindRect }
func (n *RectNode) Size() Size { return n.size }

func (n *RectNode) Bounds() Rect {
	return Rect{X: n.pos.X, Y: n.pos.Y, W: n.size.W, H: n.size.H}
}

func (n *RectNode) Hit(p Pt) bool { return n.Bounds().Contains(p) }

func (n *RectNode) Clone() Node {
	c := *n
	c.id = uuid.NewString()
	return &c
}
