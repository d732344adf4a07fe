/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package editor

import (
	"log/slog"
	"slices"

	"snapedit/internal/scene"
	"snapedit/internal/vector"
)

// Selectable reports whether n is of the draggable kind that click, rubber
// band and select-all operate on.
func Selectable(n vector.Node) bool {
	return n != nil && n.Kind() == vector.KindRect && n.Draggable()
}

// RubberBand is the drag-select rectangle. X1/Y1 is the gesture origin and
// X2/Y2 the current pointer position.
type RubberBand struct {
	X1, Y1, X2, Y2 float32
	Visible        bool
}

// Rect returns the normalized band rectangle.
func (b RubberBand) Rect() vector.Rect {
	return vector.RectFromPoints(vector.Pt{X: b.X1, Y: b.Y1}, vector.Pt{X: b.X2, Y: b.Y2})
}

// SelectionController owns the active selection and the rubber-band gesture
// (Idle -> Active -> Idle). The selection is ordered by selection time and
// never holds the same node twice.
type SelectionController struct {
	nodes []vector.Node
	band  RubberBand
	// suppressClick is armed when a rubber band completes; the click that the
	// platform delivers right after pointer-up consumes it.
	suppressClick bool
	log           *slog.Logger
}

func NewSelectionController(l *slog.Logger) *SelectionController {
	if l == nil {
		l = slog.Default()
	}
	return &SelectionController{log: l}
}

// Nodes returns the selection in selection order. The slice is a copy.
func (c *SelectionController) Nodes() []vector.Node   { return slices.Clone(c.nodes) }
func (c *SelectionController) Len() int               { return len(c.nodes) }
func (c *SelectionController) RubberBand() RubberBand { return c.band }

func (c *SelectionController) Contains(n vector.Node) bool { return c.index(n) >= 0 }

// Set replaces the selection. Duplicates and nil nodes are dropped, keeping
// the first occurrence.
func (c *SelectionController) Set(nodes ...vector.Node) {
	out := make([]vector.Node, 0, len(nodes))
	seen := make(map[string]struct{}, len(nodes))
	for _, n := range nodes {
		if n == nil {
			continue
		}
		if _, dup := seen[n.ID()]; dup {
			continue
		}
		seen[n.ID()] = struct{}{}
		out = append(out, n)
	}
	c.nodes = out
}

func (c *SelectionController) Clear() { c.nodes = nil }

// Remove drops n from the selection, keeping the order of the rest.
func (c *SelectionController) Remove(n vector.Node) bool {
	i := c.index(n)
	if i < 0 {
		return false
	}
	c.nodes = slices.Delete(c.nodes, i, i+1)
	return true
}

func (c *SelectionController) index(n vector.Node) int {
	if n == nil {
		return -1
	}
	return slices.IndexFunc(c.nodes, func(o vector.Node) bool { return o.ID() == n.ID() })
}

// StartRubberBand begins a drag-select at p with a zero-size band. Callers
// only start one when the pointer went down on empty canvas.
func (c *SelectionController) StartRubberBand(p vector.Pt) {
	c.suppressClick = false
	c.band = RubberBand{X1: p.X, Y1: p.Y, X2: p.X, Y2: p.Y, Visible: true}
}

// UpdateRubberBand moves the band's free corner to p.
func (c *SelectionController) UpdateRubberBand(p vector.Pt) {
	if !c.band.Visible {
		return
	}
	c.band.X2, c.band.Y2 = p.X, p.Y
}

// EndRubberBand hides the band and selects exactly the selectable nodes of sc
// whose bounds intersect it, in scene order. The next click is swallowed.
func (c *SelectionController) EndRubberBand(sc *scene.Scene) {
	if !c.band.Visible {
		return
	}
	box := c.band.Rect()
	c.band.Visible = false
	c.suppressClick = true
	c.Set(sc.Intersecting(box, Selectable)...)
	c.log.Debug("rubber band selection", slog.Int("selected", len(c.nodes)),
		slog.Float64("w", float64(box.W)), slog.Float64("h", float64(box.H)))
}

// PendingClickSuppressed reports whether the next click will be ignored.
func (c *SelectionController) PendingClickSuppressed() bool { return c.suppressClick }

// DropPendingSuppression disarms a suppression whose click never arrived.
func (c *SelectionController) DropPendingSuppression() { c.suppressClick = false }

// HandleClick applies click semantics for target. modifier is true when
// shift, ctrl or meta was held.
func (c *SelectionController) HandleClick(target Target, modifier bool) {
	if c.suppressClick {
		c.suppressClick = false
		return
	}
	if target.IsCanvas() {
		c.Clear()
		return
	}
	if !target.IsNode() || !Selectable(target.Node) {
		return
	}
	n := target.Node
	selected := c.Contains(n)
	switch {
	case !modifier && !selected:
		c.Set(n)
	case modifier && selected:
		c.Remove(n)
	case modifier && !selected:
		c.nodes = append(c.nodes, n)
	default:
		// plain click on a selected node keeps a multi-selection intact so it
		// can be dragged as a whole.
	}
}

// SelectAll selects every selectable node of sc in scene order.
func (c *SelectionController) SelectAll(sc *scene.Scene) {
	var all []vector.Node
	for _, n := range sc.NodesOfKind(vector.KindRect) {
		if Selectable(n) {
			all = append(all, n)
		}
	}
	c.Set(all...)
}
