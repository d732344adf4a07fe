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

	"snapedit/internal/scene"
	"snapedit/internal/vector"
)

// dragState is the state of the drag gesture.
// dragIdle: no node grabbed; dragDragging: a node was grabbed and follows the pointer.
type dragState uint8

const (
	dragIdle dragState = iota
	dragDragging
)

// SnapController moves dragged nodes and snaps a single dragged node onto
// guide lines derived from the canvas and the other nodes.
type SnapController struct {
	tolerance float32
	state     dragState
	node      vector.Node
	origin    vector.Pt
	// node positions at the time they joined the drag, keyed by ID
	starts map[string]vector.Pt
	log    *slog.Logger
}

func NewSnapController(tolerance float32, l *slog.Logger) *SnapController {
	if tolerance <= 0 {
		tolerance = vector.DefaultSnapTolerance
	}
	if l == nil {
		l = slog.Default()
	}
	return &SnapController{tolerance: tolerance, log: l}
}

func (c *SnapController) Tolerance() float32    { return c.tolerance }
func (c *SnapController) Dragging() bool        { return c.state == dragDragging }
func (c *SnapController) DragNode() vector.Node { return c.node }

// BeginDrag grabs the node under the pointer (Idle -> Dragging). Only
// draggable node targets start a drag; canvas and handle targets are ignored.
func (c *SnapController) BeginDrag(target Target, pointer vector.Pt) bool {
	if !target.IsNode() || !target.Node.Draggable() {
		return false
	}
	c.state = dragDragging
	c.node = target.Node
	c.origin = pointer
	c.starts = map[string]vector.Pt{target.Node.ID(): target.Node.Position()}
	return true
}

// BeginGroupDrag grabs the selection as a whole through its bounding box
// handle. Group drags move every selected node and never snap.
func (c *SnapController) BeginGroupDrag(sel *SelectionController, pointer vector.Pt) bool {
	if sel.Len() == 0 {
		return false
	}
	c.state = dragDragging
	c.node = nil
	c.origin = pointer
	c.starts = make(map[string]vector.Pt, sel.Len())
	return true
}

// DragMove follows the pointer: the grabbed node, or every selected node when
// the grabbed one is part of a multi-selection, is placed at its start
// position plus the pointer delta. The grabbed node is then snapped.
func (c *SnapController) DragMove(sc *scene.Scene, sel *SelectionController, pointer vector.Pt) []vector.SnapGuide {
	if c.state != dragDragging {
		return nil
	}
	if c.node == nil {
		c.moveBy(sel.Nodes(), pointer.Sub(c.origin))
		return nil
	}
	if !sel.Contains(c.node) {
		sel.Set(c.node)
	}
	moving := []vector.Node{c.node}
	if sel.Len() > 1 {
		moving = sel.Nodes()
	}
	c.moveBy(moving, pointer.Sub(c.origin))
	return c.SnapNode(sc, sel, c.node)
}

func (c *SnapController) moveBy(nodes []vector.Node, delta vector.Pt) {
	for _, n := range nodes {
		start, ok := c.starts[n.ID()]
		if !ok {
			start = n.Position()
			c.starts[n.ID()] = start
		}
		n.SetPosition(start.Add(delta))
	}
}

// SnapNode aligns n, which has just been moved, to the best guide per axis.
// n becomes the sole selection if it was not selected. A multi-selection is
// never snapped. Guide lines of the previous tick are cleared before new
// ones are drawn.
func (c *SnapController) SnapNode(sc *scene.Scene, sel *SelectionController, n vector.Node) []vector.SnapGuide {
	if n == nil {
		return nil
	}
	if !sel.Contains(n) {
		sel.Set(n)
	}
	if sel.Len() > 1 {
		return nil
	}
	sc.ClearGuides()
	guides := vector.ComputeSnapGuides(sc.Size(), n, sc.Nodes(), c.tolerance)
	if len(guides) == 0 {
		return nil
	}
	for _, g := range guides {
		sc.AddGuide(vector.GuideLineFor(g, sc.Size()))
	}
	n.SetPosition(vector.ApplyGuides(n.Position(), guides))
	c.log.Debug("snapped", slog.String("node", n.ID()), slog.Int("guides", len(guides)))
	return guides
}

// EndDrag removes all guide lines and returns to Idle. It is safe to call
// without an active drag.
func (c *SnapController) EndDrag(sc *scene.Scene) {
	sc.ClearGuides()
	c.state = dragIdle
	c.node = nil
	c.starts = nil
}
