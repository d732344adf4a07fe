/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package editor implements the interactive editing state of a canvas:
// dragging with snap guides, click and rubber-band selection, and an
// in-memory clipboard. A Session wires the controllers to one scene and
// dispatches pointer and keyboard records delivered by a front end.
//
// Sessions are single threaded. Front ends must call them from one goroutine.
package editor

import (
	"fmt"
	"log/slog"
	"math/rand/v2"

	applog "snapedit/internal/log"
	"snapedit/internal/scene"
	"snapedit/internal/vector"
)

// Session is one editable canvas with its controllers.
type Session struct {
	opts      Options
	scene     *scene.Scene
	selection *SelectionController
	snap      *SnapController
	clipboard *ClipboardController
	rng       *rand.Rand
	log       *slog.Logger

	// dragMoved is set once the armed drag actually moved a node;
	// clickAfterDrag then swallows the click that closes the gesture.
	dragMoved      bool
	clickAfterDrag bool
}

// NewSession returns a session over an empty scene. Call Populate to add the
// initial shapes.
func NewSession(opts Options) *Session {
	opts = opts.withDefaults()
	l := opts.Logger
	return &Session{
		opts:      opts,
		scene:     scene.New(opts.Canvas),
		selection: NewSelectionController(applog.WithOperation(l, "select")),
		snap:      NewSnapController(opts.SnapTolerance, applog.WithOperation(l, "snap")),
		clipboard: NewClipboardController(opts.PasteOffset, applog.WithOperation(l, "clipboard")),
		rng:       opts.Rand,
		log:       l,
	}
}

func (s *Session) Options() Options                       { return s.opts }
func (s *Session) Scene() *scene.Scene                    { return s.scene }
func (s *Session) Selection() *SelectionController        { return s.selection }
func (s *Session) Snapping() *SnapController              { return s.snap }
func (s *Session) Clipboard() *ClipboardController        { return s.clipboard }
func (s *Session) RubberBand() RubberBand                 { return s.selection.RubberBand() }
func (s *Session) Guides() []vector.GuideLine             { return s.scene.Guides() }
func (s *Session) Dragging() bool                         { return s.snap.Dragging() }
func (s *Session) RandomColor() vector.Color              { return vector.RandomColor(s.rng) }
func (s *Session) SelectedNodes() []vector.Node           { return s.selection.Nodes() }
func (s *Session) IsSelected(n vector.Node) bool          { return s.selection.Contains(n) }
func (s *Session) NodeAt(p vector.Pt) (vector.Node, bool) { return s.scene.HitTest(p) }

// CrashSummary describes the session state for crash reports.
func (s *Session) CrashSummary() string {
	return fmt.Sprintf("shapes=%d selected=%d clipboard=%d dragging=%t band=%t",
		s.scene.Len(), s.selection.Len(), s.clipboard.Len(), s.snap.Dragging(), s.selection.RubberBand().Visible)
}

// Populate adds the configured number of random draggable rectangles. Each
// one starts inside the canvas with a side length in [min, max).
func (s *Session) Populate() []vector.Node {
	out := make([]vector.Node, 0, s.opts.InitialShapes)
	span := s.opts.MaxShapeSize - s.opts.MinShapeSize
	for range s.opts.InitialShapes {
		r := vector.Rect{
			X: s.rng.Float32() * s.opts.Canvas.W,
			Y: s.rng.Float32() * s.opts.Canvas.H,
			W: s.opts.MinShapeSize + s.rng.Float32()*span,
			H: s.opts.MinShapeSize + s.rng.Float32()*span,
		}
		n := vector.NewRect(r, s.RandomColor())
		s.scene.Add(n)
		out = append(out, n)
	}
	s.log.Info("scene populated", slog.Int("shapes", len(out)),
		slog.Float64("width", float64(s.opts.Canvas.W)), slog.Float64("height", float64(s.opts.Canvas.H)))
	return out
}

// HitTest resolves p to the top-most node, or to empty canvas.
func (s *Session) HitTest(p vector.Pt) Target {
	if n, ok := s.scene.HitTest(p); ok {
		return NodeTarget(n)
	}
	return CanvasTarget()
}

// PointerDown starts a rubber band on empty canvas, arms a snapping drag on a
// node, or a group drag on the selection handle.
func (s *Session) PointerDown(ev PointerEvent) {
	s.selection.DropPendingSuppression()
	s.clickAfterDrag = false
	s.dragMoved = false
	switch ev.Target.Kind {
	case TargetCanvas:
		s.selection.StartRubberBand(ev.Pos)
	case TargetNode:
		s.snap.BeginDrag(ev.Target, ev.Pos)
	case TargetHandle:
		s.snap.BeginGroupDrag(s.selection, ev.Pos)
	}
}

// PointerMove advances the active gesture. It returns the snap guides applied
// on this tick, if any.
func (s *Session) PointerMove(ev PointerEvent) []vector.SnapGuide {
	if s.selection.RubberBand().Visible {
		s.selection.UpdateRubberBand(ev.Pos)
		return nil
	}
	if !s.snap.Dragging() {
		return nil
	}
	s.dragMoved = true
	return s.snap.DragMove(s.scene, s.selection, ev.Pos)
}

// PointerUp finishes the active gesture.
func (s *Session) PointerUp(ev PointerEvent) {
	if s.selection.RubberBand().Visible {
		s.selection.UpdateRubberBand(ev.Pos)
		s.selection.EndRubberBand(s.scene)
	}
	if s.snap.Dragging() {
		s.snap.EndDrag(s.scene)
		s.clickAfterDrag = s.dragMoved
	}
	s.dragMoved = false
}

// Click applies click selection unless the click only closes a drag or a
// rubber band gesture.
func (s *Session) Click(ev PointerEvent) {
	if s.clickAfterDrag {
		s.clickAfterDrag = false
		return
	}
	s.selection.HandleClick(ev.Target, ev.Mods.Selecting())
}

// KeyDown dispatches editor shortcuts and reports whether the key was
// consumed, in which case the platform default must be suppressed.
func (s *Session) KeyDown(ev KeyEvent) bool {
	if ev.Code == KeyDelete {
		s.Delete()
		return true
	}
	if !ev.Mods.Shortcut() {
		return false
	}
	switch ev.Code {
	case KeyA:
		s.SelectAll()
	case KeyC:
		s.Copy()
	case KeyV:
		s.Paste()
	default:
		return false
	}
	return true
}

func (s *Session) SelectAll() { s.selection.SelectAll(s.scene) }
func (s *Session) Copy()      { s.clipboard.Copy(s.selection.Nodes()) }

// Paste inserts the clipboard contents and selects the inserted nodes. With an
// empty clipboard the selection ends up empty.
func (s *Session) Paste() []vector.Node {
	nodes := s.clipboard.Paste(s.scene, s.RandomColor)
	s.selection.Set(nodes...)
	return nodes
}

// Delete removes every selected node from the scene and clears the selection.
// It returns the number of removed nodes.
func (s *Session) Delete() int {
	sel := s.selection.Nodes()
	if len(sel) == 0 {
		return 0
	}
	removed := 0
	for _, n := range sel {
		if s.scene.Remove(n) {
			removed++
		}
	}
	s.selection.Clear()
	s.log.Debug("delete", slog.Int("removed", removed))
	return removed
}
