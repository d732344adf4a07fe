/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package editor

import (
	"io"
	"log/slog"
	"testing"

	"snapedit/internal/scene"
	"snapedit/internal/vector"
)

func quietLogger() *slog.Logger { return slog.New(slog.NewTextHandler(io.Discard, nil)) }

func rect(sc *scene.Scene, x, y, w, h float32) *vector.RectNode {
	n := vector.NewRect(vector.R(x, y, w, h), vector.White)
	sc.Add(n)
	return n
}

func sameOrder(got []vector.Node, want ...vector.Node) bool {
	if len(got) != len(want) {
		return false
	}
	for i := range got {
		if got[i].ID() != want[i].ID() {
			return false
		}
	}
	return true
}

func TestRubberBandOverEmptyAreaSelectsNothing(t *testing.T) {
	sc := scene.New(vector.Size{W: 1000, H: 750})
	a := rect(sc, 0, 0, 50, 50)
	rect(sc, 100, 100, 50, 50)
	c := NewSelectionController(quietLogger())
	c.Set(a)

	c.StartRubberBand(vector.Pt{X: 300, Y: 300})
	if !c.RubberBand().Visible {
		t.Fatalf("band must be visible after start")
	}
	c.UpdateRubberBand(vector.Pt{X: 400, Y: 400})
	c.EndRubberBand(sc)

	if c.Len() != 0 {
		t.Fatalf("expected empty selection, got %d", c.Len())
	}
	if c.RubberBand().Visible {
		t.Fatalf("band must be hidden after end")
	}
	if !c.PendingClickSuppressed() {
		t.Fatalf("completed band must arm click suppression")
	}
}

func TestRubberBandCoveringEverythingKeepsSceneOrder(t *testing.T) {
	sc := scene.New(vector.Size{W: 1000, H: 750})
	a := rect(sc, 500, 500, 50, 50)
	b := rect(sc, 0, 0, 50, 50)
	d := rect(sc, 200, 100, 80, 60)
	c := NewSelectionController(quietLogger())
	c.Set(d)

	// dragged from bottom-right to top-left
	c.StartRubberBand(vector.Pt{X: 900, Y: 700})
	c.UpdateRubberBand(vector.Pt{X: -10, Y: -10})
	if got := c.RubberBand().Rect(); got != vector.R(-10, -10, 910, 710) {
		t.Fatalf("band rect not normalized: %+v", got)
	}
	c.EndRubberBand(sc)
	if !sameOrder(c.Nodes(), a, b, d) {
		t.Fatalf("expected scene order a,b,d; got %v", c.Nodes())
	}
}

func TestRubberBandTouchingEdgeAndLockedNodes(t *testing.T) {
	sc := scene.New(vector.Size{W: 1000, H: 750})
	touching := rect(sc, 100, 100, 50, 50)
	locked := rect(sc, 10, 10, 20, 20)
	locked.SetDraggable(false)
	rect(sc, 300, 300, 10, 10)
	c := NewSelectionController(quietLogger())

	c.StartRubberBand(vector.Pt{X: 0, Y: 0})
	c.UpdateRubberBand(vector.Pt{X: 100, Y: 100})
	c.EndRubberBand(sc)
	if !sameOrder(c.Nodes(), touching) {
		t.Fatalf("expected only the touching node, got %v", c.Nodes())
	}
}

func TestEndRubberBandWithoutStartIsNoop(t *testing.T) {
	sc := scene.New(vector.Size{W: 100, H: 100})
	a := rect(sc, 0, 0, 10, 10)
	c := NewSelectionController(quietLogger())
	c.Set(a)
	c.UpdateRubberBand(vector.Pt{X: 50, Y: 50})
	c.EndRubberBand(sc)
	if !sameOrder(c.Nodes(), a) || c.PendingClickSuppressed() {
		t.Fatalf("end without start must not touch the selection")
	}
}

func TestHandleClickModifierOrdering(t *testing.T) {
	sc := scene.New(vector.Size{W: 1000, H: 750})
	a := rect(sc, 0, 0, 10, 10)
	b := rect(sc, 20, 0, 10, 10)
	d := rect(sc, 40, 0, 10, 10)
	c := NewSelectionController(quietLogger())

	c.HandleClick(NodeTarget(a), false)
	c.HandleClick(NodeTarget(d), true)
	c.HandleClick(NodeTarget(b), true)
	if !sameOrder(c.Nodes(), a, d, b) {
		t.Fatalf("modifier clicks must append in click order, got %v", c.Nodes())
	}
	c.HandleClick(NodeTarget(d), true)
	if !sameOrder(c.Nodes(), a, b) {
		t.Fatalf("modifier click on selected must remove it, got %v", c.Nodes())
	}
	c.HandleClick(NodeTarget(a), false)
	if !sameOrder(c.Nodes(), a, b) {
		t.Fatalf("plain click on a selected node must keep the selection, got %v", c.Nodes())
	}
	c.HandleClick(NodeTarget(d), false)
	if !sameOrder(c.Nodes(), d) {
		t.Fatalf("plain click on unselected must select it alone, got %v", c.Nodes())
	}
	c.HandleClick(CanvasTarget(), true)
	if c.Len() != 0 {
		t.Fatalf("click on empty canvas must clear")
	}
}

func TestHandleClickIgnoresHandleAndLockedNodes(t *testing.T) {
	sc := scene.New(vector.Size{W: 1000, H: 750})
	a := rect(sc, 0, 0, 10, 10)
	locked := rect(sc, 20, 0, 10, 10)
	locked.SetDraggable(false)
	c := NewSelectionController(quietLogger())
	c.Set(a)

	c.HandleClick(HandleTarget(), false)
	c.HandleClick(NodeTarget(locked), false)
	c.HandleClick(NodeTarget(locked), true)
	if !sameOrder(c.Nodes(), a) {
		t.Fatalf("selection changed: %v", c.Nodes())
	}
}

func TestClickAfterRubberBandIsSwallowedOnce(t *testing.T) {
	sc := scene.New(vector.Size{W: 1000, H: 750})
	a := rect(sc, 0, 0, 10, 10)
	c := NewSelectionController(quietLogger())

	c.StartRubberBand(vector.Pt{X: 500, Y: 500})
	c.EndRubberBand(sc)
	c.HandleClick(NodeTarget(a), false)
	if c.Len() != 0 {
		t.Fatalf("first click after a band must be ignored")
	}
	if c.PendingClickSuppressed() {
		t.Fatalf("suppression must be consumed")
	}
	c.HandleClick(NodeTarget(a), false)
	if !sameOrder(c.Nodes(), a) {
		t.Fatalf("second click must select")
	}

	c.StartRubberBand(vector.Pt{X: 500, Y: 500})
	c.EndRubberBand(sc)
	c.DropPendingSuppression()
	c.HandleClick(NodeTarget(a), false)
	if !sameOrder(c.Nodes(), a) {
		t.Fatalf("dropped suppression must not swallow the click")
	}
}

func TestSetDeduplicatesAndRemoveKeepsOrder(t *testing.T) {
	sc := scene.New(vector.Size{W: 100, H: 100})
	a := rect(sc, 0, 0, 10, 10)
	b := rect(sc, 20, 0, 10, 10)
	d := rect(sc, 40, 0, 10, 10)
	c := NewSelectionController(quietLogger())
	c.Set(b, a, nil, b, d)
	if !sameOrder(c.Nodes(), b, a, d) {
		t.Fatalf("unexpected selection %v", c.Nodes())
	}
	if !c.Remove(a) || c.Remove(a) {
		t.Fatalf("Remove must report presence")
	}
	if !sameOrder(c.Nodes(), b, d) {
		t.Fatalf("unexpected selection after remove %v", c.Nodes())
	}
}

func TestSelectAllSkipsLockedNodes(t *testing.T) {
	sc := scene.New(vector.Size{W: 100, H: 100})
	a := rect(sc, 0, 0, 10, 10)
	locked := rect(sc, 20, 0, 10, 10)
	locked.SetDraggable(false)
	b := rect(sc, 40, 0, 10, 10)
	c := NewSelectionController(quietLogger())
	c.SelectAll(sc)
	if !sameOrder(c.Nodes(), a, b) {
		t.Fatalf("unexpected selection %v", c.Nodes())
	}
}
