//go:build fyne && cgo

/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// These tests drive the editor canvas through Fyne input events. They are
// gated behind the "fyne" build tag so CI (which is headless) does not need
// Fyne or a display. To run locally:
//
//	go test -tags fyne ./internal/ui
package ui

import (
	"io"
	"log/slog"
	"math/rand/v2"
	"testing"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/test"

	"snapedit/internal/editor"
	"snapedit/internal/vector"
)

func newTestCanvas(t *testing.T) (*EditorCanvas, *editor.Session) {
	t.Helper()
	test.NewTempApp(t)
	s := editor.NewSession(editor.Options{
		Canvas: vector.Size{W: 1000, H: 750},
		Rand:   rand.New(rand.NewPCG(1, 2)),
		Logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	})
	ec := NewEditorCanvas(s, vector.White)
	ec.Resize(fyne.NewSize(1000, 750))
	return ec, s
}

func addRect(s *editor.Session, x, y, w, h float32) *vector.RectNode {
	n := vector.NewRect(vector.R(x, y, w, h), vector.Black)
	s.Scene().Add(n)
	return n
}

func press(ec *EditorCanvas, x, y float32, mod fyne.KeyModifier) {
	ec.MouseDown(&desktop.MouseEvent{
		PointEvent: fyne.PointEvent{Position: fyne.NewPos(x, y)},
		Button:     desktop.MouseButtonPrimary,
		Modifier:   mod,
	})
}

func drag(ec *EditorCanvas, x, y float32) {
	ec.Dragged(&fyne.DragEvent{PointEvent: fyne.PointEvent{Position: fyne.NewPos(x, y)}})
}

func TestEditorCanvas_ResizeFollowsScene(t *testing.T) {
	ec, s := newTestCanvas(t)
	ec.Resize(fyne.NewSize(640, 480))
	if got := s.Scene().Size(); got.W != 640 || got.H != 480 {
		t.Fatalf("scene size not synced: %+v", got)
	}
}

func TestEditorCanvas_DragSnapsAndShowsGuide(t *testing.T) {
	ec, s := newTestCanvas(t)
	addRect(s, 100, 100, 50, 50)
	addRect(s, 150, 100, 50, 50)
	moving := addRect(s, 100, 400, 30, 30)

	r := ec.CreateRenderer().(*editorRenderer)

	press(ec, 110, 410, 0)
	drag(ec, 158, 410)
	if got := moving.Position(); got.X != 150 || got.Y != 400 {
		t.Fatalf("expected snap to x=150, got %+v", got)
	}
	r.Layout(ec.Size())
	visible := 0
	for _, ln := range r.lines {
		if ln.Visible() {
			visible++
			if ln.Position1.X != 150 || ln.Position2.X != 150 {
				t.Fatalf("guide not at x=150: %v -> %v", ln.Position1, ln.Position2)
			}
		}
	}
	if visible != 1 {
		t.Fatalf("expected 1 visible guide, got %d", visible)
	}

	ec.DragEnd()
	// A late MouseUp after DragEnd is ignored.
	ec.MouseUp(&desktop.MouseEvent{PointEvent: fyne.PointEvent{Position: fyne.NewPos(158, 410)}, Button: desktop.MouseButtonPrimary})
	ec.Tapped(&fyne.PointEvent{Position: fyne.NewPos(158, 410)})
	if len(s.Guides()) != 0 {
		t.Fatalf("guides should be cleared after drag")
	}
	sel := s.SelectedNodes()
	if len(sel) != 1 || sel[0].ID() != moving.ID() {
		t.Fatalf("dragged node should stay the only selection, got %d", len(sel))
	}
	r.Layout(ec.Size())
	if !r.bbox.Visible() || r.bbox.Position().X != 150 {
		t.Fatalf("selection box should surround dragged node, got %v", r.bbox.Position())
	}
}

func TestEditorCanvas_RubberBandThenShiftClick(t *testing.T) {
	ec, s := newTestCanvas(t)
	a := addRect(s, 10, 10, 40, 40)
	b := addRect(s, 100, 10, 40, 40)
	c := addRect(s, 300, 300, 40, 40)
	r := ec.CreateRenderer().(*editorRenderer)

	press(ec, 0, 0, 0)
	drag(ec, 200, 100)
	r.Layout(ec.Size())
	if !r.band.Visible() || r.band.Size().Width != 200 {
		t.Fatalf("band not drawn: visible=%v size=%v", r.band.Visible(), r.band.Size())
	}
	ec.MouseUp(&desktop.MouseEvent{PointEvent: fyne.PointEvent{Position: fyne.NewPos(200, 100)}, Button: desktop.MouseButtonPrimary})
	ec.DragEnd()
	ec.Tapped(&fyne.PointEvent{Position: fyne.NewPos(200, 100)})
	if !s.IsSelected(a) || !s.IsSelected(b) || s.IsSelected(c) {
		t.Fatalf("band should select a and b only")
	}
	r.Layout(ec.Size())
	if r.band.Visible() {
		t.Fatalf("band should be hidden after release")
	}

	press(ec, 310, 310, fyne.KeyModifierShift)
	ec.MouseUp(&desktop.MouseEvent{PointEvent: fyne.PointEvent{Position: fyne.NewPos(310, 310)}, Button: desktop.MouseButtonPrimary})
	ec.Tapped(&fyne.PointEvent{Position: fyne.NewPos(310, 310)})
	if s.Selection().Len() != 3 {
		t.Fatalf("shift click should add c, got %d selected", s.Selection().Len())
	}
}

func TestEditorCanvas_HandleDragMovesSelection(t *testing.T) {
	ec, s := newTestCanvas(t)
	a := addRect(s, 10, 10, 40, 40)
	b := addRect(s, 100, 10, 40, 40)
	s.SelectAll()

	// (75, 8) lies between a and b on the top frame of the selection box.
	press(ec, 75, 8, 0)
	drag(ec, 85, 28)
	ec.DragEnd()
	if a.Position() != (vector.Pt{X: 20, Y: 30}) || b.Position() != (vector.Pt{X: 110, Y: 30}) {
		t.Fatalf("group drag moved wrong: a=%+v b=%+v", a.Position(), b.Position())
	}
}

func TestEditorCanvas_KeysAndStatus(t *testing.T) {
	ec, s := newTestCanvas(t)
	addRect(s, 10, 10, 40, 40)
	calls := 0
	ec.OnChanged = func() { calls++ }

	if !ec.Key(editor.KeyEvent{Code: editor.KeyA, Mods: editor.Mods{Ctrl: true}}) {
		t.Fatal("select all not handled")
	}
	ec.Key(editor.KeyEvent{Code: editor.KeyC, Mods: editor.Mods{Ctrl: true}})
	ec.Key(editor.KeyEvent{Code: editor.KeyV, Mods: editor.Mods{Ctrl: true}})
	if ec.Key(editor.KeyEvent{Code: editor.KeyV}) {
		t.Fatal("plain V must not be handled")
	}
	if calls != 3 {
		t.Fatalf("expected 3 change notifications, got %d", calls)
	}
	if got := statusText(s); got != "Shapes: 2 | Selected: 1 | Clipboard: 1" {
		t.Fatalf("unexpected status %q", got)
	}
}

func TestEditorCanvas_ClickInsideSelectionBoxClears(t *testing.T) {
	ec, s := newTestCanvas(t)
	addRect(s, 10, 10, 40, 40)
	addRect(s, 900, 600, 40, 40)
	s.SelectAll()

	press(ec, 500, 300, 0)
	if !s.RubberBand().Visible {
		t.Fatal("press in the empty interior should start a rubber band")
	}
	ec.MouseUp(&desktop.MouseEvent{PointEvent: fyne.PointEvent{Position: fyne.NewPos(500, 300)}, Button: desktop.MouseButtonPrimary})
	ec.Tapped(&fyne.PointEvent{Position: fyne.NewPos(500, 300)})
	if n := s.Selection().Len(); n != 0 {
		t.Fatalf("empty click inside the box should clear the selection, got %d selected", n)
	}
}

func TestOnFrame(t *testing.T) {
	box := vector.R(10, 10, 130, 40)
	cases := []struct {
		p    vector.Pt
		want bool
	}{
		{vector.Pt{X: 75, Y: 8}, true},
		{vector.Pt{X: 141, Y: 30}, true},
		{vector.Pt{X: 75, Y: 30}, false},
		{vector.Pt{X: 75, Y: 0}, false},
	}
	for _, c := range cases {
		if got := onFrame(box, c.p, handleGrip); got != c.want {
			t.Fatalf("onFrame(%+v) = %v, want %v", c.p, got, c.want)
		}
	}
}

func TestModsOf(t *testing.T) {
	m := modsOf(fyne.KeyModifierShift | fyne.KeyModifierSuper)
	if !m.Shift || !m.Meta || m.Ctrl || m.Alt {
		t.Fatalf("unexpected mods %+v", m)
	}
}
