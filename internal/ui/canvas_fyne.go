//go:build fyne && cgo

/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package ui

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"

	"snapedit/internal/editor"
	"snapedit/internal/vector"
)

// EditorCanvas is the interactive surface of a session. Widget positions map
// 1:1 to canvas units with the origin at the top-left corner, and the scene
// always spans the whole widget.
type EditorCanvas struct {
	widget.BaseWidget

	session    *editor.Session
	background vector.Color

	// pointer state between MouseDown and MouseUp/DragEnd
	pressed bool
	mods    editor.Mods
	last    vector.Pt

	// OnChanged is called after every input that may have changed the session.
	OnChanged func()
}

var (
	_ fyne.Tappable     = (*EditorCanvas)(nil)
	_ fyne.Draggable    = (*EditorCanvas)(nil)
	_ desktop.Mouseable = (*EditorCanvas)(nil)
)

func NewEditorCanvas(s *editor.Session, background vector.Color) *EditorCanvas {
	ec := &EditorCanvas{session: s, background: background}
	ec.ExtendBaseWidget(ec)
	return ec
}

func (c *EditorCanvas) Session() *editor.Session { return c.session }
func (c *EditorCanvas) MinSize() fyne.Size       { return fyne.NewSize(320, 240) }

// Resize keeps the scene size equal to the widget so snap lines follow the
// visible canvas edges.
func (c *EditorCanvas) Resize(size fyne.Size) {
	c.BaseWidget.Resize(size)
	if size.Width > 0 && size.Height > 0 {
		c.session.Scene().Resize(vector.Size{W: size.Width, H: size.Height})
	}
}

// handleGrip is the half width of the grab frame drawn on the selection box.
const handleGrip float32 = 4

// target resolves p like the session does, except that empty space on the
// frame of a multi-selection box is the selection handle. The interior stays
// canvas so clicks there clear the selection and presses start a rubber band.
func (c *EditorCanvas) target(p vector.Pt) editor.Target {
	t := c.session.HitTest(p)
	if t.IsCanvas() && c.session.Selection().Len() > 1 {
		if box, ok := selectionBox(c.session); ok && onFrame(box, p, handleGrip) {
			return editor.HandleTarget()
		}
	}
	return t
}

// onFrame reports whether p lies within grip of the border of r.
func onFrame(r vector.Rect, p vector.Pt, grip float32) bool {
	outer := vector.R(r.X-grip, r.Y-grip, r.W+2*grip, r.H+2*grip)
	if !outer.Contains(p) {
		return false
	}
	if r.W <= 2*grip || r.H <= 2*grip {
		return true
	}
	inner := vector.R(r.X+grip, r.Y+grip, r.W-2*grip, r.H-2*grip)
	return !inner.Contains(p)
}

func (c *EditorCanvas) MouseDown(e *desktop.MouseEvent) {
	if e.Button != desktop.MouseButtonPrimary {
		return
	}
	p := toPt(e.Position)
	c.pressed, c.mods, c.last = true, modsOf(e.Modifier), p
	c.session.PointerDown(editor.PointerEvent{Target: c.target(p), Pos: p, Mods: c.mods})
	c.changed()
}

func (c *EditorCanvas) MouseUp(e *desktop.MouseEvent) {
	if e.Button != desktop.MouseButtonPrimary {
		return
	}
	c.release(toPt(e.Position))
}

func (c *EditorCanvas) Dragged(e *fyne.DragEvent) {
	if !c.pressed {
		return
	}
	c.last = toPt(e.Position)
	c.session.PointerMove(editor.PointerEvent{Pos: c.last, Mods: c.mods})
	c.changed()
}

// DragEnd closes the gesture when the driver reports the end of a drag
// without a matching MouseUp.
func (c *EditorCanvas) DragEnd() { c.release(c.last) }

func (c *EditorCanvas) release(p vector.Pt) {
	if !c.pressed {
		return
	}
	c.pressed = false
	c.last = p
	c.session.PointerUp(editor.PointerEvent{Pos: p, Mods: c.mods})
	c.changed()
}

// Tapped delivers the click that follows a press and release. Tap events
// carry no modifiers, so the ones held at MouseDown are used.
func (c *EditorCanvas) Tapped(e *fyne.PointEvent) {
	p := toPt(e.Position)
	c.session.Click(editor.PointerEvent{Target: c.target(p), Pos: p, Mods: c.mods})
	c.changed()
}

// Key forwards a key record and reports whether the session consumed it.
func (c *EditorCanvas) Key(ev editor.KeyEvent) bool {
	handled := c.session.KeyDown(ev)
	if handled {
		c.changed()
	}
	return handled
}

func (c *EditorCanvas) changed() {
	c.Refresh()
	if c.OnChanged != nil {
		c.OnChanged()
	}
}

func toPt(p fyne.Position) vector.Pt { return vector.Pt{X: p.X, Y: p.Y} }

func modsOf(m fyne.KeyModifier) editor.Mods {
	return editor.Mods{
		Shift: m&fyne.KeyModifierShift != 0,
		Ctrl:  m&fyne.KeyModifierControl != 0,
		Meta:  m&fyne.KeyModifierSuper != 0,
		Alt:   m&fyne.KeyModifierAlt != 0,
	}
}

func selectionBox(s *editor.Session) (vector.Rect, bool) {
	nodes := s.SelectedNodes()
	if len(nodes) == 0 {
		return vector.Rect{}, false
	}
	box := nodes[0].Bounds()
	for _, n := range nodes[1:] {
		box = box.Union(n.Bounds())
	}
	return box, true
}

// CreateRenderer builds the drawable objects; Layout positions them.
func (c *EditorCanvas) CreateRenderer() fyne.WidgetRenderer {
	bg := canvas.NewRectangle(c.background)
	bbox := canvas.NewRectangle(color.Transparent)
	bbox.StrokeColor = vector.SelectionBlue
	bbox.StrokeWidth = 1
	band := canvas.NewRectangle(vector.BandFill)
	band.StrokeColor = vector.BandStroke
	band.StrokeWidth = 1
	r := &editorRenderer{ec: c, bg: bg, bbox: bbox, band: band}
	r.Layout(c.Size())
	return r
}

type editorRenderer struct {
	ec      *EditorCanvas
	objects []fyne.CanvasObject
	bg      *canvas.Rectangle
	// pooled visuals, grown on demand and hidden when surplus
	rects []*canvas.Rectangle
	lines []*canvas.Line
	bbox  *canvas.Rectangle
	band  *canvas.Rectangle
}

func (r *editorRenderer) Destroy()                     {}
func (r *editorRenderer) Objects() []fyne.CanvasObject { return r.objects }
func (r *editorRenderer) MinSize() fyne.Size           { return r.ec.MinSize() }

func (r *editorRenderer) Refresh() {
	r.Layout(r.ec.Size())
	canvas.Refresh(r.ec)
}

func (r *editorRenderer) Layout(size fyne.Size) {
	s := r.ec.session
	nodes := s.Scene().Nodes()
	guides := s.Guides()
	r.grow(len(nodes), len(guides))

	r.bg.FillColor = r.ec.background
	r.bg.Resize(size)
	r.bg.Move(fyne.NewPos(0, 0))

	for i, rc := range r.rects {
		if i >= len(nodes) {
			rc.Hide()
			continue
		}
		b := nodes[i].Bounds()
		rc.FillColor = nodes[i].Fill()
		rc.Resize(fyne.NewSize(b.W, b.H))
		rc.Move(fyne.NewPos(b.X, b.Y))
		rc.Show()
		rc.Refresh()
	}

	if box, ok := selectionBox(s); ok {
		r.bbox.Resize(fyne.NewSize(box.W, box.H))
		r.bbox.Move(fyne.NewPos(box.X, box.Y))
		r.bbox.Show()
	} else {
		r.bbox.Hide()
	}

	for i, ln := range r.lines {
		if i >= len(guides) {
			ln.Hide()
			continue
		}
		g := guides[i]
		ln.Position1 = fyne.NewPos(g.From.X, g.From.Y)
		ln.Position2 = fyne.NewPos(g.To.X, g.To.Y)
		ln.Show()
		ln.Refresh()
	}

	if rb := s.RubberBand(); rb.Visible {
		b := rb.Rect()
		r.band.Resize(fyne.NewSize(b.W, b.H))
		r.band.Move(fyne.NewPos(b.X, b.Y))
		r.band.Show()
	} else {
		r.band.Hide()
	}
}

// grow makes sure there are enough pooled visuals and rebuilds the draw
// order: background, shapes, selection box, guides, rubber band.
func (r *editorRenderer) grow(nodes, guides int) {
	if nodes <= len(r.rects) && guides <= len(r.lines) && r.objects != nil {
		return
	}
	for len(r.rects) < nodes {
		r.rects = append(r.rects, canvas.NewRectangle(color.Transparent))
	}
	for len(r.lines) < guides {
		ln := canvas.NewLine(vector.GuideStroke.Color)
		ln.StrokeWidth = vector.GuideStroke.Width
		r.lines = append(r.lines, ln)
	}
	objs := make([]fyne.CanvasObject, 0, 3+len(r.rects)+len(r.lines))
	objs = append(objs, r.bg)
	for _, rc := range r.rects {
		objs = append(objs, rc)
	}
	objs = append(objs, r.bbox)
	for _, ln := range r.lines {
		objs = append(objs, ln)
	}
	r.objects = append(objs, r.band)
}
