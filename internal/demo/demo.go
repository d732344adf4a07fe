/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package demo replays a scripted editing session headlessly and writes a
// rendered frame after each step.
package demo

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"snapedit/internal/config"
	"snapedit/internal/editor"
	applog "snapedit/internal/log"
	"snapedit/internal/render"
	"snapedit/internal/vector"
)

// Frame is one rendered step of the script.
type Frame struct {
	Step    string
	Path    string
	Summary string
}

type step struct {
	name string
	run  func(s *editor.Session, f fixture)
}

// fixture holds the shapes the script adds on top of the populated scene.
type fixture struct {
	left, right, moving *vector.RectNode
}

func pt(x, y float32) vector.Pt { return vector.Pt{X: x, Y: y} }

var script = []step{
	{"populate", func(*editor.Session, fixture) {}},
	{"drag-snap", func(s *editor.Session, f fixture) {
		// Grab the small square and move it so its left edge lands 2 units
		// short of the seam between the two squares above.
		p := f.moving.Position()
		s.PointerDown(editor.PointerEvent{Target: editor.NodeTarget(f.moving), Pos: pt(p.X+10, p.Y+10)})
		s.PointerMove(editor.PointerEvent{Pos: pt(p.X+58, p.Y+10)})
	}},
	{"drag-release", func(s *editor.Session, f fixture) {
		p := f.moving.Position()
		s.PointerUp(editor.PointerEvent{Pos: pt(p.X+10, p.Y+10)})
		s.Click(editor.PointerEvent{Target: editor.NodeTarget(f.moving), Pos: pt(p.X+10, p.Y+10)})
	}},
	{"rubber-band", func(s *editor.Session, f fixture) {
		b := f.left.Bounds().Union(f.right.Bounds())
		s.PointerDown(editor.PointerEvent{Target: editor.CanvasTarget(), Pos: pt(b.X-10, b.Y-10)})
		s.PointerMove(editor.PointerEvent{Pos: pt(b.X+b.W+10, b.Y+b.H+10)})
	}},
	{"band-release", func(s *editor.Session, f fixture) {
		b := f.left.Bounds().Union(f.right.Bounds())
		end := pt(b.X+b.W+10, b.Y+b.H+10)
		s.PointerUp(editor.PointerEvent{Pos: end})
		s.Click(editor.PointerEvent{Target: s.HitTest(end), Pos: end})
	}},
	{"copy-paste", func(s *editor.Session, _ fixture) {
		s.KeyDown(editor.KeyEvent{Code: editor.KeyC, Mods: editor.Mods{Ctrl: true}})
		s.KeyDown(editor.KeyEvent{Code: editor.KeyV, Mods: editor.Mods{Ctrl: true}})
		s.KeyDown(editor.KeyEvent{Code: editor.KeyV, Mods: editor.Mods{Ctrl: true}})
	}},
	{"delete", func(s *editor.Session, _ fixture) {
		s.KeyDown(editor.KeyEvent{Code: editor.KeyDelete})
	}},
}

// NewSession builds and populates a session from cfg.
func NewSession(cfg config.AppConfig) *editor.Session {
	s := editor.NewSession(editor.OptionsFromConfig(cfg, applog.WithComponent("editor")))
	s.Populate()
	return s
}

// Run replays the script on a new session built from cfg. See Play.
func Run(cfg config.AppConfig, outDir string) (*editor.Session, []Frame, error) {
	s := NewSession(cfg)
	frames, err := Play(s, cfg.Canvas.BackgroundColor(), outDir)
	return s, frames, err
}

// Play adds the fixture shapes to s, replays the script and writes one PNG
// per step into outDir plus a PDF of the final state.
func Play(s *editor.Session, bg vector.Color, outDir string) ([]Frame, error) {
	l := applog.WithComponent("demo")
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return nil, fmt.Errorf("ensure out dir: %w", err)
	}
	f := addFixture(s)

	frames := make([]Frame, 0, len(script)+1)
	for i, st := range script {
		st.run(s, f)
		path := filepath.Join(outDir, fmt.Sprintf("%02d-%s.png", i+1, st.name))
		if err := render.WritePNG(path, render.FromSession(s, bg), render.Options{Scale: 1, Labels: true}); err != nil {
			return frames, fmt.Errorf("step %s: %w", st.name, err)
		}
		frames = append(frames, Frame{Step: st.name, Path: path, Summary: s.CrashSummary()})
		l.Info("demo step", slog.String("step", st.name), slog.String("state", s.CrashSummary()))
	}

	pdfPath := filepath.Join(outDir, "final.pdf")
	if err := render.WritePDF(pdfPath, render.FromSession(s, bg), render.Options{Labels: true, Title: "snapedit demo"}); err != nil {
		return frames, fmt.Errorf("final pdf: %w", err)
	}
	return append(frames, Frame{Step: "final", Path: pdfPath, Summary: s.CrashSummary()}), nil
}

// addFixture places two touching squares in the upper left quarter and a
// small square below them, scaled to the canvas.
func addFixture(s *editor.Session) fixture {
	size := s.Scene().Size()
	x, y := size.W/10, size.H/8
	f := fixture{
		left:   vector.NewRect(vector.R(x, y, 50, 50), s.RandomColor()),
		right:  vector.NewRect(vector.R(x+50, y, 50, 50), s.RandomColor()),
		moving: vector.NewRect(vector.R(x, y*4, 30, 30), s.RandomColor()),
	}
	s.Scene().Add(f.left, f.right, f.moving)
	return f
}
