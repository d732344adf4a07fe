/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package render draws headless snapshots of an editor session: the shapes,
// the selection box, snap guide lines and the rubber band. PNG output goes
// through fogleman/gg, PDF output through gofpdf.
package render

import (
	"fmt"

	"snapedit/internal/editor"
	"snapedit/internal/vector"
)

// Snapshot is an immutable copy of what a session shows on screen.
type Snapshot struct {
	Canvas     vector.Size
	Background vector.Color
	Nodes      []Shape
	Guides     []vector.GuideLine
	// Selection is the bounding box of the selected nodes; zero when nothing
	// is selected.
	Selection vector.Rect
	Selected  int
	Band      vector.Rect
	BandShown bool
}

// Shape is one node as drawn.
type Shape struct {
	Label    string
	Bounds   vector.Rect
	Fill     vector.Color
	Selected bool
}

// Options controls snapshot output.
//   - Scale: output pixels per canvas unit (PNG only); <= 0 means 1
//   - Labels: draw a running number into every shape
//   - Title: PDF document title
type Options struct {
	Scale  float64
	Labels bool
	Title  string
}

func (o Options) scale() float64 {
	if o.Scale <= 0 {
		return 1
	}
	return o.Scale
}

// FromSession captures the current state of s. Shapes are numbered in scene
// order starting at 1.
func FromSession(s *editor.Session, background vector.Color) Snapshot {
	sc := s.Scene()
	snap := Snapshot{
		Canvas:     sc.Size(),
		Background: background,
		Guides:     sc.Guides(),
	}
	for i, n := range sc.Nodes() {
		sel := s.IsSelected(n)
		snap.Nodes = append(snap.Nodes, Shape{
			Label:    fmt.Sprintf("%d", i+1),
			Bounds:   n.Bounds(),
			Fill:     n.Fill(),
			Selected: sel,
		})
		if !sel {
			continue
		}
		if snap.Selected == 0 {
			snap.Selection = n.Bounds()
		} else {
			snap.Selection = snap.Selection.Union(n.Bounds())
		}
		snap.Selected++
	}
	if rb := s.RubberBand(); rb.Visible {
		snap.Band = rb.Rect()
		snap.BandShown = true
	}
	return snap
}
