/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package vector

import "testing"

var testCanvas = Size{W: 1000, H: 750}

func TestPossibleSnapLines_CanvasThenOtherNodes(t *testing.T) {
	a := NewRect(R(100, 10, 50, 20), White)
	moving := NewRect(R(300, 300, 10, 10), White)
	lines := PossibleSnapLines(testCanvas, moving, []Node{a, moving})

	wantV := []float32{0, 500, 1000, 100, 125, 150}
	wantH := []float32{0, 375, 750, 10, 20, 30}
	if len(lines[Vertical]) != len(wantV) || len(lines[Horizontal]) != len(wantH) {
		t.Fatalf("unexpected line counts: %v / %v", lines[Vertical], lines[Horizontal])
	}
	for i := range wantV {
		if lines[Vertical][i] != wantV[i] {
			t.Fatalf("vertical[%d] = %v, want %v", i, lines[Vertical][i], wantV[i])
		}
		if lines[Horizontal][i] != wantH[i] {
			t.Fatalf("horizontal[%d] = %v, want %v", i, lines[Horizontal][i], wantH[i])
		}
	}
}

func TestSnapEdgesFor_OffsetsReconstructPosition(t *testing.T) {
	n := NewRect(R(40, 60, 20, 10), White)
	edges := SnapEdgesFor(n)
	wantV := [3]SnapEdge{{EdgeStart, 40, 0}, {EdgeCenter, 50, -10}, {EdgeEnd, 60, -20}}
	wantH := [3]SnapEdge{{EdgeStart, 60, 0}, {EdgeCenter, 65, -5}, {EdgeEnd, 70, -10}}
	if edges[Vertical] != wantV {
		t.Fatalf("vertical edges: %+v", edges[Vertical])
	}
	if edges[Horizontal] != wantH {
		t.Fatalf("horizontal edges: %+v", edges[Horizontal])
	}
	for _, axis := range Axes {
		for _, e := range edges[axis] {
			if e.Guide+e.Offset != axis.Of(n.Position()) {
				t.Fatalf("%s %s: guide+offset does not give back the position", axis, e.Kind)
			}
		}
	}
}

func TestCandidatesWithinTolerance_StrictBoundary(t *testing.T) {
	edges := AxisEdges{
		Vertical: {{EdgeStart, 100, 0}, {EdgeCenter, 1000, 0}, {EdgeEnd, 2000, 0}},
	}
	// diff exactly 5 must not snap; 4.5 must.
	c := CandidatesWithinTolerance(AxisLines{Vertical: {105, 95.5}}, edges, 5)
	if len(c[Vertical]) != 1 {
		t.Fatalf("expected one candidate, got %+v", c[Vertical])
	}
	got := c[Vertical][0]
	if got.Line != 95.5 || got.Diff != 4.5 || got.Kind != EdgeStart {
		t.Fatalf("unexpected candidate: %+v", got)
	}
	if len(c[Horizontal]) != 0 {
		t.Fatalf("no horizontal candidates expected")
	}
}

func TestBestGuides_PicksMinimumDiff(t *testing.T) {
	c := AxisCandidates{
		Vertical: {
			{SnapEdge: SnapEdge{Kind: EdgeStart}, Line: 10, Diff: 4},
			{SnapEdge: SnapEdge{Kind: EdgeEnd, Offset: -7}, Line: 20, Diff: 1},
			{SnapEdge: SnapEdge{Kind: EdgeCenter}, Line: 30, Diff: 3},
		},
	}
	guides := BestGuides(c)
	if len(guides) != 1 {
		t.Fatalf("expected a single guide, got %d", len(guides))
	}
	g := guides[0]
	if g.Axis != Vertical || g.Line != 20 || g.Edge != EdgeEnd || g.Offset != -7 {
		t.Fatalf("expected min-diff candidate, got %+v", g)
	}
	if len(c[Vertical]) != 3 || c[Vertical][0].Line != 10 {
		t.Fatalf("BestGuides must not reorder its input")
	}
}

func TestBestGuides_TiesKeepFirstSeen(t *testing.T) {
	c := AxisCandidates{
		Horizontal: {
			{Line: 0, Diff: 2},
			{Line: 4, Diff: 2},
		},
	}
	guides := BestGuides(c)
	if len(guides) != 1 || guides[0].Axis != Horizontal || guides[0].Line != 0 {
		t.Fatalf("tie must resolve to the first candidate, got %+v", guides)
	}
	if len(BestGuides(AxisCandidates{})) != 0 {
		t.Fatalf("no candidates, no guides")
	}
}

func TestComputeSnapGuides_CanvasLinesBeforeNodeLines(t *testing.T) {
	// other node's left edge coincides with the canvas midline; the canvas line wins the tie.
	other := NewRect(R(500, 600, 40, 40), White)
	moving := NewRect(R(502, 200, 30, 30), White)
	guides := ComputeSnapGuides(testCanvas, moving, []Node{other, moving}, 5)
	if len(guides) != 1 || guides[0].Line != 500 || guides[0].Edge != EdgeStart {
		t.Fatalf("unexpected guides: %+v", guides)
	}
}

func TestComputeSnapGuides_EndToEndRow(t *testing.T) {
	a := NewRect(R(100, 100, 50, 50), White)
	b := NewRect(R(150, 100, 50, 50), White)
	moving := NewRect(R(148, 400, 30, 30), White)
	nodes := []Node{a, b, moving}

	guides := ComputeSnapGuides(testCanvas, moving, nodes, DefaultSnapTolerance)
	if len(guides) != 1 {
		t.Fatalf("expected exactly one guide, got %+v", guides)
	}
	g := guides[0]
	if g.Axis != Vertical || g.Line != 150 || g.Edge != EdgeStart {
		t.Fatalf("expected vertical start guide at 150, got %+v", g)
	}
	pos := ApplyGuides(moving.Position(), guides)
	if pos.X != 150+g.Offset || pos.X != 150 {
		t.Fatalf("expected snapped x = 150, got %v", pos.X)
	}
	if pos.Y != 400 {
		t.Fatalf("y must be untouched, got %v", pos.Y)
	}
}

func TestComputeSnapGuides_BothAxesAndCenter(t *testing.T) {
	anchor := NewRect(R(200, 200, 100, 100), White)
	// center x sits exactly on the anchor center; bottom y = 297 is 3 off the anchor bottom
	moving := NewRect(R(248, 287, 4, 10), White)
	guides := ComputeSnapGuides(testCanvas, moving, []Node{anchor, moving}, 5)
	if len(guides) != 2 {
		t.Fatalf("expected a guide per axis, got %+v", guides)
	}
	if guides[0].Axis != Vertical || guides[1].Axis != Horizontal {
		t.Fatalf("vertical guide must be reported first: %+v", guides)
	}
	pos := ApplyGuides(moving.Position(), guides)
	if pos != (Pt{248, 290}) {
		t.Fatalf("unexpected snapped position %+v", pos)
	}
}

func TestComputeSnapGuides_OutsideToleranceNoGuide(t *testing.T) {
	anchor := NewRect(R(100, 100, 50, 50), White)
	moving := NewRect(R(160, 420, 20, 20), White)
	if g := ComputeSnapGuides(testCanvas, moving, []Node{anchor, moving}, 5); len(g) != 0 {
		t.Fatalf("expected no guides, got %+v", g)
	}
}

func TestGuideLineFor_SpansCanvas(t *testing.T) {
	v := GuideLineFor(SnapGuide{Axis: Vertical, Line: 150}, testCanvas)
	if v.From != (Pt{150, 0}) || v.To != (Pt{150, 750}) {
		t.Fatalf("vertical guide line: %+v", v)
	}
	h := GuideLineFor(SnapGuide{Axis: Horizontal, Line: 42}, testCanvas)
	if h.From != (Pt{0, 42}) || h.To != (Pt{1000, 42}) {
		t.Fatalf("horizontal guide line: %+v", h)
	}
}
