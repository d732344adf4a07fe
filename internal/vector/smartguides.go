/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package vector

// Smart guides and snapping helpers for dragging nodes on the canvas.
// These utilities are UI-agnostic and deterministic to enable unit testing and
// reuse across different frontends.
//
// The pipeline is: PossibleSnapLines -> SnapEdgesFor -> CandidatesWithinTolerance
// -> BestGuides -> ApplyGuides. Each step is exported so tools can inspect the
// intermediate results.

import (
	"cmp"
	"math"
	"slices"
)

// DefaultSnapTolerance is the distance below which an edge snaps to a line.
const DefaultSnapTolerance float32 = 5

// EdgeKind says which feature of the moving node matched a line.
type EdgeKind uint8

const (
	EdgeStart EdgeKind = iota
	EdgeCenter
	EdgeEnd
)

func (k EdgeKind) String() string {
	switch k {
	case EdgeCenter:
		return "center"
	case EdgeEnd:
		return "end"
	default:
		return "start"
	}
}

// AxisLines holds candidate snap line coordinates, indexed by Axis.
type AxisLines [2][]float32

// SnapEdge is one of the start/center/end points of the moving node together
// with the offset from that point back to the node position.
type SnapEdge struct {
	Kind   EdgeKind
	Guide  float32
	Offset float32
}

// AxisEdges holds the three snap edges of a node, indexed by Axis.
type AxisEdges [2][3]SnapEdge

// SnapCandidate is a line/edge pairing that lies within tolerance.
type SnapCandidate struct {
	SnapEdge
	Line float32
	Diff float32
}

// AxisCandidates holds the candidates of each axis in discovery order.
type AxisCandidates [2][]SnapCandidate

// SnapGuide is the winning candidate of one axis.
type SnapGuide struct {
	Axis   Axis
	Edge   EdgeKind
	Line   float32
	Offset float32
}

// GuideLine is the visual annotation for a SnapGuide. It spans the full
// canvas on the axis the guide runs along.
type GuideLine struct {
	Axis     Axis
	Position float32
	From     Pt
	To       Pt
}

// PossibleSnapLines collects the lines a moving node may align to: the canvas
// start, middle and end on each axis, followed by start, center and end of
// every other node in the given order. Duplicates are kept.
func PossibleSnapLines(canvas Size, moving Node, nodes []Node) AxisLines {
	var lines AxisLines
	for _, axis := range Axes {
		l := axis.Length(canvas)
		lines[axis] = []float32{0, l / 2, l}
	}
	for _, n := range nodes {
		if sameNode(n, moving) {
			continue
		}
		b := n.Bounds()
		for _, axis := range Axes {
			e := ExtentOf(b, axis)
			lines[axis] = append(lines[axis], e.Start, e.Center, e.End)
		}
	}
	return lines
}

// SnapEdgesFor returns the start, center and end of n on each axis, each
// paired with offset = position - edge.
func SnapEdgesFor(n Node) AxisEdges {
	var edges AxisEdges
	b := n.Bounds()
	pos := n.Position()
	for _, axis := range Axes {
		e := ExtentOf(b, axis)
		abs := axis.Of(pos)
		edges[axis] = [3]SnapEdge{
			{Kind: EdgeStart, Guide: e.Start, Offset: abs - e.Start},
			{Kind: EdgeCenter, Guide: e.Center, Offset: abs - e.Center},
			{Kind: EdgeEnd, Guide: e.End, Offset: abs - e.End},
		}
	}
	return edges
}

// CandidatesWithinTolerance pairs every line with every edge of the same axis
// and keeps the pairs strictly closer than tolerance.
func CandidatesWithinTolerance(lines AxisLines, edges AxisEdges, tolerance float32) AxisCandidates {
	var out AxisCandidates
	for _, axis := range Axes {
		for _, line := range lines[axis] {
			for _, edge := range edges[axis] {
				diff := float32(math.Abs(float64(line - edge.Guide)))
				if diff < tolerance {
					out[axis] = append(out[axis], SnapCandidate{SnapEdge: edge, Line: line, Diff: diff})
				}
			}
		}
	}
	return out
}

// BestGuides picks the lowest-diff candidate per axis. Ties go to the
// candidate seen first. Vertical is reported before horizontal; an axis
// without candidates contributes nothing.
func BestGuides(c AxisCandidates) []SnapGuide {
	var guides []SnapGuide
	for _, axis := range Axes {
		if len(c[axis]) == 0 {
			continue
		}
		best := slices.MinFunc(c[axis], func(a, b SnapCandidate) int { return cmp.Compare(a.Diff, b.Diff) })
		guides = append(guides, SnapGuide{Axis: axis, Edge: best.Kind, Line: best.Line, Offset: best.Offset})
	}
	return guides
}

// ComputeSnapGuides runs the whole pipeline for moving against nodes.
// A non-positive tolerance falls back to DefaultSnapTolerance.
func ComputeSnapGuides(canvas Size, moving Node, nodes []Node, tolerance float32) []SnapGuide {
	if tolerance <= 0 {
		tolerance = DefaultSnapTolerance
	}
	lines := PossibleSnapLines(canvas, moving, nodes)
	edges := SnapEdgesFor(moving)
	return BestGuides(CandidatesWithinTolerance(lines, edges, tolerance))
}

// ApplyGuides returns pos with each guided axis set to Line + Offset.
// Axes without a guide are left untouched.
func ApplyGuides(pos Pt, guides []SnapGuide) Pt {
	for _, g := range guides {
		pos = g.Axis.Set(pos, g.Line+g.Offset)
	}
	return pos
}

// GuideLineFor builds the full-canvas segment drawn for g.
func GuideLineFor(g SnapGuide, canvas Size) GuideLine {
	if g.Axis == Horizontal {
		return GuideLine{Axis: g.Axis, Position: g.Line, From: Pt{0, g.Line}, To: Pt{canvas.W, g.Line}}
	}
	return GuideLine{Axis: g.Axis, Position: g.Line, From: Pt{g.Line, 0}, To: Pt{g.Line, canvas.H}}
}

func sameNode(a, b Node) bool {
	if a == nil || b == nil {
		return false
	}
	return a == b || a.ID() == b.ID()
}
