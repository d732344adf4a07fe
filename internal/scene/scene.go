/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package scene holds the live node collection of a canvas together with a
// cosmetic overlay layer for guide lines. Nodes are kept in z-order: later
// nodes draw on top and win hit tests. Overlay items are never part of the
// node collection, so they can not be hit or selected.
//
// A Scene is not safe for concurrent use; it is driven from the UI goroutine.
package scene

import (
	"slices"

	"snapedit/internal/vector"
)

type Scene struct {
	size   vector.Size
	nodes  []vector.Node
	byID   map[string]vector.Node
	guides []vector.GuideLine
}

// New returns an empty scene for a canvas of the given pixel size.
func New(size vector.Size) *Scene {
	return &Scene{size: size, byID: make(map[string]vector.Node)}
}

func (s *Scene) Size() vector.Size       { return s.size }
func (s *Scene) Resize(size vector.Size) { s.size = size }
func (s *Scene) Len() int                { return len(s.nodes) }

// Add appends nodes on top of the z-order. Nodes already present are skipped.
func (s *Scene) Add(nodes ...vector.Node) {
	for _, n := range nodes {
		if n == nil {
			continue
		}
		if _, ok := s.byID[n.ID()]; ok {
			continue
		}
		s.byID[n.ID()] = n
		s.nodes = append(s.nodes, n)
	}
}

// Remove takes n out of the scene and reports whether it was present.
func (s *Scene) Remove(n vector.Node) bool {
	if n == nil {
		return false
	}
	if _, ok := s.byID[n.ID()]; !ok {
		return false
	}
	delete(s.byID, n.ID())
	s.nodes = slices.DeleteFunc(s.nodes, func(o vector.Node) bool { return o.ID() == n.ID() })
	return true
}

func (s *Scene) Contains(n vector.Node) bool {
	if n == nil {
		return false
	}
	_, ok := s.byID[n.ID()]
	return ok
}

func (s *Scene) Find(id string) (vector.Node, bool) {
	n, ok := s.byID[id]
	return n, ok
}

// Nodes returns the nodes in z-order. The slice is a copy.
func (s *Scene) Nodes() []vector.Node { return slices.Clone(s.nodes) }

// NodesOfKind returns the nodes tagged with kind, in z-order.
func (s *Scene) NodesOfKind(kind vector.Kind) []vector.Node {
	var out []vector.Node
	for _, n := range s.nodes {
		if n.Kind() == kind {
			out = append(out, n)
		}
	}
	return out
}

// HitTest returns the top-most node whose shape contains p.
func (s *Scene) HitTest(p vector.Pt) (vector.Node, bool) {
	for i := len(s.nodes) - 1; i >= 0; i-- {
		if s.nodes[i].Hit(p) {
			return s.nodes[i], true
		}
	}
	return nil, false
}

// Intersecting returns, in z-order, the nodes accepted by keep whose bounds
// intersect r. A nil keep accepts every node.
func (s *Scene) Intersecting(r vector.Rect, keep func(vector.Node) bool) []vector.Node {
	var out []vector.Node
	for _, n := range s.nodes {
		if keep != nil && !keep(n) {
			continue
		}
		if r.Intersects(n.Bounds()) {
			out = append(out, n)
		}
	}
	return out
}

// AddGuide places a guide line on the overlay layer.
func (s *Scene) AddGuide(g vector.GuideLine) { s.guides = append(s.guides, g) }

// ClearGuides removes every guide line and returns how many there were.
func (s *Scene) ClearGuides() int {
	n := len(s.guides)
	s.guides = nil
	return n
}

// Guides returns a copy of the overlay guide lines.
func (s *Scene) Guides() []vector.GuideLine { return slices.Clone(s.guides) }
