/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package editor

import "snapedit/internal/vector"

// TargetKind classifies what a pointer event landed on.
type TargetKind uint8

const (
	// TargetCanvas is empty canvas area.
	TargetCanvas TargetKind = iota
	// TargetNode is a node of the scene.
	TargetNode
	// TargetHandle is selection chrome drawn by the front end (bounding box,
	// handles). It never starts a rubber band or a snapping drag.
	TargetHandle
)

// Target is the hit result a front end attaches to pointer events.
type Target struct {
	Kind TargetKind
	Node vector.Node
}

func CanvasTarget() Target            { return Target{Kind: TargetCanvas} }
func HandleTarget() Target            { return Target{Kind: TargetHandle} }
func NodeTarget(n vector.Node) Target { return Target{Kind: TargetNode, Node: n} }
func (t Target) IsCanvas() bool       { return t.Kind == TargetCanvas }
func (t Target) IsNode() bool         { return t.Kind == TargetNode && t.Node != nil }

// Mods carries the modifier keys held during an event.
type Mods struct {
	Shift, Ctrl, Meta, Alt bool
}

// Selecting reports whether the modifiers toggle selection membership on click
// (shift, ctrl or meta).
func (m Mods) Selecting() bool { return m.Shift || m.Ctrl || m.Meta }

// Shortcut reports whether the platform shortcut modifier (ctrl or meta) is held.
func (m Mods) Shortcut() bool { return m.Ctrl || m.Meta }

// Key is a physical key code, named like DOM KeyboardEvent.code values.
type Key string

const (
	KeyA      Key = "KeyA"
	KeyC      Key = "KeyC"
	KeyV      Key = "KeyV"
	KeyDelete Key = "Delete"
)

// PointerEvent is a synthetic or translated pointer input record.
type PointerEvent struct {
	Target Target
	Pos    vector.Pt
	Mods   Mods
}

// KeyEvent is a key-down input record.
type KeyEvent struct {
	Code Key
	Mods Mods
}
