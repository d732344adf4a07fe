/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package editor

import (
	"log/slog"
	"slices"

	"snapedit/internal/scene"
	"snapedit/internal/vector"
)

// DefaultPasteOffset is the diagonal step between successive pastes.
const DefaultPasteOffset float32 = 20

// ClipboardController keeps detached copies of the last copied selection.
// The copies are never added to a scene and never mutated; each paste clones
// them again.
type ClipboardController struct {
	entries []vector.Node
	// pastes counts pastes since the last copy so repeated pastes stack diagonally.
	pastes int
	offset float32
	log    *slog.Logger
}

func NewClipboardController(offset float32, l *slog.Logger) *ClipboardController {
	if offset <= 0 {
		offset = DefaultPasteOffset
	}
	if l == nil {
		l = slog.Default()
	}
	return &ClipboardController{offset: offset, log: l}
}

func (c *ClipboardController) Len() int { return len(c.entries) }

// Entries returns the held copies. Callers must treat them as read-only.
func (c *ClipboardController) Entries() []vector.Node { return slices.Clone(c.entries) }

// Copy replaces the clipboard with deep clones of selection. Copying an empty
// selection empties the clipboard.
func (c *ClipboardController) Copy(selection []vector.Node) {
	clear(c.entries)
	c.entries = nil
	c.pastes = 0
	for _, n := range selection {
		c.entries = append(c.entries, n.Clone())
	}
	c.log.Debug("copy", slog.Int("count", len(c.entries)))
}

// Paste adds a fresh clone of every entry to sc. The n-th paste after a copy
// is shifted by n times the paste offset on both axes and each clone gets a
// new fill from color. The new nodes are returned in clipboard order.
func (c *ClipboardController) Paste(sc *scene.Scene, color func() vector.Color) []vector.Node {
	if len(c.entries) == 0 {
		return nil
	}
	c.pastes++
	step := c.offset * float32(c.pastes)
	delta := vector.Pt{X: step, Y: step}
	out := make([]vector.Node, 0, len(c.entries))
	for _, e := range c.entries {
		n := e.Clone()
		n.SetPosition(n.Position().Add(delta))
		if color != nil {
			n.SetFill(color())
		}
		sc.Add(n)
		out = append(out, n)
	}
	c.log.Debug("paste", slog.Int("count", len(out)), slog.Int("round", c.pastes))
	return out
}
