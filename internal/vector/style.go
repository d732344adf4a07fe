/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package vector

// Styles and paint definitions.

import (
	"fmt"
	"math/rand/v2"
	"strconv"
	"strings"
)

// Color is a non-premultiplied 8-bit RGBA colour. It satisfies image/color.Color
// so render backends can use it directly.
type Color struct{ R, G, B, A uint8 }

var (
	Black       = Color{0, 0, 0, 255}
	White       = Color{255, 255, 255, 255}
	Transparent = Color{0, 0, 0, 0}

	// GuideBlue is the stroke used for snap guide lines.
	GuideBlue = Color{0, 128, 255, 255}
	// BandFill and BandStroke paint the rubber-band rectangle.
	BandFill   = Color{0, 0, 255, 77}
	BandStroke = Color{0, 0, 255, 128}
	// SelectionBlue outlines the bounding box of the selection.
	SelectionBlue = Color{0, 161, 255, 255}
)

// RGBA implements color.Color (alpha-premultiplied, 16 bits per channel).
func (c Color) RGBA() (r, g, b, a uint32) {
	a = uint32(c.A)
	r = uint32(c.R) * a / 255
	g = uint32(c.G) * a / 255
	b = uint32(c.B) * a / 255
	return r * 0x101, g * 0x101, b * 0x101, a * 0x101
}

// Hex formats the colour as #rrggbb, ignoring alpha.
func (c Color) Hex() string { return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B) }

// ParseHex parses #rrggbb into an opaque colour.
func ParseHex(s string) (Color, error) {
	h, ok := strings.CutPrefix(strings.TrimSpace(s), "#")
	if !ok || len(h) != 6 {
		return Color{}, fmt.Errorf("invalid colour %q: want #rrggbb", s)
	}
	v, err := strconv.ParseUint(h, 16, 32)
	if err != nil {
		return Color{}, fmt.Errorf("invalid colour %q: %w", s, err)
	}
	return Color{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 255}, nil
}

// RandomColor returns an opaque colour with a uniformly random 24-bit RGB value.
func RandomColor(rng *rand.Rand) Color {
	v := rng.Uint32N(1 << 24)
	return Color{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 255}
}

// Stroke describes an outline. Dash alternates on/off lengths; empty is solid.
type Stroke struct {
	Color Color
	Width float32
	Dash  []float32
}

// GuideStroke is the dashed hairline used for snap guides.
var GuideStroke = Stroke{Color: GuideBlue, Width: 1, Dash: []float32{4, 6}}
