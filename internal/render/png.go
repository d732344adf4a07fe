/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package render

import (
	"fmt"
	"image"
	"io"
	"os"
	"path/filepath"
	"sync"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"

	"snapedit/internal/vector"
)

const labelSize = 11.0

var (
	labelFontOnce sync.Once
	labelFont     *truetype.Font
	labelFontErr  error
)

func labelFace(scale float64) (font.Face, error) {
	labelFontOnce.Do(func() {
		labelFont, labelFontErr = truetype.Parse(goregular.TTF)
	})
	if labelFontErr != nil {
		return nil, fmt.Errorf("parse label font: %w", labelFontErr)
	}
	return truetype.NewFace(labelFont, &truetype.Options{
		Size:    labelSize * scale,
		DPI:     72,
		Hinting: font.HintingFull,
	}), nil
}

// Render rasterizes snap. The image is Canvas scaled by opt.Scale.
func Render(snap Snapshot, opt Options) (image.Image, error) {
	dc, err := draw(snap, opt)
	if err != nil {
		return nil, err
	}
	return dc.Image(), nil
}

// EncodePNG writes snap as PNG to w.
func EncodePNG(w io.Writer, snap Snapshot, opt Options) error {
	dc, err := draw(snap, opt)
	if err != nil {
		return err
	}
	if err := dc.EncodePNG(w); err != nil {
		return fmt.Errorf("encode png: %w", err)
	}
	return nil
}

// WritePNG renders snap into the PNG file at path, creating parent
// directories as needed.
func WritePNG(path string, snap Snapshot, opt Options) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("ensure out dir: %w", err)
	}
	dc, err := draw(snap, opt)
	if err != nil {
		return err
	}
	if err := dc.SavePNG(path); err != nil {
		return fmt.Errorf("write png: %w", err)
	}
	return nil
}

func draw(snap Snapshot, opt Options) (*gg.Context, error) {
	if snap.Canvas.W <= 0 || snap.Canvas.H <= 0 {
		return nil, fmt.Errorf("empty canvas %gx%g", snap.Canvas.W, snap.Canvas.H)
	}
	s := opt.scale()
	dc := gg.NewContext(int(float64(snap.Canvas.W)*s+0.5), int(float64(snap.Canvas.H)*s+0.5))
	dc.Scale(s, s)

	dc.SetColor(snap.Background)
	dc.Clear()

	if opt.Labels {
		face, err := labelFace(1)
		if err != nil {
			return nil, err
		}
		dc.SetFontFace(face)
	}
	for _, sh := range snap.Nodes {
		b := sh.Bounds
		dc.SetColor(sh.Fill)
		dc.DrawRectangle(float64(b.X), float64(b.Y), float64(b.W), float64(b.H))
		dc.Fill()
		if opt.Labels && sh.Label != "" {
			dc.SetColor(contrast(sh.Fill))
			dc.DrawString(sh.Label, float64(b.X)+3, float64(b.Y)+labelSize+1)
		}
	}

	if snap.Selected > 0 {
		strokeRect(dc, snap.Selection, vector.Stroke{Color: vector.SelectionBlue, Width: 1})
	}

	gs := vector.GuideStroke
	dc.SetColor(gs.Color)
	dc.SetLineWidth(float64(gs.Width))
	dc.SetDash(dashes(gs.Dash)...)
	for _, g := range snap.Guides {
		dc.DrawLine(float64(g.From.X), float64(g.From.Y), float64(g.To.X), float64(g.To.Y))
		dc.Stroke()
	}
	dc.SetDash()

	if snap.BandShown {
		b := snap.Band
		dc.SetColor(vector.BandFill)
		dc.DrawRectangle(float64(b.X), float64(b.Y), float64(b.W), float64(b.H))
		dc.Fill()
		strokeRect(dc, b, vector.Stroke{Color: vector.BandStroke, Width: 1})
	}
	return dc, nil
}

func strokeRect(dc *gg.Context, r vector.Rect, st vector.Stroke) {
	dc.SetColor(st.Color)
	dc.SetLineWidth(float64(st.Width))
	dc.DrawRectangle(float64(r.X), float64(r.Y), float64(r.W), float64(r.H))
	dc.Stroke()
}

func dashes(d []float32) []float64 {
	out := make([]float64, len(d))
	for i, v := range d {
		out[i] = float64(v)
	}
	return out
}

// contrast picks black or white text for a fill colour.
func contrast(c vector.Color) vector.Color {
	lum := 299*int(c.R) + 587*int(c.G) + 114*int(c.B)
	if lum > 128*1000 {
		return vector.Black
	}
	return vector.White
}
