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
	"os"
	"path/filepath"

	"github.com/jung-kurt/gofpdf"

	"snapedit/internal/version"
	"snapedit/internal/vector"
)

// WritePDF writes snap as a single-page vector PDF to path. One canvas unit
// maps to one point; the page origin is top-left like the canvas.
func WritePDF(path string, snap Snapshot, opt Options) error {
	if snap.Canvas.W <= 0 || snap.Canvas.H <= 0 {
		return fmt.Errorf("empty canvas %gx%g", snap.Canvas.W, snap.Canvas.H)
	}
	w, h := float64(snap.Canvas.W), float64(snap.Canvas.H)
	pdf := gofpdf.NewCustom(&gofpdf.InitType{
		UnitStr: "pt",
		Size:    gofpdf.SizeType{Wd: w, Ht: h},
	})
	title := opt.Title
	if title == "" {
		title = "snapedit snapshot"
	}
	pdf.SetTitle(title, true)
	pdf.SetCreator("snapedit "+version.String(), true)
	pdf.SetAutoPageBreak(false, 0)
	pdf.AddPage()

	setFillColor(pdf, snap.Background)
	pdf.Rect(0, 0, w, h, "F")

	// Built-in Helvetica keeps labels vector without embedding
	pdf.SetFont("Helvetica", "", labelSize)
	for _, sh := range snap.Nodes {
		b := sh.Bounds
		setFillColor(pdf, sh.Fill)
		pdf.Rect(float64(b.X), float64(b.Y), float64(b.W), float64(b.H), "F")
		if opt.Labels && sh.Label != "" {
			c := contrast(sh.Fill)
			pdf.SetTextColor(int(c.R), int(c.G), int(c.B))
			pdf.Text(float64(b.X)+3, float64(b.Y)+labelSize+1, sh.Label)
		}
	}

	if snap.Selected > 0 {
		r := snap.Selection
		setDrawColor(pdf, vector.SelectionBlue)
		pdf.SetLineWidth(1)
		pdf.Rect(float64(r.X), float64(r.Y), float64(r.W), float64(r.H), "D")
	}

	gs := vector.GuideStroke
	setDrawColor(pdf, gs.Color)
	pdf.SetLineWidth(float64(gs.Width))
	pdf.SetDashPattern(dashes(gs.Dash), 0)
	for _, g := range snap.Guides {
		pdf.Line(float64(g.From.X), float64(g.From.Y), float64(g.To.X), float64(g.To.Y))
	}
	pdf.SetDashPattern([]float64{}, 0)

	if snap.BandShown {
		b := snap.Band
		setFillColor(pdf, vector.BandFill)
		setDrawColor(pdf, vector.BandStroke)
		pdf.SetAlpha(float64(vector.BandFill.A)/255, "Normal")
		pdf.Rect(float64(b.X), float64(b.Y), float64(b.W), float64(b.H), "FD")
		pdf.SetAlpha(1, "Normal")
	}

	if err := pdf.Error(); err != nil {
		return fmt.Errorf("build pdf: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("ensure out dir: %w", err)
	}
	if err := pdf.OutputFileAndClose(path); err != nil {
		return fmt.Errorf("write pdf: %w", err)
	}
	return nil
}

func setDrawColor(pdf *gofpdf.Fpdf, c vector.Color) {
	pdf.SetDrawColor(int(c.R), int(c.G), int(c.B))
}

func setFillColor(pdf *gofpdf.Fpdf, c vector.Color) {
	pdf.SetFillColor(int(c.R), int(c.G), int(c.B))
}
