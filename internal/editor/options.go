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
	"math/rand/v2"
	"time"

	"snapedit/internal/config"
	applog "snapedit/internal/log"
	"snapedit/internal/vector"
)

// Options configures a Session. Non-positive sizes, tolerance and offset fall back
// to DefaultOptions; InitialShapes is taken as is.
type Options struct {
	Canvas        vector.Size
	InitialShapes int
	MinShapeSize  float32
	MaxShapeSize  float32
	SnapTolerance float32
	PasteOffset   float32
	// Rand drives shape placement and fill colours. Nil seeds from the clock.
	Rand   *rand.Rand
	Logger *slog.Logger
}

// DefaultOptions mirrors the stock canvas: five shapes on 1024x768.
func DefaultOptions() Options {
	return Options{
		Canvas:        vector.Size{W: 1024, H: 768},
		InitialShapes: 5,
		MinShapeSize:  50,
		MaxShapeSize:  100,
		SnapTolerance: vector.DefaultSnapTolerance,
		PasteOffset:   DefaultPasteOffset,
	}
}

func (o Options) withDefaults() Options {
	d := DefaultOptions()
	if o.Canvas.W <= 0 || o.Canvas.H <= 0 {
		o.Canvas = d.Canvas
	}
	if o.InitialShapes < 0 {
		o.InitialShapes = 0
	}
	if o.MinShapeSize <= 0 {
		o.MinShapeSize = d.MinShapeSize
	}
	if o.MaxShapeSize < o.MinShapeSize {
		o.MaxShapeSize = o.MinShapeSize
	}
	if o.SnapTolerance <= 0 {
		o.SnapTolerance = d.SnapTolerance
	}
	if o.PasteOffset <= 0 {
		o.PasteOffset = d.PasteOffset
	}
	if o.Rand == nil {
		seed := uint64(time.Now().UnixNano())
		o.Rand = rand.New(rand.NewPCG(seed, seed>>1))
	}
	if o.Logger == nil {
		o.Logger = applog.WithComponent("editor")
	}
	return o
}

// OptionsFromConfig maps the user configuration onto session options. A
// zero seed leaves Rand nil so the session seeds from the clock.
func OptionsFromConfig(cfg config.AppConfig, l *slog.Logger) Options {
	o := Options{
		Canvas:        cfg.Canvas.Size(),
		InitialShapes: cfg.Editor.InitialShapes,
		MinShapeSize:  float32(cfg.Editor.MinShapeSize),
		MaxShapeSize:  float32(cfg.Editor.MaxShapeSize),
		SnapTolerance: float32(cfg.Editor.SnapTolerance),
		PasteOffset:   float32(cfg.Editor.PasteOffset),
		Logger:        l,
	}
	if seed := cfg.Editor.Seed; seed != 0 {
		o.Rand = rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	}
	return o
}
