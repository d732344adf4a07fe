/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package config loads the user configuration of snapedit: a YAML file in
// the per-user config directory, merged over Defaults, with environment
// variables as read-only runtime overrides.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	applog "snapedit/internal/log"
	"snapedit/internal/vector"
)

// CurrentVersion is the config_version written by Save. Bump it when the
// structure changes in a backward-incompatible way.
const CurrentVersion = 1

type CanvasConfig struct {
	Width      float64 `yaml:"width" json:"width"`
	Height     float64 `yaml:"height" json:"height"`
	Background string  `yaml:"background" json:"background"` // #rrggbb
}

type EditorConfig struct {
	InitialShapes int     `yaml:"initial_shapes" json:"initial_shapes"`
	MinShapeSize  float64 `yaml:"min_shape_size" json:"min_shape_size"`
	MaxShapeSize  float64 `yaml:"max_shape_size" json:"max_shape_size"`
	SnapTolerance float64 `yaml:"snap_tolerance" json:"snap_tolerance"`
	PasteOffset   float64 `yaml:"paste_offset" json:"paste_offset"`
	// Seed makes shape placement and colours reproducible. 0 seeds from the clock.
	Seed uint64 `yaml:"seed" json:"seed"`
}

type LoggingConfig struct {
	Level  string `yaml:"level" json:"level"`
	Format string `yaml:"format" json:"format"`
	Source bool   `yaml:"source" json:"source"`
	File   string `yaml:"file" json:"file"`
}

type AppConfig struct {
	ConfigVersion int           `yaml:"config_version" json:"config_version"`
	Canvas        CanvasConfig  `yaml:"canvas" json:"canvas"`
	Editor        EditorConfig  `yaml:"editor" json:"editor"`
	Logging       LoggingConfig `yaml:"logging" json:"logging"`
}

// Defaults returns the application defaults.
func Defaults() AppConfig {
	return AppConfig{
		ConfigVersion: CurrentVersion,
		Canvas:        CanvasConfig{Width: 1024, Height: 768, Background: "#ffffff"},
		Editor: EditorConfig{
			InitialShapes: 5,
			MinShapeSize:  50,
			MaxShapeSize:  100,
			SnapTolerance: 5,
			PasteOffset:   20,
		},
		Logging: LoggingConfig{Level: "info", Format: "console"},
	}
}

// Env var names used as overrides.
const (
	EnvCanvasWidth   = "SNAPEDIT_CANVAS_WIDTH"
	EnvCanvasHeight  = "SNAPEDIT_CANVAS_HEIGHT"
	EnvSnapTolerance = "SNAPEDIT_SNAP_TOLERANCE"
	EnvInitialShapes = "SNAPEDIT_INITIAL_SHAPES"
	EnvSeed          = "SNAPEDIT_SEED"
	EnvLogLevel      = applog.EnvLevel
	EnvLogFormat     = applog.EnvFormat
	EnvLogSource     = applog.EnvSource
	EnvLogFile       = applog.EnvFile
)

// ConfigPath returns the per-user config file path.
func ConfigPath() (string, error) {
	var base string
	switch runtime.GOOS {
	case "windows":
		base = os.Getenv("AppData")
		if base == "" {
			base = filepath.Join(os.Getenv("USERPROFILE"), "AppData", "Roaming")
		}
		base = filepath.Join(base, "SnapEdit")
	case "darwin":
		base = filepath.Join(os.Getenv("HOME"), "Library", "Application Support", "SnapEdit")
	default:
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			base = filepath.Join(xdg, "snapedit")
		} else {
			base = filepath.Join(os.Getenv("HOME"), ".config", "snapedit")
		}
	}
	if base == "" {
		return "", errors.New("cannot resolve config directory")
	}
	return filepath.Join(base, "config.yaml"), nil
}

// LoadDefault loads the config from ConfigPath.
func LoadDefault() (AppConfig, error) {
	path, err := ConfigPath()
	if err != nil {
		return Defaults(), err
	}
	return Load(path)
}

// Load reads the YAML file at path (a missing file is not an error), merges it
// over Defaults, applies environment overrides and validates the result.
func Load(path string) (AppConfig, error) {
	cfg := Defaults()
	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
	case err != nil:
		return cfg, fmt.Errorf("read config %s: %w", path, err)
	default:
		var fileCfg AppConfig
		if err := yaml.Unmarshal(data, &fileCfg); err != nil {
			return cfg, fmt.Errorf("parse config %s: %w", path, err)
		}
		mergeInto(&cfg, &fileCfg)
	}
	applyEnvOverrides(&cfg)
	if err := Validate(cfg); err != nil {
		return Defaults(), fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Save validates cfg and writes it as YAML to path.
func Save(path string, cfg AppConfig) error {
	if cfg.ConfigVersion == 0 {
		cfg.ConfigVersion = CurrentVersion
	}
	if err := Validate(cfg); err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("write config %s: %w", path, err)
	}
	return nil
}

// mergeInto copies the fields set in src over dst. Zero numbers and empty
// strings keep the dst value; booleans and the seed are copied as is.
func mergeInto(dst *AppConfig, src *AppConfig) {
	if src.ConfigVersion != 0 {
		dst.ConfigVersion = src.ConfigVersion
	}
	if src.Canvas.Width != 0 {
		dst.Canvas.Width = src.Canvas.Width
	}
	if src.Canvas.Height != 0 {
		dst.Canvas.Height = src.Canvas.Height
	}
	if v := strings.TrimSpace(src.Canvas.Background); v != "" {
		dst.Canvas.Background = strings.ToLower(v)
	}
	if src.Editor.InitialShapes != 0 {
		dst.Editor.InitialShapes = src.Editor.InitialShapes
	}
	if src.Editor.MinShapeSize != 0 {
		dst.Editor.MinShapeSize = src.Editor.MinShapeSize
	}
	if src.Editor.MaxShapeSize != 0 {
		dst.Editor.MaxShapeSize = src.Editor.MaxShapeSize
	}
	if src.Editor.SnapTolerance != 0 {
		dst.Editor.SnapTolerance = src.Editor.SnapTolerance
	}
	if src.Editor.PasteOffset != 0 {
		dst.Editor.PasteOffset = src.Editor.PasteOffset
	}
	dst.Editor.Seed = src.Editor.Seed
	// logging
	if strings.TrimSpace(src.Logging.Level) != "" {
		dst.Logging.Level = strings.ToLower(strings.TrimSpace(src.Logging.Level))
	}
	if strings.TrimSpace(src.Logging.Format) != "" {
		dst.Logging.Format = strings.ToLower(strings.TrimSpace(src.Logging.Format))
	}
	dst.Logging.Source = src.Logging.Source
	if strings.TrimSpace(src.Logging.File) != "" {
		dst.Logging.File = strings.TrimSpace(src.Logging.File)
	}
}

func applyEnvOverrides(cfg *AppConfig) {
	if f, ok := envFloat(EnvCanvasWidth); ok {
		cfg.Canvas.Width = f
	}
	if f, ok := envFloat(EnvCanvasHeight); ok {
		cfg.Canvas.Height = f
	}
	if f, ok := envFloat(EnvSnapTolerance); ok {
		cfg.Editor.SnapTolerance = f
	}
	if v := strings.TrimSpace(os.Getenv(EnvInitialShapes)); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Editor.InitialShapes = n
		}
	}
	if v := strings.TrimSpace(os.Getenv(EnvSeed)); v != "" {
		if n, err := strconv.ParseUint(v, 10, 64); err == nil {
			cfg.Editor.Seed = n
		}
	}
	// logging overrides
	if v := strings.TrimSpace(os.Getenv(EnvLogLevel)); v != "" {
		cfg.Logging.Level = strings.ToLower(v)
	}
	if v := strings.TrimSpace(os.Getenv(EnvLogFormat)); v != "" {
		cfg.Logging.Format = strings.ToLower(v)
	}
	if v := strings.TrimSpace(os.Getenv(EnvLogSource)); v != "" {
		cfg.Logging.Source = truthy(v)
	}
	if v := strings.TrimSpace(os.Getenv(EnvLogFile)); v != "" {
		cfg.Logging.File = v
	}
}

func envFloat(key string) (float64, bool) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(v, 64)
	return f, err == nil
}

func truthy(v string) bool {
	switch strings.ToLower(v) {
	case "1", "true", "on", "yes":
		return true
	}
	return false
}

var envKeys = map[string]string{
	"canvas.width":          EnvCanvasWidth,
	"canvas.height":         EnvCanvasHeight,
	"editor.snap_tolerance": EnvSnapTolerance,
	"editor.initial_shapes": EnvInitialShapes,
	"editor.seed":           EnvSeed,
	"logging.level":         EnvLogLevel,
	"logging.format":        EnvLogFormat,
	"logging.source":        EnvLogSource,
	"logging.file":          EnvLogFile,
}

// EnvOverrideFor returns the env var name if the field is overridden by
// environment variables.
func EnvOverrideFor(key string) (string, bool) {
	env, ok := envKeys[key]
	if !ok || os.Getenv(env) == "" {
		return "", false
	}
	return env, true
}

// LogOptions converts the logging section for log.Init.
func (l LoggingConfig) LogOptions() applog.Options {
	return applog.Options{Level: l.Level, Format: l.Format, AddSource: l.Source, File: l.File}
}

// BackgroundColor parses Canvas.Background, falling back to white.
func (c CanvasConfig) BackgroundColor() vector.Color {
	col, err := vector.ParseHex(c.Background)
	if err != nil {
		return vector.White
	}
	return col
}

// Size returns the canvas size in canvas units.
func (c CanvasConfig) Size() vector.Size {
	return vector.Size{W: float32(c.Width), H: float32(c.Height)}
}
