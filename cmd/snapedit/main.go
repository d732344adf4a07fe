/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"slices"

	"gopkg.in/yaml.v3"

	"snapedit/internal/config"
	"snapedit/internal/crash"
	"snapedit/internal/demo"
	applog "snapedit/internal/log"
	"snapedit/internal/ui"
	"snapedit/internal/version"
)

func usage() {
	fmt.Println("Snap Editor")
	fmt.Printf("Version: %s\n", version.String())
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Println("  snapedit version|-v|--version     Show version")
	fmt.Println("  snapedit ui                       Launch desktop editor (build with -tags fyne for full UI)")
	fmt.Println("  snapedit demo <dir>               Replay a scripted session and write PNG frames and a PDF into <dir>")
	fmt.Println("  snapedit config                   Print config path and effective settings")
	fmt.Println("  snapedit config init              Write the default config file if none exists")
}

func main() {
	cfg, cfgErr := config.LoadDefault()
	// initialize structured logging from the config (env wins inside Load)
	applog.Init(cfg.Logging.LogOptions())
	defer func() { _ = applog.Close() }()
	defer crash.Recover(nil)
	l := applog.WithComponent("cli")
	if cfgErr != nil {
		l.Warn("config not loaded, using defaults", slog.Any("err", cfgErr))
		cfg = config.Defaults()
	}

	args := os.Args
	l.Debug("start", slog.Int("args", len(args)))
	if len(args) > 1 {
		switch args[1] {
		case "version", "--version", "-v":
			fmt.Println("Snap Editor")
			fmt.Println(version.String())
			return
		case "ui":
			if err := ui.Run(cfg); err != nil {
				fmt.Println("Error:", err)
				os.Exit(1)
			}
			return
		case "demo":
			if len(args) < 3 {
				fmt.Println("demo requires <dir>")
				usage()
				os.Exit(2)
			}
			abs, err := filepath.Abs(args[2])
			if err != nil {
				l.Error("resolve demo dir failed", slog.Any("err", err))
				fmt.Println("Error:", err)
				os.Exit(1)
			}
			l.Info("demo", slog.String("out", abs))
			s := demo.NewSession(cfg)
			defer crash.Recover(s)
			frames, err := demo.Play(s, cfg.Canvas.BackgroundColor(), abs)
			if err != nil {
				l.Error("demo failed", slog.Any("err", err))
				fmt.Println("Error:", err)
				os.Exit(1)
			}
			for _, f := range frames {
				fmt.Printf("%-13s %s\n", f.Step, f.Path)
				fmt.Printf("%-13s %s\n", "", f.Summary)
			}
			return
		case "config":
			path, err := config.ConfigPath()
			if err != nil {
				fmt.Println("Error:", err)
				os.Exit(1)
			}
			if len(args) >= 3 && args[2] == "init" {
				if _, err := os.Stat(path); err == nil {
					fmt.Println("Config already exists at", path)
					return
				}
				if err := config.Save(path, config.Defaults()); err != nil {
					l.Error("config init failed", slog.Any("err", err))
					fmt.Println("Error:", err)
					os.Exit(1)
				}
				fmt.Println("Wrote default config to", path)
				return
			}
			printConfig(path, cfg)
			return
		}
	}

	usage()
}

func printConfig(path string, cfg config.AppConfig) {
	fmt.Println("Config file:", path)
	out, err := yaml.Marshal(cfg)
	if err != nil {
		fmt.Println("Error:", err)
		os.Exit(1)
	}
	fmt.Println(string(out))
	keys := []string{
		"canvas.width", "canvas.height", "editor.snap_tolerance", "editor.initial_shapes",
		"editor.seed", "logging.level", "logging.format", "logging.source", "logging.file",
	}
	var overridden []string
	for _, k := range keys {
		if env, ok := config.EnvOverrideFor(k); ok {
			overridden = append(overridden, fmt.Sprintf("  %s (from %s)", k, env))
		}
	}
	if len(overridden) == 0 {
		return
	}
	slices.Sort(overridden)
	fmt.Println("Overridden by environment:")
	for _, o := range overridden {
		fmt.Println(o)
	}
}
