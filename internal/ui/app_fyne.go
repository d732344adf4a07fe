//go:build fyne && cgo

/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package ui

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	fstorage "fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/widget"

	"snapedit/internal/config"
	"snapedit/internal/crash"
	"snapedit/internal/editor"
	applog "snapedit/internal/log"
	"snapedit/internal/render"
)

// Run opens the editor window for a freshly populated session and blocks
// until the window is closed.
func Run(cfg config.AppConfig) error {
	l := applog.WithComponent("ui")
	l.Info("starting UI")

	session := editor.NewSession(editor.OptionsFromConfig(cfg, applog.WithComponent("editor")))
	session.Populate()
	defer crash.Recover(session)

	fyneApp := app.NewWithID("snapedit")
	w := fyneApp.NewWindow("Snap Editor")
	// Restore window size from preferences (with sane minimums)
	prefs := fyneApp.Preferences()
	winW := max(prefs.IntWithFallback("window.width", int(cfg.Canvas.Width)), 640)
	winH := max(prefs.IntWithFallback("window.height", int(cfg.Canvas.Height)), 480)
	w.Resize(fyne.NewSize(float32(winW), float32(winH)))

	status := widget.NewLabel("Ready")
	ec := NewEditorCanvas(session, cfg.Canvas.BackgroundColor())
	updateStatus := func() { status.SetText(statusText(session)) }
	ec.OnChanged = updateStatus
	updateStatus()

	// Ctrl/Cmd+A, C and V arrive as standard shortcuts, Delete as a typed key.
	shortcut := func(code editor.Key) func(fyne.Shortcut) {
		return func(fyne.Shortcut) { ec.Key(editor.KeyEvent{Code: code, Mods: editor.Mods{Ctrl: true}}) }
	}
	w.Canvas().AddShortcut(&fyne.ShortcutSelectAll{}, shortcut(editor.KeyA))
	w.Canvas().AddShortcut(&fyne.ShortcutCopy{}, shortcut(editor.KeyC))
	w.Canvas().AddShortcut(&fyne.ShortcutPaste{}, shortcut(editor.KeyV))
	w.Canvas().SetOnTypedKey(func(ev *fyne.KeyEvent) {
		if ev.Name == fyne.KeyDelete || ev.Name == fyne.KeyBackspace {
			ec.Key(editor.KeyEvent{Code: editor.KeyDelete})
		}
	})

	exportItem := func(label, ext string, write func(path string) error) *fyne.MenuItem {
		return fyne.NewMenuItem(label, func() {
			save := dialog.NewFileSave(func(uc fyne.URIWriteCloser, err error) {
				if err != nil {
					dialog.ShowError(err, w)
					return
				}
				if uc == nil {
					return
				}
				outPath := uc.URI().Path()
				_ = uc.Close()
				if !strings.HasSuffix(strings.ToLower(outPath), ext) {
					outPath += ext
				}
				if err := write(outPath); err != nil {
					l.Error("export failed", slog.String("path", outPath), slog.Any("err", err))
					dialog.ShowError(err, w)
					return
				}
				l.Info("exported", slog.String("path", outPath))
				dialog.ShowInformation(label, "Exported to "+filepath.Base(outPath), w)
			}, w)
			save.SetFileName("canvas" + ext)
			save.SetFilter(fstorage.NewExtensionFileFilter([]string{ext}))
			save.Show()
		})
	}
	snapshot := func() render.Snapshot { return render.FromSession(session, cfg.Canvas.BackgroundColor()) }
	pngItem := exportItem("Export PNG…", ".png", func(p string) error {
		return render.WritePNG(p, snapshot(), render.Options{Scale: 1})
	})
	pdfItem := exportItem("Export PDF…", ".pdf", func(p string) error {
		return render.WritePDF(p, snapshot(), render.Options{Title: "snapedit canvas"})
	})
	fileMenu := fyne.NewMenu("File", pngItem, pdfItem)

	editItem := func(label string, code editor.Key) *fyne.MenuItem {
		return fyne.NewMenuItem(label, func() {
			l.Info("menu: " + strings.ToLower(label))
			ec.Key(editor.KeyEvent{Code: code, Mods: editor.Mods{Ctrl: true}})
		})
	}
	editMenu := fyne.NewMenu("Edit",
		editItem("Select All", editor.KeyA),
		fyne.NewMenuItemSeparator(),
		editItem("Copy", editor.KeyC),
		editItem("Paste", editor.KeyV),
		editItem("Delete", editor.KeyDelete),
	)
	w.SetMainMenu(fyne.NewMainMenu(fileMenu, editMenu))

	w.SetContent(container.NewBorder(nil, status, nil, nil, ec))

	// Persist preferences on close
	w.SetCloseIntercept(func() {
		sz := w.Canvas().Size()
		prefs.SetInt("window.width", int(sz.Width))
		prefs.SetInt("window.height", int(sz.Height))
		l.Info("closing", slog.String("session", session.CrashSummary()))
		w.Close()
	})

	w.ShowAndRun()
	return nil
}

func statusText(s *editor.Session) string {
	return fmt.Sprintf("Shapes: %d | Selected: %d | Clipboard: %d",
		s.Scene().Len(), s.Selection().Len(), s.Clipboard().Len())
}
