// Package mainwindow provides the translation log window and its controls.
package mainwindow

import (
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"live-translate/internal/app"
	"live-translate/internal/capture"
	"live-translate/pkg/geometry"
	"live-translate/ui/logview"
	"live-translate/ui/picker"
)

const (
	pauseLabel  = "⏸ Pause"
	resumeLabel = "▶ Resume"
)

// MainWindow is the primary application window: a toolbar, the colored
// translation log, and a status bar. It talks to the rest of the app
// only through session commands and events.
type MainWindow struct {
	fyne.Window
	app     fyne.App
	session *app.Session
	screen  *capture.Screen

	log       *logview.LogView
	pauseBtn  *widget.Button
	statusBar *widget.Label
}

// New creates the main window wired to the session.
func New(fyneApp fyne.App, session *app.Session, screen *capture.Screen) *MainWindow {
	win := fyneApp.NewWindow("Live Translate")

	mw := &MainWindow{
		Window:  win,
		app:     fyneApp,
		session: session,
		screen:  screen,
	}

	mw.setupUI()
	mw.setupEventHandlers()

	win.Resize(fyne.NewSize(760, 520))
	return mw
}

// setupUI creates the toolbar | log | status layout.
func (mw *MainWindow) setupUI() {
	mw.log = logview.New()
	mw.statusBar = widget.NewLabel("Ready. Use Select Region to frame the chat box.")

	selectBtn := widget.NewButton("Select Region", mw.onSelectRegion)
	mw.pauseBtn = widget.NewButton(pauseLabel, func() {
		mw.session.TogglePause()
	})
	clearBtn := widget.NewButton("Clear Log", func() {
		mw.session.RequestClear()
	})

	toolbar := container.NewHBox(selectBtn, mw.pauseBtn, clearBtn)

	content := container.NewBorder(
		toolbar,                           // top
		container.NewPadded(mw.statusBar), // bottom
		nil,                               // left
		nil,                               // right
		mw.log.Container(),                // center
	)
	mw.SetContent(content)
}

// setupEventHandlers subscribes the window to session events.
func (mw *MainWindow) setupEventHandlers() {
	mw.session.On(app.EventLinesReady, func(data interface{}) {
		// Lines produced during a pause are dropped here, at the
		// consumption point; the seen-set already recorded them.
		if mw.session.Paused() {
			return
		}
		mw.log.Append(data.([]string))
	})

	mw.session.On(app.EventPauseToggled, func(data interface{}) {
		if data.(bool) {
			mw.pauseBtn.SetText(resumeLabel)
			mw.statusBar.SetText("Paused")
		} else {
			mw.pauseBtn.SetText(pauseLabel)
			mw.statusBar.SetText("Translating...")
		}
	})

	mw.session.On(app.EventClearRequested, func(interface{}) {
		mw.log.Clear()
	})

	mw.session.On(app.EventRegionChanged, func(data interface{}) {
		r := data.(geometry.RectInt)
		mw.statusBar.SetText(fmt.Sprintf("Region: (%d, %d) - (%d, %d)", r.Left, r.Top, r.Right, r.Bottom))
	})

	mw.session.On(app.EventStatus, func(data interface{}) {
		mw.statusBar.SetText(data.(string))
	})
}

// onSelectRegion snapshots the desktop and opens the picker.
func (mw *MainWindow) onSelectRegion() {
	snapshot, err := mw.screen.GrabScreen()
	if err != nil {
		mw.statusBar.SetText("Snapshot failed: " + err.Error())
		return
	}

	picker.Show(mw.app, snapshot, func(r geometry.RectInt) {
		if err := mw.session.SetRegion(r); err != nil {
			mw.statusBar.SetText("Failed to save region: " + err.Error())
		}
	})
}

// Log exposes the log view, for tests.
func (mw *MainWindow) Log() *logview.LogView {
	return mw.log
}
