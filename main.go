// Package main provides the entry point for the Live Translate overlay.
package main

import (
	"context"
	"log"
	"time"

	fyneapp "fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/dialog"
	"github.com/joho/godotenv"

	"live-translate/internal/app"
	"live-translate/internal/capture"
	"live-translate/internal/config"
	"live-translate/internal/ocr"
	"live-translate/internal/pipeline"
	"live-translate/internal/translate"
	"live-translate/ui/mainwindow"
)

const (
	appTitle   = "Live Translate"
	appVersion = "0.1.0"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Printf("Starting %s v%s", appTitle, appVersion)

	// Credentials come from .env or the environment; absent key means
	// pass-through mode.
	_ = godotenv.Load()

	cfg, err := config.Load(config.DefaultPath)
	if err != nil {
		log.Printf("Config unreadable, using defaults: %v", err)
	}

	fyneApp := fyneapp.New()
	fyneApp.Settings().SetTheme(&app.DarkLogTheme{})

	session := app.NewSession(config.DefaultPath, cfg)
	screen := capture.NewScreen()

	var extractor ocr.Extractor
	engine, err := ocr.NewEngine()
	if err != nil {
		// Run without recognition rather than refuse to start.
		log.Printf("OCR unavailable, pipeline will produce no lines: %v", err)
	} else {
		extractor = engine
		defer engine.Close()
	}

	translator := translate.NewClientFromEnv()
	if !translator.Configured() {
		log.Println("DEEPL_API_KEY not set, running in pass-through mode")
	}

	pipe := pipeline.New(session, screen, extractor, translator)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go pipe.Run(ctx)

	win := mainwindow.New(fyneApp, session, screen)
	setupHotReload(win)

	win.ShowAndRun()
}

// setupHotReload prompts for a restart when the binary is recompiled.
func setupHotReload(win *mainwindow.MainWindow) {
	reloader := app.NewHotReloader(2 * time.Second)
	if reloader == nil {
		log.Println("Hot reload: unable to determine executable path")
		return
	}

	reloader.OnNewBinary(func() {
		log.Println("Hot reload: newer binary detected")
		dialog.ShowConfirm(
			"New Version Available",
			"The application binary has been updated.\nRestart now?",
			func(restart bool) {
				if !restart {
					return
				}
				log.Println("Hot reload: restarting...")
				if err := reloader.Restart(); err != nil {
					log.Printf("Hot reload: restart failed: %v", err)
				}
			},
			win,
		)
	})

	reloader.Start()
}
