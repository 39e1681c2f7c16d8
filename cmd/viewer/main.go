package main

import (
	"log"
	"os"
	"runtime"

	"imageviewer/internal/app"
	"imageviewer/internal/config"
	"imageviewer/internal/display"
)

func init() {
	// okna muszą być obsługiwane z głównego wątku
	runtime.LockOSThread()
}

func main() {
	cfg := config.Load()
	application := app.NewApp(cfg, display.Open, os.Stdout)

	log.Printf("Display backend: %s", display.Backend)
	if err := application.Run(); err != nil {
		log.Fatalf("Viewer failed: %v", err)
	}
}
