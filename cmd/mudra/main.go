package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/ayusman/mudra/internal/app"
	"github.com/ayusman/mudra/internal/phrase"
	"github.com/ayusman/mudra/internal/server"
	"github.com/ayusman/mudra/internal/store"
	"github.com/ayusman/mudra/internal/tray"
)

func main() {
	fmt.Println("Mudra - Gesture to Phrase Assistant")

	addr := flag.String("addr", ":8080", "HTTP listen address")
	cameraID := flag.Int("camera", 0, "camera device ID")
	noTray := flag.Bool("no-tray", false, "run without the system tray")
	flag.Parse()

	homeDir, err := os.UserHomeDir()
	if err != nil {
		log.Fatalf("Failed to get home directory: %v", err)
	}

	dbDir := filepath.Join(homeDir, ".mudra")
	if err := os.MkdirAll(dbDir, 0755); err != nil {
		log.Fatalf("Failed to create data directory: %v", err)
	}

	st, err := store.New(filepath.Join(dbDir, "mudra.db"))
	if err != nil {
		log.Fatalf("Failed to initialize store: %v", err)
	}
	defer st.Close()

	// Expose the built-in phrases through the API on first run
	if err := phrase.SeedStore(st); err != nil {
		log.Fatalf("Failed to seed phrases: %v", err)
	}

	a := app.New(app.Config{
		Store:    st,
		CameraID: *cameraID,
	})
	if err := a.LoadPhrases(); err != nil {
		log.Fatalf("Failed to load phrases: %v", err)
	}

	webDir := findWebDir()
	if webDir != "" {
		fmt.Printf("Serving static files from: %s\n", webDir)
	}

	srv := server.New(server.Config{
		StaticDir:   webDir,
		Store:       st,
		Camera:      a.Camera(),
		Catalog:     a.Catalog(),
		EngineState: a.EngineState,
	})

	// Push every acceptance to connected browsers
	a.AddAcceptanceListener(func(label, reason, phraseText string) {
		srv.Live().Publish(label, reason, phraseText)
	})

	if err := a.Start(); err != nil {
		log.Fatalf("Failed to start pipeline: %v", err)
	}
	defer a.Stop()

	// Recognition state survives restarts
	enabled := true
	if v, err := st.Settings().Get("enabled"); err == nil {
		enabled = v == "true"
	}
	a.SetEnabled(enabled)

	fmt.Printf("Starting server on %s\n", *addr)
	go func() {
		if err := srv.ListenAndServe(*addr); err != nil {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	if *noTray {
		select {}
	}

	t := tray.New()
	t.OnToggle(func(enabled bool) {
		a.SetEnabled(enabled)

		value := "false"
		if enabled {
			value = "true"
		}
		if err := st.Settings().Set("enabled", value); err != nil {
			log.Printf("Failed to persist enabled state: %v", err)
		}
	})
	t.OnQuit(func() {
		a.Stop()
	})
	a.AddAcceptanceListener(func(label, reason, phraseText string) {
		if phraseText != "" {
			t.SetLastPhrase(phraseText)
		}
	})

	// Blocks until quit
	t.Run()
}

// findWebDir searches for the web directory in common locations.
// It checks: "web", "../web", "../../web", and ~/.mudra/web.
// Returns the first existing directory or empty string if none found.
func findWebDir() string {
	relativePaths := []string{"web", "../web", "../../web"}
	for _, p := range relativePaths {
		if info, err := os.Stat(p); err == nil && info.IsDir() {
			absPath, err := filepath.Abs(p)
			if err == nil {
				return absPath
			}
			return p
		}
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ""
	}

	homeWebDir := filepath.Join(homeDir, ".mudra", "web")
	if info, err := os.Stat(homeWebDir); err == nil && info.IsDir() {
		return homeWebDir
	}

	return ""
}
