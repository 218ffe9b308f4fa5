package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"

	"github.com/AKAshrimp/Interactive-3D-particle-system/internal/app"
	"github.com/AKAshrimp/Interactive-3D-particle-system/internal/engine"
	"github.com/AKAshrimp/Interactive-3D-particle-system/internal/server"
	"github.com/AKAshrimp/Interactive-3D-particle-system/internal/store"
	"github.com/AKAshrimp/Interactive-3D-particle-system/internal/tray"
)

func main() {
	var (
		addr      = flag.String("addr", ":8080", "HTTP listen address")
		cameraID  = flag.Int("camera", -1, "camera device ID (-1 uses the stored setting or device 0)")
		particles = flag.Int("particles", 0, "particle count override")
		preset    = flag.String("preset", "", "preset name override (defaults to the active preset)")
		noTray    = flag.Bool("no-tray", false, "run without a system tray icon")
	)
	flag.Parse()

	fmt.Println("Particles - gesture-driven 3D particle animation")

	homeDir, err := os.UserHomeDir()
	if err != nil {
		log.Fatalf("Failed to get home directory: %v", err)
	}

	dataDir := filepath.Join(homeDir, ".particles")
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		log.Fatalf("Failed to create data directory: %v", err)
	}

	st, err := store.New(filepath.Join(dataDir, "particles.db"))
	if err != nil {
		log.Fatalf("Failed to initialize store: %v", err)
	}
	defer st.Close()

	engineConfig := resolveEngineConfig(st, *preset)
	if *particles > 0 {
		engineConfig.ParticleCount = *particles
	}

	a := app.New(app.Config{
		Store:    st,
		HookDir:  filepath.Join(dataDir, "hooks"),
		CameraID: resolveCameraID(st, *cameraID),
		Engine:   engineConfig,
	}, nil)

	if err := a.DiscoverHooks(); err != nil {
		log.Printf("Hook discovery failed: %v", err)
	}

	if err := a.Start(); err != nil {
		log.Printf("Gesture pipeline unavailable: %v", err)
	}
	defer a.Stop()

	webDir := findWebDir()
	if webDir != "" {
		fmt.Printf("Serving static files from: %s\n", webDir)
	}

	srv := server.New(server.Config{
		StaticDir: webDir,
		Store:     st,
		App:       a,
		Camera:    a.Camera(),
		Detector:  a.Detector(),
	})

	if *noTray {
		fmt.Printf("Starting server on %s\n", *addr)
		if err := srv.ListenAndServe(*addr); err != nil {
			log.Fatalf("Server failed: %v", err)
		}
		return
	}

	go func() {
		fmt.Printf("Starting server on %s\n", *addr)
		if err := srv.ListenAndServe(*addr); err != nil {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	t := tray.New()
	t.OnToggle(a.SetEnabled)
	t.OnSetMode(func(mode engine.Mode) {
		a.Engine().SetMode(mode)
	})
	t.OnViewer(func() {
		if err := openBrowser("http://localhost" + *addr); err != nil {
			log.Printf("Failed to open browser: %v", err)
		}
	})
	t.OnQuit(a.Stop)

	// Blocks until quit. Must run on the main goroutine.
	t.Run()
}

// resolveEngineConfig overlays a stored preset onto the defaults. The
// -preset flag takes priority over the active-preset setting.
func resolveEngineConfig(st *store.Store, name string) engine.Config {
	base := engine.DefaultConfig()

	if name == "" {
		name = st.Settings().GetDefault(store.SettingActivePreset, "")
	}
	if name == "" {
		return base
	}

	p, err := st.Presets().GetByName(name)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			log.Printf("Preset %q not found, using defaults", name)
		} else {
			log.Printf("Failed to load preset %q: %v", name, err)
		}
		return base
	}

	fmt.Printf("Using preset: %s\n", p.Name)
	return app.EngineConfigFromPreset(base, p)
}

// resolveCameraID prefers the flag, then the stored setting, then 0.
func resolveCameraID(st *store.Store, flagID int) int {
	if flagID >= 0 {
		return flagID
	}
	value := st.Settings().GetDefault(store.SettingCameraID, "0")
	var id int
	if _, err := fmt.Sscanf(value, "%d", &id); err != nil || id < 0 {
		return 0
	}
	return id
}

// findWebDir searches for the web directory in common locations.
// It checks: "web", "../web", "../../web", and ~/.particles/web.
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

	homeWebDir := filepath.Join(homeDir, ".particles", "web")
	if info, err := os.Stat(homeWebDir); err == nil && info.IsDir() {
		return homeWebDir
	}

	return ""
}

// openBrowser opens the given URL in the default browser.
func openBrowser(url string) error {
	switch runtime.GOOS {
	case "darwin":
		return exec.Command("open", url).Start()
	case "windows":
		return exec.Command("rundll32", "url.dll,FileProtocolHandler", url).Start()
	default:
		return exec.Command("xdg-open", url).Start()
	}
}
