package main

import (
	"flag"
	"log"

	"github.com/AKAshrimp/Interactive-3D-particle-system/internal/app"
	"github.com/AKAshrimp/Interactive-3D-particle-system/internal/engine"
	"github.com/AKAshrimp/Interactive-3D-particle-system/internal/viewer"
)

func main() {
	var (
		cameraID  = flag.Int("camera", 0, "camera device ID")
		particles = flag.Int("particles", 0, "particle count override")
	)
	flag.Parse()

	engineConfig := engine.DefaultConfig()
	if *particles > 0 {
		engineConfig.ParticleCount = *particles
	}

	v := viewer.New()

	a := app.New(app.Config{
		CameraID: *cameraID,
		Engine:   engineConfig,
	}, v)

	if err := a.Start(); err != nil {
		log.Printf("Gesture pipeline unavailable: %v", err)
	}
	defer a.Stop()

	// ebiten owns the main goroutine until the window closes.
	if err := v.Run(); err != nil {
		log.Fatalf("Viewer failed: %v", err)
	}
}
