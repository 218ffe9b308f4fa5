package app

import (
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/AKAshrimp/Interactive-3D-particle-system/internal/detector"
	"github.com/AKAshrimp/Interactive-3D-particle-system/internal/engine"
	"github.com/AKAshrimp/Interactive-3D-particle-system/internal/gesture"
	"github.com/AKAshrimp/Interactive-3D-particle-system/internal/plugin"
)

// runPipeline is the tracking loop that feeds camera frames through
// hand detection into the debouncer and the animation engine.
//
// The loop idles at a low frame rate until motion appears, then raises
// the rate while a hand is being tracked. Hand detection only runs in
// active mode. Every processed frame updates the debouncer, including
// no-detection frames: signal loss resets any pending transition but
// never flips the confirmed state.
func (a *App) runPipeline() {
	a.mu.RLock()
	stopCh := a.stopCh
	a.mu.RUnlock()

	activeMode := false
	lastMotionTime := time.Now()

	frameInterval := time.Second / time.Duration(IdleFPS)
	ticker := time.NewTicker(frameInterval)
	defer ticker.Stop()

	for {
		select {
		case <-stopCh:
			return
		case <-ticker.C:
			if !a.IsEnabled() {
				continue
			}

			frame, err := a.camera.ReadFrame()
			if err != nil {
				log.Printf("Error reading frame: %v", err)
				continue
			}

			motionDetected, _ := a.motion.Detect(frame)

			if motionDetected {
				lastMotionTime = time.Now()
				if !activeMode {
					activeMode = true
					a.camera.SetFPS(ActiveFPS)
					frameInterval = time.Second / time.Duration(ActiveFPS)
					ticker.Reset(frameInterval)
					log.Println("Switched to active mode")
				}
			} else if activeMode {
				if time.Since(lastMotionTime) > time.Duration(IdleTimeoutMs)*time.Millisecond {
					activeMode = false
					a.camera.SetFPS(IdleFPS)
					frameInterval = time.Second / time.Duration(IdleFPS)
					ticker.Reset(frameInterval)
					// Dropping to idle counts as signal loss.
					a.debouncer.Update(nil)
					log.Println("Switched to idle mode")
				}
			}

			if !activeMode {
				frame.Close()
				continue
			}

			det := a.Detector()
			if det == nil {
				frame.Close()
				continue
			}

			hands, err := det.Detect(frame)
			frame.Close()

			if err != nil {
				log.Printf("Error detecting hands: %v", err)
				continue
			}

			a.processHands(hands)
		}
	}
}

// processHands feeds one frame of detection results through the
// debouncer and steers the engine.
func (a *App) processHands(hands []detector.HandLandmarks) {
	if len(hands) == 0 {
		a.debouncer.Update(nil)
		return
	}

	// The animation follows one hand; extra detections are ignored.
	hand := &hands[0]

	previous := a.debouncer.State()
	state, changed := a.debouncer.Update(hand)
	if changed {
		a.applyGesture(previous, state)
	}

	// Palm position steers the cloud rotation. Image coordinates are in
	// [0,1]; the engine wants [-1,1] per axis.
	palm := hand.PalmCenter()
	a.engine.SetTargetRotation(palm.X*2-1, palm.Y*2-1)
}

// applyGesture maps a confirmed gesture transition to an animation mode
// switch and dispatches action hooks.
func (a *App) applyGesture(previous, state gesture.State) {
	var mode engine.Mode
	switch state {
	case gesture.StateFist:
		mode = engine.ModeHeart
	case gesture.StateOpen:
		mode = engine.ModeStarfield
	default:
		return
	}

	modeChanged := a.engine.Mode() != mode
	a.engine.SetMode(mode)
	log.Printf("Gesture confirmed: %s -> %s (mode %s)", previous, state, mode)

	a.dispatchHooks(plugin.EventGestureConfirmed, previous, state, mode)
	if modeChanged {
		a.dispatchHooks(plugin.EventModeChanged, previous, state, mode)
	}
}

// dispatchHooks runs all hooks subscribed to event. Hooks execute off
// the pipeline goroutine so a slow hook cannot stall tracking.
func (a *App) dispatchHooks(event string, from, to gesture.State, mode engine.Mode) {
	hooks := a.hookMgr.ForEvent(event)
	if len(hooks) == 0 {
		return
	}

	req := &plugin.Request{
		InvocationID: uuid.New().String(),
		Event:        event,
		From:         string(from),
		To:           string(to),
		Mode:         string(mode),
	}

	go func() {
		for _, hook := range hooks {
			if _, err := a.hookExec.Execute(hook, req); err != nil {
				log.Printf("Hook %s failed: %v", hook.Manifest.Name, err)
			}
		}
	}()
}
