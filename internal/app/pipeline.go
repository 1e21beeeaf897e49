package app

import (
	"log"
	"time"

	"github.com/ayusman/mudra/internal/classifier"
	"github.com/ayusman/mudra/internal/engine"
	"github.com/ayusman/mudra/internal/store"
)

// runPipeline is the main recognition loop. It reads frames from the camera,
// gates them on motion, and feeds detected hands through the classifier and
// the decision engine.
//
// Loop logic:
// 1. Start in idle mode (5 FPS)
// 2. On motion, switch to active mode (15 FPS)
// 3. Run hand detection; no hands ends the current tracking session
// 4. Classify the first hand and hand the frame to the decision engine
// 5. On acceptance: look up the phrase, log the event, speak, notify listeners
// 6. After 2s without motion, drop back to idle mode
func (a *App) runPipeline(stopCh <-chan struct{}) {
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

			frame, err := a.Camera().ReadFrame()
			if err != nil {
				log.Printf("Error reading frame: %v", err)
				continue
			}

			motionDetected, _ := a.motion.Detect(frame)

			if motionDetected {
				lastMotionTime = time.Now()

				if !activeMode {
					activeMode = true
					a.Camera().SetFPS(ActiveFPS)
					frameInterval = time.Second / time.Duration(ActiveFPS)
					ticker.Reset(frameInterval)
					log.Println("Switched to active mode")
				}
			} else if activeMode {
				if time.Since(lastMotionTime) > time.Duration(IdleTimeoutMs)*time.Millisecond {
					activeMode = false
					a.Camera().SetFPS(IdleFPS)
					frameInterval = time.Second / time.Duration(IdleFPS)
					ticker.Reset(frameInterval)

					// The hand is gone for this session
					a.engineMu.Lock()
					a.engine.HandLost()
					a.engineMu.Unlock()

					log.Println("Switched to idle mode")
				}
			}

			if !activeMode {
				frame.Close()
				continue
			}

			hands, err := a.Detector().Detect(frame)
			frame.Close()

			if err != nil {
				log.Printf("Error detecting hands: %v", err)
				continue
			}

			if len(hands) == 0 {
				a.engineMu.Lock()
				a.engine.HandLost()
				a.engineMu.Unlock()
				continue
			}

			// Single-hand vocabulary; only the first hand drives decisions
			hand := &hands[0]

			c := a.classifier.Classify(hand)

			a.engineMu.Lock()
			acceptance, err := a.engine.ProcessFrame(c, hand.Points[:])
			a.engineMu.Unlock()

			if err != nil {
				log.Printf("Error processing frame: %v", err)
				continue
			}

			if acceptance != nil {
				a.handleAcceptance(acceptance.Label, acceptance.Reason)
			}
		}
	}
}

// handleAcceptance runs the output side of one accepted gesture: phrase
// lookup, event logging, speech, and listener notification.
func (a *App) handleAcceptance(label classifier.Label, reason engine.Reason) {
	text, bound := a.catalog.Lookup(label)
	if !bound {
		log.Printf("Accepted %s (%s), no phrase bound", label, reason)
	} else {
		log.Printf("Accepted %s (%s): %q", label, reason, text)
	}

	if a.config.Store != nil {
		event := &store.Event{
			Label:  string(label),
			Reason: string(reason),
			Phrase: text,
		}
		if err := a.config.Store.Events().Append(event); err != nil {
			log.Printf("Error recording event: %v", err)
		}
	}

	if bound && text != "" {
		a.mu.RLock()
		speaker := a.speaker
		a.mu.RUnlock()

		// Speech can block for seconds; keep it off the frame loop
		go func() {
			if err := speaker.Say(text); err != nil {
				log.Printf("Error speaking phrase: %v", err)
			}
		}()
	}

	a.mu.RLock()
	listeners := a.listeners
	a.mu.RUnlock()

	for _, l := range listeners {
		l(string(label), string(reason), text)
	}
}
