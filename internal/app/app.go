// Package app wires the Mudra pipeline together: camera capture, motion
// gating, hand detection, classification, the decision engine, and the
// phrase output path.
package app

import (
	"log"
	"sync"

	"github.com/ayusman/mudra/internal/capture"
	"github.com/ayusman/mudra/internal/classifier"
	"github.com/ayusman/mudra/internal/detector"
	"github.com/ayusman/mudra/internal/engine"
	"github.com/ayusman/mudra/internal/phrase"
	"github.com/ayusman/mudra/internal/speak"
	"github.com/ayusman/mudra/internal/store"
)

// Pipeline timing constants.
const (
	// IdleFPS is the frame rate when no motion is detected.
	IdleFPS = 5
	// ActiveFPS is the frame rate during active detection.
	ActiveFPS = 15
	// IdleTimeoutMs is how long after the last motion the loop drops back to idle.
	IdleTimeoutMs = 2000
	// SpeechTimeoutMs bounds a single text-to-speech invocation.
	SpeechTimeoutMs = 10000
)

// AcceptanceListener is notified once per accepted gesture, after the phrase
// lookup. The phrase is empty when the label has no enabled binding.
type AcceptanceListener func(label, reason, phraseText string)

// Config holds configuration options for the application.
type Config struct {
	Store        *store.Store
	CameraID     int
	MotionThresh float64

	// EngineConfig tunes the decision engine. Zero fields use the defaults.
	EngineConfig engine.Config
}

// App orchestrates the frame loop and the output side effects of an
// acceptance: event logging, speech, and listener notification.
type App struct {
	config     Config
	camera     capture.Camera
	motion     *capture.MotionDetector
	detector   detector.Detector
	classifier classifier.Classifier
	catalog    *phrase.Catalog
	speaker    speak.Speaker

	// The engine is single-threaded; engineMu serializes the frame loop
	// against DebugState reads from HTTP handlers.
	engine   *engine.Engine
	engineMu sync.Mutex

	listeners []AcceptanceListener

	enabled bool
	mu      sync.RWMutex
	stopCh  chan struct{}
}

// New creates a new App instance with the given configuration.
func New(config Config) *App {
	motionThreshold := config.MotionThresh
	if motionThreshold <= 0 {
		motionThreshold = 1.0 // 1% pixel change
	}

	eng := engine.New(config.EngineConfig)
	eng.SetTieBreaker(engine.ConservativeTieBreak{})

	a := &App{
		config:     config,
		camera:     capture.NewCamera(config.CameraID),
		motion:     capture.NewMotionDetector(motionThreshold),
		classifier: classifier.NewTemplateClassifier(),
		catalog:    phrase.NewCatalog(),
		engine:     eng,
		enabled:    false,
	}

	// Try MediaPipe first, fall back to mock detector
	if mp, err := detector.NewMediaPipeDetector(detector.DefaultConfig()); err == nil {
		a.detector = mp
		log.Println("Using MediaPipe hand detection")
	} else {
		log.Printf("MediaPipe not available (%v), using mock detector", err)
		a.detector = detector.NewMockDetector()
	}

	// Speak through whatever TTS command the host provides
	if speaker, err := speak.NewCommandSpeaker(SpeechTimeoutMs); err == nil {
		a.speaker = speaker
		log.Printf("Using speech command: %v", speaker.Command)
	} else {
		log.Printf("Speech unavailable (%v), phrases will not be voiced", err)
		a.speaker = speak.NullSpeaker{}
	}

	return a
}

// SetEnabled enables or disables gesture recognition.
func (a *App) SetEnabled(enabled bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.enabled = enabled
}

// IsEnabled returns whether gesture recognition is currently enabled.
func (a *App) IsEnabled() bool {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.enabled
}

// SetDetector sets the hand detector implementation to use.
func (a *App) SetDetector(d detector.Detector) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.detector = d
}

// SetCamera replaces the camera. Tests use this to feed recorded frames.
func (a *App) SetCamera(c capture.Camera) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.camera = c
}

// SetSpeaker replaces the speech output.
func (a *App) SetSpeaker(s speak.Speaker) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.speaker = s
}

// AddAcceptanceListener registers a callback invoked once per acceptance.
// Listeners must not block; they run on the frame loop goroutine.
func (a *App) AddAcceptanceListener(l AcceptanceListener) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.listeners = append(a.listeners, l)
}

// LoadPhrases loads the phrase bindings from the database into the catalog.
func (a *App) LoadPhrases() error {
	if a.config.Store == nil {
		return nil
	}
	return a.catalog.LoadFromStore(a.config.Store)
}

// Start begins the recognition pipeline.
func (a *App) Start() error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.stopCh != nil {
		return nil
	}

	if err := a.camera.Open(); err != nil {
		return err
	}
	a.camera.SetFPS(IdleFPS)

	// Each pipeline run is a fresh tracking session
	a.engineMu.Lock()
	a.engine.Reset()
	a.engineMu.Unlock()

	a.stopCh = make(chan struct{})
	go a.runPipeline(a.stopCh)

	log.Println("Recognition pipeline started")
	return nil
}

// Stop halts the recognition pipeline and releases resources.
func (a *App) Stop() {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.stopCh != nil {
		close(a.stopCh)
		a.stopCh = nil
	}

	if err := a.camera.Close(); err != nil {
		log.Printf("Error closing camera: %v", err)
	}

	a.motion.Close()

	if a.detector != nil {
		if err := a.detector.Close(); err != nil {
			log.Printf("Error closing detector: %v", err)
		}
	}

	log.Println("Recognition pipeline stopped")
}

// Camera returns the camera instance.
func (a *App) Camera() capture.Camera {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.camera
}

// MotionDetector returns the motion detector instance.
func (a *App) MotionDetector() *capture.MotionDetector {
	return a.motion
}

// Catalog returns the live phrase catalog.
func (a *App) Catalog() *phrase.Catalog {
	return a.catalog
}

// Detector returns the hand detector.
func (a *App) Detector() detector.Detector {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.detector
}

// EngineState returns a snapshot of the decision engine for the debug API.
func (a *App) EngineState() engine.DebugState {
	a.engineMu.Lock()
	defer a.engineMu.Unlock()
	return a.engine.DebugState()
}
