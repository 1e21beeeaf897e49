// Package engine turns noisy per-frame gesture classifications into a small
// number of stable, intentional acceptances. It applies a geometric
// correction for the thumbs-up/fist confusion, an optional conservative
// tie-break over the per-class distribution, a unanimous-window stability
// vote, and a cooldown lock that suppresses re-triggering while a gesture is
// held.
package engine

import (
	"time"

	"github.com/ayusman/mudra/internal/classifier"
	"github.com/ayusman/mudra/internal/detector"
)

// Default engine parameters.
const (
	// DefaultWindow is the number of consecutive agreeing frames required
	// before a label is treated as intentional.
	DefaultWindow = 8
	// DefaultCooldown is how long the engine stays locked after an acceptance.
	DefaultCooldown = 2500 * time.Millisecond
	// DefaultDominanceFactor is how much farther from the wrist the thumb tip
	// must be than any other fingertip to count as extended.
	DefaultDominanceFactor = 1.3
	// DefaultTieBreakMargin is the confidence gap under which the top two
	// classes are considered tied.
	DefaultTieBreakMargin = 0.1
)

// Config holds configuration options for the decision engine.
type Config struct {
	// Window is the stability voting window size in frames.
	Window int

	// Cooldown is the lock duration after an acceptance.
	Cooldown time.Duration

	// DominanceFactor is the thumb dominance ratio for the geometric gate.
	DominanceFactor float64
}

// DefaultConfig returns a Config with sensible default values.
func DefaultConfig() Config {
	return Config{
		Window:          DefaultWindow,
		Cooldown:        DefaultCooldown,
		DominanceFactor: DefaultDominanceFactor,
	}
}

// Reason tags how the accepted label was derived on the accepting frame.
type Reason string

const (
	// ReasonClassifier means the classifier label passed through unchanged.
	ReasonClassifier Reason = "classifier"
	// ReasonGeometry means the geometric gate relabeled the frame.
	ReasonGeometry Reason = "geometry"
	// ReasonTieBreak means the conservative tie-break picked the label.
	ReasonTieBreak Reason = "tie_break"
)

// Acceptance is the event emitted when a gesture stabilizes.
type Acceptance struct {
	Label  classifier.Label `json:"label"`
	Reason Reason           `json:"reason"`
}

// DebugState is a read-only snapshot of the engine internals.
type DebugState struct {
	AcceptedLabel       classifier.Label `json:"accepted_label"`
	Locked              bool             `json:"locked"`
	BufferSize          int              `json:"buffer_size"`
	CooldownRemainingMs int64            `json:"cooldown_remaining_ms"`
}

// Engine is the per-session gesture decision state. It is not safe for
// concurrent use: frames arrive serially from one capture loop, and each
// tracking session owns exactly one instance.
type Engine struct {
	config   Config
	tieBreak TieBreaker
	now      func() time.Time

	votes      voteBuffer
	accepted   classifier.Label
	acceptedAt time.Time
}

// New creates an engine for one tracking session. Zero config fields fall
// back to the defaults.
func New(config Config) *Engine {
	defaults := DefaultConfig()
	if config.Window <= 0 {
		config.Window = defaults.Window
	}
	if config.Cooldown <= 0 {
		config.Cooldown = defaults.Cooldown
	}
	if config.DominanceFactor <= 0 {
		config.DominanceFactor = defaults.DominanceFactor
	}

	return &Engine{
		config:   config,
		now:      time.Now,
		votes:    newVoteBuffer(config.Window),
		accepted: classifier.LabelNone,
	}
}

// SetTieBreaker installs an optional tie-break strategy, applied only on
// frames that carry a full per-class distribution.
func (e *Engine) SetTieBreaker(tb TieBreaker) {
	e.tieBreak = tb
}

// SetClock overrides the time source. Tests use this to drive the cooldown
// deterministically. Nil values are ignored.
func (e *Engine) SetClock(now func() time.Time) {
	if now != nil {
		e.now = now
	}
}

// ProcessFrame consumes one classified frame and returns an acceptance when a
// gesture stabilizes, or nil otherwise. The pose must contain exactly 21
// landmarks; anything else is a caller contract violation and returns an
// error without touching engine state.
//
// The cooldown decision uses a single clock read so a lock cannot expire
// halfway through the call.
func (e *Engine) ProcessFrame(c classifier.Classification, pose []detector.Point3D) (*Acceptance, error) {
	if err := detector.ValidatePose(pose); err != nil {
		return nil, err
	}

	// Labels outside the vocabulary are treated like the none sentinel:
	// no event, no buffer mutation.
	if !c.Label.Known() {
		return nil, nil
	}

	now := e.now()
	if e.locked(now) {
		return nil, nil
	}

	final := c.Label
	reason := ReasonClassifier

	if corrected := resolveThumbFist(final, pose, e.config.DominanceFactor); corrected != final {
		final = corrected
		reason = ReasonGeometry
	}

	if e.tieBreak != nil && len(c.Scores) > 0 {
		if resolved := e.tieBreak.Resolve(final, c.Scores); resolved != final {
			final = resolved
			reason = ReasonTieBreak
		}
	}

	stable, ok := e.votes.observe(final, c.Confidence, now)
	if !ok {
		return nil, nil
	}

	if stable == e.accepted {
		// The held gesture re-confirmed itself after the cooldown expired.
		// Consume the window so the next, different gesture stabilizes from
		// an empty buffer instead of against stale samples.
		e.votes.clear()
		return nil, nil
	}

	e.accepted = stable
	e.acceptedAt = now
	e.votes.clear()

	return &Acceptance{Label: stable, Reason: reason}, nil
}

// HandLost notifies the engine that the tracking target disappeared. Losing
// the hand ends the current intent, so all state is cleared and any remaining
// cooldown is cancelled.
func (e *Engine) HandLost() {
	e.Reset()
}

// Reset clears the voting buffer, the accepted gesture, and the cooldown.
// Idempotent.
func (e *Engine) Reset() {
	e.votes.clear()
	e.accepted = classifier.LabelNone
	e.acceptedAt = time.Time{}
}

// DebugState returns a read-only snapshot of the engine. No side effects.
func (e *Engine) DebugState() DebugState {
	now := e.now()

	var remaining time.Duration
	if e.locked(now) {
		remaining = e.config.Cooldown - now.Sub(e.acceptedAt)
	}

	return DebugState{
		AcceptedLabel:       e.accepted,
		Locked:              remaining > 0,
		BufferSize:          e.votes.len(),
		CooldownRemainingMs: remaining.Milliseconds(),
	}
}

// locked reports whether the cooldown is still running at the given instant.
// The lock is derived from acceptedAt rather than stored, so it can never
// disagree with the timestamp.
func (e *Engine) locked(now time.Time) bool {
	if e.acceptedAt.IsZero() {
		return false
	}
	return now.Sub(e.acceptedAt) < e.config.Cooldown
}
