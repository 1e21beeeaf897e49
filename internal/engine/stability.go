package engine

import (
	"time"

	"github.com/ayusman/mudra/internal/classifier"
)

// sample is one classified frame as remembered by the voting buffer.
type sample struct {
	label      classifier.Label
	confidence float64
	at         time.Time
}

// voteBuffer is a FIFO window over the most recent classified frames. A label
// becomes stable only when every slot in a full window agrees, which
// suppresses single-frame and few-frame jitter at the cost of window-length
// latency.
type voteBuffer struct {
	samples []sample
	window  int
}

func newVoteBuffer(window int) voteBuffer {
	return voteBuffer{
		samples: make([]sample, 0, window),
		window:  window,
	}
}

// observe appends a sample, evicting the oldest when the window is full, and
// reports the stable label if the full window is unanimous.
func (b *voteBuffer) observe(label classifier.Label, confidence float64, at time.Time) (classifier.Label, bool) {
	if len(b.samples) >= b.window {
		copy(b.samples, b.samples[1:])
		b.samples = b.samples[:b.window-1]
	}
	b.samples = append(b.samples, sample{label: label, confidence: confidence, at: at})

	if len(b.samples) < b.window {
		return classifier.LabelNone, false
	}

	first := b.samples[0].label
	for _, s := range b.samples[1:] {
		if s.label != first {
			return classifier.LabelNone, false
		}
	}
	return first, true
}

func (b *voteBuffer) clear() {
	b.samples = b.samples[:0]
}

func (b *voteBuffer) len() int {
	return len(b.samples)
}
