// Package classifier maps a detected hand pose to a label from the fixed
// gesture vocabulary, with a confidence and an optional per-class distribution.
package classifier

import "github.com/ayusman/mudra/internal/detector"

// Label is a symbolic gesture name from the closed vocabulary.
type Label string

const (
	// LabelOpenPalm is an open hand with all fingers extended.
	LabelOpenPalm Label = "open_palm"
	// LabelPointing is a fist with the index finger extended.
	LabelPointing Label = "pointing"
	// LabelVictory is a fist with index and middle fingers extended.
	LabelVictory Label = "victory"
	// LabelFist is a closed fist.
	LabelFist Label = "fist"
	// LabelThumbsUp is a fist with the thumb extended.
	LabelThumbsUp Label = "thumbs_up"
	// LabelNone is the sentinel for frames without a confident gesture.
	LabelNone Label = "none"
)

// Vocabulary returns the five recognizable labels in a fixed order.
// LabelNone is a sentinel, not part of the vocabulary.
func Vocabulary() []Label {
	return []Label{LabelOpenPalm, LabelPointing, LabelVictory, LabelFist, LabelThumbsUp}
}

// Known reports whether the label belongs to the gesture vocabulary.
func (l Label) Known() bool {
	switch l {
	case LabelOpenPalm, LabelPointing, LabelVictory, LabelFist, LabelThumbsUp:
		return true
	}
	return false
}

// Classification is the per-frame classifier output.
type Classification struct {
	Label      Label             `json:"label"`
	Confidence float64           `json:"confidence"`
	// Scores holds the full per-class confidence distribution when the
	// classifier exposes one; nil otherwise.
	Scores map[Label]float64 `json:"scores,omitempty"`
}

// None returns the no-confident-gesture classification.
func None() Classification {
	return Classification{Label: LabelNone}
}

// Classifier maps hand landmarks to a classification.
type Classifier interface {
	Classify(hand *detector.HandLandmarks) Classification
}
