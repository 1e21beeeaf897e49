package engine

import "github.com/ayusman/mudra/internal/classifier"

// TieBreaker optionally rewrites the candidate label using the full per-class
// confidence distribution. The engine only consults it on frames where the
// classifier exposed a distribution.
type TieBreaker interface {
	Resolve(candidate classifier.Label, scores map[classifier.Label]float64) classifier.Label
}

// safetyRank orders the vocabulary from most to least conservative: an
// accidental open hand is harmless, an accidental thumbs-up fires the most
// consequential phrase.
var safetyRank = map[classifier.Label]int{
	classifier.LabelOpenPalm: 0,
	classifier.LabelPointing: 1,
	classifier.LabelVictory:  2,
	classifier.LabelFist:     3,
	classifier.LabelThumbsUp: 4,
}

// ConservativeTieBreak prefers the behaviorally safer of the top two classes
// when their confidences differ by less than Margin. Outside a tie the
// candidate passes through unchanged.
type ConservativeTieBreak struct {
	// Margin is the confidence gap under which the top two classes count as
	// tied. Zero or negative means DefaultTieBreakMargin.
	Margin float64
}

// Resolve implements TieBreaker.
func (tb ConservativeTieBreak) Resolve(candidate classifier.Label, scores map[classifier.Label]float64) classifier.Label {
	margin := tb.Margin
	if margin <= 0 {
		margin = DefaultTieBreakMargin
	}

	// Find the top two classes, walking the vocabulary in fixed order so
	// equal scores resolve deterministically.
	var first, second classifier.Label
	firstScore, secondScore := -1.0, -1.0
	for _, label := range classifier.Vocabulary() {
		score, ok := scores[label]
		if !ok {
			continue
		}
		switch {
		case score > firstScore:
			second, secondScore = first, firstScore
			first, firstScore = label, score
		case score > secondScore:
			second, secondScore = label, score
		}
	}

	if first == "" || second == "" {
		return candidate
	}
	if firstScore-secondScore >= margin {
		return candidate
	}
	if safetyRank[second] < safetyRank[first] {
		return second
	}
	return first
}
