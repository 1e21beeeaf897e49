package classifier

import (
	"github.com/ayusman/mudra/internal/detector"
)

// DefaultMinConfidence is the normalized score below which the classifier
// reports LabelNone instead of its best guess.
const DefaultMinConfidence = 0.35

// TemplateClassifier classifies a hand pose by Euclidean distance against one
// normalized landmark template per vocabulary label. Distances are converted
// to scores with 1/(1+d) and the scores are normalized into a distribution so
// downstream consumers can compare classes.
type TemplateClassifier struct {
	templates     map[Label][]detector.Point3D
	minConfidence float64
}

// NewTemplateClassifier creates a classifier seeded with the built-in
// templates for the full vocabulary.
func NewTemplateClassifier() *TemplateClassifier {
	c := &TemplateClassifier{
		templates:     make(map[Label][]detector.Point3D),
		minConfidence: DefaultMinConfidence,
	}

	builtin := map[Label]detector.HandLandmarks{
		LabelOpenPalm: detector.OpenPalmLandmarks(),
		LabelPointing: detector.PointingLandmarks(),
		LabelVictory:  detector.VictoryLandmarks(),
		LabelFist:     detector.FistLandmarks(),
		LabelThumbsUp: detector.ThumbsUpLandmarks(),
	}
	for label, hand := range builtin {
		c.SetTemplate(label, &hand)
	}

	return c
}

// SetMinConfidence overrides the LabelNone cutoff.
// Values outside (0, 1) are ignored.
func (c *TemplateClassifier) SetMinConfidence(min float64) {
	if min <= 0 || min >= 1 {
		return
	}
	c.minConfidence = min
}

// SetTemplate registers or replaces the template for a label.
// The hand is normalized before storing. Unknown labels are ignored.
func (c *TemplateClassifier) SetTemplate(label Label, hand *detector.HandLandmarks) {
	if !label.Known() || hand == nil {
		return
	}
	normalized := hand.Normalize()
	points := make([]detector.Point3D, detector.NumLandmarks)
	copy(points, normalized.Points[:])
	c.templates[label] = points
}

// Classify compares the hand against every template and returns the best
// label with its normalized confidence and the full distribution.
// Returns LabelNone when no template clears the confidence cutoff.
func (c *TemplateClassifier) Classify(hand *detector.HandLandmarks) Classification {
	if hand == nil || len(c.templates) == 0 {
		return None()
	}

	normalized := hand.Normalize()
	input := normalized.Points[:]

	scores := make(map[Label]float64, len(c.templates))
	var sum float64

	// Iterate the vocabulary in fixed order so ties resolve deterministically.
	for _, label := range Vocabulary() {
		template, ok := c.templates[label]
		if !ok {
			continue
		}
		score := 1.0 / (1.0 + totalDistance(input, template))
		scores[label] = score
		sum += score
	}

	if sum <= 0 {
		return None()
	}

	var best Label
	var bestScore float64
	for _, label := range Vocabulary() {
		score, ok := scores[label]
		if !ok {
			continue
		}
		score /= sum
		scores[label] = score
		if score > bestScore {
			best = label
			bestScore = score
		}
	}

	if bestScore < c.minConfidence {
		return Classification{Label: LabelNone, Confidence: bestScore, Scores: scores}
	}

	return Classification{Label: best, Confidence: bestScore, Scores: scores}
}

// totalDistance sums the Euclidean distances between corresponding points.
func totalDistance(a, b []detector.Point3D) float64 {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}

	var total float64
	for i := 0; i < n; i++ {
		total += detector.Distance(a[i], b[i])
	}
	return total
}
