package classifier

import (
	"math"
	"testing"

	"github.com/ayusman/mudra/internal/detector"
)

func TestTemplateClassifier_RecognizesPresetPoses(t *testing.T) {
	c := NewTemplateClassifier()

	cases := map[Label]detector.HandLandmarks{
		LabelOpenPalm: detector.OpenPalmLandmarks(),
		LabelPointing: detector.PointingLandmarks(),
		LabelVictory:  detector.VictoryLandmarks(),
		LabelFist:     detector.FistLandmarks(),
		LabelThumbsUp: detector.ThumbsUpLandmarks(),
	}

	for want, hand := range cases {
		got := c.Classify(&hand)
		if got.Label != want {
			t.Errorf("pose %q classified as %q (confidence %.3f)", want, got.Label, got.Confidence)
		}
		if got.Confidence <= 0 || got.Confidence > 1 {
			t.Errorf("pose %q: confidence %.3f outside (0, 1]", want, got.Confidence)
		}
	}
}

func TestTemplateClassifier_ScoresAreADistribution(t *testing.T) {
	c := NewTemplateClassifier()
	hand := detector.VictoryLandmarks()

	got := c.Classify(&hand)
	if len(got.Scores) != len(Vocabulary()) {
		t.Fatalf("expected %d scores, got %d", len(Vocabulary()), len(got.Scores))
	}

	var sum float64
	for label, score := range got.Scores {
		if score < 0 || score > 1 {
			t.Errorf("score for %q = %f outside [0, 1]", label, score)
		}
		sum += score
	}
	if math.Abs(sum-1.0) > 1e-9 {
		t.Errorf("scores sum to %f, want 1.0", sum)
	}

	if got.Scores[got.Label] != got.Confidence {
		t.Errorf("confidence %f does not match the winning score %f", got.Confidence, got.Scores[got.Label])
	}
}

func TestTemplateClassifier_LowConfidenceReturnsNone(t *testing.T) {
	c := NewTemplateClassifier()
	c.SetMinConfidence(0.99) // nothing clears this

	hand := detector.FistLandmarks()
	got := c.Classify(&hand)
	if got.Label != LabelNone {
		t.Errorf("expected %q below cutoff, got %q", LabelNone, got.Label)
	}
	if len(got.Scores) == 0 {
		t.Error("distribution should still be reported for none frames")
	}
}

func TestTemplateClassifier_NilHand(t *testing.T) {
	c := NewTemplateClassifier()
	if got := c.Classify(nil); got.Label != LabelNone {
		t.Errorf("expected %q for nil hand, got %q", LabelNone, got.Label)
	}
}

func TestTemplateClassifier_Deterministic(t *testing.T) {
	c := NewTemplateClassifier()
	hand := detector.PointingLandmarks()

	first := c.Classify(&hand)
	for i := 0; i < 50; i++ {
		got := c.Classify(&hand)
		if got.Label != first.Label || got.Confidence != first.Confidence {
			t.Fatalf("classification drifted on call %d: %+v vs %+v", i, got, first)
		}
	}
}

func TestTemplateClassifier_SetTemplate(t *testing.T) {
	c := NewTemplateClassifier()

	// Replacing a template changes the outcome for its pose.
	palm := detector.OpenPalmLandmarks()
	c.SetTemplate(LabelVictory, &palm)
	got := c.Classify(&palm)
	if got.Label != LabelOpenPalm && got.Label != LabelVictory {
		t.Errorf("open palm pose classified as %q after template overwrite", got.Label)
	}

	// Unknown labels are ignored rather than registered.
	before := len(c.templates)
	c.SetTemplate(Label("wave"), &palm)
	c.SetTemplate(LabelNone, &palm)
	if len(c.templates) != before {
		t.Errorf("template count changed from %d to %d", before, len(c.templates))
	}
}

func TestLabel_Known(t *testing.T) {
	for _, label := range Vocabulary() {
		if !label.Known() {
			t.Errorf("vocabulary label %q should be known", label)
		}
	}
	for _, label := range []Label{LabelNone, Label(""), Label("wave")} {
		if label.Known() {
			t.Errorf("label %q should not be known", label)
		}
	}
}
