package engine

import (
	"github.com/ayusman/mudra/internal/classifier"
	"github.com/ayusman/mudra/internal/detector"
)

// resolveThumbFist corrects the one known classifier confusion: "thumb
// extended, fist otherwise" versus "fist with the thumb incidentally
// visible". A thumbs-up label is kept only when the thumb tip is strictly
// more than factor times farther from the wrist than every other fingertip;
// otherwise the frame is relabeled as a fist. All other labels pass through
// untouched.
//
// Pure function of the geometry: identical input yields identical output.
// The boundary is exclusive, so a thumb at exactly factor times the largest
// other fingertip distance resolves to fist.
func resolveThumbFist(label classifier.Label, pose []detector.Point3D, factor float64) classifier.Label {
	if label != classifier.LabelThumbsUp {
		return label
	}
	if factor <= 0 {
		factor = DefaultDominanceFactor
	}

	wrist := pose[detector.Wrist]
	thumb := detector.Distance(wrist, pose[detector.ThumbTip])

	var maxOther float64
	for _, idx := range []int{detector.IndexTip, detector.MiddleTip, detector.RingTip, detector.PinkyTip} {
		if d := detector.Distance(wrist, pose[idx]); d > maxOther {
			maxOther = d
		}
	}

	if thumb > factor*maxOther {
		return classifier.LabelThumbsUp
	}
	return classifier.LabelFist
}
