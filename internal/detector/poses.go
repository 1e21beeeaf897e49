package detector

// Preset hand poses covering the five-gesture vocabulary. They are used to
// seed the template classifier and as fixtures in tests. Coordinates follow
// the normalized image convention: x grows rightward, y grows downward, so an
// extended finger has a smaller y than the wrist.

// OpenPalmLandmarks returns a pose with all five fingers extended.
func OpenPalmLandmarks() HandLandmarks {
	h := HandLandmarks{Handedness: "Right", Score: 0.95}

	h.Points[Wrist] = Point3D{X: 0.50, Y: 0.80, Z: 0.0}

	// Thumb extended to the side
	h.Points[ThumbCMC] = Point3D{X: 0.55, Y: 0.75, Z: 0.02}
	h.Points[ThumbMCP] = Point3D{X: 0.62, Y: 0.70, Z: 0.03}
	h.Points[ThumbIP] = Point3D{X: 0.68, Y: 0.65, Z: 0.03}
	h.Points[ThumbTip] = Point3D{X: 0.73, Y: 0.60, Z: 0.03}

	// Index finger extended upward
	h.Points[IndexMCP] = Point3D{X: 0.55, Y: 0.68, Z: 0.0}
	h.Points[IndexPIP] = Point3D{X: 0.57, Y: 0.55, Z: 0.0}
	h.Points[IndexDIP] = Point3D{X: 0.58, Y: 0.45, Z: 0.0}
	h.Points[IndexTip] = Point3D{X: 0.58, Y: 0.35, Z: 0.0}

	// Middle finger extended upward
	h.Points[MiddleMCP] = Point3D{X: 0.50, Y: 0.66, Z: 0.0}
	h.Points[MiddlePIP] = Point3D{X: 0.50, Y: 0.52, Z: 0.0}
	h.Points[MiddleDIP] = Point3D{X: 0.50, Y: 0.40, Z: 0.0}
	h.Points[MiddleTip] = Point3D{X: 0.50, Y: 0.28, Z: 0.0}

	// Ring finger extended upward
	h.Points[RingMCP] = Point3D{X: 0.45, Y: 0.68, Z: 0.0}
	h.Points[RingPIP] = Point3D{X: 0.43, Y: 0.55, Z: 0.0}
	h.Points[RingDIP] = Point3D{X: 0.42, Y: 0.45, Z: 0.0}
	h.Points[RingTip] = Point3D{X: 0.42, Y: 0.35, Z: 0.0}

	// Pinky finger extended upward
	h.Points[PinkyMCP] = Point3D{X: 0.40, Y: 0.70, Z: 0.0}
	h.Points[PinkyPIP] = Point3D{X: 0.37, Y: 0.60, Z: 0.0}
	h.Points[PinkyDIP] = Point3D{X: 0.35, Y: 0.50, Z: 0.0}
	h.Points[PinkyTip] = Point3D{X: 0.34, Y: 0.42, Z: 0.0}

	return h
}

// PointingLandmarks returns a pose with only the index finger extended.
func PointingLandmarks() HandLandmarks {
	h := FistLandmarks()

	// Extend the index finger, keep the rest of the fist
	h.Points[IndexMCP] = Point3D{X: 0.55, Y: 0.68, Z: 0.0}
	h.Points[IndexPIP] = Point3D{X: 0.56, Y: 0.55, Z: 0.0}
	h.Points[IndexDIP] = Point3D{X: 0.57, Y: 0.45, Z: 0.0}
	h.Points[IndexTip] = Point3D{X: 0.57, Y: 0.35, Z: 0.0}

	return h
}

// VictoryLandmarks returns a pose with index and middle fingers extended.
func VictoryLandmarks() HandLandmarks {
	h := PointingLandmarks()

	// Extend the middle finger as well, splayed slightly left
	h.Points[MiddleMCP] = Point3D{X: 0.50, Y: 0.66, Z: 0.0}
	h.Points[MiddlePIP] = Point3D{X: 0.48, Y: 0.52, Z: 0.0}
	h.Points[MiddleDIP] = Point3D{X: 0.47, Y: 0.42, Z: 0.0}
	h.Points[MiddleTip] = Point3D{X: 0.46, Y: 0.32, Z: 0.0}

	return h
}

// FistLandmarks returns a pose with all fingers curled and the thumb tucked
// across the curled fingers.
func FistLandmarks() HandLandmarks {
	h := HandLandmarks{Handedness: "Right", Score: 0.95}

	h.Points[Wrist] = Point3D{X: 0.50, Y: 0.80, Z: 0.0}

	// Thumb tucked across the fist
	h.Points[ThumbCMC] = Point3D{X: 0.55, Y: 0.76, Z: 0.01}
	h.Points[ThumbMCP] = Point3D{X: 0.56, Y: 0.72, Z: 0.01}
	h.Points[ThumbIP] = Point3D{X: 0.52, Y: 0.70, Z: 0.0}
	h.Points[ThumbTip] = Point3D{X: 0.47, Y: 0.70, Z: 0.0}

	// Index finger curled
	h.Points[IndexMCP] = Point3D{X: 0.55, Y: 0.70, Z: -0.02}
	h.Points[IndexPIP] = Point3D{X: 0.55, Y: 0.66, Z: -0.05}
	h.Points[IndexDIP] = Point3D{X: 0.53, Y: 0.68, Z: -0.04}
	h.Points[IndexTip] = Point3D{X: 0.52, Y: 0.71, Z: -0.02}

	// Middle finger curled
	h.Points[MiddleMCP] = Point3D{X: 0.50, Y: 0.68, Z: -0.02}
	h.Points[MiddlePIP] = Point3D{X: 0.50, Y: 0.64, Z: -0.05}
	h.Points[MiddleDIP] = Point3D{X: 0.48, Y: 0.66, Z: -0.04}
	h.Points[MiddleTip] = Point3D{X: 0.47, Y: 0.70, Z: -0.02}

	// Ring finger curled
	h.Points[RingMCP] = Point3D{X: 0.45, Y: 0.70, Z: -0.02}
	h.Points[RingPIP] = Point3D{X: 0.45, Y: 0.66, Z: -0.05}
	h.Points[RingDIP] = Point3D{X: 0.43, Y: 0.68, Z: -0.04}
	h.Points[RingTip] = Point3D{X: 0.42, Y: 0.71, Z: -0.02}

	// Pinky finger curled
	h.Points[PinkyMCP] = Point3D{X: 0.40, Y: 0.72, Z: -0.02}
	h.Points[PinkyPIP] = Point3D{X: 0.40, Y: 0.68, Z: -0.05}
	h.Points[PinkyDIP] = Point3D{X: 0.38, Y: 0.70, Z: -0.04}
	h.Points[PinkyTip] = Point3D{X: 0.38, Y: 0.73, Z: -0.02}

	return h
}

// ThumbsUpLandmarks returns a pose with the thumb extended upward and the
// other fingers curled. The thumb tip is far enough from the wrist relative
// to the curled fingertips that the geometric gate treats it as dominant.
func ThumbsUpLandmarks() HandLandmarks {
	h := FistLandmarks()

	// Extend the thumb upward
	h.Points[ThumbCMC] = Point3D{X: 0.55, Y: 0.75, Z: 0.0}
	h.Points[ThumbMCP] = Point3D{X: 0.58, Y: 0.65, Z: 0.0}
	h.Points[ThumbIP] = Point3D{X: 0.58, Y: 0.50, Z: 0.0}
	h.Points[ThumbTip] = Point3D{X: 0.58, Y: 0.35, Z: 0.0}

	return h
}
