// Package landmarks holds face-mesh landmark types, the eye-aspect-ratio
// estimator and the per-frame validator that gates it.
package landmarks

import "time"

// MinLandmarks is the number of points a complete face-mesh detection carries.
const MinLandmarks = 468

// Point is a normalized landmark position in [0,1]x[0,1] image space.
// Z is relative depth and is not used by the estimator.
type Point struct {
	X float64 `json:"x" msgpack:"x"`
	Y float64 `json:"y" msgpack:"y"`
	Z float64 `json:"z,omitempty" msgpack:"z"`
}

// Face is the ordered landmark sequence of one detected face.
// A nil element marks a point the detector did not resolve.
type Face []*Point

// Result is one frame's output from the landmark detector.
type Result struct {
	Seq       uint64
	Timestamp time.Time
	Faces     []Face
}

// EyeIndexSet indexes one eye in a Face, ordered
// {outer corner, upper lid 1, upper lid 2, inner corner, lower lid 1, lower lid 2}.
type EyeIndexSet [6]int

var (
	LeftEye  = EyeIndexSet{33, 160, 158, 133, 153, 144}
	RightEye = EyeIndexSet{362, 385, 387, 263, 373, 380}
)

// Eye is a resolved set of six eye points in EyeIndexSet order.
type Eye [6]Point

// Resolve looks up the eye points in f. It reports false when an index is
// out of range or resolves to a missing point.
func (s EyeIndexSet) Resolve(f Face) (Eye, bool) {
	var eye Eye
	for i, idx := range s {
		if idx < 0 || idx >= len(f) || f[idx] == nil {
			return Eye{}, false
		}
		eye[i] = *f[idx]
	}
	return eye, true
}

// DetectorOptions are passed through unmodified to the external landmark detector.
type DetectorOptions struct {
	MaxFaces               int     `json:"max_faces" yaml:"max_faces" validate:"gte=1"`
	RefineLandmarks        bool    `json:"refine_landmarks" yaml:"refine_landmarks"`
	MinDetectionConfidence float64 `json:"min_detection_confidence" yaml:"min_detection_confidence" validate:"gte=0,lte=1"`
	MinTrackingConfidence  float64 `json:"min_tracking_confidence" yaml:"min_tracking_confidence" validate:"gte=0,lte=1"`
	Width                  int     `json:"width" yaml:"width" validate:"gte=0"`
	Height                 int     `json:"height" yaml:"height" validate:"gte=0"`
}

// DefaultDetectorOptions mirrors the face-mesh settings the browser client uses.
func DefaultDetectorOptions() DetectorOptions {
	return DetectorOptions{
		MaxFaces:               1,
		RefineLandmarks:        true,
		MinDetectionConfidence: 0.6,
		MinTrackingConfidence:  0.6,
		Width:                  640,
		Height:                 480,
	}
}
