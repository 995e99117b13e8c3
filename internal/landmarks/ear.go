package landmarks

import "gonum.org/v1/gonum/floats"

// EyeAspectRatio computes
//
//	(|p1-p5| + |p2-p4|) / (2 * |p0-p3|)
//
// over the x,y plane. It reports false for fewer than six points, a nil
// point, or coincident eye corners.
func EyeAspectRatio(eye []*Point) (float64, bool) {
	if len(eye) < 6 {
		return 0, false
	}
	for _, p := range eye[:6] {
		if p == nil {
			return 0, false
		}
	}

	width := distance(eye[0], eye[3])
	if width == 0 {
		return 0, false
	}
	return (distance(eye[1], eye[5]) + distance(eye[2], eye[4])) / (2 * width), true
}

// EAR is EyeAspectRatio over a resolved eye.
func (e Eye) EAR() (float64, bool) {
	pts := make([]*Point, len(e))
	for i := range e {
		pts[i] = &e[i]
	}
	return EyeAspectRatio(pts)
}

// FrameEAR averages the aspect ratio of both eyes.
func FrameEAR(left, right Eye) (float64, bool) {
	l, ok := left.EAR()
	if !ok {
		return 0, false
	}
	r, ok := right.EAR()
	if !ok {
		return 0, false
	}
	return (l + r) / 2, true
}

func distance(a, b *Point) float64 {
	return floats.Distance([]float64{a.X, a.Y}, []float64{b.X, b.Y}, 2)
}
