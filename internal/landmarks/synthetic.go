package landmarks

const syntheticEyeWidth = 0.1

// Synthetic builds a complete face whose eyes both have the given aspect ratio.
// Points outside the eye regions sit at the image centre. Used by the test
// client and by tests to drive the pipeline without a detector.
func Synthetic(ear float64) Face {
	face := make(Face, MinLandmarks)
	for i := range face {
		face[i] = &Point{X: 0.5, Y: 0.5}
	}
	placeEye(face, LeftEye, 0.30, 0.40, ear)
	placeEye(face, RightEye, 0.60, 0.40, ear)
	return face
}

// placeEye lays out six points so that both lid distances equal ear*width.
func placeEye(face Face, idx EyeIndexSet, x0, y0, ear float64) {
	w := syntheticEyeWidth
	h := ear * w / 2
	pts := [6]Point{
		{X: x0, Y: y0},
		{X: x0 + w/3, Y: y0 - h},
		{X: x0 + 2*w/3, Y: y0 - h},
		{X: x0 + w, Y: y0},
		{X: x0 + 2*w/3, Y: y0 + h},
		{X: x0 + w/3, Y: y0 + h},
	}
	for i, p := range pts {
		p := p
		face[idx[i]] = &p
	}
}
