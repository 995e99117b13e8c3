package landmarks

// Kind is the validator's verdict on a detection result.
type Kind int

const (
	// NoFace covers an empty detection and a face with too few landmarks.
	NoFace Kind = iota
	// Skip is a face whose eye region is incomplete. It must not touch session state.
	Skip
	// Usable carries both resolved eyes.
	Usable
)

func (k Kind) String() string {
	switch k {
	case NoFace:
		return "no_face"
	case Skip:
		return "skip"
	case Usable:
		return "usable"
	default:
		return "unknown"
	}
}

// Classification is the output of Classify.
type Classification struct {
	Kind  Kind
	Left  Eye
	Right Eye
}

// Classify inspects the first detected face. Additional faces are ignored.
func Classify(faces []Face) Classification {
	if len(faces) == 0 || len(faces[0]) == 0 {
		return Classification{Kind: NoFace}
	}

	face := faces[0]
	if len(face) < MinLandmarks {
		return Classification{Kind: NoFace}
	}

	left, ok := LeftEye.Resolve(face)
	if !ok {
		return Classification{Kind: Skip}
	}
	right, ok := RightEye.Resolve(face)
	if !ok {
		return Classification{Kind: Skip}
	}

	return Classification{Kind: Usable, Left: left, Right: right}
}
