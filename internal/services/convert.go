package services

import (
	"time"

	"ALERTNESS/go-backend/internal/alertness"
	"ALERTNESS/go-backend/internal/landmarks"
	"ALERTNESS/go-backend/pkg/pb"
)

// FromFaceFrame converts a wire frame into a detector result. Points marked
// missing become nil so they keep their index.
func FromFaceFrame(f *pb.FaceFrame) landmarks.Result {
	res := landmarks.Result{Seq: f.GetSeq(), Timestamp: time.Now()}
	if f.GetTimestampMs() > 0 {
		res.Timestamp = time.UnixMilli(f.GetTimestampMs())
	}
	for _, wf := range f.GetFaces() {
		pts := wf.GetPoints()
		face := make(landmarks.Face, len(pts))
		for i, p := range pts {
			if p != nil && !p.GetMissing() {
				face[i] = &landmarks.Point{X: p.GetX(), Y: p.GetY(), Z: p.GetZ()}
			}
		}
		res.Faces = append(res.Faces, face)
	}
	return res
}

// ToFaceFrame is the inverse of FromFaceFrame.
func ToFaceFrame(res landmarks.Result) *pb.FaceFrame {
	f := &pb.FaceFrame{Seq: res.Seq}
	if !res.Timestamp.IsZero() {
		f.TimestampMs = res.Timestamp.UnixMilli()
	}
	for _, face := range res.Faces {
		pts := make([]*pb.Point, len(face))
		for i, p := range face {
			if p == nil {
				pts[i] = &pb.Point{Missing: true}
				continue
			}
			pts[i] = &pb.Point{X: p.X, Y: p.Y, Z: p.Z}
		}
		f.Faces = append(f.Faces, &pb.Face{Points: pts})
	}
	return f
}

func ToDetectorOptions(o landmarks.DetectorOptions) *pb.DetectorOptions {
	return &pb.DetectorOptions{
		MaxFaces:               int32(o.MaxFaces),
		RefineLandmarks:        o.RefineLandmarks,
		MinDetectionConfidence: o.MinDetectionConfidence,
		MinTrackingConfidence:  o.MinTrackingConfidence,
		Width:                  int32(o.Width),
		Height:                 int32(o.Height),
	}
}

// ToStatusUpdate renders a transition for Monitor clients.
func ToStatusUpdate(sessionID string, t alertness.Transition) *pb.StatusUpdate {
	return &pb.StatusUpdate{
		SessionId:       sessionID,
		AlertState:      t.Alert.String(),
		DetectionStatus: t.Detection.String(),
		Ear:             t.EAR,
		ClosedFrames:    int32(t.ClosedFrames),
		TimestampMs:     time.Now().UnixMilli(),
	}
}
