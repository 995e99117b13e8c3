package services

import (
	"bytes"
	"encoding/binary"
	"errors"
	"io"
	"testing"
	"time"

	"ALERTNESS/go-backend/internal/landmarks"
)

func TestRecordRoundTripKeepsMissingPoints(t *testing.T) {
	face := landmarks.Synthetic(0.12)
	face[7] = nil
	face[landmarks.LeftEye[1]] = nil
	ts := time.UnixMilli(1_700_000_000_123)

	var buf bytes.Buffer
	if err := WriteRecord(&buf, landmarks.Result{Seq: 42, Timestamp: ts, Faces: []landmarks.Face{face}}); err != nil {
		t.Fatalf("WriteRecord: %v", err)
	}
	if err := WriteRecord(&buf, landmarks.Result{Seq: 43, Timestamp: ts}); err != nil {
		t.Fatalf("WriteRecord: %v", err)
	}

	got, err := ReadRecord(&buf)
	if err != nil {
		t.Fatalf("ReadRecord: %v", err)
	}
	if got.Seq != 42 || !got.Timestamp.Equal(ts) {
		t.Errorf("got seq %d ts %v", got.Seq, got.Timestamp)
	}
	if len(got.Faces) != 1 || len(got.Faces[0]) != landmarks.MinLandmarks {
		t.Fatalf("unexpected faces shape")
	}
	if got.Faces[0][7] != nil || got.Faces[0][landmarks.LeftEye[1]] != nil {
		t.Errorf("missing points were filled in")
	}
	if *got.Faces[0][landmarks.RightEye[0]] != *face[landmarks.RightEye[0]] {
		t.Errorf("point changed in transit")
	}
	if landmarks.Classify(got.Faces).Kind != landmarks.Skip {
		t.Errorf("decoded frame should still be a skip frame")
	}

	empty, err := ReadRecord(&buf)
	if err != nil {
		t.Fatalf("ReadRecord: %v", err)
	}
	if len(empty.Faces) != 0 || empty.Seq != 43 {
		t.Errorf("unexpected empty record %+v", empty)
	}

	if _, err := ReadRecord(&buf); !errors.Is(err, io.EOF) {
		t.Errorf("expected io.EOF at end of stream, got %v", err)
	}
}

func TestReadRecordTruncated(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteRecord(&buf, landmarks.Result{Seq: 1, Faces: []landmarks.Face{landmarks.Synthetic(0.3)}}); err != nil {
		t.Fatalf("WriteRecord: %v", err)
	}
	data := buf.Bytes()[:buf.Len()-10]

	_, err := ReadRecord(bytes.NewReader(data))
	if err == nil || errors.Is(err, io.EOF) {
		t.Errorf("expected a read error for a truncated record, got %v", err)
	}
}

func TestReadRecordRejectsOversizedLength(t *testing.T) {
	prefix := make([]byte, 4)
	binary.BigEndian.PutUint32(prefix, maxRecordSize+1)

	if _, err := ReadRecord(bytes.NewReader(prefix)); err == nil {
		t.Errorf("expected error for oversized record")
	}
}
