package services

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/vmihailenco/msgpack/v5"

	"ALERTNESS/go-backend/internal/landmarks"
)

// maxRecordSize bounds a single msgpack record. A 478-point face is ~15KB.
const maxRecordSize = 4 << 20

// wireResult is the record a face-mesh worker writes per frame, each prefixed
// by its length as a 4-byte big-endian integer. A point is [x, y] or
// [x, y, z]; nil marks a missing point.
type wireResult struct {
	Seq         uint64        `msgpack:"seq"`
	TimestampMs int64         `msgpack:"timestamp_ms"`
	Faces       [][][]float64 `msgpack:"faces"`
}

// WriteRecord encodes one result with length-prefix framing.
func WriteRecord(w io.Writer, res landmarks.Result) error {
	wr := wireResult{Seq: res.Seq}
	if !res.Timestamp.IsZero() {
		wr.TimestampMs = res.Timestamp.UnixMilli()
	}
	for _, face := range res.Faces {
		pts := make([][]float64, len(face))
		for i, p := range face {
			if p != nil {
				pts[i] = []float64{p.X, p.Y, p.Z}
			}
		}
		wr.Faces = append(wr.Faces, pts)
	}

	data, err := msgpack.Marshal(&wr)
	if err != nil {
		return fmt.Errorf("failed to marshal msgpack record: %w", err)
	}

	prefix := make([]byte, 4)
	binary.BigEndian.PutUint32(prefix, uint32(len(data)))
	if _, err := w.Write(prefix); err != nil {
		return fmt.Errorf("failed to write length prefix: %w", err)
	}
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("failed to write msgpack data: %w", err)
	}
	return nil
}

// ReadRecord decodes the next record. It returns io.EOF only when the stream
// ends cleanly between records.
func ReadRecord(r io.Reader) (landmarks.Result, error) {
	prefix := make([]byte, 4)
	if _, err := io.ReadFull(r, prefix); err != nil {
		if errors.Is(err, io.EOF) {
			return landmarks.Result{}, io.EOF
		}
		return landmarks.Result{}, fmt.Errorf("failed to read length prefix: %w", err)
	}

	size := binary.BigEndian.Uint32(prefix)
	if size > maxRecordSize {
		return landmarks.Result{}, fmt.Errorf("record of %d bytes exceeds limit", size)
	}

	data := make([]byte, size)
	if _, err := io.ReadFull(r, data); err != nil {
		return landmarks.Result{}, fmt.Errorf("failed to read msgpack data: %w", err)
	}

	var wr wireResult
	if err := msgpack.Unmarshal(data, &wr); err != nil {
		return landmarks.Result{}, fmt.Errorf("failed to unmarshal msgpack record: %w", err)
	}
	return wr.result(), nil
}

func (wr wireResult) result() landmarks.Result {
	res := landmarks.Result{Seq: wr.Seq}
	if wr.TimestampMs > 0 {
		res.Timestamp = time.UnixMilli(wr.TimestampMs)
	} else {
		res.Timestamp = time.Now()
	}

	for _, pts := range wr.Faces {
		face := make(landmarks.Face, len(pts))
		for i, p := range pts {
			if len(p) < 2 {
				continue
			}
			pt := &landmarks.Point{X: p[0], Y: p[1]}
			if len(p) > 2 {
				pt.Z = p[2]
			}
			face[i] = pt
		}
		res.Faces = append(res.Faces, face)
	}
	return res
}
