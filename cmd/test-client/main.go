package main

import (
	"bufio"
	"encoding/json"
	"flag"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"time"

	"github.com/gorilla/websocket"

	"ALERTNESS/go-backend/internal/landmarks"
	"ALERTNESS/go-backend/internal/models"
	"ALERTNESS/go-backend/internal/services"
)

// phase is a run of identical synthetic frames.
type phase struct {
	name   string
	frames int
	face   landmarks.Face
}

func script(openFrames, closedFrames int) []phase {
	return []phase{
		{"eyes open", openFrames, landmarks.Synthetic(0.30)},
		{"eyes closed", closedFrames, landmarks.Synthetic(0.12)},
		{"no face", 10, nil},
		{"eyes open again", openFrames, landmarks.Synthetic(0.30)},
	}
}

func main() {
	server := flag.String("url", "ws://localhost:8081/ws", "WebSocket endpoint")
	token := flag.String("token", "", "API token")
	fps := flag.Float64("fps", 30, "frames per second")
	openFrames := flag.Int("open", 30, "open-eye frames per open phase")
	closedFrames := flag.Int("closed", 45, "closed-eye frames")
	record := flag.String("record", "", "write the script as a replay recording to this file instead of streaming")
	flag.Parse()

	phases := script(*openFrames, *closedFrames)

	if *record != "" {
		if err := writeRecording(*record, phases, *fps); err != nil {
			fmt.Fprintf(os.Stderr, "✗ %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("✓ Recording written to %s\n", *record)
		return
	}

	if err := stream(*server, *token, phases, *fps); err != nil {
		fmt.Fprintf(os.Stderr, "✗ %v\n", err)
		os.Exit(1)
	}
}

func stream(server, token string, phases []phase, fps float64) error {
	u, err := url.Parse(server)
	if err != nil {
		return fmt.Errorf("invalid url: %w", err)
	}
	q := u.Query()
	q.Set("clientId", "test-client")
	u.RawQuery = q.Encode()

	header := http.Header{}
	if token != "" {
		header.Set("Authorization", "Bearer "+token)
	}

	fmt.Printf("[TEST] Connecting to %s...\n", u)
	conn, _, err := websocket.DefaultDialer.Dial(u.String(), header)
	if err != nil {
		return fmt.Errorf("dial failed: %w", err)
	}
	defer conn.Close()

	readDone := make(chan struct{})
	go func() {
		defer close(readDone)
		for {
			var msg models.WebSocketMessage
			if err := conn.ReadJSON(&msg); err != nil {
				return
			}
			printMessage(msg)
			if msg.Type == models.MsgSessionStopped {
				return
			}
		}
	}()

	if err := write(conn, models.MsgStart, nil); err != nil {
		return err
	}

	interval := time.Duration(float64(time.Second) / fps)
	var seq uint64
	for _, p := range phases {
		fmt.Printf("\n[TEST] %s (%d frames)\n", p.name, p.frames)
		for i := 0; i < p.frames; i++ {
			seq++
			payload := models.LandmarksPayload{Seq: seq}
			if p.face != nil {
				payload.Faces = [][]*landmarks.Point{p.face}
			}
			if err := write(conn, models.MsgLandmarks, payload); err != nil {
				return err
			}
			time.Sleep(interval)
		}
	}

	if err := write(conn, models.MsgStop, nil); err != nil {
		return err
	}

	select {
	case <-readDone:
	case <-time.After(5 * time.Second):
		return fmt.Errorf("no SESSION_STOPPED from server")
	}

	fmt.Println("\n✓ Done")
	return nil
}

func write(conn *websocket.Conn, msgType string, payload interface{}) error {
	msg := models.OutboundMessage{
		Type:      msgType,
		Payload:   payload,
		ClientID:  "test-client",
		Timestamp: time.Now().Unix(),
	}
	if err := conn.WriteJSON(msg); err != nil {
		return fmt.Errorf("send %s failed: %w", msgType, err)
	}
	return nil
}

func printMessage(msg models.WebSocketMessage) {
	switch msg.Type {
	case models.MsgStatus:
		var st models.StatusPayload
		json.Unmarshal(msg.Payload, &st)
		fmt.Printf("  STATUS  %-7s %-12s ear=%.3f closed=%d\n", st.AlertState, st.DetectionStatus, st.EAR, st.ClosedFrames)
	case models.MsgSpeak:
		var sp models.SpeakPayload
		json.Unmarshal(msg.Payload, &sp)
		fmt.Printf("  🔊 SPEAK %q\n", sp.Text)
	default:
		fmt.Printf("  %s %s\n", msg.Type, string(msg.Payload))
	}
}

func writeRecording(path string, phases []phase, fps float64) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create recording: %w", err)
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	ts := time.Now()
	step := time.Duration(float64(time.Second) / fps)
	var seq uint64
	for _, p := range phases {
		for i := 0; i < p.frames; i++ {
			seq++
			res := landmarks.Result{Seq: seq, Timestamp: ts}
			if p.face != nil {
				res.Faces = []landmarks.Face{p.face}
			}
			if err := services.WriteRecord(w, res); err != nil {
				return err
			}
			ts = ts.Add(step)
		}
	}
	return w.Flush()
}
