package handlers

import (
	"context"
	"io"
	"net"
	"testing"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/test/bufconn"

	"ALERTNESS/go-backend/internal/landmarks"
	"ALERTNESS/go-backend/internal/services"
	"ALERTNESS/go-backend/pkg/pb"
)

func startMonitor(t *testing.T, deps SessionDeps) pb.AlertnessClient {
	t.Helper()

	lis := bufconn.Listen(1 << 20)
	srv := grpc.NewServer()
	pb.RegisterAlertnessServer(srv, NewGRPCHandler(deps))
	go srv.Serve(lis)
	t.Cleanup(srv.Stop)

	conn, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return lis.DialContext(ctx)
		}),
	)
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	t.Cleanup(func() { conn.Close() })
	return pb.NewAlertnessClient(conn)
}

func frame(seq uint64, ear float64) *pb.FaceFrame {
	return services.ToFaceFrame(landmarks.Result{Seq: seq, Faces: []landmarks.Face{landmarks.Synthetic(ear)}})
}

func TestMonitorStream(t *testing.T) {
	metrics := services.NewMetrics()
	client := startMonitor(t, SessionDeps{Metrics: metrics, AlertMessage: "wake up"})

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	stream, err := client.Monitor(ctx)
	if err != nil {
		t.Fatalf("Monitor: %v", err)
	}

	if err := stream.Send(frame(1, 0.3)); err != nil {
		t.Fatalf("send: %v", err)
	}
	first, err := stream.Recv()
	if err != nil {
		t.Fatalf("recv: %v", err)
	}
	if first.DetectionStatus != "Eyes Open" || first.AlertState != "Alert" || first.SessionId == "" {
		t.Fatalf("first update = %+v", first)
	}

	for i := 0; i < 60; i++ {
		if err := stream.Send(frame(uint64(i+2), 0.1)); err != nil {
			t.Fatalf("send: %v", err)
		}
		time.Sleep(time.Millisecond)
	}
	if err := stream.CloseSend(); err != nil {
		t.Fatalf("CloseSend: %v", err)
	}

	var speaks, drowsy int
	for {
		u, err := stream.Recv()
		if err == io.EOF {
			break
		}
		if err != nil {
			t.Fatalf("recv: %v", err)
		}
		if u.SessionId != first.SessionId {
			t.Errorf("update for session %q, want %q", u.SessionId, first.SessionId)
		}
		if u.Speak != "" {
			speaks++
			if u.Speak != "wake up" {
				t.Errorf("speak = %q", u.Speak)
			}
			continue
		}
		if u.AlertState == "Drowsy" {
			drowsy++
		}
	}

	if speaks != 1 || drowsy != 1 {
		t.Errorf("speaks=%d drowsy=%d, want one of each", speaks, drowsy)
	}
	if metrics.GetActiveSessions() != 0 {
		t.Errorf("session still active after stream end")
	}
}

func TestMonitorDropsOversizedFace(t *testing.T) {
	metrics := services.NewMetrics()
	client := startMonitor(t, SessionDeps{Metrics: metrics})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	stream, err := client.Monitor(ctx)
	if err != nil {
		t.Fatalf("Monitor: %v", err)
	}

	huge := make([]*pb.Point, maxFacePoints+1)
	for i := range huge {
		huge[i] = &pb.Point{X: 0.5, Y: 0.5}
	}
	if err := stream.Send(&pb.FaceFrame{Seq: 1, Faces: []*pb.Face{{Points: huge}}}); err != nil {
		t.Fatalf("send: %v", err)
	}
	if err := stream.Send(frame(2, 0.3)); err != nil {
		t.Fatalf("send: %v", err)
	}

	u, err := stream.Recv()
	if err != nil {
		t.Fatalf("stream ended after oversized face: %v", err)
	}
	if u.DetectionStatus != "Eyes Open" {
		t.Errorf("update = %+v, want Eyes Open", u)
	}
	if metrics.GetTotalErrors() != 1 {
		t.Errorf("errors = %d, want 1", metrics.GetTotalErrors())
	}

	if err := stream.CloseSend(); err != nil {
		t.Fatalf("CloseSend: %v", err)
	}
	for {
		if _, err := stream.Recv(); err != nil {
			if err != io.EOF {
				t.Fatalf("recv: %v", err)
			}
			break
		}
	}
}
