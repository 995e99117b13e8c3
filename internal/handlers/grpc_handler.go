package handlers

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/peer"
	"google.golang.org/grpc/status"

	"ALERTNESS/go-backend/internal/alert"
	"ALERTNESS/go-backend/internal/alertness"
	"ALERTNESS/go-backend/internal/services"
	"ALERTNESS/go-backend/internal/session"
	"ALERTNESS/go-backend/pkg/log"
	"ALERTNESS/go-backend/pkg/pb"
)

// maxFacePoints bounds one face in a FaceFrame. The refined mesh has 478.
// Larger frames are dropped like any other unusable frame.
const maxFacePoints = 1024

type GRPCHandler struct {
	pb.UnimplementedAlertnessServer
	deps SessionDeps
}

func NewGRPCHandler(deps SessionDeps) *GRPCHandler {
	return &GRPCHandler{deps: deps}
}

// Monitor runs one session for the lifetime of the stream: every FaceFrame
// received is a detector result, and a StatusUpdate is sent whenever the
// alert or detection status changes.
func (h *GRPCHandler) Monitor(stream pb.Alertness_MonitorServer) error {
	ctx := stream.Context()
	clientID := "grpc"
	if p, ok := peer.FromContext(ctx); ok && p.Addr != nil {
		clientID = p.Addr.String()
	}

	updates := make(chan *pb.StatusUpdate, sendBuffer)
	enqueue := func(u *pb.StatusUpdate) {
		select {
		case updates <- u:
		default:
			log.Warn(log.Fields{"client_id": clientID}, "status stream buffer full, dropping update")
		}
	}

	var sessionID string
	source := services.NewPushSource(frameBuffer)
	dispatcher := h.deps.Dispatcher(alert.SpeakerFunc(func(_ context.Context, text string) error {
		enqueue(&pb.StatusUpdate{SessionId: sessionID, Speak: text, TimestampMs: time.Now().UnixMilli()})
		return nil
	}))

	opts := h.deps.SessionOptions()
	opts.Source = source
	opts.SourceName = "grpc"
	opts.ClientID = clientID
	opts.Dispatcher = dispatcher
	opts.Sink = alertness.SinkFunc(func(t alertness.Transition) {
		enqueue(services.ToStatusUpdate(sessionID, t))
	})

	controller := session.NewController(opts)
	if err := controller.Start(ctx); err != nil {
		dispatcher.Close()
		log.Error(log.Fields{"client_id": clientID, "error": err.Error()}, "failed to start session")
		return status.Error(codes.Unavailable, fmt.Sprintf("failed to start session: %v", err))
	}
	sessionID = controller.Snapshot().ID
	log.Info(log.Fields{"client_id": clientID, "session_id": sessionID}, "monitor stream started")

	stopSend := make(chan struct{})
	sendErr := make(chan error, 1)
	go func() {
		sendErr <- sendUpdates(ctx, stream, updates, stopSend)
	}()

	recvErr := h.receive(stream, source, clientID)

	if err := controller.Stop(); err != nil {
		log.Warn(log.Fields{"session_id": sessionID, "error": err.Error()}, "error stopping session")
	}
	dispatcher.Close()
	close(stopSend)
	sErr := <-sendErr

	log.Info(log.Fields{"client_id": clientID, "session_id": sessionID}, "monitor stream ended")

	if recvErr != nil {
		return recvErr
	}
	if sErr != nil && ctx.Err() == nil {
		return sErr
	}
	return nil
}

func (h *GRPCHandler) receive(stream pb.Alertness_MonitorServer, source *services.PushSource, clientID string) error {
	for {
		frame, err := stream.Recv()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			if stream.Context().Err() != nil {
				return nil
			}
			log.Warn(log.Fields{"client_id": clientID, "error": err.Error()}, "monitor recv error")
			return err
		}

		if n := largestFace(frame); n > maxFacePoints {
			if h.deps.Metrics != nil {
				h.deps.Metrics.IncrementErrors()
			}
			log.Warn(log.Fields{"client_id": clientID, "seq": frame.GetSeq(), "points": n}, "dropping frame with oversized face")
			continue
		}

		if err := source.Push(services.FromFaceFrame(frame)); err != nil && !errors.Is(err, services.ErrFrameDropped) {
			log.Debug(log.Fields{"client_id": clientID, "error": err.Error()}, "frame not accepted")
		}
	}
}

func largestFace(frame *pb.FaceFrame) int {
	n := 0
	for _, face := range frame.GetFaces() {
		if l := len(face.GetPoints()); l > n {
			n = l
		}
	}
	return n
}

// sendUpdates is the only goroutine calling stream.Send. After stop is
// closed it flushes what is queued and returns.
func sendUpdates(ctx context.Context, stream pb.Alertness_MonitorServer, updates <-chan *pb.StatusUpdate, stop <-chan struct{}) error {
	for {
		select {
		case u := <-updates:
			if err := stream.Send(u); err != nil {
				return err
			}
		case <-stop:
			for {
				select {
				case u := <-updates:
					if err := stream.Send(u); err != nil {
						return err
					}
				default:
					return nil
				}
			}
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}
