package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/keepalive"

	"ALERTNESS/go-backend/internal/landmarks"
	"ALERTNESS/go-backend/pkg/log"
	"ALERTNESS/go-backend/pkg/pb"
)

// GRPCClient is a frame source backed by a remote face-mesh detector.
type GRPCClient struct {
	conn   *grpc.ClientConn
	client pb.FaceMeshClient
	health healthpb.HealthClient
	url    string

	mu     sync.Mutex
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

func NewGRPCClient(url string, extra ...grpc.DialOption) (*GRPCClient, error) {
	log.Info(log.Fields{"url": url}, "connecting to landmark detector")

	opts := []grpc.DialOption{
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		grpc.WithDefaultCallOptions(
			grpc.MaxCallRecvMsgSize(8*1024*1024),
			grpc.MaxCallSendMsgSize(8*1024*1024),
		),
		grpc.WithKeepaliveParams(keepalive.ClientParameters{
			Time:                10 * time.Second,
			Timeout:             3 * time.Second,
			PermitWithoutStream: true,
		}),
	}
	opts = append(opts, extra...)

	conn, err := grpc.NewClient(url, opts...)
	if err != nil {
		return nil, fmt.Errorf("could not create landmark detector client for %s: %w", url, err)
	}

	return &GRPCClient{
		conn:   conn,
		client: pb.NewFaceMeshClient(conn),
		health: healthpb.NewHealthClient(conn),
		url:    url,
	}, nil
}

// HealthCheck reports whether the detector serves the FaceMesh service.
func (gc *GRPCClient) HealthCheck(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	resp, err := gc.health.Check(ctx, &healthpb.HealthCheckRequest{Service: pb.FaceMesh_ServiceDesc.ServiceName})
	if err != nil {
		return fmt.Errorf("landmark detector at %s unavailable: %w", gc.url, err)
	}
	if resp.GetStatus() != healthpb.HealthCheckResponse_SERVING {
		return fmt.Errorf("landmark detector at %s is %s", gc.url, resp.GetStatus())
	}
	return nil
}

// Open checks detector health and starts a landmark stream.
func (gc *GRPCClient) Open(ctx context.Context, opts landmarks.DetectorOptions) (<-chan landmarks.Result, error) {
	gc.mu.Lock()
	defer gc.mu.Unlock()

	if gc.cancel != nil {
		return nil, ErrSourceOpen
	}
	if err := gc.HealthCheck(ctx); err != nil {
		return nil, err
	}

	streamCtx, cancel := context.WithCancel(ctx)
	stream, err := gc.client.StreamLandmarks(streamCtx, ToDetectorOptions(opts))
	if err != nil {
		cancel()
		return nil, fmt.Errorf("could not start landmark stream: %w", err)
	}
	gc.cancel = cancel

	out := make(chan landmarks.Result, 4)
	gc.wg.Add(1)
	go gc.receive(streamCtx, stream, out)

	log.Info(log.Fields{"url": gc.url}, "landmark stream started")
	return out, nil
}

func (gc *GRPCClient) receive(ctx context.Context, stream pb.FaceMesh_StreamLandmarksClient, out chan<- landmarks.Result) {
	defer gc.wg.Done()
	defer close(out)

	var dropped uint64
	for {
		frame, err := stream.Recv()
		if err != nil {
			if ctx.Err() == nil {
				log.Warn(log.Fields{"url": gc.url, "error": err.Error()}, "landmark stream ended")
			}
			return
		}

		select {
		case out <- FromFaceFrame(frame):
		case <-ctx.Done():
			return
		default:
			dropped++
			log.Debug(log.Fields{"seq": frame.Seq, "dropped": dropped}, "dropping landmark frame, session busy")
		}
	}
}

// Close ends the current landmark stream. The connection stays usable.
func (gc *GRPCClient) Close() error {
	gc.mu.Lock()
	if gc.cancel != nil {
		gc.cancel()
		gc.cancel = nil
	}
	gc.mu.Unlock()
	gc.wg.Wait()
	return nil
}

// Disconnect closes the underlying connection.
func (gc *GRPCClient) Disconnect() error {
	if gc.conn != nil {
		return gc.conn.Close()
	}
	return nil
}
