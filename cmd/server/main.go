package main

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"

	"ALERTNESS/go-backend/internal/alert"
	"ALERTNESS/go-backend/internal/config"
	"ALERTNESS/go-backend/internal/database"
	"ALERTNESS/go-backend/internal/handlers"
	"ALERTNESS/go-backend/internal/services"
	"ALERTNESS/go-backend/internal/session"
	"ALERTNESS/go-backend/pkg/log"
	"ALERTNESS/go-backend/pkg/pb"
)

var (
	grpcServer *grpc.Server
	httpServer *http.Server
)

func main() {
	httpPort := flag.String("http-port", "", "HTTP port (overrides HTTP_PORT)")
	grpcPort := flag.String("grpc-port", "", "gRPC port (overrides GRPC_PORT)")
	hashToken := flag.String("hash-token", "", "print the bcrypt hash of a token for API_TOKEN_HASH and exit")
	flag.Parse()

	if *hashToken != "" {
		hash, err := handlers.HashToken(*hashToken)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		fmt.Println(hash)
		return
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if *httpPort != "" {
		cfg.HTTPPort = trimColon(*httpPort)
	}
	if *grpcPort != "" {
		cfg.GRPCPort = trimColon(*grpcPort)
	}

	log.Init(log.Options{Level: cfg.LogLevel, File: cfg.LogFile, NoColors: !cfg.IsDev()})

	log.Info(log.Fields{
		"grpc_port":   cfg.GRPCPort,
		"http_port":   cfg.HTTPPort,
		"environment": cfg.Environment,
		"source":      cfg.SourceKind,
		"speech":      cfg.SpeechBackend,
		"threshold":   cfg.Alertness.EARThreshold,
		"debounce":    cfg.Alertness.ClosedFrameDebounce,
	}, "Starting...")

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	metrics := services.NewMetrics()

	deps := handlers.SessionDeps{
		Alertness:    cfg.Alertness,
		Detector:     cfg.Detector,
		AlertMessage: cfg.AlertMessage,
		Metrics:      metrics,
	}

	speaker, err := newSpeaker(cfg)
	if err != nil {
		log.Fatal(log.Fields{"error": err.Error()}, "speech backend unavailable")
	}
	deps.Speaker = speaker

	var db *sql.DB
	var sessions *database.SessionRepository
	if cfg.DBEnabled {
		db, err = database.InitDB(context.Background(), cfg.DSN())
		if err != nil {
			log.Error(log.Fields{"dsn": cfg.DSNForLog(), "error": err.Error()}, "database unavailable, session summaries will not be stored")
		} else {
			sessions = database.NewSessionRepository(db)
			deps.Store = sessions
		}
	}
	defer database.CloseDB(db)

	if cfg.RedisEnabled() {
		publisher, err := services.NewStatusPublisher(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB, cfg.RedisPrefix, metrics)
		if err != nil {
			log.Error(log.Fields{"error": err.Error()}, "redis unavailable, status updates will not be published")
		} else {
			deps.Publisher = publisher
			defer publisher.Close()
		}
	}

	source, detector, err := newFrameSource(cfg)
	if err != nil {
		log.Error(log.Fields{"source": cfg.SourceKind, "error": err.Error()}, "server-side frame source unavailable")
	}

	var controller *session.Controller
	if source != nil {
		opts := deps.SessionOptions()
		opts.Source = source
		opts.SourceName = cfg.SourceKind
		opts.ClientID = "server"
		opts.Dispatcher = deps.Dispatcher(nil)
		controller = session.NewController(opts)
	}
	if detector != nil {
		defer detector.Disconnect()
	}

	hub := handlers.NewHub(deps, cfg.MaxConnections)

	apiOpts := handlers.APIOptions{
		Controller: controller,
		Metrics:    metrics,
		Hub:        hub,
		TokenHash:  cfg.APITokenHash,
	}
	if detector != nil {
		apiOpts.Detector = detector
	}
	if sessions != nil {
		apiOpts.Sessions = sessions
	}
	api := handlers.NewAPI(apiOpts)

	grpcServer = grpc.NewServer(
		grpc.MaxRecvMsgSize(8*1024*1024),
		grpc.MaxSendMsgSize(8*1024*1024),
	)
	pb.RegisterAlertnessServer(grpcServer, handlers.NewGRPCHandler(deps))
	healthServer := health.NewServer()
	healthServer.SetServingStatus(pb.Alertness_ServiceDesc.ServiceName, healthpb.HealthCheckResponse_SERVING)
	healthpb.RegisterHealthServer(grpcServer, healthServer)

	log.Info(nil, "Starting gRPC server...")
	go startGRPCServer(cfg.GRPCPort)

	log.Info(nil, "Starting HTTP server...")
	go startHTTPServer(cfg, hub, api)

	<-done
	log.Info(nil, "Shutting down...")
	healthServer.Shutdown()

	if controller != nil {
		if err := controller.Stop(); err != nil {
			log.Warn(log.Fields{"error": err.Error()}, "error stopping session")
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	stopped := make(chan struct{})
	go func() {
		log.Info(nil, "Stopping gRPC server...")
		grpcServer.GracefulStop()
		close(stopped)
	}()

	select {
	case <-stopped:
		log.Info(nil, "gRPC server stopped")
	case <-shutdownCtx.Done():
		log.Warn(nil, "Forced gRPC shutdown")
		grpcServer.Stop()
	}

	if httpServer != nil {
		httpShutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		log.Info(nil, "Stopping HTTP server...")
		if err := httpServer.Shutdown(httpShutdownCtx); err != nil {
			log.Error(log.Fields{"error": err.Error()}, "error shutting down HTTP server")
		} else {
			log.Info(nil, "HTTP server gracefully stopped")
		}
	}

	log.Info(nil, "Closing WebSocket connections...")
	hub.CloseAll()

	log.Info(nil, "Goodbye!")
}

func newSpeaker(cfg *config.Config) (alert.Speaker, error) {
	switch cfg.SpeechBackend {
	case config.SpeechCommand:
		return alert.NewCommandSpeaker(cfg.SpeechCommand)
	case config.SpeechNone:
		return alert.NopSpeaker{}, nil
	default:
		// Remote clients speak the alert themselves.
		return nil, nil
	}
}

// newFrameSource builds the source used by REST-started sessions. detector
// is set when the source is a remote landmark detector.
func newFrameSource(cfg *config.Config) (session.FrameSource, *services.GRPCClient, error) {
	switch cfg.SourceKind {
	case config.SourceGRPC:
		client, err := services.NewGRPCClient(cfg.DetectorURL)
		if err != nil {
			return nil, nil, err
		}
		return client, client, nil
	case config.SourceReplay:
		return services.NewReplaySource(cfg.ReplayFile, cfg.ReplayFPS), nil, nil
	default:
		worker, err := services.NewWorkerSource(cfg.DetectorWorkerCmd, cfg.WorkerStartup)
		if err != nil {
			return nil, nil, err
		}
		return worker, nil, nil
	}
}

func startGRPCServer(port string) {
	lis, err := net.Listen("tcp", ":"+port)
	if err != nil {
		log.Fatal(log.Fields{"port": port, "error": err.Error()}, "failed to listen on gRPC port")
	}

	log.Info(log.Fields{"port": port}, "gRPC server listening")

	if err := grpcServer.Serve(lis); err != nil {
		log.Fatal(log.Fields{"error": err.Error()}, "failed to serve gRPC")
	}
}

func startHTTPServer(cfg *config.Config, hub *handlers.Hub, api *handlers.API) {
	mux := http.NewServeMux()

	mux.Handle("/ws", handlers.RequireToken(cfg.APITokenHash, hub))
	api.Register(mux)

	handler := handlers.CORS(cfg.CORSOrigins, handlers.RateLimit(cfg.RateLimitPerMin, mux))

	httpServer = &http.Server{
		Addr:        ":" + cfg.HTTPPort,
		Handler:     handler,
		ReadTimeout: 15 * time.Second,
		IdleTimeout: 60 * time.Second,
	}

	log.Info(log.Fields{
		"port":      cfg.HTTPPort,
		"websocket": "ws://localhost:" + cfg.HTTPPort + "/ws",
		"rest":      "http://localhost:" + cfg.HTTPPort + "/api/*",
	}, "HTTP server listening")

	if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatal(log.Fields{"error": err.Error()}, "failed to serve HTTP")
	}
}

func trimColon(port string) string {
	if len(port) > 0 && port[0] == ':' {
		return port[1:]
	}
	return port
}
