package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"ALERTNESS/go-backend/internal/alertness"
	"ALERTNESS/go-backend/internal/landmarks"
)

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("CONFIG_FILE", "")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Alertness != alertness.DefaultConfig() {
		t.Errorf("alertness = %+v", cfg.Alertness)
	}
	if cfg.Detector != landmarks.DefaultDetectorOptions() {
		t.Errorf("detector = %+v", cfg.Detector)
	}
	if cfg.SpeechBackend != SpeechBrowser || cfg.SourceKind != SourceWorker {
		t.Errorf("speech %q source %q", cfg.SpeechBackend, cfg.SourceKind)
	}
	if cfg.WorkerStartup != 10*time.Second {
		t.Errorf("worker startup = %v", cfg.WorkerStartup)
	}
	if cfg.RedisEnabled() {
		t.Errorf("redis should be disabled without REDIS_ADDR")
	}
}

func TestLoadConfigFromEnv(t *testing.T) {
	t.Setenv("CONFIG_FILE", "")
	t.Setenv("EAR_THRESHOLD", "0.25")
	t.Setenv("CLOSED_FRAME_DEBOUNCE", "10")
	t.Setenv("DETECTOR_REFINE_LANDMARKS", "false")
	t.Setenv("FRAME_SOURCE", "grpc")
	t.Setenv("DETECTOR_URL", "localhost:50052")
	t.Setenv("REDIS_ADDR", "localhost:6379")
	t.Setenv("DB_PASSWORD", "secret")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Alertness.EARThreshold != 0.25 || cfg.Alertness.ClosedFrameDebounce != 10 {
		t.Errorf("alertness = %+v", cfg.Alertness)
	}
	if cfg.Detector.RefineLandmarks {
		t.Errorf("refine landmarks should be off")
	}
	if cfg.SourceKind != SourceGRPC || cfg.DetectorURL != "localhost:50052" {
		t.Errorf("source %q url %q", cfg.SourceKind, cfg.DetectorURL)
	}
	if !cfg.RedisEnabled() {
		t.Errorf("redis should be enabled")
	}
	if strings.Contains(cfg.DSNForLog(), "secret") {
		t.Errorf("DSNForLog leaks the password: %s", cfg.DSNForLog())
	}
	if !strings.Contains(cfg.DSN(), "password=secret") {
		t.Errorf("DSN = %s", cfg.DSN())
	}
}

func TestLoadConfigIgnoresMalformedNumbers(t *testing.T) {
	t.Setenv("CONFIG_FILE", "")
	t.Setenv("EAR_THRESHOLD", "low")
	t.Setenv("MAX_CONNECTIONS", "many")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Alertness.EARThreshold != alertness.DefaultEARThreshold || cfg.MaxConnections != 1000 {
		t.Errorf("malformed values were not replaced by defaults: %+v", cfg)
	}
}

func TestLoadConfigFileOverlay(t *testing.T) {
	path := filepath.Join(t.TempDir(), "alertness.yaml")
	content := `
http_port: "9090"
alertness:
  ear_threshold: 0.19
  closed_frame_debounce: 20
speech_backend: command
speech_command: espeak
source: replay
replay_file: /tmp/drive.rec
worker_startup: 3s
`
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("CONFIG_FILE", path)
	t.Setenv("GRPC_PORT", "6000")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.HTTPPort != "9090" || cfg.GRPCPort != "6000" {
		t.Errorf("ports http=%s grpc=%s", cfg.HTTPPort, cfg.GRPCPort)
	}
	if cfg.Alertness.EARThreshold != 0.19 || cfg.Alertness.ClosedFrameDebounce != 20 {
		t.Errorf("alertness = %+v", cfg.Alertness)
	}
	if cfg.SourceKind != SourceReplay || cfg.ReplayFile != "/tmp/drive.rec" {
		t.Errorf("source %q file %q", cfg.SourceKind, cfg.ReplayFile)
	}
	if cfg.WorkerStartup != 3*time.Second {
		t.Errorf("worker startup = %v", cfg.WorkerStartup)
	}
	if cfg.Detector != landmarks.DefaultDetectorOptions() {
		t.Errorf("detector options not kept from env: %+v", cfg.Detector)
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	t.Setenv("CONFIG_FILE", filepath.Join(t.TempDir(), "missing.yaml"))
	if _, err := LoadConfig(); err == nil {
		t.Fatalf("expected error for missing config file")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"unknown speech backend", func(c *Config) { c.SpeechBackend = "pager" }},
		{"command backend without command", func(c *Config) { c.SpeechBackend = SpeechCommand; c.SpeechCommand = "" }},
		{"grpc source without url", func(c *Config) { c.SourceKind = SourceGRPC; c.DetectorURL = "" }},
		{"replay source without file", func(c *Config) { c.SourceKind = SourceReplay; c.ReplayFile = "" }},
		{"zero threshold", func(c *Config) { c.Alertness.EARThreshold = 0 }},
		{"negative debounce", func(c *Config) { c.Alertness.ClosedFrameDebounce = -1 }},
		{"confidence above one", func(c *Config) { c.Detector.MinDetectionConfidence = 1.5 }},
		{"non-numeric port", func(c *Config) { c.HTTPPort = "http" }},
		{"unknown log level", func(c *Config) { c.LogLevel = "LOUD" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig(t)
			tt.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Errorf("expected validation error")
			}
		})
	}
}

func validConfig(t *testing.T) *Config {
	t.Helper()
	t.Setenv("FRAME_SOURCE", "")
	t.Setenv("SPEECH_BACKEND", "")
	t.Setenv("LOG_LEVEL", "")
	cfg := fromEnv()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
	return cfg
}
