package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"ALERTNESS/go-backend/internal/alertness"
	"ALERTNESS/go-backend/internal/landmarks"
	"ALERTNESS/go-backend/pkg/log"
)

const (
	SpeechBrowser = "browser"
	SpeechCommand = "command"
	SpeechNone    = "none"

	SourceWorker = "worker"
	SourceGRPC   = "grpc"
	SourceReplay = "replay"
)

type Config struct {
	GRPCPort    string `yaml:"grpc_port" validate:"required,numeric"`
	HTTPPort    string `yaml:"http_port" validate:"required,numeric"`
	CORSOrigins string `yaml:"cors_origins"`

	MaxConnections  int    `yaml:"max_connections" validate:"gte=1"`
	RateLimitPerMin int    `yaml:"rate_per_min" validate:"gte=0"`
	APITokenHash    string `yaml:"api_token_hash"`
	LogLevel        string `yaml:"log_level" validate:"oneof=DEBUG INFO WARN ERROR debug info warn error"`
	LogFile         string `yaml:"log_file"`
	Environment     string `yaml:"environment"`

	Alertness alertness.Config          `yaml:"alertness"`
	Detector  landmarks.DetectorOptions `yaml:"detector"`

	AlertMessage  string `yaml:"alert_message" validate:"required"`
	SpeechBackend string `yaml:"speech_backend" validate:"oneof=browser command none"`
	SpeechCommand string `yaml:"speech_command" validate:"required_if=SpeechBackend command"`

	// SourceKind selects the server-side frame source for REST sessions.
	SourceKind        string        `yaml:"source" validate:"oneof=worker grpc replay"`
	DetectorWorkerCmd string        `yaml:"detector_worker_cmd" validate:"required_if=SourceKind worker"`
	WorkerStartup     time.Duration `yaml:"worker_startup"`
	DetectorURL       string        `yaml:"detector_url" validate:"required_if=SourceKind grpc"`
	ReplayFile        string        `yaml:"replay_file" validate:"required_if=SourceKind replay"`
	ReplayFPS         float64       `yaml:"replay_fps" validate:"gte=0"`

	DBEnabled  bool   `yaml:"db_enabled"`
	DBName     string `yaml:"db_name"`
	DBHost     string `yaml:"db_host"`
	DBPort     string `yaml:"db_port"`
	DBUser     string `yaml:"db_user"`
	DBPassword string `yaml:"db_password"`
	DBSSLMode  string `yaml:"db_sslmode"`

	RedisAddr     string `yaml:"redis_addr"`
	RedisPassword string `yaml:"redis_password"`
	RedisDB       int    `yaml:"redis_db" validate:"gte=0"`
	RedisPrefix   string `yaml:"redis_prefix"`
}

func (p *Config) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		p.DBHost, p.DBPort, p.DBUser, p.DBPassword, p.DBName, p.DBSSLMode)
}

// DSNForLog returns the DSN with the password masked.
func (p *Config) DSNForLog() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=*** dbname=%s sslmode=%s",
		p.DBHost, p.DBPort, p.DBUser, p.DBName, p.DBSSLMode)
}

func (c *Config) IsDev() bool {
	return c.Environment == "dev"
}

// RedisEnabled reports whether status updates are published to Redis.
func (c *Config) RedisEnabled() bool {
	return c.RedisAddr != ""
}

// LoadConfig reads .env (if present) and the process environment, then
// applies the YAML file named by CONFIG_FILE on top and validates the result.
func LoadConfig() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Debug(nil, "no .env file found, using system environment variables")
	}

	cfg := fromEnv()

	if path := os.Getenv("CONFIG_FILE"); path != "" {
		if err := cfg.applyFile(path); err != nil {
			return nil, err
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	if cfg.DBEnabled && cfg.DBPassword == "" {
		log.Warn(log.Fields{"dsn": cfg.DSNForLog()}, "DB_PASSWORD is not set")
	}
	return cfg, nil
}

func fromEnv() *Config {
	defaults := landmarks.DefaultDetectorOptions()

	return &Config{
		GRPCPort:        getEnv("GRPC_PORT", "50051"),
		HTTPPort:        getEnv("HTTP_PORT", "8081"),
		CORSOrigins:     getEnv("CORS_ORIGINS", "*"),
		MaxConnections:  getEnvInt("MAX_CONNECTIONS", 1000),
		RateLimitPerMin: getEnvInt("RATE_PER_MIN", 1000),
		APITokenHash:    getEnv("API_TOKEN_HASH", ""),
		LogLevel:        getEnv("LOG_LEVEL", "INFO"),
		LogFile:         getEnv("LOG_FILE", ""),
		Environment:     getEnv("ENVIRONMENT", "production"),

		Alertness: alertness.Config{
			EARThreshold:        getEnvFloat("EAR_THRESHOLD", alertness.DefaultEARThreshold),
			ClosedFrameDebounce: getEnvInt("CLOSED_FRAME_DEBOUNCE", alertness.DefaultClosedFrameDebounce),
		},
		Detector: landmarks.DetectorOptions{
			MaxFaces:               getEnvInt("DETECTOR_MAX_FACES", defaults.MaxFaces),
			RefineLandmarks:        getEnvBool("DETECTOR_REFINE_LANDMARKS", defaults.RefineLandmarks),
			MinDetectionConfidence: getEnvFloat("DETECTOR_MIN_DETECTION_CONFIDENCE", defaults.MinDetectionConfidence),
			MinTrackingConfidence:  getEnvFloat("DETECTOR_MIN_TRACKING_CONFIDENCE", defaults.MinTrackingConfidence),
			Width:                  getEnvInt("CAMERA_WIDTH", defaults.Width),
			Height:                 getEnvInt("CAMERA_HEIGHT", defaults.Height),
		},

		AlertMessage:  getEnv("ALERT_MESSAGE", "Wake up! You are feeling sleepy!"),
		SpeechBackend: getEnv("SPEECH_BACKEND", SpeechBrowser),
		SpeechCommand: getEnv("SPEECH_COMMAND", ""),

		SourceKind:        getEnv("FRAME_SOURCE", SourceWorker),
		DetectorWorkerCmd: getEnv("DETECTOR_WORKER_CMD", "python3 workers/face_mesh.py"),
		WorkerStartup:     getEnvDuration("DETECTOR_WORKER_STARTUP", 10*time.Second),
		DetectorURL:       getEnv("DETECTOR_URL", ""),
		ReplayFile:        getEnv("REPLAY_FILE", ""),
		ReplayFPS:         getEnvFloat("REPLAY_FPS", 30),

		DBEnabled:  getEnvBool("DB_ENABLED", false),
		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     getEnv("DB_USER", "postgres"),
		DBPassword: getEnv("DB_PASSWORD", ""),
		DBName:     getEnv("DB_NAME", "alertness"),
		DBSSLMode:  getEnv("DB_SSLMODE", "disable"),

		RedisAddr:     getEnv("REDIS_ADDR", ""),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		RedisDB:       getEnvInt("REDIS_DB", 0),
		RedisPrefix:   getEnv("REDIS_PREFIX", "alertness"),
	}
}

// applyFile overlays the YAML file at path. Keys missing from the file keep
// their environment value.
func (c *Config) applyFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	return nil
}

var validate = validator.New()

func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

func getEnv(key string, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	if v := os.Getenv(key); v != "" {
		if intVal, err := strconv.Atoi(v); err == nil {
			return intVal
		}
	}
	return defaultVal
}

func getEnvFloat(key string, defaultVal float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return defaultVal
}

func getEnvBool(key string, defaultVal bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(strings.TrimSpace(v)); err == nil {
			return b
		}
	}
	return defaultVal
}

func getEnvDuration(key string, defaultVal time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return defaultVal
}
