package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	pkgstrings "rollcall/pkg/platform/strings"
)

// Config is the full service configuration, built from the environment.
type Config struct {
	Server     Server
	Database   DatabaseConfig
	Redis      RedisConfig
	Oracle     OracleConfig
	Attendance AttendanceConfig
	Kafka      KafkaConfig
}

// Server captures HTTP server level configuration.
type Server struct {
	Addr          string
	LogLevel      string
	JWTSigningKey string
	JWTIssuer     string
	JWTAudience   string
}

type DatabaseConfig struct {
	URL          string // PostgreSQL connection URL; empty selects in-memory stores
	MaxOpenConns int
	MaxIdleConns int
}

type RedisConfig struct {
	URL          string // empty disables the fence cache
	PoolSize     int
	MinIdleConns int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	FenceTTL     time.Duration
}

type OracleConfig struct {
	URL              string
	Timeout          time.Duration
	BreakerFailures  int
	BreakerSuccesses int
	BreakerCooldown  time.Duration
	MaxResponseBytes int64
}

type AttendanceConfig struct {
	StoreWriteTimeout time.Duration
	MaxSampleBytes    int64
	SuspiciousSink    string // "postgres", "kafka" or "memory"
	MarkRateLimit     int    // attempts per subject per window
	MarkRateWindow    time.Duration
}

type KafkaConfig struct {
	Brokers         []string
	SuspiciousTopic string
}

// Sink names for SUSPICIOUS_SINK.
const (
	SinkPostgres = "postgres"
	SinkKafka    = "kafka"
	SinkMemory   = "memory"
)

// FromEnv builds the config from environment variables, loading a .env file
// first when one exists, so main stays lean.
func FromEnv() Config {
	_ = godotenv.Load()

	cfg := Config{
		Server: Server{
			Addr:          envString("ROLLCALL_ADDR", ":8080"),
			LogLevel:      envString("LOG_LEVEL", "info"),
			JWTSigningKey: envString("JWT_SIGNING_KEY", "dev-secret-key-change-in-production"),
			JWTIssuer:     envString("JWT_ISSUER", "rollcall"),
			JWTAudience:   envString("JWT_AUDIENCE", "rollcall"),
		},
		Database: DatabaseConfig{
			URL:          os.Getenv("DATABASE_URL"),
			MaxOpenConns: envInt("DATABASE_MAX_OPEN_CONNS", 25),
			MaxIdleConns: envInt("DATABASE_MAX_IDLE_CONNS", 5),
		},
		Redis: RedisConfig{
			URL:          os.Getenv("REDIS_URL"),
			PoolSize:     envInt("REDIS_POOL_SIZE", 10),
			MinIdleConns: envInt("REDIS_MIN_IDLE_CONNS", 2),
			DialTimeout:  envDuration("REDIS_DIAL_TIMEOUT", 5*time.Second),
			ReadTimeout:  envDuration("REDIS_READ_TIMEOUT", 3*time.Second),
			WriteTimeout: envDuration("REDIS_WRITE_TIMEOUT", 3*time.Second),
			FenceTTL:     envDuration("FENCE_CACHE_TTL", time.Minute),
		},
		Oracle: OracleConfig{
			URL:              envString("ORACLE_URL", "http://localhost:8000"),
			Timeout:          envDuration("ORACLE_TIMEOUT", 15*time.Second),
			BreakerFailures:  envInt("ORACLE_BREAKER_FAILURES", 5),
			BreakerSuccesses: envInt("ORACLE_BREAKER_SUCCESSES", 2),
			BreakerCooldown:  envDuration("ORACLE_BREAKER_COOLDOWN", 30*time.Second),
			MaxResponseBytes: int64(envInt("ORACLE_MAX_RESPONSE_BYTES", 1<<20)),
		},
		Attendance: AttendanceConfig{
			StoreWriteTimeout: envDuration("STORE_WRITE_TIMEOUT", 5*time.Second),
			MaxSampleBytes:    int64(envInt("MAX_SAMPLE_BYTES", 10<<20)),
			SuspiciousSink:    strings.ToLower(envString("SUSPICIOUS_SINK", "")),
			MarkRateLimit:     envInt("MARK_RATE_LIMIT", 10),
			MarkRateWindow:    envDuration("MARK_RATE_WINDOW", time.Minute),
		},
		Kafka: KafkaConfig{
			Brokers:         pkgstrings.SplitList(os.Getenv("KAFKA_BROKERS")),
			SuspiciousTopic: envString("KAFKA_SUSPICIOUS_TOPIC", "rollcall.attendance.suspicious"),
		},
	}

	if cfg.Attendance.SuspiciousSink == "" {
		cfg.Attendance.SuspiciousSink = SinkMemory
		if cfg.Database.URL != "" {
			cfg.Attendance.SuspiciousSink = SinkPostgres
		}
	}
	return cfg
}

func envString(key, defaultVal string) string {
	if s := strings.TrimSpace(os.Getenv(key)); s != "" {
		return s
	}
	return defaultVal
}

// envInt reads an environment variable and parses it as a positive integer.
// Returns the default value if the env var is unset, empty, or invalid.
func envInt(key string, defaultVal int) int {
	s := os.Getenv(key)
	if s == "" {
		return defaultVal
	}
	if n, err := strconv.Atoi(s); err == nil && n > 0 {
		return n
	}
	return defaultVal
}

// envDuration parses a Go duration ("15s", "2m"). Invalid or non-positive
// values fall back to the default.
func envDuration(key string, defaultVal time.Duration) time.Duration {
	s := os.Getenv(key)
	if s == "" {
		return defaultVal
	}
	if d, err := time.ParseDuration(s); err == nil && d > 0 {
		return d
	}
	return defaultVal
}
