package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFromEnv_Defaults(t *testing.T) {
	for _, key := range []string{
		"ROLLCALL_ADDR", "DATABASE_URL", "ORACLE_TIMEOUT", "SUSPICIOUS_SINK",
		"KAFKA_BROKERS", "MAX_SAMPLE_BYTES", "STORE_WRITE_TIMEOUT",
		"MARK_RATE_LIMIT", "MARK_RATE_WINDOW",
	} {
		t.Setenv(key, "")
	}

	cfg := FromEnv()

	assert.Equal(t, ":8080", cfg.Server.Addr)
	assert.Equal(t, 15*time.Second, cfg.Oracle.Timeout)
	assert.Equal(t, 5*time.Second, cfg.Attendance.StoreWriteTimeout)
	assert.Equal(t, int64(10<<20), cfg.Attendance.MaxSampleBytes)
	assert.Equal(t, SinkMemory, cfg.Attendance.SuspiciousSink)
	assert.Empty(t, cfg.Kafka.Brokers)
	assert.Equal(t, 10, cfg.Attendance.MarkRateLimit)
	assert.Equal(t, time.Minute, cfg.Attendance.MarkRateWindow)
}

func TestFromEnv_Overrides(t *testing.T) {
	t.Setenv("ROLLCALL_ADDR", ":9090")
	t.Setenv("DATABASE_URL", "postgres://rollcall@localhost/rollcall")
	t.Setenv("ORACLE_TIMEOUT", "3s")
	t.Setenv("ORACLE_BREAKER_FAILURES", "7")
	t.Setenv("KAFKA_BROKERS", "kafka-1:9092, kafka-2:9092,,kafka-1:9092")
	t.Setenv("SUSPICIOUS_SINK", "")

	cfg := FromEnv()

	assert.Equal(t, ":9090", cfg.Server.Addr)
	assert.Equal(t, 3*time.Second, cfg.Oracle.Timeout)
	assert.Equal(t, 7, cfg.Oracle.BreakerFailures)
	assert.Equal(t, []string{"kafka-1:9092", "kafka-2:9092"}, cfg.Kafka.Brokers)
	assert.Equal(t, SinkPostgres, cfg.Attendance.SuspiciousSink)
}

func TestEnvHelpers_FallBackOnInvalid(t *testing.T) {
	t.Setenv("SOME_INT", "-3")
	t.Setenv("SOME_DURATION", "soon")

	assert.Equal(t, 4, envInt("SOME_INT", 4))
	assert.Equal(t, time.Minute, envDuration("SOME_DURATION", time.Minute))
}
