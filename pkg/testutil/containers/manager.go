//go:build integration

// Package containers starts the backing services used by integration suites.
// Each container is started once per test binary and shared; suites isolate
// themselves by truncating tables or flushing keys.
package containers

import (
	"sync"
	"testing"
)

// Manager lazily starts shared containers.
type Manager struct {
	pgOnce   sync.Once
	postgres *PostgresContainer
	pgErr    error

	redisOnce sync.Once
	redis     *RedisContainer
	redisErr  error

	rpOnce   sync.Once
	redpanda *RedpandaContainer
	rpErr    error
}

var (
	manager     *Manager
	managerOnce sync.Once
)

// GetManager returns the process-wide container manager.
func GetManager() *Manager {
	managerOnce.Do(func() {
		manager = &Manager{}
	})
	return manager
}

// GetPostgres returns the shared Postgres container with migrations applied.
func (m *Manager) GetPostgres(t *testing.T) *PostgresContainer {
	t.Helper()
	m.pgOnce.Do(func() {
		m.postgres, m.pgErr = startPostgres()
	})
	if m.pgErr != nil {
		t.Fatalf("postgres container: %v", m.pgErr)
	}
	return m.postgres
}

// GetRedis returns the shared Redis container.
func (m *Manager) GetRedis(t *testing.T) *RedisContainer {
	t.Helper()
	m.redisOnce.Do(func() {
		m.redis, m.redisErr = startRedis()
	})
	if m.redisErr != nil {
		t.Fatalf("redis container: %v", m.redisErr)
	}
	return m.redis
}

// GetRedpanda returns the shared Kafka-compatible broker.
func (m *Manager) GetRedpanda(t *testing.T) *RedpandaContainer {
	t.Helper()
	m.rpOnce.Do(func() {
		m.redpanda, m.rpErr = startRedpanda()
	})
	if m.rpErr != nil {
		t.Fatalf("redpanda container: %v", m.rpErr)
	}
	return m.redpanda
}
