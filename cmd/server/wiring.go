package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"rollcall/internal/attendance/adapters"
	"rollcall/internal/attendance/handler"
	attendancemetrics "rollcall/internal/attendance/metrics"
	"rollcall/internal/attendance/ports"
	"rollcall/internal/attendance/service"
	"rollcall/internal/attendance/store/cache"
	"rollcall/internal/attendance/store/memory"
	pgstore "rollcall/internal/attendance/store/postgres"
	"rollcall/internal/identity/oracle"
	jwttoken "rollcall/internal/jwt_token"
	"rollcall/internal/platform/config"
	"rollcall/internal/platform/metrics"
	"rollcall/internal/platform/postgres"
	"rollcall/internal/platform/redis"
	"rollcall/internal/ratelimit"
	audit "rollcall/pkg/platform/audit"
	auditkafka "rollcall/pkg/platform/audit/store/kafka"
	auditmemory "rollcall/pkg/platform/audit/store/memory"
	auditpg "rollcall/pkg/platform/audit/store/postgres"
	"rollcall/pkg/platform/circuit"
)

// app holds the wired handler and everything that must be closed or probed.
type app struct {
	handler     *handler.Handler
	httpMetrics *metrics.Metrics
	checks      []readinessCheck
	closers     []func()
	storage     string
}

func (a *app) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
}

type stores struct {
	registry    ports.LocationRegistry
	enrollments ports.EnrollmentStore
	attendance  ports.AttendanceStore
}

func buildApp(ctx context.Context, cfg config.Config, log *slog.Logger) (*app, error) {
	a := &app{httpMetrics: metrics.New()}

	db, err := openDatabase(ctx, cfg, log, a)
	if err != nil {
		a.Close()
		return nil, err
	}

	st := stores{
		registry:    memory.NewFenceRegistry(),
		enrollments: memory.NewTemplateStore(),
		attendance:  memory.NewAttendanceStore(),
	}
	a.storage = "memory"
	if db != nil {
		st = stores{
			registry:    pgstore.NewFenceRegistry(db),
			enrollments: pgstore.NewTemplateStore(db),
			attendance:  pgstore.NewAttendanceStore(db),
		}
		a.storage = "postgres"
	} else {
		log.Warn("DATABASE_URL not set; using in-memory stores with no fences configured")
	}

	rc, err := redis.New(ctx, cfg.Redis)
	if err != nil {
		a.Close()
		return nil, err
	}
	var limiterStore ratelimit.Store = ratelimit.NewInMemoryStore()
	if rc != nil {
		a.closers = append(a.closers, func() { _ = rc.Close() })
		a.checks = append(a.checks, readinessCheck{name: "redis", check: rc.Health})
		st.registry = cache.NewFenceCache(st.registry, rc.Client, cfg.Redis.FenceTTL, cache.WithLogger(log))
		limiterStore = ratelimit.NewRedisStore(rc.Client)
	}

	securityStore, err := buildSuspiciousSink(ctx, cfg, log, db, a)
	if err != nil {
		a.Close()
		return nil, err
	}

	breaker := circuit.New("identity-oracle",
		circuit.WithFailureThreshold(cfg.Oracle.BreakerFailures),
		circuit.WithSuccessThreshold(cfg.Oracle.BreakerSuccesses),
		circuit.WithCooldown(cfg.Oracle.BreakerCooldown),
	)
	oracleClient := oracle.New(cfg.Oracle.URL,
		oracle.WithTimeout(cfg.Oracle.Timeout),
		oracle.WithBreaker(breaker),
		oracle.WithLogger(log),
		oracle.WithMetrics(oracle.NewMetrics()),
		oracle.WithMaxResponseBytes(cfg.Oracle.MaxResponseBytes),
	)
	a.checks = append(a.checks, readinessCheck{name: "oracle", check: oracleClient.Health})

	svc, err := service.New(
		st.registry,
		st.enrollments,
		oracleClient,
		st.attendance,
		adapters.NewRecorderAdapter(securityStore),
		service.WithLogger(log),
		service.WithMetrics(attendancemetrics.New()),
		service.WithWriteTimeout(cfg.Attendance.StoreWriteTimeout),
		service.WithTemplateExtractor(oracleClient),
	)
	if err != nil {
		a.Close()
		return nil, fmt.Errorf("attendance service: %w", err)
	}

	tokens := jwttoken.NewJWTService(cfg.Server.JWTSigningKey, cfg.Server.JWTIssuer, cfg.Server.JWTAudience)
	limiter := ratelimit.NewLimiter(limiterStore, cfg.Attendance.MarkRateLimit, cfg.Attendance.MarkRateWindow, log)
	a.handler = handler.New(svc, tokens, log,
		handler.WithMaxSampleBytes(cfg.Attendance.MaxSampleBytes),
		handler.WithRateLimit(limiter.PerSubject),
	)
	return a, nil
}

// openDatabase returns nil when no database is configured.
func openDatabase(ctx context.Context, cfg config.Config, log *slog.Logger, a *app) (*sql.DB, error) {
	if cfg.Database.URL == "" {
		return nil, nil
	}
	db, err := postgres.Open(ctx, cfg.Database)
	if err != nil {
		return nil, err
	}
	a.closers = append(a.closers, func() { _ = db.Close() })
	if err := postgres.Migrate(ctx, db, log); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}
	a.checks = append(a.checks, readinessCheck{name: "postgres", check: db.PingContext})
	return db, nil
}

func buildSuspiciousSink(ctx context.Context, cfg config.Config, log *slog.Logger, db *sql.DB, a *app) (audit.SecurityStore, error) {
	switch cfg.Attendance.SuspiciousSink {
	case config.SinkPostgres:
		if db == nil {
			return nil, fmt.Errorf("SUSPICIOUS_SINK=postgres requires DATABASE_URL")
		}
		return auditpg.New(db), nil

	case config.SinkKafka:
		if len(cfg.Kafka.Brokers) == 0 {
			return nil, fmt.Errorf("SUSPICIOUS_SINK=kafka requires KAFKA_BROKERS")
		}
		client, err := auditkafka.NewClient(cfg.Kafka.Brokers)
		if err != nil {
			return nil, err
		}
		a.closers = append(a.closers, client.Close)
		// -1 takes the broker's default partition count and replication.
		if err := auditkafka.EnsureTopic(ctx, client, cfg.Kafka.SuspiciousTopic, -1, -1); err != nil {
			return nil, err
		}
		a.checks = append(a.checks, readinessCheck{name: "kafka", check: client.Ping})
		return auditkafka.New(client, cfg.Kafka.SuspiciousTopic), nil

	case config.SinkMemory:
		log.Warn("suspicious events are kept in memory and lost on restart")
		return auditmemory.NewInMemoryStore(), nil

	default:
		return nil, fmt.Errorf("unknown SUSPICIOUS_SINK %q", cfg.Attendance.SuspiciousSink)
	}
}
