//go:build integration

package postgres_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	audit "rollcall/pkg/platform/audit"
	"rollcall/pkg/platform/audit/store/postgres"
	"rollcall/pkg/testutil/containers"
)

type SecurityStoreSuite struct {
	suite.Suite
	postgres *containers.PostgresContainer
	store    *postgres.Store
}

func TestSecurityStoreSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(SecurityStoreSuite))
}

func (s *SecurityStoreSuite) SetupSuite() {
	s.postgres = containers.GetManager().GetPostgres(s.T())
	s.store = postgres.New(s.postgres.DB)
}

func (s *SecurityStoreSuite) SetupTest() {
	s.Require().NoError(s.postgres.TruncateTables(context.Background(), "audit_security"))
}

func (s *SecurityStoreSuite) TestAppendSecurity_IdenticalEventsAreSeparateRows() {
	ctx := context.Background()
	subject := uuid.NewString()
	lat, lng := 37.8648, -122.4194
	event := audit.SecurityEvent{
		Timestamp: time.Date(2026, 4, 1, 9, 0, 0, 0, time.UTC),
		Subject:   subject,
		Action:    "attendance_rejected",
		Reason:    "OUTSIDE_FENCE",
		IP:        "203.0.113.7",
		RequestID: "req-1",
		Device:    "Safari on iPhone",
		Severity:  audit.SeverityWarning,
		Latitude:  &lat,
		Longitude: &lng,
	}

	s.Require().NoError(s.store.AppendSecurity(ctx, event))
	s.Require().NoError(s.store.AppendSecurity(ctx, event))

	events, err := s.store.ListSecurityBySubject(ctx, subject)
	s.Require().NoError(err)
	s.Require().Len(events, 2)
	s.Equal("OUTSIDE_FENCE", events[0].Reason)
	s.Equal(audit.SeverityWarning, events[0].Severity)
	s.Equal("Safari on iPhone", events[0].Device)
	s.Require().NotNil(events[0].Latitude)
	s.InDelta(lat, *events[0].Latitude, 1e-9)
}

func (s *SecurityStoreSuite) TestAppendSecurity_WithoutCoordinates() {
	ctx := context.Background()
	subject := uuid.NewString()

	s.Require().NoError(s.store.AppendSecurity(ctx, audit.SecurityEvent{
		Timestamp: time.Now().UTC(),
		Subject:   subject,
		Action:    "attendance_rejected",
		Reason:    "VERIFICATION_ERROR",
		Severity:  audit.SeverityInfo,
	}))

	events, err := s.store.ListSecurityBySubject(ctx, subject)
	s.Require().NoError(err)
	s.Require().Len(events, 1)
	s.Nil(events[0].Latitude)
	s.Nil(events[0].Longitude)
}
