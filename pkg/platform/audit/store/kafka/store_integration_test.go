//go:build integration

package kafka_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"github.com/twmb/franz-go/pkg/kgo"

	audit "rollcall/pkg/platform/audit"
	"rollcall/pkg/platform/audit/store/kafka"
	"rollcall/pkg/testutil/containers"
)

type KafkaStoreSuite struct {
	suite.Suite
	redpanda *containers.RedpandaContainer
	client   *kgo.Client
}

func TestKafkaStoreSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(KafkaStoreSuite))
}

func (s *KafkaStoreSuite) SetupSuite() {
	s.redpanda = containers.GetManager().GetRedpanda(s.T())
	client, err := kafka.NewClient(s.redpanda.Brokers)
	s.Require().NoError(err)
	s.client = client
}

func (s *KafkaStoreSuite) TearDownSuite() {
	if s.client != nil {
		s.client.Close()
	}
}

func (s *KafkaStoreSuite) TestAppendSecurity_ProducesKeyedRecord() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	topic := "suspicious-" + uuid.NewString()
	s.Require().NoError(kafka.EnsureTopic(ctx, s.client, topic, 1, 1))
	s.Require().NoError(kafka.EnsureTopic(ctx, s.client, topic, 1, 1), "ensure must be idempotent")

	subject := uuid.NewString()
	store := kafka.New(s.client, topic)
	s.Require().NoError(store.AppendSecurity(ctx, audit.SecurityEvent{
		Timestamp: time.Now().UTC(),
		Subject:   subject,
		Action:    "attendance_rejected",
		Reason:    "LOW_CONFIDENCE",
		Severity:  audit.SeverityWarning,
	}))

	consumer, err := kgo.NewClient(
		kgo.SeedBrokers(s.redpanda.Brokers...),
		kgo.ConsumeTopics(topic),
		kgo.ConsumeResetOffset(kgo.NewOffset().AtStart()),
	)
	s.Require().NoError(err)
	defer consumer.Close()

	fetches := consumer.PollFetches(ctx)
	s.Require().Empty(fetches.Errors())
	records := fetches.Records()
	s.Require().Len(records, 1)
	s.Equal(subject, string(records[0].Key))

	var payload map[string]any
	s.Require().NoError(json.Unmarshal(records[0].Value, &payload))
	s.Equal("LOW_CONFIDENCE", payload["reason"])
	s.NotEmpty(payload["id"])
}
