// Package kafka publishes security events to a Kafka topic. ProduceSync waits
// for acknowledgement from all in-sync replicas before AppendSecurity returns.
package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/twmb/franz-go/pkg/kadm"
	"github.com/twmb/franz-go/pkg/kerr"
	"github.com/twmb/franz-go/pkg/kgo"

	audit "rollcall/pkg/platform/audit"
)

// Producer is the subset of *kgo.Client used by the store.
type Producer interface {
	ProduceSync(ctx context.Context, rs ...*kgo.Record) kgo.ProduceResults
}

type Store struct {
	producer Producer
	topic    string
}

func New(producer Producer, topic string) *Store {
	return &Store{producer: producer, topic: topic}
}

// NewClient builds a franz-go client configured for durable produce.
func NewClient(brokers []string) (*kgo.Client, error) {
	client, err := kgo.NewClient(
		kgo.SeedBrokers(brokers...),
		kgo.RequiredAcks(kgo.AllISRAcks()),
		kgo.ProducerLinger(0),
	)
	if err != nil {
		return nil, fmt.Errorf("create kafka client: %w", err)
	}
	return client, nil
}

// EnsureTopic creates the topic when it does not exist yet.
func EnsureTopic(ctx context.Context, client *kgo.Client, topic string, partitions int32, replicationFactor int16) error {
	adm := kadm.NewClient(client)
	resps, err := adm.CreateTopics(ctx, partitions, replicationFactor, nil, topic)
	if err != nil {
		return fmt.Errorf("create topic %s: %w", topic, err)
	}
	for _, resp := range resps {
		if resp.Err != nil && !errors.Is(resp.Err, kerr.TopicAlreadyExists) {
			return fmt.Errorf("create topic %s: %w", resp.Topic, resp.Err)
		}
	}
	return nil
}

// securityPayload is the JSON message value.
type securityPayload struct {
	ID        string    `json:"id"`
	Timestamp time.Time `json:"timestamp"`
	Subject   string    `json:"subject,omitempty"`
	Action    string    `json:"action"`
	Reason    string    `json:"reason"`
	IP        string    `json:"ip,omitempty"`
	RequestID string    `json:"request_id,omitempty"`
	Device    string    `json:"device,omitempty"`
	Severity  string    `json:"severity"`
	Latitude  *float64  `json:"latitude,omitempty"`
	Longitude *float64  `json:"longitude,omitempty"`
}

// AppendSecurity produces one record keyed by subject so a subject's events
// stay ordered within a partition.
func (s *Store) AppendSecurity(ctx context.Context, event audit.SecurityEvent) error {
	payload := securityPayload{
		ID:        uuid.NewString(),
		Timestamp: event.Timestamp,
		Subject:   event.Subject,
		Action:    event.Action,
		Reason:    event.Reason,
		IP:        event.IP,
		RequestID: event.RequestID,
		Device:    event.Device,
		Severity:  string(event.Severity),
		Latitude:  event.Latitude,
		Longitude: event.Longitude,
	}
	value, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal security event: %w", err)
	}

	record := &kgo.Record{
		Topic: s.topic,
		Key:   []byte(event.Subject),
		Value: value,
		Headers: []kgo.RecordHeader{
			{Key: "action", Value: []byte(event.Action)},
			{Key: "severity", Value: []byte(event.Severity)},
		},
	}
	if err := s.producer.ProduceSync(ctx, record).FirstErr(); err != nil {
		return fmt.Errorf("produce security event: %w", err)
	}
	return nil
}
