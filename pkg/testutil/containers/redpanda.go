//go:build integration

package containers

import (
	"context"
	"fmt"

	"github.com/testcontainers/testcontainers-go/modules/redpanda"
)

// RedpandaContainer is a single-node Kafka-compatible broker.
type RedpandaContainer struct {
	Container *redpanda.Container
	Brokers   []string
}

func startRedpanda() (*RedpandaContainer, error) {
	ctx := context.Background()

	container, err := redpanda.Run(ctx, "docker.redpanda.com/redpandadata/redpanda:v24.2.4",
		redpanda.WithAutoCreateTopics(),
	)
	if err != nil {
		return nil, fmt.Errorf("start: %w", err)
	}

	broker, err := container.KafkaSeedBroker(ctx)
	if err != nil {
		_ = container.Terminate(ctx)
		return nil, fmt.Errorf("seed broker: %w", err)
	}

	return &RedpandaContainer{Container: container, Brokers: []string{broker}}, nil
}
