// Package notify announces scheduled releases to a message broker so other
// services can react to them.
package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"breathbot/config"
	"breathbot/types"
)

// Notifier publishes release events. Failures are reported to the caller,
// which logs them; they never affect upload progress.
type Notifier interface {
	Notify(ctx context.Context, event types.ReleaseScheduled) error
	Close() error
}

// Nop discards every event.
type Nop struct{}

func (Nop) Notify(context.Context, types.ReleaseScheduled) error { return nil }
func (Nop) Close() error                                         { return nil }

// Open builds the notifier selected by cfg.Backend.
func Open(cfg config.NotifyConfig, logger *slog.Logger) (Notifier, error) {
	switch cfg.Backend {
	case config.NotifyNone:
		return Nop{}, nil
	case config.NotifyKafka:
		return NewKafkaNotifier(cfg.Kafka.Brokers, cfg.Kafka.Topic, logger)
	case config.NotifyRabbitMQ:
		return NewRabbitMQ(cfg.RabbitMQ, logger)
	default:
		return nil, fmt.Errorf("%w: unknown notify backend %q", config.ErrInvalidConfig, cfg.Backend)
	}
}

func encodeEvent(event types.ReleaseScheduled) ([]byte, error) {
	body, err := json.Marshal(event)
	if err != nil {
		return nil, fmt.Errorf("marshal release event: %w", err)
	}
	return body, nil
}

func decodeEvent(body []byte) (types.ReleaseScheduled, error) {
	var event types.ReleaseScheduled
	if err := json.Unmarshal(body, &event); err != nil {
		return types.ReleaseScheduled{}, fmt.Errorf("unmarshal release event: %w", err)
	}
	return event, nil
}

func eventKey(event types.ReleaseScheduled) string {
	return event.Profile + ":" + event.Key
}
