package notify

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/IBM/sarama"

	"breathbot/types"
)

// ReleaseHandler processes one release event. Returning an error leaves the
// message unmarked so it is redelivered.
type ReleaseHandler func(ctx context.Context, event types.ReleaseScheduled) error

// Consumer reads release events from a Kafka consumer group.
type Consumer struct {
	group   sarama.ConsumerGroup
	handler ReleaseHandler
	topic   string
	groupID string
	logger  *slog.Logger
	ready   chan bool
}

type ConsumerConfig struct {
	Brokers []string
	Topic   string
	GroupID string
	Handler ReleaseHandler
}

func NewConsumer(cfg ConsumerConfig, logger *slog.Logger) (*Consumer, error) {
	saramaConfig := sarama.NewConfig()
	saramaConfig.Version = sarama.V3_6_0_0
	saramaConfig.Consumer.Group.Rebalance.GroupStrategies = []sarama.BalanceStrategy{sarama.NewBalanceStrategyRoundRobin()}
	saramaConfig.Consumer.Offsets.Initial = sarama.OffsetOldest
	saramaConfig.Consumer.Return.Errors = true

	group, err := sarama.NewConsumerGroup(cfg.Brokers, cfg.GroupID, saramaConfig)
	if err != nil {
		return nil, fmt.Errorf("create consumer group: %w", err)
	}

	return &Consumer{
		group:   group,
		handler: cfg.Handler,
		topic:   cfg.Topic,
		groupID: cfg.GroupID,
		logger:  logger,
		ready:   make(chan bool),
	}, nil
}

// Start joins the group and returns once the first session is set up.
// Consumption continues in the background until ctx is cancelled.
func (c *Consumer) Start(ctx context.Context) error {
	handler := &groupHandler{handle: c.handle, ready: c.ready, logger: c.logger}

	go func() {
		for {
			if err := c.group.Consume(ctx, []string{c.topic}, handler); err != nil {
				if errors.Is(err, context.Canceled) {
					c.logger.Info("Kafka consumer context canceled")
					return
				}
				c.logger.Error("Error from Kafka consumer", "error", err)
			}

			if ctx.Err() != nil {
				return
			}
			handler.ready = make(chan bool)
		}
	}()

	select {
	case <-c.ready:
	case <-ctx.Done():
		return ctx.Err()
	}
	c.logger.Info("✅ Kafka consumer started", "group", c.groupID, "topic", c.topic)

	go func() {
		for err := range c.group.Errors() {
			c.logger.Error("❌ Kafka consumer error", "error", err)
		}
	}()

	return nil
}

func (c *Consumer) Close() error {
	c.logger.Info("Closing Kafka consumer...")
	return c.group.Close()
}

// handle decodes and dispatches one message and reports whether it may be marked.
// Undecodable messages are marked so they do not block the partition.
func (c *Consumer) handle(ctx context.Context, body []byte) bool {
	event, err := decodeEvent(body)
	if err != nil {
		c.logger.Warn("⚠️ Dropping undecodable release event", "error", err)
		return true
	}

	if err := c.handler(ctx, event); err != nil {
		c.logger.Error("❌ Failed to handle release event", "key", event.Key, "error", err)
		return false
	}
	return true
}

type groupHandler struct {
	handle func(ctx context.Context, body []byte) bool
	ready  chan bool
	logger *slog.Logger
}

func (h *groupHandler) Setup(sarama.ConsumerGroupSession) error {
	close(h.ready)
	return nil
}

func (h *groupHandler) Cleanup(sarama.ConsumerGroupSession) error {
	return nil
}

func (h *groupHandler) ConsumeClaim(session sarama.ConsumerGroupSession, claim sarama.ConsumerGroupClaim) error {
	for {
		select {
		case message := <-claim.Messages():
			if message == nil {
				return nil
			}

			h.logger.Debug("📥 Received release event",
				"partition", message.Partition, "offset", message.Offset, "key", string(message.Key))

			if h.handle(session.Context(), message.Value) {
				session.MarkMessage(message, "")
			}

		case <-session.Context().Done():
			return nil
		}
	}
}
