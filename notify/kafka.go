package notify

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/IBM/sarama"

	"breathbot/types"
)

// KafkaNotifier publishes release events with a synchronous producer.
type KafkaNotifier struct {
	producer sarama.SyncProducer
	topic    string
	logger   *slog.Logger
}

// ProducerConfig is the sarama configuration used for release events.
func ProducerConfig() *sarama.Config {
	cfg := sarama.NewConfig()
	cfg.Version = sarama.V3_6_0_0
	cfg.Producer.RequiredAcks = sarama.WaitForAll
	cfg.Producer.Return.Successes = true
	cfg.Producer.Return.Errors = true
	return cfg
}

// NewKafkaNotifier connects a sync producer to the brokers.
func NewKafkaNotifier(brokers []string, topic string, logger *slog.Logger) (*KafkaNotifier, error) {
	producer, err := sarama.NewSyncProducer(brokers, ProducerConfig())
	if err != nil {
		return nil, fmt.Errorf("create kafka producer: %w", err)
	}

	logger.Info("✅ Kafka notifier ready", "brokers", brokers, "topic", topic)
	return NewKafkaNotifierWithProducer(producer, topic, logger), nil
}

// NewKafkaNotifierWithProducer wraps an existing producer.
func NewKafkaNotifierWithProducer(producer sarama.SyncProducer, topic string, logger *slog.Logger) *KafkaNotifier {
	return &KafkaNotifier{producer: producer, topic: topic, logger: logger}
}

func (k *KafkaNotifier) Notify(_ context.Context, event types.ReleaseScheduled) error {
	body, err := encodeEvent(event)
	if err != nil {
		return err
	}

	partition, offset, err := k.producer.SendMessage(&sarama.ProducerMessage{
		Topic: k.topic,
		Key:   sarama.StringEncoder(eventKey(event)),
		Value: sarama.ByteEncoder(body),
	})
	if err != nil {
		return fmt.Errorf("send release event: %w", err)
	}

	k.logger.Debug("📨 Release event sent", "key", event.Key, "partition", partition, "offset", offset)
	return nil
}

func (k *KafkaNotifier) Close() error {
	return k.producer.Close()
}
