package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"breathbot/config"
	"breathbot/notify"
	"breathbot/types"
)

var eventsGroup string

var eventsCmd = &cobra.Command{
	Use:   "events",
	Short: "Print release events from the Kafka topic",
	Long:  "Joins a consumer group on notify.kafka.topic and prints every release event as a JSON line until interrupted.",
	RunE:  runEvents,
}

func init() {
	eventsCmd.Flags().StringVar(&eventsGroup, "group", config.DefaultEventsGroup, "Kafka consumer group")
	rootCmd.AddCommand(eventsCmd)
}

func runEvents(_ *cobra.Command, _ []string) error {
	a, err := loadApp(os.Stderr)
	if err != nil {
		return err
	}

	ctx, stop := signalContext()
	defer stop()

	enc := json.NewEncoder(os.Stdout)
	consumer, err := notify.NewConsumer(notify.ConsumerConfig{
		Brokers: a.cfg.Notify.Kafka.Brokers,
		Topic:   a.cfg.Notify.Kafka.Topic,
		GroupID: eventsGroup,
		Handler: func(_ context.Context, event types.ReleaseScheduled) error {
			return enc.Encode(event)
		},
	}, a.logger)
	if err != nil {
		return err
	}
	defer consumer.Close()

	if err := consumer.Start(ctx); err != nil {
		if ctx.Err() != nil {
			return nil
		}
		return fmt.Errorf("start consumer: %w", err)
	}

	<-ctx.Done()
	return nil
}
