package repository

import (
	"context"
	"fmt"

	"FinWeave/internal/domain/models"
	"FinWeave/pkg/kafka"
	"FinWeave/pkg/logger"
)

// KafkaPublisher emits the master table as one JSON message per calendar
// date, keyed by date so a hash balancer keeps each date's revisions on one
// partition.
type KafkaPublisher struct {
	producer *kafka.Producer
	topic    string
	log      *logger.Logger
}

// NewKafkaPublisher creates a publisher for the given topic.
func NewKafkaPublisher(producer *kafka.Producer, topic string, log *logger.Logger) *KafkaPublisher {
	return &KafkaPublisher{producer: producer, topic: topic, log: log}
}

func (p *KafkaPublisher) Export(ctx context.Context, table models.MasterTable, symbols []string) error {
	if len(table) == 0 {
		p.log.Warn("master table is empty, skipping kafka export", logger.String("topic", p.topic))
		return nil
	}

	msgs := make([]kafka.Message, 0, len(table))
	for _, row := range table {
		msgs = append(msgs, kafka.Message{
			Key:   []byte(row.Date),
			Value: row,
		})
	}

	if err := p.producer.PublishBatch(ctx, p.topic, msgs); err != nil {
		return fmt.Errorf("publish master rows: %w", err)
	}

	p.log.Info("master table published",
		logger.String("topic", p.topic),
		logger.Int("rows", len(table)),
		logger.Int("symbols", len(symbols)),
	)
	return nil
}

func (p *KafkaPublisher) Backend() string { return "kafka" }

func (p *KafkaPublisher) Close() error { return p.producer.Close() }
