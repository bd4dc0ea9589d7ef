package kafka

import (
	"context"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/fathima-sithara/messenger-backend/config"
	"github.com/fathima-sithara/messenger-backend/internal/events"
)

// Producer publishes chat events keyed by chat id so all writes for one chat
// land on the same partition and keep their order.
type Producer struct {
	writer *kafka.Writer
}

func NewProducer(cfg *config.Config) *Producer {
	w := kafka.NewWriter(kafka.WriterConfig{
		Brokers:  cfg.KafkaBrokers,
		Topic:    cfg.KafkaTopic,
		Balancer: &kafka.Hash{},
	})
	return &Producer{writer: w}
}

func (p *Producer) Publish(ctx context.Context, e events.Event) error {
	value, err := e.Marshal()
	if err != nil {
		return err
	}
	msg := kafka.Message{Key: []byte(e.ChatID), Value: value, Time: time.Now()}
	return p.writer.WriteMessages(ctx, msg)
}

func (p *Producer) Close() error { return p.writer.Close() }
