package kafka

import (
	"context"
	"time"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"github.com/fathima-sithara/messenger-backend/config"
	"github.com/fathima-sithara/messenger-backend/internal/events"
)

// Consumer reads chat events back off the topic and hands them to the live
// fan-out layer.
type Consumer struct {
	reader *kafka.Reader
	log    *zap.SugaredLogger
}

func NewConsumer(cfg *config.Config, log *zap.SugaredLogger) *Consumer {
	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers:  cfg.KafkaBrokers,
		GroupID:  cfg.KafkaGroupID,
		Topic:    cfg.KafkaTopic,
		MinBytes: 1,
		MaxBytes: 10e6,
	})
	return &Consumer{reader: reader, log: log}
}

// Run delivers events until ctx is cancelled. Read and decode failures are
// logged and skipped; a broken subscription degrades to a stale view, it
// never crashes the consumer.
func (c *Consumer) Run(ctx context.Context, out chan<- events.Event) {
	for {
		select {
		case <-ctx.Done():
			c.log.Info("kafka consumer stopping")
			return
		default:
			msg, err := c.reader.ReadMessage(ctx)
			if err != nil {
				if ctx.Err() != nil {
					return
				}
				c.log.Errorw("kafka read error", "err", err)
				time.Sleep(time.Second)
				continue
			}
			e, err := events.Unmarshal(msg.Value)
			if err != nil {
				c.log.Errorw("bad event payload", "err", err)
				continue
			}
			out <- e
		}
	}
}

func (c *Consumer) Close() error {
	return c.reader.Close()
}
