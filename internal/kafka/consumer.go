package kafka

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/ashirarif0999-sketch/blueember/internal/application"
	"github.com/ashirarif0999-sketch/blueember/internal/domain"
	"github.com/ashirarif0999-sketch/blueember/internal/logger"
)

type ConsumerConfig struct {
	Brokers string
	Topic   string
	GroupID string
}

// StartConsumer ingests externally placed orders into the engine. Invalid
// payloads are committed and skipped; engine failures are retried with
// backoff before the message is re-fetched.
func StartConsumer(ctx context.Context, engine *application.OrderEngine, cfg ConsumerConfig) (*kafka.Reader, error) {
	brokers := strings.Split(cfg.Brokers, ",")

	r := kafka.NewReader(kafka.ReaderConfig{
		Brokers:         brokers,
		GroupID:         cfg.GroupID,
		Topic:           cfg.Topic,
		MinBytes:        1,
		MaxBytes:        10e6,
		CommitInterval:  0,
		StartOffset:     kafka.FirstOffset,
		ReadLagInterval: -1,
	})

	logger.Info("kafka consumer starting", "brokers", cfg.Brokers, "topic", cfg.Topic, "group", cfg.GroupID)

	go func() {
		defer r.Close()

		backoff := time.Millisecond * 300
		for {
			m, err := r.FetchMessage(ctx)
			if err != nil {
				if ctx.Err() != nil {
					return
				}
				logger.Warn("kafka fetch error", "err", err)
				time.Sleep(backoff)
				continue
			}

			var o domain.Order
			if err = json.Unmarshal(m.Value, &o); err != nil {
				logger.Warn("kafka invalid json, skip and commit", "err", err)
				_ = r.CommitMessages(ctx, m)
				continue
			}

			if err = engine.ImportOrder(ctx, o); err != nil {
				logger.Warn("kafka import order failed, will retry", "id", o.ID, "err", err)
				time.Sleep(backoff)
				continue
			}

			if err := r.CommitMessages(ctx, m); err != nil {
				logger.Warn("kafka commit failed", "err", err)
			} else {
				logger.Info("kafka order ingested", "topic", m.Topic, "partition", m.Partition, "offset", m.Offset, "id", o.ID)
			}
		}
	}()

	return r, nil
}
