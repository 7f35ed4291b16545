package report

import (
	"context"
	"fmt"
	"time"

	"github.com/bytedance/sonic"
	"github.com/segmentio/kafka-go"
)

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// ResultMessage Kafka 中每个策略一条消息的内容
type ResultMessage struct {
	RunID        string    `json:"run_id"`
	StartedAt    time.Time `json:"started_at"`
	Host         string    `json:"host"`
	Threads      int       `json:"threads"`
	SequenceSize int       `json:"sequence_size"`
	Result
}

// KafkaSink 每个策略的结果发一条消息，key 为策略名，同一策略落在同一分区
type KafkaSink struct {
	w messageWriter
}

func NewKafkaSink(brokers []string, topic string) *KafkaSink {
	return &KafkaSink{w: &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  topic,
		Balancer:               &kafka.Hash{},
		Compression:            kafka.Snappy,
		RequiredAcks:           kafka.RequireAll,
		AllowAutoTopicCreation: true,
	}}
}

func (s *KafkaSink) Publish(ctx context.Context, r *Report) error {
	msgs := make([]kafka.Message, 0, len(r.Results))
	for _, res := range r.Results {
		value, err := sonic.Marshal(ResultMessage{
			RunID:        r.RunID,
			StartedAt:    r.StartedAt,
			Host:         r.Host,
			Threads:      r.Threads,
			SequenceSize: r.SequenceSize,
			Result:       res,
		})
		if err != nil {
			return fmt.Errorf("report: encode %s: %w", res.Strategy, err)
		}
		msgs = append(msgs, kafka.Message{
			Key:     []byte(res.Strategy),
			Value:   value,
			Headers: []kafka.Header{{Key: "run_id", Value: []byte(r.RunID)}},
			Time:    r.StartedAt,
		})
	}
	if len(msgs) == 0 {
		return nil
	}
	if err := s.w.WriteMessages(ctx, msgs...); err != nil {
		return fmt.Errorf("report: kafka write: %w", err)
	}
	return nil
}

func (s *KafkaSink) Close() error { return s.w.Close() }
