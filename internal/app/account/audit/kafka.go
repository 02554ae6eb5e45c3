package audit

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/segmentio/kafka-go"
)

// KafkaEmitter 把审计事件异步写到 Kafka，给镜像表之外的下游消费
type KafkaEmitter struct {
	writer *kafka.Writer
}

func NewKafkaEmitter(brokers []string, topic string) *KafkaEmitter {
	return &KafkaEmitter{
		writer: &kafka.Writer{
			Addr:     kafka.TCP(brokers...),
			Topic:    topic,
			Balancer: &kafka.LeastBytes{},
			Async:    true,
		},
	}
}

func (k *KafkaEmitter) Emit(e Event) {
	data, err := json.Marshal(e)
	if err != nil {
		slog.Error("audit kafka: marshal failed", "err", err)
		return
	}
	if err := k.writer.WriteMessages(context.Background(), kafka.Message{
		Key:   []byte(e.Username),
		Value: data,
	}); err != nil {
		slog.Error("audit kafka: write failed", "err", err)
	}
}

func (k *KafkaEmitter) Close() {
	_ = k.writer.Close()
}
