package kafka

import (
	"context"
	"encoding/json"
	"time"

	"github.com/segmentio/kafka-go"
)

type KafkaNotificationPublisher struct {
	writer *kafka.Writer
}

func NewKafkaNotificationPublisher(brokers []string, topic string) *KafkaNotificationPublisher {
	return &KafkaNotificationPublisher{
		writer: &kafka.Writer{
			Addr:     kafka.TCP(brokers...),
			Topic:    topic,
			Balancer: &kafka.LeastBytes{},
		},
	}
}

func (k *KafkaNotificationPublisher) PublishNotification(event NotificationEvent) error {
	msg, err := json.Marshal(event)
	if err != nil {
		return err
	}

	return k.writer.WriteMessages(context.Background(), kafka.Message{
		Key:   []byte(event.ClientID),
		Value: msg,
		Time:  time.Now(),
	})
}

func (k *KafkaNotificationPublisher) Close() error {
	return k.writer.Close()
}
