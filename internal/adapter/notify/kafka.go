package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	kafkago "github.com/segmentio/kafka-go"

	"github.com/couchcryptid/spaceweather-watch/internal/config"
)

// KafkaChannel publishes every operator notification to an alert-bus topic so
// downstream automation sees the same alerts operators receive.
type KafkaChannel struct {
	writer *kafkago.Writer
}

// alertMessage is the wire format on the alert-bus topic.
type alertMessage struct {
	Subject string    `json:"subject"`
	Body    string    `json:"body"`
	SentAt  time.Time `json:"sent_at"`
}

// NewKafkaChannel creates the alert-bus producer for the configured topic.
func NewKafkaChannel(cfg *config.Config) *KafkaChannel {
	w := &kafkago.Writer{
		Addr:         kafkago.TCP(cfg.KafkaBrokers...),
		Topic:        cfg.KafkaAlertsTopic,
		Balancer:     &kafkago.LeastBytes{},
		RequiredAcks: kafkago.RequireAll,
	}
	return &KafkaChannel{writer: w}
}

func (k *KafkaChannel) Name() string { return "kafka" }

func (k *KafkaChannel) Send(ctx context.Context, subject, body string) error {
	msg, err := serializeAlert(subject, body, time.Now().UTC())
	if err != nil {
		return err
	}
	return k.writer.WriteMessages(ctx, msg)
}

// Close flushes and closes the underlying producer.
func (k *KafkaChannel) Close() error {
	return k.writer.Close()
}

// serializeAlert marshals a notification into a Kafka message keyed by subject
// so repeated alerts for the same condition land in one partition, in order.
func serializeAlert(subject, body string, sentAt time.Time) (kafkago.Message, error) {
	data, err := json.Marshal(alertMessage{Subject: subject, Body: body, SentAt: sentAt})
	if err != nil {
		return kafkago.Message{}, fmt.Errorf("serialize alert: %w", err)
	}
	return kafkago.Message{
		Key:   []byte(subject),
		Value: data,
		Headers: []kafkago.Header{
			{Key: "sent_at", Value: []byte(sentAt.Format(time.RFC3339))},
		},
	}, nil
}
