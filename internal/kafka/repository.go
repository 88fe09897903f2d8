package kafka

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"strings"

	"github.com/confluentinc/confluent-kafka-go/kafka"
	"go.uber.org/zap"
)

const flushTimeoutMs = 5000

// Repository publishes every artifact as one message on a topic, keyed by
// the artifact key. Write returns once the broker acknowledged the message.
type Repository struct {
	config   kafka.ConfigMap
	producer *kafka.Producer
	topic    string
	brokers  string
	prefix   string
	logger   *zap.Logger
}

// NewRepository parses a target URL of the form
//
//	kafka://broker:9092/topic?acks=all
//
// Query parameters are passed through as producer configuration.
func NewRepository(uri *url.URL, logger *zap.Logger) (*Repository, error) {
	// Parse topic from path
	topic := strings.TrimPrefix(uri.Path, "/")
	if topic == "" {
		return nil, fmt.Errorf("topic must be specified in URL path")
	}

	brokers := uri.Host
	if brokers == "" {
		return nil, fmt.Errorf("broker must be specified in URL host")
	}

	config := kafka.ConfigMap{
		"bootstrap.servers": brokers,
		"client.id":         "seer",

		"acks":                "1",
		"compression.type":    "snappy",
		"request.timeout.ms":  "5000",
		"delivery.timeout.ms": "10000",
	}

	for key, values := range uri.Query() {
		if len(values) > 0 {
			config[key] = values[0]
		}
	}

	return &Repository{
		topic:   topic,
		brokers: brokers,
		config:  config,
		logger:  logger,
	}, nil
}

// WithPrefix sets a prefix joined to every message key.
func (r *Repository) WithPrefix(prefix string) *Repository {
	r.prefix = prefix
	return r
}

func (r *Repository) Topic() string {
	return r.topic
}

func (r *Repository) Connect(ctx context.Context) error {
	producer, err := kafka.NewProducer(&r.config)
	if err != nil {
		return err
	}
	r.producer = producer

	go func() {
		defer r.logger.Info("Producer event loop closed")

		for e := range producer.Events() {
			switch ev := e.(type) {
			case *kafka.Message:
				if ev.TopicPartition.Error != nil {
					r.logger.Error("Delivery failed", zap.Error(ev.TopicPartition.Error))
				} else {
					r.logger.Debug("Message delivered",
						zap.String("topic", *ev.TopicPartition.Topic),
						zap.Int32("partition", ev.TopicPartition.Partition),
						zap.Int64("offset", int64(ev.TopicPartition.Offset)))
				}
			case kafka.Error:
				r.logger.Error("Producer error", zap.Error(ev))
			}
		}
	}()

	r.logger.Info("Kafka repository connected",
		zap.String("topic", r.topic),
		zap.String("brokers", r.brokers))

	return nil
}

func (r *Repository) key(key string) string {
	if r.prefix == "" {
		return key
	}
	return r.prefix + "/" + key
}

func (r *Repository) Write(ctx context.Context, key string, reader io.Reader) error {
	if r.producer == nil {
		return fmt.Errorf("kafka repository is not connected")
	}

	value, err := io.ReadAll(reader)
	if err != nil {
		return err
	}

	message := &kafka.Message{
		TopicPartition: kafka.TopicPartition{
			Topic:     &r.topic,
			Partition: kafka.PartitionAny,
		},
		Key:   []byte(r.key(key)),
		Value: value,
	}

	delivery := make(chan kafka.Event, 1)
	if err := r.producer.Produce(message, delivery); err != nil {
		return err
	}

	// Wait for the broker so a rejected artifact fails the write.
	select {
	case e := <-delivery:
		return deliveryError(e)
	case <-ctx.Done():
		return ctx.Err()
	}
}

// deliveryError returns the error carried by a delivery report.
func deliveryError(e kafka.Event) error {
	switch ev := e.(type) {
	case *kafka.Message:
		if ev.TopicPartition.Error != nil {
			return fmt.Errorf("delivering %s: %w", ev.Key, ev.TopicPartition.Error)
		}
		return nil
	case kafka.Error:
		return ev
	default:
		return fmt.Errorf("unexpected delivery event: %v", e)
	}
}

// Flush waits for outstanding messages to be delivered.
func (r *Repository) Flush() error {
	if r.producer == nil {
		return nil
	}
	if remaining := r.producer.Flush(flushTimeoutMs); remaining > 0 {
		return fmt.Errorf("%d messages not delivered", remaining)
	}
	return nil
}

func (r *Repository) Close(ctx context.Context) error {
	if r.producer == nil {
		return nil
	}
	err := r.Flush()
	r.producer.Close()
	r.producer = nil
	return err
}
