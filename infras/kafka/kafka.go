package kafka

//go:generate go run go.uber.org/mock/mockgen -source=./kafka.go -destination=./mocks/kafka_mock.go -package=mocks

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"resto/config"

	"github.com/rs/zerolog/log"
	kafkaGo "github.com/segmentio/kafka-go"
	"github.com/segmentio/kafka-go/sasl/plain"
)

const batchTimeout = 50 * time.Millisecond

type Message struct {
	Key   string
	Value any
}

func (m *Message) ToKafkaMessage() (kafkaGo.Message, error) {
	jsonValue, err := json.Marshal(m.Value)
	if err != nil {
		return kafkaGo.Message{}, fmt.Errorf("failed to marshal message value to JSON: %w", err)
	}

	return kafkaGo.Message{
		Key:   []byte(m.Key),
		Value: jsonValue,
	}, nil
}

// Producer writes JSON messages to one topic.
type Producer interface {
	Send(ctx context.Context, messages ...Message) error
	Close() error
}

type producerImpl struct {
	writer *kafkaGo.Writer
	topic  string
}

type noopProducer struct{}

func (noopProducer) Send(context.Context, ...Message) error { return nil }
func (noopProducer) Close() error                           { return nil }

// NewOrderProducer writes to the configured order topic, or drops everything when kafka is disabled.
func NewOrderProducer(cfg *config.Config) (Producer, func()) {
	if !cfg.Kafka.Enable || len(cfg.Kafka.Brokers) == 0 {
		log.Info().Msg("Kafka disabled, order events will not be mirrored")

		return noopProducer{}, func() {}
	}

	producer := newProducer(cfg, cfg.Kafka.OrderTopic)

	cleanup := func() {
		if err := producer.Close(); err != nil {
			log.Error().Err(err).Msg("Failed to close Kafka writer")
		}
	}

	log.Info().Str("topic", cfg.Kafka.OrderTopic).Strs("brokers", cfg.Kafka.Brokers).Msg("Kafka producer initialized")

	return producer, cleanup
}

func newProducer(cfg *config.Config, topic string) *producerImpl {
	transport := &kafkaGo.Transport{}
	if cfg.Kafka.SASL.Username != "" {
		transport.SASL = plain.Mechanism{
			Username: cfg.Kafka.SASL.Username,
			Password: cfg.Kafka.SASL.Password,
		}
	}

	return &producerImpl{
		topic: topic,
		writer: &kafkaGo.Writer{
			Addr:                   kafkaGo.TCP(cfg.Kafka.Brokers...),
			Topic:                  topic,
			Transport:              transport,
			Balancer:               &kafkaGo.Hash{},
			AllowAutoTopicCreation: true,
			BatchTimeout:           batchTimeout,
			// With Async set, delivery failures are only reported through Completion.
			Async: true,
			Completion: func(messages []kafkaGo.Message, err error) {
				if err != nil {
					log.Error().Err(err).Str("topic", topic).Int("messages", len(messages)).Msg("Failed to deliver messages to Kafka")
				}
			},
		},
	}
}

func (p *producerImpl) Send(ctx context.Context, messages ...Message) error {
	msgs := make([]kafkaGo.Message, 0, len(messages))

	for _, message := range messages {
		msg, err := message.ToKafkaMessage()
		if err != nil {
			log.Error().Err(err).Str("topic", p.topic).Msg("Failed to convert message to Kafka message.")

			return err
		}

		msgs = append(msgs, msg)
	}

	if err := p.writer.WriteMessages(ctx, msgs...); err != nil {
		log.Error().Err(err).Str("topic", p.topic).Msg("Failed to send message to Kafka.")

		return fmt.Errorf("failed to send message to Kafka: %w", err)
	}

	return nil
}

func (p *producerImpl) Close() error {
	if err := p.writer.Close(); err != nil {
		return fmt.Errorf("closing kafka writer: %w", err)
	}

	return nil
}
