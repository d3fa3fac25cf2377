package pubsub

import (
	"context"

	"github.com/confluentinc/confluent-kafka-go/v2/kafka"
	"github.com/sirupsen/logrus"
)

type Publisher interface {
	Publish(ctx context.Context, topic string, key string, headers map[string]string, message []byte) error
	Close()
}

type confluentKafkaPublisher struct {
	logger   *logrus.Logger
	producer *kafka.Producer
}

func PublisherFromConfluentKafkaProducer(logger *logrus.Logger, producer *kafka.Producer) Publisher {
	p := &confluentKafkaPublisher{
		logger:   logger,
		producer: producer,
	}

	go p.drainEvents()

	return p
}

// drainEvents consumes delivery reports so the producer's event channel
// never blocks; failed deliveries are logged, not retried.
func (p *confluentKafkaPublisher) drainEvents() {
	for e := range p.producer.Events() {
		if m, ok := e.(*kafka.Message); ok && m.TopicPartition.Error != nil {
			p.logger.WithError(m.TopicPartition.Error).
				WithField("topic", *m.TopicPartition.Topic).
				Error("message delivery failed")
		}
	}
}

// Publish implements Publisher.
func (p *confluentKafkaPublisher) Publish(ctx context.Context, topic string, key string, headers map[string]string, message []byte) error {
	kafkaHeaders := make([]kafka.Header, 0, len(headers))
	for k, v := range headers {
		kafkaHeaders = append(kafkaHeaders, kafka.Header{Key: k, Value: []byte(v)})
	}

	err := p.producer.Produce(&kafka.Message{
		TopicPartition: kafka.TopicPartition{
			Topic:     &topic,
			Partition: kafka.PartitionAny,
		},
		Key:     []byte(key),
		Value:   message,
		Headers: kafkaHeaders,
	}, nil)
	if err != nil {
		p.logger.WithContext(ctx).WithError(err).WithField("topic", topic).Error()
		return err
	}

	return nil
}

// Close implements Publisher.
func (p *confluentKafkaPublisher) Close() {
	p.producer.Flush(5000)
	p.producer.Close()
}
