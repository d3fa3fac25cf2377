package kafka

import (
	"github.com/confluentinc/confluent-kafka-go/v2/kafka"

	"github.com/crave-catering/cc-order/config"
)

func NewProducer() *kafka.Producer {
	c := config.Get()

	producer, err := kafka.NewProducer(&kafka.ConfigMap{
		"bootstrap.servers": c.Kafka.BootstrapServers,
		"acks":              "all",
	})
	if err != nil {
		panic(err)
	}

	return producer
}
