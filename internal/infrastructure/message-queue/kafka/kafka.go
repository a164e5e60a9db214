package kafka

import (
	"context"

	"github.com/segmentio/kafka-go"

	"github.com/tradewell/storefront/config"
)

func CreateKafkaProducer(config *config.Config) *kafka.Conn {
	conn, err := kafka.DialLeader(context.Background(), "tcp", config.KafkaConfig.BrokerAddress, config.KafkaConfig.BrokerTopic, config.KafkaConfig.BrokerPartition)
	if err != nil {
		panic(err)
	}

	return conn
}

func CreateKafkaReader(config *config.Config) *kafka.Reader {
	return kafka.NewReader(kafka.ReaderConfig{
		Brokers: []string{config.KafkaConfig.BrokerAddress},
		Topic:   config.KafkaConfig.BrokerTopic,
		GroupID: "storefront",
	})
}
