package events

import (
	"context"
	"encoding/json"
	"strconv"

	"github.com/segmentio/kafka-go"
)

type KafkaPublisher struct {
	Writer *kafka.Writer
}

func NewKafkaPublisher(brokers []string, topic string) *KafkaPublisher {
	return &KafkaPublisher{Writer: &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  topic,
		Balancer:               &kafka.Hash{},
		RequiredAcks:           kafka.RequireAll,
		AllowAutoTopicCreation: true,
	}}
}

// Publish keys messages by aggregate so one order's events stay on one partition.
func (p *KafkaPublisher) Publish(ctx context.Context, msg Message) error {
	km, err := toKafkaMessage(msg)
	if err != nil {
		return err
	}
	return p.Writer.WriteMessages(ctx, km)
}

func (p *KafkaPublisher) Close() error {
	return p.Writer.Close()
}

func toKafkaMessage(msg Message) (kafka.Message, error) {
	payload, err := json.Marshal(msg)
	if err != nil {
		return kafka.Message{}, err
	}
	return kafka.Message{
		Key:   []byte(msg.Aggregate + ":" + strconv.FormatUint(uint64(msg.RecordID), 10)),
		Value: payload,
		Headers: []kafka.Header{
			{Key: "event", Value: []byte(msg.Event)},
		},
		Time: msg.OccurredAt,
	}, nil
}
