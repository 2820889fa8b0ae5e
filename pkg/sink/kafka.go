package sink

import (
	"context"

	"nexmark-bench/pkg/hashfuncs"
	"nexmark-bench/pkg/nexmark/ntypes"

	"github.com/confluentinc/confluent-kafka-go/kafka"
	"github.com/rs/zerolog/log"
	"golang.org/x/xerrors"
)

// KafkaSink feeds events into a topic, partitioned by entity id.
type KafkaSink struct {
	producer      *kafka.Producer
	serde         ntypes.EventSerde
	hasher        hashfuncs.Murmur3ByteSliceHasher
	topic         string
	numPartitions int32
}

func CreateTopic(ctx context.Context, broker string, topic string, numPartitions int) error {
	adminClient, err := kafka.NewAdminClient(&kafka.ConfigMap{"bootstrap.servers": broker})
	if err != nil {
		return xerrors.Errorf("create admin client: %w", err)
	}
	defer adminClient.Close()
	specs := []kafka.TopicSpecification{
		{
			Topic:             topic,
			NumPartitions:     numPartitions,
			ReplicationFactor: 1,
		},
	}
	results, err := adminClient.CreateTopics(ctx, specs)
	if err != nil {
		return xerrors.Errorf("create topic: %w", err)
	}
	for _, res := range results {
		if res.Error.Code() != kafka.ErrNoError && res.Error.Code() != kafka.ErrTopicAlreadyExists {
			return xerrors.Errorf("create topic %s: %s", res.Topic, res.Error.String())
		}
	}
	return nil
}

func NewKafkaSink(broker string, topic string, numPartitions int32, serde ntypes.EventSerde) (*KafkaSink, error) {
	p, err := kafka.NewProducer(&kafka.ConfigMap{
		"bootstrap.servers":                     broker,
		"go.produce.channel.size":               100000,
		"go.events.channel.size":                100000,
		"acks":                                  "all",
		"max.in.flight.requests.per.connection": 5,
	})
	if err != nil {
		return nil, xerrors.Errorf("create producer: %w", err)
	}
	go func() {
		for e := range p.Events() {
			switch ev := e.(type) {
			case *kafka.Message:
				if ev.TopicPartition.Error != nil {
					log.Error().Msgf("Delivery failed: %v", ev.TopicPartition)
				} else {
					log.Debug().Msgf("Delivered message to %v", ev.TopicPartition)
				}
			}
		}
	}()
	return &KafkaSink{
		producer:      p,
		serde:         serde,
		topic:         topic,
		numPartitions: numPartitions,
	}, nil
}

func (s *KafkaSink) Produce(ctx context.Context, event *ntypes.Event) error {
	payload, err := s.serde.Encode(event)
	if err != nil {
		return err
	}
	key := eventKey(event)
	par := int32(s.hasher.HashSum64(key) % uint64(s.numPartitions))
	return s.producer.Produce(&kafka.Message{
		TopicPartition: kafka.TopicPartition{Topic: &s.topic, Partition: par},
		Key:            key,
		Value:          payload,
	}, nil)
}

func (s *KafkaSink) Flush(ctx context.Context) error {
	remaining := s.producer.Flush(30 * 1000)
	if remaining > 0 {
		return xerrors.Errorf("%d events still unflushed", remaining)
	}
	return nil
}

func (s *KafkaSink) Close() error {
	s.producer.Close()
	return nil
}
