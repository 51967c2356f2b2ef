package kafka

import (
	"context"
	"strconv"

	"github.com/Shopify/sarama"
	"github.com/opentracing/opentracing-go"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"max.ks1230/budget-tracker/internal/entity/budget"
	"max.ks1230/budget-tracker/internal/logger"
)

type producerConfig interface {
	Brokers() []string
	TransactionsTopic() string
}

type Producer struct {
	producer sarama.SyncProducer
	topic    string
}

func NewProducer(cfg producerConfig) (*Producer, error) {
	config := sarama.NewConfig()
	config.Version = sarama.V2_5_0_0
	config.Producer.RequiredAcks = sarama.WaitForAll
	config.Producer.Return.Successes = true

	producer, err := sarama.NewSyncProducer(cfg.Brokers(), config)
	if err != nil {
		return nil, errors.Wrap(err, "new kafka producer")
	}
	return &Producer{
		producer: producer,
		topic:    cfg.TransactionsTopic(),
	}, nil
}

// PublishTransactionEvent keys messages by transaction id so events of one
// transaction stay ordered within a partition.
func (p *Producer) PublishTransactionEvent(ctx context.Context, event budget.TransactionEvent) error {
	span, _ := opentracing.StartSpanFromContext(ctx, "publishTransactionEvent")
	defer span.Finish()

	value, err := encodeEvent(event)
	if err != nil {
		return err
	}

	partition, offset, err := p.producer.SendMessage(&sarama.ProducerMessage{
		Topic: p.topic,
		Key:   sarama.StringEncoder(strconv.FormatInt(event.Transaction.ID, 10)),
		Value: sarama.ByteEncoder(value),
	})
	if err != nil {
		return errors.Wrap(err, "publish transaction event")
	}
	logger.Debug("transaction event published",
		zap.String("eventID", event.ID),
		zap.Int32("partition", partition),
		zap.Int64("offset", offset))
	return nil
}

func (p *Producer) Close() {
	err := p.producer.Close()
	if err != nil {
		logger.Error("failed to close producer", zap.Error(err))
	}
}
