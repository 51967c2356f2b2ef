package kafka

import (
	"context"
	"fmt"

	"github.com/Shopify/sarama"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"max.ks1230/budget-tracker/internal/entity/budget"
	"max.ks1230/budget-tracker/internal/logger"
)

type consumerConfig interface {
	producerConfig
	ConsumerGroup() string
}

type eventHandler interface {
	HandleTransactionEvent(ctx context.Context, event budget.TransactionEvent) error
}

type Consumer struct {
	consumerGroup sarama.ConsumerGroup
	topic         string
	handler       eventHandler
}

func NewConsumer(cfg consumerConfig, handler eventHandler) (*Consumer, error) {
	config := sarama.NewConfig()
	config.Version = sarama.V2_5_0_0
	config.Consumer.Offsets.Initial = sarama.OffsetOldest

	consumerGroup, err := sarama.NewConsumerGroup(cfg.Brokers(), cfg.ConsumerGroup(), config)
	if err != nil {
		return nil, errors.Wrap(err, "new kafka consumer group")
	}
	return &Consumer{
		consumerGroup: consumerGroup,
		topic:         cfg.TransactionsTopic(),
		handler:       handler,
	}, nil
}

func (c *Consumer) StartConsuming(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		default:
			err := c.consumerGroup.Consume(ctx, []string{c.topic}, c)
			if err != nil {
				return errors.Wrap(err, fmt.Sprintf("consume from %s", c.topic))
			}
		}
	}
}

func (c *Consumer) Close() {
	if err := c.consumerGroup.Close(); err != nil {
		logger.Error("failed to close consumer group", zap.Error(err))
	}
}

func (c *Consumer) Setup(sarama.ConsumerGroupSession) error {
	logger.Info("consumer - setup")
	return nil
}

func (c *Consumer) Cleanup(sarama.ConsumerGroupSession) error {
	logger.Info("consumer - cleanup")
	return nil
}

func (c *Consumer) ConsumeClaim(session sarama.ConsumerGroupSession, claim sarama.ConsumerGroupClaim) error {
	for message := range claim.Messages() {
		c.process(session.Context(), message)
		session.MarkMessage(message, "")
	}
	return nil
}

// process never fails the claim: a poison message is logged and skipped.
func (c *Consumer) process(ctx context.Context, message *sarama.ConsumerMessage) {
	event, err := decodeEvent(message.Value)
	if err != nil {
		logger.Error("cannot decode transaction event", zap.ByteString("key", message.Key), zap.Error(err))
		return
	}
	logger.Info("received transaction event",
		zap.ByteString("key", message.Key),
		zap.String("eventID", event.ID),
		zap.String("kind", string(event.Kind)),
		zap.Int64("transactionID", event.Transaction.ID))

	if err = c.handler.HandleTransactionEvent(ctx, event); err != nil {
		logger.Error("failed to handle transaction event", zap.String("eventID", event.ID), zap.Error(err))
	}
}
