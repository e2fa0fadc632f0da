package kafka

import (
	"Lumina/internal/api/config"
	"Lumina/internal/pkg/es"
	"context"
	log "log/slog"

	"github.com/IBM/sarama"
)

// ConsumerManager 管理 Kafka 消费者
type ConsumerManager struct {
	booksConsumer sarama.ConsumerGroup
	booksHandler  sarama.ConsumerGroupHandler
	booksTopic    string
}

// NewConsumerManager 构造函数
func NewConsumerManager(cfg *config.Config, bookESRepo es.BookRepo) (*ConsumerManager, error) {
	saramaCfg := newSaramaConfig(cfg.Kafka)

	booksConsumer, err := sarama.NewConsumerGroup(cfg.Kafka.Brokers, cfg.KafkaBookConsumer.GroupID, saramaCfg)
	if err != nil {
		return nil, err
	}

	return &ConsumerManager{
		booksConsumer: booksConsumer,
		booksHandler:  NewBooksHandler(bookESRepo),
		booksTopic:    cfg.KafkaBookConsumer.Topic,
	}, nil
}

// Start 启动消费者，阻塞直到 ctx 结束
func (m *ConsumerManager) Start(ctx context.Context) error {
	go func() {
		log.Info("Books consumer started", "topic", m.booksTopic)
		for {
			if err := m.booksConsumer.Consume(ctx, []string{m.booksTopic}, m.booksHandler); err != nil {
				log.Error("Error from consumer", "err", err)
			}
			if ctx.Err() != nil {
				return
			}
		}
	}()

	go func() {
		for err := range m.booksConsumer.Errors() {
			log.Error("Books consumer error", "err", err)
		}
	}()

	<-ctx.Done()
	log.Info("Kafka Manager shutting down...")

	if err := m.booksConsumer.Close(); err != nil {
		log.Error("Failed to close books consumer", "err", err)
	}
	return nil
}
