package mail

import (
	"context"
	"fmt"
	"time"

	"github.com/goccy/go-json"
	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"github.com/polkiloo/storefront/internal/domain/model"
)

const writeTimeout = 5 * time.Second

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// KafkaMailer publishes mail requests as JSON events for the mail delivery service.
type KafkaMailer struct {
	writer messageWriter
	sender string
	logger *zap.Logger
}

// NewKafkaWriter creates a writer producing to topic on brokers.
func NewKafkaWriter(brokers []string, topic string) *kafka.Writer {
	return &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  topic,
		Balancer:               &kafka.Hash{},
		RequiredAcks:           kafka.RequireOne,
		AllowAutoTopicCreation: true,
		WriteTimeout:           writeTimeout,
	}
}

// NewKafkaMailer wraps writer. Messages without a sender get the default one.
func NewKafkaMailer(writer messageWriter, sender string, logger *zap.Logger) *KafkaMailer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &KafkaMailer{writer: writer, sender: sender, logger: logger}
}

// Send publishes msg keyed by recipient so mails to one address stay ordered.
func (m *KafkaMailer) Send(ctx context.Context, msg model.MailMessage) error {
	if msg.From == "" {
		msg.From = m.sender
	}
	payload, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("marshal mail event: %w", err)
	}

	err = m.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(msg.To),
		Value: payload,
		Headers: []kafka.Header{
			{Key: "template", Value: []byte(msg.Template)},
		},
	})
	if err != nil {
		return fmt.Errorf("publish mail event: %w", err)
	}

	m.logger.Debug("mail event published", zap.String("template", string(msg.Template)))
	return nil
}

// Close flushes and closes the writer.
func (m *KafkaMailer) Close() error {
	return m.writer.Close()
}

// LogMailer only records mail requests. It stands in when no broker is configured.
type LogMailer struct {
	sender string
	logger *zap.Logger
}

// NewLogMailer creates a mailer writing to logger.
func NewLogMailer(sender string, logger *zap.Logger) *LogMailer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LogMailer{sender: sender, logger: logger}
}

// Send logs msg without the template data, which may carry secrets.
func (m *LogMailer) Send(_ context.Context, msg model.MailMessage) error {
	if msg.From == "" {
		msg.From = m.sender
	}
	m.logger.Info("mail not delivered, no broker configured",
		zap.String("to", msg.To),
		zap.String("from", msg.From),
		zap.String("subject", msg.Subject),
		zap.String("template", string(msg.Template)),
	)
	return nil
}
