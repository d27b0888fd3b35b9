package mail

import (
	"context"
	"errors"
	"testing"

	"github.com/goccy/go-json"
	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/polkiloo/storefront/internal/domain/model"
)

type recordingWriter struct {
	messages []kafka.Message
	err      error
	closed   bool
	closeErr error
}

func (w *recordingWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	if w.err != nil {
		return w.err
	}
	w.messages = append(w.messages, msgs...)
	return nil
}

func (w *recordingWriter) Close() error {
	w.closed = true
	return w.closeErr
}

func resetMessage() model.MailMessage {
	return model.MailMessage{
		To:       "grace@example.com",
		Subject:  "Reset your password",
		Template: model.MailTemplatePasswordReset,
		Data:     map[string]string{"reset_url": "https://shop.example/account/password/uid"},
	}
}

func TestKafkaMailerSend(t *testing.T) {
	w := &recordingWriter{}
	m := NewKafkaMailer(w, "no-reply@shop.example", nil)

	require.NoError(t, m.Send(context.Background(), resetMessage()))
	require.Len(t, w.messages, 1)

	msg := w.messages[0]
	require.Equal(t, "grace@example.com", string(msg.Key))
	require.Equal(t, []kafka.Header{{Key: "template", Value: []byte(model.MailTemplatePasswordReset)}}, msg.Headers)

	var decoded model.MailMessage
	require.NoError(t, json.Unmarshal(msg.Value, &decoded))
	want := resetMessage()
	want.From = "no-reply@shop.example"
	require.Equal(t, want, decoded)
}

func TestKafkaMailerKeepsExplicitSender(t *testing.T) {
	w := &recordingWriter{}
	m := NewKafkaMailer(w, "default@shop.example", zap.NewNop())

	msg := resetMessage()
	msg.From = "support@shop.example"
	require.NoError(t, m.Send(context.Background(), msg))

	var decoded model.MailMessage
	require.NoError(t, json.Unmarshal(w.messages[0].Value, &decoded))
	require.Equal(t, "support@shop.example", decoded.From)
}

func TestKafkaMailerWriteError(t *testing.T) {
	w := &recordingWriter{err: errors.New("leader not available")}
	m := NewKafkaMailer(w, "", nil)

	err := m.Send(context.Background(), resetMessage())
	require.ErrorIs(t, err, w.err)
}

func TestKafkaMailerClose(t *testing.T) {
	w := &recordingWriter{}
	require.NoError(t, NewKafkaMailer(w, "", nil).Close())
	require.True(t, w.closed)
}

func TestNewKafkaWriter(t *testing.T) {
	w := NewKafkaWriter([]string{"localhost:9092", "localhost:9093"}, "storefront.mail")
	require.Equal(t, "storefront.mail", w.Topic)
	require.Equal(t, "localhost:9092,localhost:9093", w.Addr.String())
	require.Equal(t, kafka.RequireOne, w.RequiredAcks)
	require.Equal(t, writeTimeout, w.WriteTimeout)
}

func TestLogMailerSend(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	m := NewLogMailer("no-reply@shop.example", zap.New(core))

	require.NoError(t, m.Send(context.Background(), resetMessage()))

	entries := logs.All()
	require.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	require.Equal(t, "grace@example.com", fields["to"])
	require.Equal(t, "no-reply@shop.example", fields["from"])
	require.NotContains(t, fields, "reset_url")
}
