package notifier

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-FacilityBooking/internal/domain"
)

type fakeWriter struct {
	messages []kafka.Message
	err      error
	closed   bool
}

func (f *fakeWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	if f.err != nil {
		return f.err
	}
	f.messages = append(f.messages, msgs...)
	return nil
}

func (f *fakeWriter) Close() error {
	f.closed = true
	return nil
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func headerValue(headers []kafka.Header, key string) string {
	for _, h := range headers {
		if h.Key == key {
			return string(h.Value)
		}
	}
	return ""
}

func testIntent() *domain.NotifyIntent {
	return &domain.NotifyIntent{
		RecipientID: "user-1",
		OrderID:     "o1",
		OrderNo:     "ORD-250310-ABCDEF",
		NewStatus:   domain.StatusPaid,
		Message:     domain.StatusMessage(domain.StatusPaid),
	}
}

func TestBuildMessage(t *testing.T) {
	at := time.Date(2025, 3, 10, 14, 0, 0, 0, time.UTC)

	msg, err := buildMessage("order.status.changed", testIntent(), "evt-1", at)

	require.NoError(t, err)
	assert.Equal(t, "order.status.changed", msg.Topic)
	assert.Equal(t, []byte("o1"), msg.Key)
	assert.Equal(t, "evt-1", headerValue(msg.Headers, "event_id"))
	assert.Equal(t, EventTypeStatusChanged, headerValue(msg.Headers, "event_type"))

	var event StatusChangedEvent
	require.NoError(t, json.Unmarshal(msg.Value, &event))
	assert.Equal(t, "PAID", event.Status)
	assert.Equal(t, "user-1", event.RecipientID)
	assert.Equal(t, "order paid, awaiting review", event.Message)
	assert.True(t, at.Equal(event.OccurredAt))
}

func TestBuildMessage_Invalid(t *testing.T) {
	_, err := buildMessage("t", nil, "evt", time.Now())
	assert.ErrorIs(t, err, ErrInvalidIntent)

	_, err = buildMessage("t", &domain.NotifyIntent{}, "evt", time.Now())
	assert.ErrorIs(t, err, ErrInvalidIntent)
}

func TestKafkaPublisher_Publish(t *testing.T) {
	w := &fakeWriter{}
	p := NewKafkaPublisher(w, "order.status.changed", nopLogger{})

	require.NoError(t, p.Publish(context.Background(), testIntent()))
	require.NoError(t, p.Publish(context.Background(), testIntent()))

	require.Len(t, w.messages, 2)
	assert.NotEqual(t, headerValue(w.messages[0].Headers, "event_id"), headerValue(w.messages[1].Headers, "event_id"))

	require.NoError(t, p.Close())
	assert.True(t, w.closed)
}

func TestKafkaPublisher_PublishError(t *testing.T) {
	p := NewKafkaPublisher(&fakeWriter{err: errors.New("leader not available")}, "t", nopLogger{})

	err := p.Publish(context.Background(), testIntent())

	assert.ErrorIs(t, err, ErrPublish)
}

func TestLogPublisher(t *testing.T) {
	p := NewLogPublisher(nopLogger{})

	assert.NoError(t, p.Publish(context.Background(), testIntent()))
	assert.ErrorIs(t, p.Publish(context.Background(), nil), ErrInvalidIntent)
}

func TestSplitBrokers(t *testing.T) {
	assert.Equal(t, []string{"kafka-1:9092", "kafka-2:9092"}, SplitBrokers(" kafka-1:9092, ,kafka-2:9092 "))
	assert.Nil(t, SplitBrokers(""))
}
