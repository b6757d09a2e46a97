package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/segmentio/kafka-go"
)

// fakeReader отдаёт заранее подготовленные сообщения, затем ошибки, затем context.Canceled.
type fakeReader struct {
	messages []kafka.Message
	errors   []error
	idx      int
}

func (f *fakeReader) ReadMessage(ctx context.Context) (kafka.Message, error) {
	if f.idx < len(f.messages) {
		msg := f.messages[f.idx]
		f.idx++
		return msg, nil
	}
	errIdx := f.idx - len(f.messages)
	if errIdx < len(f.errors) {
		err := f.errors[errIdx]
		f.idx++
		return kafka.Message{}, err
	}
	return kafka.Message{}, context.Canceled
}

func (f *fakeReader) Close() error {
	return nil
}

func TestConsumer_Consume_ValidEvent(t *testing.T) {
	evt := Event{
		UserID:    "test-user",
		Type:      EventTypeSearch,
		Makes:     []string{"Honda", "Kia"},
		Timestamp: time.Now().UTC(),
	}
	payload, _ := json.Marshal(evt) // nolint:errcheck

	consumer := &Consumer{
		Reader: &fakeReader{
			messages: []kafka.Message{{Value: payload}},
			errors:   []error{errors.New("broker hiccup")},
		},
		Logger: zapTestLogger(t),
	}

	var received []Event
	consumer.Consume(context.Background(), func(ctx context.Context, e Event) error {
		received = append(received, e)
		return nil
	})

	if len(received) != 1 {
		t.Fatalf("ожидали одно событие, получили %d", len(received))
	}
	if received[0].UserID != evt.UserID || received[0].Type != evt.Type {
		t.Errorf("получили другое событие: %+v", received[0])
	}
	if len(received[0].Makes) != 2 {
		t.Errorf("ожидали 2 марки, получили %v", received[0].Makes)
	}
}

func TestConsumer_Consume_InvalidJSON(t *testing.T) {
	consumer := &Consumer{
		Reader: &fakeReader{
			messages: []kafka.Message{{Value: []byte(`{"user_id": 123, bad json`)}},
		},
		Logger: zapTestLogger(t),
	}

	called := false
	consumer.Consume(context.Background(), func(ctx context.Context, e Event) error {
		called = true
		return nil
	})

	if called {
		t.Error("ожидали, что handler НЕ будет вызван при некорректном JSON")
	}
}

func TestConsumer_Consume_HandlerError(t *testing.T) {
	payload, _ := json.Marshal(Event{UserID: "user-err", Type: EventTypeView}) // nolint:errcheck

	consumer := &Consumer{
		Reader: &fakeReader{messages: []kafka.Message{{Value: payload}, {Value: payload}}},
		Logger: zapTestLogger(t),
	}

	calls := 0
	consumer.Consume(context.Background(), func(ctx context.Context, e Event) error {
		calls++
		return errors.New("simulated handler failure")
	})

	if calls != 2 {
		t.Errorf("ошибка обработчика не должна останавливать чтение, вызовов: %d", calls)
	}
}

func TestConsumer_StopsOnCancelledContext(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	reader := NewMockReaderInterface(ctrl)
	reader.EXPECT().ReadMessage(gomock.Any()).Return(kafka.Message{}, context.DeadlineExceeded)
	reader.EXPECT().Close().Return(nil)

	consumer := &Consumer{Reader: reader, Logger: zapTestLogger(t)}
	consumer.Consume(ctx, func(ctx context.Context, e Event) error {
		t.Error("handler не должен вызываться")
		return nil
	})

	if err := consumer.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
}

func TestConsumer_Consume_SkipsUnknownTypes(t *testing.T) {
	unknown, _ := json.Marshal(Event{UserID: "u1", Type: "click"})     // nolint:errcheck
	empty, _ := json.Marshal(Event{UserID: "u1"})                      // nolint:errcheck
	known, _ := json.Marshal(Event{UserID: "u1", Type: EventTypeSave}) // nolint:errcheck

	consumer := &Consumer{
		Reader: &fakeReader{messages: []kafka.Message{{Value: unknown}, {Value: empty}, {Value: known}}},
		Logger: zapTestLogger(t),
	}

	var types []EventType
	consumer.Consume(context.Background(), func(ctx context.Context, e Event) error {
		types = append(types, e.Type)
		return nil
	})

	if len(types) != 1 || types[0] != EventTypeSave {
		t.Errorf("ожидали только save, получили %v", types)
	}
}

// blockingReader всегда отвечает ошибкой брокера
type blockingReader struct {
	reads int
}

func (b *blockingReader) ReadMessage(ctx context.Context) (kafka.Message, error) {
	b.reads++
	return kafka.Message{}, errors.New("connection refused")
}

func (b *blockingReader) Close() error { return nil }

func TestConsumer_Consume_WaitsBetweenReadErrors(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 120*time.Millisecond)
	defer cancel()

	reader := &blockingReader{}
	consumer := &Consumer{Reader: reader, Logger: zapTestLogger(t), RetryDelay: 50 * time.Millisecond}

	done := make(chan struct{})
	go func() {
		consumer.Consume(ctx, func(ctx context.Context, e Event) error { return nil })
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Consume не вернулся после отмены контекста")
	}
	if reader.reads < 1 || reader.reads > 4 {
		t.Errorf("ожидали несколько чтений с паузой, получили %d", reader.reads)
	}
}

func TestEventType_Known(t *testing.T) {
	tests := []struct {
		typ  EventType
		want bool
	}{
		{EventTypeSearch, true},
		{EventTypeCarDeleted, true},
		{"", false},
		{"SEARCH", false},
	}
	for _, tt := range tests {
		if got := tt.typ.Known(); got != tt.want {
			t.Errorf("%q.Known() = %v, want %v", tt.typ, got, tt.want)
		}
	}
}
