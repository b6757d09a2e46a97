package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	kgo "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// defaultRetryDelay - пауза после ошибки чтения, чтобы недоступный брокер не крутил цикл вхолостую
const defaultRetryDelay = 500 * time.Millisecond

// Consumer вычитывает события каталога из топика аналитики и передаёт их обработчику.
type Consumer struct {
	Reader     ReaderInterface
	Logger     *zap.SugaredLogger
	RetryDelay time.Duration
}

func NewConsumer(brokers []string, topic, groupID string, logger *zap.SugaredLogger) *Consumer {
	reader := kgo.NewReader(kgo.ReaderConfig{
		Brokers: brokers,
		Topic:   topic,
		GroupID: groupID,
		// новая группа начинает с начала топика, иначе история поиска теряется
		StartOffset:    kgo.FirstOffset,
		CommitInterval: time.Second,
		MinBytes:       1,
		MaxBytes:       1 << 20,
		MaxWait:        time.Second,
	})
	return &Consumer{
		Reader:     &segmentioReader{r: reader},
		Logger:     logger,
		RetryDelay: defaultRetryDelay,
	}
}

type segmentioReader struct {
	r *kgo.Reader
}

func (s *segmentioReader) ReadMessage(ctx context.Context) (kgo.Message, error) {
	return s.r.ReadMessage(ctx)
}

func (s *segmentioReader) Close() error {
	return s.r.Close()
}

// Consume читает события до отмены контекста.
// Битые сообщения, события неизвестного типа и ошибки обработчика логируются и пропускаются.
func (c *Consumer) Consume(ctx context.Context, handler func(context.Context, Event) error) {
	for {
		msg, err := c.Reader.ReadMessage(ctx)
		if err != nil {
			if ctx.Err() != nil || errors.Is(err, context.Canceled) {
				return
			}
			c.Logger.Errorf("error to read analytics event: %v", err)
			if !c.wait(ctx) {
				return
			}
			continue
		}

		var event Event
		if err := json.Unmarshal(msg.Value, &event); err != nil {
			c.Logger.Warnw("skip malformed event",
				"partition", msg.Partition,
				"offset", msg.Offset,
				"error", err,
			)
			continue
		}
		if !event.Type.Known() {
			c.Logger.Warnw("skip event of unknown type",
				"type", event.Type,
				"offset", msg.Offset,
			)
			continue
		}

		if err := handler(ctx, event); err != nil {
			c.Logger.Errorf("error to process %s event of user %q: %v", event.Type, event.UserID, err)
		}
	}
}

// wait возвращает false, если контекст отменили во время паузы
func (c *Consumer) wait(ctx context.Context) bool {
	if c.RetryDelay <= 0 {
		return ctx.Err() == nil
	}
	t := time.NewTimer(c.RetryDelay)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}

func (c *Consumer) Close() error {
	return c.Reader.Close()
}
