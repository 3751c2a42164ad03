package queue

import (
	"context"
	"encoding/json"
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/xavierca1/streamtv-site/internal/usecase"
	"github.com/xavierca1/streamtv-site/pkg/logging"
)

// Consumer é o pedaço do *amqp.Channel que o worker usa.
type Consumer interface {
	Consume(queue, consumer string, autoAck, exclusive, noLocal, noWait bool, args amqp.Table) (<-chan amqp.Delivery, error)
}

// Worker aplica no cache local as invalidações enviadas pelas outras instâncias.
type Worker struct {
	Channel Consumer
	Cache   usecase.Invalidator
	Origin  string
	Logger  *logging.Logger
}

func NewWorker(ch Consumer, cache usecase.Invalidator, origin string, logger *logging.Logger) *Worker {
	return &Worker{Channel: ch, Cache: cache, Origin: origin, Logger: logger}
}

// Start consome queueName até ctx ser cancelado ou o canal de entregas fechar.
func (w *Worker) Start(ctx context.Context, queueName string) error {
	msgs, err := w.Channel.Consume(queueName, "", false, true, false, false, nil)
	if err != nil {
		return fmt.Errorf("register consumer on %s: %w", queueName, err)
	}

	w.Logger.Info("invalidation worker listening", "queue", queueName)
	for {
		select {
		case <-ctx.Done():
			w.Logger.Info("invalidation worker stopped")
			return nil
		case d, ok := <-msgs:
			if !ok {
				w.Logger.Warn("invalidation delivery channel closed")
				return nil
			}
			w.handle(ctx, d)
		}
	}
}

func (w *Worker) handle(ctx context.Context, d amqp.Delivery) {
	var payload InvalidationPayload
	if err := json.Unmarshal(d.Body, &payload); err != nil {
		w.Logger.Warn("dropping malformed invalidation", "error", err)
		_ = d.Nack(false, false)
		return
	}

	if err := w.processMessage(ctx, payload); err != nil {
		w.Logger.Error("applying invalidation failed", "kind", string(payload.Kind), "target", payload.Target, "error", err)
		_ = d.Nack(false, false)
		return
	}
	_ = d.Ack(false)
}

func (w *Worker) processMessage(ctx context.Context, payload InvalidationPayload) error {
	// já aplicada localmente pelo broadcaster
	if payload.Origin == w.Origin {
		return nil
	}

	switch payload.Kind {
	case usecase.ActionPath:
		return w.Cache.InvalidatePath(ctx, payload.Target)
	case usecase.ActionTag:
		return w.Cache.InvalidateTag(ctx, payload.Target)
	default:
		w.Logger.Warn("unknown invalidation kind", "kind", string(payload.Kind))
		return nil
	}
}
