package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/xavierca1/streamtv-site/internal/usecase"
	"github.com/xavierca1/streamtv-site/pkg/logging"
)

// InvalidationPayload é uma ação de invalidação enviada para todas as instâncias.
type InvalidationPayload struct {
	Kind     usecase.ActionKind `json:"kind"`
	Target   string             `json:"target"`
	Origin   string             `json:"origin"`
	IssuedAt time.Time          `json:"issued_at"`
}

type QueueProducerInterface interface {
	PublishInvalidation(ctx context.Context, payload InvalidationPayload) error
}

// Publisher é o pedaço do *amqp.Channel que o producer usa.
type Publisher interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
}

type RabbitMQProducer struct {
	Ch Publisher
}

func NewProducer(ch Publisher) *RabbitMQProducer {
	return &RabbitMQProducer{Ch: ch}
}

func (p *RabbitMQProducer) PublishInvalidation(ctx context.Context, payload InvalidationPayload) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("encode invalidation payload: %w", err)
	}

	err = p.Ch.PublishWithContext(ctx,
		ExchangeName,
		"",
		false,
		false,
		amqp.Publishing{
			ContentType:  "application/json",
			Body:         body,
			DeliveryMode: amqp.Transient,
			Timestamp:    payload.IssuedAt,
		},
	)
	if err != nil {
		return fmt.Errorf("publish invalidation: %w", err)
	}
	return nil
}

// InvalidationBroadcaster aplica a invalidação no cache local e avisa as outras
// instâncias. Falha no broadcast só é logada: o cache local já está certo e as
// outras instâncias caem na expiração por TTL.
type InvalidationBroadcaster struct {
	Local    usecase.Invalidator
	Producer QueueProducerInterface
	Origin   string
	Logger   *logging.Logger
	Clock    func() time.Time
}

func NewInvalidationBroadcaster(local usecase.Invalidator, producer QueueProducerInterface, origin string, logger *logging.Logger) *InvalidationBroadcaster {
	return &InvalidationBroadcaster{
		Local:    local,
		Producer: producer,
		Origin:   origin,
		Logger:   logger,
		Clock:    time.Now,
	}
}

func (b *InvalidationBroadcaster) InvalidatePath(ctx context.Context, path string) error {
	if err := b.Local.InvalidatePath(ctx, path); err != nil {
		return err
	}
	b.broadcast(ctx, usecase.ActionPath, path)
	return nil
}

func (b *InvalidationBroadcaster) InvalidateTag(ctx context.Context, tag string) error {
	if err := b.Local.InvalidateTag(ctx, tag); err != nil {
		return err
	}
	b.broadcast(ctx, usecase.ActionTag, tag)
	return nil
}

func (b *InvalidationBroadcaster) broadcast(ctx context.Context, kind usecase.ActionKind, target string) {
	payload := InvalidationPayload{Kind: kind, Target: target, Origin: b.Origin, IssuedAt: b.Clock()}
	if err := b.Producer.PublishInvalidation(ctx, payload); err != nil {
		b.Logger.Error("invalidation broadcast failed", "kind", string(kind), "target", target, "error", err)
	}
}
