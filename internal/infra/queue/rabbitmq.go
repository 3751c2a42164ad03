package queue

import (
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"
)

const (
	// ExchangeName distribui (fanout) cada invalidação para todas as instâncias.
	ExchangeName = "ex.cache-invalidation"
	ExchangeKind = amqp.ExchangeFanout
)

type RabbitMQ struct {
	Conn *amqp.Connection
	Ch   *amqp.Channel
}

func NewRabbitMQ(url string) (*RabbitMQ, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("connect to rabbitmq: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("open rabbitmq channel: %w", err)
	}

	if err := setupTopology(ch); err != nil {
		_ = conn.Close()
		return nil, err
	}

	return &RabbitMQ{Conn: conn, Ch: ch}, nil
}

func setupTopology(ch *amqp.Channel) error {
	if err := ch.ExchangeDeclare(ExchangeName, ExchangeKind, true, false, false, false, nil); err != nil {
		return fmt.Errorf("declare exchange %s: %w", ExchangeName, err)
	}
	return nil
}

// DeclareInstanceQueue declara uma fila com nome gerado pelo servidor, exclusiva
// desta conexão e ligada ao exchange fanout. Some junto com a conexão.
func (r *RabbitMQ) DeclareInstanceQueue() (string, error) {
	q, err := r.Ch.QueueDeclare("", false, true, true, false, nil)
	if err != nil {
		return "", fmt.Errorf("declare instance queue: %w", err)
	}
	if err := r.Ch.QueueBind(q.Name, "", ExchangeName, false, nil); err != nil {
		return "", fmt.Errorf("bind instance queue: %w", err)
	}
	return q.Name, nil
}

func (r *RabbitMQ) Healthy() bool {
	return r != nil && r.Conn != nil && !r.Conn.IsClosed()
}

func (r *RabbitMQ) Close() error {
	if r.Ch != nil {
		_ = r.Ch.Close()
	}
	if r.Conn != nil {
		return r.Conn.Close()
	}
	return nil
}
