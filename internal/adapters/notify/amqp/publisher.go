// Package amqp publica los eventos de dominio en una cola RabbitMQ durable.
package amqp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"time"

	"kennel-scheduler/internal/platform/logger"
	"kennel-scheduler/internal/ports/notify"

	amqp "github.com/rabbitmq/amqp091-go"
)

const DefaultQueue = "kennel.events"

// Publisher mantiene una conexión y un canal abiertos. Un canal AMQP no admite
// publicaciones concurrentes, por eso el mutex.
type Publisher struct {
	conn  *amqp.Connection
	ch    *amqp.Channel
	queue string
	log   logger.Logger

	mu sync.Mutex
}

// Dial conecta, abre canal y declara la cola (idempotente).
func Dial(url, queue string, log logger.Logger) (*Publisher, error) {
	if log == nil {
		log = logger.Nop()
	}
	if strings.TrimSpace(queue) == "" {
		queue = DefaultQueue
	}

	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("amqp: dial: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("amqp: channel: %w", err)
	}
	if _, err := ch.QueueDeclare(queue, true, false, false, false, nil); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, fmt.Errorf("amqp: queue declare: %w", err)
	}

	return &Publisher{
		conn:  conn,
		ch:    ch,
		queue: queue,
		log:   log.With(map[string]any{"component": "amqp", "queue": queue}),
	}, nil
}

func (p *Publisher) Publish(ctx context.Context, e notify.Event) error {
	msg, err := toPublishing(e)
	if err != nil {
		return err
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if err := p.ch.PublishWithContext(ctx, "", p.queue, false, false, msg); err != nil {
		p.log.Error("publish failed", map[string]any{"event": string(e.Type), "err": err})
		return fmt.Errorf("amqp: publish: %w", err)
	}
	return nil
}

func (p *Publisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if err := p.ch.Close(); err != nil {
		_ = p.conn.Close()
		return err
	}
	return p.conn.Close()
}

// toPublishing arma el mensaje persistente; Type lleva el tipo de evento para
// que los consumidores filtren sin decodificar el body.
func toPublishing(e notify.Event) (amqp.Publishing, error) {
	if e.OccurredAt.IsZero() {
		e.OccurredAt = time.Now().UTC()
	}
	body, err := json.Marshal(e)
	if err != nil {
		return amqp.Publishing{}, fmt.Errorf("amqp: marshal event: %w", err)
	}
	return amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Type:         string(e.Type),
		Timestamp:    e.OccurredAt,
		Body:         body,
	}, nil
}
