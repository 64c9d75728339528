package logpub

import (
	"context"

	"kennel-scheduler/internal/platform/logger"
	"kennel-scheduler/internal/ports/notify"
)

// Publisher escribe cada evento en el log. Es el publisher por defecto cuando
// no hay broker configurado.
type Publisher struct {
	log logger.Logger
}

func New(log logger.Logger) *Publisher {
	if log == nil {
		log = logger.Nop()
	}
	return &Publisher{log: log.With(map[string]any{"component": "events"})}
}

func (p *Publisher) Publish(ctx context.Context, e notify.Event) error {
	fields := map[string]any{
		"event":       string(e.Type),
		"occurred_at": e.OccurredAt,
	}
	for k, v := range e.Payload {
		fields["payload."+k] = v
	}
	p.log.Info("domain event", fields)
	return nil
}
