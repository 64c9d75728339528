package logpub

import (
	"context"
	"testing"
	"time"

	"kennel-scheduler/internal/platform/logger"
	"kennel-scheduler/internal/ports/notify"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestPublisher_LogsEventWithPayload(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	pub := New(logger.FromZap(zap.New(core)))

	err := pub.Publish(context.Background(), notify.Event{
		Type:       notify.EventPetAssigned,
		OccurredAt: time.Date(2024, 3, 11, 9, 0, 0, 0, time.UTC),
		Payload:    map[string]any{"pet_id": "p1", "room_id": "k1"},
	})
	require.NoError(t, err)

	entries := logs.All()
	require.Len(t, entries, 1)
	assert.Equal(t, "domain event", entries[0].Message)

	ctx := entries[0].ContextMap()
	assert.Equal(t, "pet.assigned", ctx["event"])
	assert.Equal(t, "p1", ctx["payload.pet_id"])
	assert.Equal(t, "k1", ctx["payload.room_id"])
	assert.Equal(t, "events", ctx["component"])
}

func TestPublisher_NilLoggerIsSafe(t *testing.T) {
	pub := New(nil)
	assert.NoError(t, pub.Publish(context.Background(), notify.Event{Type: notify.EventBookingCreated}))
}
