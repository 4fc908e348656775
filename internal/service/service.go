package service

import (
	"context"
	"time"

	"github.com/guttosm/portfoli/internal/domain/models"
	"github.com/guttosm/portfoli/internal/domain/result"
	"github.com/guttosm/portfoli/internal/events"
	"github.com/guttosm/portfoli/internal/logger"
)

// Recorder receives use-case counters. *metrics.Metrics implements it.
type Recorder interface {
	Mutation(operation string)
	Rejection(operation, category string)
	EventsPublished(outcome string, n int)
}

type nopRecorder struct{}

func (nopRecorder) Mutation(string) {}
func (nopRecorder) Rejection(string, string) {}
func (nopRecorder) EventsPublished(string, int) {}

const publishTimeout = 5 * time.Second

// base holds what every use case shares: failure classification and event
// delivery after a commit.
type base struct {
	publisher events.Publisher
	metrics   Recorder
}

func newBase(publisher events.Publisher, rec Recorder) base {
	if publisher == nil {
		publisher = events.LogPublisher{}
	}
	if rec == nil {
		rec = nopRecorder{}
	}
	return base{publisher: publisher, metrics: rec}
}

// reject classifies err for the transport layer. Expected rejections are
// logged at warn, anything unexpected at error with its cause.
func (b base) reject(ctx context.Context, op string, err error) *result.Error {
	e := result.FromError(err)
	b.metrics.Rejection(op, string(e.Category))

	log := logger.Ctx(ctx)
	if e.Category == result.Unexpected {
		log.Error().Err(err).Str("operation", op).Msg("use case failed")
	} else {
		log.Warn().Str("operation", op).Str("category", string(e.Category)).Str("reason", err.Error()).Msg("use case rejected")
	}
	return e
}

// committed records a successful mutation and publishes its events. The
// write is already durable, so a publish failure is only logged.
func (b base) committed(ctx context.Context, op string, evts []models.Event) {
	b.metrics.Mutation(op)
	if len(evts) == 0 {
		return
	}

	pctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), publishTimeout)
	defer cancel()
	if err := b.publisher.Publish(pctx, evts...); err != nil {
		b.metrics.EventsPublished("error", len(evts))
		logger.Ctx(ctx).Error().Err(err).Str("operation", op).Int("events", len(evts)).Msg("event publish failed")
		return
	}
	b.metrics.EventsPublished("ok", len(evts))
}
