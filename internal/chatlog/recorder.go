package chatlog

import (
	"context"

	"github.com/rs/zerolog"

	logx "github.com/studio101-core/server/pkg/logger"
	"github.com/studio101-core/server/pkg/retry"
)

// Sink persists chat records.
type Sink interface {
	Append(ctx context.Context, rec Record) error
}

// Recorder writes every record to all sinks, in call order. Failures are
// retried, then logged and dropped.
type Recorder struct {
	sinks []Sink
	retry retry.Config
	log   zerolog.Logger
}

func NewRecorder(cfg retry.Config, sinks ...Sink) *Recorder {
	kept := make([]Sink, 0, len(sinks))
	for _, s := range sinks {
		if s != nil {
			kept = append(kept, s)
		}
	}
	return &Recorder{
		sinks: kept,
		retry: cfg,
		log:   logx.With("chatlog"),
	}
}

func (r *Recorder) Record(ctx context.Context, rec Record) {
	if r == nil {
		return
	}
	for _, s := range r.sinks {
		err := retry.Do(ctx, r.retry, func() error {
			return s.Append(ctx, rec)
		})
		if err != nil {
			r.log.Warn().
				Err(err).
				Str("session_id", rec.SessionID).
				Str("sender", string(rec.Sender)).
				Msg("failed to record chat message")
		}
	}
}
