package worker

import (
	"context"
	"log/slog"

	audit "enrolsight/pkg/platform/audit"
)

// Appender is what the worker hands each event to.
type Appender interface {
	Append(ctx context.Context, event audit.Event) error
}

// Worker drains an event channel into an Appender. A failed append is logged
// and the worker moves on; audit delivery never stalls the producer.
type Worker struct {
	sink   Appender
	inbox  <-chan audit.Event
	logger *slog.Logger
}

func NewWorker(sink Appender, inbox <-chan audit.Event, logger *slog.Logger) *Worker {
	if logger == nil {
		logger = slog.Default()
	}
	return &Worker{sink: sink, inbox: inbox, logger: logger}
}

// Run returns nil once the inbox is closed and drained, or ctx.Err() if the
// context ends first.
func (w *Worker) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event, ok := <-w.inbox:
			if !ok {
				return nil
			}
			if err := w.sink.Append(ctx, event); err != nil {
				w.logger.WarnContext(ctx, "audit append failed",
					"action", event.Action,
					"request_id", event.RequestID,
					"error", err,
				)
			}
		}
	}
}
