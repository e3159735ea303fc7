// Package publisher is the single entry point services use to record audit
// events.
//
// Events are persisted to a primary Store guarded by a circuit breaker. Failed
// writes land in an in-memory fallback, and while the breaker is open reads
// are served from it so the activity log keeps working. Every persisted event
// is then offered to the configured sinks. In async mode Emit never blocks on
// I/O.
package publisher

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	id "enrolsight/pkg/domain"
	audit "enrolsight/pkg/platform/audit"
	"enrolsight/pkg/platform/audit/store/memory"
	"enrolsight/pkg/platform/audit/worker"
	"enrolsight/pkg/platform/circuit"
	"enrolsight/pkg/requestcontext"
)

// ErrBufferFull is returned by Emit in async mode when the buffer is full.
var ErrBufferFull = errors.New("audit buffer full")

const fallbackCapacity = 1000

// Publisher is safe for concurrent use.
type Publisher struct {
	primary  audit.Store
	fallback *memory.InMemoryStore
	breaker  *circuit.Breaker
	sinks    []audit.Sink
	logger   *slog.Logger
	metrics  *Metrics

	buffer  int
	inbox   chan audit.Event
	done    chan struct{}
	closeMu sync.RWMutex
	closed  bool
}

// Option configures a Publisher.
type Option func(*Publisher)

// WithAsyncBuffer enables async delivery through a buffer of n events.
func WithAsyncBuffer(n int) Option {
	return func(p *Publisher) { p.buffer = n }
}

func WithLogger(logger *slog.Logger) Option {
	return func(p *Publisher) { p.logger = logger }
}

func WithMetrics(m *Metrics) Option {
	return func(p *Publisher) { p.metrics = m }
}

// WithSinks mirrors persisted events to each sink.
func WithSinks(sinks ...audit.Sink) Option {
	return func(p *Publisher) { p.sinks = append(p.sinks, sinks...) }
}

// WithBreaker overrides the primary store's circuit breaker.
func WithBreaker(b *circuit.Breaker) Option {
	return func(p *Publisher) { p.breaker = b }
}

func NewPublisher(store audit.Store, opts ...Option) *Publisher {
	p := &Publisher{
		primary:  store,
		fallback: memory.NewBoundedStore(fallbackCapacity),
		breaker:  circuit.New("audit-store", circuit.WithFailureThreshold(3)),
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(p)
	}
	if p.buffer > 0 {
		p.inbox = make(chan audit.Event, p.buffer)
		p.done = make(chan struct{})
		w := worker.NewWorker(appenderFunc(p.persist), p.inbox, p.logger)
		go func() {
			defer close(p.done)
			_ = w.Run(context.Background())
		}()
	}
	return p
}

type appenderFunc func(context.Context, audit.Event) error

func (f appenderFunc) Append(ctx context.Context, e audit.Event) error { return f(ctx, e) }

// Emit stamps the event with an ID, timestamp, category and request metadata
// where missing, then persists it (sync) or queues it (async).
func (p *Publisher) Emit(ctx context.Context, event audit.Event) error {
	event = p.enrich(ctx, event)

	if p.inbox == nil {
		return p.persist(ctx, event)
	}

	p.closeMu.RLock()
	defer p.closeMu.RUnlock()
	if p.closed {
		return p.persist(ctx, event)
	}

	select {
	case p.inbox <- event:
		return nil
	default:
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	p.metrics.incDropped()
	return ErrBufferFull
}

func (p *Publisher) enrich(ctx context.Context, event audit.Event) audit.Event {
	if event.ID.IsNil() {
		event.ID = id.NewEventID()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = requestcontext.Now(ctx)
	}
	if event.Category == "" {
		event.Category = event.Action.Category()
	}
	if event.RequestID == "" {
		event.RequestID = requestcontext.RequestID(ctx)
	}
	if event.ClientIP == "" {
		event.ClientIP = requestcontext.ClientIP(ctx)
	}
	if event.ClientKind == "" {
		event.ClientKind = requestcontext.ClientKind(ctx)
	}
	return event
}

func (p *Publisher) persist(ctx context.Context, event audit.Event) error {
	err := p.primary.Append(ctx, event)
	if err != nil {
		if _, change := p.breaker.RecordFailure(); change.Opened {
			p.logger.WarnContext(ctx, "audit store circuit opened", "breaker", p.breaker.Name(), "error", err)
		}
		p.metrics.incFailed()
		if ferr := p.fallback.Append(ctx, event); ferr != nil {
			return errors.Join(err, ferr)
		}
		p.metrics.incFallback()
	} else {
		if _, change := p.breaker.RecordSuccess(); change.Closed {
			p.logger.InfoContext(ctx, "audit store circuit closed", "breaker", p.breaker.Name())
		}
		p.metrics.incPersisted(event.Category)
	}

	for _, sink := range p.sinks {
		if serr := sink.Publish(ctx, event); serr != nil {
			p.logger.WarnContext(ctx, "audit sink publish failed",
				"action", event.Action,
				"request_id", event.RequestID,
				"error", serr,
			)
		}
	}
	return nil
}

// List returns a user's newest events, reading the fallback while the
// primary store is unavailable.
func (p *Publisher) List(ctx context.Context, userID id.UserID, limit int) ([]audit.Event, error) {
	if p.breaker.IsOpen() {
		return p.fallback.ListByUser(ctx, userID, limit)
	}
	return p.primary.ListByUser(ctx, userID, limit)
}

// ListRecent returns the newest events across all users, reading the
// fallback while the primary store is unavailable.
func (p *Publisher) ListRecent(ctx context.Context, limit int) ([]audit.Event, error) {
	if p.breaker.IsOpen() {
		return p.fallback.ListRecent(ctx, limit)
	}
	return p.primary.ListRecent(ctx, limit)
}

// Close stops accepting async events and waits for the buffer to drain.
// Events emitted after Close are persisted synchronously.
func (p *Publisher) Close() {
	if p.inbox == nil {
		return
	}
	p.closeMu.Lock()
	if p.closed {
		p.closeMu.Unlock()
		return
	}
	p.closed = true
	close(p.inbox)
	p.closeMu.Unlock()
	<-p.done
}
