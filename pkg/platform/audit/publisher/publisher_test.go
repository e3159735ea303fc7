package publisher

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	id "enrolsight/pkg/domain"
	audit "enrolsight/pkg/platform/audit"
	"enrolsight/pkg/platform/audit/store/memory"
	"enrolsight/pkg/platform/circuit"
	"enrolsight/pkg/requestcontext"
)

func TestPublisher_SyncMode(t *testing.T) {
	store := memory.NewInMemoryStore()
	pub := NewPublisher(store)
	defer pub.Close()

	userID := id.UserID(uuid.New())
	err := pub.Emit(context.Background(), audit.Event{
		UserID:  userID,
		Action:  audit.ActionViewComputed,
		Subject: "overview",
	})
	require.NoError(t, err)

	events, err := pub.List(context.Background(), userID, 20)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, audit.ActionViewComputed, events[0].Action)
	assert.Equal(t, audit.CategoryOperations, events[0].Category)
	assert.False(t, events[0].ID.IsNil())
}

func TestPublisher_AsyncMode(t *testing.T) {
	store := memory.NewInMemoryStore()
	pub := NewPublisher(store, WithAsyncBuffer(10))

	userID := id.UserID(uuid.New())
	require.NoError(t, pub.Emit(context.Background(), audit.Event{
		UserID: userID,
		Action: audit.ActionAccessDenied,
	}))

	require.Eventually(t, func() bool { return store.Len() == 1 }, time.Second, 5*time.Millisecond)
	pub.Close()

	events, err := pub.List(context.Background(), userID, 20)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, audit.CategorySecurity, events[0].Category)
}

func TestPublisher_AsyncDrainsOnClose(t *testing.T) {
	store := memory.NewInMemoryStore()
	pub := NewPublisher(store, WithAsyncBuffer(100))

	userID := id.UserID(uuid.New())
	for range 10 {
		require.NoError(t, pub.Emit(context.Background(), audit.Event{UserID: userID, Action: audit.ActionViewComputed}))
	}
	pub.Close()

	events, err := store.ListByUser(context.Background(), userID, 50)
	require.NoError(t, err)
	assert.Len(t, events, 10, "all events should be drained on close")

	require.NoError(t, pub.Emit(context.Background(), audit.Event{UserID: userID}))
	assert.Equal(t, 11, store.Len(), "emits after close are persisted synchronously")
	pub.Close()
}

func TestPublisher_BufferFull(t *testing.T) {
	blocked := &blockingStore{release: make(chan struct{})}
	pub := NewPublisher(blocked, WithAsyncBuffer(1), WithMetrics(NewMetrics(prometheus.NewRegistry())))

	var wg sync.WaitGroup
	var mu sync.Mutex
	var full int
	for range 10 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if errors.Is(pub.Emit(context.Background(), audit.Event{}), ErrBufferFull) {
				mu.Lock()
				full++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()
	assert.Positive(t, full, "a one-slot buffer behind a stuck store must reject some events")

	close(blocked.release)
	pub.Close()
}

func TestPublisher_ContextCancelledWhenFull(t *testing.T) {
	blocked := &blockingStore{release: make(chan struct{})}
	pub := NewPublisher(blocked, WithAsyncBuffer(1))

	_ = pub.Emit(context.Background(), audit.Event{})
	_ = pub.Emit(context.Background(), audit.Event{})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := pub.Emit(ctx, audit.Event{})
	if err != nil {
		assert.True(t, errors.Is(err, context.Canceled) || errors.Is(err, ErrBufferFull), "got %v", err)
	}

	close(blocked.release)
	pub.Close()
}

func TestPublisher_SetsTimestampFromRequestContext(t *testing.T) {
	store := memory.NewInMemoryStore()
	pub := NewPublisher(store)

	fixed := time.Date(2025, 2, 1, 8, 30, 0, 0, time.UTC)
	ctx := requestcontext.WithTime(context.Background(), fixed)
	ctx = requestcontext.WithRequestID(ctx, "req-9")
	ctx = requestcontext.WithClientMetadata(ctx, "10.1.1.1", "ua", "Firefox/Linux")
	userID := id.UserID(uuid.New())

	require.NoError(t, pub.Emit(ctx, audit.Event{UserID: userID, Action: audit.ActionViewComputed}))

	events, err := pub.List(ctx, userID, 1)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, fixed, events[0].Timestamp)
	assert.Equal(t, "req-9", events[0].RequestID)
	assert.Equal(t, "10.1.1.1", events[0].ClientIP)
	assert.Equal(t, "Firefox/Linux", events[0].ClientKind)
}

func TestPublisher_PreservesExistingTimestamp(t *testing.T) {
	store := memory.NewInMemoryStore()
	pub := NewPublisher(store)

	userID := id.UserID(uuid.New())
	custom := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	require.NoError(t, pub.Emit(context.Background(), audit.Event{UserID: userID, Timestamp: custom}))

	events, err := pub.List(context.Background(), userID, 20)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, custom, events[0].Timestamp)
}

func TestPublisher_FallbackWhenStoreFails(t *testing.T) {
	failing := &failingStore{}
	sink := &recordingSink{}
	pub := NewPublisher(failing,
		WithBreaker(circuit.New("audit-store", circuit.WithFailureThreshold(2))),
		WithSinks(sink),
	)

	userID := id.UserID(uuid.New())
	for range 3 {
		require.NoError(t, pub.Emit(context.Background(), audit.Event{UserID: userID, Action: audit.ActionViewComputed}))
	}

	events, err := pub.List(context.Background(), userID, 20)
	require.NoError(t, err)
	assert.Len(t, events, 3, "reads come from the fallback while the breaker is open")
	assert.Len(t, sink.events, 3, "sinks still receive events")

	recent, err := pub.ListRecent(context.Background(), 2)
	require.NoError(t, err)
	assert.Len(t, recent, 2)
}

func TestPublisher_ListRecentSpansUsers(t *testing.T) {
	pub := NewPublisher(memory.NewInMemoryStore())
	first, second := id.UserID(uuid.New()), id.UserID(uuid.New())
	base := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	require.NoError(t, pub.Emit(context.Background(), audit.Event{UserID: first, Timestamp: base}))
	require.NoError(t, pub.Emit(context.Background(), audit.Event{UserID: second, Timestamp: base.Add(time.Minute)}))

	events, err := pub.ListRecent(context.Background(), 20)
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, second, events[0].UserID, "newest first")
	assert.Equal(t, first, events[1].UserID)
}

func TestPublisher_SinkErrorsDoNotFailEmit(t *testing.T) {
	pub := NewPublisher(memory.NewInMemoryStore(), WithSinks(&recordingSink{err: errors.New("kafka down")}))
	assert.NoError(t, pub.Emit(context.Background(), audit.Event{}))
}

type blockingStore struct {
	memory.InMemoryStore
	release chan struct{}
}

func (b *blockingStore) Append(ctx context.Context, e audit.Event) error {
	<-b.release
	return b.InMemoryStore.Append(ctx, e)
}

type failingStore struct {
	memory.InMemoryStore
}

func (f *failingStore) Append(context.Context, audit.Event) error {
	return errors.New("connection refused")
}

type recordingSink struct {
	mu     sync.Mutex
	events []audit.Event
	err    error
}

func (r *recordingSink) Publish(_ context.Context, e audit.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
	return r.err
}
