package memory

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	id "enrolsight/pkg/domain"
	audit "enrolsight/pkg/platform/audit"
)

func at(minute int) time.Time {
	return time.Date(2025, 1, 1, 10, minute, 0, 0, time.UTC)
}

func TestInMemoryStore_ListByUser(t *testing.T) {
	ctx := context.Background()
	store := NewInMemoryStore()
	alice, bob := id.UserID(uuid.New()), id.UserID(uuid.New())

	require.NoError(t, store.Append(ctx, audit.Event{UserID: alice, Subject: "overview", Timestamp: at(1)}))
	require.NoError(t, store.Append(ctx, audit.Event{UserID: bob, Subject: "biometric", Timestamp: at(2)}))
	require.NoError(t, store.Append(ctx, audit.Event{UserID: alice, Subject: "migration", Timestamp: at(4)}))
	require.NoError(t, store.Append(ctx, audit.Event{UserID: alice, Subject: "demographic", Timestamp: at(3)}))

	events, err := store.ListByUser(ctx, alice, 20)
	require.NoError(t, err)
	require.Len(t, events, 3)
	assert.Equal(t, "migration", events[0].Subject)
	assert.Equal(t, "demographic", events[1].Subject)
	assert.Equal(t, "overview", events[2].Subject)

	limited, err := store.ListByUser(ctx, alice, 1)
	require.NoError(t, err)
	require.Len(t, limited, 1)
	assert.Equal(t, "migration", limited[0].Subject)
}

func TestInMemoryStore_ListRecent(t *testing.T) {
	ctx := context.Background()
	store := NewInMemoryStore()
	for i := range 30 {
		require.NoError(t, store.Append(ctx, audit.Event{Timestamp: at(i), Details: string(rune('a' + i%26))}))
	}

	events, err := store.ListRecent(ctx, 0)
	require.NoError(t, err)
	assert.Len(t, events, audit.DefaultListLimit)
	assert.Equal(t, at(29), events[0].Timestamp)
}

func TestInMemoryStore_Bounded(t *testing.T) {
	ctx := context.Background()
	store := NewBoundedStore(2)
	for i := range 5 {
		require.NoError(t, store.Append(ctx, audit.Event{Timestamp: at(i)}))
	}
	assert.Equal(t, 2, store.Len())

	events, err := store.ListRecent(ctx, 10)
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, at(4), events[0].Timestamp)
	assert.Equal(t, at(3), events[1].Timestamp)

	store.Clear()
	assert.Zero(t, store.Len())
}
