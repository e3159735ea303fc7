package audit

import (
	"context"

	id "enrolsight/pkg/domain"
)

// DefaultListLimit bounds activity log reads.
const DefaultListLimit = 20

// Store persists audit events. List methods return newest first.
type Store interface {
	Append(ctx context.Context, event Event) error
	ListByUser(ctx context.Context, userID id.UserID, limit int) ([]Event, error)
	ListRecent(ctx context.Context, limit int) ([]Event, error)
}

// Sink receives a copy of every persisted event, e.g. a Kafka topic.
type Sink interface {
	Publish(ctx context.Context, event Event) error
}

// ClampLimit maps non-positive or oversized limits to the default.
func ClampLimit(limit int) int {
	if limit <= 0 || limit > 500 {
		return DefaultListLimit
	}
	return limit
}
