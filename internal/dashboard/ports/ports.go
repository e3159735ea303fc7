package ports

import (
	"context"
	"time"

	"enrolsight/internal/dataset"
	id "enrolsight/pkg/domain"
	"enrolsight/pkg/platform/audit"
)

// DatasetPort exposes the current dataset snapshot.
type DatasetPort interface {
	Snapshot(ctx context.Context) (*dataset.Snapshot, error)
}

// AuditPort records view computations and reads activity logs, per user or
// across all users. It
// matches the audit publisher but is declared here to keep the dashboard
// independent of how events are stored.
type AuditPort interface {
	Emit(ctx context.Context, event audit.Event) error
	List(ctx context.Context, userID id.UserID, limit int) ([]audit.Event, error)
	ListRecent(ctx context.Context, limit int) ([]audit.Event, error)
}

// Cache memoizes composed dashboards. Get returns sentinel.ErrNotFound on a
// miss.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
}
