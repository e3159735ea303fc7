package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	_ "github.com/lib/pq" // registers the "postgres" driver

	id "enrolsight/pkg/domain"
	audit "enrolsight/pkg/platform/audit"
)

const schema = `
CREATE TABLE IF NOT EXISTS audit_events (
	id          UUID PRIMARY KEY,
	category    TEXT NOT NULL,
	timestamp   TIMESTAMPTZ NOT NULL,
	user_id     UUID,
	role        TEXT NOT NULL DEFAULT '',
	action      TEXT NOT NULL,
	subject     TEXT NOT NULL DEFAULT '',
	details     TEXT NOT NULL DEFAULT '',
	request_id  TEXT NOT NULL DEFAULT '',
	client_ip   TEXT NOT NULL DEFAULT '',
	client_kind TEXT NOT NULL DEFAULT ''
);
CREATE INDEX IF NOT EXISTS audit_events_user_ts ON audit_events (user_id, timestamp DESC);
CREATE INDEX IF NOT EXISTS audit_events_ts ON audit_events (timestamp DESC);
`

const selectColumns = `
	SELECT id, category, timestamp, user_id, role, action,
	       subject, details, request_id, client_ip, client_kind
	FROM audit_events
`

// Store implements audit.Store on PostgreSQL.
type Store struct {
	db *sql.DB
}

// Open connects with the lib/pq driver and verifies the connection.
func Open(ctx context.Context, dsn string) (*sql.DB, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("open audit db: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping audit db: %w", err)
	}
	return db, nil
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// Migrate creates the audit table and indexes when missing.
func (s *Store) Migrate(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("migrate audit_events: %w", err)
	}
	return nil
}

// Append inserts one event. Re-appending the same ID is a no-op.
func (s *Store) Append(ctx context.Context, event audit.Event) error {
	query := `
		INSERT INTO audit_events (
			id, category, timestamp, user_id, role, action,
			subject, details, request_id, client_ip, client_kind
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		ON CONFLICT (id) DO NOTHING
	`

	eventID := uuid.UUID(event.ID)
	if event.ID.IsNil() {
		eventID = uuid.New()
	}
	var userID *uuid.UUID
	if !event.UserID.IsNil() {
		uid := uuid.UUID(event.UserID)
		userID = &uid
	}

	_, err := s.db.ExecContext(ctx, query,
		eventID,
		string(event.Category),
		event.Timestamp,
		userID,
		event.Role,
		string(event.Action),
		event.Subject,
		event.Details,
		event.RequestID,
		event.ClientIP,
		event.ClientKind,
	)
	if err != nil {
		return fmt.Errorf("insert audit event: %w", err)
	}
	return nil
}

// ListByUser returns a user's newest events.
func (s *Store) ListByUser(ctx context.Context, userID id.UserID, limit int) ([]audit.Event, error) {
	rows, err := s.db.QueryContext(ctx,
		selectColumns+` WHERE user_id = $1 ORDER BY timestamp DESC LIMIT $2`,
		uuid.UUID(userID), audit.ClampLimit(limit))
	if err != nil {
		return nil, fmt.Errorf("query audit events: %w", err)
	}
	defer rows.Close()
	return scanEvents(rows)
}

// ListRecent returns the newest events across all users.
func (s *Store) ListRecent(ctx context.Context, limit int) ([]audit.Event, error) {
	rows, err := s.db.QueryContext(ctx,
		selectColumns+` ORDER BY timestamp DESC LIMIT $1`,
		audit.ClampLimit(limit))
	if err != nil {
		return nil, fmt.Errorf("query audit events: %w", err)
	}
	defer rows.Close()
	return scanEvents(rows)
}

func scanEvents(rows *sql.Rows) ([]audit.Event, error) {
	events := make([]audit.Event, 0)
	for rows.Next() {
		var (
			event    audit.Event
			eventID  uuid.UUID
			userID   uuid.NullUUID
			category string
			action   string
		)
		err := rows.Scan(
			&eventID,
			&category,
			&event.Timestamp,
			&userID,
			&event.Role,
			&action,
			&event.Subject,
			&event.Details,
			&event.RequestID,
			&event.ClientIP,
			&event.ClientKind,
		)
		if err != nil {
			return nil, fmt.Errorf("scan audit event: %w", err)
		}
		event.ID = id.EventID(eventID)
		event.Category = audit.EventCategory(category)
		event.Action = audit.Action(action)
		if userID.Valid {
			event.UserID = id.UserID(userID.UUID)
		}
		events = append(events, event)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate audit events: %w", err)
	}
	return events, nil
}
