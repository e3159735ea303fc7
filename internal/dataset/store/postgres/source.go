// Package postgres loads the dataset from a Postgres table through pgx.
package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"enrolsight/internal/analytics"
)

// DB is the subset of *pgxpool.Pool the source uses.
type DB interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

// Source reads every row of a records table. Breakdown maps are stored as
// jsonb.
type Source struct {
	db    DB
	table pgx.Identifier
}

// New wraps an existing connection pool.
func New(db DB, table string) *Source {
	return &Source{db: db, table: pgx.Identifier{table}}
}

// Connect opens a pool for dsn and verifies it with a ping.
func Connect(ctx context.Context, dsn string) (*pgxpool.Pool, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("open dataset pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping dataset db: %w", err)
	}
	return pool, nil
}

func (s *Source) Name() string { return "postgres:" + s.table.Sanitize() }

// Migrate creates the records table when it does not exist.
func (s *Source) Migrate(ctx context.Context) error {
	_, err := s.db.Exec(ctx, `CREATE TABLE IF NOT EXISTS `+s.table.Sanitize()+` (
		id              BIGSERIAL PRIMARY KEY,
		period          TEXT NOT NULL,
		year            INT NOT NULL DEFAULT 0,
		month           INT NOT NULL DEFAULT 0,
		state           TEXT NOT NULL,
		enrolment_total BIGINT NOT NULL DEFAULT 0,
		enrolment_by_age JSONB NOT NULL DEFAULT '{}'::jsonb,
		updates_total   BIGINT NOT NULL DEFAULT 0,
		updates_by_type JSONB NOT NULL DEFAULT '{}'::jsonb,
		biometrics_total BIGINT NOT NULL DEFAULT 0
	)`)
	if err != nil {
		return fmt.Errorf("migrate %s: %w", s.table.Sanitize(), err)
	}
	return nil
}

// Insert appends records. It exists for seeding and tests.
func (s *Source) Insert(ctx context.Context, records ...analytics.RawRecord) error {
	query := `INSERT INTO ` + s.table.Sanitize() + ` (period, year, month, state,
		enrolment_total, enrolment_by_age, updates_total, updates_by_type, biometrics_total)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	for _, r := range records {
		byAge, err := json.Marshal(r.Enrolment.ByAge)
		if err != nil {
			return fmt.Errorf("encode by_age: %w", err)
		}
		byType, err := json.Marshal(r.Updates.ByType)
		if err != nil {
			return fmt.Errorf("encode by_type: %w", err)
		}
		if _, err := s.db.Exec(ctx, query, r.Period, r.Year, r.Month, r.Region,
			r.Enrolment.Total, byAge, r.Updates.Total, byType, r.Biometrics.Total); err != nil {
			return fmt.Errorf("insert record: %w", err)
		}
	}
	return nil
}

// Load returns rows in insertion order.
func (s *Source) Load(ctx context.Context) ([]analytics.RawRecord, error) {
	rows, err := s.db.Query(ctx, `SELECT period, year, month, state,
		enrolment_total, enrolment_by_age, updates_total, updates_by_type, biometrics_total
		FROM `+s.table.Sanitize()+` ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("query records: %w", err)
	}
	defer rows.Close()

	var records []analytics.RawRecord
	for rows.Next() {
		var (
			r             analytics.RawRecord
			byAge, byType []byte
		)
		if err := rows.Scan(&r.Period, &r.Year, &r.Month, &r.Region,
			&r.Enrolment.Total, &byAge, &r.Updates.Total, &byType, &r.Biometrics.Total); err != nil {
			return nil, fmt.Errorf("scan record: %w", err)
		}
		if err := json.Unmarshal(byAge, &r.Enrolment.ByAge); err != nil {
			return nil, fmt.Errorf("decode by_age: %w", err)
		}
		if err := json.Unmarshal(byType, &r.Updates.ByType); err != nil {
			return nil, fmt.Errorf("decode by_type: %w", err)
		}
		records = append(records, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate records: %w", err)
	}
	return records, nil
}
