//go:build integration

package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	id "enrolsight/pkg/domain"
	audit "enrolsight/pkg/platform/audit"
	"enrolsight/pkg/testutil/containers"
)

type StoreSuite struct {
	suite.Suite
	pg    *containers.PostgresContainer
	store *Store
}

func TestStoreSuite(t *testing.T) {
	suite.Run(t, new(StoreSuite))
}

func (s *StoreSuite) SetupSuite() {
	s.pg = containers.NewPostgresContainer(s.T())
	db, err := Open(context.Background(), s.pg.DSN)
	s.Require().NoError(err)
	s.store = New(db)
	s.Require().NoError(s.store.Migrate(context.Background()))
}

func (s *StoreSuite) SetupTest() {
	_, err := s.store.db.Exec(`TRUNCATE audit_events`)
	s.Require().NoError(err)
}

func (s *StoreSuite) TestAppendAndListNewestFirst() {
	ctx := context.Background()
	userID := id.UserID(uuid.New())
	base := time.Date(2025, 1, 1, 9, 0, 0, 0, time.UTC)

	for i, tab := range []string{"overview", "biometric", "migration"} {
		s.Require().NoError(s.store.Append(ctx, audit.Event{
			ID:        id.NewEventID(),
			Category:  audit.CategoryOperations,
			Timestamp: base.Add(time.Duration(i) * time.Minute),
			UserID:    userID,
			Role:      "Analyst",
			Action:    audit.ActionViewComputed,
			Subject:   tab,
		}))
	}
	s.Require().NoError(s.store.Append(ctx, audit.Event{
		ID:        id.NewEventID(),
		Timestamp: base,
		Action:    audit.ActionDatasetLoaded,
	}))

	events, err := s.store.ListByUser(ctx, userID, 2)
	s.Require().NoError(err)
	s.Require().Len(events, 2)
	s.Equal("migration", events[0].Subject)
	s.Equal("biometric", events[1].Subject)
	s.Equal(userID, events[0].UserID)

	recent, err := s.store.ListRecent(ctx, 10)
	s.Require().NoError(err)
	s.Len(recent, 4)
}

func (s *StoreSuite) TestAppendIsIdempotent() {
	ctx := context.Background()
	event := audit.Event{ID: id.NewEventID(), Timestamp: time.Now(), Action: audit.ActionAccessDenied}
	s.Require().NoError(s.store.Append(ctx, event))
	s.Require().NoError(s.store.Append(ctx, event))

	recent, err := s.store.ListRecent(ctx, 10)
	s.Require().NoError(err)
	s.Len(recent, 1)
}
