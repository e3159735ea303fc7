//go:build integration

package postgres

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"

	"enrolsight/internal/analytics"
	"enrolsight/pkg/testutil/containers"
)

type SourceSuite struct {
	suite.Suite
	pg     *containers.PostgresContainer
	source *Source
	ctx    context.Context
}

func TestSourceSuite(t *testing.T) {
	suite.Run(t, new(SourceSuite))
}

func (s *SourceSuite) SetupSuite() {
	s.ctx = context.Background()
	s.pg = containers.NewPostgresContainer(s.T())

	pool, err := Connect(s.ctx, s.pg.DSN)
	s.Require().NoError(err)
	s.T().Cleanup(pool.Close)

	s.source = New(pool, "enrolment_records")
	s.Require().NoError(s.source.Migrate(s.ctx))
}

func (s *SourceSuite) TestLoadRoundTrip() {
	in := []analytics.RawRecord{
		{
			Period: "2024-01-01", Year: 2024, Month: 1, Region: "Maharashtra",
			Enrolment:  analytics.Enrolment{Total: 1000, ByAge: map[string]int64{"0-5": 400}},
			Updates:    analytics.Updates{Total: 300, ByType: map[string]int64{"Address": 120, "Mobile": 180}},
			Biometrics: analytics.Biometrics{Total: 70},
		},
		{
			Period: "2024-02-01", Year: 2024, Month: 2, Region: "Bihar",
			Enrolment: analytics.Enrolment{Total: 10, ByAge: map[string]int64{}},
		},
	}
	s.Require().NoError(s.source.Insert(s.ctx, in...))

	got, err := s.source.Load(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(got, 2)
	s.Equal("Maharashtra", got[0].Region)
	s.Equal(int64(400), got[0].ChildEnrolments())
	s.Equal(int64(120), got[0].AddressUpdates())
	s.Equal(int64(70), got[0].Biometrics.Total)
	s.Equal("Bihar", got[1].Region)
	s.Equal(int64(0), got[1].ChildEnrolments())
}

func (s *SourceSuite) TestMigrateIsIdempotent() {
	s.NoError(s.source.Migrate(s.ctx))
}
