package dashboard

import (
	"context"

	"enrolsight/internal/access"
	"enrolsight/internal/analytics"
	dErrors "enrolsight/pkg/domain-errors"
	"enrolsight/pkg/platform/audit"
)

// KPI returns the card values over the filtered records.
func (s *Service) KPI(ctx context.Context, identity access.Identity, c analytics.Criteria) (Result[analytics.KPISummary], error) {
	snap, records, err := s.prepare(ctx, identity, access.ViewKPI, c)
	if err != nil {
		return Result[analytics.KPISummary]{}, err
	}
	return Result[analytics.KPISummary]{Data: analytics.KPIs(records), DatasetVersion: snap.Version}, nil
}

// Aggregates returns one row per region with its derived ratios.
func (s *Service) Aggregates(ctx context.Context, identity access.Identity, c analytics.Criteria) (Result[[]analytics.RegionAggregate], error) {
	snap, records, err := s.prepare(ctx, identity, access.ViewMigrationRanking, c)
	if err != nil {
		return Result[[]analytics.RegionAggregate]{}, err
	}
	return Result[[]analytics.RegionAggregate]{Data: analytics.Aggregate(records), DatasetVersion: snap.Version}, nil
}

// Series returns the chronological enrolment series.
func (s *Service) Series(ctx context.Context, identity access.Identity, c analytics.Criteria) (Result[[]analytics.TimeSeriesPoint], error) {
	snap, records, err := s.prepare(ctx, identity, access.ViewEnrolmentTrend, c)
	if err != nil {
		return Result[[]analytics.TimeSeriesPoint]{}, err
	}
	return Result[[]analytics.TimeSeriesPoint]{Data: analytics.BuildSeries(records), DatasetVersion: snap.Version}, nil
}

// Ranking returns the top n regions by measure. n is capped at MaxTop; zero
// or negative n yields no rows.
func (s *Service) Ranking(ctx context.Context, identity access.Identity, c analytics.Criteria, measure analytics.Measure, n int) (Result[[]analytics.RegionAggregate], error) {
	if !measure.IsValid() {
		return Result[[]analytics.RegionAggregate]{}, dErrors.New(dErrors.CodeInvalidInput, "invalid measure")
	}
	snap, records, err := s.prepare(ctx, identity, access.ViewMigrationRanking, c)
	if err != nil {
		return Result[[]analytics.RegionAggregate]{}, err
	}
	ranked := analytics.TopN(analytics.Aggregate(records), measure, min(n, MaxTop))
	return Result[[]analytics.RegionAggregate]{Data: ranked, DatasetVersion: snap.Version}, nil
}

// Gap returns the region maximizing minuend - subtrahend, or nil when no
// region matches.
func (s *Service) Gap(ctx context.Context, identity access.Identity, c analytics.Criteria, minuend, subtrahend analytics.Measure) (Result[*analytics.Gap], error) {
	if !minuend.IsValid() || !subtrahend.IsValid() {
		return Result[*analytics.Gap]{}, dErrors.New(dErrors.CodeInvalidInput, "invalid measure")
	}
	snap, records, err := s.prepare(ctx, identity, access.ViewBiometricGap, c)
	if err != nil {
		return Result[*analytics.Gap]{}, err
	}
	out := Result[*analytics.Gap]{DatasetVersion: snap.Version}
	if gap, ok := analytics.LargestGap(analytics.Aggregate(records), minuend, subtrahend); ok {
		out.Data = &gap
	}
	return out, nil
}

// Forecast fits the enrolment series and projects it forward.
func (s *Service) Forecast(ctx context.Context, identity access.Identity, c analytics.Criteria) (Result[analytics.ForecastResult], error) {
	snap, records, err := s.prepare(ctx, identity, access.ViewForecast, c)
	if err != nil {
		return Result[analytics.ForecastResult]{}, err
	}
	return Result[analytics.ForecastResult]{Data: forecastOf(snap, records), DatasetVersion: snap.Version}, nil
}

// Compare returns parallel stats for regions a and b.
func (s *Service) Compare(ctx context.Context, identity access.Identity, c analytics.Criteria, a, b string) (Result[analytics.Comparison], error) {
	snap, records, err := s.prepare(ctx, identity, access.ViewComparison, c.WithoutRegion())
	if err != nil {
		return Result[analytics.Comparison]{}, err
	}
	return Result[analytics.Comparison]{
		Data:           comparisonOf(snap, records, a, b),
		DatasetVersion: snap.Version,
	}, nil
}

// Regions returns the sorted region universe.
func (s *Service) Regions(ctx context.Context, identity access.Identity) (Result[[]string], error) {
	if !identity.HasAnalytics() {
		return Result[[]string]{}, s.authorize(ctx, identity, access.ViewKPI)
	}
	snap, err := s.snapshot(ctx)
	if err != nil {
		return Result[[]string]{}, err
	}
	return Result[[]string]{Data: snap.Regions, DatasetVersion: snap.Version}, nil
}

const activityLogSubject = "activity_log"

// ActivityLog returns the identity's most recent audit events, newest first.
func (s *Service) ActivityLog(ctx context.Context, identity access.Identity, limit int) ([]audit.Event, error) {
	if s.auditor == nil {
		return []audit.Event{}, nil
	}
	events, err := s.auditor.List(ctx, identity.ID, audit.ClampLimit(limit))
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeUnavailable, "activity log unavailable")
	}
	return events, nil
}

// RecentActivity returns the newest audit events across all users. Admin only.
func (s *Service) RecentActivity(ctx context.Context, identity access.Identity, limit int) ([]audit.Event, error) {
	if identity.Role != access.RoleAdmin {
		s.metrics.IncrementDenied(string(identity.Role), activityLogSubject)
		s.emit(ctx, audit.Event{
			UserID:  identity.ID,
			Role:    string(identity.Role),
			Action:  audit.ActionAccessDenied,
			Subject: activityLogSubject,
		})
		return nil, dErrors.New(dErrors.CodeForbidden, "only admins may read all activity")
	}
	if s.auditor == nil {
		return []audit.Event{}, nil
	}
	events, err := s.auditor.ListRecent(ctx, audit.ClampLimit(limit))
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeUnavailable, "activity log unavailable")
	}
	return events, nil
}
