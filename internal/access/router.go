package access

import (
	"slices"

	"enrolsight/internal/analytics"
)

type tabViews map[Tab][]View

var (
	userViews = []View{ViewProfile}

	managerViews = tabViews{
		TabOverview:    {ViewKPI, ViewEnrolmentTrend, ViewMigrationRanking, ViewDigitalReadiness},
		TabDemographic: {ViewKPI, ViewForecast, ViewEnrolmentTrend},
		TabBiometric:   {ViewKPI},
		TabMigration:   {ViewKPI, ViewMigrationRanking},
	}

	// Analyst and Admin share a view set.
	analystViews = tabViews{
		TabOverview:    {ViewKPI, ViewEnrolmentTrend, ViewMigrationRanking, ViewDigitalReadiness, ViewBiometricGap, ViewComparison},
		TabDemographic: {ViewKPI, ViewForecast, ViewMigrationRanking, ViewEnrolmentTrend, ViewComparison},
		TabBiometric:   {ViewKPI, ViewBiometricGap, ViewComparison},
		TabMigration:   {ViewKPI, ViewForecast, ViewMigrationRanking, ViewEnrolmentTrend, ViewComparison},
	}

	fallbackViews = []View{ViewKPI}
)

func tableFor(role Role) tabViews {
	switch role {
	case RoleManager:
		return managerViews
	case RoleAnalyst, RoleAdmin:
		return analystViews
	default:
		return nil
	}
}

// PermittedViews returns the ordered views a role may see on a tab. The result
// is never empty and callers may modify it.
func PermittedViews(role Role, tab Tab) []View {
	table := tableFor(role)
	if table == nil {
		return slices.Clone(userViews)
	}
	if views, ok := table[tab]; ok {
		return slices.Clone(views)
	}
	return slices.Clone(fallbackViews)
}

// Allows reports whether some tab grants view to role.
func Allows(role Role, view View) bool {
	table := tableFor(role)
	if table == nil {
		return slices.Contains(userViews, view)
	}
	if slices.Contains(fallbackViews, view) {
		return true
	}
	for _, views := range table {
		if slices.Contains(views, view) {
			return true
		}
	}
	return false
}

// Gate returns the records a role may compute over. Roles without any
// analytics view get nothing, so no aggregate can leak through them.
func Gate(role Role, records []analytics.RawRecord) []analytics.RawRecord {
	if !hasAnalytics(role) {
		return nil
	}
	return records
}

func hasAnalytics(role Role) bool {
	return tableFor(role) != nil
}
