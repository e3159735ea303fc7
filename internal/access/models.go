// Package access decides which computed views a caller may see.
//
// The router is a static table over (role, tab). It is total: every role and
// every tab string maps to a defined, ordered list of views. Unknown roles are
// treated as User, the most restrictive role.
package access

import (
	"slices"
	"strings"

	id "enrolsight/pkg/domain"
)

// Role is the caller's authorization level.
type Role string

const (
	RoleUser    Role = "User"
	RoleAnalyst Role = "Analyst"
	RoleManager Role = "Manager"
	RoleAdmin   Role = "Admin"
)

var roles = []Role{RoleUser, RoleAnalyst, RoleManager, RoleAdmin}

// ParseRole maps external input to a Role. Matching ignores case and
// surrounding space; anything else is RoleUser.
func ParseRole(s string) Role {
	s = strings.TrimSpace(s)
	for _, r := range roles {
		if strings.EqualFold(s, string(r)) {
			return r
		}
	}
	return RoleUser
}

// Roles lists every role in ascending privilege.
func Roles() []Role {
	return append([]Role(nil), roles...)
}

// Tab is the dashboard section the caller selected.
type Tab string

const (
	TabOverview    Tab = "overview"
	TabDemographic Tab = "demographic"
	TabBiometric   Tab = "biometric"
	TabMigration   Tab = "migration"

	// TabOther labels every tab without a dedicated view set.
	TabOther Tab = "other"
)

// Tabs lists the tabs with dedicated view sets.
func Tabs() []Tab {
	return []Tab{TabOverview, TabDemographic, TabBiometric, TabMigration}
}

// ParseTab normalizes a tab name. Unknown names are kept as-is and receive the
// fallback view set.
func ParseTab(s string) Tab {
	return Tab(strings.ToLower(strings.TrimSpace(s)))
}

// Label maps t onto a closed set for metric labels, span attributes and audit
// subjects: one of Tabs, or TabOther.
func (t Tab) Label() string {
	if slices.Contains(Tabs(), t) {
		return string(t)
	}
	return string(TabOther)
}

// View identifies one computed dashboard panel.
type View string

const (
	ViewProfile          View = "profile"
	ViewKPI              View = "kpi"
	ViewEnrolmentTrend   View = "enrolment_trend"
	ViewForecast         View = "forecast"
	ViewMigrationRanking View = "migration_ranking"
	ViewDigitalReadiness View = "digital_readiness"
	ViewBiometricGap     View = "biometric_gap"
	ViewComparison       View = "comparison"
)

// Identity is the authenticated caller as issued by the identity provider.
type Identity struct {
	ID   id.UserID `json:"id"`
	Name string    `json:"name"`
	Role Role      `json:"role"`
}

// HasAnalytics reports whether the identity may see any record-derived view.
func (i Identity) HasAnalytics() bool {
	return hasAnalytics(i.Role)
}
