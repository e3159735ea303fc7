// Package dashboard composes the analytics views a caller may see for a
// selected tab. It sits between the pure analytics engine and the transport:
// it reads the current dataset snapshot, gates records by role, computes the
// permitted views and reports every computation to the audit log.
package dashboard

import (
	"enrolsight/internal/access"
	"enrolsight/internal/analytics"
	id "enrolsight/pkg/domain"
)

const (
	// DefaultTop is the ranking length used by the chart views.
	DefaultTop = 10
	// MaxTop caps caller supplied ranking lengths.
	MaxTop = 50
)

// Request selects what Compose builds.
type Request struct {
	Identity access.Identity
	Tab      access.Tab
	Criteria analytics.Criteria
	// CompareA and CompareB name the comparison regions. Empty values fall
	// back to the first two regions of the sorted universe.
	CompareA string
	CompareB string
	// Top is the ranking length; zero means DefaultTop.
	Top int
}

// Dashboard holds every view permitted for one (role, tab) pair. Views the
// caller may not see are left nil.
type Dashboard struct {
	Role           access.Role   `json:"role"`
	Tab            access.Tab    `json:"tab"`
	Views          []access.View `json:"views"`
	DatasetVersion string        `json:"dataset_version,omitempty"`

	Profile          *Profile                    `json:"profile,omitempty"`
	KPI              *analytics.KPISummary       `json:"kpi,omitempty"`
	EnrolmentTrend   []analytics.TimeSeriesPoint `json:"enrolment_trend,omitempty"`
	Forecast         *analytics.ForecastResult   `json:"forecast,omitempty"`
	MigrationRanking []MigrationRow              `json:"migration_ranking,omitempty"`
	DigitalReadiness []ReadinessRow              `json:"digital_readiness,omitempty"`
	BiometricGap     *BiometricGap               `json:"biometric_gap,omitempty"`
	Comparison       *analytics.Comparison       `json:"comparison,omitempty"`
}

// Profile is the only view for roles without analytics access.
type Profile struct {
	ID   id.UserID   `json:"id"`
	Name string      `json:"name"`
	Role access.Role `json:"role"`
}

// MigrationRow is one bar of the address update ranking.
type MigrationRow struct {
	Region             string  `json:"region"`
	AddressUpdates     int64   `json:"address_updates"`
	Enrolment          int64   `json:"enrolment"`
	MigrationIntensity float64 `json:"migration_intensity"`
}

// ReadinessRow breaks a region's updates down by channel.
type ReadinessRow struct {
	Region           string  `json:"region"`
	TotalUpdates     int64   `json:"total_updates"`
	MobileUpdates    int64   `json:"mobile_updates"`
	AddressUpdates   int64   `json:"address_updates"`
	BiometricUpdates int64   `json:"biometric_updates"`
	DigitalReadiness float64 `json:"digital_readiness"`
}

// BiometricRow compares lagged child enrolments with biometric updates.
type BiometricRow struct {
	Region           string  `json:"region"`
	ChildLagged      int64   `json:"child_lagged"`
	BiometricUpdates int64   `json:"biometric_updates"`
	Compliance       float64 `json:"compliance"`
}

// BiometricGap is the compliance chart plus the region with the widest
// shortfall among the ranked rows.
type BiometricGap struct {
	Rows    []BiometricRow `json:"rows"`
	Largest *analytics.Gap `json:"largest,omitempty"`
}

// Result carries a single series together with the dataset version it was
// computed from.
type Result[T any] struct {
	Data           T      `json:"data"`
	DatasetVersion string `json:"dataset_version"`
}
