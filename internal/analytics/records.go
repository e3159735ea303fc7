// Package analytics turns raw per-region enrolment records into aggregates,
// ratios, rankings, comparisons and a linear forecast.
//
// Everything in this package is pure domain logic: no I/O, no clock, no shared
// state. Calling any function twice with the same input yields identical
// output, so callers are free to memoize results.
package analytics

// Age bracket and update type keys used by the upstream dataset.
const (
	AgeBracketChild = "0-5"

	UpdateTypeAddress = "Address"
	UpdateTypeMobile  = "Mobile"
)

// RawRecord is one observation for a single region and period.
//
// Invariants (enforced by the ingestion boundary, not here):
//   - Region is non-empty
//   - every counter is >= 0
//   - Enrolment.Total >= Enrolment.ByAge["0-5"]
//
// Records are treated as immutable; no function in this package writes to one.
type RawRecord struct {
	Period     string     `json:"period"`
	Year       int        `json:"year"`
	Month      int        `json:"month"`
	Region     string     `json:"state"`
	Enrolment  Enrolment  `json:"enrolment"`
	Updates    Updates    `json:"updates"`
	Biometrics Biometrics `json:"biometrics"`
}

// Enrolment counts new enrolments, broken down by age bracket.
type Enrolment struct {
	Total int64            `json:"total"`
	ByAge map[string]int64 `json:"byAge"`
}

// Updates counts demographic updates, broken down by update type.
type Updates struct {
	Total  int64            `json:"total"`
	ByType map[string]int64 `json:"byType"`
}

// Biometrics counts in-center biometric updates.
type Biometrics struct {
	Total int64 `json:"total"`
}

// ChildEnrolments returns the 0-5 bracket, the cohort that becomes due for a
// mandatory biometric update five years later.
func (r RawRecord) ChildEnrolments() int64 {
	return r.Enrolment.ByAge[AgeBracketChild]
}

// AddressUpdates returns the address update count.
func (r RawRecord) AddressUpdates() int64 {
	return r.Updates.ByType[UpdateTypeAddress]
}

// MobileUpdates returns the mobile number update count.
func (r RawRecord) MobileUpdates() int64 {
	return r.Updates.ByType[UpdateTypeMobile]
}
