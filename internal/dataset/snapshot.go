// Package dataset is the ingestion boundary for enrolment records. It loads
// records from a Source, rejects the ones that break record invariants and
// publishes an immutable Snapshot that request handlers read concurrently.
package dataset

import (
	"context"
	"encoding/json"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/samber/lo"

	"enrolsight/internal/analytics"
)

// Source produces the raw record set.
type Source interface {
	Load(ctx context.Context) ([]analytics.RawRecord, error)
	Name() string
}

// Snapshot is one loaded version of the dataset. It is never mutated after
// construction.
type Snapshot struct {
	Records []analytics.RawRecord
	// Version is a content fingerprint; identical record sets share it.
	Version string
	// Regions is the sorted region universe.
	Regions  []string
	LoadedAt time.Time
	Rejected []Rejection
}

// Rejection explains why an input record was dropped.
type Rejection struct {
	Index  int    `json:"index"`
	Region string `json:"region"`
	Period string `json:"period"`
	Reason string `json:"reason"`
}

// NewSnapshot validates records and fingerprints the accepted set.
func NewSnapshot(records []analytics.RawRecord, loadedAt time.Time) (*Snapshot, error) {
	accepted, rejected := Sanitize(records)
	version, err := Fingerprint(accepted)
	if err != nil {
		return nil, err
	}
	regions := slices.Clone(analytics.Regions(accepted))
	slices.Sort(regions)
	return &Snapshot{
		Records:  accepted,
		Version:  version,
		Regions:  regions,
		LoadedAt: loadedAt,
		Rejected: rejected,
	}, nil
}

// Sanitize keeps the records that satisfy the record invariants: a non-empty
// region, non-negative counters and a 0-5 bracket no larger than the total.
// Year and Month are filled from the period when the source left them zero.
// Input order is preserved and the input slice is not modified.
func Sanitize(records []analytics.RawRecord) ([]analytics.RawRecord, []Rejection) {
	accepted := make([]analytics.RawRecord, 0, len(records))
	var rejected []Rejection
	for i, r := range records {
		r.Region = strings.TrimSpace(r.Region)
		if reason := invalidReason(r); reason != "" {
			rejected = append(rejected, Rejection{Index: i, Region: r.Region, Period: r.Period, Reason: reason})
			continue
		}
		if r.Year == 0 || r.Month == 0 {
			if t, ok := analytics.ParsePeriod(r.Period); ok {
				r.Year = lo.Ternary(r.Year == 0, t.Year(), r.Year)
				r.Month = lo.Ternary(r.Month == 0, int(t.Month()), r.Month)
			}
		}
		accepted = append(accepted, r)
	}
	return accepted, rejected
}

func invalidReason(r analytics.RawRecord) string {
	switch {
	case r.Region == "":
		return "missing region"
	case r.Enrolment.Total < 0 || r.Updates.Total < 0 || r.Biometrics.Total < 0:
		return "negative total"
	case lo.SomeBy(lo.Values(r.Enrolment.ByAge), isNegative):
		return "negative age bracket"
	case lo.SomeBy(lo.Values(r.Updates.ByType), isNegative):
		return "negative update type"
	case r.ChildEnrolments() > r.Enrolment.Total:
		return "child enrolments exceed total"
	}
	return ""
}

func isNegative(v int64) bool { return v < 0 }

// Fingerprint hashes the canonical JSON encoding of records. Map keys are
// encoded in sorted order so the result is stable across loads.
func Fingerprint(records []analytics.RawRecord) (string, error) {
	b, err := json.Marshal(records)
	if err != nil {
		return "", fmt.Errorf("encode records: %w", err)
	}
	return fmt.Sprintf("%016x", xxhash.Sum64(b)), nil
}
