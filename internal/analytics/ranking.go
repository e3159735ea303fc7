package analytics

import (
	"slices"

	dErrors "enrolsight/pkg/domain-errors"
)

// Measure names a summed field of RegionAggregate that rankings can sort by.
type Measure string

const (
	MeasureEnrolment        Measure = "total_enrolment"
	MeasureUpdates          Measure = "total_updates"
	MeasureBiometricUpdates Measure = "total_biometric_updates"
	MeasureAddressUpdates   Measure = "total_address_updates"
	MeasureMobileUpdates    Measure = "total_mobile_updates"
	MeasureChildLagged      Measure = "child_enrolments_lagged"
)

var measureFields = map[Measure]func(RegionAggregate) int64{
	MeasureEnrolment:        func(a RegionAggregate) int64 { return a.TotalEnrolment },
	MeasureUpdates:          func(a RegionAggregate) int64 { return a.TotalUpdates },
	MeasureBiometricUpdates: func(a RegionAggregate) int64 { return a.TotalBiometricUpdates },
	MeasureAddressUpdates:   func(a RegionAggregate) int64 { return a.TotalAddressUpdates },
	MeasureMobileUpdates:    func(a RegionAggregate) int64 { return a.TotalMobileUpdates },
	MeasureChildLagged:      func(a RegionAggregate) int64 { return a.ChildEnrolmentsLagged },
}

// ParseMeasure constructs a Measure from external input.
//
// Errors: returns CodeInvalidInput when the value is empty or unsupported.
func ParseMeasure(s string) (Measure, error) {
	if s == "" {
		return "", dErrors.New(dErrors.CodeInvalidInput, "measure cannot be empty")
	}
	m := Measure(s)
	if !m.IsValid() {
		return "", dErrors.New(dErrors.CodeInvalidInput, "invalid measure")
	}
	return m, nil
}

// IsValid checks if the measure is one of the supported fields.
func (m Measure) IsValid() bool {
	_, ok := measureFields[m]
	return ok
}

// Of reads the measure from an aggregate. Unknown measures read as 0.
func (m Measure) Of(a RegionAggregate) int64 {
	if f, ok := measureFields[m]; ok {
		return f(a)
	}
	return 0
}

// TopN returns the n aggregates with the largest measure, descending. Ties
// keep their input order. n is clamped to [0, len(aggregates)]. The input
// slice is not reordered.
func TopN(aggregates []RegionAggregate, measure Measure, n int) []RegionAggregate {
	sorted := slices.Clone(aggregates)
	slices.SortStableFunc(sorted, func(a, b RegionAggregate) int {
		va, vb := measure.Of(a), measure.Of(b)
		switch {
		case va > vb:
			return -1
		case va < vb:
			return 1
		default:
			return 0
		}
	})
	n = max(0, min(n, len(sorted)))
	return sorted[:n]
}

// Gap is the aggregate with the largest minuend − subtrahend difference.
type Gap struct {
	Region    string          `json:"region"`
	Value     int64           `json:"gap"`
	Aggregate RegionAggregate `json:"aggregate"`
}

// LargestGap finds the aggregate maximizing minuend − subtrahend. The first
// aggregate wins a tie. ok is false when aggregates is empty.
func LargestGap(aggregates []RegionAggregate, minuend, subtrahend Measure) (gap Gap, ok bool) {
	for i, a := range aggregates {
		v := minuend.Of(a) - subtrahend.Of(a)
		if i == 0 || v > gap.Value {
			gap = Gap{Region: a.Region, Value: v, Aggregate: a}
		}
	}
	return gap, len(aggregates) > 0
}
