package analytics

import "slices"

// TimeSeriesPoint is the summed enrolment for one period. Index is the
// 0-based chronological rank of the period within its series.
type TimeSeriesPoint struct {
	Period string `json:"period"`
	Label  string `json:"label"`
	Index  int    `json:"index"`
	Actual int64  `json:"actual"`
}

// BuildSeries groups records by period and sums their enrolment totals.
// Points are sorted by raw period string, which is chronological for ISO-like
// keys. A key that does not parse as a date keeps itself as its label.
// Records without a period have no bucket and are skipped.
func BuildSeries(records []RawRecord) []TimeSeriesPoint {
	totals := make(map[string]int64)
	periods := make([]string, 0)
	for _, r := range records {
		if r.Period == "" {
			continue
		}
		if _, seen := totals[r.Period]; !seen {
			periods = append(periods, r.Period)
		}
		totals[r.Period] += r.Enrolment.Total
	}

	slices.Sort(periods)

	series := make([]TimeSeriesPoint, len(periods))
	for i, p := range periods {
		series[i] = TimeSeriesPoint{
			Period: p,
			Label:  PeriodLabel(p),
			Index:  i,
			Actual: totals[p],
		}
	}
	return series
}
