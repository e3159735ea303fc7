package analytics

import "time"

// record builds a RawRecord with the counters the aggregation pipeline reads.
func record(period, region string, enrol, child, updates, address, mobile, bio int64) RawRecord {
	var year, month int
	if t, ok := ParsePeriod(period); ok {
		year, month = t.Year(), int(t.Month())
	}
	return RawRecord{
		Period: period,
		Year:   year,
		Month:  month,
		Region: region,
		Enrolment: Enrolment{
			Total: enrol,
			ByAge: map[string]int64{AgeBracketChild: child, "5-17": enrol - child},
		},
		Updates: Updates{
			Total:  updates,
			ByType: map[string]int64{UpdateTypeAddress: address, UpdateTypeMobile: mobile},
		},
		Biometrics: Biometrics{Total: bio},
	}
}

func sampleRecords() []RawRecord {
	return []RawRecord{
		record("2024-01-01", "Maharashtra", 1000, 200, 500, 120, 300, 90),
		record("2024-01-01", "Karnataka", 800, 150, 400, 60, 250, 140),
		record("2024-02-01", "Maharashtra", 1100, 210, 520, 130, 310, 100),
		record("2024-02-01", "Bihar", 600, 300, 100, 10, 40, 20),
		record("2025-01-01", "Karnataka", 900, 160, 450, 70, 260, 150),
		record("2025-01-01", "Maharashtra", 1200, 220, 530, 140, 320, 110),
	}
}

func seriesOf(values ...int64) []TimeSeriesPoint {
	out := make([]TimeSeriesPoint, len(values))
	for i, v := range values {
		period := addMonths(mustPeriod("2024-01-01"), i).Format(periodLayout)
		out[i] = TimeSeriesPoint{Period: period, Label: PeriodLabel(period), Index: i, Actual: v}
	}
	return out
}

func mustPeriod(s string) time.Time {
	parsed, ok := ParsePeriod(s)
	if !ok {
		panic("bad fixture period " + s)
	}
	return parsed
}
