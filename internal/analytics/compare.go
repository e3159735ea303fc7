package analytics

import "github.com/samber/lo"

// RegionStats is one side of a two-region comparison.
type RegionStats struct {
	Region     string  `json:"region"`
	Enrolment  int64   `json:"enrolment"`
	Updates    int64   `json:"updates"`
	Compliance float64 `json:"compliance"`
	Saturation float64 `json:"saturation"`
}

// Comparison holds parallel stats for two regions.
type Comparison struct {
	A RegionStats `json:"a"`
	B RegionStats `json:"b"`
}

// Compare computes stats for regionA and regionB from the same record set.
// Compliance is the MBU ratio; saturation is updates / enrolment × 100.
// A region with no records gets all-zero stats.
func Compare(records []RawRecord, regionA, regionB string) Comparison {
	return Comparison{
		A: regionStats(records, regionA),
		B: regionStats(records, regionB),
	}
}

func regionStats(records []RawRecord, region string) RegionStats {
	matching := lo.Filter(records, func(r RawRecord, _ int) bool {
		return r.Region == region
	})
	total := Total(matching)
	return RegionStats{
		Region:     region,
		Enrolment:  total.TotalEnrolment,
		Updates:    total.TotalUpdates,
		Compliance: total.Metrics().MBUCompliance,
		Saturation: percent(total.TotalUpdates, total.TotalEnrolment),
	}
}

// Regions returns the region universe of a record set in first-seen order.
func Regions(records []RawRecord) []string {
	return lo.Uniq(lo.Map(records, func(r RawRecord, _ int) string {
		return r.Region
	}))
}
