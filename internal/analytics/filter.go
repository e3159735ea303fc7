package analytics

import (
	"strconv"
	"strings"

	"github.com/samber/lo"
)

// Criteria narrows a record set along the period and region dimensions.
// Zero-value fields match everything.
type Criteria struct {
	// Year matches RawRecord.Year when non-zero.
	Year int
	// Period matches RawRecord.Period exactly, or RawRecord.Year when it is a
	// bare four-digit year such as "2024".
	Period string
	// Region matches RawRecord.Region exactly.
	Region string
}

// IsEmpty reports whether the criteria match every record.
func (c Criteria) IsEmpty() bool {
	return c.Year == 0 && strings.TrimSpace(c.Period) == "" && strings.TrimSpace(c.Region) == ""
}

// WithoutRegion returns c with the region dimension cleared.
func (c Criteria) WithoutRegion() Criteria {
	c.Region = ""
	return c
}

// Filter returns the records matching all criteria, preserving their relative
// order. Empty criteria return the input slice itself.
func Filter(records []RawRecord, c Criteria) []RawRecord {
	if c.IsEmpty() {
		return records
	}

	period := strings.TrimSpace(c.Period)
	region := strings.TrimSpace(c.Region)
	periodYear, periodIsYear := parseYear(period)

	return lo.Filter(records, func(r RawRecord, _ int) bool {
		if c.Year != 0 && r.Year != c.Year {
			return false
		}
		if period != "" {
			if periodIsYear {
				if r.Year != periodYear {
					return false
				}
			} else if r.Period != period {
				return false
			}
		}
		if region != "" && r.Region != region {
			return false
		}
		return true
	})
}

func parseYear(s string) (int, bool) {
	if len(s) != 4 {
		return 0, false
	}
	y, err := strconv.Atoi(s)
	if err != nil || y <= 0 {
		return 0, false
	}
	return y, true
}
