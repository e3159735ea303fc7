package analytics

// RegionAggregate is the per-region sum of every counter in a record set.
// It has no identity of its own and is recomputed on every query.
type RegionAggregate struct {
	Region                string `json:"region"`
	TotalEnrolment        int64  `json:"total_enrolment"`
	TotalUpdates          int64  `json:"total_updates"`
	TotalBiometricUpdates int64  `json:"total_biometric_updates"`
	TotalAddressUpdates   int64  `json:"total_address_updates"`
	TotalMobileUpdates    int64  `json:"total_mobile_updates"`
	ChildEnrolmentsLagged int64  `json:"child_enrolments_lagged"`
}

// Metrics derives the ratio KPIs for this region.
func (a RegionAggregate) Metrics() Metrics {
	return Ratios(RatioInputs{
		TotalEnrolment:        a.TotalEnrolment,
		TotalUpdates:          a.TotalUpdates,
		TotalBiometricUpdates: a.TotalBiometricUpdates,
		TotalAddressUpdates:   a.TotalAddressUpdates,
		TotalMobileUpdates:    a.TotalMobileUpdates,
		ChildEnrolmentsLagged: a.ChildEnrolmentsLagged,
	})
}

func (a *RegionAggregate) add(r RawRecord) {
	a.TotalEnrolment += r.Enrolment.Total
	a.TotalUpdates += r.Updates.Total
	a.TotalBiometricUpdates += r.Biometrics.Total
	a.TotalAddressUpdates += r.AddressUpdates()
	a.TotalMobileUpdates += r.MobileUpdates()
	a.ChildEnrolmentsLagged += r.ChildEnrolments()
}

// Aggregate groups records by region and sums their counters. Regions appear
// in first-seen order; a region absent from the input produces no row.
func Aggregate(records []RawRecord) []RegionAggregate {
	if len(records) == 0 {
		return []RegionAggregate{}
	}

	index := make(map[string]int)
	out := make([]RegionAggregate, 0)
	for _, r := range records {
		i, ok := index[r.Region]
		if !ok {
			i = len(out)
			index[r.Region] = i
			out = append(out, RegionAggregate{Region: r.Region})
		}
		out[i].add(r)
	}
	return out
}

// Total sums every record into a single aggregate with an empty region. It is
// the dataset-wide scope used for KPI cards.
func Total(records []RawRecord) RegionAggregate {
	var total RegionAggregate
	for _, r := range records {
		total.add(r)
	}
	return total
}
