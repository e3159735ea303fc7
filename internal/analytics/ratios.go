package analytics

// RatioInputs are the summed counters the ratio KPIs are derived from. The
// same inputs come from a single region or from a whole filtered dataset.
type RatioInputs struct {
	TotalEnrolment        int64
	TotalUpdates          int64
	TotalBiometricUpdates int64
	TotalAddressUpdates   int64
	TotalMobileUpdates    int64
	ChildEnrolmentsLagged int64
}

// Metrics holds the derived percentages. Each is 0 when its denominator is 0.
type Metrics struct {
	MBUCompliance      float64 `json:"mbu_compliance"`
	MigrationIntensity float64 `json:"migration_intensity"`
	DigitalReadiness   float64 `json:"digital_readiness"`
}

// KPISummary is the dataset-wide card row.
type KPISummary struct {
	TotalEnrolment int64 `json:"total_enrolment"`
	Metrics
}

// Ratios computes:
//
//	mbuCompliance      = biometric / childLagged × 100
//	migrationIntensity = address   / enrolment   × 100
//	digitalReadiness   = mobile    / updates     × 100
func Ratios(in RatioInputs) Metrics {
	return Metrics{
		MBUCompliance:      percent(in.TotalBiometricUpdates, in.ChildEnrolmentsLagged),
		MigrationIntensity: percent(in.TotalAddressUpdates, in.TotalEnrolment),
		DigitalReadiness:   percent(in.TotalMobileUpdates, in.TotalUpdates),
	}
}

// KPIs computes the KPI card values over the whole record set.
func KPIs(records []RawRecord) KPISummary {
	total := Total(records)
	return KPISummary{
		TotalEnrolment: total.TotalEnrolment,
		Metrics:        total.Metrics(),
	}
}

func percent(numerator, denominator int64) float64 {
	if denominator == 0 {
		return 0
	}
	return float64(numerator) / float64(denominator) * 100
}
