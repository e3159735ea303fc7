package dashboard

import (
	"strings"

	"enrolsight/internal/access"
	"enrolsight/internal/analytics"
	"enrolsight/internal/dataset"
)

type viewInput struct {
	identity access.Identity
	snapshot *dataset.Snapshot
	records  []analytics.RawRecord
	// comparable is records without the region criterion applied.
	comparable []analytics.RawRecord
	compareA   string
	compareB   string
	top        int
}

var viewBuilders = map[access.View]func(*Dashboard, viewInput){
	access.ViewProfile: func(d *Dashboard, in viewInput) {
		d.Profile = profileOf(in.identity)
	},
	access.ViewKPI: func(d *Dashboard, in viewInput) {
		kpi := analytics.KPIs(in.records)
		d.KPI = &kpi
	},
	access.ViewEnrolmentTrend: func(d *Dashboard, in viewInput) {
		d.EnrolmentTrend = analytics.BuildSeries(in.records)
	},
	access.ViewForecast: func(d *Dashboard, in viewInput) {
		f := forecastOf(in.snapshot, in.records)
		d.Forecast = &f
	},
	access.ViewMigrationRanking: func(d *Dashboard, in viewInput) {
		d.MigrationRanking = migrationRanking(analytics.Aggregate(in.records), in.top)
	},
	access.ViewDigitalReadiness: func(d *Dashboard, in viewInput) {
		d.DigitalReadiness = readinessRanking(analytics.Aggregate(in.records), in.top)
	},
	access.ViewBiometricGap: func(d *Dashboard, in viewInput) {
		gap := biometricGap(analytics.Aggregate(in.records), in.top)
		d.BiometricGap = &gap
	},
	access.ViewComparison: func(d *Dashboard, in viewInput) {
		c := comparisonOf(in.snapshot, in.comparable, in.compareA, in.compareB)
		d.Comparison = &c
	},
}

func profileOf(identity access.Identity) *Profile {
	return &Profile{ID: identity.ID, Name: identity.Name, Role: identity.Role}
}

// forecastOf anchors unparseable periods on the snapshot load time so the
// projection never depends on when the request arrived.
func forecastOf(snap *dataset.Snapshot, records []analytics.RawRecord) analytics.ForecastResult {
	return analytics.Forecast(analytics.BuildSeries(records), analytics.WithAnchor(snap.LoadedAt))
}

func migrationRanking(aggs []analytics.RegionAggregate, top int) []MigrationRow {
	ranked := analytics.TopN(aggs, analytics.MeasureAddressUpdates, top)
	rows := make([]MigrationRow, len(ranked))
	for i, a := range ranked {
		rows[i] = MigrationRow{
			Region:             a.Region,
			AddressUpdates:     a.TotalAddressUpdates,
			Enrolment:          a.TotalEnrolment,
			MigrationIntensity: a.Metrics().MigrationIntensity,
		}
	}
	return rows
}

func readinessRanking(aggs []analytics.RegionAggregate, top int) []ReadinessRow {
	ranked := analytics.TopN(aggs, analytics.MeasureUpdates, top)
	rows := make([]ReadinessRow, len(ranked))
	for i, a := range ranked {
		rows[i] = ReadinessRow{
			Region:           a.Region,
			TotalUpdates:     a.TotalUpdates,
			MobileUpdates:    a.TotalMobileUpdates,
			AddressUpdates:   a.TotalAddressUpdates,
			BiometricUpdates: a.TotalBiometricUpdates,
			DigitalReadiness: a.Metrics().DigitalReadiness,
		}
	}
	return rows
}

func biometricGap(aggs []analytics.RegionAggregate, top int) BiometricGap {
	ranked := analytics.TopN(aggs, analytics.MeasureBiometricUpdates, top)
	out := BiometricGap{Rows: make([]BiometricRow, len(ranked))}
	for i, a := range ranked {
		out.Rows[i] = BiometricRow{
			Region:           a.Region,
			ChildLagged:      a.ChildEnrolmentsLagged,
			BiometricUpdates: a.TotalBiometricUpdates,
			Compliance:       a.Metrics().MBUCompliance,
		}
	}
	if gap, ok := analytics.LargestGap(ranked, analytics.MeasureChildLagged, analytics.MeasureBiometricUpdates); ok {
		out.Largest = &gap
	}
	return out
}

// scope gates the snapshot for role once and applies c. comparable drops the
// region criterion, which would otherwise zero out one side of a comparison.
func scope(role access.Role, snap *dataset.Snapshot, c analytics.Criteria) (records, comparable []analytics.RawRecord) {
	gated := access.Gate(role, snap.Records)
	records = analytics.Filter(gated, c)
	if strings.TrimSpace(c.Region) == "" {
		return records, records
	}
	return records, analytics.Filter(gated, c.WithoutRegion())
}

// comparisonOf defaults missing regions to the head of the sorted universe.
// records must already exclude the region criterion.
func comparisonOf(snap *dataset.Snapshot, records []analytics.RawRecord, a, b string) analytics.Comparison {
	a, b = defaultPair(snap.Regions, a, b)
	return analytics.Compare(records, a, b)
}

func defaultPair(regions []string, a, b string) (string, string) {
	pick := func(skip string) string {
		for _, r := range regions {
			if r != skip {
				return r
			}
		}
		return ""
	}
	if a == "" {
		a = pick(b)
	}
	if b == "" {
		b = pick(a)
	}
	return a, b
}
