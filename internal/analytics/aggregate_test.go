package analytics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFilter(t *testing.T) {
	records := sampleRecords()

	t.Run("empty criteria is identity", func(t *testing.T) {
		got := Filter(records, Criteria{})
		assert.Equal(t, records, got)
	})

	t.Run("year keeps relative order", func(t *testing.T) {
		got := Filter(records, Criteria{Year: 2024})
		require.Len(t, got, 4)
		regions := make([]string, len(got))
		for i, r := range got {
			regions[i] = r.Region
		}
		assert.Equal(t, []string{"Maharashtra", "Karnataka", "Maharashtra", "Bihar"}, regions)
	})

	t.Run("without region keeps the period dimensions", func(t *testing.T) {
		c := Criteria{Year: 2024, Period: "2024-02-01", Region: "Bihar"}
		assert.Equal(t, Criteria{Year: 2024, Period: "2024-02-01"}, c.WithoutRegion())
		assert.Equal(t, "Bihar", c.Region, "receiver is untouched")
	})

	t.Run("four digit period matches year", func(t *testing.T) {
		assert.Equal(t, Filter(records, Criteria{Year: 2025}), Filter(records, Criteria{Period: "2025"}))
	})

	t.Run("full period matches exactly", func(t *testing.T) {
		got := Filter(records, Criteria{Period: "2024-02-01"})
		require.Len(t, got, 2)
		assert.Equal(t, "2024-02-01", got[0].Period)
		assert.Equal(t, "2024-02-01", got[1].Period)
	})

	t.Run("region and year combine", func(t *testing.T) {
		got := Filter(records, Criteria{Year: 2024, Region: "Maharashtra"})
		require.Len(t, got, 2)
		assert.Equal(t, int64(1000), got[0].Enrolment.Total)
		assert.Equal(t, int64(1100), got[1].Enrolment.Total)
	})

	t.Run("no match is empty, not an error", func(t *testing.T) {
		assert.Empty(t, Filter(records, Criteria{Region: "Atlantis"}))
	})

	t.Run("does not mutate input", func(t *testing.T) {
		before := sampleRecords()
		_ = Filter(records, Criteria{Region: "Bihar"})
		assert.Equal(t, before, records)
	})
}

func TestAggregate(t *testing.T) {
	t.Run("sums one region", func(t *testing.T) {
		records := []RawRecord{
			record("2024-01-01", "X", 100, 10, 0, 0, 0, 0),
			record("2024-02-01", "X", 150, 10, 0, 0, 0, 0),
			record("2024-03-01", "X", 50, 10, 0, 0, 0, 0),
		}
		got := Aggregate(records)
		require.Len(t, got, 1)
		assert.Equal(t, "X", got[0].Region)
		assert.Equal(t, int64(300), got[0].TotalEnrolment)
		assert.Equal(t, int64(30), got[0].ChildEnrolmentsLagged)
	})

	t.Run("first-seen region order", func(t *testing.T) {
		got := Aggregate(sampleRecords())
		require.Len(t, got, 3)
		assert.Equal(t, "Maharashtra", got[0].Region)
		assert.Equal(t, "Karnataka", got[1].Region)
		assert.Equal(t, "Bihar", got[2].Region)
	})

	t.Run("sums are exact for every field", func(t *testing.T) {
		records := sampleRecords()
		var want RegionAggregate
		for _, r := range records {
			want.TotalEnrolment += r.Enrolment.Total
			want.TotalUpdates += r.Updates.Total
			want.TotalBiometricUpdates += r.Biometrics.Total
			want.TotalAddressUpdates += r.Updates.ByType[UpdateTypeAddress]
			want.TotalMobileUpdates += r.Updates.ByType[UpdateTypeMobile]
			want.ChildEnrolmentsLagged += r.Enrolment.ByAge[AgeBracketChild]
		}

		var got RegionAggregate
		for _, a := range Aggregate(records) {
			got.TotalEnrolment += a.TotalEnrolment
			got.TotalUpdates += a.TotalUpdates
			got.TotalBiometricUpdates += a.TotalBiometricUpdates
			got.TotalAddressUpdates += a.TotalAddressUpdates
			got.TotalMobileUpdates += a.TotalMobileUpdates
			got.ChildEnrolmentsLagged += a.ChildEnrolmentsLagged
		}
		assert.Equal(t, want, got)
		assert.Equal(t, want, Total(records))
		assert.Equal(t, int64(5600), got.TotalEnrolment)
	})

	t.Run("missing breakdown keys read as zero", func(t *testing.T) {
		r := RawRecord{Region: "Y", Enrolment: Enrolment{Total: 10}, Updates: Updates{Total: 5}}
		got := Aggregate([]RawRecord{r})
		require.Len(t, got, 1)
		assert.Zero(t, got[0].TotalAddressUpdates)
		assert.Zero(t, got[0].ChildEnrolmentsLagged)
	})

	t.Run("empty input", func(t *testing.T) {
		assert.Empty(t, Aggregate(nil))
	})

	t.Run("repeatable", func(t *testing.T) {
		assert.Equal(t, Aggregate(sampleRecords()), Aggregate(sampleRecords()))
	})
}

func TestRatios(t *testing.T) {
	t.Run("zero enrolment guards migration intensity", func(t *testing.T) {
		m := Ratios(RatioInputs{TotalEnrolment: 0, TotalAddressUpdates: 50})
		assert.Zero(t, m.MigrationIntensity)
	})

	t.Run("all zero denominators", func(t *testing.T) {
		assert.Equal(t, Metrics{}, Ratios(RatioInputs{TotalAddressUpdates: 1, TotalMobileUpdates: 1, TotalBiometricUpdates: 1}))
	})

	t.Run("percentages", func(t *testing.T) {
		m := Ratios(RatioInputs{
			TotalEnrolment:        200,
			TotalUpdates:          400,
			TotalBiometricUpdates: 30,
			TotalAddressUpdates:   50,
			TotalMobileUpdates:    100,
			ChildEnrolmentsLagged: 60,
		})
		assert.InDelta(t, 50.0, m.MBUCompliance, 1e-9)
		assert.InDelta(t, 25.0, m.MigrationIntensity, 1e-9)
		assert.InDelta(t, 25.0, m.DigitalReadiness, 1e-9)
	})

	t.Run("kpi scope uses the same formula as region scope", func(t *testing.T) {
		records := Filter(sampleRecords(), Criteria{Region: "Karnataka"})
		kpi := KPIs(records)
		aggs := Aggregate(records)
		require.Len(t, aggs, 1)
		assert.Equal(t, aggs[0].Metrics(), kpi.Metrics)
		assert.Equal(t, int64(1700), kpi.TotalEnrolment)
	})

	t.Run("empty dataset", func(t *testing.T) {
		assert.Equal(t, KPISummary{}, KPIs(nil))
	})
}
