package analytics

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCompare(t *testing.T) {
	t.Run("parallel stats", func(t *testing.T) {
		got := Compare(sampleRecords(), "Maharashtra", "Bihar")

		assert.Equal(t, "Maharashtra", got.A.Region)
		assert.Equal(t, int64(3300), got.A.Enrolment)
		assert.Equal(t, int64(1550), got.A.Updates)
		assert.InDelta(t, 300.0/630.0*100, got.A.Compliance, 1e-9)
		assert.InDelta(t, 1550.0/3300.0*100, got.A.Saturation, 1e-9)

		assert.Equal(t, "Bihar", got.B.Region)
		assert.Equal(t, int64(600), got.B.Enrolment)
		assert.InDelta(t, 20.0/300.0*100, got.B.Compliance, 1e-9)
		assert.InDelta(t, 100.0/600.0*100, got.B.Saturation, 1e-9)
	})

	t.Run("unknown region is all zeros", func(t *testing.T) {
		got := Compare(sampleRecords(), "Atlantis", "Karnataka")
		assert.Equal(t, RegionStats{Region: "Atlantis"}, got.A)
		assert.Equal(t, int64(1700), got.B.Enrolment)
	})

	t.Run("same region on both sides", func(t *testing.T) {
		got := Compare(sampleRecords(), "Bihar", "Bihar")
		assert.Equal(t, got.A, got.B)
	})
}

func TestRegions(t *testing.T) {
	assert.Equal(t, []string{"Maharashtra", "Karnataka", "Bihar"}, Regions(sampleRecords()))
	assert.Empty(t, Regions(nil))
}
