package access

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"enrolsight/internal/analytics"
)

func TestParseRole(t *testing.T) {
	tests := []struct {
		in   string
		want Role
	}{
		{"Analyst", RoleAnalyst},
		{"manager", RoleManager},
		{" ADMIN ", RoleAdmin},
		{"User", RoleUser},
		{"", RoleUser},
		{"superuser", RoleUser},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseRole(tt.in))
		})
	}
}

func TestTabLabel(t *testing.T) {
	for _, tab := range Tabs() {
		assert.Equal(t, string(tab), tab.Label())
	}
	for _, raw := range []string{"settings", "", "junk-42", " Overview "} {
		tab := ParseTab(raw)
		want := string(TabOther)
		if tab == TabOverview {
			want = string(TabOverview)
		}
		assert.Equal(t, want, tab.Label(), "tab %q", raw)
	}
}

func TestPermittedViews(t *testing.T) {
	t.Run("user sees only profile on every tab", func(t *testing.T) {
		for _, tab := range append(Tabs(), "unknown", "") {
			assert.Equal(t, []View{ViewProfile}, PermittedViews(RoleUser, tab), "tab %q", tab)
		}
	})

	t.Run("manager", func(t *testing.T) {
		assert.Equal(t,
			[]View{ViewKPI, ViewEnrolmentTrend, ViewMigrationRanking, ViewDigitalReadiness},
			PermittedViews(RoleManager, TabOverview))
		assert.Equal(t,
			[]View{ViewKPI, ViewForecast, ViewEnrolmentTrend},
			PermittedViews(RoleManager, TabDemographic))
		assert.Equal(t, []View{ViewKPI}, PermittedViews(RoleManager, TabBiometric))
		assert.Equal(t, []View{ViewKPI, ViewMigrationRanking}, PermittedViews(RoleManager, TabMigration))
	})

	t.Run("manager never sees comparison or biometric gap", func(t *testing.T) {
		for _, tab := range Tabs() {
			views := PermittedViews(RoleManager, tab)
			assert.NotContains(t, views, ViewComparison)
			assert.NotContains(t, views, ViewBiometricGap)
		}
	})

	t.Run("analyst and admin match", func(t *testing.T) {
		for _, tab := range append(Tabs(), "other") {
			assert.Equal(t, PermittedViews(RoleAnalyst, tab), PermittedViews(RoleAdmin, tab))
		}
		assert.Equal(t,
			[]View{ViewKPI, ViewBiometricGap, ViewComparison},
			PermittedViews(RoleAnalyst, TabBiometric))
		assert.Equal(t,
			[]View{ViewKPI, ViewForecast, ViewMigrationRanking, ViewEnrolmentTrend, ViewComparison},
			PermittedViews(RoleAdmin, TabMigration))
	})

	t.Run("unknown tab falls back to kpi", func(t *testing.T) {
		assert.Equal(t, []View{ViewKPI}, PermittedViews(RoleManager, "settings"))
		assert.Equal(t, []View{ViewKPI}, PermittedViews(RoleAdmin, "settings"))
	})

	t.Run("unknown role is user", func(t *testing.T) {
		assert.Equal(t, []View{ViewProfile}, PermittedViews(Role("Root"), TabOverview))
	})

	t.Run("total and non-empty over role x tab", func(t *testing.T) {
		for _, role := range append(Roles(), "Root") {
			for _, tab := range append(Tabs(), "x", "") {
				assert.NotEmpty(t, PermittedViews(role, tab), "role %q tab %q", role, tab)
			}
		}
	})

	t.Run("results are copies", func(t *testing.T) {
		views := PermittedViews(RoleAnalyst, TabOverview)
		views[0] = ViewProfile
		assert.Equal(t, ViewKPI, PermittedViews(RoleAnalyst, TabOverview)[0])
	})
}

func TestParseTab(t *testing.T) {
	assert.Equal(t, TabBiometric, ParseTab(" Biometric "))
	assert.Equal(t, Tab("reports"), ParseTab("reports"))
}

func TestAllows(t *testing.T) {
	assert.True(t, Allows(RoleUser, ViewProfile))
	assert.False(t, Allows(RoleUser, ViewKPI))

	assert.True(t, Allows(RoleManager, ViewForecast))
	assert.False(t, Allows(RoleManager, ViewComparison))
	assert.False(t, Allows(RoleManager, ViewBiometricGap))
	assert.False(t, Allows(RoleManager, ViewProfile))

	assert.True(t, Allows(RoleAnalyst, ViewBiometricGap))
	assert.True(t, Allows(RoleAdmin, ViewComparison))
}

func TestGate(t *testing.T) {
	records := []analytics.RawRecord{{Region: "Bihar", Enrolment: analytics.Enrolment{Total: 5}}}

	assert.Nil(t, Gate(RoleUser, records))
	assert.Nil(t, Gate(Role("guest"), records))

	got := Gate(RoleManager, records)
	require.Len(t, got, 1)
	assert.Equal(t, records, Gate(RoleAdmin, records))

	assert.False(t, Identity{Role: RoleUser}.HasAnalytics())
	assert.True(t, Identity{Role: RoleAnalyst}.HasAnalytics())
}
