package dashboard

import (
	"time"

	"github.com/google/uuid"

	"enrolsight/internal/access"
	"enrolsight/internal/analytics"
	"enrolsight/internal/dataset"
	id "enrolsight/pkg/domain"
)

var loadedAt = time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC)

func record(period, region string, enrol, child, updates, address, mobile, bio int64) analytics.RawRecord {
	return analytics.RawRecord{
		Period: period,
		Region: region,
		Enrolment: analytics.Enrolment{
			Total: enrol,
			ByAge: map[string]int64{analytics.AgeBracketChild: child},
		},
		Updates: analytics.Updates{
			Total:  updates,
			ByType: map[string]int64{analytics.UpdateTypeAddress: address, analytics.UpdateTypeMobile: mobile},
		},
		Biometrics: analytics.Biometrics{Total: bio},
	}
}

// Region totals:
//
//	Maharashtra enrol 3300 child 630 updates 1550 address 390 mobile 930 bio 300
//	Karnataka   enrol 1700 child 310 updates  850 address 130 mobile 510 bio 290
//	Bihar       enrol  600 child 300 updates  100 address  10 mobile  40 bio  20
func testSnapshot() *dataset.Snapshot {
	snap, err := dataset.NewSnapshot([]analytics.RawRecord{
		record("2024-01-01", "Maharashtra", 1000, 200, 500, 120, 300, 90),
		record("2024-01-01", "Karnataka", 800, 150, 400, 60, 250, 140),
		record("2024-02-01", "Maharashtra", 1100, 210, 520, 130, 310, 100),
		record("2024-02-01", "Bihar", 600, 300, 100, 10, 40, 20),
		record("2025-01-01", "Karnataka", 900, 160, 450, 70, 260, 150),
		record("2025-01-01", "Maharashtra", 1200, 220, 530, 140, 320, 110),
	}, loadedAt)
	if err != nil {
		panic(err)
	}
	return snap
}

func identity(role access.Role) access.Identity {
	return access.Identity{ID: id.UserID(uuid.New()), Name: "Asha " + string(role), Role: role}
}
