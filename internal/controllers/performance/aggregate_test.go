package performanceController

import (
	"testing"
	"time"

	. "mantis/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(year int, month time.Month, d int) time.Time {
	return time.Date(year, month, d, 0, 0, 0, 0, time.Local)
}

func report(machineID string, on time.Time) DailyMaintenance {
	return DailyMaintenance{
		BaseUUIDModel: BaseUUIDModel{ID: uuid.New()},
		MachineID:     machineID,
		Date:          DateOnly(on),
		Status:        DailyMaintenanceStatusPending,
	}
}

func rosterBubut() []Machine {
	return []Machine{
		{ID: "B1", Name: "Bubut 1", CommonType: "BUBUT", Section: "Bubut Dasar", Unit: "WBS"},
		{ID: "B2", Name: "Bubut 2", CommonType: "BUBUT", Section: "Bubut Dasar", Unit: "WBS"},
	}
}

func TestModeFor(t *testing.T) {
	tests := []struct {
		name string
		from time.Time
		to   time.Time
		want BucketMode
	}{
		{"single day", day(2025, 5, 1), day(2025, 5, 1), BucketModeDaily},
		{"one week", day(2025, 5, 1), day(2025, 5, 7), BucketModeDaily},
		{"89 days", day(2025, 1, 1), day(2025, 3, 31), BucketModeDaily},
		{"exactly 90 days", day(2025, 1, 1), day(2025, 4, 1), BucketModeMonthly},
		{"full year", day(2025, 1, 1), day(2025, 12, 31), BucketModeMonthly},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, modeFor(tt.from, tt.to))
		})
	}
}

func TestDailyBuckets_SkipsWeekends(t *testing.T) {
	// Mon 2025-05-05 through Sun 2025-05-11: five weekdays.
	buckets := dailyBuckets(day(2025, 5, 5), day(2025, 5, 11))

	require.Len(t, buckets, 5)
	assert.Equal(t, "2025-05-05", buckets[0].Key)
	assert.Equal(t, "05 May 2025", buckets[0].Label)
	assert.Equal(t, "2025-05-09", buckets[4].Key)
}

func TestMonthlyBuckets_KeysAndLabels(t *testing.T) {
	buckets := monthlyBuckets(day(2025, 4, 15), day(2025, 6, 2))

	require.Len(t, buckets, 3)
	assert.Equal(t, "2025-4", buckets[0].Key)
	assert.Equal(t, "April 2025", buckets[0].Label)
	assert.Equal(t, "2025-5", buckets[1].Key)
	assert.Equal(t, "2025-6", buckets[2].Key)
	assert.Equal(t, "June 2025", buckets[2].Label)
}

func TestFormatPercentage(t *testing.T) {
	assert.Equal(t, "0.00%", formatPercentage(5, 0))
	assert.Equal(t, "0.00%", formatPercentage(0, 4))
	assert.Equal(t, "50.00%", formatPercentage(1, 2))
	assert.Equal(t, "100.00%", formatPercentage(2, 2))
	assert.Equal(t, "33.33%", formatPercentage(1, 3))
	assert.Equal(t, "66.67%", formatPercentage(2, 3))
}

func TestAggregate_DailySectionUnitScenario(t *testing.T) {
	// Two machines in Bubut Dasar/WBS over Mon-Wed. Both report Tuesday,
	// nobody reports Monday or Wednesday.
	machines := rosterBubut()
	records := []DailyMaintenance{
		report("B1", day(2025, 5, 6)),
		report("B2", day(2025, 5, 6)),
	}

	rows := aggregate(machines, records, GroupBySectionUnit, day(2025, 5, 5), day(2025, 5, 7))

	require.Len(t, rows, 3)
	assert.Equal(t, "05 May 2025", rows[0].DataLabel)
	assert.Equal(t, "0.00%", rows[0].Percentage)
	assert.Equal(t, 0, rows[0].ReportedDays)
	assert.Equal(t, 2, rows[0].TotalWorkingDays)

	assert.Equal(t, "06 May 2025", rows[1].DataLabel)
	assert.Equal(t, "100.00%", rows[1].Percentage)
	assert.Equal(t, 2, rows[1].ReportedDays)
	assert.Equal(t, "Bubut Dasar", rows[1].Section)
	assert.Equal(t, "WBS", rows[1].Unit)

	assert.Equal(t, "07 May 2025", rows[2].DataLabel)
	assert.Equal(t, "0.00%", rows[2].Percentage)
}

func TestAggregate_DeduplicatesMachineWithinBucket(t *testing.T) {
	// Two rows from the same machine on the same day count once.
	machines := rosterBubut()
	records := []DailyMaintenance{
		report("B1", day(2025, 5, 6)),
		report("B1", day(2025, 5, 6)),
	}

	rows := aggregate(machines, records, GroupBySectionUnit, day(2025, 5, 6), day(2025, 5, 6))

	require.Len(t, rows, 1)
	assert.Equal(t, 1, rows[0].ReportedDays)
	assert.Equal(t, "50.00%", rows[0].Percentage)
}

func TestAggregate_IgnoresOffRosterAndOutOfRange(t *testing.T) {
	machines := rosterBubut()
	records := []DailyMaintenance{
		report("GHOST", day(2025, 5, 6)),
		report("B1", day(2025, 4, 30)),
		report("B1", day(2025, 5, 8)),
	}

	rows := aggregate(machines, records, GroupBySectionUnit, day(2025, 5, 5), day(2025, 5, 7))

	require.Len(t, rows, 3)
	for _, row := range rows {
		assert.Equal(t, 0, row.ReportedDays)
	}
}

func TestAggregate_WeekendSubmissionsDroppedInDailyMode(t *testing.T) {
	machines := rosterBubut()
	records := []DailyMaintenance{
		report("B1", day(2025, 5, 10)), // Saturday
	}

	rows := aggregate(machines, records, GroupBySectionUnit, day(2025, 5, 9), day(2025, 5, 12))

	// Fri and Mon only; the Saturday submission lands nowhere.
	require.Len(t, rows, 2)
	assert.Equal(t, 0, rows[0].ReportedDays)
	assert.Equal(t, 0, rows[1].ReportedDays)
}

func TestAggregate_MonthlyDenominatorUses22WorkingDays(t *testing.T) {
	machines := rosterBubut()
	var records []DailyMaintenance
	// B1 reports 11 distinct weekdays in May.
	for d := 1; d <= 15; d++ {
		on := day(2025, 5, d)
		if !isWeekend(on) {
			records = append(records, report("B1", on))
		}
	}

	rows := aggregate(machines, records, GroupBySectionUnit, day(2025, 3, 1), day(2025, 6, 30))

	// Four monthly buckets, one group.
	require.Len(t, rows, 4)
	may := rows[2]
	assert.Equal(t, "May 2025", may.DataLabel)
	assert.Equal(t, 2*workingDaysPerMonth, may.TotalWorkingDays)
	assert.Equal(t, 11, may.ReportedDays)
	assert.Equal(t, "25.00%", may.Percentage)
}

func TestAggregate_MonthlyNumeratorAccumulatesDaysPerMachine(t *testing.T) {
	// One machine reporting many days in a month contributes every one of
	// those days, not a single count for the month. Duplicate rows on the
	// same day still collapse to one.
	machines := []Machine{
		{ID: "B1", Name: "Bubut 1", Section: "Bubut Dasar", Unit: "WBS"},
	}
	var records []DailyMaintenance
	for d := 1; d <= 15; d++ {
		on := day(2025, 5, d)
		if !isWeekend(on) {
			records = append(records, report("B1", on))
			records = append(records, report("B1", on))
		}
	}

	rows := aggregate(machines, records, GroupBySectionUnit, day(2025, 3, 1), day(2025, 6, 30))

	require.Len(t, rows, 4)
	may := rows[2]
	assert.Equal(t, "May 2025", may.DataLabel)
	assert.Equal(t, 11, may.ReportedDays)
	assert.Equal(t, workingDaysPerMonth, may.TotalWorkingDays)
	assert.Equal(t, "50.00%", may.Percentage)
}

func TestAggregate_MonthlyDedupIsPerMachinePerDay(t *testing.T) {
	machines := rosterBubut()
	records := []DailyMaintenance{
		report("B1", day(2025, 5, 6)),
		report("B2", day(2025, 5, 6)),
	}

	rows := aggregate(machines, records, GroupBySectionUnit, day(2025, 3, 1), day(2025, 6, 30))

	may := rows[2]
	assert.Equal(t, "May 2025", may.DataLabel)
	assert.Equal(t, 2, may.ReportedDays)
}

func TestAggregate_GroupByMachineEmitsMachineFields(t *testing.T) {
	machines := []Machine{
		{ID: "B1", Name: "Bubut 1", Section: "Bubut Dasar", Unit: "WBS"},
		{ID: "F1", Name: "Frais 1", Section: "Frais Dasar", Unit: "WBS"},
	}
	records := []DailyMaintenance{
		report("F1", day(2025, 5, 6)),
	}

	rows := aggregate(machines, records, GroupByMachine, day(2025, 5, 6), day(2025, 5, 6))

	require.Len(t, rows, 2)
	// Group keys sort alphabetically within a bucket.
	assert.Equal(t, "B1", rows[0].MachineID)
	assert.Equal(t, "Bubut 1", rows[0].MachineName)
	assert.Equal(t, "0.00%", rows[0].Percentage)
	assert.Equal(t, "F1", rows[1].MachineID)
	assert.Equal(t, "100.00%", rows[1].Percentage)
	assert.Equal(t, 1, rows[1].TotalWorkingDays)
}

func TestAggregate_GroupByUnitMergesSections(t *testing.T) {
	machines := []Machine{
		{ID: "B1", Section: "Bubut Dasar", Unit: "WBS"},
		{ID: "F1", Section: "Frais Dasar", Unit: "WBS"},
	}
	records := []DailyMaintenance{
		report("B1", day(2025, 5, 6)),
	}

	rows := aggregate(machines, records, GroupByUnit, day(2025, 5, 6), day(2025, 5, 6))

	require.Len(t, rows, 1)
	assert.Equal(t, "WBS", rows[0].Unit)
	assert.Equal(t, 1, rows[0].ReportedDays)
	assert.Equal(t, 2, rows[0].TotalWorkingDays)
	assert.Equal(t, "50.00%", rows[0].Percentage)
}

func TestAggregate_EmptyRosterProducesZeroDenominators(t *testing.T) {
	rows := aggregate(nil, nil, GroupBySectionUnit, day(2025, 5, 6), day(2025, 5, 6))
	assert.Empty(t, rows)
}
