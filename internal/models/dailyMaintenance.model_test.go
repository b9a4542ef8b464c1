package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDateOnlyTruncates(t *testing.T) {
	late := time.Date(2025, time.May, 5, 23, 59, 59, 0, time.Local)
	early := time.Date(2025, time.May, 5, 0, 0, 1, 0, time.Local)

	assert.Equal(t, time.Time(DateOnly(late)), time.Time(DateOnly(early)))

	nextDay := time.Date(2025, time.May, 6, 0, 0, 0, 0, time.Local)
	assert.NotEqual(t, time.Time(DateOnly(late)), time.Time(DateOnly(nextDay)))
}

func TestDayMidnight(t *testing.T) {
	dm := DailyMaintenance{Date: DateOnly(time.Date(2025, time.May, 5, 14, 30, 0, 0, time.Local))}

	day := dm.Day()
	assert.Equal(t, 2025, day.Year())
	assert.Equal(t, time.May, day.Month())
	assert.Equal(t, 5, day.Day())
	assert.Equal(t, 0, day.Hour())
}

func TestStatusTerminal(t *testing.T) {
	assert.False(t, DailyMaintenanceStatusPending.Terminal())
	assert.True(t, DailyMaintenanceStatusApproved.Terminal())
	assert.True(t, DailyMaintenanceStatusRejected.Terminal())
}

func TestStatusValid(t *testing.T) {
	assert.True(t, DailyMaintenanceStatusPending.Valid())
	assert.False(t, DailyMaintenanceStatus("DONE").Valid())
}

func TestMachineStatusValid(t *testing.T) {
	assert.True(t, MachineStatusOperational.Valid())
	assert.True(t, MachineStatusMaintenance.Valid())
	assert.True(t, MachineStatusOutOfService.Valid())
	assert.False(t, MachineStatus("BROKEN").Valid())
}
