package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type DailyMaintenanceStatus string

const (
	DailyMaintenanceStatusPending  DailyMaintenanceStatus = "PENDING"
	DailyMaintenanceStatusApproved DailyMaintenanceStatus = "APPROVED"
	DailyMaintenanceStatusRejected DailyMaintenanceStatus = "REJECTED"
)

func (s DailyMaintenanceStatus) Valid() bool {
	switch s {
	case DailyMaintenanceStatusPending, DailyMaintenanceStatusApproved, DailyMaintenanceStatusRejected:
		return true
	}
	return false
}

// Terminal reports whether the status can never change again.
func (s DailyMaintenanceStatus) Terminal() bool {
	return s == DailyMaintenanceStatusApproved || s == DailyMaintenanceStatusRejected
}

// DailyMaintenance is one checklist submission for one machine on one calendar
// day. The unique index on (machine_id, date) is the storage backstop for the
// one-report-per-machine-per-day rule; admission control checks first, the
// index settles races.
type DailyMaintenance struct {
	BaseUUIDModel
	MachineID    string                 `gorm:"type:text;not null;uniqueIndex:idx_daily_maintenances_machine_date,priority:1" json:"machineId"`
	Date         datatypes.Date         `gorm:"not null;uniqueIndex:idx_daily_maintenances_machine_date,priority:2;index"    json:"date"`
	StudentID    uuid.UUID              `gorm:"type:uuid;not null;index"  json:"studentId"`
	StudentName  string                 `gorm:"type:text;not null"        json:"studentName"`
	ApprovedByID uuid.UUID              `gorm:"type:uuid;not null;index"  json:"approvedById"`
	Status       DailyMaintenanceStatus `gorm:"type:text;not null;default:PENDING;index" json:"status"`
	ApprovalNote *string                `gorm:"type:text"                 json:"approvalNote,omitempty"`
	ApprovedAt   *time.Time             `gorm:"type:timestamp"            json:"approvedAt,omitempty"`

	Machine    *Machine           `gorm:"foreignKey:MachineID"    json:"machine,omitempty"`
	ApprovedBy *User              `gorm:"foreignKey:ApprovedByID" json:"approvedBy,omitempty"`
	Responses  []QuestionResponse `gorm:"foreignKey:DailyMaintenanceID" json:"responses,omitempty"`
}

func (dm *DailyMaintenance) BeforeCreate(tx *gorm.DB) error {
	if dm.MachineID == "" || dm.StudentID == uuid.Nil || dm.ApprovedByID == uuid.Nil {
		return gorm.ErrInvalidValue
	}
	if dm.Status == "" {
		dm.Status = DailyMaintenanceStatusPending
	}
	return nil
}

// Day returns the submission date as a midnight time.Time in the server
// location, the form the aggregator buckets on.
func (dm *DailyMaintenance) Day() time.Time {
	t := time.Time(dm.Date)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.Local)
}

// DateOnly truncates t to its calendar day, the admission-control key.
func DateOnly(t time.Time) datatypes.Date {
	return datatypes.Date(time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location()))
}

// QuestionResponse is one answered checklist question inside a submission.
// Rows are created atomically with the parent report and are immutable.
type QuestionResponse struct {
	BaseUUIDModel
	DailyMaintenanceID uuid.UUID `gorm:"type:uuid;not null;index" json:"dailyMaintenanceId"`
	QuestionID         int       `gorm:"not null"                 json:"questionId"`
	Answer             string    `gorm:"type:text;not null"       json:"answer"`
	EvidenceURL        *string   `gorm:"type:text"                json:"evidenceUrl,omitempty"`

	Question *QuestionTemplate `gorm:"foreignKey:QuestionID" json:"question,omitempty"`
}
