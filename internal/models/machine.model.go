package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type MachineStatus string

const (
	MachineStatusOperational  MachineStatus = "OPERATIONAL"
	MachineStatusMaintenance  MachineStatus = "MAINTENANCE"
	MachineStatusOutOfService MachineStatus = "OUT_OF_SERVICE"
)

func (s MachineStatus) Valid() bool {
	switch s {
	case MachineStatusOperational, MachineStatusMaintenance, MachineStatusOutOfService:
		return true
	}
	return false
}

// Machine keeps the workshop inventory code ("B1", "F2") as its primary key so
// reports and checklists stay readable without a join.
type Machine struct {
	ID           string         `gorm:"type:text;primaryKey"                  json:"id"`
	CreatedAt    time.Time      `gorm:"autoCreateTime"                        json:"createdAt"`
	UpdatedAt    time.Time      `gorm:"autoUpdateTime"                        json:"updatedAt"`
	DeletedAt    gorm.DeletedAt `                                             json:"deletedAt,omitempty"`
	Name         string         `gorm:"type:text;not null"                    json:"name"         validate:"required"`
	CommonType   string         `gorm:"column:machine_common_type;type:text;not null;index" json:"machineCommonType" validate:"required"`
	SpecificType string         `gorm:"column:machine_specific_type;type:text"              json:"machineSpecificType"`
	MachineGroup string         `gorm:"type:text"                             json:"machineGroup"`
	Section      string         `gorm:"type:text;not null;index"              json:"section"      validate:"required"`
	Unit         string         `gorm:"type:text;not null;index"              json:"unit"         validate:"required"`
	InventoryID  string         `gorm:"type:text"                             json:"inventoryId"`
	Status       MachineStatus  `gorm:"type:text;not null;default:OPERATIONAL" json:"status"`

	StatusLogs []MachineStatusLog `gorm:"foreignKey:MachineID" json:"statusLogs,omitempty"`
}

func (m *Machine) BeforeCreate(tx *gorm.DB) error {
	if m.Status == "" {
		m.Status = MachineStatusOperational
	}
	if !m.Status.Valid() {
		return gorm.ErrInvalidValue
	}
	return nil
}

// MachineStatusLog is append-only history. Rows are created whenever a machine
// changes status and are never updated or deleted afterwards.
type MachineStatusLog struct {
	ID          uuid.UUID     `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	CreatedAt   time.Time     `gorm:"autoCreateTime"                                 json:"createdAt"`
	MachineID   string        `gorm:"type:text;not null;index"                       json:"machineId"`
	ChangedByID uuid.UUID     `gorm:"type:uuid;not null"                             json:"changedById"`
	OldStatus   MachineStatus `gorm:"type:text;not null"                             json:"oldStatus"`
	NewStatus   MachineStatus `gorm:"type:text;not null"                             json:"newStatus"`
	Comment     *string       `gorm:"type:text"                                      json:"comment,omitempty"`

	Machine   *Machine `gorm:"foreignKey:MachineID"   json:"machine,omitempty"`
	ChangedBy *User    `gorm:"foreignKey:ChangedByID" json:"changedBy,omitempty"`
}
