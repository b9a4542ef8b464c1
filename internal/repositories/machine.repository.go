package repositories

import (
	"context"
	"errors"

	. "mantis/internal/models"

	logger "github.com/Bparsons0904/goLogger"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type MachineRepository interface {
	GetByID(ctx context.Context, tx *gorm.DB, id string) (*Machine, error)
	GetAll(ctx context.Context, tx *gorm.DB) ([]Machine, error)
	GetByCommonType(ctx context.Context, tx *gorm.DB, commonType string) ([]Machine, error)
	Create(ctx context.Context, tx *gorm.DB, machine *Machine) error
	Update(ctx context.Context, tx *gorm.DB, machine *Machine) error
	Delete(ctx context.Context, tx *gorm.DB, id string) error
	UpdateStatus(
		ctx context.Context,
		tx *gorm.DB,
		machineID string,
		newStatus MachineStatus,
		changedByID uuid.UUID,
		comment *string,
	) (*Machine, error)
	GetStatusLogs(ctx context.Context, tx *gorm.DB, machineID string) ([]MachineStatusLog, error)
}

type machineRepository struct{}

func NewMachineRepository() MachineRepository {
	return &machineRepository{}
}

func (r *machineRepository) GetByID(ctx context.Context, tx *gorm.DB, id string) (*Machine, error) {
	log := logger.New("machineRepository").Function("GetByID")

	var machine Machine
	if err := tx.WithContext(ctx).First(&machine, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		return nil, log.Err("failed to get machine", err, "machineID", id)
	}

	return &machine, nil
}

func (r *machineRepository) GetAll(ctx context.Context, tx *gorm.DB) ([]Machine, error) {
	log := logger.New("machineRepository").Function("GetAll")

	var machines []Machine
	if err := tx.WithContext(ctx).Order("id ASC").Find(&machines).Error; err != nil {
		return nil, log.Err("failed to get machines", err)
	}

	return machines, nil
}

func (r *machineRepository) GetByCommonType(
	ctx context.Context,
	tx *gorm.DB,
	commonType string,
) ([]Machine, error) {
	log := logger.New("machineRepository").Function("GetByCommonType")

	var machines []Machine
	if err := tx.WithContext(ctx).
		Where("machine_common_type = ?", commonType).
		Order("id ASC").
		Find(&machines).Error; err != nil {
		return nil, log.Err("failed to get machines by common type", err, "commonType", commonType)
	}

	return machines, nil
}

func (r *machineRepository) Create(ctx context.Context, tx *gorm.DB, machine *Machine) error {
	log := logger.New("machineRepository").Function("Create")

	if err := tx.WithContext(ctx).Create(machine).Error; err != nil {
		return log.Err("failed to create machine", err, "machineID", machine.ID)
	}

	log.Info("Machine created", "machineID", machine.ID, "section", machine.Section, "unit", machine.Unit)
	return nil
}

func (r *machineRepository) Update(ctx context.Context, tx *gorm.DB, machine *Machine) error {
	log := logger.New("machineRepository").Function("Update")

	if err := tx.WithContext(ctx).Save(machine).Error; err != nil {
		return log.Err("failed to update machine", err, "machineID", machine.ID)
	}

	return nil
}

func (r *machineRepository) Delete(ctx context.Context, tx *gorm.DB, id string) error {
	log := logger.New("machineRepository").Function("Delete")

	result := tx.WithContext(ctx).Delete(&Machine{}, "id = ?", id)
	if result.Error != nil {
		return log.Err("failed to delete machine", result.Error, "machineID", id)
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}

// UpdateStatus flips the machine status and appends the status-log row in the
// same transaction; the log is append-only history and must never go missing.
func (r *machineRepository) UpdateStatus(
	ctx context.Context,
	tx *gorm.DB,
	machineID string,
	newStatus MachineStatus,
	changedByID uuid.UUID,
	comment *string,
) (*Machine, error) {
	log := logger.New("machineRepository").Function("UpdateStatus")

	machine, err := r.GetByID(ctx, tx, machineID)
	if err != nil {
		return nil, err
	}

	statusLog := MachineStatusLog{
		MachineID:   machineID,
		ChangedByID: changedByID,
		OldStatus:   machine.Status,
		NewStatus:   newStatus,
		Comment:     comment,
	}
	if err := tx.WithContext(ctx).Create(&statusLog).Error; err != nil {
		return nil, log.Err("failed to create machine status log", err, "machineID", machineID)
	}

	if err := tx.WithContext(ctx).
		Model(&Machine{}).
		Where("id = ?", machineID).
		Update("status", newStatus).Error; err != nil {
		return nil, log.Err("failed to update machine status", err, "machineID", machineID)
	}

	machine.Status = newStatus
	log.Info("Machine status updated", "machineID", machineID, "oldStatus", statusLog.OldStatus, "newStatus", newStatus)
	return machine, nil
}

func (r *machineRepository) GetStatusLogs(
	ctx context.Context,
	tx *gorm.DB,
	machineID string,
) ([]MachineStatusLog, error) {
	log := logger.New("machineRepository").Function("GetStatusLogs")

	var logs []MachineStatusLog
	if err := tx.WithContext(ctx).
		Where("machine_id = ?", machineID).
		Order("created_at ASC").
		Find(&logs).Error; err != nil {
		return nil, log.Err("failed to get machine status logs", err, "machineID", machineID)
	}

	return logs, nil
}
