package repositories

import (
	"context"
	"errors"
	"time"

	. "mantis/internal/models"

	logger "github.com/Bparsons0904/goLogger"
	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type MaintenanceRepository interface {
	// Create persists the report and its responses in one insert; partial
	// response sets must never be observable.
	Create(ctx context.Context, tx *gorm.DB, record *DailyMaintenance) error
	GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*DailyMaintenance, error)
	GetByMachineAndDate(
		ctx context.Context,
		tx *gorm.DB,
		machineID string,
		date datatypes.Date,
	) (*DailyMaintenance, error)
	GetByStatus(
		ctx context.Context,
		tx *gorm.DB,
		status DailyMaintenanceStatus,
		approvedByID uuid.UUID,
	) ([]DailyMaintenance, error)
	GetByDateRange(ctx context.Context, tx *gorm.DB, from, to time.Time) ([]DailyMaintenance, error)
	GetByMachineAndRange(
		ctx context.Context,
		tx *gorm.DB,
		machineID string,
		from, to time.Time,
	) ([]DailyMaintenance, error)
	// DecideIfPending performs the conditional status transition and reports
	// how many rows changed; zero on an existing record means it had already
	// left PENDING.
	DecideIfPending(
		ctx context.Context,
		tx *gorm.DB,
		id uuid.UUID,
		status DailyMaintenanceStatus,
		note *string,
		decidedAt time.Time,
	) (int64, error)
}

type maintenanceRepository struct{}

func NewMaintenanceRepository() MaintenanceRepository {
	return &maintenanceRepository{}
}

func (r *maintenanceRepository) Create(
	ctx context.Context,
	tx *gorm.DB,
	record *DailyMaintenance,
) error {
	log := logger.New("maintenanceRepository").Function("Create")

	if err := tx.WithContext(ctx).Create(record).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return err
		}
		return log.Err("failed to create daily maintenance", err,
			"machineID", record.MachineID, "studentID", record.StudentID)
	}

	log.Info("Daily maintenance created",
		"maintenanceID", record.ID,
		"machineID", record.MachineID,
		"responses", len(record.Responses),
	)
	return nil
}

func (r *maintenanceRepository) GetByID(
	ctx context.Context,
	tx *gorm.DB,
	id uuid.UUID,
) (*DailyMaintenance, error) {
	log := logger.New("maintenanceRepository").Function("GetByID")

	var record DailyMaintenance
	if err := tx.WithContext(ctx).
		Preload("Machine").
		Preload("Responses", func(db *gorm.DB) *gorm.DB {
			return db.Order("question_responses.created_at ASC")
		}).
		Preload("Responses.Question").
		First(&record, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		return nil, log.Err("failed to get daily maintenance", err, "maintenanceID", id)
	}

	return &record, nil
}

func (r *maintenanceRepository) GetByMachineAndDate(
	ctx context.Context,
	tx *gorm.DB,
	machineID string,
	date datatypes.Date,
) (*DailyMaintenance, error) {
	log := logger.New("maintenanceRepository").Function("GetByMachineAndDate")

	var record DailyMaintenance
	if err := tx.WithContext(ctx).
		Where("machine_id = ? AND date = ?", machineID, date).
		First(&record).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		return nil, log.Err("failed to get daily maintenance by machine and date", err,
			"machineID", machineID)
	}

	return &record, nil
}

func (r *maintenanceRepository) GetByStatus(
	ctx context.Context,
	tx *gorm.DB,
	status DailyMaintenanceStatus,
	approvedByID uuid.UUID,
) ([]DailyMaintenance, error) {
	log := logger.New("maintenanceRepository").Function("GetByStatus")

	query := tx.WithContext(ctx).Where("status = ?", status)
	if approvedByID != uuid.Nil {
		query = query.Where("approved_by_id = ?", approvedByID)
	}

	var records []DailyMaintenance
	if err := query.
		Preload("Machine").
		Order("date DESC").
		Find(&records).Error; err != nil {
		return nil, log.Err("failed to get daily maintenances by status", err, "status", status)
	}

	return records, nil
}

func (r *maintenanceRepository) GetByDateRange(
	ctx context.Context,
	tx *gorm.DB,
	from, to time.Time,
) ([]DailyMaintenance, error) {
	log := logger.New("maintenanceRepository").Function("GetByDateRange")

	var records []DailyMaintenance
	if err := tx.WithContext(ctx).
		Where("date >= ? AND date <= ?", DateOnly(from), DateOnly(to)).
		Preload("Machine").
		Order("date ASC").
		Find(&records).Error; err != nil {
		return nil, log.Err("failed to get daily maintenances by date range", err)
	}

	return records, nil
}

func (r *maintenanceRepository) GetByMachineAndRange(
	ctx context.Context,
	tx *gorm.DB,
	machineID string,
	from, to time.Time,
) ([]DailyMaintenance, error) {
	log := logger.New("maintenanceRepository").Function("GetByMachineAndRange")

	var records []DailyMaintenance
	if err := tx.WithContext(ctx).
		Where("machine_id = ? AND date >= ? AND date <= ?", machineID, DateOnly(from), DateOnly(to)).
		Preload("Responses", func(db *gorm.DB) *gorm.DB {
			return db.Order("question_responses.created_at ASC")
		}).
		Order("date ASC").
		Find(&records).Error; err != nil {
		return nil, log.Err("failed to get daily maintenances by machine and range", err,
			"machineID", machineID)
	}

	return records, nil
}

func (r *maintenanceRepository) DecideIfPending(
	ctx context.Context,
	tx *gorm.DB,
	id uuid.UUID,
	status DailyMaintenanceStatus,
	note *string,
	decidedAt time.Time,
) (int64, error) {
	log := logger.New("maintenanceRepository").Function("DecideIfPending")

	updates := map[string]any{
		"status":      status,
		"approved_at": decidedAt,
	}
	if note != nil {
		updates["approval_note"] = *note
	}

	result := tx.WithContext(ctx).
		Model(&DailyMaintenance{}).
		Where("id = ? AND status = ?", id, DailyMaintenanceStatusPending).
		Updates(updates)
	if result.Error != nil {
		return 0, log.Err("failed to decide daily maintenance", result.Error,
			"maintenanceID", id, "status", status)
	}

	return result.RowsAffected, nil
}
