package maintenanceController

import (
	"context"
	"errors"
	"fmt"
	"time"

	"mantis/internal/apperrors"
	"mantis/internal/database"
	. "mantis/internal/models"
	"mantis/internal/repositories"
	"mantis/internal/validation"

	logger "github.com/Bparsons0904/goLogger"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// TxExecutor runs a function inside a store transaction. Satisfied by
// services.TransactionService; substituted in tests.
type TxExecutor interface {
	Execute(ctx context.Context, fn func(context.Context, *gorm.DB) error) error
}

type ResponseInput struct {
	QuestionID  int     `json:"questionId"           validate:"required"`
	Answer      string  `json:"answer"               validate:"required"`
	EvidenceURL *string `json:"evidenceUrl,omitempty"`
}

type SubmitRequest struct {
	MachineID   string          `json:"machineId"   validate:"required"`
	StudentID   uuid.UUID       `json:"studentId"   validate:"required"`
	StudentName string          `json:"studentName" validate:"required"`
	ApproverID  uuid.UUID       `json:"approverId"  validate:"required"`
	Responses   []ResponseInput `json:"responses"   validate:"required,min=1,dive"`
}

type DecideRequest struct {
	Status DailyMaintenanceStatus `json:"status" validate:"required"`
	Note   *string                `json:"note,omitempty"`
}

type MaintenanceControllerInterface interface {
	Submit(ctx context.Context, request *SubmitRequest) (*DailyMaintenance, error)
	Decide(ctx context.Context, id uuid.UUID, request *DecideRequest) (*DailyMaintenance, error)
	ListByStatus(
		ctx context.Context,
		status DailyMaintenanceStatus,
		approverID uuid.UUID,
	) ([]DailyMaintenance, error)
	GetDetail(ctx context.Context, id uuid.UUID) (*DailyMaintenance, error)
	ListByMonth(ctx context.Context, year, month int) ([]DailyMaintenance, error)
}

type MaintenanceController struct {
	maintenanceRepo repositories.MaintenanceRepository
	machineRepo     repositories.MachineRepository
	userRepo        repositories.UserRepository
	tx              TxExecutor
	db              database.DB
	validate        *validator.Validate
	// now is swappable so admission tests can pin the calendar day
	now func() time.Time
}

func New(
	repos repositories.Repository,
	tx TxExecutor,
	db database.DB,
) MaintenanceControllerInterface {
	return &MaintenanceController{
		maintenanceRepo: repos.Maintenance,
		machineRepo:     repos.Machine,
		userRepo:        repos.User,
		tx:              tx,
		db:              db,
		validate:        validation.New(),
		now:             time.Now,
	}
}

// Submit is the admission gate: one report per machine per calendar day,
// responses persisted atomically with the parent, status always PENDING.
func (c *MaintenanceController) Submit(
	ctx context.Context,
	request *SubmitRequest,
) (*DailyMaintenance, error) {
	log := logger.New("maintenanceController").Function("Submit")

	if err := c.validate.Struct(request); err != nil {
		if fields := validation.Fields(err); len(fields) > 0 {
			return nil, apperrors.MissingFields(fields)
		}
		return nil, apperrors.Validation(err.Error())
	}

	if _, err := c.machineRepo.GetByID(ctx, c.db.SQL, request.MachineID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.Validation(
				fmt.Sprintf("machine %q does not exist", request.MachineID),
			)
		}
		return nil, apperrors.Persistence("failed to look up machine", err)
	}

	if _, err := c.userRepo.GetByID(ctx, c.db.SQL, request.ApproverID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.Validation("approverId does not reference a known user")
		}
		return nil, apperrors.Persistence("failed to look up approver", err)
	}

	// Today in the server-local calendar; submissions near midnight fall on
	// whichever day the server clock says.
	today := DateOnly(c.now())

	existing, err := c.maintenanceRepo.GetByMachineAndDate(ctx, c.db.SQL, request.MachineID, today)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.Persistence("failed to check for existing report", err)
	}
	if existing != nil {
		return nil, apperrors.DuplicateSubmission(
			fmt.Sprintf("machine %q already has a maintenance report for today", request.MachineID),
		)
	}

	record := &DailyMaintenance{
		MachineID:    request.MachineID,
		Date:         today,
		StudentID:    request.StudentID,
		StudentName:  request.StudentName,
		ApprovedByID: request.ApproverID,
		Status:       DailyMaintenanceStatusPending,
	}
	for _, r := range request.Responses {
		record.Responses = append(record.Responses, QuestionResponse{
			QuestionID:  r.QuestionID,
			Answer:      r.Answer,
			EvidenceURL: r.EvidenceURL,
		})
	}

	err = c.tx.Execute(ctx, func(ctx context.Context, tx *gorm.DB) error {
		return c.maintenanceRepo.Create(ctx, tx, record)
	})
	if err != nil {
		// The unique index on (machine_id, date) settles the race two
		// concurrent submissions can win past the read check above.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperrors.DuplicateSubmission(
				fmt.Sprintf("machine %q already has a maintenance report for today", request.MachineID),
			)
		}
		return nil, apperrors.Persistence("failed to create maintenance report", err)
	}

	log.Info("Maintenance report submitted",
		"maintenanceID", record.ID,
		"machineID", record.MachineID,
		"studentID", record.StudentID,
	)

	return record, nil
}

// Decide moves a PENDING report to APPROVED or REJECTED. Both target states
// are terminal; a second decision on the same report fails and leaves the
// record untouched.
func (c *MaintenanceController) Decide(
	ctx context.Context,
	id uuid.UUID,
	request *DecideRequest,
) (*DailyMaintenance, error) {
	log := logger.New("maintenanceController").Function("Decide")

	if id == uuid.Nil {
		return nil, apperrors.Validation("maintenanceId is required")
	}
	if request.Status != DailyMaintenanceStatusApproved &&
		request.Status != DailyMaintenanceStatusRejected {
		return nil, apperrors.Validation("status must be APPROVED or REJECTED")
	}

	rows, err := c.maintenanceRepo.DecideIfPending(
		ctx, c.db.SQL, id, request.Status, request.Note, c.now(),
	)
	if err != nil {
		return nil, apperrors.Persistence("failed to decide maintenance report", err)
	}

	if rows == 0 {
		// Either the record does not exist or it already left PENDING; the
		// conditional update cannot tell, so look again.
		record, err := c.maintenanceRepo.GetByID(ctx, c.db.SQL, id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, apperrors.NotFound("maintenance report not found")
			}
			return nil, apperrors.Persistence("failed to fetch maintenance report", err)
		}
		return nil, apperrors.InvalidState(
			fmt.Sprintf("maintenance report is already %s", record.Status),
		)
	}

	record, err := c.maintenanceRepo.GetByID(ctx, c.db.SQL, id)
	if err != nil {
		return nil, apperrors.Persistence("failed to fetch decided report", err)
	}

	log.Info("Maintenance report decided",
		"maintenanceID", id,
		"status", request.Status,
	)

	return record, nil
}

func (c *MaintenanceController) ListByStatus(
	ctx context.Context,
	status DailyMaintenanceStatus,
	approverID uuid.UUID,
) ([]DailyMaintenance, error) {
	if !status.Valid() {
		return nil, apperrors.Validation("status must be PENDING, APPROVED or REJECTED")
	}

	records, err := c.maintenanceRepo.GetByStatus(ctx, c.db.SQL, status, approverID)
	if err != nil {
		return nil, apperrors.Persistence("failed to list maintenance reports", err)
	}

	return records, nil
}

func (c *MaintenanceController) GetDetail(
	ctx context.Context,
	id uuid.UUID,
) (*DailyMaintenance, error) {
	if id == uuid.Nil {
		return nil, apperrors.Validation("maintenanceId is required")
	}

	record, err := c.maintenanceRepo.GetByID(ctx, c.db.SQL, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("maintenance report not found")
		}
		return nil, apperrors.Persistence("failed to fetch maintenance report", err)
	}

	return record, nil
}

func (c *MaintenanceController) ListByMonth(
	ctx context.Context,
	year, month int,
) ([]DailyMaintenance, error) {
	if year <= 0 || month < 1 || month > 12 {
		return nil, apperrors.Validation("year and month must identify a calendar month")
	}

	from := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.Local)
	to := from.AddDate(0, 1, -1)

	records, err := c.maintenanceRepo.GetByDateRange(ctx, c.db.SQL, from, to)
	if err != nil {
		return nil, apperrors.Persistence("failed to list maintenance reports", err)
	}

	return records, nil
}
