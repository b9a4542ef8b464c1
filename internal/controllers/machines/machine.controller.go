package machineController

import (
	"context"
	"errors"
	"fmt"

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

type TxExecutor interface {
	Execute(ctx context.Context, fn func(ctx context.Context, tx *gorm.DB) error) error
}

type MachineRequest struct {
	ID           string        `json:"id"                  validate:"required"`
	Name         string        `json:"name"                validate:"required"`
	CommonType   string        `json:"machineCommonType"   validate:"required"`
	SpecificType string        `json:"machineSpecificType"`
	MachineGroup string        `json:"machineGroup"`
	Section      string        `json:"section"             validate:"required"`
	Unit         string        `json:"unit"                validate:"required"`
	InventoryID  string        `json:"inventoryId"`
	Status       MachineStatus `json:"status"`
}

type ChangeStatusRequest struct {
	Status  MachineStatus `json:"status" validate:"required"`
	Comment *string       `json:"comment,omitempty"`
}

type MachineControllerInterface interface {
	List(ctx context.Context) ([]Machine, error)
	ListByCommonType(ctx context.Context, commonType string) ([]Machine, error)
	Get(ctx context.Context, id string) (*Machine, error)
	Create(ctx context.Context, request *MachineRequest) (*Machine, error)
	Update(ctx context.Context, id string, request *MachineRequest) (*Machine, error)
	Delete(ctx context.Context, id string) error
	ChangeStatus(
		ctx context.Context,
		id string,
		changedByID uuid.UUID,
		request *ChangeStatusRequest,
	) (*Machine, error)
	GetStatusLogs(ctx context.Context, id string) ([]MachineStatusLog, error)
}

type MachineController struct {
	machineRepo repositories.MachineRepository
	tx          TxExecutor
	db          database.DB
	validate    *validator.Validate
}

func New(
	repos repositories.Repository,
	tx TxExecutor,
	db database.DB,
) MachineControllerInterface {
	return &MachineController{
		machineRepo: repos.Machine,
		tx:          tx,
		db:          db,
		validate:    validation.New(),
	}
}

func (c *MachineController) List(ctx context.Context) ([]Machine, error) {
	machines, err := c.machineRepo.GetAll(ctx, c.db.SQL)
	if err != nil {
		return nil, apperrors.Persistence("failed to list machines", err)
	}
	return machines, nil
}

func (c *MachineController) ListByCommonType(
	ctx context.Context,
	commonType string,
) ([]Machine, error) {
	if commonType == "" {
		return nil, apperrors.Validation("machineCommonType is required")
	}

	machines, err := c.machineRepo.GetByCommonType(ctx, c.db.SQL, commonType)
	if err != nil {
		return nil, apperrors.Persistence("failed to list machines by type", err)
	}
	return machines, nil
}

func (c *MachineController) Get(ctx context.Context, id string) (*Machine, error) {
	if id == "" {
		return nil, apperrors.Validation("machineId is required")
	}

	machine, err := c.machineRepo.GetByID(ctx, c.db.SQL, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound(fmt.Sprintf("machine %q not found", id))
		}
		return nil, apperrors.Persistence("failed to fetch machine", err)
	}
	return machine, nil
}

func (c *MachineController) Create(
	ctx context.Context,
	request *MachineRequest,
) (*Machine, error) {
	log := logger.New("machineController").Function("Create")

	if err := c.validate.Struct(request); err != nil {
		if fields := validation.Fields(err); len(fields) > 0 {
			return nil, apperrors.MissingFields(fields)
		}
		return nil, apperrors.Validation(err.Error())
	}
	if request.Status != "" && !request.Status.Valid() {
		return nil, apperrors.Validation("status must be OPERATIONAL, MAINTENANCE or OUT_OF_SERVICE")
	}

	machine := &Machine{
		ID:           request.ID,
		Name:         request.Name,
		CommonType:   request.CommonType,
		SpecificType: request.SpecificType,
		MachineGroup: request.MachineGroup,
		Section:      request.Section,
		Unit:         request.Unit,
		InventoryID:  request.InventoryID,
		Status:       request.Status,
	}

	if err := c.machineRepo.Create(ctx, c.db.SQL, machine); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperrors.Validation(fmt.Sprintf("machine %q already exists", request.ID))
		}
		return nil, apperrors.Persistence("failed to create machine", err)
	}

	log.Info("Machine created", "machineID", machine.ID)
	return machine, nil
}

func (c *MachineController) Update(
	ctx context.Context,
	id string,
	request *MachineRequest,
) (*Machine, error) {
	if err := c.validate.Struct(request); err != nil {
		if fields := validation.Fields(err); len(fields) > 0 {
			return nil, apperrors.MissingFields(fields)
		}
		return nil, apperrors.Validation(err.Error())
	}

	machine, err := c.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	machine.Name = request.Name
	machine.CommonType = request.CommonType
	machine.SpecificType = request.SpecificType
	machine.MachineGroup = request.MachineGroup
	machine.Section = request.Section
	machine.Unit = request.Unit
	machine.InventoryID = request.InventoryID

	if err := c.machineRepo.Update(ctx, c.db.SQL, machine); err != nil {
		return nil, apperrors.Persistence("failed to update machine", err)
	}

	return machine, nil
}

func (c *MachineController) Delete(ctx context.Context, id string) error {
	if id == "" {
		return apperrors.Validation("machineId is required")
	}

	if err := c.machineRepo.Delete(ctx, c.db.SQL, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.NotFound(fmt.Sprintf("machine %q not found", id))
		}
		return apperrors.Persistence("failed to delete machine", err)
	}
	return nil
}

// ChangeStatus flips a machine's status and appends to its append-only status
// history in one transaction.
func (c *MachineController) ChangeStatus(
	ctx context.Context,
	id string,
	changedByID uuid.UUID,
	request *ChangeStatusRequest,
) (*Machine, error) {
	log := logger.New("machineController").Function("ChangeStatus")

	if id == "" {
		return nil, apperrors.Validation("machineId is required")
	}
	if changedByID == uuid.Nil {
		return nil, apperrors.Validation("changedById is required")
	}
	if !request.Status.Valid() {
		return nil, apperrors.Validation("status must be OPERATIONAL, MAINTENANCE or OUT_OF_SERVICE")
	}

	var machine *Machine
	err := c.tx.Execute(ctx, func(ctx context.Context, tx *gorm.DB) error {
		var err error
		machine, err = c.machineRepo.UpdateStatus(ctx, tx, id, request.Status, changedByID, request.Comment)
		return err
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound(fmt.Sprintf("machine %q not found", id))
		}
		return nil, apperrors.Persistence("failed to change machine status", err)
	}

	log.Info("Machine status changed", "machineID", id, "status", request.Status)
	return machine, nil
}

func (c *MachineController) GetStatusLogs(
	ctx context.Context,
	id string,
) ([]MachineStatusLog, error) {
	if id == "" {
		return nil, apperrors.Validation("machineId is required")
	}

	logs, err := c.machineRepo.GetStatusLogs(ctx, c.db.SQL, id)
	if err != nil {
		return nil, apperrors.Persistence("failed to fetch machine status logs", err)
	}
	return logs, nil
}
