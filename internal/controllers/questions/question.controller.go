package questionController

import (
	"context"
	"errors"
	"fmt"

	"mantis/internal/apperrors"
	"mantis/internal/database"
	. "mantis/internal/models"
	"mantis/internal/repositories"
	"mantis/internal/validation"

	"github.com/go-playground/validator/v10"
	"gorm.io/gorm"
)

type QuestionRequest struct {
	MachineCommonType string `json:"machineCommonType" validate:"required"`
	Order             int    `json:"order"             validate:"required,min=1"`
	Question          string `json:"question"          validate:"required"`
	IsActive          *bool  `json:"isActive,omitempty"`
}

type QuestionControllerInterface interface {
	List(ctx context.Context) ([]QuestionTemplate, error)
	ListActiveByCommonType(ctx context.Context, commonType string) ([]QuestionTemplate, error)
	Get(ctx context.Context, id int) (*QuestionTemplate, error)
	Create(ctx context.Context, request *QuestionRequest) (*QuestionTemplate, error)
	Update(ctx context.Context, id int, request *QuestionRequest) (*QuestionTemplate, error)
	Delete(ctx context.Context, id int) error
}

type QuestionController struct {
	questionRepo repositories.QuestionTemplateRepository
	db           database.DB
	validate     *validator.Validate
}

func New(repos repositories.Repository, db database.DB) QuestionControllerInterface {
	return &QuestionController{
		questionRepo: repos.QuestionTemplate,
		db:           db,
		validate:     validation.New(),
	}
}

func (c *QuestionController) List(ctx context.Context) ([]QuestionTemplate, error) {
	questions, err := c.questionRepo.GetAll(ctx, c.db.SQL)
	if err != nil {
		return nil, apperrors.Persistence("failed to list checklist questions", err)
	}
	return questions, nil
}

func (c *QuestionController) ListActiveByCommonType(
	ctx context.Context,
	commonType string,
) ([]QuestionTemplate, error) {
	if commonType == "" {
		return nil, apperrors.Validation("machineCommonType is required")
	}

	questions, err := c.questionRepo.GetActiveByCommonType(ctx, c.db.SQL, commonType)
	if err != nil {
		return nil, apperrors.Persistence("failed to list checklist questions by type", err)
	}
	return questions, nil
}

func (c *QuestionController) Get(ctx context.Context, id int) (*QuestionTemplate, error) {
	if id <= 0 {
		return nil, apperrors.Validation("question id must be positive")
	}

	question, err := c.questionRepo.GetByID(ctx, c.db.SQL, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound(fmt.Sprintf("checklist question %d not found", id))
		}
		return nil, apperrors.Persistence("failed to fetch checklist question", err)
	}
	return question, nil
}

func (c *QuestionController) Create(
	ctx context.Context,
	request *QuestionRequest,
) (*QuestionTemplate, error) {
	if err := c.validate.Struct(request); err != nil {
		if fields := validation.Fields(err); len(fields) > 0 {
			return nil, apperrors.MissingFields(fields)
		}
		return nil, apperrors.Validation(err.Error())
	}

	question := &QuestionTemplate{
		MachineCommonType: request.MachineCommonType,
		Order:             request.Order,
		Question:          request.Question,
		IsActive:          true,
	}
	if request.IsActive != nil {
		question.IsActive = *request.IsActive
	}

	if err := c.questionRepo.Create(ctx, c.db.SQL, question); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperrors.Validation(fmt.Sprintf(
				"question order %d is already taken for type %s",
				request.Order, request.MachineCommonType,
			))
		}
		return nil, apperrors.Persistence("failed to create checklist question", err)
	}

	return question, nil
}

func (c *QuestionController) Update(
	ctx context.Context,
	id int,
	request *QuestionRequest,
) (*QuestionTemplate, error) {
	if err := c.validate.Struct(request); err != nil {
		if fields := validation.Fields(err); len(fields) > 0 {
			return nil, apperrors.MissingFields(fields)
		}
		return nil, apperrors.Validation(err.Error())
	}

	question, err := c.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	question.MachineCommonType = request.MachineCommonType
	question.Order = request.Order
	question.Question = request.Question
	if request.IsActive != nil {
		question.IsActive = *request.IsActive
	}

	if err := c.questionRepo.Update(ctx, c.db.SQL, question); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperrors.Validation(fmt.Sprintf(
				"question order %d is already taken for type %s",
				request.Order, request.MachineCommonType,
			))
		}
		return nil, apperrors.Persistence("failed to update checklist question", err)
	}

	return question, nil
}

func (c *QuestionController) Delete(ctx context.Context, id int) error {
	if id <= 0 {
		return apperrors.Validation("question id must be positive")
	}

	if err := c.questionRepo.Delete(ctx, c.db.SQL, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.NotFound(fmt.Sprintf("checklist question %d not found", id))
		}
		return apperrors.Persistence("failed to delete checklist question", err)
	}
	return nil
}
