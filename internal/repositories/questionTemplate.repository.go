package repositories

import (
	"context"
	"errors"

	. "mantis/internal/models"

	logger "github.com/Bparsons0904/goLogger"
	"gorm.io/gorm"
)

type QuestionTemplateRepository interface {
	GetByID(ctx context.Context, tx *gorm.DB, id int) (*QuestionTemplate, error)
	GetAll(ctx context.Context, tx *gorm.DB) ([]QuestionTemplate, error)
	GetActiveByCommonType(ctx context.Context, tx *gorm.DB, commonType string) ([]QuestionTemplate, error)
	Create(ctx context.Context, tx *gorm.DB, template *QuestionTemplate) error
	Update(ctx context.Context, tx *gorm.DB, template *QuestionTemplate) error
	Delete(ctx context.Context, tx *gorm.DB, id int) error
}

type questionTemplateRepository struct{}

func NewQuestionTemplateRepository() QuestionTemplateRepository {
	return &questionTemplateRepository{}
}

func (r *questionTemplateRepository) GetByID(
	ctx context.Context,
	tx *gorm.DB,
	id int,
) (*QuestionTemplate, error) {
	log := logger.New("questionTemplateRepository").Function("GetByID")

	var template QuestionTemplate
	if err := tx.WithContext(ctx).First(&template, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		return nil, log.Err("failed to get question template", err, "templateID", id)
	}

	return &template, nil
}

func (r *questionTemplateRepository) GetAll(
	ctx context.Context,
	tx *gorm.DB,
) ([]QuestionTemplate, error) {
	log := logger.New("questionTemplateRepository").Function("GetAll")

	var templates []QuestionTemplate
	if err := tx.WithContext(ctx).
		Order("machine_common_type ASC, display_order ASC").
		Find(&templates).Error; err != nil {
		return nil, log.Err("failed to get question templates", err)
	}

	return templates, nil
}

// GetActiveByCommonType returns the checklist used for new report generation:
// active templates only, in display order.
func (r *questionTemplateRepository) GetActiveByCommonType(
	ctx context.Context,
	tx *gorm.DB,
	commonType string,
) ([]QuestionTemplate, error) {
	log := logger.New("questionTemplateRepository").Function("GetActiveByCommonType")

	var templates []QuestionTemplate
	if err := tx.WithContext(ctx).
		Where("machine_common_type = ? AND is_active = ?", commonType, true).
		Order("display_order ASC").
		Find(&templates).Error; err != nil {
		return nil, log.Err("failed to get templates by common type", err, "commonType", commonType)
	}

	return templates, nil
}

func (r *questionTemplateRepository) Create(
	ctx context.Context,
	tx *gorm.DB,
	template *QuestionTemplate,
) error {
	log := logger.New("questionTemplateRepository").Function("Create")

	if err := tx.WithContext(ctx).Create(template).Error; err != nil {
		return log.Err("failed to create question template", err,
			"commonType", template.MachineCommonType, "order", template.Order)
	}

	log.Info("Question template created", "templateID", template.ID, "commonType", template.MachineCommonType)
	return nil
}

func (r *questionTemplateRepository) Update(
	ctx context.Context,
	tx *gorm.DB,
	template *QuestionTemplate,
) error {
	log := logger.New("questionTemplateRepository").Function("Update")

	if err := tx.WithContext(ctx).Save(template).Error; err != nil {
		return log.Err("failed to update question template", err, "templateID", template.ID)
	}

	return nil
}

func (r *questionTemplateRepository) Delete(ctx context.Context, tx *gorm.DB, id int) error {
	log := logger.New("questionTemplateRepository").Function("Delete")

	result := tx.WithContext(ctx).Delete(&QuestionTemplate{}, "id = ?", id)
	if result.Error != nil {
		return log.Err("failed to delete question template", result.Error, "templateID", id)
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}
