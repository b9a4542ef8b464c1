package questionController

import (
	"context"
	"testing"

	"mantis/internal/apperrors"
	"mantis/internal/database"
	. "mantis/internal/models"
	"mantis/internal/validation"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fakeQuestionRepo struct {
	questions map[int]*QuestionTemplate
	nextID    int
}

func newFakeQuestionRepo() *fakeQuestionRepo {
	return &fakeQuestionRepo{questions: make(map[int]*QuestionTemplate), nextID: 1}
}

func (f *fakeQuestionRepo) GetByID(_ context.Context, _ *gorm.DB, id int) (*QuestionTemplate, error) {
	if q, ok := f.questions[id]; ok {
		return q, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeQuestionRepo) GetAll(_ context.Context, _ *gorm.DB) ([]QuestionTemplate, error) {
	var out []QuestionTemplate
	for _, q := range f.questions {
		out = append(out, *q)
	}
	return out, nil
}

func (f *fakeQuestionRepo) GetActiveByCommonType(
	_ context.Context, _ *gorm.DB, commonType string,
) ([]QuestionTemplate, error) {
	var out []QuestionTemplate
	for _, q := range f.questions {
		if q.MachineCommonType == commonType && q.IsActive {
			out = append(out, *q)
		}
	}
	return out, nil
}

func (f *fakeQuestionRepo) Create(_ context.Context, _ *gorm.DB, template *QuestionTemplate) error {
	for _, q := range f.questions {
		if q.MachineCommonType == template.MachineCommonType && q.Order == template.Order {
			return gorm.ErrDuplicatedKey
		}
	}
	template.ID = f.nextID
	f.nextID++
	f.questions[template.ID] = template
	return nil
}

func (f *fakeQuestionRepo) Update(_ context.Context, _ *gorm.DB, template *QuestionTemplate) error {
	for _, q := range f.questions {
		if q.ID != template.ID && q.MachineCommonType == template.MachineCommonType && q.Order == template.Order {
			return gorm.ErrDuplicatedKey
		}
	}
	f.questions[template.ID] = template
	return nil
}

func (f *fakeQuestionRepo) Delete(_ context.Context, _ *gorm.DB, id int) error {
	if _, ok := f.questions[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(f.questions, id)
	return nil
}

func newTestController(repo *fakeQuestionRepo) *QuestionController {
	return &QuestionController{
		questionRepo: repo,
		db:           database.DB{},
		validate:     validation.New(),
	}
}

func TestCreate_DefaultsActive(t *testing.T) {
	controller := newTestController(newFakeQuestionRepo())

	question, err := controller.Create(context.Background(), &QuestionRequest{
		MachineCommonType: "BUBUT",
		Order:             1,
		Question:          "Apakah sistem pendingin berfungsi dengan baik?",
	})

	require.NoError(t, err)
	assert.True(t, question.IsActive)
	assert.Equal(t, 1, question.ID)
}

func TestCreate_Validation(t *testing.T) {
	controller := newTestController(newFakeQuestionRepo())

	_, err := controller.Create(context.Background(), &QuestionRequest{})
	require.Error(t, err)
	assert.True(t, apperrors.IsKind(err, apperrors.KindValidation))
	assert.Contains(t, err.Error(), "machineCommonType")
	assert.Contains(t, err.Error(), "question")
}

func TestCreate_DuplicateOrderWithinType(t *testing.T) {
	controller := newTestController(newFakeQuestionRepo())

	_, err := controller.Create(context.Background(), &QuestionRequest{
		MachineCommonType: "BUBUT", Order: 1, Question: "Q1",
	})
	require.NoError(t, err)

	_, err = controller.Create(context.Background(), &QuestionRequest{
		MachineCommonType: "BUBUT", Order: 1, Question: "Q2",
	})
	require.Error(t, err)
	assert.True(t, apperrors.IsKind(err, apperrors.KindValidation))

	// Same order under another type is fine.
	_, err = controller.Create(context.Background(), &QuestionRequest{
		MachineCommonType: "FRAIS", Order: 1, Question: "Q3",
	})
	assert.NoError(t, err)
}

func TestListActiveByCommonType_FiltersInactive(t *testing.T) {
	repo := newFakeQuestionRepo()
	controller := newTestController(repo)

	inactive := false
	_, err := controller.Create(context.Background(), &QuestionRequest{
		MachineCommonType: "BUBUT", Order: 1, Question: "Q1",
	})
	require.NoError(t, err)
	_, err = controller.Create(context.Background(), &QuestionRequest{
		MachineCommonType: "BUBUT", Order: 2, Question: "Q2", IsActive: &inactive,
	})
	require.NoError(t, err)

	questions, err := controller.ListActiveByCommonType(context.Background(), "BUBUT")
	require.NoError(t, err)
	require.Len(t, questions, 1)
	assert.Equal(t, "Q1", questions[0].Question)

	_, err = controller.ListActiveByCommonType(context.Background(), "")
	require.Error(t, err)
	assert.True(t, apperrors.IsKind(err, apperrors.KindValidation))
}

func TestUpdate_TogglesActive(t *testing.T) {
	repo := newFakeQuestionRepo()
	controller := newTestController(repo)

	created, err := controller.Create(context.Background(), &QuestionRequest{
		MachineCommonType: "BUBUT", Order: 1, Question: "Q1",
	})
	require.NoError(t, err)

	inactive := false
	updated, err := controller.Update(context.Background(), created.ID, &QuestionRequest{
		MachineCommonType: "BUBUT", Order: 1, Question: "Q1 revised", IsActive: &inactive,
	})

	require.NoError(t, err)
	assert.False(t, updated.IsActive)
	assert.Equal(t, "Q1 revised", updated.Question)
}

func TestDelete_NotFound(t *testing.T) {
	controller := newTestController(newFakeQuestionRepo())

	err := controller.Delete(context.Background(), 42)
	require.Error(t, err)
	assert.True(t, apperrors.IsKind(err, apperrors.KindNotFound))

	err = controller.Delete(context.Background(), 0)
	require.Error(t, err)
	assert.True(t, apperrors.IsKind(err, apperrors.KindValidation))
}
