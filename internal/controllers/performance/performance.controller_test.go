package performanceController

import (
	"context"
	"testing"
	"time"

	"mantis/internal/apperrors"
	"mantis/internal/database"
	. "mantis/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type stubMachineRepo struct {
	machines []Machine
}

func (s *stubMachineRepo) GetByID(_ context.Context, _ *gorm.DB, id string) (*Machine, error) {
	for i := range s.machines {
		if s.machines[i].ID == id {
			return &s.machines[i], nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *stubMachineRepo) GetAll(_ context.Context, _ *gorm.DB) ([]Machine, error) {
	return s.machines, nil
}

func (s *stubMachineRepo) GetByCommonType(_ context.Context, _ *gorm.DB, commonType string) ([]Machine, error) {
	var out []Machine
	for _, m := range s.machines {
		if m.CommonType == commonType {
			out = append(out, m)
		}
	}
	return out, nil
}
func (s *stubMachineRepo) Create(_ context.Context, _ *gorm.DB, _ *Machine) error { return nil }
func (s *stubMachineRepo) Update(_ context.Context, _ *gorm.DB, _ *Machine) error { return nil }
func (s *stubMachineRepo) Delete(_ context.Context, _ *gorm.DB, _ string) error   { return nil }
func (s *stubMachineRepo) UpdateStatus(
	_ context.Context, _ *gorm.DB, _ string, _ MachineStatus, _ uuid.UUID, _ *string,
) (*Machine, error) {
	return nil, nil
}

func (s *stubMachineRepo) GetStatusLogs(_ context.Context, _ *gorm.DB, _ string) ([]MachineStatusLog, error) {
	return nil, nil
}

type stubMaintenanceRepo struct {
	records []DailyMaintenance
}

func (s *stubMaintenanceRepo) Create(_ context.Context, _ *gorm.DB, _ *DailyMaintenance) error {
	return nil
}

func (s *stubMaintenanceRepo) GetByID(_ context.Context, _ *gorm.DB, _ uuid.UUID) (*DailyMaintenance, error) {
	return nil, gorm.ErrRecordNotFound
}

func (s *stubMaintenanceRepo) GetByMachineAndDate(
	_ context.Context, _ *gorm.DB, _ string, _ datatypes.Date,
) (*DailyMaintenance, error) {
	return nil, gorm.ErrRecordNotFound
}

func (s *stubMaintenanceRepo) GetByStatus(
	_ context.Context, _ *gorm.DB, _ DailyMaintenanceStatus, _ uuid.UUID,
) ([]DailyMaintenance, error) {
	return nil, nil
}

func (s *stubMaintenanceRepo) GetByDateRange(
	_ context.Context, _ *gorm.DB, from, to time.Time,
) ([]DailyMaintenance, error) {
	var out []DailyMaintenance
	for _, r := range s.records {
		d := r.Day()
		if !d.Before(from) && !d.After(to) {
			out = append(out, r)
		}
	}
	return out, nil
}

func (s *stubMaintenanceRepo) GetByMachineAndRange(
	_ context.Context, _ *gorm.DB, machineID string, from, to time.Time,
) ([]DailyMaintenance, error) {
	var out []DailyMaintenance
	for _, r := range s.records {
		if r.MachineID != machineID {
			continue
		}
		d := r.Day()
		if !d.Before(from) && !d.After(to) {
			out = append(out, r)
		}
	}
	return out, nil
}

func (s *stubMaintenanceRepo) DecideIfPending(
	_ context.Context, _ *gorm.DB, _ uuid.UUID, _ DailyMaintenanceStatus, _ *string, _ time.Time,
) (int64, error) {
	return 0, nil
}

type stubQuestionRepo struct {
	questions []QuestionTemplate
}

func (s *stubQuestionRepo) GetByID(_ context.Context, _ *gorm.DB, _ int) (*QuestionTemplate, error) {
	return nil, gorm.ErrRecordNotFound
}

func (s *stubQuestionRepo) GetAll(_ context.Context, _ *gorm.DB) ([]QuestionTemplate, error) {
	return s.questions, nil
}

func (s *stubQuestionRepo) GetActiveByCommonType(
	_ context.Context, _ *gorm.DB, commonType string,
) ([]QuestionTemplate, error) {
	var out []QuestionTemplate
	for _, q := range s.questions {
		if q.MachineCommonType == commonType && q.IsActive {
			out = append(out, q)
		}
	}
	return out, nil
}
func (s *stubQuestionRepo) Create(_ context.Context, _ *gorm.DB, _ *QuestionTemplate) error { return nil }
func (s *stubQuestionRepo) Update(_ context.Context, _ *gorm.DB, _ *QuestionTemplate) error { return nil }
func (s *stubQuestionRepo) Delete(_ context.Context, _ *gorm.DB, _ int) error               { return nil }

func newPerfController(
	machines *stubMachineRepo,
	maintenance *stubMaintenanceRepo,
	questions *stubQuestionRepo,
	now time.Time,
) *PerformanceController {
	return &PerformanceController{
		machineRepo:     machines,
		maintenanceRepo: maintenance,
		questionRepo:    questions,
		db:              database.DB{},
		cache:           nil,
		now:             func() time.Time { return now },
	}
}

func TestGetPerformanceSummary_ValidatesRange(t *testing.T) {
	controller := newPerfController(&stubMachineRepo{}, &stubMaintenanceRepo{}, &stubQuestionRepo{}, time.Now())

	tests := []struct {
		name string
		from string
		to   string
	}{
		{"missing from", "", "2025-05-07"},
		{"missing to", "2025-05-05", ""},
		{"malformed from", "05/05/2025", "2025-05-07"},
		{"to before from", "2025-05-07", "2025-05-05"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := controller.GetPerformanceSummary(context.Background(), tt.from, tt.to)
			require.Error(t, err)
			assert.True(t, apperrors.IsKind(err, apperrors.KindValidation))
		})
	}
}

func TestGetPerformanceSummary_EndToEnd(t *testing.T) {
	machines := &stubMachineRepo{machines: []Machine{
		{ID: "B1", Name: "Bubut 1", Section: "Bubut Dasar", Unit: "WBS"},
		{ID: "B2", Name: "Bubut 2", Section: "Bubut Dasar", Unit: "WBS"},
	}}
	maintenance := &stubMaintenanceRepo{records: []DailyMaintenance{
		report("B1", day(2025, 5, 6)),
		report("B2", day(2025, 5, 6)),
	}}
	controller := newPerfController(machines, maintenance, &stubQuestionRepo{}, time.Now())

	rows, err := controller.GetPerformanceSummary(context.Background(), "2025-05-05", "2025-05-07")

	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "0.00%", rows[0].Percentage)
	assert.Equal(t, "100.00%", rows[1].Percentage)
	assert.Equal(t, "0.00%", rows[2].Percentage)
}

func TestYearPerformance_DenominatorUsesDistinctDates(t *testing.T) {
	machines := &stubMachineRepo{machines: []Machine{
		{ID: "B1", Section: "Bubut Dasar", Unit: "WBS"},
		{ID: "B2", Section: "Bubut Dasar", Unit: "WBS"},
	}}
	// Two distinct submission dates. B1 reports both, B2 reports one:
	// 3 machine-days out of 2 machines x 2 dates.
	maintenance := &stubMaintenanceRepo{records: []DailyMaintenance{
		report("B1", day(2025, 5, 6)),
		report("B1", day(2025, 5, 7)),
		report("B2", day(2025, 5, 6)),
	}}
	now := day(2025, 6, 1)
	controller := newPerfController(machines, maintenance, &stubQuestionRepo{}, now)

	results, err := controller.GetUnitPerformance(context.Background())

	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "WBS", results[0].Key)
	assert.Equal(t, 2, results[0].MachineCount)
	assert.Equal(t, "75.00%", results[0].Performance)
}

func TestYearPerformance_NoSubmissionsIsZeroPercent(t *testing.T) {
	machines := &stubMachineRepo{machines: []Machine{
		{ID: "B1", Section: "Bubut Dasar", Unit: "WBS"},
	}}
	controller := newPerfController(machines, &stubMaintenanceRepo{}, &stubQuestionRepo{}, day(2025, 6, 1))

	results, err := controller.GetSectionPerformance(context.Background())

	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "Bubut Dasar", results[0].Key)
	assert.Equal(t, "0.00%", results[0].Performance)
}

func TestYearPerformance_IgnoresOtherYears(t *testing.T) {
	machines := &stubMachineRepo{machines: []Machine{
		{ID: "B1", Section: "Bubut Dasar", Unit: "WBS"},
	}}
	maintenance := &stubMaintenanceRepo{records: []DailyMaintenance{
		report("B1", day(2024, 12, 30)),
	}}
	controller := newPerfController(machines, maintenance, &stubQuestionRepo{}, day(2025, 6, 1))

	results, err := controller.GetUnitPerformance(context.Background())

	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "0.00%", results[0].Performance)
}

func TestGetYearlyRecap_Matrix(t *testing.T) {
	machines := &stubMachineRepo{machines: []Machine{
		{ID: "B1", Name: "Bubut 1", CommonType: "BUBUT", Section: "Bubut Dasar", Unit: "WBS"},
	}}
	questions := &stubQuestionRepo{questions: []QuestionTemplate{
		{BaseModel: BaseModel{ID: 1}, MachineCommonType: "BUBUT", Order: 1, Question: "Q1", IsActive: true},
		{BaseModel: BaseModel{ID: 2}, MachineCommonType: "BUBUT", Order: 2, Question: "Q2", IsActive: true},
	}}

	approvedRecord := report("B1", day(2025, 5, 6))
	approvedRecord.Status = DailyMaintenanceStatusApproved
	approvedRecord.Responses = []QuestionResponse{
		{QuestionID: 1, Answer: "Ya"},
	}
	pendingRecord := report("B1", day(2025, 5, 7))
	pendingRecord.Responses = []QuestionResponse{
		{QuestionID: 1, Answer: "Ya"},
		{QuestionID: 2, Answer: "Tidak"},
	}
	maintenance := &stubMaintenanceRepo{records: []DailyMaintenance{approvedRecord, pendingRecord}}

	controller := newPerfController(machines, maintenance, questions, time.Now())
	recap, err := controller.GetYearlyRecap(context.Background(), "B1", 2025)

	require.NoError(t, err)
	require.NotNil(t, recap)
	assert.Equal(t, "B1", recap.Machine.ID)
	require.Len(t, recap.Questions, 2)
	require.Len(t, recap.Dates, 2)

	first := recap.Dates[0]
	assert.Equal(t, "2025-05-06", first.Date)
	require.Len(t, first.PerQuestion, 2)
	assert.True(t, first.PerQuestion[0].StudentSubmitted)
	assert.True(t, first.PerQuestion[0].InstructorApproved)
	assert.False(t, first.PerQuestion[1].StudentSubmitted)

	second := recap.Dates[1]
	assert.Equal(t, "2025-05-07", second.Date)
	assert.True(t, second.PerQuestion[0].StudentSubmitted)
	assert.False(t, second.PerQuestion[0].InstructorApproved)
	assert.True(t, second.PerQuestion[1].StudentSubmitted)
}

func TestGetYearlyRecap_UnknownMachine(t *testing.T) {
	controller := newPerfController(&stubMachineRepo{}, &stubMaintenanceRepo{}, &stubQuestionRepo{}, time.Now())

	_, err := controller.GetYearlyRecap(context.Background(), "Z9", 2025)

	require.Error(t, err)
	assert.True(t, apperrors.IsKind(err, apperrors.KindNotFound))
}

func TestGetYearlyRecap_Validation(t *testing.T) {
	controller := newPerfController(&stubMachineRepo{}, &stubMaintenanceRepo{}, &stubQuestionRepo{}, time.Now())

	_, err := controller.GetYearlyRecap(context.Background(), "", 2025)
	assert.True(t, apperrors.IsKind(err, apperrors.KindValidation))

	_, err = controller.GetYearlyRecap(context.Background(), "B1", 0)
	assert.True(t, apperrors.IsKind(err, apperrors.KindValidation))
}
