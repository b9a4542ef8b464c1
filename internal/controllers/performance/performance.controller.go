package performanceController

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"mantis/internal/apperrors"
	"mantis/internal/database"
	. "mantis/internal/models"
	"mantis/internal/repositories"

	logger "github.com/Bparsons0904/goLogger"
	"gorm.io/gorm"
)

const (
	performanceCacheTTL  = 26 * time.Hour
	unitCacheKey         = "unit"
	sectionCacheKey      = "section"
	performanceCacheHash = "performance:year"
)

// YearGroupPerformance is the no-bucket, current-year aggregate: one number
// per unit or section. Its denominator counts the actual distinct submission
// dates seen in the group's records, unlike the bucketed monthly mode's fixed
// 22-working-day assumption. The two denominators are intentionally different
// operations.
type YearGroupPerformance struct {
	Key          string `json:"key"`
	MachineCount int    `json:"machineCount"`
	Performance  string `json:"performance"`
}

type RecapCell struct {
	QuestionID         int  `json:"questionId"`
	StudentSubmitted   bool `json:"studentSubmitted"`
	InstructorApproved bool `json:"instructorApproved"`
}

type RecapDate struct {
	Date        string      `json:"date"`
	PerQuestion []RecapCell `json:"perQuestion"`
}

// YearlyRecap is a per-date, per-question audit matrix for one machine, not a
// percentage report.
type YearlyRecap struct {
	Machine   *Machine           `json:"machine"`
	Questions []QuestionTemplate `json:"questions"`
	Dates     []RecapDate        `json:"perDate"`
}

type PerformanceControllerInterface interface {
	GetPerformanceSummary(ctx context.Context, from, to string) ([]SummaryRow, error)
	GetMachinePerformance(ctx context.Context, from, to string) ([]SummaryRow, error)
	GetSectionPerformanceRange(ctx context.Context, from, to string) ([]SummaryRow, error)
	GetUnitPerformanceRange(ctx context.Context, from, to string) ([]SummaryRow, error)
	GetUnitPerformance(ctx context.Context) ([]YearGroupPerformance, error)
	GetSectionPerformance(ctx context.Context) ([]YearGroupPerformance, error)
	GetYearlyRecap(ctx context.Context, machineID string, year int) (*YearlyRecap, error)
	WarmCurrentYearCache(ctx context.Context) error
}

type PerformanceController struct {
	machineRepo     repositories.MachineRepository
	maintenanceRepo repositories.MaintenanceRepository
	questionRepo    repositories.QuestionTemplateRepository
	db              database.DB
	cache           database.CacheClient
	now             func() time.Time
}

func New(repos repositories.Repository, db database.DB) PerformanceControllerInterface {
	return &PerformanceController{
		machineRepo:     repos.Machine,
		maintenanceRepo: repos.Maintenance,
		questionRepo:    repos.QuestionTemplate,
		db:              db,
		cache:           db.Cache.Performance,
		now:             time.Now,
	}
}

func parseDateRange(from, to string) (time.Time, time.Time, error) {
	if from == "" || to == "" {
		return time.Time{}, time.Time{}, apperrors.Validation("from and to dates are required")
	}

	fromDate, err := time.ParseInLocation("2006-01-02", from, time.Local)
	if err != nil {
		return time.Time{}, time.Time{}, apperrors.Validation("from must be a date in YYYY-MM-DD form")
	}
	toDate, err := time.ParseInLocation("2006-01-02", to, time.Local)
	if err != nil {
		return time.Time{}, time.Time{}, apperrors.Validation("to must be a date in YYYY-MM-DD form")
	}
	if toDate.Before(fromDate) {
		return time.Time{}, time.Time{}, apperrors.Validation("to must not be before from")
	}

	return fromDate, toDate, nil
}

func (c *PerformanceController) summarize(
	ctx context.Context,
	from, to string,
	group GroupFunc,
) ([]SummaryRow, error) {
	fromDate, toDate, err := parseDateRange(from, to)
	if err != nil {
		return nil, err
	}

	machines, err := c.machineRepo.GetAll(ctx, c.db.SQL)
	if err != nil {
		return nil, apperrors.Persistence("failed to load machine roster", err)
	}

	records, err := c.maintenanceRepo.GetByDateRange(ctx, c.db.SQL, fromDate, toDate)
	if err != nil {
		return nil, apperrors.Persistence("failed to load maintenance reports", err)
	}

	return aggregate(machines, records, group, fromDate, toDate), nil
}

// GetPerformanceSummary is the main report: completion rate per (section,
// unit) pair per time bucket.
func (c *PerformanceController) GetPerformanceSummary(
	ctx context.Context,
	from, to string,
) ([]SummaryRow, error) {
	return c.summarize(ctx, from, to, GroupBySectionUnit)
}

func (c *PerformanceController) GetMachinePerformance(
	ctx context.Context,
	from, to string,
) ([]SummaryRow, error) {
	return c.summarize(ctx, from, to, GroupByMachine)
}

func (c *PerformanceController) GetSectionPerformanceRange(
	ctx context.Context,
	from, to string,
) ([]SummaryRow, error) {
	return c.summarize(ctx, from, to, GroupBySection)
}

func (c *PerformanceController) GetUnitPerformanceRange(
	ctx context.Context,
	from, to string,
) ([]SummaryRow, error) {
	return c.summarize(ctx, from, to, GroupByUnit)
}

type yearGroup struct {
	machineCount int
	days         map[string]struct{}
	machineDays  map[string]struct{}
}

// yearPerformance computes the current-year aggregate per group key. The
// denominator is machineCount multiplied by the distinct dates on which the
// group saw any submission this year.
func (c *PerformanceController) yearPerformance(
	ctx context.Context,
	group GroupFunc,
	cacheKey string,
	skipCacheRead bool,
) ([]YearGroupPerformance, error) {
	log := logger.New("performanceController").Function("yearPerformance")

	year := c.now().Year()
	hash := fmt.Sprintf("%s:%d", performanceCacheHash, year)

	if c.cache != nil && !skipCacheRead {
		var cached []YearGroupPerformance
		found, err := database.NewCacheBuilder(c.cache, cacheKey).
			WithContext(ctx).
			WithHash(hash).
			Get(&cached)
		if err != nil {
			log.Warn("failed to read performance cache", "key", cacheKey, "error", err)
		}
		if found {
			return cached, nil
		}
	}

	from := time.Date(year, time.January, 1, 0, 0, 0, 0, time.Local)
	to := time.Date(year, time.December, 31, 0, 0, 0, 0, time.Local)

	machines, err := c.machineRepo.GetAll(ctx, c.db.SQL)
	if err != nil {
		return nil, apperrors.Persistence("failed to load machine roster", err)
	}

	records, err := c.maintenanceRepo.GetByDateRange(ctx, c.db.SQL, from, to)
	if err != nil {
		return nil, apperrors.Persistence("failed to load maintenance reports", err)
	}

	groups := make(map[string]*yearGroup)
	machineGroup := make(map[string]string, len(machines))
	var order []string
	for _, m := range machines {
		key := group(m).Key
		if _, ok := groups[key]; !ok {
			groups[key] = &yearGroup{
				days:        make(map[string]struct{}),
				machineDays: make(map[string]struct{}),
			}
			order = append(order, key)
		}
		groups[key].machineCount++
		machineGroup[m.ID] = key
	}
	sort.Strings(order)

	for _, rec := range records {
		key, ok := machineGroup[rec.MachineID]
		if !ok {
			continue
		}
		day := rec.Day().Format("2006-01-02")
		groups[key].days[day] = struct{}{}
		groups[key].machineDays[rec.MachineID+"|"+day] = struct{}{}
	}

	results := make([]YearGroupPerformance, 0, len(order))
	for _, key := range order {
		g := groups[key]
		expected := g.machineCount * len(g.days)
		results = append(results, YearGroupPerformance{
			Key:          key,
			MachineCount: g.machineCount,
			Performance:  formatPercentage(len(g.machineDays), expected),
		})
	}

	if c.cache != nil {
		err := database.NewCacheBuilder(c.cache, cacheKey).
			WithContext(ctx).
			WithHash(hash).
			WithStruct(results).
			WithTTL(performanceCacheTTL).
			Set()
		if err != nil {
			log.Warn("failed to write performance cache", "key", cacheKey, "error", err)
		}
	}

	return results, nil
}

func (c *PerformanceController) GetUnitPerformance(
	ctx context.Context,
) ([]YearGroupPerformance, error) {
	return c.yearPerformance(ctx, GroupByUnit, unitCacheKey, false)
}

func (c *PerformanceController) GetSectionPerformance(
	ctx context.Context,
) ([]YearGroupPerformance, error) {
	return c.yearPerformance(ctx, GroupBySection, sectionCacheKey, false)
}

// WarmCurrentYearCache recomputes both current-year aggregates, bypassing the
// cached values. The nightly scheduler job calls this.
func (c *PerformanceController) WarmCurrentYearCache(ctx context.Context) error {
	log := logger.New("performanceController").Function("WarmCurrentYearCache")

	if _, err := c.yearPerformance(ctx, GroupByUnit, unitCacheKey, true); err != nil {
		return log.Err("failed to warm unit performance cache", err)
	}
	if _, err := c.yearPerformance(ctx, GroupBySection, sectionCacheKey, true); err != nil {
		return log.Err("failed to warm section performance cache", err)
	}

	log.Info("Current-year performance cache warmed")
	return nil
}

// GetYearlyRecap cross-references one machine's submissions for a year with
// the active checklist of its common type.
func (c *PerformanceController) GetYearlyRecap(
	ctx context.Context,
	machineID string,
	year int,
) (*YearlyRecap, error) {
	if machineID == "" {
		return nil, apperrors.Validation("machineId is required")
	}
	if year <= 0 {
		return nil, apperrors.Validation("year must be a positive calendar year")
	}

	machine, err := c.machineRepo.GetByID(ctx, c.db.SQL, machineID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound(fmt.Sprintf("machine %q not found", machineID))
		}
		return nil, apperrors.Persistence("failed to load machine", err)
	}

	questions, err := c.questionRepo.GetActiveByCommonType(ctx, c.db.SQL, machine.CommonType)
	if err != nil {
		return nil, apperrors.Persistence("failed to load question templates", err)
	}

	from := time.Date(year, time.January, 1, 0, 0, 0, 0, time.Local)
	to := time.Date(year, time.December, 31, 0, 0, 0, 0, time.Local)

	records, err := c.maintenanceRepo.GetByMachineAndRange(ctx, c.db.SQL, machineID, from, to)
	if err != nil {
		return nil, apperrors.Persistence("failed to load maintenance reports", err)
	}

	recap := &YearlyRecap{
		Machine:   machine,
		Questions: questions,
		Dates:     make([]RecapDate, 0, len(records)),
	}

	for _, rec := range records {
		answered := make(map[int]struct{}, len(rec.Responses))
		for _, resp := range rec.Responses {
			answered[resp.QuestionID] = struct{}{}
		}
		approved := rec.Status == DailyMaintenanceStatusApproved

		cells := make([]RecapCell, 0, len(questions))
		for _, q := range questions {
			_, submitted := answered[q.ID]
			cells = append(cells, RecapCell{
				QuestionID:         q.ID,
				StudentSubmitted:   submitted,
				InstructorApproved: approved,
			})
		}

		recap.Dates = append(recap.Dates, RecapDate{
			Date:        rec.Day().Format("2006-01-02"),
			PerQuestion: cells,
		})
	}

	return recap, nil
}
