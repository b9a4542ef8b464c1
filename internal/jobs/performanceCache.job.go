package jobs

import (
	"context"

	performanceController "mantis/internal/controllers/performance"
	"mantis/internal/services"
)

// PerformanceCacheJob re-warms the current-year performance cache so the
// first dashboard request of the morning never pays the aggregation cost.
type PerformanceCacheJob struct {
	performance performanceController.PerformanceControllerInterface
}

func NewPerformanceCacheJob(
	performance performanceController.PerformanceControllerInterface,
) *PerformanceCacheJob {
	return &PerformanceCacheJob{performance: performance}
}

func (j *PerformanceCacheJob) Name() string {
	return "performance-cache-warm"
}

func (j *PerformanceCacheJob) Schedule() services.Schedule {
	return services.Nightly
}

func (j *PerformanceCacheJob) Execute(ctx context.Context) error {
	return j.performance.WarmCurrentYearCache(ctx)
}
