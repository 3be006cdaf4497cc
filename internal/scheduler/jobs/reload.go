package jobs

import (
	"context"
	"fmt"

	"github.com/wonny/gdpdash/internal/contracts"
	"github.com/wonny/gdpdash/internal/quality"
	"github.com/wonny/gdpdash/pkg/logger"
)

// DefaultReloadSchedule reloads the dataset once a day at 03:00
const DefaultReloadSchedule = "0 0 3 * * *"

// ReloadJob re-reads the dataset source and replaces the cached dataset
// ⭐ SSOT: 데이터셋 주기적 갱신은 이 Job에서만
type ReloadJob struct {
	provider contracts.DatasetProvider
	gate     *quality.Gate
	schedule string
	logger   *logger.Logger
}

// NewReloadJob creates a reload job; an empty schedule means DefaultReloadSchedule
func NewReloadJob(provider contracts.DatasetProvider, gate *quality.Gate, schedule string, log *logger.Logger) *ReloadJob {
	if schedule == "" {
		schedule = DefaultReloadSchedule
	}
	return &ReloadJob{
		provider: provider,
		gate:     gate,
		schedule: schedule,
		logger:   log,
	}
}

// Name returns the job name
func (j *ReloadJob) Name() string {
	return "dataset_reload"
}

// Schedule returns the cron schedule
func (j *ReloadJob) Schedule() string {
	return j.schedule
}

// Run reloads the dataset and logs its coverage
// 품질 미달은 경고만 (이전 데이터셋은 이미 교체됨)
func (j *ReloadJob) Run(ctx context.Context) error {
	j.logger.Info("Starting scheduled dataset reload")

	ds, err := j.provider.Reload(ctx)
	if err != nil {
		return fmt.Errorf("reload dataset: %w", err)
	}

	fields := map[string]interface{}{
		"source":       ds.Source,
		"entities":     len(ds.Entities),
		"observations": len(ds.Observations),
	}

	if j.gate != nil {
		report := j.gate.Check(ds)
		fields["coverage"] = report.Coverage
		if !report.Passed {
			j.logger.WithFields(fields).Warn("Reloaded dataset is below the coverage threshold")
			return nil
		}
	}

	j.logger.WithFields(fields).Info("Scheduled dataset reload completed successfully")
	return nil
}
