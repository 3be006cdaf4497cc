package jobs

import (
	"context"

	"github.com/wonny/gdpdash/pkg/logger"
)

// Pruner drops expired cache entries
type Pruner interface {
	Prune() int
}

// CachePruneJob removes expired datasets from the cache
type CachePruneJob struct {
	cache  Pruner
	logger *logger.Logger
}

// NewCachePruneJob creates a new cache prune job
func NewCachePruneJob(cache Pruner, log *logger.Logger) *CachePruneJob {
	return &CachePruneJob{
		cache:  cache,
		logger: log,
	}
}

// Name returns the job name
func (j *CachePruneJob) Name() string {
	return "cache_prune"
}

// Schedule returns the cron schedule (every 15 minutes)
func (j *CachePruneJob) Schedule() string {
	return "0 */15 * * * *"
}

// Run executes the cache prune
func (j *CachePruneJob) Run(ctx context.Context) error {
	j.logger.Debug("Starting scheduled cache prune")

	count := j.cache.Prune()

	if count > 0 {
		j.logger.WithField("removed", count).Info("Cache prune completed")
	}

	return nil
}
