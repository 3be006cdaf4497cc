package scheduler

import (
	"context"
	"time"
)

// Job is a unit of dataset maintenance run on a cron schedule
// ⭐ SSOT: 스케줄 작업 인터페이스는 여기서만 정의
type Job interface {
	Name() string
	Run(ctx context.Context) error
	// Schedule has six fields with seconds ("0 0 3 * * *") or a descriptor ("@every 1h")
	Schedule() string
}

// JobResult records one run of a job, retries included
type JobResult struct {
	JobName   string        `json:"job_name"`
	StartTime time.Time     `json:"start_time"`
	EndTime   time.Time     `json:"end_time"`
	Duration  time.Duration `json:"duration"`
	Attempts  int           `json:"attempts"`
	Success   bool          `json:"success"`
	Error     string        `json:"error,omitempty"`
}

// historySize is the number of results kept per job
const historySize = 100

// runLog keeps the recent results of one job and lifetime counters.
// Callers hold Scheduler.mu.
type runLog struct {
	results   []JobResult
	successes int
	failures  int
}

func (l *runLog) record(result JobResult) {
	if result.Success {
		l.successes++
	} else {
		l.failures++
	}

	l.results = append(l.results, result)
	if len(l.results) > historySize {
		l.results = l.results[len(l.results)-historySize:]
	}
}

// last returns the newest result
func (l *runLog) last() (JobResult, bool) {
	if len(l.results) == 0 {
		return JobResult{}, false
	}
	return l.results[len(l.results)-1], true
}

// lastWith returns the newest result whose Success equals success
func (l *runLog) lastWith(success bool) (JobResult, bool) {
	for i := len(l.results) - 1; i >= 0; i-- {
		if l.results[i].Success == success {
			return l.results[i], true
		}
	}
	return JobResult{}, false
}

func (l *runLog) snapshot() []JobResult {
	out := make([]JobResult, len(l.results))
	copy(out, l.results)
	return out
}

func (l *runLog) successRate() float64 {
	total := l.successes + l.failures
	if total == 0 {
		return 0.0
	}
	return float64(l.successes) / float64(total)
}
