package schedule

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/xxxsen/common/logutil"
	"go.uber.org/zap"
)

// Job is a store maintenance task, such as sweeping stale chat
// sessions. Run receives the scheduler's base context and should
// return once the sweep is finished.
type Job interface {
	Name() string
	Run(ctx context.Context) error
}

type Scheduler interface {
	AddJob(job Job, expr string) error
	Start(ctx context.Context)
	Stop()
}

type jobEntry struct {
	job     Job
	expr    string
	running atomic.Bool
	runs    atomic.Int64
}

// CronScheduler runs maintenance jobs on five-field cron expressions.
// Ticks that arrive while the previous run is still going are dropped,
// so a slow sqlite sweep never stacks on itself.
type CronScheduler struct {
	cron *cron.Cron
	ctx  context.Context
}

func NewCronScheduler() *CronScheduler {
	parser := cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow)
	return &CronScheduler{cron: cron.New(cron.WithParser(parser))}
}

func (c *CronScheduler) AddJob(job Job, expr string) error {
	entry := &jobEntry{job: job, expr: expr}
	logger := logutil.GetLogger(context.Background()).With(
		zap.String("job", job.Name()), zap.String("cron", expr))
	if _, err := c.cron.AddFunc(expr, func() { c.runEntry(entry) }); err != nil {
		logger.Error("schedule maintenance job failed", zap.Error(err))
		return err
	}
	logger.Info("maintenance job scheduled")
	return nil
}

func (c *CronScheduler) Start(ctx context.Context) {
	if ctx == nil {
		ctx = context.Background()
	}
	c.ctx = ctx
	c.cron.Start()
}

// Stop halts the ticker and waits for in-flight jobs to return.
func (c *CronScheduler) Stop() {
	done := c.cron.Stop()
	<-done.Done()
}

func (c *CronScheduler) runEntry(e *jobEntry) {
	ctx := c.ctx
	if ctx == nil {
		ctx = context.Background()
	}
	logger := logutil.GetLogger(ctx).With(
		zap.String("job", e.job.Name()), zap.String("cron", e.expr))
	if !e.running.CompareAndSwap(false, true) {
		logger.Warn("maintenance job still running, tick dropped")
		return
	}
	defer e.running.Store(false)

	logger = logger.With(zap.Int64("run", e.runs.Add(1)))
	start := time.Now()
	if err := e.job.Run(ctx); err != nil {
		logger.Error("maintenance job failed",
			zap.Error(err), zap.Duration("cost", time.Since(start)))
		return
	}
	logger.Info("maintenance job done", zap.Duration("cost", time.Since(start)))
}
