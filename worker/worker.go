package worker

import (
	"context"

	"github.com/robfig/cron/v3"
)

// Worker long running background job
type Worker interface {
	Run(ctx context.Context) error
}

type OnWork func() error

// BaseJob cron driven job. Run is invoked by the cron scheduler and
// skips a round when the previous one is still in flight.
type BaseJob struct {
	Cron      *cron.Cron
	IsRunning bool
	OnWork    OnWork
}

func (job *BaseJob) Start() error {
	job.Cron.Start()
	return nil
}

func (job *BaseJob) Stop() error {
	job.Cron.Stop()
	return nil
}

func (job *BaseJob) Run() {
	if job.IsRunning {
		return
	}

	job.IsRunning = true

	job.OnWork()

	job.IsRunning = false
}
