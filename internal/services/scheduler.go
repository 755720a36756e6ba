package services

import (
	"context"
	"errors"
	"fmt"
	"github.com/maxaizer/talent-jobs/internal/metrics"
	"github.com/robfig/cron/v3"
	log "github.com/sirupsen/logrus"
	"time"
)

type JobFunc func(ctx context.Context) error

type Scheduler struct {
	cron       *cron.Cron
	ctx        context.Context
	runTimeout time.Duration
	jobs       map[string]JobFunc
}

func NewScheduler(ctx context.Context, runTimeout time.Duration) (*Scheduler, error) {

	if runTimeout <= 0 {
		return nil, errors.New("run timeout must be greater than zero")
	}

	cronLogger := cron.PrintfLogger(log.StandardLogger())
	return &Scheduler{
		cron: cron.New(
			cron.WithLogger(cronLogger),
			cron.WithChain(cron.Recover(cronLogger), cron.SkipIfStillRunning(cronLogger)),
		),
		ctx:        ctx,
		runTimeout: runTimeout,
		jobs:       make(map[string]JobFunc),
	}, nil
}

func (s *Scheduler) AddJob(name, spec string, job JobFunc) error {
	if _, exists := s.jobs[name]; exists {
		return fmt.Errorf("job %s is already scheduled", name)
	}

	if _, err := s.cron.AddFunc(spec, func() { s.RunJob(name) }); err != nil {
		return fmt.Errorf("invalid schedule %q for job %s: %w", spec, name, err)
	}

	s.jobs[name] = job
	log.Infof("job %s scheduled at %q", name, spec)
	return nil
}

func (s *Scheduler) Start() {
	s.cron.Start()
	log.Infof("scheduler started with %d jobs", len(s.jobs))
}

// Stop prevents new runs and waits for running jobs to finish.
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
	log.Info("scheduler stopped")
}

// RunJob runs the named job once with the configured timeout.
func (s *Scheduler) RunJob(name string) error {
	job, ok := s.jobs[name]
	if !ok {
		return fmt.Errorf("unknown job %s", name)
	}

	ctx, cancel := context.WithTimeout(s.ctx, s.runTimeout)
	defer cancel()

	start := time.Now()
	log.Infof("job %s started", name)

	err := job(ctx)

	elapsed := time.Since(start)
	metrics.JobDuration.WithLabelValues(name).Observe(elapsed.Seconds())
	if err != nil {
		log.Errorf("job %s failed after %v: %v", name, elapsed, err)
		return err
	}
	log.Infof("job %s finished after %v", name, elapsed)
	return nil
}
