package jobs

import (
	"context"

	"healthtracker/internal/services"

	logger "github.com/Bparsons0904/goLogger"
)

type TrackerCacheSweepJob struct {
	sweeper  *services.CacheSweepService
	log      logger.Logger
	schedule services.Schedule
}

func NewTrackerCacheSweepJob(
	sweeper *services.CacheSweepService,
	schedule services.Schedule,
) *TrackerCacheSweepJob {
	return &TrackerCacheSweepJob{
		sweeper:  sweeper,
		log:      logger.New("trackerCacheSweepJob"),
		schedule: schedule,
	}
}

func (j *TrackerCacheSweepJob) Name() string {
	return "TrackerCacheSweep"
}

func (j *TrackerCacheSweepJob) Execute(ctx context.Context) error {
	log := j.log.Function("Execute")

	if _, err := j.sweeper.Sweep(ctx); err != nil {
		return log.Err("tracker cache sweep failed", err)
	}

	return nil
}

func (j *TrackerCacheSweepJob) Schedule() services.Schedule {
	return j.schedule
}
