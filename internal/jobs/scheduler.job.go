package jobs

import (
	"healthtracker/config"
	"healthtracker/internal/services"

	logger "github.com/Bparsons0904/goLogger"
)

const (
	Daily  = services.Daily
	Hourly = services.Hourly
)

func RegisterAllJobs(
	schedulerService *services.SchedulerService,
	config config.Config,
	services services.Service,
) error {
	log := logger.New("jobs").Function("RegisterAllJobs")

	if !config.SchedulerEnabled {
		log.Info("Scheduler disabled, skipping job registration")
		return nil
	}

	sweepJob := NewTrackerCacheSweepJob(services.CacheSweep, Hourly)
	if err := schedulerService.AddJob(sweepJob); err != nil {
		return log.Err("failed to register tracker cache sweep job", err)
	}
	log.Info("Registered tracker cache sweep job", "schedule", "hourly")

	return nil
}
