package jobs

import (
	"context"
	"testing"

	"healthtracker/config"
	"healthtracker/internal/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterAllJobs(t *testing.T) {
	tests := []struct {
		name     string
		enabled  bool
		expected int
	}{
		{name: "scheduler disabled", enabled: false, expected: 0},
		{name: "scheduler enabled", enabled: true, expected: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			scheduler := services.NewSchedulerService()
			svc := services.Service{CacheSweep: services.NewCacheSweepService(nil)}

			err := RegisterAllJobs(scheduler, config.Config{SchedulerEnabled: tt.enabled}, svc)

			require.NoError(t, err)
			assert.Equal(t, tt.expected, scheduler.GetJobCount())
		})
	}
}

func TestTrackerCacheSweepJob_WithoutCache(t *testing.T) {
	job := NewTrackerCacheSweepJob(services.NewCacheSweepService(nil), Hourly)

	assert.Equal(t, "TrackerCacheSweep", job.Name())
	assert.Equal(t, Hourly, job.Schedule())
	assert.NoError(t, job.Execute(context.Background()))
}
