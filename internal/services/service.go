package services

import (
	"healthtracker/config"
	"healthtracker/internal/database"
	"healthtracker/internal/events"
	"healthtracker/internal/repositories"
)

type Service struct {
	Token             *TokenService
	Transaction       *TransactionService
	Scheduler         *SchedulerService
	Analysis          *AnalysisService
	Report            *ReportService
	CacheInvalidation *CacheInvalidationService
	CacheSweep        *CacheSweepService
}

func New(
	db database.DB,
	config config.Config,
	eventBus *events.EventBus,
	repos repositories.Repository,
) Service {
	return Service{
		Token:             NewTokenService(config),
		Transaction:       NewTransactionService(db),
		Scheduler:         NewSchedulerService(),
		Analysis:          NewAnalysisService(),
		Report:            NewReportService(),
		CacheInvalidation: NewCacheInvalidationService(eventBus, repos),
		CacheSweep:        NewCacheSweepService(db.Cache.User),
	}
}
