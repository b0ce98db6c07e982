package services

import (
	"context"
	"time"

	"healthtracker/internal/events"
	"healthtracker/internal/repositories"

	logger "github.com/Bparsons0904/goLogger"
)

// CacheInvalidationService drops a user's cached record list whenever any
// instance logs a record of that kind for them.
type CacheInvalidationService struct {
	eventBus *events.EventBus
	repos    repositories.Repository
	log      logger.Logger
}

func NewCacheInvalidationService(
	eventBus *events.EventBus,
	repos repositories.Repository,
) *CacheInvalidationService {
	return &CacheInvalidationService{
		eventBus: eventBus,
		repos:    repos,
		log:      logger.New("CacheInvalidationService"),
	}
}

func (s *CacheInvalidationService) Start() error {
	return s.eventBus.Subscribe(events.TRACKER_CHANNEL, s.HandleEvent)
}

func (s *CacheInvalidationService) HandleEvent(event events.Event) error {
	log := s.log.Function("HandleEvent")

	if event.Type != events.RECORD_LOGGED || event.UserID == nil {
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	userID := *event.UserID

	var err error
	switch event.Kind() {
	case events.KIND_SYMPTOM:
		err = s.repos.Symptom.ClearUserCache(ctx, userID)
	case events.KIND_MEAL:
		err = s.repos.Meal.ClearUserCache(ctx, userID)
	case events.KIND_MEDICATION:
		err = s.repos.Medication.ClearUserCache(ctx, userID)
	case events.KIND_MOOD:
		err = s.repos.Mood.ClearUserCache(ctx, userID)
	default:
		log.Warn("Unknown record kind", "kind", event.Kind(), "eventID", event.ID)
		return nil
	}

	if err != nil {
		return log.Err("failed to invalidate record cache", err, "kind", event.Kind(), "userID", userID)
	}

	return nil
}
