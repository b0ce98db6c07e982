package controllers

import (
	"healthtracker/config"
	"healthtracker/internal/database"
	"healthtracker/internal/events"
	"healthtracker/internal/repositories"
	"healthtracker/internal/services"

	trackerController "healthtracker/internal/controllers/tracker"
)

type Controllers struct {
	Tracker trackerController.TrackerControllerInterface
}

func New(
	services services.Service,
	repos repositories.Repository,
	eventBus *events.EventBus,
	config config.Config,
	db database.DB,
) Controllers {
	return Controllers{
		Tracker: trackerController.New(repos, services, eventBus, config, db),
	}
}
