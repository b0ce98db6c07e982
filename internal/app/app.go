package app

import (
	"context"

	"healthtracker/config"
	"healthtracker/internal/controllers"
	"healthtracker/internal/database"
	"healthtracker/internal/events"
	"healthtracker/internal/handlers/middleware"
	"healthtracker/internal/jobs"
	"healthtracker/internal/repositories"
	"healthtracker/internal/services"

	logger "github.com/Bparsons0904/goLogger"
)

type App struct {
	Database    database.DB
	Middleware  middleware.Middleware
	EventBus    *events.EventBus
	Config      config.Config
	Services    services.Service
	Repos       repositories.Repository
	Controllers controllers.Controllers
}

func New() (*App, error) {
	log := logger.New("app").Function("New")

	config, err := config.New()
	if err != nil {
		return &App{}, log.Err("failed to initialize config", err)
	}

	db, err := database.New(config)
	if err != nil {
		return &App{}, log.Err("failed to create database", err)
	}

	app, err := Build(db, config)
	if err != nil {
		_ = db.Close()
		return &App{}, err
	}

	if err := app.Start(); err != nil {
		_ = app.Close()
		return &App{}, err
	}

	return app, nil
}

// Build wires the application graph on top of an open database without
// starting any background work.
func Build(db database.DB, config config.Config) (*App, error) {
	log := logger.New("app").Function("Build")

	eventBus := events.New(db.Cache.Events, config)

	repos := repositories.New(db)
	services := services.New(db, config, eventBus, repos)
	controllers := controllers.New(services, repos, eventBus, config, db)
	middleware := middleware.New(db, config, repos, services)

	app := &App{
		Database:    db,
		Middleware:  middleware,
		EventBus:    eventBus,
		Config:      config,
		Services:    services,
		Repos:       repos,
		Controllers: controllers,
	}

	if err := app.validate(); err != nil {
		return &App{}, log.Err("failed to validate app", err)
	}

	return app, nil
}

// Start subscribes the event handlers and launches the scheduler.
func (a *App) Start() error {
	log := logger.New("app").Function("Start")

	if err := a.Services.CacheInvalidation.Start(); err != nil {
		return log.Err("failed to start cache invalidation", err)
	}

	if err := jobs.RegisterAllJobs(a.Services.Scheduler, a.Config, a.Services); err != nil {
		return log.Err("failed to register jobs", err)
	}

	if a.Services.Scheduler.GetJobCount() > 0 {
		if err := a.Services.Scheduler.Start(context.Background()); err != nil {
			return log.Err("failed to start scheduler", err)
		}
	}

	return nil
}

func (a *App) validate() error {
	log := logger.New("app").Function("validate")
	if a.Database.SQL == nil {
		return log.ErrMsg("database is nil")
	}

	nilChecks := []any{
		a.EventBus,
		a.Services.Token,
		a.Services.Transaction,
		a.Services.Scheduler,
		a.Services.Analysis,
		a.Services.Report,
		a.Services.CacheInvalidation,
		a.Services.CacheSweep,
		a.Controllers.Tracker,
		a.Repos.User,
		a.Repos.Symptom,
		a.Repos.Meal,
		a.Repos.Medication,
		a.Repos.Mood,
	}

	for _, check := range nilChecks {
		if check == nil {
			return log.ErrMsg("nil check failed")
		}
	}

	return nil
}

func (a *App) Close() (err error) {
	if a.EventBus != nil {
		if closeErr := a.EventBus.Close(); closeErr != nil {
			err = closeErr
		}
	}

	if a.Services.Scheduler != nil && a.Services.Scheduler.IsRunning() {
		if closeErr := a.Services.Scheduler.Stop(context.Background()); closeErr != nil {
			err = closeErr
		}
	}

	if dbErr := a.Database.Close(); dbErr != nil {
		err = dbErr
	}

	return err
}
