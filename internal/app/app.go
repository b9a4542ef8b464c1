package app

import (
	"context"

	"mantis/config"
	"mantis/internal/controllers"
	"mantis/internal/database"
	"mantis/internal/handlers/middleware"
	"mantis/internal/jobs"
	"mantis/internal/repositories"
	"mantis/internal/services"

	logger "github.com/Bparsons0904/goLogger"
)

type App struct {
	Database    database.DB
	Middleware  middleware.Middleware
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

	repos := repositories.New()
	services := services.New(db)
	controllers := controllers.New(services, repos, db)
	middleware := middleware.New(db, config, repos)

	if config.SchedulerEnabled {
		cacheJob := jobs.NewPerformanceCacheJob(controllers.Performance)
		if err := services.Scheduler.AddJob(cacheJob); err != nil {
			return &App{}, log.Err("failed to register performance cache job", err)
		}
		services.Scheduler.Start()
		log.Info("Registered performance cache job with scheduler")
	}

	app := &App{
		Database:    db,
		Config:      config,
		Middleware:  middleware,
		Services:    services,
		Repos:       repos,
		Controllers: controllers,
	}

	if err := app.validate(); err != nil {
		return &App{}, log.Err("failed to validate app", err)
	}

	return app, nil
}

func (a *App) validate() error {
	log := logger.New("app").Function("validate")

	if a.Database.SQL == nil {
		return log.ErrMsg("database is nil")
	}

	if a.Config == (config.Config{}) {
		return log.ErrMsg("config is nil")
	}

	nilChecks := []any{
		a.Services.Transaction,
		a.Services.Scheduler,
		a.Repos.Machine,
		a.Repos.QuestionTemplate,
		a.Repos.Maintenance,
		a.Repos.User,
		a.Controllers.Machine,
		a.Controllers.Question,
		a.Controllers.Maintenance,
		a.Controllers.Performance,
		a.Controllers.User,
	}

	for _, check := range nilChecks {
		if check == nil {
			return log.ErrMsg("nil check failed")
		}
	}

	return nil
}

func (a *App) Close() (err error) {
	if a.Services.Scheduler != nil {
		if closeErr := a.Services.Scheduler.Stop(context.Background()); closeErr != nil {
			err = closeErr
		}
	}

	if dbErr := a.Database.Close(); dbErr != nil {
		err = dbErr
	}

	return err
}
