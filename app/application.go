// Package app wires configuration, storage, providers and services into a
// runnable application.
package app

import (
	"fmt"
	"log/slog"

	"weatherdesk.app/api"
	"weatherdesk.app/config"
	"weatherdesk.app/metrics"
	"weatherdesk.app/providers"
	"weatherdesk.app/scheduler"
	"weatherdesk.app/service"
	"weatherdesk.app/storage"
)

// Application represents the main application with all its dependencies
type Application struct {
	config    *config.Config
	store     storage.KeyValueStore
	server    *api.Server
	scheduler *scheduler.Scheduler
}

// NewApplication creates and initializes a new application instance
func NewApplication() (*Application, error) {
	app := &Application{}

	if err := app.loadConfiguration(); err != nil {
		return nil, err
	}

	if err := app.initializeStorage(); err != nil {
		return nil, err
	}

	if err := app.initializeServices(); err != nil {
		return nil, err
	}

	return app, nil
}

// Config returns the loaded application configuration
func (app *Application) Config() *config.Config {
	return app.config
}

// Start runs the scheduler and the HTTP server
func (app *Application) Start() error {
	app.scheduler.Start()
	return app.server.Start()
}

// Shutdown releases held resources
func (app *Application) Shutdown() error {
	app.scheduler.Stop()
	if err := app.store.Close(); err != nil {
		return fmt.Errorf("close storage: %w", err)
	}
	return nil
}

func (app *Application) loadConfiguration() error {
	slog.Info("Loading configuration...")

	cfg, err := config.LoadConfig()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		return fmt.Errorf("load application configuration: %w", err)
	}

	app.config = cfg
	slog.Info("Configuration loaded successfully")
	return nil
}

func (app *Application) initializeStorage() error {
	slog.Info("Initializing storage...", "type", app.config.Storage.Type)

	store, err := storage.NewStore(&app.config.Storage)
	if err != nil {
		slog.Error("Failed to initialize storage", "error", err)
		return fmt.Errorf("initialize storage: %w", err)
	}

	app.store = store
	slog.Info("Storage initialized successfully")
	return nil
}

func (app *Application) initializeServices() error {
	slog.Info("Initializing services...")

	weatherProvider := providers.NewOpenWeatherMapProvider(&app.config.Weather, app.config.Client.HTTPTimeout)
	geolocator := providers.NewIPGeolocationProvider(&app.config.Geo, app.config.Client.HTTPTimeout)

	weatherService, err := service.NewWeatherService(service.Dependencies{
		Provider:   weatherProvider,
		Geolocator: geolocator,
		History:    service.NewHistoryLedger(app.store, app.config.Client.HistoryLimit),
		Preference: service.NewUnitPreference(app.store),
		Notifier:   service.NewNotifier(app.config.Client.NoticeTTL),
		Metrics:    metrics.NewLookupMetrics(),
	})
	if err != nil {
		return fmt.Errorf("create weather service: %w", err)
	}

	app.server = api.NewServer(app.config, weatherService)
	app.scheduler = scheduler.NewScheduler(app.config.Refresh.Interval, weatherService)

	slog.Info("Services initialized successfully")
	return nil
}
