package app

import (
	"database/sql"
	"log/slog"

	"github.com/thenoetrevino/pipeboard/internal/database"
	"github.com/thenoetrevino/pipeboard/internal/events"
	laneservice "github.com/thenoetrevino/pipeboard/internal/services/lane"
	pipelineservice "github.com/thenoetrevino/pipeboard/internal/services/pipeline"
	"github.com/thenoetrevino/pipeboard/internal/services/reorder"
	subaccountservice "github.com/thenoetrevino/pipeboard/internal/services/subaccount"
	tagservice "github.com/thenoetrevino/pipeboard/internal/services/tag"
	ticketservice "github.com/thenoetrevino/pipeboard/internal/services/ticket"
)

// App holds all application services and provides dependency injection.
// This is the main application container that manages service lifecycles.
type App struct {
	// Repository layer (direct database access)
	repo *database.Repository
	db   *sql.DB

	// Event system for live updates
	eventClient events.EventPublisher

	// Service layer (business logic)
	SubAccountService subaccountservice.Service
	PipelineService   pipelineservice.Service
	LaneService       laneservice.Service
	TicketService     ticketservice.Service
	TagService        tagservice.Service
	ReorderService    reorder.Service
}

// New creates a new App with all services initialized.
// This is the single entry point for creating the application container.
func New(db *sql.DB, opts ...Option) *App {
	cfg := &appConfig{}
	for _, opt := range opts {
		opt(cfg)
	}
	if cfg.logger != nil {
		slog.SetDefault(cfg.logger)
	}

	repo := database.NewRepository(db)
	ec := cfg.eventClient

	return &App{
		repo:              repo,
		db:                db,
		eventClient:       ec,
		SubAccountService: subaccountservice.NewService(repo),
		PipelineService:   pipelineservice.NewService(repo, ec),
		LaneService:       laneservice.NewService(repo, ec),
		TicketService:     ticketservice.NewService(repo, ec),
		TagService:        tagservice.NewService(repo),
		ReorderService:    reorder.NewService(repo, ec),
	}
}

// Repo returns the underlying repository for direct database access.
func (a *App) Repo() database.DataStore {
	return a.repo
}

// Events returns the event publisher, or nil when no daemon is connected
func (a *App) Events() events.EventPublisher {
	return a.eventClient
}

// Close releases the event client and the database handle
func (a *App) Close() error {
	if a.eventClient != nil {
		if err := a.eventClient.Close(); err != nil {
			slog.Warn("failed to close event client", "error", err)
		}
	}
	return a.db.Close()
}
