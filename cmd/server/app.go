package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/phrazzld/deckorder-api/internal/config"
	"github.com/phrazzld/deckorder-api/internal/domain/position"
	"github.com/phrazzld/deckorder-api/internal/events"
	"github.com/phrazzld/deckorder-api/internal/platform/postgres"
	"github.com/phrazzld/deckorder-api/internal/service"
	"github.com/phrazzld/deckorder-api/internal/service/auth"
	"github.com/phrazzld/deckorder-api/internal/store"
	"github.com/phrazzld/deckorder-api/internal/task"
)

// application holds all the shared application dependencies to simplify management
// and ensure proper cleanup on shutdown.
type application struct {
	// Configuration
	config *config.Config

	// Core services
	logger *slog.Logger
	db     *sql.DB

	// Stores (using interfaces for proper abstraction)
	deckStore store.DeckStore
	noteStore store.NoteStore

	// Service interfaces
	jwtService      auth.JWTService
	positionService position.Service
	deckService     service.DeckService
	noteService     service.NoteService
	orderService    service.OrderService

	// Event system
	eventEmitter events.EventEmitter

	// Task handling
	taskRunner *task.TaskRunner
}

// newApplication creates a new application instance with all dependencies initialized.
// It accepts core dependencies like configuration, logger, and database connection that
// must be established before application initialization.
func newApplication(
	ctx context.Context,
	cfg *config.Config,
	logger *slog.Logger,
	db *sql.DB,
) (*application, error) {
	app := &application{
		config: cfg,
		logger: logger,
		db:     db,
	}

	// Initialize JWT service
	var err error
	app.jwtService, err = auth.NewJWTService(cfg.Auth)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize JWT service: %w", err)
	}
	logger.Info("JWT authentication service initialized",
		"token_lifetime_minutes", cfg.Auth.TokenLifetimeMinutes)

	// Initialize stores
	app.deckStore = postgres.NewPostgresDeckStore(db, logger)
	app.noteStore = postgres.NewPostgresNoteStore(db, logger)

	// Initialize the position planner shared by the ordering services
	app.positionService = position.NewService()

	// Initialize deck service
	app.deckService, err = service.NewDeckService(app.deckStore, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create deck service: %w", err)
	}

	// Initialize note service
	app.noteService, err = service.NewNoteService(
		db,
		app.deckStore,
		app.noteStore,
		app.positionService,
		logger,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create note service: %w", err)
	}

	// Initialize order service
	app.orderService, err = service.NewOrderService(
		db,
		app.deckStore,
		app.noteStore,
		app.positionService,
		logger,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create order service: %w", err)
	}

	// Initialize task runner
	app.taskRunner, err = setupTaskRunner(app)
	if err != nil {
		return nil, fmt.Errorf("failed to setup task runner: %w", err)
	}

	// Create the factory that turns verify requests into runnable tasks.
	// The order service satisfies the verifier contract via AssignMissing.
	verifyTaskFactory := task.NewCollectionVerifyTaskFactory(app.orderService, logger)

	// Create and register the event handler with the event emitter so
	// emitted verify requests end up on the task runner's queue.
	emitter := events.NewInMemoryEventEmitter(logger)
	emitter.RegisterHandler(task.NewTaskRequestEventHandler(
		verifyTaskFactory,
		app.taskRunner,
		logger,
	))
	app.eventEmitter = emitter

	logger.Info("Application initialized successfully")
	return app, nil
}

// Run starts the application server, handling lifecycle and cleanup.
// It returns an error if the server fails to start or encounters problems.
func (app *application) Run(ctx context.Context) error {
	// Queue a collection verification pass so notes left without a
	// position by earlier crashes get one before traffic arrives.
	if app.config.Task.VerifyOnStartup {
		app.queueStartupVerify(ctx)
	}

	// Set up router using the application dependencies
	router := app.setupRouter()

	// Start the HTTP server
	err := app.startHTTPServer(ctx, router)
	if err != nil {
		return fmt.Errorf("server error: %w", err)
	}

	return nil
}

// queueStartupVerify emits the event that requests a collection
// verification pass. Failures are logged rather than returned: the
// HTTP verify endpoint can still trigger the same pass later.
func (app *application) queueStartupVerify(ctx context.Context) {
	event, err := task.NewCollectionVerifyEvent("startup")
	if err != nil {
		app.logger.Error("failed to build startup verification event", "error", err)
		return
	}

	if err := app.eventEmitter.EmitEvent(ctx, event); err != nil {
		app.logger.Error("failed to queue startup verification pass", "error", err)
		return
	}

	app.logger.Info("Startup collection verification queued")
}

// setupTaskRunner initializes and starts the background task processor.
// It uses the application struct to access required dependencies.
func setupTaskRunner(app *application) (*task.TaskRunner, error) {
	// Create the task runner with the configured dependencies
	taskRunner := task.NewTaskRunner(task.TaskRunnerConfig{
		WorkerCount: app.config.Task.WorkerCount,
		QueueSize:   app.config.Task.QueueSize,
	}, app.logger)

	// Start the task runner
	if err := taskRunner.Start(); err != nil {
		return nil, fmt.Errorf("failed to start task runner: %w", err)
	}

	return taskRunner, nil
}

// cleanup handles graceful shutdown of application resources.
func (app *application) cleanup() {
	// Stop task runner
	if app.taskRunner != nil {
		app.taskRunner.Stop()
	}

	// Close database connection
	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error("Error closing database connection", "error", err)
		}
	}

	app.logger.Info("Application shutdown completed")
}
