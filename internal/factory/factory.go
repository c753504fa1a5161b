package factory

import (
	"context"
	"errors"
	"io"
	"log/slog"

	"github.com/kaganatalay/ciz.im/internal/dependencies/clock"
	"github.com/kaganatalay/ciz.im/internal/dependencies/random"
	"github.com/kaganatalay/ciz.im/internal/gateway"
	"github.com/kaganatalay/ciz.im/internal/services/game"
	"github.com/kaganatalay/ciz.im/internal/services/registry"
	"github.com/kaganatalay/ciz.im/internal/services/words"
	"github.com/kaganatalay/ciz.im/internal/storage"
	"github.com/kaganatalay/ciz.im/internal/storage/memory"
	redisstorage "github.com/kaganatalay/ciz.im/internal/storage/redis"
)

// Storage type constants
const (
	StorageTypeMemory = "memory"
	StorageTypeRedis  = "redis"
)

// App contains all wired application components
type App struct {
	// Storage
	Storage storage.Storage

	// External dependencies
	Clock  clock.Clock
	Random random.Random

	// Services
	WordsService       *words.Service
	RegistryController *registry.Controller
	GameController     *game.Controller
	HubManager         *gateway.Manager
	Gateway            *gateway.Gateway
}

// Config holds configuration for the application factory
type Config struct {
	// WordsPath is the path to the word list file (optional)
	// If empty, words must be loaded manually
	WordsPath string
	// Logger is the application logger (optional)
	// If nil, a no-op logger is used
	Logger *slog.Logger
	// StorageType selects the storage backend ("memory" or "redis")
	// If empty, defaults to "memory"
	StorageType string
	// RedisConfig holds Redis connection settings (required if StorageType is "redis")
	RedisConfig *redisstorage.Config
}

// New creates a new application with all dependencies wired
func New(cfg Config) (*App, error) {
	// Use no-op logger if not provided
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}

	// Create storage based on type
	var store storage.Storage
	storageType := cfg.StorageType
	if storageType == "" {
		storageType = StorageTypeMemory
	}

	switch storageType {
	case StorageTypeMemory:
		store = memory.New()
	case StorageTypeRedis:
		if cfg.RedisConfig == nil {
			return nil, errors.New("RedisConfig required when StorageType is redis")
		}
		redisStore, err := redisstorage.New(*cfg.RedisConfig)
		if err != nil {
			return nil, err
		}
		store = redisStore
	default:
		return nil, errors.New("invalid StorageType: must be 'memory' or 'redis'")
	}

	// Create external dependencies
	clk := clock.New()
	rnd := random.New()

	app := newWithDependencies(store, clk, rnd, logger)

	if cfg.WordsPath != "" {
		if err := app.WordsService.LoadFromFile(context.Background(), cfg.WordsPath); err != nil {
			return nil, err
		}
	}

	return app, nil
}

// newWithDependencies creates an App with the given dependencies (useful for testing)
func newWithDependencies(store storage.Storage, clk clock.Clock, rnd random.Random, logger *slog.Logger) *App {
	// Create services
	wordsService := words.New(store, rnd, logger)
	registryController := registry.NewController(store, clk, rnd, logger)
	gameController := game.NewController(store, wordsService, clk, rnd, logger)
	hubManager := gateway.NewManager(logger)
	gw := gateway.New(registryController, gameController, hubManager, clk, rnd, logger)

	return &App{
		Storage:            store,
		Clock:              clk,
		Random:             rnd,
		WordsService:       wordsService,
		RegistryController: registryController,
		GameController:     gameController,
		HubManager:         hubManager,
		Gateway:            gw,
	}
}
