package factory

import (
	"errors"
	"io"
	"log/slog"
	"time"

	"github.com/wordrush/wordrush/internal/dependencies/clock"
	"github.com/wordrush/wordrush/internal/dependencies/lock"
	"github.com/wordrush/wordrush/internal/dependencies/random"
	"github.com/wordrush/wordrush/internal/services/auth"
	"github.com/wordrush/wordrush/internal/services/chat"
	"github.com/wordrush/wordrush/internal/services/game"
	"github.com/wordrush/wordrush/internal/services/room"
	"github.com/wordrush/wordrush/internal/services/scoring"
	"github.com/wordrush/wordrush/internal/services/scramble"
	"github.com/wordrush/wordrush/internal/sse"
	"github.com/wordrush/wordrush/internal/storage"
	"github.com/wordrush/wordrush/internal/storage/memory"
	redisstorage "github.com/wordrush/wordrush/internal/storage/redis"
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
	Locks  *lock.KeyedMutex

	// Services
	ScrambleService *scramble.Service
	ScoringService  *scoring.Service
	ChatService     *chat.Service
	GameController  *game.Controller
	RoomController  *room.Controller
	AuthService     *auth.Service
	Monitor         *game.Monitor

	// Real-time fan-out
	HubManager  *sse.HubManager
	Broadcaster *sse.Broadcaster
}

// Config holds configuration for the application factory
type Config struct {
	// AuthConfig holds configuration for the auth service (optional)
	// If zero value, defaults to auth.DefaultConfig()
	AuthConfig auth.Config
	// Logger is the application logger (optional)
	// If nil, a no-op logger is used
	Logger *slog.Logger
	// StorageType selects the storage backend ("memory" or "redis")
	// If empty, defaults to "memory"
	StorageType string
	// RedisConfig holds Redis connection settings (required if StorageType is "redis")
	RedisConfig *redisstorage.Config
	// MonitorInterval is how often round deadlines are swept (optional)
	MonitorInterval time.Duration
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

	// Use default auth config if not provided
	authCfg := cfg.AuthConfig
	if authCfg.SessionDuration == 0 {
		authCfg = auth.DefaultConfig()
	}

	return newWithDependencies(store, clk, rnd, authCfg, cfg.MonitorInterval, logger), nil
}

// newWithDependencies creates an App with the given dependencies (useful for testing)
func newWithDependencies(
	store storage.Storage,
	clk clock.Clock,
	rnd random.Random,
	authCfg auth.Config,
	monitorInterval time.Duration,
	logger *slog.Logger,
) *App {
	locks := lock.New()

	// Create services
	scrambleService := scramble.New(rnd)
	scoringService := scoring.New()
	chatService := chat.New(store, clk, rnd, logger)
	gameController := game.New(store, clk, locks, scrambleService, scoringService, chatService, logger)
	roomController := room.New(store, clk, rnd, locks, gameController, chatService, logger)
	authService := auth.New(store, clk, rnd, authCfg)
	monitor := game.NewMonitor(store, gameController, monitorInterval, logger)

	// Wire real-time fan-out; services publish through the broadcaster
	// without knowing about SSE
	hubManager := sse.NewHubManager(logger)
	broadcaster := sse.NewBroadcaster(hubManager, logger)
	chatService.SetNotifier(broadcaster)
	gameController.SetNotifier(broadcaster)
	roomController.SetNotifier(broadcaster)

	return &App{
		Storage:         store,
		Clock:           clk,
		Random:          rnd,
		Locks:           locks,
		ScrambleService: scrambleService,
		ScoringService:  scoringService,
		ChatService:     chatService,
		GameController:  gameController,
		RoomController:  roomController,
		AuthService:     authService,
		Monitor:         monitor,
		HubManager:      hubManager,
		Broadcaster:     broadcaster,
	}
}
