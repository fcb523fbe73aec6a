package api

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/wordrush/wordrush/internal/api/handler"
	apimiddleware "github.com/wordrush/wordrush/internal/api/middleware"
	"github.com/wordrush/wordrush/internal/middleware"
	"github.com/wordrush/wordrush/internal/services/auth"
	"github.com/wordrush/wordrush/internal/services/chat"
	"github.com/wordrush/wordrush/internal/services/game"
	"github.com/wordrush/wordrush/internal/services/room"
	"github.com/wordrush/wordrush/internal/sse"
)

// RouterConfig holds configuration for the API router
type RouterConfig struct {
	Logger         *slog.Logger
	AuthService    auth.ServiceInterface
	RoomController room.ControllerInterface
	GameController game.ControllerInterface
	ChatService    chat.ServiceInterface
	HubManager     *sse.HubManager
}

// NewRouter creates a new API router with all routes configured
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()

	// Create handlers
	playerHandler := handler.NewPlayerHandler(cfg.AuthService)
	roomHandler := handler.NewRoomHandler(cfg.RoomController)
	gameHandler := handler.NewGameHandler(cfg.GameController)
	chatHandler := handler.NewChatHandler(cfg.ChatService, cfg.RoomController)
	eventsHandler := handler.NewEventsHandler(cfg.RoomController, cfg.HubManager)

	// Create middleware
	authMiddleware := apimiddleware.Auth(cfg.AuthService)
	loggingMiddleware := middleware.Logging(cfg.Logger)
	recoveryMiddleware := apimiddleware.Recovery(cfg.Logger)

	// API subrouter with common middleware
	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(recoveryMiddleware)
	api.Use(loggingMiddleware)

	// Player routes (no auth required for creating players/logging in)
	api.HandleFunc("/players/guest", playerHandler.CreateGuest).Methods(http.MethodPost)
	api.HandleFunc("/players/register", playerHandler.Register).Methods(http.MethodPost)
	api.HandleFunc("/players/login", playerHandler.Login).Methods(http.MethodPost)

	// Protected player routes
	playerProtected := api.PathPrefix("/players").Subrouter()
	playerProtected.Use(authMiddleware)
	playerProtected.HandleFunc("/me", playerHandler.GetMe).Methods(http.MethodGet)
	playerProtected.HandleFunc("/logout", playerHandler.Logout).Methods(http.MethodPost)

	// Room routes (all require auth)
	rooms := api.PathPrefix("/rooms").Subrouter()
	rooms.Use(authMiddleware)
	rooms.HandleFunc("", roomHandler.Create).Methods(http.MethodPost)
	rooms.HandleFunc("/join", roomHandler.Join).Methods(http.MethodPost)
	rooms.HandleFunc("/code/{code}", roomHandler.GetByCode).Methods(http.MethodGet)
	rooms.HandleFunc("/{room_id}", roomHandler.Get).Methods(http.MethodGet)
	rooms.HandleFunc("/{room_id}/leave", roomHandler.Leave).Methods(http.MethodPost)
	rooms.HandleFunc("/{room_id}/transfer-host", roomHandler.TransferHost).Methods(http.MethodPost)

	// Game routes
	rooms.HandleFunc("/{room_id}/game/start", gameHandler.Start).Methods(http.MethodPost)
	rooms.HandleFunc("/{room_id}/game/word", gameHandler.SubmitWord).Methods(http.MethodPost)
	rooms.HandleFunc("/{room_id}/game/word", gameHandler.GetWord).Methods(http.MethodGet)
	rooms.HandleFunc("/{room_id}/game/guess", gameHandler.SubmitGuess).Methods(http.MethodPost)

	// Chat routes
	rooms.HandleFunc("/{room_id}/chat", chatHandler.Send).Methods(http.MethodPost)
	rooms.HandleFunc("/{room_id}/chat", chatHandler.History).Methods(http.MethodGet)

	// Event stream
	rooms.HandleFunc("/{room_id}/events", eventsHandler.Stream).Methods(http.MethodGet)

	// Health check endpoint (no auth)
	api.HandleFunc("/health", healthHandler).Methods(http.MethodGet)

	return r
}

func healthHandler(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}
