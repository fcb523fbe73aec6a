package middleware

import (
	"log/slog"
	"net/http"

	"github.com/wordrush/wordrush/internal/api/apierr"
	"github.com/wordrush/wordrush/internal/middleware"
)

// Recovery wraps the shared recovery middleware so that panics inside
// API handlers come back as the standard JSON error envelope
func Recovery(logger *slog.Logger) func(http.Handler) http.Handler {
	return middleware.Recovery(logger, func(w http.ResponseWriter, _ *http.Request, _ any) {
		apierr.WriteError(w, apierr.NewInternalError())
	})
}
