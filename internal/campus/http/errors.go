package http

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/unidesk/campus/internal/campus/service"
	"github.com/unidesk/campus/pkg/campussdk"
)

// writeServiceError is the single place service taxonomy errors become HTTP
// responses. Handlers never invent their own status mapping.
func writeServiceError(w http.ResponseWriter, log *slog.Logger, err error) {
	switch {
	case errors.Is(err, service.ErrTokenExpired):
		campussdk.ErrTokenExpired.WriteError(w)
	case errors.Is(err, service.ErrUnauthorized):
		campussdk.ErrUnauthorized.WriteError(w)
	case errors.Is(err, service.ErrInvalidInput):
		// Input errors carry only our own wording, safe to echo.
		campussdk.ErrInvalidRequest.WithDescription(err.Error()).WriteError(w)
	case errors.Is(err, service.ErrNotFound):
		campussdk.ErrNotFound.WriteError(w)
	case errors.Is(err, service.ErrUnavailable):
		log.Error("backing store unavailable", "err", err)
		campussdk.ErrUnavailable.WriteError(w)
	default:
		log.Error("unexpected error", "err", err)
		campussdk.ErrServerError.WriteError(w)
	}
}
