package api

import (
	"errors"
	"log/slog"
	"net/http"

	"tenant-api/internal/domain"
)

type errorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// writeError maps a domain error to its HTTP response. Upstream errors pass
// the provider's status code through unchanged; anything unrecognized is a
// 500 with a generic body and a full server-side log line.
func writeError(w http.ResponseWriter, logger *slog.Logger, err error) {
	var notFound *domain.NotFoundError
	var validation *domain.ValidationError
	var unauthorized *domain.UnauthorizedError
	var upstream *domain.UpstreamError

	switch {
	case errors.As(err, &validation):
		writeJSON(w, http.StatusBadRequest, errorResponse{Code: http.StatusBadRequest, Message: validation.Message})
	case errors.As(err, &notFound):
		writeJSON(w, http.StatusNotFound, errorResponse{Code: http.StatusNotFound, Message: notFound.Message})
	case errors.As(err, &unauthorized):
		writeJSON(w, http.StatusUnauthorized, errorResponse{Code: http.StatusUnauthorized, Message: unauthorized.Message})
	case errors.As(err, &upstream):
		writeJSON(w, upstream.StatusCode, errorResponse{Code: upstream.StatusCode, Message: upstream.Message})
	default:
		logger.Error("internal error", "error", err)
		writeJSON(w, http.StatusInternalServerError, errorResponse{
			Code:    http.StatusInternalServerError,
			Message: "internal server error",
		})
	}
}
