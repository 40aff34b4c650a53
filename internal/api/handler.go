// Package api provides the HTTP handlers for the tenant directory REST API.
package api

import (
	"database/sql"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"tenant-api/internal/domain"
	"tenant-api/internal/service"
)

// SyncStatus reports when the cache was last refreshed.
type SyncStatus interface {
	LastSync() time.Time
}

// Handler holds the service dependencies for all routes.
type Handler struct {
	users  *service.UserService
	groups *service.GroupService
	readDB *sql.DB
	sync   SyncStatus
	logger *slog.Logger
}

// NewHandler creates a new Handler with all required dependencies.
func NewHandler(users *service.UserService, groups *service.GroupService, readDB *sql.DB, sync SyncStatus, logger *slog.Logger) *Handler {
	return &Handler{
		users:  users,
		groups: groups,
		readDB: readDB,
		sync:   sync,
		logger: logger,
	}
}

// --- helpers ---

// pageFromRequest extracts pagination parameters from the query string.
// pageSize defaults when absent; a non-numeric value or a malformed cursor is
// a ValidationError.
func pageFromRequest(r *http.Request) (domain.PageRequest, error) {
	page := domain.PageRequest{PageSize: domain.DefaultPageSize}

	if raw := r.URL.Query().Get("pageSize"); raw != "" {
		size, err := strconv.Atoi(raw)
		if err != nil {
			return page, domain.ErrValidation("pageSize must be an integer, got %q", raw)
		}
		page.PageSize = size
	}
	if token := r.URL.Query().Get("nextCursor"); token != "" {
		cursor, err := domain.DecodeCursor(token)
		if err != nil {
			return page, err
		}
		page.Cursor = &cursor
	}
	return page, page.Validate()
}

// nextURL builds the absolute link to the next page of the same collection.
func nextURL(r *http.Request, pageSize int, cursor *domain.Cursor) string {
	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}
	if proto := r.Header.Get("X-Forwarded-Proto"); proto != "" {
		scheme = proto
	}
	q := url.Values{
		"pageSize":   {strconv.Itoa(pageSize)},
		"nextCursor": {cursor.Encode()},
	}
	u := url.URL{
		Scheme:   scheme,
		Host:     r.Host,
		Path:     r.URL.Path,
		RawQuery: q.Encode(),
	}
	return u.String()
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func decodeBody(r *http.Request, dst any) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return domain.ErrValidation("malformed request body: %v", err)
	}
	return nil
}
