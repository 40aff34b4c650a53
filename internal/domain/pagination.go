package domain

import (
	"encoding/base64"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Page size bounds for list operations. Requests outside this range are
// rejected at the boundary layer.
const (
	DefaultPageSize = 10
	MinPageSize     = 10
	MaxPageSize     = 50
)

// Cursor is the keyset position of the last row returned by a page. The
// creation timestamp alone is not unique, so the row ID acts as tie-breaker;
// together they give a duplicate-free cursor contract.
type Cursor struct {
	CreatedAt time.Time
	ID        string
}

// Encode renders the cursor as an opaque token. Clients must not construct
// or parse tokens themselves.
func (c Cursor) Encode() string {
	raw := fmt.Sprintf("%d:%s", c.CreatedAt.UnixMilli(), c.ID)
	return base64.RawURLEncoding.EncodeToString([]byte(raw))
}

// DecodeCursor parses an opaque token produced by Encode. A malformed token
// is a ValidationError.
func DecodeCursor(token string) (Cursor, error) {
	raw, err := base64.RawURLEncoding.DecodeString(token)
	if err != nil {
		return Cursor{}, ErrValidation("malformed cursor %q", token)
	}
	millis, id, ok := strings.Cut(string(raw), ":")
	if !ok || id == "" {
		return Cursor{}, ErrValidation("malformed cursor %q", token)
	}
	ms, err := strconv.ParseInt(millis, 10, 64)
	if err != nil {
		return Cursor{}, ErrValidation("malformed cursor %q", token)
	}
	return Cursor{CreatedAt: time.UnixMilli(ms).UTC(), ID: id}, nil
}

// PageRequest holds pagination parameters for list operations. A nil Cursor
// means the first page.
type PageRequest struct {
	PageSize int
	Cursor   *Cursor
}

// Validate checks that the page size is within [MinPageSize, MaxPageSize].
func (p PageRequest) Validate() error {
	if p.PageSize < MinPageSize || p.PageSize > MaxPageSize {
		return ErrValidation("pageSize must be between %d and %d, got %d", MinPageSize, MaxPageSize, p.PageSize)
	}
	return nil
}
