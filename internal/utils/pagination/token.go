package pagination

import (
	"encoding/base64"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/SscSPs/expense_tracker/internal/apperrors"
)

const timeFormat = time.RFC3339Nano // Use a precise time format

// Cursor is the sort key of the last row of a page: (occurredAt DESC, id DESC).
type Cursor struct {
	OccurredAt time.Time
	ID         string
}

// EncodeToken creates a URL-safe opaque token from an occurrence time and row id.
func EncodeToken(occurredAt time.Time, id string) string {
	tokenStr := fmt.Sprintf("%s|%s", occurredAt.UTC().Format(timeFormat), id)
	return base64.RawURLEncoding.EncodeToString([]byte(tokenStr))
}

// EncodeCursor is EncodeToken for a Cursor value.
func EncodeCursor(c Cursor) string {
	return EncodeToken(c.OccurredAt, c.ID)
}

// DecodeToken parses a token produced by EncodeToken. Malformed tokens yield ErrValidation.
func DecodeToken(token string) (*Cursor, error) {
	decodedBytes, err := base64.RawURLEncoding.DecodeString(strings.TrimRight(token, "="))
	if err != nil {
		return nil, apperrors.NewAppError(http.StatusBadRequest, "invalid pagination token format (base64 decode)", err)
	}
	tokenStr := string(decodedBytes)
	parts := strings.SplitN(tokenStr, "|", 2)
	if len(parts) != 2 || parts[1] == "" {
		return nil, apperrors.NewAppError(http.StatusBadRequest, "invalid pagination token format (split)", nil)
	}

	occurredAt, err := time.Parse(timeFormat, parts[0])
	if err != nil {
		return nil, apperrors.NewAppError(http.StatusBadRequest, "invalid pagination token format (occurred_at parse)", err)
	}

	return &Cursor{OccurredAt: occurredAt.UTC(), ID: parts[1]}, nil
}

// ClampLimit applies the default page size to non-positive limits and caps at max.
func ClampLimit(limit, defaultLimit, maxLimit int) int {
	if limit <= 0 {
		limit = defaultLimit
	}
	if maxLimit > 0 && limit > maxLimit {
		limit = maxLimit
	}
	return limit
}

// NextCursor returns the token for the row after which the next page starts,
// or nil when the page came back shorter than the requested limit.
func NextCursor(rows, limit int, last Cursor) *string {
	if limit <= 0 || rows < limit {
		return nil
	}
	token := EncodeCursor(last)
	return &token
}
