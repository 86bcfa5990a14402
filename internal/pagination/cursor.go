// Package pagination implements timestamp-cursor paging over a
// conversation's message history. A cursor is the creation timestamp of the
// oldest message the client has already seen; pages walk backward through
// history while each page itself is chronological.
package pagination

import (
	"errors"
	"time"

	"github.com/hirelink/hirelink-backend/internal/models"
)

// CursorLayout keeps sub-second precision so cursors stay strict under
// rapid inserts.
const CursorLayout = time.RFC3339Nano

var ErrBadCursor = errors.New("unparsable cursor")

// ParseCursor decodes a client-supplied cursor. An empty cursor means
// "most recent page" and decodes to nil.
func ParseCursor(raw string) (*time.Time, error) {
	if raw == "" {
		return nil, nil
	}
	t, err := time.Parse(CursorLayout, raw)
	if err != nil {
		return nil, ErrBadCursor
	}
	return &t, nil
}

func FormatCursor(t time.Time) string {
	return t.UTC().Format(CursorLayout)
}

// AssemblePage takes up to limit+1 rows fetched newest-first and produces the
// page in ascending order plus the cursor for the next (older) page. The
// probe row beyond limit only signals that more history exists; it is
// dropped, and the oldest retained row's timestamp becomes the cursor.
func AssemblePage(rows []models.Message, limit int) ([]models.Message, string) {
	var next string
	if len(rows) > limit {
		next = FormatCursor(rows[limit-1].CreatedAt)
		rows = rows[:limit]
	}

	for i, j := 0, len(rows)-1; i < j; i, j = i+1, j-1 {
		rows[i], rows[j] = rows[j], rows[i]
	}
	return rows, next
}
