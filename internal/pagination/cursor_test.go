package pagination

import (
	"errors"
	"testing"
	"time"

	"github.com/hirelink/hirelink-backend/internal/models"
)

func TestParseCursor(t *testing.T) {
	tests := []struct {
		name      string
		raw       string
		shouldErr bool
		wantNil   bool
	}{
		{"empty cursor means latest page", "", false, true},
		{"valid RFC3339Nano cursor", "2026-01-15T10:30:00.123456789Z", false, false},
		{"valid cursor without fraction", "2026-01-15T10:30:00Z", false, false},
		{"garbage cursor", "not-a-timestamp", true, true},
		{"numeric cursor", "12345", true, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseCursor(tt.raw)
			if (err != nil) != tt.shouldErr {
				t.Errorf("ParseCursor(%q) error = %v, wantErr %v", tt.raw, err, tt.shouldErr)
			}
			if tt.shouldErr && !errors.Is(err, ErrBadCursor) {
				t.Errorf("ParseCursor(%q) error = %v, want ErrBadCursor", tt.raw, err)
			}
			if (got == nil) != tt.wantNil {
				t.Errorf("ParseCursor(%q) = %v, wantNil %v", tt.raw, got, tt.wantNil)
			}
		})
	}
}

func TestCursorRoundTrip(t *testing.T) {
	orig := time.Date(2026, 3, 7, 14, 5, 9, 123456789, time.UTC)
	parsed, err := ParseCursor(FormatCursor(orig))
	if err != nil {
		t.Fatalf("ParseCursor failed on formatted cursor: %v", err)
	}
	if !parsed.Equal(orig) {
		t.Errorf("round trip lost precision: got %v, want %v", parsed, orig)
	}
}

// makeHistory builds n messages newest-first, one second apart, the way the
// repository returns them.
func makeHistory(n int) []models.Message {
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	msgs := make([]models.Message, n)
	for i := 0; i < n; i++ {
		id := uint(n - i)
		msgs[i] = models.Message{
			ID:        id,
			CreatedAt: base.Add(time.Duration(id) * time.Second),
		}
	}
	return msgs
}

func TestAssemblePage(t *testing.T) {
	t.Run("page ascends and probe row sets cursor", func(t *testing.T) {
		rows := makeHistory(51) // limit+1 probe present
		page, next := AssemblePage(rows, 50)

		if len(page) != 50 {
			t.Fatalf("page length = %d, want 50", len(page))
		}
		if next == "" {
			t.Error("expected a next cursor when a probe row exists")
		}
		for i := 1; i < len(page); i++ {
			if page[i].CreatedAt.Before(page[i-1].CreatedAt) {
				t.Errorf("page not ascending at index %d", i)
			}
		}
		// Cursor is the oldest retained row's timestamp.
		want := FormatCursor(page[0].CreatedAt)
		if next != want {
			t.Errorf("next cursor = %q, want %q", next, want)
		}
	})

	t.Run("short page ends history", func(t *testing.T) {
		rows := makeHistory(20)
		page, next := AssemblePage(rows, 50)
		if len(page) != 20 {
			t.Errorf("page length = %d, want 20", len(page))
		}
		if next != "" {
			t.Errorf("next cursor = %q, want empty at end of history", next)
		}
	})

	t.Run("empty history", func(t *testing.T) {
		page, next := AssemblePage(nil, 50)
		if len(page) != 0 || next != "" {
			t.Errorf("empty history gave page=%d next=%q", len(page), next)
		}
	})
}

// TestPaginationWalk drives three successive pages over 120 messages and
// checks the union is exact: no duplicates, no gaps.
func TestPaginationWalk(t *testing.T) {
	const total, limit = 120, 50
	history := makeHistory(total)

	// fetch emulates the repository: newest-first, strictly older than the
	// cursor, up to limit+1 rows.
	fetch := func(before *time.Time, n int) []models.Message {
		var out []models.Message
		for _, m := range history {
			if before != nil && !m.CreatedAt.Before(*before) {
				continue
			}
			out = append(out, m)
			if len(out) == n {
				break
			}
		}
		return out
	}

	seen := make(map[uint]bool)
	var cursor *time.Time
	pageSizes := []int{}

	for i := 0; i < 10; i++ {
		rows := fetch(cursor, limit+1)
		page, next := AssemblePage(rows, limit)
		pageSizes = append(pageSizes, len(page))

		for _, m := range page {
			if seen[m.ID] {
				t.Fatalf("message %d returned twice", m.ID)
			}
			seen[m.ID] = true
		}

		if next == "" {
			break
		}
		parsed, err := ParseCursor(next)
		if err != nil {
			t.Fatalf("bad cursor between pages: %v", err)
		}
		cursor = parsed
	}

	if len(seen) != total {
		t.Errorf("walk covered %d messages, want %d", len(seen), total)
	}
	want := []int{50, 50, 20}
	if len(pageSizes) != len(want) {
		t.Fatalf("walk took %d pages (%v), want %v", len(pageSizes), pageSizes, want)
	}
	for i := range want {
		if pageSizes[i] != want[i] {
			t.Errorf("page %d size = %d, want %d", i, pageSizes[i], want[i])
		}
	}
}
