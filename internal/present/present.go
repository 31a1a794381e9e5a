// Package present maps resolver output into display-ready records.
package present

import (
	"fmt"
	"strings"

	"github.com/prinketaru/scriptura/internal/bible"
)

const (
	// PageSize is the fixed number of entries rendered per page.
	PageSize = 10
	// bodyLimit is the hard ceiling on one entry body, in runes.
	bodyLimit = 200

	ellipsis         = "…"
	placeholderLabel = "Unknown reference"
	placeholderBody  = "*no text*"
)

// Field is one rendered search entry.
type Field struct {
	Label string
	Body  string
}

// Fields renders the entries of one fetched page. Empty references and
// bodies fall back to placeholders; bodies are hard-truncated.
func Fields(set bible.SearchSet) []Field {
	out := make([]Field, 0, len(set.Entries))
	for _, e := range set.Entries {
		label := strings.TrimSpace(e.Reference)
		if label == "" {
			label = placeholderLabel
		}
		body := strings.TrimSpace(e.Text)
		if body == "" {
			body = placeholderBody
		} else {
			body = truncate(body, bodyLimit)
		}
		out = append(out, Field{Label: label, Body: body})
	}
	return out
}

// TotalPages computes the page count for a known total; zero or negative
// totals yield zero pages.
func TotalPages(total, pageSize int) int {
	if total <= 0 || pageSize <= 0 {
		return 0
	}
	return (total + pageSize - 1) / pageSize
}

// ClampPage forces a zero-based page index into [0, totalPages-1]. A
// totalPages of zero only clamps downward.
func ClampPage(page, totalPages int) int {
	if page < 0 {
		return 0
	}
	if totalPages > 0 && page > totalPages-1 {
		return totalPages - 1
	}
	return page
}

// RangeLabel renders the 1-based item range covered by a page, e.g. "21-23"
// for page 2 of a 23-item set at page size 10.
func RangeLabel(page, pageSize, total int) string {
	page = ClampPage(page, TotalPages(total, pageSize))
	first := page*pageSize + 1
	last := (page + 1) * pageSize
	if total > 0 && last > total {
		last = total
	}
	if last < first {
		last = first
	}
	return fmt.Sprintf("%d-%d", first, last)
}

func truncate(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return strings.TrimSpace(string(runes[:limit])) + ellipsis
}
