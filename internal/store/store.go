// Package store persists per-user preferences: a preferred translation and a
// display sub-record. Writes are sparse upserts keyed by user identity with
// last-writer-wins semantics.
package store

import (
	"context"

	"github.com/prinketaru/scriptura/internal/bible"
)

// DisplayPrefs is the per-user display sub-record. Absent stored fields
// resolve to the defaults below.
type DisplayPrefs struct {
	Footnotes    bool
	Headings     bible.TriState
	VerseNumbers bool
	LineByLine   bible.TriState
}

// DefaultDisplayPrefs are the documented defaults: footnotes hidden,
// headings and line-by-line automatic, verse numbers shown.
func DefaultDisplayPrefs() DisplayPrefs {
	return DisplayPrefs{
		Footnotes:    false,
		Headings:     bible.TriAuto,
		VerseNumbers: true,
		LineByLine:   bible.TriAuto,
	}
}

// DisplayPrefsUpdate is a partial update; nil fields keep their stored
// value.
type DisplayPrefsUpdate struct {
	Footnotes    *bool
	Headings     *bible.TriState
	VerseNumbers *bool
	LineByLine   *bible.TriState
}

// Apply merges the update into prefs and returns the result.
func (u DisplayPrefsUpdate) Apply(p DisplayPrefs) DisplayPrefs {
	if u.Footnotes != nil {
		p.Footnotes = *u.Footnotes
	}
	if u.Headings != nil {
		p.Headings = *u.Headings
	}
	if u.VerseNumbers != nil {
		p.VerseNumbers = *u.VerseNumbers
	}
	if u.LineByLine != nil {
		p.LineByLine = *u.LineByLine
	}
	return normalize(p)
}

// Store defines preference persistence. Records are created lazily on first
// write; reads for unknown users return the zero translation and default
// display preferences.
type Store interface {
	// Translation returns the stored code, or "" when the user has none.
	Translation(ctx context.Context, userID string) (string, error)
	SetTranslation(ctx context.Context, userID, code string) error

	// DisplayPrefs returns the stored sub-record with defaults filled in.
	DisplayPrefs(ctx context.Context, userID string) (DisplayPrefs, error)
	SetDisplayPrefs(ctx context.Context, userID string, upd DisplayPrefsUpdate) error
	// ResetDisplayPrefs clears the display sub-record only; the stored
	// translation is untouched.
	ResetDisplayPrefs(ctx context.Context, userID string) error

	Close() error
}

// normalize coerces unknown tri-state values back to auto so stale or
// hand-edited rows cannot leak invalid states.
func normalize(p DisplayPrefs) DisplayPrefs {
	p.Headings = normalizeTriState(p.Headings)
	p.LineByLine = normalizeTriState(p.LineByLine)
	return p
}

func normalizeTriState(t bible.TriState) bible.TriState {
	switch t {
	case bible.TriOn, bible.TriOff:
		return t
	}
	return bible.TriAuto
}
