package store

import (
	"context"
	"testing"

	"github.com/prinketaru/scriptura/internal/bible"
)

func TestMemoryStoreTranslation(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	code, err := s.Translation(ctx, "user-1")
	if err != nil {
		t.Fatal(err)
	}
	if code != "" {
		t.Fatalf("unknown user should have no translation, got %q", code)
	}

	if err := s.SetTranslation(ctx, "user-1", "KJV"); err != nil {
		t.Fatal(err)
	}
	code, err = s.Translation(ctx, "user-1")
	if err != nil {
		t.Fatal(err)
	}
	if code != "KJV" {
		t.Fatalf("got %q, want KJV", code)
	}

	// Last writer wins.
	if err := s.SetTranslation(ctx, "user-1", "WEB"); err != nil {
		t.Fatal(err)
	}
	code, _ = s.Translation(ctx, "user-1")
	if code != "WEB" {
		t.Fatalf("got %q, want WEB", code)
	}
}

func TestMemoryStoreDisplayPrefsDefaults(t *testing.T) {
	s := NewMemoryStore()
	prefs, err := s.DisplayPrefs(context.Background(), "nobody")
	if err != nil {
		t.Fatal(err)
	}
	if prefs != DefaultDisplayPrefs() {
		t.Fatalf("unknown user should get defaults, got %+v", prefs)
	}
	if prefs.Footnotes || !prefs.VerseNumbers {
		t.Fatalf("unexpected defaults: %+v", prefs)
	}
	if prefs.Headings != bible.TriAuto || prefs.LineByLine != bible.TriAuto {
		t.Fatalf("tri-states should default to auto: %+v", prefs)
	}
}

func TestMemoryStorePartialUpdate(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	on := bible.TriOn
	foot := true
	if err := s.SetDisplayPrefs(ctx, "user-1", DisplayPrefsUpdate{Footnotes: &foot, LineByLine: &on}); err != nil {
		t.Fatal(err)
	}
	prefs, err := s.DisplayPrefs(ctx, "user-1")
	if err != nil {
		t.Fatal(err)
	}
	if !prefs.Footnotes || prefs.LineByLine != bible.TriOn {
		t.Fatalf("update not applied: %+v", prefs)
	}
	// Untouched fields keep their defaults.
	if prefs.Headings != bible.TriAuto || !prefs.VerseNumbers {
		t.Fatalf("partial update clobbered other fields: %+v", prefs)
	}

	// A second partial update leaves the first intact.
	off := bible.TriOff
	if err := s.SetDisplayPrefs(ctx, "user-1", DisplayPrefsUpdate{Headings: &off}); err != nil {
		t.Fatal(err)
	}
	prefs, _ = s.DisplayPrefs(ctx, "user-1")
	if !prefs.Footnotes || prefs.Headings != bible.TriOff {
		t.Fatalf("sequential updates merged wrong: %+v", prefs)
	}
}

func TestMemoryStoreResetKeepsTranslation(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	foot := true
	if err := s.SetTranslation(ctx, "user-1", "ASV"); err != nil {
		t.Fatal(err)
	}
	if err := s.SetDisplayPrefs(ctx, "user-1", DisplayPrefsUpdate{Footnotes: &foot}); err != nil {
		t.Fatal(err)
	}

	if err := s.ResetDisplayPrefs(ctx, "user-1"); err != nil {
		t.Fatal(err)
	}
	prefs, err := s.DisplayPrefs(ctx, "user-1")
	if err != nil {
		t.Fatal(err)
	}
	if prefs != DefaultDisplayPrefs() {
		t.Fatalf("reset should restore defaults, got %+v", prefs)
	}
	code, _ := s.Translation(ctx, "user-1")
	if code != "ASV" {
		t.Fatalf("reset must not touch the translation, got %q", code)
	}
}

func TestNormalizeCoercesUnknownTriStates(t *testing.T) {
	p := normalize(DisplayPrefs{Headings: "sometimes", LineByLine: bible.TriOff})
	if p.Headings != bible.TriAuto {
		t.Fatalf("unknown tri-state should coerce to auto, got %q", p.Headings)
	}
	if p.LineByLine != bible.TriOff {
		t.Fatalf("valid tri-state should survive, got %q", p.LineByLine)
	}
}
