package store

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"

	"github.com/prinketaru/scriptura/internal/bible"
)

func newTestRedisStore(t *testing.T) *RedisStore {
	t.Helper()
	redis := miniredis.RunT(t)
	s := NewRedisStore(redis.Addr(), "")
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestRedisStoreRoundTrip(t *testing.T) {
	s := newTestRedisStore(t)
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
}

func TestRedisStoreDisplayPrefs(t *testing.T) {
	s := newTestRedisStore(t)
	ctx := context.Background()

	prefs, err := s.DisplayPrefs(ctx, "user-2")
	if err != nil {
		t.Fatal(err)
	}
	if prefs != DefaultDisplayPrefs() {
		t.Fatalf("expected defaults, got %+v", prefs)
	}

	on := bible.TriOn
	if err := s.SetDisplayPrefs(ctx, "user-2", DisplayPrefsUpdate{LineByLine: &on}); err != nil {
		t.Fatal(err)
	}
	prefs, err = s.DisplayPrefs(ctx, "user-2")
	if err != nil {
		t.Fatal(err)
	}
	if prefs.LineByLine != bible.TriOn {
		t.Fatalf("update not applied: %+v", prefs)
	}
	if !prefs.VerseNumbers || prefs.Headings != bible.TriAuto {
		t.Fatalf("partial update clobbered defaults: %+v", prefs)
	}
}

func TestRedisStoreResetKeepsTranslation(t *testing.T) {
	s := newTestRedisStore(t)
	ctx := context.Background()

	foot := true
	if err := s.SetTranslation(ctx, "user-3", "BSB"); err != nil {
		t.Fatal(err)
	}
	if err := s.SetDisplayPrefs(ctx, "user-3", DisplayPrefsUpdate{Footnotes: &foot}); err != nil {
		t.Fatal(err)
	}
	if err := s.ResetDisplayPrefs(ctx, "user-3"); err != nil {
		t.Fatal(err)
	}

	prefs, err := s.DisplayPrefs(ctx, "user-3")
	if err != nil {
		t.Fatal(err)
	}
	if prefs != DefaultDisplayPrefs() {
		t.Fatalf("reset should restore defaults, got %+v", prefs)
	}
	code, _ := s.Translation(ctx, "user-3")
	if code != "BSB" {
		t.Fatalf("reset must not touch the translation, got %q", code)
	}
}

func TestRedisStoreResetDeletesOrphanKey(t *testing.T) {
	s := newTestRedisStore(t)
	ctx := context.Background()

	foot := true
	if err := s.SetDisplayPrefs(ctx, "user-4", DisplayPrefsUpdate{Footnotes: &foot}); err != nil {
		t.Fatal(err)
	}
	// No translation stored: reset removes the document entirely.
	if err := s.ResetDisplayPrefs(ctx, "user-4"); err != nil {
		t.Fatal(err)
	}
	_, ok, err := s.load(ctx, "user-4")
	if err != nil {
		t.Fatal(err)
	}
	if ok {
		t.Fatal("expected the preference document to be deleted")
	}
}

func TestRedisStoreResetUnknownUserIsNoop(t *testing.T) {
	s := newTestRedisStore(t)
	if err := s.ResetDisplayPrefs(context.Background(), "ghost"); err != nil {
		t.Fatalf("reset for unknown user should be a no-op, got %v", err)
	}
}
