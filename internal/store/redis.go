package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/prinketaru/scriptura/internal/bible"
)

const (
	prefKeyPrefix = "prefs:"
	redisOpWindow = 3 * time.Second
)

// prefDoc is the JSON document stored per user key.
type prefDoc struct {
	Translation string      `json:"translation,omitempty"`
	Display     *displayDoc `json:"display,omitempty"`
}

type displayDoc struct {
	Footnotes    bool   `json:"footnotes"`
	Headings     string `json:"headings"`
	VerseNumbers bool   `json:"verseNumbers"`
	LineByLine   string `json:"lineByLine"`
}

// RedisStore keeps one JSON preference document per user key.
type RedisStore struct {
	client *redis.Client
}

// NewRedisStore builds a Redis-backed preference store.
func NewRedisStore(addr, password string) *RedisStore {
	return &RedisStore{
		client: redis.NewClient(&redis.Options{
			Addr:     addr,
			Password: password,
		}),
	}
}

// Translation returns the stored code or "".
func (s *RedisStore) Translation(ctx context.Context, userID string) (string, error) {
	doc, _, err := s.load(ctx, userID)
	if err != nil {
		return "", err
	}
	return doc.Translation, nil
}

// SetTranslation upserts the preferred translation.
func (s *RedisStore) SetTranslation(ctx context.Context, userID, code string) error {
	doc, _, err := s.load(ctx, userID)
	if err != nil {
		return err
	}
	doc.Translation = code
	return s.save(ctx, userID, doc)
}

// DisplayPrefs returns the stored sub-record with defaults filled in.
func (s *RedisStore) DisplayPrefs(ctx context.Context, userID string) (DisplayPrefs, error) {
	doc, _, err := s.load(ctx, userID)
	if err != nil {
		return DisplayPrefs{}, err
	}
	if doc.Display == nil {
		return DefaultDisplayPrefs(), nil
	}
	return normalize(DisplayPrefs{
		Footnotes:    doc.Display.Footnotes,
		Headings:     bible.TriState(doc.Display.Headings),
		VerseNumbers: doc.Display.VerseNumbers,
		LineByLine:   bible.TriState(doc.Display.LineByLine),
	}), nil
}

// SetDisplayPrefs merges a partial update over the stored sub-record.
// Read-modify-write without locking: last writer wins, and a user only ever
// writes their own key.
func (s *RedisStore) SetDisplayPrefs(ctx context.Context, userID string, upd DisplayPrefsUpdate) error {
	doc, _, err := s.load(ctx, userID)
	if err != nil {
		return err
	}
	base := DefaultDisplayPrefs()
	if doc.Display != nil {
		base = normalize(DisplayPrefs{
			Footnotes:    doc.Display.Footnotes,
			Headings:     bible.TriState(doc.Display.Headings),
			VerseNumbers: doc.Display.VerseNumbers,
			LineByLine:   bible.TriState(doc.Display.LineByLine),
		})
	}
	next := upd.Apply(base)
	doc.Display = &displayDoc{
		Footnotes:    next.Footnotes,
		Headings:     string(next.Headings),
		VerseNumbers: next.VerseNumbers,
		LineByLine:   string(next.LineByLine),
	}
	return s.save(ctx, userID, doc)
}

// ResetDisplayPrefs drops the display sub-record, keeping the translation.
func (s *RedisStore) ResetDisplayPrefs(ctx context.Context, userID string) error {
	doc, ok, err := s.load(ctx, userID)
	if err != nil || !ok {
		return err
	}
	doc.Display = nil
	if doc.Translation == "" {
		ctx, cancel := opContext(ctx)
		defer cancel()
		if err := s.client.Del(ctx, prefKeyPrefix+userID).Err(); err != nil && !errors.Is(err, redis.Nil) {
			return err
		}
		return nil
	}
	return s.save(ctx, userID, doc)
}

// Close shuts down the client connection pool.
func (s *RedisStore) Close() error { return s.client.Close() }

func (s *RedisStore) load(ctx context.Context, userID string) (prefDoc, bool, error) {
	ctx, cancel := opContext(ctx)
	defer cancel()
	raw, err := s.client.Get(ctx, prefKeyPrefix+userID).Result()
	if errors.Is(err, redis.Nil) {
		return prefDoc{}, false, nil
	}
	if err != nil {
		return prefDoc{}, false, err
	}
	var doc prefDoc
	if err := json.Unmarshal([]byte(raw), &doc); err != nil {
		return prefDoc{}, false, fmt.Errorf("decode preference doc: %w", err)
	}
	return doc, true, nil
}

func (s *RedisStore) save(ctx context.Context, userID string, doc prefDoc) error {
	data, err := json.Marshal(doc)
	if err != nil {
		return err
	}
	ctx, cancel := opContext(ctx)
	defer cancel()
	return s.client.Set(ctx, prefKeyPrefix+userID, data, 0).Err()
}

func opContext(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, redisOpWindow)
}
