package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/prinketaru/scriptura/internal/bible"
)

// PrefModel is the user_preferences row.
type PrefModel struct {
	UserID       string `gorm:"primaryKey;column:user_id"`
	Translation  string `gorm:"column:translation"`
	HasDisplay   bool   `gorm:"column:has_display"`
	Footnotes    bool   `gorm:"column:footnotes"`
	Headings     string `gorm:"column:headings"`
	VerseNumbers bool   `gorm:"column:verse_numbers"`
	LineByLine   string `gorm:"column:line_by_line"`
	UpdatedAt    time.Time
}

// TableName fixes the table name independent of GORM pluralization.
func (PrefModel) TableName() string { return "user_preferences" }

// GormStore persists preferences in Postgres via GORM.
type GormStore struct {
	db *gorm.DB
}

// NewGormStore opens the database and runs auto-migrations.
func NewGormStore(dsn string) (*GormStore, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	if err := db.AutoMigrate(&PrefModel{}); err != nil {
		return nil, fmt.Errorf("auto migrate: %w", err)
	}
	return &GormStore{db: db}, nil
}

// Translation returns the stored code or "".
func (s *GormStore) Translation(ctx context.Context, userID string) (string, error) {
	model, ok, err := s.load(ctx, userID)
	if err != nil || !ok {
		return "", err
	}
	return model.Translation, nil
}

// SetTranslation upserts the preferred translation, leaving display columns
// as they are. Last writer wins; writes are never contended across users.
func (s *GormStore) SetTranslation(ctx context.Context, userID, code string) error {
	model := PrefModel{UserID: userID, Translation: code, UpdatedAt: time.Now().UTC()}
	return s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"translation", "updated_at"}),
	}).Create(&model).Error
}

// DisplayPrefs returns the stored sub-record with defaults filled in.
func (s *GormStore) DisplayPrefs(ctx context.Context, userID string) (DisplayPrefs, error) {
	model, ok, err := s.load(ctx, userID)
	if err != nil {
		return DisplayPrefs{}, err
	}
	if !ok || !model.HasDisplay {
		return DefaultDisplayPrefs(), nil
	}
	return normalize(DisplayPrefs{
		Footnotes:    model.Footnotes,
		Headings:     bible.TriState(model.Headings),
		VerseNumbers: model.VerseNumbers,
		LineByLine:   bible.TriState(model.LineByLine),
	}), nil
}

// SetDisplayPrefs merges a partial update over the stored sub-record.
func (s *GormStore) SetDisplayPrefs(ctx context.Context, userID string, upd DisplayPrefsUpdate) error {
	current, err := s.DisplayPrefs(ctx, userID)
	if err != nil {
		return err
	}
	next := upd.Apply(current)

	translation, err := s.Translation(ctx, userID)
	if err != nil {
		return err
	}
	model := PrefModel{
		UserID:       userID,
		Translation:  translation,
		HasDisplay:   true,
		Footnotes:    next.Footnotes,
		Headings:     string(next.Headings),
		VerseNumbers: next.VerseNumbers,
		LineByLine:   string(next.LineByLine),
		UpdatedAt:    time.Now().UTC(),
	}
	return s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"has_display", "footnotes", "headings", "verse_numbers", "line_by_line", "updated_at"}),
	}).Create(&model).Error
}

// ResetDisplayPrefs clears the display sub-record only.
func (s *GormStore) ResetDisplayPrefs(ctx context.Context, userID string) error {
	return s.db.WithContext(ctx).Model(&PrefModel{}).
		Where("user_id = ?", userID).
		Updates(map[string]any{
			"has_display":   false,
			"footnotes":     false,
			"headings":      "",
			"verse_numbers": false,
			"line_by_line":  "",
			"updated_at":    time.Now().UTC(),
		}).Error
}

// Close releases the underlying connection pool.
func (s *GormStore) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func (s *GormStore) load(ctx context.Context, userID string) (PrefModel, bool, error) {
	var model PrefModel
	if err := s.db.WithContext(ctx).First(&model, "user_id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return PrefModel{}, false, nil
		}
		return PrefModel{}, false, err
	}
	return model, true, nil
}
