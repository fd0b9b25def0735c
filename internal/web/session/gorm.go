package session

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/render-shortcodes/render/internal/db/models"
)

// GormStorage is a fiber.Storage backed by the sessions table.
type GormStorage struct {
	db  *gorm.DB
	now func() time.Time
}

var _ fiber.Storage = (*GormStorage)(nil)

// NewGormStorage returns a storage using db. The sessions table must exist.
func NewGormStorage(db *gorm.DB) *GormStorage {
	return &GormStorage{db: db, now: time.Now}
}

// Get returns the stored value, nil for missing or expired keys.
func (s *GormStorage) Get(key string) ([]byte, error) {
	if key == "" {
		return nil, nil
	}

	var row models.Session

	err := s.db.Where("id = ?", key).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}

	if err != nil {
		return nil, err
	}

	if row.ExpiresAt != 0 && row.ExpiresAt <= s.now().Unix() {
		return nil, nil
	}

	return row.Data, nil
}

// Set stores val under key. A zero exp never expires.
func (s *GormStorage) Set(key string, val []byte, exp time.Duration) error {
	if key == "" || len(val) == 0 {
		return nil
	}

	row := models.Session{ID: key, Data: val}
	if exp > 0 {
		row.ExpiresAt = s.now().Add(exp).Unix()
	}

	return s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{"data", "expires_at"}),
	}).Create(&row).Error
}

// Delete removes key.
func (s *GormStorage) Delete(key string) error {
	if key == "" {
		return nil
	}

	return s.db.Where("id = ?", key).Delete(&models.Session{}).Error
}

// Reset removes every session.
func (s *GormStorage) Reset() error {
	return s.db.Where("1 = 1").Delete(&models.Session{}).Error
}

// Close is a no-op, the database is owned by the caller.
func (s *GormStorage) Close() error {
	return nil
}

// GC removes expired sessions and returns how many were removed.
func (s *GormStorage) GC() (int64, error) {
	result := s.db.Where("expires_at <> 0 AND expires_at <= ?", s.now().Unix()).Delete(&models.Session{})
	return result.RowsAffected, result.Error
}
