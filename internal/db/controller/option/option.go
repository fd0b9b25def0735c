// Package option provides CRUD operations for named options, the service's
// key/value persistence.
package option

import (
	"encoding/json"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/render-shortcodes/render/internal/db/models"
)

const (
	nameQueryPattern = "name = ?"
)

var (
	// ErrOptionNotFound is returned when an option is not found.
	ErrOptionNotFound = errors.New("option not found")
	// ErrOptionNameEmpty is returned when attempting to read or write an option with an empty name.
	ErrOptionNameEmpty = errors.New("option name cannot be empty")
	// ErrDBNil is returned when the database connection is nil.
	ErrDBNil = errors.New("database connection is nil")
)

func check(db *gorm.DB, name string) error {
	if db == nil {
		return ErrDBNil
	}

	if name == "" {
		return ErrOptionNameEmpty
	}

	return nil
}

// Get retrieves an option by its name.
func Get(db *gorm.DB, name string) (*models.Option, error) {
	if err := check(db, name); err != nil {
		return nil, err
	}

	var opt models.Option

	result := db.Where(nameQueryPattern, name).First(&opt)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrOptionNotFound
		}

		return nil, result.Error
	}

	return &opt, nil
}

// Set creates or updates an option by name in a single upsert statement.
func Set(db *gorm.DB, name string, value []byte) (*models.Option, error) {
	if err := check(db, name); err != nil {
		return nil, err
	}

	opt := models.Option{Name: name, Value: value}

	result := db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "name"}},
		DoUpdates: clause.AssignmentColumns([]string{"value"}),
	}).Create(&opt)
	if result.Error != nil {
		return nil, result.Error
	}

	// the id is not reported back on every engine when the row already existed
	return Get(db, name)
}

// Delete deletes an option by name. Deleting a missing option returns ErrOptionNotFound.
func Delete(db *gorm.DB, name string) error {
	if err := check(db, name); err != nil {
		return err
	}

	result := db.Where(nameQueryPattern, name).Delete(&models.Option{})
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return ErrOptionNotFound
	}

	return nil
}

// GetString returns the option value as string, or def when the option does not exist.
func GetString(db *gorm.DB, name, def string) (string, error) {
	opt, err := Get(db, name)
	if errors.Is(err, ErrOptionNotFound) {
		return def, nil
	}

	if err != nil {
		return def, err
	}

	return string(opt.Value), nil
}

// SetString stores a string option.
func SetString(db *gorm.DB, name, value string) error {
	_, err := Set(db, name, []byte(value))

	return err
}

// GetJSON decodes a JSON option into v. It returns ErrOptionNotFound when the option is missing.
func GetJSON(db *gorm.DB, name string, v any) error {
	opt, err := Get(db, name)
	if err != nil {
		return err
	}

	if err = json.Unmarshal(opt.Value, v); err != nil {
		return fmt.Errorf("option %s: %w", name, err)
	}

	return nil
}

// SetJSON encodes v as JSON and stores it.
func SetJSON(db *gorm.DB, name string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("option %s: %w", name, err)
	}

	_, err = Set(db, name, data)

	return err
}

// UserKey returns the option name of a per-user preference.
func UserKey(userID uint64, name string) string {
	return fmt.Sprintf("user_%d_%s", userID, name)
}
