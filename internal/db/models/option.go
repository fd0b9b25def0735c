// Package models contains database model definitions.
package models

// Option is a named value persisted in the options table.
// Values are opaque bytes, typed access lives in the option controller.
type Option struct {
	ID    uint64 `gorm:"primaryKey"`
	Name  string `gorm:"size:191;uniqueIndex;not null"`
	Value []byte
}

// TableName specifies the database table name for the Option model.
func (Option) TableName() string {
	return "options"
}
