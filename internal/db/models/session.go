package models

// Session is a stored web session, used when the database engine has no
// dedicated fiber session storage.
type Session struct {
	// ID is the session key.
	ID string `gorm:"primaryKey;size:128"`
	// Data holds the encoded session payload.
	Data []byte
	// ExpiresAt is the unix time after which the session is invalid, 0 never expires.
	ExpiresAt int64 `gorm:"index"`
}

// TableName specifies the database table name for the Session model.
func (Session) TableName() string {
	return "sessions"
}
