package model

import "time"

// RefreshToken is an opaque long-lived token row. The token value itself is
// the lookup key; rows are removed on logout or when found expired.
type RefreshToken struct {
	ID        uint      `gorm:"primaryKey"`
	Token     string    `gorm:"column:token;size:255;uniqueIndex;not null"`
	UserID    uint      `gorm:"column:user_id;index;not null"`
	User      User      `gorm:"foreignKey:UserID"`
	ExpiresAt time.Time `gorm:"column:expires_at;not null"`
	CreatedAt time.Time `gorm:"column:created_at"`
}

// IsExpired reports whether the token is past its expiry at now.
// A token is still valid at exactly ExpiresAt.
func (t *RefreshToken) IsExpired(now time.Time) bool {
	return now.After(t.ExpiresAt)
}
