package model

import "time"

type User struct {
	ID            uint           `gorm:"primaryKey"`
	Name          string         `gorm:"column:name;size:100;not null"`
	Email         string         `gorm:"column:email;size:255;uniqueIndex;not null"`
	Role          string         `gorm:"column:role;size:20;default:staff;not null"`
	Password      string         `gorm:"column:password;not null" json:"-"`
	CreatedAt     time.Time      `gorm:"column:created_at;index"`
	UpdatedAt     time.Time      `gorm:"column:updated_at"`
	RefreshTokens []RefreshToken `gorm:"constraint:OnDelete:CASCADE"`
}
