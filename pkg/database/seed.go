package database

import (
	"context"
	"errors"
	"fmt"

	"github.com/Payphone-Digital/auth-service/internal/model"
	"gorm.io/gorm"
)

// DemoUser is a fixture account created by the opt-in seed
type DemoUser struct {
	Name     string
	Email    string
	Role     string
	Password string
}

// HashFunc hashes a plaintext password for storage
type HashFunc func(ctx context.Context, plaintext string) (string, error)

// GetDemoUsers returns the demo accounts. Never enable in production.
func GetDemoUsers() []DemoUser {
	return []DemoUser{
		{Name: "Jane Doe", Email: "jane@example.com", Role: "admin", Password: "password123"},
		{Name: "John Doe", Email: "john@example.com", Role: "staff", Password: "password123"},
	}
}

// SeedDemoUsers creates each demo user that does not exist yet and returns how many were created
func SeedDemoUsers(ctx context.Context, db *gorm.DB, hash HashFunc) (int, error) {
	created := 0
	for _, demo := range GetDemoUsers() {
		var existing model.User
		err := db.WithContext(ctx).Where("email = ?", demo.Email).First(&existing).Error
		if err == nil {
			continue
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return created, err
		}

		hashed, err := hash(ctx, demo.Password)
		if err != nil {
			return created, fmt.Errorf("hash password for %s: %w", demo.Email, err)
		}

		user := model.User{
			Name:     demo.Name,
			Email:    demo.Email,
			Role:     demo.Role,
			Password: hashed,
		}
		if err := db.WithContext(ctx).Omit("RefreshTokens").Create(&user).Error; err != nil {
			return created, err
		}
		created++
	}
	return created, nil
}
