package repository

import (
	"context"
	"testing"
	"time"

	"github.com/Payphone-Digital/auth-service/internal/model"
	"github.com/Payphone-Digital/auth-service/pkg/database"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	cfg := database.GormConfig("test")
	cfg.Logger = gormlogger.Default.LogMode(gormlogger.Silent)
	db, err := gorm.Open(sqlite.Open(":memory:"), cfg)
	require.NoError(t, err)

	// every connection to :memory: is a fresh database
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, database.AutoMigrate(db))

	t.Cleanup(func() {
		_ = sqlDB.Close()
	})
	return db
}

func createUser(t *testing.T, repo *UserRepository, name, email string) *model.User {
	t.Helper()

	user := &model.User{Name: name, Email: email, Role: "staff", Password: "hash"}
	require.NoError(t, repo.Create(context.Background(), user))
	return user
}

func createToken(t *testing.T, repo *RefreshTokenRepository, userID uint, value string, expiresAt time.Time) *model.RefreshToken {
	t.Helper()

	token := &model.RefreshToken{Token: value, UserID: userID, ExpiresAt: expiresAt}
	require.NoError(t, repo.Create(context.Background(), token))
	return token
}
