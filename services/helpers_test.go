package services

import (
	"context"
	"testing"
	"time"

	"quill/config"
	"quill/database"
	"quill/models"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := database.Connect(&config.Config{DBDriver: "sqlite", DBPath: ":memory:"})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))

	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return db
}

func newTestAuth(t *testing.T, db *gorm.DB) *AuthService {
	t.Helper()
	return NewAuthService(NewUserService(db), NewSessionService(db, time.Hour), "test-secret", zap.NewNop())
}

func mustCreateUser(t *testing.T, db *gorm.DB, email, name string) *models.User {
	t.Helper()
	user, err := NewUserService(db).CreateUser(context.Background(), &models.RegisterRequest{
		Email:    email,
		Password: "pw",
		Name:     name,
	})
	require.NoError(t, err)
	return user
}

func postRequest(title string) *models.PostRequest {
	return &models.PostRequest{
		Title:    title,
		Subtitle: "sub " + title,
		Body:     "<p>body of " + title + "</p>",
		ImgURL:   "https://img.test/" + title + ".png",
	}
}
