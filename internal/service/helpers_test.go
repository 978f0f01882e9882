package service

import (
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/bookmarket/backend/internal/hash"
	"github.com/bookmarket/backend/internal/models"
	"github.com/bookmarket/backend/internal/repo"
)

func initTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err, "failed to connect to in-memory db")

	require.NoError(t, db.AutoMigrate(&models.Customer{}, &models.Book{}, &models.RefreshToken{}))
	return db
}

func newTokenService() *TokenService {
	return &TokenService{
		JWTSecret:     []byte("test-jwt-secret"),
		RefreshSecret: []byte("test-refresh-secret"),
		AccessTTL:     15 * time.Minute,
		RefreshTTL:    7 * 24 * time.Hour,
	}
}

func seedCustomer(t *testing.T, r *repo.GormRepo, email, password string) *models.Customer {
	t.Helper()

	pwHash, err := hash.HashPassword(password)
	require.NoError(t, err)

	customer := &models.Customer{
		Name:     "test customer",
		Email:    email,
		Password: pwHash,
		Status:   models.CustomerActive,
		Roles:    []string{models.RoleCustomer},
	}
	require.NoError(t, r.DB.Create(customer).Error)
	return customer
}
