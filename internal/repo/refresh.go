package repo

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/bookmarket/backend/internal/models"
)

var ErrRefreshUnusable = errors.New("refresh token expired or revoked")

func (r *GormRepo) StoreRefresh(ctx context.Context, token *models.RefreshToken) error {
	return r.DB.WithContext(ctx).Create(token).Error
}

func (r *GormRepo) FindRefreshByJTI(ctx context.Context, jti string) (*models.RefreshToken, error) {
	var token models.RefreshToken
	if err := r.DB.WithContext(ctx).Where("jti = ?", jti).First(&token).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &token, nil
}

func (r *GormRepo) RevokeRefresh(ctx context.Context, jti string) error {
	return r.DB.WithContext(ctx).Model(&models.RefreshToken{}).
		Where("jti = ?", jti).
		Update("revoked", true).Error
}

// RotateRefresh revokes the old record and stores the replacement in one
// transaction, failing if the old token is already expired or revoked.
func (r *GormRepo) RotateRefresh(ctx context.Context, oldJTI string, replacement *models.RefreshToken) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var stored models.RefreshToken
		if err := tx.Where("jti = ?", oldJTI).First(&stored).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}
		if stored.Revoked || stored.ExpiresAt < time.Now().Unix() {
			return ErrRefreshUnusable
		}

		if err := tx.Model(&models.RefreshToken{}).
			Where("jti = ?", oldJTI).
			Update("revoked", true).Error; err != nil {
			return err
		}

		return tx.Create(replacement).Error
	})
}
