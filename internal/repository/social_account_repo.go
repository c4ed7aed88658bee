package repository

import (
	"BizPulse/internal/model"
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type SocialAccountRepo interface {
	SaveOrUpdateAccount(ctx context.Context, account *model.SocialAccount) error
	GetByUserAndProvider(ctx context.Context, userID uint64, provider string) (*model.SocialAccount, error)
	GetAccountsByProvider(ctx context.Context, provider string) ([]*model.SocialAccount, error)
	UpdateToken(ctx context.Context, id uint64, accessToken string, expiresAt *time.Time) error
}

type socialAccountRepoImpl struct {
	db *gorm.DB
}

func NewSocialAccountRepo(db *gorm.DB) SocialAccountRepo {
	return &socialAccountRepoImpl{db: db}
}

// SaveOrUpdateAccount 采用 Upsert 逻辑，provider + provider_id 已存在则整体覆盖
func (r *socialAccountRepoImpl) SaveOrUpdateAccount(ctx context.Context, account *model.SocialAccount) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "provider"}, {Name: "provider_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"user_id",
			"name",
			"avatar",
			"access_token",
			"expires_at",
		}),
	}).Create(account).Error
}

func (r *socialAccountRepoImpl) GetByUserAndProvider(ctx context.Context, userID uint64, provider string) (*model.SocialAccount, error) {
	account := &model.SocialAccount{}
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND provider = ?", userID, provider).
		First(account).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return account, nil
}

func (r *socialAccountRepoImpl) GetAccountsByProvider(ctx context.Context, provider string) ([]*model.SocialAccount, error) {
	accounts := make([]*model.SocialAccount, 0)
	result := r.db.WithContext(ctx).
		Where("provider = ?", provider).
		Find(&accounts)
	if result.Error != nil {
		return nil, result.Error
	}
	return accounts, nil
}

// UpdateToken 只覆盖令牌相关字段，刷新失败时调用方不应走到这里
func (r *socialAccountRepoImpl) UpdateToken(ctx context.Context, id uint64, accessToken string, expiresAt *time.Time) error {
	return r.db.WithContext(ctx).
		Model(&model.SocialAccount{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"access_token": accessToken,
			"expires_at":   expiresAt,
		}).Error
}
