package model

import (
	"time"
)

// SocialAccount 一个商家与一个平台的绑定关系，令牌只存在这里
type SocialAccount struct {
	ID          uint64     `gorm:"primaryKey" json:"id"`
	UserID      uint64     `gorm:"not null;index:idx_user_provider,unique" json:"userId"`
	Provider    string     `gorm:"type:varchar(20);not null;index:idx_user_provider,unique;index:idx_provider_account,unique" json:"provider"`
	ProviderID  string     `gorm:"type:varchar(100);not null;index:idx_provider_account,unique" json:"providerId"`
	Name        string     `gorm:"type:varchar(100)" json:"name"`
	Avatar      string     `gorm:"type:varchar(500)" json:"avatar"`
	AccessToken string     `gorm:"type:text;not null" json:"-"`
	ExpiresAt   *time.Time `json:"expiresAt"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

func (SocialAccount) TableName() string {
	return "social_accounts"
}
