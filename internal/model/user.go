package model

import (
	"time"
)

type User struct {
	ID        uint64 `gorm:"primaryKey"`
	Name      string `gorm:"type:varchar(100);not null"`
	Email     string `gorm:"type:varchar(100);not null;uniqueIndex:idx_email"`
	Password  string `gorm:"type:varchar(255);not null"`
	CreatedAt time.Time
	UpdatedAt time.Time

	SocialAccounts []SocialAccount `gorm:"foreignKey:UserID;references:ID"`
}

func (User) TableName() string {
	return "users"
}
