package database

import (
	"BizPulse/internal/model"

	"gorm.io/gorm"
)

// Migrate 启动时按模型结构建表补列，唯一索引由模型标签声明
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&model.User{},
		&model.SocialAccount{},
		&model.Metric{},
		&model.Score{},
	)
}
