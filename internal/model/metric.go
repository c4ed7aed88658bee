package model

import (
	"time"
)

// Metric 单账号单平台一天的聚合指标快照。
// 三个比率字段始终由原始计数重算得到，不允许手工修改
type Metric struct {
	ID                uint64    `gorm:"primaryKey" json:"id"`
	SocialAccountID   uint64    `gorm:"not null;index:idx_account_provider_date,unique" json:"socialAccountId"`
	Provider          string    `gorm:"type:varchar(20);not null;index:idx_account_provider_date,unique" json:"provider"`
	MetricDate        time.Time `gorm:"type:date;not null;index:idx_account_provider_date,unique;column:metric_date" json:"metricDate"`
	Followers         int       `gorm:"not null;default:0" json:"followers"`
	MediaCount        int       `gorm:"not null;default:0" json:"mediaCount"`
	PostCount         int       `gorm:"not null;default:0" json:"postCount"`
	TotalLikes        int       `gorm:"not null;default:0" json:"totalLikes"`
	TotalComments     int       `gorm:"not null;default:0" json:"totalComments"`
	TotalShares       int       `gorm:"not null;default:0" json:"totalShares"`
	TotalReach        int       `gorm:"not null;default:0" json:"totalReach"`
	EngagementRate    float64   `gorm:"not null;default:0" json:"engagementRate"`
	ReachRatio        float64   `gorm:"not null;default:0" json:"reachRatio"`
	EngagementPerPost float64   `gorm:"not null;default:0" json:"engagementPerPost"`
	CreatedAt         time.Time `json:"createdAt"`
	UpdatedAt         time.Time `json:"updatedAt"`
}

func (Metric) TableName() string {
	return "metrics"
}
