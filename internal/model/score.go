package model

import (
	"time"
)

// Score 商家单日综合评分，可随时由 Metric 重算，属于缓存性质的数据
type Score struct {
	ID             uint64    `gorm:"primaryKey" json:"id"`
	BusinessID     uint64    `gorm:"not null;index:idx_business_date,unique" json:"businessId"`
	ScoreDate      time.Time `gorm:"type:date;not null;index:idx_business_date,unique;column:score_date" json:"scoreDate"`
	InstagramScore float64   `gorm:"not null;default:0" json:"instagramScore"`
	FacebookScore  float64   `gorm:"not null;default:0" json:"facebookScore"`
	FinalScore     float64   `gorm:"not null;default:0" json:"finalScore"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

func (Score) TableName() string {
	return "scores"
}
