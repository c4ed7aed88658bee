package repository

import (
	"BizPulse/internal/model"
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type MetricRepo interface {
	SaveOrUpdateMetric(ctx context.Context, metric *model.Metric) error
	GetMetricByDate(ctx context.Context, socialAccountID uint64, provider string, date time.Time) (*model.Metric, error)
	GetLatestMetricForBusiness(ctx context.Context, businessID uint64, provider string, date time.Time) (*model.Metric, error)
}

type metricRepoImpl struct {
	db *gorm.DB
}

func NewMetricRepo(db *gorm.DB) MetricRepo {
	return &metricRepoImpl{db: db}
}

// SaveOrUpdateMetric 采用 Upsert 逻辑。同账号同平台同日重复抓取只保留最新一次
func (r *metricRepoImpl) SaveOrUpdateMetric(ctx context.Context, metric *model.Metric) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "social_account_id"}, {Name: "provider"}, {Name: "metric_date"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"followers",
			"media_count",
			"post_count",
			"total_likes",
			"total_comments",
			"total_shares",
			"total_reach",
			"engagement_rate",
			"reach_ratio",
			"engagement_per_post",
		}),
	}).Create(metric).Error
}

func (r *metricRepoImpl) GetMetricByDate(ctx context.Context, socialAccountID uint64, provider string, date time.Time) (*model.Metric, error) {
	var metric model.Metric
	err := r.db.WithContext(ctx).
		Where("social_account_id = ? AND provider = ? AND metric_date = ?", socialAccountID, provider, date).
		First(&metric).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &metric, nil
}

// GetLatestMetricForBusiness 取商家某平台当日最新一条快照，用于算分
func (r *metricRepoImpl) GetLatestMetricForBusiness(ctx context.Context, businessID uint64, provider string, date time.Time) (*model.Metric, error) {
	var metric model.Metric
	err := r.db.WithContext(ctx).
		Joins("JOIN social_accounts ON social_accounts.id = metrics.social_account_id").
		Where("social_accounts.user_id = ? AND metrics.provider = ? AND metrics.metric_date = ?", businessID, provider, date).
		Order("metrics.id DESC").
		First(&metric).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &metric, nil
}
