package repository

import (
	"BizPulse/internal/model"
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ScoreRepo interface {
	SaveOrUpdateScore(ctx context.Context, score *model.Score) error
	GetScoreByDate(ctx context.Context, businessID uint64, date time.Time) (*model.Score, error)
}

type scoreRepoImpl struct {
	db *gorm.DB
}

func NewScoreRepo(db *gorm.DB) ScoreRepo {
	return &scoreRepoImpl{db: db}
}

// SaveOrUpdateScore 采用 Upsert 逻辑，business_id + score_date 唯一
func (r *scoreRepoImpl) SaveOrUpdateScore(ctx context.Context, score *model.Score) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "business_id"}, {Name: "score_date"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"instagram_score",
			"facebook_score",
			"final_score",
		}),
	}).Create(score).Error
}

func (r *scoreRepoImpl) GetScoreByDate(ctx context.Context, businessID uint64, date time.Time) (*model.Score, error) {
	var score model.Score
	err := r.db.WithContext(ctx).
		Where("business_id = ? AND score_date = ?", businessID, date).
		First(&score).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &score, nil
}
