package service

import (
	"BizPulse/internal/model"
	"BizPulse/internal/pkg/consts"
	"BizPulse/internal/pkg/graph"
	"BizPulse/internal/pkg/redis"
	"BizPulse/internal/repository"
	"context"
	log "log/slog"
	"math"
	"strconv"
	"time"

	"github.com/goccy/go-json"
)

// 归一化上限是运营侧标定的经验天花板，不是实测最大值
const (
	maxEngagementRate    = 10.0
	maxReachRatio        = 5.0
	maxEngagementPerPost = 500.0

	weightEngagementRate    = 0.4
	weightReachRatio        = 0.3
	weightEngagementPerPost = 0.3
)

type ScoreService interface {
	CalculateForBusiness(ctx context.Context, businessID uint64, date time.Time) (*model.Score, error)
	GetOrCalculateToday(ctx context.Context, businessID uint64) (*model.Score, error)
}

type scoreServiceImpl struct {
	metricRepo repository.MetricRepo
	scoreRepo  repository.ScoreRepo
}

func NewScoreService(metricRepo repository.MetricRepo, scoreRepo repository.ScoreRepo) ScoreService {
	return &scoreServiceImpl{
		metricRepo: metricRepo,
		scoreRepo:  scoreRepo,
	}
}

// CalculateForBusiness 取当日各平台最新快照算分并 Upsert。
// 未连接的平台按 0 分计入，总分固定除以 2，与既有口径保持一致
// （只连一个平台的商家会被拉低，这是延续下来的策略，改动需要运营确认）
func (s *scoreServiceImpl) CalculateForBusiness(ctx context.Context, businessID uint64, date time.Time) (*model.Score, error) {
	date = getMidnight(date)

	igMetric, err := s.metricRepo.GetLatestMetricForBusiness(ctx, businessID, string(graph.PlatformInstagram), date)
	if err != nil {
		return nil, err
	}
	fbMetric, err := s.metricRepo.GetLatestMetricForBusiness(ctx, businessID, string(graph.PlatformFacebook), date)
	if err != nil {
		return nil, err
	}

	var instagramScore, facebookScore float64
	if igMetric != nil {
		instagramScore = scorePlatform(igMetric)
	}
	if fbMetric != nil {
		facebookScore = scorePlatform(fbMetric)
	}

	score := &model.Score{
		BusinessID:     businessID,
		ScoreDate:      date,
		InstagramScore: instagramScore,
		FacebookScore:  facebookScore,
		FinalScore:     roundScore((instagramScore + facebookScore) / 2),
	}
	if err = s.scoreRepo.SaveOrUpdateScore(ctx, score); err != nil {
		return nil, err
	}

	log.InfoContext(ctx, "score calculated",
		"business_id", businessID,
		"date", date.Format("2006-01-02"),
		"instagram", instagramScore,
		"facebook", facebookScore,
		"final", score.FinalScore)
	return score, nil
}

// GetOrCalculateToday 当日评分的读穿透：Redis -> DB -> 现算
func (s *scoreServiceImpl) GetOrCalculateToday(ctx context.Context, businessID uint64) (*model.Score, error) {
	key := consts.ScoreTodayKey + strconv.FormatUint(businessID, 10)
	cached, err := redis.GetValue(ctx, key)
	if err == nil && cached != "" {
		var score model.Score
		if err = json.Unmarshal([]byte(cached), &score); err == nil {
			return &score, nil
		}
	}

	today := getMidnight(time.Now())
	score, err := s.scoreRepo.GetScoreByDate(ctx, businessID, today)
	if err != nil {
		return nil, err
	}
	if score == nil {
		score, err = s.CalculateForBusiness(ctx, businessID, today)
		if err != nil {
			return nil, err
		}
	}

	s.cacheTodayScore(ctx, key, score)
	return score, nil
}

func (s *scoreServiceImpl) cacheTodayScore(ctx context.Context, key string, score *model.Score) {
	payload, err := json.Marshal(score)
	if err != nil {
		return
	}
	expiration := untilMidnight()
	if expiration <= 0 {
		return
	}
	_ = redis.SetWithExpiration(ctx, key, string(payload), expiration)
}

// scorePlatform 三项指标各自 min-max 归一化后加权求和，结果落在 [0,100]
func scorePlatform(metric *model.Metric) float64 {
	er := normalize(metric.EngagementRate, 0, maxEngagementRate)
	rr := normalize(metric.ReachRatio, 0, maxReachRatio)
	epp := normalize(metric.EngagementPerPost, 0, maxEngagementPerPost)

	return roundScore(weightEngagementRate*er + weightReachRatio*rr + weightEngagementPerPost*epp)
}

// normalize 截断式 min-max 缩放到 [0,100]
func normalize(value float64, min float64, max float64) float64 {
	if value <= min {
		return 0
	}
	if value >= max {
		return 100
	}
	return (value - min) / (max - min) * 100
}

func roundScore(v float64) float64 {
	return math.Round(v*100) / 100
}
