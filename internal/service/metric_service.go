package service

import (
	"BizPulse/internal/model"
	"BizPulse/internal/pkg/consts"
	"BizPulse/internal/pkg/graph"
	"BizPulse/internal/pkg/redis"
	"BizPulse/internal/repository"
	"context"
	log "log/slog"
	"strconv"
	"time"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
)

type MetricService interface {
	FetchAndStore(ctx context.Context, account *model.SocialAccount) (*model.Metric, error)
	GetOrFetchToday(ctx context.Context, userID uint64, platform graph.Platform) (*model.Metric, error)
}

type metricServiceImpl struct {
	clients     map[graph.Platform]graph.Client
	accountRepo repository.SocialAccountRepo
	metricRepo  repository.MetricRepo
}

func NewMetricService(
	clients map[graph.Platform]graph.Client,
	accountRepo repository.SocialAccountRepo,
	metricRepo repository.MetricRepo,
) MetricService {
	return &metricServiceImpl{
		clients:     clients,
		accountRepo: accountRepo,
		metricRepo:  metricRepo,
	}
}

// FetchAndStore 抓取平台原始数据，聚合、派生后按日 Upsert。
// 聚合完全在内存完成，入库只有一次写，重复执行幂等
func (s *metricServiceImpl) FetchAndStore(ctx context.Context, account *model.SocialAccount) (*model.Metric, error) {
	client, ok := s.clients[graph.Platform(account.Provider)]
	if !ok {
		return nil, ErrParamInvalid
	}

	raw, err := client.FetchRawMetrics(ctx, account.ProviderID, account.AccessToken)
	if err != nil {
		return nil, err
	}

	totals := graph.Aggregate(raw.Items)
	ratios := graph.DeriveRatios(raw.Followers, totals.Reach, totals.Engagement, totals.ItemCount)

	metric := &model.Metric{
		SocialAccountID:   account.ID,
		Provider:          account.Provider,
		MetricDate:        getMidnight(time.Now()),
		Followers:         raw.Followers,
		MediaCount:        raw.MediaCount,
		PostCount:         totals.ItemCount,
		TotalLikes:        totals.Likes,
		TotalComments:     totals.Comments,
		TotalShares:       totals.Shares,
		TotalReach:        totals.Reach,
		EngagementRate:    ratios.EngagementRate,
		ReachRatio:        ratios.ReachRatio,
		EngagementPerPost: ratios.EngagementPerItem,
	}
	if err = s.metricRepo.SaveOrUpdateMetric(ctx, metric); err != nil {
		return nil, err
	}

	s.cacheTodayMetric(ctx, account.UserID, account.Provider, metric)

	log.InfoContext(ctx, "metric snapshot stored",
		"user_id", account.UserID,
		"platform", account.Provider,
		"followers", metric.Followers,
		"post_count", metric.PostCount,
		"engagement_rate", metric.EngagementRate)
	return metric, nil
}

// GetOrFetchToday 当日快照的读穿透：Redis -> DB -> 实时抓取
func (s *metricServiceImpl) GetOrFetchToday(ctx context.Context, userID uint64, platform graph.Platform) (*model.Metric, error) {
	account, err := s.accountRepo.GetByUserAndProvider(ctx, userID, string(platform))
	if err != nil {
		return nil, err
	}
	if account == nil {
		return nil, ErrAccountNotConnected
	}

	key := metricTodayKey(userID, string(platform))
	cached, err := redis.GetValue(ctx, key)
	if err == nil && cached != "" {
		var metric model.Metric
		if err = json.Unmarshal([]byte(cached), &metric); err == nil {
			return &metric, nil
		}
	}

	today := getMidnight(time.Now())
	metric, err := s.metricRepo.GetMetricByDate(ctx, account.ID, account.Provider, today)
	if err != nil {
		return nil, err
	}
	if metric != nil {
		s.cacheTodayMetric(ctx, userID, account.Provider, metric)
		return metric, nil
	}

	// 只有第一个请求去打上游，其余等待后读库
	lockKey := consts.MetricFetchLock + string(platform) + ":" + strconv.FormatUint(userID, 10)
	lockValue := uuid.NewString()
	lock, err := redis.TryLock(ctx, lockKey, lockValue, time.Minute, 3)
	if err != nil {
		return nil, err
	}
	if !lock {
		return nil, UnExpectedError
	}
	defer redis.UnLock(ctx, lockKey, lockValue)

	metric, err = s.metricRepo.GetMetricByDate(ctx, account.ID, account.Provider, today)
	if err != nil {
		return nil, err
	}
	if metric != nil {
		return metric, nil
	}

	return s.FetchAndStore(ctx, account)
}

func (s *metricServiceImpl) cacheTodayMetric(ctx context.Context, userID uint64, provider string, metric *model.Metric) {
	payload, err := json.Marshal(metric)
	if err != nil {
		return
	}
	expiration := untilMidnight()
	if expiration <= 0 {
		return
	}
	_ = redis.SetWithExpiration(ctx, metricTodayKey(userID, provider), string(payload), expiration)
}

func metricTodayKey(userID uint64, provider string) string {
	return consts.MetricTodayKey + provider + ":" + strconv.FormatUint(userID, 10)
}

func getMidnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// untilMidnight 缓存提前 5 分钟过期，避免跨日读到旧数据
func untilMidnight() time.Duration {
	now := time.Now()
	midnight := time.Date(now.Year(), now.Month(), now.Day()+1, 0, 0, 0, 0, now.Location())
	return time.Until(midnight) - time.Minute*5
}
