package service

import (
	"BizPulse/internal/model"
	"BizPulse/internal/pkg/graph"
	"BizPulse/internal/pkg/redis"
	"context"
	"errors"
	"testing"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// 缓存写入是尽力而为的，指向一个连不上的实例即可让测试跑通
func init() {
	redis.Rdb = goredis.NewClient(&goredis.Options{Addr: "127.0.0.1:0"})
}

func TestFetchAndStore(t *testing.T) {
	client := &fakeGraphClient{
		platform: graph.PlatformInstagram,
		fetchRawFn: func(_ context.Context, accountID string, accessToken string) (*graph.RawMetrics, error) {
			assert.Equal(t, "acc-1", accountID)
			assert.Equal(t, "token-1", accessToken)
			return &graph.RawMetrics{
				Followers:  1000,
				MediaCount: 25,
				Items: []graph.RawItem{
					{Likes: 40, Comments: 10, Reach: 800},
					{Likes: 10, Comments: 5, Shares: 2, Reach: 200},
				},
			}, nil
		},
	}
	metricRepo := &fakeMetricRepo{}
	svc := NewMetricService(
		map[graph.Platform]graph.Client{graph.PlatformInstagram: client},
		&fakeAccountRepo{},
		metricRepo,
	)

	account := &model.SocialAccount{
		ID:          5,
		UserID:      7,
		Provider:    "instagram",
		ProviderID:  "acc-1",
		AccessToken: "token-1",
	}
	metric, err := svc.FetchAndStore(context.Background(), account)

	require.NoError(t, err)
	require.Len(t, metricRepo.saved, 1)

	assert.Equal(t, uint64(5), metric.SocialAccountID)
	assert.Equal(t, "instagram", metric.Provider)
	assert.Equal(t, 1000, metric.Followers)
	assert.Equal(t, 25, metric.MediaCount)
	assert.Equal(t, 2, metric.PostCount)
	assert.Equal(t, 50, metric.TotalLikes)
	assert.Equal(t, 15, metric.TotalComments)
	assert.Equal(t, 2, metric.TotalShares)
	assert.Equal(t, 1000, metric.TotalReach)
	assert.Equal(t, 6.7, metric.EngagementRate)
	assert.Equal(t, 1.0, metric.ReachRatio)
	assert.Equal(t, 33.5, metric.EngagementPerPost)

	// 快照日期归一到当日零点，重复抓取命中同一条唯一键
	now := time.Now()
	expected := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	assert.Equal(t, expected, metric.MetricDate)
}

// 上游失败时不写任何数据，保留前一天的快照
func TestFetchAndStoreUpstreamFailure(t *testing.T) {
	client := &fakeGraphClient{
		platform: graph.PlatformInstagram,
		fetchRawFn: func(_ context.Context, _ string, _ string) (*graph.RawMetrics, error) {
			return nil, errors.New("upstream down")
		},
	}
	metricRepo := &fakeMetricRepo{}
	svc := NewMetricService(
		map[graph.Platform]graph.Client{graph.PlatformInstagram: client},
		&fakeAccountRepo{},
		metricRepo,
	)

	metric, err := svc.FetchAndStore(context.Background(), &model.SocialAccount{Provider: "instagram"})

	require.Error(t, err)
	assert.Nil(t, metric)
	assert.Empty(t, metricRepo.saved)
}

func TestFetchAndStoreUnknownPlatform(t *testing.T) {
	svc := NewMetricService(map[graph.Platform]graph.Client{}, &fakeAccountRepo{}, &fakeMetricRepo{})

	metric, err := svc.FetchAndStore(context.Background(), &model.SocialAccount{Provider: "myspace"})

	assert.Nil(t, metric)
	assert.ErrorIs(t, err, ErrParamInvalid)
}

func TestGetOrFetchTodayNotConnected(t *testing.T) {
	svc := NewMetricService(
		map[graph.Platform]graph.Client{},
		&fakeAccountRepo{},
		&fakeMetricRepo{},
	)

	metric, err := svc.GetOrFetchToday(context.Background(), 7, graph.PlatformInstagram)

	assert.Nil(t, metric)
	assert.ErrorIs(t, err, ErrAccountNotConnected)
}
