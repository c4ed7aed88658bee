package service

import (
	"BizPulse/internal/model"
	"BizPulse/internal/pkg/graph"
	"context"
	"time"
)

// fakeGraphClient 按需注入各操作的行为，未注入的操作不应被调用
type fakeGraphClient struct {
	platform     graph.Platform
	refreshFn    func(ctx context.Context, accessToken string) (*graph.TokenResult, error)
	fetchRawFn   func(ctx context.Context, accountID string, accessToken string) (*graph.RawMetrics, error)
	exchangeFn   func(ctx context.Context, shortLivedToken string) (*graph.TokenResult, error)
	resolveFn    func(ctx context.Context, identity *graph.ExternalIdentity, longLivedToken string) (*graph.ResolvedAccount, error)
	identityFn   func(ctx context.Context, code string) (*graph.ExternalIdentity, error)
	authorizeURL string
}

func (c *fakeGraphClient) Platform() graph.Platform {
	return c.platform
}

func (c *fakeGraphClient) AuthorizeURL(state string) string {
	return c.authorizeURL + "?state=" + state
}

func (c *fakeGraphClient) FetchIdentity(ctx context.Context, code string) (*graph.ExternalIdentity, error) {
	return c.identityFn(ctx, code)
}

func (c *fakeGraphClient) ExchangeLongLivedToken(ctx context.Context, shortLivedToken string) (*graph.TokenResult, error) {
	return c.exchangeFn(ctx, shortLivedToken)
}

func (c *fakeGraphClient) RefreshAccessToken(ctx context.Context, accessToken string) (*graph.TokenResult, error) {
	return c.refreshFn(ctx, accessToken)
}

func (c *fakeGraphClient) ResolveAccount(ctx context.Context, identity *graph.ExternalIdentity, longLivedToken string) (*graph.ResolvedAccount, error) {
	return c.resolveFn(ctx, identity, longLivedToken)
}

func (c *fakeGraphClient) FetchRawMetrics(ctx context.Context, accountID string, accessToken string) (*graph.RawMetrics, error) {
	return c.fetchRawFn(ctx, accountID, accessToken)
}

type tokenUpdate struct {
	id          uint64
	accessToken string
	expiresAt   *time.Time
}

type fakeAccountRepo struct {
	accounts []*model.SocialAccount
	saved    []*model.SocialAccount
	updates  []tokenUpdate
	updErr   error
}

func (r *fakeAccountRepo) SaveOrUpdateAccount(_ context.Context, account *model.SocialAccount) error {
	r.saved = append(r.saved, account)
	return nil
}

func (r *fakeAccountRepo) GetByUserAndProvider(_ context.Context, userID uint64, provider string) (*model.SocialAccount, error) {
	for _, a := range r.accounts {
		if a.UserID == userID && a.Provider == provider {
			return a, nil
		}
	}
	return nil, nil
}

func (r *fakeAccountRepo) GetAccountsByProvider(_ context.Context, provider string) ([]*model.SocialAccount, error) {
	out := make([]*model.SocialAccount, 0)
	for _, a := range r.accounts {
		if a.Provider == provider {
			out = append(out, a)
		}
	}
	return out, nil
}

func (r *fakeAccountRepo) UpdateToken(_ context.Context, id uint64, accessToken string, expiresAt *time.Time) error {
	if r.updErr != nil {
		return r.updErr
	}
	r.updates = append(r.updates, tokenUpdate{id: id, accessToken: accessToken, expiresAt: expiresAt})
	return nil
}

type fakeMetricRepo struct {
	saved  []*model.Metric
	latest map[string]*model.Metric
	byDate map[uint64]*model.Metric
}

func (r *fakeMetricRepo) SaveOrUpdateMetric(_ context.Context, metric *model.Metric) error {
	r.saved = append(r.saved, metric)
	return nil
}

func (r *fakeMetricRepo) GetMetricByDate(_ context.Context, socialAccountID uint64, _ string, _ time.Time) (*model.Metric, error) {
	return r.byDate[socialAccountID], nil
}

func (r *fakeMetricRepo) GetLatestMetricForBusiness(_ context.Context, _ uint64, provider string, _ time.Time) (*model.Metric, error) {
	return r.latest[provider], nil
}

type fakeScoreRepo struct {
	saved  []*model.Score
	byDate *model.Score
}

func (r *fakeScoreRepo) SaveOrUpdateScore(_ context.Context, score *model.Score) error {
	r.saved = append(r.saved, score)
	return nil
}

func (r *fakeScoreRepo) GetScoreByDate(_ context.Context, _ uint64, _ time.Time) (*model.Score, error) {
	return r.byDate, nil
}
