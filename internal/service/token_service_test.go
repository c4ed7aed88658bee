package service

import (
	"BizPulse/internal/model"
	"BizPulse/internal/pkg/graph"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func timePtr(t time.Time) *time.Time {
	return &t
}

func TestNeedsRefresh(t *testing.T) {
	svc := NewTokenService(nil, nil)

	// Instagram 无条件刷新，哪怕有效期还很长
	igAccount := &model.SocialAccount{
		Provider:  "instagram",
		ExpiresAt: timePtr(time.Now().Add(50 * 24 * time.Hour)),
	}
	assert.True(t, svc.NeedsRefresh(igAccount))

	// Facebook 剩 10 天不刷新
	fbFresh := &model.SocialAccount{
		Provider:  "facebook",
		ExpiresAt: timePtr(time.Now().Add(10 * 24 * time.Hour)),
	}
	assert.False(t, svc.NeedsRefresh(fbFresh))

	// 剩 3 天刷新
	fbNear := &model.SocialAccount{
		Provider:  "facebook",
		ExpiresAt: timePtr(time.Now().Add(3 * 24 * time.Hour)),
	}
	assert.True(t, svc.NeedsRefresh(fbNear))

	// 过期时间未知也刷新
	fbUnknown := &model.SocialAccount{Provider: "facebook"}
	assert.True(t, svc.NeedsRefresh(fbUnknown))
}

func TestTokenState(t *testing.T) {
	svc := NewTokenService(nil, nil)

	assert.Equal(t, TokenNearExpiry, svc.State(&model.SocialAccount{}))
	assert.Equal(t, TokenExpired, svc.State(&model.SocialAccount{
		ExpiresAt: timePtr(time.Now().Add(-time.Hour)),
	}))
	assert.Equal(t, TokenNearExpiry, svc.State(&model.SocialAccount{
		ExpiresAt: timePtr(time.Now().Add(2 * 24 * time.Hour)),
	}))
	assert.Equal(t, TokenFresh, svc.State(&model.SocialAccount{
		ExpiresAt: timePtr(time.Now().Add(30 * 24 * time.Hour)),
	}))
}

func TestRefreshAccountSuccess(t *testing.T) {
	newExpiry := timePtr(time.Now().Add(60 * 24 * time.Hour))
	client := &fakeGraphClient{
		platform: graph.PlatformInstagram,
		refreshFn: func(_ context.Context, accessToken string) (*graph.TokenResult, error) {
			assert.Equal(t, "old-token", accessToken)
			return &graph.TokenResult{AccessToken: "new-token", ExpiresAt: newExpiry}, nil
		},
	}
	accountRepo := &fakeAccountRepo{}
	svc := NewTokenService(map[graph.Platform]graph.Client{graph.PlatformInstagram: client}, accountRepo)

	account := &model.SocialAccount{ID: 3, Provider: "instagram", AccessToken: "old-token"}
	err := svc.RefreshAccount(context.Background(), account)

	require.NoError(t, err)
	require.Len(t, accountRepo.updates, 1)
	assert.Equal(t, uint64(3), accountRepo.updates[0].id)
	assert.Equal(t, "new-token", accountRepo.updates[0].accessToken)
	assert.Equal(t, "new-token", account.AccessToken)
	assert.Equal(t, newExpiry, account.ExpiresAt)
}

// 刷新失败必须保留现有凭据，失败的令牌可能还能用到过期那天
func TestRefreshAccountFailureKeepsToken(t *testing.T) {
	client := &fakeGraphClient{
		platform: graph.PlatformFacebook,
		refreshFn: func(_ context.Context, _ string) (*graph.TokenResult, error) {
			return nil, errors.New("upstream rejected")
		},
	}
	accountRepo := &fakeAccountRepo{}
	svc := NewTokenService(map[graph.Platform]graph.Client{graph.PlatformFacebook: client}, accountRepo)

	expiry := timePtr(time.Now().Add(2 * 24 * time.Hour))
	account := &model.SocialAccount{ID: 3, Provider: "facebook", AccessToken: "old-token", ExpiresAt: expiry}
	err := svc.RefreshAccount(context.Background(), account)

	require.Error(t, err)
	assert.Empty(t, accountRepo.updates)
	assert.Equal(t, "old-token", account.AccessToken)
	assert.Equal(t, expiry, account.ExpiresAt)
}

func TestRefreshAccountUnknownPlatform(t *testing.T) {
	svc := NewTokenService(map[graph.Platform]graph.Client{}, &fakeAccountRepo{})

	err := svc.RefreshAccount(context.Background(), &model.SocialAccount{Provider: "myspace"})

	assert.ErrorIs(t, err, ErrParamInvalid)
}
