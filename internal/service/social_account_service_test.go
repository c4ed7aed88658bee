package service

import (
	"BizPulse/internal/pkg/graph"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConnectAccount(t *testing.T) {
	expiry := timePtr(time.Now().Add(60 * 24 * time.Hour))
	client := &fakeGraphClient{
		platform: graph.PlatformFacebook,
		exchangeFn: func(_ context.Context, shortLivedToken string) (*graph.TokenResult, error) {
			assert.Equal(t, "short-token", shortLivedToken)
			return &graph.TokenResult{AccessToken: "long-token", ExpiresAt: expiry}, nil
		},
		resolveFn: func(_ context.Context, identity *graph.ExternalIdentity, longLivedToken string) (*graph.ResolvedAccount, error) {
			assert.Equal(t, "long-token", longLivedToken)
			return &graph.ResolvedAccount{AccountID: "page-1", AccessToken: "page-token"}, nil
		},
	}
	accountRepo := &fakeAccountRepo{}
	svc := NewSocialAccountService(map[graph.Platform]graph.Client{graph.PlatformFacebook: client}, accountRepo)

	identity := &graph.ExternalIdentity{ID: "fb-user", Name: "Cafe Aroma", Token: "short-token"}
	account, err := svc.ConnectAccount(context.Background(), 7, graph.PlatformFacebook, identity)

	require.NoError(t, err)
	require.Len(t, accountRepo.saved, 1)
	assert.Equal(t, uint64(7), account.UserID)
	assert.Equal(t, "facebook", account.Provider)
	// Facebook 入库的是 Page 自己的 ID 和令牌，不是用户身份
	assert.Equal(t, "page-1", account.ProviderID)
	assert.Equal(t, "page-token", account.AccessToken)
	assert.Equal(t, expiry, account.ExpiresAt)
}

func TestConnectAccountNoPage(t *testing.T) {
	client := &fakeGraphClient{
		platform: graph.PlatformFacebook,
		exchangeFn: func(_ context.Context, _ string) (*graph.TokenResult, error) {
			return &graph.TokenResult{AccessToken: "long-token"}, nil
		},
		resolveFn: func(_ context.Context, _ *graph.ExternalIdentity, _ string) (*graph.ResolvedAccount, error) {
			return nil, graph.ErrNoPage
		},
	}
	accountRepo := &fakeAccountRepo{}
	svc := NewSocialAccountService(map[graph.Platform]graph.Client{graph.PlatformFacebook: client}, accountRepo)

	identity := &graph.ExternalIdentity{ID: "fb-user", Token: "short-token"}
	account, err := svc.ConnectAccount(context.Background(), 7, graph.PlatformFacebook, identity)

	assert.Nil(t, account)
	assert.ErrorIs(t, err, ErrNoFacebookPage)
	assert.Empty(t, accountRepo.saved)
}

func TestConnectAccountUnknownPlatform(t *testing.T) {
	svc := NewSocialAccountService(map[graph.Platform]graph.Client{}, &fakeAccountRepo{})

	account, err := svc.ConnectAccount(context.Background(), 7, "myspace", &graph.ExternalIdentity{})

	assert.Nil(t, account)
	assert.ErrorIs(t, err, ErrParamInvalid)
}
