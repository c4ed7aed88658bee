package graph

import (
	"BizPulse/internal/api/config"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newFacebookTestClient(baseURL string) Client {
	return NewFacebookClient(&config.GraphConfig{
		TimeoutSeconds: 5,
		PageLimit:      10,
		Facebook: config.PlatformConfig{
			BaseURL:      baseURL,
			OAuthURL:     "https://www.facebook.com/v23.0/dialog/oauth",
			ClientID:     "client-id",
			ClientSecret: "client-secret",
			RedirectURL:  "https://example.com/callback",
		},
	})
}

// 用户名下有多个 Page 时绑定第一个，入库的是 Page 自己的令牌
func TestFacebookResolveAccountFirstPage(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/fb-user/accounts", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "user-token", r.URL.Query().Get("access_token"))
		_, _ = w.Write([]byte(`{"data":[
			{"id":"page-1","access_token":"page-token-1"},
			{"id":"page-2","access_token":"page-token-2"}
		]}`))
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	client := newFacebookTestClient(srv.URL)
	identity := &ExternalIdentity{ID: "fb-user", Token: "user-token"}
	resolved, err := client.ResolveAccount(context.Background(), identity, "long-token")

	require.NoError(t, err)
	assert.Equal(t, "page-1", resolved.AccountID)
	assert.Equal(t, "page-token-1", resolved.AccessToken)
}

func TestFacebookResolveAccountNoPage(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/fb-user/accounts", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"data":[]}`))
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	client := newFacebookTestClient(srv.URL)
	identity := &ExternalIdentity{ID: "fb-user", Token: "user-token"}
	resolved, err := client.ResolveAccount(context.Background(), identity, "long-token")

	assert.Nil(t, resolved)
	assert.ErrorIs(t, err, ErrNoPage)
}

// 平台不返回 expires_in 时按 60 天兜底
func TestFacebookExchangeDefaultExpiry(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/oauth/access_token", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "fb_exchange_token", r.URL.Query().Get("grant_type"))
		_, _ = w.Write([]byte(`{"access_token":"long-token"}`))
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	client := newFacebookTestClient(srv.URL)
	tok, err := client.ExchangeLongLivedToken(context.Background(), "short-token")

	require.NoError(t, err)
	assert.Equal(t, "long-token", tok.AccessToken)
	require.NotNil(t, tok.ExpiresAt)

	expected := time.Now().Add(60 * 24 * time.Hour)
	assert.WithinDuration(t, expected, *tok.ExpiresAt, time.Minute)
}

// reels 列表失败不影响 posts 的聚合，单条 reach 失败按 0 退化
func TestFacebookFetchRawMetrics(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/page-1", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"followers_count":2000}`))
	})
	mux.HandleFunc("/page-1/posts", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "10", r.URL.Query().Get("limit"))
		_, _ = w.Write([]byte(`{"data":[
			{"id":"p1",
			 "comments":{"summary":{"total_count":5}},
			 "reactions":{"summary":{"total_count":30}},
			 "shares":{"count":3}},
			{"id":"p2",
			 "comments":{"summary":{"total_count":1}},
			 "reactions":{"summary":{"total_count":8}}}
		]}`))
	})
	mux.HandleFunc("/p1/insights", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "lifetime", r.URL.Query().Get("period"))
		_, _ = w.Write([]byte(`{"data":[{"name":"post_impressions_unique","values":[{"value":600}]}]}`))
	})
	mux.HandleFunc("/p2/insights", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error":{"message":"no insights"}}`))
	})
	mux.HandleFunc("/page-1/video_reels", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		_, _ = w.Write([]byte(`{"error":{"message":"reels not enabled"}}`))
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	client := newFacebookTestClient(srv.URL)
	raw, err := client.FetchRawMetrics(context.Background(), "page-1", "page-token")

	require.NoError(t, err)
	assert.Equal(t, 2000, raw.Followers)
	assert.Equal(t, 2, raw.MediaCount)
	require.Len(t, raw.Items, 2)
	assert.Equal(t, RawItem{Likes: 30, Comments: 5, Shares: 3, Reach: 600}, raw.Items[0])
	assert.Equal(t, RawItem{Likes: 8, Comments: 1}, raw.Items[1])
}

// posts 列表失败属于硬失败，快照整体作废
func TestFacebookFetchRawMetricsPostsFailure(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/page-1", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"followers_count":2000}`))
	})
	mux.HandleFunc("/page-1/posts", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	client := newFacebookTestClient(srv.URL)
	raw, err := client.FetchRawMetrics(context.Background(), "page-1", "page-token")

	require.Error(t, err)
	assert.Nil(t, raw)
}
