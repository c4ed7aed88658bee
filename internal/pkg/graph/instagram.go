package graph

import (
	"BizPulse/internal/api/config"
	"context"
	"fmt"
	log "log/slog"
	"net/url"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/goccy/go-json"
)

// instagramTokenURL 授权码换短期令牌的端点，不走 graph 域名
const instagramTokenURL = "https://api.instagram.com/oauth/access_token"

const instagramScopes = "instagram_business_basic,instagram_business_manage_insights"

type instagramClient struct {
	restClient
	cfg       config.PlatformConfig
	pageLimit int
}

func NewInstagramClient(cfg *config.GraphConfig) Client {
	httpClient := resty.New().
		SetTimeout(time.Duration(cfg.TimeoutSeconds) * time.Second)

	return &instagramClient{
		restClient: restClient{http: httpClient, platform: PlatformInstagram},
		cfg:        cfg.Instagram,
		pageLimit:  cfg.PageLimit,
	}
}

func (c *instagramClient) Platform() Platform {
	return PlatformInstagram
}

func (c *instagramClient) AuthorizeURL(state string) string {
	q := url.Values{}
	q.Set("client_id", c.cfg.ClientID)
	q.Set("redirect_uri", c.cfg.RedirectURL)
	q.Set("response_type", "code")
	q.Set("scope", instagramScopes)
	q.Set("state", state)
	return c.cfg.OAuthURL + "?" + q.Encode()
}

func (c *instagramClient) FetchIdentity(ctx context.Context, code string) (*ExternalIdentity, error) {
	resp, err := c.http.R().SetContext(ctx).
		SetFormData(map[string]string{
			"client_id":     c.cfg.ClientID,
			"client_secret": c.cfg.ClientSecret,
			"grant_type":    "authorization_code",
			"redirect_uri":  c.cfg.RedirectURL,
			"code":          code,
		}).
		Post(instagramTokenURL)
	if err != nil {
		return nil, upstreamErr(PlatformInstagram, KindAuth, "code_exchange", nil, err)
	}
	if resp.IsError() {
		return nil, upstreamErr(PlatformInstagram, KindAuth, "code_exchange", resp, nil)
	}

	var tok tokenResponse
	if err = json.Unmarshal(resp.Body(), &tok); err != nil {
		return nil, upstreamErr(PlatformInstagram, KindAuth, "code_exchange", resp, err)
	}

	var profile struct {
		UserID            string `json:"user_id"`
		Username          string `json:"username"`
		ProfilePictureURL string `json:"profile_picture_url"`
	}
	err = c.get(ctx, KindAuth, "me", c.cfg.BaseURL+"/me", map[string]string{
		"fields":       "user_id,username,profile_picture_url",
		"access_token": tok.AccessToken,
	}, &profile)
	if err != nil {
		return nil, err
	}

	return &ExternalIdentity{
		ID:     profile.UserID,
		Name:   profile.Username,
		Avatar: profile.ProfilePictureURL,
		Token:  tok.AccessToken,
	}, nil
}

func (c *instagramClient) ExchangeLongLivedToken(ctx context.Context, shortLivedToken string) (*TokenResult, error) {
	var tok tokenResponse
	err := c.get(ctx, KindAuth, "token_exchange", c.cfg.BaseURL+"/access_token", map[string]string{
		"grant_type":    "ig_exchange_token",
		"client_secret": c.cfg.ClientSecret,
		"access_token":  shortLivedToken,
	}, &tok)
	if err != nil {
		return nil, err
	}
	return &TokenResult{AccessToken: tok.AccessToken, ExpiresAt: expiryAfterSeconds(tok.ExpiresIn)}, nil
}

func (c *instagramClient) RefreshAccessToken(ctx context.Context, accessToken string) (*TokenResult, error) {
	var tok tokenResponse
	err := c.get(ctx, KindAuth, "token_refresh", c.cfg.BaseURL+"/refresh_access_token", map[string]string{
		"grant_type":   "ig_refresh_token",
		"access_token": accessToken,
	}, &tok)
	if err != nil {
		return nil, err
	}
	return &TokenResult{AccessToken: tok.AccessToken, ExpiresAt: expiryAfterSeconds(tok.ExpiresIn)}, nil
}

// ResolveAccount Instagram 商业账号直接绑定身份本身
func (c *instagramClient) ResolveAccount(_ context.Context, identity *ExternalIdentity, longLivedToken string) (*ResolvedAccount, error) {
	return &ResolvedAccount{AccountID: identity.ID, AccessToken: longLivedToken}, nil
}

func (c *instagramClient) FetchRawMetrics(ctx context.Context, accountID string, accessToken string) (*RawMetrics, error) {
	var profile struct {
		FollowersCount int `json:"followers_count"`
		MediaCount     int `json:"media_count"`
	}
	err := c.get(ctx, KindData, "profile", fmt.Sprintf("%s/%s", c.cfg.BaseURL, accountID), map[string]string{
		"fields":       "followers_count,media_count",
		"access_token": accessToken,
	}, &profile)
	if err != nil {
		return nil, err
	}

	var media struct {
		Data []struct {
			ID string `json:"id"`
		} `json:"data"`
	}
	err = c.get(ctx, KindData, "media_list", fmt.Sprintf("%s/%s/media", c.cfg.BaseURL, accountID), map[string]string{
		"fields":       "id",
		"limit":        fmt.Sprintf("%d", c.pageLimit),
		"access_token": accessToken,
	}, &media)
	if err != nil {
		return nil, err
	}

	items := make([]RawItem, 0, len(media.Data))
	for _, m := range media.Data {
		if m.ID == "" {
			continue
		}
		items = append(items, c.fetchMediaInsights(ctx, m.ID, accessToken))
	}

	return &RawMetrics{
		Followers:  profile.FollowersCount,
		MediaCount: profile.MediaCount,
		Items:      items,
	}, nil
}

// fetchMediaInsights 拉取单条媒体的 insights。新发布或低流量内容经常拿不到
// insights，失败时整条按 0 退化，不中断聚合
func (c *instagramClient) fetchMediaInsights(ctx context.Context, mediaID string, accessToken string) RawItem {
	var insights insightsResponse
	err := c.get(ctx, KindData, "media_insights", fmt.Sprintf("%s/%s/insights", c.cfg.BaseURL, mediaID), map[string]string{
		"metric":       "likes,comments,shares,reach",
		"access_token": accessToken,
	}, &insights)
	if err != nil {
		log.WarnContext(ctx, "instagram media insights unavailable, default to zero",
			"media_id", mediaID, "err", err)
		return RawItem{}
	}

	// shares 平台有返回但指标表暂不落库，保持为 0
	return RawItem{
		Likes:    insights.metricValue("likes"),
		Comments: insights.metricValue("comments"),
		Reach:    insights.metricValue("reach"),
	}
}
