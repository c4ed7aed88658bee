package graph

import (
	"context"
	"time"
)

type Platform string

const (
	PlatformInstagram Platform = "instagram"
	PlatformFacebook  Platform = "facebook"
)

// ExternalIdentity OAuth 回调换取的平台身份，Token 为短期令牌
type ExternalIdentity struct {
	ID     string
	Name   string
	Avatar string
	Token  string
}

// TokenResult 长期令牌及其过期时间，ExpiresAt 为 nil 表示平台未返回有效期
type TokenResult struct {
	AccessToken string
	ExpiresAt   *time.Time
}

// ResolvedAccount 连接流程最终绑定的平台账号
type ResolvedAccount struct {
	AccountID   string
	AccessToken string
}

// RawItem 单条内容的平台原始计数，缺失字段按 0 处理
type RawItem struct {
	Likes    int
	Comments int
	Shares   int
	Reach    int
}

// RawMetrics 一次抓取得到的平台原始数据，尚未做任何归一化
type RawMetrics struct {
	Followers  int
	MediaCount int
	Items      []RawItem
}

// Client 平台客户端统一契约。两个平台对象模型差异很大：
// Instagram 是单一商业账号直连，Facebook 必须先把用户令牌换成 Page 令牌。
// 差异全部收敛在各自实现里，下游组件不感知平台细节。
type Client interface {
	Platform() Platform

	// AuthorizeURL 构造平台授权页地址
	AuthorizeURL(state string) string

	// FetchIdentity 用授权码换取短期令牌并拉取基础身份
	FetchIdentity(ctx context.Context, code string) (*ExternalIdentity, error)

	// ExchangeLongLivedToken 短期令牌换长期令牌
	ExchangeLongLivedToken(ctx context.Context, shortLivedToken string) (*TokenResult, error)

	// RefreshAccessToken 刷新长期令牌。Instagram 有独立的刷新端点，
	// Facebook 没有真正的刷新流程，复用 exchange 端点
	RefreshAccessToken(ctx context.Context, accessToken string) (*TokenResult, error)

	// ResolveAccount 把平台身份解析成实际入库的账号：
	// Instagram 直接使用身份本身，Facebook 需要二次调用列出 Page 并取第一个
	ResolveAccount(ctx context.Context, identity *ExternalIdentity, longLivedToken string) (*ResolvedAccount, error)

	// FetchRawMetrics 拉取账号主页、内容列表与逐条 insights。
	// 单条 insights 失败按 0 退化并继续，主页/列表失败整体报错
	FetchRawMetrics(ctx context.Context, accountID string, accessToken string) (*RawMetrics, error)
}
