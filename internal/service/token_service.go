package service

import (
	"BizPulse/internal/model"
	"BizPulse/internal/pkg/graph"
	"BizPulse/internal/repository"
	"context"
	log "log/slog"
	"time"
)

// TokenState 令牌生命周期状态
type TokenState string

const (
	TokenFresh      TokenState = "fresh"
	TokenNearExpiry TokenState = "near_expiry"
	TokenExpired    TokenState = "expired"
)

// facebookRefreshWindow Facebook 令牌剩余不足 7 天才刷新
const facebookRefreshWindow = 7 * 24 * time.Hour

type TokenService interface {
	State(account *model.SocialAccount) TokenState
	NeedsRefresh(account *model.SocialAccount) bool
	RefreshAccount(ctx context.Context, account *model.SocialAccount) error
}

type tokenServiceImpl struct {
	clients     map[graph.Platform]graph.Client
	accountRepo repository.SocialAccountRepo
}

func NewTokenService(clients map[graph.Platform]graph.Client, accountRepo repository.SocialAccountRepo) TokenService {
	return &tokenServiceImpl{
		clients:     clients,
		accountRepo: accountRepo,
	}
}

// State 过期时间未知的账号按临期处理
func (s *tokenServiceImpl) State(account *model.SocialAccount) TokenState {
	if account.ExpiresAt == nil {
		return TokenNearExpiry
	}
	remaining := time.Until(*account.ExpiresAt)
	if remaining <= 0 {
		return TokenExpired
	}
	if remaining < facebookRefreshWindow {
		return TokenNearExpiry
	}
	return TokenFresh
}

// NeedsRefresh Instagram 每个周期无条件刷新；
// Facebook 只在过期时间未知或临期/已过期时刷新
func (s *tokenServiceImpl) NeedsRefresh(account *model.SocialAccount) bool {
	if account.Provider == string(graph.PlatformInstagram) {
		return true
	}
	return s.State(account) != TokenFresh
}

// RefreshAccount 刷新成功才覆盖令牌和过期时间，
// 失败时保留现有凭据原样返回错误，同周期内不重试
func (s *tokenServiceImpl) RefreshAccount(ctx context.Context, account *model.SocialAccount) error {
	client, ok := s.clients[graph.Platform(account.Provider)]
	if !ok {
		return ErrParamInvalid
	}

	tok, err := client.RefreshAccessToken(ctx, account.AccessToken)
	if err != nil {
		return err
	}

	if err = s.accountRepo.UpdateToken(ctx, account.ID, tok.AccessToken, tok.ExpiresAt); err != nil {
		return err
	}
	account.AccessToken = tok.AccessToken
	account.ExpiresAt = tok.ExpiresAt

	log.InfoContext(ctx, "access token refreshed",
		"user_id", account.UserID, "platform", account.Provider)
	return nil
}
