package service

import (
	"BizPulse/internal/api/dto"
	"BizPulse/internal/model"
	"BizPulse/internal/pkg/consts"
	"BizPulse/internal/pkg/graph"
	"BizPulse/internal/pkg/redis"
	"BizPulse/internal/repository"
	"context"
	log "log/slog"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
)

// oauthStateTTL state 令牌有效期
const oauthStateTTL = 10 * time.Minute

type SocialAccountService interface {
	AuthorizeURL(ctx context.Context, userID uint64, platform graph.Platform) (string, error)
	HandleCallback(ctx context.Context, platform graph.Platform, state string, code string) (*dto.ConnectedAccountDTO, error)
	ConnectAccount(ctx context.Context, userID uint64, platform graph.Platform, identity *graph.ExternalIdentity) (*model.SocialAccount, error)
}

type socialAccountServiceImpl struct {
	clients     map[graph.Platform]graph.Client
	accountRepo repository.SocialAccountRepo
}

func NewSocialAccountService(clients map[graph.Platform]graph.Client, accountRepo repository.SocialAccountRepo) SocialAccountService {
	return &socialAccountServiceImpl{
		clients:     clients,
		accountRepo: accountRepo,
	}
}

// AuthorizeURL 生成 state 并暂存对应的用户，返回平台授权页地址
func (s *socialAccountServiceImpl) AuthorizeURL(ctx context.Context, userID uint64, platform graph.Platform) (string, error) {
	client, ok := s.clients[platform]
	if !ok {
		return "", ErrParamInvalid
	}

	state := uuid.NewString()
	key := consts.OAuthStateKey + state
	err := redis.SetWithExpiration(ctx, key, strconv.FormatUint(userID, 10), oauthStateTTL)
	if err != nil {
		return "", err
	}
	return client.AuthorizeURL(state), nil
}

// HandleCallback 校验 state、换取身份并完成账号绑定
func (s *socialAccountServiceImpl) HandleCallback(ctx context.Context, platform graph.Platform, state string, code string) (*dto.ConnectedAccountDTO, error) {
	client, ok := s.clients[platform]
	if !ok {
		return nil, ErrParamInvalid
	}

	// state 一次性消费，防止重放
	value, err := redis.GetDel(ctx, consts.OAuthStateKey+state)
	if err != nil {
		return nil, err
	}
	if value == "" {
		return nil, ErrStateInvalid
	}
	userID, err := strconv.ParseUint(value, 10, 64)
	if err != nil {
		return nil, ErrStateInvalid
	}

	identity, err := client.FetchIdentity(ctx, code)
	if err != nil {
		return nil, err
	}

	account, err := s.ConnectAccount(ctx, userID, platform, identity)
	if err != nil {
		return nil, err
	}

	connected := &dto.ConnectedAccountDTO{}
	_ = copier.Copy(connected, identity)
	connected.ID = account.ProviderID
	return connected, nil
}

// ConnectAccount 短期令牌换长期令牌，解析实际绑定的平台账号并入库。
// Facebook 在这里会把用户令牌换成第一个 Page 的令牌
func (s *socialAccountServiceImpl) ConnectAccount(ctx context.Context, userID uint64, platform graph.Platform, identity *graph.ExternalIdentity) (*model.SocialAccount, error) {
	client, ok := s.clients[platform]
	if !ok {
		return nil, ErrParamInvalid
	}

	tok, err := client.ExchangeLongLivedToken(ctx, identity.Token)
	if err != nil {
		return nil, err
	}

	resolved, err := client.ResolveAccount(ctx, identity, tok.AccessToken)
	if err != nil {
		if err == graph.ErrNoPage {
			return nil, ErrNoFacebookPage
		}
		return nil, err
	}

	account := &model.SocialAccount{
		UserID:      userID,
		Provider:    string(platform),
		ProviderID:  resolved.AccountID,
		Name:        identity.Name,
		Avatar:      identity.Avatar,
		AccessToken: resolved.AccessToken,
		ExpiresAt:   tok.ExpiresAt,
	}
	if err = s.accountRepo.SaveOrUpdateAccount(ctx, account); err != nil {
		return nil, err
	}

	log.InfoContext(ctx, "social account connected",
		"user_id", userID, "platform", platform, "provider_id", resolved.AccountID)
	return account, nil
}
