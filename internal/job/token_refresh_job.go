package job

import (
	"BizPulse/internal/pkg/graph"
	"BizPulse/internal/pkg/logger"
	"BizPulse/internal/repository"
	"BizPulse/internal/service"
	"context"
	log "log/slog"

	"github.com/google/uuid"
)

// TokenRefreshJob 每日批量续期某个平台的访问令牌。
// 单个账号失败只记日志不中断，失败的令牌保持原样等下个周期
type TokenRefreshJob struct {
	platform    graph.Platform
	tokenSvc    service.TokenService
	accountRepo repository.SocialAccountRepo
}

func NewTokenRefreshJob(
	platform graph.Platform,
	tokenSvc service.TokenService,
	accountRepo repository.SocialAccountRepo,
) *TokenRefreshJob {
	return &TokenRefreshJob{
		platform:    platform,
		tokenSvc:    tokenSvc,
		accountRepo: accountRepo,
	}
}

func (s *TokenRefreshJob) Run() {
	traceID := "job-token-" + uuid.NewString()
	ctx := context.WithValue(context.Background(), logger.TraceIDKey, traceID)

	accounts, err := s.accountRepo.GetAccountsByProvider(ctx, string(s.platform))
	if err != nil {
		log.ErrorContext(ctx, "list accounts error", "platform", s.platform, "err", err)
		return
	}

	refreshed, skipped, failed := 0, 0, 0
	for _, account := range accounts {
		if !s.tokenSvc.NeedsRefresh(account) {
			skipped++
			continue
		}
		err = s.tokenSvc.RefreshAccount(ctx, account)
		if err != nil {
			log.ErrorContext(ctx, "refresh token error",
				"platform", s.platform, "account_id", account.ID, "err", err)
			failed++
			continue
		}
		refreshed++
	}

	log.InfoContext(ctx, "token refresh finished",
		"platform", s.platform,
		"refreshed", refreshed,
		"skipped", skipped,
		"failed", failed)
}
