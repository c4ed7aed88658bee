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

// MetricFetchJob 每日拉取某个平台全部已连接账号的指标快照
type MetricFetchJob struct {
	platform    graph.Platform
	metricSvc   service.MetricService
	accountRepo repository.SocialAccountRepo
}

func NewMetricFetchJob(
	platform graph.Platform,
	metricSvc service.MetricService,
	accountRepo repository.SocialAccountRepo,
) *MetricFetchJob {
	return &MetricFetchJob{
		platform:    platform,
		metricSvc:   metricSvc,
		accountRepo: accountRepo,
	}
}

func (s *MetricFetchJob) Run() {
	traceID := "job-metric-" + uuid.NewString()
	ctx := context.WithValue(context.Background(), logger.TraceIDKey, traceID)

	accounts, err := s.accountRepo.GetAccountsByProvider(ctx, string(s.platform))
	if err != nil {
		log.ErrorContext(ctx, "list accounts error", "platform", s.platform, "err", err)
		return
	}

	succeeded, failed := 0, 0
	for _, account := range accounts {
		_, err = s.metricSvc.FetchAndStore(ctx, account)
		if err != nil {
			log.ErrorContext(ctx, "fetch metric error",
				"platform", s.platform, "account_id", account.ID, "err", err)
			failed++
			continue
		}
		succeeded++
	}

	log.InfoContext(ctx, "metric fetch finished",
		"platform", s.platform,
		"succeeded", succeeded,
		"failed", failed)
}
