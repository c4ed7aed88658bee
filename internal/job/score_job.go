package job

import (
	"BizPulse/internal/pkg/logger"
	"BizPulse/internal/repository"
	"BizPulse/internal/service"
	"context"
	log "log/slog"
	"time"

	"github.com/google/uuid"
)

// ScoreJob 每日为全部商家计算当日综合评分。
// 排在指标抓取任务之后执行，保证用的是当天的快照
type ScoreJob struct {
	scoreSvc service.ScoreService
	userRepo repository.UserRepo
}

func NewScoreJob(scoreSvc service.ScoreService, userRepo repository.UserRepo) *ScoreJob {
	return &ScoreJob{
		scoreSvc: scoreSvc,
		userRepo: userRepo,
	}
}

func (s *ScoreJob) Run() {
	traceID := "job-score-" + uuid.NewString()
	ctx := context.WithValue(context.Background(), logger.TraceIDKey, traceID)

	users, err := s.userRepo.GetAllUsers(ctx)
	if err != nil {
		log.ErrorContext(ctx, "list users error", "err", err)
		return
	}

	today := time.Now()
	succeeded, failed := 0, 0
	for _, user := range users {
		_, err = s.scoreSvc.CalculateForBusiness(ctx, user.ID, today)
		if err != nil {
			log.ErrorContext(ctx, "calculate score error", "business_id", user.ID, "err", err)
			failed++
			continue
		}
		succeeded++
	}

	log.InfoContext(ctx, "score calculation finished",
		"succeeded", succeeded,
		"failed", failed)
}
