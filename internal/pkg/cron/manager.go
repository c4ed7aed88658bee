package cron

import (
	"BizPulse/internal/api/config"
	"BizPulse/internal/job"
	log "log/slog"

	"github.com/robfig/cron/v3"
)

type Manager struct {
	engine            *cron.Cron
	igTokenRefreshJob *job.TokenRefreshJob
	fbTokenRefreshJob *job.TokenRefreshJob
	igMetricFetchJob  *job.MetricFetchJob
	fbMetricFetchJob  *job.MetricFetchJob
	scoreJob          *job.ScoreJob
}

func NewCronManager(
	igTokenRefreshJob *job.TokenRefreshJob,
	fbTokenRefreshJob *job.TokenRefreshJob,
	igMetricFetchJob *job.MetricFetchJob,
	fbMetricFetchJob *job.MetricFetchJob,
	scoreJob *job.ScoreJob,
) *Manager {
	return &Manager{
		engine:            cron.New(cron.WithSeconds()),
		igTokenRefreshJob: igTokenRefreshJob,
		fbTokenRefreshJob: fbTokenRefreshJob,
		igMetricFetchJob:  igMetricFetchJob,
		fbMetricFetchJob:  fbMetricFetchJob,
		scoreJob:          scoreJob,
	}
}

// RegisterJobs 注册定时任务。
// 刷新 -> 抓取 -> 算分 按时间错开，后一步依赖前一步的结果
func (s *Manager) RegisterJobs() error {
	cfg := config.Cfg.Cron
	if _, err := s.engine.AddJob(cfg.TokenRefreshSpec, s.igTokenRefreshJob); err != nil {
		return err
	}
	if _, err := s.engine.AddJob(cfg.TokenRefreshSpec, s.fbTokenRefreshJob); err != nil {
		return err
	}
	if _, err := s.engine.AddJob(cfg.MetricFetchSpec, s.igMetricFetchJob); err != nil {
		return err
	}
	if _, err := s.engine.AddJob(cfg.MetricFetchSpec, s.fbMetricFetchJob); err != nil {
		return err
	}
	if _, err := s.engine.AddJob(cfg.ScoreSpec, s.scoreJob); err != nil {
		return err
	}
	return nil
}

func (s *Manager) Start() {
	log.Info("Cron 定时任务引擎启动")
	s.engine.Start()
}

func (s *Manager) Stop() {
	log.Info("Cron 定时任务引擎停止")
	s.engine.Stop()
}
