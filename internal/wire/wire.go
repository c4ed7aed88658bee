package wire

import (
	"BizPulse/internal/api"
	"BizPulse/internal/api/config"
	"BizPulse/internal/api/handler"
	"BizPulse/internal/job"
	"BizPulse/internal/pkg/cron"
	"BizPulse/internal/pkg/graph"
	"BizPulse/internal/repository"
	"BizPulse/internal/service"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// ApplicationContainer 封装了应用运行所需的所有顶级组件
type ApplicationContainer struct {
	Router  *gin.Engine
	DB      *gorm.DB
	CronMgr *cron.Manager
}

func BuildApplication(db *gorm.DB, cfg *config.Config) (*ApplicationContainer, error) {
	clients := map[graph.Platform]graph.Client{
		graph.PlatformInstagram: graph.NewInstagramClient(&cfg.Graph),
		graph.PlatformFacebook:  graph.NewFacebookClient(&cfg.Graph),
	}

	userRepo := repository.NewUserRepo(db)
	accountRepo := repository.NewSocialAccountRepo(db)
	metricRepo := repository.NewMetricRepo(db)
	scoreRepo := repository.NewScoreRepo(db)

	userService := service.NewUserService(userRepo)
	socialService := service.NewSocialAccountService(clients, accountRepo)
	metricService := service.NewMetricService(clients, accountRepo, metricRepo)
	scoreService := service.NewScoreService(metricRepo, scoreRepo)
	tokenService := service.NewTokenService(clients, accountRepo)

	handlers := &api.HandlersGroup{
		UserHandler:   handler.NewUserHandler(userService),
		SocialHandler: handler.NewSocialHandler(socialService, metricService),
		ScoreHandler:  handler.NewScoreHandler(scoreService),
	}

	router := api.SetupRouter(handlers)

	cronMgr := cron.NewCronManager(
		job.NewTokenRefreshJob(graph.PlatformInstagram, tokenService, accountRepo),
		job.NewTokenRefreshJob(graph.PlatformFacebook, tokenService, accountRepo),
		job.NewMetricFetchJob(graph.PlatformInstagram, metricService, accountRepo),
		job.NewMetricFetchJob(graph.PlatformFacebook, metricService, accountRepo),
		job.NewScoreJob(scoreService, userRepo),
	)

	return &ApplicationContainer{
		Router:  router,
		DB:      db,
		CronMgr: cronMgr,
	}, nil
}
