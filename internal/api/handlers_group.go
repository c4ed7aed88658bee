package api

import "BizPulse/internal/api/handler"

// HandlersGroup 封装了所有已初始化的 Handler 实例
type HandlersGroup struct {
	UserHandler   *handler.UserHandler
	SocialHandler *handler.SocialHandler
	ScoreHandler  *handler.ScoreHandler
}
