package api

import (
	"BizPulse/internal/api/middleware"
	"BizPulse/internal/pkg/logger"
	"net/http"

	"github.com/gin-gonic/gin"
)

func SetupRouter(group *HandlersGroup) *gin.Engine {
	r := gin.New()
	_ = r.SetTrustedProxies([]string{"localhost"})

	// TraceId & Logger & CORS
	r.Use(middleware.TraceMiddleware())
	r.Use(middleware.AuditMiddleware())
	r.Use(middleware.CORSMiddleware())
	logger.SetupGin(r)

	apiGroup := r.Group("/api")
	{
		apiGroup.GET("/ping", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{
				"Code":    200,
				"Message": "pong",
				"Data":    nil,
			})
		})

		authGroup := apiGroup.Group("/auth")
		{
			authGroup.POST("/register", group.UserHandler.Register)
			authGroup.POST("/login", group.UserHandler.Login)

			loggedGroup := authGroup.Group("")
			loggedGroup.Use(middleware.AuthMiddleware())
			{
				loggedGroup.POST("/logout", group.UserHandler.Logout)
			}
		}

		igGroup := apiGroup.Group("/instagram")
		{
			// 平台授权回跳，凭 state 识别用户，不带登录态
			igGroup.GET("/callback", group.SocialHandler.CallbackInstagram)

			loggedGroup := igGroup.Group("")
			loggedGroup.Use(middleware.AuthMiddleware())
			{
				loggedGroup.GET("/connect", group.SocialHandler.ConnectInstagram)
				loggedGroup.GET("/metrics", group.SocialHandler.InstagramMetrics)
			}
		}

		fbGroup := apiGroup.Group("/facebook")
		{
			fbGroup.GET("/callback", group.SocialHandler.CallbackFacebook)

			loggedGroup := fbGroup.Group("")
			loggedGroup.Use(middleware.AuthMiddleware())
			{
				loggedGroup.GET("/connect", group.SocialHandler.ConnectFacebook)
				loggedGroup.GET("/metrics", group.SocialHandler.FacebookMetrics)
			}
		}

		scoreGroup := apiGroup.Group("/score")
		scoreGroup.Use(middleware.AuthMiddleware())
		{
			scoreGroup.GET("", group.ScoreHandler.GetScore)
		}
	}

	return r
}
