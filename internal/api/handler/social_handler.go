package handler

import (
	"BizPulse/internal/api/dto"
	"BizPulse/internal/pkg/graph"
	"BizPulse/internal/pkg/response"
	"BizPulse/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/jinzhu/copier"
)

// SocialHandler 承接两个平台的连接、回调与指标查询，
// 平台差异全部收敛在 graph.Client 实现里
type SocialHandler struct {
	socialSvc service.SocialAccountService
	metricSvc service.MetricService
}

func NewSocialHandler(socialSvc service.SocialAccountService, metricSvc service.MetricService) *SocialHandler {
	return &SocialHandler{
		socialSvc: socialSvc,
		metricSvc: metricSvc,
	}
}

func (s *SocialHandler) ConnectInstagram(c *gin.Context) {
	s.connect(c, graph.PlatformInstagram)
}

func (s *SocialHandler) ConnectFacebook(c *gin.Context) {
	s.connect(c, graph.PlatformFacebook)
}

func (s *SocialHandler) CallbackInstagram(c *gin.Context) {
	s.callback(c, graph.PlatformInstagram)
}

func (s *SocialHandler) CallbackFacebook(c *gin.Context) {
	s.callback(c, graph.PlatformFacebook)
}

func (s *SocialHandler) InstagramMetrics(c *gin.Context) {
	s.metrics(c, graph.PlatformInstagram)
}

func (s *SocialHandler) FacebookMetrics(c *gin.Context) {
	s.metrics(c, graph.PlatformFacebook)
}

func (s *SocialHandler) connect(c *gin.Context, platform graph.Platform) {
	userID := c.GetUint64("user_id")
	url, err := s.socialSvc.AuthorizeURL(c.Request.Context(), userID, platform)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, dto.AuthorizeURLDTO{URL: url})
}

// callback 平台授权后的回跳，身份靠 state 反查，不走登录态
func (s *SocialHandler) callback(c *gin.Context, platform graph.Platform) {
	state := c.Query("state")
	code := c.Query("code")
	if state == "" || code == "" {
		response.Fail(c, response.BadRequest, service.ErrParamInvalid.Error())
		return
	}
	connected, err := s.socialSvc.HandleCallback(c.Request.Context(), platform, state, code)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, connected)
}

func (s *SocialHandler) metrics(c *gin.Context, platform graph.Platform) {
	userID := c.GetUint64("user_id")
	metric, err := s.metricSvc.GetOrFetchToday(c.Request.Context(), userID, platform)
	if err != nil {
		response.Error(c, err)
		return
	}
	metricDTO := &dto.MetricDTO{}
	_ = copier.Copy(metricDTO, metric)
	response.Success(c, metricDTO)
}
