package handler

import (
	"BizPulse/internal/api/dto"
	"BizPulse/internal/pkg/response"
	"BizPulse/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/jinzhu/copier"
)

type ScoreHandler struct {
	scoreSvc service.ScoreService
}

func NewScoreHandler(scoreSvc service.ScoreService) *ScoreHandler {
	return &ScoreHandler{
		scoreSvc: scoreSvc,
	}
}

func (s *ScoreHandler) GetScore(c *gin.Context) {
	userID := c.GetUint64("user_id")
	score, err := s.scoreSvc.GetOrCalculateToday(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}
	scoreDTO := &dto.ScoreDTO{}
	_ = copier.Copy(scoreDTO, score)
	response.Success(c, scoreDTO)
}
