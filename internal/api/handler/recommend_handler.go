package handler

import (
	"Lumina/internal/api/dto"
	"Lumina/internal/pkg/consts"
	"Lumina/internal/pkg/response"
	"Lumina/internal/pkg/util"
	"Lumina/internal/service"
	"strconv"

	"github.com/gin-gonic/gin"
)

type RecommendHandler struct {
	recommendationSvc service.RecommendationService
	bookSvc           service.BookService
}

func NewRecommendHandler(recommendationSvc service.RecommendationService, bookSvc service.BookService) *RecommendHandler {
	return &RecommendHandler{
		recommendationSvc: recommendationSvc,
		bookSvc:           bookSvc,
	}
}

func (s *RecommendHandler) Recommend(c *gin.Context) {
	userID := c.GetUint64(consts.UserIDKey)

	var req dto.RecommendDTO
	if err := c.ShouldBindQuery(&req); err != nil {
		response.Error(c, err)
		return
	}
	// mood 同时支持 ?mood=a,b 与 ?mood=a&mood=b
	req.Mood = util.SplitCSV(req.Mood)
	if err := util.ValidateDTO(&req); err != nil {
		response.Error(c, err)
		return
	}

	res, err := s.recommendationSvc.Recommend(c.Request.Context(), userID, &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, res)
}

func (s *RecommendHandler) Score(c *gin.Context) {
	userID := c.GetUint64(consts.UserIDKey)

	var req dto.ScoreBooksDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, err)
		return
	}
	if err := util.ValidateDTO(&req); err != nil {
		response.Error(c, err)
		return
	}

	list, err := s.bookSvc.ScoreBooks(c.Request.Context(), userID, &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, gin.H{
		"books": list,
		"total": len(list),
	})
}

func (s *RecommendHandler) History(c *gin.Context) {
	userID := c.GetUint64(consts.UserIDKey)

	limit := 0
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			response.Error(c, service.ErrParamInvalid)
			return
		}
		limit = n
	}

	list, err := s.recommendationSvc.History(c.Request.Context(), userID, limit)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, list)
}
