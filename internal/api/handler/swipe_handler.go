package handler

import (
	"Lumina/internal/api/dto"
	"Lumina/internal/pkg/consts"
	"Lumina/internal/pkg/response"
	"Lumina/internal/pkg/util"
	"Lumina/internal/service"

	"github.com/gin-gonic/gin"
)

type SwipeHandler struct {
	swipeSvc service.SwipeService
}

func NewSwipeHandler(swipeSvc service.SwipeService) *SwipeHandler {
	return &SwipeHandler{
		swipeSvc: swipeSvc,
	}
}

func (s *SwipeHandler) RecordSwipe(c *gin.Context) {
	userID := c.GetUint64(consts.UserIDKey)

	var req dto.SwipeDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, err)
		return
	}
	if err := util.ValidateDTO(&req); err != nil {
		response.Error(c, err)
		return
	}

	res, err := s.swipeSvc.RecordSwipe(c.Request.Context(), userID, &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, res)
}

func (s *SwipeHandler) ListSwipes(c *gin.Context) {
	userID := c.GetUint64(consts.UserIDKey)

	var req dto.SwipeListDTO
	if err := c.ShouldBindQuery(&req); err != nil {
		response.Error(c, err)
		return
	}
	if err := util.ValidateDTO(&req); err != nil {
		response.Error(c, err)
		return
	}

	res, err := s.swipeSvc.ListSwipes(c.Request.Context(), userID, &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, res)
}
