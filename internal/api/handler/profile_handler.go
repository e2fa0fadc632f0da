package handler

import (
	"Lumina/internal/api/dto"
	"Lumina/internal/pkg/consts"
	"Lumina/internal/pkg/response"
	"Lumina/internal/pkg/util"
	"Lumina/internal/service"

	"github.com/gin-gonic/gin"
)

type ProfileHandler struct {
	profileSvc service.ProfileService
}

func NewProfileHandler(profileSvc service.ProfileService) *ProfileHandler {
	return &ProfileHandler{
		profileSvc: profileSvc,
	}
}

func (s *ProfileHandler) GetProfile(c *gin.Context) {
	userID := c.GetUint64(consts.UserIDKey)

	profile, err := s.profileSvc.GetProfile(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, profile)
}

func (s *ProfileHandler) UpsertProfile(c *gin.Context) {
	userID := c.GetUint64(consts.UserIDKey)

	var req dto.ProfileDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, err)
		return
	}
	if err := util.ValidateDTO(&req); err != nil {
		response.Error(c, err)
		return
	}

	profile, err := s.profileSvc.UpsertProfile(c.Request.Context(), userID, &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, profile)
}
