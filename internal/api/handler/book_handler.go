package handler

import (
	"Lumina/internal/api/dto"
	"Lumina/internal/pkg/response"
	"Lumina/internal/pkg/util"
	"Lumina/internal/service"

	"github.com/gin-gonic/gin"
)

type BookHandler struct {
	bookSvc service.BookService
}

func NewBookHandler(bookSvc service.BookService) *BookHandler {
	return &BookHandler{
		bookSvc: bookSvc,
	}
}

func (s *BookHandler) Search(c *gin.Context) {
	var req dto.BookSearchDTO
	if err := c.ShouldBindQuery(&req); err != nil {
		response.Error(c, err)
		return
	}
	if err := util.ValidateDTO(&req); err != nil {
		response.Error(c, err)
		return
	}

	list, err := s.bookSvc.Search(c.Request.Context(), &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, list)
}

func (s *BookHandler) SearchByTitle(c *gin.Context) {
	var req dto.SearchByTitleDTO
	if err := c.ShouldBindQuery(&req); err != nil {
		response.Error(c, err)
		return
	}
	if err := util.ValidateDTO(&req); err != nil {
		response.Error(c, err)
		return
	}

	list, err := s.bookSvc.SearchByTitle(c.Request.Context(), &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, list)
}

func (s *BookHandler) Similar(c *gin.Context) {
	bookID := c.Param("book_id")

	var req dto.SimilarBooksDTO
	if err := c.ShouldBindQuery(&req); err != nil {
		response.Error(c, err)
		return
	}
	if err := util.ValidateDTO(&req); err != nil {
		response.Error(c, err)
		return
	}

	list, err := s.bookSvc.FindSimilar(c.Request.Context(), bookID, req.Limit)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, list)
}

func (s *BookHandler) Analyze(c *gin.Context) {
	var req dto.AnalyzeBookDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, err)
		return
	}
	if err := util.ValidateDTO(&req); err != nil {
		response.Error(c, err)
		return
	}

	analysis, err := s.bookSvc.Analyze(c.Request.Context(), &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, analysis)
}

func (s *BookHandler) Enhance(c *gin.Context) {
	var req dto.EnhanceDescriptionDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, err)
		return
	}
	if err := util.ValidateDTO(&req); err != nil {
		response.Error(c, err)
		return
	}

	res, err := s.bookSvc.Enhance(c.Request.Context(), &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, res)
}
