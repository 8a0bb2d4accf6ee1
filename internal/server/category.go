package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	categorydomain "github.com/smallbiznis/cosmocats/internal/category/domain"
)

type createCategoryRequest struct {
	Type        string `json:"type" binding:"required,category_type"`
	Description string `json:"description" binding:"max=500"`
}

type updateCategoryRequest struct {
	Type        *string `json:"type" binding:"omitempty,category_type"`
	Description *string `json:"description" binding:"omitempty,max=500"`
}

func (s *Server) CreateCategory(c *gin.Context) {
	var req createCategoryRequest
	if err := bindJSON(c, &req); err != nil {
		AbortWithError(c, err)
		return
	}

	resp, err := s.categorySvc.Create(c.Request.Context(), categorydomain.CreateRequest{
		Type:        req.Type,
		Description: strings.TrimSpace(req.Description),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"data": resp})
}

func (s *Server) ListCategories(c *gin.Context) {
	resp, err := s.categorySvc.List(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) SearchCategories(c *gin.Context) {
	resp, err := s.categorySvc.Search(c.Request.Context(), c.Query("keyword"))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) GetCategoryByType(c *gin.Context) {
	resp, err := s.categorySvc.GetByType(c.Request.Context(), c.Param("type"))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) GetCategoryByID(c *gin.Context) {
	resp, err := s.categorySvc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) UpdateCategory(c *gin.Context) {
	var req updateCategoryRequest
	if err := bindJSON(c, &req); err != nil {
		AbortWithError(c, err)
		return
	}

	resp, err := s.categorySvc.Update(c.Request.Context(), c.Param("id"), categorydomain.UpdateRequest{
		Type:        req.Type,
		Description: req.Description,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) DeleteCategory(c *gin.Context) {
	if err := s.categorySvc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		AbortWithError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
