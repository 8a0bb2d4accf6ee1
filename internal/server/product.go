package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	productdomain "github.com/smallbiznis/cosmocats/internal/product/domain"
)

type createProductRequest struct {
	Name        string           `json:"name" binding:"required,min=2,max=100,cosmic"`
	Description string           `json:"description" binding:"required,min=10,max=500"`
	Price       *decimal.Decimal `json:"price" binding:"required,money"`
	Quantity    *int             `json:"quantity" binding:"required,min=0"`
	Category    string           `json:"category" binding:"required,category_type"`
	Status      string           `json:"status" binding:"omitempty,product_status"`
}

type updateProductRequest struct {
	Name        *string          `json:"name" binding:"omitempty,min=2,max=100,cosmic"`
	Description *string          `json:"description" binding:"omitempty,min=10,max=500"`
	Price       *decimal.Decimal `json:"price" binding:"omitempty,money"`
	Quantity    *int             `json:"quantity" binding:"omitempty,min=0"`
	Category    *string          `json:"category" binding:"omitempty,category_type"`
	Status      *string          `json:"status" binding:"omitempty,product_status"`
}

func (s *Server) CreateProduct(c *gin.Context) {
	var req createProductRequest
	if err := bindJSON(c, &req); err != nil {
		AbortWithError(c, err)
		return
	}

	resp, err := s.productSvc.Create(c.Request.Context(), productdomain.CreateRequest{
		Name:        strings.TrimSpace(req.Name),
		Description: strings.TrimSpace(req.Description),
		Price:       *req.Price,
		Quantity:    *req.Quantity,
		Category:    req.Category,
		Status:      req.Status,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"data": resp})
}

func (s *Server) UpdateProduct(c *gin.Context) {
	var req updateProductRequest
	if err := bindJSON(c, &req); err != nil {
		AbortWithError(c, err)
		return
	}

	resp, err := s.productSvc.Update(c.Request.Context(), c.Param("id"), productdomain.UpdateRequest{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Quantity:    req.Quantity,
		Category:    req.Category,
		Status:      req.Status,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) ListProducts(c *gin.Context) {
	var query struct {
		Name     string `form:"name"`
		Category string `form:"category"`
		Status   string `form:"status"`
		MinPrice string `form:"min_price"`
		MaxPrice string `form:"max_price"`
		SortBy   string `form:"sort_by"`
		OrderBy  string `form:"order_by"`
	}
	if err := c.ShouldBindQuery(&query); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	minPrice, err := parseOptionalDecimal(query.MinPrice)
	if err != nil {
		AbortWithError(c, newValidationError("min_price", "invalid_min_price", "invalid min_price"))
		return
	}
	maxPrice, err := parseOptionalDecimal(query.MaxPrice)
	if err != nil {
		AbortWithError(c, newValidationError("max_price", "invalid_max_price", "invalid max_price"))
		return
	}

	resp, err := s.productSvc.List(c.Request.Context(), productdomain.ListRequest{
		Name:     strings.TrimSpace(query.Name),
		Category: strings.TrimSpace(query.Category),
		Status:   strings.TrimSpace(query.Status),
		MinPrice: minPrice,
		MaxPrice: maxPrice,
		SortBy:   strings.TrimSpace(query.SortBy),
		OrderBy:  strings.TrimSpace(query.OrderBy),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) GetProductByID(c *gin.Context) {
	resp, err := s.productSvc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) DeleteProduct(c *gin.Context) {
	if err := s.productSvc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		AbortWithError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (s *Server) ListLowStockProducts(c *gin.Context) {
	threshold, err := parseOptionalInt(c.Query("threshold"), productdomain.DefaultLowStockThreshold)
	if err != nil {
		AbortWithError(c, productdomain.ErrInvalidThreshold)
		return
	}

	resp, err := s.productSvc.LowStock(c.Request.Context(), threshold)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) GetSalesReport(c *gin.Context) {
	resp, err := s.productSvc.SalesReport(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) ListPopularProducts(c *gin.Context) {
	limit, err := parseOptionalInt(c.Query("limit"), 10)
	if err != nil {
		AbortWithError(c, productdomain.ErrInvalidLimit)
		return
	}

	resp, err := s.productSvc.Popular(c.Request.Context(), limit)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}
