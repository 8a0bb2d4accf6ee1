package server

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	orderdomain "github.com/smallbiznis/cosmocats/internal/order/domain"
	"github.com/smallbiznis/cosmocats/pkg/db/pagination"
)

type createOrderRequest struct {
	OrderNumber string                   `json:"order_number" binding:"omitempty,max=50"`
	TotalAmount *decimal.Decimal         `json:"total_amount" binding:"omitempty,amount"`
	Status      string                   `json:"status" binding:"omitempty,order_status"`
	OrderDate   *time.Time               `json:"order_date"`
	Items       []createOrderItemRequest `json:"items" binding:"omitempty,dive"`
}

type createOrderItemRequest struct {
	ProductID string `json:"product_id" binding:"required"`
	Quantity  int    `json:"quantity" binding:"required,gt=0"`
}

type updateOrderStatusRequest struct {
	Status string `json:"status" binding:"required,order_status"`
}

func (s *Server) CreateOrder(c *gin.Context) {
	var req createOrderRequest
	if err := bindJSON(c, &req); err != nil {
		AbortWithError(c, err)
		return
	}

	items := make([]orderdomain.CreateItemRequest, 0, len(req.Items))
	for _, item := range req.Items {
		items = append(items, orderdomain.CreateItemRequest{
			ProductID: strings.TrimSpace(item.ProductID),
			Quantity:  item.Quantity,
		})
	}

	resp, err := s.orderSvc.Create(c.Request.Context(), orderdomain.CreateRequest{
		OrderNumber: strings.TrimSpace(req.OrderNumber),
		TotalAmount: req.TotalAmount,
		Status:      req.Status,
		OrderDate:   req.OrderDate,
		Items:       items,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"data": resp})
}

// ListOrders applies at most one filter: status, then since, then min_amount.
// Without a filter, page_size or page_token switch to cursor paging.
func (s *Server) ListOrders(c *gin.Context) {
	var query struct {
		Status    string `form:"status"`
		Since     string `form:"since"`
		MinAmount string `form:"min_amount"`
		pagination.Pagination
	}
	if err := c.ShouldBindQuery(&query); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	ctx := c.Request.Context()
	var (
		resp []orderdomain.Response
		err  error
	)
	switch {
	case strings.TrimSpace(query.Status) != "":
		resp, err = s.orderSvc.ListByStatus(ctx, query.Status)
	case strings.TrimSpace(query.Since) != "":
		since, parseErr := parseOptionalTime(query.Since)
		if parseErr != nil {
			AbortWithError(c, newValidationError("since", "invalid_since", "since must be RFC3339 or YYYY-MM-DD"))
			return
		}
		resp, err = s.orderSvc.ListRecent(ctx, *since)
	case strings.TrimSpace(query.MinAmount) != "":
		amount, parseErr := parseOptionalDecimal(query.MinAmount)
		if parseErr != nil {
			AbortWithError(c, newValidationError("min_amount", "invalid_min_amount", "invalid min_amount"))
			return
		}
		resp, err = s.orderSvc.ListAboveAmount(ctx, *amount)
	case query.Pagination.Requested():
		page, info, pageErr := s.orderSvc.ListPage(ctx, query.Pagination)
		if pageErr != nil {
			AbortWithError(c, pageErr)
			return
		}
		c.JSON(http.StatusOK, gin.H{"data": page, "page_info": info})
		return
	default:
		resp, err = s.orderSvc.List(ctx)
	}
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) GetOrderByID(c *gin.Context) {
	resp, err := s.orderSvc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) GetOrderByNumber(c *gin.Context) {
	resp, err := s.orderSvc.GetByNumber(c.Request.Context(), c.Param("number"))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) UpdateOrderStatus(c *gin.Context) {
	var req updateOrderStatusRequest
	if err := bindJSON(c, &req); err != nil {
		AbortWithError(c, err)
		return
	}

	resp, err := s.orderSvc.UpdateStatus(c.Request.Context(), c.Param("id"), req.Status)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) DeleteOrder(c *gin.Context) {
	if err := s.orderSvc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		AbortWithError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
