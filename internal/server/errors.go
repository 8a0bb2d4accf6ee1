package server

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/smallbiznis/cosmocats/internal/authorization"
	categorydomain "github.com/smallbiznis/cosmocats/internal/category/domain"
	featuredomain "github.com/smallbiznis/cosmocats/internal/featuretoggle/domain"
	orderdomain "github.com/smallbiznis/cosmocats/internal/order/domain"
	productdomain "github.com/smallbiznis/cosmocats/internal/product/domain"
	"github.com/smallbiznis/cosmocats/pkg/db/pagination"
	"gorm.io/gorm"
)

type ValidationError struct {
	Field   string `json:"field"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

type ValidationErrors struct {
	Errors []ValidationError `json:"errors"`
}

func (v ValidationErrors) Error() string {
	return "validation error"
}

type errorPayload struct {
	Type    string            `json:"type"`
	Message string            `json:"message"`
	Errors  []ValidationError `json:"errors,omitempty"`
}

type errorResponse struct {
	Error errorPayload `json:"error"`
}

var (
	ErrUnauthorized   = errors.New("unauthorized")
	ErrForbidden      = errors.New("forbidden")
	ErrInternal       = errors.New("internal_error")
	ErrNotFound       = errors.New("not_found")
	ErrInvalidRequest = errors.New("invalid_request")
)

func ErrorHandlingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if c.Writer.Written() {
			return
		}

		lastErr := c.Errors.Last()
		if lastErr == nil {
			return
		}

		status, payload := mapError(lastErr.Err)
		c.Header("Content-Type", "application/json")
		c.AbortWithStatusJSON(status, errorResponse{Error: payload})
	}
}

func AbortWithError(c *gin.Context, err error) {
	if err == nil {
		return
	}
	_ = c.Error(err)
	c.Abort()
}

func invalidRequestError() error {
	return newValidationError("request", "invalid_request", "invalid request")
}

func newValidationError(field, code, message string) error {
	return &ValidationErrors{
		Errors: []ValidationError{
			{
				Field:   field,
				Code:    code,
				Message: message,
			},
		},
	}
}

func mapError(err error) (int, errorPayload) {
	if err == nil {
		return http.StatusInternalServerError, errorPayload{
			Type:    "internal_error",
			Message: "internal server error",
		}
	}

	if vErr := asValidationErrors(err); vErr != nil {
		return http.StatusBadRequest, errorPayload{
			Type:    "validation_error",
			Message: "validation error",
			Errors:  vErr.Errors,
		}
	}

	if isValidationError(err) {
		code := validationErrorCode(err)
		return http.StatusBadRequest, errorPayload{
			Type:    "validation_error",
			Message: "validation error",
			Errors: []ValidationError{
				{
					Field:   validationErrorField(code),
					Code:    code,
					Message: validationErrorMessage(code),
				},
			},
		}
	}

	var disabled *featuredomain.DisabledError
	switch {
	case errors.As(err, &disabled):
		return http.StatusNotFound, errorPayload{
			Type:    "feature_disabled",
			Message: disabled.Error(),
		}
	case errors.Is(err, featuredomain.ErrFeatureDisabled):
		return http.StatusNotFound, errorPayload{
			Type:    "feature_disabled",
			Message: "feature is not enabled",
		}
	case errors.Is(err, ErrUnauthorized):
		return http.StatusUnauthorized, errorPayload{
			Type:    "unauthorized",
			Message: "unauthorized",
		}
	case errors.Is(err, ErrForbidden),
		errors.Is(err, authorization.ErrForbidden):
		return http.StatusForbidden, errorPayload{
			Type:    "forbidden",
			Message: "forbidden",
		}
	case isConflictError(err):
		return http.StatusConflict, errorPayload{
			Type:    "conflict",
			Message: conflictMessage(err),
		}
	case isNotFoundError(err):
		return http.StatusNotFound, errorPayload{
			Type:    "not_found",
			Message: notFoundMessage(err),
		}
	default:
		return http.StatusInternalServerError, errorPayload{
			Type:    "internal_error",
			Message: "internal server error",
		}
	}
}

// classifyErrorForLog maps an error to the error_type/error_code pair
// recorded on the request log line.
func classifyErrorForLog(err error) (string, string) {
	status, payload := mapError(err)
	code := payload.Type
	if len(payload.Errors) > 0 {
		code = payload.Errors[0].Code
	}
	switch {
	case status >= http.StatusInternalServerError:
		return "server", code
	default:
		return "client", code
	}
}

func asValidationErrors(err error) *ValidationErrors {
	var vErr *ValidationErrors
	if errors.As(err, &vErr) && vErr != nil {
		return vErr
	}
	return nil
}

func isValidationError(err error) bool {
	switch {
	case errors.Is(err, ErrInvalidRequest):
		return true
	case isCategoryValidationError(err),
		isProductValidationError(err),
		isOrderValidationError(err),
		isFeatureValidationError(err),
		isPaginationError(err):
		return true
	default:
		return false
	}
}

func isNotFoundError(err error) bool {
	switch {
	case errors.Is(err, ErrNotFound),
		errors.Is(err, categorydomain.ErrNotFound),
		errors.Is(err, productdomain.ErrNotFound),
		errors.Is(err, productdomain.ErrCategoryNotFound),
		errors.Is(err, orderdomain.ErrNotFound),
		errors.Is(err, orderdomain.ErrProductNotFound),
		errors.Is(err, featuredomain.ErrUnknownFeature),
		errors.Is(err, gorm.ErrRecordNotFound):
		return true
	default:
		return false
	}
}

func isConflictError(err error) bool {
	switch {
	case errors.Is(err, categorydomain.ErrDuplicate),
		errors.Is(err, categorydomain.ErrInUse),
		errors.Is(err, productdomain.ErrDuplicate),
		errors.Is(err, productdomain.ErrInUse),
		errors.Is(err, orderdomain.ErrDuplicate),
		errors.Is(err, orderdomain.ErrNumberExhausted):
		return true
	default:
		return false
	}
}

func notFoundMessage(err error) string {
	switch {
	case errors.Is(err, categorydomain.ErrNotFound),
		errors.Is(err, productdomain.ErrCategoryNotFound):
		return "category not found"
	case errors.Is(err, productdomain.ErrNotFound),
		errors.Is(err, orderdomain.ErrProductNotFound):
		return "product not found"
	case errors.Is(err, orderdomain.ErrNotFound):
		return "order not found"
	case errors.Is(err, featuredomain.ErrUnknownFeature):
		return "feature not found"
	default:
		return "not found"
	}
}

func conflictMessage(err error) string {
	switch {
	case errors.Is(err, categorydomain.ErrDuplicate):
		return "category with this type already exists"
	case errors.Is(err, categorydomain.ErrInUse):
		return "category still has products"
	case errors.Is(err, productdomain.ErrDuplicate):
		return "product with this name already exists in the category"
	case errors.Is(err, productdomain.ErrInUse):
		return "product is referenced by orders"
	case errors.Is(err, orderdomain.ErrDuplicate):
		return "order number already exists"
	default:
		return "conflict"
	}
}

func validationErrorCode(err error) string {
	switch {
	case errors.Is(err, ErrInvalidRequest):
		return "invalid_request"
	default:
		return err.Error()
	}
}

func validationErrorField(code string) string {
	if code == "invalid_request" {
		return "request"
	}
	if strings.HasPrefix(code, "invalid_") {
		return strings.TrimPrefix(code, "invalid_")
	}
	return ""
}

func validationErrorMessage(code string) string {
	switch code {
	case "invalid_request":
		return "invalid request"
	default:
		return "invalid value"
	}
}

func isCategoryValidationError(err error) bool {
	switch err {
	case categorydomain.ErrInvalidID,
		categorydomain.ErrInvalidType,
		categorydomain.ErrInvalidDescription,
		categorydomain.ErrInvalidKeyword:
		return true
	default:
		return false
	}
}

func isProductValidationError(err error) bool {
	switch err {
	case productdomain.ErrInvalidID,
		productdomain.ErrInvalidName,
		productdomain.ErrInvalidDescription,
		productdomain.ErrInvalidPrice,
		productdomain.ErrInvalidQuantity,
		productdomain.ErrInvalidCategory,
		productdomain.ErrInvalidStatus,
		productdomain.ErrInvalidThreshold,
		productdomain.ErrInvalidLimit:
		return true
	default:
		return false
	}
}

func isOrderValidationError(err error) bool {
	switch err {
	case orderdomain.ErrInvalidID,
		orderdomain.ErrInvalidOrderNumber,
		orderdomain.ErrInvalidTotalAmount,
		orderdomain.ErrInvalidStatus,
		orderdomain.ErrInvalidQuantity,
		orderdomain.ErrInvalidProduct:
		return true
	default:
		return false
	}
}

func isFeatureValidationError(err error) bool {
	switch err {
	case featuredomain.ErrInvalidName:
		return true
	default:
		return false
	}
}

func isPaginationError(err error) bool {
	switch err {
	case pagination.ErrInvalidPageToken,
		pagination.ErrInvalidPageSize:
		return true
	default:
		return false
	}
}
