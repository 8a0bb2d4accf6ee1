package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
	categorydomain "github.com/smallbiznis/cosmocats/internal/category/domain"
	orderdomain "github.com/smallbiznis/cosmocats/internal/order/domain"
	productdomain "github.com/smallbiznis/cosmocats/internal/product/domain"
)

var (
	registerOnce sync.Once
	registerErr  error
)

// RegisterValidators installs the catalog validation tags on gin's validator.
func RegisterValidators() error {
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			registerErr = errors.New("unexpected validator engine")
			return
		}

		v.RegisterTagNameFunc(func(field reflect.StructField) string {
			name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			if name == "" {
				return field.Name
			}
			return name
		})
		v.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
			if d, ok := field.Interface().(decimal.Decimal); ok {
				return d.String()
			}
			return nil
		}, decimal.Decimal{})

		validations := map[string]validator.Func{
			"cosmic":         validateCosmic,
			"money":          validateMoney,
			"amount":         validateAmount,
			"category_type":  validateCategoryType,
			"product_status": validateProductStatus,
			"order_status":   validateOrderStatus,
		}
		for tag, fn := range validations {
			if err := v.RegisterValidation(tag, fn); err != nil {
				registerErr = err
				return
			}
		}
	})
	return registerErr
}

func validateCosmic(fl validator.FieldLevel) bool {
	return productdomain.ContainsDomainTerm(fl.Field().String())
}

func validateMoney(fl validator.FieldLevel) bool {
	d, err := decimal.NewFromString(fl.Field().String())
	return err == nil && productdomain.ValidPrice(d)
}

// validateAmount accepts zero and positive amounts with at most two fraction digits.
func validateAmount(fl validator.FieldLevel) bool {
	d, err := decimal.NewFromString(fl.Field().String())
	if err != nil || d.IsNegative() {
		return false
	}
	return d.Equal(d.Truncate(2))
}

func validateCategoryType(fl validator.FieldLevel) bool {
	_, ok := categorydomain.ParseType(fl.Field().String())
	return ok
}

func validateProductStatus(fl validator.FieldLevel) bool {
	_, ok := productdomain.ParseStatus(fl.Field().String())
	return ok
}

func validateOrderStatus(fl validator.FieldLevel) bool {
	_, ok := orderdomain.ParseStatus(fl.Field().String())
	return ok
}

// bindJSON decodes and validates the request body, converting failures into
// ValidationErrors.
func bindJSON(c *gin.Context, obj any) error {
	if err := c.ShouldBindJSON(obj); err != nil {
		return toValidationErrors(err)
	}
	return nil
}

func toValidationErrors(err error) error {
	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) {
		out := &ValidationErrors{Errors: make([]ValidationError, 0, len(fieldErrs))}
		for _, fe := range fieldErrs {
			out.Errors = append(out.Errors, ValidationError{
				Field:   fieldPath(fe),
				Code:    fe.Tag(),
				Message: fieldMessage(fe),
			})
		}
		return out
	}

	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) && typeErr.Field != "" {
		return newValidationError(typeErr.Field, "invalid_type", fmt.Sprintf("%s has the wrong type", typeErr.Field))
	}
	return invalidRequestError()
}

// fieldPath drops the request struct name from the namespace.
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.Index(ns, "."); i >= 0 {
		return ns[i+1:]
	}
	return fe.Field()
}

func fieldMessage(fe validator.FieldError) string {
	field := fe.Field()
	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "min":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("%s must be at least %s characters", field, fe.Param())
		}
		return fmt.Sprintf("%s must be at least %s", field, fe.Param())
	case "max":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("%s must be at most %s characters", field, fe.Param())
		}
		return fmt.Sprintf("%s must be at most %s", field, fe.Param())
	case "gt":
		return fmt.Sprintf("%s must be greater than %s", field, fe.Param())
	case "cosmic":
		return field + " must contain a cosmic term (star, galaxy, comet, ...)"
	case "money":
		return field + " must be positive with at most 10 integer and 2 fraction digits"
	case "amount":
		return field + " must be zero or positive with at most 2 fraction digits"
	case "category_type":
		return field + " must be one of " + joinTypes(categorydomain.Types)
	case "product_status":
		return field + " must be one of " + joinTypes(productdomain.Statuses)
	case "order_status":
		return field + " must be one of " + joinTypes(orderdomain.Statuses)
	default:
		return field + " is invalid"
	}
}

func joinTypes[T ~string](values []T) string {
	parts := make([]string, 0, len(values))
	for _, v := range values {
		parts = append(parts, string(v))
	}
	return strings.Join(parts, ", ")
}
