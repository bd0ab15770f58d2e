package middleware

import (
	stderrors "errors"
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"scribe/internal/api/errors"
)

// Validator interface for domain validation
type Validator interface {
	Validate() error
}

// ValidateQuery binds and validates query parameters. Failures are
// validation errors (422).
func ValidateQuery(c *gin.Context, req interface{}) error {
	if err := c.ShouldBindQuery(req); err != nil {
		return bindingError(err)
	}

	if v, ok := req.(Validator); ok {
		if err := v.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// ValidateForm binds and validates multipart or urlencoded form fields.
func ValidateForm(c *gin.Context, req interface{}) error {
	if err := c.ShouldBind(req); err != nil {
		return bindingError(err)
	}

	if v, ok := req.(Validator); ok {
		if err := v.Validate(); err != nil {
			return err
		}
	}
	return nil
}

func bindingError(err error) *errors.APIError {
	var validationErrs validator.ValidationErrors
	if !stderrors.As(err, &validationErrs) {
		return errors.NewValidationError(err.Error())
	}

	messages := make([]string, 0, len(validationErrs))
	for _, fieldError := range validationErrs {
		field := strings.ToLower(fieldError.Field())

		switch fieldError.Tag() {
		case "required":
			messages = append(messages, field+" is required")
		case "min", "gte":
			messages = append(messages, fmt.Sprintf("%s must be at least %s", field, fieldError.Param()))
		case "max", "lte":
			messages = append(messages, fmt.Sprintf("%s must be at most %s", field, fieldError.Param()))
		case "oneof":
			messages = append(messages, fmt.Sprintf("%s must be one of: %s", field, fieldError.Param()))
		default:
			messages = append(messages, field+" is invalid")
		}
	}
	return errors.NewValidationError(strings.Join(messages, "; "))
}
