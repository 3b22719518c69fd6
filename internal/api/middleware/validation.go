package middleware

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	apierrors "voice-transcriber/internal/api/errors"
)

// BindUpload binds a multipart form into req and validates its struct tags.
// Failures are returned as a validation APIError with per-field details.
func BindUpload(c *gin.Context, req any) error {
	err := c.ShouldBindWith(req, binding.FormMultipart)
	if err == nil {
		return nil
	}

	fields := make(map[string]string)
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		for _, fieldError := range validationErrs {
			field := strings.ToLower(fieldError.Field())
			switch fieldError.Tag() {
			case "required":
				fields[field] = "is required"
			default:
				fields[field] = "is invalid"
			}
		}
	} else {
		fields["request"] = "multipart form data expected"
	}

	return apierrors.NewValidationError("Validation failed", fields)
}
