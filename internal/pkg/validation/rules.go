package validation

import (
	"errors"
	"fmt"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/salus-app/salus-backend/internal/app/models"
	"github.com/salus-app/salus-backend/internal/app/models/dto"
)

// RegisterCustomValidators installs the domain validation tags on gin's
// binding engine. Called once at startup.
func RegisterCustomValidators() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return errors.New("unsupported binding validator engine")
	}

	if err := v.RegisterValidation("language", func(fl validator.FieldLevel) bool {
		return models.ValidLanguage(models.Language(fl.Field().String()))
	}); err != nil {
		return err
	}

	return v.RegisterValidation("gender", func(fl validator.FieldLevel) bool {
		return models.ValidGender(models.Gender(fl.Field().String()))
	})
}

// FormatBindingError converts a request binding failure into the standard
// validation error detail, naming the first offending field when possible.
func FormatBindingError(err error) *dto.ErrorDetail {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		detail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, fieldErrorMessage(verrs[0]))
		return detail.WithField(verrs[0].Field())
	}
	return dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid request format")
}

func fieldErrorMessage(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return e.Field() + " is required"
	case "min":
		return fmt.Sprintf("%s must be at least %s", e.Field(), e.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s", e.Field(), e.Param())
	case "email":
		return e.Field() + " must be a valid email address"
	case "language":
		return e.Field() + " must be a supported language"
	case "gender":
		return e.Field() + " must be a valid gender value"
	default:
		return e.Field() + " failed validation: " + e.Tag()
	}
}
