package command

import (
	"errors"
	"regexp"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/goliatone/go-contacts/pkg/types"
	goerrors "github.com/goliatone/go-errors"
)

const msgValidationFailed = "validation failed"

var (
	phonePattern = regexp.MustCompile(`^\+?[\d\s\-()]+$`)

	validateOnce sync.Once
	validate     *validator.Validate
)

func inputValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		_ = validate.RegisterValidation("phone", func(fl validator.FieldLevel) bool {
			return phonePattern.MatchString(fl.Field().String())
		})
		_ = validate.RegisterValidation("photoref", func(fl validator.FieldLevel) bool {
			value := fl.Field().String()
			return strings.HasPrefix(value, "data:image/") ||
				strings.HasPrefix(value, "https://") ||
				strings.HasPrefix(value, "http://")
		})
	})
	return validate
}

// validateStruct runs the struct tag rules and reports failures as an
// InvalidArgument error listing each offending field.
func validateStruct(input any) error {
	err := inputValidator().Struct(input)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return types.InvalidArgument(msgValidationFailed)
	}
	fields := make([]goerrors.FieldError, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		fields = append(fields, goerrors.FieldError{
			Field:   lowerFirst(fe.Field()),
			Message: ruleMessage(fe),
		})
	}
	return types.InvalidArgument(msgValidationFailed, fields...)
}

func ruleMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "min":
		return "must be at least " + fe.Param() + " characters"
	case "max":
		return "must be at most " + fe.Param() + " characters"
	case "oneof":
		return "must be one of: " + fe.Param()
	case "phone":
		return "must be a valid phone number"
	case "photoref":
		return "must be an image data URL or an http(s) URL"
	default:
		return "is invalid"
	}
}

func lowerFirst(s string) string {
	if s == "" {
		return s
	}
	return strings.ToLower(s[:1]) + s[1:]
}
