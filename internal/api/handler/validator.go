package handler

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/99minutos/identity-service/internal/core/domain"
)

var (
	hasUpper = regexp.MustCompile(`[A-Z]`)
	hasLower = regexp.MustCompile(`[a-z]`)
	hasDigit = regexp.MustCompile(`[0-9]`)
)

// echoValidator wraps go-playground/validator so Echo can call c.Validate(req).
type echoValidator struct {
	v *validator.Validate
}

// NewValidator returns an echoValidator ready to be assigned to echo.Echo.Validator.
// It registers the "password" rule: one upper-case letter, one lower-case
// letter and one digit.
func NewValidator() *echoValidator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return f.Name
		}
		return name
	})
	_ = v.RegisterValidation("password", strongPassword)
	return &echoValidator{v: v}
}

func strongPassword(fl validator.FieldLevel) bool {
	s := fl.Field().String()
	return hasUpper.MatchString(s) && hasLower.MatchString(s) && hasDigit.MatchString(s)
}

// Validate satisfies the echo.Validator interface. Failures wrap
// domain.ErrInvalidInput so the error handler answers 400.
func (ev *echoValidator) Validate(i any) error {
	if err := ev.v.Struct(i); err != nil {
		var ve validator.ValidationErrors
		if errors.As(err, &ve) {
			msgs := make([]string, 0, len(ve))
			for _, fe := range ve {
				msgs = append(msgs, fieldError(fe))
			}
			return fmt.Errorf("%w: %s", domain.ErrInvalidInput, strings.Join(msgs, "; "))
		}
		return fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}
	return nil
}

// fieldError converts a single ValidationError into a human-readable message.
func fieldError(fe validator.FieldError) string {
	field := fe.Field()
	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "required_without":
		return fmt.Sprintf("%s is required when %s is absent", field, strings.ToLower(fe.Param()))
	case "email":
		return field + " must be a valid email"
	case "min":
		return fmt.Sprintf("%s must be at least %s characters", field, fe.Param())
	case "password":
		return field + " must contain at least one uppercase letter, one lowercase letter, and one number"
	default:
		return fmt.Sprintf("%s failed validation (%s)", field, fe.Tag())
	}
}
