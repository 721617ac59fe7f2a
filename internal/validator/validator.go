package validator

import (
	"regexp"
	"sync"

	"github.com/go-playground/validator/v10"
	ierr "github.com/talhahassan0005/Management-system-Amir-traders--sub002/internal/errors"
)

var (
	validate *validator.Validate
	once     sync.Once

	counterNamePattern = regexp.MustCompile(`^[a-z][a-z0-9_]{0,63}$`)
)

func NewValidator() *validator.Validate {
	once.Do(func() {
		validate = validator.New()
		_ = validate.RegisterValidation("counter_name", func(fl validator.FieldLevel) bool {
			return counterNamePattern.MatchString(fl.Field().String())
		})
	})
	return validate
}

func GetValidator() *validator.Validate {
	return NewValidator()
}

// IsCounterName reports whether name is usable as a sequence counter name
func IsCounterName(name string) bool {
	return counterNamePattern.MatchString(name)
}

func ValidateRequest(req interface{}) error {
	if err := GetValidator().Struct(req); err != nil {
		details := make(map[string]any)
		var validateErrs validator.ValidationErrors
		if ierr.As(err, &validateErrs) {
			for _, err := range validateErrs {
				details[err.Field()] = err.Error()
			}
		}
		return ierr.WithError(err).
			WithHint("Request validation failed").
			WithReportableDetails(details).
			Mark(ierr.ErrValidation)
	}
	return nil
}
