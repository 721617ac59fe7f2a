package dto

import (
	ierr "github.com/talhahassan0005/Management-system-Amir-traders--sub002/internal/errors"
	"github.com/talhahassan0005/Management-system-Amir-traders--sub002/internal/validator"
)

// SequenceResponse reports a counter value, and the formatted code when one was allocated
type SequenceResponse struct {
	Name  string `json:"name"`
	Value int64  `json:"value"`
	Code  string `json:"code,omitempty"`
}

// ValidateCounterName rejects names that cannot be used as a counter key
func ValidateCounterName(name string) error {
	if !validator.IsCounterName(name) {
		return ierr.NewError("invalid counter name").
			WithHint("Counter names are lower case letters, digits and underscores, starting with a letter").
			WithReportableDetails(map[string]any{"name": name}).
			Mark(ierr.ErrValidation)
	}
	return nil
}
