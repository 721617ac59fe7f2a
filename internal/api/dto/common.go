package dto

import (
	"time"

	"github.com/shopspring/decimal"
	ierr "github.com/talhahassan0005/Management-system-Amir-traders--sub002/internal/errors"
)

// SuccessResponse represents a generic success response
type SuccessResponse struct {
	Message string `json:"message"`
}

// DateLayout is how business dates are written in report rows and query parameters
const DateLayout = "2006-01-02"

// WeightScale is the number of decimal places weights are stored with
const WeightScale = 3

// validateWeightScale rejects weights finer than WeightScale places
func validateWeightScale(field string, v decimal.Decimal) error {
	if !v.Equal(v.Truncate(WeightScale)) {
		return ierr.NewError(field + " has too many decimal places").
			WithHintf("%s can have at most %d decimal places", field, WeightScale).
			WithField(field, v.String()).
			Mark(ierr.ErrValidation)
	}
	return nil
}

func validateNonNegative(field string, v decimal.Decimal) error {
	if v.IsNegative() {
		return ierr.NewError(field + " cannot be negative").
			WithHintf("%s must be zero or more", field).
			WithField(field, v.String()).
			Mark(ierr.ErrValidation)
	}
	return nil
}

// validateRange rejects a window whose end is before its start
func validateRange(from, to *time.Time) error {
	if from != nil && to != nil && to.Before(*from) {
		return ierr.NewError("invalid date range").
			WithHint("The end date must not be before the start date").
			WithReportableDetails(map[string]any{
				"from": from.Format(DateLayout),
				"to":   to.Format(DateLayout),
			}).
			Mark(ierr.ErrValidation)
	}
	return nil
}

// dateOrNow returns the UTC date part of t, or of now when t is nil
func dateOrNow(t *time.Time) time.Time {
	v := time.Now().UTC()
	if t != nil {
		v = t.UTC()
	}
	return time.Date(v.Year(), v.Month(), v.Day(), 0, 0, 0, 0, time.UTC)
}
