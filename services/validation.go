package services

import (
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/yeremiapane/restaurant-reservations/utils"
)

const (
	dateLayout  = "2006-01-02"
	clockLayout = "15:04"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(utils.JSONTagName)
	return v
}

// validateStruct runs the `validate` tags of in and returns a utils.ValidationError.
func validateStruct(in interface{}) error {
	if err := validate.Struct(in); err != nil {
		return utils.BindingError(err)
	}
	return nil
}

// parseDate accepts YYYY-MM-DD.
func parseDate(field, raw string) (time.Time, error) {
	d, err := time.Parse(dateLayout, strings.TrimSpace(raw))
	if err != nil {
		return time.Time{}, utils.NewValidationError(field, "must be a date in YYYY-MM-DD format")
	}
	return d, nil
}

// normalizeClock accepts HH:MM or HH:MM:SS and returns HH:MM.
func normalizeClock(field, raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	for _, layout := range []string{clockLayout, "15:04:05"} {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.Format(clockLayout), nil
		}
	}
	return "", utils.NewValidationError(field, "must be a time in HH:MM format")
}

func validatePartySize(field string, n int) error {
	if n < 1 {
		return utils.NewValidationError(field, "must be at least 1")
	}
	return nil
}

// addMinutes returns clock+minutes as HH:MM, wrapping past midnight.
func addMinutes(clock string, minutes int) string {
	t, err := time.Parse(clockLayout, clock)
	if err != nil {
		return clock
	}
	return t.Add(time.Duration(minutes) * time.Minute).Format(clockLayout)
}
