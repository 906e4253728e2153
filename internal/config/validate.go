package config

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/Veraticus/foxy-spend/internal/common"
	"github.com/Veraticus/foxy-spend/internal/model"
)

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

func getValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New()
		_ = validate.RegisterValidation("timeslot", validateTimeSlot)
	})
	return validate
}

func validateTimeSlot(fl validator.FieldLevel) bool {
	_, err := model.ParseTimeSlot(fl.Field().String())
	return err == nil
}

// Validate checks cfg against its struct tags and reports every failing field.
func Validate(cfg Config) error {
	if err := getValidator().Struct(cfg); err != nil {
		var fieldErrs validator.ValidationErrors
		if !errors.As(err, &fieldErrs) {
			return fmt.Errorf("%w: %w", common.ErrInvalidConfig, err)
		}
		msgs := make([]string, 0, len(fieldErrs))
		for _, fe := range fieldErrs {
			msgs = append(msgs, formatFieldError(fe))
		}
		return fmt.Errorf("%w: %s", common.ErrInvalidConfig, strings.Join(msgs, "; "))
	}
	return nil
}

func formatFieldError(fe validator.FieldError) string {
	field := strings.TrimPrefix(fe.Namespace(), "Config.")
	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "oneof":
		return fmt.Sprintf("%s must be one of [%s]", field, fe.Param())
	case "timeslot":
		return fmt.Sprintf("%s %q is not a HH:MM-HH:MM slot", field, fe.Value())
	case "timezone":
		return fmt.Sprintf("%s %q is not a known time zone", field, fe.Value())
	default:
		return fmt.Sprintf("%s failed %s=%s", field, fe.Tag(), fe.Param())
	}
}
