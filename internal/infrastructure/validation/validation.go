package validation

import (
	"github.com/go-playground/validator/v10"

	"github.com/alarmclock/core/internal/domain/entities"
)

// New returns a validator that also understands the "clock" (HH:MM) and
// "weekday" (one of the seven repeat labels) tags.
func New() *validator.Validate {
	v := validator.New()
	// Registration only fails for an empty tag or a nil func.
	_ = v.RegisterValidation("clock", func(fl validator.FieldLevel) bool {
		return entities.IsClockTime(fl.Field().String())
	})
	_ = v.RegisterValidation("weekday", func(fl validator.FieldLevel) bool {
		return entities.IsWeekday(fl.Field().String())
	})
	return v
}
