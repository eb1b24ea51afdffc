package services

import (
	"strings"

	"github.com/alarmclock/core/internal/domain/entities"
)

// FilterAlarms returns the alarms whose label contains query case-insensitively
// or whose time contains query verbatim, in their original order.
// An empty query returns every alarm. The input slice is not modified.
func FilterAlarms(alarms []entities.Alarm, query string) []entities.Alarm {
	out := make([]entities.Alarm, 0, len(alarms))
	if query == "" {
		return append(out, alarms...)
	}

	folded := strings.ToLower(query)
	for _, alarm := range alarms {
		if strings.Contains(strings.ToLower(alarm.Label), folded) || strings.Contains(alarm.Time, query) {
			out = append(out, alarm)
		}
	}
	return out
}
