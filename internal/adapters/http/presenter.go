package http

import (
	"time"

	"github.com/goodsign/monday"
)

const (
	clockLayout = "15:04"
	dateLayout  = "Monday, 2 January"
)

// Presenter formats clock values for display. Formatting happens at render
// time; the view only stores the raw instant.
type Presenter struct {
	locale   monday.Locale
	location *time.Location
}

// NewPresenter creates a presenter for the given locale (e.g. "ru_RU") and timezone
func NewPresenter(locale string, location *time.Location) Presenter {
	if location == nil {
		location = time.Local
	}
	l := monday.Locale(locale)
	if !isSupportedLocale(l) {
		l = monday.LocaleRuRU
	}
	return Presenter{locale: l, location: location}
}

// Clock renders the 24-hour hour:minute of t
func (p Presenter) Clock(t time.Time) string {
	return t.In(p.location).Format(clockLayout)
}

// Date renders the long weekday, day of month and long month name of t
func (p Presenter) Date(t time.Time) string {
	return monday.Format(t.In(p.location), dateLayout, p.locale)
}

func isSupportedLocale(l monday.Locale) bool {
	for _, supported := range monday.ListLocales() {
		if supported == l {
			return true
		}
	}
	return false
}
