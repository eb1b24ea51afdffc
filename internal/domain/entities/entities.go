package entities

import (
	"errors"
	"regexp"
	"time"
)

// Common errors
var (
	ErrAlarmNotFound    = errors.New("alarm not found")
	ErrDuplicateAlarmID = errors.New("duplicate alarm id")
	ErrFormClosed       = errors.New("alarm form is not open")
	ErrInvalidAlarmTime = errors.New("alarm time must be in HH:MM 24-hour form")
	ErrInvalidDraft     = errors.New("invalid alarm draft")
	ErrUnknownWeekday   = errors.New("unknown weekday")
	ErrUnknownScreen    = errors.New("unknown screen")
)

// Screen selects which of the two mutually exclusive lists the view shows.
type Screen string

const (
	ScreenList          Screen = "list"
	ScreenNotifications Screen = "notifications"
)

// Icon is the closed set of icons a notification can carry.
type Icon string

const (
	IconBell    Icon = "Bell"
	IconBellOff Icon = "BellOff"
)

// DefaultIcon is used for any icon name outside the supported set.
const DefaultIcon = IconBell

// Weekday labels in display order, Monday first.
const (
	Monday    = "Пн"
	Tuesday   = "Вт"
	Wednesday = "Ср"
	Thursday  = "Чт"
	Friday    = "Пт"
	Saturday  = "Сб"
	Sunday    = "Вс"
)

// Weekdays lists the labels shown on the repeat buttons of the creation form.
var Weekdays = []string{Monday, Tuesday, Wednesday, Thursday, Friday, Saturday, Sunday}

// DefaultDraftTime is what the time picker shows when the form opens.
const DefaultDraftTime = "09:00"

var clockPattern = regexp.MustCompile(`^([01][0-9]|2[0-3]):[0-5][0-9]$`)

// Alarm represents one scheduled wake event
type Alarm struct {
	ID      string   `json:"id"`
	Time    string   `json:"time"`
	Label   string   `json:"label"`
	Enabled bool     `json:"enabled"`
	Repeat  []string `json:"repeat"`
	Sound   string   `json:"sound"`
}

// Notification is a read-only record of a past alarm event
type Notification struct {
	ID   string `json:"id"`
	Time string `json:"time"`
	Text string `json:"text"`
	Icon Icon   `json:"icon"`
}

// Draft holds the uncommitted fields of the alarm creation form
type Draft struct {
	Time   string   `json:"time" validate:"required,clock"`
	Label  string   `json:"label" validate:"max=200"`
	Repeat []string `json:"repeat" validate:"dive,weekday"`
}

// ViewSnapshot is a consistent copy of the view state at one instant
type ViewSnapshot struct {
	CurrentTime       time.Time      `json:"current_time"`
	Screen            Screen         `json:"screen"`
	SearchQuery       string         `json:"search_query"`
	Alarms            []Alarm        `json:"alarms"`
	Notifications     []Notification `json:"notifications"`
	NotificationCount int            `json:"notification_count"`
	Empty             bool           `json:"empty"`
}

// Business logic methods

// Clone returns a copy that shares no slices with a.
func (a Alarm) Clone() Alarm {
	out := a
	if a.Repeat != nil {
		out.Repeat = append([]string(nil), a.Repeat...)
	}
	return out
}

// Toggle flips the enabled flag.
func (a *Alarm) Toggle() {
	a.Enabled = !a.Enabled
}

// NewNotification builds a notification, mapping an unsupported icon name to DefaultIcon.
func NewNotification(id, when, text, icon string) Notification {
	return Notification{
		ID:   id,
		Time: when,
		Text: text,
		Icon: ParseIcon(icon),
	}
}

// ParseIcon returns the icon named s or DefaultIcon.
func ParseIcon(s string) Icon {
	if icon := Icon(s); icon.IsValid() {
		return icon
	}
	return DefaultIcon
}

// NewDraft returns the draft the form starts from.
func NewDraft() Draft {
	return Draft{
		Time:   DefaultDraftTime,
		Repeat: []string{},
	}
}

// Clone returns a copy that shares no slices with d.
func (d Draft) Clone() Draft {
	out := d
	out.Repeat = append([]string{}, d.Repeat...)
	return out
}

// ToggleDay adds day to the repeat set, or removes it when already present.
// The set is kept in week order.
func (d *Draft) ToggleDay(day string) error {
	if !IsWeekday(day) {
		return ErrUnknownWeekday
	}

	selected := make(map[string]bool, len(d.Repeat)+1)
	for _, r := range d.Repeat {
		selected[r] = true
	}
	selected[day] = !selected[day]

	repeat := make([]string, 0, len(Weekdays))
	for _, w := range Weekdays {
		if selected[w] {
			repeat = append(repeat, w)
		}
	}
	d.Repeat = repeat
	return nil
}

// HasDay reports whether day is selected in the draft.
func (d Draft) HasDay(day string) bool {
	for _, r := range d.Repeat {
		if r == day {
			return true
		}
	}
	return false
}

// Validation methods
func (s Screen) IsValid() bool {
	switch s {
	case ScreenList, ScreenNotifications:
		return true
	}
	return false
}

func (i Icon) IsValid() bool {
	switch i {
	case IconBell, IconBellOff:
		return true
	}
	return false
}

// IsWeekday reports whether s is one of the seven weekday labels.
func IsWeekday(s string) bool {
	for _, w := range Weekdays {
		if w == s {
			return true
		}
	}
	return false
}

// IsClockTime reports whether s is a 24-hour HH:MM time of day.
func IsClockTime(s string) bool {
	return clockPattern.MatchString(s)
}

// ParseScreen maps a screen name to a Screen.
func ParseScreen(s string) (Screen, error) {
	screen := Screen(s)
	if !screen.IsValid() {
		return "", ErrUnknownScreen
	}
	return screen, nil
}
