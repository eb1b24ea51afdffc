package entities

// SeedAlarms returns the alarms every new view starts with.
func SeedAlarms() []Alarm {
	weekdays := []string{Monday, Tuesday, Wednesday, Thursday, Friday}
	return []Alarm{
		{
			ID:      "1",
			Time:    "07:00",
			Label:   "Утренний подъём",
			Enabled: true,
			Repeat:  append([]string(nil), weekdays...),
			Sound:   "Радар",
		},
		{
			ID:      "2",
			Time:    "08:30",
			Label:   "Выход из дома",
			Enabled: false,
			Repeat:  append([]string(nil), weekdays...),
			Sound:   "Восход",
		},
		{
			ID:      "3",
			Time:    "22:00",
			Label:   "Время спать",
			Enabled: true,
			Repeat:  []string{Sunday, Monday, Tuesday, Wednesday, Thursday, Friday, Saturday},
			Sound:   "Колыбельная",
		},
	}
}

// SeedNotifications returns the notification history shown by every new view.
func SeedNotifications() []Notification {
	return []Notification{
		NewNotification("1", "5 мин назад", `Будильник "Утренний подъём" сработал`, "Bell"),
		NewNotification("2", "1 час назад", `Будильник "Выход из дома" пропущен`, "BellOff"),
		NewNotification("3", "Вчера", `Будильник "Время спать" остановлен`, "Bell"),
	}
}
