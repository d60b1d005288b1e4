package formatting

import (
	"fmt"
	"time"

	"github.com/mentorlink/mentorbot/internal/model"
)

// ParseDate разбирает дату календаря "YYYY-MM-DD"
func ParseDate(s string) (time.Time, error) {
	return time.Parse(model.DateLayout, s)
}

// FormatDateShort форматирует дату "2026-03-02" как "02.03"
func FormatDateShort(dateStr string) string {
	t, err := ParseDate(dateStr)
	if err != nil {
		return dateStr
	}
	return t.Format("02.01")
}

// FormatDateWithWeekday форматирует дату с днём недели: "02.03.2026 (Понедельник)"
func FormatDateWithWeekday(dateStr string) string {
	t, err := ParseDate(dateStr)
	if err != nil {
		return dateStr
	}
	return fmt.Sprintf("%s (%s)", t.Format("02.01.2006"), GetWeekdayName(int(t.Weekday())))
}

// FormatDayLabel форматирует дату для кнопки дня: "Пн 02.03"
func FormatDayLabel(dateStr string) string {
	t, err := ParseDate(dateStr)
	if err != nil {
		return dateStr
	}
	return fmt.Sprintf("%s %s", GetWeekdayShortName(int(t.Weekday())), t.Format("02.01"))
}

// FormatSlotRange форматирует интервал слота: "09:00-10:30"
func FormatSlotRange(slot model.ResolvedSlot) string {
	return fmt.Sprintf("%s-%s", slot.StartTime, slot.EndTime)
}

// FormatOffsetDelta описывает разницу часовых поясов ментора и пользователя.
// Дельта в минутах, положительная - ментор впереди.
func FormatOffsetDelta(deltaMinutes int) string {
	if deltaMinutes == 0 {
		return "в вашем часовом поясе"
	}

	direction := "впереди вас"
	if deltaMinutes < 0 {
		direction = "позади вас"
		deltaMinutes = -deltaMinutes
	}

	hours := deltaMinutes / 60
	mins := deltaMinutes % 60

	switch {
	case mins == 0:
		return fmt.Sprintf("на %d ч %s", hours, direction)
	case hours == 0:
		return fmt.Sprintf("на %d мин %s", mins, direction)
	default:
		return fmt.Sprintf("на %d ч %d мин %s", hours, mins, direction)
	}
}

// GetWeekdayName возвращает название дня недели на русском
func GetWeekdayName(weekday int) string {
	names := []string{
		"Воскресенье",
		"Понедельник",
		"Вторник",
		"Среда",
		"Четверг",
		"Пятница",
		"Суббота",
	}
	if weekday >= 0 && weekday < len(names) {
		return names[weekday]
	}
	return "Неизвестно"
}

// GetWeekdayShortName возвращает краткое название дня недели на русском
func GetWeekdayShortName(weekday int) string {
	names := []string{"Вс", "Пн", "Вт", "Ср", "Чт", "Пт", "Сб"}
	if weekday >= 0 && weekday < len(names) {
		return names[weekday]
	}
	return "?"
}
