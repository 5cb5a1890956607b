package formatting

import (
	"fmt"
	"time"
)

// FormatDateTime форматирует дату и время
func FormatDateTime(t time.Time) string {
	return t.Format("02.01.2006 15:04")
}

// FormatDate форматирует только дату
func FormatDate(t time.Time) string {
	return t.Format("02.01.2006")
}

// FormatDateWithWeekday форматирует дату с днём недели на русском
func FormatDateWithWeekday(t time.Time) string {
	return fmt.Sprintf("%s, %s", FormatDate(t), GetWeekdayName(int(t.Weekday())))
}

// FormatTimeRange форматирует интервал визита, переход через полночь помечается датой конца
func FormatTimeRange(start, end time.Time) string {
	if start.YearDay() != end.YearDay() || start.Year() != end.Year() {
		return fmt.Sprintf("%s-%s (%s)", start.Format("15:04"), end.Format("15:04"), FormatDate(end))
	}
	return fmt.Sprintf("%s-%s", start.Format("15:04"), end.Format("15:04"))
}

// FormatDuration форматирует длительность в минутах
func FormatDuration(minutes int) string {
	if minutes < 60 {
		return fmt.Sprintf("%d мин", minutes)
	}
	hours := minutes / 60
	mins := minutes % 60
	if mins == 0 {
		return fmt.Sprintf("%d ч", hours)
	}
	return fmt.Sprintf("%d ч %d мин", hours, mins)
}

// GetWeekdayName возвращает название дня недели на русском
func GetWeekdayName(weekday int) string {
	names := []string{
		"воскресенье",
		"понедельник",
		"вторник",
		"среда",
		"четверг",
		"пятница",
		"суббота",
	}
	if weekday >= 0 && weekday < len(names) {
		return names[weekday]
	}
	return "?"
}
