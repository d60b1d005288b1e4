package model

import "time"

// DateLayout формат календарной даты, в котором платформа отдаёт specific_date
const DateLayout = "2006-01-02"

// TimeWindow интервал времени в пределах одного дня.
// Start и End хранятся строками "HH:MM" (24 часа, с ведущими нулями),
// поэтому их можно сравнивать лексикографически.
type TimeWindow struct {
	Start string `json:"start_time"`
	End   string `json:"end_time"`
}

// AvailabilityRule правило доступности ментора.
// Ровно два варианта: еженедельное (RecurringRule) и на конкретную дату (DatedRule).
type AvailabilityRule interface {
	// AppliesTo сообщает, действует ли правило в указанную календарную дату
	AppliesTo(date time.Time) bool
	// Window возвращает интервал времени правила
	Window() TimeWindow
}

// RecurringRule правило, повторяющееся каждую неделю в фиксированный день
type RecurringRule struct {
	Weekday int // 0 = Sunday, 6 = Saturday
	TimeWindow
}

func (r RecurringRule) AppliesTo(date time.Time) bool {
	return int(date.Weekday()) == r.Weekday
}

func (r RecurringRule) Window() TimeWindow {
	return r.TimeWindow
}

// DatedRule правило, действующее ровно в одну календарную дату
type DatedRule struct {
	Date string // "YYYY-MM-DD"
	TimeWindow
}

func (r DatedRule) AppliesTo(date time.Time) bool {
	return date.Format(DateLayout) == r.Date
}

func (r DatedRule) Window() TimeWindow {
	return r.TimeWindow
}
