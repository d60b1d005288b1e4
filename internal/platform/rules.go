package platform

import (
	"time"

	"github.com/mentorlink/mentorbot/internal/availability"
	"github.com/mentorlink/mentorbot/internal/model"
)

// RuleRecord запись о доступности в том виде, в котором её отдаёт платформа.
// Ровно одно из полей day_of_week / specific_date осмысленно,
// переключатель — is_recurring.
type RuleRecord struct {
	IsRecurring  bool    `json:"is_recurring"`
	DayOfWeek    *int    `json:"day_of_week,omitempty"`
	SpecificDate *string `json:"specific_date,omitempty"`
	StartTime    string  `json:"start_time"`
	EndTime      string  `json:"end_time"`
}

// DecodeRules превращает записи платформы в типизированные правила.
// Некорректные записи (битое время, недостающее поле варианта,
// start >= end) отбрасываются по одной: одна плохая запись не должна
// прятать остальную доступность ментора. Возвращает число отброшенных.
func DecodeRules(records []RuleRecord) ([]model.AvailabilityRule, int) {
	var rules []model.AvailabilityRule
	skipped := 0

	for _, rec := range records {
		rule, ok := decodeRule(rec)
		if !ok {
			skipped++
			continue
		}
		rules = append(rules, rule)
	}

	return rules, skipped
}

func decodeRule(rec RuleRecord) (model.AvailabilityRule, bool) {
	start, err := availability.NormalizeClock(rec.StartTime)
	if err != nil {
		return nil, false
	}
	end, err := availability.NormalizeClock(rec.EndTime)
	if err != nil {
		return nil, false
	}
	if start >= end {
		return nil, false
	}

	window := model.TimeWindow{Start: start, End: end}

	if rec.IsRecurring {
		if rec.DayOfWeek == nil || *rec.DayOfWeek < 0 || *rec.DayOfWeek > 6 {
			return nil, false
		}
		return model.RecurringRule{Weekday: *rec.DayOfWeek, TimeWindow: window}, true
	}

	if rec.SpecificDate == nil {
		return nil, false
	}
	if _, err := time.Parse(model.DateLayout, *rec.SpecificDate); err != nil {
		return nil, false
	}
	return model.DatedRule{Date: *rec.SpecificDate, TimeWindow: window}, true
}
