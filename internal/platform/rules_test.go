package platform

import (
	"testing"

	"github.com/mentorlink/mentorbot/internal/model"
)

func TestDecodeRules(t *testing.T) {
	day := 1
	badDay := 9
	date := "2026-03-02"
	badDate := "02.03.2026"

	records := []RuleRecord{
		{IsRecurring: true, DayOfWeek: &day, StartTime: "09:00:00", EndTime: "10:00:00"},
		{IsRecurring: false, SpecificDate: &date, StartTime: "08:00", EndTime: "08:30"},
		{IsRecurring: true, DayOfWeek: &badDay, StartTime: "09:00", EndTime: "10:00"},  // weekday out of range
		{IsRecurring: true, StartTime: "09:00", EndTime: "10:00"},                      // recurring without weekday
		{IsRecurring: false, StartTime: "09:00", EndTime: "10:00"},                     // dated without date
		{IsRecurring: false, SpecificDate: &badDate, StartTime: "09:00", EndTime: "10:00"},
		{IsRecurring: true, DayOfWeek: &day, StartTime: "9am", EndTime: "10:00"},       // unparseable clock
		{IsRecurring: true, DayOfWeek: &day, StartTime: "11:00", EndTime: "10:00"},     // inverted window
		{IsRecurring: true, DayOfWeek: &day, StartTime: "10:00", EndTime: "10:00"},     // empty window
	}

	rules, skipped := DecodeRules(records)
	if len(rules) != 2 {
		t.Fatalf("expected 2 valid rules, got %d", len(rules))
	}
	if skipped != 7 {
		t.Fatalf("expected 7 skipped records, got %d", skipped)
	}

	recurring, ok := rules[0].(model.RecurringRule)
	if !ok {
		t.Fatalf("expected RecurringRule, got %T", rules[0])
	}
	// trailing seconds are stripped during decoding
	if recurring.Window().Start != "09:00" || recurring.Window().End != "10:00" {
		t.Fatalf("clock not normalized: %+v", recurring.Window())
	}
	if recurring.Weekday != 1 {
		t.Fatalf("unexpected weekday: %d", recurring.Weekday)
	}

	dated, ok := rules[1].(model.DatedRule)
	if !ok {
		t.Fatalf("expected DatedRule, got %T", rules[1])
	}
	if dated.Date != "2026-03-02" {
		t.Fatalf("unexpected date: %s", dated.Date)
	}
}

func TestDecodeRules_Empty(t *testing.T) {
	rules, skipped := DecodeRules(nil)
	if rules != nil || skipped != 0 {
		t.Fatalf("expected empty result, got %v (%d skipped)", rules, skipped)
	}
}
