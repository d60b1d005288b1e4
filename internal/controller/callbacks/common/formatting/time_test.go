package formatting

import (
	"testing"

	"github.com/mentorlink/mentorbot/internal/model"
)

func TestFormatDateWithWeekday(t *testing.T) {
	// 2026-03-02 - понедельник
	got := FormatDateWithWeekday("2026-03-02")
	want := "02.03.2026 (Понедельник)"
	if got != want {
		t.Fatalf("FormatDateWithWeekday = %q, want %q", got, want)
	}
}

func TestFormatDateWithWeekday_BadInput(t *testing.T) {
	// Нечитаемая дата возвращается как есть, без паники
	if got := FormatDateWithWeekday("not-a-date"); got != "not-a-date" {
		t.Fatalf("FormatDateWithWeekday = %q, want passthrough", got)
	}
}

func TestFormatDayLabel(t *testing.T) {
	tests := []struct {
		date string
		want string
	}{
		{"2026-03-02", "Пн 02.03"},
		{"2026-03-07", "Сб 07.03"},
		{"2026-03-08", "Вс 08.03"},
	}

	for _, tt := range tests {
		if got := FormatDayLabel(tt.date); got != tt.want {
			t.Errorf("FormatDayLabel(%q) = %q, want %q", tt.date, got, tt.want)
		}
	}
}

func TestFormatSlotRange(t *testing.T) {
	slot := model.ResolvedSlot{Date: "2026-03-02", StartTime: "09:00", EndTime: "10:30"}
	if got := FormatSlotRange(slot); got != "09:00-10:30" {
		t.Fatalf("FormatSlotRange = %q", got)
	}
}

func TestFormatOffsetDelta(t *testing.T) {
	tests := []struct {
		minutes int
		want    string
	}{
		{0, "в вашем часовом поясе"},
		{180, "на 3 ч впереди вас"},
		{-180, "на 3 ч позади вас"},
		{30, "на 30 мин впереди вас"},
		{-90, "на 1 ч 30 мин позади вас"},
	}

	for _, tt := range tests {
		if got := FormatOffsetDelta(tt.minutes); got != tt.want {
			t.Errorf("FormatOffsetDelta(%d) = %q, want %q", tt.minutes, got, tt.want)
		}
	}
}

func TestPluralizeSlots(t *testing.T) {
	tests := []struct {
		count int
		want  string
	}{
		{1, "слот"},
		{2, "слота"},
		{5, "слотов"},
		{11, "слотов"},
		{21, "слот"},
		{104, "слота"},
	}

	for _, tt := range tests {
		if got := PluralizeSlots(tt.count); got != tt.want {
			t.Errorf("PluralizeSlots(%d) = %q, want %q", tt.count, got, tt.want)
		}
	}
}
