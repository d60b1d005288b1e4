package booking

import (
	"strings"
	"testing"

	"github.com/mentorlink/mentorbot/internal/model"
)

func TestSlotCallbackData_RoundTrip(t *testing.T) {
	slot := model.ResolvedSlot{
		Date:      "2026-03-02",
		StartTime: "09:00",
		EndTime:   "10:30",
		Available: true,
	}

	data := slotCallbackData(12, slot)
	if data != "slot:12:2026-03-02:0900:1030" {
		t.Fatalf("slotCallbackData = %q", data)
	}

	// Время не должно содержать двоеточий внутри полей,
	// иначе разбор callback по ":" ломается
	parts := strings.Split(data, ":")
	if len(parts) != 5 {
		t.Fatalf("callback data has %d parts, want 5: %q", len(parts), data)
	}

	start, err := decodeClock(parts[3])
	if err != nil {
		t.Fatalf("decodeClock(%q) error: %v", parts[3], err)
	}
	if start != slot.StartTime {
		t.Fatalf("decoded start = %q, want %q", start, slot.StartTime)
	}

	end, err := decodeClock(parts[4])
	if err != nil {
		t.Fatalf("decodeClock(%q) error: %v", parts[4], err)
	}
	if end != slot.EndTime {
		t.Fatalf("decoded end = %q, want %q", end, slot.EndTime)
	}
}

func TestDecodeClock_Invalid(t *testing.T) {
	// Подделанный callback с нецифровым или несуществующим временем
	// должен отсекаться до того, как слот уйдёт в визард
	for _, bad := range []string{"", "900", "09:00", "090000", "abcd", "efgh", "2500", "0960", "-900"} {
		if _, err := decodeClock(bad); err == nil {
			t.Errorf("decodeClock(%q) accepted invalid input", bad)
		}
	}
}

func TestBuildWeekScreen(t *testing.T) {
	mentor := &model.Mentor{ID: 7, Name: "Анна", IsActive: true}
	days := []model.DaySlots{
		{Date: "2026-03-02", Slots: []model.ResolvedSlot{
			{Date: "2026-03-02", StartTime: "09:00", EndTime: "10:00", Available: true},
			{Date: "2026-03-02", StartTime: "11:00", EndTime: "12:00", Available: true},
		}},
		{Date: "2026-03-03"},
		{Date: "2026-03-04", Slots: []model.ResolvedSlot{
			{Date: "2026-03-04", StartTime: "15:00", EndTime: "16:00", Available: true},
		}},
	}

	caption, kb := buildWeekScreen(mentor, days, 1)

	if !strings.Contains(caption, "Анна") {
		t.Errorf("caption does not mention mentor: %q", caption)
	}

	// Ряды: 2 дня со слотами + пагинация + кнопка назад
	if len(kb.InlineKeyboard) != 4 {
		t.Fatalf("keyboard has %d rows, want 4", len(kb.InlineKeyboard))
	}

	if got := kb.InlineKeyboard[0][0].CallbackData; got != "day:7:1:2026-03-02" {
		t.Errorf("first day callback = %q", got)
	}
	if got := kb.InlineKeyboard[1][0].CallbackData; got != "day:7:1:2026-03-04" {
		t.Errorf("second day callback = %q", got)
	}

	// День без слотов не получает кнопку
	for _, row := range kb.InlineKeyboard {
		for _, btn := range row {
			if strings.Contains(btn.CallbackData, "2026-03-03") {
				t.Errorf("empty day got a button: %q", btn.CallbackData)
			}
		}
	}
}

func TestBuildWeekScreen_Empty(t *testing.T) {
	mentor := &model.Mentor{ID: 7, Name: "Анна", IsActive: true}
	days := []model.DaySlots{{Date: "2026-03-02"}, {Date: "2026-03-03"}}

	caption, kb := buildWeekScreen(mentor, days, 0)

	if !strings.Contains(caption, "нет") {
		t.Errorf("empty week caption = %q", caption)
	}

	// Остаются только пагинация и кнопка назад
	for _, row := range kb.InlineKeyboard {
		for _, btn := range row {
			if strings.HasPrefix(btn.CallbackData, "day:") {
				t.Errorf("unexpected day button: %q", btn.CallbackData)
			}
		}
	}
}
