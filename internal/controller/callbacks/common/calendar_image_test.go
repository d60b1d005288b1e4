package common

import (
	"bytes"
	"testing"

	"github.com/mentorlink/mentorbot/internal/model"
)

var pngMagic = []byte{0x89, 'P', 'N', 'G'}

func TestGenerateWeekImage(t *testing.T) {
	days := []model.DaySlots{
		{Date: "2026-03-02", Slots: []model.ResolvedSlot{
			{Date: "2026-03-02", StartTime: "09:00", EndTime: "10:00", Available: true},
			{Date: "2026-03-02", StartTime: "14:00", EndTime: "15:30", Available: true},
		}},
		{Date: "2026-03-03"},
		{Date: "2026-03-04", Slots: []model.ResolvedSlot{
			{Date: "2026-03-04", StartTime: "11:00", EndTime: "12:00", Available: true},
		}},
		{Date: "2026-03-05"},
		{Date: "2026-03-06"},
		{Date: "2026-03-07"},
		{Date: "2026-03-08"},
	}

	// Без шрифта рендер падает на basicfont, но картинка всё равно должна собраться
	img, err := GenerateWeekImage(days, "")
	if err != nil {
		t.Fatalf("GenerateWeekImage: %v", err)
	}
	if !bytes.HasPrefix(img, pngMagic) {
		t.Fatal("output is not a PNG")
	}
}

func TestGenerateWeekImage_EmptyWeek(t *testing.T) {
	days := []model.DaySlots{
		{Date: "2026-03-02"},
		{Date: "2026-03-03"},
	}

	img, err := GenerateWeekImage(days, "")
	if err != nil {
		t.Fatalf("GenerateWeekImage: %v", err)
	}
	if !bytes.HasPrefix(img, pngMagic) {
		t.Fatal("output is not a PNG")
	}
}

func TestCalculateHourRange(t *testing.T) {
	days := []model.DaySlots{
		{Date: "2026-03-02", Slots: []model.ResolvedSlot{
			{StartTime: "09:00", EndTime: "10:30"},
			{StartTime: "18:00", EndTime: "19:00"},
		}},
	}

	hours := calculateHourRange(days)
	if hours.start != 8 {
		t.Errorf("hours.start = %d, want 8", hours.start)
	}
	// 19:00 конец + запас снизу, 10:30 округляется вверх
	if hours.end != 20 {
		t.Errorf("hours.end = %d, want 20", hours.end)
	}
}

func TestClockToHours(t *testing.T) {
	tests := []struct {
		clock string
		want  float64
	}{
		{"09:00", 9.0},
		{"10:30", 10.5},
		{"00:15", 0.25},
		{"bad", 0},
	}

	for _, tt := range tests {
		if got := clockToHours(tt.clock); got != tt.want {
			t.Errorf("clockToHours(%q) = %v, want %v", tt.clock, got, tt.want)
		}
	}
}
