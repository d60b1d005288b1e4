package availability

import (
	"testing"
	"time"
)

func TestOffsetDelta(t *testing.T) {
	// fixed winter instant, no DST ambiguity
	at := time.Date(2026, 1, 15, 12, 0, 0, 0, time.UTC)

	if got := OffsetDelta("Europe/Moscow", "UTC", at); got != 180 {
		t.Fatalf("Moscow vs UTC: expected +180, got %d", got)
	}
	if got := OffsetDelta("UTC", "Europe/Moscow", at); got != -180 {
		t.Fatalf("UTC vs Moscow: expected -180, got %d", got)
	}
	if got := OffsetDelta("Europe/Berlin", "Europe/Berlin", at); got != 0 {
		t.Fatalf("same zone: expected 0, got %d", got)
	}
}

func TestOffsetDelta_DST(t *testing.T) {
	// New York is UTC-5 in winter and UTC-4 in summer
	winter := time.Date(2026, 1, 15, 12, 0, 0, 0, time.UTC)
	summer := time.Date(2026, 7, 15, 12, 0, 0, 0, time.UTC)

	if got := OffsetDelta("America/New_York", "UTC", winter); got != -300 {
		t.Fatalf("winter: expected -300, got %d", got)
	}
	if got := OffsetDelta("America/New_York", "UTC", summer); got != -240 {
		t.Fatalf("summer: expected -240, got %d", got)
	}
}

func TestOffsetDelta_UnknownZoneFallsBackToZero(t *testing.T) {
	at := time.Date(2026, 1, 15, 12, 0, 0, 0, time.UTC)

	if got := OffsetDelta("Not/AZone", "UTC", at); got != 0 {
		t.Fatalf("unknown mentor zone: expected 0, got %d", got)
	}
	if got := OffsetDelta("", "", at); got != 0 {
		t.Fatalf("empty zones: expected 0, got %d", got)
	}
	// a broken viewer zone must not hide the mentor offset sign logic,
	// it just contributes zero
	if got := OffsetDelta("Europe/Moscow", "Bad/Zone", at); got != 180 {
		t.Fatalf("unknown viewer zone: expected 180, got %d", got)
	}
}
