package platform

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/mentorlink/mentorbot/internal/model"
	"go.uber.org/zap"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) (*Client, *httptest.Server) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return NewClient(server.URL, "https://platform.example/login", zap.NewNop()), server
}

func TestSubmitBooking_Success(t *testing.T) {
	var gotKey string
	var gotBody model.BookingRequest

	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/api/bookings" {
			t.Fatalf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		gotKey = r.Header.Get("Idempotency-Key")
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Fatalf("decode request: %v", err)
		}

		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(model.Booking{ID: 42, Status: model.BookingStatusPending})
	})

	request := model.BookingRequest{
		MentorID:    7,
		SessionDate: "2026-03-02",
		StartTime:   "09:00",
		EndTime:     "10:00",
		Topic:       "Career advice",
	}

	booking, err := client.SubmitBooking(context.Background(), request, "key-123")
	if err != nil {
		t.Fatalf("SubmitBooking: %v", err)
	}
	if booking.ID != 42 || booking.Status != model.BookingStatusPending {
		t.Fatalf("unexpected booking: %+v", booking)
	}
	if gotKey != "key-123" {
		t.Fatalf("idempotency key not sent, got %q", gotKey)
	}
	if gotBody != request {
		t.Fatalf("payload mutated in transit:\n%+v\n%+v", gotBody, request)
	}
}

func TestSubmitBooking_ErrorBodySurfacedVerbatim(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"error":"Slot no longer available"}`))
	})

	_, err := client.SubmitBooking(context.Background(), model.BookingRequest{MentorID: 7}, "k")
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *APIError, got %v", err)
	}
	if apiErr.Message != "Slot no longer available" {
		t.Fatalf("error body must be surfaced verbatim, got %q", apiErr.Message)
	}
	if apiErr.StatusCode != http.StatusInternalServerError {
		t.Fatalf("unexpected status: %d", apiErr.StatusCode)
	}
}

func TestSubmitBooking_DetailBodySupported(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		w.Write([]byte(`{"detail":"Mentor is fully booked"}`))
	})

	_, err := client.SubmitBooking(context.Background(), model.BookingRequest{MentorID: 7}, "k")
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *APIError, got %v", err)
	}
	if apiErr.Message != "Mentor is fully booked" {
		t.Fatalf("detail body must be surfaced verbatim, got %q", apiErr.Message)
	}
}

func TestSubmitBooking_UnparseableErrorBody(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte(`<html>bad gateway</html>`))
	})

	_, err := client.SubmitBooking(context.Background(), model.BookingRequest{MentorID: 7}, "k")
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *APIError, got %v", err)
	}
	if !strings.Contains(apiErr.Message, "502") {
		t.Fatalf("fallback message must mention the status, got %q", apiErr.Message)
	}
}

func TestSubmitBooking_AuthRequired(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})

	request := model.BookingRequest{
		MentorID:    7,
		SessionDate: "2026-03-02",
		StartTime:   "09:00",
	}

	_, err := client.SubmitBooking(context.Background(), request, "k")
	var authErr *AuthRequiredError
	if !errors.As(err, &authErr) {
		t.Fatalf("expected *AuthRequiredError, got %v", err)
	}
	if !strings.HasPrefix(authErr.LoginURL, "https://platform.example/login?") {
		t.Fatalf("login URL must point at the auth entry point: %q", authErr.LoginURL)
	}
	// the redirect carries a return path back to the interrupted booking
	if !strings.Contains(authErr.LoginURL, "mentor_id%3D7") {
		t.Fatalf("login URL must carry the booking context: %q", authErr.LoginURL)
	}
}

func TestListBookings(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/bookings" {
			t.Fatalf("unexpected path: %s", r.URL.Path)
		}
		if r.URL.Query().Get("telegram_id") != "1001" {
			t.Fatalf("expected telegram_id=1001, got %q", r.URL.Query().Get("telegram_id"))
		}

		json.NewEncoder(w).Encode(map[string]interface{}{
			"bookings": []model.Booking{
				{ID: 42, MentorID: 7, SessionDate: "2026-03-02", StartTime: "09:00", EndTime: "10:00", Topic: "Career advice", Status: model.BookingStatusPending},
				{ID: 41, MentorID: 9, SessionDate: "2026-02-20", StartTime: "15:00", EndTime: "16:00", Topic: "Mock interview", Status: model.BookingStatusCompleted},
			},
		})
	})

	bookings, err := client.ListBookings(context.Background(), 1001)
	if err != nil {
		t.Fatalf("ListBookings: %v", err)
	}
	if len(bookings) != 2 {
		t.Fatalf("expected 2 bookings, got %d", len(bookings))
	}
	if bookings[0].ID != 42 || bookings[0].Status != model.BookingStatusPending {
		t.Fatalf("unexpected booking: %+v", bookings[0])
	}
}

func TestListBookings_AuthRequired(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})

	_, err := client.ListBookings(context.Background(), 1001)
	var authErr *AuthRequiredError
	if !errors.As(err, &authErr) {
		t.Fatalf("expected *AuthRequiredError, got %v", err)
	}
}

func TestFetchRuleRecords(t *testing.T) {
	day := 1
	date := "2026-03-02"

	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/mentors/7/availability" {
			t.Fatalf("unexpected path: %s", r.URL.Path)
		}
		if r.URL.Query().Get("from") != "2026-03-01" {
			t.Fatalf("expected from=2026-03-01, got %q", r.URL.Query().Get("from"))
		}
		if r.URL.Query().Get("days") != "30" {
			t.Fatalf("expected days=30, got %q", r.URL.Query().Get("days"))
		}

		json.NewEncoder(w).Encode(map[string]interface{}{
			"rules": []RuleRecord{
				{IsRecurring: true, DayOfWeek: &day, StartTime: "09:00:00", EndTime: "10:00:00"},
				{IsRecurring: false, SpecificDate: &date, StartTime: "08:00", EndTime: "08:30"},
			},
		})
	})

	records, err := client.FetchRuleRecords(context.Background(), 7, time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC), 30)
	if err != nil {
		t.Fatalf("FetchRuleRecords: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(records))
	}
	// records come back exactly as the platform sent them, seconds included
	if records[0].StartTime != "09:00:00" {
		t.Fatalf("record must not be normalized at fetch time, got %q", records[0].StartTime)
	}
}

func TestFetchMentor(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/mentors/7" {
			t.Fatalf("unexpected path: %s", r.URL.Path)
		}
		json.NewEncoder(w).Encode(model.Mentor{ID: 7, Name: "Anna", Timezone: "Europe/Berlin", IsActive: true})
	})

	mentor, err := client.FetchMentor(context.Background(), 7)
	if err != nil {
		t.Fatalf("FetchMentor: %v", err)
	}
	if mentor.Name != "Anna" || mentor.Timezone != "Europe/Berlin" {
		t.Fatalf("unexpected mentor: %+v", mentor)
	}
}
