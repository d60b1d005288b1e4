package common

import (
	"errors"
	"testing"
)

func TestParseIDFromCallback(t *testing.T) {
	id, err := ParseIDFromCallback("mentor:123")
	if err != nil {
		t.Fatalf("ParseIDFromCallback: %v", err)
	}
	if id != 123 {
		t.Fatalf("id = %d, want 123", id)
	}

	if _, err := ParseIDFromCallback("mentor"); err == nil {
		t.Fatal("accepted data without ID")
	}
	if _, err := ParseIDFromCallback("mentor:1:2"); err == nil {
		t.Fatal("accepted data with extra parts")
	}
	if _, err := ParseIDFromCallback("mentor:abc"); err == nil {
		t.Fatal("accepted non-numeric ID")
	}
}

func TestParseCallbackParts(t *testing.T) {
	parts, err := ParseCallbackParts("day:123:0:2026-03-02", 3)
	if err != nil {
		t.Fatalf("ParseCallbackParts: %v", err)
	}
	if parts[0] != "123" || parts[1] != "0" || parts[2] != "2026-03-02" {
		t.Fatalf("parts = %v", parts)
	}

	if _, err := ParseCallbackParts("day:123", 3); !errors.Is(err, ErrInvalidFormat) {
		t.Fatalf("short data error = %v, want ErrInvalidFormat", err)
	}
}

func TestIsMessageNotModifiedError(t *testing.T) {
	if IsMessageNotModifiedError(nil) {
		t.Fatal("nil error treated as not-modified")
	}
	if !IsMessageNotModifiedError(errors.New("Bad Request: message is not modified")) {
		t.Fatal("not-modified error not recognized")
	}
	if IsMessageNotModifiedError(errors.New("Bad Request: chat not found")) {
		t.Fatal("unrelated error recognized as not-modified")
	}
}
