package reference_test

import (
	"strings"
	"testing"

	"bamf/shared/reference"
)

func TestPayment(t *testing.T) {
	ref := reference.Payment("paystack", "booking-123")

	parts := strings.Split(ref, "_")
	if len(parts) != 3 {
		t.Fatalf("expected scope_bookingID_millis, got %s", ref)
	}

	if parts[0] != "paystack" {
		t.Errorf("expected scope paystack, got %s", parts[0])
	}

	if parts[1] != "booking-123" {
		t.Errorf("expected booking id booking-123, got %s", parts[1])
	}

	if parts[2] == "" {
		t.Error("expected epoch millis suffix")
	}
}

func TestBookingCode(t *testing.T) {
	code := reference.BookingCode("BAMF")

	if !strings.HasPrefix(code, "BAMF-") {
		t.Fatalf("expected BAMF- prefix, got %s", code)
	}

	suffix := strings.TrimPrefix(code, "BAMF-")
	if len(suffix) != 5 {
		t.Fatalf("expected 5 character suffix, got %q", suffix)
	}

	for _, char := range suffix {
		if strings.ContainsRune("01OI", char) {
			t.Errorf("code %s contains ambiguous character %c", code, char)
		}
	}
}
