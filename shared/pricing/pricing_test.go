package pricing_test

import (
	"testing"
	"time"

	"bamf/shared/pricing"
)

func TestComputeAmountMinor(t *testing.T) {
	tests := []struct {
		name          string
		pricePerNight float64
		nights        int
		rooms         int
		expected      int64
		expectError   bool
	}{
		{
			name:          "two nights one room",
			pricePerNight: 95000,
			nights:        2,
			rooms:         1,
			expected:      19000000,
		},
		{
			name:          "three nights one room",
			pricePerNight: 50000,
			nights:        3,
			rooms:         1,
			expected:      15000000,
		},
		{
			name:          "fractional rate rounds once at the end",
			pricePerNight: 0.335,
			nights:        1,
			rooms:         1,
			expected:      34,
		},
		{
			name:          "multiple rooms",
			pricePerNight: 25000,
			nights:        2,
			rooms:         3,
			expected:      15000000,
		},
		{
			name:          "zero price is allowed",
			pricePerNight: 0,
			nights:        1,
			rooms:         1,
			expected:      0,
		},
		{
			name:          "negative price rejected",
			pricePerNight: -1,
			nights:        1,
			rooms:         1,
			expectError:   true,
		},
		{
			name:          "zero nights rejected",
			pricePerNight: 100,
			nights:        0,
			rooms:         1,
			expectError:   true,
		},
		{
			name:          "zero rooms rejected",
			pricePerNight: 100,
			nights:        1,
			rooms:         0,
			expectError:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := pricing.ComputeAmountMinor(tt.pricePerNight, tt.nights, tt.rooms)

			if tt.expectError {
				if err == nil {
					t.Errorf("expected error, got amount %d", got)
				}

				return
			}

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			if got != tt.expected {
				t.Errorf("expected %d, got %d", tt.expected, got)
			}
		})
	}
}

func TestNights(t *testing.T) {
	day := func(value string) time.Time {
		parsed, err := time.Parse("2006-01-02", value)
		if err != nil {
			t.Fatalf("bad test date %s: %v", value, err)
		}

		return parsed
	}

	tests := []struct {
		name     string
		checkIn  string
		checkOut string
		expected int
	}{
		{name: "single night", checkIn: "2025-03-01", checkOut: "2025-03-02", expected: 1},
		{name: "full month", checkIn: "2025-03-01", checkOut: "2025-03-31", expected: 30},
		{name: "same day", checkIn: "2025-03-01", checkOut: "2025-03-01", expected: 0},
		{name: "reversed dates go negative", checkIn: "2025-03-05", checkOut: "2025-03-01", expected: -4},
		{name: "across DST boundary", checkIn: "2025-03-08", checkOut: "2025-03-10", expected: 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := pricing.Nights(day(tt.checkIn), day(tt.checkOut)); got != tt.expected {
				t.Errorf("expected %d nights, got %d", tt.expected, got)
			}
		})
	}
}
