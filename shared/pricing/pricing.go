package pricing

import (
	"errors"
	"math"
	"time"

	"bamf/shared/failure"
)

var (
	errInvalidPrice = errors.New("price per night must be a non-negative finite number")
	errInvalidStay  = errors.New("nights and rooms must be at least 1")
)

// ComputeAmountMinor converts a nightly rate into the total due in minor
// currency units (kobo/cents). Rounding happens once on the final product,
// half away from zero, so per-factor rounding error cannot compound.
func ComputeAmountMinor(pricePerNight float64, nights, rooms int) (int64, error) {
	if math.IsNaN(pricePerNight) || math.IsInf(pricePerNight, 0) || pricePerNight < 0 {
		return 0, failure.BadRequest(errInvalidPrice) //nolint:wrapcheck
	}

	if nights < 1 || rooms < 1 {
		return 0, failure.BadRequest(errInvalidStay) //nolint:wrapcheck
	}

	total := pricePerNight * float64(nights) * float64(rooms) * 100

	return int64(math.Round(total)), nil
}

// Nights returns the whole-day difference between two calendar dates. Time
// components are discarded before subtracting.
func Nights(checkIn, checkOut time.Time) int {
	in := time.Date(checkIn.Year(), checkIn.Month(), checkIn.Day(), 0, 0, 0, 0, time.UTC)
	out := time.Date(checkOut.Year(), checkOut.Month(), checkOut.Day(), 0, 0, 0, 0, time.UTC)

	return int(math.Round(out.Sub(in).Hours() / 24))
}
