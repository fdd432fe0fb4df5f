package reference

import (
	"crypto/rand"
	"fmt"
	"strings"
	"time"
)

// Alphabet for human-facing booking codes. Visually ambiguous characters
// (0/O, 1/I) are excluded.
const codeAlphabet = "23456789ABCDEFGHJKLMNPQRSTUVWXYZ"

const codeLength = 5

// Payment builds a provider-scoped payment reference. The epoch-millis suffix
// makes each payment attempt for a booking distinguishable.
func Payment(scope, bookingID string) string {
	return fmt.Sprintf("%s_%s_%d", scope, bookingID, time.Now().UnixMilli())
}

// BookingCode generates a short front-desk lookup code, e.g. "BAMF-7KQ2M".
// Uniqueness is statistical (32^5 combinations), not checked against the
// store.
func BookingCode(prefix string) string {
	var b strings.Builder

	b.WriteString(prefix)
	b.WriteByte('-')

	// 32 divides 256, so the modulo draw is uniform over the alphabet.
	buf := make([]byte, codeLength)
	rand.Read(buf) // nolint:errcheck // never fails since Go 1.24

	for _, v := range buf {
		b.WriteByte(codeAlphabet[int(v)%len(codeAlphabet)])
	}

	return b.String()
}
