// Package invoicecode generates human-readable invoice identifiers of the
// form DDMMYY + type tag + random suffix, e.g. "150126LEK7X2P". The type tag
// is caller-supplied; mapping invoice types to tags is invoice-service policy.
package invoicecode

import (
	"crypto/rand"
	"fmt"
	"time"
)

const (
	charset      = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	suffixLength = 5
)

// Generate produces a candidate invoice code for the given date and type tag.
// Codes are not guaranteed unique; callers must check against stored invoices
// and regenerate on collision.
func Generate(typeTag string, date time.Time) string {
	return fmt.Sprintf("%02d%02d%02d%s%s",
		date.Day(), int(date.Month()), date.Year()%100, typeTag, randomSuffix())
}

func randomSuffix() string {
	buf := make([]byte, suffixLength)
	if _, err := rand.Read(buf); err != nil {
		// crypto/rand only fails if the OS entropy source is broken
		panic(err)
	}
	for i, b := range buf {
		buf[i] = charset[int(b)%len(charset)]
	}
	return string(buf)
}
