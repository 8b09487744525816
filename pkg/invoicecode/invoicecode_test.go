package invoicecode

import (
	"regexp"
	"strings"
	"testing"
	"time"
)

func TestGenerateFormat(t *testing.T) {
	date := time.Date(2026, time.January, 15, 10, 0, 0, 0, time.UTC)

	cases := []struct {
		tag    string
		prefix string
	}{
		{"LE", "150126LE"},
		{"SI", "150126SI"},
		{"EC", "150126EC"},
	}

	pattern := regexp.MustCompile(`^\d{6}(LE|SI|EC)[A-Z0-9]{5}$`)

	for _, tc := range cases {
		code := Generate(tc.tag, date)
		if !strings.HasPrefix(code, tc.prefix) {
			t.Fatalf("Generate(%q) = %q, want prefix %q", tc.tag, code, tc.prefix)
		}
		if !pattern.MatchString(code) {
			t.Fatalf("Generate(%q) = %q does not match expected format", tc.tag, code)
		}
	}
}

func TestGenerateZeroPadsDate(t *testing.T) {
	date := time.Date(2026, time.March, 5, 0, 0, 0, 0, time.UTC)
	code := Generate("LE", date)
	if !strings.HasPrefix(code, "050326LE") {
		t.Fatalf("Generate = %q, want prefix 050326LE", code)
	}
}

func TestGenerateSuffixVaries(t *testing.T) {
	date := time.Now()
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		seen[Generate("LE", date)] = true
	}
	// 36^5 combinations; 100 draws colliding down to 1 value would mean the
	// suffix is not random at all.
	if len(seen) < 2 {
		t.Fatalf("expected varying suffixes, got %d distinct codes", len(seen))
	}
}
