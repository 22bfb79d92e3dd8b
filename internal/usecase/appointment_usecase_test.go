package usecase

import (
	"regexp"
	"testing"
	"time"
)

func TestGenerateBookingCode(t *testing.T) {
	date := time.Date(2026, 9, 14, 0, 0, 0, 0, time.UTC)
	pattern := regexp.MustCompile(`^CS-20260914-[0-9A-F]{6}$`)

	seen := make(map[string]bool)
	for i := 0; i < 50; i++ {
		code := generateBookingCode(date)
		if !pattern.MatchString(code) {
			t.Fatalf("booking code %q does not match %s", code, pattern)
		}
		seen[code] = true
	}

	if len(seen) < 2 {
		t.Error("booking codes are not randomized")
	}
}
