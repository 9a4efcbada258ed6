package util

import (
	"testing"
	"time"
)

func TestParseEventTimeRFC3339(t *testing.T) {
	got, ok := ParseEventTime("2025-04-10T19:05:00Z")
	if !ok {
		t.Fatalf("expected ok")
	}
	if DayString(got) != "2025-04-10" {
		t.Fatalf("unexpected day %s", DayString(got))
	}
}

func TestParseEventTimeShortESPN(t *testing.T) {
	// ESPN emits minute-precision stamps like "2025-11-11T23:30Z".
	got, ok := ParseEventTime("2025-11-11T23:30Z")
	if !ok {
		t.Fatalf("expected ok")
	}
	if got.Hour() != 23 || got.Minute() != 30 {
		t.Fatalf("unexpected time %v", got)
	}
}

func TestParseEventTimeInvalid(t *testing.T) {
	if _, ok := ParseEventTime(""); ok {
		t.Fatalf("empty string must not parse")
	}
	if _, ok := ParseEventTime("not-a-date"); ok {
		t.Fatalf("garbage must not parse")
	}
}

func TestParseDayDefault(t *testing.T) {
	def := time.Date(2025, 4, 10, 0, 0, 0, 0, time.UTC)
	if got := ParseDayDefault("", def); !got.Equal(def) {
		t.Fatalf("expected default")
	}
	if got := ParseDayDefault("2025-05-01", def); DayString(got) != "2025-05-01" {
		t.Fatalf("unexpected day %s", DayString(got))
	}
}
