package datekey

import (
	"testing"
	"time"
)

func TestFromTimeUsesLocalCalendarFields(t *testing.T) {
	// 2024-03-10 23:30 local must key as 2024-03-10 even though the UTC
	// instant may already be the 11th.
	local := time.Date(2024, 3, 10, 23, 30, 0, 0, time.Local)
	if got := FromTime(local); got != "2024-03-10" {
		t.Errorf("FromTime(%v) = %q, want %q", local, got, "2024-03-10")
	}
}

func TestFromTimeZero(t *testing.T) {
	if got := FromTime(time.Time{}); got != "" {
		t.Errorf("FromTime(zero) = %q, want empty", got)
	}
}

func TestFromUnixMilliRoundTrip(t *testing.T) {
	instant := time.Date(2023, 6, 15, 12, 0, 0, 0, time.Local)
	key := FromUnixMilli(instant.UnixMilli())
	if key != "2023-06-15" {
		t.Fatalf("FromUnixMilli = %q, want 2023-06-15", key)
	}

	back, err := key.Time()
	if err != nil {
		t.Fatalf("Time() returned error: %v", err)
	}
	if back.Year() != 2023 || back.Month() != time.June || back.Day() != 15 {
		t.Errorf("round trip produced %v", back)
	}
	if back.Hour() != 0 || back.Minute() != 0 {
		t.Errorf("Time() should be local midnight, got %v", back)
	}
}

func TestLeapDay(t *testing.T) {
	key, err := Parse("2024-02-29")
	if err != nil {
		t.Fatalf("Parse leap day: %v", err)
	}
	back, err := key.Time()
	if err != nil {
		t.Fatalf("Time(): %v", err)
	}
	if got := FromTime(back); got != key {
		t.Errorf("leap day round trip: got %q, want %q", got, key)
	}
}

func TestParseRejectsMalformed(t *testing.T) {
	for _, bad := range []string{"2024-2-29", "20240229", "2023-02-29", "yesterday", ""} {
		if _, err := Parse(bad); err == nil {
			t.Errorf("Parse(%q) succeeded, want error", bad)
		}
	}
}

func TestIsZero(t *testing.T) {
	if !Key("").IsZero() {
		t.Error("empty key should be zero")
	}
	if Key("2024-01-01").IsZero() {
		t.Error("populated key should not be zero")
	}
}

func TestTodayMatchesWallClock(t *testing.T) {
	now := time.Now()
	today := Today()
	// Tolerate a midnight rollover between the two calls.
	if today != FromTime(now) && today != FromTime(time.Now()) {
		t.Errorf("Today() = %q, clock says %q", today, FromTime(now))
	}
}
