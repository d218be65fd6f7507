package cmd

import (
	"testing"
	"time"

	"github.com/mindflowapp/mindflow/internal/datekey"
)

func TestParseReminderTime(t *testing.T) {
	got, err := parseReminderTime("2024-05-20 18:30")
	if err != nil {
		t.Fatalf("parseReminderTime: %v", err)
	}
	want := time.Date(2024, 5, 20, 18, 30, 0, 0, time.Local)
	if !got.Equal(want) {
		t.Errorf("got %v, want %v", got, want)
	}

	today, err := parseReminderTime("09:15")
	if err != nil {
		t.Fatalf("parseReminderTime: %v", err)
	}
	now := time.Now()
	if today.Day() != now.Day() || today.Hour() != 9 || today.Minute() != 15 {
		t.Errorf("HH:mm should land on today, got %v", today)
	}

	if _, err := parseReminderTime("6pm"); err == nil {
		t.Error("free-form time should be rejected")
	}
}

func TestResolveDateFlag(t *testing.T) {
	today := datekey.Key("2024-05-20")

	got, err := resolveDateFlag("", today)
	if err != nil || got != today {
		t.Errorf("empty flag: got %s, %v", got, err)
	}

	got, err = resolveDateFlag("2024-06-01", today)
	if err != nil || got != datekey.Key("2024-06-01") {
		t.Errorf("explicit flag: got %s, %v", got, err)
	}

	if _, err := resolveDateFlag("june 1st", today); err == nil {
		t.Error("malformed date should be rejected")
	}
}
