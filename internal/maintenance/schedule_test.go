package maintenance

import (
	"testing"
	"time"
)

func TestNewScheduleParsesFiveFields(t *testing.T) {
	sched, err := NewSchedule("*/5 * * * *", nil)
	if err != nil {
		t.Fatalf("NewSchedule returned error: %v", err)
	}

	now := time.Date(2024, 3, 1, 12, 1, 0, 0, time.UTC)
	next := sched.schedule.Next(now)
	if want := now.Add(4 * time.Minute); !next.Equal(want) {
		t.Fatalf("next tick = %v, want %v", next, want)
	}
}

func TestNewScheduleRejectsSeconds(t *testing.T) {
	if _, err := NewSchedule("0 */5 * * * *", nil); err == nil {
		t.Fatal("expected error for six-field expression")
	}
}

func TestNewScheduleRejectsGarbage(t *testing.T) {
	if _, err := NewSchedule("not a schedule", nil); err == nil {
		t.Fatal("expected error for malformed expression")
	}
}
