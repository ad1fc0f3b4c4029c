package slotset

import (
	"strings"
	"testing"

	"github.com/example/center-timetable/internal/timegrid"
)

func TestValidateEmptySetIsValid(t *testing.T) {
	result := Validate(nil)
	if !result.Valid {
		t.Error("empty set must be valid")
	}
	if len(result.Errors) != 0 {
		t.Errorf("expected no errors, got %v", result.Errors)
	}
}

func TestValidateRequiredFields(t *testing.T) {
	cases := []struct {
		name string
		slot Slot
		want string
	}{
		{
			name: "missing day",
			slot: Slot{ID: "a", StartTime: "08:00", Duration: 60},
			want: "day is required",
		},
		{
			name: "missing start time",
			slot: Slot{ID: "a", Day: timegrid.Monday, Duration: 60},
			want: "start time is required",
		},
		{
			name: "non-positive duration",
			slot: Slot{ID: "a", Day: timegrid.Monday, StartTime: "08:00", Duration: 0},
			want: "duration must be positive",
		},
		{
			name: "malformed start time",
			slot: Slot{ID: "a", Day: timegrid.Monday, StartTime: "morning", Duration: 60},
			want: "start time must be in HH:MM form",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			result := Validate([]Slot{tc.slot})
			if result.Valid {
				t.Fatal("expected invalid result")
			}
			if got := result.Errors["a"]; got != tc.want {
				t.Errorf("expected %q, got %q", tc.want, got)
			}
		})
	}
}

func TestValidateOverlapFlagsBothSlots(t *testing.T) {
	set := []Slot{
		{ID: "a", Day: timegrid.Monday, StartTime: "08:00", Duration: 90}, // 08:00-09:30
		{ID: "b", Day: timegrid.Monday, StartTime: "09:00", Duration: 60}, // 09:00-10:00
	}

	result := Validate(set)

	if result.Valid {
		t.Fatal("expected overlap to invalidate the set")
	}
	for _, id := range []string{"a", "b"} {
		message, ok := result.Errors[id]
		if !ok {
			t.Fatalf("expected error on slot %s", id)
		}
		if !strings.Contains(message, "overlaps") {
			t.Errorf("slot %s: expected overlap message, got %q", id, message)
		}
	}
	// Each message names the counterpart's range.
	if !strings.Contains(result.Errors["a"], "09:00-10:00") {
		t.Errorf("slot a should name b's range, got %q", result.Errors["a"])
	}
	if !strings.Contains(result.Errors["b"], "08:00-09:30") {
		t.Errorf("slot b should name a's range, got %q", result.Errors["b"])
	}
}

func TestValidateAdjacentSlotsDoNotConflict(t *testing.T) {
	set := []Slot{
		{ID: "a", Day: timegrid.Monday, StartTime: "08:00", Duration: 90}, // ends 09:30
		{ID: "b", Day: timegrid.Monday, StartTime: "09:30", Duration: 90}, // starts 09:30
	}

	result := Validate(set)
	if !result.Valid {
		t.Errorf("adjacent slots must not conflict, got %v", result.Errors)
	}
}

func TestValidateDifferentDaysDoNotConflict(t *testing.T) {
	set := []Slot{
		{ID: "a", Day: timegrid.Monday, StartTime: "08:00", Duration: 90},
		{ID: "b", Day: timegrid.Tuesday, StartTime: "08:00", Duration: 90},
	}

	result := Validate(set)
	if !result.Valid {
		t.Errorf("slots on different days must not conflict, got %v", result.Errors)
	}
}

func TestValidateFirstConflictWins(t *testing.T) {
	// Slot a overlaps both b and c; a keeps only its first conflict message.
	set := []Slot{
		{ID: "a", Day: timegrid.Monday, StartTime: "08:00", Duration: 240}, // 08:00-12:00
		{ID: "b", Day: timegrid.Monday, StartTime: "09:00", Duration: 60},  // 09:00-10:00
		{ID: "c", Day: timegrid.Monday, StartTime: "11:00", Duration: 60},  // 11:00-12:00
	}

	result := Validate(set)

	if result.Valid {
		t.Fatal("expected invalid result")
	}
	if !strings.Contains(result.Errors["a"], "09:00-10:00") {
		t.Errorf("slot a should keep its first conflict (with b), got %q", result.Errors["a"])
	}
	if _, ok := result.Errors["b"]; !ok {
		t.Error("expected error on slot b")
	}
	if _, ok := result.Errors["c"]; !ok {
		t.Error("expected error on slot c")
	}
}

func TestValidateConflictScenario(t *testing.T) {
	// The canonical rejected submission: 08:00-09:30 against 09:00-10:00.
	set := []Slot{
		{ID: "slot-1", Day: timegrid.Monday, StartTime: "08:00", Duration: 90},
		{ID: "slot-2", Day: timegrid.Monday, StartTime: "09:00", Duration: 60},
	}

	result := Validate(set)

	if result.Valid {
		t.Fatal("expected valid=false")
	}
	if len(result.Errors) != 2 {
		t.Errorf("expected errors keyed to both slot ids, got %v", result.Errors)
	}
}
