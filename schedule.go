package editor

import (
	"encoding/json"
	"fmt"
	"strings"
)

const (
	// ScheduleWeeks is the fixed length of a season calendar.
	ScheduleWeeks = 52

	// SchedulePlaceholder marks a week with no race.
	SchedulePlaceholder = "test"
)

// ScheduleSlot is one week of the calendar. An empty slot serialises as
// JSON null; a filled slot is a three letter circuit code.
type ScheduleSlot string

func (s ScheduleSlot) MarshalJSON() ([]byte, error) {
	if s == "" {
		return []byte("null"), nil
	}

	return json.Marshal(string(s))
}

func (s *ScheduleSlot) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*s = ""

		return nil
	}

	var out string

	if err := json.Unmarshal(data, &out); err != nil {
		return err
	}

	*s = ScheduleSlot(out)

	return nil
}

// Schedule is the full season calendar, always ScheduleWeeks long.
type Schedule []ScheduleSlot

func EmptySchedule() Schedule {
	return make(Schedule, ScheduleWeeks)
}

// Normalise pads or truncates the calendar back to ScheduleWeeks, trims
// whitespace and lowercases every entry, and maps the placeholder to an
// empty slot.
func (s Schedule) Normalise() Schedule {
	out := EmptySchedule()

	for i := 0; i < ScheduleWeeks && i < len(s); i++ {
		slot := strings.ToLower(strings.TrimSpace(string(s[i])))

		if slot == SchedulePlaceholder {
			slot = ""
		}

		out[i] = ScheduleSlot(slot)
	}

	return out
}

// Validate checks every filled week holds a three letter circuit code.
// Any failure rejects the whole calendar so a partial save never happens.
func (s Schedule) Validate() error {
	if len(s) != ScheduleWeeks {
		return &ValidationError{
			Field:   "Schedule",
			Message: fmt.Sprintf("schedule must have %d weeks, got %d", ScheduleWeeks, len(s)),
		}
	}

	for i, slot := range s {
		if slot == "" {
			continue
		}

		if !isCircuitCode(string(slot)) {
			return &ValidationError{
				Field:   fmt.Sprintf("Week %d", i+1),
				Message: fmt.Sprintf("%q is not a three letter circuit code", slot),
			}
		}
	}

	return nil
}

// Races counts the filled weeks.
func (s Schedule) Races() int {
	n := 0

	for _, slot := range s {
		if slot != "" {
			n++
		}
	}

	return n
}

func isCircuitCode(code string) bool {
	if len(code) != 3 {
		return false
	}

	for _, r := range code {
		if r < 'a' || r > 'z' {
			return false
		}
	}

	return true
}
