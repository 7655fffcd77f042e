package editor

import "testing"

func TestScheduleNormalise(t *testing.T) {
	schedule := Schedule{" MEL ", "SPA", "Test", "mco"}

	normalised := schedule.Normalise()

	if len(normalised) != ScheduleWeeks {
		t.Fatalf("expected %d weeks, got %d", ScheduleWeeks, len(normalised))
	}

	if normalised[0] != "mel" {
		t.Errorf("expected week 1 to be trimmed and lowercased, got %q", normalised[0])
	}

	if normalised[1] != "spa" {
		t.Errorf("expected week 2 spa, got %q", normalised[1])
	}

	if normalised[2] != "" {
		t.Errorf("the placeholder should clear the week, got %q", normalised[2])
	}

	if normalised[3] != "mco" {
		t.Errorf("expected week 4 mco, got %q", normalised[3])
	}

	for i := 4; i < ScheduleWeeks; i++ {
		if normalised[i] != "" {
			t.Fatalf("expected week %d to be empty", i+1)
		}
	}
}

func TestScheduleNormaliseTruncates(t *testing.T) {
	long := make(Schedule, ScheduleWeeks+10)
	long[ScheduleWeeks+5] = "spa"

	if got := len(long.Normalise()); got != ScheduleWeeks {
		t.Errorf("expected %d weeks after normalise, got %d", ScheduleWeeks, got)
	}
}

func TestScheduleValidateRejectsBadCodes(t *testing.T) {
	schedule := EmptySchedule()
	schedule[0] = "mel"
	schedule[10] = "spaa"

	err := schedule.Validate()

	if err == nil {
		t.Fatal("expected a four letter code to fail validation")
	}

	validationErr, ok := err.(*ValidationError)

	if !ok {
		t.Fatalf("expected a ValidationError, got %T", err)
	}

	if validationErr.Field != "Week 11" {
		t.Errorf("expected the error to name Week 11, got %q", validationErr.Field)
	}
}

func TestScheduleValidateRejectsNonAlpha(t *testing.T) {
	schedule := EmptySchedule()
	schedule[0] = "m3l"

	if schedule.Validate() == nil {
		t.Error("expected a code with a digit to fail validation")
	}
}

func TestScheduleValidateAcceptsEmptyAndCodes(t *testing.T) {
	schedule := EmptySchedule()
	schedule[0] = "mel"
	schedule[25] = "spa"

	if err := schedule.Validate(); err != nil {
		t.Errorf("expected a valid schedule, got %s", err)
	}

	if schedule.Races() != 2 {
		t.Errorf("expected 2 races, got %d", schedule.Races())
	}
}

func TestScheduleValidateRejectsWrongLength(t *testing.T) {
	schedule := make(Schedule, 10)

	if schedule.Validate() == nil {
		t.Error("expected a short schedule to fail validation")
	}
}
