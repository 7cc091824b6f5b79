package schedule

import (
	"testing"

	"github.com/epmodel/schedkit/core/caldate"
)

func TestRulesetFromWeekDailyValues(t *testing.T) {
	work := make([]float64, 24)
	for h := 9; h < 17; h++ {
		work[h] = 1
	}
	off := make([]float64, 24)

	rs, err := RulesetFromWeekDailyValues("Office", WeekDailyValues{
		Sunday:    off,
		Monday:    work,
		Tuesday:   work,
		Wednesday: work,
		Thursday:  work,
		Friday:    work,
		Saturday:  off,
		Holiday:   off,
	}, 1)
	if err != nil {
		t.Fatalf("from week: %v", err)
	}
	// Two distinct day shapes collapse into the default plus one rule.
	if rs.NumRules() != 1 {
		t.Fatalf("expected 1 rule, got %d", rs.NumRules())
	}
	if !rs.IsSingleWeek() {
		t.Error("a week-built ruleset must be single-week")
	}

	vals, err := rs.Values(ExpandOptions{StartDOW: caldate.Sunday})
	if err != nil {
		t.Fatalf("values: %v", err)
	}
	if vals[12] != 0 {
		t.Errorf("Sunday noon got %v, want 0", vals[12])
	}
	if vals[24+12] != 1 {
		t.Errorf("Monday noon got %v, want 1", vals[24+12])
	}

	// Design days default to the most and least intense applied days.
	if rs.SummerDesignProfile() == nil || rs.SummerDesignProfile().Mean() != float64(8)/24 {
		t.Error("summer design day must mirror the busiest day")
	}
	if rs.WinterDesignProfile() == nil || rs.WinterDesignProfile().Mean() != 0 {
		t.Error("winter design day must mirror the quietest day")
	}
}

func TestRulesetFromWeekDailyValuesValidation(t *testing.T) {
	work := make([]float64, 24)
	if _, err := RulesetFromWeekDailyValues("Broken", WeekDailyValues{
		Sunday: work, Monday: work, Tuesday: work, Wednesday: work,
		Thursday: work, Friday: work, Saturday: work,
	}, 1); err == nil {
		t.Error("a missing holiday slot must be rejected")
	}
	short := make([]float64, 23)
	if _, err := RulesetFromWeekDailyValues("Broken", WeekDailyValues{
		Sunday: short, Monday: work, Tuesday: work, Wednesday: work,
		Thursday: work, Friday: work, Saturday: work, Holiday: work,
	}, 1); err == nil {
		t.Error("a short slot must be rejected")
	}
}

func TestRulesetFromWeekProfiles(t *testing.T) {
	workday := officeDay(t)
	weekend, _ := NewConstantProfile("Weekend Off", 0)

	rs, err := RulesetFromWeekProfiles("Office", WeekProfiles{
		Sunday: weekend, Monday: workday, Tuesday: workday, Wednesday: workday,
		Thursday: workday, Friday: workday, Saturday: weekend, Holiday: weekend,
		SummerDesign: workday, WinterDesign: weekend,
	})
	if err != nil {
		t.Fatalf("from profiles: %v", err)
	}
	if rs.NumRules() != 1 {
		t.Fatalf("expected 1 rule, got %d", rs.NumRules())
	}
	// Design profiles clashing with applied names get a suffix.
	if rs.SummerDesignProfile().Name() != "Office Day SmrDsn" {
		t.Errorf("summer design name %q", rs.SummerDesignProfile().Name())
	}
	if rs.WinterDesignProfile().Name() != "Weekend Off WntrDsn" {
		t.Errorf("winter design name %q", rs.WinterDesignProfile().Name())
	}

	cal := rs.CompactCalendar()
	if cal.Patterns[0].Holiday.Name() != "Weekend Off" {
		t.Errorf("holiday slot %q", cal.Patterns[0].Holiday.Name())
	}
}
