package schedule

import (
	"math"
	"testing"
)

func mustProfile(t *testing.T, name string, values []float64, times []TimeOfDay) *DayProfile {
	t.Helper()
	p, err := NewDayProfile(name, values, times, false)
	if err != nil {
		t.Fatalf("profile %s: %v", name, err)
	}
	return p
}

// officeDay is the canonical 0.3 nights / 1.0 office-hours test profile.
func officeDay(t *testing.T) *DayProfile {
	t.Helper()
	return mustProfile(t, "Office Day",
		[]float64{0.3, 1.0, 0.3},
		[]TimeOfDay{{0, 0}, {9, 0}, {17, 0}})
}

func TestNewDayProfileValidation(t *testing.T) {
	if _, err := NewDayProfile("", []float64{1}, nil, false); err == nil {
		t.Error("empty name must be rejected")
	}
	if _, err := NewDayProfile("p", nil, nil, false); err == nil {
		t.Error("empty values must be rejected")
	}
	if _, err := NewDayProfile("p", []float64{1, 2}, []TimeOfDay{{1, 0}, {2, 0}}, false); err == nil {
		t.Error("first time must be midnight")
	}
	if _, err := NewDayProfile("p", []float64{1, 2}, []TimeOfDay{{0, 0}, {0, 0}}, false); err == nil {
		t.Error("times must be strictly increasing")
	}
	if _, err := NewDayProfile("p", []float64{1, 2}, []TimeOfDay{{0, 0}}, false); err == nil {
		t.Error("times and values must be the same length")
	}
	if _, err := NewDayProfile("p", []float64{1, 2}, []TimeOfDay{{0, 0}, {24, 0}}, false); err == nil {
		t.Error("hour 24 must be rejected")
	}
}

func TestConstantProfile(t *testing.T) {
	p, err := NewConstantProfile("Always On", 1)
	if err != nil {
		t.Fatalf("constant: %v", err)
	}
	if !p.IsConstant() {
		t.Error("expected a constant profile")
	}
	vals, err := p.ValuesAtTimestep(1)
	if err != nil {
		t.Fatalf("expand: %v", err)
	}
	if len(vals) != 24 {
		t.Fatalf("expected 24 values, got %d", len(vals))
	}
	for i, v := range vals {
		if v != 1 {
			t.Fatalf("hour %d: got %v, want 1", i, v)
		}
	}
}

func TestValuesAtTimestepStepHold(t *testing.T) {
	p := officeDay(t)
	vals, err := p.ValuesAtTimestep(1)
	if err != nil {
		t.Fatalf("expand: %v", err)
	}
	if len(vals) != 24 {
		t.Fatalf("expected 24 values, got %d", len(vals))
	}
	if vals[8] != 0.3 {
		t.Errorf("08:00 got %v, want 0.3", vals[8])
	}
	if vals[9] != 1.0 {
		t.Errorf("09:00 got %v, want 1.0", vals[9])
	}
	if vals[16] != 1.0 {
		t.Errorf("16:00 got %v, want 1.0", vals[16])
	}
	if vals[17] != 0.3 {
		t.Errorf("17:00 got %v, want 0.3", vals[17])
	}
	if vals[23] != 0.3 {
		t.Errorf("23:00 got %v, want 0.3", vals[23])
	}
}

func TestValuesAtTimestepSubHourly(t *testing.T) {
	p := mustProfile(t, "Half Hour",
		[]float64{0, 1},
		[]TimeOfDay{{0, 0}, {12, 30}})
	vals, err := p.ValuesAtTimestep(2)
	if err != nil {
		t.Fatalf("expand: %v", err)
	}
	if len(vals) != 48 {
		t.Fatalf("expected 48 values, got %d", len(vals))
	}
	// Steps are half hours; 12:00 is step 24, 12:30 is step 25.
	if vals[24] != 0 {
		t.Errorf("12:00 got %v, want 0", vals[24])
	}
	if vals[25] != 1 {
		t.Errorf("12:30 got %v, want 1", vals[25])
	}
}

func TestValuesAtTimestepInterpolated(t *testing.T) {
	p, err := NewDayProfile("Ramp",
		[]float64{0, 12}, []TimeOfDay{{0, 0}, {12, 0}}, true)
	if err != nil {
		t.Fatalf("profile: %v", err)
	}
	vals, err := p.ValuesAtTimestep(1)
	if err != nil {
		t.Fatalf("expand: %v", err)
	}
	for h := 0; h <= 12; h++ {
		if math.Abs(vals[h]-float64(h)) > 1e-12 {
			t.Errorf("hour %d: got %v, want %d", h, vals[h], h)
		}
	}
	// Past the last breakpoint the final value holds to midnight.
	for h := 13; h < 24; h++ {
		if vals[h] != 12 {
			t.Errorf("hour %d: got %v, want 12", h, vals[h])
		}
	}
}

func TestValuesAtTimestepRejectsBadStep(t *testing.T) {
	p := officeDay(t)
	if _, err := p.ValuesAtTimestep(7); err == nil {
		t.Error("timestep 7 must be rejected")
	}
	if _, err := p.ValuesAtTimestep(0); err == nil {
		t.Error("timestep 0 must be rejected")
	}
}

func TestProfileFromValuesAtTimestepCollapsesRuns(t *testing.T) {
	vals := make([]float64, 24)
	for h := 9; h < 17; h++ {
		vals[h] = 1
	}
	p, err := ProfileFromValuesAtTimestep("Rebuilt", vals, 1)
	if err != nil {
		t.Fatalf("rebuild: %v", err)
	}
	times := p.Times()
	if len(times) != 3 {
		t.Fatalf("expected 3 breakpoints, got %d (%v)", len(times), times)
	}
	if times[1] != (TimeOfDay{9, 0}) || times[2] != (TimeOfDay{17, 0}) {
		t.Errorf("unexpected breakpoints %v", times)
	}
	got, err := p.ValuesAtTimestep(1)
	if err != nil {
		t.Fatalf("expand: %v", err)
	}
	for h := range vals {
		if got[h] != vals[h] {
			t.Fatalf("hour %d: got %v, want %v", h, got[h], vals[h])
		}
	}
}

func TestMean(t *testing.T) {
	p := officeDay(t)
	// 16 hours at 0.3 and 8 hours at 1.0.
	want := (16*0.3 + 8*1.0) / 24
	if got := p.Mean(); math.Abs(got-want) > 1e-12 {
		t.Errorf("mean %v, want %v", got, want)
	}
}

func TestDuplicateAndRename(t *testing.T) {
	p := officeDay(t)
	dup := p.Duplicate()
	if !p.Equal(dup) {
		t.Error("duplicate must compare equal")
	}
	renamed := p.Rename("Other Day")
	if p.Equal(renamed) {
		t.Error("renamed profile must not compare equal")
	}
	if renamed.Name() != "Other Day" {
		t.Errorf("got name %q", renamed.Name())
	}
}

func TestAverageProfiles(t *testing.T) {
	a, _ := NewConstantProfile("A", 0)
	b, _ := NewConstantProfile("B", 1)
	avg, err := AverageProfiles("AB", []*DayProfile{a, b}, nil, 1)
	if err != nil {
		t.Fatalf("average: %v", err)
	}
	vals, _ := avg.ValuesAtTimestep(1)
	for h, v := range vals {
		if v != 0.5 {
			t.Fatalf("hour %d: got %v, want 0.5", h, v)
		}
	}

	weighted, err := AverageProfiles("AB", []*DayProfile{a, b}, []float64{0.25, 0.25}, 1)
	if err != nil {
		t.Fatalf("weighted average: %v", err)
	}
	vals, _ = weighted.ValuesAtTimestep(1)
	if vals[0] != 0.25 {
		t.Errorf("got %v, want 0.25 (weight shortfall contributes zero)", vals[0])
	}

	if _, err := AverageProfiles("AB", []*DayProfile{a, b}, []float64{0.8, 0.8}, 1); err == nil {
		t.Error("weights summing past 1 must be rejected")
	}
	if _, err := AverageProfiles("AB", []*DayProfile{a, b}, []float64{-0.1, 0.5}, 1); err == nil {
		t.Error("negative weights must be rejected")
	}
	if _, err := AverageProfiles("AB", []*DayProfile{a, b}, []float64{1}, 1); err == nil {
		t.Error("weight count mismatch must be rejected")
	}
}
