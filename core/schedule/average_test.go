package schedule

import (
	"math"
	"testing"
)

func TestAverageConstantRulesets(t *testing.T) {
	a, _ := NewConstantRuleset("A", 0.2)
	b, _ := NewConstantRuleset("B", 0.8)
	avg, err := AverageRulesets("AB", []*Ruleset{a, b}, nil, 1)
	if err != nil {
		t.Fatalf("average: %v", err)
	}
	vals, err := avg.Values(ExpandOptions{})
	if err != nil {
		t.Fatalf("values: %v", err)
	}
	if len(vals) != 8760 {
		t.Fatalf("expected 8760 values, got %d", len(vals))
	}
	for i, v := range vals {
		if math.Abs(v-0.5) > 1e-12 {
			t.Fatalf("value %d is %v, want 0.5", i, v)
		}
	}
}

func TestAverageSelfIsIdentity(t *testing.T) {
	s, _ := NewConstantRuleset("S", 0.6)
	avg, err := AverageRulesets("SS", []*Ruleset{s, s}, []float64{0.5, 0.5}, 1)
	if err != nil {
		t.Fatalf("average: %v", err)
	}
	want, err := s.Values(ExpandOptions{})
	if err != nil {
		t.Fatalf("values: %v", err)
	}
	got, err := avg.Values(ExpandOptions{})
	if err != nil {
		t.Fatalf("values: %v", err)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("value %d is %v, want %v", i, got[i], want[i])
		}
	}
}

func TestAverageWeighted(t *testing.T) {
	a, _ := NewConstantRuleset("A", 0.2)
	b, _ := NewConstantRuleset("B", 0.8)
	avg, err := AverageRulesets("AB", []*Ruleset{a, b}, []float64{0.25, 0.75}, 1)
	if err != nil {
		t.Fatalf("average: %v", err)
	}
	vals, err := avg.Values(ExpandOptions{})
	if err != nil {
		t.Fatalf("values: %v", err)
	}
	want := 0.25*0.2 + 0.75*0.8
	if math.Abs(vals[0]-want) > 1e-12 {
		t.Errorf("got %v, want %v", vals[0], want)
	}

	// Weights below a full sum leave the shortfall as zero occupancy.
	avg, err = AverageRulesets("AB", []*Ruleset{a, b}, []float64{0.25, 0.25}, 1)
	if err != nil {
		t.Fatalf("average: %v", err)
	}
	vals, err = avg.Values(ExpandOptions{})
	if err != nil {
		t.Fatalf("values: %v", err)
	}
	want = 0.25*0.2 + 0.25*0.8
	if math.Abs(vals[0]-want) > 1e-12 {
		t.Errorf("got %v, want %v", vals[0], want)
	}

	if _, err := AverageRulesets("AB", []*Ruleset{a, b}, []float64{0.75, 0.75}, 1); err == nil {
		t.Error("weights summing past 1 must be rejected")
	}
	if _, err := AverageRulesets("AB", nil, nil, 1); err == nil {
		t.Error("an empty input list must be rejected")
	}
}

// The averaged schedule's expansion is the weighted sum of the inputs'
// expansions at every timestep, including across seasonal rule boundaries.
func TestAverageLinearity(t *testing.T) {
	office := officeRuleset(t)
	seasonal := seasonalRuleset(t)
	weights := []float64{0.3, 0.7}

	avg, err := AverageRulesets("Mixed", []*Ruleset{office, seasonal}, weights, 1)
	if err != nil {
		t.Fatalf("average: %v", err)
	}

	opts := ExpandOptions{}
	got, err := avg.Values(opts)
	if err != nil {
		t.Fatalf("values: %v", err)
	}
	a, err := office.Values(opts)
	if err != nil {
		t.Fatalf("office values: %v", err)
	}
	b, err := seasonal.Values(opts)
	if err != nil {
		t.Fatalf("seasonal values: %v", err)
	}
	if len(got) != len(a) {
		t.Fatalf("length %d, want %d", len(got), len(a))
	}
	for i := range got {
		want := weights[0]*a[i] + weights[1]*b[i]
		if math.Abs(got[i]-want) > 1e-9 {
			t.Fatalf("value %d is %v, want %v", i, got[i], want)
		}
	}
}

func TestAverageSingleWeekStaysSingleWeek(t *testing.T) {
	a := officeRuleset(t)
	b, _ := NewConstantRuleset("Steady", 0.4)
	avg, err := AverageRulesets("Blend", []*Ruleset{a, b}, nil, 1)
	if err != nil {
		t.Fatalf("average: %v", err)
	}
	if !avg.IsSingleWeek() {
		t.Error("averaging single-week inputs must stay single-week")
	}
	if avg.SummerDesignProfile() == nil || avg.WinterDesignProfile() == nil {
		t.Error("averaged schedule must carry design day profiles")
	}
}

func TestAverageCarriesTypeLimit(t *testing.T) {
	tl, err := NewTypeLimit("Fractional", ptr(0), ptr(1), Continuous, "Dimensionless")
	if err != nil {
		t.Fatalf("type limit: %v", err)
	}
	a, _ := NewConstantRuleset("A", 0.2)
	if err := a.SetTypeLimit(tl); err != nil {
		t.Fatalf("set type limit: %v", err)
	}
	b, _ := NewConstantRuleset("B", 0.8)
	avg, err := AverageRulesets("AB", []*Ruleset{a, b}, nil, 1)
	if err != nil {
		t.Fatalf("average: %v", err)
	}
	if avg.TypeLimit() == nil || avg.TypeLimit().Name() != "Fractional" {
		t.Error("averaged schedule must carry the first input's type limit")
	}
}
