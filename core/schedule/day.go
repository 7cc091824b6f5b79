package schedule

import (
	"fmt"
	"hash/fnv"
	"math"

	"gonum.org/v1/gonum/floats"
)

// ValidTimesteps are the steps-per-hour accepted by all expansion methods.
// Each one divides an hour evenly.
var ValidTimesteps = [...]int{1, 2, 3, 4, 5, 6, 10, 12, 15, 20, 30, 60}

func checkTimestep(timestep int) error {
	for _, t := range ValidTimesteps {
		if timestep == t {
			return nil
		}
	}
	return fmt.Errorf("timestep must be one of %v, got %d", ValidTimesteps, timestep)
}

// TimeOfDay is an hour/minute pair within a single day.
type TimeOfDay struct {
	Hour   int
	Minute int
}

// MinuteOfDay returns the number of minutes since midnight.
func (t TimeOfDay) MinuteOfDay() int { return t.Hour*60 + t.Minute }

func (t TimeOfDay) valid() bool {
	return t.Hour >= 0 && t.Hour <= 23 && t.Minute >= 0 && t.Minute <= 59
}

func (t TimeOfDay) String() string { return fmt.Sprintf("%02d:%02d", t.Hour, t.Minute) }

// DayProfile is a single day's value-over-time curve: an ordered list of
// breakpoints starting at midnight, each holding a value.
//
// A DayProfile is immutable once constructed and may be freely shared across
// any number of rules and rulesets; duplicating an owner deep-copies the
// profiles it references.
type DayProfile struct {
	name        string
	times       []TimeOfDay
	values      []float64
	interpolate bool
}

// NewDayProfile creates a profile from parallel times/values slices.
// Times must start at 00:00 and be strictly increasing; a nil times slice is
// allowed only for a single constant value.
func NewDayProfile(name string, values []float64, times []TimeOfDay, interpolate bool) (*DayProfile, error) {
	if name == "" {
		return nil, fmt.Errorf("day profile name must not be empty")
	}
	if len(values) == 0 {
		return nil, fmt.Errorf("day profile %q must have at least one value", name)
	}
	if times == nil {
		times = []TimeOfDay{{0, 0}}
	}
	if len(times) != len(values) {
		return nil, fmt.Errorf("day profile %q has %d times but %d values",
			name, len(times), len(values))
	}
	for i, t := range times {
		if !t.valid() {
			return nil, fmt.Errorf("day profile %q time %d (%s) is out of range", name, i, t)
		}
	}
	if times[0] != (TimeOfDay{0, 0}) {
		return nil, fmt.Errorf("day profile %q must start at 00:00, got %s", name, times[0])
	}
	for i := 1; i < len(times); i++ {
		if times[i].MinuteOfDay() <= times[i-1].MinuteOfDay() {
			return nil, fmt.Errorf("day profile %q times must be strictly increasing, %s follows %s",
				name, times[i], times[i-1])
		}
	}
	p := &DayProfile{
		name:        name,
		times:       append([]TimeOfDay(nil), times...),
		values:      append([]float64(nil), values...),
		interpolate: interpolate,
	}
	return p, nil
}

// NewConstantProfile creates a profile holding one value all day.
func NewConstantProfile(name string, value float64) (*DayProfile, error) {
	return NewDayProfile(name, []float64{value}, nil, false)
}

// ProfileFromValuesAtTimestep builds a profile from a full day of values at a
// given timestep, collapsing runs of equal values into single breakpoints.
func ProfileFromValuesAtTimestep(name string, values []float64, timestep int) (*DayProfile, error) {
	if err := checkTimestep(timestep); err != nil {
		return nil, fmt.Errorf("day profile %q: %w", name, err)
	}
	if len(values) != 24*timestep {
		return nil, fmt.Errorf("day profile %q expects %d values at timestep %d, got %d",
			name, 24*timestep, timestep, len(values))
	}
	minutesPerStep := 60 / timestep
	times := []TimeOfDay{{0, 0}}
	vals := []float64{values[0]}
	for k := 1; k < len(values); k++ {
		if values[k] != vals[len(vals)-1] {
			m := k * minutesPerStep
			times = append(times, TimeOfDay{Hour: m / 60, Minute: m % 60})
			vals = append(vals, values[k])
		}
	}
	return NewDayProfile(name, vals, times, false)
}

// Name returns the profile name used for calendar pattern identity.
func (p *DayProfile) Name() string { return p.name }

// Interpolate reports whether expansion linearly interpolates between
// breakpoints instead of step-holding.
func (p *DayProfile) Interpolate() bool { return p.interpolate }

// Times returns a copy of the breakpoint times.
func (p *DayProfile) Times() []TimeOfDay { return append([]TimeOfDay(nil), p.times...) }

// Values returns a copy of the breakpoint values.
func (p *DayProfile) Values() []float64 { return append([]float64(nil), p.values...) }

// IsConstant reports whether the profile holds a single value all day.
func (p *DayProfile) IsConstant() bool { return len(p.values) == 1 }

// ValuesAtTimestep expands the profile into 24*timestep values using the
// profile's own interpolation setting.
//
// Two interpretations of the breakpoints exist among consumers. Under the
// interval convention (interpolate false) the value at breakpoint i holds for
// [times[i], times[i+1]) and the last value holds until midnight. Under the
// interpolated convention values ramp linearly between breakpoints, with the
// last value held until midnight.
func (p *DayProfile) ValuesAtTimestep(timestep int) ([]float64, error) {
	return p.ValuesAtTimestepWith(timestep, p.interpolate)
}

// ValuesAtTimestepWith is like ValuesAtTimestep but lets the caller select
// the convention explicitly.
func (p *DayProfile) ValuesAtTimestepWith(timestep int, interpolate bool) ([]float64, error) {
	if err := checkTimestep(timestep); err != nil {
		return nil, fmt.Errorf("day profile %q: %w", p.name, err)
	}
	n := 24 * timestep
	minutesPerStep := 60 / timestep
	out := make([]float64, n)
	j := 0
	for k := 0; k < n; k++ {
		m := k * minutesPerStep
		for j+1 < len(p.times) && p.times[j+1].MinuteOfDay() <= m {
			j++
		}
		if interpolate && j+1 < len(p.times) {
			t0 := p.times[j].MinuteOfDay()
			t1 := p.times[j+1].MinuteOfDay()
			frac := float64(m-t0) / float64(t1-t0)
			out[k] = p.values[j] + frac*(p.values[j+1]-p.values[j])
		} else {
			out[k] = p.values[j]
		}
	}
	return out, nil
}

// Mean returns the time-weighted average value over the day.
func (p *DayProfile) Mean() float64 {
	if len(p.values) == 1 {
		return p.values[0]
	}
	total := 0.0
	for i, v := range p.values {
		end := 24 * 60
		if i+1 < len(p.times) {
			end = p.times[i+1].MinuteOfDay()
		}
		total += v * float64(end-p.times[i].MinuteOfDay())
	}
	return total / (24 * 60)
}

// Duplicate returns an independent copy of the profile.
func (p *DayProfile) Duplicate() *DayProfile {
	dup := *p
	dup.times = append([]TimeOfDay(nil), p.times...)
	dup.values = append([]float64(nil), p.values...)
	return &dup
}

// Rename returns a copy of the profile carrying a different name.
func (p *DayProfile) Rename(name string) *DayProfile {
	dup := p.Duplicate()
	dup.name = name
	return dup
}

// Equal reports structural equality: every field including the name must
// match exactly.
func (p *DayProfile) Equal(o *DayProfile) bool {
	if p == nil || o == nil {
		return p == o
	}
	return p.Fingerprint() == o.Fingerprint()
}

// Fingerprint returns a structural hash over all fields, usable for
// deduplication of shared profiles.
func (p *DayProfile) Fingerprint() uint64 {
	h := fnv.New64a()
	fmt.Fprintf(h, "%s|%v", p.name, p.interpolate)
	for i := range p.values {
		fmt.Fprintf(h, "|%s=%v", p.times[i], p.values[i])
	}
	return h.Sum64()
}

// AverageProfiles computes the weighted elementwise mean of several profiles
// at the given timestep. Weights must match the profile count and sum to at
// most 1; the shortfall is an implicit zero contribution. A nil weights slice
// means equal weighting.
func AverageProfiles(name string, profiles []*DayProfile, weights []float64, timestep int) (*DayProfile, error) {
	if len(profiles) == 0 {
		return nil, fmt.Errorf("average profile %q needs at least one input", name)
	}
	w, err := normalizeWeights(weights, len(profiles))
	if err != nil {
		return nil, fmt.Errorf("average profile %q: %w", name, err)
	}
	sum := make([]float64, 24*timestep)
	for i, p := range profiles {
		vals, err := p.ValuesAtTimestep(timestep)
		if err != nil {
			return nil, err
		}
		floats.AddScaled(sum, w[i], vals)
	}
	return ProfileFromValuesAtTimestep(name, sum, timestep)
}

func normalizeWeights(weights []float64, n int) ([]float64, error) {
	if weights == nil {
		w := make([]float64, n)
		for i := range w {
			w[i] = 1 / float64(n)
		}
		return w, nil
	}
	if len(weights) != n {
		return nil, fmt.Errorf("got %d weights for %d inputs", len(weights), n)
	}
	total := floats.Sum(weights)
	if total > 1+1e-9 {
		return nil, fmt.Errorf("weights must sum to at most 1, got %v", total)
	}
	for _, w := range weights {
		if w < 0 || math.IsNaN(w) {
			return nil, fmt.Errorf("weights must be non-negative, got %v", w)
		}
	}
	return weights, nil
}
