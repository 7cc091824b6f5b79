package schedule

import (
	"fmt"
	"slices"

	"github.com/epmodel/schedkit/core/caldate"
)

var weekSlotNames = [8]string{
	"Sunday", "Monday", "Tuesday", "Wednesday", "Thursday", "Friday",
	"Saturday", "Holiday",
}

// WeekDailyValues holds one day of values per week slot at some timestep.
// The design-day slices are optional: when nil, the summer design day falls
// back to the highest-average day and the winter design day to the lowest.
type WeekDailyValues struct {
	Sunday    []float64
	Monday    []float64
	Tuesday   []float64
	Wednesday []float64
	Thursday  []float64
	Friday    []float64
	Saturday  []float64
	Holiday   []float64

	SummerDesign []float64
	WinterDesign []float64
}

func (w WeekDailyValues) slots() [8][]float64 {
	return [8][]float64{
		w.Sunday, w.Monday, w.Tuesday, w.Wednesday, w.Thursday, w.Friday,
		w.Saturday, w.Holiday,
	}
}

// WeekProfiles assigns an existing profile to each week slot.
type WeekProfiles struct {
	Sunday    *DayProfile
	Monday    *DayProfile
	Tuesday   *DayProfile
	Wednesday *DayProfile
	Thursday  *DayProfile
	Friday    *DayProfile
	Saturday  *DayProfile
	Holiday   *DayProfile

	SummerDesign *DayProfile
	WinterDesign *DayProfile
}

func (w WeekProfiles) slots() [8]*DayProfile {
	return [8]*DayProfile{
		w.Sunday, w.Monday, w.Tuesday, w.Wednesday, w.Thursday, w.Friday,
		w.Saturday, w.Holiday,
	}
}

// applySlot applies a rule to the week slot at index i, where 0..6 are
// Sunday..Saturday and 7 is the holiday slot.
func applySlot(r *Rule, i int) error {
	if i == 7 {
		return r.SetApplyHoliday(true)
	}
	return r.ApplyDay(caldate.DOW(i + 1))
}

// RulesetFromWeekDailyValues creates a single-week ruleset from one day of
// values per week slot. Slots holding identical values share one profile and
// one rule. The first rule's profile becomes the default, so its days
// resolve through the fallback rather than an explicit rule.
func RulesetFromWeekDailyValues(name string, week WeekDailyValues, timestep int) (*Ruleset, error) {
	var rules []*Rule
	var applied [][]float64
	for i, vals := range week.slots() {
		if vals == nil {
			return nil, fmt.Errorf("ruleset %q is missing %s values", name, weekSlotNames[i])
		}
		if len(vals) != 24*timestep {
			return nil, fmt.Errorf("ruleset %q %s expects %d values at timestep %d, got %d",
				name, weekSlotNames[i], 24*timestep, timestep, len(vals))
		}
		at := -1
		for j, prev := range applied {
			if slices.Equal(prev, vals) {
				at = j
				break
			}
		}
		if at < 0 {
			p, err := ProfileFromValuesAtTimestep(
				fmt.Sprintf("%s %s", name, weekSlotNames[i]), vals, timestep)
			if err != nil {
				return nil, err
			}
			r, err := NewRule(p)
			if err != nil {
				return nil, err
			}
			rules = append(rules, r)
			applied = append(applied, vals)
			at = len(rules) - 1
		}
		if err := applySlot(rules[at], i); err != nil {
			return nil, err
		}
	}

	rs, err := NewRuleset(name, rules[0].profile, rules[1:])
	if err != nil {
		return nil, err
	}

	// Design days default to the most and least intense applied days.
	summer, winter := week.SummerDesign, week.WinterDesign
	if summer == nil || winter == nil {
		hi, lo := 0, 0
		for i, r := range rules {
			if r.profile.Mean() > rules[hi].profile.Mean() {
				hi = i
			}
			if r.profile.Mean() < rules[lo].profile.Mean() {
				lo = i
			}
		}
		if summer == nil {
			if err := rs.SetSummerDesignProfile(rules[hi].profile.Rename(name + " SmrDsn")); err != nil {
				return nil, err
			}
		}
		if winter == nil {
			if err := rs.SetWinterDesignProfile(rules[lo].profile.Rename(name + " WntrDsn")); err != nil {
				return nil, err
			}
		}
	}
	if summer != nil {
		p, err := ProfileFromValuesAtTimestep(name+" SmrDsn", summer, timestep)
		if err != nil {
			return nil, err
		}
		if err := rs.SetSummerDesignProfile(p); err != nil {
			return nil, err
		}
	}
	if winter != nil {
		p, err := ProfileFromValuesAtTimestep(name+" WntrDsn", winter, timestep)
		if err != nil {
			return nil, err
		}
		if err := rs.SetWinterDesignProfile(p); err != nil {
			return nil, err
		}
	}
	return rs, nil
}

// RulesetFromWeekProfiles creates a single-week ruleset from a profile per
// week slot. Slots referencing a profile of the same name share one rule.
func RulesetFromWeekProfiles(name string, week WeekProfiles) (*Ruleset, error) {
	var rules []*Rule
	var appliedNames []string
	for i, p := range week.slots() {
		if p == nil {
			return nil, fmt.Errorf("ruleset %q is missing a %s profile", name, weekSlotNames[i])
		}
		at := slices.Index(appliedNames, p.Name())
		if at < 0 {
			r, err := NewRule(p)
			if err != nil {
				return nil, err
			}
			rules = append(rules, r)
			appliedNames = append(appliedNames, p.Name())
			at = len(rules) - 1
		}
		if err := applySlot(rules[at], i); err != nil {
			return nil, err
		}
	}
	rs, err := NewRuleset(name, rules[0].profile, rules[1:])
	if err != nil {
		return nil, err
	}
	if week.SummerDesign != nil {
		summer := week.SummerDesign
		if slices.Contains(appliedNames, summer.Name()) {
			summer = summer.Rename(summer.Name() + " SmrDsn")
		}
		if err := rs.SetSummerDesignProfile(summer); err != nil {
			return nil, err
		}
	}
	if week.WinterDesign != nil {
		winter := week.WinterDesign
		if slices.Contains(appliedNames, winter.Name()) {
			winter = winter.Rename(winter.Name() + " WntrDsn")
		}
		if err := rs.SetWinterDesignProfile(winter); err != nil {
			return nil, err
		}
	}
	return rs, nil
}
