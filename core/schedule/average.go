package schedule

import (
	"fmt"
	"strings"

	"github.com/epmodel/schedkit/core/caldate"
	"gonum.org/v1/gonum/floats"
)

// AverageRulesets blends several rulesets into one whose values are the
// weighted sum of the inputs' values, re-expressed as a minimal rule set.
//
// Weights must sum to at most 1; any shortfall acts as a zero-valued
// contribution. A nil weights slice weights the inputs equally. Schedule
// details finer than the given timestep are lost in the averaging.
//
// When every input is reproducible with a single week pattern the inputs are
// averaged directly at the week level. Otherwise each distinct combination
// of active rules across the year is averaged separately and the results are
// recompacted into date-ranged rules, which avoids averaging all 365 days
// independently.
func AverageRulesets(name string, scheds []*Ruleset, weights []float64, timestep int) (*Ruleset, error) {
	if len(scheds) == 0 {
		return nil, fmt.Errorf("average ruleset %q needs at least one input", name)
	}
	if timestep == 0 {
		timestep = 1
	}
	if err := checkTimestep(timestep); err != nil {
		return nil, fmt.Errorf("average ruleset %q: %w", name, err)
	}
	w, err := normalizeWeights(weights, len(scheds))
	if err != nil {
		return nil, fmt.Errorf("average ruleset %q: %w", name, err)
	}

	singleWeek := true
	for _, s := range scheds {
		if !s.IsSingleWeek() {
			singleWeek = false
			break
		}
	}
	if singleWeek {
		idx := make([][]int, len(scheds))
		for si, s := range scheds {
			idx[si] = allRuleIndices(s)
		}
		out, err := averageWeek(name, scheds, w, timestep, idx)
		if err != nil {
			return nil, err
		}
		if err := out.SetTypeLimit(scheds[0].typeLimit); err != nil {
			return nil, err
		}
		return out, nil
	}

	// Distinct combinations of active rules across the inputs, per day.
	dayKeys := make([]string, caldate.DaysInYear)
	combos := make(map[string][][]int)
	var comboOrder []string
	for doy := 1; doy <= caldate.DaysInYear; doy++ {
		var b strings.Builder
		idx := make([][]int, len(scheds))
		for si, s := range scheds {
			for i, r := range s.rules {
				if r.startDOY <= doy && doy <= r.endDOY {
					fmt.Fprintf(&b, "%d,", i)
					idx[si] = append(idx[si], i)
				}
			}
			b.WriteByte(';')
		}
		key := b.String()
		dayKeys[doy-1] = key
		if _, ok := combos[key]; !ok {
			combos[key] = idx
			comboOrder = append(comboOrder, key)
		}
	}

	// One averaged single-week ruleset per combination.
	weekOf := make(map[string]*Ruleset, len(comboOrder))
	for i, key := range comboOrder {
		wk, err := averageWeek(fmt.Sprintf("%s %d", name, i), scheds, w, timestep, combos[key])
		if err != nil {
			return nil, err
		}
		weekOf[key] = wk
	}

	// Walk the year and project each week onto its date range as rules.
	var finalRules []*Rule
	var firstWeek *Ruleset
	prevKey := ""
	rangeStart := 1
	flush := func(endDOY int) error {
		wk := weekOf[prevKey]
		if firstWeek == nil {
			firstWeek = wk
		}
		rules, err := wk.ToRules(caldate.FromDOY(rangeStart, false), caldate.FromDOY(endDOY, false))
		if err != nil {
			return err
		}
		finalRules = append(finalRules, rules...)
		return nil
	}
	for doy := 1; doy <= caldate.DaysInYear; doy++ {
		key := dayKeys[doy-1]
		if key != prevKey {
			if prevKey != "" {
				if err := flush(doy - 1); err != nil {
					return nil, err
				}
			}
			prevKey = key
			rangeStart = doy
		}
	}
	if err := flush(caldate.DaysInYear); err != nil {
		return nil, err
	}

	out, err := NewRuleset(name, finalRules[0].profile, finalRules[1:])
	if err != nil {
		return nil, err
	}
	if err := out.SetSummerDesignProfile(firstWeek.summerDesign.Duplicate()); err != nil {
		return nil, err
	}
	if err := out.SetWinterDesignProfile(firstWeek.winterDesign.Duplicate()); err != nil {
		return nil, err
	}
	if err := out.SetTypeLimit(scheds[0].typeLimit); err != nil {
		return nil, err
	}
	return out, nil
}

func allRuleIndices(s *Ruleset) []int {
	idx := make([]int, len(s.rules))
	for i := range idx {
		idx[i] = i
	}
	return idx
}

// averageWeek blends one week of each input, restricted to the given rule
// indices, into a single-week ruleset.
func averageWeek(name string, scheds []*Ruleset, weights []float64, timestep int, ruleIdx [][]int) (*Ruleset, error) {
	// 10 slots: Sunday..Saturday, holiday, summer design, winter design.
	var sums [10][]float64
	for slot := range sums {
		sums[slot] = make([]float64, 24*timestep)
	}
	for si, s := range scheds {
		week := s.weekFromRules(ruleIdx[si])
		slots := [10]*DayProfile{
			week.Days[0], week.Days[1], week.Days[2], week.Days[3],
			week.Days[4], week.Days[5], week.Days[6],
			week.Holiday, week.SummerDesign, week.WinterDesign,
		}
		for slot, p := range slots {
			vals, err := p.ValuesAtTimestep(timestep)
			if err != nil {
				return nil, fmt.Errorf("average ruleset %q input %q: %w", name, s.name, err)
			}
			floats.AddScaled(sums[slot], weights[si], vals)
		}
	}
	return RulesetFromWeekDailyValues(name, WeekDailyValues{
		Sunday:       sums[0],
		Monday:       sums[1],
		Tuesday:      sums[2],
		Wednesday:    sums[3],
		Thursday:     sums[4],
		Friday:       sums[5],
		Saturday:     sums[6],
		Holiday:      sums[7],
		SummerDesign: sums[8],
		WinterDesign: sums[9],
	}, timestep)
}
