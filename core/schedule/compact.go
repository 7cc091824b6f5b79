package schedule

import (
	"fmt"
	"strings"

	"github.com/epmodel/schedkit/core/caldate"
)

// WeekPattern assigns a profile to each day of a week plus the holiday and
// design-day slots. It is one row of a compact calendar.
type WeekPattern struct {
	Name         string
	Days         [7]*DayProfile // Sunday..Saturday
	Holiday      *DayProfile
	SummerDesign *DayProfile
	WinterDesign *DayProfile
}

// key identifies structurally identical patterns: the same profile names in
// the same slots.
func (w *WeekPattern) key() string {
	names := make([]string, 0, 10)
	for _, p := range w.Days {
		names = append(names, p.Name())
	}
	names = append(names, w.Holiday.Name(), w.SummerDesign.Name(), w.WinterDesign.Name())
	return strings.Join(names, "\x00")
}

// TimelineEntry applies one week pattern over a contiguous date range. Dates
// are expressed in the canonical non-leap calendar.
type TimelineEntry struct {
	Pattern int // index into CompactCalendar.Patterns
	Start   caldate.Date
	End     caldate.Date
}

// CompactCalendar is the minimal week-pattern representation of a ruleset:
// a set of distinct week patterns and a gap-free ordered timeline covering
// the whole year.
type CompactCalendar struct {
	Patterns []WeekPattern
	Timeline []TimelineEntry
}

// weekFromRules synthesizes the week pattern implied by a set of candidate
// rule indices, resolving each slot with the same priority scan used by
// Values.
func (s *Ruleset) weekFromRules(ruleIdx []int) WeekPattern {
	var w WeekPattern
	for dow := 0; dow < 7; dow++ {
		w.Days[dow] = s.defaultProfile
		for _, i := range ruleIdx {
			if s.rules[i].applyDays[dow] {
				w.Days[dow] = s.rules[i].profile
				break
			}
		}
	}
	w.Holiday = s.defaultProfile
	for _, i := range ruleIdx {
		if s.rules[i].applyHoliday {
			w.Holiday = s.rules[i].profile
			break
		}
	}
	w.SummerDesign = s.defaultProfile
	if s.summerDesign != nil {
		w.SummerDesign = s.summerDesign
	}
	w.WinterDesign = s.defaultProfile
	if s.winterDesign != nil {
		w.WinterDesign = s.winterDesign
	}
	return w
}

// CompactCalendar computes the smallest set of week patterns and the date
// ranges over which each applies, such that replaying the timeline
// reproduces the same per-day resolution as Values.
//
// Candidate-rule change points are detected from date ranges alone; two
// different active-rule windows that resolve to the same effective week are
// merged. Feb 29 never gets its own timeline entry: replay maps it through
// the canonical calendar.
func (s *Ruleset) CompactCalendar() *CompactCalendar {
	cal := &CompactCalendar{}

	// Common case: one week pattern covers the whole year.
	if s.IsSingleWeek() {
		all := make([]int, len(s.rules))
		for i := range all {
			all[i] = i
		}
		w := s.weekFromRules(all)
		w.Name = fmt.Sprintf("%s Week 1", s.name)
		cal.Patterns = []WeekPattern{w}
		cal.Timeline = []TimelineEntry{{Pattern: 0, Start: yearStart, End: yearEnd}}
		return cal
	}

	// The tuple of rule indices whose date range covers each day, encoded
	// as a string key for change-point detection.
	dayKeys := make([]string, caldate.DaysInYear)
	dayRules := make(map[string][]int)
	for doy := 1; doy <= caldate.DaysInYear; doy++ {
		var b strings.Builder
		var idx []int
		for i, r := range s.rules {
			if r.startDOY <= doy && doy <= r.endDOY {
				fmt.Fprintf(&b, "%d,", i)
				idx = append(idx, i)
			}
		}
		key := b.String()
		dayKeys[doy-1] = key
		if _, ok := dayRules[key]; !ok {
			dayRules[key] = idx
		}
	}

	// Synthesize a week per distinct rule set, merging structural twins.
	patternOf := make(map[string]int) // day key -> pattern index
	byShape := make(map[string]int)   // pattern key -> pattern index
	for doy := 1; doy <= caldate.DaysInYear; doy++ {
		key := dayKeys[doy-1]
		if _, ok := patternOf[key]; ok {
			continue
		}
		w := s.weekFromRules(dayRules[key])
		if at, ok := byShape[w.key()]; ok {
			patternOf[key] = at
			continue
		}
		w.Name = fmt.Sprintf("%s Week %d", s.name, len(cal.Patterns)+1)
		cal.Patterns = append(cal.Patterns, w)
		byShape[w.key()] = len(cal.Patterns) - 1
		patternOf[key] = len(cal.Patterns) - 1
	}

	// Emit a timeline entry at every pattern change point.
	prev := -1
	for doy := 1; doy <= caldate.DaysInYear; doy++ {
		at := patternOf[dayKeys[doy-1]]
		if at != prev {
			if len(cal.Timeline) > 0 {
				cal.Timeline[len(cal.Timeline)-1].End = caldate.FromDOY(doy-1, false)
			}
			cal.Timeline = append(cal.Timeline, TimelineEntry{
				Pattern: at,
				Start:   caldate.FromDOY(doy, false),
			})
			prev = at
		}
	}
	cal.Timeline[len(cal.Timeline)-1].End = yearEnd
	return cal
}

// entryCovers applies the same leap-year doy shift to timeline bounds as
// rule date ranges use.
func entryCovers(e TimelineEntry, doy int, leapYear bool) bool {
	start, end := e.Start.DOYCanonical(), e.End.DOYCanonical()
	if leapYear {
		if e.Start.Month > 2 {
			start++
		}
		if e.End.Month > 2 {
			end++
		}
	}
	return start <= doy && doy <= end
}

func (c *CompactCalendar) patternFor(doy int, leapYear bool) (*WeekPattern, error) {
	for i := range c.Timeline {
		if entryCovers(c.Timeline[i], doy, leapYear) {
			return &c.Patterns[c.Timeline[i].Pattern], nil
		}
	}
	// Feb 29 can fall between two entries split at the Feb/Mar boundary;
	// it reuses the pattern of its canonical day.
	if leapYear {
		for i := range c.Timeline {
			if entryCovers(c.Timeline[i], doy, false) {
				return &c.Patterns[c.Timeline[i].Pattern], nil
			}
		}
	}
	return nil, fmt.Errorf("no timeline entry covers day of year %d", doy)
}

// Values replays the timeline and patterns into a per-timestep annual
// series, the inverse of CompactCalendar. It follows the same holiday and
// day-of-week semantics as Ruleset.Values.
func (c *CompactCalendar) Values(opts ExpandOptions) ([]float64, error) {
	opts, err := opts.normalize()
	if err != nil {
		return nil, err
	}
	dayVals := make(map[*DayProfile][]float64)
	expand := func(p *DayProfile) ([]float64, error) {
		if vals, ok := dayVals[p]; ok {
			return vals, nil
		}
		vals, err := p.ValuesAtTimestep(opts.Timestep)
		if err != nil {
			return nil, err
		}
		dayVals[p] = vals
		return vals, nil
	}

	hol := opts.holidayDOYs()
	startDOY, endDOY := opts.StartDate.DOY(), opts.EndDate.DOY()
	out := make([]float64, 0, (endDOY-startDOY+1)*24*opts.Timestep)
	dow := opts.StartDOW
	for doy := startDOY; doy <= endDOY; doy++ {
		w, err := c.patternFor(doy, opts.LeapYear)
		if err != nil {
			return nil, err
		}
		p := w.Days[dow.Index()]
		if hol[doy] {
			p = w.Holiday
		}
		vals, err := expand(p)
		if err != nil {
			return nil, err
		}
		out = append(out, vals...)
		dow = dow.Next()
	}
	return out, nil
}
