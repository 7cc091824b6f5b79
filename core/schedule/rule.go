package schedule

import (
	"fmt"
	"hash/fnv"
	"strings"

	"github.com/epmodel/schedkit/core/caldate"
)

var (
	yearStart = caldate.MustNew(1, 1)
	yearEnd   = caldate.MustNew(12, 31)
)

// Rule pairs a DayProfile with the day-of-week, holiday and date-range
// conditions under which it overrides a ruleset's default profile.
//
// The date range is a half-open slice of the year in the sense that it can
// never wrap past Dec 31: a period like "all year except June" must be
// expressed as two rules around the exception.
type Rule struct {
	profile      *DayProfile
	applyDays    [7]bool // Sunday..Saturday
	applyHoliday bool
	startDate    caldate.Date
	endDate      caldate.Date

	// Day-of-year bounds in the canonical non-leap calendar, so rule
	// comparisons are leap-year-independent.
	startDOY int
	endDOY   int

	frozen bool
}

// NewRule creates a rule for the given profile spanning the whole year with
// no days applied. Use the Apply* methods and SetDateRange to scope it.
func NewRule(profile *DayProfile) (*Rule, error) {
	if profile == nil {
		return nil, fmt.Errorf("rule requires a day profile")
	}
	r := &Rule{profile: profile, startDate: yearStart, endDate: yearEnd}
	r.startDOY = yearStart.DOYCanonical()
	r.endDOY = yearEnd.DOYCanonical()
	return r, nil
}

// NewRuleForDays creates a rule applied on the named days over a date range.
// Day names follow ApplyDayByName.
func NewRuleForDays(profile *DayProfile, days []string, start, end caldate.Date) (*Rule, error) {
	r, err := NewRule(profile)
	if err != nil {
		return nil, err
	}
	if err := r.SetDateRange(start, end); err != nil {
		return nil, err
	}
	for _, day := range days {
		if err := r.ApplyDayByName(day); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// Profile returns the day profile applied by this rule.
func (r *Rule) Profile() *DayProfile { return r.profile }

// StartDate returns the first day of the rule's date range.
func (r *Rule) StartDate() caldate.Date { return r.startDate }

// EndDate returns the last day of the rule's date range.
func (r *Rule) EndDate() caldate.Date { return r.endDate }

// WeekApply returns the Sunday-first application flags for the 7 days of
// the week.
func (r *Rule) WeekApply() [7]bool { return r.applyDays }

// ApplyHoliday reports whether the rule fires on holidays.
func (r *Rule) ApplyHoliday() bool { return r.applyHoliday }

func (r *Rule) checkFrozen() error {
	if r.frozen {
		return fmt.Errorf("rule for profile %q is frozen and cannot be edited", r.profile.Name())
	}
	return nil
}

// SetDateRange restricts the rule to [start, end]. The range is compared in
// the canonical non-leap calendar and must not wrap past year end.
func (r *Rule) SetDateRange(start, end caldate.Date) error {
	if err := r.checkFrozen(); err != nil {
		return err
	}
	s, e := start.DOYCanonical(), end.DOYCanonical()
	if s > e {
		return fmt.Errorf("rule start date %s must not come after end date %s", start, end)
	}
	r.startDate, r.endDate = start, end
	r.startDOY, r.endDOY = s, e
	return nil
}

// ApplyDay sets the rule to fire on the given day of the week.
func (r *Rule) ApplyDay(d caldate.DOW) error {
	if err := r.checkFrozen(); err != nil {
		return err
	}
	if d < caldate.Sunday || d > caldate.Saturday {
		return fmt.Errorf("day of week %d outside 1..7", int(d))
	}
	r.applyDays[d.Index()] = true
	return nil
}

// ApplyWeekdays sets the rule to fire Monday through Friday.
func (r *Rule) ApplyWeekdays() error {
	if err := r.checkFrozen(); err != nil {
		return err
	}
	for d := caldate.Monday; d <= caldate.Friday; d++ {
		r.applyDays[d.Index()] = true
	}
	return nil
}

// ApplyWeekends sets the rule to fire on Saturday and Sunday.
func (r *Rule) ApplyWeekends() error {
	if err := r.checkFrozen(); err != nil {
		return err
	}
	r.applyDays[caldate.Sunday.Index()] = true
	r.applyDays[caldate.Saturday.Index()] = true
	return nil
}

// ApplyAllDays sets the rule to fire every day of the week and on holidays.
func (r *Rule) ApplyAllDays() error {
	if err := r.checkFrozen(); err != nil {
		return err
	}
	for i := range r.applyDays {
		r.applyDays[i] = true
	}
	r.applyHoliday = true
	return nil
}

// SetApplyHoliday controls whether the rule fires on holidays.
func (r *Rule) SetApplyHoliday(v bool) error {
	if err := r.checkFrozen(); err != nil {
		return err
	}
	r.applyHoliday = v
	return nil
}

// ApplyDayByName applies the rule on a day identified by name. Besides the
// seven day names it accepts "holiday", "weekday", "weekend" and "all".
func (r *Rule) ApplyDayByName(name string) error {
	switch strings.ToLower(name) {
	case "holiday":
		return r.SetApplyHoliday(true)
	case "weekday":
		return r.ApplyWeekdays()
	case "weekend":
		return r.ApplyWeekends()
	case "all":
		return r.ApplyAllDays()
	default:
		d, err := caldate.ParseDOW(name)
		if err != nil {
			return err
		}
		return r.ApplyDay(d)
	}
}

// DaysApplied lists the names of the days on which the rule fires.
func (r *Rule) DaysApplied() []string {
	var days []string
	for i, on := range r.applyDays {
		if on {
			days = append(days, strings.ToLower(caldate.DOW(i+1).String()))
		}
	}
	if r.applyHoliday {
		days = append(days, "holiday")
	}
	return days
}

// doyBounds returns the rule's start/end day of year in the requested
// calendar. In a leap year ranges starting or ending Mar-Dec shift forward
// by one to account for the inserted Feb 29.
func (r *Rule) doyBounds(leapYear bool) (int, int) {
	start, end := r.startDOY, r.endDOY
	if leapYear {
		if r.startDate.Month > 2 {
			start++
		}
		if r.endDate.Month > 2 {
			end++
		}
	}
	return start, end
}

// AppliesOnDOY reports whether the rule's date range covers the given day of
// the year, ignoring the day of the week.
func (r *Rule) AppliesOnDOY(doy int, leapYear bool) bool {
	start, end := r.doyBounds(leapYear)
	return start <= doy && doy <= end
}

// Applies reports whether the rule fires on the given day. Holidays only
// match rules with the holiday flag set; all other days match on the
// day-of-week flags.
func (r *Rule) Applies(doy int, dow caldate.DOW, isHoliday, leapYear bool) bool {
	if !r.AppliesOnDOY(doy, leapYear) {
		return false
	}
	if isHoliday {
		return r.applyHoliday
	}
	return r.applyDays[dow.Index()]
}

// Freeze marks the rule read-only. The referenced profile is already
// immutable, so no cascade is needed.
func (r *Rule) Freeze() { r.frozen = true }

// Frozen reports whether the rule has been frozen.
func (r *Rule) Frozen() bool { return r.frozen }

// Duplicate returns an unfrozen deep copy of the rule and its profile.
func (r *Rule) Duplicate() *Rule {
	dup := *r
	dup.profile = r.profile.Duplicate()
	dup.frozen = false
	return &dup
}

// Equal reports structural equality of every field, including the profile.
func (r *Rule) Equal(o *Rule) bool {
	if r == nil || o == nil {
		return r == o
	}
	return r.Fingerprint() == o.Fingerprint()
}

// Fingerprint returns a structural hash over all owned fields.
func (r *Rule) Fingerprint() uint64 {
	h := fnv.New64a()
	fmt.Fprintf(h, "%d|%v|%v|%s|%s", r.profile.Fingerprint(), r.applyDays,
		r.applyHoliday, r.startDate, r.endDate)
	return h.Sum64()
}

func (r *Rule) String() string {
	return fmt.Sprintf("Rule(%s on %s, %s - %s)", r.profile.Name(),
		strings.Join(r.DaysApplied(), ", "), r.startDate, r.endDate)
}
