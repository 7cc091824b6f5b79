package schedule

import (
	"fmt"
	"hash/fnv"

	"github.com/epmodel/schedkit/core/caldate"
)

// Ruleset is a complete annual schedule: a default day profile, a
// priority-ordered list of rules overriding it, optional design-day profiles
// and an optional type limit.
//
// Rules are ordered from highest to lowest priority: if two rules cover the
// same date range and day of the week, the one earlier in the list wins.
// Rules that apply for part of the year should therefore precede rules
// applied over the whole year.
type Ruleset struct {
	name           string
	defaultProfile *DayProfile
	rules          []*Rule
	typeLimit      *TypeLimit
	summerDesign   *DayProfile
	winterDesign   *DayProfile

	frozen bool
}

// NewRuleset creates a ruleset from a default profile and zero or more rules
// ordered from highest to lowest priority.
func NewRuleset(name string, defaultProfile *DayProfile, rules []*Rule) (*Ruleset, error) {
	if name == "" {
		return nil, fmt.Errorf("ruleset name must not be empty")
	}
	if defaultProfile == nil {
		return nil, fmt.Errorf("ruleset %q requires a default day profile", name)
	}
	for i, r := range rules {
		if r == nil {
			return nil, fmt.Errorf("ruleset %q rule %d is nil", name, i)
		}
	}
	return &Ruleset{
		name:           name,
		defaultProfile: defaultProfile,
		rules:          append([]*Rule(nil), rules...),
	}, nil
}

// NewConstantRuleset creates a ruleset holding a single value all year.
func NewConstantRuleset(name string, value float64) (*Ruleset, error) {
	p, err := NewConstantProfile(name+" Day Schedule", value)
	if err != nil {
		return nil, err
	}
	return NewRuleset(name, p, nil)
}

// RulesetFromDailyValues creates a ruleset that repeats one day of values at
// a given timestep for the whole year.
func RulesetFromDailyValues(name string, values []float64, timestep int) (*Ruleset, error) {
	p, err := ProfileFromValuesAtTimestep(name+" Day Schedule", values, timestep)
	if err != nil {
		return nil, err
	}
	return NewRuleset(name, p, nil)
}

// Name returns the schedule name.
func (s *Ruleset) Name() string { return s.name }

// DefaultProfile returns the profile used on days no rule covers.
func (s *Ruleset) DefaultProfile() *DayProfile { return s.defaultProfile }

// Rules returns the rules ordered from highest to lowest priority.
func (s *Ruleset) Rules() []*Rule { return append([]*Rule(nil), s.rules...) }

// NumRules returns the number of rules.
func (s *Ruleset) NumRules() int { return len(s.rules) }

// TypeLimit returns the optional type limit, or nil.
func (s *Ruleset) TypeLimit() *TypeLimit { return s.typeLimit }

// SummerDesignProfile returns the summer design-day profile, or nil.
func (s *Ruleset) SummerDesignProfile() *DayProfile { return s.summerDesign }

// WinterDesignProfile returns the winter design-day profile, or nil.
func (s *Ruleset) WinterDesignProfile() *DayProfile { return s.winterDesign }

func (s *Ruleset) checkFrozen() error {
	if s.frozen {
		return fmt.Errorf("ruleset %q is frozen and cannot be edited", s.name)
	}
	return nil
}

// SetTypeLimit attaches a type limit used to validate and annotate values.
func (s *Ruleset) SetTypeLimit(t *TypeLimit) error {
	if err := s.checkFrozen(); err != nil {
		return err
	}
	s.typeLimit = t
	return nil
}

// SetSummerDesignProfile sets the profile used for the summer design day.
func (s *Ruleset) SetSummerDesignProfile(p *DayProfile) error {
	if err := s.checkFrozen(); err != nil {
		return err
	}
	s.summerDesign = p
	return nil
}

// SetWinterDesignProfile sets the profile used for the winter design day.
func (s *Ruleset) SetWinterDesignProfile(p *DayProfile) error {
	if err := s.checkFrozen(); err != nil {
		return err
	}
	s.winterDesign = p
	return nil
}

// AddRule inserts a rule at the highest priority (index 0), so it may shadow
// every rule underneath it.
func (s *Ruleset) AddRule(r *Rule) error {
	if err := s.checkFrozen(); err != nil {
		return err
	}
	if r == nil {
		return fmt.Errorf("ruleset %q cannot add a nil rule", s.name)
	}
	s.rules = append([]*Rule{r}, s.rules...)
	return nil
}

// RemoveRule deletes the rule at the given priority index. The referenced
// profile is untouched, so other rules sharing it are unaffected.
func (s *Ruleset) RemoveRule(i int) error {
	if err := s.checkFrozen(); err != nil {
		return err
	}
	if i < 0 || i >= len(s.rules) {
		return fmt.Errorf("ruleset %q has no rule at index %d (have %d)", s.name, i, len(s.rules))
	}
	s.rules = append(s.rules[:i], s.rules[i+1:]...)
	return nil
}

// ReorderRule moves the rule at index i to newIndex, changing only its
// priority.
func (s *Ruleset) ReorderRule(i, newIndex int) error {
	if err := s.checkFrozen(); err != nil {
		return err
	}
	if i < 0 || i >= len(s.rules) {
		return fmt.Errorf("ruleset %q has no rule at index %d (have %d)", s.name, i, len(s.rules))
	}
	if newIndex < 0 || newIndex >= len(s.rules) {
		return fmt.Errorf("ruleset %q cannot move rule to index %d (have %d)", s.name, newIndex, len(s.rules))
	}
	r := s.rules[i]
	rest := append(s.rules[:i:i], s.rules[i+1:]...)
	s.rules = append(rest[:newIndex:newIndex], append([]*Rule{r}, rest[newIndex:]...)...)
	return nil
}

// DayProfiles returns the unique profiles referenced by the ruleset.
func (s *Ruleset) DayProfiles() []*DayProfile {
	seen := map[uint64]bool{}
	var out []*DayProfile
	add := func(p *DayProfile) {
		if p == nil {
			return
		}
		if fp := p.Fingerprint(); !seen[fp] {
			seen[fp] = true
			out = append(out, p)
		}
	}
	add(s.defaultProfile)
	add(s.summerDesign)
	add(s.winterDesign)
	for _, r := range s.rules {
		add(r.profile)
	}
	return out
}

// IsConstant reports whether the schedule reduces to a single value all year.
func (s *Ruleset) IsConstant() bool {
	return s.defaultProfile.IsConstant() && len(s.rules) == 0 &&
		s.summerDesign == nil && s.winterDesign == nil
}

// IsSingleWeek reports whether one week pattern reproduces the whole year,
// which is the case when every rule spans the full year.
func (s *Ruleset) IsSingleWeek() bool {
	for _, r := range s.rules {
		if r.startDOY != 1 || r.endDOY != caldate.DaysInYear {
			return false
		}
	}
	return true
}

// ExpandOptions selects the calendar over which a schedule is expanded.
// Zero values mean: hourly timestep, Jan 1 through Dec 31, week starting
// Sunday, no holidays, non-leap year.
type ExpandOptions struct {
	Timestep  int
	StartDate caldate.Date
	EndDate   caldate.Date
	StartDOW  caldate.DOW
	Holidays  []caldate.Date
	LeapYear  bool
}

func (o ExpandOptions) normalize() (ExpandOptions, error) {
	if o.Timestep == 0 {
		o.Timestep = 1
	}
	if err := checkTimestep(o.Timestep); err != nil {
		return o, err
	}
	if o.StartDate == (caldate.Date{}) {
		o.StartDate = caldate.Date{Month: 1, Day: 1, LeapYear: o.LeapYear}
	}
	if o.EndDate == (caldate.Date{}) {
		o.EndDate = caldate.Date{Month: 12, Day: 31, LeapYear: o.LeapYear}
	}
	// Dates built for the wrong calendar must be reconstructed by the
	// caller; silently reinterpreting them would shift doy arithmetic.
	if o.StartDate.LeapYear != o.LeapYear || o.EndDate.LeapYear != o.LeapYear {
		return o, fmt.Errorf("start/end dates must be built for leap_year=%v", o.LeapYear)
	}
	if o.StartDate.After(o.EndDate) {
		return o, fmt.Errorf("start date %s must not come after end date %s", o.StartDate, o.EndDate)
	}
	if o.StartDOW == 0 {
		o.StartDOW = caldate.Sunday
	}
	if o.StartDOW < caldate.Sunday || o.StartDOW > caldate.Saturday {
		return o, fmt.Errorf("start day of week %d outside 1..7", int(o.StartDOW))
	}
	return o, nil
}

func (o ExpandOptions) holidayDOYs() map[int]bool {
	if len(o.Holidays) == 0 {
		return nil
	}
	hol := make(map[int]bool, len(o.Holidays))
	for _, h := range o.Holidays {
		hol[h.InCalendar(o.LeapYear).DOY()] = true
	}
	return hol
}

// Values expands the schedule into one value per timestep over the requested
// date range. Days listed as holidays only match rules with the holiday flag
// set; on all other days rules are scanned in priority order and the first
// match wins, falling back to the default profile.
func (s *Ruleset) Values(opts ExpandOptions) ([]float64, error) {
	opts, err := opts.normalize()
	if err != nil {
		return nil, fmt.Errorf("ruleset %q: %w", s.name, err)
	}
	ruleVals := make([][]float64, len(s.rules))
	for i, r := range s.rules {
		if ruleVals[i], err = r.profile.ValuesAtTimestep(opts.Timestep); err != nil {
			return nil, fmt.Errorf("ruleset %q rule %d: %w", s.name, i, err)
		}
	}
	defaultVals, err := s.defaultProfile.ValuesAtTimestep(opts.Timestep)
	if err != nil {
		return nil, fmt.Errorf("ruleset %q: %w", s.name, err)
	}

	hol := opts.holidayDOYs()
	startDOY, endDOY := opts.StartDate.DOY(), opts.EndDate.DOY()
	out := make([]float64, 0, (endDOY-startDOY+1)*24*opts.Timestep)
	dow := opts.StartDOW
	for doy := startDOY; doy <= endDOY; doy++ {
		dayVals := defaultVals
		for i, r := range s.rules {
			if r.Applies(doy, dow, hol[doy], opts.LeapYear) {
				dayVals = ruleVals[i]
				break
			}
		}
		out = append(out, dayVals...)
		dow = dow.Next()
	}
	return out, nil
}

// CheckValues validates every breakpoint value of every referenced profile
// against the attached type limit. It is a no-op without one.
func (s *Ruleset) CheckValues() error {
	if s.typeLimit == nil {
		return nil
	}
	for _, p := range s.DayProfiles() {
		for _, v := range p.Values() {
			if err := s.typeLimit.CheckValue(v); err != nil {
				return fmt.Errorf("ruleset %q profile %q: %w", s.name, p.Name(), err)
			}
		}
	}
	return nil
}

// ToRules projects the whole ruleset onto a date range as a self-contained
// rule list: overlapping rules are clipped to the range and a final rule
// carrying the default profile covers the days and holidays nothing else
// does. This is how one ruleset is applied over a slice of another.
func (s *Ruleset) ToRules(start, end caldate.Date) ([]*Rule, error) {
	st, e := start.DOYCanonical(), end.DOYCanonical()
	if st > e {
		return nil, fmt.Errorf("ruleset %q: start date %s must not come after end date %s",
			s.name, start, end)
	}
	var rules []*Rule
	for _, r := range s.rules {
		if r.endDOY < st || r.startDOY > e {
			continue
		}
		clip := r.Duplicate()
		cs, ce := clip.startDate, clip.endDate
		if clip.startDOY < st {
			cs = start
		}
		if clip.endDOY > e {
			ce = end
		}
		if err := clip.SetDateRange(cs, ce); err != nil {
			return nil, err
		}
		rules = append(rules, clip)
	}

	defaultRule, err := NewRule(s.defaultProfile.Duplicate())
	if err != nil {
		return nil, err
	}
	if err := defaultRule.SetDateRange(start, end); err != nil {
		return nil, err
	}
	for dow := caldate.Sunday; dow <= caldate.Saturday; dow++ {
		covered := false
		for _, r := range rules {
			if r.applyDays[dow.Index()] {
				covered = true
				break
			}
		}
		if !covered {
			if err := defaultRule.ApplyDay(dow); err != nil {
				return nil, err
			}
		}
	}
	holCovered := false
	for _, r := range rules {
		if r.applyHoliday {
			holCovered = true
			break
		}
	}
	if !holCovered {
		if err := defaultRule.SetApplyHoliday(true); err != nil {
			return nil, err
		}
	}
	return append(rules, defaultRule), nil
}

// Freeze marks the ruleset and its rules read-only so it can be shared
// across many owners. There is no unfreeze; duplicate to get an editable
// copy.
func (s *Ruleset) Freeze() {
	s.frozen = true
	for _, r := range s.rules {
		r.Freeze()
	}
}

// Frozen reports whether the ruleset has been frozen.
func (s *Ruleset) Frozen() bool { return s.frozen }

// Duplicate returns an unfrozen deep copy of the ruleset, its rules and all
// owned profiles.
func (s *Ruleset) Duplicate() *Ruleset {
	dup := &Ruleset{
		name:           s.name,
		defaultProfile: s.defaultProfile.Duplicate(),
		typeLimit:      s.typeLimit,
	}
	if s.summerDesign != nil {
		dup.summerDesign = s.summerDesign.Duplicate()
	}
	if s.winterDesign != nil {
		dup.winterDesign = s.winterDesign.Duplicate()
	}
	dup.rules = make([]*Rule, len(s.rules))
	for i, r := range s.rules {
		dup.rules[i] = r.Duplicate()
	}
	return dup
}

// Equal reports structural equality: the default profile, every rule in
// order, the design-day profiles and the type limit must all match exactly.
func (s *Ruleset) Equal(o *Ruleset) bool {
	if s == nil || o == nil {
		return s == o
	}
	return s.Fingerprint() == o.Fingerprint()
}

// Fingerprint returns a structural hash over all owned fields, usable by
// upstream deduplication.
func (s *Ruleset) Fingerprint() uint64 {
	h := fnv.New64a()
	fmt.Fprintf(h, "%s|%d", s.name, s.defaultProfile.Fingerprint())
	if s.summerDesign != nil {
		fmt.Fprintf(h, "|smr=%d", s.summerDesign.Fingerprint())
	}
	if s.winterDesign != nil {
		fmt.Fprintf(h, "|wtr=%d", s.winterDesign.Fingerprint())
	}
	if s.typeLimit != nil {
		fmt.Fprintf(h, "|tl=%d", s.typeLimit.Fingerprint())
	}
	for _, r := range s.rules {
		fmt.Fprintf(h, "|%d", r.Fingerprint())
	}
	return h.Sum64()
}

func (s *Ruleset) String() string {
	return fmt.Sprintf("Ruleset(%s, default %s, %d rules)",
		s.name, s.defaultProfile.Name(), len(s.rules))
}
