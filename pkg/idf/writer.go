// Package idf renders schedule objects as EnergyPlus IDF text:
// Schedule:Day:Interval, Schedule:Week:Daily, Schedule:Year,
// Schedule:Constant and ScheduleTypeLimits.
package idf

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/epmodel/schedkit/core/schedule"
)

// FormatObject renders a single IDF object with one field per line and an
// aligned "!-" comment per field.
func FormatObject(objType string, fields, comments []string) string {
	var b strings.Builder
	b.WriteString(objType)
	b.WriteString(",\n")
	for i, f := range fields {
		sep := ","
		if i == len(fields)-1 {
			sep = ";"
		}
		pad := 25 - len(f) - len(sep)
		if pad < 1 {
			pad = 1
		}
		comment := ""
		if i < len(comments) && comments[i] != "" {
			comment = "!- " + comments[i]
		}
		fmt.Fprintf(&b, " %s%s%s%s\n", f, sep, strings.Repeat(" ", pad), comment)
	}
	return strings.TrimRight(b.String(), "\n")
}

func formatValue(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// TypeLimitObject renders a ScheduleTypeLimits object.
func TypeLimitObject(t *schedule.TypeLimit) string {
	lower, upper := "", ""
	if t.LowerLimit() != nil {
		lower = formatValue(*t.LowerLimit())
	}
	if t.UpperLimit() != nil {
		upper = formatValue(*t.UpperLimit())
	}
	return FormatObject("ScheduleTypeLimits",
		[]string{t.Name(), lower, upper, t.NumericType(), t.UnitType()},
		[]string{"name", "lower limit value", "upper limit value", "numeric type", "unit type"})
}

// DayObject renders a profile as a Schedule:Day:Interval object. Each
// breakpoint value holds until the next breakpoint's time, the last until
// 24:00.
func DayObject(p *schedule.DayProfile, typeLimitName string) string {
	interpolate := "No"
	if p.Interpolate() {
		interpolate = "Linear"
	}
	fields := []string{p.Name(), typeLimitName, interpolate}
	comments := []string{"name", "schedule type limits", "interpolate to timestep"}
	times, values := p.Times(), p.Values()
	for i, v := range values {
		until := "24:00"
		if i+1 < len(times) {
			until = fmt.Sprintf("%02d:%02d", times[i+1].Hour, times[i+1].Minute)
		}
		fields = append(fields, "Until: "+until, formatValue(v))
		comments = append(comments,
			fmt.Sprintf("time %d", i+1), fmt.Sprintf("value until time %d", i+1))
	}
	return FormatObject("Schedule:Day:Interval", fields, comments)
}

var weekComments = []string{
	"name", "sunday", "monday", "tuesday", "wednesday", "thursday", "friday",
	"saturday", "holiday", "summer design day", "winter design day",
	"custom day 1", "custom day 2",
}

// WeekObject renders a week pattern as a Schedule:Week:Daily object. The
// custom day slots, which nothing uses, carry the default profile.
func WeekObject(w *schedule.WeekPattern, defaultName string) string {
	fields := []string{w.Name}
	for _, p := range w.Days {
		fields = append(fields, p.Name())
	}
	fields = append(fields, w.Holiday.Name(), w.SummerDesign.Name(), w.WinterDesign.Name(),
		defaultName, defaultName)
	return FormatObject("Schedule:Week:Daily", fields, weekComments)
}

// ScheduleObjects holds the IDF text for one ruleset. Weeks and Year are
// empty for constant schedules, which reduce to a single Schedule:Constant.
type ScheduleObjects struct {
	TypeLimit string
	Days      []string
	Weeks     []string
	Year      string
	Constant  string
}

// RulesetObjects renders a ruleset into its full set of IDF schedule
// objects via calendar compaction.
func RulesetObjects(rs *schedule.Ruleset) ScheduleObjects {
	var out ScheduleObjects
	typeLimitName := ""
	if tl := rs.TypeLimit(); tl != nil {
		typeLimitName = tl.Name()
		out.TypeLimit = TypeLimitObject(tl)
	}

	if rs.IsConstant() {
		out.Constant = FormatObject("Schedule:Constant",
			[]string{rs.Name(), typeLimitName, formatValue(rs.DefaultProfile().Values()[0])},
			[]string{"schedule name", "schedule type limits", "value"})
		return out
	}

	for _, p := range rs.DayProfiles() {
		out.Days = append(out.Days, DayObject(p, typeLimitName))
	}

	cal := rs.CompactCalendar()
	for i := range cal.Patterns {
		out.Weeks = append(out.Weeks, WeekObject(&cal.Patterns[i], rs.DefaultProfile().Name()))
	}

	fields := []string{rs.Name(), typeLimitName}
	comments := []string{"schedule name", "schedule type limits"}
	for i, e := range cal.Timeline {
		n := i + 1
		fields = append(fields, cal.Patterns[e.Pattern].Name,
			strconv.Itoa(e.Start.Month), strconv.Itoa(e.Start.Day),
			strconv.Itoa(e.End.Month), strconv.Itoa(e.End.Day))
		comments = append(comments,
			fmt.Sprintf("week schedule name %d", n),
			fmt.Sprintf("start month %d", n), fmt.Sprintf("start day %d", n),
			fmt.Sprintf("end month %d", n), fmt.Sprintf("end day %d", n))
	}
	out.Year = FormatObject("Schedule:Year", fields, comments)
	return out
}

// WriteRuleset writes every IDF object of the ruleset to w, separated by
// blank lines.
func WriteRuleset(w io.Writer, rs *schedule.Ruleset) error {
	objs := RulesetObjects(rs)
	var parts []string
	if objs.TypeLimit != "" {
		parts = append(parts, objs.TypeLimit)
	}
	parts = append(parts, objs.Days...)
	parts = append(parts, objs.Weeks...)
	if objs.Constant != "" {
		parts = append(parts, objs.Constant)
	} else {
		parts = append(parts, objs.Year)
	}
	_, err := io.WriteString(w, strings.Join(parts, "\n\n")+"\n")
	return err
}
