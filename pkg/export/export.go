// Package export writes expanded schedule series and compact calendars in
// CSV and JSON formats.
package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/epmodel/schedkit/core/schedule"
)

// Series is an expanded annual value series for one schedule.
type Series struct {
	Schedule string    `json:"schedule"`
	Timestep int       `json:"timestep"`
	Unit     string    `json:"unit,omitempty"`
	Values   []float64 `json:"values"`
}

// WriteSeriesJSON writes the series to w in JSON format.
func WriteSeriesJSON(w io.Writer, s Series) error {
	enc := json.NewEncoder(w)
	return enc.Encode(s)
}

// WriteSeriesCSV writes the series to w as day/time/value rows.
func WriteSeriesCSV(w io.Writer, s Series) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"day", "time", "value"}); err != nil {
		return err
	}
	perDay := 24 * s.Timestep
	minutesPerStep := 60 / s.Timestep
	for i, v := range s.Values {
		m := (i % perDay) * minutesPerStep
		rec := []string{
			strconv.Itoa(i/perDay + 1),
			fmt.Sprintf("%02d:%02d", m/60, m%60),
			strconv.FormatFloat(v, 'f', -1, 64),
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// Calendar is the serializable form of a compact calendar.
type Calendar struct {
	Schedule string            `json:"schedule"`
	Patterns []CalendarPattern `json:"patterns"`
	Timeline []CalendarRange   `json:"timeline"`
}

// CalendarPattern names the profile applied in each week slot.
type CalendarPattern struct {
	Name         string    `json:"name"`
	Days         [7]string `json:"days"` // Sunday..Saturday
	Holiday      string    `json:"holiday"`
	SummerDesign string    `json:"summer_design"`
	WinterDesign string    `json:"winter_design"`
}

// CalendarRange applies one pattern over a date range.
type CalendarRange struct {
	Pattern string `json:"pattern"`
	Start   string `json:"start"`
	End     string `json:"end"`
}

// NewCalendar converts a compact calendar into its serializable form.
func NewCalendar(name string, cal *schedule.CompactCalendar) Calendar {
	out := Calendar{Schedule: name}
	for _, p := range cal.Patterns {
		cp := CalendarPattern{
			Name:         p.Name,
			Holiday:      p.Holiday.Name(),
			SummerDesign: p.SummerDesign.Name(),
			WinterDesign: p.WinterDesign.Name(),
		}
		for i, d := range p.Days {
			cp.Days[i] = d.Name()
		}
		out.Patterns = append(out.Patterns, cp)
	}
	for _, e := range cal.Timeline {
		out.Timeline = append(out.Timeline, CalendarRange{
			Pattern: cal.Patterns[e.Pattern].Name,
			Start:   fmt.Sprintf("%d/%d", e.Start.Month, e.Start.Day),
			End:     fmt.Sprintf("%d/%d", e.End.Month, e.End.Day),
		})
	}
	return out
}

// WriteCalendarJSON writes the calendar to w in JSON format.
func WriteCalendarJSON(w io.Writer, c Calendar) error {
	enc := json.NewEncoder(w)
	return enc.Encode(c)
}

// WriteCalendarCSV writes the timeline to w as pattern/start/end rows.
func WriteCalendarCSV(w io.Writer, c Calendar) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"pattern", "start", "end"}); err != nil {
		return err
	}
	for _, e := range c.Timeline {
		if err := cw.Write([]string{e.Pattern, e.Start, e.End}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
