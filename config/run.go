package config

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/epmodel/schedkit/core/caldate"
	"github.com/epmodel/schedkit/core/schedule"
)

// RunConfig defines the calendar over which schedules are expanded.
type RunConfig struct {
	// Timestep is the number of values per hour in expanded output.
	Timestep int `json:"timestep"`
	// StartDOW is the day of the week of Jan 1 (e.g. "sunday").
	StartDOW string `json:"start_dow"`
	// LeapYear selects a 366-day calendar.
	LeapYear bool `json:"leap_year"`
	// Holidays lists dates as "month/day" strings (e.g. "7/4") on which
	// only holiday rules fire.
	Holidays []string `json:"holidays"`
}

// SetDefaults applies sane defaults.
func (c *RunConfig) SetDefaults() {
	if c.Timestep == 0 {
		c.Timestep = 1
	}
	if c.StartDOW == "" {
		c.StartDOW = "sunday"
	}
}

// Validate checks every field.
func (c RunConfig) Validate() error {
	_, err := c.ExpandOptions()
	return err
}

// ExpandOptions converts the section into engine expansion options.
func (c RunConfig) ExpandOptions() (schedule.ExpandOptions, error) {
	opts := schedule.ExpandOptions{
		Timestep: c.Timestep,
		LeapYear: c.LeapYear,
	}
	dow, err := caldate.ParseDOW(c.StartDOW)
	if err != nil {
		return opts, fmt.Errorf("run.start_dow: %w", err)
	}
	opts.StartDOW = dow
	for _, h := range c.Holidays {
		d, err := parseMonthDay(h, c.LeapYear)
		if err != nil {
			return opts, fmt.Errorf("run.holidays: %w", err)
		}
		opts.Holidays = append(opts.Holidays, d)
	}
	return opts, nil
}

func parseMonthDay(s string, leapYear bool) (caldate.Date, error) {
	parts := strings.Split(s, "/")
	if len(parts) != 2 {
		return caldate.Date{}, fmt.Errorf("date %q must be month/day", s)
	}
	month, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return caldate.Date{}, fmt.Errorf("date %q: %w", s, err)
	}
	day, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return caldate.Date{}, fmt.Errorf("date %q: %w", s, err)
	}
	return caldate.NewLeap(month, day, leapYear)
}
