// Package caldate provides year-agnostic calendar dates and day-of-week
// arithmetic for annual schedule resolution.
package caldate

import (
	"fmt"
	"strings"
)

// DaysInYear is the number of days in a non-leap year. Leap years have one more.
const DaysInYear = 365

var monthDays = [12]int{31, 28, 31, 30, 31, 30, 31, 31, 30, 31, 30, 31}
var monthDaysLeap = [12]int{31, 29, 31, 30, 31, 30, 31, 31, 30, 31, 30, 31}

var monthNames = [12]string{
	"Jan", "Feb", "Mar", "Apr", "May", "Jun",
	"Jul", "Aug", "Sep", "Oct", "Nov", "Dec",
}

// DOW identifies a day of the week. Sunday is 1 and Saturday is 7,
// matching the EnergyPlus week convention.
type DOW int

const (
	Sunday DOW = iota + 1
	Monday
	Tuesday
	Wednesday
	Thursday
	Friday
	Saturday
)

var dowNames = [7]string{
	"Sunday", "Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday",
}

// ParseDOW converts a day name like "sunday" into a DOW. Matching is
// case-insensitive.
func ParseDOW(name string) (DOW, error) {
	for i, n := range dowNames {
		if strings.EqualFold(name, n) {
			return DOW(i + 1), nil
		}
	}
	return 0, fmt.Errorf("unknown day of week %q", name)
}

// Next returns the following day of the week, wrapping Saturday to Sunday.
func (d DOW) Next() DOW {
	if d >= Saturday {
		return Sunday
	}
	return d + 1
}

func (d DOW) String() string {
	if d < Sunday || d > Saturday {
		return fmt.Sprintf("DOW(%d)", int(d))
	}
	return dowNames[d-1]
}

// Index returns the zero-based position of the day within a Sunday-first week.
func (d DOW) Index() int { return int(d) - 1 }

// Date is a month/day pair without a year. The LeapYear flag selects the
// calendar used for day-of-year arithmetic, so Feb 29 is only representable
// when it is set.
type Date struct {
	Month    int
	Day      int
	LeapYear bool
}

// New validates a month/day pair in the non-leap calendar.
func New(month, day int) (Date, error) {
	return NewLeap(month, day, false)
}

// NewLeap validates a month/day pair against the requested calendar.
func NewLeap(month, day int, leapYear bool) (Date, error) {
	if month < 1 || month > 12 {
		return Date{}, fmt.Errorf("month must be between 1 and 12, got %d", month)
	}
	days := monthDays[month-1]
	if leapYear {
		days = monthDaysLeap[month-1]
	}
	if day < 1 || day > days {
		return Date{}, fmt.Errorf("day must be between 1 and %d for %s, got %d",
			days, monthNames[month-1], day)
	}
	return Date{Month: month, Day: day, LeapYear: leapYear}, nil
}

// MustNew is like New but panics on an invalid month/day pair. It is intended
// for package-level constants and tests.
func MustNew(month, day int) Date {
	d, err := New(month, day)
	if err != nil {
		panic(err)
	}
	return d
}

// FromDOY returns the date for a 1-based day of the year in the requested
// calendar. It panics when doy is outside the year, which always indicates a
// caller bug.
func FromDOY(doy int, leapYear bool) Date {
	last := DaysInYear
	months := &monthDays
	if leapYear {
		last = DaysInYear + 1
		months = &monthDaysLeap
	}
	if doy < 1 || doy > last {
		panic(fmt.Sprintf("caldate: day of year %d outside 1..%d", doy, last))
	}
	month := 1
	for doy > months[month-1] {
		doy -= months[month-1]
		month++
	}
	return Date{Month: month, Day: doy, LeapYear: leapYear}
}

// DOY returns the 1-based day of the year in the date's own calendar.
func (d Date) DOY() int {
	months := monthDays
	if d.LeapYear {
		months = monthDaysLeap
	}
	doy := d.Day
	for m := 1; m < d.Month; m++ {
		doy += months[m-1]
	}
	return doy
}

// DOYCanonical returns the day of year under the canonical non-leap calendar,
// so rule date comparisons are independent of the leap flag a date was built
// with. Leap dates from Feb 29 onward shift back by one.
func (d Date) DOYCanonical() int {
	// Feb 29 keeps its leap doy (60), sharing a canonical doy with Mar 1.
	if !d.LeapYear || d.Month < 3 {
		return d.DOY()
	}
	return d.DOY() - 1
}

// InCalendar returns the same month/day re-expressed with the given leap flag.
// Feb 29 degrades to Feb 28 when moving to a non-leap calendar.
func (d Date) InCalendar(leapYear bool) Date {
	if d.LeapYear == leapYear {
		return d
	}
	day := d.Day
	if !leapYear && d.Month == 2 && d.Day == 29 {
		day = 28
	}
	return Date{Month: d.Month, Day: day, LeapYear: leapYear}
}

// Before reports whether d falls earlier in the year than o. Only the
// month/day pair is compared.
func (d Date) Before(o Date) bool {
	if d.Month != o.Month {
		return d.Month < o.Month
	}
	return d.Day < o.Day
}

// After reports whether d falls later in the year than o.
func (d Date) After(o Date) bool { return o.Before(d) }

// Equal reports whether two dates are the same month/day pair.
func (d Date) Equal(o Date) bool { return d.Month == o.Month && d.Day == o.Day }

func (d Date) String() string {
	if d.Month < 1 || d.Month > 12 {
		return fmt.Sprintf("Date(%d, %d)", d.Month, d.Day)
	}
	return fmt.Sprintf("%d %s", d.Day, monthNames[d.Month-1])
}
