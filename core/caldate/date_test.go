package caldate

import "testing"

func TestParseDOW(t *testing.T) {
	d, err := ParseDOW("Sunday")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if d != Sunday {
		t.Errorf("expected Sunday, got %v", d)
	}
	d, err = ParseDOW("friday")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if d != Friday {
		t.Errorf("expected Friday, got %v", d)
	}
	if _, err := ParseDOW("someday"); err == nil {
		t.Error("expected error for unknown day name")
	}
}

func TestDOWNextWraps(t *testing.T) {
	d := Friday
	if d.Next() != Saturday {
		t.Errorf("expected Saturday after Friday, got %v", d.Next())
	}
	if Saturday.Next() != Sunday {
		t.Errorf("expected Sunday after Saturday, got %v", Saturday.Next())
	}
	d = Sunday
	for i := 0; i < 7; i++ {
		d = d.Next()
	}
	if d != Sunday {
		t.Errorf("expected a 7-day cycle back to Sunday, got %v", d)
	}
}

func TestNewValidation(t *testing.T) {
	if _, err := New(2, 29); err == nil {
		t.Error("Feb 29 must be rejected in the non-leap calendar")
	}
	if _, err := NewLeap(2, 29, true); err != nil {
		t.Errorf("Feb 29 must be valid in the leap calendar: %v", err)
	}
	if _, err := New(13, 1); err == nil {
		t.Error("month 13 must be rejected")
	}
	if _, err := New(4, 31); err == nil {
		t.Error("Apr 31 must be rejected")
	}
}

func TestDOY(t *testing.T) {
	cases := []struct {
		month, day int
		leap       bool
		want       int
	}{
		{1, 1, false, 1},
		{2, 28, false, 59},
		{3, 1, false, 60},
		{12, 31, false, 365},
		{2, 29, true, 60},
		{3, 1, true, 61},
		{12, 31, true, 366},
	}
	for _, c := range cases {
		d, err := NewLeap(c.month, c.day, c.leap)
		if err != nil {
			t.Fatalf("%d/%d leap=%v: %v", c.month, c.day, c.leap, err)
		}
		if got := d.DOY(); got != c.want {
			t.Errorf("%s leap=%v: doy %d, want %d", d, c.leap, got, c.want)
		}
	}
}

func TestDOYCanonical(t *testing.T) {
	// Feb 29 and Mar 1 share canonical doy 60.
	feb29, _ := NewLeap(2, 29, true)
	if got := feb29.DOYCanonical(); got != 60 {
		t.Errorf("Feb 29 canonical doy %d, want 60", got)
	}
	mar1Leap, _ := NewLeap(3, 1, true)
	if got := mar1Leap.DOYCanonical(); got != 60 {
		t.Errorf("leap Mar 1 canonical doy %d, want 60", got)
	}
	mar1 := MustNew(3, 1)
	if got := mar1.DOYCanonical(); got != 60 {
		t.Errorf("Mar 1 canonical doy %d, want 60", got)
	}
	dec31Leap, _ := NewLeap(12, 31, true)
	if got := dec31Leap.DOYCanonical(); got != 365 {
		t.Errorf("leap Dec 31 canonical doy %d, want 365", got)
	}
}

func TestFromDOYRoundTrip(t *testing.T) {
	for doy := 1; doy <= DaysInYear; doy++ {
		d := FromDOY(doy, false)
		if got := d.DOY(); got != doy {
			t.Fatalf("doy %d round-tripped to %d (%s)", doy, got, d)
		}
	}
	for doy := 1; doy <= DaysInYear+1; doy++ {
		d := FromDOY(doy, true)
		if got := d.DOY(); got != doy {
			t.Fatalf("leap doy %d round-tripped to %d (%s)", doy, got, d)
		}
	}
}

func TestFromDOYPanicsOutOfRange(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic for doy 366 in the non-leap calendar")
		}
	}()
	FromDOY(366, false)
}

func TestInCalendar(t *testing.T) {
	feb29, _ := NewLeap(2, 29, true)
	got := feb29.InCalendar(false)
	if got.Month != 2 || got.Day != 28 {
		t.Errorf("Feb 29 should degrade to Feb 28, got %s", got)
	}
	jul4 := MustNew(7, 4)
	moved := jul4.InCalendar(true)
	if moved.Month != 7 || moved.Day != 4 || !moved.LeapYear {
		t.Errorf("Jul 4 should carry over unchanged, got %+v", moved)
	}
}

func TestDateOrdering(t *testing.T) {
	a := MustNew(6, 1)
	b := MustNew(6, 15)
	if !a.Before(b) || b.Before(a) {
		t.Error("Jun 1 must sort before Jun 15")
	}
	if !b.After(a) {
		t.Error("Jun 15 must sort after Jun 1")
	}
	leap, _ := NewLeap(6, 1, true)
	if !a.Equal(leap) {
		t.Error("equality must ignore the leap flag")
	}
}

func TestDateString(t *testing.T) {
	if got := MustNew(1, 1).String(); got != "1 Jan" {
		t.Errorf("got %q", got)
	}
	if got := MustNew(12, 31).String(); got != "31 Dec" {
		t.Errorf("got %q", got)
	}
}
