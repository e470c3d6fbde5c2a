package domain

import (
	"fmt"
	"strings"
	"time"
)

const dateLayout = "2006-01-02"

// Date is a calendar day with no time-of-day or zone.
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

// DateOf returns the calendar day of t in loc.
func DateOf(t time.Time, loc *time.Location) Date {
	if loc == nil {
		loc = time.UTC
	}
	y, m, d := t.In(loc).Date()
	return Date{Year: y, Month: m, Day: d}
}

// ParseDate parses an ISO calendar day such as 2026-10-15.
func ParseDate(raw string) (Date, error) {
	t, err := time.Parse(dateLayout, strings.TrimSpace(raw))
	if err != nil {
		return Date{}, fmt.Errorf("parse date %q: %w", raw, err)
	}
	return DateOf(t, time.UTC), nil
}

// String renders the day in ISO form.
func (d Date) String() string {
	if d.IsZero() {
		return ""
	}
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, int(d.Month), d.Day)
}

// IsZero reports whether d is unset.
func (d Date) IsZero() bool {
	return d.Year == 0 && d.Month == 0 && d.Day == 0
}

// AddDays returns the day n days after d; year and month boundaries roll over.
func (d Date) AddDays(n int) Date {
	return DateOf(d.midnight(time.UTC).AddDate(0, 0, n), time.UTC)
}

// Before reports whether d is earlier than other.
func (d Date) Before(other Date) bool {
	return d.midnight(time.UTC).Before(other.midnight(time.UTC))
}

// Weekday returns the day of the week of d.
func (d Date) Weekday() time.Weekday {
	return d.midnight(time.UTC).Weekday()
}

// At returns the instant of clock on d in loc.
func (d Date) At(clock TimeOfDay, loc *time.Location) time.Time {
	if loc == nil {
		loc = time.UTC
	}
	return time.Date(d.Year, d.Month, d.Day, clock.Hour, clock.Minute, 0, 0, loc)
}

func (d Date) midnight(loc *time.Location) time.Time {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, loc)
}

// TimeOfDay is a wall-clock hour and minute.
type TimeOfDay struct {
	Hour   int
	Minute int
}

// ParseTimeOfDay parses an HH:MM wall-clock time.
func ParseTimeOfDay(raw string) (TimeOfDay, error) {
	t, err := time.Parse("15:04", strings.TrimSpace(raw))
	if err != nil {
		return TimeOfDay{}, fmt.Errorf("parse time %q: %w", raw, err)
	}
	return TimeOfDay{Hour: t.Hour(), Minute: t.Minute()}, nil
}

// String renders the time as HH:MM.
func (c TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", c.Hour, c.Minute)
}

// Before reports whether c is earlier in the day than other.
func (c TimeOfDay) Before(other TimeOfDay) bool {
	if c.Hour != other.Hour {
		return c.Hour < other.Hour
	}
	return c.Minute < other.Minute
}

// Weekday names a subscription menu day.
type Weekday string

const (
	Monday    Weekday = "monday"
	Tuesday   Weekday = "tuesday"
	Wednesday Weekday = "wednesday"
	Thursday  Weekday = "thursday"
	Friday    Weekday = "friday"
)

// MenuDays lists the subscription menu days in week order.
var MenuDays = []Weekday{Monday, Tuesday, Wednesday, Thursday, Friday}

// WeekdayOf names the weekday of d. Saturday and Sunday have no menu and
// report false.
func WeekdayOf(d Date) (Weekday, bool) {
	switch d.Weekday() {
	case time.Monday:
		return Monday, true
	case time.Tuesday:
		return Tuesday, true
	case time.Wednesday:
		return Wednesday, true
	case time.Thursday:
		return Thursday, true
	case time.Friday:
		return Friday, true
	default:
		return Weekday(strings.ToLower(d.Weekday().String())), false
	}
}

// ParseWeekday normalizes a menu day name.
func ParseWeekday(raw string) (Weekday, bool) {
	day := Weekday(strings.ToLower(strings.TrimSpace(raw)))
	for _, known := range MenuDays {
		if day == known {
			return day, true
		}
	}
	return "", false
}

// Calendar resolves instants against the restaurant's time zone.
type Calendar struct {
	Location *time.Location
}

// LoadCalendar loads the named IANA zone.
func LoadCalendar(zone string) (Calendar, error) {
	zone = strings.TrimSpace(zone)
	if zone == "" {
		return Calendar{Location: time.UTC}, nil
	}
	loc, err := time.LoadLocation(zone)
	if err != nil {
		return Calendar{}, fmt.Errorf("load time zone %q: %w", zone, err)
	}
	return Calendar{Location: loc}, nil
}

func (c Calendar) location() *time.Location {
	if c.Location == nil {
		return time.UTC
	}
	return c.Location
}

// Today returns the restaurant-local calendar day of now.
func (c Calendar) Today(now time.Time) Date {
	return DateOf(now, c.location())
}

// Tomorrow returns the restaurant-local calendar day after now.
func (c Calendar) Tomorrow(now time.Time) Date {
	return c.Today(now).AddDays(1)
}

// ClockOf returns the restaurant-local wall-clock time of now.
func (c Calendar) ClockOf(now time.Time) TimeOfDay {
	local := now.In(c.location())
	return TimeOfDay{Hour: local.Hour(), Minute: local.Minute()}
}

// At returns the instant of clock on d in the restaurant zone.
func (c Calendar) At(d Date, clock TimeOfDay) time.Time {
	return d.At(clock, c.location())
}
