package activity

import (
	"errors"
	"fmt"
	"time"
)

var (
	ErrZeroInstant = errors.New("instant is zero")
	ErrInvalidDate = errors.New("invalid civil date")
)

const dateLayout = "2006-01-02"

// Date is a calendar date in the reference timezone, independent of any
// instant's UTC representation.
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

func NewDate(year int, month time.Month, day int) Date {
	return Date{Year: year, Month: month, Day: day}
}

// ParseDate parses a YYYY-MM-DD string. Malformed input is rejected, never
// defaulted.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return Date{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
	}
	return Date{Year: t.Year(), Month: t.Month(), Day: t.Day()}, nil
}

func (d Date) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, d.Month, d.Day)
}

// AddDays returns the date n days after d (n may be negative). Normalization
// is delegated to time.Date so month and year boundaries are handled.
func (d Date) AddDays(n int) Date {
	t := time.Date(d.Year, d.Month, d.Day+n, 0, 0, 0, 0, time.UTC)
	return Date{Year: t.Year(), Month: t.Month(), Day: t.Day()}
}

func (d Date) Before(other Date) bool {
	if d.Year != other.Year {
		return d.Year < other.Year
	}
	if d.Month != other.Month {
		return d.Month < other.Month
	}
	return d.Day < other.Day
}

func (d Date) Weekday() time.Weekday {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, time.UTC).Weekday()
}

// Calendar maps instants to civil dates in a fixed reference timezone offset.
// The offset is injected configuration, not a process-wide constant.
type Calendar struct {
	loc *time.Location
}

func NewCalendar(offset time.Duration) Calendar {
	secs := int(offset / time.Second)
	return Calendar{loc: time.FixedZone("ref", secs)}
}

// DateOf returns the civil date of an instant in the reference timezone.
// The zero instant is rejected rather than bucketed at the epoch.
func (c Calendar) DateOf(instant time.Time) (Date, error) {
	if instant.IsZero() {
		return Date{}, ErrZeroInstant
	}
	local := instant.In(c.loc)
	return Date{Year: local.Year(), Month: local.Month(), Day: local.Day()}, nil
}

// Midnight returns the absolute instant of 00:00:00 local time on the given
// date. It is the exact inverse of DateOf on well-formed input:
// DateOf(Midnight(d)) == d for all valid d.
func (c Calendar) Midnight(d Date) (time.Time, error) {
	t := time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, c.loc)
	// time.Date normalizes out-of-range components (Feb 30 becomes Mar 2);
	// a round-trip mismatch means the input was not a real date.
	if t.Year() != d.Year || t.Month() != d.Month || t.Day() != d.Day {
		return time.Time{}, fmt.Errorf("%w: %s", ErrInvalidDate, d)
	}
	return t, nil
}

// Today returns the civil date of the given instant, panicking on a zero
// instant. Callers pass time.Now() or a test clock.
func (c Calendar) Today(now time.Time) Date {
	d, err := c.DateOf(now)
	if err != nil {
		panic(err)
	}
	return d
}
