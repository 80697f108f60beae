// Package date provides a day-granularity calendar type and the schedule
// arithmetic plan execution depends on.
package date

import (
	"encoding/json"
	"fmt"
	"time"
)

const readFormat = "2006-1-2" // permissive read format, allows single-digit month/day

// Format is the canonical ISO-8601 layout used when rendering dates.
const Format = "2006-01-02"

// Date represents a calendar date with day granularity. It is an immutable
// value type and comparable with ==.
type Date struct {
	y int
	m time.Month
	d int
}

// New returns a normalized Date for the given year, month and day.
// Out-of-range values carry over in time.Date fashion (February 30 becomes
// March 1 or 2); schedule arithmetic that must clamp instead uses AddMonths.
func New(year int, month time.Month, day int) Date {
	d := Date{year, month, day}
	d.y, d.m, d.d = d.time().Date()
	return d
}

// Today returns the current date.
func Today() Date { return New(time.Now().Date()) }

// time returns the canonical representation of the day, midnight UTC.
func (d Date) time() time.Time { return time.Date(d.y, d.m, d.d, 0, 0, 0, 0, time.UTC) }

// Time returns the date at midnight UTC for interop with time-based APIs.
func (d Date) Time() time.Time { return d.time() }

// Year returns the year.
func (d Date) Year() int { return d.y }

// Month returns the month.
func (d Date) Month() time.Month { return d.m }

// Day returns the day of the month.
func (d Date) Day() int { return d.d }

// IsZero reports whether d is the zero Date.
func (d Date) IsZero() bool { return d == Date{} }

// Before reports whether d is before x.
func (d Date) Before(x Date) bool { return d.time().Before(x.time()) }

// After reports whether d is after x.
func (d Date) After(x Date) bool { return d.time().After(x.time()) }

// Equal reports whether d and x are the same day.
func (d Date) Equal(x Date) bool { return d == x }

// OnOrBefore reports whether d is earlier than or equal to x. A plan is due
// when its next execution date is on or before the batch date.
func (d Date) OnOrBefore(x Date) bool { return !d.After(x) }

// AddDays returns the date n days after d; n may be negative.
func (d Date) AddDays(n int) Date { return New(d.y, d.m, d.d+n) }

// AddWeeks returns the date exactly 7*n days after d.
func (d Date) AddWeeks(n int) Date { return d.AddDays(7 * n) }

// AddMonths returns the date n calendar months after d, preserving the day
// of the month and clamping to the last valid day when the target month is
// shorter: January 31 plus one month is February 29 in a leap year and
// February 28 otherwise. Negative n moves backwards and the year rolls in
// either direction.
func (d Date) AddMonths(n int) Date {
	months := d.y*12 + int(d.m) - 1 + n
	y, m := months/12, months%12
	if m < 0 {
		m += 12
		y--
	}
	day := d.d
	if last := daysIn(y, time.Month(m+1)); day > last {
		day = last
	}
	return Date{y, time.Month(m + 1), day}
}

// AddQuarters returns the date 3*n months after d, with AddMonths clamping.
func (d Date) AddQuarters(n int) Date { return d.AddMonths(3 * n) }

// IsLeap reports whether year is a leap year: divisible by 4 and not by
// 100, unless divisible by 400.
func IsLeap(year int) bool {
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}

func daysIn(year int, month time.Month) int {
	switch month {
	case time.April, time.June, time.September, time.November:
		return 30
	case time.February:
		if IsLeap(year) {
			return 29
		}
		return 28
	default:
		return 31
	}
}

// String formats the date as YYYY-MM-DD.
func (d Date) String() string { return d.time().Format(Format) }

// Layout renders the date with an arbitrary time layout.
func (d Date) Layout(layout string) string { return d.time().Format(layout) }

// Parse parses a date. Reads are lenient and accept single-digit month and
// day, like "2024-1-5".
func Parse(str string) (Date, error) {
	on, err := time.Parse(readFormat, str)
	if err != nil {
		return Date{}, fmt.Errorf("invalid date %q want format %q: %w", str, Format, err)
	}
	return New(on.Date()), nil
}

// MustParse is like Parse but panics on error.
func MustParse(str string) Date {
	d, err := Parse(str)
	if err != nil {
		panic(err.Error())
	}
	return d
}

// MarshalJSON encodes the date as a YYYY-MM-DD JSON string.
func (d Date) MarshalJSON() ([]byte, error) { return json.Marshal(d.String()) }

// UnmarshalJSON decodes the date from a JSON string.
func (d *Date) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return err
	}
	parsed, err := Parse(str)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// MarshalText lets Date serve as a TOML and text value.
func (d Date) MarshalText() ([]byte, error) { return []byte(d.String()), nil }

// UnmarshalText parses the date from its text form.
func (d *Date) UnmarshalText(text []byte) error {
	parsed, err := Parse(string(text))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

var _ json.Marshaler = (*Date)(nil)
var _ json.Unmarshaler = (*Date)(nil)
