package transaction

import (
	"encoding/json"
	"fmt"
	"time"
)

// Date is a calendar day with no time-of-day. It is exchanged as YYYY-MM-DD.
type Date struct {
	t time.Time
}

// NewDate returns the normalized day for year, month and day.
func NewDate(year int, month time.Month, day int) Date {
	return Date{t: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// DateOf returns the calendar day of t in t's own location.
func DateOf(t time.Time) Date {
	return NewDate(t.Date())
}

// ParseDate accepts YYYY-MM-DD and full RFC 3339 timestamps; for the latter the
// day is taken in the timestamp's own offset.
func ParseDate(s string) (Date, error) {
	if t, err := time.Parse(time.DateOnly, s); err == nil {
		return DateOf(t), nil
	}

	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return Date{}, fmt.Errorf("invalid date %q: expected YYYY-MM-DD", s)
	}

	return DateOf(t), nil
}

func (d Date) Time() time.Time        { return d.t }
func (d Date) Year() int              { return d.t.Year() }
func (d Date) Month() time.Month      { return d.t.Month() }
func (d Date) Day() int               { return d.t.Day() }
func (d Date) IsZero() bool           { return d.t.IsZero() }
func (d Date) Before(x Date) bool     { return d.t.Before(x.t) }
func (d Date) After(x Date) bool      { return d.t.After(x.t) }
func (d Date) Equal(x Date) bool      { return d.t.Equal(x.t) }
func (d Date) AddDays(n int) Date     { return NewDate(d.Year(), d.Month(), d.Day()+n) }
func (d Date) AddMonths(n int) Date   { return NewDate(d.Year(), d.Month()+time.Month(n), d.Day()) }
func (d Date) Compare(x Date) int     { return d.t.Compare(x.t) }
func (d Date) Format(l string) string { return d.t.Format(l) }

func (d Date) String() string {
	if d.IsZero() {
		return ""
	}

	return d.t.Format(time.DateOnly)
}

func (d Date) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

func (d *Date) UnmarshalText(b []byte) error {
	if len(b) == 0 {
		*d = Date{}
		return nil
	}

	parsed, err := ParseDate(string(b))
	if err != nil {
		return err
	}

	*d = parsed

	return nil
}

func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

func (d *Date) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return fmt.Errorf("date must be a string: %w", err)
	}

	return d.UnmarshalText([]byte(s))
}
