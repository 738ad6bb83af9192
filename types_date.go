package agendah

import (
	"encoding/json"
	"fmt"
	"time"
)

// DateFormat is the fixed-width ISO-8601 format used everywhere a date is
// persisted or compared. Because it is zero padded, lexical ordering of the
// encoded strings matches chronological ordering, and the store relies on it.
const DateFormat = "2006-01-02"

// Date represents a journal date with day-level granularity.
// It is the primary key of an Entry and the owning date of attachments
// and cash items.
type Date struct {
	y int
	m time.Month
	d int
}

// NewDate returns a normalized Date for the given year, month, and day.
// Out-of-range values wrap the usual way (month 13 is January of next year).
func NewDate(year int, month time.Month, day int) Date {
	d := Date{year, month, day}
	d.y, d.m, d.d = d.time().Date()
	return d
}

// Today returns the current date in local time.
func Today() Date { return NewDate(time.Now().Date()) }

// DateOf truncates a time.Time to its calendar date.
func DateOf(t time.Time) Date { return NewDate(t.Date()) }

// Year returns the year of the date.
func (d Date) Year() int { return d.y }

// Month returns the month of the date.
func (d Date) Month() time.Month { return d.m }

// Day returns the day of the month.
func (d Date) Day() int { return d.d }

// Weekday returns the day of the week.
func (d Date) Weekday() time.Weekday { return d.time().Weekday() }

// String formats the date in the fixed ISO form used as storage key.
func (d Date) String() string { return d.time().Format(DateFormat) }

// IsZero returns true if the date is the zero value.
func (d Date) IsZero() bool { return d.y == 0 && d.m == 0 && d.d == 0 }

// time returns the canonical representation of that day (midnight UTC).
func (d Date) time() time.Time { return time.Date(d.y, d.m, d.d, 0, 0, 0, 0, time.UTC) }

// Before reports whether d is strictly before x.
func (d Date) Before(x Date) bool { return d.time().Before(x.time()) }

// After reports whether d is strictly after x.
func (d Date) After(x Date) bool { return d.time().After(x.time()) }

// Add returns a new Date with the given number of days added.
func (d Date) Add(i int) Date { return NewDate(d.y, d.m, d.d+i) }

// ParseDate parses a strict YYYY-MM-DD date as used in storage keys.
func ParseDate(str string) (Date, error) {
	on, err := time.Parse(DateFormat, str)
	if err != nil {
		return Date{}, fmt.Errorf("invalid date %q, want format %q: %w", str, DateFormat, err)
	}
	return NewDate(on.Date()), nil
}

// MustParseDate is like ParseDate but panics on error. Test helper.
func MustParseDate(str string) Date {
	d, err := ParseDate(str)
	if err != nil {
		panic(err.Error())
	}
	return d
}

// UnmarshalJSON decodes a date from its ISO string form.
func (d *Date) UnmarshalJSON(bytes []byte) error {
	var str string
	if err := json.Unmarshal(bytes, &str); err != nil {
		return err
	}
	on, err := ParseDate(str)
	if err != nil {
		return err
	}
	*d = on
	return nil
}

func (d Date) MarshalJSON() ([]byte, error) {
	str := d.String()
	return json.Marshal(&str)
}

var _ json.Marshaler = (*Date)(nil)
var _ json.Unmarshaler = (*Date)(nil)

// Range is a half-open date interval [From, To). All range queries in the
// store and the report builder use this convention.
type Range struct {
	From Date // inclusive
	To   Date // exclusive
}

// MonthRange returns the range covering a whole calendar month.
func MonthRange(year int, month time.Month) Range {
	return Range{From: NewDate(year, month, 1), To: NewDate(year, month+1, 1)}
}

// TrailingWeek returns the 7-day inclusive window ending on the given day,
// expressed as a half-open range [today-6, today+1).
func TrailingWeek(today Date) Range {
	return Range{From: today.Add(-6), To: today.Add(1)}
}

// Contains reports whether day falls inside the range.
func (r Range) Contains(day Date) bool {
	return !day.Before(r.From) && day.Before(r.To)
}

// Last returns the last day inside the range.
func (r Range) Last() Date { return r.To.Add(-1) }

// String renders the range as a period label, e.g. "2025-08-01 → 2025-08-31".
func (r Range) String() string {
	return fmt.Sprintf("%s → %s", r.From, r.Last())
}

// Localized names used on report pages and month titles. The application is
// pt-BR only, like its data (stop words, money format), so the two small
// tables below replace a locale dependency.
var ptMonths = [...]string{
	"janeiro", "fevereiro", "março", "abril", "maio", "junho",
	"julho", "agosto", "setembro", "outubro", "novembro", "dezembro",
}

var ptWeekdays = [...]string{
	"domingo", "segunda-feira", "terça-feira", "quarta-feira",
	"quinta-feira", "sexta-feira", "sábado",
}

// LongLabel renders the date the way day pages title it,
// e.g. "Sexta-feira, 29 de agosto de 2025".
func (d Date) LongLabel() string {
	w := ptWeekdays[d.Weekday()]
	return fmt.Sprintf("%s, %d de %s de %d", capitalize(w), d.d, ptMonths[d.m-1], d.y)
}

// MonthTitle renders a month heading, e.g. "Agosto de 2025".
func MonthTitle(year int, month time.Month) string {
	return fmt.Sprintf("%s de %d", capitalize(ptMonths[month-1]), year)
}

func capitalize(s string) string {
	r := []rune(s)
	if len(r) == 0 {
		return s
	}
	// All month and weekday names start with an ASCII letter.
	if r[0] >= 'a' && r[0] <= 'z' {
		r[0] = r[0] - 'a' + 'A'
	}
	return string(r)
}
