// Copyright 2021 Silvio Böhler
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package date implements day-granular proleptic Gregorian dates.
package date

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/sboehler/tight/lib/common/compare"
)

// The range of representable years.
const (
	MinYear = 0
	MaxYear = 9999
)

const secondsPerDay = 24 * 60 * 60

// Date is a calendar date without a time of day. The zero value is not a
// valid date; valid dates are created by New, Parse or date arithmetic.
type Date struct {
	year  int
	month time.Month
	day   int
}

// CalendarError is returned when date components do not denote a real
// date, or when arithmetic leaves the representable range.
type CalendarError struct {
	Year  int
	Month int
	Day   int
	Msg   string
}

func (e *CalendarError) Error() string {
	return fmt.Sprintf("invalid date %04d-%02d-%02d: %s", e.Year, e.Month, e.Day, e.Msg)
}

// New creates a new date. It fails if the components are out of range.
func New(year int, month time.Month, day int) (Date, error) {
	if year < MinYear || year > MaxYear {
		return Date{}, &CalendarError{year, int(month), day, fmt.Sprintf("year must be between %d and %d", MinYear, MaxYear)}
	}
	if month < time.January || month > time.December {
		return Date{}, &CalendarError{year, int(month), day, "month must be between 1 and 12"}
	}
	if day < 1 || day > DaysIn(year, month) {
		return Date{}, &CalendarError{year, int(month), day, fmt.Sprintf("day must be between 1 and %d", DaysIn(year, month))}
	}
	return Date{year, month, day}, nil
}

// MustNew is like New, but panics on invalid input.
func MustNew(year int, month time.Month, day int) Date {
	d, err := New(year, month, day)
	if err != nil {
		panic(err)
	}
	return d
}

// IsLeap reports whether year is a leap year.
func IsLeap(year int) bool {
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}

// DaysIn returns the number of days in the given month.
func DaysIn(year int, month time.Month) int {
	switch month {
	case time.April, time.June, time.September, time.November:
		return 30
	case time.February:
		if IsLeap(year) {
			return 29
		}
		return 28
	}
	return 31
}

// Today returns today's date in the local time zone.
func Today() Date {
	y, m, d := time.Now().Local().Date()
	return MustNew(y, m, d)
}

// Year returns the year.
func (d Date) Year() int { return d.year }

// Month returns the month.
func (d Date) Month() time.Month { return d.month }

// Day returns the day of the month.
func (d Date) Day() int { return d.day }

// IsZero reports whether d is the zero value.
func (d Date) IsZero() bool { return d == Date{} }

func (d Date) time() time.Time {
	return time.Date(d.year, d.month, d.day, 0, 0, 0, 0, time.UTC)
}

// Weekday returns the day of the week.
func (d Date) Weekday() time.Weekday { return d.time().Weekday() }

// Ordinal returns the number of days since 1970-01-01. Dates before the
// epoch have negative ordinals.
func (d Date) Ordinal() int64 {
	return d.time().Unix() / secondsPerDay
}

// FromOrdinal is the inverse of Date.Ordinal.
func FromOrdinal(n int64) (Date, error) {
	y, m, dd := time.Unix(n*secondsPerDay, 0).UTC().Date()
	return New(y, m, dd)
}

// Compare compares two dates.
func (d Date) Compare(o Date) compare.Order {
	switch {
	case d == o:
		return compare.Equal
	case d.year < o.year,
		d.year == o.year && d.month < o.month,
		d.year == o.year && d.month == o.month && d.day < o.day:
		return compare.Smaller
	}
	return compare.Greater
}

// Before reports whether d is before o.
func (d Date) Before(o Date) bool { return d.Compare(o) == compare.Smaller }

// After reports whether d is after o.
func (d Date) After(o Date) bool { return d.Compare(o) == compare.Greater }

// DaysUntil returns the number of days from d to o.
func (d Date) DaysUntil(o Date) int64 { return o.Ordinal() - d.Ordinal() }

// AddDays adds n days.
func (d Date) AddDays(n int) (Date, error) {
	res, err := FromOrdinal(d.Ordinal() + int64(n))
	if err != nil {
		return Date{}, fmt.Errorf("%s + %d days: %w", d, n, err)
	}
	return res, nil
}

// AddWeeks adds n weeks.
func (d Date) AddWeeks(n int) (Date, error) {
	return d.AddDays(7 * n)
}

// AddMonths adds n months. If the day does not exist in the resulting
// month, it is clamped to the last day of that month.
func (d Date) AddMonths(n int) (Date, error) {
	total := d.year*12 + int(d.month-1) + n
	if total < MinYear*12 || total >= (MaxYear+1)*12 {
		return Date{}, &CalendarError{d.year, int(d.month), d.day, fmt.Sprintf("adding %d months leaves the supported range", n)}
	}
	return clamped(total/12, time.Month(total%12+1), d.day), nil
}

// AddYears adds n years, clamping February 29 to February 28 in
// non-leap years.
func (d Date) AddYears(n int) (Date, error) {
	y := d.year + n
	if y < MinYear || y > MaxYear {
		return Date{}, &CalendarError{d.year, int(d.month), d.day, fmt.Sprintf("adding %d years leaves the supported range", n)}
	}
	return clamped(y, d.month, d.day), nil
}

// Add adds the given duration.
func (d Date) Add(dur Duration) (Date, error) {
	switch dur.Unit {
	case Days:
		return d.AddDays(dur.N)
	case Weeks:
		return d.AddWeeks(dur.N)
	case Months:
		return d.AddMonths(dur.N)
	case Years:
		return d.AddYears(dur.N)
	}
	return Date{}, fmt.Errorf("invalid duration unit %d", dur.Unit)
}

func clamped(year int, month time.Month, day int) Date {
	if l := DaysIn(year, month); day > l {
		day = l
	}
	return Date{year, month, day}
}

// String formats the date as YYYY-MM-DD.
func (d Date) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.year, int(d.month), d.day)
}

// Parse parses a date in the format YYYY-MM-DD. Single-digit months and
// days are accepted.
func Parse(s string) (Date, error) {
	parts := strings.Split(strings.TrimSpace(s), "-")
	if len(parts) != 3 {
		return Date{}, fmt.Errorf("invalid date %q, want format YYYY-MM-DD", s)
	}
	var ns [3]int
	for i, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil {
			return Date{}, fmt.Errorf("invalid date %q, want format YYYY-MM-DD: %w", s, err)
		}
		ns[i] = n
	}
	return New(ns[0], time.Month(ns[1]), ns[2])
}

// MustParse is like Parse, but panics on error.
func MustParse(s string) Date {
	d, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return d
}

// MarshalYAML implements yaml.Marshaler.
func (d Date) MarshalYAML() (interface{}, error) {
	return d.String(), nil
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (d *Date) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var s string
	if err := unmarshal(&s); err != nil {
		return err
	}
	res, err := Parse(s)
	if err != nil {
		return err
	}
	*d = res
	return nil
}
