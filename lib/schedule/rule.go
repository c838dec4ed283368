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

// Package schedule implements recurrence rules and repetitions.
package schedule

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/sboehler/tight/lib/common/date"
)

// Rule computes the occurrence following a given date. Next always
// returns a date strictly after its argument.
type Rule interface {
	Next(date.Date) (date.Date, error)
	Validate() error
	fmt.Stringer

	rule()
}

// InvalidScheduleError is returned for recurrence rules or repetitions
// with invalid parameters.
type InvalidScheduleError struct {
	Msg string
}

func (e *InvalidScheduleError) Error() string {
	return "invalid schedule: " + e.Msg
}

func invalidf(format string, args ...interface{}) error {
	return &InvalidScheduleError{fmt.Sprintf(format, args...)}
}

func validateEvery(n int) error {
	if n < 1 {
		return invalidf("interval must be positive, got %d", n)
	}
	return nil
}

// Daily repeats every N days.
type Daily struct {
	Every int
}

var _ Rule = Daily{}

func (Daily) rule() {}

// Validate implements Rule.
func (r Daily) Validate() error {
	return validateEvery(r.Every)
}

// Next implements Rule.
func (r Daily) Next(d date.Date) (date.Date, error) {
	if err := r.Validate(); err != nil {
		return date.Date{}, err
	}
	return d.AddDays(r.Every)
}

func (r Daily) String() string {
	if r.Every == 1 {
		return "daily"
	}
	return fmt.Sprintf("every %d days", r.Every)
}

// Weekly repeats on the given weekdays of every Nth week. Weeks start on
// Monday.
type Weekly struct {
	Every int
	On    []time.Weekday
}

var _ Rule = Weekly{}

func (Weekly) rule() {}

// Validate implements Rule.
func (r Weekly) Validate() error {
	if err := validateEvery(r.Every); err != nil {
		return err
	}
	if len(r.On) == 0 {
		return invalidf("weekly rule without weekdays")
	}
	for _, wd := range r.On {
		if wd < time.Sunday || wd > time.Saturday {
			return invalidf("invalid weekday %d", wd)
		}
	}
	return nil
}

func (r Weekly) has(wd time.Weekday) bool {
	for _, w := range r.On {
		if w == wd {
			return true
		}
	}
	return false
}

// Next implements Rule.
func (r Weekly) Next(d date.Date) (date.Date, error) {
	if err := r.Validate(); err != nil {
		return date.Date{}, err
	}
	offset := weekOffset(d.Weekday())
	for i := 1; offset+i < 7; i++ {
		if r.has((d.Weekday() + time.Weekday(i)) % 7) {
			return d.AddDays(i)
		}
	}
	monday, err := d.AddDays(-offset)
	if err != nil {
		return date.Date{}, err
	}
	if monday, err = monday.AddWeeks(r.Every); err != nil {
		return date.Date{}, err
	}
	for i := 0; i < 7; i++ {
		if r.has((time.Monday + time.Weekday(i)) % 7) {
			return monday.AddDays(i)
		}
	}
	panic("unreachable: validated weekly rule without weekdays")
}

func (r Weekly) String() string {
	var b strings.Builder
	if r.Every == 1 {
		b.WriteString("weekly")
	} else {
		fmt.Fprintf(&b, "every %d weeks", r.Every)
	}
	b.WriteString(" on ")
	for i, wd := range sortedWeekdays(r.On) {
		if i > 0 {
			b.WriteString(",")
		}
		b.WriteString(weekdayName(wd))
	}
	return b.String()
}

// MonthlyByDates repeats on the given days of every Nth month. Days
// beyond the end of a month fall on its last day.
type MonthlyByDates struct {
	Every int
	Days  []int
}

var _ Rule = MonthlyByDates{}

func (MonthlyByDates) rule() {}

// Validate implements Rule.
func (r MonthlyByDates) Validate() error {
	if err := validateEvery(r.Every); err != nil {
		return err
	}
	if len(r.Days) == 0 {
		return invalidf("monthly rule without days")
	}
	for _, day := range r.Days {
		if day < 1 || day > 31 {
			return invalidf("invalid day of month %d", day)
		}
	}
	return nil
}

// firstAfter returns the first of the rule's days in the given month which
// is after day.
func (r MonthlyByDates) firstAfter(year int, month time.Month, day int) (int, bool) {
	for _, d := range sortedInts(r.Days) {
		if l := date.DaysIn(year, month); d > l {
			d = l
		}
		if d > day {
			return d, true
		}
	}
	return 0, false
}

// Next implements Rule.
func (r MonthlyByDates) Next(d date.Date) (date.Date, error) {
	if err := r.Validate(); err != nil {
		return date.Date{}, err
	}
	first, err := date.New(d.Year(), d.Month(), 1)
	if err != nil {
		return date.Date{}, err
	}
	if day, ok := r.firstAfter(d.Year(), d.Month(), d.Day()); ok {
		return date.New(d.Year(), d.Month(), day)
	}
	if first, err = first.AddMonths(r.Every); err != nil {
		return date.Date{}, err
	}
	day, _ := r.firstAfter(first.Year(), first.Month(), 0)
	return date.New(first.Year(), first.Month(), day)
}

func (r MonthlyByDates) String() string {
	var b strings.Builder
	if r.Every == 1 {
		b.WriteString("monthly")
	} else {
		fmt.Fprintf(&b, "every %d months", r.Every)
	}
	b.WriteString(" on the ")
	for i, day := range sortedInts(r.Days) {
		if i > 0 {
			b.WriteString(",")
		}
		b.WriteString(strconv.Itoa(day))
		b.WriteString(daySuffix(day))
	}
	return b.String()
}

// MonthlyByWeekday repeats on the Nth given weekday of every Nth month.
// Nth ranges from 1 to 5; if a month has fewer occurrences of the weekday,
// its last one is used.
type MonthlyByWeekday struct {
	Every   int
	Nth     int
	Weekday time.Weekday
}

var _ Rule = MonthlyByWeekday{}

func (MonthlyByWeekday) rule() {}

// Validate implements Rule.
func (r MonthlyByWeekday) Validate() error {
	if err := validateEvery(r.Every); err != nil {
		return err
	}
	if r.Nth < 1 || r.Nth > 5 {
		return invalidf("occurrence must be between 1 and 5, got %d", r.Nth)
	}
	if r.Weekday < time.Sunday || r.Weekday > time.Saturday {
		return invalidf("invalid weekday %d", r.Weekday)
	}
	return nil
}

// dayIn returns the day of the rule's occurrence in the month starting
// with first.
func (r MonthlyByWeekday) dayIn(first date.Date) int {
	day := 1 + int((r.Weekday-first.Weekday()+7)%7) + 7*(r.Nth-1)
	for day > date.DaysIn(first.Year(), first.Month()) {
		day -= 7
	}
	return day
}

// Next implements Rule.
func (r MonthlyByWeekday) Next(d date.Date) (date.Date, error) {
	if err := r.Validate(); err != nil {
		return date.Date{}, err
	}
	first, err := date.New(d.Year(), d.Month(), 1)
	if err != nil {
		return date.Date{}, err
	}
	if day := r.dayIn(first); day > d.Day() {
		return date.New(d.Year(), d.Month(), day)
	}
	if first, err = first.AddMonths(r.Every); err != nil {
		return date.Date{}, err
	}
	return date.New(first.Year(), first.Month(), r.dayIn(first))
}

func (r MonthlyByWeekday) String() string {
	var b strings.Builder
	if r.Every == 1 {
		b.WriteString("monthly")
	} else {
		fmt.Fprintf(&b, "every %d months", r.Every)
	}
	fmt.Fprintf(&b, " on the %s %s", ordinalName(r.Nth), weekdayName(r.Weekday))
	return b.String()
}

// Yearly repeats every N years on the same day. February 29 falls on
// February 28 in non-leap years.
type Yearly struct {
	Every int
}

var _ Rule = Yearly{}

func (Yearly) rule() {}

// Validate implements Rule.
func (r Yearly) Validate() error {
	return validateEvery(r.Every)
}

// Next implements Rule.
func (r Yearly) Next(d date.Date) (date.Date, error) {
	if err := r.Validate(); err != nil {
		return date.Date{}, err
	}
	return d.AddYears(r.Every)
}

func (r Yearly) String() string {
	if r.Every == 1 {
		return "yearly"
	}
	return fmt.Sprintf("every %d years", r.Every)
}

// weekOffset returns the position of wd in a week starting on Monday.
func weekOffset(wd time.Weekday) int {
	return (int(wd) + 6) % 7
}

func sortedWeekdays(wds []time.Weekday) []time.Weekday {
	res := append([]time.Weekday(nil), wds...)
	sort.Slice(res, func(i, j int) bool { return weekOffset(res[i]) < weekOffset(res[j]) })
	return res
}

func sortedInts(ns []int) []int {
	res := append([]int(nil), ns...)
	sort.Ints(res)
	return res
}

func daySuffix(day int) string {
	switch day {
	case 1, 21, 31:
		return "st"
	case 2, 22:
		return "nd"
	case 3, 23:
		return "rd"
	}
	return "th"
}

var ordinals = []string{"first", "second", "third", "fourth", "last"}

func ordinalName(n int) string {
	if n < 1 || n > len(ordinals) {
		return strconv.Itoa(n)
	}
	return ordinals[n-1]
}

func weekdayName(wd time.Weekday) string {
	return strings.ToLower(wd.String()[:3])
}
