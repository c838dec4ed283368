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

// Package ical exports scheduled items as iCalendar all-day events.
package ical

import (
	"fmt"
	"io"
	"time"

	ics "github.com/arran4/golang-ical"
	"github.com/teambition/rrule-go"
	"go.uber.org/zap"

	"github.com/sboehler/tight/lib/common/date"
	"github.com/sboehler/tight/lib/entry"
	"github.com/sboehler/tight/lib/schedule"
)

// ProductID identifies the producer of exported calendars.
const ProductID = "-//sboehler//tight//EN"

// checkCount is the number of occurrences compared when verifying that an
// RRULE reproduces a repetition.
const checkCount = 100

// Exporter converts items to calendar events. A repeated item becomes a
// single recurring event if an RRULE reproduces its occurrences exactly.
// Otherwise, its occurrences before Limit are exported as separate events.
type Exporter struct {
	Limit  date.Date
	Stamp  time.Time
	Logger *zap.Logger
}

// Export writes the items as a calendar to w.
func (e *Exporter) Export(w io.Writer, items []*entry.Item) error {
	cal, err := e.Calendar(items)
	if err != nil {
		return err
	}
	_, err = io.WriteString(w, cal.Serialize())
	return err
}

// Calendar creates a calendar with the events of the items.
func (e *Exporter) Calendar(items []*entry.Item) (*ics.Calendar, error) {
	logger := e.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId(ProductID)
	for _, it := range items {
		rep := it.Repetition()
		if rep == nil {
			if _, err := e.addEvent(cal, it, it.Anchor(), uid(it, -1)); err != nil {
				return nil, err
			}
			continue
		}
		s, ok, err := RRule(rep, it.Anchor())
		if err != nil {
			return nil, fmt.Errorf("item %d: %w", it.ID(), err)
		}
		if ok {
			ev, err := e.addEvent(cal, it, it.Anchor(), uid(it, -1))
			if err != nil {
				return nil, err
			}
			ev.AddProperty(ics.ComponentPropertyRrule, s)
			continue
		}
		logger.Debug("expanding occurrences", zap.Uint64("id", it.ID()), zap.Stringer("repetition", rep))
		var (
			n    int
			errs error
		)
		err = rep.Occurrences(it.Anchor(), e.Limit, func(d date.Date) bool {
			_, errs = e.addEvent(cal, it, d, uid(it, n))
			n++
			return errs == nil
		})
		if err != nil {
			return nil, err
		}
		if errs != nil {
			return nil, errs
		}
	}
	return cal, nil
}

func (e *Exporter) addEvent(cal *ics.Calendar, it *entry.Item, start date.Date, id string) (*ics.VEvent, error) {
	end, err := start.Add(it.Span())
	if err != nil {
		return nil, err
	}
	ev := cal.AddEvent(id)
	ev.SetDtStampTime(e.Stamp)
	ev.SetAllDayStartAt(toTime(start))
	ev.SetAllDayEndAt(toTime(end))
	ev.SetSummary(fmt.Sprintf("%s (%s)", it.Description(), it.Value().StringFixed(2)))
	ev.SetDescription(it.String())
	return ev, nil
}

func uid(it *entry.Item, n int) string {
	if n < 0 {
		return fmt.Sprintf("%d@tight", it.ID())
	}
	return fmt.Sprintf("%d-%d@tight", it.ID(), n)
}

func toTime(d date.Date) time.Time {
	return time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, time.UTC)
}

func fromTime(t time.Time) (date.Date, error) {
	return date.New(t.Year(), t.Month(), t.Day())
}

var weekdays = [...]rrule.Weekday{
	time.Sunday:    rrule.SU,
	time.Monday:    rrule.MO,
	time.Tuesday:   rrule.TU,
	time.Wednesday: rrule.WE,
	time.Thursday:  rrule.TH,
	time.Friday:    rrule.FR,
	time.Saturday:  rrule.SA,
}

// option returns the RRULE options describing the rule, if there are any.
func option(rule schedule.Rule) (rrule.ROption, bool) {
	switch r := rule.(type) {
	case schedule.Daily:
		return rrule.ROption{Freq: rrule.DAILY, Interval: r.Every}, true
	case schedule.Weekly:
		opt := rrule.ROption{Freq: rrule.WEEKLY, Interval: r.Every, Wkst: rrule.MO}
		for _, wd := range r.On {
			opt.Byweekday = append(opt.Byweekday, weekdays[wd])
		}
		return opt, true
	case schedule.MonthlyByDates:
		opt := rrule.ROption{Freq: rrule.MONTHLY, Interval: r.Every}
		if len(r.Days) == 1 && r.Days[0] > 28 {
			// The last of the candidate days which exists in a month.
			for d := 28; d <= r.Days[0]; d++ {
				opt.Bymonthday = append(opt.Bymonthday, d)
			}
			opt.Bysetpos = []int{-1}
			return opt, true
		}
		for _, d := range r.Days {
			if d > 28 {
				return rrule.ROption{}, false
			}
			opt.Bymonthday = append(opt.Bymonthday, d)
		}
		return opt, true
	case schedule.MonthlyByWeekday:
		n := r.Nth
		if n == 5 {
			n = -1
		}
		return rrule.ROption{Freq: rrule.MONTHLY, Interval: r.Every, Byweekday: []rrule.Weekday{weekdays[r.Weekday].Nth(n)}}, true
	case schedule.Yearly:
		return rrule.ROption{Freq: rrule.YEARLY, Interval: r.Every}, true
	}
	return rrule.ROption{}, false
}

// RRule returns an RRULE value which reproduces the occurrences of the
// repetition starting at anchor. It returns false if there is none, for
// example if the anchor is not itself an occurrence of the rule.
func RRule(rep *schedule.Repetition, anchor date.Date) (string, bool, error) {
	opt, ok := option(rep.Rule)
	if !ok {
		return "", false, nil
	}
	switch end := rep.End.(type) {
	case schedule.AfterCount:
		opt.Count = end.Count + 1
	case schedule.Until:
		opt.Until = toTime(end.Date)
	}
	s := opt.RRuleString()
	r, err := rrule.StrToRRule(s)
	if err != nil {
		return "", false, err
	}
	r.DTStart(toTime(anchor))

	var (
		want []date.Date
		got  []date.Date
	)
	limit := date.MustNew(date.MaxYear, time.December, 31)
	if err := rep.Occurrences(anchor, limit, func(d date.Date) bool {
		want = append(want, d)
		return len(want) < checkCount
	}); err != nil {
		// The repetition runs past the calendar range.
		return "", false, nil
	}
	next := r.Iterator()
	for t, ok := next(); ok && len(got) < checkCount; t, ok = next() {
		d, err := fromTime(t)
		if err != nil {
			return "", false, nil
		}
		got = append(got, d)
	}
	if len(got) != len(want) {
		return "", false, nil
	}
	for i := range want {
		if want[i] != got[i] {
			return "", false, nil
		}
	}
	return s, true, nil
}
