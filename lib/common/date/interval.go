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

package date

import (
	"fmt"
	"time"
)

// Interval is a reporting interval.
type Interval int

const (
	// Daily is a daily interval.
	Daily Interval = iota
	// Weekly is a weekly interval.
	Weekly
	// Monthly is a monthly interval.
	Monthly
	// Yearly is a yearly interval.
	Yearly
)

// Intervals lists all intervals, shortest first.
var Intervals = []Interval{Daily, Weekly, Monthly, Yearly}

func (p Interval) String() string {
	switch p {
	case Daily:
		return "daily"
	case Weekly:
		return "weekly"
	case Monthly:
		return "monthly"
	case Yearly:
		return "yearly"
	}
	return ""
}

// Duration returns the length of one interval.
func (p Interval) Duration() Duration {
	switch p {
	case Weekly:
		return WeeksOf(1)
	case Monthly:
		return MonthsOf(1)
	case Yearly:
		return YearsOf(1)
	}
	return DaysOf(1)
}

// StartOf returns the first date in the given interval which
// contains the receiver. Weeks start on Monday.
func StartOf(d Date, p Interval) Date {
	switch p {
	case Weekly:
		x := (int(d.Weekday()) + 6) % 7
		if res, err := d.AddDays(-x); err == nil {
			return res
		}
		return MustNew(MinYear, time.January, 1)
	case Monthly:
		return Date{d.year, d.month, 1}
	case Yearly:
		return Date{d.year, time.January, 1}
	}
	return d
}

// EndOf returns the last date in the given interval that contains
// the receiver.
func EndOf(d Date, p Interval) Date {
	switch p {
	case Weekly:
		x := (7 - int(d.Weekday())) % 7
		if res, err := d.AddDays(x); err == nil {
			return res
		}
		return MustNew(MaxYear, time.December, 31)
	case Monthly:
		return Date{d.year, d.month, DaysIn(d.year, d.month)}
	case Yearly:
		return Date{d.year, time.December, 31}
	}
	return d
}

// Period is a half-open range of dates [Start, End).
type Period struct {
	Start, End Date
}

// Days returns the number of days in the period.
func (p Period) Days() int64 {
	return p.Start.DaysUntil(p.End)
}

// Contains reports whether d lies in the period.
func (p Period) Contains(d Date) bool {
	return !d.Before(p.Start) && d.Before(p.End)
}

func (p Period) String() string {
	return fmt.Sprintf("[%s, %s)", p.Start, p.End)
}

// Window returns the reporting period of the given interval which ends with
// the day d (inclusive). If aligned is set, the period is the calendar
// interval containing d instead, e.g. the whole month for Monthly.
func Window(d Date, p Interval, aligned bool) (Period, error) {
	if aligned {
		end, err := EndOf(d, p).AddDays(1)
		if err != nil {
			return Period{}, err
		}
		return Period{StartOf(d, p), end}, nil
	}
	end, err := d.AddDays(1)
	if err != nil {
		return Period{}, err
	}
	dur := p.Duration()
	dur.N = -dur.N
	start, err := end.Add(dur)
	if err != nil {
		return Period{}, err
	}
	return Period{start, end}, nil
}
