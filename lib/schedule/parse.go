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

package schedule

import (
	"fmt"
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/sboehler/tight/lib/common/date"
)

var shorthands = map[string]date.Duration{
	"daily":       date.DaysOf(1),
	"weekly":      date.WeeksOf(1),
	"fortnightly": date.WeeksOf(2),
	"monthly":     date.MonthsOf(1),
	"quarterly":   date.MonthsOf(3),
	"yearly":      date.YearsOf(1),
	"annually":    date.YearsOf(1),
}

// ParseRule parses a recurrence rule such as "daily", "every 3 days",
// "every 2 weeks on mon,fri", "monthly on the 1st,15th", "quarterly on the
// last friday" or "yearly". Weekly and monthly rules without an explicit
// "on" clause repeat on the weekday or day of month of anchor.
func ParseRule(s string, anchor date.Date) (Rule, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	head, tail, hasOn := strings.Cut(s, " on ")
	interval, err := parseInterval(head)
	if err != nil {
		return nil, fmt.Errorf("couldn't parse schedule %q: %w", s, err)
	}
	var rule Rule
	switch interval.Unit {
	case date.Days:
		if hasOn {
			return nil, fmt.Errorf("couldn't parse schedule %q: daily rules take no \"on\" clause", s)
		}
		rule = Daily{Every: interval.N}
	case date.Weeks:
		on := []time.Weekday{anchor.Weekday()}
		if hasOn {
			if on, err = parseWeekdays(tail); err != nil {
				return nil, fmt.Errorf("couldn't parse schedule %q: %w", s, err)
			}
		}
		rule = Weekly{Every: interval.N, On: on}
	case date.Months:
		if !hasOn {
			rule = MonthlyByDates{Every: interval.N, Days: []int{anchor.Day()}}
		} else if rule, err = parseMonthly(interval.N, tail); err != nil {
			return nil, fmt.Errorf("couldn't parse schedule %q: %w", s, err)
		}
	case date.Years:
		if hasOn {
			return nil, fmt.Errorf("couldn't parse schedule %q: yearly rules take no \"on\" clause", s)
		}
		rule = Yearly{Every: interval.N}
	}
	if err := rule.Validate(); err != nil {
		return nil, err
	}
	return rule, nil
}

func parseInterval(s string) (date.Duration, error) {
	if d, ok := shorthands[s]; ok {
		return d, nil
	}
	fields := strings.Fields(s)
	if len(fields) > 0 && fields[0] == "every" {
		fields = fields[1:]
	}
	switch len(fields) {
	case 1:
		return date.ParseDuration("1 " + fields[0])
	case 2:
		return date.ParseDuration(fields[0] + " " + fields[1])
	}
	return date.Duration{}, fmt.Errorf("unknown interval %q", s)
}

func splitList(s string) []string {
	return strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || unicode.IsSpace(r)
	})
}

func parseWeekday(s string) (time.Weekday, bool) {
	if len(s) < 3 {
		return 0, false
	}
	for wd := time.Sunday; wd <= time.Saturday; wd++ {
		name := strings.ToLower(wd.String())
		if strings.HasPrefix(name, s) && strings.HasPrefix(s, name[:3]) {
			return wd, true
		}
	}
	return 0, false
}

func parseWeekdays(s string) ([]time.Weekday, error) {
	var res []time.Weekday
	for _, f := range splitList(s) {
		if f == "and" {
			continue
		}
		wd, ok := parseWeekday(f)
		if !ok {
			return nil, fmt.Errorf("unknown weekday %q", f)
		}
		res = append(res, wd)
	}
	if len(res) == 0 {
		return nil, fmt.Errorf("no weekdays given")
	}
	return res, nil
}

func parseMonthly(every int, s string) (Rule, error) {
	fields := splitList(strings.TrimPrefix(strings.TrimSpace(s), "the "))
	if len(fields) == 2 {
		if wd, ok := parseWeekday(fields[1]); ok {
			nth, err := parseOrdinal(fields[0])
			if err != nil {
				return nil, err
			}
			return MonthlyByWeekday{Every: every, Nth: nth, Weekday: wd}, nil
		}
	}
	var days []int
	for _, f := range fields {
		if f == "and" {
			continue
		}
		day, err := parseDay(f)
		if err != nil {
			return nil, err
		}
		days = append(days, day)
	}
	if len(days) == 0 {
		return nil, fmt.Errorf("no days given")
	}
	return MonthlyByDates{Every: every, Days: days}, nil
}

func parseOrdinal(s string) (int, error) {
	for i, o := range ordinals {
		if s == o {
			return i + 1, nil
		}
	}
	n, err := parseDay(s)
	if err != nil {
		return 0, fmt.Errorf("unknown occurrence %q", s)
	}
	return n, nil
}

// parseDay parses "15", "15th", "1st" and so on.
func parseDay(s string) (int, error) {
	digits := strings.TrimRightFunc(s, unicode.IsLetter)
	n, err := strconv.Atoi(digits)
	if err != nil {
		return 0, fmt.Errorf("invalid day %q", s)
	}
	if suffix := s[len(digits):]; suffix != "" && suffix != daySuffix(n) {
		return 0, fmt.Errorf("invalid day %q", s)
	}
	return n, nil
}

// ParseTermination parses "never", "after 3 times", "after 5 occurrences",
// "until 2021-12-31" or a plain date. The empty string means never.
func ParseTermination(s string) (Termination, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	switch {
	case s == "" || s == "never":
		return Never{}, nil
	case strings.HasPrefix(s, "after"):
		fields := strings.Fields(s)
		if len(fields) < 2 || len(fields) > 3 {
			return nil, fmt.Errorf("couldn't parse end %q", s)
		}
		n, err := strconv.Atoi(fields[1])
		if err != nil {
			return nil, fmt.Errorf("couldn't parse end %q: %w", s, err)
		}
		return AfterCount{Count: n}, nil
	}
	d, err := date.Parse(strings.TrimSpace(strings.TrimPrefix(s, "until")))
	if err != nil {
		return nil, fmt.Errorf("couldn't parse end %q: %w", s, err)
	}
	return Until{Date: d}, nil
}

// ParseRepetition parses a rule and an optional termination. It returns nil
// if rule is empty.
func ParseRepetition(rule, end string, anchor date.Date) (*Repetition, error) {
	if strings.TrimSpace(rule) == "" {
		if strings.TrimSpace(end) != "" {
			return nil, fmt.Errorf("end %q given without a repetition rule", end)
		}
		return nil, nil
	}
	r, err := ParseRule(rule, anchor)
	if err != nil {
		return nil, err
	}
	t, err := ParseTermination(end)
	if err != nil {
		return nil, err
	}
	rep := &Repetition{Rule: r, End: t}
	if err := rep.Validate(anchor); err != nil {
		return nil, err
	}
	return rep, nil
}
