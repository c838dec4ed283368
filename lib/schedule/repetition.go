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
	"errors"
	"fmt"

	"github.com/sboehler/tight/lib/common/date"
)

// Termination determines when a repetition ends.
type Termination interface {
	fmt.Stringer

	termination()
}

// Never repeats forever.
type Never struct{}

// AfterCount ends after Count repetitions of the rule.
type AfterCount struct {
	Count int
}

// Until ends at the given date (inclusive).
type Until struct {
	Date date.Date
}

func (Never) termination()      {}
func (AfterCount) termination() {}
func (Until) termination()      {}

func (Never) String() string { return "never" }

func (e AfterCount) String() string {
	if e.Count == 1 {
		return "after 1 time"
	}
	return fmt.Sprintf("after %d times", e.Count)
}

func (e Until) String() string { return "until " + e.Date.String() }

// Repetition combines a rule with a termination.
type Repetition struct {
	Rule Rule
	End  Termination
}

func (r Repetition) String() string {
	if r.Rule == nil {
		return ""
	}
	if _, ok := r.End.(Never); ok || r.End == nil {
		return r.Rule.String()
	}
	return fmt.Sprintf("%s %s", r.Rule, r.End)
}

// Validate checks the repetition for an item anchored at the given date.
func (r Repetition) Validate(anchor date.Date) error {
	if r.Rule == nil {
		return invalidf("repetition without rule")
	}
	if err := r.Rule.Validate(); err != nil {
		return err
	}
	switch end := r.End.(type) {
	case nil, Never:
	case AfterCount:
		if end.Count < 1 {
			return invalidf("repetition count must be positive, got %d", end.Count)
		}
	case Until:
		if end.Date.Before(anchor) {
			return invalidf("repetition ends on %s, before its start %s", end.Date, anchor)
		}
	default:
		return invalidf("unknown termination %T", end)
	}
	return nil
}

// ClosingDate returns the last date on which the repetition, starting at
// anchor, can occur. It returns false if the repetition never ends.
func (r Repetition) ClosingDate(anchor date.Date) (date.Date, bool, error) {
	switch end := r.End.(type) {
	case AfterCount:
		d := anchor
		for i := 0; i < end.Count; i++ {
			var err error
			if d, err = r.Rule.Next(d); err != nil {
				return date.Date{}, false, err
			}
		}
		return d, true, nil
	case Until:
		return end.Date, true, nil
	}
	return date.Date{}, false, nil
}

// Occurrences calls f for every occurrence of the repetition starting
// at anchor, in order, up to its closing date and strictly before limit.
// It stops early if f returns false. An occurrence beyond the supported
// date range lies after every limit and ends the sequence.
func (r Repetition) Occurrences(anchor, limit date.Date, f func(date.Date) bool) error {
	closing, bounded, err := r.ClosingDate(anchor)
	if err != nil {
		return err
	}
	for d := anchor; d.Before(limit) && (!bounded || !d.After(closing)); {
		if !f(d) {
			return nil
		}
		if d, err = r.Rule.Next(d); err != nil {
			var cal *date.CalendarError
			if errors.As(err, &cal) {
				return nil
			}
			return err
		}
	}
	return nil
}
