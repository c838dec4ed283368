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
	"strconv"
	"strings"
)

// Unit is the unit of a Duration.
type Unit int

const (
	// Days are calendar days.
	Days Unit = iota
	// Weeks are seven days.
	Weeks
	// Months are calendar months.
	Months
	// Years are calendar years.
	Years
)

var unitNames = [...][2]string{
	Days:   {"day", "days"},
	Weeks:  {"week", "weeks"},
	Months: {"month", "months"},
	Years:  {"year", "years"},
}

func (u Unit) String() string {
	if u < Days || u > Years {
		return fmt.Sprintf("unit(%d)", int(u))
	}
	return unitNames[u][1]
}

// Duration is a calendar duration, such as "3 months".
type Duration struct {
	N    int
	Unit Unit
}

// DaysOf returns a duration of n days.
func DaysOf(n int) Duration { return Duration{n, Days} }

// WeeksOf returns a duration of n weeks.
func WeeksOf(n int) Duration { return Duration{n, Weeks} }

// MonthsOf returns a duration of n months.
func MonthsOf(n int) Duration { return Duration{n, Months} }

// YearsOf returns a duration of n years.
func YearsOf(n int) Duration { return Duration{n, Years} }

func (d Duration) String() string {
	if d.Unit < Days || d.Unit > Years {
		return fmt.Sprintf("%d %s", d.N, d.Unit)
	}
	if d.N == 1 {
		return fmt.Sprintf("1 %s", unitNames[d.Unit][0])
	}
	return fmt.Sprintf("%d %s", d.N, unitNames[d.Unit][1])
}

// ParseDuration parses durations like "10 days", "1 week" or "2 years".
func ParseDuration(s string) (Duration, error) {
	fields := strings.Fields(strings.ToLower(s))
	if len(fields) != 2 {
		return Duration{}, fmt.Errorf("invalid duration %q, want <number> day(s)|week(s)|month(s)|year(s)", s)
	}
	n, err := strconv.Atoi(fields[0])
	if err != nil {
		return Duration{}, fmt.Errorf("invalid duration %q: %w", s, err)
	}
	for u, names := range unitNames {
		if fields[1] == names[0] || fields[1] == names[1] {
			return Duration{n, Unit(u)}, nil
		}
	}
	return Duration{}, fmt.Errorf("invalid duration %q: unknown unit %q", s, fields[1])
}

// MarshalYAML implements yaml.Marshaler.
func (d Duration) MarshalYAML() (interface{}, error) {
	return d.String(), nil
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (d *Duration) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var s string
	if err := unmarshal(&s); err != nil {
		return err
	}
	res, err := ParseDuration(s)
	if err != nil {
		return err
	}
	*d = res
	return nil
}
