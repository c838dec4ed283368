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

package flags

import (
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/sboehler/tight/lib/common/date"
	"github.com/sboehler/tight/lib/common/regex"
)

// DateFlag manages a flag to determine a date.
type DateFlag date.Date

var _ pflag.Value = (*DateFlag)(nil)

func (tf DateFlag) String() string {
	if tf.Value().IsZero() {
		return ""
	}
	return tf.Value().String()
}

// Set implements pflag.Value.
func (tf *DateFlag) Set(v string) error {
	d, err := date.Parse(v)
	if err != nil {
		return err
	}
	*tf = DateFlag(d)
	return nil
}

// Type implements pflag.Value.
func (tf DateFlag) Type() string {
	return "YYYY-MM-DD"
}

// Value returns the flag value.
func (tf DateFlag) Value() date.Date {
	return date.Date(tf)
}

// ValueOr returns the flag value, or d if the flag is not set.
func (tf DateFlag) ValueOr(d date.Date) date.Date {
	v := tf.Value()
	if v.IsZero() {
		return d
	}
	return v
}

// DurationFlag manages a flag to parse a duration such as "3 months".
type DurationFlag struct {
	val *date.Duration
}

var _ pflag.Value = (*DurationFlag)(nil)

func (df DurationFlag) String() string {
	if df.val == nil {
		return ""
	}
	return df.val.String()
}

// Set implements pflag.Value.
func (df *DurationFlag) Set(v string) error {
	d, err := date.ParseDuration(v)
	if err != nil {
		return err
	}
	df.val = &d
	return nil
}

// Type implements pflag.Value.
func (df DurationFlag) Type() string {
	return "<n> days|weeks|months|years"
}

// Value returns the duration, or nil if the flag is not set.
func (df DurationFlag) Value() *date.Duration {
	return df.val
}

// RegexFlag manages a flag to get a regex.
type RegexFlag struct {
	rxs regex.Regexes
}

var _ pflag.Value = (*RegexFlag)(nil)

func (rf RegexFlag) String() string {
	return rf.rxs.String()
}

// Set implements pflag.Set. Regexes are case-insensitive.
func (rf *RegexFlag) Set(v string) error {
	rxs, err := regex.Compile(v)
	if err != nil {
		return err
	}
	rf.rxs = append(rf.rxs, rxs...)
	return nil
}

// Type implements pflag.Type.
func (rf RegexFlag) Type() string {
	return "<regex>"
}

func (rf *RegexFlag) Value() regex.Regexes {
	return rf.rxs
}

// IntervalFlags manages flags to select reporting intervals.
type IntervalFlags struct {
	flags [4]bool
}

// Setup configures the flags.
func (pf *IntervalFlags) Setup(cmd *cobra.Command) {
	cmd.Flags().BoolVar(&pf.flags[date.Daily], "days", false, "report the daily window")
	cmd.Flags().BoolVar(&pf.flags[date.Weekly], "weeks", false, "report the weekly window")
	cmd.Flags().BoolVar(&pf.flags[date.Monthly], "months", false, "report the monthly window")
	cmd.Flags().BoolVar(&pf.flags[date.Yearly], "years", false, "report the yearly window")
}

// Value returns the selected intervals, or all intervals if none is
// selected.
func (pf IntervalFlags) Value() []date.Interval {
	var res []date.Interval
	for i, val := range pf.flags {
		if val {
			res = append(res, date.Interval(i))
		}
	}
	if len(res) == 0 {
		return date.Intervals
	}
	return res
}
