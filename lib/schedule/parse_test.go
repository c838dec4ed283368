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
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/sboehler/tight/lib/common/date"
)

func TestParseRule(t *testing.T) {
	// 2020-11-04 is a Wednesday.
	anchor := date.MustParse("2020-11-04")
	var tests = []struct {
		input string
		want  Rule
	}{
		{"daily", Daily{Every: 1}},
		{"every day", Daily{Every: 1}},
		{"every 10 days", Daily{Every: 10}},
		{"Every 2 Days", Daily{Every: 2}},
		{"weekly", Weekly{Every: 1, On: []time.Weekday{time.Wednesday}}},
		{"fortnightly", Weekly{Every: 2, On: []time.Weekday{time.Wednesday}}},
		{"weekly on mon,fri", Weekly{Every: 1, On: []time.Weekday{time.Monday, time.Friday}}},
		{"every 3 weeks on tuesday and thursday", Weekly{Every: 3, On: []time.Weekday{time.Tuesday, time.Thursday}}},
		{"monthly", MonthlyByDates{Every: 1, Days: []int{4}}},
		{"monthly on the 1st,15th", MonthlyByDates{Every: 1, Days: []int{1, 15}}},
		{"monthly on the 1st and 15th", MonthlyByDates{Every: 1, Days: []int{1, 15}}},
		{"quarterly on 31", MonthlyByDates{Every: 3, Days: []int{31}}},
		{"every 6 months on the 2nd, 22nd", MonthlyByDates{Every: 6, Days: []int{2, 22}}},
		{"monthly on the second tuesday", MonthlyByWeekday{Every: 1, Nth: 2, Weekday: time.Tuesday}},
		{"monthly on the last fri", MonthlyByWeekday{Every: 1, Nth: 5, Weekday: time.Friday}},
		{"every 2 months on the 3rd mon", MonthlyByWeekday{Every: 2, Nth: 3, Weekday: time.Monday}},
		{"yearly", Yearly{Every: 1}},
		{"annually", Yearly{Every: 1}},
		{"every 2 years", Yearly{Every: 2}},
	}
	for _, test := range tests {
		t.Run(test.input, func(t *testing.T) {
			got, err := ParseRule(test.input, anchor)
			if err != nil {
				t.Fatalf("ParseRule(%q): unexpected error %v", test.input, err)
			}
			if diff := cmp.Diff(test.want, got); diff != "" {
				t.Errorf("ParseRule(%q): unexpected diff (-want, +got):\n%s", test.input, diff)
			}
		})
	}
}

func TestParseRuleErrors(t *testing.T) {
	anchor := date.MustParse("2020-11-04")
	inputs := []string{
		"",
		"hourly",
		"every 0 days",
		"every -1 weeks",
		"daily on mon",
		"yearly on the 1st",
		"weekly on funday",
		"weekly on ",
		"monthly on the 32nd",
		"monthly on the 1nd",
		"monthly on the sixth monday",
		"monthly on the 0th monday",
		"every two weeks",
	}
	for _, input := range inputs {
		if got, err := ParseRule(input, anchor); err == nil {
			t.Errorf("ParseRule(%q): got %v, want error", input, got)
		}
	}
}

func TestRuleStringRoundTrip(t *testing.T) {
	anchor := date.MustParse("2020-01-31")
	rules := []Rule{
		Daily{Every: 1},
		Daily{Every: 14},
		Weekly{Every: 1, On: []time.Weekday{time.Sunday, time.Monday}},
		Weekly{Every: 2, On: []time.Weekday{time.Friday}},
		MonthlyByDates{Every: 1, Days: []int{1, 2, 3, 4, 21, 22, 23, 31}},
		MonthlyByDates{Every: 3, Days: []int{15}},
		MonthlyByWeekday{Every: 1, Nth: 1, Weekday: time.Sunday},
		MonthlyByWeekday{Every: 4, Nth: 5, Weekday: time.Saturday},
		Yearly{Every: 1},
		Yearly{Every: 10},
	}
	for _, rule := range rules {
		got, err := ParseRule(rule.String(), anchor)
		if err != nil {
			t.Fatalf("ParseRule(%q): unexpected error %v", rule.String(), err)
		}
		if got.String() != rule.String() {
			t.Errorf("ParseRule(%q).String() = %q", rule.String(), got.String())
		}
	}
}

func TestParseTermination(t *testing.T) {
	var tests = []struct {
		input   string
		want    Termination
		wantErr bool
	}{
		{input: "", want: Never{}},
		{input: "Never", want: Never{}},
		{input: "after 3 times", want: AfterCount{Count: 3}},
		{input: "after 1", want: AfterCount{Count: 1}},
		{input: "until 2021-12-31", want: Until{Date: date.MustParse("2021-12-31")}},
		{input: "2021-02-28", want: Until{Date: date.MustParse("2021-02-28")}},
		{input: "after three times", wantErr: true},
		{input: "after", wantErr: true},
		{input: "2021-02-29", wantErr: true},
		{input: "tomorrow", wantErr: true},
	}
	for _, test := range tests {
		got, err := ParseTermination(test.input)
		if (err != nil) != test.wantErr {
			t.Fatalf("ParseTermination(%q): got error %v, wantErr %t", test.input, err, test.wantErr)
		}
		if diff := cmp.Diff(test.want, got, cmp.AllowUnexported(date.Date{})); diff != "" {
			t.Errorf("ParseTermination(%q): unexpected diff (-want, +got):\n%s", test.input, diff)
		}
	}
}

func TestParseRepetition(t *testing.T) {
	anchor := date.MustParse("2020-11-04")

	rep, err := ParseRepetition("", "", anchor)
	if err != nil || rep != nil {
		t.Errorf("ParseRepetition(\"\", \"\"): got %v, %v, want nil, nil", rep, err)
	}

	rep, err = ParseRepetition("every 2 weeks on mon,fri", "after 3 times", anchor)
	if err != nil {
		t.Fatal(err)
	}
	if got, want := rep.String(), "every 2 weeks on mon,fri after 3 times"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}

	for _, c := range [][2]string{
		{"", "after 3 times"},
		{"daily", "after 0 times"},
		{"daily", "until 2020-11-03"},
	} {
		if _, err := ParseRepetition(c[0], c[1], anchor); err == nil {
			t.Errorf("ParseRepetition(%q, %q): want error", c[0], c[1])
		}
	}
}
