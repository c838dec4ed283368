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

package amortize

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/sboehler/tight/lib/common/date"
	"github.com/sboehler/tight/lib/entry"
	"github.com/sboehler/tight/lib/schedule"
)

func item(t *testing.T, amount int64, anchor string, spread *date.Duration, rep *schedule.Repetition) *entry.Item {
	t.Helper()
	it, err := entry.New(1, "test", amount, date.MustParse(anchor), spread, rep, nil)
	if err != nil {
		t.Fatal(err)
	}
	return it
}

func days(n int) *date.Duration {
	d := date.DaysOf(n)
	return &d
}

func TestOverlapDays(t *testing.T) {
	var (
		pStart = date.MustParse("2020-11-01")
		pEnd   = date.MustParse("2020-11-30")
	)
	var tests = []struct {
		desc         string
		eStart, eEnd string
		want         int64
	}{
		{"exclusion left", "2020-10-01", "2020-10-31", 0},
		{"exclusion right", "2020-12-01", "2020-12-31", 0},
		{"touching left", "2020-10-01", "2020-11-01", 0},
		{"touching right", "2020-11-30", "2020-12-31", 0},
		{"contained", "2020-11-10", "2020-11-20", 10},
		{"containing", "2020-10-01", "2020-12-31", 29},
		{"partial left", "2020-10-25", "2020-11-05", 4},
		{"partial right", "2020-11-25", "2020-12-05", 5},
		{"identical", "2020-11-01", "2020-11-30", 29},
		{"across a leap day", "2020-02-28", "2020-03-02", 0},
	}
	for _, test := range tests {
		t.Run(test.desc, func(t *testing.T) {
			eStart, eEnd := date.MustParse(test.eStart), date.MustParse(test.eEnd)
			got := OverlapDays(pStart, pEnd, eStart, eEnd)
			if got != test.want {
				t.Errorf("OverlapDays(%v, %v, %v, %v) = %d, want %d", pStart, pEnd, eStart, eEnd, got, test.want)
			}
			if again := OverlapDays(pStart, pEnd, eStart, eEnd); again != got {
				t.Errorf("OverlapDays is not idempotent: %d, then %d", got, again)
			}
		})
	}
}

func TestOverlapDaysIsSymmetric(t *testing.T) {
	ds := []date.Date{
		date.MustParse("2019-12-31"),
		date.MustParse("2020-02-28"),
		date.MustParse("2020-02-29"),
		date.MustParse("2020-03-01"),
		date.MustParse("2020-11-01"),
		date.MustParse("2021-01-01"),
	}
	for _, a := range ds {
		for _, b := range ds {
			for _, c := range ds {
				for _, d := range ds {
					if x, y := OverlapDays(a, b, c, d), OverlapDays(c, d, a, b); x != y {
						t.Fatalf("OverlapDays(%v, %v, %v, %v) = %d, but %d with swapped periods", a, b, c, d, x, y)
					}
				}
			}
		}
	}
	if got := OverlapDays(ds[1], ds[3], ds[0], ds[5]); got != 2 {
		t.Errorf("leap year overlap: got %d, want 2", got)
	}
}

func TestProrate(t *testing.T) {
	var (
		mondays = &schedule.Repetition{Rule: schedule.Weekly{Every: 1, On: []time.Weekday{time.Monday}}, End: schedule.Never{}}
		rent    = &schedule.Repetition{Rule: schedule.MonthlyByDates{Every: 1, Days: []int{1}}, End: schedule.Never{}}
		month   = date.MonthsOf(1)
	)
	var tests = []struct {
		desc       string
		items      []*entry.Item
		start, end string
		want       string
	}{
		{
			desc:  "spread within the window",
			items: []*entry.Item{item(t, -10000, "2020-11-01", days(10), nil)},
			start: "2020-11-01",
			end:   "2020-11-30",
			want:  "-100",
		},
		{
			desc:  "spread partially within the window",
			items: []*entry.Item{item(t, -10000, "2020-10-27", days(10), nil)},
			start: "2020-11-01",
			end:   "2020-11-30",
			want:  "-50",
		},
		{
			desc:  "single day on the window end",
			items: []*entry.Item{item(t, 2500, "2020-11-30", nil, nil)},
			start: "2020-11-01",
			end:   "2020-11-30",
			want:  "0",
		},
		{
			desc:  "weekly occurrences",
			items: []*entry.Item{item(t, -700, "2020-10-05", nil, mondays)},
			start: "2020-11-01",
			end:   "2020-12-01",
			want:  "-35",
		},
		{
			desc:  "monthly rent over a month",
			items: []*entry.Item{item(t, -120000, "2020-01-01", &month, rent)},
			start: "2020-11-01",
			end:   "2020-12-01",
			want:  "-1200",
		},
		{
			desc:  "monthly rent over a week",
			items: []*entry.Item{item(t, -120000, "2020-01-01", &month, rent)},
			start: "2020-11-02",
			end:   "2020-11-09",
			want:  "-280",
		},
		{
			desc:  "occurrences stop after the count",
			items: []*entry.Item{item(t, -100, "2020-11-01", nil, &schedule.Repetition{Rule: schedule.Daily{Every: 1}, End: schedule.AfterCount{Count: 2}})},
			start: "2020-11-01",
			end:   "2020-12-01",
			want:  "-3",
		},
		{
			desc:  "occurrences stop at the end date",
			items: []*entry.Item{item(t, -100, "2020-11-02", nil, &schedule.Repetition{Rule: mondays.Rule, End: schedule.Until{Date: date.MustParse("2020-11-16")}})},
			start: "2020-11-01",
			end:   "2020-12-01",
			want:  "-3",
		},
		{
			desc: "thirds add up exactly",
			items: []*entry.Item{
				item(t, 1000, "2020-11-01", days(3), nil),
				item(t, 1000, "2020-11-02", days(3), nil),
				item(t, 1000, "2020-11-03", days(3), nil),
			},
			start: "2020-11-03",
			end:   "2020-11-04",
			want:  "10",
		},
		{
			desc:  "a single third",
			items: []*entry.Item{item(t, 1000, "2020-11-01", days(3), nil)},
			start: "2020-11-03",
			end:   "2020-11-04",
			want:  "3.333333333333333333",
		},
		{
			desc:  "no items",
			start: "2020-11-01",
			end:   "2020-12-01",
			want:  "0",
		},
	}
	for _, test := range tests {
		t.Run(test.desc, func(t *testing.T) {
			got, err := Prorate(test.items, date.MustParse(test.start), date.MustParse(test.end))
			if err != nil {
				t.Fatal(err)
			}
			if want := decimal.RequireFromString(test.want); !got.Equal(want) {
				t.Errorf("Prorate() = %v, want %v", got, want)
			}
		})
	}
}

func TestProrateConservesAmounts(t *testing.T) {
	var (
		start = date.MustParse("2020-01-01")
		end   = date.MustParse("2021-01-01")
	)
	spreads := []date.Duration{date.DaysOf(1), date.DaysOf(7), date.WeeksOf(3), date.MonthsOf(1), date.MonthsOf(2)}
	amounts := []int64{-1, 1, -12345, 99999, -700001}
	for _, s := range spreads {
		s := s
		for _, amount := range amounts {
			it := item(t, amount, "2020-02-29", &s, nil)
			got, err := Prorate([]*entry.Item{it}, start, end)
			if err != nil {
				t.Fatal(err)
			}
			if want := decimal.New(amount, -2); !got.Equal(want) {
				t.Errorf("Prorate(%v) = %v, want %v", it, got, want)
			}
		}
	}
}

func TestContributions(t *testing.T) {
	items := []*entry.Item{
		item(t, -10000, "2020-11-01", days(10), nil),
		item(t, -500, "2020-10-01", nil, nil),
		item(t, 2000, "2020-11-15", days(20), nil),
	}
	got, err := Contributions(items, date.MustParse("2020-11-01"), date.MustParse("2020-11-25"))
	if err != nil {
		t.Fatal(err)
	}
	want := []Contribution{
		{Item: items[0], Amount: decimal.RequireFromString("-100")},
		{Item: items[2], Amount: decimal.RequireFromString("10")},
	}
	if len(got) != len(want) {
		t.Fatalf("Contributions() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i].Item != want[i].Item || !got[i].Amount.Equal(want[i].Amount) {
			t.Errorf("Contributions()[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestReversedWindow(t *testing.T) {
	var (
		start = date.MustParse("2020-11-30")
		end   = date.MustParse("2020-11-01")
	)
	if got := OverlapDays(start, end, date.MustParse("2020-10-01"), date.MustParse("2020-12-31")); got != 0 {
		t.Errorf("OverlapDays() over a reversed window = %d, want 0", got)
	}
	if got := OverlapDays(date.MustParse("2020-10-01"), date.MustParse("2020-12-31"), start, end); got != 0 {
		t.Errorf("OverlapDays() of a reversed period = %d, want 0", got)
	}
	items := []*entry.Item{item(t, -10000, "2020-10-01", days(91), nil)}
	for _, w := range [][2]date.Date{{start, end}, {start, start}} {
		got, err := Prorate(items, w[0], w[1])
		if err != nil {
			t.Fatal(err)
		}
		if !got.IsZero() {
			t.Errorf("Prorate(%v, %v) = %v, want 0", w[0], w[1], got)
		}
		cs, err := Contributions(items, w[0], w[1])
		if err != nil {
			t.Fatal(err)
		}
		if len(cs) != 0 {
			t.Errorf("Contributions(%v, %v) = %v, want none", w[0], w[1], cs)
		}
	}
}

func TestProrateAtTheEndOfTime(t *testing.T) {
	yearly := &schedule.Repetition{Rule: schedule.Yearly{Every: 1}, End: schedule.Never{}}
	items := []*entry.Item{item(t, -10000, "9999-03-01", nil, yearly)}

	got, err := Prorate(items, date.MustParse("9999-01-01"), date.MustParse("9999-12-31"))

	if err != nil {
		t.Fatalf("Prorate() returned %v", err)
	}
	if want := decimal.RequireFromString("-100"); !got.Equal(want) {
		t.Errorf("Prorate() = %v, want %v", got, want)
	}
}
