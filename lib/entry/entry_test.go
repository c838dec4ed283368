package entry

import (
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/sboehler/tight/lib/common/compare"
	"github.com/sboehler/tight/lib/common/date"
	"github.com/sboehler/tight/lib/schedule"
)

func spread(d date.Duration) *date.Duration { return &d }

func repeat(rule schedule.Rule, end schedule.Termination) *schedule.Repetition {
	return &schedule.Repetition{Rule: rule, End: end}
}

func TestHorizon(t *testing.T) {
	anchor := date.MustParse("2020-11-01")
	var tests = []struct {
		desc       string
		spread     *date.Duration
		repetition *schedule.Repetition
		want       string
	}{
		{
			desc: "single day",
			want: "2020-11-01",
		},
		{
			desc:   "spread",
			spread: spread(date.DaysOf(10)),
			want:   "2020-11-11",
		},
		{
			desc:       "repeated three times",
			repetition: repeat(schedule.Daily{Every: 7}, schedule.AfterCount{Count: 3}),
			want:       "2020-11-22",
		},
		{
			desc:       "spread is added once to the closing date",
			spread:     spread(date.MonthsOf(1)),
			repetition: repeat(schedule.MonthlyByDates{Every: 1, Days: []int{1}}, schedule.AfterCount{Count: 2}),
			want:       "2021-02-01",
		},
		{
			desc:       "until",
			repetition: repeat(schedule.Weekly{Every: 1, On: []time.Weekday{time.Sunday}}, schedule.Until{Date: date.MustParse("2020-12-03")}),
			want:       "2020-12-03",
		},
		{
			desc:       "open-ended ignores spread",
			spread:     spread(date.YearsOf(1)),
			repetition: repeat(schedule.Yearly{Every: 1}, schedule.Never{}),
		},
	}
	for _, test := range tests {
		t.Run(test.desc, func(t *testing.T) {
			it, err := New(1, "test", -100, anchor, test.spread, test.repetition, nil)
			if err != nil {
				t.Fatal(err)
			}
			got, ok := it.Horizon()
			if test.want == "" {
				if ok {
					t.Errorf("Horizon() = %v, want open-ended", got)
				}
				return
			}
			if !ok || got != date.MustParse(test.want) {
				t.Errorf("Horizon() = %v, %t, want %s", got, ok, test.want)
			}
		})
	}
}

func TestHorizonIsNotBeforeAnchor(t *testing.T) {
	rules := []schedule.Rule{
		schedule.Daily{Every: 3},
		schedule.Weekly{Every: 1, On: []time.Weekday{time.Monday, time.Thursday}},
		schedule.MonthlyByDates{Every: 1, Days: []int{31}},
		schedule.MonthlyByWeekday{Every: 2, Nth: 5, Weekday: time.Friday},
		schedule.Yearly{Every: 1},
	}
	spreads := []*date.Duration{nil, spread(date.DaysOf(1)), spread(date.WeeksOf(2)), spread(date.MonthsOf(1)), spread(date.YearsOf(1))}
	anchor := date.MustParse("2020-01-31")
	for _, s := range spreads {
		var reps = []*schedule.Repetition{nil}
		for _, rule := range rules {
			reps = append(reps,
				repeat(rule, schedule.AfterCount{Count: 4}),
				repeat(rule, schedule.Until{Date: anchor}),
				repeat(rule, schedule.Until{Date: date.MustParse("2021-06-15")}),
			)
		}
		for _, rep := range reps {
			it, err := New(1, "test", 100, anchor, s, rep, nil)
			if err != nil {
				t.Fatal(err)
			}
			if h, ok := it.Horizon(); ok && h.Before(anchor) {
				t.Errorf("%v: horizon %v before anchor %v", it, h, anchor)
			}
		}
	}
}

func TestNewErrors(t *testing.T) {
	anchor := date.MustParse("2020-11-01")

	var invalid *schedule.InvalidScheduleError
	if _, err := New(1, "test", 100, anchor, spread(date.DaysOf(0)), nil, nil); !errors.As(err, &invalid) {
		t.Errorf("zero spread: got %v, want *schedule.InvalidScheduleError", err)
	}
	if _, err := New(1, "test", 100, anchor, spread(date.MonthsOf(-1)), nil, nil); !errors.As(err, &invalid) {
		t.Errorf("negative spread: got %v, want *schedule.InvalidScheduleError", err)
	}
	if _, err := New(1, "test", 100, anchor, nil, repeat(schedule.Daily{Every: 0}, schedule.Never{}), nil); !errors.As(err, &invalid) {
		t.Errorf("zero interval: got %v, want *schedule.InvalidScheduleError", err)
	}
	if _, err := New(1, "test", 100, anchor, nil, repeat(schedule.Daily{Every: 1}, schedule.AfterCount{}), nil); !errors.As(err, &invalid) {
		t.Errorf("zero count: got %v, want *schedule.InvalidScheduleError", err)
	}

	var cal *date.CalendarError
	if _, err := New(1, "test", 100, date.Date{}, nil, nil, nil); !errors.As(err, &cal) {
		t.Errorf("zero date: got %v, want *date.CalendarError", err)
	}
	if _, err := New(1, "test", 100, date.MustParse("9999-12-01"), spread(date.MonthsOf(1)), nil, nil); !errors.As(err, &cal) {
		t.Errorf("overflow: got %v, want *date.CalendarError", err)
	}
}

func TestCompare(t *testing.T) {
	mk := func(anchor string, s *date.Duration, rep *schedule.Repetition) *Item {
		it, err := New(1, "test", 100, date.MustParse(anchor), s, rep, nil)
		if err != nil {
			t.Fatal(err)
		}
		return it
	}
	var (
		short     = mk("2020-11-05", nil, nil)
		long      = mk("2020-11-01", spread(date.DaysOf(10)), nil)
		sameEnd   = mk("2020-11-06", spread(date.DaysOf(5)), nil)
		forever   = mk("2020-01-01", nil, repeat(schedule.Daily{Every: 1}, schedule.Never{}))
		forever2  = mk("2020-02-01", nil, repeat(schedule.Yearly{Every: 1}, schedule.Never{}))
		duplicate = mk("2020-11-05", nil, nil)
	)
	var tests = []struct {
		it1, it2 *Item
		want     compare.Order
	}{
		{short, long, compare.Smaller},
		{long, short, compare.Greater},
		{long, sameEnd, compare.Smaller},
		{sameEnd, long, compare.Greater},
		{long, forever, compare.Smaller},
		{forever, short, compare.Greater},
		{forever, forever2, compare.Smaller},
		{short, duplicate, compare.Equal},
	}
	for i, test := range tests {
		if got := Compare(test.it1, test.it2); got != test.want {
			t.Errorf("test %d: Compare(%v, %v) = %v, want %v", i, test.it1, test.it2, got, test.want)
		}
	}
}

func TestString(t *testing.T) {
	it, err := New(3, "Rent", -120000, date.MustParse("2020-11-01"),
		spread(date.MonthsOf(1)),
		repeat(schedule.MonthlyByDates{Every: 1, Days: []int{1}}, schedule.Never{}),
		[]string{"home", "fixed", "home"})
	if err != nil {
		t.Fatal(err)
	}
	want := "Rent: -1200.00 on 2020-11-01 (spread over 1 month, repeats monthly on the 1st) tags: fixed, home [id=3]"
	if got := it.String(); got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}

	it, err = New(4, "Salary", 500050, date.MustParse("2020-11-25"), nil, nil, nil)
	if err != nil {
		t.Fatal(err)
	}
	want = "Salary: 5000.50 on 2020-11-25 [id=4]"
	if got := it.String(); got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}

func TestWithoutTag(t *testing.T) {
	it, err := New(1, "Food", -2000, date.MustParse("2020-11-01"), nil, nil, []string{"food", "fun"})
	if err != nil {
		t.Fatal(err)
	}
	got := it.WithoutTag("fun")

	if diff := cmp.Diff([]string{"food"}, got.Tags()); diff != "" {
		t.Errorf("WithoutTag(): unexpected diff (-want, +got):\n%s", diff)
	}
	if !it.HasTag("fun") {
		t.Errorf("WithoutTag() modified the original item")
	}
	if Compare(it, got) != compare.Equal || got.ID() != it.ID() {
		t.Errorf("WithoutTag() changed the schedule: %v vs %v", got, it)
	}
	if moved := got.WithID(7); moved.ID() != 7 || got.ID() != 1 {
		t.Errorf("WithID(7): got ids %d and %d", moved.ID(), got.ID())
	}
}
