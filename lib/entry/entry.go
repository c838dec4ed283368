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

// Package entry implements scheduled incomes and expenses.
package entry

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/sboehler/tight/lib/common/compare"
	"github.com/sboehler/tight/lib/common/date"
	"github.com/sboehler/tight/lib/common/set"
	"github.com/sboehler/tight/lib/schedule"
)

// Item is an income (positive amount) or expense (negative amount) in minor
// currency units. An item is immutable; it is replaced rather than edited.
type Item struct {
	id          uint64
	description string
	amount      int64
	anchor      date.Date
	spread      *date.Duration
	repetition  *schedule.Repetition
	tags        []string

	// horizon is nil if the item repeats forever.
	horizon *date.Date
}

// New creates a new item and computes its horizon. Spread and repetition
// are optional.
func New(id uint64, description string, amount int64, anchor date.Date, spread *date.Duration, repetition *schedule.Repetition, tags []string) (*Item, error) {
	if anchor.IsZero() {
		return nil, &date.CalendarError{Msg: "missing date"}
	}
	if spread != nil && spread.N < 1 {
		return nil, &schedule.InvalidScheduleError{Msg: fmt.Sprintf("spread must be positive, got %v", *spread)}
	}
	if repetition != nil {
		if err := repetition.Validate(anchor); err != nil {
			return nil, err
		}
	}
	h, err := horizon(anchor, spread, repetition)
	if err != nil {
		return nil, fmt.Errorf("item %d: %w", id, err)
	}
	return &Item{
		id:          id,
		description: description,
		amount:      amount,
		anchor:      anchor,
		spread:      spread,
		repetition:  repetition,
		tags:        set.Of(tags...).Sorted(compare.Ordered[string]),
		horizon:     h,
	}, nil
}

func horizon(anchor date.Date, spread *date.Duration, repetition *schedule.Repetition) (*date.Date, error) {
	base := anchor
	if repetition != nil {
		closing, bounded, err := repetition.ClosingDate(anchor)
		if err != nil {
			return nil, err
		}
		if !bounded {
			return nil, nil
		}
		base = closing
	}
	if spread != nil {
		var err error
		if base, err = base.Add(*spread); err != nil {
			return nil, err
		}
	}
	return &base, nil
}

// ID returns the item's identifier.
func (it *Item) ID() uint64 { return it.id }

// Description returns the item's description.
func (it *Item) Description() string { return it.description }

// Amount returns the signed amount in minor currency units.
func (it *Item) Amount() int64 { return it.amount }

// Anchor returns the date of the first occurrence.
func (it *Item) Anchor() date.Date { return it.anchor }

// Spread returns the spread, if any.
func (it *Item) Spread() (date.Duration, bool) {
	if it.spread == nil {
		return date.Duration{}, false
	}
	return *it.spread, true
}

// Span returns the length of a single occurrence: the spread, or one day.
func (it *Item) Span() date.Duration {
	if it.spread == nil {
		return date.DaysOf(1)
	}
	return *it.spread
}

// Repetition returns the item's repetition, or nil.
func (it *Item) Repetition() *schedule.Repetition { return it.repetition }

// Tags returns the sorted tags of the item.
func (it *Item) Tags() []string { return it.tags }

// HasTag reports whether the item carries the given tag.
func (it *Item) HasTag(tag string) bool {
	for _, t := range it.tags {
		if t == tag {
			return true
		}
	}
	return false
}

// Horizon returns the last date on which the item can affect a report. It
// returns false if the item repeats forever.
func (it *Item) Horizon() (date.Date, bool) {
	if it.horizon == nil {
		return date.Date{}, false
	}
	return *it.horizon, true
}

// IsIncome reports whether the amount is positive.
func (it *Item) IsIncome() bool { return it.amount > 0 }

// WithoutTag returns a copy of the item without the given tag.
func (it *Item) WithoutTag(tag string) *Item {
	res := *it
	res.tags = nil
	for _, t := range it.tags {
		if t != tag {
			res.tags = append(res.tags, t)
		}
	}
	return &res
}

// WithID returns a copy of the item with the given id.
func (it *Item) WithID(id uint64) *Item {
	res := *it
	res.id = id
	return &res
}

// Value returns the amount in major currency units.
func (it *Item) Value() decimal.Decimal {
	return decimal.New(it.amount, -2)
}

func (it *Item) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s: %s on %s", it.description, it.Value().StringFixed(2), it.anchor)
	var details []string
	if it.spread != nil {
		details = append(details, "spread over "+it.spread.String())
	}
	if it.repetition != nil {
		details = append(details, "repeats "+it.repetition.String())
	}
	if len(details) > 0 {
		fmt.Fprintf(&b, " (%s)", strings.Join(details, ", "))
	}
	if len(it.tags) > 0 {
		fmt.Fprintf(&b, " tags: %s", strings.Join(it.tags, ", "))
	}
	fmt.Fprintf(&b, " [id=%d]", it.id)
	return b.String()
}

var compareHorizon = compare.Optional[date.Date](date.Date.Compare)

// Compare orders items by horizon, open-ended items last, then by anchor.
func Compare(it1, it2 *Item) compare.Order {
	if o := compareHorizon(it1.horizon, it2.horizon); o != compare.Equal {
		return o
	}
	return it1.anchor.Compare(it2.anchor)
}
