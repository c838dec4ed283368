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

// Package amortize spreads the amounts of scheduled items over the days
// of their occurrences and sums them for reporting windows.
package amortize

import (
	"math/big"

	"github.com/shopspring/decimal"

	"github.com/sboehler/tight/lib/common/date"
	"github.com/sboehler/tight/lib/entry"
)

// Precision is the number of decimal places of prorated amounts, in minor
// units.
const Precision = 16

// OverlapDays returns the number of days shared by the half-open periods
// [pStart, pEnd) and [eStart, eEnd). Empty or reversed periods share no
// days.
func OverlapDays(pStart, pEnd, eStart, eEnd date.Date) int64 {
	var (
		ps, pe = pStart.Ordinal(), pEnd.Ordinal()
		es, ee = eStart.Ordinal(), eEnd.Ordinal()
	)
	if pe <= ps || ee <= es || ee <= ps || es >= pe {
		return 0
	}
	return min(ee, pe) - max(es, ps)
}

// Prorate returns the total of the items within [start, end), in major
// currency units. Every occurrence of an item spreads its amount evenly over
// the days of its span. The sum is exact and rounded once at the end. The
// total of an empty or reversed window is zero.
func Prorate(items []*entry.Item, start, end date.Date) (decimal.Decimal, error) {
	total := new(big.Rat)
	for _, it := range items {
		r, err := share(it, start, end)
		if err != nil {
			return decimal.Zero, err
		}
		total.Add(total, r)
	}
	return toDecimal(total), nil
}

// Contribution is the share of a single item in a window.
type Contribution struct {
	Item   *entry.Item
	Amount decimal.Decimal
}

// Contributions returns the shares of the items within [start, end), in
// the order of items. Items which do not touch the window are omitted.
func Contributions(items []*entry.Item, start, end date.Date) ([]Contribution, error) {
	var res []Contribution
	for _, it := range items {
		r, err := share(it, start, end)
		if err != nil {
			return nil, err
		}
		if r.Sign() == 0 {
			continue
		}
		res = append(res, Contribution{Item: it, Amount: toDecimal(r)})
	}
	return res, nil
}

// share returns the exact share of the item within [start, end), in minor
// units.
func share(it *entry.Item, start, end date.Date) (*big.Rat, error) {
	var (
		res  = new(big.Rat)
		span = it.Span()
		err  error
	)
	if !start.Before(end) {
		return res, nil
	}
	visit := func(occ date.Date) bool {
		var occEnd date.Date
		if occEnd, err = occ.Add(span); err != nil {
			return false
		}
		overlap := OverlapDays(start, end, occ, occEnd)
		if overlap == 0 {
			return true
		}
		perDay := big.NewRat(it.Amount(), occ.DaysUntil(occEnd))
		res.Add(res, perDay.Mul(perDay, big.NewRat(overlap, 1)))
		return true
	}
	rep := it.Repetition()
	if rep == nil {
		visit(it.Anchor())
	} else if e := rep.Occurrences(it.Anchor(), end, visit); e != nil {
		return nil, e
	}
	if err != nil {
		return nil, err
	}
	return res, nil
}

func toDecimal(r *big.Rat) decimal.Decimal {
	num := decimal.NewFromBigInt(r.Num(), 0)
	if r.IsInt() {
		return num.Shift(-2)
	}
	return num.DivRound(decimal.NewFromBigInt(r.Denom(), 0), Precision).Shift(-2)
}
