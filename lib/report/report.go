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

// Package report computes prorated totals of a ledger for the windows
// ending on a given day.
package report

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/sboehler/tight/lib/amortize"
	"github.com/sboehler/tight/lib/common/date"
	"github.com/sboehler/tight/lib/common/predicate"
	"github.com/sboehler/tight/lib/entry"
	"github.com/sboehler/tight/lib/ledger"
)

// Config configures a status report.
type Config struct {
	// Date is the last day of every window.
	Date date.Date
	// Aligned selects calendar windows (week, month, year containing Date)
	// instead of windows ending on Date.
	Aligned bool
	// Filter selects the items to report on. Nil selects all items.
	Filter predicate.Predicate[*entry.Item]
	// ByTag adds a total for every tag of the ledger.
	ByTag bool
	// Explain adds the share of every item in each window.
	Explain bool
	// Intervals defaults to date.Intervals.
	Intervals []date.Interval
	Logger    *zap.Logger
}

// Status holds the totals of a ledger for a series of windows.
type Status struct {
	Date    date.Date
	Tags    []string
	Windows []*Window
}

// Window holds the totals for one reporting window, in major currency
// units.
type Window struct {
	Interval date.Interval
	Period   date.Period

	Income, Expenses, Total decimal.Decimal
	ByTag                   map[string]decimal.Decimal
	Contributions           []amortize.Contribution
}

// Saved returns the share of the income which is left after expenses. It
// returns false if there is no income.
func (w *Window) Saved() (decimal.Decimal, bool) {
	if !w.Income.IsPositive() {
		return decimal.Zero, false
	}
	return w.Total.Div(w.Income), true
}

// Compute computes the status of the ledger. The windows are evaluated
// concurrently; the ledger must not be modified until Compute returns.
func Compute(ctx context.Context, l *ledger.Ledger, cfg Config) (*Status, error) {
	var (
		logger    = cfg.Logger
		filter    = cfg.Filter
		intervals = cfg.Intervals
	)
	if logger == nil {
		logger = zap.NewNop()
	}
	if filter == nil {
		filter = predicate.True[*entry.Item]
	}
	if len(intervals) == 0 {
		intervals = date.Intervals
	}
	res := &Status{
		Date:    cfg.Date,
		Windows: make([]*Window, len(intervals)),
	}
	if cfg.ByTag {
		res.Tags = l.Tags()
	}
	g, ctx := errgroup.WithContext(ctx)
	for i, interval := range intervals {
		i, interval := i, interval
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			period, err := date.Window(cfg.Date, interval, cfg.Aligned)
			if err != nil {
				return err
			}
			var items []*entry.Item
			for _, it := range l.ReportBetween(period.Start, period.End) {
				if filter(it) {
					items = append(items, it)
				}
			}
			logger.Debug("computing window",
				zap.Stringer("interval", interval),
				zap.Stringer("period", period),
				zap.Int("items", len(items)))
			w, err := computeWindow(items, period, res.Tags, cfg.Explain)
			if err != nil {
				return fmt.Errorf("%v window %v: %w", interval, period, err)
			}
			w.Interval = interval
			res.Windows[i] = w
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return res, nil
}

func computeWindow(items []*entry.Item, period date.Period, tags []string, explain bool) (*Window, error) {
	var incomes, expenses []*entry.Item
	for _, it := range items {
		if it.IsIncome() {
			incomes = append(incomes, it)
		} else {
			expenses = append(expenses, it)
		}
	}
	var (
		w   = &Window{Period: period, ByTag: make(map[string]decimal.Decimal)}
		err error
	)
	if w.Income, err = amortize.Prorate(incomes, period.Start, period.End); err != nil {
		return nil, err
	}
	if w.Expenses, err = amortize.Prorate(expenses, period.Start, period.End); err != nil {
		return nil, err
	}
	if w.Total, err = amortize.Prorate(items, period.Start, period.End); err != nil {
		return nil, err
	}
	for _, tag := range tags {
		var tagged []*entry.Item
		for _, it := range items {
			if it.HasTag(tag) {
				tagged = append(tagged, it)
			}
		}
		if w.ByTag[tag], err = amortize.Prorate(tagged, period.Start, period.End); err != nil {
			return nil, err
		}
	}
	if explain {
		if w.Contributions, err = amortize.Contributions(items, period.Start, period.End); err != nil {
			return nil, err
		}
	}
	return w, nil
}
