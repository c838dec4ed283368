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

package report

import (
	"fmt"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/sboehler/tight/lib/common/compare"
	"github.com/sboehler/tight/lib/common/date"
	"github.com/sboehler/tight/lib/common/table"
	"github.com/sboehler/tight/lib/entry"
)

// Renderer renders a status report.
type Renderer struct {
	table  *table.Table
	status *Status
}

// Render renders a status report to a table with one column per window.
func (rn *Renderer) Render(s *Status) *table.Table {
	rn.table = table.New(1, len(s.Windows))
	rn.status = s

	rn.table.AddSeparatorRow()

	header := rn.table.AddRow().AddText("Window", table.Center)
	for _, w := range s.Windows {
		header.AddText(w.Interval.String(), table.Center)
	}
	from := rn.table.AddRow().AddText("From", table.Left)
	to := rn.table.AddRow().AddText("To", table.Left)
	for _, w := range s.Windows {
		from.AddText(w.Period.Start.String(), table.Right)
		to.AddText(lastDay(w.Period).String(), table.Right)
	}
	rn.table.AddSeparatorRow()

	rn.renderValues("Income", func(w *Window) decimal.Decimal { return w.Income })
	rn.renderValues("Expenses", func(w *Window) decimal.Decimal { return w.Expenses })
	rn.table.AddSeparatorRow()

	if len(s.Tags) > 0 {
		for _, tag := range s.Tags {
			tag := tag
			rn.renderValues(tag, func(w *Window) decimal.Decimal { return w.ByTag[tag] })
		}
		rn.table.AddSeparatorRow()
	}

	if rn.renderContributions() {
		rn.table.AddSeparatorRow()
	}

	rn.renderValues("Total", func(w *Window) decimal.Decimal { return w.Total })
	saved := rn.table.AddRow().AddText("Saved", table.Left)
	for _, w := range s.Windows {
		if r, ok := w.Saved(); ok {
			saved.AddPercent(r)
		} else {
			saved.AddEmpty()
		}
	}
	rn.table.AddSeparatorRow()

	res := rn.table
	rn.table, rn.status = nil, nil
	return res
}

func (rn *Renderer) renderValues(label string, value func(*Window) decimal.Decimal) {
	row := rn.table.AddRow().AddText(label, table.Left)
	for _, w := range rn.status.Windows {
		row.AddNumber(value(w))
	}
}

// renderContributions adds a row per item contributing to any window, in
// ledger order.
func (rn *Renderer) renderContributions() bool {
	var (
		items  []*entry.Item
		shares = make(map[*entry.Item][]decimal.Decimal)
	)
	for i, w := range rn.status.Windows {
		for _, c := range w.Contributions {
			s, ok := shares[c.Item]
			if !ok {
				items = append(items, c.Item)
				s = make([]decimal.Decimal, len(rn.status.Windows))
				shares[c.Item] = s
			}
			s[i] = c.Amount
		}
	}
	sort.SliceStable(items, func(i, j int) bool {
		return entry.Compare(items[i], items[j]) == compare.Smaller
	})
	for _, it := range items {
		row := rn.table.AddRow().AddIndented(fmt.Sprintf("#%d %s", it.ID(), it.Description()), 2)
		for _, share := range shares[it] {
			row.AddNumber(share)
		}
	}
	return len(items) > 0
}

func lastDay(p date.Period) date.Date {
	if d, err := p.End.AddDays(-1); err == nil {
		return d
	}
	return p.End
}
