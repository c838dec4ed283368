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

package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sboehler/tight/cmd/flags"
	"github.com/sboehler/tight/lib/common/date"
	"github.com/sboehler/tight/lib/entry"
	"github.com/sboehler/tight/lib/importer"
	"github.com/sboehler/tight/lib/ledger"
	"github.com/sboehler/tight/lib/schedule"
)

// CreateAddCommand creates the command.
func CreateAddCommand() *cobra.Command {
	var r addRunner

	cmd := &cobra.Command{
		Use:   "add",
		Short: "add an income or an expense",
		Long: `Add an income or an expense to the ledger.

The amount is given in major units and is recorded as an expense unless
--income is set. Schedules look like "daily", "every 2 weeks on mon,fri",
"monthly on the 1st,15th", "quarterly on the last friday" or "yearly".
Repetitions end "never" (default), "after 3 times" or on a date.`,

		Args: cobra.NoArgs,

		RunE: r.run,
	}
	r.setupFlags(cmd)
	return cmd
}

type addRunner struct {
	desc, amount   string
	income         bool
	date           flags.DateFlag
	spread         flags.DurationFlag
	repeat, repEnd string
	tags           []string
}

func (r *addRunner) setupFlags(c *cobra.Command) {
	c.Flags().StringVarP(&r.desc, "desc", "d", "", "description")
	c.Flags().StringVarP(&r.amount, "amount", "a", "", "amount, e.g. 12.50")
	c.Flags().BoolVarP(&r.income, "income", "i", false, "record an income instead of an expense")
	c.Flags().Var(&r.date, "date", "date of the (first) occurrence, defaults to today")
	c.Flags().VarP(&r.spread, "spread", "s", "spread the amount evenly, e.g. \"1 month\"")
	c.Flags().StringVarP(&r.repeat, "repeat", "r", "", "schedule, e.g. \"monthly on the 1st\"")
	c.Flags().StringVar(&r.repEnd, "end", "", "end of the repetition, e.g. \"after 3 times\" or \"2021-12-31\"")
	c.Flags().StringSliceVarP(&r.tags, "tag", "t", nil, "tags (must be known to the ledger)")
	c.MarkFlagRequired("desc")
	c.MarkFlagRequired("amount")
}

func (r *addRunner) run(cmd *cobra.Command, args []string) error {
	s, err := newSession(cmd)
	if err != nil {
		return err
	}
	defer s.close()
	return s.update(func(l *ledger.Ledger) error {
		it, err := r.item(l)
		if err != nil {
			return err
		}
		l.Insert(it)
		s.logger.Debug("added item", zap.Stringer("item", it))
		fmt.Fprintf(cmd.OutOrStdout(), "Added %v\n", it)
		return nil
	})
}

func (r *addRunner) item(l *ledger.Ledger) (*entry.Item, error) {
	amount, err := importer.ParseAmount(r.amount)
	if err != nil {
		return nil, err
	}
	if amount < 0 || strings.HasPrefix(strings.TrimSpace(r.amount), "-") {
		return nil, fmt.Errorf("amount %q: expected an unsigned amount, use --income for incomes", r.amount)
	}
	if !r.income {
		amount = -amount
	}
	for _, tag := range r.tags {
		if !l.HasTag(tag) {
			return nil, fmt.Errorf("unknown tag %q, add it with \"tight tags add %s\"", tag, tag)
		}
	}
	anchor := r.date.ValueOr(date.Today())
	rep, err := schedule.ParseRepetition(r.repeat, r.repEnd, anchor)
	if err != nil {
		return nil, err
	}
	return entry.New(l.NextID(), r.desc, amount, anchor, r.spread.Value(), rep, r.tags)
}
