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
	"bufio"
	"io"

	"github.com/spf13/cobra"

	"github.com/sboehler/tight/cmd/flags"
	"github.com/sboehler/tight/lib/common/date"
	"github.com/sboehler/tight/lib/common/predicate"
	"github.com/sboehler/tight/lib/common/table"
	"github.com/sboehler/tight/lib/entry"
	"github.com/sboehler/tight/lib/report"
)

// CreateStatusCommand creates the command.
func CreateStatusCommand() *cobra.Command {
	var r statusRunner

	cmd := &cobra.Command{
		Use:   "status",
		Short: "show prorated totals",
		Long: `Show the prorated incomes and expenses of the day, week, month and year
ending on the given date. With --aligned, the calendar week, month and year
containing the date are used instead.`,

		Args: cobra.NoArgs,

		RunE: r.run,
	}
	r.setupFlags(cmd)
	return cmd
}

type statusRunner struct {
	date           flags.DateFlag
	aligned        bool
	intervals      flags.IntervalFlags
	tags           []string
	desc           flags.RegexFlag
	byTag, explain bool
	csv, thousands bool
	digits         int32
}

func (r *statusRunner) setupFlags(c *cobra.Command) {
	c.Flags().Var(&r.date, "date", "last day of the windows, defaults to today")
	c.Flags().BoolVar(&r.aligned, "aligned", false, "use calendar weeks, months and years")
	r.intervals.Setup(c)
	c.Flags().StringSliceVarP(&r.tags, "tag", "t", nil, "only include entries with any of the tags")
	c.Flags().Var(&r.desc, "desc", "only include entries whose description matches the regex")
	c.Flags().BoolVar(&r.byTag, "by-tag", false, "show a total per tag")
	c.Flags().BoolVarP(&r.explain, "explain", "e", false, "show the share of every entry")
	c.Flags().BoolVar(&r.csv, "csv", false, "render as CSV")
	c.Flags().BoolVarP(&r.thousands, "thousands", "k", false, "show numbers in units of 1000")
	c.Flags().Int32Var(&r.digits, "digits", 0, "round to number of digits")
}

func (r *statusRunner) run(cmd *cobra.Command, args []string) error {
	s, err := newSession(cmd)
	if err != nil {
		return err
	}
	defer s.close()
	l, err := s.load()
	if err != nil {
		return err
	}
	if !cmd.Flags().Changed("aligned") {
		r.aligned = s.cfg.Aligned
	}
	if !cmd.Flags().Changed("digits") {
		r.digits = s.cfg.Digits
	}
	status, err := report.Compute(cmd.Context(), l, report.Config{
		Date:    r.date.ValueOr(date.Today()),
		Aligned: r.aligned,
		Filter: predicate.And(
			predicate.ByTag[*entry.Item](r.tags...),
			predicate.ByDescription[*entry.Item](r.desc.Value()),
		),
		ByTag:     r.byTag,
		Explain:   r.explain,
		Intervals: r.intervals.Value(),
		Logger:    s.logger,
	})
	if err != nil {
		return err
	}
	out := bufio.NewWriter(cmd.OutOrStdout())
	defer out.Flush()
	tr := &table.TextRenderer{
		Color:     s.cfg.Color,
		Thousands: r.thousands,
		Round:     r.digits,
	}
	return render(out, new(report.Renderer).Render(status), r.csv, tr)
}

func render(w io.Writer, t *table.Table, csv bool, tr *table.TextRenderer) error {
	if csv {
		return new(table.CSVRenderer).Render(t, w)
	}
	return tr.Render(t, w)
}
