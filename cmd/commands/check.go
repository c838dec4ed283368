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

	"github.com/spf13/cobra"
	"go.uber.org/multierr"

	"github.com/sboehler/tight/cmd/flags"
	"github.com/sboehler/tight/lib/common/date"
	"github.com/sboehler/tight/lib/ledger"
)

// CreateCheckCommand creates the command.
func CreateCheckCommand() *cobra.Command {
	var r checkRunner

	c := &cobra.Command{
		Use:   "check [file]...",
		Short: "check ledger files",
		Long: `Check the given ledger files, or the configured ledger if no file is
given, and report every problem found. With --expired, also list the
entries which no longer affect totals after the given date.`,

		RunE: r.run,
	}
	r.setupFlags(c)
	return c
}

type checkRunner struct {
	expired bool
	date    flags.DateFlag
}

func (r *checkRunner) setupFlags(c *cobra.Command) {
	c.Flags().BoolVar(&r.expired, "expired", false, "list expired entries")
	c.Flags().Var(&r.date, "date", "reference date for --expired, defaults to today")
}

func (r *checkRunner) run(cmd *cobra.Command, args []string) error {
	s, err := newSession(cmd)
	if err != nil {
		return err
	}
	defer s.close()
	if len(args) == 0 {
		args = []string{s.cfg.Ledger}
	}
	var errs error
	for _, arg := range args {
		l, err := ledger.ReadFile(arg)
		if err != nil {
			errs = multierr.Append(errs, fmt.Errorf("%s: %w", arg, err))
			continue
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s: %d entries, %d tags\n", arg, l.Len(), len(l.Tags()))
		if r.expired {
			r.printExpired(cmd, l)
		}
	}
	return errs
}

func (r *checkRunner) printExpired(cmd *cobra.Command, l *ledger.Ledger) {
	d := r.date.ValueOr(date.Today())
	for _, it := range l.Entries() {
		h, ok := it.Horizon()
		if !ok || h.After(d) {
			// Entries are ordered by horizon.
			return
		}
		fmt.Fprintf(cmd.OutOrStdout(), "  expired on %v: %v\n", h, it)
	}
}
