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

	"github.com/spf13/cobra"

	"github.com/sboehler/tight/cmd/flags"
	"github.com/sboehler/tight/lib/common/predicate"
	"github.com/sboehler/tight/lib/common/table"
	"github.com/sboehler/tight/lib/entry"
	"github.com/sboehler/tight/lib/report"
)

// CreateListCommand creates the command.
func CreateListCommand() *cobra.Command {
	var r listRunner

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "list entries",
		Long:    `List the entries of the ledger, ordered by the date on which they stop affecting totals.`,

		Args: cobra.NoArgs,

		RunE: r.run,
	}
	r.setupFlags(cmd)
	return cmd
}

type listRunner struct {
	tags []string
	desc flags.RegexFlag
	csv  bool
}

func (r *listRunner) setupFlags(c *cobra.Command) {
	c.Flags().StringSliceVarP(&r.tags, "tag", "t", nil, "only list entries with any of the tags")
	c.Flags().Var(&r.desc, "desc", "only list entries whose description matches the regex")
	c.Flags().BoolVar(&r.csv, "csv", false, "render as CSV")
}

func (r *listRunner) run(cmd *cobra.Command, args []string) error {
	s, err := newSession(cmd)
	if err != nil {
		return err
	}
	defer s.close()
	l, err := s.load()
	if err != nil {
		return err
	}
	items := l.Filter(predicate.And(
		predicate.ByTag[*entry.Item](r.tags...),
		predicate.ByDescription[*entry.Item](r.desc.Value()),
	))
	out := bufio.NewWriter(cmd.OutOrStdout())
	defer out.Flush()
	return render(out, report.List(items), r.csv, &table.TextRenderer{Color: s.cfg.Color, Round: 2})
}
