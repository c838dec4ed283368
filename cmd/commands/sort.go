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
	"golang.org/x/sync/errgroup"

	"github.com/sboehler/tight/lib/ledger"
)

// CreateSortCommand creates the command.
func CreateSortCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "sort [file]...",
		Short: "sort ledger files",
		Long: `Sort and rewrite the given ledger files in-place, or the configured ledger
if no file is given. Comments and formatting are not preserved.`,

		RunE: runSort,
	}
}

const concurrency = 10

func runSort(cmd *cobra.Command, args []string) error {
	s, err := newSession(cmd)
	if err != nil {
		return err
	}
	defer s.close()
	if len(args) == 0 {
		args = []string{s.cfg.Ledger}
	}
	var (
		g    errgroup.Group
		errs = make([]error, len(args))
	)
	g.SetLimit(concurrency)
	for i, arg := range args {
		i, arg := i, arg
		g.Go(func() error {
			errs[i] = sortFile(arg)
			return nil
		})
	}
	g.Wait()
	for i, arg := range args {
		if errs[i] == nil {
			fmt.Fprintf(cmd.OutOrStdout(), "Sorted %s\n", arg)
		}
	}
	return multierr.Combine(errs...)
}

func sortFile(target string) error {
	l, err := ledger.ReadFile(target)
	if err != nil {
		return fmt.Errorf("%s: %w", target, err)
	}
	l.Sort()
	return ledger.WriteFile(target, l)
}
