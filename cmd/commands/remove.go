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
	"strconv"

	"github.com/spf13/cobra"
	"go.uber.org/multierr"

	"github.com/sboehler/tight/lib/common/set"
	"github.com/sboehler/tight/lib/ledger"
)

// CreateRemoveCommand creates the command.
func CreateRemoveCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "remove <id>...",
		Aliases: []string{"rm"},
		Short:   "remove entries",
		Long:    `Remove the entries with the given ids. Nothing is removed if any id is unknown.`,

		Args: cobra.MinimumNArgs(1),

		RunE: runRemove,
	}
}

func runRemove(cmd *cobra.Command, args []string) error {
	var (
		ids  []uint64
		seen = set.New[uint64]()
		errs error
	)
	for _, arg := range args {
		id, err := strconv.ParseUint(arg, 10, 64)
		if err != nil {
			errs = multierr.Append(errs, fmt.Errorf("invalid id %q", arg))
			continue
		}
		if seen.Has(id) {
			continue
		}
		seen.Add(id)
		ids = append(ids, id)
	}
	if errs != nil {
		return errs
	}
	s, err := newSession(cmd)
	if err != nil {
		return err
	}
	defer s.close()
	return s.update(func(l *ledger.Ledger) error {
		for _, id := range ids {
			if _, ok := l.Find(id); !ok {
				errs = multierr.Append(errs, &ledger.NotFoundError{ID: id})
			}
		}
		if errs != nil {
			return errs
		}
		for _, id := range ids {
			it, _ := l.Find(id)
			if err := l.Remove(id); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed %v\n", it)
		}
		return nil
	})
}
