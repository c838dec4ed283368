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
	"unicode"

	"github.com/spf13/cobra"

	"github.com/sboehler/tight/lib/ledger"
)

// CreateTagsCommand creates the command.
func CreateTagsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tags",
		Short: "manage tags",
		Long:  `List, add and remove the tags of the ledger.`,

		Args: cobra.NoArgs,

		RunE: runListTags,
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "list",
			Short: "list tags",
			Args:  cobra.NoArgs,
			RunE:  runListTags,
		},
		&cobra.Command{
			Use:   "add <tag>...",
			Short: "add tags",
			Args:  cobra.MinimumNArgs(1),
			RunE:  runAddTags,
		},
		&cobra.Command{
			Use:   "remove <tag>...",
			Short: "remove tags from the ledger and all its entries",
			Args:  cobra.MinimumNArgs(1),
			RunE:  runRemoveTags,
		},
	)
	return cmd
}

func runListTags(cmd *cobra.Command, args []string) error {
	s, err := newSession(cmd)
	if err != nil {
		return err
	}
	defer s.close()
	l, err := s.load()
	if err != nil {
		return err
	}
	for _, tag := range l.Tags() {
		var n int
		for _, it := range l.Entries() {
			if it.HasTag(tag) {
				n++
			}
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s (%d)\n", tag, n)
	}
	return nil
}

func validTag(tag string) error {
	if tag == "" || strings.IndexFunc(tag, func(r rune) bool {
		return unicode.IsSpace(r) || r == ',' || r == ';'
	}) >= 0 {
		return fmt.Errorf("invalid tag %q", tag)
	}
	return nil
}

func runAddTags(cmd *cobra.Command, args []string) error {
	for _, tag := range args {
		if err := validTag(tag); err != nil {
			return err
		}
	}
	s, err := newSession(cmd)
	if err != nil {
		return err
	}
	defer s.close()
	return s.update(func(l *ledger.Ledger) error {
		for _, tag := range args {
			if !l.AddTag(tag) {
				return fmt.Errorf("tag %q exists already", tag)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added tag %s\n", tag)
		}
		return nil
	})
}

func runRemoveTags(cmd *cobra.Command, args []string) error {
	s, err := newSession(cmd)
	if err != nil {
		return err
	}
	defer s.close()
	return s.update(func(l *ledger.Ledger) error {
		for _, tag := range args {
			n, err := l.RemoveTag(tag)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed tag %s from %d entries\n", tag, n)
		}
		return nil
	})
}
