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

	"github.com/sboehler/tight/lib/ledger"
)

// CreatePrintCommand creates the command.
func CreatePrintCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "print",
		Short: "print the ledger",
		Long:  `Print the configured ledger in its canonical form.`,

		Args: cobra.NoArgs,

		RunE: runPrint,
	}
}

func runPrint(cmd *cobra.Command, args []string) error {
	s, err := newSession(cmd)
	if err != nil {
		return err
	}
	defer s.close()
	l, err := s.load()
	if err != nil {
		return err
	}
	w := bufio.NewWriter(cmd.OutOrStdout())
	defer w.Flush()
	return ledger.Encode(w, l)
}
