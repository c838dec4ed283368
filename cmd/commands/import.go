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
	"os"
	"unicode/utf8"

	"github.com/cheggaaa/pb/v3"
	"github.com/spf13/cobra"

	"github.com/sboehler/tight/lib/importer"
	"github.com/sboehler/tight/lib/ledger"
)

// CreateImportCommand creates the command.
func CreateImportCommand() *cobra.Command {
	var r importRunner

	cmd := &cobra.Command{
		Use:   "import <file>",
		Short: "import entries from a CSV file",
		Long: `Import entries from a CSV file. The first row names the columns: date,
description and amount are required, spread, repeat, end and tags are
optional. Amounts are signed and given in major units. Unknown tags are
added to the ledger.`,

		Args: cobra.ExactArgs(1),

		RunE: r.run,
	}
	r.setupFlags(cmd)
	return cmd
}

type importRunner struct {
	latin1, dryRun, progress bool
	comma                    string
}

func (r *importRunner) setupFlags(c *cobra.Command) {
	c.Flags().BoolVar(&r.latin1, "latin1", false, "decode the file as ISO 8859-1")
	c.Flags().StringVar(&r.comma, "comma", ",", "field separator")
	c.Flags().BoolVarP(&r.dryRun, "dry-run", "n", false, "print the entries without saving them")
	c.Flags().BoolVar(&r.progress, "progress", true, "show a progress bar")
}

func (r *importRunner) run(cmd *cobra.Command, args []string) error {
	comma, n := utf8.DecodeRuneInString(r.comma)
	if n == 0 || n != len(r.comma) {
		return fmt.Errorf("invalid separator %q", r.comma)
	}
	s, err := newSession(cmd)
	if err != nil {
		return err
	}
	defer s.close()
	l, err := s.load()
	if err != nil {
		return err
	}
	before := l.NextID()
	if err := r.read(cmd, args[0], l, comma, s); err != nil {
		return err
	}
	for _, it := range l.Entries() {
		if it.ID() >= before {
			fmt.Fprintf(cmd.OutOrStdout(), "Imported %v\n", it)
		}
	}
	if r.dryRun {
		return nil
	}
	return s.save(l)
}

func (r *importRunner) read(cmd *cobra.Command, path string, l *ledger.Ledger, comma rune, s *session) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()
	info, err := f.Stat()
	if err != nil {
		return err
	}
	bar := pb.New64(info.Size())
	bar.SetWriter(cmd.ErrOrStderr())
	if r.progress {
		bar.Start()
		defer bar.Finish()
	}
	im := importer.Importer{
		Comma:  comma,
		Latin1: r.latin1,
		Logger: s.logger,
	}
	_, err = im.Import(bar.NewProxyReader(f), l)
	return err
}
