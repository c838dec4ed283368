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
	"bytes"
	"os"
	"path/filepath"
	"time"

	"github.com/natefinch/atomic"
	"github.com/spf13/cobra"

	"github.com/sboehler/tight/cmd/flags"
	"github.com/sboehler/tight/lib/common/date"
	"github.com/sboehler/tight/lib/common/predicate"
	"github.com/sboehler/tight/lib/entry"
	"github.com/sboehler/tight/lib/ical"
)

// CreateExportCommand creates the command.
func CreateExportCommand() *cobra.Command {
	var r exportRunner

	cmd := &cobra.Command{
		Use:   "export-ics",
		Short: "export entries as an iCalendar file",
		Long: `Export entries as all-day events. Repeated entries become recurring events
where the schedule can be expressed as an RRULE, otherwise their occurrences
before --until are exported one by one.`,

		Args: cobra.NoArgs,

		RunE: r.run,
	}
	r.setupFlags(cmd)
	return cmd
}

type exportRunner struct {
	until  flags.DateFlag
	tags   []string
	output string
}

func (r *exportRunner) setupFlags(c *cobra.Command) {
	c.Flags().Var(&r.until, "until", "last day of expanded occurrences, defaults to one year from today")
	c.Flags().StringSliceVarP(&r.tags, "tag", "t", nil, "only export entries with any of the tags")
	c.Flags().StringVarP(&r.output, "output", "o", "", "write to a file instead of stdout")
}

func (r *exportRunner) run(cmd *cobra.Command, args []string) error {
	s, err := newSession(cmd)
	if err != nil {
		return err
	}
	defer s.close()
	l, err := s.load()
	if err != nil {
		return err
	}
	until := r.until.Value()
	if until.IsZero() {
		if until, err = date.Today().AddYears(1); err != nil {
			return err
		}
	}
	limit, err := until.AddDays(1)
	if err != nil {
		return err
	}
	e := ical.Exporter{
		Limit:  limit,
		Stamp:  time.Now().UTC(),
		Logger: s.logger,
	}
	items := l.Filter(predicate.ByTag[*entry.Item](r.tags...))
	if r.output == "" {
		out := bufio.NewWriter(cmd.OutOrStdout())
		defer out.Flush()
		return e.Export(out, items)
	}
	var buf bytes.Buffer
	if err := e.Export(&buf, items); err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(r.output), 0o755); err != nil {
		return err
	}
	return atomic.WriteFile(r.output, &buf)
}
