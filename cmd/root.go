// Copyright 2020 Silvio Böhler
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

// Package cmd is the main command file for Cobra
package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/sboehler/tight/cmd/commands"
	"github.com/sboehler/tight/cmd/completion"
)

// CreateCmd creates the root command.
func CreateCmd(version string) *cobra.Command {
	c := &cobra.Command{
		Use:     "tight",
		Short:   "tight is a budgeting tool for recurring incomes and expenses",
		Long:    `tight spreads recurring incomes and expenses over time and shows what they amount to per day, week, month and year.`,
		Version: version,

		SilenceUsage:  true,
		SilenceErrors: true,
	}
	c.PersistentFlags().String(commands.FlagConfig, "", "config file (default is $XDG_CONFIG_HOME/tight/config.yaml)")
	c.PersistentFlags().StringP(commands.FlagLedger, "l", "", "ledger file, overrides the config file and $TIGHT_LEDGER")
	c.PersistentFlags().BoolP(commands.FlagVerbose, "v", false, "log debug output")
	c.PersistentFlags().Bool(commands.FlagColor, true, "print output in color")
	c.AddCommand(
		commands.CreateAddCommand(),
		commands.CreateRemoveCommand(),
		commands.CreateListCommand(),
		commands.CreateStatusCommand(),
		commands.CreateTagsCommand(),
		commands.CreateSortCommand(),
		commands.CreateCheckCommand(),
		commands.CreatePrintCommand(),
		commands.CreateImportCommand(),
		commands.CreateExportCommand(),
		completion.CreateCmd(c),
	)
	return c
}

// Execute runs the root command and exits with a non-zero status on
// errors. This is called by main.main().
func Execute(version string) {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	c := CreateCmd(version)
	if err := c.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(c.ErrOrStderr(), err)
		stop()
		os.Exit(1)
	}
}
