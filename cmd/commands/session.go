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
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sboehler/tight/lib/config"
	"github.com/sboehler/tight/lib/ledger"
	"github.com/sboehler/tight/lib/log"
)

// Names of the persistent flags of the root command.
const (
	FlagConfig  = "config"
	FlagLedger  = "ledger"
	FlagVerbose = "verbose"
	FlagColor   = "color"
)

// session holds the configuration and logger of a command invocation.
type session struct {
	cfg    *config.Config
	logger *zap.Logger
}

func newSession(cmd *cobra.Command) (*session, error) {
	flags := cmd.Flags()
	path, _ := flags.GetString(FlagConfig)
	if path == "" {
		path = config.DefaultPath()
	}
	if err := config.LoadEnv(); err != nil {
		return nil, err
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	if l, _ := flags.GetString(FlagLedger); l != "" {
		cfg.Ledger = l
	}
	if flags.Changed(FlagColor) {
		cfg.Color, _ = flags.GetBool(FlagColor)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	verbose, _ := flags.GetBool(FlagVerbose)
	s := &session{cfg: cfg, logger: log.Must(verbose)}
	s.logger.Debug("loaded configuration", zap.String("path", path), zap.String("ledger", cfg.Ledger))
	return s, nil
}

func (s *session) load() (*ledger.Ledger, error) {
	l, err := ledger.ReadFile(s.cfg.Ledger)
	if err != nil {
		return nil, err
	}
	s.logger.Debug("read ledger", zap.Int("entries", l.Len()))
	return l, nil
}

func (s *session) save(l *ledger.Ledger) error {
	if err := ledger.WriteFile(s.cfg.Ledger, l); err != nil {
		return err
	}
	s.logger.Debug("wrote ledger", zap.String("path", s.cfg.Ledger), zap.Int("entries", l.Len()))
	return nil
}

// update loads the ledger, applies f and saves the result.
func (s *session) update(f func(*ledger.Ledger) error) error {
	l, err := s.load()
	if err != nil {
		return err
	}
	if err := f(l); err != nil {
		return err
	}
	return s.save(l)
}

func (s *session) close() {
	_ = s.logger.Sync()
}
