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

package ledger

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/natefinch/atomic"
	"go.uber.org/multierr"
	"gopkg.in/yaml.v2"

	"github.com/sboehler/tight/lib/common/date"
	"github.com/sboehler/tight/lib/common/set"
	"github.com/sboehler/tight/lib/entry"
	"github.com/sboehler/tight/lib/schedule"
)

// Version is the schema version of ledger files.
const Version = 1

// UnsupportedSchemaError is returned for ledger files with an unknown
// schema version.
type UnsupportedSchemaError struct {
	Version int
}

func (e *UnsupportedSchemaError) Error() string {
	return fmt.Sprintf("unsupported ledger version %d (want %d)", e.Version, Version)
}

type document struct {
	Version int      `yaml:"version"`
	Tags    []string `yaml:"tags,omitempty"`
	Entries []record `yaml:"entries"`
}

type record struct {
	ID          uint64         `yaml:"id"`
	Description string         `yaml:"description"`
	Amount      int64          `yaml:"amount"`
	Date        date.Date      `yaml:"date"`
	Spread      *date.Duration `yaml:"spread,omitempty"`
	Repeat      string         `yaml:"repeat,omitempty"`
	End         string         `yaml:"end,omitempty"`
	Tags        []string       `yaml:"tags,omitempty,flow"`
}

func newRecord(it *entry.Item) record {
	r := record{
		ID:          it.ID(),
		Description: it.Description(),
		Amount:      it.Amount(),
		Date:        it.Anchor(),
		Tags:        it.Tags(),
	}
	if s, ok := it.Spread(); ok {
		r.Spread = &s
	}
	if rep := it.Repetition(); rep != nil {
		r.Repeat = rep.Rule.String()
		if _, never := rep.End.(schedule.Never); !never && rep.End != nil {
			r.End = rep.End.String()
		}
	}
	return r
}

func (r record) item() (*entry.Item, error) {
	rep, err := schedule.ParseRepetition(r.Repeat, r.End, r.Date)
	if err != nil {
		return nil, err
	}
	return entry.New(r.ID, r.Description, r.Amount, r.Date, r.Spread, rep, r.Tags)
}

// Decode reads a ledger document. Every invalid entry, duplicate id and
// unknown tag is reported. The entries are sorted after loading.
func Decode(r io.Reader) (*Ledger, error) {
	var doc document
	dec := yaml.NewDecoder(r)
	dec.SetStrict(true)
	if err := dec.Decode(&doc); err != nil {
		if err == io.EOF {
			return New(), nil
		}
		return nil, err
	}
	if doc.Version != Version {
		return nil, &UnsupportedSchemaError{doc.Version}
	}
	var (
		res  = New()
		ids  = set.New[uint64]()
		errs error
	)
	for _, tag := range doc.Tags {
		res.AddTag(tag)
	}
	for _, rec := range doc.Entries {
		it, err := rec.item()
		if err != nil {
			errs = multierr.Append(errs, fmt.Errorf("entry %d: %w", rec.ID, err))
			continue
		}
		if ids.Has(it.ID()) {
			errs = multierr.Append(errs, fmt.Errorf("entry %d: duplicate id", it.ID()))
			continue
		}
		ids.Add(it.ID())
		for _, tag := range res.tags.Missing(it.Tags()...) {
			errs = multierr.Append(errs, fmt.Errorf("entry %d: unknown tag %q", it.ID(), tag))
		}
		res.entries = append(res.entries, it)
	}
	if errs != nil {
		return nil, errs
	}
	res.Sort()
	return res, nil
}

// Encode writes the ledger as a document.
func Encode(w io.Writer, l *Ledger) (err error) {
	doc := document{
		Version: Version,
		Tags:    l.Tags(),
		Entries: make([]record, 0, len(l.entries)),
	}
	for _, e := range l.entries {
		doc.Entries = append(doc.Entries, newRecord(e))
	}
	enc := yaml.NewEncoder(w)
	defer multierr.AppendInvoke(&err, multierr.Close(enc))
	return enc.Encode(doc)
}

// ReadFile loads the ledger from the given path. A missing file yields an
// empty ledger.
func ReadFile(path string) (*Ledger, error) {
	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return New(), nil
	}
	if err != nil {
		return nil, err
	}
	defer f.Close()
	l, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return l, nil
}

// WriteFile atomically replaces the file at path with the ledger.
func WriteFile(path string, l *Ledger) error {
	var buf bytes.Buffer
	if err := Encode(&buf, l); err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return atomic.WriteFile(path, &buf)
}
