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

// Package importer reads scheduled items from CSV files.
package importer

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/shopspring/decimal"
	"go.uber.org/multierr"
	"go.uber.org/zap"
	"golang.org/x/text/encoding/charmap"

	"github.com/sboehler/tight/lib/common/date"
	"github.com/sboehler/tight/lib/entry"
	"github.com/sboehler/tight/lib/ledger"
	"github.com/sboehler/tight/lib/schedule"
)

type column int

const (
	colDate column = iota
	colDescription
	colAmount
	colSpread
	colRepeat
	colEnd
	colTags
	numColumns
)

var columnNames = map[string]column{
	"date":        colDate,
	"description": colDescription,
	"amount":      colAmount,
	"spread":      colSpread,
	"repeat":      colRepeat,
	"end":         colEnd,
	"tags":        colTags,
}

var required = []column{colDate, colDescription, colAmount}

// Importer reads CSV files with a header row naming the columns date,
// description and amount, and optionally spread, repeat, end and tags.
// Amounts are given in major units with at most two decimals.
type Importer struct {
	// Comma is the field separator. It defaults to ','.
	Comma rune
	// Latin1 decodes the input as ISO 8859-1 instead of UTF-8.
	Latin1 bool
	Logger *zap.Logger
}

// Import reads items from r and inserts them into the ledger. Tags which
// are unknown to the ledger are added. Either all rows are imported or,
// if any row is invalid, none; the returned error lists every invalid row.
func (im *Importer) Import(r io.Reader, l *ledger.Ledger) (int, error) {
	logger := im.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	if im.Latin1 {
		r = charmap.ISO8859_1.NewDecoder().Reader(r)
	}
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1
	if im.Comma != 0 {
		reader.Comma = im.Comma
	}
	header, err := reader.Read()
	if err == io.EOF {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	index, err := parseHeader(header)
	if err != nil {
		return 0, err
	}
	var (
		items []*entry.Item
		errs  error
		id    = l.NextID()
	)
	for {
		rec, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			var perr *csv.ParseError
			if !errors.As(err, &perr) {
				return 0, err
			}
			errs = multierr.Append(errs, err)
			continue
		}
		line, _ := reader.FieldPos(0)
		it, err := parseRecord(id, index, rec)
		if err != nil {
			errs = multierr.Append(errs, fmt.Errorf("line %d: %w", line, err))
			continue
		}
		items = append(items, it)
		id++
	}
	if errs != nil {
		return 0, errs
	}
	for _, it := range items {
		for _, tag := range it.Tags() {
			if l.AddTag(tag) {
				logger.Info("adding tag", zap.String("tag", tag))
			}
		}
		l.Insert(it)
		logger.Debug("imported item", zap.Stringer("item", it))
	}
	return len(items), nil
}

func parseHeader(header []string) ([numColumns]int, error) {
	var index [numColumns]int
	for i := range index {
		index[i] = -1
	}
	for i, name := range header {
		col, ok := columnNames[strings.ToLower(strings.TrimSpace(name))]
		if !ok {
			return index, fmt.Errorf("unknown column %q", name)
		}
		if index[col] >= 0 {
			return index, fmt.Errorf("duplicate column %q", name)
		}
		index[col] = i
	}
	for _, col := range required {
		if index[col] < 0 {
			return index, fmt.Errorf("missing column %q", columnName(col))
		}
	}
	return index, nil
}

func columnName(col column) string {
	for name, c := range columnNames {
		if c == col {
			return name
		}
	}
	return ""
}

func parseRecord(id uint64, index [numColumns]int, rec []string) (*entry.Item, error) {
	field := func(col column) string {
		if i := index[col]; i >= 0 && i < len(rec) {
			return strings.TrimSpace(rec[i])
		}
		return ""
	}
	anchor, err := date.Parse(field(colDate))
	if err != nil {
		return nil, err
	}
	amount, err := ParseAmount(field(colAmount))
	if err != nil {
		return nil, err
	}
	var spread *date.Duration
	if s := field(colSpread); s != "" {
		d, err := date.ParseDuration(s)
		if err != nil {
			return nil, err
		}
		spread = &d
	}
	rep, err := schedule.ParseRepetition(field(colRepeat), field(colEnd), anchor)
	if err != nil {
		return nil, err
	}
	tags := strings.FieldsFunc(field(colTags), func(r rune) bool {
		return r == ' ' || r == ',' || r == ';'
	})
	return entry.New(id, field(colDescription), amount, anchor, spread, rep, tags)
}

var hundred = decimal.NewFromInt(100)

// ParseAmount parses an amount in major units, such as "-1'200.50", and
// returns it in minor units.
func ParseAmount(s string) (int64, error) {
	d, err := decimal.NewFromString(strings.ReplaceAll(s, "'", ""))
	if err != nil {
		return 0, fmt.Errorf("invalid amount %q: %w", s, err)
	}
	minor := d.Mul(hundred)
	if !minor.IsInteger() {
		return 0, fmt.Errorf("invalid amount %q: more than two decimals", s)
	}
	if !minor.Equal(decimal.NewFromInt(minor.IntPart())) {
		return 0, fmt.Errorf("invalid amount %q: out of range", s)
	}
	return minor.IntPart(), nil
}
