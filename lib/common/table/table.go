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

// Package table lays out report rows in columns. Columns are organized in
// groups which share their width in text output.
package table

import (
	"github.com/shopspring/decimal"
)

// Table is a matrix of table cells.
type Table struct {
	groups []int
	rows   []*Row
}

// New creates a table whose columns are split into groups of the given
// sizes.
func New(groups ...int) *Table {
	t := new(Table)
	for g, size := range groups {
		for i := 0; i < size; i++ {
			t.groups = append(t.groups, g)
		}
	}
	return t
}

// Width returns the number of columns.
func (t *Table) Width() int {
	return len(t.groups)
}

// AddRow adds a row.
func (t *Table) AddRow() *Row {
	row := &Row{cells: make([]cell, 0, t.Width())}
	t.rows = append(t.rows, row)
	return row
}

// AddSeparatorRow adds a row of separators.
func (t *Table) AddSeparatorRow() {
	t.fill(SeparatorCell{})
}

// AddEmptyRow adds a row of empty cells.
func (t *Table) AddEmptyRow() {
	t.fill(emptyCell{})
}

func (t *Table) fill(c cell) {
	r := t.AddRow()
	for len(r.cells) < t.Width() {
		r.add(c)
	}
}

// Row is a table row.
type Row struct {
	cells []cell
}

func (r *Row) add(c cell) *Row {
	r.cells = append(r.cells, c)
	return r
}

// AddEmpty adds an empty cell.
func (r *Row) AddEmpty() *Row {
	return r.add(emptyCell{})
}

// AddText adds a text cell.
func (r *Row) AddText(content string, align Alignment) *Row {
	return r.add(textCell{content: content, align: align})
}

// AddIndented adds a left-aligned text cell indented by indent spaces.
func (r *Row) AddIndented(content string, indent int) *Row {
	return r.add(textCell{content: content, align: Left, indent: indent})
}

// AddNumber adds an amount.
func (r *Row) AddNumber(n decimal.Decimal) *Row {
	return r.add(numberCell{n})
}

// AddPercent adds a cell showing the ratio n as a percentage.
func (r *Row) AddPercent(n decimal.Decimal) *Row {
	return r.add(percentCell{n})
}

// FillEmpty pads the row with empty cells up to the table width.
func (r *Row) FillEmpty() {
	for len(r.cells) < cap(r.cells) {
		r.AddEmpty()
	}
}

// Alignment is the alignment of a text cell.
type Alignment int

const (
	// Left aligns to the left.
	Left Alignment = iota
	// Right aligns to the right.
	Right
	// Center centers.
	Center
)

type cell interface {
	// plain returns the unformatted content.
	plain() string
}

type textCell struct {
	content string
	align   Alignment
	indent  int
}

func (c textCell) plain() string { return c.content }

type numberCell struct {
	n decimal.Decimal
}

func (c numberCell) plain() string { return c.n.String() }

type percentCell struct {
	n decimal.Decimal
}

func (c percentCell) plain() string { return c.n.StringFixed(4) }

// SeparatorCell is a cell containing a horizontal line.
type SeparatorCell struct{}

func (SeparatorCell) plain() string { return "" }

type emptyCell struct{}

func (emptyCell) plain() string { return "" }

func isSep(c cell) bool {
	_, ok := c.(SeparatorCell)
	return ok
}
