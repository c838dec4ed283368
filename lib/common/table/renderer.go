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

package table

import (
	"io"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/fatih/color"
	"github.com/shopspring/decimal"
)

// TextRenderer renders a table as boxed text. Positive amounts are shown
// in green and negative amounts in red if Color is set.
type TextRenderer struct {
	Color     bool
	Thousands bool
	Round     int32
}

var (
	green = color.New(color.FgGreen)
	red   = color.New(color.FgRed)
)

// Render writes the table to w.
func (r *TextRenderer) Render(t *Table, w io.Writer) error {
	color.NoColor = !r.Color
	var (
		b      strings.Builder
		widths = r.widths(t)
	)
	for _, row := range t.rows {
		if len(row.cells) > 0 {
			r.renderRow(&b, row, widths)
		}
	}
	b.WriteByte('\n')
	_, err := io.WriteString(w, b.String())
	return err
}

// widths returns the column widths. Columns of a group share the width
// of the widest one.
func (r *TextRenderer) widths(t *Table) []int {
	var (
		widths = make([]int, t.Width())
		groups = make(map[int]int)
	)
	for _, row := range t.rows {
		for i, c := range row.cells {
			widths[i] = max(widths[i], r.width(c))
		}
	}
	for i, w := range widths {
		groups[t.groups[i]] = max(groups[t.groups[i]], w)
	}
	for i := range widths {
		widths[i] = groups[t.groups[i]]
	}
	return widths
}

func (r *TextRenderer) width(c cell) int {
	switch t := c.(type) {
	case textCell:
		if t.align == Left {
			return t.indent + runes(t.content)
		}
		return runes(t.content)
	case numberCell:
		return runes(r.numToString(t.n))
	case percentCell:
		return runes(percentToString(t.n))
	}
	return 0
}

func (r *TextRenderer) renderRow(b *strings.Builder, row *Row, widths []int) {
	if isSep(row.cells[0]) {
		b.WriteString("+-")
	} else {
		b.WriteString("| ")
	}
	for i, c := range row.cells {
		r.renderCell(b, c, widths[i])
		if i < len(row.cells)-1 {
			b.WriteString(junction(c, row.cells[i+1]))
		}
	}
	if isSep(row.cells[len(row.cells)-1]) {
		b.WriteString("-+\n")
	} else {
		b.WriteString(" |\n")
	}
}

// renderCell writes c padded to l runes.
func (r *TextRenderer) renderCell(b *strings.Builder, c cell, l int) {
	switch t := c.(type) {
	case SeparatorCell:
		b.WriteString(repeat("-", l))
	case textCell:
		var before int
		switch t.align {
		case Left:
			before = t.indent
		case Right:
			before = l - runes(t.content)
		case Center:
			before = (l - runes(t.content)) / 2
		}
		pad(b, before, t.content, l-before-runes(t.content))
	case numberCell:
		s := r.numToString(t.n)
		pad(b, l-runes(s), colorize(t.n, s), 0)
	case percentCell:
		s := percentToString(t.n)
		pad(b, l-runes(s), s, 0)
	default:
		b.WriteString(repeat(" ", l))
	}
}

func pad(b *strings.Builder, before int, s string, after int) {
	b.WriteString(repeat(" ", before))
	b.WriteString(s)
	b.WriteString(repeat(" ", after))
}

func repeat(s string, n int) string {
	if n <= 0 {
		return ""
	}
	return strings.Repeat(s, n)
}

func runes(s string) int {
	return utf8.RuneCountInString(s)
}

func colorize(n decimal.Decimal, s string) string {
	switch n.Sign() {
	case -1:
		return red.Sprint(s)
	case 1:
		return green.Sprint(s)
	}
	return s
}

func junction(c1, c2 cell) string {
	switch s1, s2 := isSep(c1), isSep(c2); {
	case s1 && s2:
		return "-+-"
	case s1:
		return "-+ "
	case s2:
		return " +-"
	default:
		return " | "
	}
}

var (
	thousand = decimal.NewFromInt(1000)
	hundred  = decimal.NewFromInt(100)
)

func (r *TextRenderer) numToString(d decimal.Decimal) string {
	if r.Thousands {
		d = d.Div(thousand)
	}
	return addThousandsSep(d.StringFixed(r.Round))
}

func percentToString(d decimal.Decimal) string {
	return d.Mul(hundred).StringFixed(1) + "%"
}

// addThousandsSep inserts commas into the integer part of a formatted
// number.
func addThousandsSep(s string) string {
	point := strings.IndexByte(s, '.')
	if point < 0 {
		point = len(s)
	}
	var (
		b      strings.Builder
		digits bool
	)
	for i, ch := range s[:point] {
		if digits && (point-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(ch)
		digits = digits || unicode.IsDigit(ch)
	}
	b.WriteString(s[point:])
	return b.String()
}
