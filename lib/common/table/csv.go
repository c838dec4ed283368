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
	"encoding/csv"
	"io"
)

// CSVRenderer renders a table as CSV. Rows without content, such as
// separators, are skipped.
type CSVRenderer struct{}

// Render writes the table to w.
func (r *CSVRenderer) Render(t *Table, w io.Writer) error {
	writer := csv.NewWriter(w)
	for _, row := range t.rows {
		rec, ok := record(row)
		if !ok {
			continue
		}
		if err := writer.Write(rec); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}

func record(row *Row) ([]string, bool) {
	var (
		rec = make([]string, 0, len(row.cells))
		ok  bool
	)
	for _, c := range row.cells {
		s := c.plain()
		ok = ok || s != ""
		rec = append(rec, s)
	}
	return rec, ok
}
