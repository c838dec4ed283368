package report

import (
	"strconv"
	"strings"

	"github.com/sboehler/tight/lib/common/table"
	"github.com/sboehler/tight/lib/entry"
)

// List renders items to a table with one row per item.
func List(items []*entry.Item) *table.Table {
	t := table.New(1, 1, 1, 1, 1, 1, 1, 1)
	t.AddSeparatorRow()
	t.AddRow().
		AddText("ID", table.Center).
		AddText("Date", table.Center).
		AddText("Description", table.Center).
		AddText("Amount", table.Center).
		AddText("Spread", table.Center).
		AddText("Repeats", table.Center).
		AddText("Horizon", table.Center).
		AddText("Tags", table.Center)
	t.AddSeparatorRow()
	for _, it := range items {
		row := t.AddRow().
			AddText(strconv.FormatUint(it.ID(), 10), table.Right).
			AddText(it.Anchor().String(), table.Left).
			AddText(it.Description(), table.Left).
			AddNumber(it.Value())
		if s, ok := it.Spread(); ok {
			row.AddText(s.String(), table.Left)
		} else {
			row.AddEmpty()
		}
		if rep := it.Repetition(); rep != nil {
			row.AddText(rep.String(), table.Left)
		} else {
			row.AddEmpty()
		}
		if h, ok := it.Horizon(); ok {
			row.AddText(h.String(), table.Left)
		} else {
			row.AddText("open", table.Left)
		}
		row.AddText(strings.Join(it.Tags(), ", "), table.Left)
	}
	t.AddSeparatorRow()
	return t
}
