package importer

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"go.uber.org/multierr"

	"github.com/sboehler/tight/lib/ledger"
)

const statement = `date,description,amount,spread,repeat,end,tags
2020-11-01,Rent,-1'200,1 month,monthly,,home
2020-11-25, Salary ,5000.00,,monthly on the 25th,after 12 times,
2020-07-01,Holidays,-1500.50,10 days,,,"travel,fun"
`

func summarize(l *ledger.Ledger) []string {
	var res []string
	for _, it := range l.Entries() {
		res = append(res, it.String())
	}
	return res
}

func TestImport(t *testing.T) {
	l := ledger.New()

	n, err := new(Importer).Import(strings.NewReader(statement), l)

	if err != nil {
		t.Fatal(err)
	}
	if n != 3 {
		t.Errorf("Import() = %d, want 3", n)
	}
	want := []string{
		"Holidays: -1500.50 on 2020-07-01 (spread over 10 days) tags: fun, travel [id=3]",
		"Salary: 5000.00 on 2020-11-25 (repeats monthly on the 25th after 12 times) [id=2]",
		"Rent: -1200.00 on 2020-11-01 (spread over 1 month, repeats monthly on the 1st) tags: home [id=1]",
	}
	if diff := cmp.Diff(want, summarize(l)); diff != "" {
		t.Error(diff)
	}
	if diff := cmp.Diff([]string{"fun", "home", "travel"}, l.Tags()); diff != "" {
		t.Error(diff)
	}
}

func TestImportContinuesIDs(t *testing.T) {
	l := ledger.New()
	if _, err := new(Importer).Import(strings.NewReader(statement), l); err != nil {
		t.Fatal(err)
	}
	input := "Date;Amount;Description\n2020-12-24;-99.95;Presents\n"

	if _, err := (&Importer{Comma: ';'}).Import(strings.NewReader(input), l); err != nil {
		t.Fatal(err)
	}

	it, ok := l.Find(4)
	if !ok {
		t.Fatal("Find(4): not found")
	}
	if it.Description() != "Presents" || it.Amount() != -9995 {
		t.Errorf("Find(4) = %v", it)
	}
}

func TestImportLatin1(t *testing.T) {
	l := ledger.New()
	input := "date,description,amount\n2020-11-02,Caf\xe9,-4.50\n"

	if _, err := (&Importer{Latin1: true}).Import(strings.NewReader(input), l); err != nil {
		t.Fatal(err)
	}

	if got := l.Entries()[0].Description(); got != "Café" {
		t.Errorf("Description() = %q, want %q", got, "Café")
	}
}

func TestImportRejectsInvalidRows(t *testing.T) {
	l := ledger.New()
	input := `date,description,amount,repeat
2020-11-31,Bad date,-10,
2020-11-01,Bad amount,-10.001,
2020-11-01,Bad repeat,-10,every 0 days
2020-11-01,Fine,-10,weekly
`

	n, err := new(Importer).Import(strings.NewReader(input), l)

	if err == nil {
		t.Fatal("Import(): want error")
	}
	if got := len(multierr.Errors(err)); got != 3 {
		t.Errorf("got %d errors, want 3: %v", got, err)
	}
	if !strings.Contains(err.Error(), "line 3:") {
		t.Errorf("error %q does not name line 3", err)
	}
	if n != 0 || l.Len() != 0 {
		t.Errorf("imported %d items, ledger has %d, want none", n, l.Len())
	}
}

func TestImportHeaderErrors(t *testing.T) {
	for _, input := range []string{
		"date,description\n",
		"date,description,amount,amount\n",
		"date,description,amount,category\n",
	} {
		if _, err := new(Importer).Import(strings.NewReader(input), ledger.New()); err == nil {
			t.Errorf("Import(%q): want error", input)
		}
	}
}

func TestParseAmount(t *testing.T) {
	var tests = []struct {
		input string
		want  int64
		err   bool
	}{
		{input: "0", want: 0},
		{input: "12", want: 1200},
		{input: "-12.5", want: -1250},
		{input: "1'000.05", want: 100005},
		{input: "0.001", err: true},
		{input: "abc", err: true},
		{input: "", err: true},
	}
	for _, test := range tests {
		got, err := ParseAmount(test.input)
		if (err != nil) != test.err {
			t.Errorf("ParseAmount(%q): unexpected error state %v", test.input, err)
			continue
		}
		if got != test.want {
			t.Errorf("ParseAmount(%q) = %d, want %d", test.input, got, test.want)
		}
	}
}
