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
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"go.uber.org/multierr"

	"github.com/sboehler/tight/lib/common/date"
	"github.com/sboehler/tight/lib/entry"
	"github.com/sboehler/tight/lib/schedule"
)

const document1 = `version: 1
tags: [home, food]
entries:
- id: 2
  description: Rent
  amount: -120000
  date: 2020-11-01
  spread: 1 month
  repeat: monthly on the 1st
  tags: [home]
- id: 1
  description: Groceries
  amount: -4550
  date: 2020-11-03
  tags: [food]
- id: 3
  description: Gym
  amount: -3000
  date: 2020-01-15
  repeat: every 2 weeks on mon,thu
  end: after 10 times
- id: 4
  description: Bonus
  amount: 100000
  date: 2020-12-20
  spread: 10 days
  repeat: yearly
  end: until 2023-12-31
`

func TestDecode(t *testing.T) {
	l, err := Decode(strings.NewReader(document1))
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]uint64{3, 1, 4, 2}, ids(l.Entries())); diff != "" {
		t.Errorf("entries are not sorted (-want, +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"food", "home"}, l.Tags()); diff != "" {
		t.Errorf("Tags(): unexpected diff (-want, +got):\n%s", diff)
	}
	rent, ok := l.Find(2)
	if !ok {
		t.Fatal("Find(2): not found")
	}
	want := "Rent: -1200.00 on 2020-11-01 (spread over 1 month, repeats monthly on the 1st) tags: home [id=2]"
	if got := rent.String(); got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
	gym, _ := l.Find(3)
	if got, want := gym.Repetition().String(), "every 2 weeks on mon,thu after 10 times"; got != want {
		t.Errorf("Repetition() = %q, want %q", got, want)
	}
}

func TestEncodeDecode(t *testing.T) {
	l, err := Decode(strings.NewReader(document1))
	if err != nil {
		t.Fatal(err)
	}
	var buf bytes.Buffer
	if err := Encode(&buf, l); err != nil {
		t.Fatal(err)
	}
	got, err := Decode(&buf)
	if err != nil {
		t.Fatalf("Decode(Encode()): %v\n%s", err, buf.String())
	}
	if diff := cmp.Diff(render(l), render(got)); diff != "" {
		t.Errorf("unexpected diff (-want, +got):\n%s", diff)
	}
}

func render(l *Ledger) []string {
	var res []string
	for _, e := range l.Entries() {
		res = append(res, e.String())
	}
	return append(res, l.Tags()...)
}

func TestDecodeEmpty(t *testing.T) {
	l, err := Decode(strings.NewReader(""))
	if err != nil {
		t.Fatal(err)
	}
	if l.Len() != 0 {
		t.Errorf("Len() = %d, want 0", l.Len())
	}
}

func TestDecodeUnsupportedVersion(t *testing.T) {
	_, err := Decode(strings.NewReader("version: 2\nentries: []\n"))
	var unsupported *UnsupportedSchemaError
	if !errors.As(err, &unsupported) || unsupported.Version != 2 {
		t.Errorf("Decode(): got %v, want *UnsupportedSchemaError", err)
	}
}

func TestDecodeUnknownField(t *testing.T) {
	if _, err := Decode(strings.NewReader("version: 1\nfoo: bar\n")); err == nil {
		t.Errorf("Decode(): want error for unknown field")
	}
}

func TestDecodeReportsAllErrors(t *testing.T) {
	const doc = `version: 1
tags: [food]
entries:
- id: 1
  description: ok
  amount: 100
  date: 2020-11-01
- id: 1
  description: duplicate
  amount: 100
  date: 2020-11-02
- id: 2
  description: bad spread
  amount: 100
  date: 2020-11-02
  spread: 0 days
- id: 3
  description: bad count
  amount: 100
  date: 2020-11-02
  repeat: daily
  end: after 0 times
- id: 4
  description: unknown tag
  amount: 100
  date: 2020-11-02
  tags: [food, fun]
`
	_, err := Decode(strings.NewReader(doc))
	if got := len(multierr.Errors(err)); got != 4 {
		t.Fatalf("Decode(): got %d errors, want 4: %v", got, err)
	}
	var invalid *schedule.InvalidScheduleError
	if !errors.As(err, &invalid) {
		t.Errorf("Decode(): got %v, want a *schedule.InvalidScheduleError among the errors", err)
	}
}

func TestReadWriteFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "ledger.yaml")

	l, err := ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile() on a missing file: %v", err)
	}
	l.AddTag("food")
	it, err := entry.New(l.NextID(), "Groceries", -4550, date.MustParse("2020-11-03"), nil, nil, []string{"food"})
	if err != nil {
		t.Fatal(err)
	}
	l.Insert(it)
	if err := WriteFile(path, l); err != nil {
		t.Fatal(err)
	}

	got, err := ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(render(l), render(got)); diff != "" {
		t.Errorf("unexpected diff (-want, +got):\n%s", diff)
	}
}
