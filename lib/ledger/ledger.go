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

// Package ledger implements an ordered collection of scheduled items.
package ledger

import (
	"fmt"

	"github.com/sboehler/tight/lib/common/compare"
	"github.com/sboehler/tight/lib/common/date"
	"github.com/sboehler/tight/lib/common/predicate"
	"github.com/sboehler/tight/lib/common/set"
	"github.com/sboehler/tight/lib/entry"
)

// NotFoundError is returned when an id does not exist in the ledger.
type NotFoundError struct {
	ID uint64
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("no entry with id %d", e.ID)
}

// Ledger holds entries sorted by entry.Compare, together with the set of
// known tags. A ledger is not safe for concurrent modification.
type Ledger struct {
	tags    set.Set[string]
	entries []*entry.Item
}

// New creates an empty ledger.
func New() *Ledger {
	return &Ledger{tags: set.New[string]()}
}

// Insert adds the item before the first entry which is greater.
func (l *Ledger) Insert(it *entry.Item) {
	index := len(l.entries)
	for i, e := range l.entries {
		if entry.Compare(e, it) == compare.Greater {
			index = i
			break
		}
	}
	l.entries = append(l.entries, nil)
	copy(l.entries[index+1:], l.entries[index:])
	l.entries[index] = it
}

func (l *Ledger) indexOf(id uint64) int {
	for i, e := range l.entries {
		if e.ID() == id {
			return i
		}
	}
	return -1
}

// Remove deletes the entry with the given id.
func (l *Ledger) Remove(id uint64) error {
	index := l.indexOf(id)
	if index < 0 {
		return &NotFoundError{id}
	}
	l.entries = append(l.entries[:index], l.entries[index+1:]...)
	return nil
}

// Find returns the entry with the given id.
func (l *Ledger) Find(id uint64) (*entry.Item, bool) {
	index := l.indexOf(id)
	if index < 0 {
		return nil, false
	}
	return l.entries[index], true
}

// ReportBetween returns the entries which may affect the window between
// start and end. It skips the leading entries whose horizon is not after
// start and stops at the first following entry whose anchor is after end.
// The result is a pre-filter: it relies on horizons and anchors growing
// together and may be inexact for items with very long schedules.
func (l *Ledger) ReportBetween(start, end date.Date) []*entry.Item {
	var i int
	for ; i < len(l.entries); i++ {
		if h, ok := l.entries[i].Horizon(); !ok || h.After(start) {
			break
		}
	}
	j := i
	for ; j < len(l.entries); j++ {
		if l.entries[j].Anchor().After(end) {
			break
		}
	}
	return l.entries[i:j:j]
}

// Entries returns the sorted entries. The slice must not be modified.
func (l *Ledger) Entries() []*entry.Item {
	return l.entries
}

// Len returns the number of entries.
func (l *Ledger) Len() int {
	return len(l.entries)
}

// NextID returns an id which is larger than every id in the ledger.
func (l *Ledger) NextID() uint64 {
	var max uint64
	for _, e := range l.entries {
		if e.ID() > max {
			max = e.ID()
		}
	}
	return max + 1
}

// Sort restores the order of the entries.
func (l *Ledger) Sort() {
	compare.Sort(l.entries, entry.Compare)
}

// Tags returns the known tags in alphabetical order.
func (l *Ledger) Tags() []string {
	return l.tags.Sorted(compare.Ordered[string])
}

// HasTag reports whether the tag is known.
func (l *Ledger) HasTag(tag string) bool {
	return l.tags.Has(tag)
}

// AddTag registers a tag. It returns false if the tag was already known.
func (l *Ledger) AddTag(tag string) bool {
	if l.tags.Has(tag) {
		return false
	}
	l.tags.Add(tag)
	return true
}

// RemoveTag unregisters a tag and replaces every entry carrying it by a
// copy without the tag. It returns the number of replaced entries.
func (l *Ledger) RemoveTag(tag string) (int, error) {
	if !l.tags.Has(tag) {
		return 0, fmt.Errorf("unknown tag %q", tag)
	}
	l.tags.Remove(tag)
	var n int
	for i, e := range l.entries {
		if e.HasTag(tag) {
			l.entries[i] = e.WithoutTag(tag)
			n++
		}
	}
	return n, nil
}

// Filter returns the entries for which pred holds, in order.
func (l *Ledger) Filter(pred predicate.Predicate[*entry.Item]) []*entry.Item {
	var res []*entry.Item
	for _, e := range l.entries {
		if pred(e) {
			res = append(res, e)
		}
	}
	return res
}
