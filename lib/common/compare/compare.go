package compare

import (
	"sort"

	"golang.org/x/exp/constraints"
)

type Order int

const (
	Smaller Order = -1
	Equal   Order = 0
	Greater Order = 1
)

func (o Order) String() string {
	switch o {
	case Smaller:
		return "smaller"
	case Equal:
		return "equal"
	case Greater:
		return "greater"
	}
	return "invalid"
}

type Compare[T any] func(t1, t2 T) Order

func Ordered[T constraints.Ordered](t1, t2 T) Order {
	if t1 < t2 {
		return Smaller
	}
	if t1 == t2 {
		return Equal
	}
	return Greater
}

// Optional lifts cmp to pointers. A nil pointer is greater than any
// non-nil value.
func Optional[T any](cmp Compare[T]) Compare[*T] {
	return func(t1, t2 *T) Order {
		switch {
		case t1 == nil && t2 == nil:
			return Equal
		case t1 == nil:
			return Greater
		case t2 == nil:
			return Smaller
		}
		return cmp(*t1, *t2)
	}
}

func Combine[T any](cmp ...Compare[T]) Compare[T] {
	return func(t1, t2 T) Order {
		for _, c := range cmp {
			if o := c(t1, t2); o != Equal {
				return o
			}
		}
		return Equal
	}
}

// Sort sorts ts stably.
func Sort[T any](ts []T, cmp Compare[T]) {
	sort.SliceStable(ts, func(i, j int) bool {
		return cmp(ts[i], ts[j]) == Smaller
	})
}
