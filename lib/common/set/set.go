package set

import "github.com/sboehler/tight/lib/common/compare"

// Set is a set of comparable values.
type Set[T comparable] map[T]struct{}

func New[T comparable]() Set[T] {
	return make(Set[T])
}

func Of[T comparable](ts ...T) Set[T] {
	res := New[T]()
	for _, t := range ts {
		res.Add(t)
	}
	return res
}

func (set Set[T]) Add(t T) {
	set[t] = struct{}{}
}

func (set Set[T]) Has(t T) bool {
	_, ok := set[t]
	return ok
}

func (set Set[T]) Remove(t T) {
	delete(set, t)
}

// Missing returns the elements of ts which are not in the set, in order.
func (set Set[T]) Missing(ts ...T) []T {
	var res []T
	for _, t := range ts {
		if !set.Has(t) {
			res = append(res, t)
		}
	}
	return res
}

func (set Set[T]) Sorted(cmp compare.Compare[T]) []T {
	res := make([]T, 0, len(set))
	for elem := range set {
		res = append(res, elem)
	}
	compare.Sort(res, cmp)
	return res
}
