package predicate

import (
	"github.com/sboehler/tight/lib/common/regex"
)

type Predicate[T any] func(T) bool

func And[T any](predicates ...Predicate[T]) Predicate[T] {
	return func(t T) bool {
		for _, pred := range predicates {
			if !pred(t) {
				return false
			}
		}
		return true
	}
}

func True[T any](_ T) bool {
	return true
}

type Described interface {
	Description() string
}

// ByDescription matches if any of the regexes matches the description. It
// matches everything if no regexes are given.
func ByDescription[T Described](rxs regex.Regexes) Predicate[T] {
	if len(rxs) == 0 {
		return True[T]
	}
	return func(t T) bool {
		return rxs.MatchString(t.Description())
	}
}

type Tagged interface {
	HasTag(string) bool
}

// ByTag matches if t carries any of the given tags. It matches everything
// if no tags are given.
func ByTag[T Tagged](tags ...string) Predicate[T] {
	if len(tags) == 0 {
		return True[T]
	}
	return func(t T) bool {
		for _, tag := range tags {
			if t.HasTag(tag) {
				return true
			}
		}
		return false
	}
}

func Or[T any](fs ...Predicate[T]) Predicate[T] {
	return func(t T) bool {
		for _, f := range fs {
			if f(t) {
				return true
			}
		}
		return false
	}
}

func Not[T any](f Predicate[T]) Predicate[T] {
	return func(t T) bool {
		return !f(t)
	}
}
