package set

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/sboehler/tight/lib/common/compare"
)

func TestSet(t *testing.T) {
	s := Of("rent", "food", "rent")
	s.Add("car")
	s.Remove("food")

	if diff := cmp.Diff([]string{"car", "rent"}, s.Sorted(compare.Ordered[string])); diff != "" {
		t.Errorf("Sorted(): unexpected diff (-want, +got):\n%s", diff)
	}
	if !s.Has("rent") || s.Has("food") {
		t.Errorf("Has(): got rent=%t food=%t, want true, false", s.Has("rent"), s.Has("food"))
	}
	if diff := cmp.Diff([]string{"food", "fun"}, s.Missing("rent", "food", "car", "fun")); diff != "" {
		t.Errorf("Missing(): unexpected diff (-want, +got):\n%s", diff)
	}
}
