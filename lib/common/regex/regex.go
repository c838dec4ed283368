// Package regex holds lists of regular expressions used as filters.
package regex

import (
	"regexp"
	"strings"
)

// Regexes matches a string if any of its members does.
type Regexes []*regexp.Regexp

// Compile compiles the patterns, which are matched case-insensitively.
func Compile(patterns ...string) (Regexes, error) {
	var res Regexes
	for _, p := range patterns {
		r, err := regexp.Compile("(?i)" + p)
		if err != nil {
			return nil, err
		}
		res.Add(r)
	}
	return res, nil
}

// Add adds a regex.
func (rxs *Regexes) Add(r *regexp.Regexp) {
	*rxs = append(*rxs, r)
}

// MatchString reports whether any regex matches s.
func (rxs Regexes) MatchString(s string) bool {
	for _, r := range rxs {
		if r.MatchString(s) {
			return true
		}
	}
	return false
}

func (rxs Regexes) String() string {
	ss := make([]string, 0, len(rxs))
	for _, r := range rxs {
		ss = append(ss, r.String())
	}
	return strings.Join(ss, ",")
}
