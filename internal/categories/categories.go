package categories

import (
	"errors"
	"fmt"
	"strings"

	"github.com/agnivade/levenshtein"
)

// ErrUnknown is returned when a name is not part of the category set.
var ErrUnknown = errors.New("unknown category")

// maxSuggestDistance bounds how far a typo may be from a real category.
const maxSuggestDistance = 3

// Defaults returns the built-in category set. The first entry is the
// default for new transactions.
func Defaults() []string {
	return []string{
		"Salário",
		"Freelance",
		"Casa",
		"Mobilidade",
		"Alimentação",
		"Investimentos",
		"Saúde",
		"Lazer",
	}
}

// Set is the fixed, ordered set of categories a transaction may use.
type Set struct {
	names  []string
	byName map[string]bool
}

// NewSet creates a Set, dropping blanks and duplicates.
func NewSet(names []string) *Set {
	s := &Set{byName: make(map[string]bool, len(names))}
	for _, n := range names {
		n = strings.TrimSpace(n)
		if n == "" || s.byName[n] {
			continue
		}
		s.names = append(s.names, n)
		s.byName[n] = true
	}
	return s
}

// All returns the category names in order.
func (s *Set) All() []string {
	return append([]string(nil), s.names...)
}

// Default returns the first category, or "" for an empty set.
func (s *Set) Default() string {
	if len(s.names) == 0 {
		return ""
	}
	return s.names[0]
}

// Exists reports whether name is exactly a category.
func (s *Set) Exists(name string) bool {
	return s.byName[name]
}

// Resolve maps user input to a category: exact match first, then a
// case-insensitive one. Unknown input yields ErrUnknown, with the closest
// category suggested when one is near enough.
func (s *Set) Resolve(input string) (string, error) {
	input = strings.TrimSpace(input)
	if s.byName[input] {
		return input, nil
	}
	for _, n := range s.names {
		if strings.EqualFold(n, input) {
			return n, nil
		}
	}
	if suggestion, ok := s.Closest(input); ok {
		return "", fmt.Errorf("%w %q (did you mean %q?)", ErrUnknown, input, suggestion)
	}
	return "", fmt.Errorf("%w %q", ErrUnknown, input)
}

// Closest returns the category with the smallest edit distance to input,
// ignoring case, if it is within maxSuggestDistance.
func (s *Set) Closest(input string) (string, bool) {
	best := ""
	bestDist := maxSuggestDistance + 1
	lower := strings.ToLower(input)
	for _, n := range s.names {
		d := levenshtein.ComputeDistance(lower, strings.ToLower(n))
		if d < bestDist {
			best, bestDist = n, d
		}
	}
	return best, best != ""
}
