package lsystem

import (
	"strings"

	"golang.org/x/exp/slices"
)

// RuleSeparator separates the predecessor from the successor in a rule string.
const RuleSeparator = "=>"

// Rule rewrites a single symbol into a sequence.
type Rule struct {
	Predecessor Symbol
	Successor   Sequence
}

func NewRule(predecessor Symbol, successor Sequence) Rule {
	return Rule{
		Predecessor: predecessor,
		Successor:   slices.Clone(successor),
	}
}

func (r Rule) String() string {
	var sb strings.Builder
	sb.WriteRune(rune(r.Predecessor))
	sb.WriteString(RuleSeparator)
	sb.WriteString(r.Successor.String())
	return sb.String()
}

// Rules maps each predecessor to its rule. Symbols without a rule rewrite to
// themselves.
type Rules map[Symbol]Rule

// Successor returns the replacement for s and whether a rule exists.
func (rs Rules) Successor(s Symbol) (Sequence, bool) {
	r, ok := rs[s]
	return r.Successor, ok
}

// Sorted returns the rules ordered by predecessor.
func (rs Rules) Sorted() []Rule {
	out := make([]Rule, 0, len(rs))
	for _, r := range rs {
		out = append(out, r)
	}
	slices.SortFunc(out, func(a, b Rule) int {
		return int(a.Predecessor) - int(b.Predecessor)
	})
	return out
}

func (rs Rules) String() string {
	sorted := rs.Sorted()
	parts := make([]string, len(sorted))
	for i, r := range sorted {
		parts[i] = r.String()
	}
	return strings.Join(parts, " ")
}

func (rs Rules) clone() Rules {
	out := make(Rules, len(rs))
	for k, r := range rs {
		out[k] = NewRule(r.Predecessor, r.Successor)
	}
	return out
}
