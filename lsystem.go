// Package lsystem expands L-system grammars and turns the result into line
// segments fitted to a canvas.
package lsystem

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"golang.org/x/exp/slices"
)

// LSystem is an immutable grammar: an axiom, its rewriting rules, the symbols
// drawn as strokes, the turn angle in degrees and the number of generations.
type LSystem struct {
	Name       string
	Axiom      Sequence
	Rules      Rules
	Draw       SymbolSet
	Angle      float64
	Iterations int
}

// NewLSystem copies its arguments so later changes by the caller do not leak
// into the grammar.
func NewLSystem(axiom Sequence, rules Rules, draw SymbolSet, angle float64, iterations int) *LSystem {
	d := make(SymbolSet, len(draw))
	for s := range draw {
		d.Add(s)
	}
	return &LSystem{
		Axiom:      slices.Clone(axiom),
		Rules:      rules.clone(),
		Draw:       d,
		Angle:      angle,
		Iterations: iterations,
	}
}

// Parse builds an LSystem from the textual form used on the command line.
func Parse(axiom string, rules []string, draw string, angle float64, iterations int) (*LSystem, error) {
	if iterations < 0 {
		return nil, configErr("iterations", strconv.Itoa(iterations), ErrInvalidValue, "must not be negative")
	}
	if math.IsNaN(angle) || math.IsInf(angle, 0) {
		return nil, configErr("angle", ftoa(angle), ErrInvalidValue, "must be finite")
	}
	parsed, err := ParseRules(rules)
	if err != nil {
		return nil, err
	}
	return NewLSystem(ParseSymbols(axiom), parsed, NewSymbolSet(draw), angle, iterations), nil
}

// Expand rewrites axiom n times in lock-step. Symbols without a rule are
// copied unchanged. n <= 0 returns a copy of the axiom.
func Expand(axiom Sequence, rules Rules, n int) Sequence {
	pool := NewBufferPool(len(axiom))
	pool.Reset(axiom)
	for i := 0; i < n; i++ {
		applyRules(pool, rules)
	}
	return slices.Clone(pool.ReadAll())
}

// applyRules writes the next generation of the pool's active buffer and swaps.
func applyRules(pool *BufferPool, rules Rules) {
	for _, s := range pool.ReadAll() {
		if successor, ok := rules.Successor(s); ok {
			pool.AppendSlice(successor)
		} else {
			pool.Append(s)
		}
	}
	pool.Swap()
}

// Iterate returns the sequence after n generations.
func (l *LSystem) Iterate(n int) Sequence {
	return Expand(l.Axiom, l.Rules, n)
}

// FinalState returns the sequence after l.Iterations generations.
func (l *LSystem) FinalState() Sequence {
	return l.Iterate(l.Iterations)
}

// Generations returns the sequence length of generations 0 through n.
func (l *LSystem) Generations(n int) []int {
	lengths, _ := l.generations(n)
	return lengths
}

// generations expands n times in one pass, returning every generation's
// length and the last generation, which aliases the pool.
func (l *LSystem) generations(n int) ([]int, Sequence) {
	if n < 0 {
		n = 0
	}
	lengths := make([]int, 0, n+1)
	pool := NewBufferPool(len(l.Axiom))
	pool.Reset(l.Axiom)
	lengths = append(lengths, pool.GetLen())
	for i := 0; i < n; i++ {
		applyRules(pool, l.Rules)
		lengths = append(lengths, pool.GetLen())
	}
	return lengths, pool.ReadAll()
}

// Unruled returns the non-control symbols of the axiom and draw set that have
// no rule and therefore rewrite to themselves.
func (l *LSystem) Unruled() []Symbol {
	missing := make(SymbolSet)
	check := func(s Symbol) {
		if s.IsControl() {
			return
		}
		if _, ok := l.Rules[s]; !ok {
			missing.Add(s)
		}
	}
	for _, s := range l.Axiom {
		check(s)
	}
	for s := range l.Draw {
		check(s)
	}
	return missing.AsSlice()
}

func (l *LSystem) String() string {
	var sb strings.Builder
	if l.Name != "" {
		sb.WriteString(l.Name)
		sb.WriteString(": ")
	}
	fmt.Fprintf(&sb, "axiom=%q rules=[%s] draw=%q angle=%g iterations=%d",
		l.Axiom.String(), l.Rules.String(), l.Draw.String(), l.Angle, l.Iterations)
	return sb.String()
}
