package lsystem

import (
	"strings"

	"golang.org/x/exp/slices"
)

// Symbol is a single code point of an L-system alphabet.
type Symbol rune

// Control symbols understood by the turtle.
const (
	TurnLeft  Symbol = '+'
	TurnRight Symbol = '-'
	Reverse   Symbol = '|'
	Push      Symbol = '['
	Pop       Symbol = ']'
)

// IsControl reports whether s is one of the turtle's reserved symbols.
func (s Symbol) IsControl() bool {
	switch s {
	case TurnLeft, TurnRight, Reverse, Push, Pop:
		return true
	}
	return false
}

func (s Symbol) String() string {
	return string(rune(s))
}

// Sequence is an ordered run of symbols, the state of an L-system.
type Sequence []Symbol

// ParseSymbols splits str into its code points.
func ParseSymbols(str string) Sequence {
	seq := make(Sequence, 0, len(str))
	for _, r := range str {
		seq = append(seq, Symbol(r))
	}
	return seq
}

func (seq Sequence) String() string {
	var sb strings.Builder
	sb.Grow(len(seq))
	for _, s := range seq {
		sb.WriteRune(rune(s))
	}
	return sb.String()
}

// Count returns how many times s occurs in seq.
func (seq Sequence) Count(s Symbol) int {
	n := 0
	for _, t := range seq {
		if t == s {
			n++
		}
	}
	return n
}

type SymbolSet map[Symbol]struct{}

// NewSymbolSet builds a set from every code point in str.
func NewSymbolSet(str string) SymbolSet {
	ts := make(SymbolSet, len(str))
	for _, r := range str {
		ts.Add(Symbol(r))
	}
	return ts
}

func (ts SymbolSet) Contains(t Symbol) bool {
	_, exists := ts[t]
	return exists
}

func (ts SymbolSet) Add(t Symbol) {
	ts[t] = struct{}{}
}

// AsSlice returns the members in code point order.
func (ts SymbolSet) AsSlice() []Symbol {
	slice := make([]Symbol, 0, len(ts))
	for t := range ts {
		slice = append(slice, t)
	}
	slices.Sort(slice)
	return slice
}

func (ts SymbolSet) String() string {
	return Sequence(ts.AsSlice()).String()
}
