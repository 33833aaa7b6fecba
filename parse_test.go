package lsystem

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/multierr"
)

func TestParseRule(t *testing.T) {
	tests := []struct {
		in   string
		pred Symbol
		succ string
	}{
		{"F=>F+F", 'F', "F+F"},
		{"  X=>F-[[X]+X]+F[+FX]-X ", 'X', "F-[[X]+X]+F[+FX]-X"},
		{"X=>", 'X', ""},
		{"λ=>λλ", 'λ', "λλ"},
		{"F=>F=>F", 'F', "F=>F"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			r, err := ParseRule(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.pred, r.Predecessor)
			assert.Equal(t, tt.succ, r.Successor.String())
		})
	}
}

func TestParseRuleMalformed(t *testing.T) {
	for _, in := range []string{"F", "F->FF", "=>FF", "FF=>F", ""} {
		t.Run(in, func(t *testing.T) {
			_, err := ParseRule(in)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrMalformedRule)

			var cfg *ConfigError
			require.True(t, errors.As(err, &cfg))
			assert.Equal(t, "rule", cfg.Field)
		})
	}
}

func TestParseRules(t *testing.T) {
	rules, err := ParseRules([]string{"A=>-BF+AFA+FB-", "", "B=>+AF-BFB-FA+"})
	require.NoError(t, err)
	assert.Len(t, rules, 2)
	assert.Equal(t, "A=>-BF+AFA+FB- B=>+AF-BFB-FA+", rules.String())

	succ, ok := rules.Successor('A')
	assert.True(t, ok)
	assert.Equal(t, "-BF+AFA+FB-", succ.String())
	_, ok = rules.Successor('F')
	assert.False(t, ok)
}

func TestParseRulesReportsEveryProblem(t *testing.T) {
	_, err := ParseRules([]string{"F=>FF", "G", "F=>F+F", "GH=>G"})
	require.Error(t, err)

	errs := multierr.Errors(err)
	require.Len(t, errs, 3)
	assert.ErrorIs(t, errs[0], ErrMalformedRule)
	assert.ErrorIs(t, errs[1], ErrDuplicateRule)
	assert.ErrorIs(t, errs[2], ErrMalformedRule)
	assert.Contains(t, errs[1].Error(), `"F=>F+F"`)
}

func TestParseRuleLines(t *testing.T) {
	rules, err := ParseRuleLines("X=>X+YF+\r\nY=>-FX-Y\n\nF=>F\n")
	require.NoError(t, err)
	assert.Equal(t, "F=>F X=>X+YF+ Y=>-FX-Y", rules.String())
}

func TestConfigErrorMessage(t *testing.T) {
	err := &ConfigError{Field: "width", Value: "-1", Err: ErrInvalidCanvas}
	assert.Equal(t, `width "-1": invalid canvas`, err.Error())
	err = &ConfigError{Field: "axiom", Err: ErrInvalidValue}
	assert.Equal(t, "axiom: invalid value", err.Error())
}

func TestParseNonFiniteAngle(t *testing.T) {
	for _, angle := range []float64{math.NaN(), math.Inf(1), math.Inf(-1)} {
		_, err := Parse("F", []string{"F=>F+F"}, "F", angle, 1)
		var cerr *ConfigError
		require.ErrorAs(t, err, &cerr, "angle %v", angle)
		assert.Equal(t, "angle", cerr.Field)
		assert.ErrorIs(t, err, ErrInvalidValue)
	}

	_, err := Definition{Name: "spin", Axiom: "F", Draw: "F", Angle: math.Inf(1)}.Build()
	assert.ErrorIs(t, err, ErrInvalidValue)
}
