package lsystem

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"go.uber.org/multierr"
)

var (
	ErrMalformedRule = errors.New("malformed rule")
	ErrDuplicateRule = errors.New("duplicate rule")
	ErrInvalidCanvas = errors.New("invalid canvas")
	ErrInvalidValue  = errors.New("invalid value")
)

// ConfigError reports user input rejected before any computation starts.
type ConfigError struct {
	Field string
	Value string
	Err   error
}

func (e *ConfigError) Error() string {
	if e.Value == "" {
		return fmt.Sprintf("%s: %v", e.Field, e.Err)
	}
	return fmt.Sprintf("%s %q: %v", e.Field, e.Value, e.Err)
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}

func configErr(field, value string, err error, format string, args ...any) *ConfigError {
	if format != "" {
		err = fmt.Errorf("%w: "+format, append([]any{err}, args...)...)
	}
	return &ConfigError{Field: field, Value: value, Err: err}
}

// ParseRule parses a rule of the form "F=>F+F". The left-hand side must be a
// single code point; the right-hand side may be empty.
func ParseRule(str string) (Rule, error) {
	str = strings.TrimSpace(str)
	lhs, rhs, found := strings.Cut(str, RuleSeparator)
	if !found {
		return Rule{}, configErr("rule", str, ErrMalformedRule, "missing %q", RuleSeparator)
	}
	if utf8.RuneCountInString(lhs) != 1 {
		return Rule{}, configErr("rule", str, ErrMalformedRule, "%q must be preceded by a single symbol", RuleSeparator)
	}
	r, _ := utf8.DecodeRuneInString(lhs)
	return NewRule(Symbol(r), ParseSymbols(rhs)), nil
}

// ParseRules parses every rule string. Blank entries are skipped. All
// problems are reported together.
func ParseRules(strs []string) (Rules, error) {
	rules := make(Rules, len(strs))
	var err error
	for _, str := range strs {
		if strings.TrimSpace(str) == "" {
			continue
		}
		rule, perr := ParseRule(str)
		if perr != nil {
			err = multierr.Append(err, perr)
			continue
		}
		if prev, exists := rules[rule.Predecessor]; exists {
			err = multierr.Append(err, configErr("rule", str, ErrDuplicateRule, "%q already defined by %q", rule.Predecessor, prev.String()))
			continue
		}
		rules[rule.Predecessor] = rule
	}
	if err != nil {
		return nil, err
	}
	return rules, nil
}

// ParseRuleLines parses one rule per line, the format used by text areas and
// rule files.
func ParseRuleLines(text string) (Rules, error) {
	return ParseRules(strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n"))
}
