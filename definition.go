package lsystem

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"
)

// Definition is the serialized form of an L-system, as stored in YAML files.
type Definition struct {
	Name       string   `yaml:"name"`
	Axiom      string   `yaml:"axiom"`
	Draw       string   `yaml:"draw"`
	Angle      float64  `yaml:"angle"`
	Iterations int      `yaml:"iterations"`
	Rules      []string `yaml:"rules"`
}

// Build validates the definition and returns the grammar.
func (d Definition) Build() (*LSystem, error) {
	l, err := Parse(d.Axiom, d.Rules, d.Draw, d.Angle, d.Iterations)
	if err != nil {
		if d.Name != "" {
			return nil, fmt.Errorf("%s: %w", d.Name, err)
		}
		return nil, err
	}
	l.Name = d.Name
	return l, nil
}

// DefinitionOf is the inverse of Build.
func DefinitionOf(l *LSystem) Definition {
	rules := l.Rules.Sorted()
	strs := make([]string, len(rules))
	for i, r := range rules {
		strs[i] = r.String()
	}
	return Definition{
		Name:       l.Name,
		Axiom:      l.Axiom.String(),
		Draw:       l.Draw.String(),
		Angle:      l.Angle,
		Iterations: l.Iterations,
		Rules:      strs,
	}
}

// LoadDefinitions reads either a single YAML definition or a list of them.
func LoadDefinitions(r io.Reader) ([]Definition, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading definitions: %w", err)
	}

	var node yaml.Node
	if err := yaml.Unmarshal(data, &node); err != nil {
		return nil, fmt.Errorf("parsing definitions: %w", err)
	}
	if len(node.Content) == 0 {
		return nil, nil
	}

	switch node.Content[0].Kind {
	case yaml.SequenceNode:
		var defs []Definition
		if err := node.Content[0].Decode(&defs); err != nil {
			return nil, fmt.Errorf("decoding definitions: %w", err)
		}
		return defs, nil
	case yaml.MappingNode:
		var def Definition
		if err := node.Content[0].Decode(&def); err != nil {
			return nil, fmt.Errorf("decoding definition: %w", err)
		}
		return []Definition{def}, nil
	default:
		return nil, fmt.Errorf("decoding definitions: expected a mapping or a sequence")
	}
}

// WriteDefinitions encodes defs as a YAML list.
func WriteDefinitions(w io.Writer, defs ...Definition) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(defs); err != nil {
		return err
	}
	return enc.Close()
}

//go:embed catalog.yaml
var catalogYAML []byte

var ErrUnknownPreset = errors.New("unknown preset")

// Catalog returns the built-in example systems.
func Catalog() []Definition {
	defs, err := LoadDefinitions(bytes.NewReader(catalogYAML))
	if err != nil {
		panic("lsystem: embedded catalog: " + err.Error())
	}
	return defs
}

// Lookup finds a definition by name in defs, ignoring case.
func Lookup(defs []Definition, name string) (Definition, error) {
	for _, d := range defs {
		if strings.EqualFold(d.Name, name) {
			return d, nil
		}
	}
	return Definition{}, configErr("preset", name, ErrUnknownPreset, "")
}
