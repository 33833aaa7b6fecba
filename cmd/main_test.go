package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runCLI(args ...string) (code int, stdout, stderr string) {
	var out, errb bytes.Buffer
	code = run(args, &out, &errb)
	return code, out.String(), errb.String()
}

func TestRunPositional(t *testing.T) {
	code, out, stderr := runCLI("F", "F", "90", "1", "F=>F+F-F-F+F")
	require.Equal(t, 0, code, stderr)
	assert.Contains(t, out, "<svg")
	assert.Equal(t, 5, strings.Count(out, "<line"))
}

func TestRunPreset(t *testing.T) {
	code, out, stderr := runCLI("-preset", "snowflake", "-n", "1", "-width", "50", "-height", "40")
	require.Equal(t, 0, code, stderr)
	assert.Equal(t, 12, strings.Count(out, "<line"))
	assert.Contains(t, out, "<title>snowflake</title>")
}

func TestRunConfigFile(t *testing.T) {
	dir := t.TempDir()
	cfg := filepath.Join(dir, "systems.yaml")
	require.NoError(t, os.WriteFile(cfg, []byte(`
- name: line
  axiom: F
  draw: F
  angle: 90
  iterations: 2
  rules: ["F=>FF"]
- name: corner
  axiom: F+F
  draw: F
  angle: 90
  iterations: 0
`), 0o644))
	out := filepath.Join(dir, "corner.svg")

	code, stdout, stderr := runCLI("-config", cfg, "-name", "corner", "-o", out)
	require.Equal(t, 0, code, stderr)
	assert.Empty(t, stdout)
	assert.Contains(t, stderr, "wrote image")

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, 2, strings.Count(string(data), "<line"))
}

func TestRunPNGAndAnalysis(t *testing.T) {
	dir := t.TempDir()
	img := filepath.Join(dir, "dragon.png")
	chart := filepath.Join(dir, "growth.html")

	code, _, stderr := runCLI("-preset", "dragon", "-n", "6", "-format", "png", "-o", img, "-analyse", chart)
	require.Equal(t, 0, code, stderr)

	data, err := os.ReadFile(img)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("\x89PNG")))

	html, err := os.ReadFile(chart)
	require.NoError(t, err)
	assert.Contains(t, string(html), "echarts")
}

func TestRunWarnings(t *testing.T) {
	code, _, stderr := runCLI("-v", "FX]", "FG", "60", "2", "F=>F[+F]")
	require.Equal(t, 0, code, stderr)
	assert.Contains(t, stderr, "no rule for symbol")
	assert.Contains(t, stderr, "unbalanced brackets")
	assert.Contains(t, stderr, "expanded")
}

func TestRunNothingToDraw(t *testing.T) {
	code, out, stderr := runCLI("X", "F", "90", "3", "X=>X+X")
	require.Equal(t, 0, code, stderr)
	assert.Contains(t, stderr, "nothing to draw")
	assert.Contains(t, out, "</svg>")
	assert.Zero(t, strings.Count(out, "<line"))
}

func TestRunConfigurationErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
		msg  string
	}{
		{"malformed rule", []string{"F", "F", "90", "1", "F->FF"}, "malformed rule"},
		{"duplicate rule", []string{"F", "F", "90", "1", "F=>FF", "F=>F"}, "duplicate rule"},
		{"bad angle", []string{"F", "F", "ninety", "1"}, "angle"},
		{"negative iterations", []string{"F", "F", "90", "-1"}, "iterations"},
		{"zero width", []string{"-width", "0", "F", "F", "90", "1"}, "invalid canvas"},
		{"bad unit", []string{"-units", "ft", "F", "F", "90", "1"}, "invalid canvas"},
		{"unknown preset", []string{"-preset", "fern"}, "unknown preset"},
		{"missing config", []string{"-config", "/does/not/exist.yaml"}, "opening config"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, out, stderr := runCLI(tt.args...)
			assert.Equal(t, 1, code)
			assert.Empty(t, out)
			assert.Contains(t, stderr, tt.msg)
		})
	}
}

func TestRunUsageErrors(t *testing.T) {
	code, _, stderr := runCLI()
	assert.Equal(t, 2, code)
	assert.Contains(t, stderr, "Usage:")

	code, _, _ = runCLI("F", "F", "90")
	assert.Equal(t, 2, code)

	code, _, _ = runCLI("-format", "gif", "F", "F", "90", "1")
	assert.Equal(t, 2, code)

	code, _, _ = runCLI("-no-such-flag")
	assert.Equal(t, 2, code)
}

func TestRunNonFiniteAngle(t *testing.T) {
	for _, angle := range []string{"NaN", "Inf", "-Inf"} {
		code, out, stderr := runCLI("F", "F", angle, "1", "F=>F+F")
		assert.Equal(t, 1, code, angle)
		assert.NotContains(t, out, "NaN")
		assert.Contains(t, stderr, "must be finite")
	}
}

func TestRunBadColor(t *testing.T) {
	code, out, stderr := runCLI("-color", `red" onload="x`, "F", "F", "90", "1")
	assert.Equal(t, 1, code)
	assert.Empty(t, out)
	assert.Contains(t, stderr, "invalid value")
}

func TestRunFailureLeavesNoFiles(t *testing.T) {
	dir := t.TempDir()
	img := filepath.Join(dir, "out.gif")
	chart := filepath.Join(dir, "growth.html")

	code, _, _ := runCLI("-format", "gif", "-o", img, "-analyse", chart, "F", "F", "90", "1")
	assert.Equal(t, 2, code)
	assert.NoFileExists(t, img)
	assert.NoFileExists(t, chart)

	img = filepath.Join(dir, "out.svg")
	code, _, _ = runCLI("-background", "plaid", "-o", img, "F", "F", "90", "1")
	assert.Equal(t, 1, code)
	assert.NoFileExists(t, img)
}

func TestRunOutputDirectoryMissing(t *testing.T) {
	out := filepath.Join(t.TempDir(), "missing", "out.svg")
	code, _, stderr := runCLI("-o", out, "F", "F", "90", "1")
	assert.Equal(t, 1, code)
	assert.Contains(t, stderr, "creating output")
}

func TestRunList(t *testing.T) {
	code, out, _ := runCLI("-list")
	assert.Equal(t, 0, code)
	for _, name := range []string{"koch", "sierpinski-carpet", "gosper", "kolam", "crystal"} {
		assert.Contains(t, out, name)
	}
}
