package main

import (
	"bytes"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"runtime/pprof"
	"strconv"
	"strings"
	"text/tabwriter"

	"go.uber.org/multierr"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	lsystem "github.com/viktordanov/lsystem-svg"
	"github.com/viktordanov/lsystem-svg/render"
)

const usage = `lsys - render L-systems as SVG

Usage:
  lsys [flags] AXIOM DRAW ANGLE ITERATIONS [RULE...]
  lsys [flags] -preset NAME
  lsys [flags] -config FILE [-name NAME]

Rules have the form "F=>F+F". DRAW lists the symbols drawn as strokes.
'+' and '-' turn by ANGLE degrees, '|' turns around, '[' and ']' save and
restore the turtle.

Flags:
`

type options struct {
	preset     string
	config     string
	name       string
	iterations int
	list       bool

	width, height float64
	units         string
	margin        float64
	strokeWidth   float64
	stroke        string
	background    string

	format  string
	dpi     float64
	out     string
	analyse string
	serve   string

	verbose    bool
	cpuprofile string
}

// errUsage marks errors caused by the command line itself.
var errUsage = errors.New("usage")

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("lsys", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		fmt.Fprint(stderr, usage)
		fs.PrintDefaults()
	}

	var o options
	fs.StringVar(&o.preset, "preset", "", "render a built-in system (see -list)")
	fs.StringVar(&o.config, "config", "", "YAML file with one or more definitions")
	fs.StringVar(&o.name, "name", "", "definition to pick from -config (default: the first)")
	fs.IntVar(&o.iterations, "n", -1, "override the number of iterations")
	fs.BoolVar(&o.list, "list", false, "list the built-in systems and exit")
	fs.Float64Var(&o.width, "width", 100, "canvas width")
	fs.Float64Var(&o.height, "height", 100, "canvas height")
	fs.StringVar(&o.units, "units", lsystem.DefaultUnit, "canvas unit: "+strings.Join(lsystem.Units, ", "))
	fs.Float64Var(&o.margin, "margin", lsystem.DefaultMargin, "margin as a fraction of the smaller side")
	fs.Float64Var(&o.strokeWidth, "stroke", 0, "stroke width in canvas units (default: 0.2% of the smaller side)")
	fs.StringVar(&o.stroke, "color", "black", "stroke color")
	fs.StringVar(&o.background, "background", "none", "background color")
	fs.StringVar(&o.format, "format", "svg", "output format: svg or png")
	fs.Float64Var(&o.dpi, "dpi", render.DefaultDPI, "resolution for png output")
	fs.StringVar(&o.out, "o", "", "write the image to this file instead of stdout")
	fs.StringVar(&o.analyse, "analyse", "", "write an HTML growth chart to this file")
	fs.StringVar(&o.serve, "serve", "", "serve a live preview on this address, e.g. :8081")
	fs.BoolVar(&o.verbose, "v", false, "verbose logging")
	fs.StringVar(&o.cpuprofile, "cpuprofile", "", "write cpu profile to file")

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}

	log := newLogger(stderr, o.verbose)
	defer log.Sync() //nolint:errcheck

	if o.list {
		listCatalog(stdout)
		return 0
	}

	if o.cpuprofile != "" {
		f, err := os.Create(o.cpuprofile)
		if err != nil {
			log.Error("creating cpu profile", zap.Error(err))
			return 1
		}
		defer f.Close()
		if err := pprof.StartCPUProfile(f); err != nil {
			log.Error("starting cpu profile", zap.Error(err))
			return 1
		}
		defer pprof.StopCPUProfile()
	}

	if err := execute(o, fs.Args(), stdout, log); err != nil {
		for _, e := range multierr.Errors(err) {
			log.Error("lsys failed", zap.Error(e))
		}
		if errors.Is(err, errUsage) {
			fs.Usage()
			return 2
		}
		return 1
	}
	return 0
}

func execute(o options, args []string, stdout io.Writer, log *zap.Logger) error {
	l, err := loadSystem(o, args)
	if err != nil {
		return err
	}
	if o.iterations >= 0 {
		l.Iterations = o.iterations
	}
	log.Debug("loaded system", zap.Stringer("system", l))
	for _, s := range l.Unruled() {
		log.Warn("no rule for symbol, assuming identity", zap.String("symbol", s.String()))
	}

	canvas := lsystem.Canvas{Width: o.width, Height: o.height, Margin: o.margin, Unit: o.units}
	if err := canvas.Validate(); err != nil {
		return err
	}
	if o.format != "svg" && o.format != "png" {
		return fmt.Errorf("%w: unknown format %q", errUsage, o.format)
	}
	ropts := render.Options{
		Canvas:      canvas,
		StrokeWidth: o.strokeWidth,
		Stroke:      o.stroke,
		Background:  o.background,
		Title:       l.Name,
	}

	if o.analyse != "" {
		if err := writeAnalysis(o.analyse, l, log); err != nil {
			return err
		}
	}

	if o.serve != "" {
		log.Info("serving preview", zap.String("addr", o.serve))
		return lsystem.Serve(o.serve, l, canvas, render.SVGFunc(ropts))
	}

	state := l.FinalState()
	log.Debug("expanded", zap.Int("iterations", l.Iterations), zap.Int("length", len(state)))
	path := lsystem.Interpret(state, l.Draw, l.Angle)
	if path.UnmatchedPops > 0 {
		log.Warn("unbalanced brackets, ignored ']' without matching '['", zap.Int("count", path.UnmatchedPops))
	}
	if len(path.Segments) == 0 {
		log.Warn("nothing to draw", zap.String("draw", l.Draw.String()))
	}
	fitted, t := lsystem.Fit(path.Segments, canvas)
	log.Debug("fitted", zap.Int("segments", len(fitted)), zap.Float64("scale", t.Scale))

	var buf bytes.Buffer
	switch o.format {
	case "svg":
		err = render.SVG(&buf, fitted, ropts)
	case "png":
		err = render.PNG(&buf, fitted, ropts, o.dpi)
	default:
		return fmt.Errorf("%w: unknown format %q", errUsage, o.format)
	}
	if err != nil {
		return err
	}
	if o.out == "" {
		_, err = buf.WriteTo(stdout)
		return err
	}
	if err := writeFile(o.out, &buf); err != nil {
		return err
	}
	log.Info("wrote image", zap.String("path", o.out), zap.Int("segments", len(fitted)))
	return nil
}

// writeFile creates path only once the content is complete, so a failed
// render leaves nothing behind.
func writeFile(path string, r io.Reader) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating output: %w", err)
	}
	defer multierr.AppendInvoke(&err, multierr.Close(f))
	if _, err := io.Copy(f, r); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

// loadSystem resolves the grammar from positional arguments, a preset or a
// definition file, in that order of precedence.
func loadSystem(o options, args []string) (*lsystem.LSystem, error) {
	switch {
	case len(args) > 0:
		return parseArgs(args)
	case o.preset != "":
		def, err := lsystem.Lookup(lsystem.Catalog(), o.preset)
		if err != nil {
			return nil, err
		}
		return def.Build()
	case o.config != "":
		f, err := os.Open(o.config)
		if err != nil {
			return nil, fmt.Errorf("opening config: %w", err)
		}
		defer f.Close()
		defs, err := lsystem.LoadDefinitions(f)
		if err != nil {
			return nil, err
		}
		if len(defs) == 0 {
			return nil, fmt.Errorf("%s: no definitions", o.config)
		}
		if o.name == "" {
			return defs[0].Build()
		}
		def, err := lsystem.Lookup(defs, o.name)
		if err != nil {
			return nil, err
		}
		return def.Build()
	default:
		return nil, fmt.Errorf("%w: expected AXIOM DRAW ANGLE ITERATIONS [RULE...], -preset or -config", errUsage)
	}
}

func parseArgs(args []string) (*lsystem.LSystem, error) {
	if len(args) < 4 {
		return nil, fmt.Errorf("%w: expected AXIOM DRAW ANGLE ITERATIONS [RULE...], got %d arguments", errUsage, len(args))
	}
	angle, err := strconv.ParseFloat(args[2], 64)
	if err != nil {
		return nil, &lsystem.ConfigError{Field: "angle", Value: args[2], Err: lsystem.ErrInvalidValue}
	}
	iterations, err := strconv.Atoi(args[3])
	if err != nil {
		return nil, &lsystem.ConfigError{Field: "iterations", Value: args[3], Err: lsystem.ErrInvalidValue}
	}
	return lsystem.Parse(args[0], args[4:], args[1], angle, iterations)
}

func writeAnalysis(path string, l *lsystem.LSystem, log *zap.Logger) error {
	g := l.AnalyseGrowth(l.Iterations)
	var buf bytes.Buffer
	if err := g.RenderChart(&buf); err != nil {
		return fmt.Errorf("rendering analysis: %w", err)
	}
	if err := writeFile(path, &buf); err != nil {
		return err
	}
	log.Info("wrote growth analysis", zap.String("path", path), zap.Float64("avg_growth", g.AvgGrowth()))
	return nil
}

func listCatalog(w io.Writer) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tAXIOM\tDRAW\tANGLE\tITERATIONS\tRULES")
	for _, d := range lsystem.Catalog() {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%g\t%d\t%s\n", d.Name, d.Axiom, d.Draw, d.Angle, d.Iterations, strings.Join(d.Rules, " "))
	}
	tw.Flush()
}

func newLogger(w io.Writer, verbose bool) *zap.Logger {
	level := zapcore.InfoLevel
	if verbose {
		level = zapcore.DebugLevel
	}
	encCfg := zap.NewDevelopmentEncoderConfig()
	encCfg.TimeKey = ""
	core := zapcore.NewCore(zapcore.NewConsoleEncoder(encCfg), zapcore.AddSync(w), level)
	return zap.New(core)
}
