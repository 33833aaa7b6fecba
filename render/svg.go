// Package render serializes fitted segments as images.
package render

import (
	"fmt"
	"io"
	"strings"

	svg "github.com/ajstarks/svgo/float"

	lsystem "github.com/viktordanov/lsystem-svg"
)

// Options control the output image.
type Options struct {
	Canvas lsystem.Canvas
	// StrokeWidth in canvas units. Zero selects lsystem.DefaultStrokeWidth.
	StrokeWidth float64
	Stroke      string
	// Background fills the canvas; "" or "none" leaves it transparent.
	Background string
	Title      string
}

// DefaultOptions draws black hairlines on a transparent canvas.
func DefaultOptions(c lsystem.Canvas) Options {
	return Options{
		Canvas: c,
		Stroke: "black",
	}
}

func (o Options) strokeWidth() float64 {
	if o.StrokeWidth > 0 {
		return o.StrokeWidth
	}
	return lsystem.DefaultStrokeWidth(o.Canvas)
}

func (o Options) stroke() string {
	if o.Stroke == "" {
		return "black"
	}
	return o.Stroke
}

func (o Options) hasBackground() bool {
	return o.Background != "" && o.Background != "none"
}

// errWriter remembers the first write error, since svgo discards them.
type errWriter struct {
	w   io.Writer
	err error
}

func (ew *errWriter) Write(p []byte) (int, error) {
	if ew.err != nil {
		return 0, ew.err
	}
	n, err := ew.w.Write(p)
	ew.err = err
	return n, err
}

// SVG writes segments, already fitted to o.Canvas, as an SVG document whose
// physical size is the canvas size in its unit and whose user space matches
// canvas coordinates.
func SVG(w io.Writer, segments []lsystem.Segment, o Options) error {
	if err := o.Canvas.Validate(); err != nil {
		return err
	}
	stroke, err := cssColor(o.stroke())
	if err != nil {
		return err
	}
	background := ""
	if o.hasBackground() {
		if background, err = cssColor(o.Background); err != nil {
			return err
		}
	}
	unit := o.Canvas.Unit
	if unit == "" {
		unit = lsystem.DefaultUnit
	}

	ew := &errWriter{w: w}
	canvas := svg.New(ew)
	width, height := o.Canvas.Width, o.Canvas.Height
	canvas.StartviewUnit(width, height, unit, 0, 0, width, height)
	if o.Title != "" {
		canvas.Title(o.Title)
	}
	if background != "" {
		canvas.Rect(0, 0, width, height, "fill:"+background)
	}
	canvas.Gstyle(fmt.Sprintf("fill:none;stroke:%s;stroke-width:%g;stroke-linecap:round", stroke, o.strokeWidth()))
	for _, s := range segments {
		canvas.Line(s.Start.X, s.Start.Y, s.End.X, s.End.Y)
	}
	canvas.Gend()
	canvas.End()

	if ew.err != nil {
		return fmt.Errorf("writing svg: %w", ew.err)
	}
	return nil
}

// cssColor checks s the same way the raster path does and returns it in the
// form written to style attributes.
func cssColor(s string) (string, error) {
	if _, err := parseColor(s); err != nil {
		return "", err
	}
	return strings.ToLower(strings.TrimSpace(s)), nil
}

// SVGFunc adapts SVG to lsystem.RenderFunc.
func SVGFunc(o Options) lsystem.RenderFunc {
	return func(w io.Writer, segments []lsystem.Segment, c lsystem.Canvas) error {
		o.Canvas = c
		return SVG(w, segments, o)
	}
}
