package lsystem

import (
	"math"
	"strconv"

	"golang.org/x/exp/slices"
)

const (
	DefaultMargin = 0.05
	DefaultUnit   = "mm"
)

// Units accepted for the physical canvas size.
var Units = []string{"px", "mm", "cm", "in", "pt", "pc"}

// Canvas is the target drawing area. Margin is a fraction of the smaller
// side kept free on every edge.
type Canvas struct {
	Width, Height float64
	Margin        float64
	Unit          string
}

func NewCanvas(width, height float64) Canvas {
	return Canvas{Width: width, Height: height, Margin: DefaultMargin, Unit: DefaultUnit}
}

func (c Canvas) Validate() error {
	if !(c.Width > 0) || math.IsInf(c.Width, 0) {
		return configErr("width", ftoa(c.Width), ErrInvalidCanvas, "must be positive")
	}
	if !(c.Height > 0) || math.IsInf(c.Height, 0) {
		return configErr("height", ftoa(c.Height), ErrInvalidCanvas, "must be positive")
	}
	if !(c.Margin >= 0 && c.Margin < 0.5) {
		return configErr("margin", ftoa(c.Margin), ErrInvalidCanvas, "must be in [0, 0.5)")
	}
	if c.Unit != "" && !slices.Contains(Units, c.Unit) {
		return configErr("unit", c.Unit, ErrInvalidCanvas, "must be one of %v", Units)
	}
	return nil
}

// MarginSize is the margin in canvas units.
func (c Canvas) MarginSize() float64 {
	return c.Margin * math.Min(c.Width, c.Height)
}

// Inner is the area segments are fitted into.
func (c Canvas) Inner() BBox {
	m := c.MarginSize()
	var b BBox
	b.Extend(Point{X: m, Y: m})
	b.Extend(Point{X: c.Width - m, Y: c.Height - m})
	return b
}

// DefaultStrokeWidth is a hairline relative to the canvas size.
func DefaultStrokeWidth(c Canvas) float64 {
	return 0.002 * math.Min(c.Width, c.Height)
}

// Transform is a uniform scale followed by a translation.
type Transform struct {
	Scale            float64
	OffsetX, OffsetY float64
}

func (t Transform) Apply(p Point) Point {
	return Point{X: p.X*t.Scale + t.OffsetX, Y: p.Y*t.Scale + t.OffsetY}
}

// FitTransform computes the transform centering bounds inside the canvas
// margins. A zero extent on one axis defers to the other axis; a single point
// keeps scale 1 and lands on the canvas center.
func FitTransform(bounds BBox, c Canvas) Transform {
	inner := c.Inner()
	center := Point{X: c.Width / 2, Y: c.Height / 2}
	if bounds.Empty() {
		return Transform{Scale: 1}
	}

	bw, bh := bounds.Width(), bounds.Height()
	var scale float64
	switch {
	case bw > 0 && bh > 0:
		scale = math.Min(inner.Width()/bw, inner.Height()/bh)
	case bw > 0:
		scale = inner.Width() / bw
	case bh > 0:
		scale = inner.Height() / bh
	default:
		scale = 1
	}

	bc := bounds.Center()
	return Transform{
		Scale:   scale,
		OffsetX: center.X - bc.X*scale,
		OffsetY: center.Y - bc.Y*scale,
	}
}

// Fit maps segments into the canvas, preserving aspect ratio. The input is
// left untouched. An empty input yields an empty, non-nil result.
func Fit(segments []Segment, c Canvas) ([]Segment, Transform) {
	t := FitTransform(Bounds(segments), c)
	out := make([]Segment, len(segments))
	for i, s := range segments {
		out[i] = Segment{Start: t.Apply(s.Start), End: t.Apply(s.End)}
	}
	return out, t
}

func ftoa(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}
