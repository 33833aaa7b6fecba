package render

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"
	"math"
	"strconv"
	"strings"

	"golang.org/x/image/colornames"
	"golang.org/x/image/vector"

	lsystem "github.com/viktordanov/lsystem-svg"
)

const DefaultDPI = 96

// unitsPerInch converts canvas units to inches.
var unitsPerInch = map[string]float64{
	"px": 96,
	"mm": 25.4,
	"cm": 2.54,
	"in": 1,
	"pt": 72,
	"pc": 6,
}

// PixelScale is the number of pixels per canvas unit at dpi.
func PixelScale(c lsystem.Canvas, dpi float64) float64 {
	unit := c.Unit
	if unit == "" {
		unit = lsystem.DefaultUnit
	}
	return dpi / unitsPerInch[unit]
}

// Raster draws segments, already fitted to o.Canvas, into a new image sized
// to the canvas at dpi.
func Raster(segments []lsystem.Segment, o Options, dpi float64) (*image.RGBA, error) {
	if err := o.Canvas.Validate(); err != nil {
		return nil, err
	}
	if dpi <= 0 {
		dpi = DefaultDPI
	}
	stroke, err := parseColor(o.stroke())
	if err != nil {
		return nil, err
	}

	k := PixelScale(o.Canvas, dpi)
	w := int(math.Ceil(o.Canvas.Width * k))
	h := int(math.Ceil(o.Canvas.Height * k))
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	if o.hasBackground() {
		bg, err := parseColor(o.Background)
		if err != nil {
			return nil, err
		}
		draw.Draw(dst, dst.Bounds(), image.NewUniform(bg), image.Point{}, draw.Src)
	}

	// Never thinner than one pixel, or hairlines vanish.
	half := math.Max(o.strokeWidth()*k, 1) / 2
	r := vector.NewRasterizer(w, h)
	for _, s := range segments {
		addStroke(r, s, k, half)
	}
	r.Draw(dst, dst.Bounds(), image.NewUniform(stroke), image.Point{})
	return dst, nil
}

// addStroke adds the rectangle covering s, widened by half on each side and
// extended by half past each end. Every rectangle winds the same way so that
// overlaps accumulate instead of cancelling.
func addStroke(r *vector.Rasterizer, s lsystem.Segment, k, half float64) {
	x0, y0 := s.Start.X*k, s.Start.Y*k
	x1, y1 := s.End.X*k, s.End.Y*k
	dx, dy := x1-x0, y1-y0
	length := math.Hypot(dx, dy)
	if length == 0 {
		return
	}
	ux, uy := dx/length*half, dy/length*half
	nx, ny := -uy, ux

	r.MoveTo(float32(x0-ux+nx), float32(y0-uy+ny))
	r.LineTo(float32(x1+ux+nx), float32(y1+uy+ny))
	r.LineTo(float32(x1+ux-nx), float32(y1+uy-ny))
	r.LineTo(float32(x0-ux-nx), float32(y0-uy-ny))
	r.ClosePath()
}

// PNG rasterizes segments and encodes the result.
func PNG(w io.Writer, segments []lsystem.Segment, o Options, dpi float64) error {
	img, err := Raster(segments, o, dpi)
	if err != nil {
		return err
	}
	if err := png.Encode(w, img); err != nil {
		return fmt.Errorf("writing png: %w", err)
	}
	return nil
}

// parseColor understands SVG color keywords, none/transparent and
// #rgb / #rrggbb.
func parseColor(s string) (color.Color, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	switch s {
	case "none", "transparent":
		return color.Transparent, nil
	}
	if c, ok := colornames.Map[s]; ok {
		return c, nil
	}
	hex := strings.TrimPrefix(s, "#")
	if len(hex) == 3 {
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	}
	if !strings.HasPrefix(s, "#") || len(hex) != 6 {
		return nil, &lsystem.ConfigError{Field: "color", Value: s, Err: lsystem.ErrInvalidValue}
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return nil, &lsystem.ConfigError{Field: "color", Value: s, Err: lsystem.ErrInvalidValue}
	}
	return color.RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 0xff}, nil
}
