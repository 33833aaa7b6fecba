package lsystem

import "math"

type Point struct {
	X, Y float64
}

func (p Point) Add(q Point) Point {
	return Point{X: p.X + q.X, Y: p.Y + q.Y}
}

// Segment is one stroke from Start to End.
type Segment struct {
	Start, End Point
}

func (s Segment) Length() float64 {
	return math.Hypot(s.End.X-s.Start.X, s.End.Y-s.Start.Y)
}

// BBox is an axis-aligned bounding box. The zero value is empty.
type BBox struct {
	MinX, MinY float64
	MaxX, MaxY float64
	set        bool
}

// Bounds returns the bounding box of every segment endpoint.
func Bounds(segments []Segment) BBox {
	var b BBox
	for _, s := range segments {
		b.Extend(s.Start)
		b.Extend(s.End)
	}
	return b
}

func (b *BBox) Extend(p Point) {
	if !b.set {
		b.MinX, b.MaxX = p.X, p.X
		b.MinY, b.MaxY = p.Y, p.Y
		b.set = true
		return
	}
	b.MinX = math.Min(b.MinX, p.X)
	b.MaxX = math.Max(b.MaxX, p.X)
	b.MinY = math.Min(b.MinY, p.Y)
	b.MaxY = math.Max(b.MaxY, p.Y)
}

// Empty reports whether no point has been added.
func (b BBox) Empty() bool {
	return !b.set
}

func (b BBox) Width() float64 {
	return b.MaxX - b.MinX
}

func (b BBox) Height() float64 {
	return b.MaxY - b.MinY
}

func (b BBox) Center() Point {
	return Point{X: (b.MinX + b.MaxX) / 2, Y: (b.MinY + b.MaxY) / 2}
}

// Contains reports whether p lies inside b, allowing tol slack on every side.
func (b BBox) Contains(p Point, tol float64) bool {
	return p.X >= b.MinX-tol && p.X <= b.MaxX+tol &&
		p.Y >= b.MinY-tol && p.Y <= b.MaxY+tol
}
