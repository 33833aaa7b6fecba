package lsystem

import "math"

// StartHeading points up on screen. Drawing space uses image orientation,
// +X right and +Y down, so a positive turn is clockwise as seen.
const StartHeading = -math.Pi / 2

// StepLength is the distance covered by one draw symbol. The absolute scale is
// irrelevant once the drawing is fitted to a canvas.
const StepLength = 1.0

// Cursor is the turtle's position and heading in radians.
type Cursor struct {
	Position Point
	Heading  float64
}

// Forward returns the cursor advanced by dist along its heading.
func (c Cursor) Forward(dist float64) Cursor {
	c.Position = c.Position.Add(Point{
		X: dist * math.Cos(c.Heading),
		Y: dist * math.Sin(c.Heading),
	})
	return c
}

type cursorStack []Cursor

func (s *cursorStack) push(c Cursor) {
	*s = append(*s, c)
}

func (s *cursorStack) pop() (Cursor, bool) {
	if len(*s) == 0 {
		return Cursor{}, false
	}
	top := (*s)[len(*s)-1]
	*s = (*s)[:len(*s)-1]
	return top, true
}

// Path is the outcome of one interpretation pass.
type Path struct {
	Segments []Segment
	Final    Cursor

	// UnmatchedPops counts ']' symbols met with an empty stack. They leave
	// the cursor unchanged.
	UnmatchedPops int
	// Depth is the deepest the cursor stack grew.
	Depth int
}

// Interpret walks seq left to right, starting at the origin with
// StartHeading. Draw symbols advance one step and emit a segment; '+' and '-'
// turn by angle degrees; '|' reverses the heading; '[' and ']' save and
// restore the cursor. Every other symbol is ignored.
func Interpret(seq Sequence, draw SymbolSet, angle float64) Path {
	return InterpretFrom(Cursor{Heading: StartHeading}, seq, draw, angle)
}

// InterpretFrom is Interpret with an explicit starting cursor.
func InterpretFrom(start Cursor, seq Sequence, draw SymbolSet, angle float64) Path {
	turn := angle * math.Pi / 180
	cur := start
	var stack cursorStack
	path := Path{Segments: make([]Segment, 0, countDraws(seq, draw))}

	for _, s := range seq {
		if draw.Contains(s) {
			next := cur.Forward(StepLength)
			path.Segments = append(path.Segments, Segment{Start: cur.Position, End: next.Position})
			cur = next
			continue
		}
		switch s {
		case TurnLeft:
			cur.Heading += turn
		case TurnRight:
			cur.Heading -= turn
		case Reverse:
			cur.Heading = -cur.Heading
		case Push:
			stack.push(cur)
			if len(stack) > path.Depth {
				path.Depth = len(stack)
			}
		case Pop:
			if saved, ok := stack.pop(); ok {
				cur = saved
			} else {
				path.UnmatchedPops++
			}
		}
	}
	path.Final = cur
	return path
}

func countDraws(seq Sequence, draw SymbolSet) int {
	n := 0
	for _, s := range seq {
		if draw.Contains(s) {
			n++
		}
	}
	return n
}

// Trace expands the grammar and interprets the final state.
func (l *LSystem) Trace() Path {
	return Interpret(l.FinalState(), l.Draw, l.Angle)
}
