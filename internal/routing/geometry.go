// Package routing is the edge router: for each edge in a laid-out
// layout.Graph it produces a rectilinear polyline connecting a point on the
// source node's perimeter to a point on the target's, minimising a weighted
// cost against already-placed routes. Like internal/layout it is pure: no
// I/O, no logging.
package routing

// Point is one vertex of a routed polyline.
type Point struct {
	X int
	Y int
}

// segment is one edge of a polyline between two consecutive points. Every
// segment produced by this package is axis-aligned: either Horizontal (Y1 ==
// Y2) or vertical (X1 == X2).
type segment struct {
	X1, Y1, X2, Y2 int
}

func segmentsOf(points []Point) []segment {
	segs := make([]segment, 0, len(points)-1)
	for i := 0; i+1 < len(points); i++ {
		segs = append(segs, segment{points[i].X, points[i].Y, points[i+1].X, points[i+1].Y})
	}
	return segs
}

func (s segment) isHorizontal() bool { return s.Y1 == s.Y2 }

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

// length is the Manhattan length of a segment.
func (s segment) length() int {
	return abs(s.X2-s.X1) + abs(s.Y2-s.Y1)
}

// bounds is an axis-aligned rectangle used for both node obstacles and
// segment bounding boxes.
type bounds struct {
	Left, Right, Top, Bottom int
}

// blockedBy reports whether the segment's bounding box overlaps obs
// (applied symmetrically to horizontal and vertical segments). The same
// predicate doubles as the node-touch test for scoring.
func (s segment) blockedBy(obs bounds) bool {
	if s.isHorizontal() {
		y := s.Y1
		x1, x2 := s.X1, s.X2
		return obs.Top <= y && y <= obs.Bottom && maxInt(x1, x2) > obs.Left && minInt(x1, x2) < obs.Right
	}
	x := s.X1
	y1, y2 := s.Y1, s.Y2
	return obs.Left <= x && x <= obs.Right && maxInt(y1, y2) > obs.Top && minInt(y1, y2) < obs.Bottom
}

// crosses reports whether two perpendicular segments properly cross —
// intersect at a point interior to both, not merely touching at a shared
// endpoint. Parallel segments (both horizontal or both vertical) never
// "properly cross" in this router's sense: every polyline it builds is
// H-V-H, so crossings of interest are always one horizontal against one
// vertical segment.
func (s segment) crosses(o segment) bool {
	if s.isHorizontal() == o.isHorizontal() {
		return false
	}
	h, v := s, o
	if !h.isHorizontal() {
		h, v = o, s
	}
	if v.X1 <= minInt(h.X1, h.X2) || v.X1 >= maxInt(h.X1, h.X2) {
		return false
	}
	if h.Y1 <= minInt(v.Y1, v.Y2) || h.Y1 >= maxInt(v.Y1, v.Y2) {
		return false
	}
	return true
}
