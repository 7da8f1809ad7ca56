package routing

// side identifies which vertical side of a node's bounding box an edge
// attaches to.
type side int

const (
	sideLeft side = iota
	sideRight
)

// sidePair is one of the four (srcSide, tgtSide) combinations a route can
// attach through, each implying the direction the final approach segment
// must travel relative to its node.
type sidePair struct {
	srcSide, tgtSide side
}

var sidePairs = []sidePair{
	{sideRight, sideLeft},
	{sideRight, sideRight},
	{sideLeft, sideLeft},
	{sideLeft, sideRight},
}

const (
	minDirectSegment = 20
	outerWrapMargin  = 40
	shortJogDistance = 30
)

// candidate is one proposed polyline for an edge. Scoring treats every
// candidate uniformly regardless of which of the five route types produced it.
type candidate struct {
	points []Point
}

func sideX(b nodeBounds, s side) int {
	if s == sideRight {
		return b.Right
	}
	return b.Left
}

// nodeBounds is the subset of layout.Bounds this package needs; kept as its
// own type so geometry.go's bounds (used for obstacle/touch tests) and the
// layout-facing bounds stay clearly distinct.
type nodeBounds struct {
	Left, Right, Top, Bottom int
}

// buildHVH constructs the horizontal-vertical-horizontal polyline template
// for a given runway X.
func buildHVH(srcX, srcY, tgtX, tgtY, midX int) []Point {
	points := []Point{{srcX, srcY}}
	last := points[0]

	if srcX != midX {
		last = Point{midX, srcY}
		points = append(points, last)
	}
	if abs(srcY-tgtY) > 1 {
		last = Point{midX, tgtY}
		points = append(points, last)
	}
	if midX != tgtX {
		last = Point{tgtX, tgtY}
		points = append(points, last)
	}
	if last != (Point{tgtX, tgtY}) {
		points = append(points, Point{tgtX, tgtY})
	}
	return points
}

// dirOK reports whether midX lies in the direction implied by s relative to
// x — "right" means midX > x, "left" means midX < x.
func dirOK(s side, x, midX int) bool {
	if s == sideRight {
		return midX > x
	}
	return midX < x
}

// generateCandidates builds every raw candidate route for one edge across
// all four side pairs. Obstacle checking for the Direct route is applied
// here (it gates whether the candidate exists at all); obstacle/crossing
// scoring for all surviving candidates happens in score.go.
func generateCandidates(srcB, tgtB nodeBounds, a anchors, obstacles []bounds, allNodes []bounds) []candidate {
	var out []candidate

	leftmost, rightmost := outerWrapExtent(srcB, tgtB, allNodes)

	for _, sp := range sidePairs {
		srcX := sideX(srcB, sp.srcSide)
		tgtX := sideX(tgtB, sp.tgtSide)

		// 1. Direct.
		midX := (srcX + tgtX) / 2
		if abs(midX-srcX) >= minDirectSegment && abs(midX-tgtX) >= minDirectSegment &&
			dirOK(sp.srcSide, srcX, midX) && dirOK(sp.tgtSide, tgtX, midX) {
			pts := buildHVH(srcX, a.startY, tgtX, a.endY, midX)
			if !anySegmentBlocked(pts, obstacles) {
				out = append(out, candidate{points: pts})
			}
		}

		// 2/3. Outer left / outer right — only for the matching direction pair.
		if sp.srcSide == sideLeft && sp.tgtSide == sideLeft {
			out = append(out, candidate{points: buildHVH(srcX, a.startY, tgtX, a.endY, leftmost-outerWrapMargin)})
		}
		if sp.srcSide == sideRight && sp.tgtSide == sideRight {
			out = append(out, candidate{points: buildHVH(srcX, a.startY, tgtX, a.endY, rightmost+outerWrapMargin)})
		}

		// 4. Short jog — always emitted.
		jogSign := shortJogDistance
		if sp.srcSide == sideLeft {
			jogSign = -shortJogDistance
		}
		out = append(out, candidate{points: buildHVH(srcX, a.startY, tgtX, a.endY, srcX+jogSign)})

		// 5. Wide jog — always emitted, matching srcDir.
		wideX := rightmost + outerWrapMargin
		if sp.srcSide == sideLeft {
			wideX = leftmost - outerWrapMargin
		}
		out = append(out, candidate{points: buildHVH(srcX, a.startY, tgtX, a.endY, wideX)})
	}

	return out
}

// outerWrapExtent returns the leftmost and rightmost X across both endpoint
// nodes and every node in allNodes, so the outer-wrap runways clear the
// endpoints as well as the obstacles (and stay well-defined when there are
// no obstacles).
func outerWrapExtent(srcB, tgtB nodeBounds, allNodes []bounds) (left, right int) {
	left = minInt(srcB.Left, tgtB.Left)
	right = maxInt(srcB.Right, tgtB.Right)
	for _, b := range allNodes {
		if b.Left < left {
			left = b.Left
		}
		if b.Right > right {
			right = b.Right
		}
	}
	return left, right
}

func anySegmentBlocked(points []Point, obstacles []bounds) bool {
	for _, seg := range segmentsOf(points) {
		for _, obs := range obstacles {
			if seg.blockedBy(obs) {
				return true
			}
		}
	}
	return false
}
