package routing

const (
	weightLength    = 1
	weightTurn      = 50
	weightCrossing  = 200
	weightNodeTouch = 500
)

// score is the route cost function: lower is better. placed is every
// segment of every route already selected for an earlier
// edge, in routing order — crossings are only counted against routes placed
// before this one (no backtracking).
func score(points []Point, obstacles []bounds, placed []segment) int {
	segs := segmentsOf(points)

	length := 0
	for _, s := range segs {
		length += s.length()
	}

	turns := countTurns(segs)
	crossings := countCrossings(segs, placed)
	touches := countNodeTouches(segs, obstacles)

	return weightLength*length + weightTurn*turns + weightCrossing*crossings + weightNodeTouch*touches
}

func countTurns(segs []segment) int {
	turns := 0
	for i := 1; i < len(segs); i++ {
		if segs[i-1].isHorizontal() != segs[i].isHorizontal() {
			turns++
		}
	}
	return turns
}

func countCrossings(segs, placed []segment) int {
	crossings := 0
	for _, s := range segs {
		for _, p := range placed {
			if s.crosses(p) {
				crossings++
			}
		}
	}
	return crossings
}

func countNodeTouches(segs []segment, obstacles []bounds) int {
	touches := 0
	for _, obs := range obstacles {
		for _, s := range segs {
			if s.blockedBy(obs) {
				touches++
				break
			}
		}
	}
	return touches
}
