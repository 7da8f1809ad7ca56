package routing

import (
	"golang.org/x/sync/errgroup"

	"github.com/AndrewBazen/django-schema-viewer/internal/layout"
	"github.com/AndrewBazen/django-schema-viewer/internal/schema"
)

// Route is the routed polyline for one graph edge, ready to be smoothed
// into an SVG path. Rel carries the originating relationship so the
// renderer can pick a marker without re-walking the graph.
type Route struct {
	Source string
	Target string
	Points []Point
	Rel    schema.Relationship
}

func toNodeBounds(b layout.Bounds) nodeBounds {
	return nodeBounds{Left: b.Left, Right: b.Right, Top: b.Top, Bottom: b.Bottom}
}

func toBounds(b layout.Bounds) bounds {
	return bounds{Left: b.Left, Right: b.Right, Top: b.Top, Bottom: b.Bottom}
}

// RouteAll routes every edge in g, in g.Edges' deterministic order. Each
// route is scored against every route already placed earlier in that
// order — greedy, no backtracking, so the result is not globally optimal
// but is deterministic and fast.
func RouteAll(g *layout.Graph, bnds map[string]layout.Bounds) []*Route {
	fan := fanTable(g)
	var placedSegs []segment
	var routes []*Route

	for i, e := range g.Edges {
		srcBounds, srcOK := bnds[e.Source]
		tgtBounds, tgtOK := bnds[e.Target]
		if !srcOK || !tgtOK {
			// Missing bounds is not fatal: the edge is silently dropped.
			continue
		}

		srcB := toNodeBounds(srcBounds)
		tgtB := toNodeBounds(tgtBounds)
		a := computeAnchors(g, bnds, fan, i)

		var obstacles []bounds
		for key, b := range bnds {
			if key == e.Source || key == e.Target {
				continue
			}
			obstacles = append(obstacles, toBounds(b))
		}

		candidates := generateCandidates(srcB, tgtB, a, obstacles, obstacles)

		best := pickBest(candidates, obstacles, placedSegs)
		if best == nil {
			// Highly degenerate: no candidate survived. Fall back to an
			// unchecked outer-right wrap using both nodes' right sides.
			fallback := buildHVH(srcB.Right, a.startY, tgtB.Right, a.endY, maxInt(srcB.Right, tgtB.Right)+outerWrapMargin)
			best = &candidate{points: fallback}
		}

		placedSegs = append(placedSegs, segmentsOf(best.points)...)
		routes = append(routes, &Route{Source: e.Source, Target: e.Target, Points: best.points, Rel: e.Rel})
	}

	return routes
}

// pickBest scores every candidate concurrently — each candidate's score
// depends only on the shared, read-only obstacles/placed slices, so there's
// no data race in writing disjoint indices of scores from an errgroup — and
// then picks the lowest-scoring one sequentially, so the result stays
// deterministic regardless of goroutine scheduling order.
func pickBest(candidates []candidate, obstacles []bounds, placed []segment) *candidate {
	if len(candidates) == 0 {
		return nil
	}

	scores := make([]int, len(candidates))
	var eg errgroup.Group
	for i := range candidates {
		i := i
		eg.Go(func() error {
			scores[i] = score(candidates[i].points, obstacles, placed)
			return nil
		})
	}
	_ = eg.Wait() // score never errors; Wait only synchronizes completion

	best := 0
	for i := 1; i < len(candidates); i++ {
		if scores[i] < scores[best] {
			best = i
		}
	}
	return &candidates[best]
}
