package routing

import "github.com/AndrewBazen/django-schema-viewer/internal/layout"

// fanTable maps a target node key to the insertion-order list of edge
// indices (into the graph's deterministic Edges slice) that point at it —
// used to compute the balanced fan offset below.
func fanTable(g *layout.Graph) map[string][]int {
	table := map[string][]int{}
	for i, e := range g.Edges {
		table[e.Target] = append(table[e.Target], i)
	}
	return table
}

// fanOffset returns the Y perturbation for the i-th (0-indexed, insertion
// order) of k incoming edges into the same target: offsets are centered on
// zero and spaced by layout.FanOffsetStep, so they always sum to zero.
func fanOffset(i, k int) int {
	// (i - (k-1)/2) * step, computed in a doubled space to avoid integer
	// truncation on the (k-1)/2 term.
	numerator := 2*i - (k - 1)
	return numerator * layout.FanOffsetStep / 2
}

// anchors holds the fixed Y coordinates an edge's route must start and end
// at, independent of which side pair is chosen.
type anchors struct {
	startY int
	endY   int
}

func computeAnchors(g *layout.Graph, bnds map[string]layout.Bounds, fan map[string][]int, edgeIndex int) anchors {
	e := g.Edges[edgeIndex]
	source := g.Nodes[e.Source]
	target := g.Nodes[e.Target]

	startY := bnds[e.Source].Top + layout.FieldYOffset(source.Model, e.Rel.FieldName)

	endY := bnds[e.Target].Top + layout.PKYOffset(target.Model)
	if order, ok := fan[e.Target]; ok {
		k := len(order)
		for i, idx := range order {
			if idx == edgeIndex {
				endY += fanOffset(i, k)
				break
			}
		}
	}

	return anchors{startY: startY, endY: endY}
}
