package layout

import "github.com/AndrewBazen/django-schema-viewer/internal/schema"

// Result bundles everything the layout pass produces from a schema
// snapshot: the graph (nodes, edges, adjacency), and every node's final
// position and bounds. It is the input to the edge router
// (internal/routing).
type Result struct {
	Graph     *Graph
	Positions map[string]Position
	Bounds    map[string]Bounds
}

// Compute runs the full hierarchical grid layout pass on a schema snapshot:
// heights → graph → columns → rows → positions. It is deterministic:
// calling it twice on the same schema yields identical positions.
func Compute(s *schema.Schema) *Result {
	g := BuildGraph(s)
	AssignColumns(g)
	AssignRows(g)
	positions := ComputePositions(g)
	bounds := NodeBounds(g, positions)

	return &Result{
		Graph:     g,
		Positions: positions,
		Bounds:    bounds,
	}
}
