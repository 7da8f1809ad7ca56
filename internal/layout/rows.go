package layout

import "sort"

// rowState threads the mutable placement accumulator through the row
// assignment functions explicitly, rather than relying on package-scoped
// mutable state.
type rowState struct {
	placed       map[string]bool // node key -> has a row been assigned
	gridOccupied map[[2]int]bool // (col, row) -> occupied
	rowOccupants map[int][]string
	maxRow       int
}

func newRowState() *rowState {
	return &rowState{
		placed:       map[string]bool{},
		gridOccupied: map[[2]int]bool{},
		rowOccupants: map[int][]string{},
		maxRow:       -1,
	}
}

// AssignRows assigns per-column row placement with co-location preference,
// followed by dense row-index compaction.
func AssignRows(g *Graph) {
	st := newRowState()

	byColumn := map[int][]string{}
	maxCol := 0
	for _, k := range g.OrderedNodeKeys() {
		col := g.Nodes[k].Column
		byColumn[col] = append(byColumn[col], k)
		if col > maxCol {
			maxCol = col
		}
	}

	nodeCount := len(g.Nodes)

	for col := 0; col <= maxCol; col++ {
		keys := byColumn[col]
		sort.SliceStable(keys, func(i, j int) bool {
			return len(g.Nodes[keys[i]].Connections) > len(g.Nodes[keys[j]].Connections)
		})

		for _, k := range keys {
			row := placeNode(g, st, k, col, nodeCount)
			g.Nodes[k].Row = row
			st.placed[k] = true
			st.gridOccupied[[2]int{col, row}] = true
			st.rowOccupants[row] = append(st.rowOccupants[row], k)
			if row > st.maxRow {
				st.maxRow = row
			}
		}
	}

	compactRows(g)
}

func placeNode(g *Graph, st *rowState, key string, col, nodeCount int) int {
	node := g.Nodes[key]

	for _, connKey := range node.ConnOrder {
		if !st.placed[connKey] {
			continue
		}
		candidate := g.Nodes[connKey].Row
		if canPlace(g, st, node, col, candidate) {
			return candidate
		}
	}

	for row := 0; row < nodeCount; row++ {
		if canPlace(g, st, node, col, row) {
			return row
		}
	}

	return st.maxRow + 1
}

func canPlace(g *Graph, st *rowState, node *Node, col, row int) bool {
	if st.gridOccupied[[2]int{col, row}] {
		return false
	}

	occupants := st.rowOccupants[row]
	if len(node.Connections) <= 1 {
		var soleConn string
		for _, c := range node.ConnOrder {
			soleConn = c
			break
		}
		if soleConn == "" {
			return true
		}
		for _, m := range occupants {
			if m == soleConn {
				if g.Nodes[soleConn].Column != col-1 && g.Nodes[soleConn].Column != col+1 {
					return false
				}
			}
		}
		return true
	}

	for _, m := range occupants {
		if node.Connections[m] {
			continue
		}
		if g.Nodes[m].HasSelfConnection {
			continue
		}
		return false
	}
	return true
}

// compactRows renumbers the used row indices densely from 0 — after
// compaction the set of used rows is {0, 1, ..., R-1}.
func compactRows(g *Graph) {
	used := map[int]bool{}
	for _, k := range g.OrderedNodeKeys() {
		used[g.Nodes[k].Row] = true
	}

	sorted := make([]int, 0, len(used))
	for r := range used {
		sorted = append(sorted, r)
	}
	sort.Ints(sorted)

	remap := map[int]int{}
	for i, r := range sorted {
		remap[r] = i
	}

	for _, k := range g.OrderedNodeKeys() {
		node := g.Nodes[k]
		node.Row = remap[node.Row]
	}
}
