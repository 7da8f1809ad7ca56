package layout

// AssignColumns assigns dependency-depth columns. Nodes with no outgoing
// relationships seed column 0; every other node's column is 1 + the
// maximum column of its outgoing connections, computed to a fixpoint; any
// node left unassigned because it lives only in a cycle reachable from no
// seed collapses to column 0.
func AssignColumns(g *Graph) {
	keys := g.OrderedNodeKeys()
	assigned := map[string]bool{}

	seeds := []string{}
	for _, k := range keys {
		if len(g.Nodes[k].Outgoing) == 0 {
			seeds = append(seeds, k)
		}
	}

	if len(seeds) == 0 && len(keys) > 0 {
		// Fully cyclic graph: seed with the node with the largest in-degree.
		best := keys[0]
		for _, k := range keys {
			if len(g.Nodes[k].Incoming) > len(g.Nodes[best].Incoming) {
				best = k
			}
		}
		seeds = []string{best}
	}

	for _, k := range seeds {
		g.Nodes[k].Column = 0
		assigned[k] = true
	}

	for {
		progressed := false
		for _, k := range keys {
			if assigned[k] {
				continue
			}
			node := g.Nodes[k]

			fullyAssigned := true
			maxCol := -1
			for t := range node.Outgoing {
				if !assigned[t] {
					fullyAssigned = false
					break
				}
				if c := g.Nodes[t].Column; c > maxCol {
					maxCol = c
				}
			}
			if !fullyAssigned {
				continue
			}

			node.Column = 1 + maxCol
			assigned[k] = true
			progressed = true
		}
		if !progressed {
			break
		}
	}

	// Residual: anything left is part of a cycle reachable from no seed.
	for _, k := range keys {
		if !assigned[k] {
			g.Nodes[k].Column = 0
			assigned[k] = true
		}
	}
}
