// Package topology adapts the dependency-graph analysis from dbgraph's
// internal/graph package (degree centrality, Tarjan SCCs, god-object
// detection, index hygiene) onto the ER layout graph built by
// internal/layout, for the `stats` CLI command.
package topology

import (
	"fmt"

	"github.com/AndrewBazen/django-schema-viewer/internal/layout"
)

// NodeRank is one model's centrality ranking within the schema graph.
type NodeRank struct {
	Key        string
	InDegree   int
	OutDegree  int
	Centrality float64
}

// Stats is the topological summary of a schema graph.
type Stats struct {
	Nodes          int
	Edges          int
	Density        float64
	Components     int
	MaxCentrality  float64
	CentralNode    string
	LongestPath    int
	IsolatedGroups []string
	TopNodes       []NodeRank
}

// Analyze computes degree centrality, weak-component islands, and the
// longest dependency chain in g, mirroring dbgraph's AnalyzeTopology.
func Analyze(g *layout.Graph) *Stats {
	stats := &Stats{Nodes: len(g.Nodes), Edges: len(g.Edges)}

	if stats.Nodes > 1 {
		stats.Density = float64(stats.Edges) / float64(stats.Nodes*(stats.Nodes-1))
	}

	var ranks []NodeRank
	maxDegree := 0
	for _, key := range g.OrderedNodeKeys() {
		node := g.Nodes[key]
		in, out := len(node.Incoming), len(node.Outgoing)
		total := in + out
		if total > maxDegree {
			maxDegree = total
			stats.CentralNode = key
		}
		ranks = append(ranks, NodeRank{Key: key, InDegree: in, OutDegree: out, Centrality: float64(total)})
	}
	stats.MaxCentrality = float64(maxDegree)

	// Bubble sort by descending centrality: N is a schema's model count,
	// never large enough to need better than O(n^2).
	for i := 0; i < len(ranks)-1; i++ {
		for j := 0; j < len(ranks)-i-1; j++ {
			if ranks[j].Centrality < ranks[j+1].Centrality {
				ranks[j], ranks[j+1] = ranks[j+1], ranks[j]
			}
		}
	}
	stats.TopNodes = ranks

	stats.Components, stats.IsolatedGroups = weakComponents(g)
	stats.LongestPath = longestChain(g)

	return stats
}

func weakComponents(g *layout.Graph) (int, []string) {
	visited := map[string]bool{}
	components := 0
	var isolated []string

	for _, key := range g.OrderedNodeKeys() {
		if visited[key] {
			continue
		}
		components++
		node := g.Nodes[key]
		if len(node.Connections) == 0 {
			visited[key] = true
			isolated = append(isolated, key)
			continue
		}

		queue := []string{key}
		visited[key] = true
		members := []string{key}
		for i := 0; i < len(queue); i++ {
			for _, neighbor := range g.Nodes[queue[i]].ConnOrder {
				if !visited[neighbor] {
					visited[neighbor] = true
					queue = append(queue, neighbor)
					members = append(members, neighbor)
				}
			}
		}
		if len(members) < 3 {
			isolated = append(isolated, fmt.Sprintf("%v", members))
		}
	}

	return components, isolated
}

func longestChain(g *layout.Graph) int {
	memo := map[string]int{}
	var depth func(key string, stack map[string]bool) int
	depth = func(key string, stack map[string]bool) int {
		if d, ok := memo[key]; ok {
			return d
		}
		if stack[key] {
			return 0
		}
		stack[key] = true

		maxD := 0
		for target := range g.Nodes[key].Outgoing {
			if d := depth(target, stack); d > maxD {
				maxD = d
			}
		}
		stack[key] = false
		memo[key] = 1 + maxD
		return 1 + maxD
	}

	longest := 0
	for _, key := range g.OrderedNodeKeys() {
		if d := depth(key, map[string]bool{}); d > longest {
			longest = d
		}
	}
	return longest
}

// Cycles runs Tarjan's algorithm to find strongly connected components of
// size > 1, plus single nodes with a self-reference — mirroring dbgraph's
// CheckCycles, generalized to the ER graph's Outgoing adjacency.
func Cycles(g *layout.Graph) [][]string {
	var index int
	var stack []string
	indices := map[string]int{}
	lowLink := map[string]int{}
	onStack := map[string]bool{}
	var sccs [][]string

	var strongconnect func(string)
	strongconnect = func(v string) {
		indices[v] = index
		lowLink[v] = index
		index++
		stack = append(stack, v)
		onStack[v] = true

		for w := range g.Nodes[v].Outgoing {
			if _, ok := indices[w]; !ok {
				strongconnect(w)
				if lowLink[w] < lowLink[v] {
					lowLink[v] = lowLink[w]
				}
			} else if onStack[w] {
				if indices[w] < lowLink[v] {
					lowLink[v] = indices[w]
				}
			}
		}

		if lowLink[v] == indices[v] {
			var scc []string
			for {
				w := stack[len(stack)-1]
				stack = stack[:len(stack)-1]
				onStack[w] = false
				scc = append(scc, w)
				if w == v {
					break
				}
			}

			isCycle := len(scc) > 1
			if len(scc) == 1 && g.Nodes[v].HasSelfConnection {
				isCycle = true
			}
			if isCycle {
				sccs = append(sccs, scc)
			}
		}
	}

	for _, key := range g.OrderedNodeKeys() {
		if _, ok := indices[key]; !ok {
			strongconnect(key)
		}
	}

	return sccs
}

// GodObject is a model with connectivity past the coupling threshold.
type GodObject struct {
	Key          string
	Degree       int
	Dependents   int
	Dependencies int
}

const godObjectThreshold = 15

// DetectGodObjects flags models whose total in+out degree meets or exceeds
// godObjectThreshold, mirroring dbgraph's DetectGodObjects.
func DetectGodObjects(g *layout.Graph) []GodObject {
	var gods []GodObject
	for _, key := range g.OrderedNodeKeys() {
		node := g.Nodes[key]
		in, out := len(node.Incoming), len(node.Outgoing)
		if total := in + out; total >= godObjectThreshold {
			gods = append(gods, GodObject{Key: key, Degree: total, Dependents: in, Dependencies: out})
		}
	}
	return gods
}

// IndexIssue names one foreign key whose source column has no supporting
// index — a table scan risk on delete/update cascades.
type IndexIssue struct {
	Edge   string
	Column string
}

// IndexCoverage is the result of CheckIndexCoverage.
type IndexCoverage struct {
	TotalFKs   int
	IndexedFKs int
	Missing    []IndexIssue
}

// CheckIndexCoverage inspects every forward-relationship edge and flags
// ones whose anchor field is neither indexed, nor a primary key, nor unique
// (all three imply an index in Postgres), mirroring dbgraph's
// CheckIndexCoverage against the schema's per-field
// DBIndex/Primary/Unique flags.
func CheckIndexCoverage(g *layout.Graph) *IndexCoverage {
	cov := &IndexCoverage{}

	for _, e := range g.Edges {
		cov.TotalFKs++
		source := g.Nodes[e.Source]

		indexed := false
		for _, f := range source.Model.Fields {
			if f.Name != e.Rel.FieldName {
				continue
			}
			indexed = f.DBIndex || f.Primary || f.Unique
			break
		}

		if indexed {
			cov.IndexedFKs++
		} else {
			cov.Missing = append(cov.Missing, IndexIssue{
				Edge:   e.Source + " -> " + e.Target,
				Column: e.Rel.FieldName,
			})
		}
	}

	return cov
}
