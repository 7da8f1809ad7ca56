package layout

import (
	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/AndrewBazen/django-schema-viewer/internal/schema"
)

// Node is a drawable box representing one schema table, keyed "<app>.<model>".
type Node struct {
	Key       string
	AppLabel  string
	ModelName string
	Model     schema.Model
	Height    int

	Outgoing          map[string]bool
	Incoming          map[string]bool
	Connections       map[string]bool
	ConnOrder         []string // Connections' keys in first-seen order, for deterministic row placement
	HasSelfConnection bool

	Column int
	Row    int
}

// Edge is a directed forward relationship between two distinct nodes,
// carrying the relationship record as declared on the source model.
type Edge struct {
	Source string
	Target string
	Rel    schema.Relationship
}

// Graph holds the node set, edge set (in deterministic insertion order),
// and derived adjacency built from a schema snapshot.
type Graph struct {
	Nodes map[string]*Node
	Edges []*Edge
}

func nodeKey(appLabel, modelName string) string {
	return appLabel + "." + modelName
}

// BuildGraph instantiates one Node per (app, model) pair and one Edge per
// deduplicated forward relationship with a resolvable target. Apps and
// models are visited in sorted order so that the resulting edge order —
// and everything downstream that depends on it (columns, rows, routing) —
// is deterministic despite schema.Schema storing apps/models in Go maps,
// which have no defined iteration order.
func BuildGraph(s *schema.Schema) *Graph {
	g := &Graph{Nodes: map[string]*Node{}}

	appLabels := sortedKeys(s.Apps)
	for _, appLabel := range appLabels {
		app := s.Apps[appLabel]
		modelNames := sortedModelKeys(app.Models)
		for _, modelName := range modelNames {
			model := app.Models[modelName]
			key := nodeKey(appLabel, modelName)
			g.Nodes[key] = &Node{
				Key:         key,
				AppLabel:    appLabel,
				ModelName:   modelName,
				Model:       model,
				Height:      NodeHeight(model),
				Outgoing:    map[string]bool{},
				Incoming:    map[string]bool{},
				Connections: map[string]bool{},
			}
		}
	}

	seen := map[string]bool{}
	for _, appLabel := range appLabels {
		app := s.Apps[appLabel]
		modelNames := sortedModelKeys(app.Models)
		for _, modelName := range modelNames {
			model := app.Models[modelName]
			sourceKey := nodeKey(appLabel, modelName)
			source := g.Nodes[sourceKey]

			for _, rel := range model.Relationships {
				if rel.Direction != schema.Forward {
					continue
				}
				targetKey := nodeKey(rel.TargetApp, rel.TargetModel)

				if targetKey == sourceKey {
					source.HasSelfConnection = true
					continue
				}

				target, ok := g.Nodes[targetKey]
				if !ok {
					// Unknown relationship target: dropped silently.
					continue
				}

				dedupKey := sourceKey + "->" + targetKey + "#" + rel.Name
				if seen[dedupKey] {
					continue
				}
				seen[dedupKey] = true

				g.Edges = append(g.Edges, &Edge{
					Source: sourceKey,
					Target: targetKey,
					Rel:    rel,
				})

				source.Outgoing[targetKey] = true
				if !source.Connections[targetKey] {
					source.Connections[targetKey] = true
					source.ConnOrder = append(source.ConnOrder, targetKey)
				}
				target.Incoming[sourceKey] = true
				if !target.Connections[sourceKey] {
					target.Connections[sourceKey] = true
					target.ConnOrder = append(target.ConnOrder, sourceKey)
				}
			}
		}
	}

	return g
}

// collatedSort orders keys with a fresh, language-neutral collator rather
// than a byte-wise sort.Strings, so app/model labels with accented or
// differently-cased identifiers still land in a stable, locale-sane order.
// A Collator keeps internal scratch buffers and isn't safe to share across
// concurrent BuildGraph calls (one per HTTP request), so each call gets its
// own.
func collatedSort(keys []string) {
	collate.New(language.Und).SortStrings(keys)
}

func sortedKeys(m map[string]schema.App) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	collatedSort(keys)
	return keys
}

func sortedModelKeys(m map[string]schema.Model) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	collatedSort(keys)
	return keys
}

// OrderedNodeKeys returns all node keys in the same sorted order BuildGraph
// used to create them — useful for any downstream pass that must iterate
// nodes deterministically.
func (g *Graph) OrderedNodeKeys() []string {
	keys := make([]string, 0, len(g.Nodes))
	for k := range g.Nodes {
		keys = append(keys, k)
	}
	collatedSort(keys)
	return keys
}
