package render

import (
	"fmt"
	"html"
	"strings"

	"github.com/AndrewBazen/django-schema-viewer/internal/layout"
	"github.com/AndrewBazen/django-schema-viewer/internal/routing"
	"github.com/AndrewBazen/django-schema-viewer/internal/schema"
)

const canvasMargin = 50

// markerID returns the `<defs>` marker to terminate an edge of the given
// relationship type with — a crow's-foot for foreign keys (S4) and for any
// unrecognised type, a circle for one-to-one, a plain arrow for
// many-to-many.
func markerID(t schema.RelationshipType) string {
	switch t {
	case schema.ForeignKey:
		return "marker-fk"
	case schema.OneToOne:
		return "marker-o2o"
	case schema.ManyToMany:
		return "marker-m2m"
	default:
		return "marker-fk"
	}
}

// RenderSVG composes a layout.Result and its routed edges into a
// self-contained SVG document. This is a thin orchestrator — all the
// actual geometry was already decided by layout and routing; this package
// only emits it.
func RenderSVG(result *layout.Result, routes []*routing.Route) string {
	width, height := canvasExtent(result)

	var b strings.Builder
	fmt.Fprintf(&b, `<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">`, width, height, width, height)
	b.WriteString(defsBlock())

	for _, key := range result.Graph.OrderedNodeKeys() {
		renderNode(&b, result.Graph.Nodes[key], result.Positions[key])
	}

	for _, route := range routes {
		renderEdge(&b, route)
	}

	for _, key := range result.Graph.OrderedNodeKeys() {
		node := result.Graph.Nodes[key]
		if node.HasSelfConnection {
			renderSelfLoop(&b, node, result.Positions[key])
		}
	}

	b.WriteString(`</svg>`)
	return b.String()
}

func canvasExtent(result *layout.Result) (int, int) {
	width, height := 0, 0
	for key, bnd := range result.Bounds {
		right := bnd.Right
		if result.Graph.Nodes[key].HasSelfConnection {
			right += 40 // self-loop protrusion
		}
		if right > width {
			width = right
		}
		if bnd.Bottom > height {
			height = bnd.Bottom
		}
	}
	return width + canvasMargin, height + canvasMargin
}

func defsBlock() string {
	return `<defs>` +
		`<marker id="marker-fk" markerWidth="12" markerHeight="12" refX="10" refY="6" orient="auto"><path d="M0,0 L10,6 L0,12 M0,6 L10,6" fill="none" stroke="#555"/></marker>` +
		`<marker id="marker-o2o" markerWidth="10" markerHeight="10" refX="8" refY="5" orient="auto"><circle cx="8" cy="5" r="3" fill="none" stroke="#555"/></marker>` +
		`<marker id="marker-m2m" markerWidth="12" markerHeight="12" refX="10" refY="6" orient="auto"><path d="M0,0 L10,6 L0,12" fill="none" stroke="#555"/></marker>` +
		`</defs>`
}

func renderNode(b *strings.Builder, node *layout.Node, pos layout.Position) {
	fmt.Fprintf(b, `<g class="node" data-key="%s">`, html.EscapeString(node.Key))
	fmt.Fprintf(b, `<rect x="%d" y="%d" width="%d" height="%d" rx="4" fill="#fff" stroke="#999"/>`,
		pos.X, pos.Y, layout.NodeWidth, node.Height)
	fmt.Fprintf(b, `<text x="%d" y="%d" font-weight="bold">%s</text>`,
		pos.X+layout.Pad/2, pos.Y+layout.Header/2, html.EscapeString(node.ModelName))

	visible := len(node.Model.Fields)
	if visible > layout.VisibleMax {
		visible = layout.VisibleMax
	}
	for i := 0; i < visible; i++ {
		field := node.Model.Fields[i]
		y := pos.Y + layout.Header + layout.Pad/2 + i*layout.RowHeight + layout.RowHeight/2
		label := field.Name
		if field.Primary {
			label += " (pk)"
		}
		fmt.Fprintf(b, `<text x="%d" y="%d">%s</text>`, pos.X+layout.Pad/2, y, html.EscapeString(label))
	}
	if len(node.Model.Fields) > layout.VisibleMax {
		hidden := len(node.Model.Fields) - layout.VisibleMax
		y := pos.Y + layout.Header + layout.Pad/2 + layout.VisibleMax*layout.RowHeight + layout.MoreHeight/2
		fmt.Fprintf(b, `<text x="%d" y="%d" font-style="italic">+%d more</text>`, pos.X+layout.Pad/2, y, hidden)
	}
	b.WriteString(`</g>`)
}

func renderEdge(b *strings.Builder, route *routing.Route) {
	d := PathToSVGRounded(route.Points, CornerRadius)
	fmt.Fprintf(b, `<path d="%s" fill="none" stroke="#555" marker-end="url(#%s)"/>`, d, markerID(route.Rel.Type))
}

// renderSelfLoop draws the rectangular self-referencing loop on the right
// edge of a node.
func renderSelfLoop(b *strings.Builder, node *layout.Node, pos layout.Position) {
	right := pos.X + layout.NodeWidth
	top1 := pos.Y + node.Height/3
	top2 := pos.Y + 2*node.Height/3

	points := []routing.Point{
		{X: right, Y: top1},
		{X: right + 40, Y: top1},
		{X: right + 40, Y: top2},
		{X: right, Y: top2},
	}

	relType := selfRelationshipType(node)
	d := PathToSVGRounded(points, CornerRadius)
	fmt.Fprintf(b, `<path d="%s" fill="none" stroke="#555" marker-end="url(#%s)"/>`, d, markerID(relType))
}

// selfRelationshipType finds the relationship type that produced this
// node's self-connection, so the loop uses the same marker as any other
// edge of that relationship type.
func selfRelationshipType(node *layout.Node) schema.RelationshipType {
	for _, rel := range node.Model.Relationships {
		if rel.Direction != schema.Forward {
			continue
		}
		if rel.TargetApp == node.AppLabel && rel.TargetModel == node.ModelName {
			return rel.Type
		}
	}
	return schema.ForeignKey
}
