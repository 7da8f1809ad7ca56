// Package layout implements the hierarchical grid layout engine: node
// geometry, graph construction, column assignment, row assignment, and
// position mapping. Edge routing lives in internal/routing; path smoothing
// and SVG rendering live in internal/render. This package is pure: no I/O,
// no logging — data in, data out.
package layout

import "github.com/AndrewBazen/django-schema-viewer/internal/schema"

// Layout constants — field anchors and node heights are computed from
// these, so they must never change independently of the render
// orchestrator's assumptions.
const (
	Header     = 50
	Pad        = 16
	RowHeight  = 28
	MoreHeight = 24
	VisibleMax = 5

	NodeWidth     = 220
	HorizontalGap = 150
	VerticalGap   = 100
	DefaultRowH   = 180

	FanOffsetStep = 12
)

// NodeHeight computes a node's pixel height from its field count. Adding a
// field never decreases the result.
func NodeHeight(m schema.Model) int {
	n := len(m.Fields)
	visible := n
	if visible > VisibleMax {
		visible = VisibleMax
	}
	h := Header + Pad + visible*RowHeight
	if n > VisibleMax {
		h += MoreHeight
	}
	return h
}

// fieldsAreaMidpoint is the fallback Y offset used when a lookup can't find
// a matching field — the vertical center of the (possibly empty) visible
// fields area.
const fieldsAreaMidpoint = Header + Pad/2 + RowHeight/2

// FieldYOffset returns the Y offset (relative to the node's top) of the
// field identified by rel.FieldName. If no field among the first
// VisibleMax matches, it falls back to the fields-area midpoint.
func FieldYOffset(m schema.Model, fieldName string) int {
	if fieldName == "" {
		return fieldsAreaMidpoint
	}
	limit := len(m.Fields)
	if limit > VisibleMax {
		limit = VisibleMax
	}
	for i := 0; i < limit; i++ {
		if m.Fields[i].Name == fieldName {
			return Header + Pad/2 + i*RowHeight + RowHeight/2
		}
	}
	return fieldsAreaMidpoint
}

// PKYOffset returns the Y offset of the model's first primary-key field
// among the first VisibleMax fields, or the fields-area midpoint if none is
// visible.
func PKYOffset(m schema.Model) int {
	limit := len(m.Fields)
	if limit > VisibleMax {
		limit = VisibleMax
	}
	for i := 0; i < limit; i++ {
		if m.Fields[i].Primary {
			return Header + Pad/2 + i*RowHeight + RowHeight/2
		}
	}
	return fieldsAreaMidpoint
}
