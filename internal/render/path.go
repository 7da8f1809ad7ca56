// Package render turns a layout.Result and a set of routing.Route polylines
// into an SVG document. Like internal/layout and internal/routing it does
// no I/O of its own — callers decide whether the SVG is written to a
// response, a file, or discarded.
package render

import (
	"fmt"
	"math"
	"strings"

	"github.com/AndrewBazen/django-schema-viewer/internal/routing"
)

// CornerRadius is the default rounding radius for routed polylines.
const CornerRadius = 8.0

// PathToSVGRounded converts a polyline of two or more points into an SVG
// path `d` attribute, replacing interior corners with a quadratic Bezier
// wherever the adjoining segments are long enough to afford the requested
// radius. With radius 0 every corner degenerates to a plain line, so the
// emitted path's vertices are (modulo floating-point noise) the input
// points.
func PathToSVGRounded(points []routing.Point, radius float64) string {
	if len(points) < 2 {
		return ""
	}

	var b strings.Builder
	fmt.Fprintf(&b, "M %s", fmtPoint(points[0]))

	if len(points) == 2 {
		fmt.Fprintf(&b, " L %s", fmtPoint(points[1]))
		return b.String()
	}

	for i := 1; i < len(points)-1; i++ {
		prev, p, next := points[i-1], points[i], points[i+1]

		d1 := distance(prev, p)
		d2 := distance(p, next)
		r := math.Min(radius, math.Min(d1/2, d2/2))

		if r <= 1 {
			fmt.Fprintf(&b, " L %s", fmtPoint(p))
			continue
		}

		before := alongLine(p, prev, r)
		after := alongLine(p, next, r)
		fmt.Fprintf(&b, " L %s", fmtFloatPoint(before))
		fmt.Fprintf(&b, " Q %s %s", fmtPoint(p), fmtFloatPoint(after))
	}

	fmt.Fprintf(&b, " L %s", fmtPoint(points[len(points)-1]))
	return b.String()
}

type floatPoint struct{ X, Y float64 }

func distance(a, b routing.Point) float64 {
	dx := float64(b.X - a.X)
	dy := float64(b.Y - a.Y)
	return math.Hypot(dx, dy)
}

// alongLine returns the point at distance d from `from`, travelling toward
// `toward` along the straight line between them.
func alongLine(from, toward routing.Point, d float64) floatPoint {
	full := distance(from, toward)
	if full == 0 {
		return floatPoint{float64(from.X), float64(from.Y)}
	}
	t := d / full
	return floatPoint{
		X: float64(from.X) + t*float64(toward.X-from.X),
		Y: float64(from.Y) + t*float64(toward.Y-from.Y),
	}
}

func fmtPoint(p routing.Point) string {
	return fmt.Sprintf("%d,%d", p.X, p.Y)
}

func fmtFloatPoint(p floatPoint) string {
	return fmt.Sprintf("%.2f,%.2f", p.X, p.Y)
}
