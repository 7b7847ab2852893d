package geometry

import (
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"
)

// Point is a position in the shared planar frame of the ROI and the
// objects being filtered.
type Point struct {
	X, Y, Z float64 // Z is carried but ignored by containment
}

// XY projects p onto the containment plane.
func (p Point) XY() orb.Point {
	return orb.Point{p.X, p.Y}
}

// Polygon is a closed boundary in the XY plane. The last vertex connects
// back to the first; an explicit closing duplicate is tolerated but not
// required. A Polygon is immutable once built.
type Polygon struct {
	ring  orb.Ring
	bound orb.Bound
}

// NewPolygon builds a polygon from its vertices in boundary order.
// Z values are dropped.
func NewPolygon(points ...Point) Polygon {
	ring := make(orb.Ring, len(points))
	for i, p := range points {
		ring[i] = p.XY()
	}
	return newPolygonFromRing(ring)
}

// NewPolygonXY builds a polygon from flat x,y pairs. A trailing odd value
// is ignored.
func NewPolygonXY(coords ...float64) Polygon {
	ring := make(orb.Ring, 0, len(coords)/2)
	for i := 0; i+1 < len(coords); i += 2 {
		ring = append(ring, orb.Point{coords[i], coords[i+1]})
	}
	return newPolygonFromRing(ring)
}

// NewPolygonFromRing wraps an orb ring. The ring is copied.
func NewPolygonFromRing(r orb.Ring) Polygon {
	ring := make(orb.Ring, len(r))
	copy(ring, r)
	return newPolygonFromRing(ring)
}

func newPolygonFromRing(ring orb.Ring) Polygon {
	poly := Polygon{ring: ring}
	if len(ring) > 0 {
		poly.bound = ring.Bound()
	}
	return poly
}

// Len returns the number of vertices.
func (p Polygon) Len() int {
	return len(p.ring)
}

// Empty reports whether the polygon has no vertices.
func (p Polygon) Empty() bool {
	return len(p.ring) == 0
}

// Vertices returns a copy of the polygon's vertices with Z set to zero.
func (p Polygon) Vertices() []Point {
	out := make([]Point, len(p.ring))
	for i, v := range p.ring {
		out[i] = Point{X: v[0], Y: v[1]}
	}
	return out
}

// Bound returns the axis-aligned XY bounds. The zero Bound is returned
// for an empty polygon.
func (p Polygon) Bound() orb.Bound {
	return p.bound
}

// ContainsXY reports whether pt lies inside p or on its boundary.
func (p Polygon) ContainsXY(pt Point) bool {
	return PointInPolygonXY(pt, p)
}

// PointInPolygonXY is the containment primitive for ROI filtering. It
// tests pt against poly in the XY plane using ray casting. Points on an
// edge or vertex count as inside, with exact arithmetic and no tolerance
// band. An empty polygon contains nothing.
func PointInPolygonXY(pt Point, poly Polygon) bool {
	if len(poly.ring) == 0 {
		return false
	}
	return planar.RingContains(poly.ring, pt.XY())
}
