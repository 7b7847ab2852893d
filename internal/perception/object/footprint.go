package object

import (
	"github.com/banshee-data/roifilter/internal/geometry"
	"gonum.org/v1/gonum/spatial/r3"
)

// HeadingEpsilon is the smallest XY heading magnitude treated as a defined
// heading. Below it the footprint collapses to the centroid. The value is
// the float32 machine epsilon.
const HeadingEpsilon = 1.1920929e-07

// CentroidOf projects the object's centre onto a containment point.
// Z is preserved.
func CentroidOf(o *Object) geometry.Point {
	return geometry.Point{X: o.Center.X, Y: o.Center.Y, Z: o.Center.Z}
}

// PlanarHeading returns the object's direction with Z zeroed, normalised
// to unit length, and whether it is defined. ok is false when the XY
// magnitude is below HeadingEpsilon.
func PlanarHeading(o *Object) (heading r3.Vec, ok bool) {
	dir := r3.Vec{X: o.Direction.X, Y: o.Direction.Y}
	norm := r3.Norm(dir)
	if norm < HeadingEpsilon {
		return r3.Vec{}, false
	}
	return r3.Scale(1/norm, dir), true
}

// HasHeading reports whether the object's heading is defined in XY.
func HasHeading(o *Object) bool {
	_, ok := PlanarHeading(o)
	return ok
}

// FootprintCorners synthesises the four corners of the object's oriented
// ground rectangle from its centre, heading, length and width.
//
// Corner order is (+L,+W), (-L,+W), (+L,-W), (-L,-W), where L runs along
// the heading and W along its left-hand perpendicular. When the heading is
// undefined all four corners equal the centroid, which reduces any
// footprint test to a centroid test.
func FootprintCorners(o *Object) [4]geometry.Point {
	heading, ok := PlanarHeading(o)
	if !ok {
		c := CentroidOf(o)
		return [4]geometry.Point{c, c, c, c}
	}

	ortho := r3.Vec{X: -heading.Y, Y: heading.X}
	halfLength := r3.Scale(o.Length()/2, heading)
	halfWidth := r3.Scale(o.Width()/2, ortho)

	corners := [4]r3.Vec{
		r3.Add(r3.Add(o.Center, halfLength), halfWidth),
		r3.Add(r3.Sub(o.Center, halfLength), halfWidth),
		r3.Sub(r3.Add(o.Center, halfLength), halfWidth),
		r3.Sub(r3.Sub(o.Center, halfLength), halfWidth),
	}

	var out [4]geometry.Point
	for i, c := range corners {
		out[i] = geometry.Point{X: c.X, Y: c.Y, Z: c.Z}
	}
	return out
}
