// Package testutil provides shared test fixtures.
//
// This package centralises the ROI polygons and object builders used by
// the geometry, roi and tool tests so scenarios read the same everywhere.
package testutil

import (
	"github.com/banshee-data/roifilter/internal/geometry"
	"github.com/banshee-data/roifilter/internal/perception/object"
	"gonum.org/v1/gonum/spatial/r3"
)

// SquarePoints returns the corners of the axis-aligned square with its
// lower-left corner at (x, y) and the given side length, counter-clockwise.
func SquarePoints(x, y, side float64) []geometry.Point {
	return []geometry.Point{
		{X: x, Y: y},
		{X: x + side, Y: y},
		{X: x + side, Y: y + side},
		{X: x, Y: y + side},
	}
}

// Square returns SquarePoints as a Polygon.
func Square(x, y, side float64) geometry.Polygon {
	return geometry.NewPolygon(SquarePoints(x, y, side)...)
}

// NewObject builds an object with the given class, centre, heading and
// planar size (length, width). Height is fixed at 1.5m.
func NewObject(id string, typ object.Type, cx, cy, dx, dy, length, width float64) *object.Object {
	return &object.Object{
		ID:        id,
		Type:      typ,
		Center:    r3.Vec{X: cx, Y: cy},
		Direction: r3.Vec{X: dx, Y: dy},
		Size:      r3.Vec{X: length, Y: width, Z: 1.5},
	}
}

// Vehicle builds a vehicle heading along +X.
func Vehicle(id string, cx, cy, length, width float64) *object.Object {
	return NewObject(id, object.TypeVehicle, cx, cy, 1, 0, length, width)
}

// Unknown builds an unknown-class object heading along +X.
func Unknown(id string, cx, cy, length, width float64) *object.Object {
	return NewObject(id, object.TypeUnknown, cx, cy, 1, 0, length, width)
}

// IDs returns the object IDs in order, for compact comparisons.
func IDs(objects []*object.Object) []string {
	ids := make([]string, len(objects))
	for i, o := range objects {
		if o != nil {
			ids[i] = o.ID
		}
	}
	return ids
}
