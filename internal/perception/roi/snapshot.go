package roi

import (
	"github.com/banshee-data/roifilter/internal/geometry"
	"github.com/banshee-data/roifilter/internal/perception/object"
)

// Snapshot is one frame's region of interest: the drivable road surfaces
// and junction surfaces in the objects' planar frame. The two sets are
// only kept apart for bookkeeping; membership treats them as one union.
type Snapshot struct {
	RoadPolygons     []geometry.Polygon
	JunctionPolygons []geometry.Polygon
}

// NewSnapshot returns a snapshot over the given polygon sets.
func NewSnapshot(road, junction []geometry.Polygon) *Snapshot {
	return &Snapshot{RoadPolygons: road, JunctionPolygons: junction}
}

// PolygonCount returns the number of road and junction polygons.
// A nil snapshot has none.
func (s *Snapshot) PolygonCount() int {
	if s == nil {
		return 0
	}
	return len(s.RoadPolygons) + len(s.JunctionPolygons)
}

// IsUniversal reports whether s admits every object. This holds for a nil
// snapshot and for one with no polygons, so that a missing map ROI never
// drops the whole frame.
func (s *Snapshot) IsUniversal() bool {
	return s.PolygonCount() == 0
}

// Contains is PointInRoi as a method.
func (s *Snapshot) Contains(p geometry.Point) bool {
	return PointInRoi(s, p)
}

// PointInRoi reports whether p lies in any road or junction polygon. Road
// polygons are tried first and the search stops at the first hit.
//
// With no polygons the result is false. Callers that want the
// universal-ROI behaviour must check IsUniversal first, as the filters do.
func PointInRoi(s *Snapshot, p geometry.Point) bool {
	if s == nil {
		return false
	}
	for _, poly := range s.RoadPolygons {
		if geometry.PointInPolygonXY(p, poly) {
			return true
		}
	}
	for _, poly := range s.JunctionPolygons {
		if geometry.PointInPolygonXY(p, poly) {
			return true
		}
	}
	return false
}

// locator answers ROI membership for a single point. Snapshot and Index
// both satisfy it with identical results.
type locator interface {
	Contains(p geometry.Point) bool
}

// ObjectInRoi reports whether the object's centroid lies in the ROI.
func ObjectInRoi(s *Snapshot, o *object.Object) bool {
	return centroidIn(s, o)
}

// ObjectBboxInRoi reports whether any corner of the object's oriented
// footprint lies in the ROI. An object without a defined heading is
// tested by its centroid alone.
func ObjectBboxInRoi(s *Snapshot, o *object.Object) bool {
	return footprintIn(s, o)
}

func centroidIn(l locator, o *object.Object) bool {
	return l.Contains(object.CentroidOf(o))
}

func footprintIn(l locator, o *object.Object) bool {
	if !object.HasHeading(o) {
		return centroidIn(l, o)
	}
	for _, corner := range object.FootprintCorners(o) {
		if l.Contains(corner) {
			return true
		}
	}
	return false
}
