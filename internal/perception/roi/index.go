package roi

import (
	"github.com/banshee-data/roifilter/internal/geometry"
	"github.com/banshee-data/roifilter/internal/perception/object"
	"github.com/dhconnelly/rtreego"
)

// indexPad widens every indexed rectangle and query box. rtreego rejects
// zero-extent rectangles and treats touching rectangles as disjoint, so
// without padding a point on a polygon's bounding edge would be missed.
const indexPad = 1e-6

// Index answers the same membership question as PointInRoi but first
// narrows the candidate polygons with an R-tree over their XY bounds.
// It pays off for snapshots with many polygons; for a handful the plain
// scan is cheaper.
//
// An Index is read-only after NewIndex and safe for concurrent use.
type Index struct {
	snapshot *Snapshot
	tree     *rtreego.Rtree
}

type indexedPolygon struct {
	poly   geometry.Polygon
	bounds rtreego.Rect
}

func (p *indexedPolygon) Bounds() rtreego.Rect {
	return p.bounds
}

// NewIndex builds an R-tree over the snapshot's non-empty polygons.
func NewIndex(s *Snapshot) *Index {
	idx := &Index{snapshot: s, tree: rtreego.NewTree(2, 4, 16)}
	if s == nil {
		return idx
	}

	add := func(polys []geometry.Polygon) {
		for _, poly := range polys {
			if poly.Empty() {
				continue
			}
			b := poly.Bound()
			rect, err := rtreego.NewRect(
				rtreego.Point{b.Min[0] - indexPad, b.Min[1] - indexPad},
				[]float64{b.Max[0] - b.Min[0] + 2*indexPad, b.Max[1] - b.Min[1] + 2*indexPad},
			)
			if err != nil {
				Opsf("index: skipping polygon with invalid bounds %v: %v", b, err)
				continue
			}
			idx.tree.Insert(&indexedPolygon{poly: poly, bounds: rect})
		}
	}
	add(s.RoadPolygons)
	add(s.JunctionPolygons)
	return idx
}

// Snapshot returns the snapshot the index was built from.
func (idx *Index) Snapshot() *Snapshot {
	return idx.snapshot
}

// Size returns the number of indexed polygons.
func (idx *Index) Size() int {
	return idx.tree.Size()
}

// Contains reports whether p lies in any indexed polygon.
func (idx *Index) Contains(p geometry.Point) bool {
	query := rtreego.Point{p.X, p.Y}.ToRect(indexPad)
	for _, item := range idx.tree.SearchIntersect(query) {
		if geometry.PointInPolygonXY(p, item.(*indexedPolygon).poly) {
			return true
		}
	}
	return false
}

// FilterStrict is FilterStrict over the indexed snapshot.
func (idx *Index) FilterStrict(objects []*object.Object) ([]*object.Object, bool) {
	return filterSequential(PolicyStrict, idx.snapshot, idx, objects)
}

// FilterSlack is FilterSlack over the indexed snapshot.
func (idx *Index) FilterSlack(objects []*object.Object) ([]*object.Object, bool) {
	return filterSequential(PolicySlack, idx.snapshot, idx, objects)
}
