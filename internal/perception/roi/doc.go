// Package roi decides which detected objects lie inside the drivable
// region of interest.
//
// Responsibilities: ROI membership for single points (road polygons OR
// junction polygons), the strict and slack object filters, a concurrent
// Filterer that produces the same results, an R-tree prefilter for large
// ROI snapshots, and GeoJSON loading of snapshots for offline use.
// Key types: Snapshot, Policy, Filterer, Index.
//
// A nil Snapshot, or one holding no polygons, is universal: every object
// passes both filters. The filters never modify the snapshot or the
// objects; they return a new slice of the caller's object pointers in
// input order.
//
// Containment on polygon boundaries follows geometry.PointInPolygonXY:
// boundary points are inside.
package roi
