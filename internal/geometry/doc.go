// Package geometry owns the planar primitives used by ROI filtering.
//
// Responsibilities: the Point and Polygon types and the point-in-polygon
// containment test. Containment works in the XY plane only; Z is carried
// on points but never consulted.
//
// Boundary rule: a point lying exactly on a polygon edge or vertex is
// inside. Every caller in this module relies on this one definition.
//
// Dependency rule: geometry depends on no other internal package.
package geometry
