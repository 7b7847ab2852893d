// Package object defines the detected-object model consumed by ROI
// filtering and the geometric adapters that turn an object into points
// the containment primitive understands.
//
// Key types: Object, Type.
// Key adapters: CentroidOf, FootprintCorners.
//
// Objects are read-only inputs. Nothing in this package writes to an
// Object after construction.
package object
