package object

import (
	"errors"
	"fmt"
	"strings"

	"gonum.org/v1/gonum/spatial/r3"
)

// Type represents the classification of a detected object.
type Type string

const (
	// TypeUnknown indicates the detector could not classify the object
	TypeUnknown Type = "unknown"
	// TypeUnknownMovable indicates an unclassified object that may move
	TypeUnknownMovable Type = "unknown_movable"
	// TypeUnknownUnmovable indicates an unclassified static object
	TypeUnknownUnmovable Type = "unknown_unmovable"
	// TypePedestrian indicates a pedestrian or person
	TypePedestrian Type = "pedestrian"
	// TypeBicycle indicates a bicycle, cyclist or similar two-wheeler
	TypeBicycle Type = "bicycle"
	// TypeVehicle indicates a car, truck or bus
	TypeVehicle Type = "vehicle"
)

// ErrUnknownType is returned by ParseType for names outside the closed
// classification set.
var ErrUnknownType = errors.New("unknown object type")

// AllTypes lists the closed classification set in declaration order.
var AllTypes = []Type{
	TypeUnknown,
	TypeUnknownMovable,
	TypeUnknownUnmovable,
	TypePedestrian,
	TypeBicycle,
	TypeVehicle,
}

// ParseType maps a name to a Type. Matching is case-insensitive and
// surrounding whitespace is ignored.
func ParseType(s string) (Type, error) {
	name := Type(strings.ToLower(strings.TrimSpace(s)))
	for _, t := range AllTypes {
		if t == name {
			return t, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownType, s)
}

// IsUnknown reports whether t is one of the generic "unknown" classes.
// Objects of these classes never receive footprint-based ROI rescue.
func (t Type) IsUnknown() bool {
	switch t {
	case TypeUnknown, TypeUnknownMovable, TypeUnknownUnmovable:
		return true
	}
	return false
}

// Valid reports whether t belongs to the classification set.
func (t Type) Valid() bool {
	for _, known := range AllTypes {
		if t == known {
			return true
		}
	}
	return false
}

func (t Type) String() string {
	return string(t)
}

// Object is a detected entity in the ROI's planar frame.
//
//   - Center: box centre (metres). Z is carried but ignored by ROI tests.
//   - Direction: heading vector. Its Z component is ignored and it need
//     not be unit length.
//   - Size: X is length along the heading, Y is width across it, Z is height.
type Object struct {
	ID        string
	Type      Type
	Center    r3.Vec
	Direction r3.Vec
	Size      r3.Vec
}

// Length returns the extent along the heading.
func (o *Object) Length() float64 { return o.Size.X }

// Width returns the extent perpendicular to the heading.
func (o *Object) Width() float64 { return o.Size.Y }

// Height returns the vertical extent.
func (o *Object) Height() float64 { return o.Size.Z }
