package roi

import (
	"testing"

	"github.com/banshee-data/roifilter/internal/geometry"
	"github.com/banshee-data/roifilter/internal/testutil"
	"github.com/stretchr/testify/assert"
)

func TestSnapshot_PolygonCount(t *testing.T) {
	t.Parallel()

	var nilSnap *Snapshot
	assert.Equal(t, 0, nilSnap.PolygonCount())
	assert.True(t, nilSnap.IsUniversal())

	empty := NewSnapshot(nil, nil)
	assert.Equal(t, 0, empty.PolygonCount())
	assert.True(t, empty.IsUniversal())

	s := NewSnapshot(
		[]geometry.Polygon{testutil.Square(0, 0, 1), testutil.Square(5, 5, 1)},
		[]geometry.Polygon{testutil.Square(10, 10, 1)},
	)
	assert.Equal(t, 3, s.PolygonCount())
	assert.False(t, s.IsUniversal())
}

func TestPointInRoi(t *testing.T) {
	t.Parallel()

	road := testutil.Square(0, 0, 10)
	junction := testutil.Square(20, 0, 5)
	s := NewSnapshot([]geometry.Polygon{road}, []geometry.Polygon{junction})

	tests := []struct {
		name string
		pt   geometry.Point
		want bool
	}{
		{"inside road", geometry.Point{X: 5, Y: 5}, true},
		{"inside junction", geometry.Point{X: 22, Y: 2}, true},
		{"between polygons", geometry.Point{X: 15, Y: 2}, false},
		{"road edge", geometry.Point{X: 10, Y: 3}, true},
		{"junction vertex", geometry.Point{X: 25, Y: 5}, true},
		{"far away", geometry.Point{X: -50, Y: 70}, false},
		{"z ignored", geometry.Point{X: 5, Y: 5, Z: 99}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, PointInRoi(s, tt.pt))
			assert.Equal(t, tt.want, s.Contains(tt.pt))
		})
	}
}

func TestPointInRoi_NoPolygons(t *testing.T) {
	t.Parallel()

	// Membership itself is false with nothing to be inside of; only the
	// filters treat an empty ROI as universal.
	assert.False(t, PointInRoi(nil, geometry.Point{}))
	assert.False(t, PointInRoi(&Snapshot{}, geometry.Point{X: 1, Y: 1}))
}

func TestPointInRoi_RoadAndJunctionAreEquivalent(t *testing.T) {
	t.Parallel()

	poly := testutil.Square(0, 0, 4)
	asRoad := NewSnapshot([]geometry.Polygon{poly}, nil)
	asJunction := NewSnapshot(nil, []geometry.Polygon{poly})

	for x := -1.0; x <= 5; x += 0.5 {
		for y := -1.0; y <= 5; y += 0.5 {
			p := geometry.Point{X: x, Y: y}
			assert.Equal(t, PointInRoi(asRoad, p), PointInRoi(asJunction, p), "at %+v", p)
		}
	}
}

func TestObjectPredicates(t *testing.T) {
	t.Parallel()

	s := NewSnapshot([]geometry.Polygon{testutil.Square(0, 0, 10)}, nil)

	inside := testutil.Vehicle("in", 5, 5, 2, 1)
	assert.True(t, ObjectInRoi(s, inside))
	assert.True(t, ObjectBboxInRoi(s, inside))

	overhang := testutil.Vehicle("overhang", 15, 5, 12, 2)
	assert.False(t, ObjectInRoi(s, overhang))
	assert.True(t, ObjectBboxInRoi(s, overhang))

	noHeading := testutil.NewObject("still", "vehicle", 15, 5, 0, 0, 12, 2)
	assert.False(t, ObjectBboxInRoi(s, noHeading), "undefined heading falls back to the centroid")
}
