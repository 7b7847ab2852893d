package roi

import (
	"errors"
	"math"
	"math/rand"
	"testing"

	"github.com/banshee-data/roifilter/internal/geometry"
	"github.com/banshee-data/roifilter/internal/perception/object"
	"github.com/banshee-data/roifilter/internal/testutil"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r3"
)

// squareScenario is the reference frame: one 10x10 road square and four
// objects around it.
//
//	A: vehicle centred inside the square
//	B: vehicle centred outside whose rear corner (9,6) reaches inside
//	C: as B but unknown class
//	D: small vehicle far from the square
func squareScenario() (*Snapshot, []*object.Object) {
	s := NewSnapshot([]geometry.Polygon{testutil.Square(0, 0, 10)}, nil)
	objects := []*object.Object{
		testutil.Vehicle("A", 5, 5, 4, 2),
		testutil.Vehicle("B", 15, 5, 12, 2),
		testutil.Unknown("C", 15, 5, 12, 2),
		testutil.Vehicle("D", 20, 20, 1, 1),
	}
	return s, objects
}

func TestFilter_SquareScenario(t *testing.T) {
	t.Parallel()
	s, objects := squareScenario()

	strict, ok := FilterStrict(s, objects)
	require.True(t, ok)
	if diff := cmp.Diff([]string{"A"}, testutil.IDs(strict)); diff != "" {
		t.Errorf("FilterStrict mismatch (-want +got):\n%s", diff)
	}

	slack, ok := FilterSlack(s, objects)
	require.True(t, ok)
	if diff := cmp.Diff([]string{"A", "B"}, testutil.IDs(slack)); diff != "" {
		t.Errorf("FilterSlack mismatch (-want +got):\n%s", diff)
	}

	// Kept entries are the caller's pointers, not copies.
	assert.Same(t, objects[0], strict[0])
	assert.Same(t, objects[1], slack[1])
}

func TestFilter_UniversalROI(t *testing.T) {
	t.Parallel()
	_, objects := squareScenario()
	objects = append(objects, nil)

	universal := map[string]*Snapshot{
		"nil":   nil,
		"empty": {},
		"empty slices": NewSnapshot(
			[]geometry.Polygon{}, []geometry.Polygon{},
		),
	}

	for name, s := range universal {
		t.Run(name, func(t *testing.T) {
			for _, filter := range []func(*Snapshot, []*object.Object) ([]*object.Object, bool){FilterStrict, FilterSlack} {
				out, ok := filter(s, objects)
				require.True(t, ok)
				require.Len(t, out, len(objects))
				for i := range objects {
					assert.Same(t, objects[i], out[i], "index %d", i)
				}
			}
		})
	}
}

func TestFilter_EmptyInput(t *testing.T) {
	t.Parallel()
	s, _ := squareScenario()

	for _, in := range [][]*object.Object{nil, {}} {
		out, ok := FilterStrict(s, in)
		assert.True(t, ok)
		assert.Empty(t, out)

		out, ok = FilterSlack(nil, in)
		assert.True(t, ok)
		assert.Empty(t, out)
	}
}

func TestFilter_SkipsNilObjects(t *testing.T) {
	t.Parallel()
	s, objects := squareScenario()
	in := []*object.Object{nil, objects[0], nil}

	out, _ := FilterSlack(s, in)
	assert.Equal(t, []string{"A"}, testutil.IDs(out))
}

func TestFilter_OutputDoesNotAliasInput(t *testing.T) {
	t.Parallel()
	s, objects := squareScenario()
	snapshot := append([]*object.Object(nil), objects...)

	for _, roi := range []*Snapshot{s, nil} {
		out, _ := FilterSlack(roi, objects)
		require.NotEmpty(t, out)
		out[0] = nil
		_ = append(out[:0], testutil.Vehicle("Z", 0, 0, 1, 1))
		for i := range objects {
			assert.Same(t, snapshot[i], objects[i], "input slot %d changed", i)
		}
	}
}

func TestFilter_DoesNotMutateObjects(t *testing.T) {
	t.Parallel()
	s, objects := squareScenario()
	before := make([]object.Object, len(objects))
	for i, o := range objects {
		before[i] = *o
	}

	FilterStrict(s, objects)
	FilterSlack(s, objects)

	for i, o := range objects {
		assert.Equal(t, before[i], *o)
	}
}

func TestFilter_BoundaryCentroidIsKept(t *testing.T) {
	t.Parallel()
	s, _ := squareScenario()
	onEdge := testutil.Unknown("edge", 10, 5, 1, 1)
	onVertex := testutil.Unknown("vertex", 0, 10, 1, 1)

	out, _ := FilterStrict(s, []*object.Object{onEdge, onVertex})
	assert.Equal(t, []string{"edge", "vertex"}, testutil.IDs(out))
}

func TestFilterSlack_DegenerateHeading(t *testing.T) {
	t.Parallel()
	s, _ := squareScenario()

	// Same footprint either way; only the heading differs.
	withHeading := testutil.NewObject("heading", object.TypeVehicle, 10.5, 5, 1, 0, 4, 4)
	noHeading := testutil.NewObject("still", object.TypeVehicle, 10.5, 5, 0, 0, 4, 4)
	verticalHeading := &object.Object{
		ID:        "vertical",
		Type:      object.TypeVehicle,
		Center:    r3.Vec{X: 10.5, Y: 5},
		Direction: r3.Vec{Z: 1},
		Size:      r3.Vec{X: 4, Y: 4},
	}

	out, _ := FilterSlack(s, []*object.Object{withHeading, noHeading, verticalHeading})
	assert.Equal(t, []string{"heading"}, testutil.IDs(out))

	strict, _ := FilterStrict(s, []*object.Object{noHeading, verticalHeading})
	slack, _ := FilterSlack(s, []*object.Object{noHeading, verticalHeading})
	assert.Equal(t, testutil.IDs(strict), testutil.IDs(slack))
}

func TestFilterSlack_UnknownClassesGetNoRescue(t *testing.T) {
	t.Parallel()
	s, _ := squareScenario()

	for _, typ := range []object.Type{object.TypeUnknown, object.TypeUnknownMovable, object.TypeUnknownUnmovable} {
		t.Run(string(typ), func(t *testing.T) {
			o := testutil.NewObject("u", typ, 15, 5, 1, 0, 12, 2)
			out, _ := FilterSlack(s, []*object.Object{o})
			assert.Empty(t, out)
		})
	}

	for _, typ := range []object.Type{object.TypePedestrian, object.TypeBicycle, object.TypeVehicle} {
		t.Run(string(typ), func(t *testing.T) {
			o := testutil.NewObject("k", typ, 15, 5, 1, 0, 12, 2)
			out, _ := FilterSlack(s, []*object.Object{o})
			assert.Len(t, out, 1)
		})
	}
}

func TestFilterSlack_RotatedFootprint(t *testing.T) {
	t.Parallel()
	s, _ := squareScenario()

	// Centred at (12,12) heading towards the origin; the front corners
	// reach roughly (8.5,9.9) and (9.9,8.5).
	o := testutil.NewObject("diag", object.TypeVehicle, 12, 12, -1, -1, 8, 2)
	out, _ := FilterSlack(s, []*object.Object{o})
	assert.Len(t, out, 1)

	// Turned 90 degrees the long axis runs along the square's corner and
	// nothing reaches inside.
	o90 := testutil.NewObject("diag90", object.TypeVehicle, 12, 12, 1, -1, 8, 2)
	out, _ = FilterSlack(s, []*object.Object{o90})
	assert.Empty(t, out)
}

func TestFilter_Dispatch(t *testing.T) {
	t.Parallel()
	s, objects := squareScenario()

	strict, _ := Filter(PolicyStrict, s, objects)
	slack, _ := Filter(PolicySlack, s, objects)
	fallback, _ := Filter(Policy("bogus"), s, objects)

	assert.Equal(t, []string{"A"}, testutil.IDs(strict))
	assert.Equal(t, []string{"A", "B"}, testutil.IDs(slack))
	assert.Equal(t, testutil.IDs(slack), testutil.IDs(fallback))
}

func TestParsePolicy(t *testing.T) {
	t.Parallel()

	p, err := ParsePolicy(" Strict ")
	require.NoError(t, err)
	assert.Equal(t, PolicyStrict, p)

	p, err = ParsePolicy("slack")
	require.NoError(t, err)
	assert.Equal(t, PolicySlack, p)

	_, err = ParsePolicy("loose")
	assert.True(t, errors.Is(err, ErrUnknownPolicy))
}

// randomFrame builds a reproducible ROI (a road square plus a non-convex
// junction) and a frame of objects scattered around it, including
// degenerate headings and every object class.
func randomFrame(seed int64, n int) (*Snapshot, []*object.Object) {
	rng := rand.New(rand.NewSource(seed))
	s := NewSnapshot(
		[]geometry.Polygon{testutil.Square(0, 0, 10)},
		[]geometry.Polygon{geometry.NewPolygonXY(20, 0, 30, 0, 30, 10, 27, 10, 27, 3, 23, 3, 23, 10, 20, 10)},
	)

	objects := make([]*object.Object, n)
	for i := range objects {
		var dx, dy float64
		if rng.Float64() > 0.1 {
			a := rng.Float64() * 2 * math.Pi
			dx, dy = math.Cos(a)*(0.5+rng.Float64()), math.Sin(a)*(0.5+rng.Float64())
		}
		objects[i] = testutil.NewObject(
			string(rune('a'+i%26))+string(rune('0'+i/26%10)),
			object.AllTypes[rng.Intn(len(object.AllTypes))],
			-10+rng.Float64()*50, -10+rng.Float64()*30,
			dx, dy,
			0.5+rng.Float64()*14, 0.5+rng.Float64()*3.5,
		)
	}
	return s, objects
}

// isOrderedSubset reports whether every element of sub appears in super
// in the same relative order, compared by pointer.
func isOrderedSubset(sub, super []*object.Object) bool {
	j := 0
	for _, o := range sub {
		for j < len(super) && super[j] != o {
			j++
		}
		if j == len(super) {
			return false
		}
		j++
	}
	return true
}

func TestFilter_Properties(t *testing.T) {
	t.Parallel()

	for seed := int64(1); seed <= 20; seed++ {
		s, objects := randomFrame(seed, 200)

		strict, _ := FilterStrict(s, objects)
		slack, _ := FilterSlack(s, objects)

		require.True(t, isOrderedSubset(strict, objects), "seed %d: strict result out of input order", seed)
		require.True(t, isOrderedSubset(slack, objects), "seed %d: slack result out of input order", seed)
		require.True(t, isOrderedSubset(strict, slack), "seed %d: strict result not within slack result", seed)

		keptSlack := make(map[*object.Object]bool, len(slack))
		for _, o := range slack {
			keptSlack[o] = true
		}
		for _, o := range objects {
			inRoi := ObjectInRoi(s, o)
			if o.Type.IsUnknown() || !object.HasHeading(o) {
				assert.Equal(t, inRoi, keptSlack[o], "seed %d object %s: slack must reduce to the centroid test", seed, o.ID)
			}
			if inRoi {
				assert.True(t, keptSlack[o], "seed %d object %s: centroid in ROI but dropped", seed, o.ID)
			}
		}
	}
}
