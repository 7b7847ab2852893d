package roi

import (
	"fmt"
	"io"
	"strings"

	"github.com/banshee-data/roifilter/internal/geometry"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

// Feature property values for the "kind" property in ROI GeoJSON files.
const (
	KindProperty = "kind"
	KindRoad     = "road"
	KindJunction = "junction"
)

// ReadGeoJSON reads a GeoJSON FeatureCollection into a Snapshot.
// See ParseGeoJSON for the mapping.
func ReadGeoJSON(r io.Reader) (*Snapshot, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read ROI GeoJSON: %w", err)
	}
	return ParseGeoJSON(data)
}

// ParseGeoJSON converts a GeoJSON FeatureCollection into a Snapshot.
//
// Polygon features contribute their outer ring; MultiPolygon features
// contribute the outer ring of each member. Interior rings are dropped
// because membership does not model holes. A feature whose "kind"
// property is "junction" (any case) goes to JunctionPolygons; everything
// else goes to RoadPolygons. Features with other geometry types are
// skipped and reported on the ops log.
//
// A collection with no usable polygons yields an empty, universal
// snapshot rather than an error.
func ParseGeoJSON(data []byte) (*Snapshot, error) {
	fc, err := geojson.UnmarshalFeatureCollection(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse ROI GeoJSON: %w", err)
	}

	s := &Snapshot{}
	for i, f := range fc.Features {
		if f == nil || f.Geometry == nil {
			Opsf("geojson: feature %d has no geometry, skipping", i)
			continue
		}

		var outer []orb.Ring
		switch g := f.Geometry.(type) {
		case orb.Polygon:
			outer = appendOuter(outer, g, i)
		case orb.MultiPolygon:
			for _, p := range g {
				outer = appendOuter(outer, p, i)
			}
		default:
			Opsf("geojson: feature %d has unsupported geometry %s, skipping", i, f.Geometry.GeoJSONType())
			continue
		}

		junction := isJunction(f.Properties)
		for _, ring := range outer {
			poly := geometry.NewPolygonFromRing(ring)
			if junction {
				s.JunctionPolygons = append(s.JunctionPolygons, poly)
			} else {
				s.RoadPolygons = append(s.RoadPolygons, poly)
			}
		}
	}

	Diagf("geojson: loaded %d road and %d junction polygons from %d features",
		len(s.RoadPolygons), len(s.JunctionPolygons), len(fc.Features))
	return s, nil
}

func appendOuter(rings []orb.Ring, p orb.Polygon, feature int) []orb.Ring {
	if len(p) == 0 || len(p[0]) == 0 {
		Opsf("geojson: feature %d has an empty polygon, skipping", feature)
		return rings
	}
	if len(p) > 1 {
		Diagf("geojson: feature %d: ignoring %d interior rings", feature, len(p)-1)
	}
	return append(rings, p[0])
}

func isJunction(props geojson.Properties) bool {
	kind, ok := props[KindProperty].(string)
	return ok && strings.EqualFold(strings.TrimSpace(kind), KindJunction)
}
