package main

import (
	"fmt"
	"image/color"
	"io"

	"github.com/banshee-data/roifilter/internal/geometry"
	"github.com/banshee-data/roifilter/internal/perception/object"
	"github.com/banshee-data/roifilter/internal/perception/roi"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

var (
	roadColor     = color.RGBA{R: 90, G: 90, B: 90, A: 255}
	junctionColor = color.RGBA{R: 40, G: 90, B: 200, A: 255}
	keptColor     = color.RGBA{G: 160, A: 255}
	droppedColor  = color.RGBA{R: 200, A: 255}
)

// renderPlot draws the ROI outlines, every object's footprint and its
// centroid, green when kept and red when dropped, and writes a PNG.
func renderPlot(w io.Writer, s *roi.Snapshot, objects, kept []*object.Object) error {
	p := plot.New()
	p.Title.Text = fmt.Sprintf("ROI filter: kept %d of %d", len(kept), len(objects))
	p.X.Label.Text = "X (m)"
	p.Y.Label.Text = "Y (m)"
	p.Add(plotter.NewGrid())

	if s != nil {
		if err := addOutlines(p, s.RoadPolygons, roadColor); err != nil {
			return err
		}
		if err := addOutlines(p, s.JunctionPolygons, junctionColor); err != nil {
			return err
		}
	}

	keptSet := make(map[*object.Object]bool, len(kept))
	for _, o := range kept {
		keptSet[o] = true
	}

	keptPts := make(plotter.XYs, 0, len(kept))
	droppedPts := make(plotter.XYs, 0, len(objects)-len(kept))
	for _, o := range objects {
		c := keptColor
		if !keptSet[o] {
			c = droppedColor
		}
		if err := addFootprint(p, o, c); err != nil {
			return err
		}
		pt := plotter.XY{X: o.Center.X, Y: o.Center.Y}
		if keptSet[o] {
			keptPts = append(keptPts, pt)
		} else {
			droppedPts = append(droppedPts, pt)
		}
	}

	for _, series := range []struct {
		name string
		pts  plotter.XYs
		c    color.Color
	}{
		{"kept", keptPts, keptColor},
		{"dropped", droppedPts, droppedColor},
	} {
		if len(series.pts) == 0 {
			continue
		}
		sc, err := plotter.NewScatter(series.pts)
		if err != nil {
			return fmt.Errorf("failed to create %s scatter: %w", series.name, err)
		}
		sc.GlyphStyle.Color = series.c
		sc.GlyphStyle.Shape = draw.CircleGlyph{}
		sc.GlyphStyle.Radius = vg.Points(3)
		p.Add(sc)
		p.Legend.Add(series.name, sc)
	}

	wt, err := p.WriterTo(8*vg.Inch, 8*vg.Inch, "png")
	if err != nil {
		return fmt.Errorf("failed to render plot: %w", err)
	}
	if _, err := wt.WriteTo(w); err != nil {
		return fmt.Errorf("failed to write plot: %w", err)
	}
	return nil
}

func addOutlines(p *plot.Plot, polys []geometry.Polygon, c color.Color) error {
	for _, poly := range polys {
		if poly.Empty() {
			continue
		}
		verts := poly.Vertices()
		pts := make(plotter.XYs, 0, len(verts)+1)
		for _, v := range verts {
			pts = append(pts, plotter.XY{X: v.X, Y: v.Y})
		}
		pts = append(pts, pts[0])

		line, err := plotter.NewLine(pts)
		if err != nil {
			return fmt.Errorf("failed to create ROI outline: %w", err)
		}
		line.Color = c
		line.Width = vg.Points(1.5)
		p.Add(line)
	}
	return nil
}

func addFootprint(p *plot.Plot, o *object.Object, c color.Color) error {
	if !object.HasHeading(o) {
		return nil
	}
	corners := object.FootprintCorners(o)
	// Corners come out as (+,+), (-,+), (+,-), (-,-); walk the perimeter.
	ring := []geometry.Point{corners[0], corners[1], corners[3], corners[2], corners[0]}
	pts := make(plotter.XYs, len(ring))
	for i, v := range ring {
		pts[i] = plotter.XY{X: v.X, Y: v.Y}
	}

	line, err := plotter.NewLine(pts)
	if err != nil {
		return fmt.Errorf("failed to create footprint for %s: %w", o.ID, err)
	}
	line.Color = c
	line.Width = vg.Points(0.75)
	line.Dashes = []vg.Length{vg.Points(3), vg.Points(2)}
	p.Add(line)
	return nil
}
