package roi

import (
	"github.com/banshee-data/roifilter/internal/perception/object"
	"golang.org/x/sync/errgroup"
)

// Default Filterer settings.
const (
	DefaultWorkers            = 4
	DefaultParallelMinObjects = 256
)

// FilterOptions configures a Filterer.
type FilterOptions struct {
	Policy             Policy // strict or slack; empty means slack
	Workers            int    // max concurrent workers; <=0 means DefaultWorkers
	ParallelMinObjects int    // frames smaller than this are filtered sequentially; <0 means DefaultParallelMinObjects
	SpatialIndex       bool   // build an R-tree over the snapshot for each call
}

// DefaultFilterOptions returns slack filtering with the default worker
// settings and no spatial index.
func DefaultFilterOptions() FilterOptions {
	return FilterOptions{
		Policy:             PolicySlack,
		Workers:            DefaultWorkers,
		ParallelMinObjects: DefaultParallelMinObjects,
	}
}

// Stats summarises one Filter call.
type Stats struct {
	Policy    Policy
	Universal bool
	Input     int
	Kept      int
	Workers   int // 1 when the sequential path ran
}

// Dropped returns the number of objects removed.
func (s Stats) Dropped() int {
	return s.Input - s.Kept
}

// Filterer applies a Policy to whole frames, fanning the per-object
// decisions out over a bounded worker group. Decisions are written by
// input index and merged in order, so the output equals FilterStrict or
// FilterSlack for the same input.
//
// A Filterer holds no per-call state and is safe for concurrent use.
type Filterer struct {
	opts FilterOptions
}

// NewFilterer creates a Filterer, normalising out-of-range options.
func NewFilterer(opts FilterOptions) *Filterer {
	if opts.Policy != PolicyStrict {
		opts.Policy = PolicySlack
	}
	if opts.Workers <= 0 {
		opts.Workers = DefaultWorkers
	}
	if opts.ParallelMinObjects < 0 {
		opts.ParallelMinObjects = DefaultParallelMinObjects
	}
	return &Filterer{opts: opts}
}

// Options returns the normalised options.
func (f *Filterer) Options() FilterOptions {
	return f.opts
}

// Filter returns the objects retained by the configured policy. The
// boolean is always true.
func (f *Filterer) Filter(s *Snapshot, objects []*object.Object) ([]*object.Object, bool) {
	out, _ := f.FilterWithStats(s, objects)
	return out, true
}

// FilterWithStats is Filter plus a summary of the call.
func (f *Filterer) FilterWithStats(s *Snapshot, objects []*object.Object) ([]*object.Object, Stats) {
	stats := Stats{Policy: f.opts.Policy, Input: len(objects), Workers: 1}

	if s.IsUniversal() {
		out := passAll(objects)
		stats.Universal = true
		stats.Kept = len(out)
		Diagf("filter %s: no ROI polygons, passing %d objects", f.opts.Policy, len(out))
		return out, stats
	}

	var l locator = s
	if f.opts.SpatialIndex {
		l = NewIndex(s)
	}

	var out []*object.Object
	if f.opts.Workers > 1 && len(objects) > 0 && len(objects) >= f.opts.ParallelMinObjects {
		out, stats.Workers = f.filterParallel(l, objects)
	} else {
		out, _ = filterSequential(f.opts.Policy, s, l, objects)
	}
	stats.Kept = len(out)

	if traceEnabled() {
		traceDropped(objects, out)
	}
	Diagf("filter %s: kept %d/%d objects (%d polygons, workers=%d)",
		f.opts.Policy, stats.Kept, stats.Input, s.PolygonCount(), stats.Workers)
	return out, stats
}

// filterParallel splits objects into contiguous chunks, one goroutine per
// chunk, and merges decisions by index.
func (f *Filterer) filterParallel(l locator, objects []*object.Object) ([]*object.Object, int) {
	n := len(objects)
	workers := min(f.opts.Workers, n)
	chunk := (n + workers - 1) / workers
	keep := make([]bool, n)
	decide := decider(f.opts.Policy)

	var g errgroup.Group
	g.SetLimit(workers)
	for start := 0; start < n; start += chunk {
		end := min(start+chunk, n)
		g.Go(func() error {
			for i := start; i < end; i++ {
				if o := objects[i]; o != nil {
					keep[i] = decide(l, o)
				}
			}
			return nil
		})
	}
	// Workers never return errors.
	_ = g.Wait()

	out := make([]*object.Object, 0, n)
	for i, k := range keep {
		if k {
			out = append(out, objects[i])
		}
	}
	return out, workers
}

// traceDropped logs every input object missing from kept. Both slices are
// in input order.
func traceDropped(objects, kept []*object.Object) {
	j := 0
	for _, o := range objects {
		if j < len(kept) && kept[j] == o {
			j++
			continue
		}
		if o == nil {
			continue
		}
		Tracef("dropped object %s (%s) at (%.2f, %.2f)", o.ID, o.Type, o.Center.X, o.Center.Y)
	}
}
