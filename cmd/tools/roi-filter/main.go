// Package main provides an offline ROI filtering tool.
// It loads road and junction polygons from GeoJSON and a frame of detected
// objects from JSON, applies the strict or slack ROI policy, and writes the
// retained objects as JSON, optionally with a PNG plot of the decisions.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/banshee-data/roifilter/internal/config"
	"github.com/banshee-data/roifilter/internal/fsutil"
	"github.com/banshee-data/roifilter/internal/perception/roi"
	"github.com/banshee-data/roifilter/internal/version"
)

// Config holds the parsed command line.
type Config struct {
	ROIFile     string
	ObjectsFile string
	ConfigFile  string
	Policy      string
	OutFile     string
	PlotFile    string
	Verbose     bool
	ShowVersion bool
}

var errUsage = errors.New("usage")

func parseFlags(args []string, stderr io.Writer) (Config, error) {
	var cfg Config
	fs := flag.NewFlagSet("roi-filter", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&cfg.ROIFile, "roi", "", "GeoJSON FeatureCollection of road/junction polygons (empty: universal ROI)")
	fs.StringVar(&cfg.ObjectsFile, "objects", "", "JSON array of objects to filter (required)")
	fs.StringVar(&cfg.ConfigFile, "config", "", "tuning config JSON (default: built-in defaults)")
	fs.StringVar(&cfg.Policy, "policy", "", "override roi_policy: strict or slack")
	fs.StringVar(&cfg.OutFile, "out", "", "write kept objects here instead of stdout")
	fs.StringVar(&cfg.PlotFile, "plot", "", "write a PNG plot of the ROI and decisions")
	fs.BoolVar(&cfg.Verbose, "v", false, "log per-call diagnostics to stderr")
	fs.BoolVar(&cfg.ShowVersion, "version", false, "print version and exit")

	if err := fs.Parse(args); err != nil {
		return cfg, err
	}
	if cfg.ShowVersion {
		return cfg, nil
	}
	if cfg.ObjectsFile == "" {
		fs.Usage()
		return cfg, fmt.Errorf("%w: -objects is required", errUsage)
	}
	return cfg, nil
}

func main() {
	cfg, err := parseFlags(os.Args[1:], os.Stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		log.Fatalf("roi-filter: %v", err)
	}

	if cfg.ShowVersion {
		fmt.Printf("roi-filter %s (%s, built %s)\n", version.Version, version.GitSHA, version.BuildTime)
		return
	}

	if cfg.Verbose {
		roi.SetLogWriters(roi.LogWriters{Ops: os.Stderr, Diag: os.Stderr})
	} else {
		roi.SetLogWriters(roi.LogWriters{Ops: os.Stderr})
	}

	stats, err := run(cfg, fsutil.OSFileSystem{}, os.Stdout)
	if err != nil {
		log.Fatalf("roi-filter: %v", err)
	}
	log.Printf("roi-filter: %s policy kept %d of %d objects", stats.Policy, stats.Kept, stats.Input)
}

// run performs one filtering pass using fsys for all file access.
func run(cfg Config, fsys fsutil.FileSystem, stdout io.Writer) (roi.Stats, error) {
	tuning, err := loadTuning(cfg, fsys)
	if err != nil {
		return roi.Stats{}, err
	}

	var snapshot *roi.Snapshot
	if cfg.ROIFile != "" {
		f, err := fsys.Open(cfg.ROIFile)
		if err != nil {
			return roi.Stats{}, fmt.Errorf("failed to open ROI file: %w", err)
		}
		snapshot, err = roi.ReadGeoJSON(f)
		f.Close()
		if err != nil {
			return roi.Stats{}, err
		}
	}

	in, err := fsys.Open(cfg.ObjectsFile)
	if err != nil {
		return roi.Stats{}, fmt.Errorf("failed to open objects file: %w", err)
	}
	objects, err := readObjects(in)
	in.Close()
	if err != nil {
		return roi.Stats{}, err
	}

	filterer := roi.NewFiltererFromTuning(tuning)
	kept, stats := filterer.FilterWithStats(snapshot, objects)

	if cfg.OutFile == "" {
		if err := writeObjects(stdout, kept); err != nil {
			return stats, fmt.Errorf("failed to write kept objects: %w", err)
		}
	} else if err := createFile(fsys, cfg.OutFile, func(w io.Writer) error {
		return writeObjects(w, kept)
	}); err != nil {
		return stats, fmt.Errorf("failed to write kept objects: %w", err)
	}

	if cfg.PlotFile != "" {
		if err := createFile(fsys, cfg.PlotFile, func(w io.Writer) error {
			return renderPlot(w, snapshot, objects, kept)
		}); err != nil {
			return stats, fmt.Errorf("failed to write plot: %w", err)
		}
	}

	return stats, nil
}

// createFile creates name, hands it to write and closes it, returning
// the Close error if writing succeeded.
func createFile(fsys fsutil.FileSystem, name string, write func(io.Writer) error) error {
	w, err := fsys.Create(name)
	if err != nil {
		return err
	}
	if err := write(w); err != nil {
		w.Close()
		return err
	}
	return w.Close()
}

// loadTuning reads the tuning file, if any, and applies the -policy
// override.
func loadTuning(cfg Config, fsys fsutil.FileSystem) (*config.TuningConfig, error) {
	tuning := config.EmptyTuningConfig()
	if cfg.ConfigFile != "" {
		var err error
		if tuning, err = config.LoadTuningConfigFS(fsys, cfg.ConfigFile); err != nil {
			return nil, err
		}
	}

	if cfg.Policy != "" {
		p, err := roi.ParsePolicy(cfg.Policy)
		if err != nil {
			return nil, err
		}
		policy := p.String()
		tuning.RoiPolicy = &policy
	}
	return tuning, nil
}
