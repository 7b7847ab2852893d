package roi

import "github.com/banshee-data/roifilter/internal/config"

// OptionsFromTuning maps a tuning config onto FilterOptions. A nil config
// yields the defaults. The config has already been validated, so an
// unrecognised policy cannot reach here; NewFilterer would map it to
// slack regardless.
func OptionsFromTuning(cfg *config.TuningConfig) FilterOptions {
	if cfg == nil {
		cfg = config.EmptyTuningConfig()
	}
	return FilterOptions{
		Policy:             Policy(cfg.GetRoiPolicy()),
		Workers:            cfg.GetFilterWorkers(),
		ParallelMinObjects: cfg.GetParallelMinObjects(),
		SpatialIndex:       cfg.GetSpatialIndex(),
	}
}

// NewFiltererFromTuning creates a Filterer from a tuning config.
func NewFiltererFromTuning(cfg *config.TuningConfig) *Filterer {
	return NewFilterer(OptionsFromTuning(cfg))
}
