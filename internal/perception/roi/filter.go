package roi

import (
	"errors"
	"fmt"
	"strings"

	"github.com/banshee-data/roifilter/internal/perception/object"
)

// Policy selects how objects are tested against the ROI.
type Policy string

const (
	// PolicyStrict keeps an object only when its centroid is in the ROI.
	PolicyStrict Policy = "strict"
	// PolicySlack also keeps known-class objects whose footprint reaches
	// the ROI even though the centroid does not.
	PolicySlack Policy = "slack"
)

// ErrUnknownPolicy is returned by ParsePolicy for unrecognised names.
var ErrUnknownPolicy = errors.New("unknown ROI filter policy")

// ParsePolicy maps "strict" or "slack" (any case) to a Policy.
func ParsePolicy(s string) (Policy, error) {
	switch p := Policy(strings.ToLower(strings.TrimSpace(s))); p {
	case PolicyStrict, PolicySlack:
		return p, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownPolicy, s)
}

func (p Policy) String() string {
	return string(p)
}

// FilterStrict keeps the objects whose centroid lies in the ROI.
//
// A universal snapshot (nil or without polygons) keeps every object. The
// result preserves input order and holds the caller's pointers; the input
// slice is never modified or aliased. The boolean is always true.
func FilterStrict(s *Snapshot, objects []*object.Object) ([]*object.Object, bool) {
	return filterSequential(PolicyStrict, s, s, objects)
}

// FilterSlack keeps the objects whose centroid lies in the ROI, plus
// known-class objects with at least one footprint corner in the ROI.
// Unknown-class objects get no footprint rescue, so for them the result
// matches FilterStrict. Every object kept by FilterStrict is kept here.
//
// Universal snapshot, ordering and aliasing rules are as for FilterStrict.
func FilterSlack(s *Snapshot, objects []*object.Object) ([]*object.Object, bool) {
	return filterSequential(PolicySlack, s, s, objects)
}

// Filter dispatches to FilterStrict or FilterSlack. An unrecognised
// policy falls back to slack.
func Filter(p Policy, s *Snapshot, objects []*object.Object) ([]*object.Object, bool) {
	if p == PolicyStrict {
		return FilterStrict(s, objects)
	}
	return FilterSlack(s, objects)
}

// passAll copies objects into a fresh slice for the universal-ROI case.
func passAll(objects []*object.Object) []*object.Object {
	out := make([]*object.Object, len(objects))
	copy(out, objects)
	return out
}

func filterSequential(p Policy, s *Snapshot, l locator, objects []*object.Object) ([]*object.Object, bool) {
	if s.IsUniversal() {
		return passAll(objects), true
	}

	keep := decider(p)
	out := make([]*object.Object, 0, len(objects))
	for _, o := range objects {
		if o != nil && keep(l, o) {
			out = append(out, o)
		}
	}
	return out, true
}

type decideFunc func(l locator, o *object.Object) bool

func decider(p Policy) decideFunc {
	if p == PolicyStrict {
		return keepStrict
	}
	return keepSlack
}

func keepStrict(l locator, o *object.Object) bool {
	return centroidIn(l, o)
}

func keepSlack(l locator, o *object.Object) bool {
	if centroidIn(l, o) {
		return true
	}
	if o.Type.IsUnknown() {
		return false
	}
	return footprintIn(l, o)
}
