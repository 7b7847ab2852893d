package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/banshee-data/roifilter/internal/perception/object"
	"github.com/google/uuid"
	"gonum.org/v1/gonum/spatial/r3"
)

// ObjectRecord is the JSON form of a detected object.
type ObjectRecord struct {
	ID        string     `json:"id,omitempty"`
	Type      string     `json:"type"`
	Center    [3]float64 `json:"center"`
	Direction [3]float64 `json:"direction"`
	Size      [3]float64 `json:"size"` // length, width, height
}

func vec(a [3]float64) r3.Vec {
	return r3.Vec{X: a[0], Y: a[1], Z: a[2]}
}

func arr(v r3.Vec) [3]float64 {
	return [3]float64{v.X, v.Y, v.Z}
}

// toObject validates the record's type. Records without an id are given
// a random UUID so that they can be traced through the logs.
func (r ObjectRecord) toObject() (*object.Object, error) {
	typ, err := object.ParseType(r.Type)
	if err != nil {
		return nil, err
	}
	id := r.ID
	if id == "" {
		id = uuid.NewString()
	}
	return &object.Object{
		ID:        id,
		Type:      typ,
		Center:    vec(r.Center),
		Direction: vec(r.Direction),
		Size:      vec(r.Size),
	}, nil
}

func recordOf(o *object.Object) ObjectRecord {
	return ObjectRecord{
		ID:        o.ID,
		Type:      o.Type.String(),
		Center:    arr(o.Center),
		Direction: arr(o.Direction),
		Size:      arr(o.Size),
	}
}

// readObjects decodes a JSON array of ObjectRecord.
func readObjects(r io.Reader) ([]*object.Object, error) {
	var records []ObjectRecord
	if err := json.NewDecoder(r).Decode(&records); err != nil {
		return nil, fmt.Errorf("failed to decode objects: %w", err)
	}

	objects := make([]*object.Object, 0, len(records))
	for i, rec := range records {
		o, err := rec.toObject()
		if err != nil {
			return nil, fmt.Errorf("object %d: %w", i, err)
		}
		objects = append(objects, o)
	}
	return objects, nil
}

// writeObjects encodes objects as an indented JSON array.
func writeObjects(w io.Writer, objects []*object.Object) error {
	records := make([]ObjectRecord, len(objects))
	for i, o := range objects {
		records[i] = recordOf(o)
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(records)
}
