// Copyright 2025 The go-lpc Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package accept determines whether particles left hits in detectors.
package accept // import "github.com/go-lpc/hyperon/accept"

import (
	"fmt"

	"github.com/go-lpc/hyperon/edm"
)

// Kind is the kind of a detector hit collection.
// It selects how hits are attributed to particles.
type Kind int

const (
	// Tracker hits reference the particle that produced them.
	Tracker Kind = iota
	// Calorimeter hits hold a list of contributing particles.
	Calorimeter
)

func (k Kind) String() string {
	switch k {
	case Tracker:
		return "tracker"
	case Calorimeter:
		return "calorimeter"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Detector is a named hit collection.
type Detector struct {
	Name string
	Kind Kind
}

// Trackers returns tracker detectors for the given collection names.
func Trackers(names ...string) []Detector {
	return detectors(Tracker, names)
}

// Calorimeters returns calorimeter detectors for the given collection names.
func Calorimeters(names ...string) []Detector {
	return detectors(Calorimeter, names)
}

func detectors(kind Kind, names []string) []Detector {
	out := make([]Detector, len(names))
	for i, name := range names {
		out[i] = Detector{Name: name, Kind: kind}
	}
	return out
}

// Hit is a hit attributed to a particle.
type Hit struct {
	Detector   string
	ID         int
	Pos        [3]float64
	E          float32 // deposited energy (tracker) or hit energy (calorimeter)
	Time       float32 // hit time (tracker) or time of the particle's contribution (calorimeter)
	PathLength float32 // zero for calorimeter hits
}

// Result is the outcome of matching a particle against a detector.
type Result struct {
	Detected bool
	Hits     []Hit
}

// Match returns the hits of det attributable to the particle.
// An absent collection or an unbound particle is never detected.
func Match(evt *edm.Event, det Detector, particle int) Result {
	var res Result
	if particle == edm.NoParticle {
		return res
	}

	switch det.Kind {
	case Tracker:
		hits, ok := evt.TrackerHits(det.Name)
		if !ok {
			return res
		}
		for _, hit := range hits {
			if hit.Particle != particle {
				continue
			}
			res.Hits = append(res.Hits, Hit{
				Detector:   det.Name,
				ID:         hit.ID,
				Pos:        hit.Pos,
				E:          hit.EDep,
				Time:       hit.Time,
				PathLength: hit.PathLength,
			})
		}

	case Calorimeter:
		hits, ok := evt.CaloHits(det.Name)
		if !ok {
			return res
		}
		for _, hit := range hits {
			c, ok := contrib(hit, particle)
			if !ok {
				continue
			}
			res.Hits = append(res.Hits, Hit{
				Detector: det.Name,
				ID:       hit.ID,
				Pos: [3]float64{
					float64(hit.Pos[0]),
					float64(hit.Pos[1]),
					float64(hit.Pos[2]),
				},
				E:    hit.Energy,
				Time: c.Time,
			})
		}
	}

	res.Detected = len(res.Hits) > 0
	return res
}

// contrib returns the first contribution of the particle to the hit.
func contrib(hit edm.CaloHit, particle int) (edm.Contrib, bool) {
	for _, c := range hit.Contribs {
		if c.Particle == particle {
			return c, true
		}
	}
	return edm.Contrib{}, false
}

// Detected reports whether the particle left at least one hit in det.
func Detected(evt *edm.Event, det Detector, particle int) bool {
	return Match(evt, det, particle).Detected
}

// Any reports whether the particle left at least one hit in any of dets.
func Any(evt *edm.Event, dets []Detector, particle int) bool {
	for _, det := range dets {
		if Detected(evt, det, particle) {
			return true
		}
	}
	return false
}
