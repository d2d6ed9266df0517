// Copyright 2025 The go-lpc Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package edm holds a typed, index-based view of a simulated event:
// Monte-Carlo particles, tracker hits and calorimeter hits.
//
// Links between particles, and from hits to particles, are stored as
// indices into the event's particle arena. They are only meaningful
// within the event they were read from.
package edm // import "github.com/go-lpc/hyperon/edm"

import (
	"fmt"
	"sort"
	"strconv"

	"go-hep.org/x/hep/lcio"
)

// NoParticle is the index used for an absent or unresolved particle.
const NoParticle = -1

// Particle is a Monte-Carlo particle.
type Particle struct {
	ID        int // position in the event's particle arena
	PDG       int32
	GenStatus int32
	SimStatus uint32
	Charge    float32
	Mass      float64
	Time      float32    // creation time [ns]
	P         [3]float64 // momentum at the production vertex [GeV]
	Vertex    [3]float64 // production vertex [mm]
	EndPoint  [3]float64 // decay or stop point [mm]
	Daughters []int
	Parents   []int
}

// TrackerHit is a simulated tracker hit, directly attributed to the
// particle that produced it.
type TrackerHit struct {
	ID         int
	CellID     uint64
	Pos        [3]float64
	EDep       float32
	Time       float32
	PathLength float32
	Particle   int
}

// CaloHit is a simulated calorimeter hit. Several particles may
// contribute to its energy.
type CaloHit struct {
	ID       int
	CellID   uint64
	Pos      [3]float32
	Energy   float32
	Contribs []Contrib
}

// Contrib is the contribution of a single particle to a calorimeter hit.
type Contrib struct {
	Particle int
	PDG      int32
	Energy   float32
	Time     float32
}

// Event is one simulated event.
type Event struct {
	Index  int64 // global index across the input file sequence
	Run    int32
	Number int32

	Particles []Particle

	params   lcio.Params
	trackers map[string][]TrackerHit
	calos    map[string][]CaloHit
}

// FromLCIO converts a LCIO event into its typed view.
// particles is the name of the Monte-Carlo particle collection.
// A missing particle collection yields an event without particles.
func FromLCIO(idx int64, evt *lcio.Event, particles string) (*Event, error) {
	out := &Event{
		Index:    idx,
		Run:      evt.RunNumber,
		Number:   evt.EventNumber,
		params:   evt.Params,
		trackers: make(map[string][]TrackerHit),
		calos:    make(map[string][]CaloHit),
	}

	ids := make(map[*lcio.McParticle]int)
	if v := evt.Get(particles); v != nil {
		mcs, ok := v.(*lcio.McParticleContainer)
		if !ok {
			return nil, fmt.Errorf(
				"edm: collection %q is not a MC particle collection (%T)",
				particles, v,
			)
		}
		out.Particles = make([]Particle, len(mcs.Particles))
		for i := range mcs.Particles {
			ids[&mcs.Particles[i]] = i
		}
		for i := range mcs.Particles {
			mc := &mcs.Particles[i]
			out.Particles[i] = Particle{
				ID:        i,
				PDG:       mc.PDG,
				GenStatus: mc.GenStatus,
				SimStatus: mc.SimStatus,
				Charge:    mc.Charge,
				Mass:      mc.Mass,
				Time:      mc.Time,
				P:         mc.P,
				Vertex:    mc.Vertex,
				EndPoint:  mc.EndPoint(),
				Daughters: indices(ids, mc.Children),
				Parents:   indices(ids, mc.Parents),
			}
		}
	}

	for _, name := range evt.Names() {
		switch coll := evt.Get(name).(type) {
		case *lcio.SimTrackerHitContainer:
			hits := make([]TrackerHit, len(coll.Hits))
			for i, hit := range coll.Hits {
				hits[i] = TrackerHit{
					ID:         i,
					CellID:     cellID(hit.CellID0, hit.CellID1),
					Pos:        hit.Pos,
					EDep:       hit.EDep,
					Time:       hit.Time,
					PathLength: hit.PathLength,
					Particle:   index(ids, hit.Mc),
				}
			}
			out.trackers[name] = hits

		case *lcio.SimCalorimeterHitContainer:
			hits := make([]CaloHit, len(coll.Hits))
			for i, hit := range coll.Hits {
				hits[i] = CaloHit{
					ID:       i,
					CellID:   cellID(hit.CellID0, hit.CellID1),
					Pos:      hit.Pos,
					Energy:   hit.Energy,
					Contribs: make([]Contrib, len(hit.Contributions)),
				}
				for j, c := range hit.Contributions {
					hits[i].Contribs[j] = Contrib{
						Particle: index(ids, c.Mc),
						PDG:      c.PDG,
						Energy:   c.Energy,
						Time:     c.Time,
					}
				}
			}
			out.calos[name] = hits
		}
	}

	return out, nil
}

func index(ids map[*lcio.McParticle]int, p *lcio.McParticle) int {
	if p == nil {
		return NoParticle
	}
	i, ok := ids[p]
	if !ok {
		return NoParticle
	}
	return i
}

func indices(ids map[*lcio.McParticle]int, ps []*lcio.McParticle) []int {
	if len(ps) == 0 {
		return nil
	}
	out := make([]int, 0, len(ps))
	for _, p := range ps {
		i := index(ids, p)
		if i == NoParticle {
			continue
		}
		out = append(out, i)
	}
	return out
}

func cellID(lo, hi int32) uint64 {
	return uint64(uint32(lo)) | uint64(uint32(hi))<<32
}

// Particle returns the i-th particle of the event, or nil if i is
// not a valid index.
func (evt *Event) Particle(i int) *Particle {
	if i < 0 || i >= len(evt.Particles) {
		return nil
	}
	return &evt.Particles[i]
}

// Daughter returns the j-th daughter of the i-th particle, or NoParticle.
func (evt *Event) Daughter(i, j int) int {
	p := evt.Particle(i)
	if p == nil || j < 0 || j >= len(p.Daughters) {
		return NoParticle
	}
	return p.Daughters[j]
}

// TrackerHits returns the named tracker hit collection.
func (evt *Event) TrackerHits(name string) ([]TrackerHit, bool) {
	hits, ok := evt.trackers[name]
	return hits, ok
}

// CaloHits returns the named calorimeter hit collection.
func (evt *Event) CaloHits(name string) ([]CaloHit, bool) {
	hits, ok := evt.calos[name]
	return hits, ok
}

// TrackerNames returns the sorted names of the tracker hit collections.
func (evt *Event) TrackerNames() []string {
	names := make([]string, 0, len(evt.trackers))
	for name := range evt.trackers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// AddTrackerHits attaches a tracker hit collection to the event.
func (evt *Event) AddTrackerHits(name string, hits []TrackerHit) {
	if evt.trackers == nil {
		evt.trackers = make(map[string][]TrackerHit)
	}
	evt.trackers[name] = hits
}

// AddCaloHits attaches a calorimeter hit collection to the event.
func (evt *Event) AddCaloHits(name string, hits []CaloHit) {
	if evt.calos == nil {
		evt.calos = make(map[string][]CaloHit)
	}
	evt.calos[name] = hits
}

// SetParams replaces the event parameters.
func (evt *Event) SetParams(ps lcio.Params) {
	evt.params = ps
}

// Param returns the first value of the named event parameter, rendered
// as text. String parameters are looked up first, then floats and ints.
func (evt *Event) Param(name string) (string, bool) {
	if vs := evt.params.Strings[name]; len(vs) > 0 {
		return vs[0], true
	}
	if vs := evt.params.Floats[name]; len(vs) > 0 {
		return strconv.FormatFloat(float64(vs[0]), 'g', -1, 32), true
	}
	if vs := evt.params.Ints[name]; len(vs) > 0 {
		return strconv.Itoa(int(vs[0])), true
	}
	return "", false
}
