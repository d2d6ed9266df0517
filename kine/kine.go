// Copyright 2025 The go-lpc Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package kine computes four-momenta and Mandelstam variables of
// Monte-Carlo particles.
package kine // import "github.com/go-lpc/hyperon/kine"

import (
	"math"

	"go-hep.org/x/hep/fmom"

	"github.com/go-lpc/hyperon/edm"
)

// Masses [GeV].
const (
	ProtonMass = 0.938272
	LambdaMass = 1.115683
)

// Beam crossing angles of the ePIC interaction region [rad].
const (
	CrossingHor = 25e-3
	CrossingVer = 100e-6
)

// BeamStatus is the generator status of incoming beam particles.
const BeamStatus = 4

// P4 returns the four-momentum of a particle at its production vertex.
// The energy is computed from the momentum and the particle mass.
func P4(p *edm.Particle) fmom.PxPyPzE {
	var (
		px = p.P[0]
		py = p.P[1]
		pz = p.P[2]
		e  = math.Sqrt(px*px + py*py + pz*pz + p.Mass*p.Mass)
	)
	return fmom.NewPxPyPzE(px, py, pz, e)
}

// T returns the Mandelstam variable t = (p1-p2)², with the (+,-,-,-) metric.
func T(p1, p2 fmom.P4) float64 {
	var (
		de = p1.E() - p2.E()
		dx = p1.Px() - p2.Px()
		dy = p1.Py() - p2.Py()
		dz = p1.Pz() - p2.Pz()
	)
	return de*de - dx*dx - dy*dy - dz*dz
}

// Beam returns the four-momentum of a beam of momentum p, rotated by the
// horizontal and vertical crossing angles.
func Beam(p, hor, ver, mass float64) fmom.PxPyPzE {
	var (
		px = p * math.Sin(hor)
		py = p * math.Sin(ver) * math.Cos(hor)
		pz = p * math.Cos(hor) * math.Cos(ver)
		e  = math.Sqrt(p*p + mass*mass)
	)
	return fmom.NewPxPyPzE(px, py, pz, e)
}

var beamModes = []float64{41, 100, 130, 275}

// BeamMode returns the nominal proton beam momentum closest to pz,
// within 10 GeV.
func BeamMode(pz float64) (float64, bool) {
	pz = math.Abs(pz)
	for _, mode := range beamModes {
		if math.Abs(pz-mode) < 10 {
			return mode, true
		}
	}
	return 0, false
}

// Incoming returns the index of the first incoming beam particle of the
// given species, or edm.NoParticle.
func Incoming(evt *edm.Event, pdg int32) int {
	for i := range evt.Particles {
		p := &evt.Particles[i]
		if p.GenStatus == BeamStatus && p.PDG == pdg {
			return i
		}
	}
	return edm.NoParticle
}

// BeamT returns the t transferred from the incoming beam proton to the
// particle. It reports false when the event has no beam proton.
func BeamT(evt *edm.Event, particle int) (float64, bool) {
	var (
		beam = evt.Particle(Incoming(evt, 2212))
		p    = evt.Particle(particle)
	)
	if beam == nil || p == nil {
		return 0, false
	}
	var (
		p1 = P4(beam)
		p2 = P4(p)
	)
	return T(&p1, &p2), true
}

// NominalT returns the t transferred to the particle from the nominal beam
// proton: the beam mode closest to the incoming proton momentum, rotated
// by the crossing angles. This is the t an experiment computes without
// knowing the true beam momentum.
// It reports false when the event has no beam proton or when its momentum
// matches no beam mode.
func NominalT(evt *edm.Event, particle int) (float64, bool) {
	var (
		beam = evt.Particle(Incoming(evt, 2212))
		p    = evt.Particle(particle)
	)
	if beam == nil || p == nil {
		return 0, false
	}
	mode, ok := BeamMode(beam.P[2])
	if !ok {
		return 0, false
	}
	var (
		p1 = Beam(mode, CrossingHor, CrossingVer, ProtonMass)
		p2 = P4(p)
	)
	return T(&p1, &p2), true
}
