// Copyright 2025 The go-lpc Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package kine

import (
	"math"
	"testing"

	"go-hep.org/x/hep/fmom"

	"github.com/go-lpc/hyperon/edm"
)

func TestP4(t *testing.T) {
	p := edm.Particle{P: [3]float64{3, 0, 4}, Mass: 12}
	p4 := P4(&p)
	for _, tc := range []struct {
		name      string
		got, want float64
	}{
		{"px", p4.Px(), 3},
		{"py", p4.Py(), 0},
		{"pz", p4.Pz(), 4},
		{"e", p4.E(), 13},
	} {
		t.Run(tc.name, func(t *testing.T) {
			if tc.got != tc.want {
				t.Fatalf("got=%v, want=%v", tc.got, tc.want)
			}
		})
	}
}

func TestT(t *testing.T) {
	var (
		p1 = fmom.NewPxPyPzE(0, 0, 10, 11)
		p2 = fmom.NewPxPyPzE(1, 0, 8, 9)
	)
	// (11-9)² - 1² - 0² - (10-8)²
	if got, want := T(&p1, &p2), -1.0; got != want {
		t.Fatalf("invalid t: got=%v, want=%v", got, want)
	}
	if got, want := T(&p1, &p1), 0.0; got != want {
		t.Fatalf("invalid t: got=%v, want=%v", got, want)
	}
}

func TestBeam(t *testing.T) {
	b := Beam(275, CrossingHor, CrossingVer, ProtonMass)
	if got, want := math.Hypot(math.Hypot(b.Px(), b.Py()), b.Pz()), 275.0; math.Abs(got-want) > 1e-9 {
		t.Fatalf("invalid momentum: got=%v, want=%v", got, want)
	}
	if got, want := b.Px(), 275*math.Sin(25e-3); math.Abs(got-want) > 1e-12 {
		t.Fatalf("invalid px: got=%v, want=%v", got, want)
	}
	if b.Py() <= 0 {
		t.Fatalf("invalid py: %v", b.Py())
	}
	if got, want := b.E(), math.Sqrt(275*275+ProtonMass*ProtonMass); math.Abs(got-want) > 1e-9 {
		t.Fatalf("invalid energy: got=%v, want=%v", got, want)
	}
}

func TestBeamMode(t *testing.T) {
	for _, tc := range []struct {
		pz   float64
		want float64
		ok   bool
	}{
		{275, 275, true},
		{-268.5, 275, true},
		{99.9, 100, true},
		{41, 41, true},
		{200, 0, false},
	} {
		got, ok := BeamMode(tc.pz)
		if got != tc.want || ok != tc.ok {
			t.Fatalf("pz=%v: got=(%v, %v), want=(%v, %v)", tc.pz, got, ok, tc.want, tc.ok)
		}
	}
}

func TestBeamT(t *testing.T) {
	evt := &edm.Event{
		Particles: []edm.Particle{
			{ID: 0, PDG: 11, GenStatus: BeamStatus, P: [3]float64{0, 0, -10}},
			{ID: 1, PDG: 2212, GenStatus: BeamStatus, P: [3]float64{0, 0, 100}, Mass: ProtonMass},
			{ID: 2, PDG: 3122, GenStatus: 1, P: [3]float64{0.3, 0, 80}, Mass: LambdaMass},
		},
	}
	if got, want := Incoming(evt, 2212), 1; got != want {
		t.Fatalf("invalid beam proton: got=%d, want=%d", got, want)
	}

	got, ok := BeamT(evt, 2)
	if !ok {
		t.Fatalf("expected a t value")
	}
	var (
		p1 = P4(&evt.Particles[1])
		p2 = P4(&evt.Particles[2])
	)
	if want := T(&p1, &p2); got != want {
		t.Fatalf("invalid t: got=%v, want=%v", got, want)
	}
	if got >= 0 {
		t.Fatalf("t should be negative: %v", got)
	}

	evt.Particles[1].GenStatus = 1
	if _, ok := BeamT(evt, 2); ok {
		t.Fatalf("expected no t value without a beam proton")
	}
	if got, want := Incoming(evt, 2212), edm.NoParticle; got != want {
		t.Fatalf("invalid beam proton: got=%d, want=%d", got, want)
	}
}

func TestNominalT(t *testing.T) {
	evt := &edm.Event{
		Particles: []edm.Particle{
			{ID: 0, PDG: 2212, GenStatus: BeamStatus, P: [3]float64{6.8, 0, 274.9}, Mass: ProtonMass},
			{ID: 1, PDG: 3122, GenStatus: 1, P: [3]float64{6.5, 0.1, 250}, Mass: LambdaMass},
		},
	}

	got, ok := NominalT(evt, 1)
	if !ok {
		t.Fatalf("expected a t value")
	}
	var (
		p1 = Beam(275, CrossingHor, CrossingVer, ProtonMass)
		p2 = P4(&evt.Particles[1])
	)
	if want := T(&p1, &p2); got != want {
		t.Fatalf("invalid t: got=%v, want=%v", got, want)
	}

	for _, tc := range []struct {
		name string
		evt  *edm.Event
		i    int
	}{
		{
			name: "no-beam",
			evt:  &edm.Event{Particles: []edm.Particle{{ID: 0, PDG: 3122}}},
			i:    0,
		},
		{
			name: "no-mode",
			evt: &edm.Event{Particles: []edm.Particle{
				{ID: 0, PDG: 2212, GenStatus: BeamStatus, P: [3]float64{0, 0, 60}},
				{ID: 1, PDG: 3122},
			}},
			i: 1,
		},
		{
			name: "no-particle",
			evt:  evt,
			i:    edm.NoParticle,
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			if _, ok := NominalT(tc.evt, tc.i); ok {
				t.Fatalf("unexpected t value")
			}
		})
	}
}
