// Copyright 2025 The go-lpc Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package xcnv

import (
	"fmt"
	"io"
	"log"

	"go-hep.org/x/hep/lcio"
)

// Kind is the kind of a generated event.
type Kind int

const (
	NoLambda Kind = iota // no Λ⁰, only the beam particles
	PPiMinus             // Λ⁰ → p + π⁻
	NPiZero              // Λ⁰ → n + π⁰ → n + γγ
)

func (k Kind) String() string {
	switch k {
	case NoLambda:
		return "none"
	case PPiMinus:
		return "p+pi-"
	case NPiZero:
		return "n+pi0"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// ParseKind parses the textual form of a Kind.
func ParseKind(s string) (Kind, error) {
	for _, k := range []Kind{NoLambda, PPiMinus, NPiZero} {
		if k.String() == s {
			return k, nil
		}
	}
	return 0, fmt.Errorf("xcnv: invalid event kind %q", s)
}

// Generate writes one small, deterministic, simulated event per kind.
//
// Every event holds the incoming e⁻ and p beam particles and DIS event
// parameters. Λ⁰ events add the Λ⁰ decay chain and the hits left by its
// final state: tracker and LFHCAL hits for p+π⁻, far-forward ZDC hits for
// n+π⁰.
func Generate(w *lcio.Writer, run int32, kinds []Kind, msg *log.Logger) error {
	if msg == nil {
		msg = log.New(io.Discard, "", 0)
	}

	err := w.WriteRunHeader(&lcio.RunHeader{
		RunNumber: run,
		Detector:  "ePIC",
		Descr:     "generated Λ⁰ events",
	})
	if err != nil {
		return fmt.Errorf("could not write run header: %w", err)
	}

	for i, kind := range kinds {
		if i%100 == 0 {
			msg.Printf("processing evt %d...", i)
		}
		evt := genEvent(run, int32(i), kind)
		err = w.WriteEvent(&evt)
		if err != nil {
			return fmt.Errorf("could not write evt %d: %w", i, err)
		}
	}

	return nil
}

// GenerateFile creates the named LCIO file and fills it with Generate.
func GenerateFile(fname string, run int32, kinds []Kind, msg *log.Logger) error {
	w, err := lcio.Create(fname)
	if err != nil {
		return fmt.Errorf("could not create LCIO file: %w", err)
	}
	defer w.Close()

	err = Generate(w, run, kinds, msg)
	if err != nil {
		return err
	}

	err = w.Close()
	if err != nil {
		return fmt.Errorf("could not close LCIO file: %w", err)
	}
	return nil
}

const (
	pdgElectron = 11
	pdgProton   = 2212
	pdgLambda   = 3122
	pdgPiMinus  = -211
	pdgNeutron  = 2112
	pdgPiZero   = 111
	pdgGamma    = 22

	beamStatus = 4
)

func genEvent(run, inum int32, kind Kind) lcio.Event {
	var (
		x    = float64(inum)
		mcs  = new(lcio.McParticleContainer)
		trks = new(lcio.SimTrackerHitContainer)
		zdcs = new(lcio.SimCalorimeterHitContainer)
		ecal = new(lcio.SimCalorimeterHitContainer)
		lfh  = new(lcio.SimCalorimeterHitContainer)
	)

	ps := []lcio.McParticle{
		{PDG: pdgElectron, GenStatus: beamStatus, P: [3]float64{0, 0, -18}, Mass: 0.000511, Charge: -1},
		{PDG: pdgProton, GenStatus: beamStatus, P: [3]float64{0, 0, 275}, Mass: 0.938272, Charge: +1},
	}

	switch kind {
	case PPiMinus:
		ps = append(ps,
			lcio.McParticle{PDG: pdgLambda, GenStatus: 1, P: [3]float64{0.5, 0.1, 200 + x}, Mass: 1.115683},
			lcio.McParticle{PDG: pdgProton, SimStatus: 1, P: [3]float64{0.4, 0.1, 180}, Mass: 0.938272, Charge: +1, Vertex: [3]float64{1, 2, 3000 + x}},
			lcio.McParticle{PDG: pdgPiMinus, SimStatus: 1, P: [3]float64{0.1, 0, 20 + x}, Mass: 0.13957, Charge: -1, Vertex: [3]float64{1, 2, 3000 + x}},
		)
	case NPiZero:
		ps = append(ps,
			lcio.McParticle{PDG: pdgLambda, GenStatus: 1, P: [3]float64{0.2, 0.1, 250 - x}, Mass: 1.115683},
			lcio.McParticle{PDG: pdgNeutron, SimStatus: 1, P: [3]float64{0.2, 0.1, 220}, Mass: 0.939565, Vertex: [3]float64{0, 1, 8000 + x}},
			lcio.McParticle{PDG: pdgPiZero, GenStatus: 2, P: [3]float64{0, 0, 30 - x}, Mass: 0.134977, Vertex: [3]float64{0, 1, 8000 + x}},
			lcio.McParticle{PDG: pdgGamma, SimStatus: 1, P: [3]float64{0.01, 0, 20}},
			lcio.McParticle{PDG: pdgGamma, SimStatus: 1, P: [3]float64{-0.01, 0, 10 - x}},
		)
	}
	mcs.Particles = ps

	// links are set once the particle slice does not move anymore.
	link := func(parent int, children ...int) {
		mom := &mcs.Particles[parent]
		for _, i := range children {
			dau := &mcs.Particles[i]
			mom.Children = append(mom.Children, dau)
			dau.Parents = append(dau.Parents, mom)
		}
	}

	switch kind {
	case PPiMinus:
		link(2, 3, 4)
		var (
			prot  = &mcs.Particles[3]
			pimin = &mcs.Particles[4]
		)
		trks.Hits = []lcio.SimTrackerHit{
			{CellID0: 31, Pos: [3]float64{1, 2, 3100}, EDep: 1e-4, Time: 10, PathLength: 0.3, Mc: prot},
			{CellID0: 59, Pos: [3]float64{1, 2, 3200}, EDep: 2e-4, Time: 11, PathLength: 0.3, Mc: pimin},
		}
		lfh.Hits = []lcio.SimCalorimeterHit{
			{CellID0: 116, Energy: 5, Contributions: []lcio.Contrib{{Mc: prot, Energy: 5, Time: 12}}},
		}

	case NPiZero:
		link(2, 3, 4)
		link(4, 5, 6)
		var (
			neut = &mcs.Particles[3]
			gam1 = &mcs.Particles[5]
			gam2 = &mcs.Particles[6]
		)
		zdcs.Hits = []lcio.SimCalorimeterHit{
			{CellID0: 167, Energy: 100, Contributions: []lcio.Contrib{{Mc: neut, Energy: 100, Time: 120}}},
		}
		ecal.Hits = []lcio.SimCalorimeterHit{
			{CellID0: 164, Energy: 20, Contributions: []lcio.Contrib{{Mc: gam1, Energy: 20, Time: 118}}},
			{CellID0: 164, Energy: 10, Contributions: []lcio.Contrib{{Mc: gam2, Energy: 10, Time: 119}}},
		}
	}

	evt := lcio.Event{
		RunNumber:   run,
		EventNumber: inum,
		Detector:    "ePIC",
		Params: lcio.Params{
			Floats: map[string][]float32{
				"dis_q2":  {float32(2 + inum)},
				"dis_xbj": {0.125},
				"dis_y_d": {0.5},
			},
		},
	}
	evt.Add("MCParticles", mcs)
	evt.Add("SiBarrelHits", trks)
	evt.Add("LFHCALHits", lfh)
	evt.Add("HcalFarForwardZDCHits", zdcs)
	evt.Add("EcalFarForwardZDCHits", ecal)
	return evt
}
