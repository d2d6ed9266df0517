// Copyright 2025 The go-lpc Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package decay selects hyperons in an event and classifies their decays.
package decay // import "github.com/go-lpc/hyperon/decay"

import (
	"fmt"

	"github.com/go-lpc/hyperon/edm"
)

// PDG codes of the species involved in Λ⁰ decays.
const (
	Lambda  int32 = 3122
	Proton  int32 = 2212
	Neutron int32 = 2112
	PiMinus int32 = -211
	PiZero  int32 = 111
	Gamma   int32 = 22
)

// Channel is the decay channel of a hyperon.
// Its numeric value is the one written in the CSV tables.
type Channel int

const (
	NotDecayed Channel = iota // no recorded daughter
	PPiMinus                  // p + π⁻
	NPiZero                   // n + π⁰
	Shower                    // a daughter of the same species was regenerated
	Other
)

func (ch Channel) String() string {
	switch ch {
	case NotDecayed:
		return "not-decayed"
	case PPiMinus:
		return "p+pi-"
	case NPiZero:
		return "n+pi0"
	case Shower:
		return "shower"
	case Other:
		return "other"
	}
	return fmt.Sprintf("Channel(%d)", int(ch))
}

// Decay is a classified decay, with the final-state particles bound to
// their role. Unbound roles hold edm.NoParticle.
type Decay struct {
	Channel Channel
	Parent  int
	Proton  int
	PiMinus int
	Neutron int
	PiZero  int
	Gamma1  int
	Gamma2  int
}

// Observable reports whether the decay is a n+π⁰ one where both photons
// of the π⁰ were recorded.
func (d Decay) Observable() bool {
	return d.Channel == NPiZero &&
		d.Neutron != edm.NoParticle &&
		d.Gamma1 != edm.NoParticle &&
		d.Gamma2 != edm.NoParticle
}

// Classify classifies the decay of the parent particle from the species of
// its immediate daughters.
func Classify(evt *edm.Event, parent int) Decay {
	d := Decay{
		Channel: Other,
		Parent:  parent,
		Proton:  edm.NoParticle,
		PiMinus: edm.NoParticle,
		Neutron: edm.NoParticle,
		PiZero:  edm.NoParticle,
		Gamma1:  edm.NoParticle,
		Gamma2:  edm.NoParticle,
	}

	p := evt.Particle(parent)
	if p == nil {
		return d
	}

	switch dtrs := p.Daughters; len(dtrs) {
	case 0:
		d.Channel = NotDecayed

	case 1:
		// a single recorded daughter matches no known signature.

	case 2:
		var (
			d0 = evt.Particles[dtrs[0]]
			d1 = evt.Particles[dtrs[1]]
		)
		switch {
		case d0.PDG == Proton && d1.PDG == PiMinus:
			d.Channel, d.Proton, d.PiMinus = PPiMinus, d0.ID, d1.ID
		case d1.PDG == Proton && d0.PDG == PiMinus:
			d.Channel, d.Proton, d.PiMinus = PPiMinus, d1.ID, d0.ID
		case d0.PDG == Neutron && d1.PDG == PiZero:
			d.Channel, d.Neutron, d.PiZero = NPiZero, d0.ID, d1.ID
		case d1.PDG == Neutron && d0.PDG == PiZero:
			d.Channel, d.Neutron, d.PiZero = NPiZero, d1.ID, d0.ID
		}

	default:
		for _, i := range dtrs {
			if evt.Particles[i].PDG == p.PDG {
				d.Channel = Shower
				break
			}
		}
	}

	if d.Channel == NPiZero {
		// the π⁰ decay may not have been recorded by the simulation.
		d.Gamma1 = evt.Daughter(d.PiZero, 0)
		d.Gamma2 = evt.Daughter(d.PiZero, 1)
	}

	return d
}

// Policy selects which of the matching particles of an event are kept.
type Policy int

const (
	// FirstOnly keeps only the first matching particle of each event.
	// For generated spectator hyperons, the first one is the generated one.
	FirstOnly Policy = iota
	// All keeps every matching particle.
	All
)

func (p Policy) String() string {
	switch p {
	case FirstOnly:
		return "first"
	case All:
		return "all"
	}
	return fmt.Sprintf("Policy(%d)", int(p))
}

// Selector selects the particles of a given species in an event.
type Selector struct {
	PDG    int32
	Policy Policy
}

// Select returns the indices of the selected particles, in event order.
func (sel Selector) Select(evt *edm.Event) []int {
	var out []int
	for i := range evt.Particles {
		if evt.Particles[i].PDG != sel.PDG {
			continue
		}
		out = append(out, i)
		if sel.Policy == FirstOnly {
			break
		}
	}
	return out
}
