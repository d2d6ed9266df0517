// Copyright 2025 The go-lpc Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ana

import (
	"github.com/go-lpc/hyperon/csvout"
	"github.com/go-lpc/hyperon/decay"
	"github.com/go-lpc/hyperon/edm"
	"github.com/go-lpc/hyperon/kine"
)

// decayBlocks are the prefixes of the particle blocks of a decay.
var decayBlocks = []string{"lam", "prot", "pimin", "neut", "pizero", "gamone", "gamtwo"}

func decayHeader() []string {
	var out []string
	for _, prefix := range decayBlocks {
		out = append(out, Particle.Header(prefix)...)
	}
	return out
}

func decayRow(evt *edm.Event, d decay.Decay) []string {
	return csvout.Concat(
		particleRow(evt, d.Parent),
		particleRow(evt, d.Proton),
		particleRow(evt, d.PiMinus),
		particleRow(evt, d.Neutron),
		particleRow(evt, d.PiZero),
		particleRow(evt, d.Gamma1),
		particleRow(evt, d.Gamma2),
	)
}

// MCPart writes one row per selected hyperon with its classified decay,
// the t transferred from the beam proton and the t computed from the
// nominal beam.
type MCPart struct {
	sel decay.Selector
	tbl *csvout.Table

	channels [decay.Other + 1]int64
}

// NewMCPart creates the output table of the analysis.
func NewMCPart(fname string, sel decay.Selector) (*MCPart, error) {
	hdr := csvout.Concat([]string{"event", "lam_decay", "lam_t", "lam_t_nom"}, decayHeader())
	tbl, err := csvout.Create(fname, hdr)
	if err != nil {
		return nil, err
	}
	return &MCPart{sel: sel, tbl: tbl}, nil
}

func (a *MCPart) Process(evt *edm.Event) error {
	for _, i := range a.sel.Select(evt) {
		d := decay.Classify(evt, i)
		a.channels[d.Channel]++

		lamT, lamNom := "", ""
		if t, ok := kine.BeamT(evt, i); ok {
			lamT = csvout.F64(t)
		}
		if t, ok := kine.NominalT(evt, i); ok {
			lamNom = csvout.F64(t)
		}

		row := csvout.Concat(
			[]string{csvout.Int(evt.Index), csvout.Int(int(d.Channel)), lamT, lamNom},
			decayRow(evt, d),
		)
		err := a.tbl.Write(row)
		if err != nil {
			return err
		}
	}
	return nil
}

// Rows returns the number of rows written.
func (a *MCPart) Rows() int64 { return a.tbl.Rows() }

// Channels returns the number of hyperons per decay channel.
func (a *MCPart) Channels() map[decay.Channel]int64 {
	out := make(map[decay.Channel]int64)
	for ch, n := range a.channels {
		if n > 0 {
			out[decay.Channel(ch)] = n
		}
	}
	return out
}

func (a *MCPart) Close() error {
	return a.tbl.Close()
}
