// Copyright 2025 The go-lpc Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ana

import (
	"github.com/go-lpc/hyperon/accept"
	"github.com/go-lpc/hyperon/csvout"
	"github.com/go-lpc/hyperon/decay"
	"github.com/go-lpc/hyperon/edm"
)

// NPi0 writes one row per selected hyperon with its decay and the
// calorimeter acceptance of the n+π⁰ final state.
type NPi0 struct {
	sel   decay.Selector
	cfg   accept.NPi0
	tbl   *csvout.Table
	stats *accept.NPi0Stats
}

// NewNPi0 creates the output table of the analysis.
func NewNPi0(fname string, sel decay.Selector, cfg accept.NPi0) (*NPi0, error) {
	hdr := csvout.Concat(
		[]string{"event", "lam_is_first", "lam_decay"},
		decayHeader(),
		cfg.Names(),
	)
	tbl, err := csvout.Create(fname, hdr)
	if err != nil {
		return nil, err
	}
	return &NPi0{
		sel:   sel,
		cfg:   cfg,
		tbl:   tbl,
		stats: accept.NewNPi0Stats(cfg),
	}, nil
}

func (a *NPi0) Process(evt *edm.Event) error {
	for j, i := range a.sel.Select(evt) {
		var (
			d     = decay.Classify(evt, i)
			flags = a.cfg.Flags(evt, d)
		)
		a.stats.Add(d, flags)

		row := csvout.Concat(
			[]string{csvout.Int(evt.Index), csvout.Bool(j == 0), csvout.Int(int(d.Channel))},
			decayRow(evt, d),
			flagsRow(flags),
		)
		err := a.tbl.Write(row)
		if err != nil {
			return err
		}
	}
	return nil
}

// Stats returns the detection statistics accumulated so far.
func (a *NPi0) Stats() *accept.NPi0Stats { return a.stats }

// Rows returns the number of rows written.
func (a *NPi0) Rows() int64 { return a.tbl.Rows() }

func (a *NPi0) Close() error {
	return a.tbl.Close()
}
