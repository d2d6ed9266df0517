// Copyright 2025 The go-lpc Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ana

import (
	"strings"

	"github.com/go-lpc/hyperon/accept"
	"github.com/go-lpc/hyperon/csvout"
	"github.com/go-lpc/hyperon/decay"
	"github.com/go-lpc/hyperon/edm"
)

// HitsHeader is the header of the p and π⁻ hit tables.
var HitsHeader = []string{
	"event_id", "lam_id", "detector", "hit_id",
	"x", "y", "z", "eDep", "time", "pathLength",
}

// HitsFiles returns the names of the p and π⁻ hit tables associated
// with the main output file.
func HitsFiles(fname string) (prot, pimin string) {
	base := strings.TrimSuffix(fname, ".csv")
	return base + "_prot_hits.csv", base + "_pimin_hits.csv"
}

// PPiMinus writes one row per selected Λ⁰ → p + π⁻ decay with the
// tracker and calorimeter acceptance of the proton and the pion.
// Hits of the p and of the π⁻ are written to two side tables.
type PPiMinus struct {
	sel  decay.Selector
	dets []accept.Detector

	tbl   *csvout.Table
	prot  *csvout.Table
	pimin *csvout.Table

	stats accept.PPiMinusStats
}

// NewPPiMinus creates the output tables of the analysis.
// Only p+π⁻ decays are kept: with the decay.FirstOnly policy, the first
// such decay of each event is kept.
func NewPPiMinus(fname string, sel decay.Selector, dets []accept.Detector) (*PPiMinus, error) {
	var flags []string
	for _, prefix := range []string{"prot", "pimin"} {
		for _, det := range dets {
			flags = append(flags, accept.FlagName(prefix, det.Name))
		}
	}
	hdr := csvout.Concat(
		[]string{"evt", "lam_id"},
		Particle.Header("lam"),
		Particle.Header("prot"),
		Particle.Header("pimin"),
		flags,
	)

	a := &PPiMinus{sel: sel, dets: dets}
	var err error
	a.tbl, err = csvout.Create(fname, hdr)
	if err != nil {
		return nil, err
	}

	fprot, fpimin := HitsFiles(fname)
	a.prot, err = createHits(fprot)
	if err != nil {
		_ = a.Close()
		return nil, err
	}
	a.pimin, err = createHits(fpimin)
	if err != nil {
		_ = a.Close()
		return nil, err
	}

	return a, nil
}

func createHits(fname string) (*csvout.Table, error) {
	tbl, err := csvout.Create(fname, HitsHeader)
	if err != nil {
		return nil, err
	}
	err = tbl.WriteHeader()
	if err != nil {
		_ = tbl.Close()
		return nil, err
	}
	return tbl, nil
}

func (a *PPiMinus) Process(evt *edm.Event) error {
	policy := a.sel.Policy
	sel := decay.Selector{PDG: a.sel.PDG, Policy: decay.All}

	for _, i := range sel.Select(evt) {
		d := decay.Classify(evt, i)
		if d.Channel != decay.PPiMinus {
			continue
		}

		var (
			evtID = csvout.Int(evt.Index)
			lamID = csvout.Int(i)
			err   error
		)
		hits := func(tbl *csvout.Table) func(accept.Hit) {
			return func(hit accept.Hit) {
				if err != nil {
					return
				}
				err = tbl.Write([]string{
					evtID, lamID, hit.Detector, csvout.Int(hit.ID),
					csvout.F64(hit.Pos[0]), csvout.F64(hit.Pos[1]), csvout.F64(hit.Pos[2]),
					csvout.F32(hit.E), csvout.F32(hit.Time), csvout.F32(hit.PathLength),
				})
			}
		}

		var (
			prot  = accept.Scan(evt, "prot", a.dets, d.Proton, hits(a.prot))
			pimin = accept.Scan(evt, "pimin", a.dets, d.PiMinus, hits(a.pimin))
		)
		if err != nil {
			return err
		}
		a.stats.Add(
			accept.Summarize(prot, "prot", a.dets),
			accept.Summarize(pimin, "pimin", a.dets),
		)

		row := csvout.Concat(
			[]string{evtID, lamID},
			particleRow(evt, d.Parent),
			particleRow(evt, d.Proton),
			particleRow(evt, d.PiMinus),
			flagsRow(prot),
			flagsRow(pimin),
		)
		err = a.tbl.Write(row)
		if err != nil {
			return err
		}

		if policy == decay.FirstOnly {
			break
		}
	}
	return nil
}

// Stats returns the detection statistics accumulated so far.
func (a *PPiMinus) Stats() *accept.PPiMinusStats { return &a.stats }

// Rows returns the number of rows of the main table.
func (a *PPiMinus) Rows() int64 { return a.tbl.Rows() }

func (a *PPiMinus) Close() error {
	return closeAll(a.tbl, a.prot, a.pimin)
}
