// Copyright 2025 The go-lpc Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ana

import (
	"errors"
	"io"
	"log"

	"github.com/go-lpc/hyperon/cellid"
	"github.com/go-lpc/hyperon/csvout"
	"github.com/go-lpc/hyperon/edm"
	"github.com/go-lpc/hyperon/kine"
)

// TrkHitsHeader is the header of the tracker hits table.
var TrkHitsHeader = []string{
	"evt", "hit_index", "prt_index",
	"prt_pdg", "prt_status", "prt_energy", "prt_charge",
	"prt_mom_x", "prt_mom_y", "prt_mom_z",
	"prt_vtx_time", "prt_vtx_pos_x", "prt_vtx_pos_y", "prt_vtx_pos_z",
	"prt_end_pos_x", "prt_end_pos_y", "prt_end_pos_z",
	"trk_hit_collection", "trk_hit_cell_id", "trk_hit_system_id", "trk_hit_system_name",
	"trk_hit_pos_x", "trk_hit_pos_y", "trk_hit_pos_z", "trk_hit_time",
	"trk_hit_edep", "trk_hit_path_length",
}

// TrkHits writes one row per tracker hit attributed to a particle, with
// the detector system decoded from the hit cell ID.
// Hits of an unknown detector system are skipped and counted.
type TrkHits struct {
	dict *cellid.Dict
	tbl  *csvout.Table
	msg  *log.Logger

	unknown int64
}

// NewTrkHits creates the output table of the analysis.
func NewTrkHits(fname string, dict *cellid.Dict, msg *log.Logger) (*TrkHits, error) {
	tbl, err := csvout.Create(fname, TrkHitsHeader)
	if err != nil {
		return nil, err
	}
	if msg == nil {
		msg = log.New(io.Discard, "", 0)
	}
	return &TrkHits{dict: dict, tbl: tbl, msg: msg}, nil
}

func (a *TrkHits) Process(evt *edm.Event) error {
	for _, name := range evt.TrackerNames() {
		hits, _ := evt.TrackerHits(name)
		for _, hit := range hits {
			p := evt.Particle(hit.Particle)
			if p == nil {
				continue
			}

			sys, sysName, err := a.dict.Lookup(hit.CellID)
			if err != nil {
				if !errors.Is(err, cellid.ErrUnknownSystem) {
					return err
				}
				if a.unknown == 0 {
					a.msg.Printf("skipping hits of unknown systems (first: evt=%d, %s): %+v", evt.Index, name, err)
				}
				a.unknown++
				continue
			}

			p4 := kine.P4(p)
			err = a.tbl.Write([]string{
				csvout.Int(evt.Index), csvout.Int(hit.ID), csvout.Int(p.ID),
				csvout.Int(p.PDG), csvout.Int(p.GenStatus), csvout.F64(p4.E()), csvout.F32(p.Charge),
				csvout.F64(p.P[0]), csvout.F64(p.P[1]), csvout.F64(p.P[2]),
				csvout.F32(p.Time), csvout.F64(p.Vertex[0]), csvout.F64(p.Vertex[1]), csvout.F64(p.Vertex[2]),
				csvout.F64(p.EndPoint[0]), csvout.F64(p.EndPoint[1]), csvout.F64(p.EndPoint[2]),
				name, csvout.Uint(hit.CellID), csvout.Uint(sys), sysName,
				csvout.F64(hit.Pos[0]), csvout.F64(hit.Pos[1]), csvout.F64(hit.Pos[2]), csvout.F32(hit.Time),
				csvout.F32(hit.EDep), csvout.F32(hit.PathLength),
			})
			if err != nil {
				return err
			}
		}
	}
	return nil
}

// Unknown returns the number of hits skipped because their detector
// system is unknown.
func (a *TrkHits) Unknown() int64 { return a.unknown }

// Rows returns the number of rows written.
func (a *TrkHits) Rows() int64 { return a.tbl.Rows() }

func (a *TrkHits) Close() error {
	return a.tbl.Close()
}
