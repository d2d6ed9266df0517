// Copyright 2025 The go-lpc Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package ana holds the event analyses that flatten hyperon decays,
// detector acceptance flags and event parameters into CSV tables.
//
// An analysis run is driven by Run, which feeds every event of a scanner
// to a set of analyses. Each analysis owns its output tables and running
// statistics: there is no state shared between runs.
package ana // import "github.com/go-lpc/hyperon/ana"

import (
	"fmt"
	"io"
	"log"

	"github.com/go-lpc/hyperon/accept"
	"github.com/go-lpc/hyperon/csvout"
	"github.com/go-lpc/hyperon/edm"
	"github.com/go-lpc/hyperon/evtio"
)

// Analysis processes events.
type Analysis interface {
	// Process processes one event.
	Process(evt *edm.Event) error
	// Close flushes and closes the outputs of the analysis.
	Close() error
}

// Run feeds all the events of the scanner to the analyses.
// Progress is reported through msg every freq events.
func Run(sc *evtio.Scanner, freq int, msg *log.Logger, anas ...Analysis) error {
	if msg == nil {
		msg = log.New(io.Discard, "", 0)
	}
	if freq <= 0 {
		freq = 1000
	}

	for sc.Next() {
		evt := sc.Event()
		if evt.Index%int64(freq) == 0 {
			msg.Printf("processing evt %d...", evt.Index)
		}
		for _, a := range anas {
			err := a.Process(evt)
			if err != nil {
				return fmt.Errorf("ana: could not process event %d: %w", evt.Index, err)
			}
		}
	}

	err := sc.Err()
	if err != nil {
		return fmt.Errorf("ana: could not scan events: %w", err)
	}

	msg.Printf("processed %d events", sc.Events())
	if n := sc.Skipped(); n > 0 {
		msg.Printf("skipped %d input file(s)", n)
	}
	return nil
}

// Particle is the template of the columns of a Monte-Carlo particle.
var Particle = csvout.Template{
	"id", "pdg", "gen", "sim",
	"px", "py", "pz",
	"vx", "vy", "vz",
	"epx", "epy", "epz",
	"time", "nd",
}

// particleRow returns the fields of the i-th particle of the event,
// or blank fields for edm.NoParticle.
func particleRow(evt *edm.Event, i int) []string {
	p := evt.Particle(i)
	if p == nil {
		return Particle.Blank()
	}
	return []string{
		csvout.Int(p.ID),
		csvout.Int(p.PDG),
		csvout.Int(p.GenStatus),
		csvout.Uint(p.SimStatus),
		csvout.F64(p.P[0]),
		csvout.F64(p.P[1]),
		csvout.F64(p.P[2]),
		csvout.F64(p.Vertex[0]),
		csvout.F64(p.Vertex[1]),
		csvout.F64(p.Vertex[2]),
		csvout.F64(p.EndPoint[0]),
		csvout.F64(p.EndPoint[1]),
		csvout.F64(p.EndPoint[2]),
		csvout.F32(p.Time),
		csvout.Int(len(p.Daughters)),
	}
}

// flagsRow renders detection flags as 0/1 fields.
func flagsRow(flags accept.Flags) []string {
	out := make([]string, len(flags))
	for i, f := range flags {
		out[i] = csvout.Bool(f.Value)
	}
	return out
}

// closeAll closes all the tables, returning the first error.
func closeAll(tbls ...*csvout.Table) error {
	var err error
	for _, tbl := range tbls {
		if tbl == nil {
			continue
		}
		e := tbl.Close()
		if e != nil && err == nil {
			err = e
		}
	}
	return err
}
