// Copyright 2025 The go-lpc Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package xcnv

import (
	"errors"
	"fmt"
	"io"
	"log"

	"go-hep.org/x/hep/lcio"

	"github.com/go-lpc/hyperon/decay"
	"github.com/go-lpc/hyperon/edm"
)

// Filter reports whether an event should be kept.
type Filter func(evt *lcio.Event) bool

// HasPDG returns a filter keeping the events with at least one particle of
// the given species in the named MC particle collection.
func HasPDG(coll string, pdg int32) Filter {
	return func(evt *lcio.Event) bool {
		mcs, ok := evt.Get(coll).(*lcio.McParticleContainer)
		if !ok {
			return false
		}
		for i := range mcs.Particles {
			if mcs.Particles[i].PDG == pdg {
				return true
			}
		}
		return false
	}
}

// HasDecay returns a filter keeping the events with at least one particle
// selected by sel whose decay is accepted by keep.
func HasDecay(coll string, sel decay.Selector, keep func(decay.Decay) bool) Filter {
	return func(evt *lcio.Event) bool {
		ev, err := edm.FromLCIO(0, evt, coll)
		if err != nil {
			return false
		}
		for _, i := range sel.Select(ev) {
			if keep(decay.Classify(ev, i)) {
				return true
			}
		}
		return false
	}
}

// KeepRun is the run number value that leaves run numbers untouched.
const KeepRun = -1

// Skim copies the events of r accepted by keep to w, and returns the
// number of copied events. A nil filter keeps every event.
// Unless run is KeepRun, the run number of the run header and of the
// copied events is rewritten to run.
func Skim(w *lcio.Writer, r *lcio.Reader, keep Filter, run int32, freq int, msg *log.Logger) (int, error) {
	if freq <= 0 {
		freq = 100
	}
	var (
		i = 0
		n = 0
	)
	for r.Next() {
		if i == 0 {
			rhdr := r.RunHeader()
			if run != KeepRun {
				rhdr.RunNumber = run
			}
			err := w.WriteRunHeader(&rhdr)
			if err != nil {
				return n, fmt.Errorf("could not write run header: %w", err)
			}
		}

		evt := r.Event()
		if i%freq == 0 {
			msg.Printf("processing evt %d...", i)
		}
		i++

		if keep != nil && !keep(&evt) {
			continue
		}
		if run != KeepRun {
			evt.RunNumber = run
		}
		err := w.WriteEvent(&evt)
		if err != nil {
			return n, fmt.Errorf("could not write evt %d: %w", evt.EventNumber, err)
		}
		n++
	}

	err := r.Err()
	if err != nil && !errors.Is(err, io.EOF) {
		return n, fmt.Errorf("could not read LCIO file: %w", err)
	}

	msg.Printf("kept %d/%d events", n, i)
	return n, nil
}
