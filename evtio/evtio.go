// Copyright 2025 The go-lpc Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package evtio reads simulated events from a sequence of LCIO files.
package evtio // import "github.com/go-lpc/hyperon/evtio"

import (
	"errors"
	"fmt"
	"io"
	"log"

	"go-hep.org/x/hep/lcio"

	"github.com/go-lpc/hyperon/edm"
)

// DefaultParticles is the default name of the Monte-Carlo particle collection.
const DefaultParticles = "MCParticles"

// Option configures a Scanner.
type Option func(*Scanner)

// WithParticles sets the name of the Monte-Carlo particle collection.
func WithParticles(name string) Option {
	return func(sc *Scanner) {
		sc.particles = name
	}
}

// Scanner iterates over the events of a sequence of LCIO files.
//
// Events are numbered with a global index, starting at 0, that keeps
// increasing across files. Files that can not be opened are skipped. A read
// error in the middle of a file ends that file: the scanner moves on to the
// next one.
type Scanner struct {
	fnames    []string
	max       int64
	msg       *log.Logger
	particles string

	r     *lcio.Reader
	ifile int // index of the next file to open
	fname string

	n       int64
	evt     *edm.Event
	err     error
	skipped int
	failed  int
}

// NewScanner returns a scanner over the named files.
// At most max events are read, or all of them if max <= 0.
// Warnings are reported through msg.
func NewScanner(fnames []string, max int64, msg *log.Logger, opts ...Option) *Scanner {
	if msg == nil {
		msg = log.New(io.Discard, "", 0)
	}
	sc := &Scanner{
		fnames:    fnames,
		max:       max,
		msg:       msg,
		particles: DefaultParticles,
	}
	for _, opt := range opts {
		opt(sc)
	}
	return sc
}

// Next advances the scanner to the next event.
// It returns false when the input is exhausted, the event limit is
// reached or a fatal error occurred.
func (sc *Scanner) Next() bool {
	if sc.err != nil {
		return false
	}
	if sc.max > 0 && sc.n >= sc.max {
		sc.closeFile()
		return false
	}

	for {
		if sc.r == nil && !sc.openFile() {
			return false
		}

		if !sc.r.Next() {
			err := sc.r.Err()
			if err != nil && !errors.Is(err, io.EOF) {
				sc.msg.Printf("could not read event from %q: %+v", sc.fname, err)
				sc.failed++
			}
			sc.closeFile()
			continue
		}

		raw := sc.r.Event()
		evt, err := edm.FromLCIO(sc.n, &raw, sc.particles)
		if err != nil {
			sc.err = fmt.Errorf("evtio: could not convert event %d of %q: %w", raw.EventNumber, sc.fname, err)
			sc.closeFile()
			return false
		}
		sc.evt = evt
		sc.n++
		return true
	}
}

func (sc *Scanner) openFile() bool {
	for sc.ifile < len(sc.fnames) {
		fname := sc.fnames[sc.ifile]
		sc.ifile++

		r, err := lcio.Open(fname)
		if err != nil {
			sc.msg.Printf("could not open %q: %+v", fname, err)
			sc.skipped++
			continue
		}
		sc.r = r
		sc.fname = fname
		return true
	}
	return false
}

func (sc *Scanner) closeFile() {
	if sc.r == nil {
		return
	}
	err := sc.r.Close()
	if err != nil {
		sc.msg.Printf("could not close %q: %+v", sc.fname, err)
	}
	sc.r = nil
}

// Event returns the current event.
func (sc *Scanner) Event() *edm.Event {
	return sc.evt
}

// File returns the name of the file the current event was read from.
func (sc *Scanner) File() string {
	return sc.fname
}

// Events returns the number of events read so far.
func (sc *Scanner) Events() int64 {
	return sc.n
}

// Skipped returns the number of input files that could not be opened.
func (sc *Scanner) Skipped() int {
	return sc.skipped
}

// Failed returns the number of input files whose reading stopped on an
// error before their end.
func (sc *Scanner) Failed() int {
	return sc.failed
}

// Err returns the first fatal error encountered by the scanner.
func (sc *Scanner) Err() error {
	return sc.err
}

// Close releases the currently opened file, if any.
func (sc *Scanner) Close() error {
	if sc.r == nil {
		return nil
	}
	r := sc.r
	sc.r = nil
	err := r.Close()
	if err != nil {
		return fmt.Errorf("evtio: could not close %q: %w", sc.fname, err)
	}
	return nil
}
