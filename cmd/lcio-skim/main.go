// Copyright 2025 The go-lpc Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command lcio-skim copies to a new LCIO file the events holding a Λ⁰ that
// decayed through the requested channel, optionally rewriting their run
// number.
//
// Usage: lcio-skim [OPTIONS] FILE.slcio
package main // import "github.com/go-lpc/hyperon/cmd/lcio-skim"

import (
	"compress/flate"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"go-hep.org/x/hep/lcio"

	"github.com/go-lpc/hyperon/ana"
	"github.com/go-lpc/hyperon/decay"
	"github.com/go-lpc/hyperon/internal/xcnv"
)

const usage = `Usage: lcio-skim [OPTIONS] FILE.slcio

ex:
 $> lcio-skim -o npi0.slcio -channel=n+pi0 ./input.slcio
 lcio-skim: processing evt 0...
 lcio-skim: processing evt 100...
 lcio-skim: kept 344/1000 events
 $> lcio-skim -o out.slcio -channel=any -run=1234 ./input.slcio

options:
`

func main() {
	os.Exit(xmain(os.Stderr, os.Args[1:]))
}

func xmain(stderr io.Writer, args []string) int {
	msg := log.New(stderr, "lcio-skim: ", 0)

	var (
		fset = flag.NewFlagSet("lcio-skim", flag.ContinueOnError)

		oname  = fset.String("o", "out.slcio", "path to output LCIO file")
		cname  = fset.String("cfg", "", "path to a JSON configuration file")
		chname = fset.String("channel", "any", "decay channel of the kept events (p+pi-, n+pi0, shower, other, not-decayed, any, all)")
		runnbr = fset.Int("run", xcnv.KeepRun, "run number to use for output LCIO file (-1 keeps the input one)")
		compr  = fset.Int("lvl", flate.BestCompression, "compression level for output LCIO file")
		freq   = fset.Int("freq", 100, "progress report frequency, in events")
	)
	fset.SetOutput(stderr)
	fset.Usage = func() {
		fmt.Fprint(stderr, usage)
		fset.PrintDefaults()
	}

	fnames, err := ana.ParseArgs(fset, args)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		msg.Printf("could not parse input arguments: %+v", err)
		return 1
	}

	if len(fnames) != 1 {
		fset.Usage()
		msg.Printf("missing input LCIO file to skim")
		return 1
	}

	cfg, err := ana.Setup(*cname)
	if err != nil {
		msg.Printf("could not setup configuration: %+v", err)
		return 1
	}

	keep, err := filter(cfg, *chname)
	if err != nil {
		msg.Printf("could not create event filter: %+v", err)
		return 1
	}

	err = process(msg, *oname, fnames[0], keep, int32(*runnbr), *compr, *freq)
	if err != nil {
		msg.Printf("could not skim %q: %+v", fnames[0], err)
		return 1
	}

	return 0
}

// filter returns the event filter for the named decay channel.
// "any" keeps the events with at least one selected particle, "all" keeps
// every event.
func filter(cfg ana.Config, name string) (xcnv.Filter, error) {
	switch name {
	case "all":
		return nil, nil
	case "any":
		return xcnv.HasPDG(cfg.Particles, cfg.PDG), nil
	}

	for _, ch := range []decay.Channel{decay.NotDecayed, decay.PPiMinus, decay.NPiZero, decay.Shower, decay.Other} {
		if ch.String() != name {
			continue
		}
		ch := ch
		sel := cfg.Selector(decay.All)
		return xcnv.HasDecay(cfg.Particles, sel, func(d decay.Decay) bool {
			return d.Channel == ch
		}), nil
	}
	return nil, fmt.Errorf("invalid decay channel %q", name)
}

func process(msg *log.Logger, oname, fname string, keep xcnv.Filter, run int32, lvl, freq int) error {
	r, err := lcio.Open(fname)
	if err != nil {
		return fmt.Errorf("could not open input LCIO file: %w", err)
	}
	defer r.Close()

	w, err := lcio.Create(oname)
	if err != nil {
		return fmt.Errorf("could not create output LCIO file: %w", err)
	}
	defer w.Close()

	w.SetCompressionLevel(lvl)

	_, err = xcnv.Skim(w, r, keep, run, freq, msg)
	if err != nil {
		return err
	}

	err = w.Close()
	if err != nil {
		return fmt.Errorf("could not close output LCIO file: %w", err)
	}

	return nil
}
