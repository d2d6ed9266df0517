// Copyright 2025 The go-lpc Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command csv-acceptance-ppim writes one CSV row per Λ⁰ → p + π⁻ decay of the
// input LCIO files, with the trackers and calorimeters hit by the proton and
// by the pion. The hits themselves are written to two side tables,
// <base>_prot_hits.csv and <base>_pimin_hits.csv.
// Detection categories are printed once all the files are processed.
//
// Usage: csv-acceptance-ppim [OPTIONS] FILE1 [FILE2 [FILE3 ...]]
package main // import "github.com/go-lpc/hyperon/cmd/csv-acceptance-ppim"

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/go-lpc/hyperon/accept"
	"github.com/go-lpc/hyperon/ana"
	"github.com/go-lpc/hyperon/conddb"
	"github.com/go-lpc/hyperon/decay"
	"github.com/go-lpc/hyperon/evtio"
)

const usage = `csv-acceptance-ppim writes the acceptance of Λ⁰ → p + π⁻ decays as CSV tables.

Usage: csv-acceptance-ppim [OPTIONS] FILE1 [FILE2 [FILE3 ...]]

Example:

 $> csv-acceptance-ppim -o ppim.csv ./k_lambda_18x275_*.slcio
 [...]
 Total p+π⁻ decays: 612
 1. Both p and pi- in at least one tracker: 583 (95.3%)
 [...]

Options:
`

func main() {
	os.Exit(xmain(os.Stdout, os.Stderr, os.Args[1:]))
}

func xmain(stdout, stderr io.Writer, args []string) int {
	msg := log.New(stderr, "csv-acceptance-ppim: ", 0)

	var (
		fset = flag.NewFlagSet("csv-acceptance-ppim", flag.ContinueOnError)

		nevts = fset.Int64("n", -1, "number of events to process (all if <= 0)")
		oname = fset.String("o", "acceptance_ppim.csv", "path to output CSV file")
		cname = fset.String("cfg", "", "path to a JSON configuration file")
		all   = fset.Bool("all", false, "keep every p+π⁻ decay of each event")
		db    = fset.String("db", "", "name of the conditions database holding the hit collections")
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

	if len(fnames) == 0 {
		fset.Usage()
		msg.Printf("missing input LCIO file(s)")
		return 1
	}

	cfg, err := ana.Setup(*cname)
	if err != nil {
		msg.Printf("could not setup configuration: %+v", err)
		return 1
	}

	policy := decay.FirstOnly
	if *all {
		policy = decay.All
	}

	dets, err := loadDetectors(cfg, *db)
	if err != nil {
		msg.Printf("could not load detectors: %+v", err)
		return 1
	}

	err = process(stdout, msg, cfg, dets, *oname, policy, *nevts, fnames)
	if err != nil {
		msg.Printf("could not process files: %+v", err)
		return 1
	}

	return 0
}

// loadDetectors returns the hit collections of the configuration, or the
// ones of the conditions database if dbname is set.
func loadDetectors(cfg ana.Config, dbname string) ([]accept.Detector, error) {
	if dbname == "" {
		return cfg.Detectors(), nil
	}

	db, err := conddb.Open(dbname)
	if err != nil {
		return nil, err
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	return db.Detectors(ctx)
}

func process(w io.Writer, msg *log.Logger, cfg ana.Config, dets []accept.Detector, oname string, policy decay.Policy, nevts int64, fnames []string) error {
	a, err := ana.NewPPiMinus(oname, cfg.Selector(policy), dets)
	if err != nil {
		return fmt.Errorf("could not create output file: %w", err)
	}
	defer a.Close()

	sc := evtio.NewScanner(fnames, nevts, msg, cfg.Options()...)
	defer sc.Close()

	err = ana.Run(sc, cfg.Freq, msg, a)
	if err != nil {
		return err
	}

	err = a.Close()
	if err != nil {
		return fmt.Errorf("could not close output file: %w", err)
	}

	fprot, fpimin := ana.HitsFiles(oname)
	msg.Printf("wrote %d rows to %q (hits: %q, %q)", a.Rows(), oname, fprot, fpimin)
	a.Stats().Print(w)
	return nil
}
