// Copyright 2025 The go-lpc Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command csv-acceptance-npi0 writes one CSV row per Λ⁰ of the input LCIO
// files, with its decay and whether the neutron and the two photons of a
// n+π⁰ decay reached the forward calorimeters.
// Detection statistics are printed once all the files are processed.
//
// Usage: csv-acceptance-npi0 [OPTIONS] FILE1 [FILE2 [FILE3 ...]]
package main // import "github.com/go-lpc/hyperon/cmd/csv-acceptance-npi0"

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/go-lpc/hyperon/ana"
	"github.com/go-lpc/hyperon/decay"
	"github.com/go-lpc/hyperon/evtio"
)

const usage = `csv-acceptance-npi0 writes the n+π⁰ calorimeter acceptance of Λ⁰ decays as a CSV table.

Usage: csv-acceptance-npi0 [OPTIONS] FILE1 [FILE2 [FILE3 ...]]

Example:

 $> csv-acceptance-npi0 -all -o npi0.csv ./k_lambda_18x275_*.slcio
 [...]
 === DETECTION STATISTICS ===
 Total lambdas: 1000
 [...]

Options:
`

func main() {
	os.Exit(xmain(os.Stdout, os.Stderr, os.Args[1:]))
}

func xmain(stdout, stderr io.Writer, args []string) int {
	msg := log.New(stderr, "csv-acceptance-npi0: ", 0)

	var (
		fset = flag.NewFlagSet("csv-acceptance-npi0", flag.ContinueOnError)

		nevts = fset.Int64("n", -1, "number of events to process (all if <= 0)")
		oname = fset.String("o", "acceptance_npi0.csv", "path to output CSV file")
		cname = fset.String("cfg", "", "path to a JSON configuration file")
		all   = fset.Bool("all", false, "keep every Λ⁰ of each event")
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

	err = process(stdout, msg, cfg, *oname, policy, *nevts, fnames)
	if err != nil {
		msg.Printf("could not process files: %+v", err)
		return 1
	}

	return 0
}

func process(w io.Writer, msg *log.Logger, cfg ana.Config, oname string, policy decay.Policy, nevts int64, fnames []string) error {
	a, err := ana.NewNPi0(oname, cfg.Selector(policy), cfg.NPi0())
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

	msg.Printf("wrote %d rows to %q", a.Rows(), oname)
	a.Stats().Print(w)
	return nil
}
