// Copyright 2025 The go-lpc Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command csv-mcpart-lambda writes one CSV row per Λ⁰ of the input LCIO
// files, with its decay channel, its final state particles and the t
// transferred from the beam proton.
//
// Usage: csv-mcpart-lambda [OPTIONS] FILE1 [FILE2 [FILE3 ...]]
//
// Example:
//
//	$> csv-mcpart-lambda -n 1000 -o lambdas.csv ./k_lambda_18x275_*.slcio
//	csv-mcpart-lambda: processing evt 0...
//	csv-mcpart-lambda: processed 1000 events
//	p+pi-:        612
//	n+pi0:        344
package main // import "github.com/go-lpc/hyperon/cmd/csv-mcpart-lambda"

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

const usage = `csv-mcpart-lambda writes the Λ⁰ decays of LCIO files as a CSV table.

Usage: csv-mcpart-lambda [OPTIONS] FILE1 [FILE2 [FILE3 ...]]

Example:

 $> csv-mcpart-lambda -n 1000 -o lambdas.csv ./k_lambda_18x275_*.slcio

Options:
`

func main() {
	os.Exit(xmain(os.Stdout, os.Stderr, os.Args[1:]))
}

func xmain(stdout, stderr io.Writer, args []string) int {
	msg := log.New(stderr, "csv-mcpart-lambda: ", 0)

	var (
		fset = flag.NewFlagSet("csv-mcpart-lambda", flag.ContinueOnError)

		nevts = fset.Int64("n", -1, "number of events to process (all if <= 0)")
		oname = fset.String("o", "mcpart_lambdas.csv", "path to output CSV file")
		cname = fset.String("cfg", "", "path to a JSON configuration file")
		first = fset.Bool("first", false, "keep only the first Λ⁰ of each event")
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

	policy := decay.All
	if *first {
		policy = decay.FirstOnly
	}

	err = process(stdout, msg, cfg, *oname, policy, *nevts, fnames)
	if err != nil {
		msg.Printf("could not process files: %+v", err)
		return 1
	}

	return 0
}

func process(w io.Writer, msg *log.Logger, cfg ana.Config, oname string, policy decay.Policy, nevts int64, fnames []string) error {
	a, err := ana.NewMCPart(oname, cfg.Selector(policy))
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
	chans := a.Channels()
	for _, ch := range []decay.Channel{decay.NotDecayed, decay.PPiMinus, decay.NPiZero, decay.Shower, decay.Other} {
		fmt.Fprintf(w, "%-12s %8d\n", ch.String()+":", chans[ch])
	}
	return nil
}
