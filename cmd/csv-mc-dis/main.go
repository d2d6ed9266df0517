// Copyright 2025 The go-lpc Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command csv-mc-dis writes the generator-level DIS parameters of every event
// of the input LCIO files as a CSV table.
//
// Usage: csv-mc-dis [OPTIONS] FILE1 [FILE2 [FILE3 ...]]
package main // import "github.com/go-lpc/hyperon/cmd/csv-mc-dis"

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/go-lpc/hyperon/ana"
	"github.com/go-lpc/hyperon/evtio"
)

const usage = `csv-mc-dis writes the DIS parameters of LCIO events as a CSV table.

Usage: csv-mc-dis [OPTIONS] FILE1 [FILE2 [FILE3 ...]]

Example:

 $> csv-mc-dis -o dis.csv ./k_lambda_18x275_*.slcio

Options:
`

func main() {
	os.Exit(xmain(os.Stdout, os.Stderr, os.Args[1:]))
}

func xmain(stdout, stderr io.Writer, args []string) int {
	msg := log.New(stderr, "csv-mc-dis: ", 0)

	var (
		fset = flag.NewFlagSet("csv-mc-dis", flag.ContinueOnError)

		nevts = fset.Int64("n", -1, "number of events to process (all if <= 0)")
		oname = fset.String("o", "dis_parameters.csv", "path to output CSV file")
		cname = fset.String("cfg", "", "path to a JSON configuration file")
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

	err = process(msg, cfg, *oname, *nevts, fnames)
	if err != nil {
		msg.Printf("could not process files: %+v", err)
		return 1
	}

	return 0
}

func process(msg *log.Logger, cfg ana.Config, oname string, nevts int64, fnames []string) error {
	a, err := ana.NewDIS(oname)
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
	return nil
}
