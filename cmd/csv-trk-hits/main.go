// Copyright 2025 The go-lpc Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command csv-trk-hits writes one CSV row per tracker hit of the input LCIO
// files, with the particle that produced it and the detector system
// decoded from the hit cell ID.
//
// Detector system names are taken from the built-in ePIC table, or from
// the conditions database when -db is set.
//
// Usage: csv-trk-hits [OPTIONS] FILE1 [FILE2 [FILE3 ...]]
package main // import "github.com/go-lpc/hyperon/cmd/csv-trk-hits"

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/go-lpc/hyperon/ana"
	"github.com/go-lpc/hyperon/cellid"
	"github.com/go-lpc/hyperon/conddb"
	"github.com/go-lpc/hyperon/evtio"
)

const usage = `csv-trk-hits writes the tracker hits of LCIO events as a CSV table.

Usage: csv-trk-hits [OPTIONS] FILE1 [FILE2 [FILE3 ...]]

Example:

 $> csv-trk-hits -o hits.csv ./k_lambda_18x275_*.slcio
 $> csv-trk-hits -db epic_geo -o hits.csv ./k_lambda_18x275_*.slcio

Options:
`

func main() {
	os.Exit(xmain(os.Stdout, os.Stderr, os.Args[1:]))
}

func xmain(stdout, stderr io.Writer, args []string) int {
	msg := log.New(stderr, "csv-trk-hits: ", 0)

	var (
		fset = flag.NewFlagSet("csv-trk-hits", flag.ContinueOnError)

		nevts  = fset.Int64("n", -1, "number of events to process (all if <= 0)")
		oname  = fset.String("o", "trk_hits.csv", "path to output CSV file")
		cname  = fset.String("cfg", "", "path to a JSON configuration file")
		dbname = fset.String("db", "", "name of the conditions database holding the detector systems")
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

	dict, err := loadDict(*dbname)
	if err != nil {
		msg.Printf("could not load detector systems: %+v", err)
		return 1
	}

	err = process(msg, cfg, dict, *oname, *nevts, fnames)
	if err != nil {
		msg.Printf("could not process files: %+v", err)
		return 1
	}

	return 0
}

func loadDict(dbname string) (*cellid.Dict, error) {
	if dbname == "" {
		return cellid.Default(), nil
	}

	db, err := conddb.Open(dbname)
	if err != nil {
		return nil, err
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	return db.Dict(ctx)
}

func process(msg *log.Logger, cfg ana.Config, dict *cellid.Dict, oname string, nevts int64, fnames []string) error {
	a, err := ana.NewTrkHits(oname, dict, msg)
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
	if n := a.Unknown(); n > 0 {
		msg.Printf("skipped %d hit(s) of unknown detector systems", n)
	}
	return nil
}
