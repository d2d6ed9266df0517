// Copyright 2025 The go-lpc Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command csv-convert runs the n+π⁰ and p+π⁻ acceptance extractions on every
// LCIO file of a directory.
//
// For an input file DIR/NAME.slcio, the tables are written next to it, as
// DIR/NAME.acceptance_npi0.csv and DIR/NAME.acceptance_ppim.csv.
// Existing tables are not overwritten.
//
// Usage: csv-convert [OPTIONS] DIR
package main // import "github.com/go-lpc/hyperon/cmd/csv-convert"

import (
	"bytes"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/sbinet/pmon"
	"golang.org/x/sync/errgroup"

	"github.com/go-lpc/hyperon"
	"github.com/go-lpc/hyperon/ana"
	"github.com/go-lpc/hyperon/decay"
	"github.com/go-lpc/hyperon/evtio"
)

const usage = `csv-convert runs the acceptance extractions on every LCIO file of a directory.

Usage: csv-convert [OPTIONS] DIR

Example:

 $> csv-convert -j 4 ./campaign/18x275
 csv-convert: found 12 LCIO files in "./campaign/18x275"
 [...]

Options:
`

// extensions of the input and output files.
const (
	extLCIO = ".slcio"
	extNPi0 = ".acceptance_npi0.csv"
	extPPiM = ".acceptance_ppim.csv"
)

func main() {
	os.Exit(xmain(os.Stdout, os.Stderr, os.Args[1:]))
}

func xmain(stdout, stderr io.Writer, args []string) int {
	msg := log.New(stderr, "csv-convert: ", 0)

	var (
		fset = flag.NewFlagSet("csv-convert", flag.ContinueOnError)

		nevts = fset.Int64("n", -1, "number of events to process per file (all if <= 0)")
		cname = fset.String("cfg", "", "path to a JSON configuration file")
		njobs = fset.Int("j", 1, "number of files processed in parallel")
		doMon = fset.Bool("pmon", false, "enable pmon monitoring")
		freq  = fset.Duration("freq", 1*time.Second, "pmon frequency")
	)
	fset.SetOutput(stderr)
	fset.Usage = func() {
		fmt.Fprint(stderr, usage)
		fset.PrintDefaults()
	}

	dirs, err := ana.ParseArgs(fset, args)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		msg.Printf("could not parse input arguments: %+v", err)
		return 1
	}

	if len(dirs) != 1 {
		fset.Usage()
		msg.Printf("missing input directory")
		return 1
	}

	cfg, err := ana.Setup(*cname)
	if err != nil {
		msg.Printf("could not setup configuration: %+v", err)
		return 1
	}

	if v, _ := hyperon.Version(); v != "" {
		msg.Printf("version: %s", v)
	}

	if *doMon {
		stop, err := monitor(dirs[0], *freq, msg)
		if err != nil {
			msg.Printf("could not start monitoring: %+v", err)
			return 1
		}
		defer stop()
	}

	err = run(stdout, msg, cfg, dirs[0], *njobs, *nevts)
	if err != nil {
		msg.Printf("could not convert files: %+v", err)
		return 1
	}

	return 0
}

func monitor(dir string, freq time.Duration, msg *log.Logger) (func(), error) {
	p, err := pmon.Monitor(os.Getpid())
	if err != nil {
		return nil, fmt.Errorf("could not monitor process: %w", err)
	}
	f, err := os.Create(filepath.Join(dir, "csv-convert-pmon.log"))
	if err != nil {
		return nil, fmt.Errorf("could not create pmon log file: %w", err)
	}
	p.W = f
	p.Freq = freq

	go func() {
		err := p.Run()
		if err != nil {
			msg.Printf("could not run monitoring: %+v", err)
		}
	}()

	return func() { _ = f.Sync() }, nil
}

// files returns the sorted LCIO files of dir.
func files(dir string) ([]string, error) {
	fnames, err := filepath.Glob(filepath.Join(dir, "*"+extLCIO))
	if err != nil {
		return nil, err
	}
	sort.Strings(fnames)
	return fnames, nil
}

// outputs returns the names of the n+π⁰ and p+π⁻ tables of the input file.
func outputs(fname string) (npi0, ppim string) {
	base := strings.TrimSuffix(fname, extLCIO)
	return base + extNPi0, base + extPPiM
}

func run(w io.Writer, msg *log.Logger, cfg ana.Config, dir string, njobs int, nevts int64) error {
	fnames, err := files(dir)
	if err != nil {
		return fmt.Errorf("could not list LCIO files in %q: %w", dir, err)
	}
	if len(fnames) == 0 {
		return fmt.Errorf("no %s file found in %q", extLCIO, dir)
	}
	msg.Printf("found %d LCIO files in %q", len(fnames), dir)

	if njobs <= 0 {
		njobs = 1
	}

	var (
		grp  errgroup.Group
		outs = make([]bytes.Buffer, len(fnames))
	)
	grp.SetLimit(njobs)
	for i := range fnames {
		i := i
		grp.Go(func() error {
			return convert(&outs[i], cfg, fnames[i], nevts)
		})
	}

	err = grp.Wait()

	for i, fname := range fnames {
		fmt.Fprintf(w, "[%d/%d] %s\n", i+1, len(fnames), filepath.Base(fname))
		_, _ = w.Write(outs[i].Bytes())
	}

	if err != nil {
		return err
	}

	msg.Printf("processed %d files", len(fnames))
	return nil
}

// convert runs the extractions whose output does not exist yet on fname.
// Its report is written to w.
// On failure, the outputs created for fname are removed so a later run
// retries the file.
func convert(w io.Writer, cfg ana.Config, fname string, nevts int64) (err error) {
	var (
		msg  = log.New(w, "", 0)
		anas []ana.Analysis
		outs []string

		npi0 *ana.NPi0
		ppim *ana.PPiMinus
	)
	defer func() {
		for _, a := range anas {
			_ = a.Close()
		}
		if err != nil {
			for _, name := range outs {
				_ = os.Remove(name)
			}
		}
	}()

	onpi0, oppim := outputs(fname)
	switch {
	case exists(onpi0):
		msg.Printf("[SKIP] %s already exists, skipping", filepath.Base(onpi0))
	default:
		outs = append(outs, onpi0)
		a, err := ana.NewNPi0(onpi0, cfg.Selector(decay.FirstOnly), cfg.NPi0())
		if err != nil {
			return fmt.Errorf("could not create n+pi0 analysis for %q: %w", fname, err)
		}
		npi0 = a
		anas = append(anas, a)
	}

	switch {
	case exists(oppim):
		msg.Printf("[SKIP] %s already exists, skipping", filepath.Base(oppim))
	default:
		prot, pimin := ana.HitsFiles(oppim)
		outs = append(outs, oppim, prot, pimin)
		a, err := ana.NewPPiMinus(oppim, cfg.Selector(decay.FirstOnly), cfg.Detectors())
		if err != nil {
			return fmt.Errorf("could not create p+pi- analysis for %q: %w", fname, err)
		}
		ppim = a
		anas = append(anas, a)
	}

	if len(anas) == 0 {
		return nil
	}

	sc := evtio.NewScanner([]string{fname}, nevts, msg, cfg.Options()...)
	defer sc.Close()

	err = ana.Run(sc, cfg.Freq, log.New(io.Discard, "", 0), anas...)
	if err != nil {
		return fmt.Errorf("could not process %q: %w", fname, err)
	}
	switch {
	case sc.Skipped() > 0:
		return fmt.Errorf("could not open %q", fname)
	case sc.Failed() > 0:
		return fmt.Errorf("could not read %q", fname)
	}

	for _, a := range anas {
		err = a.Close()
		if err != nil {
			return fmt.Errorf("could not close outputs of %q: %w", fname, err)
		}
	}

	if npi0 != nil {
		msg.Printf("%s → %s", filepath.Base(fname), filepath.Base(onpi0))
		npi0.Stats().Print(w)
	}
	if ppim != nil {
		msg.Printf("%s → %s", filepath.Base(fname), filepath.Base(oppim))
		ppim.Stats().Print(w)
	}
	return nil
}

func exists(fname string) bool {
	_, err := os.Stat(fname)
	return err == nil
}
