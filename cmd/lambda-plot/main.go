// Copyright 2025 The go-lpc Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command lambda-plot histograms the Λ⁰ of the input LCIO files: the -t
// transferred from the beam proton, the z of the Λ⁰ decay point and the
// decay channel.
//
// Usage: lambda-plot [OPTIONS] FILE1 [FILE2 [FILE3 ...]]
package main // import "github.com/go-lpc/hyperon/cmd/lambda-plot"

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"go-hep.org/x/hep/hbook"
	"go-hep.org/x/hep/hplot"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/go-lpc/hyperon/ana"
	"github.com/go-lpc/hyperon/decay"
	"github.com/go-lpc/hyperon/edm"
	"github.com/go-lpc/hyperon/evtio"
	"github.com/go-lpc/hyperon/kine"
)

const usage = `lambda-plot histograms the Λ⁰ of LCIO files.

Usage: lambda-plot [OPTIONS] FILE1 [FILE2 [FILE3 ...]]

Example:

 $> lambda-plot -o lambda.png ./k_lambda_18x275_*.slcio

Options:
`

func main() {
	os.Exit(xmain(os.Stdout, os.Stderr, os.Args[1:]))
}

func xmain(stdout, stderr io.Writer, args []string) int {
	msg := log.New(stderr, "lambda-plot: ", 0)

	var (
		fset = flag.NewFlagSet("lambda-plot", flag.ContinueOnError)

		nevts = fset.Int64("n", -1, "number of events to process (all if <= 0)")
		oname = fset.String("o", "lambda.png", "path to output plot file")
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

	hs := newHists(cfg.Selector(policy))
	sc := evtio.NewScanner(fnames, *nevts, msg, cfg.Options()...)
	defer sc.Close()

	err = ana.Run(sc, cfg.Freq, msg, hs)
	if err != nil {
		msg.Printf("could not process files: %+v", err)
		return 1
	}

	err = hs.plot(*oname)
	if err != nil {
		msg.Printf("could not plot histograms: %+v", err)
		return 1
	}

	fmt.Fprintf(stdout, "lambdas: %v\n", hs.chans.Entries())
	return 0
}

// hists fills the Λ⁰ histograms. It implements ana.Analysis.
type hists struct {
	sel decay.Selector

	t     *hbook.H1D // -t [GeV²]
	z     *hbook.H1D // decay point z [m]
	chans *hbook.H1D // decay channel
}

func newHists(sel decay.Selector) *hists {
	return &hists{
		sel:   sel,
		t:     hbook.NewH1D(50, 0, 2),
		z:     hbook.NewH1D(50, 0, 40),
		chans: hbook.NewH1D(int(decay.Other)+1, -0.5, float64(decay.Other)+0.5),
	}
}

func (hs *hists) Process(evt *edm.Event) error {
	for _, i := range hs.sel.Select(evt) {
		d := decay.Classify(evt, i)
		hs.chans.Fill(float64(d.Channel), 1)
		if d.Channel != decay.NotDecayed {
			hs.z.Fill(evt.Particles[i].EndPoint[2]*1e-3, 1)
		}
		if t, ok := kine.BeamT(evt, i); ok {
			hs.t.Fill(-t, 1)
		}
	}
	return nil
}

func (hs *hists) Close() error { return nil }

func (hs *hists) plot(oname string) error {
	tp := hplot.NewTiledPlot(draw.Tiles{Cols: 3, Rows: 1, PadX: 1 * vg.Centimeter})

	for i, v := range []struct {
		h     *hbook.H1D
		title string
		xlab  string
	}{
		{hs.t, "Λ⁰ -t", "-t [GeV²]"},
		{hs.z, "Λ⁰ decay point", "z [m]"},
		{hs.chans, "Λ⁰ decay channel", "channel (0: none, 1: pπ⁻, 2: nπ⁰, 3: shower, 4: other)"},
	} {
		p := tp.Plot(0, i)
		p.Title.Text = v.title
		p.X.Label.Text = v.xlab
		p.Y.Label.Text = "entries"

		h := hplot.NewH1D(v.h)
		h.Infos.Style = hplot.HInfoSummary
		p.Add(h, hplot.NewGrid())
	}

	err := tp.Save(30*vg.Centimeter, 10*vg.Centimeter, oname)
	if err != nil {
		return fmt.Errorf("could not save plot to %q: %w", oname, err)
	}
	return nil
}
