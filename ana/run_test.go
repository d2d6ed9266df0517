// Copyright 2025 The go-lpc Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ana

import (
	"flag"
	"io"
	"log"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/go-lpc/hyperon/decay"
	"github.com/go-lpc/hyperon/evtio"
	"github.com/go-lpc/hyperon/internal/xcnv"
)

func generate(t *testing.T, fname string, kinds ...xcnv.Kind) {
	t.Helper()
	err := xcnv.GenerateFile(fname, 1, kinds, log.New(io.Discard, "", 0))
	if err != nil {
		t.Fatalf("could not generate events: %+v", err)
	}
}

func TestRun(t *testing.T) {
	tmp := t.TempDir()
	var (
		f1 = filepath.Join(tmp, "f1.slcio")
		f2 = filepath.Join(tmp, "f2.slcio")
	)
	generate(t, f1, xcnv.PPiMinus, xcnv.NoLambda)
	generate(t, f2, xcnv.NPiZero)

	cfg := Default()
	npi0, err := NewNPi0(filepath.Join(tmp, "npi0.csv"), cfg.Selector(decay.FirstOnly), cfg.NPi0())
	if err != nil {
		t.Fatalf("could not create n+pi0 analysis: %+v", err)
	}
	dis, err := NewDIS(filepath.Join(tmp, "dis.csv"))
	if err != nil {
		t.Fatalf("could not create DIS analysis: %+v", err)
	}

	msg := new(strings.Builder)
	sc := evtio.NewScanner(
		[]string{f1, filepath.Join(tmp, "missing.slcio"), f2}, -1,
		log.New(msg, "", 0), cfg.Options()...,
	)
	defer sc.Close()

	err = Run(sc, 1, log.New(msg, "", 0), npi0, dis)
	if err != nil {
		t.Fatalf("could not run analyses: %+v", err)
	}
	for _, a := range []Analysis{npi0, dis} {
		err = a.Close()
		if err != nil {
			t.Fatalf("could not close analysis: %+v", err)
		}
	}

	if got, want := npi0.Rows(), int64(2); got != want {
		t.Fatalf("invalid number of n+pi0 rows: got=%d, want=%d", got, want)
	}
	if got, want := dis.Rows(), int64(3); got != want {
		t.Fatalf("invalid number of DIS rows: got=%d, want=%d", got, want)
	}

	tbl := readTable(t, filepath.Join(tmp, "npi0.csv"))
	for _, tc := range []struct {
		row  int
		col  string
		want string
	}{
		{0, "event", "0"},
		{0, "lam_decay", "1"},
		{1, "event", "2"},
		{1, "lam_decay", "2"},
		{1, "neut_zdc_hcal", "1"},
		{1, "gam1_zdc_ecal", "1"},
		{1, "gam2_zdc_ecal", "1"},
	} {
		if got := tbl.get(t, tc.row, tc.col); got != tc.want {
			t.Fatalf("row %d, col %q: got=%q, want=%q", tc.row, tc.col, got, tc.want)
		}
	}

	for _, want := range []string{
		"processing evt 0...",
		"processing evt 2...",
		"processed 3 events",
		"skipped 1 input file(s)",
	} {
		if !strings.Contains(msg.String(), want) {
			t.Fatalf("missing log message %q:\n%s", want, msg.String())
		}
	}
}

func TestConfig(t *testing.T) {
	tmp := t.TempDir()

	cfg, err := Setup("")
	if err != nil {
		t.Fatalf("could not setup default configuration: %+v", err)
	}
	if !reflect.DeepEqual(cfg, Default()) {
		t.Fatalf("invalid default configuration")
	}
	if got, want := len(cfg.Detectors()), 17+7; got != want {
		t.Fatalf("invalid number of detectors: got=%d, want=%d", got, want)
	}

	for _, tc := range []struct {
		name string
		json string
		err  string
		chk  func(t *testing.T, cfg Config)
	}{
		{
			name: "partial",
			json: `{"policy": "all", "trackers": ["SiBarrelHits"], "hcals": [{"label": "zdc", "collection": "HcalFarForwardZDCHits"}]}`,
			chk: func(t *testing.T, cfg Config) {
				if got, want := cfg.Selector(decay.FirstOnly).Policy, decay.All; got != want {
					t.Fatalf("invalid policy: got=%v, want=%v", got, want)
				}
				if got, want := cfg.Particles, evtio.DefaultParticles; got != want {
					t.Fatalf("invalid particles: got=%q, want=%q", got, want)
				}
				if got, want := len(cfg.Detectors()), 1+7; got != want {
					t.Fatalf("invalid number of detectors: got=%d, want=%d", got, want)
				}
				names := cfg.NPi0().Names()
				if got, want := names[0], "neut_zdc"; got != want {
					t.Fatalf("invalid flag name: got=%q, want=%q", got, want)
				}
				if got, want := len(names), 1+2*4; got != want {
					t.Fatalf("invalid number of flags: got=%d, want=%d", got, want)
				}
			},
		},
		{
			name: "default-policy",
			json: `{"pdg": 3212, "particles": "MCParticlesHeadOnFrameNoBeamFX"}`,
			chk: func(t *testing.T, cfg Config) {
				sel := cfg.Selector(decay.FirstOnly)
				if sel.Policy != decay.FirstOnly || sel.PDG != 3212 {
					t.Fatalf("invalid selector: %+v", sel)
				}
			},
		},
		{
			name: "invalid-policy",
			json: `{"policy": "some"}`,
			err:  `ana: invalid selection policy "some"`,
		},
		{
			name: "empty-particles",
			json: `{"particles": ""}`,
			err:  `ana: empty MC particle collection name`,
		},
		{
			name: "invalid-json",
			json: `{"policy": `,
			err:  `ana: could not decode configuration file`,
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			fname := filepath.Join(tmp, tc.name+".json")
			err := os.WriteFile(fname, []byte(tc.json), 0644)
			if err != nil {
				t.Fatalf("could not write configuration: %+v", err)
			}

			cfg, err := Setup(fname)
			switch {
			case err != nil && tc.err != "":
				if !strings.Contains(err.Error(), tc.err) {
					t.Fatalf("invalid error:\ngot= %v\nwant=%v", err, tc.err)
				}
				return
			case err != nil:
				t.Fatalf("could not load configuration: %+v", err)
			case tc.err != "":
				t.Fatalf("expected an error (%s)", tc.err)
			}
			tc.chk(t, cfg)
		})
	}

	_, err = LoadConfig(filepath.Join(tmp, "missing.json"))
	if err == nil {
		t.Fatalf("expected an error for a missing file")
	}
}

func TestParseArgs(t *testing.T) {
	for _, tc := range []struct {
		args []string
		pos  []string
		n    int
		o    string
	}{
		{
			args: nil,
			pos:  nil,
			n:    -1,
			o:    "out.csv",
		},
		{
			args: []string{"a.slcio", "-n", "10", "b.slcio"},
			pos:  []string{"a.slcio", "b.slcio"},
			n:    10,
			o:    "out.csv",
		},
		{
			args: []string{"-o", "x.csv", "a.slcio", "b.slcio", "-n=2"},
			pos:  []string{"a.slcio", "b.slcio"},
			n:    2,
			o:    "x.csv",
		},
		{
			args: []string{"a.slcio", "--", "-n", "b.slcio"},
			pos:  []string{"a.slcio", "-n", "b.slcio"},
			n:    -1,
			o:    "out.csv",
		},
	} {
		t.Run(strings.Join(tc.args, " "), func(t *testing.T) {
			fset := flag.NewFlagSet("test", flag.ContinueOnError)
			fset.SetOutput(io.Discard)
			var (
				n = fset.Int("n", -1, "number of events")
				o = fset.String("o", "out.csv", "output file")
			)
			pos, err := ParseArgs(fset, tc.args)
			if err != nil {
				t.Fatalf("could not parse args: %+v", err)
			}
			if !reflect.DeepEqual(pos, tc.pos) {
				t.Fatalf("invalid positional args: got=%q, want=%q", pos, tc.pos)
			}
			if *n != tc.n || *o != tc.o {
				t.Fatalf("invalid options: n=%d, o=%q", *n, *o)
			}
		})
	}

	fset := flag.NewFlagSet("test", flag.ContinueOnError)
	fset.SetOutput(io.Discard)
	_ = fset.Int("n", -1, "number of events")
	_, err := ParseArgs(fset, []string{"a.slcio", "-x"})
	if err == nil {
		t.Fatalf("expected an error for an unknown flag")
	}
}
