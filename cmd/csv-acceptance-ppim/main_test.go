// Copyright 2025 The go-lpc Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"bytes"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/go-lpc/hyperon/internal/xcnv"
)

func TestCSVAcceptancePPiMinus(t *testing.T) {
	tmp := t.TempDir()
	fname := filepath.Join(tmp, "in.slcio")
	err := xcnv.GenerateFile(fname, 1, []xcnv.Kind{xcnv.PPiMinus, xcnv.NPiZero, xcnv.PPiMinus}, log.New(io.Discard, "", 0))
	if err != nil {
		t.Fatalf("could not generate input file: %+v", err)
	}

	var (
		oname  = filepath.Join(tmp, "ppim.csv")
		stdout = new(bytes.Buffer)
		stderr = new(bytes.Buffer)
	)
	rc := xmain(stdout, stderr, []string{fname, "-o", oname})
	if rc != 0 {
		t.Fatalf("invalid exit code: %d\n%s", rc, stderr.String())
	}

	for _, tc := range []struct {
		fname string
		hdr   string
		lines int
	}{
		{oname, "evt,lam_id,lam_id,lam_pdg,", 1 + 2},
		// one silicon-barrel hit and one LFHCAL hit per proton.
		{filepath.Join(tmp, "ppim_prot_hits.csv"), "event_id,lam_id,detector,hit_id,", 1 + 2*2},
		{filepath.Join(tmp, "ppim_pimin_hits.csv"), "event_id,lam_id,detector,hit_id,", 1 + 2*1},
	} {
		raw, err := os.ReadFile(tc.fname)
		if err != nil {
			t.Fatalf("could not read output file: %+v", err)
		}
		lines := strings.Split(strings.TrimSpace(string(raw)), "\n")
		if got, want := len(lines), tc.lines; got != want {
			t.Fatalf("%s: invalid number of lines: got=%d, want=%d", tc.fname, got, want)
		}
		if !strings.HasPrefix(lines[0], tc.hdr) {
			t.Fatalf("%s: invalid header: %q", tc.fname, lines[0])
		}
	}

	for _, want := range []string{
		"Total p+π⁻ decays: 2",
		"1. Both p and pi- in at least one tracker: 2 (100.0%)",
		"2. Both p and pi- in at least one calorimeter: 0 (0.0%)",
	} {
		if !strings.Contains(stdout.String(), want) {
			t.Fatalf("missing %q in report:\n%s", want, stdout.String())
		}
	}
}

func TestMainErrors(t *testing.T) {
	tmp := t.TempDir()
	for _, tc := range []struct {
		name string
		args []string
		rc   int
	}{
		{"help", []string{"-h"}, 0},
		{"unknown-flag", []string{"-xyz"}, 1},
		{"no-input", nil, 1},
		{"bad-output", []string{"-o", filepath.Join(tmp, "no-dir", "out.csv"), "f.slcio"}, 1},
	} {
		t.Run(tc.name, func(t *testing.T) {
			rc := xmain(io.Discard, io.Discard, tc.args)
			if rc != tc.rc {
				t.Fatalf("invalid exit code: got=%d, want=%d", rc, tc.rc)
			}
		})
	}
}
