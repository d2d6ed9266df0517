// Copyright 2025 The go-lpc Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ana

import (
	"bytes"
	"log"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go-hep.org/x/hep/lcio"

	"github.com/go-lpc/hyperon/cellid"
	"github.com/go-lpc/hyperon/csvout"
	"github.com/go-lpc/hyperon/decay"
	"github.com/go-lpc/hyperon/edm"
	"github.com/go-lpc/hyperon/kine"
)

// newEvents returns three events:
//   - evt 0: Λ⁰ → p + π⁻, with an incoming beam proton,
//     tracker and calorimeter hits of the p and of the π⁻;
//   - evt 1: no Λ⁰;
//   - evt 2: Λ⁰ → n + π⁰ → n + γγ, and an undecayed Λ⁰,
//     with calorimeter hits of the n and of both photons.
func newEvents() []*edm.Event {
	evt0 := &edm.Event{
		Index: 0,
		Particles: []edm.Particle{
			{ID: 0, PDG: decay.Lambda, GenStatus: 1, P: [3]float64{0.5, 0, 90}, Mass: kine.LambdaMass, EndPoint: [3]float64{1, 2, 3000}, Daughters: []int{1, 2}},
			{ID: 1, PDG: decay.Proton, P: [3]float64{0.4, 0.1, 80}, Mass: kine.ProtonMass, Parents: []int{0}},
			{ID: 2, PDG: decay.PiMinus, P: [3]float64{0.1, -0.1, 10}, Mass: 0.13957, Parents: []int{0}},
			{ID: 3, PDG: decay.Proton, GenStatus: kine.BeamStatus, P: [3]float64{0, 0, 100}, Mass: kine.ProtonMass},
		},
	}
	evt0.AddTrackerHits("SiBarrelHits", []edm.TrackerHit{
		{ID: 0, CellID: 31, Pos: [3]float64{1, 2, 3}, EDep: 0.5, Time: 1.5, PathLength: 0.25, Particle: 1},
		{ID: 1, CellID: 254, Pos: [3]float64{4, 5, 6}, EDep: 0.125, Time: 2, PathLength: 0.5, Particle: 2},
		{ID: 2, CellID: 31, Particle: edm.NoParticle},
	})
	evt0.AddCaloHits("LFHCALHits", []edm.CaloHit{
		{ID: 0, CellID: 116, Pos: [3]float32{10, 20, 3500}, Energy: 2, Contribs: []edm.Contrib{
			{Particle: 1, Time: 12},
		}},
	})
	evt0.SetParams(lcio.Params{
		Strings: map[string][]string{"dis_q2": {"2.5"}},
		Floats:  map[string][]float32{"dis_xbj": {0.125}},
	})

	evt1 := &edm.Event{
		Index: 1,
		Particles: []edm.Particle{
			{ID: 0, PDG: 11, GenStatus: kine.BeamStatus},
		},
	}

	evt2 := &edm.Event{
		Index: 2,
		Particles: []edm.Particle{
			{ID: 0, PDG: decay.Lambda, Daughters: []int{1, 2}},
			{ID: 1, PDG: decay.PiZero, Parents: []int{0}, Daughters: []int{3, 4}},
			{ID: 2, PDG: decay.Neutron, Parents: []int{0}},
			{ID: 3, PDG: decay.Gamma, Parents: []int{1}},
			{ID: 4, PDG: decay.Gamma, Parents: []int{1}},
			{ID: 5, PDG: decay.Lambda},
		},
	}
	evt2.AddCaloHits("HcalFarForwardZDCHits", []edm.CaloHit{
		{ID: 0, Energy: 40, Contribs: []edm.Contrib{{Particle: 2, Time: 120}}},
	})
	evt2.AddCaloHits("EcalFarForwardZDCHits", []edm.CaloHit{
		{ID: 0, Energy: 1, Contribs: []edm.Contrib{{Particle: 3, Time: 118}, {Particle: 4, Time: 119}}},
	})

	return []*edm.Event{evt0, evt1, evt2}
}

type table struct {
	hdr  []string
	rows [][]string
}

func readTable(t *testing.T, fname string) table {
	t.Helper()
	raw, err := os.ReadFile(fname)
	if err != nil {
		t.Fatalf("could not read table: %+v", err)
	}
	var tbl table
	if len(raw) == 0 {
		return tbl
	}
	lines := strings.Split(strings.TrimSuffix(string(raw), "\n"), "\n")
	tbl.hdr = strings.Split(lines[0], ",")
	for i, line := range lines[1:] {
		row := strings.Split(line, ",")
		if len(row) != len(tbl.hdr) {
			t.Fatalf("row %d: invalid width: got=%d, want=%d", i, len(row), len(tbl.hdr))
		}
		tbl.rows = append(tbl.rows, row)
	}
	return tbl
}

func (tbl table) get(t *testing.T, i int, col string) string {
	t.Helper()
	for j, name := range tbl.hdr {
		if name == col {
			return tbl.rows[i][j]
		}
	}
	t.Fatalf("no such column %q", col)
	return ""
}

func process(t *testing.T, a Analysis, evts []*edm.Event) {
	t.Helper()
	for _, evt := range evts {
		err := a.Process(evt)
		if err != nil {
			t.Fatalf("could not process event %d: %+v", evt.Index, err)
		}
	}
	err := a.Close()
	if err != nil {
		t.Fatalf("could not close analysis: %+v", err)
	}
}

func TestMCPart(t *testing.T) {
	tmp := t.TempDir()
	fname := filepath.Join(tmp, "mcpart_lambdas.csv")

	a, err := NewMCPart(fname, decay.Selector{PDG: decay.Lambda, Policy: decay.All})
	if err != nil {
		t.Fatalf("could not create analysis: %+v", err)
	}
	process(t, a, newEvents())

	tbl := readTable(t, fname)
	if got, want := len(tbl.hdr), 4+7*len(Particle); got != want {
		t.Fatalf("invalid header width: got=%d, want=%d", got, want)
	}
	if got, want := strings.Join(tbl.hdr[:6], ","), "event,lam_decay,lam_t,lam_t_nom,lam_id,lam_pdg"; got != want {
		t.Fatalf("invalid header: got=%q, want=%q", got, want)
	}
	if got, want := len(tbl.rows), 3; got != want {
		t.Fatalf("invalid number of rows: got=%d, want=%d", got, want)
	}
	if got, want := a.Rows(), int64(3); got != want {
		t.Fatalf("invalid number of rows: got=%d, want=%d", got, want)
	}

	for _, tc := range []struct {
		row  int
		col  string
		want string
	}{
		{0, "event", "0"},
		{0, "lam_decay", "1"},
		{0, "prot_id", "1"},
		{0, "prot_pdg", "2212"},
		{0, "prot_pz", "80"},
		{0, "pimin_id", "2"},
		{0, "pimin_pdg", "-211"},
		{0, "lam_nd", "2"},
		{0, "lam_epz", "3000"},
		{0, "neut_id", ""},
		{0, "gamtwo_nd", ""},
		{1, "event", "2"},
		{1, "lam_decay", "2"},
		{1, "lam_t", ""},
		{1, "lam_t_nom", ""},
		{1, "neut_id", "2"},
		{1, "pizero_id", "1"},
		{1, "gamone_id", "3"},
		{1, "gamtwo_id", "4"},
		{1, "prot_id", ""},
		{2, "event", "2"},
		{2, "lam_id", "5"},
		{2, "lam_decay", "0"},
	} {
		if got := tbl.get(t, tc.row, tc.col); got != tc.want {
			t.Fatalf("row %d, col %q: got=%q, want=%q", tc.row, tc.col, got, tc.want)
		}
	}

	if tbl.get(t, 0, "lam_t") == "" {
		t.Fatalf("missing t for event with a beam proton")
	}
	tnom, ok := kine.NominalT(newEvents()[0], 0)
	if !ok {
		t.Fatalf("expected a nominal t for a 100 GeV beam proton")
	}
	if got, want := tbl.get(t, 0, "lam_t_nom"), csvout.F64(tnom); got != want {
		t.Fatalf("invalid nominal t: got=%q, want=%q", got, want)
	}

	chans := a.Channels()
	if chans[decay.PPiMinus] != 1 || chans[decay.NPiZero] != 1 || chans[decay.NotDecayed] != 1 {
		t.Fatalf("invalid channels: %v", chans)
	}
}

func TestMCPartIdempotent(t *testing.T) {
	tmp := t.TempDir()

	var outs [][]byte
	for _, name := range []string{"a.csv", "b.csv"} {
		fname := filepath.Join(tmp, name)
		a, err := NewMCPart(fname, decay.Selector{PDG: decay.Lambda, Policy: decay.All})
		if err != nil {
			t.Fatalf("could not create analysis: %+v", err)
		}
		process(t, a, newEvents())

		raw, err := os.ReadFile(fname)
		if err != nil {
			t.Fatalf("could not read output: %+v", err)
		}
		outs = append(outs, raw)
	}

	if !bytes.Equal(outs[0], outs[1]) {
		t.Fatalf("outputs differ:\n%s\n%s", outs[0], outs[1])
	}
}

func TestHeaderDeferred(t *testing.T) {
	tmp := t.TempDir()
	fname := filepath.Join(tmp, "out.csv")

	a, err := NewNPi0(fname, decay.Selector{PDG: decay.Lambda}, Default().NPi0())
	if err != nil {
		t.Fatalf("could not create analysis: %+v", err)
	}
	evts := newEvents()
	process(t, a, evts[1:2])

	raw, err := os.ReadFile(fname)
	if err != nil {
		t.Fatalf("could not read output: %+v", err)
	}
	if len(raw) != 0 {
		t.Fatalf("header written without any selected hyperon: %q", raw)
	}
}

func TestNPi0(t *testing.T) {
	tmp := t.TempDir()
	fname := filepath.Join(tmp, "acceptance_npi0.csv")

	a, err := NewNPi0(fname, decay.Selector{PDG: decay.Lambda, Policy: decay.FirstOnly}, Default().NPi0())
	if err != nil {
		t.Fatalf("could not create analysis: %+v", err)
	}
	process(t, a, newEvents())

	tbl := readTable(t, fname)
	if got, want := len(tbl.hdr), 4+7*len(Particle)+11; got != want {
		t.Fatalf("invalid header width: got=%d, want=%d", got, want)
	}
	if got, want := tbl.hdr[len(tbl.hdr)-1], "gam2_ecalp_ins"; got != want {
		t.Fatalf("invalid last column: got=%q, want=%q", got, want)
	}
	if got, want := len(tbl.rows), 2; got != want {
		t.Fatalf("invalid number of rows: got=%d, want=%d", got, want)
	}

	for _, tc := range []struct {
		row  int
		col  string
		want string
	}{
		{0, "event", "0"},
		{0, "lam_is_first", "1"},
		{0, "lam_decay", "1"},
		{0, "neut_zdc_hcal", "0"},
		{1, "event", "2"},
		{1, "lam_is_first", "1"},
		{1, "lam_decay", "2"},
		{1, "neut_zdc_hcal", "1"},
		{1, "neut_lf_hcal", "0"},
		{1, "gam1_zdc_ecal", "1"},
		{1, "gam2_zdc_ecal", "1"},
		{1, "gam1_b0_ecal", "0"},
	} {
		if got := tbl.get(t, tc.row, tc.col); got != tc.want {
			t.Fatalf("row %d, col %q: got=%q, want=%q", tc.row, tc.col, got, tc.want)
		}
	}

	st := a.Stats()
	if st.Lambdas != 2 || st.Observable != 1 || st.AllThree != 1 || st.AllZDC != 1 {
		t.Fatalf("invalid stats: %+v", st)
	}
}

func TestNPi0All(t *testing.T) {
	tmp := t.TempDir()
	fname := filepath.Join(tmp, "acceptance_npi0.csv")

	a, err := NewNPi0(fname, decay.Selector{PDG: decay.Lambda, Policy: decay.All}, Default().NPi0())
	if err != nil {
		t.Fatalf("could not create analysis: %+v", err)
	}
	process(t, a, newEvents())

	tbl := readTable(t, fname)
	if got, want := len(tbl.rows), 3; got != want {
		t.Fatalf("invalid number of rows: got=%d, want=%d", got, want)
	}
	if got, want := tbl.get(t, 2, "lam_is_first"), "0"; got != want {
		t.Fatalf("invalid first flag: got=%q, want=%q", got, want)
	}
	if got, want := tbl.get(t, 2, "lam_decay"), "0"; got != want {
		t.Fatalf("invalid decay: got=%q, want=%q", got, want)
	}
}

func TestPPiMinus(t *testing.T) {
	tmp := t.TempDir()
	fname := filepath.Join(tmp, "acceptance_ppim.csv")

	cfg := Default()
	a, err := NewPPiMinus(fname, cfg.Selector(decay.FirstOnly), cfg.Detectors())
	if err != nil {
		t.Fatalf("could not create analysis: %+v", err)
	}
	process(t, a, newEvents())

	tbl := readTable(t, fname)
	ndets := len(cfg.Trackers) + len(cfg.Calorimeters)
	if got, want := len(tbl.hdr), 2+3*len(Particle)+2*ndets; got != want {
		t.Fatalf("invalid header width: got=%d, want=%d", got, want)
	}
	if got, want := len(tbl.rows), 1; got != want {
		t.Fatalf("invalid number of rows: got=%d, want=%d", got, want)
	}
	for _, tc := range []struct {
		col  string
		want string
	}{
		{"evt", "0"},
		{"lam_id", "0"},
		{"prot_id", "1"},
		{"pimin_id", "2"},
		{"prot_SiBarrelHits", "1"},
		{"prot_LFHCALHits", "1"},
		{"prot_B0TrackerHits", "0"},
		{"pimin_SiBarrelHits", "1"},
		{"pimin_LFHCALHits", "0"},
	} {
		if got := tbl.get(t, 0, tc.col); got != tc.want {
			t.Fatalf("col %q: got=%q, want=%q", tc.col, got, tc.want)
		}
	}

	fprot, fpimin := HitsFiles(fname)
	if got, want := fprot, filepath.Join(tmp, "acceptance_ppim_prot_hits.csv"); got != want {
		t.Fatalf("invalid proton hits file: got=%q, want=%q", got, want)
	}

	prot := readTable(t, fprot)
	if got, want := strings.Join(prot.hdr, ","), strings.Join(HitsHeader, ","); got != want {
		t.Fatalf("invalid header: got=%q, want=%q", got, want)
	}
	want := [][]string{
		{"0", "0", "SiBarrelHits", "0", "1", "2", "3", "0.5", "1.5", "0.25"},
		{"0", "0", "LFHCALHits", "0", "10", "20", "3500", "2", "12", "0"},
	}
	if got := prot.rows; strings.Join(flatten(got), ",") != strings.Join(flatten(want), ",") {
		t.Fatalf("invalid proton hits:\ngot= %v\nwant=%v", got, want)
	}

	pimin := readTable(t, fpimin)
	if got, want := len(pimin.rows), 1; got != want {
		t.Fatalf("invalid number of pion hits: got=%d, want=%d", got, want)
	}

	st := a.Stats()
	if st.Decays != 1 || st.BothTrk != 1 || st.BothCalo != 0 || st.AnyWhere != 1 {
		t.Fatalf("invalid stats: %+v", st)
	}
}

func TestPPiMinusEmpty(t *testing.T) {
	tmp := t.TempDir()
	fname := filepath.Join(tmp, "ppim.csv")

	a, err := NewPPiMinus(fname, decay.Selector{PDG: decay.Lambda}, Default().Detectors())
	if err != nil {
		t.Fatalf("could not create analysis: %+v", err)
	}
	process(t, a, newEvents()[1:])

	if tbl := readTable(t, fname); len(tbl.hdr) != 0 {
		t.Fatalf("header written without any p+π⁻ decay")
	}

	// hit tables always carry a header.
	fprot, fpimin := HitsFiles(fname)
	for _, name := range []string{fprot, fpimin} {
		tbl := readTable(t, name)
		if len(tbl.hdr) != len(HitsHeader) || len(tbl.rows) != 0 {
			t.Fatalf("invalid hit table %q: %+v", name, tbl)
		}
	}
}

func flatten(rows [][]string) []string {
	var out []string
	for _, row := range rows {
		out = append(out, row...)
	}
	return out
}

func TestDIS(t *testing.T) {
	tmp := t.TempDir()
	fname := filepath.Join(tmp, "dis_parameters.csv")

	a, err := NewDIS(fname)
	if err != nil {
		t.Fatalf("could not create analysis: %+v", err)
	}
	process(t, a, newEvents())

	tbl := readTable(t, fname)
	if got, want := len(tbl.hdr), 21; got != want {
		t.Fatalf("invalid header width: got=%d, want=%d", got, want)
	}
	if got, want := len(tbl.rows), 3; got != want {
		t.Fatalf("invalid number of rows: got=%d, want=%d", got, want)
	}
	for _, tc := range []struct {
		row  int
		col  string
		want string
	}{
		{0, "evt", "0"},
		{0, "q2", "2.5"},
		{0, "xbj", "0.125"},
		{0, "w", ""},
		{1, "evt", "1"},
		{1, "q2", ""},
	} {
		if got := tbl.get(t, tc.row, tc.col); got != tc.want {
			t.Fatalf("row %d, col %q: got=%q, want=%q", tc.row, tc.col, got, tc.want)
		}
	}
}

func TestTrkHits(t *testing.T) {
	tmp := t.TempDir()
	fname := filepath.Join(tmp, "trk_hits.csv")

	msg := new(strings.Builder)
	a, err := NewTrkHits(fname, cellid.Default(), log.New(msg, "", 0))
	if err != nil {
		t.Fatalf("could not create analysis: %+v", err)
	}
	process(t, a, newEvents())

	tbl := readTable(t, fname)
	if got, want := len(tbl.rows), 1; got != want {
		t.Fatalf("invalid number of rows: got=%d, want=%d", got, want)
	}
	for _, tc := range []struct {
		col  string
		want string
	}{
		{"evt", "0"},
		{"hit_index", "0"},
		{"prt_index", "1"},
		{"prt_pdg", "2212"},
		{"trk_hit_collection", "SiBarrelHits"},
		{"trk_hit_cell_id", "31"},
		{"trk_hit_system_id", "31"},
		{"trk_hit_system_name", "VertexBarrel_0"},
		{"trk_hit_edep", "0.5"},
	} {
		if got := tbl.get(t, 0, tc.col); got != tc.want {
			t.Fatalf("col %q: got=%q, want=%q", tc.col, got, tc.want)
		}
	}

	if got, want := a.Unknown(), int64(1); got != want {
		t.Fatalf("invalid number of unknown-system hits: got=%d, want=%d", got, want)
	}
	if !strings.Contains(msg.String(), "unknown systems") {
		t.Fatalf("missing warning: %q", msg.String())
	}
}

func TestCreateFailure(t *testing.T) {
	fname := filepath.Join(t.TempDir(), "no-such-dir", "out.csv")
	sel := decay.Selector{PDG: decay.Lambda}

	for _, tc := range []struct {
		name string
		f    func() error
	}{
		{"mcpart", func() error { _, err := NewMCPart(fname, sel); return err }},
		{"npi0", func() error { _, err := NewNPi0(fname, sel, Default().NPi0()); return err }},
		{"ppim", func() error { _, err := NewPPiMinus(fname, sel, Default().Detectors()); return err }},
		{"dis", func() error { _, err := NewDIS(fname); return err }},
		{"trk-hits", func() error { _, err := NewTrkHits(fname, cellid.Default(), nil); return err }},
	} {
		t.Run(tc.name, func(t *testing.T) {
			if err := tc.f(); err == nil {
				t.Fatalf("expected an error")
			}
		})
	}
}
