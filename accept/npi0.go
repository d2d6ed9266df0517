// Copyright 2025 The go-lpc Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package accept

import (
	"fmt"
	"io"

	"github.com/go-lpc/hyperon/decay"
	"github.com/go-lpc/hyperon/edm"
)

// Station is a detector with the short label used in flag names.
type Station struct {
	Label    string
	Detector Detector
}

// NPi0 describes the calorimeters probed for the final state of a
// Λ⁰ → n + π⁰ → n + γγ decay.
// The first HCAL and the first ECAL are the zero-degree calorimeters.
type NPi0 struct {
	HCALs []Station // probed for the neutron
	ECALs []Station // probed for both photons
}

// DefaultNPi0 returns the ePIC far-forward calorimeter stations.
func DefaultNPi0() NPi0 {
	return NPi0{
		HCALs: []Station{
			{"zdc_hcal", Detector{"HcalFarForwardZDCHits", Calorimeter}},
			{"pins_hcal", Detector{"HcalEndcapPInsertHits", Calorimeter}},
			{"lf_hcal", Detector{"LFHCALHits", Calorimeter}},
		},
		ECALs: []Station{
			{"zdc_ecal", Detector{"EcalFarForwardZDCHits", Calorimeter}},
			{"b0_ecal", Detector{"B0ECalHits", Calorimeter}},
			{"ecalp", Detector{"EcalEndcapPHits", Calorimeter}},
			{"ecalp_ins", Detector{"EcalEndcapPInsertHits", Calorimeter}},
		},
	}
}

// Names returns the flag names: neut_<hcal> for every HCAL, then
// gam1_<ecal>, gam2_<ecal> for every ECAL.
func (cfg NPi0) Names() []string {
	out := make([]string, 0, len(cfg.HCALs)+2*len(cfg.ECALs))
	for _, st := range cfg.HCALs {
		out = append(out, "neut_"+st.Label)
	}
	for _, st := range cfg.ECALs {
		out = append(out, "gam1_"+st.Label, "gam2_"+st.Label)
	}
	return out
}

// Flags returns the detection flags of the decay final state.
// Flags are all false unless the decay is an observable n+π⁰ one.
func (cfg NPi0) Flags(evt *edm.Event, d decay.Decay) Flags {
	names := cfg.Names()
	out := make(Flags, len(names))
	for i, name := range names {
		out[i].Name = name
	}
	if !d.Observable() {
		return out
	}

	i := 0
	for _, st := range cfg.HCALs {
		out[i].Value = Detected(evt, st.Detector, d.Neutron)
		i++
	}
	for _, st := range cfg.ECALs {
		out[i+0].Value = Detected(evt, st.Detector, d.Gamma1)
		out[i+1].Value = Detected(evt, st.Detector, d.Gamma2)
		i += 2
	}
	return out
}

// NPi0Stats accumulates detection statistics over classified Λ⁰ decays.
type NPi0Stats struct {
	cfg NPi0

	Lambdas  int64
	Channels [decay.Other + 1]int64

	Observable int64 // n+π⁰ decays with both photons recorded
	NeutAny    int64 // observable decays with the neutron in any HCAL
	AllThree   int64 // observable decays with n, γ₁ and γ₂ detected
	AllZDC     int64 // observable decays with n, γ₁ and γ₂ in the ZDC

	PerDet  map[string]int64 // flag counts over observable decays
	PerDet3 map[string]int64 // flag counts over AllThree decays
}

// NewNPi0Stats returns empty statistics for the given stations.
func NewNPi0Stats(cfg NPi0) *NPi0Stats {
	return &NPi0Stats{
		cfg:     cfg,
		PerDet:  make(map[string]int64),
		PerDet3: make(map[string]int64),
	}
}

// Add accounts for a classified decay and its detection flags.
func (st *NPi0Stats) Add(d decay.Decay, flags Flags) {
	st.Lambdas++
	if d.Channel >= 0 && int(d.Channel) < len(st.Channels) {
		st.Channels[d.Channel]++
	}
	if !d.Observable() {
		return
	}
	st.Observable++

	var (
		neut = st.any(flags, "neut_", st.cfg.HCALs)
		gam1 = st.any(flags, "gam1_", st.cfg.ECALs)
		gam2 = st.any(flags, "gam2_", st.cfg.ECALs)
		all3 = neut && gam1 && gam2
	)
	if neut {
		st.NeutAny++
	}
	for _, f := range flags {
		if f.Value {
			st.PerDet[f.Name]++
		}
	}
	if !all3 {
		return
	}

	st.AllThree++
	if len(st.cfg.HCALs) > 0 && len(st.cfg.ECALs) > 0 {
		var (
			hcal = st.cfg.HCALs[0].Label
			ecal = st.cfg.ECALs[0].Label
		)
		if flags.Get("neut_"+hcal) && flags.Get("gam1_"+ecal) && flags.Get("gam2_"+ecal) {
			st.AllZDC++
		}
	}
	for _, f := range flags {
		if f.Value {
			st.PerDet3[f.Name]++
		}
	}
}

func (st *NPi0Stats) any(flags Flags, prefix string, stations []Station) bool {
	for _, s := range stations {
		if flags.Get(prefix + s.Label) {
			return true
		}
	}
	return false
}

// Print writes the statistics report to w.
func (st *NPi0Stats) Print(w io.Writer) {
	fmt.Fprintf(w, "\n=== DETECTION STATISTICS ===\n")
	fmt.Fprintf(w, "Total lambdas: %d\n", st.Lambdas)
	fmt.Fprintf(w, "Lambda decay channels:\n")
	for _, ch := range []struct {
		name string
		ch   decay.Channel
	}{
		{"Not decayed", decay.NotDecayed},
		{"p + π⁻", decay.PPiMinus},
		{"n + π⁰", decay.NPiZero},
		{"Shower/recharge", decay.Shower},
		{"Other", decay.Other},
	} {
		n := st.Channels[ch.ch]
		fmt.Fprintf(w, "  %s: %d (%.2f%%)\n", ch.name, n, percent(n, st.Lambdas))
	}

	npi0 := st.Channels[decay.NPiZero]
	fmt.Fprintf(w, "\n--- n+π⁰ Detection Analysis ---\n")
	fmt.Fprintf(w, "Total n+π⁰ decays: %d\n", npi0)
	fmt.Fprintf(w, "n+π⁰ with observable γγ: %d (%.2f%%)\n", st.Observable, percent(st.Observable, npi0))

	if st.Observable > 0 {
		fmt.Fprintf(w, "\nOf the %d n+π⁰ decays with observable γγ:\n", st.Observable)
		fmt.Fprintf(w, "  Neutron in any HCAL: %d (%.2f%%)\n", st.NeutAny, percent(st.NeutAny, st.Observable))
		fmt.Fprintf(w, "  Neutron + both gammas detected: %d (%.2f%%)\n", st.AllThree, percent(st.AllThree, st.Observable))
		fmt.Fprintf(w, "  Neutron + both gammas in ZDC: %d (%.2f%%)\n", st.AllZDC, percent(st.AllZDC, st.Observable))

		fmt.Fprintf(w, "\n--- Per-Detector Counts (Observable γγ Events) ---\n")
		st.printDets(w, st.PerDet)
	}

	if st.AllThree > 0 {
		fmt.Fprintf(w, "\n--- Per-Detector Counts (All 3 Particles Detected) ---\n")
		fmt.Fprintf(w, "Total events with all 3 particles: %d\n", st.AllThree)
		st.printDets(w, st.PerDet3)
	}
	fmt.Fprintf(w, "=============================\n")
}

func (st *NPi0Stats) printDets(w io.Writer, counts map[string]int64) {
	fmt.Fprintf(w, "Neutron detections:\n")
	for _, s := range st.cfg.HCALs {
		fmt.Fprintf(w, "  %s: %d\n", s.Detector.Name, counts["neut_"+s.Label])
	}
	for i, prefix := range []string{"gam1_", "gam2_"} {
		fmt.Fprintf(w, "Gamma%d detections:\n", i+1)
		for _, s := range st.cfg.ECALs {
			fmt.Fprintf(w, "  %s: %d\n", s.Detector.Name, counts[prefix+s.Label])
		}
	}
}

func percent(n, tot int64) float64 {
	if tot <= 0 {
		return 0
	}
	return 100 * float64(n) / float64(tot)
}
