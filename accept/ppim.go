// Copyright 2025 The go-lpc Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package accept

import (
	"fmt"
	"io"
)

// DefaultTrackers returns the ePIC tracker hit collections.
func DefaultTrackers() []Detector {
	return Trackers(
		"B0TrackerHits",
		"BackwardMPGDEndcapHits",
		"DIRCBarHits",
		"DRICHHits",
		"ForwardMPGDEndcapHits",
		"ForwardOffMTrackerHits",
		"ForwardRomanPotHits",
		"LumiSpecTrackerHits",
		"MPGDBarrelHits",
		"OuterMPGDBarrelHits",
		"RICHEndcapNHits",
		"SiBarrelHits",
		"TOFBarrelHits",
		"TOFEndcapHits",
		"TaggerTrackerHits",
		"TrackerEndcapHits",
		"VertexBarrelHits",
	)
}

// DefaultCalorimeters returns the ePIC forward calorimeter hit collections.
func DefaultCalorimeters() []Detector {
	return Calorimeters(
		"EcalFarForwardZDCHits",
		"B0ECalHits",
		"EcalEndcapPHits",
		"EcalEndcapPInsertHits",
		"HcalFarForwardZDCHits",
		"HcalEndcapPInsertHits",
		"LFHCALHits",
	)
}

// Detection summarizes where a particle was seen.
type Detection struct {
	Tracker     bool // in at least one tracker
	Calorimeter bool // in at least one calorimeter
}

// Seen reports whether the particle was seen in any detector.
func (d Detection) Seen() bool { return d.Tracker || d.Calorimeter }

// Summarize folds the flags of a particle over the tracker and calorimeter
// detectors into a Detection.
func Summarize(flags Flags, prefix string, dets []Detector) Detection {
	var out Detection
	for _, det := range dets {
		if !flags.Get(FlagName(prefix, det.Name)) {
			continue
		}
		switch det.Kind {
		case Tracker:
			out.Tracker = true
		case Calorimeter:
			out.Calorimeter = true
		}
	}
	return out
}

// PPiMinusStats counts Λ⁰ → p + π⁻ decays by where both daughters were seen.
type PPiMinusStats struct {
	Decays   int64
	BothTrk  int64 // p and π⁻ both in trackers
	BothCalo int64 // p and π⁻ both in calorimeters
	BothAll  int64 // p and π⁻ both in trackers and in calorimeters
	Union    int64 // BothTrk or BothCalo
	AnyWhere int64 // p and π⁻ each seen in any detector
}

// Add accounts for one decay.
func (st *PPiMinusStats) Add(prot, pimin Detection) {
	st.Decays++
	var (
		trk  = prot.Tracker && pimin.Tracker
		calo = prot.Calorimeter && pimin.Calorimeter
	)
	if trk {
		st.BothTrk++
	}
	if calo {
		st.BothCalo++
	}
	if trk && calo {
		st.BothAll++
	}
	if trk || calo {
		st.Union++
	}
	if prot.Seen() && pimin.Seen() {
		st.AnyWhere++
	}
}

// Print writes the statistics report to w.
func (st *PPiMinusStats) Print(w io.Writer) {
	line := func(title string, n int64) {
		fmt.Fprintf(w, "%s: %d (%.1f%%)\n", title, n, percent(n, st.Decays))
	}
	fmt.Fprintf(w, "----------------------------------------\n")
	fmt.Fprintf(w, "Total p+π⁻ decays: %d\n", st.Decays)
	line("1. Both p and pi- in at least one tracker", st.BothTrk)
	line("2. Both p and pi- in at least one calorimeter", st.BothCalo)
	line("3. Both p and pi- in both tracker and calorimeter", st.BothAll)
	line("4. Union (1 OR 2): Both in Tracker OR Both in Calo", st.Union)
	line("5. Any: (p in T or C) AND (pi in T or C)", st.AnyWhere)
	fmt.Fprintf(w, "----------------------------------------\n")
}
