// Copyright 2025 The go-lpc Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package cellid decodes the detector system encoded in a DD4hep cell ID.
package cellid // import "github.com/go-lpc/hyperon/cellid"

import (
	"errors"
	"fmt"
	"sort"
)

// ErrUnknownSystem is returned when a cell ID encodes an unmapped system.
var ErrUnknownSystem = errors.New("cellid: unknown detector system")

// System returns the detector system ID of a cell ID.
// The system field is stored in the 8 least significant bits.
func System(cell uint64) uint8 {
	return uint8(cell & 0xff)
}

// Dict maps detector system IDs to detector names.
type Dict struct {
	names map[uint8]string
}

// NewDict returns a dictionary holding the provided names.
func NewDict(names map[uint8]string) *Dict {
	dict := &Dict{names: make(map[uint8]string, len(names))}
	for id, name := range names {
		dict.names[id] = name
	}
	return dict
}

// Len returns the number of systems in the dictionary.
func (dict *Dict) Len() int { return len(dict.names) }

// IDs returns the sorted system IDs of the dictionary.
func (dict *Dict) IDs() []uint8 {
	ids := make([]uint8, 0, len(dict.names))
	for id := range dict.names {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// Name returns the name of a system ID.
func (dict *Dict) Name(id uint8) (string, bool) {
	name, ok := dict.names[id]
	return name, ok
}

// Lookup returns the system ID and name of a cell ID.
func (dict *Dict) Lookup(cell uint64) (uint8, string, error) {
	id := System(cell)
	name, ok := dict.names[id]
	if !ok {
		return id, "", fmt.Errorf("%w: system=%d, cell-id=0x%x", ErrUnknownSystem, id, cell)
	}
	return id, name, nil
}

// Default returns the dictionary of the ePIC detector systems.
func Default() *Dict {
	return NewDict(epic)
}

var epic = map[uint8]string{
	10:  "BeamPipe",
	11:  "BeamPipeB0",
	25:  "VertexSubAssembly_0",
	26:  "VertexSubAssembly_1",
	27:  "VertexSubAssembly_2",
	31:  "VertexBarrel_0",
	32:  "VertexBarrel_1",
	33:  "VertexBarrel_2",
	34:  "VertexEndcapN_0",
	35:  "VertexEndcapN_1",
	36:  "VertexEndcapN_2",
	37:  "VertexEndcapP_0",
	38:  "VertexEndcapP_1",
	39:  "VertexEndcapP_2",
	40:  "TrackerSubAssembly_0",
	41:  "TrackerSubAssembly_1",
	42:  "TrackerSubAssembly_2",
	43:  "TrackerSubAssembly_3",
	44:  "TrackerSubAssembly_4",
	45:  "TrackerSubAssembly_5",
	46:  "TrackerSubAssembly_6",
	47:  "TrackerSubAssembly_7",
	48:  "TrackerSubAssembly_8",
	49:  "TrackerSubAssembly_9",
	50:  "SVT_IB_Support_0",
	51:  "SVT_IB_Support_1",
	52:  "SVT_IB_Support_2",
	53:  "SVT_IB_Support_3",
	59:  "TrackerBarrel_0",
	60:  "TrackerBarrel_1",
	61:  "TrackerBarrel_2",
	62:  "TrackerBarrel_3",
	63:  "TrackerBarrel_4",
	64:  "TrackerBarrel_5",
	65:  "TrackerBarrel_6",
	66:  "TrackerBarrel_7",
	67:  "TrackerBarrel_8",
	68:  "TrackerEndcapN_0",
	69:  "TrackerEndcapN_1",
	70:  "TrackerEndcapN_2",
	71:  "TrackerEndcapN_3",
	72:  "TrackerEndcapN_4",
	73:  "TrackerEndcapN_5",
	74:  "TrackerEndcapN_6",
	75:  "TrackerEndcapN_7",
	76:  "TrackerEndcapN_8",
	77:  "TrackerEndcapP_0",
	78:  "TrackerEndcapP_1",
	79:  "TrackerEndcapP_2",
	80:  "TrackerEndcapP_3",
	81:  "TrackerEndcapP_4",
	82:  "TrackerEndcapP_5",
	83:  "TrackerEndcapP_6",
	84:  "TrackerSupport_0",
	85:  "TrackerSupport_1",
	90:  "BarrelDIRC",
	91:  "BarrelTRD",
	92:  "BarrelTOF",
	93:  "TOFSubAssembly",
	100: "EcalSubAssembly",
	101: "EcalBarrel",
	102: "EcalEndcapP",
	103: "EcalEndcapN",
	104: "CrystalEndcap",
	105: "EcalBarrel2",
	106: "EcalEndcapPInsert",
	110: "HcalSubAssembly",
	111: "HcalBarrel",
	113: "HcalEndcapN",
	114: "PassiveSteelRingEndcapP",
	115: "HcalEndcapPInsert",
	116: "LFHCAL",
	120: "ForwardRICH",
	121: "ForwardTRD",
	122: "ForwardTOF",
	131: "BackwardRICH",
	132: "BackwardTOF",
	140: "Solenoid",
	141: "SolenoidSupport",
	142: "SolenoidYoke",
	150: "B0Tracker_Station_1",
	151: "B0Tracker_Station_2",
	152: "B0Tracker_Station_3",
	153: "B0Tracker_Station_4",
	154: "B0Preshower_Station_1",
	155: "ForwardRomanPot_Station_1",
	156: "ForwardRomanPot_Station_2",
	157: "B0TrackerCompanion",
	158: "B0TrackerSubAssembly",
	159: "ForwardOffMTracker_station_1",
	160: "ForwardOffMTracker_station_2",
	161: "ForwardOffMTracker_station_3",
	162: "ForwardOffMTracker_station_4",
	163: "ZDC_1stSilicon",
	164: "ZDC_Crystal",
	165: "ZDC_WSi",
	166: "ZDC_PbSi",
	167: "ZDC_PbSci",
	168: "VacuumMagnetElement_1",
	169: "B0ECal",
	170: "B0PF",
	171: "B0APF",
	172: "Q1APF",
	173: "Q1BPF",
	174: "Q2PF",
	175: "B1PF",
	176: "B1APF",
	177: "B2PF",
	180: "Q0EF",
	181: "Q1EF",
	182: "B0Window",
	190: "LumiCollimator",
	191: "LumiDipole",
	192: "LumiWindow",
	193: "LumiSpecTracker",
	194: "LumiSpecCAL",
	195: "LumiDirectPCAL",
	197: "BackwardsBeamline",
	198: "TaggerTracker",
	199: "TaggerCalorimeter",
}
