// Copyright 2025 The go-lpc Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ana

import (
	"github.com/go-lpc/hyperon/csvout"
	"github.com/go-lpc/hyperon/edm"
)

// DISParams are the generator-level DIS parameters, stored as dis_<name>
// event parameters.
var DISParams = []string{
	"alphas", "mx2", "nu", "p_rt", "pdrest", "pperps", "pperpz",
	"q2", "s_e", "s_q", "tempvar", "tprime", "tspectator",
	"twopdotk", "twopdotq", "w", "x_d", "xbj", "y_d", "yplus",
}

// DIS writes one row per event with its DIS parameters.
// Missing parameters are written as empty fields.
type DIS struct {
	tbl *csvout.Table
}

// NewDIS creates the output table of the analysis.
func NewDIS(fname string) (*DIS, error) {
	tbl, err := csvout.Create(fname, csvout.Concat([]string{"evt"}, DISParams))
	if err != nil {
		return nil, err
	}
	return &DIS{tbl: tbl}, nil
}

func (a *DIS) Process(evt *edm.Event) error {
	row := make([]string, 1, 1+len(DISParams))
	row[0] = csvout.Int(evt.Index)
	for _, name := range DISParams {
		v, _ := evt.Param("dis_" + name)
		row = append(row, v)
	}
	return a.tbl.Write(row)
}

// Rows returns the number of rows written.
func (a *DIS) Rows() int64 { return a.tbl.Rows() }

func (a *DIS) Close() error {
	return a.tbl.Close()
}
