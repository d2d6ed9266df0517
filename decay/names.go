// Copyright 2025 The go-lpc Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package decay

import (
	"strconv"

	"go-hep.org/x/hep/heppdt"
)

// Name returns the name of the species with the given PDG code, as known
// by the default particle data table, or the code itself.
func Name(pdg int32) string {
	p := heppdt.ParticleByID(heppdt.PID(pdg))
	if p == nil || p.Name == "" {
		return strconv.Itoa(int(pdg))
	}
	return p.Name
}
