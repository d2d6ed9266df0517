// Copyright 2025 The go-lpc Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package hyperon holds tools to extract Λ⁰ hyperon decays and their
// detector acceptance from simulated LCIO events into flat CSV tables.
//
// The event model lives in package edm, the decay classification in
// package decay and the acceptance matching in package accept.
// Package ana assembles them into the analyses run by the cmd/csv-* tools.
package hyperon // import "github.com/go-lpc/hyperon"

import (
	"fmt"
	"runtime/debug"
)

// Version returns the version of hyperon the running binary was built
// with, and its checksum.
// The returned values are only valid in binaries built with module support.
func Version() (version, sum string) {
	bi, ok := debug.ReadBuildInfo()
	if !ok {
		return "", ""
	}
	return versionOf(bi)
}

const modpath = "github.com/go-lpc/hyperon"

func versionOf(bi *debug.BuildInfo) (version, sum string) {
	mod := module(bi)
	if mod == nil {
		return "", ""
	}

	rep := mod.Replace
	switch {
	case rep == nil:
		return mod.Version, mod.Sum
	case rep.Path != "" && rep.Version != "":
		return fmt.Sprintf("%s %s", rep.Path, rep.Version), rep.Sum
	case rep.Version != "":
		return rep.Version, rep.Sum
	case rep.Path != "":
		return rep.Path, rep.Sum
	}
	return mod.Version + "*", ""
}

// module returns the hyperon module of the build, either as the main
// module of the binary or as one of its dependencies.
func module(bi *debug.BuildInfo) *debug.Module {
	if bi == nil {
		return nil
	}
	if bi.Main.Path == modpath {
		return &bi.Main
	}
	for _, m := range bi.Deps {
		if m.Path == modpath {
			return m
		}
	}
	return nil
}
