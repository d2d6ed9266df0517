// Copyright 2025 The go-lpc Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package accept

import "github.com/go-lpc/hyperon/edm"

// Flag is a named detection flag.
type Flag struct {
	Name  string
	Value bool
}

// Flags is an ordered list of detection flags.
type Flags []Flag

// Names returns the flag names, in order.
func (fs Flags) Names() []string {
	out := make([]string, len(fs))
	for i, f := range fs {
		out[i] = f.Name
	}
	return out
}

// Get returns the value of the named flag.
func (fs Flags) Get(name string) bool {
	for _, f := range fs {
		if f.Name == name {
			return f.Value
		}
	}
	return false
}

// Any reports whether any flag is set.
func (fs Flags) Any() bool {
	for _, f := range fs {
		if f.Value {
			return true
		}
	}
	return false
}

// FlagName returns the name of the flag of a particle in a detector,
// as prefix_detector.
func FlagName(prefix, detector string) string {
	return prefix + "_" + detector
}

// Scan matches the particle against every detector and returns one flag
// per detector, named prefix_detector. Matching hits are passed to fn,
// when not nil.
func Scan(evt *edm.Event, prefix string, dets []Detector, particle int, fn func(Hit)) Flags {
	out := make(Flags, len(dets))
	for i, det := range dets {
		res := Match(evt, det, particle)
		out[i] = Flag{Name: FlagName(prefix, det.Name), Value: res.Detected}
		if fn == nil {
			continue
		}
		for _, hit := range res.Hits {
			fn(hit)
		}
	}
	return out
}
