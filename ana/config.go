// Copyright 2025 The go-lpc Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ana

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/go-lpc/hyperon/accept"
	"github.com/go-lpc/hyperon/decay"
	"github.com/go-lpc/hyperon/evtio"
)

// Config holds the analysis configuration.
type Config struct {
	Particles    string    `json:"particles"`    // name of the MC particle collection
	PDG          int32     `json:"pdg"`          // species of the selected parents
	Policy       string    `json:"policy"`       // "first", "all", or empty for the tool default
	Freq         int       `json:"freq"`         // progress report frequency, in events
	Trackers     []string  `json:"trackers"`     // tracker hit collections
	Calorimeters []string  `json:"calorimeters"` // calorimeter hit collections
	HCALs        []Station `json:"hcals"`        // calorimeters probed for the n of n+π⁰ decays
	ECALs        []Station `json:"ecals"`        // calorimeters probed for the γγ of n+π⁰ decays
}

// Station is a calorimeter collection with the label used in flag names.
type Station struct {
	Label      string `json:"label"`
	Collection string `json:"collection"`
}

// Default returns the default configuration for ePIC simulations.
func Default() Config {
	cfg := Config{
		Particles: evtio.DefaultParticles,
		PDG:       decay.Lambda,
		Freq:      1000,
	}
	for _, det := range accept.DefaultTrackers() {
		cfg.Trackers = append(cfg.Trackers, det.Name)
	}
	for _, det := range accept.DefaultCalorimeters() {
		cfg.Calorimeters = append(cfg.Calorimeters, det.Name)
	}
	npi0 := accept.DefaultNPi0()
	for _, st := range npi0.HCALs {
		cfg.HCALs = append(cfg.HCALs, Station{st.Label, st.Detector.Name})
	}
	for _, st := range npi0.ECALs {
		cfg.ECALs = append(cfg.ECALs, Station{st.Label, st.Detector.Name})
	}
	return cfg
}

// LoadConfig loads a JSON configuration file.
// Fields absent from the file keep their default value.
func LoadConfig(fname string) (Config, error) {
	cfg := Default()

	raw, err := os.ReadFile(fname)
	if err != nil {
		return cfg, fmt.Errorf("ana: could not read configuration file: %w", err)
	}

	err = json.Unmarshal(raw, &cfg)
	if err != nil {
		return cfg, fmt.Errorf("ana: could not decode configuration file %q: %w", fname, err)
	}

	return cfg, cfg.validate()
}

// Setup returns the configuration loaded from fname, or the default
// configuration if fname is empty.
func Setup(fname string) (Config, error) {
	if fname == "" {
		return Default(), nil
	}
	return LoadConfig(fname)
}

func (cfg Config) validate() error {
	switch cfg.Policy {
	case "", "first", "all":
	default:
		return fmt.Errorf("ana: invalid selection policy %q", cfg.Policy)
	}
	if cfg.Particles == "" {
		return fmt.Errorf("ana: empty MC particle collection name")
	}
	return nil
}

// Selector returns the parent selector.
// def is the selection policy used when the configuration has none.
func (cfg Config) Selector(def decay.Policy) decay.Selector {
	sel := decay.Selector{PDG: cfg.PDG, Policy: def}
	switch cfg.Policy {
	case "first":
		sel.Policy = decay.FirstOnly
	case "all":
		sel.Policy = decay.All
	}
	return sel
}

// Detectors returns the tracker then calorimeter detectors.
func (cfg Config) Detectors() []accept.Detector {
	return append(
		accept.Trackers(cfg.Trackers...),
		accept.Calorimeters(cfg.Calorimeters...)...,
	)
}

// NPi0 returns the calorimeter stations probed for n+π⁰ decays.
func (cfg Config) NPi0() accept.NPi0 {
	var out accept.NPi0
	for _, st := range cfg.HCALs {
		out.HCALs = append(out.HCALs, accept.Station{
			Label:    st.Label,
			Detector: accept.Detector{Name: st.Collection, Kind: accept.Calorimeter},
		})
	}
	for _, st := range cfg.ECALs {
		out.ECALs = append(out.ECALs, accept.Station{
			Label:    st.Label,
			Detector: accept.Detector{Name: st.Collection, Kind: accept.Calorimeter},
		})
	}
	return out
}

// Options returns the event scanner options.
func (cfg Config) Options() []evtio.Option {
	return []evtio.Option{evtio.WithParticles(cfg.Particles)}
}
